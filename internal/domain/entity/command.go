package entity

import (
	"time"

	"github.com/google/uuid"
)

// CommandStatus is the lifecycle state of a command.
type CommandStatus string

// Lifecycle states. A command moves pending -> queued -> executing and ends in
// completed or failed; cancelled is reachable from pending or queued only.
const (
	StatusPending   CommandStatus = "pending"
	StatusQueued    CommandStatus = "queued"
	StatusExecuting CommandStatus = "executing"
	StatusCompleted CommandStatus = "completed"
	StatusFailed    CommandStatus = "failed"
	StatusCancelled CommandStatus = "cancelled"
)

// transitions lists the legal edges of the lifecycle state machine.
// The queued self-loop covers re-queueing a deferred entry.
var transitions = map[CommandStatus][]CommandStatus{
	StatusPending:   {StatusQueued, StatusCancelled, StatusFailed},
	StatusQueued:    {StatusQueued, StatusExecuting, StatusCancelled, StatusFailed},
	StatusExecuting: {StatusCompleted, StatusFailed},
}

// IsTerminal reports whether no further transition is allowed from s.
func (s CommandStatus) IsTerminal() bool {
	return s == StatusCompleted || s == StatusFailed || s == StatusCancelled
}

// CanTransitionTo reports whether the edge s -> next is legal.
func (s CommandStatus) CanTransitionTo(next CommandStatus) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}

	return false
}

// ParseCommandStatus validates a caller-supplied status string.
func ParseCommandStatus(raw string) (CommandStatus, bool) {
	switch CommandStatus(raw) {
	case StatusPending, StatusQueued, StatusExecuting, StatusCompleted, StatusFailed, StatusCancelled:
		return CommandStatus(raw), true
	default:
		return "", false
	}
}

// Command is a unit of work one device asks another to perform.
// The target device must belong to the same user as the command.
type Command struct {
	ID             uuid.UUID     `json:"id"`
	UserID         uuid.UUID     `json:"user_id"`
	SourceDeviceID string        `json:"source_device_id"`
	TargetDeviceID string        `json:"target_device_id"`
	CommandType    string        `json:"command_type"`
	Command        string        `json:"command"` // Opaque payload interpreted by the target.
	Parameters     Attrs         `json:"parameters"`
	Priority       int           `json:"priority"`
	Status         CommandStatus `json:"status"`
	ExecuteAt      time.Time     `json:"execute_at"`
	StartedAt      *time.Time    `json:"started_at,omitempty"`
	CompletedAt    *time.Time    `json:"completed_at,omitempty"`
	Result         Attrs         `json:"result,omitempty"`
	Error          string        `json:"error,omitempty"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`
}
