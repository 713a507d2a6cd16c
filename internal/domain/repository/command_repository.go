// Package repository defines the interfaces for the persistence layer.
package repository

import (
	"context"
	"time"

	"nydra/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Domain-specific errors for command persistence.
var (
	// ErrCommandNotFound is returned when a command is not found.
	ErrCommandNotFound = errors.New("command not found")
	// ErrStatusConflict is returned when a conditional status update matched
	// no row because the command was no longer in the expected status.
	ErrStatusConflict = errors.New("command status conflict")
)

// StatusUpdate carries the fields written alongside a status transition.
// Nil pointer fields are left untouched.
type StatusUpdate struct {
	Status      entity.CommandStatus
	Error       string
	Result      entity.Attrs
	StartedAt   *time.Time
	CompletedAt *time.Time
}

// CommandFilter narrows history listings.
type CommandFilter struct {
	UserID   uuid.UUID
	DeviceID string // Matches either source or target device when set.
	Status   entity.CommandStatus
	Page     int
	Limit    int
}

// CommandRepository defines the interface for command-related database operations.
// Status writes are conditional on the expected prior status so that a response
// arriving concurrently with a timeout or cancellation cannot be lost.
type CommandRepository interface {
	// Create persists a new command record.
	Create(ctx context.Context, cmd *entity.Command) error

	// FindByID retrieves a command by its unique ID.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Command, error)

	// FindByUserAndID retrieves a command scoped to its owning user.
	FindByUserAndID(ctx context.Context, userID, id uuid.UUID) (*entity.Command, error)

	// UpdateStatus atomically transitions a command that is currently in one
	// of the expected statuses. It returns ErrStatusConflict when the command
	// exists but is no longer in any of them, and ErrCommandNotFound when no
	// such command exists. An empty expected set matches any status.
	UpdateStatus(ctx context.Context, id uuid.UUID, expected []entity.CommandStatus, update StatusUpdate) error

	// List returns a page of commands matching the filter plus the total count.
	List(ctx context.Context, filter CommandFilter) ([]*entity.Command, int64, error)

	// FindByStatus retrieves all commands currently in the given status.
	// Used to rehydrate the dispatch queue after a restart.
	FindByStatus(ctx context.Context, status entity.CommandStatus) ([]*entity.Command, error)

	// FindExecutingBefore retrieves executing commands whose startedAt is
	// older than the cutoff. Used by the execution timeout reaper.
	FindExecutingBefore(ctx context.Context, cutoff time.Time) ([]*entity.Command, error)
}
