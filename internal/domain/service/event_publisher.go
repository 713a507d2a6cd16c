package service

import (
	"context"
	"time"
)

// CommandEvent is published when a command reaches a terminal status, for
// downstream consumers (audit, analytics).
type CommandEvent struct {
	CommandID      string    `json:"command_id"`
	UserID         string    `json:"user_id"`
	SourceDeviceID string    `json:"source_device_id"`
	TargetDeviceID string    `json:"target_device_id"`
	CommandType    string    `json:"command_type"`
	Status         string    `json:"status"`
	Error          string    `json:"error,omitempty"`
	OccurredAt     time.Time `json:"occurred_at"`
}

// EventPublisher defines the interface for publishing events to a message queue
type EventPublisher interface {
	// PublishCommandEvent publishes a terminal command lifecycle event.
	PublishCommandEvent(ctx context.Context, event *CommandEvent) error

	// Close releases any resources held by the publisher
	Close() error
}
