package service

import (
	"context"

	"nydra/internal/domain/entity"

	"github.com/google/uuid"
)

// Push event names delivered over live connections. A single vocabulary is
// used for both directions of the command lifecycle.
const (
	EventExecuteCommand = "execute-command" // To the target device: run this command.
	EventCommandUpdate  = "command-update"  // To the source device: lifecycle progress.
	EventDeviceStatus   = "device-status"   // To the user room: presence changed.
	EventPong           = "pong"            // Heartbeat acknowledgement.
)

// Pusher delivers events to live connections and exposes live-connection
// presence truth. The dispatcher prefers this over the stored online flag,
// which may lag behind an abrupt disconnect.
type Pusher interface {
	// PushToDevice delivers an event to every live connection registered for
	// the device and reports whether at least one connection received it.
	PushToDevice(deviceID string, event string, payload any) bool

	// PushToUser fans an event out to all of a user's connections.
	PushToUser(userID uuid.UUID, event string, payload any)

	// IsDeviceOnline reports whether the device has at least one live connection.
	IsDeviceOnline(deviceID string) bool
}

// CommandDispatcher accepts pending commands into the dispatch queue.
type CommandDispatcher interface {
	// Enqueue transitions a pending command to queued and schedules it for
	// delivery. On persistence failure the command is forced to failed and
	// the error is returned.
	Enqueue(ctx context.Context, cmd *entity.Command) error
}
