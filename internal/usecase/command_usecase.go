// Package usecase defines the application's use case interfaces and their
// input/output types.
package usecase

import (
	"context"
	"time"

	"nydra/internal/domain/entity"
	"nydra/internal/domain/service"

	"github.com/google/uuid"
)

// SendCommandInput represents the input for dispatching a command to a device
type SendCommandInput struct {
	TargetDeviceID string       `json:"target_device_id" validate:"required"`
	CommandType    string       `json:"command_type" validate:"required"`
	Command        string       `json:"command" validate:"required"`
	Parameters     entity.Attrs `json:"parameters"`
	Priority       int          `json:"priority" validate:"gte=0,lte=10"`
	ExecuteAt      *time.Time   `json:"execute_at"`
}

// RespondCommandInput represents a target device reporting its outcome
type RespondCommandInput struct {
	Status string       `json:"status" validate:"required,oneof=completed failed"`
	Result entity.Attrs `json:"result"`
	Error  string       `json:"error"`
}

// HistoryFilter narrows the command history listing
type HistoryFilter struct {
	DeviceID string `json:"device_id"`
	Status   string `json:"status"`
	Page     int    `json:"page"`
	Limit    int    `json:"limit"`
}

// CommandHistory is one page of command history plus the total count
type CommandHistory struct {
	Commands []*entity.Command `json:"commands"`
	Total    int64             `json:"total"`
	Page     int               `json:"page"`
	Limit    int               `json:"limit"`
}

// CommandUsecase defines the interface for the command lifecycle use cases
type CommandUsecase interface {
	// Send validates the target and hands a new command to the dispatcher.
	// The returned command reflects the status reached so far.
	Send(ctx context.Context, userID uuid.UUID, sourceDeviceID string, input *SendCommandInput) (*entity.Command, error)

	// Status retrieves a command scoped to its owning user.
	Status(ctx context.Context, userID, commandID uuid.UUID) (*entity.Command, error)

	// Respond records the outcome reported by the target device.
	Respond(ctx context.Context, claims *service.DeviceClaims, commandID uuid.UUID, input *RespondCommandInput) (*entity.Command, error)

	// History lists the user's commands, optionally filtered by device or status.
	History(ctx context.Context, userID uuid.UUID, filter *HistoryFilter) (*CommandHistory, error)

	// Cancel aborts a command that has not started executing.
	Cancel(ctx context.Context, userID, commandID uuid.UUID) (*entity.Command, error)
}
