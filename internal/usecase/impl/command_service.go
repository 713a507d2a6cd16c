// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"time"

	deliverycontext "nydra/internal/delivery/context"
	"nydra/internal/domain/entity"
	domainerrors "nydra/internal/domain/errors"
	"nydra/internal/domain/repository"
	"nydra/internal/domain/service"
	"nydra/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const (
	defaultHistoryLimit = 20
	maxHistoryLimit     = 100
)

// commandService implements the CommandUsecase interface.
type commandService struct {
	commandRepo repository.CommandRepository
	deviceRepo  repository.DeviceRepository
	dispatcher  service.CommandDispatcher
	pusher      service.Pusher
	publisher   service.EventPublisher
	logger      *slog.Logger
}

// CommandServiceParams holds dependencies for CommandService, injected by Fx.
type CommandServiceParams struct {
	fx.In

	CommandRepo repository.CommandRepository
	DeviceRepo  repository.DeviceRepository
	Dispatcher  service.CommandDispatcher
	Pusher      service.Pusher
	Publisher   service.EventPublisher
	Logger      *slog.Logger
}

// NewCommandService is the constructor for commandService.
func NewCommandService(params CommandServiceParams) usecase.CommandUsecase {
	return &commandService{
		commandRepo: params.CommandRepo,
		deviceRepo:  params.DeviceRepo,
		dispatcher:  params.Dispatcher,
		pusher:      params.Pusher,
		publisher:   params.Publisher,
		logger:      params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *commandService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Send validates the target device and hands a new command to the dispatcher.
// Delivery failures are recorded on the command record, never surfaced to the
// sender; the command the sender gets back tells the status reached so far.
func (srv *commandService) Send(ctx context.Context, userID uuid.UUID, sourceDeviceID string, input *usecase.SendCommandInput) (*entity.Command, error) {
	// The target must exist and belong to the sender. A device of another
	// user is indistinguishable from a missing one.
	_, err := srv.deviceRepo.FindByUserAndDeviceID(ctx, userID, input.TargetDeviceID)
	if err != nil {
		if errors.Is(err, repository.ErrDeviceNotFound) {
			return nil, domainerrors.ErrDeviceNotFound.WrapMessage("target device not registered")
		}

		return nil, errors.Wrap(err, "failed to find target device")
	}

	executeAt := time.Now()
	if input.ExecuteAt != nil {
		executeAt = *input.ExecuteAt
	}

	now := time.Now()
	cmd := &entity.Command{
		ID:             uuid.New(),
		UserID:         userID,
		SourceDeviceID: sourceDeviceID,
		TargetDeviceID: input.TargetDeviceID,
		CommandType:    input.CommandType,
		Command:        input.Command,
		Parameters:     input.Parameters,
		Priority:       input.Priority,
		Status:         entity.StatusPending,
		ExecuteAt:      executeAt,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if err := srv.commandRepo.Create(ctx, cmd); err != nil {
		return nil, errors.Wrap(err, "failed to create command")
	}

	if err := srv.dispatcher.Enqueue(ctx, cmd); err != nil {
		// The dispatcher already forced the record to failed; report the
		// terminal record instead of an error.
		srv.log(ctx).Error("command could not be queued",
			slog.String("command_id", cmd.ID.String()),
			slog.Any("error", err),
		)

		return srv.commandRepo.FindByUserAndID(ctx, userID, cmd.ID)
	}

	srv.log(ctx).Info("command accepted",
		slog.String("command_id", cmd.ID.String()),
		slog.String("target_device_id", cmd.TargetDeviceID),
		slog.String("command_type", cmd.CommandType),
	)

	return cmd, nil
}

// Status retrieves a command scoped to its owning user.
func (srv *commandService) Status(ctx context.Context, userID, commandID uuid.UUID) (*entity.Command, error) {
	cmd, err := srv.commandRepo.FindByUserAndID(ctx, userID, commandID)
	if err != nil {
		if errors.Is(err, repository.ErrCommandNotFound) {
			return nil, domainerrors.ErrCommandNotFound
		}

		return nil, errors.Wrap(err, "failed to find command")
	}

	return cmd, nil
}

// Respond records the outcome a target device reports for a command it
// executed. Only executing commands accept a response: a late response to a
// command that was cancelled or timed out meanwhile is a state conflict.
func (srv *commandService) Respond(ctx context.Context, claims *service.DeviceClaims, commandID uuid.UUID, input *usecase.RespondCommandInput) (*entity.Command, error) {
	cmd, err := srv.commandRepo.FindByID(ctx, commandID)
	if err != nil {
		if errors.Is(err, repository.ErrCommandNotFound) {
			return nil, domainerrors.ErrCommandNotFound
		}

		return nil, errors.Wrap(err, "failed to find command")
	}
	if cmd.UserID != claims.UserID {
		return nil, domainerrors.ErrCommandNotFound
	}
	if cmd.TargetDeviceID != claims.DeviceID {
		return nil, domainerrors.ErrDeviceOwnershipViolation.WrapMessage("only the target device may respond")
	}

	status, ok := entity.ParseCommandStatus(input.Status)
	if !ok || (status != entity.StatusCompleted && status != entity.StatusFailed) {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("status must be completed or failed")
	}

	completedAt := time.Now()
	err = srv.commandRepo.UpdateStatus(ctx, commandID,
		[]entity.CommandStatus{entity.StatusExecuting},
		repository.StatusUpdate{
			Status:      status,
			Result:      input.Result,
			Error:       input.Error,
			CompletedAt: &completedAt,
		},
	)
	if err != nil {
		if errors.Is(err, repository.ErrStatusConflict) {
			return nil, domainerrors.ErrResponseNotAllowed.WrapMessage("command is not executing")
		}
		if errors.Is(err, repository.ErrCommandNotFound) {
			return nil, domainerrors.ErrCommandNotFound
		}

		return nil, errors.Wrap(err, "failed to record command response")
	}

	cmd, err = srv.commandRepo.FindByID(ctx, commandID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to reload command")
	}

	srv.pusher.PushToDevice(cmd.SourceDeviceID, service.EventCommandUpdate, cmd)
	srv.publishTerminal(ctx, cmd)

	srv.log(ctx).Info("command resolved",
		slog.String("command_id", cmd.ID.String()),
		slog.String("status", string(cmd.Status)),
	)

	return cmd, nil
}

// History lists the user's commands, optionally narrowed by device or status.
func (srv *commandService) History(ctx context.Context, userID uuid.UUID, filter *usecase.HistoryFilter) (*usecase.CommandHistory, error) {
	var status entity.CommandStatus
	if filter.Status != "" {
		parsed, ok := entity.ParseCommandStatus(filter.Status)
		if !ok {
			return nil, domainerrors.ErrValidationFailed.WrapMessage("unknown status filter")
		}
		status = parsed
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	limit := filter.Limit
	if limit < 1 {
		limit = defaultHistoryLimit
	}
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}

	cmds, total, err := srv.commandRepo.List(ctx, repository.CommandFilter{
		UserID:   userID,
		DeviceID: filter.DeviceID,
		Status:   status,
		Page:     page,
		Limit:    limit,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to list commands")
	}

	return &usecase.CommandHistory{
		Commands: cmds,
		Total:    total,
		Page:     page,
		Limit:    limit,
	}, nil
}

// Cancel aborts a command that has not started executing. Once the target is
// executing, the outcome belongs to the target; cancellation is refused.
func (srv *commandService) Cancel(ctx context.Context, userID, commandID uuid.UUID) (*entity.Command, error) {
	cmd, err := srv.commandRepo.FindByUserAndID(ctx, userID, commandID)
	if err != nil {
		if errors.Is(err, repository.ErrCommandNotFound) {
			return nil, domainerrors.ErrCommandNotFound
		}

		return nil, errors.Wrap(err, "failed to find command")
	}

	completedAt := time.Now()
	err = srv.commandRepo.UpdateStatus(ctx, commandID,
		[]entity.CommandStatus{entity.StatusPending, entity.StatusQueued},
		repository.StatusUpdate{
			Status:      entity.StatusCancelled,
			CompletedAt: &completedAt,
		},
	)
	if err != nil {
		if errors.Is(err, repository.ErrStatusConflict) {
			return nil, domainerrors.ErrCancelNotAllowed
		}
		if errors.Is(err, repository.ErrCommandNotFound) {
			return nil, domainerrors.ErrCommandNotFound
		}

		return nil, errors.Wrap(err, "failed to cancel command")
	}

	cmd, err = srv.commandRepo.FindByUserAndID(ctx, userID, commandID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to reload command")
	}

	// A queued in-memory entry is dropped by the dispatcher on its next
	// authoritative re-read; nothing to unwind here.
	srv.pusher.PushToDevice(cmd.SourceDeviceID, service.EventCommandUpdate, cmd)
	srv.publishTerminal(ctx, cmd)

	srv.log(ctx).Info("command cancelled",
		slog.String("command_id", cmd.ID.String()),
	)

	return cmd, nil
}

// publishTerminal forwards a terminal lifecycle event to the publisher.
// Publishing is best effort and never fails the request.
func (srv *commandService) publishTerminal(ctx context.Context, cmd *entity.Command) {
	event := &service.CommandEvent{
		CommandID:      cmd.ID.String(),
		UserID:         cmd.UserID.String(),
		SourceDeviceID: cmd.SourceDeviceID,
		TargetDeviceID: cmd.TargetDeviceID,
		CommandType:    cmd.CommandType,
		Status:         string(cmd.Status),
		Error:          cmd.Error,
		OccurredAt:     time.Now(),
	}
	if err := srv.publisher.PublishCommandEvent(ctx, event); err != nil {
		srv.log(ctx).Error("failed to publish command event",
			slog.String("command_id", cmd.ID.String()),
			slog.Any("error", err),
		)
	}
}
