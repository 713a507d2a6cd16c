package impl

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"nydra/internal/domain/entity"
	domainerrors "nydra/internal/domain/errors"
	"nydra/internal/domain/repository"
	"nydra/internal/domain/service"
	mockRepo "nydra/internal/mocks/repository"
	mockService "nydra/internal/mocks/service"
	"nydra/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// commandServiceFixtures holds all test dependencies for command service tests.
type commandServiceFixtures struct {
	service     usecase.CommandUsecase
	commandRepo *mockRepo.MockCommandRepository
	deviceRepo  *mockRepo.MockDeviceRepository
	dispatcher  *mockService.MockCommandDispatcher
	pusher      *mockService.MockPusher
	publisher   *mockService.MockEventPublisher
}

func createTestCommandService(t *testing.T) commandServiceFixtures {
	commandRepo := mockRepo.NewMockCommandRepository(t)
	deviceRepo := mockRepo.NewMockDeviceRepository(t)
	dispatcher := mockService.NewMockCommandDispatcher(t)
	pusher := mockService.NewMockPusher(t)
	publisher := mockService.NewMockEventPublisher(t)

	svc := NewCommandService(CommandServiceParams{
		CommandRepo: commandRepo,
		DeviceRepo:  deviceRepo,
		Dispatcher:  dispatcher,
		Pusher:      pusher,
		Publisher:   publisher,
		Logger:      slog.Default(),
	})

	return commandServiceFixtures{
		service:     svc,
		commandRepo: commandRepo,
		deviceRepo:  deviceRepo,
		dispatcher:  dispatcher,
		pusher:      pusher,
		publisher:   publisher,
	}
}

func TestCommandService_Send_Success(t *testing.T) {
	fx := createTestCommandService(t)

	ctx := context.Background()
	userID := uuid.New()
	input := &usecase.SendCommandInput{
		TargetDeviceID: "desktop-home",
		CommandType:    "shell",
		Command:        "backup --full",
		Priority:       5,
	}

	fx.deviceRepo.EXPECT().
		FindByUserAndDeviceID(ctx, userID, "desktop-home").
		Return(&entity.Device{UserID: userID, DeviceID: "desktop-home"}, nil)

	fx.commandRepo.EXPECT().
		Create(ctx, mock.AnythingOfType("*entity.Command")).
		Return(nil)

	fx.dispatcher.EXPECT().
		Enqueue(ctx, mock.AnythingOfType("*entity.Command")).
		RunAndReturn(func(_ context.Context, cmd *entity.Command) error {
			cmd.Status = entity.StatusQueued

			return nil
		})

	cmd, err := fx.service.Send(ctx, userID, "phone-pixel", input)
	require.NoError(t, err)
	require.NotNil(t, cmd)
	assert.Equal(t, userID, cmd.UserID)
	assert.Equal(t, "phone-pixel", cmd.SourceDeviceID)
	assert.Equal(t, "desktop-home", cmd.TargetDeviceID)
	assert.Equal(t, entity.StatusQueued, cmd.Status)
	assert.Equal(t, 5, cmd.Priority)
	assert.NotEqual(t, uuid.Nil, cmd.ID)
	assert.False(t, cmd.ExecuteAt.IsZero())
}

func TestCommandService_Send_UnknownTarget(t *testing.T) {
	fx := createTestCommandService(t)

	ctx := context.Background()
	userID := uuid.New()
	input := &usecase.SendCommandInput{
		TargetDeviceID: "ghost-device",
		CommandType:    "shell",
		Command:        "ls",
	}

	// A device of another user looks exactly like a missing one.
	fx.deviceRepo.EXPECT().
		FindByUserAndDeviceID(ctx, userID, "ghost-device").
		Return(nil, repository.ErrDeviceNotFound)

	cmd, err := fx.service.Send(ctx, userID, "phone-pixel", input)
	require.Error(t, err)
	assert.Nil(t, cmd)
	assert.ErrorIs(t, err, domainerrors.ErrDeviceNotFound)
}

func TestCommandService_Send_EnqueueFailureReturnsTerminalRecord(t *testing.T) {
	fx := createTestCommandService(t)

	ctx := context.Background()
	userID := uuid.New()
	input := &usecase.SendCommandInput{
		TargetDeviceID: "desktop-home",
		CommandType:    "shell",
		Command:        "ls",
	}

	fx.deviceRepo.EXPECT().
		FindByUserAndDeviceID(ctx, userID, "desktop-home").
		Return(&entity.Device{UserID: userID, DeviceID: "desktop-home"}, nil)

	fx.commandRepo.EXPECT().
		Create(ctx, mock.AnythingOfType("*entity.Command")).
		Return(nil)

	fx.dispatcher.EXPECT().
		Enqueue(ctx, mock.AnythingOfType("*entity.Command")).
		Return(errors.New("store unavailable"))

	failed := &entity.Command{
		UserID: userID,
		Status: entity.StatusFailed,
		Error:  "failed to queue",
	}
	fx.commandRepo.EXPECT().
		FindByUserAndID(ctx, userID, mock.AnythingOfType("uuid.UUID")).
		Return(failed, nil)

	cmd, err := fx.service.Send(ctx, userID, "phone-pixel", input)
	require.NoError(t, err)
	require.NotNil(t, cmd)
	assert.Equal(t, entity.StatusFailed, cmd.Status)
}

func TestCommandService_Status_NotFound(t *testing.T) {
	fx := createTestCommandService(t)

	ctx := context.Background()
	userID := uuid.New()
	commandID := uuid.New()

	fx.commandRepo.EXPECT().
		FindByUserAndID(ctx, userID, commandID).
		Return(nil, repository.ErrCommandNotFound)

	cmd, err := fx.service.Status(ctx, userID, commandID)
	require.Error(t, err)
	assert.Nil(t, cmd)
	assert.ErrorIs(t, err, domainerrors.ErrCommandNotFound)
}

func TestCommandService_Respond_Completed(t *testing.T) {
	fx := createTestCommandService(t)

	ctx := context.Background()
	userID := uuid.New()
	commandID := uuid.New()
	claims := &service.DeviceClaims{UserID: userID, DeviceID: "desktop-home"}

	executing := &entity.Command{
		ID:             commandID,
		UserID:         userID,
		SourceDeviceID: "phone-pixel",
		TargetDeviceID: "desktop-home",
		Status:         entity.StatusExecuting,
	}
	resolved := &entity.Command{
		ID:             commandID,
		UserID:         userID,
		SourceDeviceID: "phone-pixel",
		TargetDeviceID: "desktop-home",
		Status:         entity.StatusCompleted,
		Result:         entity.Attrs{"exit_code": float64(0)},
	}

	fx.commandRepo.EXPECT().
		FindByID(ctx, commandID).
		Return(executing, nil).Once()

	fx.commandRepo.EXPECT().
		UpdateStatus(ctx, commandID,
			[]entity.CommandStatus{entity.StatusExecuting},
			mock.MatchedBy(func(update repository.StatusUpdate) bool {
				return update.Status == entity.StatusCompleted && update.CompletedAt != nil
			})).
		Return(nil)

	fx.commandRepo.EXPECT().
		FindByID(ctx, commandID).
		Return(resolved, nil).Once()

	fx.pusher.EXPECT().
		PushToDevice("phone-pixel", service.EventCommandUpdate, resolved).
		Return(true)

	fx.publisher.EXPECT().
		PublishCommandEvent(ctx, mock.AnythingOfType("*service.CommandEvent")).
		Return(nil)

	cmd, err := fx.service.Respond(ctx, claims, commandID, &usecase.RespondCommandInput{
		Status: "completed",
		Result: entity.Attrs{"exit_code": float64(0)},
	})
	require.NoError(t, err)
	assert.Equal(t, entity.StatusCompleted, cmd.Status)
}

func TestCommandService_Respond_WrongDevice(t *testing.T) {
	fx := createTestCommandService(t)

	ctx := context.Background()
	userID := uuid.New()
	commandID := uuid.New()
	claims := &service.DeviceClaims{UserID: userID, DeviceID: "phone-pixel"}

	fx.commandRepo.EXPECT().
		FindByID(ctx, commandID).
		Return(&entity.Command{
			ID:             commandID,
			UserID:         userID,
			TargetDeviceID: "desktop-home",
			Status:         entity.StatusExecuting,
		}, nil)

	cmd, err := fx.service.Respond(ctx, claims, commandID, &usecase.RespondCommandInput{Status: "completed"})
	require.Error(t, err)
	assert.Nil(t, cmd)
	assert.ErrorIs(t, err, domainerrors.ErrDeviceOwnershipViolation)
}

func TestCommandService_Respond_LateResponseConflicts(t *testing.T) {
	fx := createTestCommandService(t)

	ctx := context.Background()
	userID := uuid.New()
	commandID := uuid.New()
	claims := &service.DeviceClaims{UserID: userID, DeviceID: "desktop-home"}

	// The command was cancelled (or timed out) between delivery and the
	// device's answer; the conditional update reports the conflict.
	fx.commandRepo.EXPECT().
		FindByID(ctx, commandID).
		Return(&entity.Command{
			ID:             commandID,
			UserID:         userID,
			TargetDeviceID: "desktop-home",
			Status:         entity.StatusExecuting,
		}, nil)

	fx.commandRepo.EXPECT().
		UpdateStatus(ctx, commandID,
			[]entity.CommandStatus{entity.StatusExecuting},
			mock.AnythingOfType("repository.StatusUpdate")).
		Return(repository.ErrStatusConflict)

	cmd, err := fx.service.Respond(ctx, claims, commandID, &usecase.RespondCommandInput{Status: "failed", Error: "disk full"})
	require.Error(t, err)
	assert.Nil(t, cmd)
	assert.ErrorIs(t, err, domainerrors.ErrResponseNotAllowed)
}

func TestCommandService_History_NormalizesPaging(t *testing.T) {
	fx := createTestCommandService(t)

	ctx := context.Background()
	userID := uuid.New()

	fx.commandRepo.EXPECT().
		List(ctx, repository.CommandFilter{
			UserID: userID,
			Page:   1,
			Limit:  defaultHistoryLimit,
		}).
		Return([]*entity.Command{}, int64(0), nil)

	history, err := fx.service.History(ctx, userID, &usecase.HistoryFilter{Page: 0, Limit: 0})
	require.NoError(t, err)
	assert.Equal(t, 1, history.Page)
	assert.Equal(t, defaultHistoryLimit, history.Limit)
}

func TestCommandService_History_UnknownStatus(t *testing.T) {
	fx := createTestCommandService(t)

	history, err := fx.service.History(context.Background(), uuid.New(), &usecase.HistoryFilter{Status: "processing"})
	require.Error(t, err)
	assert.Nil(t, history)
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
}

func TestCommandService_Cancel_Success(t *testing.T) {
	fx := createTestCommandService(t)

	ctx := context.Background()
	userID := uuid.New()
	commandID := uuid.New()

	queued := &entity.Command{
		ID:             commandID,
		UserID:         userID,
		SourceDeviceID: "phone-pixel",
		Status:         entity.StatusQueued,
	}
	cancelled := &entity.Command{
		ID:             commandID,
		UserID:         userID,
		SourceDeviceID: "phone-pixel",
		Status:         entity.StatusCancelled,
	}

	fx.commandRepo.EXPECT().
		FindByUserAndID(ctx, userID, commandID).
		Return(queued, nil).Once()

	fx.commandRepo.EXPECT().
		UpdateStatus(ctx, commandID,
			[]entity.CommandStatus{entity.StatusPending, entity.StatusQueued},
			mock.MatchedBy(func(update repository.StatusUpdate) bool {
				return update.Status == entity.StatusCancelled
			})).
		Return(nil)

	fx.commandRepo.EXPECT().
		FindByUserAndID(ctx, userID, commandID).
		Return(cancelled, nil).Once()

	fx.pusher.EXPECT().
		PushToDevice("phone-pixel", service.EventCommandUpdate, cancelled).
		Return(true)

	fx.publisher.EXPECT().
		PublishCommandEvent(ctx, mock.AnythingOfType("*service.CommandEvent")).
		Return(nil)

	cmd, err := fx.service.Cancel(ctx, userID, commandID)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusCancelled, cmd.Status)
}

func TestCommandService_Cancel_ExecutingRefused(t *testing.T) {
	fx := createTestCommandService(t)

	ctx := context.Background()
	userID := uuid.New()
	commandID := uuid.New()
	startedAt := time.Now()

	fx.commandRepo.EXPECT().
		FindByUserAndID(ctx, userID, commandID).
		Return(&entity.Command{
			ID:        commandID,
			UserID:    userID,
			Status:    entity.StatusExecuting,
			StartedAt: &startedAt,
		}, nil)

	fx.commandRepo.EXPECT().
		UpdateStatus(ctx, commandID,
			[]entity.CommandStatus{entity.StatusPending, entity.StatusQueued},
			mock.AnythingOfType("repository.StatusUpdate")).
		Return(repository.ErrStatusConflict)

	cmd, err := fx.service.Cancel(ctx, userID, commandID)
	require.Error(t, err)
	assert.Nil(t, cmd)
	assert.ErrorIs(t, err, domainerrors.ErrCancelNotAllowed)
}
