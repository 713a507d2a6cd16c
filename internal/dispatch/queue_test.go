package dispatch

import (
	"context"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"nydra/config"
	"nydra/internal/domain/entity"
	"nydra/internal/domain/repository"
	"nydra/internal/domain/service"
	"nydra/internal/infra/metrics"
	mockRepo "nydra/internal/mocks/repository"
	mockService "nydra/internal/mocks/service"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// queueFixtures holds all test dependencies for dispatch queue tests.
type queueFixtures struct {
	queue       *Queue
	commandRepo *mockRepo.MockCommandRepository
	deviceRepo  *mockRepo.MockDeviceRepository
	pusher      *mockService.MockPusher
	publisher   *mockService.MockEventPublisher
}

func createTestQueue(t *testing.T, dispatch config.DispatchConfig) queueFixtures {
	commandRepo := mockRepo.NewMockCommandRepository(t)
	deviceRepo := mockRepo.NewMockDeviceRepository(t)
	pusher := mockService.NewMockPusher(t)
	publisher := mockService.NewMockEventPublisher(t)

	q := New(Params{
		Config:      &config.Config{Dispatch: dispatch},
		Logger:      slog.Default(),
		CommandRepo: commandRepo,
		DeviceRepo:  deviceRepo,
		Pusher:      pusher,
		Publisher:   publisher,
		Metrics:     metrics.NewDispatchMetrics(prometheus.NewRegistry()),
	})
	t.Cleanup(q.Stop)

	return queueFixtures{
		queue:       q,
		commandRepo: commandRepo,
		deviceRepo:  deviceRepo,
		pusher:      pusher,
		publisher:   publisher,
	}
}

func fastDispatchConfig() config.DispatchConfig {
	return config.DispatchConfig{
		PollInterval:     10 * time.Millisecond,
		MaxPendingAge:    time.Hour,
		ExecutionTimeout: time.Hour,
	}
}

func queuedCommand(targetDeviceID string) *entity.Command {
	now := time.Now()

	return &entity.Command{
		ID:             uuid.New(),
		UserID:         uuid.New(),
		SourceDeviceID: "phone-src",
		TargetDeviceID: targetDeviceID,
		CommandType:    "shell",
		Command:        "backup --full",
		Status:         entity.StatusQueued,
		ExecuteAt:      now,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

func waitForSignal(t *testing.T, ch <-chan struct{}, msg string) {
	t.Helper()

	select {
	case <-ch:
	case <-time.After(2 * time.Second):
		t.Fatal(msg)
	}
}

func TestQueue_Enqueue_DispatchesOnlineTarget(t *testing.T) {
	fx := createTestQueue(t, fastDispatchConfig())

	cmd := queuedCommand("desktop-home")
	cmd.Status = entity.StatusPending
	dispatched := make(chan struct{})

	fx.commandRepo.EXPECT().
		UpdateStatus(mock.Anything, cmd.ID,
			[]entity.CommandStatus{entity.StatusPending, entity.StatusQueued},
			repository.StatusUpdate{Status: entity.StatusQueued}).
		Return(nil).Once()
	fx.pusher.EXPECT().IsDeviceOnline("desktop-home").Return(true).Maybe()
	fx.commandRepo.EXPECT().
		FindByID(mock.Anything, cmd.ID).
		RunAndReturn(func(context.Context, uuid.UUID) (*entity.Command, error) {
			queued := *cmd
			queued.Status = entity.StatusQueued

			return &queued, nil
		}).Once()
	fx.pusher.EXPECT().
		PushToDevice("desktop-home", service.EventExecuteCommand, mock.Anything).
		Return(true).Once()
	fx.commandRepo.EXPECT().
		UpdateStatus(mock.Anything, cmd.ID, []entity.CommandStatus{entity.StatusQueued},
			mock.MatchedBy(func(u repository.StatusUpdate) bool {
				return u.Status == entity.StatusExecuting && u.StartedAt != nil
			})).
		Return(nil).Once()
	fx.pusher.EXPECT().
		PushToDevice("phone-src", service.EventCommandUpdate, mock.Anything).
		RunAndReturn(func(string, string, interface{}) bool {
			close(dispatched)

			return true
		}).Once()

	require.NoError(t, fx.queue.Enqueue(context.Background(), cmd))
	assert.Equal(t, entity.StatusQueued, cmd.Status)

	waitForSignal(t, dispatched, "command was never dispatched")
}

func TestQueue_Enqueue_FutureExecuteAtNotDispatchedEarly(t *testing.T) {
	fx := createTestQueue(t, fastDispatchConfig())

	cmd := queuedCommand("desktop-home")
	cmd.ExecuteAt = time.Now().Add(time.Hour)

	fx.commandRepo.EXPECT().
		UpdateStatus(mock.Anything, cmd.ID,
			[]entity.CommandStatus{entity.StatusPending, entity.StatusQueued},
			repository.StatusUpdate{Status: entity.StatusQueued}).
		Return(nil).Once()
	fx.pusher.EXPECT().IsDeviceOnline("desktop-home").Return(true).Maybe()

	require.NoError(t, fx.queue.Enqueue(context.Background(), cmd))

	// No FindByID or PushToDevice expectation is registered; any early
	// dispatch attempt fails the test through the mock.
	time.Sleep(100 * time.Millisecond)
}

func TestQueue_OfflineTargetDefersUntilOnline(t *testing.T) {
	cfg := fastDispatchConfig()
	cfg.PollInterval = time.Hour
	fx := createTestQueue(t, cfg)

	cmd := queuedCommand("desktop-home")
	var online atomic.Bool
	dispatched := make(chan struct{})

	fx.commandRepo.EXPECT().
		UpdateStatus(mock.Anything, cmd.ID,
			[]entity.CommandStatus{entity.StatusPending, entity.StatusQueued},
			repository.StatusUpdate{Status: entity.StatusQueued}).
		Return(nil).Once()
	fx.pusher.EXPECT().
		IsDeviceOnline("desktop-home").
		RunAndReturn(func(string) bool { return online.Load() })
	fx.commandRepo.EXPECT().FindByID(mock.Anything, cmd.ID).Return(cmd, nil).Once()
	fx.pusher.EXPECT().
		PushToDevice("desktop-home", service.EventExecuteCommand, mock.Anything).
		Return(true).Once()
	fx.commandRepo.EXPECT().
		UpdateStatus(mock.Anything, cmd.ID, []entity.CommandStatus{entity.StatusQueued},
			mock.MatchedBy(func(u repository.StatusUpdate) bool {
				return u.Status == entity.StatusExecuting
			})).
		Return(nil).Once()
	fx.pusher.EXPECT().
		PushToDevice("phone-src", service.EventCommandUpdate, mock.Anything).
		RunAndReturn(func(string, string, interface{}) bool {
			close(dispatched)

			return true
		}).Once()

	require.NoError(t, fx.queue.Enqueue(context.Background(), cmd))

	// Give the worker time to defer the offline entry before flipping.
	time.Sleep(50 * time.Millisecond)
	select {
	case <-dispatched:
		t.Fatal("command dispatched while the target was offline")
	default:
	}

	online.Store(true)
	fx.queue.NotifyDeviceOnline("desktop-home")

	waitForSignal(t, dispatched, "command was never dispatched after the device came online")
}

func TestQueue_CancelledCommandDroppedWithoutPush(t *testing.T) {
	fx := createTestQueue(t, fastDispatchConfig())

	cmd := queuedCommand("desktop-home")
	loaded := make(chan struct{})

	fx.commandRepo.EXPECT().
		UpdateStatus(mock.Anything, cmd.ID,
			[]entity.CommandStatus{entity.StatusPending, entity.StatusQueued},
			repository.StatusUpdate{Status: entity.StatusQueued}).
		Return(nil).Once()
	fx.pusher.EXPECT().IsDeviceOnline("desktop-home").Return(true).Maybe()
	fx.commandRepo.EXPECT().
		FindByID(mock.Anything, cmd.ID).
		RunAndReturn(func(context.Context, uuid.UUID) (*entity.Command, error) {
			cancelled := *cmd
			cancelled.Status = entity.StatusCancelled
			close(loaded)

			return &cancelled, nil
		}).Once()

	require.NoError(t, fx.queue.Enqueue(context.Background(), cmd))

	waitForSignal(t, loaded, "command row was never re-read")
	// Any delivery after the cancelled re-read would hit an unregistered
	// PushToDevice expectation and fail the test.
	time.Sleep(50 * time.Millisecond)
}

func TestQueue_UnreachableTargetExpires(t *testing.T) {
	cfg := fastDispatchConfig()
	cfg.MaxPendingAge = 10 * time.Millisecond
	fx := createTestQueue(t, cfg)

	cmd := queuedCommand("desktop-gone")
	cmd.ExecuteAt = time.Now().Add(-time.Minute)
	published := make(chan struct{})

	fx.commandRepo.EXPECT().
		UpdateStatus(mock.Anything, cmd.ID,
			[]entity.CommandStatus{entity.StatusPending, entity.StatusQueued},
			repository.StatusUpdate{Status: entity.StatusQueued}).
		Return(nil).Once()
	fx.pusher.EXPECT().IsDeviceOnline("desktop-gone").Return(false).Maybe()
	fx.commandRepo.EXPECT().
		UpdateStatus(mock.Anything, cmd.ID,
			[]entity.CommandStatus{entity.StatusPending, entity.StatusQueued, entity.StatusExecuting},
			mock.MatchedBy(func(u repository.StatusUpdate) bool {
				return u.Status == entity.StatusFailed && u.Error == "target device unreachable"
			})).
		Return(nil).Once()
	fx.pusher.EXPECT().
		PushToDevice("phone-src", service.EventCommandUpdate, mock.Anything).
		Return(true).Once()
	fx.publisher.EXPECT().
		PublishCommandEvent(mock.Anything, mock.MatchedBy(func(event *service.CommandEvent) bool {
			return event.CommandID == cmd.ID.String() && event.Status == string(entity.StatusFailed)
		})).
		RunAndReturn(func(context.Context, *service.CommandEvent) error {
			close(published)

			return nil
		}).Once()

	require.NoError(t, fx.queue.Enqueue(context.Background(), cmd))

	waitForSignal(t, published, "expired command was never failed")
}

func TestQueue_FailingEntryDoesNotHaltLoop(t *testing.T) {
	fx := createTestQueue(t, fastDispatchConfig())

	broken := queuedCommand("desktop-home")
	broken.Priority = 9
	healthy := queuedCommand("desktop-home")
	healthy.SourceDeviceID = "tablet-src"
	dispatched := make(chan struct{})

	fx.commandRepo.EXPECT().
		UpdateStatus(mock.Anything, mock.AnythingOfType("uuid.UUID"),
			[]entity.CommandStatus{entity.StatusPending, entity.StatusQueued},
			repository.StatusUpdate{Status: entity.StatusQueued}).
		Return(nil).Twice()
	fx.pusher.EXPECT().IsDeviceOnline("desktop-home").Return(true).Maybe()

	// The higher-priority command blows up on the re-read and is failed.
	fx.commandRepo.EXPECT().
		FindByID(mock.Anything, broken.ID).
		Return(nil, errors.New("connection reset")).Once()
	fx.commandRepo.EXPECT().
		UpdateStatus(mock.Anything, broken.ID,
			[]entity.CommandStatus{entity.StatusPending, entity.StatusQueued, entity.StatusExecuting},
			mock.MatchedBy(func(u repository.StatusUpdate) bool {
				return u.Status == entity.StatusFailed
			})).
		Return(nil).Once()
	fx.pusher.EXPECT().
		PushToDevice("phone-src", service.EventCommandUpdate, mock.Anything).
		Return(true).Once()
	fx.publisher.EXPECT().
		PublishCommandEvent(mock.Anything, mock.Anything).
		Return(nil).Once()

	// The second command still goes out.
	fx.commandRepo.EXPECT().FindByID(mock.Anything, healthy.ID).Return(healthy, nil).Once()
	fx.pusher.EXPECT().
		PushToDevice("desktop-home", service.EventExecuteCommand, mock.Anything).
		Return(true).Once()
	fx.commandRepo.EXPECT().
		UpdateStatus(mock.Anything, healthy.ID, []entity.CommandStatus{entity.StatusQueued},
			mock.MatchedBy(func(u repository.StatusUpdate) bool {
				return u.Status == entity.StatusExecuting
			})).
		Return(nil).Once()
	fx.pusher.EXPECT().
		PushToDevice("tablet-src", service.EventCommandUpdate, mock.Anything).
		RunAndReturn(func(string, string, interface{}) bool {
			close(dispatched)

			return true
		}).Once()

	require.NoError(t, fx.queue.Enqueue(context.Background(), broken))
	require.NoError(t, fx.queue.Enqueue(context.Background(), healthy))

	waitForSignal(t, dispatched, "queue stalled after a failing entry")
}

func TestQueue_ExecutingMarkFailureForcesFailed(t *testing.T) {
	fx := createTestQueue(t, fastDispatchConfig())

	cmd := queuedCommand("desktop-home")
	published := make(chan struct{})

	fx.commandRepo.EXPECT().
		UpdateStatus(mock.Anything, cmd.ID,
			[]entity.CommandStatus{entity.StatusPending, entity.StatusQueued},
			repository.StatusUpdate{Status: entity.StatusQueued}).
		Return(nil).Once()
	fx.pusher.EXPECT().IsDeviceOnline("desktop-home").Return(true).Maybe()
	fx.commandRepo.EXPECT().FindByID(mock.Anything, cmd.ID).Return(cmd, nil).Once()
	fx.pusher.EXPECT().
		PushToDevice("desktop-home", service.EventExecuteCommand, mock.Anything).
		Return(true).Once()

	// The store refuses to record the executing transition; the command must
	// not stay queued with its entry gone.
	fx.commandRepo.EXPECT().
		UpdateStatus(mock.Anything, cmd.ID, []entity.CommandStatus{entity.StatusQueued},
			mock.MatchedBy(func(u repository.StatusUpdate) bool {
				return u.Status == entity.StatusExecuting
			})).
		Return(errors.New("connection reset")).Once()
	fx.commandRepo.EXPECT().
		UpdateStatus(mock.Anything, cmd.ID,
			[]entity.CommandStatus{entity.StatusPending, entity.StatusQueued, entity.StatusExecuting},
			mock.MatchedBy(func(u repository.StatusUpdate) bool {
				return u.Status == entity.StatusFailed && u.Error == "connection reset"
			})).
		Return(nil).Once()
	fx.pusher.EXPECT().
		PushToDevice("phone-src", service.EventCommandUpdate, mock.Anything).
		Return(true).Once()
	fx.publisher.EXPECT().
		PublishCommandEvent(mock.Anything, mock.MatchedBy(func(event *service.CommandEvent) bool {
			return event.CommandID == cmd.ID.String() && event.Status == string(entity.StatusFailed)
		})).
		RunAndReturn(func(context.Context, *service.CommandEvent) error {
			close(published)

			return nil
		}).Once()

	require.NoError(t, fx.queue.Enqueue(context.Background(), cmd))

	waitForSignal(t, published, "command was never forced to failed")
}

func TestQueue_BouncedPushWaitsBeforeRetry(t *testing.T) {
	fx := createTestQueue(t, fastDispatchConfig())

	cmd := queuedCommand("desktop-home")
	dispatched := make(chan struct{})

	fx.commandRepo.EXPECT().
		UpdateStatus(mock.Anything, cmd.ID,
			[]entity.CommandStatus{entity.StatusPending, entity.StatusQueued},
			repository.StatusUpdate{Status: entity.StatusQueued}).
		Return(nil).Once()
	fx.pusher.EXPECT().IsDeviceOnline("desktop-home").Return(true).Maybe()

	// The .Twice() bound is the assertion: a worker that retries a bounced
	// push without waiting re-reads the row far more often than that.
	fx.commandRepo.EXPECT().FindByID(mock.Anything, cmd.ID).Return(cmd, nil).Twice()
	fx.pusher.EXPECT().
		PushToDevice("desktop-home", service.EventExecuteCommand, mock.Anything).
		Return(false).Once()
	fx.pusher.EXPECT().
		PushToDevice("desktop-home", service.EventExecuteCommand, mock.Anything).
		Return(true).Once()
	fx.commandRepo.EXPECT().
		UpdateStatus(mock.Anything, cmd.ID, []entity.CommandStatus{entity.StatusQueued},
			mock.MatchedBy(func(u repository.StatusUpdate) bool {
				return u.Status == entity.StatusExecuting
			})).
		Return(nil).Once()
	fx.pusher.EXPECT().
		PushToDevice("phone-src", service.EventCommandUpdate, mock.Anything).
		RunAndReturn(func(string, string, interface{}) bool {
			close(dispatched)

			return true
		}).Once()

	require.NoError(t, fx.queue.Enqueue(context.Background(), cmd))

	waitForSignal(t, dispatched, "command was never dispatched after the bounced push")
}

func TestQueue_Rehydrate_ReschedulesQueuedCommands(t *testing.T) {
	fx := createTestQueue(t, fastDispatchConfig())

	first := queuedCommand("desktop-home")
	second := queuedCommand("desktop-home")
	dispatched := make(chan struct{}, 2)

	fx.commandRepo.EXPECT().
		FindByStatus(mock.Anything, entity.StatusQueued).
		Return([]*entity.Command{first, second}, nil).Once()
	fx.pusher.EXPECT().IsDeviceOnline("desktop-home").Return(true).Maybe()
	fx.commandRepo.EXPECT().FindByID(mock.Anything, first.ID).Return(first, nil).Once()
	fx.commandRepo.EXPECT().FindByID(mock.Anything, second.ID).Return(second, nil).Once()
	fx.pusher.EXPECT().
		PushToDevice("desktop-home", service.EventExecuteCommand, mock.Anything).
		Return(true).Twice()
	fx.commandRepo.EXPECT().
		UpdateStatus(mock.Anything, mock.AnythingOfType("uuid.UUID"),
			[]entity.CommandStatus{entity.StatusQueued},
			mock.MatchedBy(func(u repository.StatusUpdate) bool {
				return u.Status == entity.StatusExecuting
			})).
		Return(nil).Twice()
	fx.pusher.EXPECT().
		PushToDevice("phone-src", service.EventCommandUpdate, mock.Anything).
		RunAndReturn(func(string, string, interface{}) bool {
			dispatched <- struct{}{}

			return true
		}).Twice()

	require.NoError(t, fx.queue.Rehydrate(context.Background()))

	waitForSignal(t, dispatched, "first rehydrated command never dispatched")
	waitForSignal(t, dispatched, "second rehydrated command never dispatched")
}

func TestQueue_Rehydrate_EmptyStore(t *testing.T) {
	fx := createTestQueue(t, fastDispatchConfig())

	fx.commandRepo.EXPECT().
		FindByStatus(mock.Anything, entity.StatusQueued).
		Return(nil, nil).Once()

	require.NoError(t, fx.queue.Rehydrate(context.Background()))

	fx.queue.mu.Lock()
	defer fx.queue.mu.Unlock()
	assert.False(t, fx.queue.running, "worker must stay idle with nothing queued")
}

func TestQueue_NotifyDeviceOnline_EmptyQueueStaysIdle(t *testing.T) {
	fx := createTestQueue(t, fastDispatchConfig())

	fx.queue.NotifyDeviceOnline("desktop-home")

	fx.queue.mu.Lock()
	defer fx.queue.mu.Unlock()
	assert.False(t, fx.queue.running)
}

func TestQueue_ReapTimedOut_FailsOverdueExecutions(t *testing.T) {
	cfg := fastDispatchConfig()
	cfg.ExecutionTimeout = time.Minute
	fx := createTestQueue(t, cfg)

	cmd := queuedCommand("desktop-home")
	cmd.Status = entity.StatusExecuting
	started := time.Now().Add(-2 * time.Minute)
	cmd.StartedAt = &started

	fx.commandRepo.EXPECT().
		FindExecutingBefore(mock.Anything, mock.AnythingOfType("time.Time")).
		Return([]*entity.Command{cmd}, nil).Once()
	fx.commandRepo.EXPECT().
		UpdateStatus(mock.Anything, cmd.ID, []entity.CommandStatus{entity.StatusExecuting},
			mock.MatchedBy(func(u repository.StatusUpdate) bool {
				return u.Status == entity.StatusFailed && u.Error == "execution timeout" && u.CompletedAt != nil
			})).
		Return(nil).Once()
	fx.pusher.EXPECT().
		PushToDevice("phone-src", service.EventCommandUpdate, mock.Anything).
		Return(true).Once()
	fx.publisher.EXPECT().
		PublishCommandEvent(mock.Anything, mock.MatchedBy(func(event *service.CommandEvent) bool {
			return event.Status == string(entity.StatusFailed) && event.Error == "execution timeout"
		})).
		Return(nil).Once()

	fx.queue.reapTimedOut()
}

func TestQueue_ReapTimedOut_RespondWinsRace(t *testing.T) {
	fx := createTestQueue(t, fastDispatchConfig())

	cmd := queuedCommand("desktop-home")
	cmd.Status = entity.StatusExecuting

	fx.commandRepo.EXPECT().
		FindExecutingBefore(mock.Anything, mock.AnythingOfType("time.Time")).
		Return([]*entity.Command{cmd}, nil).Once()
	fx.commandRepo.EXPECT().
		UpdateStatus(mock.Anything, cmd.ID, []entity.CommandStatus{entity.StatusExecuting}, mock.Anything).
		Return(repository.ErrStatusConflict).Once()

	// The conflicting update means a respond already resolved the command;
	// no failure push or event may follow.
	fx.queue.reapTimedOut()
}
