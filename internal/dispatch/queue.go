// Package dispatch implements the in-memory command dispatch queue. The queue
// decides when a queued command is handed to its target device: a command is
// served once it is due and the target has a live connection, in priority
// order. A single lazy worker drains the queue and goes idle when nothing is
// waiting.
package dispatch

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"

	"nydra/config"
	"nydra/internal/domain/entity"
	"nydra/internal/domain/repository"
	"nydra/internal/domain/service"
	"nydra/internal/errors"
	"nydra/internal/infra/metrics"

	"github.com/google/uuid"
	"go.uber.org/fx"
)

// Failure texts recorded on commands the queue gives up on.
const (
	failureEnqueue     = "failed to queue"
	failureUnreachable = "target device unreachable"
	failureTimeout     = "execution timeout"
)

// entry is the in-memory scheduling record for one queued command. The
// command row in the store stays authoritative; the entry only carries what
// ordering and deferral need.
type entry struct {
	commandID      uuid.UUID
	targetDeviceID string
	sourceDeviceID string
	userID         uuid.UUID
	priority       int
	executeAt      time.Time
	enqueuedAt     time.Time
	seq            uint64
	attempts       int
}

// Queue is the dispatch queue. It implements service.CommandDispatcher.
type Queue struct {
	commandRepo repository.CommandRepository
	deviceRepo  repository.DeviceRepository
	pusher      service.Pusher
	notifier    service.NotificationService
	publisher   service.EventPublisher
	metrics     *metrics.DispatchMetrics
	logger      *slog.Logger

	pollInterval     time.Duration
	maxPendingAge    time.Duration
	executionTimeout time.Duration

	mu      sync.Mutex
	entries []*entry
	seq     uint64
	running bool

	// wake is buffered so notifications never block the caller; a single
	// pending signal is enough to force a fresh pass.
	wake chan struct{}

	baseCtx context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

// Params holds the queue's dependencies, injected by Fx.
type Params struct {
	fx.In

	Config      *config.Config
	Logger      *slog.Logger
	CommandRepo repository.CommandRepository
	DeviceRepo  repository.DeviceRepository
	Pusher      service.Pusher
	Notifier    service.NotificationService `optional:"true"`
	Publisher   service.EventPublisher
	Metrics     *metrics.DispatchMetrics
}

// New constructs the dispatch queue.
func New(params Params) *Queue {
	ctx, cancel := context.WithCancel(context.Background())

	return &Queue{
		commandRepo:      params.CommandRepo,
		deviceRepo:       params.DeviceRepo,
		pusher:           params.Pusher,
		notifier:         params.Notifier,
		publisher:        params.Publisher,
		metrics:          params.Metrics,
		logger:           params.Logger,
		pollInterval:     params.Config.Dispatch.PollInterval,
		maxPendingAge:    params.Config.Dispatch.MaxPendingAge,
		executionTimeout: params.Config.Dispatch.ExecutionTimeout,
		wake:             make(chan struct{}, 1),
		baseCtx:          ctx,
		cancel:           cancel,
	}
}

// Enqueue transitions a pending command to queued and schedules it. When the
// store update fails the command is forced to failed so the sender can see a
// terminal status instead of a command stuck in pending.
func (q *Queue) Enqueue(ctx context.Context, cmd *entity.Command) error {
	err := q.commandRepo.UpdateStatus(ctx, cmd.ID,
		[]entity.CommandStatus{entity.StatusPending, entity.StatusQueued},
		repository.StatusUpdate{Status: entity.StatusQueued},
	)
	if err != nil {
		q.logger.Error("failed to queue command",
			slog.String("command_id", cmd.ID.String()),
			slog.Any("error", err),
		)
		q.failCommand(ctx, cmd.ID, cmd, nil, failureEnqueue, metrics.FailureReasonEnqueue)

		return errors.Wrap(err, "enqueue command")
	}
	cmd.Status = entity.StatusQueued

	q.mu.Lock()
	q.seq++
	q.entries = append(q.entries, &entry{
		commandID:      cmd.ID,
		targetDeviceID: cmd.TargetDeviceID,
		sourceDeviceID: cmd.SourceDeviceID,
		userID:         cmd.UserID,
		priority:       cmd.Priority,
		executeAt:      cmd.ExecuteAt,
		enqueuedAt:     time.Now(),
		seq:            q.seq,
	})
	q.metrics.SetQueueDepth(len(q.entries))
	q.startWorkerLocked()
	q.mu.Unlock()

	q.metrics.IncEnqueued()
	q.notifyWake()

	// The target may be asleep with no live connection. A data-only push
	// asks the platform to wake the app so it reconnects.
	if !q.pusher.IsDeviceOnline(cmd.TargetDeviceID) {
		q.sendWakeUpPush(cmd)
	}

	return nil
}

// NotifyDeviceOnline wakes the worker when a device gains a live connection,
// so commands deferred for that device are re-checked immediately.
func (q *Queue) NotifyDeviceOnline(deviceID string) {
	q.mu.Lock()
	hasWork := len(q.entries) > 0
	if hasWork {
		q.startWorkerLocked()
	}
	q.mu.Unlock()

	if hasWork {
		q.notifyWake()
	}
}

// Rehydrate reloads queued commands from the store after a restart. Entries
// are rebuilt from the authoritative rows, so nothing queued before the
// restart is lost.
func (q *Queue) Rehydrate(ctx context.Context) error {
	cmds, err := q.commandRepo.FindByStatus(ctx, entity.StatusQueued)
	if err != nil {
		return errors.Wrap(err, "rehydrate dispatch queue")
	}
	if len(cmds) == 0 {
		return nil
	}

	q.mu.Lock()
	for _, cmd := range cmds {
		q.seq++
		q.entries = append(q.entries, &entry{
			commandID:      cmd.ID,
			targetDeviceID: cmd.TargetDeviceID,
			sourceDeviceID: cmd.SourceDeviceID,
			userID:         cmd.UserID,
			priority:       cmd.Priority,
			executeAt:      cmd.ExecuteAt,
			enqueuedAt:     time.Now(),
			seq:            q.seq,
		})
	}
	q.metrics.SetQueueDepth(len(q.entries))
	q.startWorkerLocked()
	q.mu.Unlock()

	q.logger.Info("dispatch queue rehydrated", slog.Int("commands", len(cmds)))
	q.notifyWake()

	return nil
}

// Start launches the execution timeout reaper. The dispatch worker itself is
// lazy and starts on demand.
func (q *Queue) Start() {
	q.wg.Add(1)
	go q.reaperLoop()
}

// Stop shuts down the worker and the reaper and waits for them to exit.
func (q *Queue) Stop() {
	q.cancel()
	q.wg.Wait()
}

// notifyWake posts a wake signal without blocking.
func (q *Queue) notifyWake() {
	select {
	case q.wake <- struct{}{}:
	default:
	}
}

// startWorkerLocked launches the worker goroutine if it is not running.
// Callers must hold q.mu.
func (q *Queue) startWorkerLocked() {
	if q.running {
		return
	}
	q.running = true
	q.wg.Add(1)
	go q.workerLoop()
}

// workerLoop drains the queue. Each pass serves every entry that is due and
// whose target has a live connection, then sleeps until the next executeAt,
// the poll interval, or a wake signal, whichever comes first. The loop exits
// when the queue drains so an idle process burns no cycles.
func (q *Queue) workerLoop() {
	defer q.wg.Done()

	for {
		ready, wait, empty := q.collectReady()

		served := false
		for _, e := range ready {
			if q.process(e) {
				served = true
			}
		}

		if empty && len(ready) == 0 {
			q.mu.Lock()
			// Re-check under the lock; an Enqueue may have landed between
			// the snapshot and here.
			if len(q.entries) == 0 {
				q.running = false
				q.mu.Unlock()

				return
			}
			q.mu.Unlock()

			continue
		}
		if served {
			// Served something; go straight into the next pass in case more
			// entries became ready meanwhile. Passes that only re-deferred
			// their entries (every push bounced) fall through to the wait,
			// so a stalled connection cannot spin the loop.
			continue
		}

		select {
		case <-q.baseCtx.Done():
			q.mu.Lock()
			q.running = false
			q.mu.Unlock()

			return
		case <-q.wake:
		case <-time.After(wait):
		}
	}
}

// collectReady takes one scheduling pass under the lock: expired entries are
// failed, ready entries are removed and returned for processing, deferred
// entries stay put. It also reports how long the worker may sleep before the
// earliest deferred entry becomes due.
func (q *Queue) collectReady() (ready []*entry, wait time.Duration, empty bool) {
	now := time.Now()
	wait = q.pollInterval

	q.mu.Lock()
	defer func() {
		q.metrics.SetQueueDepth(len(q.entries))
		q.mu.Unlock()
	}()

	if len(q.entries) == 0 {
		return nil, wait, true
	}

	// Higher priority first, then earlier executeAt, then arrival order.
	sort.SliceStable(q.entries, func(i, j int) bool {
		a, b := q.entries[i], q.entries[j]
		if a.priority != b.priority {
			return a.priority > b.priority
		}
		if !a.executeAt.Equal(b.executeAt) {
			return a.executeAt.Before(b.executeAt)
		}

		return a.seq < b.seq
	})

	var expired []*entry
	remaining := q.entries[:0]
	for _, e := range q.entries {
		switch {
		case now.Sub(e.executeAt) > q.maxPendingAge:
			expired = append(expired, e)
		case now.Before(e.executeAt):
			if due := e.executeAt.Sub(now); due < wait {
				wait = due
			}
			remaining = append(remaining, e)
		case q.pusher.IsDeviceOnline(e.targetDeviceID):
			ready = append(ready, e)
		default:
			e.attempts++
			q.metrics.IncDeferred()
			remaining = append(remaining, e)
		}
	}
	q.entries = remaining

	// Expired entries are failed outside the scheduling decision but still
	// inside this pass, so the queue depth reflects them immediately.
	for _, e := range expired {
		go q.expireEntry(e)
	}

	return ready, wait, len(q.entries) == 0
}

// process hands one ready entry to its target. The command row is re-read
// first so a cancellation that won the race is honored silently. It reports
// whether the entry was resolved this pass; false means it was re-deferred
// and the worker should wait before retrying.
func (q *Queue) process(e *entry) bool {
	ctx, cancelCtx := context.WithTimeout(q.baseCtx, 10*time.Second)
	defer cancelCtx()

	cmd, err := q.commandRepo.FindByID(ctx, e.commandID)
	if err != nil {
		if errors.Is(err, repository.ErrCommandNotFound) {
			return true
		}
		q.logger.Error("failed to load command for dispatch",
			slog.String("command_id", e.commandID.String()),
			slog.Any("error", err),
		)
		q.failCommand(ctx, e.commandID, nil, e, err.Error(), metrics.FailureReasonRejected)

		return true
	}
	if cmd.Status != entity.StatusQueued {
		// Cancelled or already resolved elsewhere; drop without delivery.
		return true
	}

	delivered := q.pusher.PushToDevice(e.targetDeviceID, service.EventExecuteCommand, cmd)
	if !delivered {
		// The connection dropped or stalled between the presence check and
		// the push. Put the entry back; the next online notification or
		// poll tick retries it.
		q.mu.Lock()
		e.attempts++
		q.entries = append(q.entries, e)
		q.metrics.SetQueueDepth(len(q.entries))
		q.mu.Unlock()
		q.metrics.IncDeferred()

		return false
	}

	startedAt := time.Now()
	err = q.commandRepo.UpdateStatus(ctx, cmd.ID,
		[]entity.CommandStatus{entity.StatusQueued},
		repository.StatusUpdate{Status: entity.StatusExecuting, StartedAt: &startedAt},
	)
	if err != nil {
		if errors.Is(err, repository.ErrStatusConflict) || errors.Is(err, repository.ErrCommandNotFound) {
			// A concurrent cancel won the row. The target will report a
			// state conflict if it still responds.
			return true
		}
		// The push went out but the store would not record it. Leaving the
		// row queued with no entry would wedge it, so force it failed.
		q.logger.Error("failed to mark command executing",
			slog.String("command_id", cmd.ID.String()),
			slog.Any("error", err),
		)
		q.failCommand(ctx, cmd.ID, cmd, e, err.Error(), metrics.FailureReasonRejected)

		return true
	}

	q.metrics.ObserveDelivered(time.Since(e.enqueuedAt))
	q.pusher.PushToDevice(e.sourceDeviceID, service.EventCommandUpdate, map[string]any{
		"command_id": cmd.ID.String(),
		"status":     string(entity.StatusExecuting),
	})

	q.logger.Info("command dispatched",
		slog.String("command_id", cmd.ID.String()),
		slog.String("target_device_id", e.targetDeviceID),
		slog.Int("attempts", e.attempts),
	)

	return true
}

// expireEntry fails a command whose target never came online within the
// pending age budget.
func (q *Queue) expireEntry(e *entry) {
	ctx, cancelCtx := context.WithTimeout(q.baseCtx, 10*time.Second)
	defer cancelCtx()

	q.logger.Warn("command expired before delivery",
		slog.String("command_id", e.commandID.String()),
		slog.String("target_device_id", e.targetDeviceID),
		slog.Int("attempts", e.attempts),
	)
	q.failCommand(ctx, e.commandID, nil, e, failureUnreachable, metrics.FailureReasonUnreachable)
}

// failCommand forces a non-terminal command to failed, notifies the source
// device and publishes the terminal event. The update is conditional on the
// command still being non-terminal, so a concurrent respond or cancel wins.
func (q *Queue) failCommand(ctx context.Context, id uuid.UUID, cmd *entity.Command, e *entry, message, reason string) {
	completedAt := time.Now()
	err := q.commandRepo.UpdateStatus(ctx, id,
		[]entity.CommandStatus{entity.StatusPending, entity.StatusQueued, entity.StatusExecuting},
		repository.StatusUpdate{
			Status:      entity.StatusFailed,
			Error:       message,
			CompletedAt: &completedAt,
		},
	)
	if err != nil {
		if !errors.Is(err, repository.ErrStatusConflict) && !errors.Is(err, repository.ErrCommandNotFound) {
			q.logger.Error("failed to mark command failed",
				slog.String("command_id", id.String()),
				slog.Any("error", err),
			)
		}

		return
	}
	q.metrics.IncFailed(reason)

	sourceDeviceID := ""
	userID := ""
	switch {
	case cmd != nil:
		sourceDeviceID = cmd.SourceDeviceID
		userID = cmd.UserID.String()
	case e != nil:
		sourceDeviceID = e.sourceDeviceID
		userID = e.userID.String()
	}
	if sourceDeviceID != "" {
		q.pusher.PushToDevice(sourceDeviceID, service.EventCommandUpdate, map[string]any{
			"command_id": id.String(),
			"status":     string(entity.StatusFailed),
			"error":      message,
		})
	}

	q.publishTerminal(ctx, &service.CommandEvent{
		CommandID:      id.String(),
		UserID:         userID,
		SourceDeviceID: sourceDeviceID,
		Status:         string(entity.StatusFailed),
		Error:          message,
		OccurredAt:     completedAt,
	})
}

// publishTerminal forwards a terminal lifecycle event to the publisher.
// Publishing is best effort; failures are logged, never propagated.
func (q *Queue) publishTerminal(ctx context.Context, event *service.CommandEvent) {
	if err := q.publisher.PublishCommandEvent(ctx, event); err != nil {
		q.logger.Error("failed to publish command event",
			slog.String("command_id", event.CommandID),
			slog.Any("error", err),
		)
	}
}

// sendWakeUpPush asks the platform push service to wake an offline target.
func (q *Queue) sendWakeUpPush(cmd *entity.Command) {
	if q.notifier == nil {
		return
	}

	go func() {
		ctx, cancelCtx := context.WithTimeout(q.baseCtx, 10*time.Second)
		defer cancelCtx()

		device, err := q.deviceRepo.FindByUserAndDeviceID(ctx, cmd.UserID, cmd.TargetDeviceID)
		if err != nil || device.PushToken == "" {
			return
		}

		err = q.notifier.SendDataNotification(ctx, device.PushToken, map[string]string{
			"type":       "command_waiting",
			"command_id": cmd.ID.String(),
		})
		if err != nil {
			q.logger.Warn("wake-up push failed",
				slog.String("device_id", cmd.TargetDeviceID),
				slog.Any("error", err),
			)
		}
	}()
}

// reaperLoop periodically fails executing commands that exhausted the
// execution budget. Responses racing the reaper are resolved by the
// conditional store update.
func (q *Queue) reaperLoop() {
	defer q.wg.Done()

	// Scanning at a fraction of the budget keeps the overshoot small
	// without hammering the store.
	interval := q.executionTimeout / 4
	if interval < time.Second {
		interval = time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-q.baseCtx.Done():
			return
		case <-ticker.C:
			q.reapTimedOut()
		}
	}
}

// reapTimedOut fails every executing command whose startedAt is older than
// the execution budget.
func (q *Queue) reapTimedOut() {
	ctx, cancelCtx := context.WithTimeout(q.baseCtx, 30*time.Second)
	defer cancelCtx()

	cutoff := time.Now().Add(-q.executionTimeout)
	cmds, err := q.commandRepo.FindExecutingBefore(ctx, cutoff)
	if err != nil {
		q.logger.Error("timeout reaper scan failed", slog.Any("error", err))

		return
	}

	for _, cmd := range cmds {
		completedAt := time.Now()
		err := q.commandRepo.UpdateStatus(ctx, cmd.ID,
			[]entity.CommandStatus{entity.StatusExecuting},
			repository.StatusUpdate{
				Status:      entity.StatusFailed,
				Error:       failureTimeout,
				CompletedAt: &completedAt,
			},
		)
		if err != nil {
			// A respond landed first; that outcome stands.
			continue
		}
		q.metrics.IncFailed(metrics.FailureReasonTimeout)

		q.logger.Warn("command execution timed out",
			slog.String("command_id", cmd.ID.String()),
			slog.String("target_device_id", cmd.TargetDeviceID),
		)

		q.pusher.PushToDevice(cmd.SourceDeviceID, service.EventCommandUpdate, map[string]any{
			"command_id": cmd.ID.String(),
			"status":     string(entity.StatusFailed),
			"error":      failureTimeout,
		})
		q.publishTerminal(ctx, &service.CommandEvent{
			CommandID:      cmd.ID.String(),
			UserID:         cmd.UserID.String(),
			SourceDeviceID: cmd.SourceDeviceID,
			TargetDeviceID: cmd.TargetDeviceID,
			CommandType:    cmd.CommandType,
			Status:         string(entity.StatusFailed),
			Error:          failureTimeout,
			OccurredAt:     completedAt,
		})
	}
}
