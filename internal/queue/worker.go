package queue

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/alitto/pond/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/feral-file/ff-orderbook-cache/internal/adapter"
	"github.com/feral-file/ff-orderbook-cache/internal/domain"
	"github.com/feral-file/ff-orderbook-cache/internal/logger"
	"github.com/feral-file/ff-orderbook-cache/internal/store"
	"github.com/feral-file/ff-orderbook-cache/internal/store/schema"
)

const (
	DEFAULT_CONCURRENCY   = 3
	DEFAULT_POLL_INTERVAL = time.Second
	DEFAULT_LOCK_DURATION = 30 * time.Second
)

// WorkerConfig holds configuration for the order updates worker
type WorkerConfig struct {
	Concurrency  int           // Jobs processed at the same time
	PollInterval time.Duration // Wait between claims when the queue is empty
	LockDuration time.Duration // How long a claimed job stays reserved before it counts as stalled
}

// Worker pulls order update jobs from the queue and runs them through a handler
//
//go:generate mockgen -source=worker.go -destination=../mocks/worker.go -package=mocks -mock_names=Worker=MockWorker
type Worker interface {
	// Start begins claiming and processing jobs
	// This is a blocking call that runs until the context is canceled or Stop is called.
	// A worker runs once, Start fails after the worker has stopped.
	Start(ctx context.Context) error

	// Stop stops claiming jobs and waits for in-flight jobs to finish
	Stop(ctx context.Context) error

	// ID returns the worker instance id used as the job lock owner
	ID() string
}

type worker struct {
	id        string
	config    WorkerConfig
	store     store.JobStore
	handler   JobHandler
	clock     adapter.Clock
	pool      pond.Pool
	inFlight  atomic.Int32
	running   atomic.Bool
	started   atomic.Bool
	slotFreed chan struct{}
	stopChan  chan struct{}
	stoppedCh chan struct{}
}

// NewWorker creates a new order updates worker
func NewWorker(config WorkerConfig, st store.JobStore, handler JobHandler, clock adapter.Clock) Worker {
	if config.Concurrency <= 0 {
		config.Concurrency = DEFAULT_CONCURRENCY
	}
	if config.PollInterval <= 0 {
		config.PollInterval = DEFAULT_POLL_INTERVAL
	}
	if config.LockDuration <= 0 {
		config.LockDuration = DEFAULT_LOCK_DURATION
	}

	return &worker{
		id:        uuid.NewString(),
		config:    config,
		store:     st,
		handler:   handler,
		clock:     clock,
		slotFreed: make(chan struct{}, 1),
		stopChan:  make(chan struct{}),
		stoppedCh: make(chan struct{}),
	}
}

// ID returns the worker instance id
func (w *worker) ID() string {
	return w.id
}

// Start begins the worker's main loop
func (w *worker) Start(ctx context.Context) error {
	if !w.running.CompareAndSwap(false, true) {
		return fmt.Errorf("worker already running")
	}
	if !w.started.CompareAndSwap(false, true) {
		w.running.Store(false)
		return fmt.Errorf("worker already stopped")
	}
	defer func() {
		w.running.Store(false)
		close(w.stoppedCh)
	}()

	logger.InfoCtx(ctx, "Starting order updates worker",
		zap.String("queue", domain.ORDER_UPDATES_QUEUE_NAME),
		zap.String("worker_id", w.id),
		zap.Int("concurrency", w.config.Concurrency),
		zap.Duration("poll_interval", w.config.PollInterval),
		zap.Duration("lock_duration", w.config.LockDuration),
	)

	// The pool size is the hard ceiling on concurrent recomputations
	w.pool = pond.NewPool(w.config.Concurrency)
	defer w.pool.StopAndWait()

	var lastStalledCheck time.Time
	for {
		select {
		case <-ctx.Done():
			logger.InfoCtx(ctx, "Order updates worker stopping due to context cancellation", zap.Error(ctx.Err()))
			return nil
		case <-w.stopChan:
			logger.InfoCtx(ctx, "Order updates worker stop requested")
			return nil
		default:
		}

		// Jobs left stalled after their last attempt are never claimed again, so they're failed here
		if w.clock.Since(lastStalledCheck) >= w.config.LockDuration {
			w.failStalledJobs(ctx)
			lastStalledCheck = w.clock.Now()
		}

		free := w.config.Concurrency - int(w.inFlight.Load())
		if free <= 0 {
			if !w.waitForSlot(ctx) {
				return nil
			}
			continue
		}

		claimed, err := w.dispatch(ctx, free)
		if err != nil && !errors.Is(err, context.Canceled) {
			logger.ErrorCtx(ctx, err, zap.String("worker_id", w.id))
		}

		if claimed == 0 {
			if !w.sleep(ctx, w.config.PollInterval) {
				return nil
			}
		}
	}
}

// Stop gracefully stops the worker with timeout support
func (w *worker) Stop(ctx context.Context) error {
	if !w.running.CompareAndSwap(true, false) {
		return nil // Already stopped
	}

	logger.InfoCtx(ctx, "Stopping order updates worker", zap.String("worker_id", w.id))

	close(w.stopChan)

	select {
	case <-w.stoppedCh:
		logger.InfoCtx(ctx, "Order updates worker stopped gracefully")
		return nil
	case <-ctx.Done():
		logger.WarnCtx(ctx, "Order updates worker stop interrupted by context timeout")
		return ctx.Err()
	}
}

// dispatch claims up to limit jobs and submits them to the pool
func (w *worker) dispatch(ctx context.Context, limit int) (int, error) {
	jobs, err := w.store.ClaimOrderUpdateJobs(ctx, w.id, limit, w.config.LockDuration)
	if err != nil {
		return 0, fmt.Errorf("failed to claim jobs: %w", err)
	}

	// In-flight jobs finish even if the worker is shutting down, otherwise they'd sit
	// active until their lock expires
	jobCtx := context.WithoutCancel(ctx)
	for _, job := range jobs {
		w.inFlight.Add(1)
		w.pool.Submit(func() {
			defer w.releaseSlot()
			w.process(jobCtx, job)
		})
	}

	return len(jobs), nil
}

func (w *worker) releaseSlot() {
	w.inFlight.Add(-1)
	select {
	case w.slotFreed <- struct{}{}:
	default:
	}
}

// failStalledJobs fails stalled jobs without attempts left
func (w *worker) failStalledJobs(ctx context.Context) {
	failed, err := w.store.FailStalledOrderUpdateJobs(ctx)
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			logger.ErrorCtx(ctx, err, zap.String("worker_id", w.id))
		}
		return
	}
	if failed > 0 {
		logger.WarnCtx(ctx, "Failed stalled order update jobs without attempts left",
			zap.Int64("count", failed),
		)
	}
}

// process runs a single job and records its outcome
func (w *worker) process(ctx context.Context, job schema.OrderUpdateJob) {
	orderInfo := job.Data.Data()
	startTime := w.clock.Now()

	// The lock is extended while the handler runs, losing it cancels the handler
	handleCtx, cancel := context.WithCancel(ctx)
	var lockLost atomic.Bool
	keepLockDone := make(chan struct{})
	go func() {
		defer close(keepLockDone)
		if !w.keepLock(handleCtx, job.JobID) {
			lockLost.Store(true)
			cancel()
		}
	}()

	err := w.handle(handleCtx, orderInfo)
	cancel()
	<-keepLockDone

	if lockLost.Load() {
		logger.WarnCtx(ctx, "Lost order update job lock while handling, leaving the job to its new holder",
			zap.String("job_id", job.JobID),
			zap.Int("attempt", job.AttemptsMade),
		)
		return
	}

	if err == nil {
		if err := w.store.CompleteOrderUpdateJob(ctx, job.JobID, w.id); err != nil {
			logger.WarnCtx(ctx, "Failed to mark order update job completed",
				zap.Error(err),
				zap.String("job_id", job.JobID),
			)
			return
		}

		logger.DebugCtx(ctx, "Order update job completed",
			zap.String("job_id", job.JobID),
			zap.Int("attempt", job.AttemptsMade),
			zap.Duration("duration", w.clock.Since(startTime)),
		)
		return
	}

	logger.ErrorCtx(ctx, fmt.Errorf("failed to handle order info: %w", err),
		zap.String("queue", domain.ORDER_UPDATES_QUEUE_NAME),
		zap.String("job_id", job.JobID),
		zap.Any("job_data", orderInfo),
		zap.Int("attempt", job.AttemptsMade),
		zap.Int("max_attempts", job.MaxAttempts),
	)

	if ShouldRetry(job.AttemptsMade, job.MaxAttempts) {
		delay := NextDelay(BackoffType(job.BackoffType), time.Duration(job.BackoffDelayMs)*time.Millisecond, job.AttemptsMade)
		if err := w.store.RetryOrderUpdateJob(ctx, job.JobID, w.id, delay, err.Error()); err != nil {
			logger.ErrorCtx(ctx, err, zap.String("job_id", job.JobID))
			return
		}

		logger.InfoCtx(ctx, "Order update job scheduled for retry",
			zap.String("job_id", job.JobID),
			zap.Int("attempt", job.AttemptsMade),
			zap.Duration("next_retry_in", delay),
		)
		return
	}

	if err := w.store.FailOrderUpdateJob(ctx, job.JobID, w.id, err.Error()); err != nil {
		logger.ErrorCtx(ctx, err, zap.String("job_id", job.JobID))
		return
	}

	logger.WarnCtx(ctx, "Order update job failed permanently",
		zap.String("job_id", job.JobID),
		zap.Int("attempts", job.AttemptsMade),
	)
}

// keepLock extends the job lock every half lock duration until ctx is done.
// Returns false if another worker took the job over.
func (w *worker) keepLock(ctx context.Context, jobID string) bool {
	interval := w.config.LockDuration / 2
	for {
		select {
		case <-ctx.Done():
			return true
		case <-w.clock.After(interval):
		}

		err := w.store.ExtendOrderUpdateJobLock(ctx, jobID, w.id, w.config.LockDuration)
		switch {
		case err == nil:
		case errors.Is(err, domain.ErrJobLockLost):
			return false
		case ctx.Err() != nil:
			return true
		default:
			logger.WarnCtx(ctx, "Failed to extend order update job lock",
				zap.Error(err),
				zap.String("job_id", jobID),
			)
		}
	}
}

// handle runs the handler, turning panics into errors so the job gets retried
func (w *worker) handle(ctx context.Context, orderInfo domain.OrderInfo) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic while handling order info: %v", r)
		}
	}()

	return w.handler.Handle(ctx, orderInfo)
}

// waitForSlot blocks until a pool slot frees up
// Returns false if interrupted by context or stop signal
func (w *worker) waitForSlot(ctx context.Context) bool {
	select {
	case <-w.slotFreed:
		return true
	case <-ctx.Done():
		return false
	case <-w.stopChan:
		return false
	}
}

// sleep sleeps for the given duration but can be interrupted by context cancellation
// Returns true if sleep completed normally, false if interrupted
func (w *worker) sleep(ctx context.Context, duration time.Duration) bool {
	select {
	case <-w.clock.After(duration):
		return true
	case <-w.slotFreed:
		return true
	case <-ctx.Done():
		return false
	case <-w.stopChan:
		return false
	}
}
