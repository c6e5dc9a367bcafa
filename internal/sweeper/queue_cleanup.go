package sweeper

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/feral-file/ff-orderbook-cache/internal/adapter"
	"github.com/feral-file/ff-orderbook-cache/internal/domain"
	"github.com/feral-file/ff-orderbook-cache/internal/lock"
	"github.com/feral-file/ff-orderbook-cache/internal/logger"
	"github.com/feral-file/ff-orderbook-cache/internal/store"
	"github.com/feral-file/ff-orderbook-cache/internal/store/schema"
)

const (
	DEFAULT_CLEANUP_INTERVAL = time.Minute
	DEFAULT_CLEANUP_LOCK_TTL = 55 * time.Second
	DEFAULT_RETENTION        = 10 * time.Minute
	DEFAULT_KEEP_PER_STATUS  = 10000
)

// QueueCleanupLockKey is the lease key shared by every cleanup sweeper instance
var QueueCleanupLockKey = domain.ORDER_UPDATES_QUEUE_NAME + "-queue-clean-lock"

// QueueCleanupSweeperConfig holds configuration for the queue cleanup sweeper
type QueueCleanupSweeperConfig struct {
	Interval  time.Duration // Time between cleanup cycles
	LockTTL   time.Duration // Lease duration, must be shorter than Interval
	Retention time.Duration // Finished jobs younger than this are kept
	Keep      int           // Finished jobs kept per status regardless of age
}

// Validate checks the lease can't outlive the cycle
func (c QueueCleanupSweeperConfig) Validate() error {
	if c.Interval <= 0 {
		return fmt.Errorf("cleanup interval must be positive, got %s", c.Interval)
	}
	if c.LockTTL <= 0 || c.LockTTL >= c.Interval {
		return fmt.Errorf("cleanup lock ttl must be positive and shorter than the interval (%s), got %s", c.Interval, c.LockTTL)
	}
	if c.Retention < 0 {
		return fmt.Errorf("cleanup retention must not be negative, got %s", c.Retention)
	}
	if c.Keep < 0 {
		return fmt.Errorf("cleanup keep must not be negative, got %d", c.Keep)
	}
	return nil
}

// queueCleanupSweeper removes old finished jobs from the order updates queue
type queueCleanupSweeper struct {
	config    QueueCleanupSweeperConfig
	store     store.JobStore
	locker    lock.Locker
	clock     adapter.Clock
	running   atomic.Bool
	started   atomic.Bool
	stopChan  chan struct{}
	stoppedCh chan struct{}
}

// NewQueueCleanupSweeper creates a new queue cleanup sweeper
func NewQueueCleanupSweeper(config QueueCleanupSweeperConfig, st store.JobStore, locker lock.Locker, clock adapter.Clock) Sweeper {
	return &queueCleanupSweeper{
		config:    config,
		store:     st,
		locker:    locker,
		clock:     clock,
		stopChan:  make(chan struct{}),
		stoppedCh: make(chan struct{}),
	}
}

// Name returns the sweeper's name
func (s *queueCleanupSweeper) Name() string {
	return "queue-cleanup-sweeper"
}

// Start runs a cleanup cycle every interval until the context is canceled or Stop is called.
// A sweeper runs once, Start fails after the sweeper has stopped.
func (s *queueCleanupSweeper) Start(ctx context.Context) error {
	if !s.running.CompareAndSwap(false, true) {
		return fmt.Errorf("sweeper already running")
	}
	if !s.started.CompareAndSwap(false, true) {
		s.running.Store(false)
		return fmt.Errorf("sweeper already stopped")
	}
	defer func() {
		s.running.Store(false)
		close(s.stoppedCh)
	}()

	logger.InfoCtx(ctx, "Starting queue cleanup sweeper",
		zap.String("lock_key", QueueCleanupLockKey),
		zap.Duration("interval", s.config.Interval),
		zap.Duration("lock_ttl", s.config.LockTTL),
		zap.Duration("retention", s.config.Retention),
		zap.Int("keep", s.config.Keep),
	)

	for {
		select {
		case <-ctx.Done():
			logger.InfoCtx(ctx, "Queue cleanup sweeper stopping due to context cancellation", zap.Error(ctx.Err()))
			return nil
		case <-s.stopChan:
			logger.InfoCtx(ctx, "Queue cleanup sweeper stop requested")
			return nil
		default:
		}

		s.runCleanupCycle(ctx)

		if !s.sleep(ctx, s.config.Interval) {
			return nil
		}
	}
}

// Stop gracefully stops the sweeper with timeout support
func (s *queueCleanupSweeper) Stop(ctx context.Context) error {
	if !s.running.CompareAndSwap(true, false) {
		return nil // Already stopped
	}

	logger.InfoCtx(ctx, "Stopping queue cleanup sweeper")

	close(s.stopChan)

	select {
	case <-s.stoppedCh:
		logger.InfoCtx(ctx, "Queue cleanup sweeper stopped gracefully")
		return nil
	case <-ctx.Done():
		logger.WarnCtx(ctx, "Queue cleanup sweeper stop interrupted by context timeout")
		return ctx.Err()
	}
}

// runCleanupCycle takes the lease and cleans both finished statuses.
// Failures are logged and never returned; the next cycle tries again.
func (s *queueCleanupSweeper) runCleanupCycle(ctx context.Context) {
	// The lease isn't released, so its expiry keeps other instances out for the rest of the cycle
	_, err := s.locker.Acquire(ctx, QueueCleanupLockKey, s.config.LockTTL)
	if err != nil {
		if errors.Is(err, lock.ErrNotAcquired) {
			logger.DebugCtx(ctx, "Queue cleanup lock held elsewhere, skipping cycle")
			return
		}
		if !errors.Is(err, context.Canceled) {
			logger.WarnCtx(ctx, "Failed to acquire queue cleanup lock", zap.Error(err))
		}
		return
	}

	startTime := s.clock.Now()
	var total int64
	for _, status := range []schema.JobStatus{schema.JobStatusCompleted, schema.JobStatusFailed} {
		total += s.cleanStatus(ctx, status)
	}

	logger.InfoCtx(ctx, "Queue cleanup cycle completed",
		zap.Int64("removed", total),
		zap.Duration("duration", s.clock.Since(startTime)),
	)
}

// cleanStatus removes jobs past retention, then trims the rest down to Keep
func (s *queueCleanupSweeper) cleanStatus(ctx context.Context, status schema.JobStatus) int64 {
	var removed int64

	cleaned, err := s.store.CleanOrderUpdateJobs(ctx, status, s.config.Retention, s.config.Keep)
	if err != nil {
		logger.WarnCtx(ctx, "Failed to clean order update jobs", zap.Error(err), zap.String("status", string(status)))
	}
	removed += cleaned

	trimmed, err := s.store.TrimOrderUpdateJobs(ctx, status, s.config.Keep)
	if err != nil {
		logger.WarnCtx(ctx, "Failed to trim order update jobs", zap.Error(err), zap.String("status", string(status)))
	}
	removed += trimmed

	if removed > 0 {
		logger.DebugCtx(ctx, "Removed finished order update jobs",
			zap.String("status", string(status)),
			zap.Int64("cleaned", cleaned),
			zap.Int64("trimmed", trimmed),
		)
	}

	return removed
}

// sleep sleeps for the given duration but can be interrupted by context cancellation
// Returns true if sleep completed normally, false if interrupted
func (s *queueCleanupSweeper) sleep(ctx context.Context, duration time.Duration) bool {
	select {
	case <-s.clock.After(duration):
		return true
	case <-ctx.Done():
		return false
	case <-s.stopChan:
		return false
	}
}
