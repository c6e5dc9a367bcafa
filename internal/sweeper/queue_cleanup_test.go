package sweeper_test

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-orderbook-cache/internal/lock"
	"github.com/feral-file/ff-orderbook-cache/internal/logger"
	mockspkg "github.com/feral-file/ff-orderbook-cache/internal/mocks"
	"github.com/feral-file/ff-orderbook-cache/internal/store/schema"
	"github.com/feral-file/ff-orderbook-cache/internal/sweeper"
)

func TestMain(m *testing.M) {
	// Initialize logger for tests
	err := logger.Initialize(logger.Config{
		Debug: true,
	})
	if err != nil {
		panic(err)
	}

	code := m.Run()
	os.Exit(code)
}

type testSweeperMocks struct {
	ctrl   *gomock.Controller
	store  *mockspkg.MockJobStore
	locker *mockspkg.MockLocker
	lease  *mockspkg.MockLease
	clock  *mockspkg.MockClock
}

func defaultCleanupConfig() sweeper.QueueCleanupSweeperConfig {
	return sweeper.QueueCleanupSweeperConfig{
		Interval:  sweeper.DEFAULT_CLEANUP_INTERVAL,
		LockTTL:   sweeper.DEFAULT_CLEANUP_LOCK_TTL,
		Retention: sweeper.DEFAULT_RETENTION,
		Keep:      sweeper.DEFAULT_KEEP_PER_STATUS,
	}
}

func setupTestSweeper(t *testing.T) (*testSweeperMocks, sweeper.Sweeper) {
	ctrl := gomock.NewController(t)
	mocks := &testSweeperMocks{
		ctrl:   ctrl,
		store:  mockspkg.NewMockJobStore(ctrl),
		locker: mockspkg.NewMockLocker(ctrl),
		lease:  mockspkg.NewMockLease(ctrl),
		clock:  mockspkg.NewMockClock(ctrl),
	}

	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	mocks.clock.EXPECT().Now().Return(now).AnyTimes()
	mocks.clock.EXPECT().Since(now).Return(time.Millisecond).AnyTimes()

	s := sweeper.NewQueueCleanupSweeper(defaultCleanupConfig(), mocks.store, mocks.locker, mocks.clock)
	return mocks, s
}

// expectSleeps lets the given number of cycles finish their wait, then blocks forever
func expectSleeps(mocks *testSweeperMocks, cycles int) <-chan struct{} {
	blocked := make(chan struct{})
	var prev *gomock.Call
	for range cycles {
		fired := make(chan time.Time, 1)
		fired <- time.Now()
		call := mocks.clock.EXPECT().After(time.Minute).Return((<-chan time.Time)(fired))
		if prev != nil {
			call.After(prev)
		}
		prev = call
	}

	last := mocks.clock.EXPECT().
		After(time.Minute).
		DoAndReturn(func(d time.Duration) <-chan time.Time {
			close(blocked)
			return make(chan time.Time)
		})
	if prev != nil {
		last.After(prev)
	}

	return blocked
}

func runSweeper(t *testing.T, s sweeper.Sweeper, blocked <-chan struct{}) {
	errChan := make(chan error, 1)
	go func() {
		errChan <- s.Start(context.Background())
	}()

	select {
	case <-blocked:
	case <-time.After(5 * time.Second):
		t.Fatal("sweeper did not finish its cycles")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, s.Stop(ctx))
	require.NoError(t, <-errChan)
}

func TestQueueCleanupSweeper_Name(t *testing.T) {
	mocks, s := setupTestSweeper(t)
	defer mocks.ctrl.Finish()

	assert.Equal(t, "queue-cleanup-sweeper", s.Name())
}

func TestQueueCleanupSweeper_CleansBothStatuses(t *testing.T) {
	mocks, s := setupTestSweeper(t)
	defer mocks.ctrl.Finish()

	blocked := expectSleeps(mocks, 0)

	// The lease is left to expire instead of being released
	mocks.locker.EXPECT().
		Acquire(gomock.Any(), sweeper.QueueCleanupLockKey, 55*time.Second).
		Return(mocks.lease, nil)

	gomock.InOrder(
		mocks.store.EXPECT().CleanOrderUpdateJobs(gomock.Any(), schema.JobStatusCompleted, 10*time.Minute, 10000).Return(int64(12), nil),
		mocks.store.EXPECT().TrimOrderUpdateJobs(gomock.Any(), schema.JobStatusCompleted, 10000).Return(int64(3), nil),
		mocks.store.EXPECT().CleanOrderUpdateJobs(gomock.Any(), schema.JobStatusFailed, 10*time.Minute, 10000).Return(int64(1), nil),
		mocks.store.EXPECT().TrimOrderUpdateJobs(gomock.Any(), schema.JobStatusFailed, 10000).Return(int64(0), nil),
	)

	runSweeper(t, s, blocked)
}

func TestQueueCleanupSweeper_SkipsCycleWhenLockHeld(t *testing.T) {
	mocks, s := setupTestSweeper(t)
	defer mocks.ctrl.Finish()

	blocked := expectSleeps(mocks, 1)

	// The first cycle loses the lock, the second one wins it
	first := mocks.locker.EXPECT().
		Acquire(gomock.Any(), sweeper.QueueCleanupLockKey, 55*time.Second).
		Return(nil, lock.ErrNotAcquired)
	mocks.locker.EXPECT().
		Acquire(gomock.Any(), sweeper.QueueCleanupLockKey, 55*time.Second).
		Return(mocks.lease, nil).
		After(first)

	mocks.store.EXPECT().CleanOrderUpdateJobs(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(0), nil).Times(2)
	mocks.store.EXPECT().TrimOrderUpdateJobs(gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(0), nil).Times(2)

	runSweeper(t, s, blocked)
}

func TestQueueCleanupSweeper_LockErrorSkipsCycle(t *testing.T) {
	mocks, s := setupTestSweeper(t)
	defer mocks.ctrl.Finish()

	blocked := expectSleeps(mocks, 0)

	mocks.locker.EXPECT().
		Acquire(gomock.Any(), sweeper.QueueCleanupLockKey, 55*time.Second).
		Return(nil, errors.New("redis: connection pool timeout"))

	// No store calls expected
	runSweeper(t, s, blocked)
}

func TestQueueCleanupSweeper_StoreErrorsDontStopTheLoop(t *testing.T) {
	mocks, s := setupTestSweeper(t)
	defer mocks.ctrl.Finish()

	blocked := expectSleeps(mocks, 1)

	mocks.locker.EXPECT().
		Acquire(gomock.Any(), sweeper.QueueCleanupLockKey, 55*time.Second).
		Return(mocks.lease, nil).
		Times(2)

	storeErr := errors.New("canceling statement due to statement timeout")
	mocks.store.EXPECT().CleanOrderUpdateJobs(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(0), storeErr).Times(4)
	mocks.store.EXPECT().TrimOrderUpdateJobs(gomock.Any(), gomock.Any(), gomock.Any()).Return(int64(0), storeErr).Times(4)

	runSweeper(t, s, blocked)
}

func TestQueueCleanupSweeper_ContextCancellation(t *testing.T) {
	mocks, s := setupTestSweeper(t)
	defer mocks.ctrl.Finish()

	ctx, cancel := context.WithCancel(context.Background())

	mocks.locker.EXPECT().
		Acquire(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, lock.ErrNotAcquired)
	mocks.clock.EXPECT().
		After(time.Minute).
		DoAndReturn(func(d time.Duration) <-chan time.Time {
			cancel()
			return make(chan time.Time)
		})

	errChan := make(chan error, 1)
	go func() {
		errChan <- s.Start(ctx)
	}()

	select {
	case err := <-errChan:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("sweeper did not stop after context cancellation")
	}
}

func TestQueueCleanupSweeper_StartAfterStop(t *testing.T) {
	mocks, s := setupTestSweeper(t)
	defer mocks.ctrl.Finish()

	blocked := expectSleeps(mocks, 0)
	mocks.locker.EXPECT().
		Acquire(gomock.Any(), sweeper.QueueCleanupLockKey, 55*time.Second).
		Return(nil, lock.ErrNotAcquired)

	runSweeper(t, s, blocked)

	err := s.Start(context.Background())
	assert.EqualError(t, err, "sweeper already stopped")
}

func TestQueueCleanupSweeper_StopWhenNotRunning(t *testing.T) {
	mocks, s := setupTestSweeper(t)
	defer mocks.ctrl.Finish()

	assert.NoError(t, s.Stop(context.Background()))
}

func TestQueueCleanupSweeperConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*sweeper.QueueCleanupSweeperConfig)
		wantErr bool
	}{
		{"defaults", func(c *sweeper.QueueCleanupSweeperConfig) {}, false},
		{"zero interval", func(c *sweeper.QueueCleanupSweeperConfig) { c.Interval = 0 }, true},
		{"lock outlives the interval", func(c *sweeper.QueueCleanupSweeperConfig) { c.LockTTL = 2 * time.Minute }, true},
		{"lock equals the interval", func(c *sweeper.QueueCleanupSweeperConfig) { c.LockTTL = c.Interval }, true},
		{"zero lock", func(c *sweeper.QueueCleanupSweeperConfig) { c.LockTTL = 0 }, true},
		{"negative retention", func(c *sweeper.QueueCleanupSweeperConfig) { c.Retention = -time.Second }, true},
		{"negative keep", func(c *sweeper.QueueCleanupSweeperConfig) { c.Keep = -1 }, true},
		{"keep nothing", func(c *sweeper.QueueCleanupSweeperConfig) { c.Keep = 0 }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultCleanupConfig()
			tt.modify(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
