package queue_test

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-orderbook-cache/internal/domain"
	"github.com/feral-file/ff-orderbook-cache/internal/logger"
	mockspkg "github.com/feral-file/ff-orderbook-cache/internal/mocks"
	"github.com/feral-file/ff-orderbook-cache/internal/queue"
	"github.com/feral-file/ff-orderbook-cache/internal/store/schema"
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

const (
	orderA = "0x00000000000000000000000000000000000000000000000000000000000000aa"
	orderB = "0x00000000000000000000000000000000000000000000000000000000000000bb"
)

type testQueueMocks struct {
	ctrl  *gomock.Controller
	store *mockspkg.MockJobStore
	clock *mockspkg.MockClock
}

func setupTestQueue(t *testing.T) (*testQueueMocks, queue.Queue) {
	ctrl := gomock.NewController(t)
	mocks := &testQueueMocks{
		ctrl:  ctrl,
		store: mockspkg.NewMockJobStore(ctrl),
		clock: mockspkg.NewMockClock(ctrl),
	}
	mocks.clock.EXPECT().Now().Return(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)).AnyTimes()

	return mocks, queue.NewQueue(mocks.store, mocks.clock, queue.DefaultRetryPolicy())
}

func TestQueue_Enqueue_BuildsJobs(t *testing.T) {
	mocks, q := setupTestQueue(t)
	defer mocks.ctrl.Finish()

	trigger := &domain.Trigger{Kind: domain.TriggerKindCancel, TxHash: "0xabc"}

	mocks.store.EXPECT().
		AddOrderUpdateJobs(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, jobs []schema.OrderUpdateJob) (int64, error) {
			require.Len(t, jobs, 1)
			job := jobs[0]
			assert.NotEmpty(t, job.ID)
			assert.Equal(t, "cancel-0xabc-"+orderA, job.JobID)
			assert.Equal(t, "cancel-0xabc", job.Context)
			assert.Equal(t, orderA, job.OrderID)
			assert.Equal(t, schema.JobStatusWaiting, job.Status)
			assert.Equal(t, 5, job.MaxAttempts)
			assert.Equal(t, string(queue.BackoffExponential), job.BackoffType)
			assert.Equal(t, int64(10000), job.BackoffDelayMs)
			assert.Equal(t, domain.OrderInfo{Context: "cancel-0xabc", ID: orderA, Trigger: trigger}, job.Data.Data())
			return 1, nil
		})

	err := q.Enqueue(context.Background(), []domain.OrderInfo{
		{Context: "cancel-0xabc", ID: orderA, Trigger: trigger},
	})
	assert.NoError(t, err)
}

func TestQueue_Enqueue_NormalizesOrderID(t *testing.T) {
	mocks, q := setupTestQueue(t)
	defer mocks.ctrl.Finish()

	mocks.store.EXPECT().
		AddOrderUpdateJobs(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, jobs []schema.OrderUpdateJob) (int64, error) {
			require.Len(t, jobs, 1)
			assert.Equal(t, orderA, jobs[0].OrderID)
			assert.Equal(t, "new-order-"+orderA, jobs[0].JobID)
			return 1, nil
		})

	err := q.Enqueue(context.Background(), []domain.OrderInfo{
		{Context: "new-order", ID: "0x00000000000000000000000000000000000000000000000000000000000000AA"},
	})
	assert.NoError(t, err)
}

func TestQueue_Enqueue_DropsInvalidAndDuplicates(t *testing.T) {
	mocks, q := setupTestQueue(t)
	defer mocks.ctrl.Finish()

	mocks.store.EXPECT().
		AddOrderUpdateJobs(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, jobs []schema.OrderUpdateJob) (int64, error) {
			require.Len(t, jobs, 3)
			assert.Equal(t, "ctx-"+orderA, jobs[0].JobID)
			assert.Equal(t, "ctx-"+orderB, jobs[1].JobID)
			assert.Equal(t, "other-"+orderA, jobs[2].JobID)
			return 3, nil
		})

	err := q.Enqueue(context.Background(), []domain.OrderInfo{
		{Context: "ctx", ID: orderA},
		{Context: "ctx", ID: domain.ZERO_ORDER_ID},
		{Context: "ctx", ID: ""},
		{Context: "", ID: orderA},
		{Context: "ctx", ID: orderA},
		{Context: "ctx", ID: orderB},
		{Context: "other", ID: orderA},
	})
	assert.NoError(t, err)
}

func TestQueue_Enqueue_NothingToEnqueue(t *testing.T) {
	mocks, q := setupTestQueue(t)
	defer mocks.ctrl.Finish()

	// No store call expected
	assert.NoError(t, q.Enqueue(context.Background(), nil))
	assert.NoError(t, q.Enqueue(context.Background(), []domain.OrderInfo{
		{Context: "ctx", ID: domain.ZERO_ORDER_ID},
	}))
}

func TestQueue_Enqueue_StoreError(t *testing.T) {
	mocks, q := setupTestQueue(t)
	defer mocks.ctrl.Finish()

	storeErr := errors.New("connection refused")
	mocks.store.EXPECT().
		AddOrderUpdateJobs(gomock.Any(), gomock.Any()).
		Return(int64(0), storeErr)

	err := q.Enqueue(context.Background(), []domain.OrderInfo{{Context: "ctx", ID: orderA}})
	assert.ErrorIs(t, err, storeErr)
	assert.Contains(t, err.Error(), "failed to enqueue order updates")
}
