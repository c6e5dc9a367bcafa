package queue

import (
	"context"
	"fmt"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/feral-file/ff-orderbook-cache/internal/adapter"
	"github.com/feral-file/ff-orderbook-cache/internal/domain"
	"github.com/feral-file/ff-orderbook-cache/internal/logger"
	"github.com/feral-file/ff-orderbook-cache/internal/store"
	"github.com/feral-file/ff-orderbook-cache/internal/store/schema"
)

// Queue defines the interface producers use to request best-order recomputation
//
//go:generate mockgen -source=queue.go -destination=../mocks/queue.go -package=mocks -mock_names=Queue=MockQueue,JobHandler=MockJobHandler
type Queue interface {
	// Enqueue submits recomputation requests.
	// Requests without a context or with the zero order id are dropped, and requests whose
	// (context, order id) pair is already queued or retained are absorbed.
	Enqueue(ctx context.Context, orderInfos []domain.OrderInfo) error
}

// JobHandler processes a single order update request
type JobHandler interface {
	Handle(ctx context.Context, orderInfo domain.OrderInfo) error
}

type queue struct {
	store  store.JobStore
	clock  adapter.Clock
	policy RetryPolicy
}

// NewQueue creates a new order updates queue backed by the job store
func NewQueue(st store.JobStore, clock adapter.Clock, policy RetryPolicy) Queue {
	return &queue{
		store:  st,
		clock:  clock,
		policy: policy,
	}
}

// Enqueue submits recomputation requests
func (q *queue) Enqueue(ctx context.Context, orderInfos []domain.OrderInfo) error {
	jobs := q.buildJobs(orderInfos)
	if len(jobs) == 0 {
		return nil
	}

	inserted, err := q.store.AddOrderUpdateJobs(ctx, jobs)
	if err != nil {
		return fmt.Errorf("failed to enqueue order updates: %w", err)
	}

	logger.DebugCtx(ctx, "Enqueued order updates",
		zap.String("queue", domain.ORDER_UPDATES_QUEUE_NAME),
		zap.Int("requested", len(orderInfos)),
		zap.Int64("inserted", inserted),
	)

	return nil
}

// buildJobs filters out invalid requests and collapses duplicates within the batch
func (q *queue) buildJobs(orderInfos []domain.OrderInfo) []schema.OrderUpdateJob {
	seen := make(map[string]struct{}, len(orderInfos))
	jobs := make([]schema.OrderUpdateJob, 0, len(orderInfos))
	now := q.clock.Now()

	for _, info := range orderInfos {
		info.ID = domain.NormalizeOrderID(info.ID)
		if err := info.Validate(); err != nil {
			continue
		}

		jobID := info.JobID()
		if _, ok := seen[jobID]; ok {
			continue
		}
		seen[jobID] = struct{}{}

		jobs = append(jobs, schema.OrderUpdateJob{
			ID:             ulid.MustNewDefault(now).String(),
			JobID:          jobID,
			Context:        info.Context,
			OrderID:        info.ID,
			Data:           datatypes.NewJSONType(info),
			Status:         schema.JobStatusWaiting,
			MaxAttempts:    q.policy.Attempts,
			BackoffType:    string(q.policy.BackoffType),
			BackoffDelayMs: q.policy.Delay.Milliseconds(),
		})
	}

	return jobs
}
