package store

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/feral-file/ff-orderbook-cache/internal/domain"
	"github.com/feral-file/ff-orderbook-cache/internal/store/schema"
)

// OrderSideAndTokenSet holds the order fields needed to decide which cached pointers to recompute
type OrderSideAndTokenSet struct {
	Side       *domain.Side `gorm:"column:side"`
	TokenSetID *string      `gorm:"column:token_set_id"`
}

// TokenSetPointerChange describes a token set whose top buy pointer was rewritten
type TokenSetPointerChange struct {
	TokenSetID  string              `gorm:"column:token_set_id"`
	PrevOrderID *string             `gorm:"column:prev_order_id"`
	OrderID     *string             `gorm:"column:order_id"`
	Value       decimal.NullDecimal `gorm:"column:value"`
}

// TokenPointerChange describes a token whose floor sell or top buy pointer was rewritten
type TokenPointerChange struct {
	Contract    string              `gorm:"column:contract"`
	TokenID     string              `gorm:"column:token_id"`
	PrevOrderID *string             `gorm:"column:prev_order_id"`
	OrderID     *string             `gorm:"column:order_id"`
	Value       decimal.NullDecimal `gorm:"column:value"`
}

// BestOrderStore defines the database operations that maintain the cached best-order pointers
//
//go:generate mockgen -source=store.go -destination=../mocks/store.go -package=mocks -mock_names=BestOrderStore=MockBestOrderStore,JobStore=MockJobStore,Store=MockStore
type BestOrderStore interface {
	// GetOrderSideAndTokenSet returns the side and token set of an order, or nil if the order doesn't exist
	GetOrderSideAndTokenSet(ctx context.Context, orderID string) (*OrderSideAndTokenSet, error)
	// GetTokenSetTokens returns the tokens belonging to a token set
	GetTokenSetTokens(ctx context.Context, tokenSetID string) ([]domain.TokenRef, error)
	// RecomputeTokenSetTopBuy recomputes the top buy pointer of a token set.
	// Returns nil when the stored pointer already references the best order.
	RecomputeTokenSetTopBuy(ctx context.Context, tokenSetID string) (*TokenSetPointerChange, error)
	// RecomputeTokensFloorSell recomputes the floor sell pointer of the given tokens in a single statement
	// and returns only the tokens whose pointer changed
	RecomputeTokensFloorSell(ctx context.Context, tokens []domain.TokenRef) ([]TokenPointerChange, error)
	// RecomputeTokensTopBuy recomputes the top buy pointer of the given tokens in a single statement,
	// skipping bids whose maker holds all of the token's supply, and returns only the tokens whose pointer changed
	RecomputeTokensTopBuy(ctx context.Context, tokens []domain.TokenRef) ([]TokenPointerChange, error)
}

// JobStore defines the database operations backing the order updates queue
type JobStore interface {
	// AddOrderUpdateJobs inserts jobs, skipping any whose job id is already retained.
	// Returns the number of jobs actually inserted.
	AddOrderUpdateJobs(ctx context.Context, jobs []schema.OrderUpdateJob) (int64, error)
	// ClaimOrderUpdateJobs marks up to limit runnable or stalled jobs as active for the worker.
	// Stalled jobs that used up their attempts are left for FailStalledOrderUpdateJobs.
	ClaimOrderUpdateJobs(ctx context.Context, workerID string, limit int, lockDuration time.Duration) ([]schema.OrderUpdateJob, error)
	// ExtendOrderUpdateJobLock pushes the lock of an active job held by the worker lockDuration past now
	ExtendOrderUpdateJobLock(ctx context.Context, jobID string, workerID string, lockDuration time.Duration) error
	// FailStalledOrderUpdateJobs fails stalled jobs that have no attempts left
	FailStalledOrderUpdateJobs(ctx context.Context) (int64, error)
	// CompleteOrderUpdateJob marks an active job held by the worker as completed
	CompleteOrderUpdateJob(ctx context.Context, jobID string, workerID string) error
	// RetryOrderUpdateJob puts an active job held by the worker back to waiting after the given delay
	RetryOrderUpdateJob(ctx context.Context, jobID string, workerID string, delay time.Duration, lastError string) error
	// FailOrderUpdateJob marks an active job held by the worker as permanently failed
	FailOrderUpdateJob(ctx context.Context, jobID string, workerID string, lastError string) error
	// CleanOrderUpdateJobs deletes up to limit jobs with the status that finished more than grace ago
	CleanOrderUpdateJobs(ctx context.Context, status schema.JobStatus, grace time.Duration, limit int) (int64, error)
	// TrimOrderUpdateJobs deletes the oldest finished jobs with the status beyond the newest keep
	TrimOrderUpdateJobs(ctx context.Context, status schema.JobStatus, keep int) (int64, error)
}

// Store defines the interface for database operations
type Store interface {
	BestOrderStore
	JobStore
}
