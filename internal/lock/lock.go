package lock

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/feral-file/ff-orderbook-cache/internal/adapter"
)

// ErrNotAcquired is returned when the lock is held by someone else
var ErrNotAcquired = errors.New("lock not acquired")

// releaseScript deletes the key only if it still holds the caller's token
const releaseScript = `
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`

// Locker hands out auto-expiring leases on named keys
//
//go:generate mockgen -source=lock.go -destination=../mocks/lock.go -package=mocks -mock_names=Locker=MockLocker,Lease=MockLease
type Locker interface {
	// Acquire takes the lease on key for ttl.
	// Returns ErrNotAcquired if another holder owns an unexpired lease.
	Acquire(ctx context.Context, key string, ttl time.Duration) (Lease, error)
}

// Lease is a held lock. It expires on its own after its ttl.
type Lease interface {
	Key() string
	// Release drops the lease early if it's still held by this owner
	Release(ctx context.Context) error
}

type redisLocker struct {
	client adapter.RedisClient
}

// NewRedisLocker creates a Locker backed by Redis SET NX PX
func NewRedisLocker(client adapter.RedisClient) Locker {
	return &redisLocker{client: client}
}

func (l *redisLocker) Acquire(ctx context.Context, key string, ttl time.Duration) (Lease, error) {
	if ttl <= 0 {
		return nil, fmt.Errorf("lock ttl must be positive, got %s", ttl)
	}

	token := uuid.NewString()
	ok, err := l.client.SetNX(ctx, key, token, ttl)
	if err != nil {
		return nil, fmt.Errorf("failed to acquire lock %s: %w", key, err)
	}
	if !ok {
		return nil, ErrNotAcquired
	}

	return &redisLease{client: l.client, key: key, token: token}, nil
}

type redisLease struct {
	client adapter.RedisClient
	key    string
	token  string
}

func (l *redisLease) Key() string {
	return l.key
}

func (l *redisLease) Release(ctx context.Context) error {
	if _, err := l.client.Eval(ctx, releaseScript, []string{l.key}, l.token); err != nil {
		return fmt.Errorf("failed to release lock %s: %w", l.key, err)
	}
	return nil
}
