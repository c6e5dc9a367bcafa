package adapter

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisConfig holds the Redis connection settings
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// RedisClient defines the Redis operations used by the lease lock
//
//go:generate mockgen -source=redis.go -destination=../mocks/redis.go -package=mocks -mock_names=RedisClient=MockRedisClient
type RedisClient interface {
	// Ping checks if Redis is reachable
	Ping(ctx context.Context) error

	// SetNX sets key to value with the ttl only if the key doesn't exist.
	// Returns whether the key was set.
	SetNX(ctx context.Context, key string, value string, ttl time.Duration) (bool, error)

	// Eval runs a Lua script against the given keys
	Eval(ctx context.Context, script string, keys []string, args ...interface{}) (interface{}, error)

	// Close closes the Redis connection
	Close() error
}

type redisClient struct {
	client *redis.Client
}

// NewRedisClient creates a new Redis client
func NewRedisClient(cfg RedisConfig) RedisClient {
	return &redisClient{
		client: redis.NewClient(&redis.Options{
			Addr:     cfg.Addr,
			Password: cfg.Password,
			DB:       cfg.DB,
		}),
	}
}

func (r *redisClient) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *redisClient) SetNX(ctx context.Context, key string, value string, ttl time.Duration) (bool, error) {
	return r.client.SetNX(ctx, key, value, ttl).Result()
}

func (r *redisClient) Eval(ctx context.Context, script string, keys []string, args ...interface{}) (interface{}, error) {
	result, err := r.client.Eval(ctx, script, keys, args...).Result()
	if err == redis.Nil {
		return nil, nil
	}
	return result, err
}

func (r *redisClient) Close() error {
	return r.client.Close()
}
