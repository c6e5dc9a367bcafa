package lock_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/feral-file/ff-orderbook-cache/internal/lock"
	mockspkg "github.com/feral-file/ff-orderbook-cache/internal/mocks"
)

func TestRedisLocker_Acquire(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	client := mockspkg.NewMockRedisClient(ctrl)
	locker := lock.NewRedisLocker(client)

	var token string
	client.EXPECT().
		SetNX(gomock.Any(), "clean-lock", gomock.Any(), 55*time.Second).
		DoAndReturn(func(ctx context.Context, key, value string, ttl time.Duration) (bool, error) {
			token = value
			return true, nil
		})

	lease, err := locker.Acquire(context.Background(), "clean-lock", 55*time.Second)
	require.NoError(t, err)
	require.NotNil(t, lease)
	assert.Equal(t, "clean-lock", lease.Key())
	assert.NotEmpty(t, token)

	// Release only deletes the key while it still holds this lease's token
	client.EXPECT().
		Eval(gomock.Any(), gomock.Any(), []string{"clean-lock"}, token).
		Return(int64(1), nil)

	assert.NoError(t, lease.Release(context.Background()))
}

func TestRedisLocker_Acquire_HeldElsewhere(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	client := mockspkg.NewMockRedisClient(ctrl)
	locker := lock.NewRedisLocker(client)

	client.EXPECT().
		SetNX(gomock.Any(), "clean-lock", gomock.Any(), time.Second).
		Return(false, nil)

	lease, err := locker.Acquire(context.Background(), "clean-lock", time.Second)
	assert.ErrorIs(t, err, lock.ErrNotAcquired)
	assert.Nil(t, lease)
}

func TestRedisLocker_Acquire_RedisError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	client := mockspkg.NewMockRedisClient(ctrl)
	locker := lock.NewRedisLocker(client)

	redisErr := errors.New("dial tcp: connection refused")
	client.EXPECT().
		SetNX(gomock.Any(), "clean-lock", gomock.Any(), time.Second).
		Return(false, redisErr)

	lease, err := locker.Acquire(context.Background(), "clean-lock", time.Second)
	assert.ErrorIs(t, err, redisErr)
	assert.NotErrorIs(t, err, lock.ErrNotAcquired)
	assert.Nil(t, lease)
}

func TestRedisLocker_Acquire_InvalidTTL(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	locker := lock.NewRedisLocker(mockspkg.NewMockRedisClient(ctrl))

	_, err := locker.Acquire(context.Background(), "clean-lock", 0)
	assert.Error(t, err)
}

func TestRedisLocker_UniqueTokens(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	client := mockspkg.NewMockRedisClient(ctrl)
	locker := lock.NewRedisLocker(client)

	tokens := map[string]struct{}{}
	client.EXPECT().
		SetNX(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, key, value string, ttl time.Duration) (bool, error) {
			tokens[value] = struct{}{}
			return true, nil
		}).
		Times(2)

	_, err := locker.Acquire(context.Background(), "a", time.Second)
	require.NoError(t, err)
	_, err = locker.Acquire(context.Background(), "b", time.Second)
	require.NoError(t, err)

	assert.Len(t, tokens, 2)
}

func TestRedisLease_Release_Error(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	client := mockspkg.NewMockRedisClient(ctrl)
	locker := lock.NewRedisLocker(client)

	client.EXPECT().SetNX(gomock.Any(), "k", gomock.Any(), time.Second).Return(true, nil)
	lease, err := locker.Acquire(context.Background(), "k", time.Second)
	require.NoError(t, err)

	evalErr := errors.New("NOSCRIPT")
	client.EXPECT().
		Eval(gomock.Any(), gomock.Any(), []string{"k"}, gomock.Any()).
		Return(nil, evalErr)

	assert.ErrorIs(t, lease.Release(context.Background()), evalErr)
}
