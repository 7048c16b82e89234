package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/arnavkapoor/storefront-platform/internal/config"
	repository "github.com/arnavkapoor/storefront-platform/internal/repositories"
	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func redisTestConfig() *config.Config {
	return &config.Config{
		RateConfig: config.RateConfig{
			MaxAttempts: 5,
			WindowSize:  15 * time.Second,
		},
		Security: config.Security{
			CheckoutLockTTL: 30 * time.Second,
		},
	}
}

// The sliding window writes timestamps taken at call time, so the score and
// member arguments cannot be pinned down exactly.
func matchAnyArgs(expected, actual []interface{}) error {
	return nil
}

func TestCheckLoginRateLimit(t *testing.T) {
	ctx := context.Background()
	username := "alice@example.com"
	key := "login_attempts:" + username

	t.Run("AllowedUnderLimit", func(t *testing.T) {
		client, mock := redismock.NewClientMock()
		repo := repository.NewRateLimitRepo(client, redisTestConfig())

		mock.CustomMatch(matchAnyArgs).ExpectZRemRangeByScore(key, "0", "0").SetVal(0)
		mock.CustomMatch(matchAnyArgs).ExpectZAdd(key, redis.Z{}).SetVal(1)
		mock.ExpectZCard(key).SetVal(2)
		mock.ExpectExpire(key, 15*time.Second).SetVal(true)

		allowed, remaining, retryAfter, err := repo.CheckLoginRateLimit(ctx, username)

		require.NoError(t, err)
		assert.True(t, allowed)
		assert.Equal(t, 3, remaining)
		assert.Zero(t, retryAfter)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("BlockedAtLimitReportsRetryAfter", func(t *testing.T) {
		client, mock := redismock.NewClientMock()
		repo := repository.NewRateLimitRepo(client, redisTestConfig())

		oldest := time.Now().Unix() - 10

		mock.CustomMatch(matchAnyArgs).ExpectZRemRangeByScore(key, "0", "0").SetVal(0)
		mock.CustomMatch(matchAnyArgs).ExpectZAdd(key, redis.Z{}).SetVal(1)
		mock.ExpectZCard(key).SetVal(5)
		mock.ExpectExpire(key, 15*time.Second).SetVal(true)
		mock.ExpectZRangeArgsWithScores(redis.ZRangeArgs{Key: key, Start: 0, Stop: 0}).
			SetVal([]redis.Z{{Score: float64(oldest), Member: oldest}})

		allowed, remaining, retryAfter, err := repo.CheckLoginRateLimit(ctx, username)

		require.NoError(t, err)
		assert.False(t, allowed)
		assert.Zero(t, remaining)
		// The oldest attempt was 10s into a 15s window, so roughly 5s remain.
		assert.InDelta(t, 5, retryAfter, 1)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("PipelineFailure", func(t *testing.T) {
		client, mock := redismock.NewClientMock()
		repo := repository.NewRateLimitRepo(client, redisTestConfig())

		mock.CustomMatch(matchAnyArgs).ExpectZRemRangeByScore(key, "0", "0").
			SetErr(errors.New("redis down"))

		allowed, _, _, err := repo.CheckLoginRateLimit(ctx, username)

		require.Error(t, err)
		assert.False(t, allowed)
	})
}

func TestCheckoutLock(t *testing.T) {
	ctx := context.Background()
	userID := uuid.New()
	key := "checkout_lock:" + userID.String()

	t.Run("AcquireSuccess", func(t *testing.T) {
		client, mock := redismock.NewClientMock()
		repo := repository.NewCheckoutLockRepo(client, redisTestConfig())

		mock.ExpectSetNX(key, 1, 30*time.Second).SetVal(true)

		acquired, err := repo.AcquireCheckoutLock(ctx, userID)

		require.NoError(t, err)
		assert.True(t, acquired)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("AcquireContended", func(t *testing.T) {
		client, mock := redismock.NewClientMock()
		repo := repository.NewCheckoutLockRepo(client, redisTestConfig())

		mock.ExpectSetNX(key, 1, 30*time.Second).SetVal(false)

		acquired, err := repo.AcquireCheckoutLock(ctx, userID)

		require.NoError(t, err)
		assert.False(t, acquired)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("AcquireDefaultsTTLWhenUnset", func(t *testing.T) {
		client, mock := redismock.NewClientMock()
		cfg := redisTestConfig()
		cfg.Security.CheckoutLockTTL = 0
		repo := repository.NewCheckoutLockRepo(client, cfg)

		mock.ExpectSetNX(key, 1, 30*time.Second).SetVal(true)

		acquired, err := repo.AcquireCheckoutLock(ctx, userID)

		require.NoError(t, err)
		assert.True(t, acquired)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("AcquireRedisError", func(t *testing.T) {
		client, mock := redismock.NewClientMock()
		repo := repository.NewCheckoutLockRepo(client, redisTestConfig())

		mock.ExpectSetNX(key, 1, 30*time.Second).SetErr(errors.New("redis down"))

		acquired, err := repo.AcquireCheckoutLock(ctx, userID)

		require.Error(t, err)
		assert.False(t, acquired)
	})

	t.Run("ReleaseSuccess", func(t *testing.T) {
		client, mock := redismock.NewClientMock()
		repo := repository.NewCheckoutLockRepo(client, redisTestConfig())

		mock.ExpectDel(key).SetVal(1)

		err := repo.ReleaseCheckoutLock(ctx, userID)

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("ReleaseRedisError", func(t *testing.T) {
		client, mock := redismock.NewClientMock()
		repo := repository.NewCheckoutLockRepo(client, redisTestConfig())

		mock.ExpectDel(key).SetErr(errors.New("redis down"))

		err := repo.ReleaseCheckoutLock(ctx, userID)

		require.Error(t, err)
	})
}
