package lock

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedisLocker(retry time.Duration) (*RedisLocker, redismock.ClientMock) {
	db, mock := redismock.NewClientMock()
	l := NewRedisLocker(db, time.Second, retry)
	l.tokenFn = func() string { return "token-1" }
	return l, mock
}

func TestRedisLocker_AcquireAndRelease(t *testing.T) {
	l, mock := newTestRedisLocker(time.Millisecond)
	key := SlotKey("SLT1", "2025-01-01")

	mock.ExpectSetNX(redisKeyPrefix+key, "token-1", time.Second).SetVal(true)
	mock.ExpectEval(releaseScript, []string{redisKeyPrefix + key}, "token-1").SetVal(int64(1))

	release, err := l.Lock(context.Background(), key)
	require.NoError(t, err)
	release()
	release()

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisLocker_RetriesWhileHeld(t *testing.T) {
	l, mock := newTestRedisLocker(time.Millisecond)

	mock.ExpectSetNX(redisKeyPrefix+"k", "token-1", time.Second).SetVal(false)
	mock.ExpectSetNX(redisKeyPrefix+"k", "token-1", time.Second).SetVal(false)
	mock.ExpectSetNX(redisKeyPrefix+"k", "token-1", time.Second).SetVal(true)

	release, err := l.Lock(context.Background(), "k")
	require.NoError(t, err)
	require.NotNil(t, release)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisLocker_TimesOut(t *testing.T) {
	l, mock := newTestRedisLocker(time.Hour)
	mock.ExpectSetNX(redisKeyPrefix+"k", "token-1", time.Second).SetVal(false)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := l.Lock(ctx, "k")
	assert.ErrorIs(t, err, ErrLockTimeout)
}

func TestRedisLocker_BackendError(t *testing.T) {
	l, mock := newTestRedisLocker(time.Millisecond)
	mock.ExpectSetNX(redisKeyPrefix+"k", "token-1", time.Second).SetErr(errors.New("connection refused"))

	_, err := l.Lock(context.Background(), "k")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrLockTimeout)
	assert.Contains(t, err.Error(), "connection refused")
}
