package lock_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tournament-service/internal/lock"
)

func newRedisLocker(t *testing.T, wait time.Duration) (*lock.RedisLocker, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return lock.NewRedisLocker(client, 5*time.Second, wait), mr
}

func TestRedisLocker_LockUnlock(t *testing.T) {
	l, mr := newRedisLocker(t, 100*time.Millisecond)
	ctx := context.Background()

	unlock, err := l.Lock(ctx, lock.WalletKey("u1"))
	require.NoError(t, err)
	assert.True(t, mr.Exists("lock:wallet:u1"))

	_, err = l.Lock(ctx, lock.WalletKey("u1"))
	assert.ErrorIs(t, err, lock.ErrTimeout)

	unlock()
	assert.False(t, mr.Exists("lock:wallet:u1"))

	unlock2, err := l.Lock(ctx, lock.WalletKey("u1"))
	require.NoError(t, err)
	unlock2()
}

func TestRedisLocker_UnlockKeepsForeignOwner(t *testing.T) {
	l, mr := newRedisLocker(t, 100*time.Millisecond)
	ctx := context.Background()

	unlock, err := l.Lock(ctx, "k")
	require.NoError(t, err)

	// ключ истёк и был захвачен другим владельцем
	mr.FastForward(10 * time.Second)
	require.NoError(t, mr.Set("lock:k", "someone-else"))

	unlock()
	got, err := mr.Get("lock:k")
	require.NoError(t, err)
	assert.Equal(t, "someone-else", got)
}
