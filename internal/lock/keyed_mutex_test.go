package lock_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tournament-service/internal/lock"
)

func TestKeyedMutex_Exclusive(t *testing.T) {
	m := lock.NewKeyedMutex(time.Second)

	var inside, maxInside int32
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock, err := m.Lock(context.Background(), "k")
			if !assert.NoError(t, err) {
				return
			}
			defer unlock()

			n := atomic.AddInt32(&inside, 1)
			for {
				cur := atomic.LoadInt32(&maxInside)
				if n <= cur || atomic.CompareAndSwapInt32(&maxInside, cur, n) {
					break
				}
			}
			time.Sleep(time.Millisecond)
			atomic.AddInt32(&inside, -1)
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), maxInside)
}

func TestKeyedMutex_IndependentKeys(t *testing.T) {
	m := lock.NewKeyedMutex(time.Second)

	unlockA, err := m.Lock(context.Background(), "a")
	require.NoError(t, err)
	defer unlockA()

	unlockB, err := m.Lock(context.Background(), "b")
	require.NoError(t, err)
	unlockB()
}

func TestKeyedMutex_Timeout(t *testing.T) {
	m := lock.NewKeyedMutex(20 * time.Millisecond)

	unlock, err := m.Lock(context.Background(), "k")
	require.NoError(t, err)

	_, err = m.Lock(context.Background(), "k")
	assert.ErrorIs(t, err, lock.ErrTimeout)

	unlock()
	// повторный вызов не должен освобождать чужую блокировку
	unlock()

	again, err := m.Lock(context.Background(), "k")
	require.NoError(t, err)
	again()
}
