package lock

import (
	"context"
	"fmt"
	"sync"
	"time"
)

// KeyedMutex выдаёт блокировки по ключу внутри одного процесса.
type KeyedMutex struct {
	mu   sync.Mutex
	keys map[string]*keyLock
	wait time.Duration
}

type keyLock struct {
	ch   chan struct{}
	refs int
}

// NewKeyedMutex создаёт KeyedMutex. wait ограничивает ожидание блокировки (0 означает ждать до отмены ctx).
func NewKeyedMutex(wait time.Duration) *KeyedMutex {
	return &KeyedMutex{
		keys: make(map[string]*keyLock),
		wait: wait,
	}
}

// Lock захватывает ключ или возвращает ErrTimeout.
func (m *KeyedMutex) Lock(ctx context.Context, key string) (func(), error) {
	m.mu.Lock()
	kl, ok := m.keys[key]
	if !ok {
		kl = &keyLock{ch: make(chan struct{}, 1)}
		m.keys[key] = kl
	}
	kl.refs++
	m.mu.Unlock()

	if m.wait > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, m.wait)
		defer cancel()
	}

	select {
	case kl.ch <- struct{}{}:
		var once sync.Once
		return func() {
			once.Do(func() {
				<-kl.ch
				m.release(key, kl)
			})
		}, nil
	case <-ctx.Done():
		m.release(key, kl)
		return nil, fmt.Errorf("%w: %s: %v", ErrTimeout, key, ctx.Err())
	}
}

func (m *KeyedMutex) release(key string, kl *keyLock) {
	m.mu.Lock()
	defer m.mu.Unlock()
	kl.refs--
	if kl.refs == 0 {
		delete(m.keys, key)
	}
}
