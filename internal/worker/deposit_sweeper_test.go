package worker

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeExpirer struct {
	mu      sync.Mutex
	cutoffs []time.Time
	n       int
	err     error
}

func (f *fakeExpirer) ExpireStaleDeposits(_ context.Context, before time.Time) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cutoffs = append(f.cutoffs, before)
	return f.n, f.err
}

func (f *fakeExpirer) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.cutoffs)
}

func TestDepositSweeper_Sweep(t *testing.T) {
	now := time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)
	log := slog.New(slog.NewTextHandler(io.Discard, nil))

	tests := []struct {
		name    string
		n       int
		err     error
		wantErr bool
	}{
		{name: "nothing to expire"},
		{name: "expired some", n: 3},
		{name: "wallet error", err: errors.New("db down"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeExpirer{n: tt.n, err: tt.err}
			w := NewDepositSweeper(fake, 30*time.Minute, time.Minute, log)
			w.now = func() time.Time { return now }

			n, err := w.Sweep(context.Background())
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.n, n)
			require.Len(t, fake.cutoffs, 1)
			assert.Equal(t, now.Add(-30*time.Minute), fake.cutoffs[0])
		})
	}
}

func TestDepositSweeper_StartStop(t *testing.T) {
	fake := &fakeExpirer{}
	w := NewDepositSweeper(fake, time.Minute, 20*time.Millisecond, slog.New(slog.NewTextHandler(io.Discard, nil)))

	require.NoError(t, w.Start(context.Background()))
	assert.Eventually(t, func() bool { return fake.calls() >= 2 }, 2*time.Second, 10*time.Millisecond)
	require.NoError(t, w.Stop())
}
