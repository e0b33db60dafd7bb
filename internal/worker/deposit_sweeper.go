// Package worker содержит фоновые задачи сервиса.
package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron/v2"
)

// DepositExpirer помечает failed зависшие pending-пополнения.
type DepositExpirer interface {
	ExpireStaleDeposits(ctx context.Context, before time.Time) (int, error)
}

// DepositSweeper периодически закрывает пополнения, которые процессор так и не подтвердил за ttl.
type DepositSweeper struct {
	wallet   DepositExpirer
	ttl      time.Duration
	interval time.Duration
	now      func() time.Time
	log      *slog.Logger

	sched gocron.Scheduler
}

func NewDepositSweeper(wallet DepositExpirer, ttl, interval time.Duration, log *slog.Logger) *DepositSweeper {
	return &DepositSweeper{
		wallet:   wallet,
		ttl:      ttl,
		interval: interval,
		now:      time.Now,
		log:      log,
	}
}

// Sweep выполняет один проход и возвращает число закрытых пополнений.
func (w *DepositSweeper) Sweep(ctx context.Context) (int, error) {
	cutoff := w.now().Add(-w.ttl)
	n, err := w.wallet.ExpireStaleDeposits(ctx, cutoff)
	if err != nil {
		w.log.Error("deposit sweep failed", "cutoff", cutoff, "expired", n, "error", err)
		return n, err
	}
	if n > 0 {
		w.log.Info("stale deposits expired", "cutoff", cutoff, "expired", n)
	}
	return n, nil
}

// Start запускает планировщик. Проходы не перекрываются.
func (w *DepositSweeper) Start(ctx context.Context) error {
	sched, err := gocron.NewScheduler()
	if err != nil {
		return fmt.Errorf("create scheduler: %w", err)
	}

	_, err = sched.NewJob(
		gocron.DurationJob(w.interval),
		gocron.NewTask(func() {
			runCtx, cancel := context.WithTimeout(ctx, w.interval)
			defer cancel()
			_, _ = w.Sweep(runCtx)
		}),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithName("deposit-sweeper"),
	)
	if err != nil {
		_ = sched.Shutdown()
		return fmt.Errorf("schedule deposit sweeper: %w", err)
	}

	sched.Start()
	w.sched = sched
	w.log.Info("deposit sweeper started", "interval", w.interval, "ttl", w.ttl)
	return nil
}

// Stop останавливает планировщик и ждёт завершения текущего прохода.
func (w *DepositSweeper) Stop() error {
	if w.sched == nil {
		return nil
	}
	if err := w.sched.Shutdown(); err != nil {
		return fmt.Errorf("shutdown scheduler: %w", err)
	}
	return nil
}
