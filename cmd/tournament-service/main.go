// Package main запускает HTTP-сервис турниров, команд и кошельков
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"tournament-service/internal/config"
	httpapi "tournament-service/internal/http"
	"tournament-service/internal/lock"
	"tournament-service/internal/payment"
	"tournament-service/internal/repository"
	"tournament-service/internal/repository/memory"
	"tournament-service/internal/service"
	"tournament-service/internal/worker"
)

// storage собирает набор репозиториев выбранного драйвера.
type storage struct {
	users       service.UserRepository
	teams       service.TeamRepository
	tournaments interface {
		service.TournamentRepository
		service.RegistrationRepository
	}
	ledger    service.LedgerRepository
	txManager service.TransactionManager
	close     func()
}

func main() {
	// Контекст для корректного завершения
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// .env необязателен, переменные окружения имеют приоритет
	_ = godotenv.Load()

	// Инициализация логгера (JSON)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// 1. Хранилище
	store, err := openStorage(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("failed to init storage: %v", err)
	}
	defer store.close()

	// 2. Блокировки
	locker, closeLocker, err := newLocker(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("failed to init locker: %v", err)
	}
	defer closeLocker()

	// 3. Сервисы
	processor := payment.NewSandbox(true)

	userService := service.NewUserService(store.users)
	teamService := service.NewTeamService(store.teams, store.users, locker, cfg.InviteCodeLength)
	walletService := service.NewWalletService(store.ledger, processor, locker, logger)
	tournamentService := service.NewTournamentService(
		store.tournaments, store.tournaments, store.ledger, store.txManager, locker, logger,
	)
	entryService := service.NewEntryService(
		store.tournaments, store.tournaments, store.teams, store.ledger, store.txManager, locker, logger,
	)

	// 4. Фоновые задачи
	sweeper := worker.NewDepositSweeper(walletService, cfg.DepositTTL, cfg.SweepInterval, logger)
	if err := sweeper.Start(ctx); err != nil {
		log.Fatalf("failed to start deposit sweeper: %v", err)
	}

	// 5. HTTP
	handler := httpapi.NewHandler(teamService, tournamentService, entryService, walletService, userService, logger)
	handler.AllowedOrigins = cfg.CORSOrigins

	server := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           handler.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Запуск сервера в горутине
	go func() {
		logger.Info("starting http server",
			slog.String("addr", server.Addr),
			slog.String("storage", cfg.StorageDriver),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", slog.Any("err", err))
			cancel()
		}
	}()

	// Graceful Shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
	case <-ctx.Done():
	}
	logger.Info("shutting down server")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancelShutdown()

	if err := server.Shutdown(ctxShutdown); err != nil {
		logger.Error("server shutdown error", slog.Any("err", err))
	}
	if err := sweeper.Stop(); err != nil {
		logger.Error("deposit sweeper stop error", slog.Any("err", err))
	}

	logger.Info("server stopped")
}

func openStorage(ctx context.Context, cfg config.Config, logger *slog.Logger) (storage, error) {
	if cfg.StorageDriver == config.DriverMemory {
		logger.Warn("using in-memory storage, data is lost on restart")
		s := memory.NewStore()
		return storage{
			users:       memory.NewUserRepo(s),
			teams:       memory.NewTeamRepo(s),
			tournaments: memory.NewTournamentRepo(s),
			ledger:      memory.NewLedgerRepo(s),
			txManager:   memory.NewTransactionManager(s),
			close:       func() {},
		}, nil
	}

	db, err := repository.NewPostgres(ctx, cfg.DBDSN, cfg.DBMaxConns, cfg.DBConnectTimeout)
	if err != nil {
		return storage{}, err
	}
	if cfg.MigrateOnStart {
		if err := db.Migrate(ctx); err != nil {
			db.Close()
			return storage{}, err
		}
		logger.Info("schema migrated")
	}

	return storage{
		users:       repository.NewUserRepo(db),
		teams:       repository.NewTeamRepo(db),
		tournaments: repository.NewTournamentRepo(db),
		ledger:      repository.NewLedgerRepo(db),
		txManager:   repository.NewTransactionManager(db),
		close:       db.Close,
	}, nil
}

// newLocker выбирает распределённую блокировку при заданном REDIS_ADDR, иначе внутрипроцессную.
func newLocker(ctx context.Context, cfg config.Config, logger *slog.Logger) (service.Locker, func(), error) {
	if cfg.RedisAddr == "" {
		return lock.NewKeyedMutex(cfg.LockWait), func() {}, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, nil, fmt.Errorf("ping redis: %w", err)
	}
	logger.Info("using redis locks", slog.String("addr", cfg.RedisAddr))

	return lock.NewRedisLocker(client, cfg.LockTTL, cfg.LockWait), func() { _ = client.Close() }, nil
}
