package service_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"tournament-service/internal/lock"
	"tournament-service/internal/model"
	"tournament-service/internal/payment"
	"tournament-service/internal/repository/memory"
	"tournament-service/internal/service"
)

// env собирает сервисы поверх общего in-memory хранилища.
type env struct {
	store       *memory.Store
	users       *memory.UserRepo
	teams       *memory.TeamRepo
	tournaments *memory.TournamentRepo
	ledger      *memory.LedgerRepo
	txManager   *memory.TransactionManager
	locker      *lock.KeyedMutex
	processor   *payment.Sandbox

	userSvc       *service.UserService
	teamSvc       *service.TeamService
	tournamentSvc *service.TournamentService
	walletSvc     *service.WalletService
	entrySvc      *service.EntryService
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newEnv(t *testing.T) *env {
	t.Helper()

	store := memory.NewStore()
	e := &env{
		store:       store,
		users:       memory.NewUserRepo(store),
		teams:       memory.NewTeamRepo(store),
		tournaments: memory.NewTournamentRepo(store),
		ledger:      memory.NewLedgerRepo(store),
		txManager:   memory.NewTransactionManager(store),
		locker:      lock.NewKeyedMutex(2 * time.Second),
		processor:   payment.NewSandbox(false),
	}
	e.wire(e.ledger, e.tournaments)
	return e
}

// wire собирает сервисы; ledger и registrations можно подменить обёртками с ошибками.
func (e *env) wire(ledger service.LedgerRepository, registrations service.RegistrationRepository) {
	log := discardLogger()
	e.userSvc = service.NewUserService(e.users)
	e.teamSvc = service.NewTeamService(e.teams, e.users, e.locker, 8)
	e.tournamentSvc = service.NewTournamentService(e.tournaments, registrations, ledger, e.txManager, e.locker, log)
	e.walletSvc = service.NewWalletService(ledger, e.processor, e.locker, log)
	e.entrySvc = service.NewEntryService(e.tournaments, registrations, e.teams, ledger, e.txManager, e.locker, log)
}

func (e *env) fund(t *testing.T, userID string, amount int64) {
	t.Helper()
	_, err := e.walletSvc.RecordTransaction(context.Background(), userID, model.TxDeposit,
		decimal.NewFromInt(amount), model.TxCompleted, nil)
	require.NoError(t, err)
}

func (e *env) balance(t *testing.T, userID string) decimal.Decimal {
	t.Helper()
	bal, err := e.walletSvc.GetBalance(context.Background(), userID)
	require.NoError(t, err)
	return bal.Balance
}

// openTournament создаёт турнир и переводит его в registration_open.
func (e *env) openTournament(t *testing.T, typ model.TournamentType, fee int64, maxSlots int) model.Tournament {
	t.Helper()
	ctx := context.Background()
	tour, err := e.tournamentSvc.CreateTournament(ctx, model.Tournament{
		Name:           "Friday Cup",
		TournamentType: typ,
		EntryFee:       decimal.NewFromInt(fee),
		MaxSlots:       maxSlots,
		TotalPrizePool: decimal.NewFromInt(1000),
		StartTime:      time.Date(2026, 11, 1, 18, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	tour, err = e.tournamentSvc.UpdateStatus(ctx, tour.TournamentID, model.StatusRegistrationOpen)
	require.NoError(t, err)
	return tour
}

// team создаёт команду лидера и принимает в неё members.
func (e *env) team(t *testing.T, leaderID string, typ model.TeamType, members ...string) model.Team {
	t.Helper()
	ctx := context.Background()
	team, err := e.teamSvc.CreateTeam(ctx, leaderID, "Team "+leaderID, typ)
	require.NoError(t, err)
	for _, uid := range members {
		_, err := e.teamSvc.RequestJoin(ctx, uid, team.InviteCode)
		require.NoError(t, err)
		_, err = e.teamSvc.AcceptJoinRequest(ctx, team.TeamID, uid, leaderID)
		require.NoError(t, err)
	}
	return team
}

func (e *env) user(t *testing.T, userID, gameID string) model.User {
	t.Helper()
	u, err := e.userSvc.RegisterUser(context.Background(), model.User{UserID: userID, GameID: gameID, Username: userID})
	require.NoError(t, err)
	return u
}
