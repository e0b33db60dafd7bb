package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tournament-service/internal/model"
	"tournament-service/internal/repository"
	"tournament-service/internal/repository/memory"
)

func newTournament(id string, maxSlots int) model.Tournament {
	return model.Tournament{
		TournamentID:   id,
		Name:           "Weekly " + id,
		TournamentType: model.TournamentSolo,
		EntryFee:       decimal.NewFromInt(100),
		MaxSlots:       maxSlots,
		Status:         model.StatusRegistrationOpen,
		StartTime:      time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestTransactionManager_RollbackOnError(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	tm := memory.NewTransactionManager(store)
	tournaments := memory.NewTournamentRepo(store)
	ledger := memory.NewLedgerRepo(store)

	_, err := tournaments.CreateTournament(ctx, newTournament("t1", 2))
	require.NoError(t, err)

	boom := errors.New("boom")
	err = tm.RunInTransaction(ctx, func(ctx context.Context) error {
		if _, err := tournaments.IncrementSlot(ctx, "t1"); err != nil {
			return err
		}
		if _, err := ledger.CreateTransaction(ctx, model.Transaction{
			TransactionID: "tx1", UserID: "u1", Type: model.TxDeposit,
			Amount: decimal.NewFromInt(50), Status: model.TxCompleted,
		}); err != nil {
			return err
		}
		// вложенная транзакция присоединяется к внешней
		return tm.RunInTransaction(ctx, func(ctx context.Context) error {
			if _, err := tournaments.CreateRegistration(ctx, model.Registration{
				RegistrationID: "r1", TournamentID: "t1", UserID: "u1",
			}); err != nil {
				return err
			}
			return boom
		})
	})
	assert.ErrorIs(t, err, boom)

	got, err := tournaments.GetTournament(ctx, "t1")
	require.NoError(t, err)
	assert.Equal(t, 0, got.CurrentSlots)

	_, err = ledger.GetTransaction(ctx, "tx1")
	assert.ErrorIs(t, err, repository.ErrTransactionNotFound)

	_, err = tournaments.GetRegistration(ctx, "t1", "u1")
	assert.ErrorIs(t, err, repository.ErrRegistrationNotFound)
}

func TestTournamentRepo_IncrementSlot(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	repo := memory.NewTournamentRepo(store)

	_, err := repo.CreateTournament(ctx, newTournament("t1", 1))
	require.NoError(t, err)

	got, err := repo.IncrementSlot(ctx, "t1")
	require.NoError(t, err)
	assert.Equal(t, 1, got.CurrentSlots)

	_, err = repo.IncrementSlot(ctx, "t1")
	assert.ErrorIs(t, err, repository.ErrTournamentFull)

	got, err = repo.DecrementSlot(ctx, "t1")
	require.NoError(t, err)
	assert.Equal(t, 0, got.CurrentSlots)

	got, err = repo.DecrementSlot(ctx, "t1")
	require.NoError(t, err)
	assert.Equal(t, 0, got.CurrentSlots, "slot counter must not go below zero")

	_, err = repo.IncrementSlot(ctx, "missing")
	assert.ErrorIs(t, err, repository.ErrTournamentNotFound)
}

func TestTournamentRepo_SetStatus(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewTournamentRepo(memory.NewStore())

	_, err := repo.CreateTournament(ctx, newTournament("t1", 4))
	require.NoError(t, err)

	got, err := repo.SetStatus(ctx, "t1", model.StatusRegistrationOpen, model.StatusLive)
	require.NoError(t, err)
	assert.Equal(t, model.StatusLive, got.Status)

	_, err = repo.SetStatus(ctx, "t1", model.StatusRegistrationOpen, model.StatusCancelled)
	assert.ErrorIs(t, err, repository.ErrStatusConflict)
}

func TestTournamentRepo_HasEntry(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewTournamentRepo(memory.NewStore())

	tour := newTournament("t1", 4)
	tour.TournamentType = model.TournamentDuo
	_, err := repo.CreateTournament(ctx, tour)
	require.NoError(t, err)

	team := "team-1"
	_, err = repo.CreateRegistration(ctx, model.Registration{
		RegistrationID: "r1", TournamentID: "t1", UserID: "leader", TeamID: &team,
	})
	require.NoError(t, err)

	_, err = repo.CreateRegistration(ctx, model.Registration{
		RegistrationID: "r2", TournamentID: "t1", UserID: "leader",
	})
	assert.ErrorIs(t, err, repository.ErrRegistrationExists)

	tests := []struct {
		name    string
		teamID  *string
		userIDs []string
		want    bool
	}{
		{name: "same user", userIDs: []string{"leader"}, want: true},
		{name: "teammate of registered team", teamID: &team, userIDs: []string{"mate"}, want: true},
		{name: "stranger", userIDs: []string{"other"}, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := repo.HasEntry(ctx, "t1", tt.teamID, tt.userIDs)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLedgerRepo_BalanceAndDebit(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewLedgerRepo(memory.NewStore())

	txs := []model.Transaction{
		{TransactionID: "d1", UserID: "u1", Type: model.TxDeposit, Amount: decimal.NewFromInt(150), Status: model.TxCompleted},
		{TransactionID: "d2", UserID: "u1", Type: model.TxDeposit, Amount: decimal.NewFromInt(500), Status: model.TxPending, Reference: "pi_1"},
		{TransactionID: "w1", UserID: "u1", Type: model.TxWithdrawal, Amount: decimal.NewFromInt(30), Status: model.TxPending},
		{TransactionID: "f1", UserID: "u1", Type: model.TxDeposit, Amount: decimal.NewFromInt(70), Status: model.TxFailed},
	}
	for _, tx := range txs {
		_, err := repo.CreateTransaction(ctx, tx)
		require.NoError(t, err)
	}

	_, err := repo.CreateTransaction(ctx, model.Transaction{
		TransactionID: "d3", UserID: "u1", Type: model.TxDeposit, Amount: decimal.NewFromInt(1), Status: model.TxPending, Reference: "pi_1",
	})
	assert.ErrorIs(t, err, repository.ErrReferenceExists)

	bal, err := repo.Balance(ctx, "u1")
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(150).Equal(bal.Balance))
	assert.True(t, decimal.NewFromInt(30).Equal(bal.Held))
	assert.True(t, decimal.NewFromInt(120).Equal(bal.Available))

	_, err = repo.InsertDebit(ctx, model.Transaction{
		TransactionID: "x1", UserID: "u1", Type: model.TxDeduction, Amount: decimal.NewFromInt(121), Status: model.TxCompleted,
	})
	assert.ErrorIs(t, err, repository.ErrInsufficientFunds)

	_, err = repo.InsertDebit(ctx, model.Transaction{
		TransactionID: "x2", UserID: "u1", Type: model.TxDeduction, Amount: decimal.NewFromInt(120), Status: model.TxCompleted,
	})
	require.NoError(t, err)

	bal, err = repo.Balance(ctx, "u1")
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(30).Equal(bal.Balance))
	assert.True(t, decimal.Zero.Equal(bal.Available))

	list, err := repo.ListByUser(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, list, 5)
	assert.Equal(t, "x2", list[0].TransactionID)
}

func TestLedgerRepo_TransitionStatus(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewLedgerRepo(memory.NewStore())

	_, err := repo.CreateTransaction(ctx, model.Transaction{
		TransactionID: "d1", UserID: "u1", Type: model.TxDeposit, Amount: decimal.NewFromInt(10), Status: model.TxPending,
	})
	require.NoError(t, err)

	got, err := repo.TransitionStatus(ctx, "d1", model.TxPending, model.TxCompleted)
	require.NoError(t, err)
	assert.Equal(t, model.TxCompleted, got.Status)

	_, err = repo.TransitionStatus(ctx, "d1", model.TxPending, model.TxFailed)
	assert.ErrorIs(t, err, repository.ErrStatusConflict)

	_, err = repo.TransitionStatus(ctx, "nope", model.TxPending, model.TxFailed)
	assert.ErrorIs(t, err, repository.ErrTransactionNotFound)
}

func TestLedgerRepo_ListStalePending(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	repo := memory.NewLedgerRepo(store)

	base := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	store.SetClock(func() time.Time { return base })
	_, err := repo.CreateTransaction(ctx, model.Transaction{
		TransactionID: "old", UserID: "u1", Type: model.TxDeposit, Amount: decimal.NewFromInt(10), Status: model.TxPending,
	})
	require.NoError(t, err)

	store.SetClock(func() time.Time { return base.Add(time.Hour) })
	_, err = repo.CreateTransaction(ctx, model.Transaction{
		TransactionID: "new", UserID: "u1", Type: model.TxDeposit, Amount: decimal.NewFromInt(10), Status: model.TxPending,
	})
	require.NoError(t, err)

	stale, err := repo.ListStalePending(ctx, model.TxDeposit, base.Add(30*time.Minute))
	require.NoError(t, err)
	require.Len(t, stale, 1)
	assert.Equal(t, "old", stale[0].TransactionID)
}

func TestTeamRepo_AcceptMembershipCapacity(t *testing.T) {
	ctx := context.Background()
	repo := memory.NewTeamRepo(memory.NewStore())

	_, err := repo.CreateTeam(ctx, model.Team{
		TeamID: "team-1", TeamName: "Duo", TeamType: model.TeamTypeDuo, LeaderID: "leader", InviteCode: "abcd1234",
	})
	require.NoError(t, err)

	got, err := repo.GetTeamByInviteCode(ctx, "ABCD1234")
	require.NoError(t, err)
	assert.Equal(t, "team-1", got.TeamID)

	for _, uid := range []string{"a", "b"} {
		_, err := repo.CreateMembership(ctx, model.Membership{
			TeamID: "team-1", UserID: uid, Status: model.MembershipPending, MemberType: model.MemberTypeJoinRequest,
		})
		require.NoError(t, err)
	}

	_, err = repo.AcceptMembership(ctx, "team-1", "a", model.MemberTypeJoinRequest, 1)
	require.NoError(t, err)

	_, err = repo.AcceptMembership(ctx, "team-1", "b", model.MemberTypeJoinRequest, 1)
	assert.ErrorIs(t, err, repository.ErrTeamFull)

	_, err = repo.AcceptMembership(ctx, "team-1", "b", model.MemberTypeInvite, 1)
	assert.ErrorIs(t, err, repository.ErrMembershipNotFound)

	require.NoError(t, repo.DeleteTeam(ctx, "team-1"))
	_, err = repo.GetMembership(ctx, "team-1", "a")
	assert.ErrorIs(t, err, repository.ErrMembershipNotFound)
}
