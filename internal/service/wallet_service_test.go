package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"tournament-service/internal/lock"
	"tournament-service/internal/model"
	"tournament-service/internal/payment"
	"tournament-service/internal/repository"
	"tournament-service/internal/service"
	"tournament-service/internal/service/mocks"
)

func TestWalletService_RecordTransaction(t *testing.T) {
	tests := []struct {
		name    string
		typ     model.TransactionType
		amount  string
		status  model.TransactionStatus
		wantErr error
	}{
		{name: "Success: deposit", typ: model.TxDeposit, amount: "10", status: model.TxCompleted},
		{name: "Success: completed withdrawal within balance", typ: model.TxWithdrawal, amount: "100", status: model.TxCompleted},
		{name: "Fail: zero amount", typ: model.TxDeposit, amount: "0", status: model.TxCompleted, wantErr: service.ErrInvalidAmount},
		{name: "Fail: negative amount", typ: model.TxRefund, amount: "-5", status: model.TxCompleted, wantErr: service.ErrInvalidAmount},
		{name: "Fail: sub-cent amount", typ: model.TxDeposit, amount: "0.001", status: model.TxCompleted, wantErr: service.ErrInvalidAmount},
		{name: "Fail: three decimal places", typ: model.TxWithdrawal, amount: "10.005", status: model.TxCompleted, wantErr: service.ErrInvalidAmount},
		{name: "Success: trailing zeros within scale", typ: model.TxDeposit, amount: "10.500", status: model.TxCompleted},
		{name: "Fail: overdraft", typ: model.TxDeduction, amount: "101", status: model.TxCompleted, wantErr: service.ErrInsufficientFunds},
		{name: "Fail: unknown type", typ: "bonus", amount: "1", status: model.TxCompleted, wantErr: service.ErrBadRequest("")},
		{name: "Fail: pending deduction", typ: model.TxDeduction, amount: "1", status: model.TxPending, wantErr: service.ErrBadRequest("")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEnv(t)
			e.fund(t, "u1", 100)

			tx, err := e.walletSvc.RecordTransaction(context.Background(), "u1", tt.typ, decimal.RequireFromString(tt.amount), tt.status, nil)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.typ, tx.Type)
			assert.False(t, e.balance(t, "u1").IsNegative())
		})
	}
}

func TestWalletService_MarkCompleted(t *testing.T) {
	pending := model.Transaction{TransactionID: "tx1", UserID: "u1", Type: model.TxDeposit, Amount: decimal.NewFromInt(100), Status: model.TxPending}
	done := pending
	done.Status = model.TxCompleted
	failed := pending
	failed.Status = model.TxFailed

	tests := []struct {
		name       string
		setupMocks func(ledger *mocks.LedgerRepository)
		wantStatus model.TransactionStatus
		wantErr    error
	}{
		{
			name: "Success: pending to completed",
			setupMocks: func(ledger *mocks.LedgerRepository) {
				ledger.On("GetTransaction", mock.Anything, "tx1").Return(pending, nil)
				ledger.On("TransitionStatus", mock.Anything, "tx1", model.TxPending, model.TxCompleted).Return(done, nil)
			},
			wantStatus: model.TxCompleted,
		},
		{
			name: "Success: already completed is a no-op",
			setupMocks: func(ledger *mocks.LedgerRepository) {
				ledger.On("GetTransaction", mock.Anything, "tx1").Return(done, nil)
			},
			wantStatus: model.TxCompleted,
		},
		{
			name: "Success: concurrent completion wins the race",
			setupMocks: func(ledger *mocks.LedgerRepository) {
				ledger.On("GetTransaction", mock.Anything, "tx1").Return(pending, nil).Once()
				ledger.On("TransitionStatus", mock.Anything, "tx1", model.TxPending, model.TxCompleted).
					Return(model.Transaction{}, repository.ErrStatusConflict)
				ledger.On("GetTransaction", mock.Anything, "tx1").Return(done, nil).Once()
			},
			wantStatus: model.TxCompleted,
		},
		{
			name: "Fail: from failed",
			setupMocks: func(ledger *mocks.LedgerRepository) {
				ledger.On("GetTransaction", mock.Anything, "tx1").Return(failed, nil)
			},
			wantErr: service.ErrInvalidTransition,
		},
		{
			name: "Fail: concurrent failure wins the race",
			setupMocks: func(ledger *mocks.LedgerRepository) {
				ledger.On("GetTransaction", mock.Anything, "tx1").Return(pending, nil).Once()
				ledger.On("TransitionStatus", mock.Anything, "tx1", model.TxPending, model.TxCompleted).
					Return(model.Transaction{}, repository.ErrStatusConflict)
				ledger.On("GetTransaction", mock.Anything, "tx1").Return(failed, nil).Once()
			},
			wantErr: service.ErrInvalidTransition,
		},
		{
			name: "Fail: not found",
			setupMocks: func(ledger *mocks.LedgerRepository) {
				ledger.On("GetTransaction", mock.Anything, "tx1").Return(model.Transaction{}, repository.ErrTransactionNotFound)
			},
			wantErr: service.ErrTransactionNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ledger := mocks.NewLedgerRepository(t)
			processor := mocks.NewPaymentProcessor(t)
			tt.setupMocks(ledger)

			svc := service.NewWalletService(ledger, processor, lock.NewKeyedMutex(time.Second), discardLogger())
			got, err := svc.MarkCompleted(context.Background(), "tx1")

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, got.Status)
		})
	}
}

func TestWalletService_AddMoneyProcessorError(t *testing.T) {
	ledger := mocks.NewLedgerRepository(t)
	processor := mocks.NewPaymentProcessor(t)
	processor.On("CreateIntent", mock.Anything, "u1", mock.AnythingOfType("decimal.Decimal")).
		Return(payment.Intent{}, assert.AnError)

	svc := service.NewWalletService(ledger, processor, lock.NewKeyedMutex(time.Second), discardLogger())
	_, err := svc.AddMoney(context.Background(), "u1", decimal.NewFromInt(10))
	assert.ErrorIs(t, err, assert.AnError)
	ledger.AssertNotCalled(t, "CreateTransaction", mock.Anything, mock.Anything)
}

func TestWalletService_MoneyScale(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	e.fund(t, "u1", 100)

	_, err := e.walletSvc.AddMoney(ctx, "u1", decimal.RequireFromString("100.005"))
	assert.ErrorIs(t, err, service.ErrInvalidAmount)

	_, err = e.walletSvc.RequestWithdrawal(ctx, "u1", decimal.RequireFromString("0.001"))
	assert.ErrorIs(t, err, service.ErrInvalidAmount)

	dep, err := e.walletSvc.AddMoney(ctx, "u1", decimal.RequireFromString("25.50"))
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("25.5").Equal(dep.Amount))
	assert.True(t, decimal.NewFromInt(100).Equal(e.balance(t, "u1")))
}

// addMoney(100) → pending; verifyPayment завершает; повторный verify ничего не меняет.
func TestWalletService_AddMoneyVerifyIdempotent(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)

	dep, err := e.walletSvc.AddMoney(ctx, "u1", decimal.NewFromInt(100))
	require.NoError(t, err)
	assert.Equal(t, model.TxPending, dep.Status)
	assert.NotEmpty(t, dep.Reference)
	assert.True(t, e.balance(t, "u1").IsZero(), "pending deposit does not count")

	// процессор ещё не подтвердил
	got, err := e.walletSvc.VerifyPayment(ctx, "u1", dep.Reference)
	require.NoError(t, err)
	assert.Equal(t, model.TxPending, got.Status)

	require.NoError(t, e.processor.Settle(dep.Reference, payment.OutcomeSucceeded))
	got, err = e.walletSvc.VerifyPayment(ctx, "u1", dep.Reference)
	require.NoError(t, err)
	assert.Equal(t, model.TxCompleted, got.Status)
	assert.True(t, decimal.NewFromInt(100).Equal(e.balance(t, "u1")))

	got, err = e.walletSvc.VerifyPayment(ctx, "u1", dep.Reference)
	require.NoError(t, err)
	assert.Equal(t, model.TxCompleted, got.Status)
	assert.True(t, decimal.NewFromInt(100).Equal(e.balance(t, "u1")), "duplicate verify must not change balance")

	_, err = e.walletSvc.VerifyPayment(ctx, "someone-else", dep.Reference)
	assert.ErrorIs(t, err, service.ErrTransactionNotFound)

	_, err = e.walletSvc.AddMoney(ctx, "u1", decimal.Zero)
	assert.ErrorIs(t, err, service.ErrInvalidAmount)
}

func TestWalletService_VerifyFailedPayment(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)

	dep, err := e.walletSvc.AddMoney(ctx, "u1", decimal.NewFromInt(100))
	require.NoError(t, err)
	require.NoError(t, e.processor.Settle(dep.Reference, payment.OutcomeFailed))

	got, err := e.walletSvc.VerifyPayment(ctx, "u1", dep.Reference)
	require.NoError(t, err)
	assert.Equal(t, model.TxFailed, got.Status)
	assert.True(t, e.balance(t, "u1").IsZero())

	_, err = e.walletSvc.MarkCompleted(ctx, dep.TransactionID)
	assert.ErrorIs(t, err, service.ErrInvalidTransition)
}

func TestWalletService_Withdrawal(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	e.fund(t, "u1", 100)

	_, err := e.walletSvc.RequestWithdrawal(ctx, "u1", decimal.NewFromInt(101))
	assert.ErrorIs(t, err, service.ErrInsufficientFunds)

	w, err := e.walletSvc.RequestWithdrawal(ctx, "u1", decimal.NewFromInt(70))
	require.NoError(t, err)
	assert.Equal(t, model.TxPending, w.Status)

	bal, err := e.walletSvc.GetBalance(ctx, "u1")
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(100).Equal(bal.Balance))
	assert.True(t, decimal.NewFromInt(70).Equal(bal.Held))
	assert.True(t, decimal.NewFromInt(30).Equal(bal.Available))

	_, err = e.walletSvc.RequestWithdrawal(ctx, "u1", decimal.NewFromInt(31))
	assert.ErrorIs(t, err, service.ErrInsufficientFunds, "held funds cannot be spent twice")

	_, err = e.walletSvc.FailWithdrawal(ctx, w.TransactionID)
	require.NoError(t, err)
	bal, err = e.walletSvc.GetBalance(ctx, "u1")
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(100).Equal(bal.Available))

	w2, err := e.walletSvc.RequestWithdrawal(ctx, "u1", decimal.NewFromInt(40))
	require.NoError(t, err)
	_, err = e.walletSvc.CompleteWithdrawal(ctx, w2.TransactionID)
	require.NoError(t, err)
	bal, err = e.walletSvc.GetBalance(ctx, "u1")
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(60).Equal(bal.Balance))
	assert.True(t, bal.Held.IsZero())

	deposits, err := e.walletSvc.ListTransactions(ctx, "u1")
	require.NoError(t, err)
	_, err = e.walletSvc.CompleteWithdrawal(ctx, deposits[len(deposits)-1].TransactionID)
	assert.ErrorIs(t, err, service.ErrBadRequest(""))
}

func TestWalletService_DeleteTransaction(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	e.fund(t, "u1", 100)

	txs, err := e.walletSvc.ListTransactions(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, txs, 1)

	require.NoError(t, e.walletSvc.DeleteTransaction(ctx, txs[0].TransactionID))
	assert.True(t, e.balance(t, "u1").IsZero(), "balance recomputed without the row")
	assert.ErrorIs(t, e.walletSvc.DeleteTransaction(ctx, txs[0].TransactionID), service.ErrTransactionNotFound)
}

func TestWalletService_ExpireStaleDeposits(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)

	base := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	e.store.SetClock(func() time.Time { return base })
	old, err := e.walletSvc.AddMoney(ctx, "u1", decimal.NewFromInt(10))
	require.NoError(t, err)
	confirmed, err := e.walletSvc.AddMoney(ctx, "u1", decimal.NewFromInt(20))
	require.NoError(t, err)
	_, err = e.walletSvc.MarkCompleted(ctx, confirmed.TransactionID)
	require.NoError(t, err)

	e.store.SetClock(func() time.Time { return base.Add(time.Hour) })
	fresh, err := e.walletSvc.AddMoney(ctx, "u1", decimal.NewFromInt(30))
	require.NoError(t, err)

	n, err := e.walletSvc.ExpireStaleDeposits(ctx, base.Add(30*time.Minute))
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	got, err := e.ledger.GetTransaction(ctx, old.TransactionID)
	require.NoError(t, err)
	assert.Equal(t, model.TxFailed, got.Status)

	got, err = e.ledger.GetTransaction(ctx, fresh.TransactionID)
	require.NoError(t, err)
	assert.Equal(t, model.TxPending, got.Status)
}

// Процессор подтвердил оплату, но verify не вызывали: уборка зачисляет, а не роняет пополнение.
func TestWalletService_ExpireStaleDepositsSettledByProcessor(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)

	base := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	e.store.SetClock(func() time.Time { return base })
	paid, err := e.walletSvc.AddMoney(ctx, "u1", decimal.NewFromInt(100))
	require.NoError(t, err)
	declined, err := e.walletSvc.AddMoney(ctx, "u1", decimal.NewFromInt(40))
	require.NoError(t, err)
	require.NoError(t, e.processor.Settle(paid.Reference, payment.OutcomeSucceeded))
	require.NoError(t, e.processor.Settle(declined.Reference, payment.OutcomeFailed))

	n, err := e.walletSvc.ExpireStaleDeposits(ctx, base.Add(time.Minute))
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	got, err := e.ledger.GetTransaction(ctx, paid.TransactionID)
	require.NoError(t, err)
	assert.Equal(t, model.TxCompleted, got.Status)

	got, err = e.ledger.GetTransaction(ctx, declined.TransactionID)
	require.NoError(t, err)
	assert.Equal(t, model.TxFailed, got.Status)

	assert.True(t, decimal.NewFromInt(100).Equal(e.balance(t, "u1")))

	verified, err := e.walletSvc.VerifyPayment(ctx, "u1", paid.Reference)
	require.NoError(t, err)
	assert.Equal(t, model.TxCompleted, verified.Status)
	assert.True(t, decimal.NewFromInt(100).Equal(e.balance(t, "u1")), "verify after sweep does not credit twice")
}

func TestWalletService_ExpireStaleDepositsProcessorError(t *testing.T) {
	stale := model.Transaction{TransactionID: "tx1", UserID: "u1", Type: model.TxDeposit, Amount: decimal.NewFromInt(10), Status: model.TxPending, Reference: "pi_1"}
	lost := model.Transaction{TransactionID: "tx2", UserID: "u1", Type: model.TxDeposit, Amount: decimal.NewFromInt(5), Status: model.TxPending, Reference: "pi_2"}
	lostFailed := lost
	lostFailed.Status = model.TxFailed

	ledger := mocks.NewLedgerRepository(t)
	processor := mocks.NewPaymentProcessor(t)
	ledger.On("ListStalePending", mock.Anything, model.TxDeposit, mock.AnythingOfType("time.Time")).
		Return([]model.Transaction{stale, lost}, nil)
	processor.On("GetOutcome", mock.Anything, "pi_1").Return(payment.Outcome(""), assert.AnError)
	processor.On("GetOutcome", mock.Anything, "pi_2").Return(payment.Outcome(""), payment.ErrUnknownReference)
	ledger.On("GetTransaction", mock.Anything, "tx2").Return(lost, nil)
	ledger.On("TransitionStatus", mock.Anything, "tx2", model.TxPending, model.TxFailed).Return(lostFailed, nil)

	svc := service.NewWalletService(ledger, processor, lock.NewKeyedMutex(time.Second), discardLogger())
	n, err := svc.ExpireStaleDeposits(context.Background(), time.Now())
	assert.ErrorIs(t, err, assert.AnError)
	assert.Equal(t, 1, n)
	ledger.AssertNotCalled(t, "GetTransaction", mock.Anything, "tx1")
}
