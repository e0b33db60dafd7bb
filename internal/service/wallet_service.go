package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"tournament-service/internal/lock"
	"tournament-service/internal/model"
	"tournament-service/internal/payment"
	"tournament-service/internal/repository"
)

// LedgerRepository описывает контракт леджера операций кошелька.
type LedgerRepository interface {
	CreateTransaction(ctx context.Context, tx model.Transaction) (model.Transaction, error)
	InsertDebit(ctx context.Context, tx model.Transaction) (model.Transaction, error)
	GetTransaction(ctx context.Context, id string) (model.Transaction, error)
	GetByReference(ctx context.Context, reference string) (model.Transaction, error)
	TransitionStatus(ctx context.Context, id string, from, to model.TransactionStatus) (model.Transaction, error)
	DeleteTransaction(ctx context.Context, id string) error
	ListByUser(ctx context.Context, userID string) ([]model.Transaction, error)
	Balance(ctx context.Context, userID string) (model.Balance, error)
	ListStalePending(ctx context.Context, typ model.TransactionType, before time.Time) ([]model.Transaction, error)
}

// PaymentProcessor описывает внешний процессор платежей.
type PaymentProcessor interface {
	CreateIntent(ctx context.Context, userID string, amount decimal.Decimal) (payment.Intent, error)
	GetOutcome(ctx context.Context, reference string) (payment.Outcome, error)
}

// WalletService ведёт кошельки поверх леджера: баланс, пополнения через процессор и выводы.
type WalletService struct {
	ledger    LedgerRepository
	processor PaymentProcessor
	locker    Locker
	log       *slog.Logger
}

func NewWalletService(ledger LedgerRepository, processor PaymentProcessor, locker Locker, log *slog.Logger) *WalletService {
	return &WalletService{
		ledger:    ledger,
		processor: processor,
		locker:    locker,
		log:       log,
	}
}

// moneyScale совпадает с NUMERIC(18, 2) в схеме.
const moneyScale = 2

// fitsMoneyScale сообщает, хранится ли сумма без округления.
func fitsMoneyScale(d decimal.Decimal) bool {
	return d.Equal(d.Truncate(moneyScale))
}

// RecordTransaction добавляет запись в леджер. Списания проверяются по доступному балансу
// под блокировкой кошелька.
func (s *WalletService) RecordTransaction(ctx context.Context, userID string, typ model.TransactionType, amount decimal.Decimal, status model.TransactionStatus, tournamentID *string) (model.Transaction, error) {
	if userID == "" {
		return model.Transaction{}, ErrBadRequest("user_id is required")
	}
	if !amount.IsPositive() || !fitsMoneyScale(amount) {
		return model.Transaction{}, ErrInvalidAmount
	}
	if !typ.Valid() {
		return model.Transaction{}, ErrBadRequest("unknown transaction type")
	}
	if !status.Valid() {
		return model.Transaction{}, ErrBadRequest("unknown transaction status")
	}
	if typ == model.TxDeduction && status == model.TxPending {
		return model.Transaction{}, ErrBadRequest("deductions are recorded as completed")
	}

	tx := model.Transaction{
		TransactionID: uuid.NewString(),
		UserID:        userID,
		Type:          typ,
		Amount:        amount,
		Status:        status,
		TournamentID:  tournamentID,
	}

	holdsFunds := typ.Debit() && (status == model.TxCompleted || status == model.TxPending)
	if !holdsFunds {
		created, err := s.ledger.CreateTransaction(ctx, tx)
		if err != nil {
			return model.Transaction{}, ErrInternal("failed to record transaction", err)
		}
		return created, nil
	}

	unlock, err := s.locker.Lock(ctx, lock.WalletKey(userID))
	if err != nil {
		return model.Transaction{}, ErrInternal("failed to lock wallet", err)
	}
	defer unlock()

	created, err := s.ledger.InsertDebit(ctx, tx)
	if err != nil {
		if errors.Is(err, repository.ErrInsufficientFunds) {
			return model.Transaction{}, ErrInsufficientFunds
		}
		return model.Transaction{}, ErrInternal("failed to record transaction", err)
	}
	return created, nil
}

// GetBalance возвращает баланс, удержания и доступную сумму.
func (s *WalletService) GetBalance(ctx context.Context, userID string) (model.Balance, error) {
	if userID == "" {
		return model.Balance{}, ErrBadRequest("user_id is required")
	}
	bal, err := s.ledger.Balance(ctx, userID)
	if err != nil {
		return model.Balance{}, ErrInternal("failed to compute balance", err)
	}
	return bal, nil
}

// ListTransactions возвращает историю операций, новые первыми.
func (s *WalletService) ListTransactions(ctx context.Context, userID string) ([]model.Transaction, error) {
	if userID == "" {
		return nil, ErrBadRequest("user_id is required")
	}
	txs, err := s.ledger.ListByUser(ctx, userID)
	if err != nil {
		return nil, ErrInternal("failed to list transactions", err)
	}
	return txs, nil
}

// MarkCompleted переводит pending-операцию в completed. Повторный вызов ничего не меняет.
func (s *WalletService) MarkCompleted(ctx context.Context, id string) (model.Transaction, error) {
	return s.settle(ctx, id, model.TxCompleted)
}

// MarkFailed переводит pending-операцию в failed. Повторный вызов ничего не меняет.
func (s *WalletService) MarkFailed(ctx context.Context, id string) (model.Transaction, error) {
	return s.settle(ctx, id, model.TxFailed)
}

func (s *WalletService) settle(ctx context.Context, id string, target model.TransactionStatus) (model.Transaction, error) {
	tx, err := s.getTransaction(ctx, id)
	if err != nil {
		return model.Transaction{}, err
	}
	if tx.Status == target {
		return tx, nil
	}
	if tx.Status != model.TxPending {
		return model.Transaction{}, withMessage(ErrInvalidTransition,
			fmt.Sprintf("transaction is %s, cannot become %s", tx.Status, target))
	}

	updated, err := s.ledger.TransitionStatus(ctx, id, model.TxPending, target)
	if err == nil {
		return updated, nil
	}
	if !errors.Is(err, repository.ErrStatusConflict) {
		return model.Transaction{}, ErrInternal("failed to update transaction", err)
	}

	// параллельный вызов успел первым
	cur, err := s.getTransaction(ctx, id)
	if err != nil {
		return model.Transaction{}, err
	}
	if cur.Status == target {
		return cur, nil
	}
	return model.Transaction{}, withMessage(ErrInvalidTransition,
		fmt.Sprintf("transaction is %s, cannot become %s", cur.Status, target))
}

func (s *WalletService) getTransaction(ctx context.Context, id string) (model.Transaction, error) {
	if id == "" {
		return model.Transaction{}, ErrBadRequest("transaction_id is required")
	}
	tx, err := s.ledger.GetTransaction(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrTransactionNotFound) {
			return model.Transaction{}, ErrTransactionNotFound
		}
		return model.Transaction{}, ErrInternal("failed to get transaction", err)
	}
	return tx, nil
}

// DeleteTransaction физически удаляет операцию. Баланс пересчитывается при следующем чтении,
// компенсирующих записей не создаётся.
func (s *WalletService) DeleteTransaction(ctx context.Context, id string) error {
	tx, err := s.getTransaction(ctx, id)
	if err != nil {
		return err
	}
	if err := s.ledger.DeleteTransaction(ctx, id); err != nil {
		if errors.Is(err, repository.ErrTransactionNotFound) {
			return ErrTransactionNotFound
		}
		return ErrInternal("failed to delete transaction", err)
	}
	s.log.Warn("ledger row hard-deleted",
		"transaction_id", tx.TransactionID,
		"user_id", tx.UserID,
		"type", tx.Type,
		"amount", tx.Amount.String(),
		"status", tx.Status,
	)
	return nil
}

// AddMoney создаёт намерение оплаты у процессора и pending-пополнение с его референсом.
func (s *WalletService) AddMoney(ctx context.Context, userID string, amount decimal.Decimal) (model.Transaction, error) {
	if userID == "" {
		return model.Transaction{}, ErrBadRequest("user_id is required")
	}
	if !amount.IsPositive() || !fitsMoneyScale(amount) {
		return model.Transaction{}, ErrInvalidAmount
	}

	intent, err := s.processor.CreateIntent(ctx, userID, amount)
	if err != nil {
		return model.Transaction{}, ErrInternal("failed to create payment intent", err)
	}

	tx, err := s.ledger.CreateTransaction(ctx, model.Transaction{
		TransactionID: uuid.NewString(),
		UserID:        userID,
		Type:          model.TxDeposit,
		Amount:        amount,
		Status:        model.TxPending,
		Reference:     intent.Reference,
	})
	if err != nil {
		return model.Transaction{}, ErrInternal("failed to record deposit", err)
	}
	return tx, nil
}

// VerifyPayment сверяет пополнение с процессором. Для завершённых операций ничего не делает.
func (s *WalletService) VerifyPayment(ctx context.Context, userID, reference string) (model.Transaction, error) {
	if reference == "" {
		return model.Transaction{}, ErrBadRequest("reference is required")
	}
	tx, err := s.ledger.GetByReference(ctx, reference)
	if err != nil {
		if errors.Is(err, repository.ErrTransactionNotFound) {
			return model.Transaction{}, ErrTransactionNotFound
		}
		return model.Transaction{}, ErrInternal("failed to get deposit", err)
	}
	if tx.UserID != userID || tx.Type != model.TxDeposit {
		return model.Transaction{}, ErrTransactionNotFound
	}
	if tx.Status != model.TxPending {
		return tx, nil
	}

	outcome, err := s.processor.GetOutcome(ctx, reference)
	if err != nil {
		return model.Transaction{}, ErrInternal("failed to query payment processor", err)
	}
	switch outcome {
	case payment.OutcomeSucceeded:
		return s.MarkCompleted(ctx, tx.TransactionID)
	case payment.OutcomeFailed:
		return s.MarkFailed(ctx, tx.TransactionID)
	default:
		return tx, nil
	}
}

// RequestWithdrawal резервирует сумму pending-выводом. Проверка доступного баланса и вставка
// идут под блокировкой кошелька.
func (s *WalletService) RequestWithdrawal(ctx context.Context, userID string, amount decimal.Decimal) (model.Transaction, error) {
	return s.RecordTransaction(ctx, userID, model.TxWithdrawal, amount, model.TxPending, nil)
}

// CompleteWithdrawal подтверждает вывод после выплаты.
func (s *WalletService) CompleteWithdrawal(ctx context.Context, id string) (model.Transaction, error) {
	if err := s.requireWithdrawal(ctx, id); err != nil {
		return model.Transaction{}, err
	}
	return s.MarkCompleted(ctx, id)
}

// FailWithdrawal отменяет вывод и снимает удержание.
func (s *WalletService) FailWithdrawal(ctx context.Context, id string) (model.Transaction, error) {
	if err := s.requireWithdrawal(ctx, id); err != nil {
		return model.Transaction{}, err
	}
	return s.MarkFailed(ctx, id)
}

func (s *WalletService) requireWithdrawal(ctx context.Context, id string) error {
	tx, err := s.getTransaction(ctx, id)
	if err != nil {
		return err
	}
	if tx.Type != model.TxWithdrawal {
		return ErrBadRequest("transaction is not a withdrawal")
	}
	return nil
}

// ExpireStaleDeposits сверяет с процессором pending-пополнения, созданные раньше before.
// Оплаченные зачисляются, остальные помечаются failed. Возвращает число помеченных failed.
func (s *WalletService) ExpireStaleDeposits(ctx context.Context, before time.Time) (int, error) {
	stale, err := s.ledger.ListStalePending(ctx, model.TxDeposit, before)
	if err != nil {
		return 0, ErrInternal("failed to list stale deposits", err)
	}

	expired := 0
	var errs []error
	for _, tx := range stale {
		outcome, err := s.staleOutcome(ctx, tx)
		if err != nil {
			errs = append(errs, err)
			continue
		}

		settle := s.MarkFailed
		if outcome == payment.OutcomeSucceeded {
			settle = s.MarkCompleted
		}
		updated, err := settle(ctx, tx.TransactionID)
		if err != nil {
			if errors.Is(err, ErrInvalidTransition) {
				// уже подтверждено через VerifyPayment
				continue
			}
			errs = append(errs, err)
			continue
		}

		switch updated.Status {
		case model.TxFailed:
			expired++
		case model.TxCompleted:
			s.log.Info("stale deposit settled by processor",
				slog.String("transaction_id", tx.TransactionID),
				slog.String("reference", tx.Reference),
			)
		}
	}
	return expired, errors.Join(errs...)
}

// staleOutcome запрашивает итог у процессора. Неизвестный процессору референс считается неоплаченным.
func (s *WalletService) staleOutcome(ctx context.Context, tx model.Transaction) (payment.Outcome, error) {
	if tx.Reference == "" {
		return payment.OutcomeFailed, nil
	}
	outcome, err := s.processor.GetOutcome(ctx, tx.Reference)
	if err != nil {
		if errors.Is(err, payment.ErrUnknownReference) {
			return payment.OutcomeFailed, nil
		}
		return "", ErrInternal("failed to query payment processor", err)
	}
	return outcome, nil
}
