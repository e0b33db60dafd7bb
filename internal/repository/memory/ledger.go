package memory

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"tournament-service/internal/model"
	"tournament-service/internal/repository"
)

// LedgerRepo хранит леджер операций кошелька в памяти.
type LedgerRepo struct {
	s *Store
}

// NewLedgerRepo создаёт LedgerRepo поверх Store.
func NewLedgerRepo(s *Store) *LedgerRepo {
	return &LedgerRepo{s: s}
}

func (r *LedgerRepo) CreateTransaction(ctx context.Context, tx model.Transaction) (model.Transaction, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	return r.insertLocked(ctx, tx)
}

// InsertDebit вставляет списание, только если доступный баланс покрывает сумму.
// Проверка и вставка выполняются под одним мьютексом.
func (r *LedgerRepo) InsertDebit(ctx context.Context, tx model.Transaction) (model.Transaction, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if r.balanceLocked(tx.UserID).Available.LessThan(tx.Amount) {
		return model.Transaction{}, repository.ErrInsufficientFunds
	}
	return r.insertLocked(ctx, tx)
}

func (r *LedgerRepo) insertLocked(ctx context.Context, tx model.Transaction) (model.Transaction, error) {
	if tx.Reference != "" {
		for _, row := range r.s.transactions {
			if row.tx.Reference == tx.Reference {
				return model.Transaction{}, repository.ErrReferenceExists
			}
		}
	}
	now := r.s.now()
	tx = cloneTransaction(tx)
	tx.CreatedAt = now
	tx.UpdatedAt = now
	r.s.transactions[tx.TransactionID] = transactionRow{tx: tx, seq: r.s.nextSeq()}
	r.s.record(ctx, func() { delete(r.s.transactions, tx.TransactionID) })
	return cloneTransaction(tx), nil
}

func (r *LedgerRepo) GetTransaction(_ context.Context, id string) (model.Transaction, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	row, ok := r.s.transactions[id]
	if !ok {
		return model.Transaction{}, repository.ErrTransactionNotFound
	}
	return cloneTransaction(row.tx), nil
}

func (r *LedgerRepo) GetByReference(_ context.Context, reference string) (model.Transaction, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, row := range r.s.transactions {
		if row.tx.Reference == reference {
			return cloneTransaction(row.tx), nil
		}
	}
	return model.Transaction{}, repository.ErrTransactionNotFound
}

// TransitionStatus меняет статус операции, только если текущий равен from.
func (r *LedgerRepo) TransitionStatus(ctx context.Context, id string, from, to model.TransactionStatus) (model.Transaction, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	row, ok := r.s.transactions[id]
	if !ok {
		return model.Transaction{}, repository.ErrTransactionNotFound
	}
	if row.tx.Status != from {
		return model.Transaction{}, repository.ErrStatusConflict
	}
	prev := row
	row.tx.Status = to
	row.tx.UpdatedAt = r.s.now()
	r.s.transactions[id] = row
	r.s.record(ctx, func() { r.s.transactions[id] = prev })
	return cloneTransaction(row.tx), nil
}

// DeleteTransaction физически удаляет строку леджера.
func (r *LedgerRepo) DeleteTransaction(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	row, ok := r.s.transactions[id]
	if !ok {
		return repository.ErrTransactionNotFound
	}
	delete(r.s.transactions, id)
	r.s.record(ctx, func() { r.s.transactions[id] = row })
	return nil
}

// ListByUser возвращает операции пользователя, новые первыми.
func (r *LedgerRepo) ListByUser(_ context.Context, userID string) ([]model.Transaction, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	rows := make([]transactionRow, 0)
	for _, row := range r.s.transactions {
		if row.tx.UserID == userID {
			rows = append(rows, row)
		}
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].seq > rows[j].seq })

	res := make([]model.Transaction, 0, len(rows))
	for _, row := range rows {
		res = append(res, cloneTransaction(row.tx))
	}
	return res, nil
}

func (r *LedgerRepo) Balance(_ context.Context, userID string) (model.Balance, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	return r.balanceLocked(userID), nil
}

func (r *LedgerRepo) balanceLocked(userID string) model.Balance {
	balance := decimal.Zero
	held := decimal.Zero
	for _, row := range r.s.transactions {
		if row.tx.UserID != userID {
			continue
		}
		switch {
		case row.tx.Status == model.TxCompleted:
			balance = balance.Add(row.tx.Signed())
		case row.tx.Status == model.TxPending && row.tx.Type == model.TxWithdrawal:
			held = held.Add(row.tx.Amount)
		}
	}
	return model.Balance{
		UserID:    userID,
		Balance:   balance,
		Held:      held,
		Available: balance.Sub(held),
	}
}

// ListStalePending возвращает ожидающие операции типа typ, созданные раньше before.
func (r *LedgerRepo) ListStalePending(_ context.Context, typ model.TransactionType, before time.Time) ([]model.Transaction, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	rows := make([]transactionRow, 0)
	for _, row := range r.s.transactions {
		if row.tx.Type == typ && row.tx.Status == model.TxPending && row.tx.CreatedAt.Before(before) {
			rows = append(rows, row)
		}
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].seq < rows[j].seq })

	res := make([]model.Transaction, 0, len(rows))
	for _, row := range rows {
		res = append(res, cloneTransaction(row.tx))
	}
	return res, nil
}
