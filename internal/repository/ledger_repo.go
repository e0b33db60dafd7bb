package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"tournament-service/internal/model"
)

// LedgerRepo хранит операции кошелька в PostgreSQL.
type LedgerRepo struct {
	db *Postgres
}

func NewLedgerRepo(db *Postgres) *LedgerRepo {
	return &LedgerRepo{db: db}
}

const transactionColumns = `transaction_id, user_id, type, amount, status, tournament_id, COALESCE(reference, ''), created_at, updated_at`

func scanTransaction(row pgx.Row) (model.Transaction, error) {
	var tx model.Transaction
	err := row.Scan(&tx.TransactionID, &tx.UserID, &tx.Type, &tx.Amount, &tx.Status, &tx.TournamentID,
		&tx.Reference, &tx.CreatedAt, &tx.UpdatedAt)
	return tx, err
}

const balanceQuery = `
SELECT
    COALESCE(SUM(CASE
        WHEN status = 'completed' AND type IN ('deposit', 'refund') THEN amount
        WHEN status = 'completed' THEN -amount
    END), 0),
    COALESCE(SUM(amount) FILTER (WHERE status = 'pending' AND type = 'withdrawal'), 0)
FROM transactions
WHERE user_id = $1`

func (r *LedgerRepo) CreateTransaction(ctx context.Context, tx model.Transaction) (model.Transaction, error) {
	return r.insert(ctx, r.db.GetQueryExecutor(ctx), tx)
}

// InsertDebit вставляет списание под advisory-lock пользователя, только если доступный баланс покрывает сумму.
func (r *LedgerRepo) InsertDebit(ctx context.Context, tx model.Transaction) (model.Transaction, error) {
	var res model.Transaction
	err := r.db.inTx(ctx, func(q DBTX) error {
		if _, err := q.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, tx.UserID); err != nil {
			return fmt.Errorf("lock wallet: %w", err)
		}
		bal, err := r.balance(ctx, q, tx.UserID)
		if err != nil {
			return err
		}
		if bal.Available.LessThan(tx.Amount) {
			return ErrInsufficientFunds
		}
		res, err = r.insert(ctx, q, tx)
		return err
	})
	return res, err
}

func (r *LedgerRepo) insert(ctx context.Context, q DBTX, tx model.Transaction) (model.Transaction, error) {
	res, err := scanTransaction(q.QueryRow(ctx, `
INSERT INTO transactions (transaction_id, user_id, type, amount, status, tournament_id, reference)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING `+transactionColumns,
		tx.TransactionID, tx.UserID, tx.Type, tx.Amount, tx.Status, tx.TournamentID, nullable(tx.Reference)))
	if err != nil {
		if isUniqueViolation(err, "transactions_reference_key") {
			return model.Transaction{}, ErrReferenceExists
		}
		return model.Transaction{}, fmt.Errorf("insert transaction: %w", err)
	}
	return res, nil
}

func (r *LedgerRepo) GetTransaction(ctx context.Context, id string) (model.Transaction, error) {
	return r.getOne(ctx, `SELECT `+transactionColumns+` FROM transactions WHERE transaction_id = $1`, id)
}

func (r *LedgerRepo) GetByReference(ctx context.Context, reference string) (model.Transaction, error) {
	return r.getOne(ctx, `SELECT `+transactionColumns+` FROM transactions WHERE reference = $1`, reference)
}

func (r *LedgerRepo) getOne(ctx context.Context, query string, args ...any) (model.Transaction, error) {
	q := r.db.GetQueryExecutor(ctx)
	tx, err := scanTransaction(q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Transaction{}, ErrTransactionNotFound
		}
		return model.Transaction{}, fmt.Errorf("get transaction: %w", err)
	}
	return tx, nil
}

// TransitionStatus меняет статус операции, только если текущий равен from.
func (r *LedgerRepo) TransitionStatus(ctx context.Context, id string, from, to model.TransactionStatus) (model.Transaction, error) {
	q := r.db.GetQueryExecutor(ctx)
	tx, err := scanTransaction(q.QueryRow(ctx, `
UPDATE transactions
SET status = $3, updated_at = clock_timestamp()
WHERE transaction_id = $1 AND status = $2
RETURNING `+transactionColumns, id, from, to))
	if err == nil {
		return tx, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return model.Transaction{}, fmt.Errorf("transition transaction: %w", err)
	}
	if _, err := r.GetTransaction(ctx, id); err != nil {
		return model.Transaction{}, err
	}
	return model.Transaction{}, ErrStatusConflict
}

// DeleteTransaction физически удаляет строку леджера.
func (r *LedgerRepo) DeleteTransaction(ctx context.Context, id string) error {
	q := r.db.GetQueryExecutor(ctx)
	tag, err := q.Exec(ctx, `DELETE FROM transactions WHERE transaction_id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrTransactionNotFound
	}
	return nil
}

// ListByUser возвращает операции пользователя, новые первыми.
func (r *LedgerRepo) ListByUser(ctx context.Context, userID string) ([]model.Transaction, error) {
	return r.list(ctx, `
SELECT `+transactionColumns+`
FROM transactions
WHERE user_id = $1
ORDER BY created_at DESC, transaction_id DESC`, userID)
}

// ListStalePending возвращает ожидающие операции типа typ, созданные раньше before.
func (r *LedgerRepo) ListStalePending(ctx context.Context, typ model.TransactionType, before time.Time) ([]model.Transaction, error) {
	return r.list(ctx, `
SELECT `+transactionColumns+`
FROM transactions
WHERE type = $1 AND status = 'pending' AND created_at < $2
ORDER BY created_at`, typ, before)
}

func (r *LedgerRepo) list(ctx context.Context, query string, args ...any) ([]model.Transaction, error) {
	q := r.db.GetQueryExecutor(ctx)
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query transactions: %w", err)
	}
	defer rows.Close()

	res := make([]model.Transaction, 0)
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		res = append(res, tx)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return res, nil
}

func (r *LedgerRepo) Balance(ctx context.Context, userID string) (model.Balance, error) {
	return r.balance(ctx, r.db.GetQueryExecutor(ctx), userID)
}

func (r *LedgerRepo) balance(ctx context.Context, q DBTX, userID string) (model.Balance, error) {
	var balance, held decimal.Decimal
	if err := q.QueryRow(ctx, balanceQuery, userID).Scan(&balance, &held); err != nil {
		return model.Balance{}, fmt.Errorf("compute balance: %w", err)
	}
	return model.Balance{
		UserID:    userID,
		Balance:   balance,
		Held:      held,
		Available: balance.Sub(held),
	}, nil
}
