package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType задаёт вид операции в леджере.
type TransactionType string

const (
	TxDeposit    TransactionType = "deposit"
	TxWithdrawal TransactionType = "withdrawal"
	TxDeduction  TransactionType = "deduction"
	TxRefund     TransactionType = "refund"
)

// Valid сообщает, известен ли тип операции.
func (t TransactionType) Valid() bool {
	switch t {
	case TxDeposit, TxWithdrawal, TxDeduction, TxRefund:
		return true
	}
	return false
}

// Debit сообщает, уменьшает ли операция баланс.
func (t TransactionType) Debit() bool {
	return t == TxWithdrawal || t == TxDeduction
}

// TransactionStatus описывает состояние операции.
type TransactionStatus string

const (
	TxPending   TransactionStatus = "pending"
	TxCompleted TransactionStatus = "completed"
	TxFailed    TransactionStatus = "failed"
	// TxRefunded зарезервирован за сторнированием на стороне платёжного процессора.
	TxRefunded TransactionStatus = "refunded"
)

// Valid сообщает, известен ли статус.
func (s TransactionStatus) Valid() bool {
	switch s {
	case TxPending, TxCompleted, TxFailed, TxRefunded:
		return true
	}
	return false
}

// Transaction описывает запись леджера. Сумма всегда положительна, знак определяется типом.
type Transaction struct {
	TransactionID string            `json:"transaction_id"`
	UserID        string            `json:"user_id"`
	Type          TransactionType   `json:"type"`
	Amount        decimal.Decimal   `json:"amount"`
	Status        TransactionStatus `json:"status"`
	TournamentID  *string           `json:"tournament_id,omitempty"`
	Reference     string            `json:"reference,omitempty"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
}

// Signed возвращает вклад операции в баланс: пополнения и возвраты положительны, списания отрицательны.
func (t Transaction) Signed() decimal.Decimal {
	if t.Type.Debit() {
		return t.Amount.Neg()
	}
	return t.Amount
}

// Balance описывает сводку по кошельку: Balance считает завершённые операции, Held ожидающие выводы, Available = Balance - Held.
type Balance struct {
	UserID    string          `json:"user_id"`
	Balance   decimal.Decimal `json:"balance"`
	Held      decimal.Decimal `json:"held"`
	Available decimal.Decimal `json:"available"`
}
