// Package payment описывает внешний платёжный процессор. Ядро видит только намерение платежа
// с непрозрачным референсом и итог: успешно, отклонено или ещё в обработке.
package payment

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Outcome описывает итог платежа на стороне процессора.
type Outcome string

const (
	OutcomePending   Outcome = "pending"
	OutcomeSucceeded Outcome = "succeeded"
	OutcomeFailed    Outcome = "failed"
)

// ErrUnknownReference возвращается, если процессор не знает референс.
var ErrUnknownReference = errors.New("unknown payment reference")

// Intent описывает созданное процессором намерение оплаты.
type Intent struct {
	Reference string          `json:"reference"`
	UserID    string          `json:"user_id"`
	Amount    decimal.Decimal `json:"amount"`
}

// Sandbox реализует процессор для локального запуска и тестов. Намерения хранятся в памяти;
// итог задаётся через Settle, по умолчанию платёж считается успешным.
type Sandbox struct {
	mu       sync.Mutex
	intents  map[string]Intent
	outcomes map[string]Outcome
	// AutoSucceed: GetOutcome возвращает succeeded для намерений без явного итога.
	AutoSucceed bool
}

func NewSandbox(autoSucceed bool) *Sandbox {
	return &Sandbox{
		intents:     make(map[string]Intent),
		outcomes:    make(map[string]Outcome),
		AutoSucceed: autoSucceed,
	}
}

func (s *Sandbox) CreateIntent(_ context.Context, userID string, amount decimal.Decimal) (Intent, error) {
	if !amount.IsPositive() {
		return Intent{}, fmt.Errorf("create intent: amount must be positive, got %s", amount)
	}
	in := Intent{
		Reference: "pi_" + strings.ReplaceAll(uuid.NewString(), "-", ""),
		UserID:    userID,
		Amount:    amount,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.intents[in.Reference] = in
	return in, nil
}

func (s *Sandbox) GetOutcome(_ context.Context, reference string) (Outcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.intents[reference]; !ok {
		return "", ErrUnknownReference
	}
	if out, ok := s.outcomes[reference]; ok {
		return out, nil
	}
	if s.AutoSucceed {
		return OutcomeSucceeded, nil
	}
	return OutcomePending, nil
}

// Settle фиксирует итог платежа.
func (s *Sandbox) Settle(reference string, out Outcome) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.intents[reference]; !ok {
		return ErrUnknownReference
	}
	s.outcomes[reference] = out
	return nil
}
