// Package memory реализует хранилище в памяти с теми же контрактами, что и PostgreSQL-репозитории.
// Используется в тестах и для локального запуска с STORAGE_DRIVER=memory.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"tournament-service/internal/model"
)

// Store хранит общее состояние всех репозиториев. Все изменения выполняются под одним мьютексом,
// поэтому каждая операция репозитория атомарна.
type Store struct {
	mu  sync.Mutex
	seq int64
	now func() time.Time

	users         map[string]model.User
	teams         map[string]teamRow
	memberships   map[membershipKey]membershipRow
	tournaments   map[string]model.Tournament
	registrations map[registrationKey]registrationRow
	transactions  map[string]transactionRow
}

type teamRow struct {
	team model.Team
	seq  int64
}

type membershipKey struct {
	teamID string
	userID string
}

type membershipRow struct {
	m   model.Membership
	seq int64
}

type registrationKey struct {
	tournamentID string
	userID       string
}

type registrationRow struct {
	r   model.Registration
	seq int64
}

type transactionRow struct {
	tx  model.Transaction
	seq int64
}

// NewStore создаёт пустое хранилище.
func NewStore() *Store {
	return &Store{
		now:           func() time.Time { return time.Now().UTC() },
		users:         make(map[string]model.User),
		teams:         make(map[string]teamRow),
		memberships:   make(map[membershipKey]membershipRow),
		tournaments:   make(map[string]model.Tournament),
		registrations: make(map[registrationKey]registrationRow),
		transactions:  make(map[string]transactionRow),
	}
}

// SetClock подменяет источник времени; используется в тестах.
func (s *Store) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

func (s *Store) nextSeq() int64 {
	s.seq++
	return s.seq
}

type journalKey struct{}

// journal копит функции отката изменений, сделанных внутри RunInTransaction.
type journal struct {
	undo []func()
}

// record регистрирует откат для текущей транзакции. Вызывается под s.mu.
func (s *Store) record(ctx context.Context, undo func()) {
	if j, ok := ctx.Value(journalKey{}).(*journal); ok {
		j.undo = append(j.undo, undo)
	}
}

// TransactionManager выполняет функцию атомарно относительно ошибок: при ошибке все изменения
// хранилища, сделанные внутри fn, откатываются в обратном порядке.
// Изоляцию от параллельных вызовов обеспечивают блокировки сервисного слоя.
type TransactionManager struct {
	store *Store
}

// NewTransactionManager создаёт менеджер транзакций поверх Store.
func NewTransactionManager(store *Store) *TransactionManager {
	return &TransactionManager{store: store}
}

// RunInTransaction выполняет функцию fn внутри транзакции. Вложенный вызов присоединяется к внешней.
func (tm *TransactionManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(journalKey{}).(*journal); ok {
		return fn(ctx)
	}

	j := &journal{}
	if err := fn(context.WithValue(ctx, journalKey{}, j)); err != nil {
		tm.store.mu.Lock()
		for i := len(j.undo) - 1; i >= 0; i-- {
			j.undo[i]()
		}
		tm.store.mu.Unlock()
		return err
	}
	return nil
}

func cloneDistribution(in map[int]decimal.Decimal) map[int]decimal.Decimal {
	if in == nil {
		return nil
	}
	out := make(map[int]decimal.Decimal, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

func cloneTournament(t model.Tournament) model.Tournament {
	t.PrizeDistribution = cloneDistribution(t.PrizeDistribution)
	return t
}

func cloneRegistration(r model.Registration) model.Registration {
	if r.TeamID != nil {
		id := *r.TeamID
		r.TeamID = &id
	}
	return r
}

func cloneTransaction(tx model.Transaction) model.Transaction {
	if tx.TournamentID != nil {
		id := *tx.TournamentID
		tx.TournamentID = &id
	}
	return tx
}
