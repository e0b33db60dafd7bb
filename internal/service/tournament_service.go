package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"tournament-service/internal/lock"
	"tournament-service/internal/model"
	"tournament-service/internal/repository"
)

// TournamentRepository описывает контракт хранилища турниров.
type TournamentRepository interface {
	CreateTournament(ctx context.Context, t model.Tournament) (model.Tournament, error)
	GetTournament(ctx context.Context, id string) (model.Tournament, error)
	UpdateTournament(ctx context.Context, id string, upd model.TournamentUpdate) (model.Tournament, error)
	DeleteTournament(ctx context.Context, id string) error
	ListTournaments(ctx context.Context, filter model.TournamentFilter) ([]model.Tournament, error)
	SetStatus(ctx context.Context, id string, from, to model.TournamentStatus) (model.Tournament, error)
	IncrementSlot(ctx context.Context, id string) (model.Tournament, error)
	DecrementSlot(ctx context.Context, id string) (model.Tournament, error)
	ResetSlots(ctx context.Context, id string) error
}

// RegistrationRepository описывает контракт хранилища регистраций.
type RegistrationRepository interface {
	CreateRegistration(ctx context.Context, reg model.Registration) (model.Registration, error)
	GetRegistration(ctx context.Context, tournamentID, userID string) (model.Registration, error)
	HasEntry(ctx context.Context, tournamentID string, teamID *string, userIDs []string) (bool, error)
	ListRegistrations(ctx context.Context, tournamentID string) ([]model.Registration, error)
	DeleteRegistration(ctx context.Context, tournamentID, userID string) error
}

// TournamentService ведёт административный реестр турниров: создание, правка, статус и отмена с возвратами.
type TournamentService struct {
	tournaments   TournamentRepository
	registrations RegistrationRepository
	ledger        LedgerRepository
	txManager     TransactionManager
	locker        Locker
	log           *slog.Logger
}

func NewTournamentService(
	tournaments TournamentRepository,
	registrations RegistrationRepository,
	ledger LedgerRepository,
	txManager TransactionManager,
	locker Locker,
	log *slog.Logger,
) *TournamentService {
	return &TournamentService{
		tournaments:   tournaments,
		registrations: registrations,
		ledger:        ledger,
		txManager:     txManager,
		locker:        locker,
		log:           log,
	}
}

// CreateTournament создаёт турнир в статусе upcoming с нулём занятых слотов.
func (s *TournamentService) CreateTournament(ctx context.Context, in model.Tournament) (model.Tournament, error) {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" {
		return model.Tournament{}, ErrBadRequest("name is required")
	}
	if !in.TournamentType.Valid() {
		return model.Tournament{}, ErrBadRequest("tournament_type must be solo, duo or squad")
	}
	if in.EntryFee.IsNegative() {
		return model.Tournament{}, ErrBadRequest("entry_fee must not be negative")
	}
	if !fitsMoneyScale(in.EntryFee) {
		return model.Tournament{}, ErrBadRequest("entry_fee must have at most 2 decimal places")
	}
	if in.MaxSlots <= 0 {
		return model.Tournament{}, ErrBadRequest("max_slots must be greater than zero")
	}
	if in.StartTime.IsZero() {
		return model.Tournament{}, ErrBadRequest("start_time is required")
	}
	if err := validatePrizes(in.TotalPrizePool, in.PrizeDistribution); err != nil {
		return model.Tournament{}, err
	}

	in.TournamentID = uuid.NewString()
	in.Status = model.StatusUpcoming
	in.CurrentSlots = 0

	t, err := s.tournaments.CreateTournament(ctx, in)
	if err != nil {
		return model.Tournament{}, ErrInternal("failed to create tournament", err)
	}
	return t, nil
}

// UpdateTournament правит поля нетерминального турнира. Взнос меняется только пока слоты пусты.
func (s *TournamentService) UpdateTournament(ctx context.Context, id string, upd model.TournamentUpdate) (model.Tournament, error) {
	unlock, err := s.lockTournament(ctx, id)
	if err != nil {
		return model.Tournament{}, err
	}
	defer unlock()

	cur, err := s.getTournament(ctx, id)
	if err != nil {
		return model.Tournament{}, err
	}
	if cur.Status.Terminal() {
		return model.Tournament{}, withMessage(ErrInvalidTransition, fmt.Sprintf("tournament is %s and cannot be edited", cur.Status))
	}

	if upd.Name != nil {
		name := strings.TrimSpace(*upd.Name)
		if name == "" {
			return model.Tournament{}, ErrBadRequest("name must not be empty")
		}
		upd.Name = &name
	}
	if upd.EntryFee != nil {
		if upd.EntryFee.IsNegative() {
			return model.Tournament{}, ErrBadRequest("entry_fee must not be negative")
		}
		if !fitsMoneyScale(*upd.EntryFee) {
			return model.Tournament{}, ErrBadRequest("entry_fee must have at most 2 decimal places")
		}
		if !upd.EntryFee.Equal(cur.EntryFee) && cur.CurrentSlots > 0 {
			return model.Tournament{}, withMessage(ErrTournamentActive, "entry_fee cannot change after registrations started")
		}
	}
	if upd.MaxSlots != nil {
		if *upd.MaxSlots <= 0 {
			return model.Tournament{}, ErrBadRequest("max_slots must be greater than zero")
		}
		if *upd.MaxSlots < cur.CurrentSlots {
			return model.Tournament{}, ErrBadRequest("max_slots must not be below current_slots")
		}
	}
	if upd.StartTime != nil && upd.StartTime.IsZero() {
		return model.Tournament{}, ErrBadRequest("start_time must not be empty")
	}

	pool := cur.TotalPrizePool
	if upd.TotalPrizePool != nil {
		pool = *upd.TotalPrizePool
	}
	dist := cur.PrizeDistribution
	if upd.PrizeDistribution != nil {
		dist = *upd.PrizeDistribution
	}
	if err := validatePrizes(pool, dist); err != nil {
		return model.Tournament{}, err
	}

	t, err := s.tournaments.UpdateTournament(ctx, id, upd)
	if err != nil {
		return model.Tournament{}, mapTournamentErr(err, "failed to update tournament")
	}
	return t, nil
}

// DeleteTournament удаляет турнир до открытия регистрации или после отмены.
// Завершённые турниры хранят историю регистраций и не удаляются.
func (s *TournamentService) DeleteTournament(ctx context.Context, id string) error {
	unlock, err := s.lockTournament(ctx, id)
	if err != nil {
		return err
	}
	defer unlock()

	t, err := s.getTournament(ctx, id)
	if err != nil {
		return err
	}
	switch t.Status {
	case model.StatusUpcoming, model.StatusCancelled:
	case model.StatusCompleted:
		return withMessage(ErrTournamentActive, "completed tournaments keep their registration history")
	default:
		return withMessage(ErrTournamentActive, fmt.Sprintf("tournament is %s, cancel it first", t.Status))
	}

	if err := s.tournaments.DeleteTournament(ctx, id); err != nil {
		return mapTournamentErr(err, "failed to delete tournament")
	}
	return nil
}

// ListTournaments возвращает турниры по фильтру, упорядоченные по времени старта.
func (s *TournamentService) ListTournaments(ctx context.Context, filter model.TournamentFilter) ([]model.Tournament, error) {
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, ErrBadRequest("unknown status filter")
	}
	if filter.Type != "" && !filter.Type.Valid() {
		return nil, ErrBadRequest("unknown type filter")
	}
	list, err := s.tournaments.ListTournaments(ctx, filter)
	if err != nil {
		return nil, ErrInternal("failed to list tournaments", err)
	}
	return list, nil
}

func (s *TournamentService) GetTournament(ctx context.Context, id string) (model.Tournament, error) {
	return s.getTournament(ctx, id)
}

// UpdateStatus двигает турнир по жизненному циклу. Совпадающий статус ничего не меняет.
// Отмена возвращает взносы всех регистраций, удаляет их и обнуляет слоты одной транзакцией.
func (s *TournamentService) UpdateStatus(ctx context.Context, id string, next model.TournamentStatus) (model.Tournament, error) {
	if !next.Valid() {
		return model.Tournament{}, ErrBadRequest("unknown status")
	}
	unlock, err := s.lockTournament(ctx, id)
	if err != nil {
		return model.Tournament{}, err
	}
	defer unlock()

	cur, err := s.getTournament(ctx, id)
	if err != nil {
		return model.Tournament{}, err
	}
	if cur.Status == next {
		return cur, nil
	}
	if !cur.Status.CanTransitionTo(next) {
		return model.Tournament{}, withMessage(ErrInvalidTransition,
			fmt.Sprintf("cannot move tournament from %s to %s", cur.Status, next))
	}

	var (
		updated  model.Tournament
		refunded int
	)
	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		var err error
		updated, err = s.tournaments.SetStatus(ctx, id, cur.Status, next)
		if err != nil {
			return err
		}
		if next != model.StatusCancelled {
			return nil
		}

		refunded, err = s.refundAll(ctx, id)
		if err != nil {
			return err
		}
		if err := s.tournaments.ResetSlots(ctx, id); err != nil {
			return err
		}
		updated.CurrentSlots = 0
		return nil
	})
	if err != nil {
		if errors.Is(err, repository.ErrStatusConflict) {
			return model.Tournament{}, withMessage(ErrInvalidTransition, "tournament status changed concurrently")
		}
		return model.Tournament{}, mapTournamentErr(err, "failed to update tournament status")
	}

	if next == model.StatusCancelled {
		s.log.Info("tournament cancelled", "tournament_id", id, "refunded_registrations", refunded)
	}
	return updated, nil
}

// refundAll возвращает взносы и удаляет регистрации турнира. Зачисления не требуют блокировки кошелька.
func (s *TournamentService) refundAll(ctx context.Context, id string) (int, error) {
	regs, err := s.registrations.ListRegistrations(ctx, id)
	if err != nil {
		return 0, err
	}
	for _, reg := range regs {
		if err := refundRegistration(ctx, s.ledger, reg); err != nil {
			return 0, err
		}
		if err := s.registrations.DeleteRegistration(ctx, id, reg.UserID); err != nil {
			return 0, err
		}
	}
	return len(regs), nil
}

// ListRegistrations возвращает регистрации турнира в порядке создания.
func (s *TournamentService) ListRegistrations(ctx context.Context, id string) ([]model.Registration, error) {
	if _, err := s.getTournament(ctx, id); err != nil {
		return nil, err
	}
	regs, err := s.registrations.ListRegistrations(ctx, id)
	if err != nil {
		return nil, ErrInternal("failed to list registrations", err)
	}
	return regs, nil
}

func (s *TournamentService) getTournament(ctx context.Context, id string) (model.Tournament, error) {
	if id == "" {
		return model.Tournament{}, ErrBadRequest("tournament_id is required")
	}
	t, err := s.tournaments.GetTournament(ctx, id)
	if err != nil {
		return model.Tournament{}, mapTournamentErr(err, "failed to get tournament")
	}
	return t, nil
}

func (s *TournamentService) lockTournament(ctx context.Context, id string) (func(), error) {
	unlock, err := s.locker.Lock(ctx, lock.TournamentKey(id))
	if err != nil {
		return nil, ErrInternal("failed to lock tournament", err)
	}
	return unlock, nil
}

// refundRegistration зачисляет взнос регистрации обратно завершённым возвратом.
func refundRegistration(ctx context.Context, ledger LedgerRepository, reg model.Registration) error {
	if !reg.Fee.IsPositive() {
		return nil
	}
	tournamentID := reg.TournamentID
	_, err := ledger.CreateTransaction(ctx, model.Transaction{
		TransactionID: uuid.NewString(),
		UserID:        reg.UserID,
		Type:          model.TxRefund,
		Amount:        reg.Fee,
		Status:        model.TxCompleted,
		TournamentID:  &tournamentID,
	})
	return err
}

func validatePrizes(pool decimal.Decimal, dist map[int]decimal.Decimal) error {
	if pool.IsNegative() {
		return ErrBadRequest("total_prize_pool must not be negative")
	}
	if !fitsMoneyScale(pool) {
		return ErrBadRequest("total_prize_pool must have at most 2 decimal places")
	}
	sum := decimal.Zero
	for pos, amount := range dist {
		if pos < 1 {
			return ErrBadRequest("prize positions start at 1")
		}
		if amount.IsNegative() {
			return ErrBadRequest("prize amounts must not be negative")
		}
		if !fitsMoneyScale(amount) {
			return ErrBadRequest("prize amounts must have at most 2 decimal places")
		}
		sum = sum.Add(amount)
	}
	if sum.GreaterThan(pool) {
		return ErrBadRequest("prize distribution exceeds total_prize_pool")
	}
	return nil
}

func mapTournamentErr(err error, msg string) error {
	var app *AppError
	switch {
	case errors.As(err, &app):
		return app
	case errors.Is(err, repository.ErrTournamentNotFound):
		return ErrTournamentNotFound
	case errors.Is(err, repository.ErrTournamentFull):
		return ErrTournamentFull
	case errors.Is(err, repository.ErrRegistrationNotFound):
		return ErrRegistrationNotFound
	case errors.Is(err, repository.ErrRegistrationExists):
		return ErrAlreadyRegistered
	case errors.Is(err, repository.ErrInsufficientFunds):
		return ErrInsufficientFunds
	default:
		return ErrInternal(msg, err)
	}
}
