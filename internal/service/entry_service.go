package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"tournament-service/internal/lock"
	"tournament-service/internal/model"
	"tournament-service/internal/repository"
)

// TeamReader описывает часть репозитория команд, нужная для проверки права на вход.
type TeamReader interface {
	GetTeam(ctx context.Context, teamID string) (model.Team, error)
	GetMembership(ctx context.Context, teamID, userID string) (model.Membership, error)
	ListMemberships(ctx context.Context, teamID string) ([]model.Membership, error)
}

// EntryService проводит вход в турнир: проверка права, списание взноса, слот и регистрация.
// Блокировки берутся в порядке: турнир, затем кошелёк.
type EntryService struct {
	tournaments   TournamentRepository
	registrations RegistrationRepository
	teams         TeamReader
	ledger        LedgerRepository
	txManager     TransactionManager
	locker        Locker
	log           *slog.Logger
}

func NewEntryService(
	tournaments TournamentRepository,
	registrations RegistrationRepository,
	teams TeamReader,
	ledger LedgerRepository,
	txManager TransactionManager,
	locker Locker,
	log *slog.Logger,
) *EntryService {
	return &EntryService{
		tournaments:   tournaments,
		registrations: registrations,
		teams:         teams,
		ledger:        ledger,
		txManager:     txManager,
		locker:        locker,
		log:           log,
	}
}

// JoinTournament регистрирует пользователя (и его команду для командных турниров).
// При успехе существуют регистрация, завершённое списание и ровно один занятый слот;
// при любой ошибке ни одно из этих изменений не сохраняется.
func (s *EntryService) JoinTournament(ctx context.Context, userID, tournamentID string, teamID *string) (model.Registration, error) {
	if userID == "" || tournamentID == "" {
		return model.Registration{}, ErrBadRequest("user_id and tournament_id are required")
	}

	unlockTournament, err := s.locker.Lock(ctx, lock.TournamentKey(tournamentID))
	if err != nil {
		return model.Registration{}, ErrInternal("failed to lock tournament", err)
	}
	defer unlockTournament()

	// 1. Статус турнира
	t, err := s.tournaments.GetTournament(ctx, tournamentID)
	if err != nil {
		return model.Registration{}, mapTournamentErr(err, "failed to get tournament")
	}
	if t.Status != model.StatusRegistrationOpen {
		return model.Registration{}, ErrTournamentNotOpen
	}

	// 2. Команда и право на вход
	entrants := []string{userID}
	if t.TournamentType == model.TournamentSolo {
		teamID = nil
	} else {
		if teamID == nil || *teamID == "" {
			return model.Registration{}, ErrTeamRequired
		}
		entrants, err = s.eligibleTeam(ctx, t, *teamID, userID)
		if err != nil {
			return model.Registration{}, err
		}
	}

	// 3. Повторная регистрация пользователя или его команды
	exists, err := s.registrations.HasEntry(ctx, tournamentID, teamID, entrants)
	if err != nil {
		return model.Registration{}, ErrInternal("failed to check registration", err)
	}
	if exists {
		return model.Registration{}, ErrAlreadyRegistered
	}

	unlockWallet, err := s.locker.Lock(ctx, lock.WalletKey(userID))
	if err != nil {
		return model.Registration{}, ErrInternal("failed to lock wallet", err)
	}
	defer unlockWallet()

	// 4. Баланс
	if t.EntryFee.IsPositive() {
		bal, err := s.ledger.Balance(ctx, userID)
		if err != nil {
			return model.Registration{}, ErrInternal("failed to compute balance", err)
		}
		if bal.Available.LessThan(t.EntryFee) {
			return model.Registration{}, ErrInsufficientFunds
		}
	}

	// 5. Резерв слота
	if _, err := s.tournaments.IncrementSlot(ctx, tournamentID); err != nil {
		return model.Registration{}, mapTournamentErr(err, "failed to reserve slot")
	}

	// 6. Списание и регистрация
	var reg model.Registration
	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		var txID string
		if t.EntryFee.IsPositive() {
			debit, err := s.ledger.InsertDebit(ctx, model.Transaction{
				TransactionID: uuid.NewString(),
				UserID:        userID,
				Type:          model.TxDeduction,
				Amount:        t.EntryFee,
				Status:        model.TxCompleted,
				TournamentID:  &tournamentID,
			})
			if err != nil {
				return err
			}
			txID = debit.TransactionID
		}

		var err error
		reg, err = s.registrations.CreateRegistration(ctx, model.Registration{
			RegistrationID: uuid.NewString(),
			TournamentID:   tournamentID,
			UserID:         userID,
			TeamID:         teamID,
			TransactionID:  txID,
			Fee:            t.EntryFee,
		})
		return err
	})
	if err != nil {
		// 7. Компенсация резерва
		s.releaseSlot(ctx, tournamentID, userID)
		return model.Registration{}, mapTournamentErr(err, "failed to register")
	}
	return reg, nil
}

// eligibleTeam проверяет тип команды и членство userID. Возвращает лидера и принятых участников.
func (s *EntryService) eligibleTeam(ctx context.Context, t model.Tournament, teamID, userID string) ([]string, error) {
	team, err := s.teams.GetTeam(ctx, teamID)
	if err != nil {
		return nil, mapTeamErr(err, "failed to get team")
	}
	if team.TeamType != t.TournamentType.TeamType() {
		return nil, ErrTeamTypeMismatch
	}

	if team.LeaderID != userID {
		m, err := s.teams.GetMembership(ctx, teamID, userID)
		if err != nil && !errors.Is(err, repository.ErrMembershipNotFound) {
			return nil, ErrInternal("failed to get membership", err)
		}
		if err != nil || m.Status != model.MembershipAccepted {
			return nil, ErrNotEligible
		}
	}

	members, err := s.teams.ListMemberships(ctx, teamID)
	if err != nil {
		return nil, ErrInternal("failed to list members", err)
	}
	entrants := []string{team.LeaderID}
	for _, m := range members {
		if m.Status == model.MembershipAccepted {
			entrants = append(entrants, m.UserID)
		}
	}
	return entrants, nil
}

// releaseSlot откатывает резерв слота. Выполняется и при отменённом контексте запроса.
func (s *EntryService) releaseSlot(ctx context.Context, tournamentID, userID string) {
	if _, err := s.tournaments.DecrementSlot(context.WithoutCancel(ctx), tournamentID); err != nil {
		s.log.Error("slot rollback failed",
			"tournament_id", tournamentID,
			"user_id", userID,
			"error", err,
		)
		return
	}
	s.log.Warn("slot reservation rolled back", "tournament_id", tournamentID, "user_id", userID)
}

// Unregister снимает регистрацию до начала турнира: возврат взноса, удаление и освобождение слота.
func (s *EntryService) Unregister(ctx context.Context, tournamentID, userID string) error {
	if userID == "" || tournamentID == "" {
		return ErrBadRequest("user_id and tournament_id are required")
	}

	unlockTournament, err := s.locker.Lock(ctx, lock.TournamentKey(tournamentID))
	if err != nil {
		return ErrInternal("failed to lock tournament", err)
	}
	defer unlockTournament()

	t, err := s.tournaments.GetTournament(ctx, tournamentID)
	if err != nil {
		return mapTournamentErr(err, "failed to get tournament")
	}
	if t.Status != model.StatusRegistrationOpen && t.Status != model.StatusRegistrationClosed {
		return withMessage(ErrTournamentNotOpen, "registrations can only be withdrawn before the tournament starts")
	}

	unlockWallet, err := s.locker.Lock(ctx, lock.WalletKey(userID))
	if err != nil {
		return ErrInternal("failed to lock wallet", err)
	}
	defer unlockWallet()

	err = s.txManager.RunInTransaction(ctx, func(ctx context.Context) error {
		reg, err := s.registrations.GetRegistration(ctx, tournamentID, userID)
		if err != nil {
			return err
		}
		if err := refundRegistration(ctx, s.ledger, reg); err != nil {
			return err
		}
		if err := s.registrations.DeleteRegistration(ctx, tournamentID, userID); err != nil {
			return err
		}
		_, err = s.tournaments.DecrementSlot(ctx, tournamentID)
		return err
	})
	if err != nil {
		return mapTournamentErr(err, "failed to unregister")
	}
	return nil
}
