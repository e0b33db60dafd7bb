package memory

import (
	"context"
	"sort"

	"tournament-service/internal/model"
	"tournament-service/internal/repository"
)

// TournamentRepo хранит турниры и регистрации в памяти.
type TournamentRepo struct {
	s *Store
}

// NewTournamentRepo создаёт TournamentRepo поверх Store.
func NewTournamentRepo(s *Store) *TournamentRepo {
	return &TournamentRepo{s: s}
}

func (r *TournamentRepo) CreateTournament(ctx context.Context, t model.Tournament) (model.Tournament, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	now := r.s.now()
	t.CreatedAt = now
	t.UpdatedAt = now
	t = cloneTournament(t)
	r.s.tournaments[t.TournamentID] = t
	r.s.record(ctx, func() { delete(r.s.tournaments, t.TournamentID) })
	return cloneTournament(t), nil
}

func (r *TournamentRepo) GetTournament(_ context.Context, id string) (model.Tournament, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	t, ok := r.s.tournaments[id]
	if !ok {
		return model.Tournament{}, repository.ErrTournamentNotFound
	}
	return cloneTournament(t), nil
}

func (r *TournamentRepo) UpdateTournament(ctx context.Context, id string, upd model.TournamentUpdate) (model.Tournament, error) {
	return r.mutate(ctx, id, func(t *model.Tournament) error {
		if upd.Name != nil {
			t.Name = *upd.Name
		}
		if upd.EntryFee != nil {
			t.EntryFee = *upd.EntryFee
		}
		if upd.MaxSlots != nil {
			t.MaxSlots = *upd.MaxSlots
		}
		if upd.TotalPrizePool != nil {
			t.TotalPrizePool = *upd.TotalPrizePool
		}
		if upd.PrizeDistribution != nil {
			t.PrizeDistribution = cloneDistribution(*upd.PrizeDistribution)
		}
		if upd.StartTime != nil {
			t.StartTime = *upd.StartTime
		}
		return nil
	})
}

// DeleteTournament удаляет турнир вместе с его регистрациями.
func (r *TournamentRepo) DeleteTournament(ctx context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	t, ok := r.s.tournaments[id]
	if !ok {
		return repository.ErrTournamentNotFound
	}
	removed := make(map[registrationKey]registrationRow)
	for k, reg := range r.s.registrations {
		if k.tournamentID == id {
			removed[k] = reg
			delete(r.s.registrations, k)
		}
	}
	delete(r.s.tournaments, id)
	r.s.record(ctx, func() {
		r.s.tournaments[id] = t
		for k, reg := range removed {
			r.s.registrations[k] = reg
		}
	})
	return nil
}

// ListTournaments возвращает турниры по фильтру, упорядоченные по времени старта.
func (r *TournamentRepo) ListTournaments(_ context.Context, filter model.TournamentFilter) ([]model.Tournament, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	res := make([]model.Tournament, 0)
	for _, t := range r.s.tournaments {
		if filter.Status != "" && t.Status != filter.Status {
			continue
		}
		if filter.Type != "" && t.TournamentType != filter.Type {
			continue
		}
		res = append(res, cloneTournament(t))
	}
	sort.Slice(res, func(i, j int) bool {
		if res[i].StartTime.Equal(res[j].StartTime) {
			return res[i].TournamentID < res[j].TournamentID
		}
		return res[i].StartTime.Before(res[j].StartTime)
	})
	return res, nil
}

// SetStatus меняет статус, только если текущий равен from.
func (r *TournamentRepo) SetStatus(ctx context.Context, id string, from, to model.TournamentStatus) (model.Tournament, error) {
	return r.mutate(ctx, id, func(t *model.Tournament) error {
		if t.Status != from {
			return repository.ErrStatusConflict
		}
		t.Status = to
		return nil
	})
}

// IncrementSlot атомарно занимает слот: проверка и увеличение выполняются под одним мьютексом.
func (r *TournamentRepo) IncrementSlot(ctx context.Context, id string) (model.Tournament, error) {
	return r.mutate(ctx, id, func(t *model.Tournament) error {
		if t.CurrentSlots >= t.MaxSlots {
			return repository.ErrTournamentFull
		}
		t.CurrentSlots++
		return nil
	})
}

// DecrementSlot освобождает слот, не опускаясь ниже нуля.
func (r *TournamentRepo) DecrementSlot(ctx context.Context, id string) (model.Tournament, error) {
	return r.mutate(ctx, id, func(t *model.Tournament) error {
		if t.CurrentSlots > 0 {
			t.CurrentSlots--
		}
		return nil
	})
}

func (r *TournamentRepo) ResetSlots(ctx context.Context, id string) error {
	_, err := r.mutate(ctx, id, func(t *model.Tournament) error {
		t.CurrentSlots = 0
		return nil
	})
	return err
}

func (r *TournamentRepo) mutate(ctx context.Context, id string, fn func(t *model.Tournament) error) (model.Tournament, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	prev, ok := r.s.tournaments[id]
	if !ok {
		return model.Tournament{}, repository.ErrTournamentNotFound
	}
	next := cloneTournament(prev)
	if err := fn(&next); err != nil {
		return model.Tournament{}, err
	}
	next.UpdatedAt = r.s.now()
	r.s.tournaments[id] = next
	r.s.record(ctx, func() { r.s.tournaments[id] = prev })
	return cloneTournament(next), nil
}

func (r *TournamentRepo) CreateRegistration(ctx context.Context, reg model.Registration) (model.Registration, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.tournaments[reg.TournamentID]; !ok {
		return model.Registration{}, repository.ErrTournamentNotFound
	}
	key := registrationKey{reg.TournamentID, reg.UserID}
	if _, ok := r.s.registrations[key]; ok {
		return model.Registration{}, repository.ErrRegistrationExists
	}
	reg = cloneRegistration(reg)
	reg.CreatedAt = r.s.now()
	r.s.registrations[key] = registrationRow{r: reg, seq: r.s.nextSeq()}
	r.s.record(ctx, func() { delete(r.s.registrations, key) })
	return cloneRegistration(reg), nil
}

func (r *TournamentRepo) GetRegistration(_ context.Context, tournamentID, userID string) (model.Registration, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	row, ok := r.s.registrations[registrationKey{tournamentID, userID}]
	if !ok {
		return model.Registration{}, repository.ErrRegistrationNotFound
	}
	return cloneRegistration(row.r), nil
}

// HasEntry сообщает, есть ли в турнире регистрация любого из userIDs или от команды teamID.
func (r *TournamentRepo) HasEntry(_ context.Context, tournamentID string, teamID *string, userIDs []string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, uid := range userIDs {
		if _, ok := r.s.registrations[registrationKey{tournamentID, uid}]; ok {
			return true, nil
		}
	}
	if teamID == nil {
		return false, nil
	}
	for k, row := range r.s.registrations {
		if k.tournamentID == tournamentID && row.r.TeamID != nil && *row.r.TeamID == *teamID {
			return true, nil
		}
	}
	return false, nil
}

func (r *TournamentRepo) ListRegistrations(_ context.Context, tournamentID string) ([]model.Registration, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	rows := make([]registrationRow, 0)
	for k, row := range r.s.registrations {
		if k.tournamentID == tournamentID {
			rows = append(rows, row)
		}
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].seq < rows[j].seq })

	res := make([]model.Registration, 0, len(rows))
	for _, row := range rows {
		res = append(res, cloneRegistration(row.r))
	}
	return res, nil
}

func (r *TournamentRepo) DeleteRegistration(ctx context.Context, tournamentID, userID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	key := registrationKey{tournamentID, userID}
	row, ok := r.s.registrations[key]
	if !ok {
		return repository.ErrRegistrationNotFound
	}
	delete(r.s.registrations, key)
	r.s.record(ctx, func() { r.s.registrations[key] = row })
	return nil
}
