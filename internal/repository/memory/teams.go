package memory

import (
	"context"
	"sort"
	"strings"

	"tournament-service/internal/model"
	"tournament-service/internal/repository"
)

// TeamRepo хранит команды и членства в памяти.
type TeamRepo struct {
	s *Store
}

// NewTeamRepo создаёт TeamRepo поверх Store.
func NewTeamRepo(s *Store) *TeamRepo {
	return &TeamRepo{s: s}
}

func (r *TeamRepo) CreateTeam(ctx context.Context, t model.Team) (model.Team, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	t.InviteCode = strings.ToUpper(t.InviteCode)
	for _, row := range r.s.teams {
		if row.team.InviteCode == t.InviteCode {
			return model.Team{}, repository.ErrInviteCodeTaken
		}
	}

	now := r.s.now()
	t.CreatedAt = now
	t.UpdatedAt = now
	r.s.teams[t.TeamID] = teamRow{team: t, seq: r.s.nextSeq()}
	r.s.record(ctx, func() { delete(r.s.teams, t.TeamID) })
	return t, nil
}

func (r *TeamRepo) GetTeam(_ context.Context, teamID string) (model.Team, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	row, ok := r.s.teams[teamID]
	if !ok {
		return model.Team{}, repository.ErrTeamNotFound
	}
	return row.team, nil
}

func (r *TeamRepo) GetTeamByInviteCode(_ context.Context, code string) (model.Team, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	code = strings.ToUpper(code)
	for _, row := range r.s.teams {
		if row.team.InviteCode == code {
			return row.team, nil
		}
	}
	return model.Team{}, repository.ErrTeamNotFound
}

func (r *TeamRepo) InviteCodeExists(_ context.Context, code string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	code = strings.ToUpper(code)
	for _, row := range r.s.teams {
		if row.team.InviteCode == code {
			return true, nil
		}
	}
	return false, nil
}

func (r *TeamRepo) UpdateTeam(ctx context.Context, teamID string, upd model.TeamUpdate) (model.Team, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	row, ok := r.s.teams[teamID]
	if !ok {
		return model.Team{}, repository.ErrTeamNotFound
	}
	prev := row
	if upd.TeamName != nil {
		row.team.TeamName = *upd.TeamName
	}
	if upd.LogoRef != nil {
		row.team.LogoRef = *upd.LogoRef
	}
	row.team.UpdatedAt = r.s.now()
	r.s.teams[teamID] = row
	r.s.record(ctx, func() { r.s.teams[teamID] = prev })
	return row.team, nil
}

// DeleteTeam удаляет команду каскадно вместе со всеми членствами.
func (r *TeamRepo) DeleteTeam(ctx context.Context, teamID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	row, ok := r.s.teams[teamID]
	if !ok {
		return repository.ErrTeamNotFound
	}
	removed := make(map[membershipKey]membershipRow)
	for k, m := range r.s.memberships {
		if k.teamID == teamID {
			removed[k] = m
			delete(r.s.memberships, k)
		}
	}
	delete(r.s.teams, teamID)
	r.s.record(ctx, func() {
		r.s.teams[teamID] = row
		for k, m := range removed {
			r.s.memberships[k] = m
		}
	})
	return nil
}

func (r *TeamRepo) GetMembership(_ context.Context, teamID, userID string) (model.Membership, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	row, ok := r.s.memberships[membershipKey{teamID, userID}]
	if !ok {
		return model.Membership{}, repository.ErrMembershipNotFound
	}
	return row.m, nil
}

func (r *TeamRepo) CreateMembership(ctx context.Context, m model.Membership) (model.Membership, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.teams[m.TeamID]; !ok {
		return model.Membership{}, repository.ErrTeamNotFound
	}
	key := membershipKey{m.TeamID, m.UserID}
	if _, ok := r.s.memberships[key]; ok {
		return model.Membership{}, repository.ErrMembershipExists
	}
	m.CreatedAt = r.s.now()
	r.s.memberships[key] = membershipRow{m: m, seq: r.s.nextSeq()}
	r.s.record(ctx, func() { delete(r.s.memberships, key) })
	return m, nil
}

// AcceptMembership переводит ожидающую строку в accepted, если принятых участников меньше maxMembers.
// Подсчёт и изменение выполняются под одним мьютексом.
func (r *TeamRepo) AcceptMembership(ctx context.Context, teamID, userID string, memberType model.MemberType, maxMembers int) (model.Membership, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	key := membershipKey{teamID, userID}
	row, ok := r.s.memberships[key]
	if !ok || row.m.Status != model.MembershipPending || row.m.MemberType != memberType {
		return model.Membership{}, repository.ErrMembershipNotFound
	}

	accepted := 0
	for k, m := range r.s.memberships {
		if k.teamID == teamID && m.m.Status == model.MembershipAccepted {
			accepted++
		}
	}
	if accepted >= maxMembers {
		return model.Membership{}, repository.ErrTeamFull
	}

	prev := row
	row.m.Status = model.MembershipAccepted
	r.s.memberships[key] = row
	r.s.record(ctx, func() { r.s.memberships[key] = prev })
	return row.m, nil
}

func (r *TeamRepo) DeletePendingMembership(ctx context.Context, teamID, userID string, memberType model.MemberType) error {
	return r.deleteMatching(ctx, teamID, userID, func(m model.Membership) bool {
		return m.Status == model.MembershipPending && m.MemberType == memberType
	})
}

func (r *TeamRepo) DeleteAcceptedMembership(ctx context.Context, teamID, userID string) error {
	return r.deleteMatching(ctx, teamID, userID, func(m model.Membership) bool {
		return m.Status == model.MembershipAccepted
	})
}

func (r *TeamRepo) deleteMatching(ctx context.Context, teamID, userID string, match func(model.Membership) bool) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	key := membershipKey{teamID, userID}
	row, ok := r.s.memberships[key]
	if !ok || !match(row.m) {
		return repository.ErrMembershipNotFound
	}
	delete(r.s.memberships, key)
	r.s.record(ctx, func() { r.s.memberships[key] = row })
	return nil
}

// ListMemberships возвращает членства команды в порядке добавления.
func (r *TeamRepo) ListMemberships(_ context.Context, teamID string) ([]model.Membership, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	rows := make([]membershipRow, 0)
	for k, m := range r.s.memberships {
		if k.teamID == teamID {
			rows = append(rows, m)
		}
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].seq < rows[j].seq })

	res := make([]model.Membership, 0, len(rows))
	for _, row := range rows {
		res = append(res, row.m)
	}
	return res, nil
}

// ListTeamsForUser возвращает команды, где пользователь лидер или принятый участник.
func (r *TeamRepo) ListTeamsForUser(_ context.Context, userID string) ([]model.Team, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	rows := make([]teamRow, 0)
	for id, row := range r.s.teams {
		if row.team.LeaderID == userID {
			rows = append(rows, row)
			continue
		}
		if m, ok := r.s.memberships[membershipKey{id, userID}]; ok && m.m.Status == model.MembershipAccepted {
			rows = append(rows, row)
		}
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].seq < rows[j].seq })

	res := make([]model.Team, 0, len(rows))
	for _, row := range rows {
		res = append(res, row.team)
	}
	return res, nil
}

func (r *TeamRepo) ListPendingInvites(_ context.Context, userID string) ([]model.PendingInvite, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	rows := make([]membershipRow, 0)
	for k, m := range r.s.memberships {
		if k.userID == userID && m.m.Status == model.MembershipPending && m.m.MemberType == model.MemberTypeInvite {
			rows = append(rows, m)
		}
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].seq < rows[j].seq })

	res := make([]model.PendingInvite, 0, len(rows))
	for _, row := range rows {
		team := r.s.teams[row.m.TeamID].team
		res = append(res, model.PendingInvite{
			Membership: row.m,
			TeamName:   team.TeamName,
			TeamType:   team.TeamType,
			LeaderID:   team.LeaderID,
		})
	}
	return res, nil
}
