package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"tournament-service/internal/model"
)

// TeamRepo хранит команды и членства в PostgreSQL.
type TeamRepo struct {
	db *Postgres
}

func NewTeamRepo(db *Postgres) *TeamRepo {
	return &TeamRepo{db: db}
}

const teamColumns = `team_id, team_name, team_type, leader_id, invite_code, logo_ref, created_at, updated_at`

func scanTeam(row pgx.Row) (model.Team, error) {
	var t model.Team
	err := row.Scan(&t.TeamID, &t.TeamName, &t.TeamType, &t.LeaderID, &t.InviteCode, &t.LogoRef, &t.CreatedAt, &t.UpdatedAt)
	return t, err
}

const membershipColumns = `team_id, user_id, status, member_type, created_at`

func scanMembership(row pgx.Row) (model.Membership, error) {
	var m model.Membership
	err := row.Scan(&m.TeamID, &m.UserID, &m.Status, &m.MemberType, &m.CreatedAt)
	return m, err
}

func (r *TeamRepo) CreateTeam(ctx context.Context, t model.Team) (model.Team, error) {
	q := r.db.GetQueryExecutor(ctx)
	res, err := scanTeam(q.QueryRow(ctx, `
INSERT INTO teams (team_id, team_name, team_type, leader_id, invite_code, logo_ref)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING `+teamColumns,
		t.TeamID, t.TeamName, t.TeamType, t.LeaderID, strings.ToUpper(t.InviteCode), t.LogoRef))
	if err != nil {
		if isUniqueViolation(err, "teams_invite_code_key") {
			return model.Team{}, ErrInviteCodeTaken
		}
		return model.Team{}, fmt.Errorf("insert team: %w", err)
	}
	return res, nil
}

func (r *TeamRepo) GetTeam(ctx context.Context, teamID string) (model.Team, error) {
	q := r.db.GetQueryExecutor(ctx)
	t, err := scanTeam(q.QueryRow(ctx, `SELECT `+teamColumns+` FROM teams WHERE team_id = $1`, teamID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Team{}, ErrTeamNotFound
		}
		return model.Team{}, fmt.Errorf("get team: %w", err)
	}
	return t, nil
}

func (r *TeamRepo) GetTeamByInviteCode(ctx context.Context, code string) (model.Team, error) {
	q := r.db.GetQueryExecutor(ctx)
	t, err := scanTeam(q.QueryRow(ctx, `SELECT `+teamColumns+` FROM teams WHERE invite_code = $1`, strings.ToUpper(code)))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Team{}, ErrTeamNotFound
		}
		return model.Team{}, fmt.Errorf("get team by invite code: %w", err)
	}
	return t, nil
}

func (r *TeamRepo) InviteCodeExists(ctx context.Context, code string) (bool, error) {
	q := r.db.GetQueryExecutor(ctx)
	var exists bool
	if err := q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM teams WHERE invite_code = $1)`, strings.ToUpper(code)).Scan(&exists); err != nil {
		return false, fmt.Errorf("check invite code: %w", err)
	}
	return exists, nil
}

// UpdateTeam меняет только переданные поля.
func (r *TeamRepo) UpdateTeam(ctx context.Context, teamID string, upd model.TeamUpdate) (model.Team, error) {
	b := psql.Update("teams").
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"team_id": teamID}).
		Suffix("RETURNING " + teamColumns)
	if upd.TeamName != nil {
		b = b.Set("team_name", *upd.TeamName)
	}
	if upd.LogoRef != nil {
		b = b.Set("logo_ref", *upd.LogoRef)
	}

	query, args, err := b.ToSql()
	if err != nil {
		return model.Team{}, fmt.Errorf("build update team: %w", err)
	}

	q := r.db.GetQueryExecutor(ctx)
	t, err := scanTeam(q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Team{}, ErrTeamNotFound
		}
		return model.Team{}, fmt.Errorf("update team: %w", err)
	}
	return t, nil
}

// DeleteTeam удаляет команду; членства удаляются каскадно.
func (r *TeamRepo) DeleteTeam(ctx context.Context, teamID string) error {
	q := r.db.GetQueryExecutor(ctx)
	tag, err := q.Exec(ctx, `DELETE FROM teams WHERE team_id = $1`, teamID)
	if err != nil {
		return fmt.Errorf("delete team: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrTeamNotFound
	}
	return nil
}

func (r *TeamRepo) GetMembership(ctx context.Context, teamID, userID string) (model.Membership, error) {
	q := r.db.GetQueryExecutor(ctx)
	m, err := scanMembership(q.QueryRow(ctx,
		`SELECT `+membershipColumns+` FROM team_memberships WHERE team_id = $1 AND user_id = $2`, teamID, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Membership{}, ErrMembershipNotFound
		}
		return model.Membership{}, fmt.Errorf("get membership: %w", err)
	}
	return m, nil
}

func (r *TeamRepo) CreateMembership(ctx context.Context, m model.Membership) (model.Membership, error) {
	q := r.db.GetQueryExecutor(ctx)
	res, err := scanMembership(q.QueryRow(ctx, `
INSERT INTO team_memberships (team_id, user_id, status, member_type)
VALUES ($1, $2, $3, $4)
RETURNING `+membershipColumns, m.TeamID, m.UserID, m.Status, m.MemberType))
	if err != nil {
		if isUniqueViolation(err, "team_memberships_pkey") {
			return model.Membership{}, ErrMembershipExists
		}
		if isForeignKeyViolation(err) {
			return model.Membership{}, ErrTeamNotFound
		}
		return model.Membership{}, fmt.Errorf("insert membership: %w", err)
	}
	return res, nil
}

// AcceptMembership под блокировкой строки команды считает принятых участников и переводит
// ожидающую строку в accepted, если их меньше maxMembers.
func (r *TeamRepo) AcceptMembership(ctx context.Context, teamID, userID string, memberType model.MemberType, maxMembers int) (model.Membership, error) {
	var res model.Membership
	err := r.db.inTx(ctx, func(q DBTX) error {
		var locked string
		if err := q.QueryRow(ctx, `SELECT team_id FROM teams WHERE team_id = $1 FOR UPDATE`, teamID).Scan(&locked); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return ErrMembershipNotFound
			}
			return fmt.Errorf("lock team: %w", err)
		}

		var pending bool
		if err := q.QueryRow(ctx, `
SELECT EXISTS (
    SELECT 1 FROM team_memberships
    WHERE team_id = $1 AND user_id = $2 AND status = 'pending' AND member_type = $3
)`, teamID, userID, memberType).Scan(&pending); err != nil {
			return fmt.Errorf("check membership: %w", err)
		}
		if !pending {
			return ErrMembershipNotFound
		}

		var accepted int
		if err := q.QueryRow(ctx,
			`SELECT count(*) FROM team_memberships WHERE team_id = $1 AND status = 'accepted'`, teamID).Scan(&accepted); err != nil {
			return fmt.Errorf("count members: %w", err)
		}
		if accepted >= maxMembers {
			return ErrTeamFull
		}

		m, err := scanMembership(q.QueryRow(ctx, `
UPDATE team_memberships
SET status = 'accepted'
WHERE team_id = $1 AND user_id = $2
RETURNING `+membershipColumns, teamID, userID))
		if err != nil {
			return fmt.Errorf("accept membership: %w", err)
		}
		res = m
		return nil
	})
	return res, err
}

func (r *TeamRepo) DeletePendingMembership(ctx context.Context, teamID, userID string, memberType model.MemberType) error {
	q := r.db.GetQueryExecutor(ctx)
	tag, err := q.Exec(ctx, `
DELETE FROM team_memberships
WHERE team_id = $1 AND user_id = $2 AND status = 'pending' AND member_type = $3`, teamID, userID, memberType)
	if err != nil {
		return fmt.Errorf("delete pending membership: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrMembershipNotFound
	}
	return nil
}

func (r *TeamRepo) DeleteAcceptedMembership(ctx context.Context, teamID, userID string) error {
	q := r.db.GetQueryExecutor(ctx)
	tag, err := q.Exec(ctx, `
DELETE FROM team_memberships
WHERE team_id = $1 AND user_id = $2 AND status = 'accepted'`, teamID, userID)
	if err != nil {
		return fmt.Errorf("delete membership: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrMembershipNotFound
	}
	return nil
}

// ListMemberships возвращает членства команды в порядке добавления.
func (r *TeamRepo) ListMemberships(ctx context.Context, teamID string) ([]model.Membership, error) {
	q := r.db.GetQueryExecutor(ctx)
	rows, err := q.Query(ctx, `
SELECT `+membershipColumns+`
FROM team_memberships
WHERE team_id = $1
ORDER BY created_at, user_id`, teamID)
	if err != nil {
		return nil, fmt.Errorf("query memberships: %w", err)
	}
	defer rows.Close()

	res := make([]model.Membership, 0)
	for rows.Next() {
		m, err := scanMembership(rows)
		if err != nil {
			return nil, fmt.Errorf("scan membership: %w", err)
		}
		res = append(res, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return res, nil
}

// ListTeamsForUser возвращает команды, где пользователь лидер или принятый участник.
func (r *TeamRepo) ListTeamsForUser(ctx context.Context, userID string) ([]model.Team, error) {
	q := r.db.GetQueryExecutor(ctx)
	rows, err := q.Query(ctx, `
SELECT `+teamColumns+`
FROM teams
WHERE leader_id = $1
   OR team_id IN (SELECT team_id FROM team_memberships WHERE user_id = $1 AND status = 'accepted')
ORDER BY created_at, team_id`, userID)
	if err != nil {
		return nil, fmt.Errorf("query teams: %w", err)
	}
	defer rows.Close()

	res := make([]model.Team, 0)
	for rows.Next() {
		t, err := scanTeam(rows)
		if err != nil {
			return nil, fmt.Errorf("scan team: %w", err)
		}
		res = append(res, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return res, nil
}

func (r *TeamRepo) ListPendingInvites(ctx context.Context, userID string) ([]model.PendingInvite, error) {
	q := r.db.GetQueryExecutor(ctx)
	rows, err := q.Query(ctx, `
SELECT m.team_id, m.user_id, m.status, m.member_type, m.created_at, t.team_name, t.team_type, t.leader_id
FROM team_memberships m
JOIN teams t ON t.team_id = m.team_id
WHERE m.user_id = $1 AND m.status = 'pending' AND m.member_type = 'invite'
ORDER BY m.created_at`, userID)
	if err != nil {
		return nil, fmt.Errorf("query invites: %w", err)
	}
	defer rows.Close()

	res := make([]model.PendingInvite, 0)
	for rows.Next() {
		var inv model.PendingInvite
		if err := rows.Scan(&inv.TeamID, &inv.UserID, &inv.Status, &inv.MemberType, &inv.CreatedAt,
			&inv.TeamName, &inv.TeamType, &inv.LeaderID); err != nil {
			return nil, fmt.Errorf("scan invite: %w", err)
		}
		res = append(res, inv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return res, nil
}
