package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"tournament-service/internal/model"
)

// TournamentRepo хранит турниры и регистрации в PostgreSQL.
type TournamentRepo struct {
	db *Postgres
}

func NewTournamentRepo(db *Postgres) *TournamentRepo {
	return &TournamentRepo{db: db}
}

const tournamentColumns = `tournament_id, name, tournament_type, entry_fee, max_slots, current_slots, status,
total_prize_pool, prize_distribution, start_time, created_at, updated_at`

func scanTournament(row pgx.Row) (model.Tournament, error) {
	var (
		t    model.Tournament
		dist []byte
	)
	if err := row.Scan(&t.TournamentID, &t.Name, &t.TournamentType, &t.EntryFee, &t.MaxSlots, &t.CurrentSlots,
		&t.Status, &t.TotalPrizePool, &dist, &t.StartTime, &t.CreatedAt, &t.UpdatedAt); err != nil {
		return model.Tournament{}, err
	}
	if len(dist) > 0 {
		if err := json.Unmarshal(dist, &t.PrizeDistribution); err != nil {
			return model.Tournament{}, fmt.Errorf("decode prize distribution: %w", err)
		}
	}
	return t, nil
}

func encodeDistribution(d map[int]decimal.Decimal) ([]byte, error) {
	if d == nil {
		d = map[int]decimal.Decimal{}
	}
	return json.Marshal(d)
}

func (r *TournamentRepo) CreateTournament(ctx context.Context, t model.Tournament) (model.Tournament, error) {
	dist, err := encodeDistribution(t.PrizeDistribution)
	if err != nil {
		return model.Tournament{}, fmt.Errorf("encode prize distribution: %w", err)
	}

	q := r.db.GetQueryExecutor(ctx)
	res, err := scanTournament(q.QueryRow(ctx, `
INSERT INTO tournaments (tournament_id, name, tournament_type, entry_fee, max_slots, current_slots, status,
                         total_prize_pool, prize_distribution, start_time)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
RETURNING `+tournamentColumns,
		t.TournamentID, t.Name, t.TournamentType, t.EntryFee, t.MaxSlots, t.CurrentSlots, t.Status,
		t.TotalPrizePool, dist, t.StartTime))
	if err != nil {
		return model.Tournament{}, fmt.Errorf("insert tournament: %w", err)
	}
	return res, nil
}

func (r *TournamentRepo) GetTournament(ctx context.Context, id string) (model.Tournament, error) {
	q := r.db.GetQueryExecutor(ctx)
	t, err := scanTournament(q.QueryRow(ctx, `SELECT `+tournamentColumns+` FROM tournaments WHERE tournament_id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Tournament{}, ErrTournamentNotFound
		}
		return model.Tournament{}, fmt.Errorf("get tournament: %w", err)
	}
	return t, nil
}

// UpdateTournament меняет только переданные поля.
func (r *TournamentRepo) UpdateTournament(ctx context.Context, id string, upd model.TournamentUpdate) (model.Tournament, error) {
	b := psql.Update("tournaments").
		Set("updated_at", sq.Expr("now()")).
		Where(sq.Eq{"tournament_id": id}).
		Suffix("RETURNING " + tournamentColumns)
	if upd.Name != nil {
		b = b.Set("name", *upd.Name)
	}
	if upd.EntryFee != nil {
		b = b.Set("entry_fee", *upd.EntryFee)
	}
	if upd.MaxSlots != nil {
		b = b.Set("max_slots", *upd.MaxSlots)
	}
	if upd.TotalPrizePool != nil {
		b = b.Set("total_prize_pool", *upd.TotalPrizePool)
	}
	if upd.PrizeDistribution != nil {
		dist, err := encodeDistribution(*upd.PrizeDistribution)
		if err != nil {
			return model.Tournament{}, fmt.Errorf("encode prize distribution: %w", err)
		}
		b = b.Set("prize_distribution", dist)
	}
	if upd.StartTime != nil {
		b = b.Set("start_time", *upd.StartTime)
	}

	query, args, err := b.ToSql()
	if err != nil {
		return model.Tournament{}, fmt.Errorf("build update tournament: %w", err)
	}
	return r.queryOne(ctx, "update tournament", query, args...)
}

// DeleteTournament удаляет турнир; регистрации удаляются каскадно.
func (r *TournamentRepo) DeleteTournament(ctx context.Context, id string) error {
	q := r.db.GetQueryExecutor(ctx)
	tag, err := q.Exec(ctx, `DELETE FROM tournaments WHERE tournament_id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete tournament: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrTournamentNotFound
	}
	return nil
}

// ListTournaments возвращает турниры по фильтру, упорядоченные по времени старта.
func (r *TournamentRepo) ListTournaments(ctx context.Context, filter model.TournamentFilter) ([]model.Tournament, error) {
	b := psql.Select(tournamentColumns).From("tournaments").OrderBy("start_time", "tournament_id")
	if filter.Status != "" {
		b = b.Where(sq.Eq{"status": filter.Status})
	}
	if filter.Type != "" {
		b = b.Where(sq.Eq{"tournament_type": filter.Type})
	}

	query, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list tournaments: %w", err)
	}

	q := r.db.GetQueryExecutor(ctx)
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query tournaments: %w", err)
	}
	defer rows.Close()

	res := make([]model.Tournament, 0)
	for rows.Next() {
		t, err := scanTournament(rows)
		if err != nil {
			return nil, fmt.Errorf("scan tournament: %w", err)
		}
		res = append(res, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return res, nil
}

// SetStatus меняет статус, только если текущий равен from.
func (r *TournamentRepo) SetStatus(ctx context.Context, id string, from, to model.TournamentStatus) (model.Tournament, error) {
	t, err := r.queryOne(ctx, "set status", `
UPDATE tournaments
SET status = $3, updated_at = now()
WHERE tournament_id = $1 AND status = $2
RETURNING `+tournamentColumns, id, from, to)
	if errors.Is(err, ErrTournamentNotFound) {
		return model.Tournament{}, r.conflictOrMissing(ctx, id, ErrStatusConflict)
	}
	return t, err
}

// IncrementSlot атомарно занимает слот условным UPDATE.
func (r *TournamentRepo) IncrementSlot(ctx context.Context, id string) (model.Tournament, error) {
	t, err := r.queryOne(ctx, "increment slot", `
UPDATE tournaments
SET current_slots = current_slots + 1, updated_at = now()
WHERE tournament_id = $1 AND current_slots < max_slots
RETURNING `+tournamentColumns, id)
	if errors.Is(err, ErrTournamentNotFound) {
		return model.Tournament{}, r.conflictOrMissing(ctx, id, ErrTournamentFull)
	}
	return t, err
}

// DecrementSlot освобождает слот, не опускаясь ниже нуля.
func (r *TournamentRepo) DecrementSlot(ctx context.Context, id string) (model.Tournament, error) {
	return r.queryOne(ctx, "decrement slot", `
UPDATE tournaments
SET current_slots = GREATEST(current_slots - 1, 0), updated_at = now()
WHERE tournament_id = $1
RETURNING `+tournamentColumns, id)
}

func (r *TournamentRepo) ResetSlots(ctx context.Context, id string) error {
	q := r.db.GetQueryExecutor(ctx)
	tag, err := q.Exec(ctx, `UPDATE tournaments SET current_slots = 0, updated_at = now() WHERE tournament_id = $1`, id)
	if err != nil {
		return fmt.Errorf("reset slots: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrTournamentNotFound
	}
	return nil
}

func (r *TournamentRepo) queryOne(ctx context.Context, op, query string, args ...any) (model.Tournament, error) {
	q := r.db.GetQueryExecutor(ctx)
	t, err := scanTournament(q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Tournament{}, ErrTournamentNotFound
		}
		return model.Tournament{}, fmt.Errorf("%s: %w", op, err)
	}
	return t, nil
}

// conflictOrMissing различает «условие не выполнено» и «турнира нет» после условного UPDATE.
func (r *TournamentRepo) conflictOrMissing(ctx context.Context, id string, conflict error) error {
	q := r.db.GetQueryExecutor(ctx)
	var exists bool
	if err := q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM tournaments WHERE tournament_id = $1)`, id).Scan(&exists); err != nil {
		return fmt.Errorf("check tournament: %w", err)
	}
	if !exists {
		return ErrTournamentNotFound
	}
	return conflict
}

const registrationColumns = `registration_id, tournament_id, user_id, team_id, transaction_id, fee, created_at`

func scanRegistration(row pgx.Row) (model.Registration, error) {
	var reg model.Registration
	err := row.Scan(&reg.RegistrationID, &reg.TournamentID, &reg.UserID, &reg.TeamID, &reg.TransactionID, &reg.Fee, &reg.CreatedAt)
	return reg, err
}

func (r *TournamentRepo) CreateRegistration(ctx context.Context, reg model.Registration) (model.Registration, error) {
	q := r.db.GetQueryExecutor(ctx)
	res, err := scanRegistration(q.QueryRow(ctx, `
INSERT INTO registrations (registration_id, tournament_id, user_id, team_id, transaction_id, fee)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING `+registrationColumns,
		reg.RegistrationID, reg.TournamentID, reg.UserID, reg.TeamID, reg.TransactionID, reg.Fee))
	if err != nil {
		if isUniqueViolation(err, "registrations_tournament_user_key") {
			return model.Registration{}, ErrRegistrationExists
		}
		if isForeignKeyViolation(err) {
			return model.Registration{}, ErrTournamentNotFound
		}
		return model.Registration{}, fmt.Errorf("insert registration: %w", err)
	}
	return res, nil
}

func (r *TournamentRepo) GetRegistration(ctx context.Context, tournamentID, userID string) (model.Registration, error) {
	q := r.db.GetQueryExecutor(ctx)
	reg, err := scanRegistration(q.QueryRow(ctx,
		`SELECT `+registrationColumns+` FROM registrations WHERE tournament_id = $1 AND user_id = $2`, tournamentID, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Registration{}, ErrRegistrationNotFound
		}
		return model.Registration{}, fmt.Errorf("get registration: %w", err)
	}
	return reg, nil
}

// HasEntry сообщает, есть ли в турнире регистрация любого из userIDs или от команды teamID.
func (r *TournamentRepo) HasEntry(ctx context.Context, tournamentID string, teamID *string, userIDs []string) (bool, error) {
	q := r.db.GetQueryExecutor(ctx)
	var exists bool
	err := q.QueryRow(ctx, `
SELECT EXISTS (
    SELECT 1 FROM registrations
    WHERE tournament_id = $1 AND (user_id = ANY($2) OR team_id = $3)
)`, tournamentID, userIDs, teamID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check entry: %w", err)
	}
	return exists, nil
}

func (r *TournamentRepo) ListRegistrations(ctx context.Context, tournamentID string) ([]model.Registration, error) {
	q := r.db.GetQueryExecutor(ctx)
	rows, err := q.Query(ctx, `
SELECT `+registrationColumns+`
FROM registrations
WHERE tournament_id = $1
ORDER BY created_at, registration_id`, tournamentID)
	if err != nil {
		return nil, fmt.Errorf("query registrations: %w", err)
	}
	defer rows.Close()

	res := make([]model.Registration, 0)
	for rows.Next() {
		reg, err := scanRegistration(rows)
		if err != nil {
			return nil, fmt.Errorf("scan registration: %w", err)
		}
		res = append(res, reg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return res, nil
}

func (r *TournamentRepo) DeleteRegistration(ctx context.Context, tournamentID, userID string) error {
	q := r.db.GetQueryExecutor(ctx)
	tag, err := q.Exec(ctx, `DELETE FROM registrations WHERE tournament_id = $1 AND user_id = $2`, tournamentID, userID)
	if err != nil {
		return fmt.Errorf("delete registration: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrRegistrationNotFound
	}
	return nil
}
