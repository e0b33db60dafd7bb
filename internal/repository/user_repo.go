package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"tournament-service/internal/model"
)

// UserRepo реализует каталог пользователей на базе PostgreSQL.
type UserRepo struct {
	db *Postgres
}

// NewUserRepo создаёт новый экземпляр UserRepo c переданным подключением к PostgreSQL.
func NewUserRepo(db *Postgres) *UserRepo {
	return &UserRepo{db: db}
}

const userColumns = `user_id, game_id, username, role, created_at`

func scanUser(row pgx.Row) (model.User, error) {
	var u model.User
	err := row.Scan(&u.UserID, &u.GameID, &u.Username, &u.Role, &u.CreatedAt)
	return u, err
}

// GetByUserID возвращает пользователя по user_id. Если пользователь не найден, возвращает ErrUserNotFound.
func (r *UserRepo) GetByUserID(ctx context.Context, userID string) (model.User, error) {
	q := r.db.GetQueryExecutor(ctx)
	u, err := scanUser(q.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE user_id = $1`, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.User{}, ErrUserNotFound
		}
		return model.User{}, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

// GetByGameID ищет пользователя по игровому ID.
func (r *UserRepo) GetByGameID(ctx context.Context, gameID string) (model.User, error) {
	q := r.db.GetQueryExecutor(ctx)
	u, err := scanUser(q.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE game_id = $1`, gameID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.User{}, ErrUserNotFound
		}
		return model.User{}, fmt.Errorf("get user by game id: %w", err)
	}
	return u, nil
}

// Upsert создаёт или обновляет пользователя. Дата создания сохраняется.
func (r *UserRepo) Upsert(ctx context.Context, u model.User) (model.User, error) {
	q := r.db.GetQueryExecutor(ctx)
	res, err := scanUser(q.QueryRow(ctx, `
INSERT INTO users (user_id, game_id, username, role)
VALUES ($1, $2, $3, $4)
ON CONFLICT (user_id) DO UPDATE
SET game_id  = EXCLUDED.game_id,
    username = EXCLUDED.username,
    role     = EXCLUDED.role
RETURNING `+userColumns, u.UserID, u.GameID, u.Username, u.Role))
	if err != nil {
		if isUniqueViolation(err, "users_game_id_key") {
			return model.User{}, ErrGameIDTaken
		}
		return model.User{}, fmt.Errorf("upsert user: %w", err)
	}
	return res, nil
}
