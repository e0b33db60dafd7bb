package service

import (
	"context"
	"errors"
	"strings"

	"tournament-service/internal/model"
	"tournament-service/internal/repository"
)

// UserRepository описывает контракт каталога пользователей для бизнес-слоя.
type UserRepository interface {
	GetByUserID(ctx context.Context, userID string) (model.User, error)
	GetByGameID(ctx context.Context, gameID string) (model.User, error)
	Upsert(ctx context.Context, u model.User) (model.User, error)
}

// UserService отражает пользователей внешнего провайдера идентификации.
type UserService struct {
	repo UserRepository
}

// NewUserService создаёт новый сервис для операций над пользователями.
func NewUserService(repo UserRepository) *UserService {
	return &UserService{repo: repo}
}

// GetUser возвращает пользователя по user_id.
func (s *UserService) GetUser(ctx context.Context, userID string) (model.User, error) {
	if userID == "" {
		return model.User{}, ErrBadRequest("user_id is required")
	}
	user, err := s.repo.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return model.User{}, ErrUserNotFound
		}
		return model.User{}, ErrInternal("failed to get user", err)
	}
	return user, nil
}

// RegisterUser создаёт или обновляет пользователя. Пустая роль означает user.
func (s *UserService) RegisterUser(ctx context.Context, u model.User) (model.User, error) {
	u.UserID = strings.TrimSpace(u.UserID)
	u.GameID = strings.TrimSpace(u.GameID)
	if u.UserID == "" || u.GameID == "" {
		return model.User{}, ErrBadRequest("user_id and game_id are required")
	}
	if u.Role == "" {
		u.Role = model.RoleUser
	}
	if u.Role != model.RoleUser && u.Role != model.RoleAdmin {
		return model.User{}, ErrBadRequest("role must be user or admin")
	}

	user, err := s.repo.Upsert(ctx, u)
	if err != nil {
		if errors.Is(err, repository.ErrGameIDTaken) {
			return model.User{}, ErrGameIDTaken
		}
		return model.User{}, ErrInternal("failed to save user", err)
	}
	return user, nil
}
