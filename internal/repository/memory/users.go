package memory

import (
	"context"

	"tournament-service/internal/model"
	"tournament-service/internal/repository"
)

// UserRepo хранит каталог пользователей в памяти.
type UserRepo struct {
	s *Store
}

// NewUserRepo создаёт UserRepo поверх Store.
func NewUserRepo(s *Store) *UserRepo {
	return &UserRepo{s: s}
}

func (r *UserRepo) GetByUserID(_ context.Context, userID string) (model.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	u, ok := r.s.users[userID]
	if !ok {
		return model.User{}, repository.ErrUserNotFound
	}
	return u, nil
}

func (r *UserRepo) GetByGameID(_ context.Context, gameID string) (model.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, u := range r.s.users {
		if u.GameID == gameID {
			return u, nil
		}
	}
	return model.User{}, repository.ErrUserNotFound
}

func (r *UserRepo) Upsert(ctx context.Context, u model.User) (model.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, other := range r.s.users {
		if other.GameID == u.GameID && other.UserID != u.UserID {
			return model.User{}, repository.ErrGameIDTaken
		}
	}

	prev, existed := r.s.users[u.UserID]
	if existed {
		u.CreatedAt = prev.CreatedAt
	} else {
		u.CreatedAt = r.s.now()
	}
	r.s.users[u.UserID] = u
	r.s.record(ctx, func() {
		if existed {
			r.s.users[u.UserID] = prev
		} else {
			delete(r.s.users, u.UserID)
		}
	})
	return u, nil
}
