package http

import (
	"context"
	"net/http"
	"strings"

	"tournament-service/internal/model"
	"tournament-service/internal/service"
)

// Заголовки выставляет шлюз после аутентификации, сервис им доверяет.
const (
	headerUserID    = "X-User-ID"
	headerUserRoles = "X-User-Roles"
)

type ctxKey struct{}

// Identity описывает аутентифицированного вызывающего.
type Identity struct {
	UserID string
	Admin  bool
}

func (h *Handler) identity(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID := strings.TrimSpace(r.Header.Get(headerUserID))
		if userID == "" {
			h.writeError(w, "identity", service.ErrUnauthenticated)
			return
		}

		id := Identity{UserID: userID}
		for _, role := range strings.Split(r.Header.Get(headerUserRoles), ",") {
			if strings.EqualFold(strings.TrimSpace(role), string(model.RoleAdmin)) {
				id.Admin = true
			}
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, id)))
	})
}

func (h *Handler) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !identityFrom(r.Context()).Admin {
			h.writeError(w, "require_admin", service.ErrForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func identityFrom(ctx context.Context) Identity {
	id, _ := ctx.Value(ctxKey{}).(Identity)
	return id
}

func callerID(r *http.Request) string {
	return identityFrom(r.Context()).UserID
}
