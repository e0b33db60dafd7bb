package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tournament-service/internal/model"
	"tournament-service/internal/service"
)

func TestUserService_RegisterUser(t *testing.T) {
	tests := []struct {
		name     string
		input    model.User
		wantRole model.Role
		wantErr  error
	}{
		{name: "Success: default role", input: model.User{UserID: "u1", GameID: "G-1"}, wantRole: model.RoleUser},
		{name: "Success: admin", input: model.User{UserID: "u2", GameID: "G-2", Role: model.RoleAdmin}, wantRole: model.RoleAdmin},
		{name: "Fail: no game id", input: model.User{UserID: "u3"}, wantErr: service.ErrBadRequest("")},
		{name: "Fail: unknown role", input: model.User{UserID: "u4", GameID: "G-4", Role: "owner"}, wantErr: service.ErrBadRequest("")},
		{name: "Fail: game id taken", input: model.User{UserID: "u5", GameID: "G-TAKEN"}, wantErr: service.ErrGameIDTaken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEnv(t)
			e.user(t, "owner", "G-TAKEN")

			got, err := e.userSvc.RegisterUser(context.Background(), tt.input)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantRole, got.Role)
		})
	}
}

func TestUserService_GetUser(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t)
	e.user(t, "u1", "G-1")

	u, err := e.userSvc.GetUser(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "G-1", u.GameID)

	_, err = e.userSvc.GetUser(ctx, "missing")
	assert.ErrorIs(t, err, service.ErrUserNotFound)
	assert.True(t, service.IsNotFound(err))
}
