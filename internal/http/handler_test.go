package http_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	httpapi "tournament-service/internal/http"
	"tournament-service/internal/http/mocks"
	"tournament-service/internal/lock"
	"tournament-service/internal/model"
	"tournament-service/internal/service"
)

type deps struct {
	teams       *mocks.TeamService
	tournaments *mocks.TournamentService
	entries     *mocks.EntryService
	wallet      *mocks.WalletService
	users       *mocks.UserService
}

func newRouter(t *testing.T) (http.Handler, deps) {
	t.Helper()
	d := deps{
		teams:       mocks.NewTeamService(t),
		tournaments: mocks.NewTournamentService(t),
		entries:     mocks.NewEntryService(t),
		wallet:      mocks.NewWalletService(t),
		users:       mocks.NewUserService(t),
	}
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	h := httpapi.NewHandler(d.teams, d.tournaments, d.entries, d.wallet, d.users, logger)
	return h.Router(), d
}

func do(router http.Handler, method, path, body, userID, roles string) *httptest.ResponseRecorder {
	var r io.Reader
	if body != "" {
		r = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, path, r)
	if userID != "" {
		req.Header.Set("X-User-ID", userID)
	}
	if roles != "" {
		req.Header.Set("X-User-Roles", roles)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func errorCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var resp struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	return resp.Error.Code
}

func TestHandler_Health(t *testing.T) {
	router, _ := newRouter(t)

	w := do(router, "GET", "/health", "", "", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestHandler_Identity(t *testing.T) {
	router, d := newRouter(t)

	w := do(router, "GET", "/wallet/balance", "", "", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "UNAUTHENTICATED", errorCode(t, w))

	w = do(router, "DELETE", "/admin/transactions/tx-1", "", "u1", "user")
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "FORBIDDEN", errorCode(t, w))

	d.wallet.On("DeleteTransaction", mock.Anything, "tx-1").Return(nil)
	w = do(router, "DELETE", "/admin/transactions/tx-1", "", "admin-1", "user, Admin")
	assert.Equal(t, http.StatusNoContent, w.Code)
}

func TestHandler_JoinTournament(t *testing.T) {
	teamID := "team-1"

	tests := []struct {
		name           string
		body           string
		mockBehavior   func(es *mocks.EntryService)
		expectedStatus int
		expectedCode   string
	}{
		{
			name: "Success solo without body",
			mockBehavior: func(es *mocks.EntryService) {
				es.On("JoinTournament", mock.Anything, "u1", "t1", (*string)(nil)).
					Return(model.Registration{RegistrationID: "r1", TournamentID: "t1", UserID: "u1"}, nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name: "Success with team",
			body: `{"team_id": "team-1"}`,
			mockBehavior: func(es *mocks.EntryService) {
				es.On("JoinTournament", mock.Anything, "u1", "t1", &teamID).
					Return(model.Registration{RegistrationID: "r1", TeamID: &teamID}, nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "Bad Request: Invalid JSON",
			body:           `{"team_id": `,
			mockBehavior:   func(es *mocks.EntryService) {},
			expectedStatus: http.StatusBadRequest,
			expectedCode:   "BAD_REQUEST",
		},
		{
			name: "Insufficient funds",
			mockBehavior: func(es *mocks.EntryService) {
				es.On("JoinTournament", mock.Anything, "u1", "t1", (*string)(nil)).
					Return(model.Registration{}, service.ErrInsufficientFunds)
			},
			expectedStatus: http.StatusPaymentRequired,
			expectedCode:   "INSUFFICIENT_FUNDS",
		},
		{
			name: "Tournament full",
			mockBehavior: func(es *mocks.EntryService) {
				es.On("JoinTournament", mock.Anything, "u1", "t1", (*string)(nil)).
					Return(model.Registration{}, service.ErrTournamentFull)
			},
			expectedStatus: http.StatusConflict,
			expectedCode:   "TOURNAMENT_FULL",
		},
		{
			name: "Lock timeout is retryable",
			mockBehavior: func(es *mocks.EntryService) {
				es.On("JoinTournament", mock.Anything, "u1", "t1", (*string)(nil)).
					Return(model.Registration{}, service.ErrInternal("lock wallet", lock.ErrTimeout))
			},
			expectedStatus: http.StatusServiceUnavailable,
			expectedCode:   "UNAVAILABLE",
		},
		{
			name: "Unexpected error",
			mockBehavior: func(es *mocks.EntryService) {
				es.On("JoinTournament", mock.Anything, "u1", "t1", (*string)(nil)).
					Return(model.Registration{}, errors.New("boom"))
			},
			expectedStatus: http.StatusInternalServerError,
			expectedCode:   "INTERNAL",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, d := newRouter(t)
			tt.mockBehavior(d.entries)

			w := do(router, "POST", "/tournaments/t1/join", tt.body, "u1", "")

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedCode != "" {
				assert.Equal(t, tt.expectedCode, errorCode(t, w))
			}
		})
	}
}

func TestHandler_Wallet(t *testing.T) {
	t.Run("balance", func(t *testing.T) {
		router, d := newRouter(t)
		d.wallet.On("GetBalance", mock.Anything, "u1").Return(model.Balance{
			UserID:    "u1",
			Balance:   decimal.NewFromInt(100),
			Held:      decimal.NewFromInt(30),
			Available: decimal.NewFromInt(70),
		}, nil)

		w := do(router, "GET", "/wallet/balance", "", "u1", "")

		require.Equal(t, http.StatusOK, w.Code)
		var resp struct {
			Balance model.Balance `json:"balance"`
		}
		require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
		assert.True(t, resp.Balance.Available.Equal(decimal.NewFromInt(70)))
	})

	t.Run("deposit", func(t *testing.T) {
		router, d := newRouter(t)
		d.wallet.On("AddMoney", mock.Anything, "u1", mock.MatchedBy(func(a decimal.Decimal) bool {
			return a.Equal(decimal.RequireFromString("25.50"))
		})).Return(model.Transaction{TransactionID: "tx1", Reference: "pi_1", Status: model.TxPending}, nil)

		w := do(router, "POST", "/wallet/deposits", `{"amount": "25.50"}`, "u1", "")

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), `"reference":"pi_1"`)
	})

	t.Run("withdrawal invalid amount", func(t *testing.T) {
		router, d := newRouter(t)
		d.wallet.On("RequestWithdrawal", mock.Anything, "u1", mock.Anything).
			Return(model.Transaction{}, service.ErrInvalidAmount)

		w := do(router, "POST", "/wallet/withdrawals", `{"amount": 0}`, "u1", "")

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "INVALID_AMOUNT", errorCode(t, w))
	})

	t.Run("verify requires reference", func(t *testing.T) {
		router, _ := newRouter(t)

		w := do(router, "POST", "/wallet/deposits/verify", `{}`, "u1", "")

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("admin completes withdrawal", func(t *testing.T) {
		router, d := newRouter(t)
		d.wallet.On("CompleteWithdrawal", mock.Anything, "tx9").
			Return(model.Transaction{TransactionID: "tx9", Status: model.TxCompleted}, nil)

		w := do(router, "POST", "/admin/withdrawals/tx9/complete", "", "admin", "admin")

		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestHandler_Teams(t *testing.T) {
	tests := []struct {
		name           string
		method         string
		path           string
		body           string
		mockBehavior   func(ts *mocks.TeamService)
		expectedStatus int
	}{
		{
			name:   "Create",
			method: "POST",
			path:   "/teams",
			body:   `{"team_name": "Wolves", "team_type": "squad"}`,
			mockBehavior: func(ts *mocks.TeamService) {
				ts.On("CreateTeam", mock.Anything, "u1", "Wolves", model.TeamTypeSquad).
					Return(model.Team{TeamID: "team-1", TeamName: "Wolves"}, nil)
			},
			expectedStatus: http.StatusCreated,
		},
		{
			name:           "Create: unknown type",
			method:         "POST",
			path:           "/teams",
			body:           `{"team_name": "Wolves", "team_type": "trio"}`,
			mockBehavior:   func(ts *mocks.TeamService) {},
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:   "Join by code: team full",
			method: "POST",
			path:   "/teams/join",
			body:   `{"invite_code": "abcd1234"}`,
			mockBehavior: func(ts *mocks.TeamService) {
				ts.On("RequestJoin", mock.Anything, "u1", "abcd1234").
					Return(model.Membership{}, service.ErrTeamFull)
			},
			expectedStatus: http.StatusConflict,
		},
		{
			name:   "Leader accepts request",
			method: "POST",
			path:   "/teams/team-1/requests/u2/accept",
			mockBehavior: func(ts *mocks.TeamService) {
				ts.On("AcceptJoinRequest", mock.Anything, "team-1", "u2", "u1").
					Return(model.Membership{TeamID: "team-1", UserID: "u2", Status: model.MembershipAccepted}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:   "Remove leader",
			method: "DELETE",
			path:   "/teams/team-1/members/u1",
			mockBehavior: func(ts *mocks.TeamService) {
				ts.On("RemoveMember", mock.Anything, "team-1", "u1", "u1").Return(service.ErrCannotRemoveLeader)
			},
			expectedStatus: http.StatusConflict,
		},
		{
			name:   "Not leader",
			method: "DELETE",
			path:   "/teams/team-1",
			mockBehavior: func(ts *mocks.TeamService) {
				ts.On("DeleteTeam", mock.Anything, "team-1", "u1").Return(service.ErrNotAuthorized)
			},
			expectedStatus: http.StatusForbidden,
		},
		{
			name:   "Details",
			method: "GET",
			path:   "/teams/team-1",
			mockBehavior: func(ts *mocks.TeamService) {
				ts.On("GetTeamDetails", mock.Anything, "team-1").
					Return(model.TeamDetails{Team: model.Team{TeamID: "team-1"}, AcceptedCount: 1, Capacity: 4}, nil)
			},
			expectedStatus: http.StatusOK,
		},
		{
			name:   "My teams",
			method: "GET",
			path:   "/teams/my",
			mockBehavior: func(ts *mocks.TeamService) {
				ts.On("ListMyTeams", mock.Anything, "u1").Return([]model.Team{{TeamID: "team-1"}}, nil)
			},
			expectedStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, d := newRouter(t)
			tt.mockBehavior(d.teams)

			w := do(router, tt.method, tt.path, tt.body, "u1", "")

			assert.Equal(t, tt.expectedStatus, w.Code)
		})
	}
}

func TestHandler_Tournaments(t *testing.T) {
	t.Run("list with filters", func(t *testing.T) {
		router, d := newRouter(t)
		d.tournaments.On("ListTournaments", mock.Anything, model.TournamentFilter{
			Status: model.StatusRegistrationOpen,
			Type:   model.TournamentSolo,
		}).Return([]model.Tournament{{TournamentID: "t1"}}, nil)

		w := do(router, "GET", "/tournaments?status=registration_open&type=solo", "", "u1", "")

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("list with unknown status", func(t *testing.T) {
		router, _ := newRouter(t)

		w := do(router, "GET", "/tournaments?status=paused", "", "u1", "")

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("admin create", func(t *testing.T) {
		router, d := newRouter(t)
		d.tournaments.On("CreateTournament", mock.Anything, mock.MatchedBy(func(in model.Tournament) bool {
			return in.Name == "Cup" && in.MaxSlots == 16 && in.EntryFee.Equal(decimal.NewFromInt(5)) &&
				in.PrizeDistribution[1].Equal(decimal.NewFromInt(50))
		})).Return(model.Tournament{TournamentID: "t1", Status: model.StatusUpcoming}, nil)

		body := `{"name":"Cup","tournament_type":"solo","entry_fee":"5","max_slots":16,
			"total_prize_pool":"80","prize_distribution":{"1":"50","2":"30"},"start_time":"2026-11-01T18:00:00Z"}`
		w := do(router, "POST", "/admin/tournaments", body, "admin", "admin")

		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("status change to unknown status", func(t *testing.T) {
		router, _ := newRouter(t)

		w := do(router, "POST", "/admin/tournaments/t1/status", `{"status":"paused"}`, "admin", "admin")

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("status change rejected", func(t *testing.T) {
		router, d := newRouter(t)
		d.tournaments.On("UpdateStatus", mock.Anything, "t1", model.StatusUpcoming).
			Return(model.Tournament{}, service.ErrInvalidTransition)

		w := do(router, "POST", "/admin/tournaments/t1/status", `{"status":"upcoming"}`, "admin", "admin")

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, "INVALID_TRANSITION", errorCode(t, w))
	})

	t.Run("admin unregisters user", func(t *testing.T) {
		router, d := newRouter(t)
		d.entries.On("Unregister", mock.Anything, "t1", "u7").Return(nil)

		w := do(router, "DELETE", "/admin/tournaments/t1/registrations/u7", "", "admin", "admin")

		assert.Equal(t, http.StatusNoContent, w.Code)
	})
}

func TestHandler_Users(t *testing.T) {
	t.Run("me not found", func(t *testing.T) {
		router, d := newRouter(t)
		d.users.On("GetUser", mock.Anything, "u1").Return(model.User{}, service.ErrUserNotFound)

		w := do(router, "GET", "/users/me", "", "u1", "")

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("admin registers user", func(t *testing.T) {
		router, d := newRouter(t)
		d.users.On("RegisterUser", mock.Anything, model.User{UserID: "u2", GameID: "g-2", Username: "bob"}).
			Return(model.User{UserID: "u2", GameID: "g-2", Username: "bob", Role: model.RoleUser}, nil)

		w := do(router, "POST", "/admin/users", `{"user_id":"u2","game_id":"g-2","username":"bob"}`, "admin", "admin")

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("register requires game id", func(t *testing.T) {
		router, _ := newRouter(t)

		w := do(router, "POST", "/admin/users", `{"user_id":"u2"}`, "admin", "admin")

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
