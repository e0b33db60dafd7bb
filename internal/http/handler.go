package http

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/shopspring/decimal"

	"tournament-service/internal/model"
	"tournament-service/internal/service"
)

// TeamService перечисляет операции реестра команд, которые нужны обработчикам.
type TeamService interface {
	CreateTeam(ctx context.Context, leaderID, teamName string, teamType model.TeamType) (model.Team, error)
	RequestJoin(ctx context.Context, userID, inviteCode string) (model.Membership, error)
	InviteByGameID(ctx context.Context, teamID, gameID, requesterID string) (model.Membership, error)
	AcceptJoinRequest(ctx context.Context, teamID, userID, actorID string) (model.Membership, error)
	RejectJoinRequest(ctx context.Context, teamID, userID, actorID string) error
	UserAcceptInvite(ctx context.Context, teamID, userID string) (model.Membership, error)
	UserRejectInvite(ctx context.Context, teamID, userID string) error
	RemoveMember(ctx context.Context, teamID, userID, actorID string) error
	LeaveTeam(ctx context.Context, teamID, userID string) error
	DeleteTeam(ctx context.Context, teamID, actorID string) error
	UpdateTeam(ctx context.Context, teamID, actorID, teamName string) (model.Team, error)
	UpdateLogo(ctx context.Context, teamID, actorID, logoRef string) (model.Team, error)
	ListMyTeams(ctx context.Context, userID string) ([]model.Team, error)
	ListPendingInvites(ctx context.Context, userID string) ([]model.PendingInvite, error)
	GetTeamDetails(ctx context.Context, teamID string) (model.TeamDetails, error)
}

// TournamentService перечисляет операции реестра турниров.
type TournamentService interface {
	CreateTournament(ctx context.Context, in model.Tournament) (model.Tournament, error)
	UpdateTournament(ctx context.Context, id string, upd model.TournamentUpdate) (model.Tournament, error)
	DeleteTournament(ctx context.Context, id string) error
	ListTournaments(ctx context.Context, filter model.TournamentFilter) ([]model.Tournament, error)
	GetTournament(ctx context.Context, id string) (model.Tournament, error)
	UpdateStatus(ctx context.Context, id string, next model.TournamentStatus) (model.Tournament, error)
	ListRegistrations(ctx context.Context, id string) ([]model.Registration, error)
}

// EntryService покрывает вход в турнир и снятие регистрации.
type EntryService interface {
	JoinTournament(ctx context.Context, userID, tournamentID string, teamID *string) (model.Registration, error)
	Unregister(ctx context.Context, tournamentID, userID string) error
}

// WalletService описывает кошелёк пользователя поверх леджера.
type WalletService interface {
	GetBalance(ctx context.Context, userID string) (model.Balance, error)
	ListTransactions(ctx context.Context, userID string) ([]model.Transaction, error)
	AddMoney(ctx context.Context, userID string, amount decimal.Decimal) (model.Transaction, error)
	VerifyPayment(ctx context.Context, userID, reference string) (model.Transaction, error)
	RequestWithdrawal(ctx context.Context, userID string, amount decimal.Decimal) (model.Transaction, error)
	CompleteWithdrawal(ctx context.Context, id string) (model.Transaction, error)
	FailWithdrawal(ctx context.Context, id string) (model.Transaction, error)
	DeleteTransaction(ctx context.Context, id string) error
}

// UserService описывает каталог пользователей.
type UserService interface {
	GetUser(ctx context.Context, userID string) (model.User, error)
	RegisterUser(ctx context.Context, u model.User) (model.User, error)
}

type Handler struct {
	Teams       TeamService
	Tournaments TournamentService
	Entries     EntryService
	Wallet      WalletService
	Users       UserService
	Log         *slog.Logger

	// AllowedOrigins задаёт список origin для CORS, пустой список означает "*".
	AllowedOrigins []string
}

func NewHandler(
	teams TeamService,
	tournaments TournamentService,
	entries EntryService,
	wallet WalletService,
	users UserService,
	log *slog.Logger,
) *Handler {
	return &Handler{
		Teams:       teams,
		Tournaments: tournaments,
		Entries:     entries,
		Wallet:      wallet,
		Users:       users,
		Log:         log,
	}
}

func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()

	origins := h.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", headerUserID, headerUserRoles},
		MaxAge:         300,
	}))

	r.Get("/health", h.handleHealth)

	r.Group(func(r chi.Router) {
		r.Use(h.identity)

		r.Get("/users/me", h.handleUserMe)

		r.Route("/teams", func(r chi.Router) {
			r.Post("/", h.handleTeamCreate)
			r.Get("/my", h.handleTeamListMine)
			r.Get("/invites", h.handleTeamListInvites)
			r.Post("/join", h.handleTeamJoin)

			r.Route("/{teamID}", func(r chi.Router) {
				r.Get("/", h.handleTeamGet)
				r.Patch("/", h.handleTeamUpdate)
				r.Delete("/", h.handleTeamDelete)
				r.Put("/logo", h.handleTeamLogo)
				r.Post("/invites", h.handleTeamInvite)
				r.Post("/invites/accept", h.handleInviteAccept)
				r.Post("/invites/reject", h.handleInviteReject)
				r.Post("/requests/{userID}/accept", h.handleRequestAccept)
				r.Post("/requests/{userID}/reject", h.handleRequestReject)
				r.Delete("/members/{userID}", h.handleMemberRemove)
				r.Post("/leave", h.handleTeamLeave)
			})
		})

		r.Route("/tournaments", func(r chi.Router) {
			r.Get("/", h.handleTournamentList)
			r.Get("/{tournamentID}", h.handleTournamentGet)
			r.Post("/{tournamentID}/join", h.handleTournamentJoin)
		})

		r.Route("/wallet", func(r chi.Router) {
			r.Get("/balance", h.handleWalletBalance)
			r.Get("/transactions", h.handleWalletTransactions)
			r.Post("/deposits", h.handleWalletDeposit)
			r.Post("/deposits/verify", h.handleWalletVerify)
			r.Post("/withdrawals", h.handleWalletWithdraw)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Use(h.requireAdmin)

			r.Post("/users", h.handleUserRegister)

			r.Post("/tournaments", h.handleTournamentCreate)
			r.Route("/tournaments/{tournamentID}", func(r chi.Router) {
				r.Patch("/", h.handleTournamentUpdate)
				r.Delete("/", h.handleTournamentDelete)
				r.Post("/status", h.handleTournamentStatus)
				r.Get("/registrations", h.handleRegistrationList)
				r.Delete("/registrations/{userID}", h.handleRegistrationDelete)
			})

			r.Delete("/transactions/{transactionID}", h.handleTransactionDelete)
			r.Post("/withdrawals/{transactionID}/complete", h.handleWithdrawalComplete)
			r.Post("/withdrawals/{transactionID}/fail", h.handleWithdrawalFail)
		})
	})

	return r
}

func (h *Handler) writeError(w http.ResponseWriter, handlerName string, err error) {
	var appErr *service.AppError
	if !errors.As(err, &appErr) {
		appErr = service.ErrInternal("internal error", err)
	}

	level := slog.LevelWarn
	if appErr.Status >= http.StatusInternalServerError {
		level = slog.LevelError
	}
	h.Log.Log(context.Background(), level, "handler error",
		slog.String("handler", handlerName),
		slog.String("code", appErr.Code),
		slog.String("message", appErr.Message),
		slog.Any("err", appErr.Err),
	)

	resp := errorResponse{}
	resp.Error.Code = appErr.Code
	resp.Error.Message = appErr.Message
	writeJSON(w, appErr.Status, resp)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func decodeJSON(r *http.Request, v any) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return service.ErrBadRequest("invalid JSON")
	}
	return nil
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
