// Package http реализует HTTP-обработчики и DTO поверх доменных сервисов.
package http

import (
	"time"

	"github.com/shopspring/decimal"

	"tournament-service/internal/model"
)

type errorResponse struct {
	Error errorBody `json:"error"`
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Users

type registerUserRequest struct {
	UserID   string `json:"user_id"`
	GameID   string `json:"game_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}

type userResponse struct {
	User model.User `json:"user"`
}

// Teams

type createTeamRequest struct {
	TeamName string `json:"team_name"`
	TeamType string `json:"team_type"`
}

type updateTeamRequest struct {
	TeamName string `json:"team_name"`
}

type updateLogoRequest struct {
	LogoRef string `json:"logo_ref"`
}

type joinTeamRequest struct {
	InviteCode string `json:"invite_code"`
}

type inviteRequest struct {
	GameID string `json:"game_id"`
}

type teamResponse struct {
	Team model.Team `json:"team"`
}

type teamDetailsResponse struct {
	Team model.TeamDetails `json:"team"`
}

type teamsResponse struct {
	Teams []model.Team `json:"teams"`
}

type membershipResponse struct {
	Membership model.Membership `json:"membership"`
}

type invitesResponse struct {
	Invites []model.PendingInvite `json:"invites"`
}

// Tournaments

type createTournamentRequest struct {
	Name              string                  `json:"name"`
	TournamentType    string                  `json:"tournament_type"`
	EntryFee          decimal.Decimal         `json:"entry_fee"`
	MaxSlots          int                     `json:"max_slots"`
	TotalPrizePool    decimal.Decimal         `json:"total_prize_pool"`
	PrizeDistribution map[int]decimal.Decimal `json:"prize_distribution"`
	StartTime         time.Time               `json:"start_time"`
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

type joinTournamentRequest struct {
	TeamID *string `json:"team_id"`
}

type tournamentResponse struct {
	Tournament model.Tournament `json:"tournament"`
}

type tournamentsResponse struct {
	Tournaments []model.Tournament `json:"tournaments"`
}

type registrationResponse struct {
	Registration model.Registration `json:"registration"`
}

type registrationsResponse struct {
	Registrations []model.Registration `json:"registrations"`
}

// Wallet

type amountRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

type verifyRequest struct {
	Reference string `json:"reference"`
}

type balanceResponse struct {
	Balance model.Balance `json:"balance"`
}

type transactionResponse struct {
	Transaction model.Transaction `json:"transaction"`
}

type transactionsResponse struct {
	Transactions []model.Transaction `json:"transactions"`
}
