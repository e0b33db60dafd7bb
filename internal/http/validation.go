package http

import (
	"strings"

	"tournament-service/internal/model"
	"tournament-service/internal/service"
)

// Проверки формы запроса. Бизнес-правила (длина имени команды, суммы, призы)
// проверяет сервисный слой.

// Users

// ValidateRegisterUserRequest /admin/users — тело запроса
func ValidateRegisterUserRequest(req registerUserRequest) error {
	if strings.TrimSpace(req.UserID) == "" {
		return service.ErrBadRequest("user_id is required")
	}
	if strings.TrimSpace(req.GameID) == "" {
		return service.ErrBadRequest("game_id is required")
	}
	return nil
}

// Teams

// ValidateCreateTeamRequest POST /teams — тело запроса
func ValidateCreateTeamRequest(req createTeamRequest) error {
	if strings.TrimSpace(req.TeamName) == "" {
		return service.ErrBadRequest("team_name is required")
	}
	if !model.TeamType(req.TeamType).Valid() {
		return service.ErrBadRequest("team_type must be one of: duo, squad")
	}
	return nil
}

// ValidateInviteCode POST /teams/join
func ValidateInviteCode(req joinTeamRequest) error {
	if strings.TrimSpace(req.InviteCode) == "" {
		return service.ErrBadRequest("invite_code is required")
	}
	return nil
}

// ValidateInviteRequest POST /teams/{teamID}/invites
func ValidateInviteRequest(req inviteRequest) error {
	if strings.TrimSpace(req.GameID) == "" {
		return service.ErrBadRequest("game_id is required")
	}
	return nil
}

// ValidateLogoRequest PUT /teams/{teamID}/logo
func ValidateLogoRequest(req updateLogoRequest) error {
	if strings.TrimSpace(req.LogoRef) == "" {
		return service.ErrBadRequest("logo_ref is required")
	}
	return nil
}

// Tournaments

// ValidateTournamentFilter проверяет query-параметры status и type у GET /tournaments.
func ValidateTournamentFilter(status, typ string) (model.TournamentFilter, error) {
	f := model.TournamentFilter{
		Status: model.TournamentStatus(status),
		Type:   model.TournamentType(typ),
	}
	if status != "" && !f.Status.Valid() {
		return f, service.ErrBadRequest("unknown status: " + status)
	}
	if typ != "" && !f.Type.Valid() {
		return f, service.ErrBadRequest("unknown type: " + typ)
	}
	return f, nil
}

// ValidateCreateTournamentRequest POST /admin/tournaments
func ValidateCreateTournamentRequest(req createTournamentRequest) error {
	if strings.TrimSpace(req.Name) == "" {
		return service.ErrBadRequest("name is required")
	}
	if !model.TournamentType(req.TournamentType).Valid() {
		return service.ErrBadRequest("tournament_type must be one of: solo, duo, squad")
	}
	if req.StartTime.IsZero() {
		return service.ErrBadRequest("start_time is required")
	}
	return nil
}

// ValidateStatusRequest POST /admin/tournaments/{id}/status
func ValidateStatusRequest(req updateStatusRequest) error {
	if !model.TournamentStatus(req.Status).Valid() {
		return service.ErrBadRequest("unknown status: " + req.Status)
	}
	return nil
}

// Wallet

// ValidateVerifyRequest POST /wallet/deposits/verify
func ValidateVerifyRequest(req verifyRequest) error {
	if strings.TrimSpace(req.Reference) == "" {
		return service.ErrBadRequest("reference is required")
	}
	return nil
}
