package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"tournament-service/internal/model"
)

func (h *Handler) handleTeamCreate(w http.ResponseWriter, r *http.Request) {
	const handlerName = "team_create"

	var req createTeamRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, handlerName, err)
		return
	}

	if err := ValidateCreateTeamRequest(req); err != nil {
		h.writeError(w, handlerName, err)
		return
	}

	team, err := h.Teams.CreateTeam(r.Context(), callerID(r), req.TeamName, model.TeamType(req.TeamType))
	if err != nil {
		h.writeError(w, handlerName, err)
		return
	}

	writeJSON(w, http.StatusCreated, teamResponse{Team: team})
}

func (h *Handler) handleTeamListMine(w http.ResponseWriter, r *http.Request) {
	const handlerName = "team_list_mine"

	teams, err := h.Teams.ListMyTeams(r.Context(), callerID(r))
	if err != nil {
		h.writeError(w, handlerName, err)
		return
	}

	writeJSON(w, http.StatusOK, teamsResponse{Teams: teams})
}

func (h *Handler) handleTeamListInvites(w http.ResponseWriter, r *http.Request) {
	const handlerName = "team_list_invites"

	invites, err := h.Teams.ListPendingInvites(r.Context(), callerID(r))
	if err != nil {
		h.writeError(w, handlerName, err)
		return
	}

	writeJSON(w, http.StatusOK, invitesResponse{Invites: invites})
}

func (h *Handler) handleTeamJoin(w http.ResponseWriter, r *http.Request) {
	const handlerName = "team_join"

	var req joinTeamRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, handlerName, err)
		return
	}

	if err := ValidateInviteCode(req); err != nil {
		h.writeError(w, handlerName, err)
		return
	}

	m, err := h.Teams.RequestJoin(r.Context(), callerID(r), req.InviteCode)
	if err != nil {
		h.writeError(w, handlerName, err)
		return
	}

	writeJSON(w, http.StatusCreated, membershipResponse{Membership: m})
}

func (h *Handler) handleTeamGet(w http.ResponseWriter, r *http.Request) {
	const handlerName = "team_get"

	details, err := h.Teams.GetTeamDetails(r.Context(), chi.URLParam(r, "teamID"))
	if err != nil {
		h.writeError(w, handlerName, err)
		return
	}

	writeJSON(w, http.StatusOK, teamDetailsResponse{Team: details})
}

func (h *Handler) handleTeamUpdate(w http.ResponseWriter, r *http.Request) {
	const handlerName = "team_update"

	var req updateTeamRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, handlerName, err)
		return
	}

	team, err := h.Teams.UpdateTeam(r.Context(), chi.URLParam(r, "teamID"), callerID(r), req.TeamName)
	if err != nil {
		h.writeError(w, handlerName, err)
		return
	}

	writeJSON(w, http.StatusOK, teamResponse{Team: team})
}

func (h *Handler) handleTeamLogo(w http.ResponseWriter, r *http.Request) {
	const handlerName = "team_logo"

	var req updateLogoRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, handlerName, err)
		return
	}

	if err := ValidateLogoRequest(req); err != nil {
		h.writeError(w, handlerName, err)
		return
	}

	team, err := h.Teams.UpdateLogo(r.Context(), chi.URLParam(r, "teamID"), callerID(r), req.LogoRef)
	if err != nil {
		h.writeError(w, handlerName, err)
		return
	}

	writeJSON(w, http.StatusOK, teamResponse{Team: team})
}

func (h *Handler) handleTeamDelete(w http.ResponseWriter, r *http.Request) {
	const handlerName = "team_delete"

	if err := h.Teams.DeleteTeam(r.Context(), chi.URLParam(r, "teamID"), callerID(r)); err != nil {
		h.writeError(w, handlerName, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleTeamInvite(w http.ResponseWriter, r *http.Request) {
	const handlerName = "team_invite"

	var req inviteRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, handlerName, err)
		return
	}

	if err := ValidateInviteRequest(req); err != nil {
		h.writeError(w, handlerName, err)
		return
	}

	m, err := h.Teams.InviteByGameID(r.Context(), chi.URLParam(r, "teamID"), req.GameID, callerID(r))
	if err != nil {
		h.writeError(w, handlerName, err)
		return
	}

	writeJSON(w, http.StatusCreated, membershipResponse{Membership: m})
}

func (h *Handler) handleInviteAccept(w http.ResponseWriter, r *http.Request) {
	const handlerName = "invite_accept"

	m, err := h.Teams.UserAcceptInvite(r.Context(), chi.URLParam(r, "teamID"), callerID(r))
	if err != nil {
		h.writeError(w, handlerName, err)
		return
	}

	writeJSON(w, http.StatusOK, membershipResponse{Membership: m})
}

func (h *Handler) handleInviteReject(w http.ResponseWriter, r *http.Request) {
	const handlerName = "invite_reject"

	if err := h.Teams.UserRejectInvite(r.Context(), chi.URLParam(r, "teamID"), callerID(r)); err != nil {
		h.writeError(w, handlerName, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleRequestAccept(w http.ResponseWriter, r *http.Request) {
	const handlerName = "request_accept"

	m, err := h.Teams.AcceptJoinRequest(r.Context(), chi.URLParam(r, "teamID"), chi.URLParam(r, "userID"), callerID(r))
	if err != nil {
		h.writeError(w, handlerName, err)
		return
	}

	writeJSON(w, http.StatusOK, membershipResponse{Membership: m})
}

func (h *Handler) handleRequestReject(w http.ResponseWriter, r *http.Request) {
	const handlerName = "request_reject"

	err := h.Teams.RejectJoinRequest(r.Context(), chi.URLParam(r, "teamID"), chi.URLParam(r, "userID"), callerID(r))
	if err != nil {
		h.writeError(w, handlerName, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleMemberRemove(w http.ResponseWriter, r *http.Request) {
	const handlerName = "member_remove"

	err := h.Teams.RemoveMember(r.Context(), chi.URLParam(r, "teamID"), chi.URLParam(r, "userID"), callerID(r))
	if err != nil {
		h.writeError(w, handlerName, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleTeamLeave(w http.ResponseWriter, r *http.Request) {
	const handlerName = "team_leave"

	if err := h.Teams.LeaveTeam(r.Context(), chi.URLParam(r, "teamID"), callerID(r)); err != nil {
		h.writeError(w, handlerName, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
