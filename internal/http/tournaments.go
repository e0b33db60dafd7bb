package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"tournament-service/internal/model"
	"tournament-service/internal/service"
)

func (h *Handler) handleTournamentList(w http.ResponseWriter, r *http.Request) {
	const handlerName = "tournament_list"

	q := r.URL.Query()
	filter, err := ValidateTournamentFilter(q.Get("status"), q.Get("type"))
	if err != nil {
		h.writeError(w, handlerName, err)
		return
	}

	list, err := h.Tournaments.ListTournaments(r.Context(), filter)
	if err != nil {
		h.writeError(w, handlerName, err)
		return
	}

	writeJSON(w, http.StatusOK, tournamentsResponse{Tournaments: list})
}

func (h *Handler) handleTournamentGet(w http.ResponseWriter, r *http.Request) {
	const handlerName = "tournament_get"

	t, err := h.Tournaments.GetTournament(r.Context(), chi.URLParam(r, "tournamentID"))
	if err != nil {
		h.writeError(w, handlerName, err)
		return
	}

	writeJSON(w, http.StatusOK, tournamentResponse{Tournament: t})
}

func (h *Handler) handleTournamentJoin(w http.ResponseWriter, r *http.Request) {
	const handlerName = "tournament_join"

	// тело необязательно: для solo team_id не нужен
	var req joinTournamentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		h.writeError(w, handlerName, service.ErrBadRequest("invalid JSON"))
		return
	}

	reg, err := h.Entries.JoinTournament(r.Context(), callerID(r), chi.URLParam(r, "tournamentID"), req.TeamID)
	if err != nil {
		h.writeError(w, handlerName, err)
		return
	}

	writeJSON(w, http.StatusCreated, registrationResponse{Registration: reg})
}

// Admin

func (h *Handler) handleTournamentCreate(w http.ResponseWriter, r *http.Request) {
	const handlerName = "tournament_create"

	var req createTournamentRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, handlerName, err)
		return
	}

	if err := ValidateCreateTournamentRequest(req); err != nil {
		h.writeError(w, handlerName, err)
		return
	}

	t, err := h.Tournaments.CreateTournament(r.Context(), model.Tournament{
		Name:              req.Name,
		TournamentType:    model.TournamentType(req.TournamentType),
		EntryFee:          req.EntryFee,
		MaxSlots:          req.MaxSlots,
		TotalPrizePool:    req.TotalPrizePool,
		PrizeDistribution: req.PrizeDistribution,
		StartTime:         req.StartTime,
	})
	if err != nil {
		h.writeError(w, handlerName, err)
		return
	}

	writeJSON(w, http.StatusCreated, tournamentResponse{Tournament: t})
}

func (h *Handler) handleTournamentUpdate(w http.ResponseWriter, r *http.Request) {
	const handlerName = "tournament_update"

	var req model.TournamentUpdate
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, handlerName, err)
		return
	}

	t, err := h.Tournaments.UpdateTournament(r.Context(), chi.URLParam(r, "tournamentID"), req)
	if err != nil {
		h.writeError(w, handlerName, err)
		return
	}

	writeJSON(w, http.StatusOK, tournamentResponse{Tournament: t})
}

func (h *Handler) handleTournamentDelete(w http.ResponseWriter, r *http.Request) {
	const handlerName = "tournament_delete"

	if err := h.Tournaments.DeleteTournament(r.Context(), chi.URLParam(r, "tournamentID")); err != nil {
		h.writeError(w, handlerName, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleTournamentStatus(w http.ResponseWriter, r *http.Request) {
	const handlerName = "tournament_status"

	var req updateStatusRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, handlerName, err)
		return
	}

	if err := ValidateStatusRequest(req); err != nil {
		h.writeError(w, handlerName, err)
		return
	}

	t, err := h.Tournaments.UpdateStatus(r.Context(), chi.URLParam(r, "tournamentID"), model.TournamentStatus(req.Status))
	if err != nil {
		h.writeError(w, handlerName, err)
		return
	}

	writeJSON(w, http.StatusOK, tournamentResponse{Tournament: t})
}

func (h *Handler) handleRegistrationList(w http.ResponseWriter, r *http.Request) {
	const handlerName = "registration_list"

	regs, err := h.Tournaments.ListRegistrations(r.Context(), chi.URLParam(r, "tournamentID"))
	if err != nil {
		h.writeError(w, handlerName, err)
		return
	}

	writeJSON(w, http.StatusOK, registrationsResponse{Registrations: regs})
}

func (h *Handler) handleRegistrationDelete(w http.ResponseWriter, r *http.Request) {
	const handlerName = "registration_delete"

	err := h.Entries.Unregister(r.Context(), chi.URLParam(r, "tournamentID"), chi.URLParam(r, "userID"))
	if err != nil {
		h.writeError(w, handlerName, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
