package http

import (
	"net/http"

	"tournament-service/internal/model"
)

func (h *Handler) handleUserMe(w http.ResponseWriter, r *http.Request) {
	const handlerName = "user_me"

	user, err := h.Users.GetUser(r.Context(), callerID(r))
	if err != nil {
		h.writeError(w, handlerName, err)
		return
	}

	writeJSON(w, http.StatusOK, userResponse{User: user})
}

func (h *Handler) handleUserRegister(w http.ResponseWriter, r *http.Request) {
	const handlerName = "user_register"

	var req registerUserRequest
	if err := decodeJSON(r, &req); err != nil {
		h.writeError(w, handlerName, err)
		return
	}

	if err := ValidateRegisterUserRequest(req); err != nil {
		h.writeError(w, handlerName, err)
		return
	}

	user, err := h.Users.RegisterUser(r.Context(), model.User{
		UserID:   req.UserID,
		GameID:   req.GameID,
		Username: req.Username,
		Role:     model.Role(req.Role),
	})
	if err != nil {
		h.writeError(w, handlerName, err)
		return
	}

	writeJSON(w, http.StatusOK, userResponse{User: user})
}
