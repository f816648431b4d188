package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/lnm-board/server/internal/api/middleware"
	"github.com/lnm-board/server/internal/api/respond"
	"github.com/lnm-board/server/internal/domain/admins"
)

// AccountHandler serves the authenticated admin's own account.
type AccountHandler struct {
	Service *admins.Service
}

func NewAccountHandler(service *admins.Service) *AccountHandler {
	return &AccountHandler{Service: service}
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
	ConfirmPassword string `json:"confirm_password"`
}

func (h *AccountHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	var req changePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, r, http.StatusBadRequest, "invalid request body", err)
		return
	}

	identity := middleware.Identity(r.Context())
	err := h.Service.ChangePassword(r.Context(), identity.ID, req.CurrentPassword, req.NewPassword, req.ConfirmPassword)
	if err != nil {
		var fieldErr admins.FieldError
		switch {
		case errors.Is(err, admins.ErrInvalidCredentials):
			respond.Error(w, r, http.StatusUnauthorized, "current password is incorrect", err)
		case errors.As(err, &fieldErr):
			respond.Error(w, r, http.StatusBadRequest, fieldErr.Error(), err)
		default:
			respond.Error(w, r, http.StatusInternalServerError, "", err)
		}
		return
	}
	respond.JSON(w, r, http.StatusOK, respond.Message{Message: "password updated"})
}
