package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/lnm-board/server/internal/api/respond"
	"github.com/lnm-board/server/internal/auth"
	"github.com/lnm-board/server/internal/domain/admins"
)

// AdminsHandler covers login, registration and the super-admin
// management surface.
type AdminsHandler struct {
	Service *admins.Service
	Tokens  *auth.JWTManager
}

func NewAdminsHandler(service *admins.Service, tokens *auth.JWTManager) *AdminsHandler {
	return &AdminsHandler{Service: service, Tokens: tokens}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string           `json:"token"`
	Admin *admins.Identity `json:"admin"`
}

func (h *AdminsHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, r, http.StatusBadRequest, "invalid request body", err)
		return
	}

	identity, err := h.Service.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, admins.ErrInvalidCredentials) {
			respond.Error(w, r, http.StatusUnauthorized, "invalid email or password", err)
			return
		}
		respond.Error(w, r, http.StatusInternalServerError, "", err)
		return
	}

	token, err := h.Tokens.Generate(identity.ID, identity.Email, identity.Role)
	if err != nil {
		respond.Error(w, r, http.StatusInternalServerError, "", err)
		return
	}
	respond.JSON(w, r, http.StatusOK, loginResponse{Token: token, Admin: identity})
}

// Register files a pending admin request. It is open to the public,
// the account cannot do anything until approved.
func (h *AdminsHandler) Register(w http.ResponseWriter, r *http.Request) {
	h.createAccount(w, r, h.Service.Register, http.StatusCreated, "registration submitted for approval")
}

// CreateAdmin lets a super admin provision an approved account
// directly.
func (h *AdminsHandler) CreateAdmin(w http.ResponseWriter, r *http.Request) {
	h.createAccount(w, r, h.Service.CreateAdmin, http.StatusCreated, "admin created")
}

func (h *AdminsHandler) createAccount(
	w http.ResponseWriter,
	r *http.Request,
	create func(ctx context.Context, params admins.CreateParams) (*admins.Identity, error),
	status int,
	message string,
) {
	var params admins.CreateParams
	if err := json.NewDecoder(r.Body).Decode(&params); err != nil {
		respond.Error(w, r, http.StatusBadRequest, "invalid request body", err)
		return
	}

	identity, err := create(r.Context(), params)
	if err != nil {
		writeAdminError(w, r, err)
		return
	}
	respond.JSON(w, r, status, map[string]any{
		"message": message,
		"admin":   identity,
	})
}

func (h *AdminsHandler) ListRequests(w http.ResponseWriter, r *http.Request) {
	list, err := h.Service.ListPending(r.Context())
	if err != nil {
		respond.Error(w, r, http.StatusInternalServerError, "", err)
		return
	}
	respond.JSON(w, r, http.StatusOK, list)
}

func (h *AdminsHandler) ListAdmins(w http.ResponseWriter, r *http.Request) {
	list, err := h.Service.ListApproved(r.Context())
	if err != nil {
		respond.Error(w, r, http.StatusInternalServerError, "", err)
		return
	}
	respond.JSON(w, r, http.StatusOK, list)
}

func (h *AdminsHandler) Approve(w http.ResponseWriter, r *http.Request) {
	identity, err := h.Service.Approve(r.Context(), r.PathValue("id"))
	if err != nil {
		writeAdminError(w, r, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, map[string]any{
		"message": "admin request approved",
		"admin":   identity,
	})
}

func (h *AdminsHandler) Reject(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.Reject(r.Context(), r.PathValue("id")); err != nil {
		writeAdminError(w, r, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, respond.Message{Message: "admin request rejected"})
}

func (h *AdminsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeAdminError(w, r, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, respond.Message{Message: "admin deleted"})
}

func writeAdminError(w http.ResponseWriter, r *http.Request, err error) {
	var fieldErr admins.FieldError
	switch {
	case errors.Is(err, admins.ErrNotFound):
		respond.Error(w, r, http.StatusNotFound, "admin not found", err)
	case errors.Is(err, admins.ErrEmailTaken),
		errors.Is(err, admins.ErrInvalidState),
		errors.Is(err, admins.ErrProtectedAccount):
		respond.Error(w, r, http.StatusBadRequest, err.Error(), err)
	case errors.As(err, &fieldErr):
		respond.Error(w, r, http.StatusBadRequest, fieldErr.Error(), err)
	default:
		respond.Error(w, r, http.StatusInternalServerError, "", err)
	}
}
