package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/lnm-board/server/internal/api/middleware"
	"github.com/lnm-board/server/internal/api/respond"
	"github.com/lnm-board/server/internal/domain/notices"
	"github.com/lnm-board/server/internal/domain/patch"
)

type NoticesHandler struct {
	Service *notices.Service
}

func NewNoticesHandler(service *notices.Service) *NoticesHandler {
	return &NoticesHandler{Service: service}
}

type createNoticeRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Image       *string `json:"image"`
}

type updateNoticeRequest struct {
	Title       *string      `json:"title"`
	Description *string      `json:"description"`
	Image       patch.String `json:"image"`
}

func (h *NoticesHandler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.Service.ListPublic(r.Context())
	if err != nil {
		respond.Error(w, r, http.StatusInternalServerError, "", err)
		return
	}
	respond.JSON(w, r, http.StatusOK, list)
}

func (h *NoticesHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	identity := middleware.Identity(r.Context())
	list, err := h.Service.ListOwned(r.Context(), identity.ID)
	if err != nil {
		respond.Error(w, r, http.StatusInternalServerError, "", err)
		return
	}
	respond.JSON(w, r, http.StatusOK, list)
}

func (h *NoticesHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createNoticeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, r, http.StatusBadRequest, "invalid request body", err)
		return
	}

	identity := middleware.Identity(r.Context())
	notice, err := h.Service.Create(r.Context(), notices.CreateParams{
		Title:       req.Title,
		Description: req.Description,
		ImageURL:    req.Image,
		CreatedBy:   identity.ID,
	})
	if err != nil {
		writeNoticeError(w, r, err)
		return
	}
	respond.JSON(w, r, http.StatusCreated, notice)
}

func (h *NoticesHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req updateNoticeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, r, http.StatusBadRequest, "invalid request body", err)
		return
	}

	identity := middleware.Identity(r.Context())
	notice, err := h.Service.Update(r.Context(), r.PathValue("id"), noticeActorFrom(identity), notices.UpdateParams{
		Title:       req.Title,
		Description: req.Description,
		Image:       req.Image,
	})
	if err != nil {
		writeNoticeError(w, r, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, notice)
}

func (h *NoticesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	identity := middleware.Identity(r.Context())
	if err := h.Service.Delete(r.Context(), r.PathValue("id"), noticeActorFrom(identity)); err != nil {
		writeNoticeError(w, r, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, respond.Message{Message: "notice deleted"})
}

func writeNoticeError(w http.ResponseWriter, r *http.Request, err error) {
	var fieldErr notices.FieldError
	switch {
	case errors.Is(err, notices.ErrNotFound):
		respond.Error(w, r, http.StatusNotFound, "notice not found", err)
	case errors.Is(err, notices.ErrForbidden):
		respond.Error(w, r, http.StatusForbidden, err.Error(), err)
	case errors.As(err, &fieldErr):
		respond.Error(w, r, http.StatusBadRequest, fieldErr.Error(), err)
	default:
		respond.Error(w, r, http.StatusInternalServerError, "", err)
	}
}
