package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/lnm-board/server/internal/api/middleware"
	"github.com/lnm-board/server/internal/api/respond"
	"github.com/lnm-board/server/internal/domain/events"
	"github.com/lnm-board/server/internal/domain/patch"
)

type EventsHandler struct {
	Service *events.Service
}

func NewEventsHandler(service *events.Service) *EventsHandler {
	return &EventsHandler{Service: service}
}

type createEventRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	EventDate   string  `json:"event_date"`
	Venue       string  `json:"venue"`
	Time        string  `json:"time"`
	Image       *string `json:"image"`
}

type updateEventRequest struct {
	Title       *string      `json:"title"`
	Description *string      `json:"description"`
	EventDate   *string      `json:"event_date"`
	Venue       *string      `json:"venue"`
	Time        *string      `json:"time"`
	Image       patch.String `json:"image"`
}

// List is the public board view. The lifecycle sweep runs inside the
// service before listing, so expired events never appear here.
func (h *EventsHandler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.Service.ListPublic(r.Context())
	if err != nil {
		respond.Error(w, r, http.StatusInternalServerError, "", err)
		return
	}
	respond.JSON(w, r, http.StatusOK, list)
}

// ListMine returns the authenticated admin's own events.
func (h *EventsHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	identity := middleware.Identity(r.Context())
	list, err := h.Service.ListOwned(r.Context(), identity.ID)
	if err != nil {
		respond.Error(w, r, http.StatusInternalServerError, "", err)
		return
	}
	respond.JSON(w, r, http.StatusOK, list)
}

func (h *EventsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, r, http.StatusBadRequest, "invalid request body", err)
		return
	}

	eventDate, err := parseEventDate(req.EventDate)
	if err != nil {
		respond.Error(w, r, http.StatusBadRequest, "event_date must be a valid date", err)
		return
	}

	identity := middleware.Identity(r.Context())
	event, err := h.Service.Create(r.Context(), events.CreateParams{
		Title:       req.Title,
		Description: req.Description,
		EventDate:   eventDate,
		Venue:       req.Venue,
		Time:        req.Time,
		ImageURL:    req.Image,
		CreatedBy:   identity.ID,
	})
	if err != nil {
		writeEventError(w, r, err)
		return
	}
	respond.JSON(w, r, http.StatusCreated, event)
}

func (h *EventsHandler) Update(w http.ResponseWriter, r *http.Request) {
	var req updateEventRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, r, http.StatusBadRequest, "invalid request body", err)
		return
	}

	params := events.UpdateParams{
		Title:       req.Title,
		Description: req.Description,
		Venue:       req.Venue,
		Time:        req.Time,
		Image:       req.Image,
	}
	if req.EventDate != nil {
		eventDate, err := parseEventDate(*req.EventDate)
		if err != nil {
			respond.Error(w, r, http.StatusBadRequest, "event_date must be a valid date", err)
			return
		}
		params.EventDate = &eventDate
	}

	identity := middleware.Identity(r.Context())
	event, err := h.Service.Update(r.Context(), r.PathValue("id"), actorFrom(identity), params)
	if err != nil {
		writeEventError(w, r, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, event)
}

func (h *EventsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	identity := middleware.Identity(r.Context())
	if err := h.Service.Delete(r.Context(), r.PathValue("id"), actorFrom(identity)); err != nil {
		writeEventError(w, r, err)
		return
	}
	respond.JSON(w, r, http.StatusOK, respond.Message{Message: "event deleted"})
}

// Comment is public. The service enforces the window around the event
// date.
func (h *EventsHandler) Comment(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Error(w, r, http.StatusBadRequest, "invalid request body", err)
		return
	}

	event, err := h.Service.AddComment(r.Context(), r.PathValue("id"), req.Text)
	if err != nil {
		writeEventError(w, r, err)
		return
	}
	respond.JSON(w, r, http.StatusCreated, event)
}

func writeEventError(w http.ResponseWriter, r *http.Request, err error) {
	var fieldErr events.FieldError
	switch {
	case errors.Is(err, events.ErrNotFound):
		respond.Error(w, r, http.StatusNotFound, "event not found", err)
	case errors.Is(err, events.ErrForbidden):
		respond.Error(w, r, http.StatusForbidden, err.Error(), err)
	case errors.Is(err, events.ErrPastDate),
		errors.Is(err, events.ErrCommentWindowClosed):
		respond.Error(w, r, http.StatusBadRequest, err.Error(), err)
	case errors.As(err, &fieldErr):
		respond.Error(w, r, http.StatusBadRequest, fieldErr.Error(), err)
	default:
		respond.Error(w, r, http.StatusInternalServerError, "", err)
	}
}

func parseEventDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if t, err := time.Parse(time.DateOnly, value); err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, value)
}
