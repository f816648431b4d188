package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/lnm-board/server/internal/api/middleware"
	"github.com/lnm-board/server/internal/auth"
	"github.com/lnm-board/server/internal/domain/admins"
	"github.com/lnm-board/server/internal/domain/events"
)

func newEventsFixture(t *testing.T) (*EventsHandler, *memEventRepo, *admins.Identity) {
	t.Helper()
	repo := newMemEventRepo()
	service := events.NewService(repo, zerolog.Nop())
	identity := &admins.Identity{ID: "admin-1", Name: "Admin One", Email: "one@campus.edu", Role: auth.RoleAdmin}
	return NewEventsHandler(service), repo, identity
}

func authedRequest(method, target, body string, identity *admins.Identity) *http.Request {
	var r *http.Request
	if body == "" {
		r = httptest.NewRequest(method, target, nil)
	} else {
		r = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	if identity != nil {
		r = r.WithContext(middleware.WithIdentity(r.Context(), identity))
	}
	return r
}

func TestEventsCreate(t *testing.T) {
	handler, repo, identity := newEventsFixture(t)

	date := time.Now().AddDate(0, 0, 5).Format(time.DateOnly)
	body := fmt.Sprintf(`{"title":"Tech Fest","description":"Annual fest","event_date":%q,"venue":"Main Hall","time":"18:00"}`, date)

	w := httptest.NewRecorder()
	handler.Create(w, authedRequest(http.MethodPost, "/api/events", body, identity))

	require.Equal(t, http.StatusCreated, w.Code)
	var event events.Event
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &event))
	require.Equal(t, "Tech Fest", event.Title)
	require.Equal(t, events.CategoryUpcoming, event.Category)
	require.Len(t, repo.byID, 1)
}

func TestEventsCreatePastDateRejected(t *testing.T) {
	handler, _, identity := newEventsFixture(t)

	date := time.Now().AddDate(0, 0, -2).Format(time.DateOnly)
	body := fmt.Sprintf(`{"title":"Old","description":"d","event_date":%q,"venue":"v","time":"10:00"}`, date)

	w := httptest.NewRecorder()
	handler.Create(w, authedRequest(http.MethodPost, "/api/events", body, identity))

	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, w.Body.String(), "past dates")
}

func TestEventsCreateInvalidDate(t *testing.T) {
	handler, _, identity := newEventsFixture(t)

	w := httptest.NewRecorder()
	body := `{"title":"X","description":"d","event_date":"not-a-date","venue":"v","time":"10:00"}`
	handler.Create(w, authedRequest(http.MethodPost, "/api/events", body, identity))

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestEventsUpdateForbiddenForOtherAdmin(t *testing.T) {
	handler, repo, identity := newEventsFixture(t)
	repo.byID["ev1"] = &events.Event{
		ID:        "ev1",
		Title:     "Original",
		EventDate: time.Now().AddDate(0, 0, 3),
		CreatedBy: identity.ID,
	}

	other := &admins.Identity{ID: "admin-2", Role: auth.RoleAdmin}
	r := authedRequest(http.MethodPut, "/api/events/ev1", `{"title":"Hijacked"}`, other)
	r.SetPathValue("id", "ev1")

	w := httptest.NewRecorder()
	handler.Update(w, r)

	require.Equal(t, http.StatusForbidden, w.Code)
	require.Equal(t, "Original", repo.byID["ev1"].Title)
}

func TestEventsUpdateUnknownID(t *testing.T) {
	handler, _, identity := newEventsFixture(t)

	r := authedRequest(http.MethodPut, "/api/events/missing", `{"title":"X"}`, identity)
	r.SetPathValue("id", "missing")

	w := httptest.NewRecorder()
	handler.Update(w, r)

	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestEventsDelete(t *testing.T) {
	handler, repo, identity := newEventsFixture(t)
	repo.byID["ev1"] = &events.Event{ID: "ev1", EventDate: time.Now(), CreatedBy: identity.ID}

	r := authedRequest(http.MethodDelete, "/api/events/ev1", "", identity)
	r.SetPathValue("id", "ev1")

	w := httptest.NewRecorder()
	handler.Delete(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	require.Empty(t, repo.byID)
}

func TestEventsCommentWindow(t *testing.T) {
	handler, repo, _ := newEventsFixture(t)
	repo.byID["near"] = &events.Event{ID: "near", EventDate: time.Now().AddDate(0, 0, 2)}
	repo.byID["far"] = &events.Event{ID: "far", EventDate: time.Now().AddDate(0, 0, 30)}

	r := authedRequest(http.MethodPost, "/api/events/near/comment", `{"text":"see you there"}`, nil)
	r.SetPathValue("id", "near")
	w := httptest.NewRecorder()
	handler.Comment(w, r)
	require.Equal(t, http.StatusCreated, w.Code)
	require.Len(t, repo.byID["near"].Comments, 1)

	r = authedRequest(http.MethodPost, "/api/events/far/comment", `{"text":"too early"}`, nil)
	r.SetPathValue("id", "far")
	w = httptest.NewRecorder()
	handler.Comment(w, r)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Empty(t, repo.byID["far"].Comments)
}

func TestEventsPublicListSweeps(t *testing.T) {
	handler, repo, _ := newEventsFixture(t)
	repo.byID["fresh"] = &events.Event{ID: "fresh", EventDate: time.Now().AddDate(0, 0, 1), Category: events.CategoryUpcoming}
	repo.byID["expired"] = &events.Event{ID: "expired", EventDate: time.Now().AddDate(0, 0, -10), Category: events.CategoryCurrent}

	w := httptest.NewRecorder()
	handler.List(w, httptest.NewRequest(http.MethodGet, "/api/events", nil))

	require.Equal(t, http.StatusOK, w.Code)
	var list []events.Event
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list, 1)
	require.Equal(t, "fresh", list[0].ID)
}
