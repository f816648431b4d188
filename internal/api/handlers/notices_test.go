package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lnm-board/server/internal/auth"
	"github.com/lnm-board/server/internal/domain/admins"
	"github.com/lnm-board/server/internal/domain/notices"
)

func newNoticesFixture(t *testing.T) (*NoticesHandler, *memNoticeRepo, *admins.Identity) {
	t.Helper()
	repo := newMemNoticeRepo()
	identity := &admins.Identity{ID: "admin-1", Name: "Admin One", Email: "one@campus.edu", Role: auth.RoleAdmin}
	return NewNoticesHandler(notices.NewService(repo)), repo, identity
}

func TestNoticesCreate(t *testing.T) {
	handler, repo, identity := newNoticesFixture(t)

	body := `{"title":"Exam Schedule","description":"Finals start May 2"}`
	w := httptest.NewRecorder()
	handler.Create(w, authedRequest(http.MethodPost, "/api/notices", body, identity))

	require.Equal(t, http.StatusCreated, w.Code)
	var notice notices.Notice
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &notice))
	require.Equal(t, "Exam Schedule", notice.Title)
	require.Len(t, repo.byID, 1)
}

func TestNoticesCreateMissingTitle(t *testing.T) {
	handler, _, identity := newNoticesFixture(t)

	w := httptest.NewRecorder()
	handler.Create(w, authedRequest(http.MethodPost, "/api/notices", `{"description":"d"}`, identity))

	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestNoticesUpdateForbidden(t *testing.T) {
	handler, repo, identity := newNoticesFixture(t)
	repo.byID["n1"] = &notices.Notice{ID: "n1", Title: "Original", CreatedBy: identity.ID}

	other := &admins.Identity{ID: "admin-2", Role: auth.RoleAdmin}
	r := authedRequest(http.MethodPut, "/api/notices/n1", `{"title":"Hijacked"}`, other)
	r.SetPathValue("id", "n1")

	w := httptest.NewRecorder()
	handler.Update(w, r)

	require.Equal(t, http.StatusForbidden, w.Code)
}

func TestNoticesSuperAdminCanDeleteAny(t *testing.T) {
	handler, repo, identity := newNoticesFixture(t)
	repo.byID["n1"] = &notices.Notice{ID: "n1", CreatedBy: identity.ID}

	root := &admins.Identity{ID: "root", Role: auth.RoleSuperAdmin}
	r := authedRequest(http.MethodDelete, "/api/notices/n1", "", root)
	r.SetPathValue("id", "n1")

	w := httptest.NewRecorder()
	handler.Delete(w, r)

	require.Equal(t, http.StatusOK, w.Code)
	require.Empty(t, repo.byID)
}
