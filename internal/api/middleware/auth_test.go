package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/lnm-board/server/internal/auth"
	"github.com/lnm-board/server/internal/domain/admins"
)

type fakeAdminRepo struct {
	byID map[string]*admins.Identity
}

func (f *fakeAdminRepo) GetByID(_ context.Context, id string) (*admins.Identity, error) {
	identity, ok := f.byID[id]
	if !ok {
		return nil, admins.ErrNotFound
	}
	return identity, nil
}

func (f *fakeAdminRepo) GetByEmail(context.Context, string) (*admins.Identity, error) {
	return nil, admins.ErrNotFound
}

func (f *fakeAdminRepo) ListByRole(context.Context, auth.Role) ([]admins.Identity, error) {
	return nil, nil
}

func (f *fakeAdminRepo) Insert(context.Context, *admins.Identity) error       { return nil }
func (f *fakeAdminRepo) UpdateRole(context.Context, string, auth.Role) error  { return nil }
func (f *fakeAdminRepo) UpdatePassword(context.Context, string, string) error { return nil }
func (f *fakeAdminRepo) Delete(context.Context, string) error                 { return nil }

func okHandler(t *testing.T, called *bool) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*called = true
		w.WriteHeader(http.StatusOK)
	})
}

func TestAuthenticate(t *testing.T) {
	tokens := auth.NewJWTManager("test-secret", time.Hour, "board-test")
	repo := &fakeAdminRepo{byID: map[string]*admins.Identity{
		"a1": {ID: "a1", Email: "admin@campus.edu", Role: auth.RoleAdmin},
	}}

	token, err := tokens.Generate("a1", "admin@campus.edu", auth.RoleAdmin)
	require.NoError(t, err)

	var called bool
	var seen *admins.Identity
	handler := Authenticate(tokens, repo)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		seen = Identity(r.Context())
	}))

	r := httptest.NewRequest(http.MethodGet, "/api/events/my-events", nil)
	r.Header.Set("Authorization", "Bearer "+token)
	handler.ServeHTTP(httptest.NewRecorder(), r)

	require.True(t, called)
	require.NotNil(t, seen)
	require.Equal(t, "a1", seen.ID)
}

func TestAuthenticateMissingToken(t *testing.T) {
	tokens := auth.NewJWTManager("test-secret", time.Hour, "board-test")
	repo := &fakeAdminRepo{byID: map[string]*admins.Identity{}}

	var called bool
	handler := Authenticate(tokens, repo)(okHandler(t, &called))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/events/my-events", nil))

	require.False(t, called)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthenticateDeletedAccount(t *testing.T) {
	tokens := auth.NewJWTManager("test-secret", time.Hour, "board-test")
	repo := &fakeAdminRepo{byID: map[string]*admins.Identity{}}

	token, err := tokens.Generate("ghost", "ghost@campus.edu", auth.RoleAdmin)
	require.NoError(t, err)

	var called bool
	handler := Authenticate(tokens, repo)(okHandler(t, &called))

	r := httptest.NewRequest(http.MethodGet, "/api/events/my-events", nil)
	r.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	require.False(t, called)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireRole(t *testing.T) {
	pending := &admins.Identity{ID: "p1", Role: auth.RolePending}
	admin := &admins.Identity{ID: "a1", Role: auth.RoleAdmin}

	var called bool
	handler := RequireRole(auth.RoleAdmin, auth.RoleSuperAdmin)(okHandler(t, &called))

	// Pending accounts are authenticated but not authorized.
	r := httptest.NewRequest(http.MethodPost, "/api/events", nil)
	r = r.WithContext(WithIdentity(r.Context(), pending))
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)
	require.False(t, called)
	require.Equal(t, http.StatusForbidden, w.Code)

	r = httptest.NewRequest(http.MethodPost, "/api/events", nil)
	r = r.WithContext(WithIdentity(r.Context(), admin))
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, r)
	require.True(t, called)
	require.Equal(t, http.StatusOK, w.Code)
}

func TestRequireRoleWithoutIdentity(t *testing.T) {
	var called bool
	handler := RequireRole(auth.RoleSuperAdmin)(okHandler(t, &called))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/super-admin/admins", nil))

	require.False(t, called)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}
