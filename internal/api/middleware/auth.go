package middleware

import (
	"context"
	"errors"
	"net/http"
	"slices"

	"github.com/rs/zerolog"

	"github.com/lnm-board/server/internal/api/respond"
	"github.com/lnm-board/server/internal/auth"
	"github.com/lnm-board/server/internal/domain/admins"
)

type contextKey string

const identityKey contextKey = "identity"

// Authenticate validates the bearer token and resolves the account it
// names. The role always comes from the store, not the token, so a
// demoted or deleted admin loses access as soon as the token is next
// used.
func Authenticate(tokens *auth.JWTManager, repo admins.Repository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, err := auth.TokenFromHeader(r.Header.Get("Authorization"))
			if err != nil {
				respond.Error(w, r, http.StatusUnauthorized, "authentication required", err)
				return
			}

			claims, err := tokens.Validate(token)
			if err != nil {
				if errors.Is(err, auth.ErrExpiredToken) {
					respond.Error(w, r, http.StatusUnauthorized, "token expired", err)
					return
				}
				respond.Error(w, r, http.StatusUnauthorized, "invalid token", err)
				return
			}

			identity, err := repo.GetByID(r.Context(), claims.Subject)
			if err != nil {
				if errors.Is(err, admins.ErrNotFound) {
					respond.Error(w, r, http.StatusUnauthorized, "invalid token", err)
					return
				}
				respond.Error(w, r, http.StatusInternalServerError, "", err)
				return
			}

			logger := zerolog.Ctx(r.Context()).With().Str("admin_id", identity.ID).Logger()
			ctx := logger.WithContext(context.WithValue(r.Context(), identityKey, identity))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole rejects authenticated requests whose account holds none
// of the given roles.
func RequireRole(roles ...auth.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity := Identity(r.Context())
			if identity == nil {
				respond.Error(w, r, http.StatusUnauthorized, "authentication required", nil)
				return
			}
			if !slices.Contains(roles, identity.Role) {
				respond.Error(w, r, http.StatusForbidden, "access denied", nil)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// Identity returns the authenticated account, or nil outside the
// Authenticate middleware.
func Identity(ctx context.Context) *admins.Identity {
	identity, _ := ctx.Value(identityKey).(*admins.Identity)
	return identity
}

// WithIdentity injects an identity for handler tests.
func WithIdentity(ctx context.Context, identity *admins.Identity) context.Context {
	return context.WithValue(ctx, identityKey, identity)
}
