package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestJWTManagerRoundTrip(t *testing.T) {
	manager := NewJWTManager("test-secret", time.Hour, "lnm-board")

	token, err := manager.Generate("admin-1", "alice@lnmiit.ac.in", RoleAdmin)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := manager.Validate(token)
	require.NoError(t, err)
	require.Equal(t, "admin-1", claims.Subject)
	require.Equal(t, "alice@lnmiit.ac.in", claims.Email)
	require.Equal(t, string(RoleAdmin), claims.Role)
}

func TestJWTManagerRejectsEmptySubject(t *testing.T) {
	manager := NewJWTManager("test-secret", time.Hour, "lnm-board")

	_, err := manager.Generate("", "alice@lnmiit.ac.in", RoleAdmin)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTManagerExpiredToken(t *testing.T) {
	manager := NewJWTManager("test-secret", -time.Minute, "lnm-board")

	token, err := manager.Generate("admin-1", "alice@lnmiit.ac.in", RoleAdmin)
	require.NoError(t, err)

	_, err = manager.Validate(token)
	require.ErrorIs(t, err, ErrExpiredToken)
}

func TestJWTManagerWrongSecret(t *testing.T) {
	manager := NewJWTManager("test-secret", time.Hour, "lnm-board")
	other := NewJWTManager("other-secret", time.Hour, "lnm-board")

	token, err := manager.Generate("admin-1", "alice@lnmiit.ac.in", RoleSuperAdmin)
	require.NoError(t, err)

	_, err = other.Validate(token)
	require.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTManagerMissingToken(t *testing.T) {
	manager := NewJWTManager("test-secret", time.Hour, "lnm-board")

	_, err := manager.Validate("   ")
	require.ErrorIs(t, err, ErrMissingToken)
}

func TestTokenFromHeader(t *testing.T) {
	tests := []struct {
		name    string
		header  string
		want    string
		wantErr bool
	}{
		{name: "valid bearer", header: "Bearer abc123", want: "abc123"},
		{name: "lowercase scheme", header: "bearer abc123", want: "abc123"},
		{name: "missing header", header: "", wantErr: true},
		{name: "wrong scheme", header: "Basic abc123", wantErr: true},
		{name: "no token", header: "Bearer", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := TokenFromHeader(tt.header)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrMissingToken)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, token)
		})
	}
}
