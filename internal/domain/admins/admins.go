package admins

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/lnm-board/server/internal/auth"
)

var (
	ErrNotFound           = errors.New("admin not found")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrInvalidState is returned when approving or rejecting an
	// identity that is no longer pending.
	ErrInvalidState = errors.New("only pending requests can be resolved")
	// ErrProtectedAccount guards super-admin accounts from deletion.
	ErrProtectedAccount = errors.New("cannot delete a super admin")
)

// FieldError reports a missing or malformed input field.
type FieldError struct {
	Field   string
	Message string
}

func (e FieldError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// Identity is an admin account record. The password hash never leaves
// the server: JSON projections omit it.
type Identity struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         auth.Role `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

type Repository interface {
	GetByID(ctx context.Context, id string) (*Identity, error)
	GetByEmail(ctx context.Context, email string) (*Identity, error)
	ListByRole(ctx context.Context, role auth.Role) ([]Identity, error)
	// Insert persists the identity and fills in its generated id.
	// A duplicate email surfaces as ErrEmailTaken.
	Insert(ctx context.Context, identity *Identity) error
	UpdateRole(ctx context.Context, id string, role auth.Role) error
	UpdatePassword(ctx context.Context, id string, passwordHash string) error
	Delete(ctx context.Context, id string) error
}
