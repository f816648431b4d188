package notices

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/lnm-board/server/internal/domain/patch"
)

var (
	ErrNotFound  = errors.New("notice not found")
	ErrForbidden = errors.New("you can only modify your own notices")
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

// Owner is the minimal creator projection attached to listed records.
type Owner struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type Notice struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	ImageURL    *string   `json:"image"`
	CreatedBy   string    `json:"-"`
	Owner       *Owner    `json:"created_by,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type CreateParams struct {
	Title       string `validate:"required"`
	Description string `validate:"required"`
	ImageURL    *string
	CreatedBy   string `validate:"required"`
}

// UpdateParams carries partial-update semantics; see the events
// counterpart. Image distinguishes omitted from explicit null.
type UpdateParams struct {
	Title       *string
	Description *string
	Image       patch.String
}

type Repository interface {
	// List returns every notice joined with its owner projection,
	// newest first.
	List(ctx context.Context) ([]Notice, error)
	ListByOwner(ctx context.Context, ownerID string) ([]Notice, error)
	Get(ctx context.Context, id string) (*Notice, error)
	Insert(ctx context.Context, notice *Notice) error
	Update(ctx context.Context, notice *Notice) error
	Delete(ctx context.Context, id string) error
}
