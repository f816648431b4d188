package events

import (
	"context"
	"time"

	"github.com/lnm-board/server/internal/domain/patch"
)

// Owner is the minimal creator projection attached to listed records.
// It never carries the password hash.
type Owner struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Comment is embedded in its event and removed with it. Comments are
// append-only and unauthenticated.
type Comment struct {
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

type Event struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	EventDate   time.Time `json:"event_date"`
	Venue       string    `json:"venue"`
	Time        string    `json:"time"`
	ImageURL    *string   `json:"image"`
	Category    Category  `json:"category"`
	Comments    []Comment `json:"comments"`
	CreatedBy   string    `json:"-"`
	Owner       *Owner    `json:"created_by,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type CreateParams struct {
	Title       string    `validate:"required"`
	Description string    `validate:"required"`
	EventDate   time.Time `validate:"required"`
	Venue       string    `validate:"required"`
	Time        string    `validate:"required"`
	ImageURL    *string
	CreatedBy   string `validate:"required"`
}

// UpdateParams carries partial-update semantics: nil pointer fields were
// omitted and leave the stored value unchanged; Image distinguishes an
// omitted field from an explicit null, which clears the stored image.
type UpdateParams struct {
	Title       *string
	Description *string
	EventDate   *time.Time
	Venue       *string
	Time        *string
	Image       patch.String
}

type Repository interface {
	// List returns every event joined with its owner projection,
	// soonest event first.
	List(ctx context.Context) ([]Event, error)
	// ListByOwner returns the owner's events, most recent date first.
	ListByOwner(ctx context.Context, ownerID string) ([]Event, error)
	Get(ctx context.Context, id string) (*Event, error)
	Insert(ctx context.Context, event *Event) error
	Update(ctx context.Context, event *Event) error
	Delete(ctx context.Context, id string) error
	// AppendComment appends atomically at the store so concurrent
	// comments on the same event cannot lose updates.
	AppendComment(ctx context.Context, id string, comment Comment) error
	// ReclassifyAll recomputes every stored category against today in
	// a single set-oriented statement and reports rows changed.
	ReclassifyAll(ctx context.Context, today time.Time) (int64, error)
	// DeleteBefore purges events dated strictly before cutoff and
	// reports rows removed.
	DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error)
}
