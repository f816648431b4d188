package events

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"

	"github.com/lnm-board/server/internal/auth"
	"github.com/lnm-board/server/internal/sanitize"
)

// Actor identifies the admin performing a mutation.
type Actor struct {
	ID   string
	Role auth.Role
}

// SweepResult reports what a lifecycle sweep changed.
type SweepResult struct {
	Reclassified int64
	Purged       int64
}

type Service struct {
	repo     Repository
	validate *validator.Validate
	logger   zerolog.Logger
	now      func() time.Time
}

func NewService(repo Repository, logger zerolog.Logger) *Service {
	return &Service{
		repo:     repo,
		validate: validator.New(),
		logger:   logger.With().Str("component", "events").Logger(),
		now:      time.Now,
	}
}

// ListPublic serves the unauthenticated board listing. Both sweeps run
// first so a listing is never served with a stale category or an event
// that should already have been purged, even between timer ticks.
func (s *Service) ListPublic(ctx context.Context) ([]Event, error) {
	if _, err := s.Sweep(ctx); err != nil {
		return nil, err
	}
	return s.repo.List(ctx)
}

func (s *Service) ListOwned(ctx context.Context, ownerID string) ([]Event, error) {
	return s.repo.ListByOwner(ctx, ownerID)
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Event, error) {
	params.Title = sanitize.Text(params.Title)
	params.Description = sanitize.HTML(params.Description)
	params.Venue = sanitize.Text(params.Venue)
	params.Time = sanitize.Text(params.Time)

	if err := s.validate.Struct(params); err != nil {
		return nil, fieldError(err)
	}

	today := s.now()
	if Classify(params.EventDate, today) == CategoryPast {
		return nil, ErrPastDate
	}

	event := &Event{
		ID:          ulid.Make().String(),
		Title:       params.Title,
		Description: params.Description,
		EventDate:   DateOnly(params.EventDate),
		Venue:       params.Venue,
		Time:        params.Time,
		ImageURL:    params.ImageURL,
		Category:    Classify(params.EventDate, today),
		Comments:    []Comment{},
		CreatedBy:   params.CreatedBy,
	}
	if err := s.repo.Insert(ctx, event); err != nil {
		return nil, fmt.Errorf("insert event: %w", err)
	}

	return s.repo.Get(ctx, event.ID)
}

func (s *Service) Update(ctx context.Context, id string, actor Actor, params UpdateParams) (*Event, error) {
	event, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !auth.CanMutate(actor.Role, actor.ID, event.CreatedBy) {
		return nil, ErrForbidden
	}

	if params.Title != nil {
		if title := sanitize.Text(*params.Title); title != "" {
			event.Title = title
		}
	}
	if params.Description != nil {
		if description := sanitize.HTML(*params.Description); description != "" {
			event.Description = description
		}
	}
	if params.Venue != nil {
		event.Venue = sanitize.Text(*params.Venue)
	}
	if params.Time != nil {
		event.Time = sanitize.Text(*params.Time)
	}
	if params.EventDate != nil {
		today := s.now()
		if Classify(*params.EventDate, today) == CategoryPast {
			return nil, ErrPastDate
		}
		event.EventDate = DateOnly(*params.EventDate)
		event.Category = Classify(*params.EventDate, today)
	}
	if params.Image.Set {
		event.ImageURL = params.Image.Value
	}

	if err := s.repo.Update(ctx, event); err != nil {
		return nil, fmt.Errorf("update event: %w", err)
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id string, actor Actor) error {
	event, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if !auth.CanMutate(actor.Role, actor.ID, event.CreatedBy) {
		return ErrForbidden
	}
	return s.repo.Delete(ctx, id)
}

// AddComment appends a comment without authentication, provided today
// falls within the comment window around the event date.
func (s *Service) AddComment(ctx context.Context, id string, text string) (*Event, error) {
	text = sanitize.Text(text)
	if strings.TrimSpace(text) == "" {
		return nil, FieldError{Field: "text", Message: "comment text is required"}
	}

	event, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !CommentWindowOpen(event.EventDate, s.now()) {
		return nil, ErrCommentWindowClosed
	}

	comment := Comment{Text: text, CreatedAt: s.now().UTC()}
	if err := s.repo.AppendComment(ctx, id, comment); err != nil {
		return nil, fmt.Errorf("append comment: %w", err)
	}
	return s.repo.Get(ctx, id)
}

// Sweep recomputes every stored category and purges events dated more
// than RetentionDays before today. Both statements are set-oriented and
// idempotent, so overlapping sweeps converge regardless of interleaving.
func (s *Service) Sweep(ctx context.Context) (SweepResult, error) {
	// Normalize before handing the date to the store so the SQL
	// comparisons see the same calendar day Classify would.
	today := DateOnly(s.now())

	reclassified, err := s.repo.ReclassifyAll(ctx, today)
	if err != nil {
		return SweepResult{}, fmt.Errorf("reclassify events: %w", err)
	}

	purged, err := s.repo.DeleteBefore(ctx, RetentionCutoff(today))
	if err != nil {
		return SweepResult{}, fmt.Errorf("purge stale events: %w", err)
	}

	if reclassified > 0 || purged > 0 {
		s.logger.Info().
			Int64("reclassified", reclassified).
			Int64("purged", purged).
			Msg("lifecycle sweep applied changes")
	}
	return SweepResult{Reclassified: reclassified, Purged: purged}, nil
}

// fieldError converts the first validator failure into a FieldError so
// handlers can surface a 400 with the offending field.
func fieldError(err error) error {
	var errs validator.ValidationErrors
	if errors.As(err, &errs) && len(errs) > 0 {
		return FieldError{Field: strings.ToLower(errs[0].Field()), Message: "is required"}
	}
	return FieldError{Message: err.Error()}
}
