package notices

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/oklog/ulid/v2"

	"github.com/lnm-board/server/internal/auth"
	"github.com/lnm-board/server/internal/sanitize"
)

// Actor identifies the admin performing a mutation.
type Actor struct {
	ID   string
	Role auth.Role
}

type Service struct {
	repo     Repository
	validate *validator.Validate
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, validate: validator.New()}
}

func (s *Service) ListPublic(ctx context.Context) ([]Notice, error) {
	return s.repo.List(ctx)
}

func (s *Service) ListOwned(ctx context.Context, ownerID string) ([]Notice, error) {
	return s.repo.ListByOwner(ctx, ownerID)
}

func (s *Service) Create(ctx context.Context, params CreateParams) (*Notice, error) {
	params.Title = sanitize.Text(params.Title)
	params.Description = sanitize.HTML(params.Description)

	if err := s.validate.Struct(params); err != nil {
		return nil, fieldError(err)
	}

	notice := &Notice{
		ID:          ulid.Make().String(),
		Title:       params.Title,
		Description: params.Description,
		ImageURL:    params.ImageURL,
		CreatedBy:   params.CreatedBy,
	}
	if err := s.repo.Insert(ctx, notice); err != nil {
		return nil, fmt.Errorf("insert notice: %w", err)
	}
	return s.repo.Get(ctx, notice.ID)
}

func (s *Service) Update(ctx context.Context, id string, actor Actor, params UpdateParams) (*Notice, error) {
	notice, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !auth.CanMutate(actor.Role, actor.ID, notice.CreatedBy) {
		return nil, ErrForbidden
	}

	if params.Title != nil {
		if title := sanitize.Text(*params.Title); title != "" {
			notice.Title = title
		}
	}
	if params.Description != nil {
		if description := sanitize.HTML(*params.Description); description != "" {
			notice.Description = description
		}
	}
	if params.Image.Set {
		notice.ImageURL = params.Image.Value
	}

	if err := s.repo.Update(ctx, notice); err != nil {
		return nil, fmt.Errorf("update notice: %w", err)
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id string, actor Actor) error {
	notice, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if !auth.CanMutate(actor.Role, actor.ID, notice.CreatedBy) {
		return ErrForbidden
	}
	return s.repo.Delete(ctx, id)
}

func fieldError(err error) error {
	var errs validator.ValidationErrors
	if errors.As(err, &errs) && len(errs) > 0 {
		return FieldError{Field: strings.ToLower(errs[0].Field()), Message: "is required"}
	}
	return FieldError{Message: err.Error()}
}
