package admins

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/lnm-board/server/internal/auth"
	"github.com/lnm-board/server/internal/sanitize"
)

const minPasswordLength = 6

// Service implements account management on top of a Repository.
type Service struct {
	repo     Repository
	validate *validator.Validate
	logger   zerolog.Logger
}

func NewService(repo Repository, logger zerolog.Logger) *Service {
	return &Service{
		repo:     repo,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		logger:   logger.With().Str("component", "admins").Logger(),
	}
}

// CreateParams carries the fields for registration and direct creation.
type CreateParams struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// Authenticate verifies the email and password pair and returns the
// matching identity. Pending accounts cannot log in and are
// indistinguishable from bad credentials.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*Identity, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	identity, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("lookup identity: %w", err)
	}
	if !auth.CanPublish(identity.Role) {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(identity.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return identity, nil
}

// Register creates a pending admin request. The account stays unusable
// until a super admin approves it.
func (s *Service) Register(ctx context.Context, params CreateParams) (*Identity, error) {
	return s.create(ctx, params, auth.RolePending)
}

// CreateAdmin creates an account that is approved from the start.
func (s *Service) CreateAdmin(ctx context.Context, params CreateParams) (*Identity, error) {
	return s.create(ctx, params, auth.RoleAdmin)
}

func (s *Service) create(ctx context.Context, params CreateParams, role auth.Role) (*Identity, error) {
	params.Name = sanitize.Text(params.Name)
	params.Email = normalizeEmail(params.Email)
	if err := s.validate.Struct(params); err != nil {
		return nil, fieldError(err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(params.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	identity := &Identity{
		Name:         params.Name,
		Email:        params.Email,
		PasswordHash: string(hash),
		Role:         role,
	}
	if err := s.repo.Insert(ctx, identity); err != nil {
		return nil, err
	}
	return identity, nil
}

// ListPending returns accounts awaiting approval.
func (s *Service) ListPending(ctx context.Context) ([]Identity, error) {
	return s.repo.ListByRole(ctx, auth.RolePending)
}

// ListApproved returns accounts with the admin role. Super admins are
// not included.
func (s *Service) ListApproved(ctx context.Context) ([]Identity, error) {
	return s.repo.ListByRole(ctx, auth.RoleAdmin)
}

// Approve promotes a pending request to a full admin.
func (s *Service) Approve(ctx context.Context, id string) (*Identity, error) {
	identity, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if identity.Role != auth.RolePending {
		return nil, ErrInvalidState
	}
	if err := s.repo.UpdateRole(ctx, id, auth.RoleAdmin); err != nil {
		return nil, err
	}
	identity.Role = auth.RoleAdmin
	s.logger.Info().Str("admin_id", id).Str("email", identity.Email).Msg("admin request approved")
	return identity, nil
}

// Reject removes a pending request.
func (s *Service) Reject(ctx context.Context, id string) error {
	identity, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if identity.Role != auth.RolePending {
		return ErrInvalidState
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Str("admin_id", id).Str("email", identity.Email).Msg("admin request rejected")
	return nil
}

// Delete removes an approved admin. Super admin accounts cannot be
// deleted.
func (s *Service) Delete(ctx context.Context, id string) error {
	identity, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if identity.Role == auth.RoleSuperAdmin {
		return ErrProtectedAccount
	}
	return s.repo.Delete(ctx, id)
}

// ChangePassword rotates the password for the given account after
// verifying the current one.
func (s *Service) ChangePassword(ctx context.Context, id, current, next, confirm string) error {
	if current == "" || next == "" || confirm == "" {
		return FieldError{Message: "all fields are required"}
	}
	if next != confirm {
		return FieldError{Field: "confirm_password", Message: "passwords do not match"}
	}
	if len(next) < minPasswordLength {
		return FieldError{Field: "new_password", Message: "must be at least 6 characters"}
	}

	identity, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(identity.PasswordHash), []byte(current)); err != nil {
		return ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(next), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	return s.repo.UpdatePassword(ctx, id, string(hash))
}

// Bootstrap ensures a super admin account exists for the given email.
// An existing account is left untouched, so repeated startups are safe.
func (s *Service) Bootstrap(ctx context.Context, params CreateParams) error {
	params.Email = normalizeEmail(params.Email)
	if _, err := s.repo.GetByEmail(ctx, params.Email); err == nil {
		return nil
	} else if !errors.Is(err, ErrNotFound) {
		return fmt.Errorf("lookup super admin: %w", err)
	}

	identity, err := s.create(ctx, params, auth.RoleSuperAdmin)
	if err != nil {
		return err
	}
	s.logger.Info().Str("email", identity.Email).Msg("super admin created")
	return nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func fieldError(err error) error {
	var errs validator.ValidationErrors
	if errors.As(err, &errs) && len(errs) > 0 {
		f := errs[0]
		field := strings.ToLower(f.Field())
		switch f.Tag() {
		case "required":
			return FieldError{Field: field, Message: "is required"}
		case "email":
			return FieldError{Field: field, Message: "must be a valid email address"}
		case "min":
			return FieldError{Field: field, Message: fmt.Sprintf("must be at least %s characters", f.Param())}
		}
		return FieldError{Field: field, Message: "is invalid"}
	}
	return err
}
