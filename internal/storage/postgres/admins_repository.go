package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lnm-board/server/internal/auth"
	"github.com/lnm-board/server/internal/domain/admins"
)

type AdminRepository struct {
	pool *pgxpool.Pool
}

const adminColumns = `id, name, email, password_hash, role, created_at`

func (r *AdminRepository) GetByID(ctx context.Context, id string) (*admins.Identity, error) {
	if !validUUID(id) {
		return nil, admins.ErrNotFound
	}
	row := r.pool.QueryRow(ctx, `
SELECT `+adminColumns+`
  FROM admins
 WHERE id = $1
`, id)
	return scanIdentity(row)
}

func (r *AdminRepository) GetByEmail(ctx context.Context, email string) (*admins.Identity, error) {
	row := r.pool.QueryRow(ctx, `
SELECT `+adminColumns+`
  FROM admins
 WHERE email = $1
`, email)
	return scanIdentity(row)
}

func (r *AdminRepository) ListByRole(ctx context.Context, role auth.Role) ([]admins.Identity, error) {
	rows, err := r.pool.Query(ctx, `
SELECT `+adminColumns+`
  FROM admins
 WHERE role = $1
 ORDER BY created_at DESC
`, string(role))
	if err != nil {
		return nil, fmt.Errorf("list admins: %w", err)
	}
	defer rows.Close()

	var out []admins.Identity
	for rows.Next() {
		identity, err := scanIdentity(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *identity)
	}
	return out, rows.Err()
}

func (r *AdminRepository) Insert(ctx context.Context, identity *admins.Identity) error {
	err := r.pool.QueryRow(ctx, `
INSERT INTO admins (name, email, password_hash, role)
VALUES ($1, $2, $3, $4)
RETURNING id, created_at
`, identity.Name, identity.Email, identity.PasswordHash, string(identity.Role)).
		Scan(&identity.ID, &identity.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return admins.ErrEmailTaken
		}
		return fmt.Errorf("insert admin: %w", err)
	}
	return nil
}

func (r *AdminRepository) UpdateRole(ctx context.Context, id string, role auth.Role) error {
	if !validUUID(id) {
		return admins.ErrNotFound
	}
	tag, err := r.pool.Exec(ctx, `UPDATE admins SET role = $2 WHERE id = $1`, id, string(role))
	if err != nil {
		return fmt.Errorf("update admin role: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return admins.ErrNotFound
	}
	return nil
}

func (r *AdminRepository) UpdatePassword(ctx context.Context, id string, passwordHash string) error {
	if !validUUID(id) {
		return admins.ErrNotFound
	}
	tag, err := r.pool.Exec(ctx, `UPDATE admins SET password_hash = $2 WHERE id = $1`, id, passwordHash)
	if err != nil {
		return fmt.Errorf("update admin password: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return admins.ErrNotFound
	}
	return nil
}

func (r *AdminRepository) Delete(ctx context.Context, id string) error {
	if !validUUID(id) {
		return admins.ErrNotFound
	}
	tag, err := r.pool.Exec(ctx, `DELETE FROM admins WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete admin: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return admins.ErrNotFound
	}
	return nil
}

func scanIdentity(row pgx.Row) (*admins.Identity, error) {
	var identity admins.Identity
	var role string
	err := row.Scan(
		&identity.ID,
		&identity.Name,
		&identity.Email,
		&identity.PasswordHash,
		&role,
		&identity.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, admins.ErrNotFound
		}
		return nil, fmt.Errorf("scan admin: %w", err)
	}
	identity.Role = auth.Role(role)
	return &identity, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
