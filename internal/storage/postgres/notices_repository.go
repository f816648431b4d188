package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lnm-board/server/internal/domain/notices"
)

type NoticeRepository struct {
	pool *pgxpool.Pool
}

const noticeColumns = `
n.id, n.title, n.description, n.image_url, n.created_by, n.created_at, n.updated_at,
a.id, a.name, a.email`

const noticeFrom = `
  FROM notices n
  LEFT JOIN admins a ON a.id = n.created_by`

func (r *NoticeRepository) List(ctx context.Context) ([]notices.Notice, error) {
	rows, err := r.pool.Query(ctx, `
SELECT `+noticeColumns+noticeFrom+`
 ORDER BY n.created_at DESC
`)
	if err != nil {
		return nil, fmt.Errorf("list notices: %w", err)
	}
	defer rows.Close()
	return collectNotices(rows)
}

func (r *NoticeRepository) ListByOwner(ctx context.Context, ownerID string) ([]notices.Notice, error) {
	if !validUUID(ownerID) {
		return nil, nil
	}
	rows, err := r.pool.Query(ctx, `
SELECT `+noticeColumns+noticeFrom+`
 WHERE n.created_by = $1
 ORDER BY n.created_at DESC
`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list notices by owner: %w", err)
	}
	defer rows.Close()
	return collectNotices(rows)
}

func (r *NoticeRepository) Get(ctx context.Context, id string) (*notices.Notice, error) {
	row := r.pool.QueryRow(ctx, `
SELECT `+noticeColumns+noticeFrom+`
 WHERE n.id = $1
`, id)
	notice, err := scanNotice(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, notices.ErrNotFound
		}
		return nil, err
	}
	return notice, nil
}

func (r *NoticeRepository) Insert(ctx context.Context, notice *notices.Notice) error {
	_, err := r.pool.Exec(ctx, `
INSERT INTO notices (id, title, description, image_url, created_by)
VALUES ($1, $2, $3, $4, $5)
`,
		notice.ID,
		notice.Title,
		notice.Description,
		notice.ImageURL,
		notice.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("insert notice: %w", err)
	}
	return nil
}

func (r *NoticeRepository) Update(ctx context.Context, notice *notices.Notice) error {
	tag, err := r.pool.Exec(ctx, `
UPDATE notices
   SET title = $2,
       description = $3,
       image_url = $4,
       updated_at = now()
 WHERE id = $1
`,
		notice.ID,
		notice.Title,
		notice.Description,
		notice.ImageURL,
	)
	if err != nil {
		return fmt.Errorf("update notice: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return notices.ErrNotFound
	}
	return nil
}

func (r *NoticeRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM notices WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete notice: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return notices.ErrNotFound
	}
	return nil
}

func collectNotices(rows pgx.Rows) ([]notices.Notice, error) {
	var out []notices.Notice
	for rows.Next() {
		notice, err := scanNotice(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *notice)
	}
	return out, rows.Err()
}

func scanNotice(row pgx.Row) (*notices.Notice, error) {
	var notice notices.Notice
	var ownerID, ownerName, ownerEmail *string
	err := row.Scan(
		&notice.ID,
		&notice.Title,
		&notice.Description,
		&notice.ImageURL,
		&notice.CreatedBy,
		&notice.CreatedAt,
		&notice.UpdatedAt,
		&ownerID,
		&ownerName,
		&ownerEmail,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan notice: %w", err)
	}
	if ownerID != nil {
		notice.Owner = &notices.Owner{ID: *ownerID, Name: *ownerName, Email: *ownerEmail}
	}
	return &notice, nil
}
