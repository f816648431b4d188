package postgres

import (
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lnm-board/server/internal/domain/admins"
	"github.com/lnm-board/server/internal/domain/events"
	"github.com/lnm-board/server/internal/domain/notices"
)

// Repository bundles the PostgreSQL-backed repositories behind a
// single constructor.
type Repository struct {
	pool *pgxpool.Pool

	admins  *AdminRepository
	events  *EventRepository
	notices *NoticeRepository
}

func NewRepository(pool *pgxpool.Pool) (*Repository, error) {
	if pool == nil {
		return nil, fmt.Errorf("postgres repository: pool is nil")
	}
	return &Repository{
		pool:    pool,
		admins:  &AdminRepository{pool: pool},
		events:  &EventRepository{pool: pool},
		notices: &NoticeRepository{pool: pool},
	}, nil
}

func (r *Repository) Admins() admins.Repository {
	return r.admins
}

func (r *Repository) Events() events.Repository {
	return r.events
}

func (r *Repository) Notices() notices.Repository {
	return r.notices
}
