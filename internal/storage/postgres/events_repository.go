package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/lnm-board/server/internal/domain/events"
)

type EventRepository struct {
	pool *pgxpool.Pool
}

const eventColumns = `
e.id, e.title, e.description, e.event_date, e.venue, e.event_time,
e.image_url, e.category, e.comments, e.created_by, e.created_at, e.updated_at,
a.id, a.name, a.email`

const eventFrom = `
  FROM events e
  LEFT JOIN admins a ON a.id = e.created_by`

func (r *EventRepository) List(ctx context.Context) ([]events.Event, error) {
	rows, err := r.pool.Query(ctx, `
SELECT `+eventColumns+eventFrom+`
 ORDER BY e.event_date ASC, e.created_at DESC
`)
	if err != nil {
		return nil, fmt.Errorf("list events: %w", err)
	}
	defer rows.Close()
	return collectEvents(rows)
}

func (r *EventRepository) ListByOwner(ctx context.Context, ownerID string) ([]events.Event, error) {
	if !validUUID(ownerID) {
		return nil, nil
	}
	rows, err := r.pool.Query(ctx, `
SELECT `+eventColumns+eventFrom+`
 WHERE e.created_by = $1
 ORDER BY e.event_date DESC, e.created_at DESC
`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list events by owner: %w", err)
	}
	defer rows.Close()
	return collectEvents(rows)
}

func (r *EventRepository) Get(ctx context.Context, id string) (*events.Event, error) {
	row := r.pool.QueryRow(ctx, `
SELECT `+eventColumns+eventFrom+`
 WHERE e.id = $1
`, id)
	event, err := scanEvent(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, events.ErrNotFound
		}
		return nil, err
	}
	return event, nil
}

func (r *EventRepository) Insert(ctx context.Context, event *events.Event) error {
	comments, err := marshalComments(event.Comments)
	if err != nil {
		return err
	}
	_, err = r.pool.Exec(ctx, `
INSERT INTO events (id, title, description, event_date, venue, event_time, image_url, category, comments, created_by)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
`,
		event.ID,
		event.Title,
		event.Description,
		event.EventDate,
		event.Venue,
		event.Time,
		event.ImageURL,
		string(event.Category),
		comments,
		event.CreatedBy,
	)
	if err != nil {
		return fmt.Errorf("insert event: %w", err)
	}
	return nil
}

func (r *EventRepository) Update(ctx context.Context, event *events.Event) error {
	tag, err := r.pool.Exec(ctx, `
UPDATE events
   SET title = $2,
       description = $3,
       event_date = $4,
       venue = $5,
       event_time = $6,
       image_url = $7,
       category = $8,
       updated_at = now()
 WHERE id = $1
`,
		event.ID,
		event.Title,
		event.Description,
		event.EventDate,
		event.Venue,
		event.Time,
		event.ImageURL,
		string(event.Category),
	)
	if err != nil {
		return fmt.Errorf("update event: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return events.ErrNotFound
	}
	return nil
}

func (r *EventRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM events WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete event: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return events.ErrNotFound
	}
	return nil
}

// AppendComment pushes onto the jsonb array in a single statement, so
// concurrent commenters never overwrite each other.
func (r *EventRepository) AppendComment(ctx context.Context, id string, comment events.Comment) error {
	payload, err := json.Marshal(comment)
	if err != nil {
		return fmt.Errorf("marshal comment: %w", err)
	}
	tag, err := r.pool.Exec(ctx, `
UPDATE events
   SET comments = comments || $2::jsonb,
       updated_at = now()
 WHERE id = $1
`, id, payload)
	if err != nil {
		return fmt.Errorf("append comment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return events.ErrNotFound
	}
	return nil
}

// ReclassifyAll recomputes categories against today in one statement
// and only touches rows whose category actually changes.
func (r *EventRepository) ReclassifyAll(ctx context.Context, today time.Time) (int64, error) {
	tag, err := r.pool.Exec(ctx, `
UPDATE events
   SET category = CASE
         WHEN event_date < $1 THEN 'past'
         WHEN event_date = $1 THEN 'current'
         ELSE 'upcoming'
       END,
       updated_at = now()
 WHERE category IS DISTINCT FROM CASE
         WHEN event_date < $1 THEN 'past'
         WHEN event_date = $1 THEN 'current'
         ELSE 'upcoming'
       END
`, today)
	if err != nil {
		return 0, fmt.Errorf("reclassify events: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (r *EventRepository) DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM events WHERE event_date < $1`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("purge events: %w", err)
	}
	return tag.RowsAffected(), nil
}

func collectEvents(rows pgx.Rows) ([]events.Event, error) {
	var out []events.Event
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *event)
	}
	return out, rows.Err()
}

func scanEvent(row pgx.Row) (*events.Event, error) {
	var event events.Event
	var category string
	var comments []byte
	// Owner columns come through a left join and are NULL once the
	// creator account is deleted; the event itself outlives the admin.
	var ownerID, ownerName, ownerEmail *string
	err := row.Scan(
		&event.ID,
		&event.Title,
		&event.Description,
		&event.EventDate,
		&event.Venue,
		&event.Time,
		&event.ImageURL,
		&category,
		&comments,
		&event.CreatedBy,
		&event.CreatedAt,
		&event.UpdatedAt,
		&ownerID,
		&ownerName,
		&ownerEmail,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan event: %w", err)
	}
	event.Category = events.Category(category)
	if ownerID != nil {
		event.Owner = &events.Owner{ID: *ownerID, Name: *ownerName, Email: *ownerEmail}
	}
	event.Comments = []events.Comment{}
	if len(comments) > 0 {
		if err := json.Unmarshal(comments, &event.Comments); err != nil {
			return nil, fmt.Errorf("decode comments: %w", err)
		}
	}
	return &event, nil
}

func marshalComments(comments []events.Comment) ([]byte, error) {
	if comments == nil {
		comments = []events.Comment{}
	}
	payload, err := json.Marshal(comments)
	if err != nil {
		return nil, fmt.Errorf("marshal comments: %w", err)
	}
	return payload, nil
}
