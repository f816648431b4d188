package handlers

import (
	"context"
	"fmt"
	"sort"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/lnm-board/server/internal/auth"
	"github.com/lnm-board/server/internal/domain/admins"
	"github.com/lnm-board/server/internal/domain/events"
	"github.com/lnm-board/server/internal/domain/notices"
)

type memAdminRepo struct {
	byID   map[string]*admins.Identity
	nextID int
}

func newMemAdminRepo() *memAdminRepo {
	return &memAdminRepo{byID: make(map[string]*admins.Identity)}
}

func (m *memAdminRepo) add(id, email, password string, role auth.Role) *admins.Identity {
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	identity := &admins.Identity{ID: id, Name: "Admin " + id, Email: email, PasswordHash: string(hash), Role: role}
	m.byID[id] = identity
	return identity
}

func (m *memAdminRepo) GetByID(_ context.Context, id string) (*admins.Identity, error) {
	identity, ok := m.byID[id]
	if !ok {
		return nil, admins.ErrNotFound
	}
	clone := *identity
	return &clone, nil
}

func (m *memAdminRepo) GetByEmail(_ context.Context, email string) (*admins.Identity, error) {
	for _, identity := range m.byID {
		if identity.Email == email {
			clone := *identity
			return &clone, nil
		}
	}
	return nil, admins.ErrNotFound
}

func (m *memAdminRepo) ListByRole(_ context.Context, role auth.Role) ([]admins.Identity, error) {
	var out []admins.Identity
	for _, identity := range m.byID {
		if identity.Role == role {
			out = append(out, *identity)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *memAdminRepo) Insert(_ context.Context, identity *admins.Identity) error {
	for _, existing := range m.byID {
		if existing.Email == identity.Email {
			return admins.ErrEmailTaken
		}
	}
	m.nextID++
	identity.ID = fmt.Sprintf("admin-%d", m.nextID)
	clone := *identity
	m.byID[identity.ID] = &clone
	return nil
}

func (m *memAdminRepo) UpdateRole(_ context.Context, id string, role auth.Role) error {
	identity, ok := m.byID[id]
	if !ok {
		return admins.ErrNotFound
	}
	identity.Role = role
	return nil
}

func (m *memAdminRepo) UpdatePassword(_ context.Context, id string, hash string) error {
	identity, ok := m.byID[id]
	if !ok {
		return admins.ErrNotFound
	}
	identity.PasswordHash = hash
	return nil
}

func (m *memAdminRepo) Delete(_ context.Context, id string) error {
	if _, ok := m.byID[id]; !ok {
		return admins.ErrNotFound
	}
	delete(m.byID, id)
	return nil
}

type memEventRepo struct {
	byID map[string]*events.Event
}

func newMemEventRepo() *memEventRepo {
	return &memEventRepo{byID: make(map[string]*events.Event)}
}

func (m *memEventRepo) List(_ context.Context) ([]events.Event, error) {
	var out []events.Event
	for _, event := range m.byID {
		out = append(out, *event)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EventDate.Before(out[j].EventDate) })
	return out, nil
}

func (m *memEventRepo) ListByOwner(_ context.Context, ownerID string) ([]events.Event, error) {
	var out []events.Event
	for _, event := range m.byID {
		if event.CreatedBy == ownerID {
			out = append(out, *event)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].EventDate.After(out[j].EventDate) })
	return out, nil
}

func (m *memEventRepo) Get(_ context.Context, id string) (*events.Event, error) {
	event, ok := m.byID[id]
	if !ok {
		return nil, events.ErrNotFound
	}
	clone := *event
	return &clone, nil
}

func (m *memEventRepo) Insert(_ context.Context, event *events.Event) error {
	clone := *event
	m.byID[event.ID] = &clone
	return nil
}

func (m *memEventRepo) Update(_ context.Context, event *events.Event) error {
	if _, ok := m.byID[event.ID]; !ok {
		return events.ErrNotFound
	}
	clone := *event
	m.byID[event.ID] = &clone
	return nil
}

func (m *memEventRepo) Delete(_ context.Context, id string) error {
	if _, ok := m.byID[id]; !ok {
		return events.ErrNotFound
	}
	delete(m.byID, id)
	return nil
}

func (m *memEventRepo) AppendComment(_ context.Context, id string, comment events.Comment) error {
	event, ok := m.byID[id]
	if !ok {
		return events.ErrNotFound
	}
	event.Comments = append(event.Comments, comment)
	return nil
}

func (m *memEventRepo) ReclassifyAll(_ context.Context, today time.Time) (int64, error) {
	var changed int64
	for _, event := range m.byID {
		category := events.Classify(event.EventDate, today)
		if event.Category != category {
			event.Category = category
			changed++
		}
	}
	return changed, nil
}

func (m *memEventRepo) DeleteBefore(_ context.Context, cutoff time.Time) (int64, error) {
	var purged int64
	for id, event := range m.byID {
		if events.DateOnly(event.EventDate).Before(cutoff) {
			delete(m.byID, id)
			purged++
		}
	}
	return purged, nil
}

type memNoticeRepo struct {
	byID map[string]*notices.Notice
}

func newMemNoticeRepo() *memNoticeRepo {
	return &memNoticeRepo{byID: make(map[string]*notices.Notice)}
}

func (m *memNoticeRepo) List(_ context.Context) ([]notices.Notice, error) {
	var out []notices.Notice
	for _, notice := range m.byID {
		out = append(out, *notice)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m *memNoticeRepo) ListByOwner(_ context.Context, ownerID string) ([]notices.Notice, error) {
	var out []notices.Notice
	for _, notice := range m.byID {
		if notice.CreatedBy == ownerID {
			out = append(out, *notice)
		}
	}
	return out, nil
}

func (m *memNoticeRepo) Get(_ context.Context, id string) (*notices.Notice, error) {
	notice, ok := m.byID[id]
	if !ok {
		return nil, notices.ErrNotFound
	}
	clone := *notice
	return &clone, nil
}

func (m *memNoticeRepo) Insert(_ context.Context, notice *notices.Notice) error {
	clone := *notice
	m.byID[notice.ID] = &clone
	return nil
}

func (m *memNoticeRepo) Update(_ context.Context, notice *notices.Notice) error {
	if _, ok := m.byID[notice.ID]; !ok {
		return notices.ErrNotFound
	}
	clone := *notice
	m.byID[notice.ID] = &clone
	return nil
}

func (m *memNoticeRepo) Delete(_ context.Context, id string) error {
	if _, ok := m.byID[id]; !ok {
		return notices.ErrNotFound
	}
	delete(m.byID, id)
	return nil
}
