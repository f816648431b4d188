package handlers

import (
	"github.com/lnm-board/server/internal/domain/admins"
	"github.com/lnm-board/server/internal/domain/events"
	"github.com/lnm-board/server/internal/domain/notices"
)

func actorFrom(identity *admins.Identity) events.Actor {
	return events.Actor{ID: identity.ID, Role: identity.Role}
}

func noticeActorFrom(identity *admins.Identity) notices.Actor {
	return notices.Actor{ID: identity.ID, Role: identity.Role}
}
