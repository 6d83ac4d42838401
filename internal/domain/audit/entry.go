package audit

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/greenclub/backend/internal/domain/shared"
)

// Action identifies what happened, as "resource.verb" such as
// "post.create" or "booking.cancel".
type Action string

// Actions recorded by the application layer
const (
	ActionMemberCreate     Action = "member.create"
	ActionMemberUpdate     Action = "member.update"
	ActionMemberStatus     Action = "member.status"
	ActionMemberRoles      Action = "member.roles"
	ActionMemberLogin      Action = "member.login"
	ActionMemberLoginFail  Action = "member.login_fail"
	ActionMemberLogout     Action = "member.logout"
	ActionPasswordChange   Action = "member.password"
	ActionRoleCreate       Action = "role.create"
	ActionRoleUpdate       Action = "role.update"
	ActionRoleDelete       Action = "role.delete"
	ActionPostCreate       Action = "post.create"
	ActionPostUpdate       Action = "post.update"
	ActionPostPublish      Action = "post.publish"
	ActionPostArchive      Action = "post.archive"
	ActionPostDelete       Action = "post.delete"
	ActionPostRecover      Action = "post.recover"
	ActionPagePublish      Action = "page.publish"
	ActionPageUpdate       Action = "page.update"
	ActionPageCreate       Action = "page.create"
	ActionOrphanPurge      Action = "orphan.purge"
	ActionEventCreate      Action = "event.create"
	ActionEventUpdate      Action = "event.update"
	ActionEventCancel      Action = "event.cancel"
	ActionBookingCreate    Action = "booking.create"
	ActionBookingCancel    Action = "booking.cancel"
	ActionPoolOpen         Action = "pool.open"
	ActionPoolClose        Action = "pool.close"
	ActionPoolRegister     Action = "pool.register"
	ActionPoolWithdraw     Action = "pool.withdraw"
)

// Entry is a single append-only audit record. Entries are never updated
// or deleted by the application.
type Entry struct {
	shared.BaseEntity
	ActorID      *uuid.UUID // Nil for anonymous actions such as failed logins
	Action       Action
	ResourceType string
	ResourceID   *uuid.UUID
	Detail       string
	IP           string
}

// NewEntry creates an audit entry for an action performed by a member
func NewEntry(actorID uuid.UUID, action Action, resourceType string, resourceID uuid.UUID, detail, ip string) (*Entry, error) {
	entry, err := newEntry(action, resourceType, detail, ip)
	if err != nil {
		return nil, err
	}
	entry.ActorID = &actorID
	if resourceID != uuid.Nil {
		entry.ResourceID = &resourceID
	}
	return entry, nil
}

// NewAnonymousEntry creates an audit entry with no authenticated actor,
// such as a failed login attempt.
func NewAnonymousEntry(action Action, resourceType, detail, ip string) (*Entry, error) {
	return newEntry(action, resourceType, detail, ip)
}

func newEntry(action Action, resourceType, detail, ip string) (*Entry, error) {
	if strings.TrimSpace(string(action)) == "" {
		return nil, shared.NewDomainError("INVALID_ACTION", "Audit action cannot be empty")
	}
	if len(detail) > 2000 {
		detail = detail[:2000]
	}

	return &Entry{
		BaseEntity:   shared.NewBaseEntity(),
		Action:       action,
		ResourceType: resourceType,
		Detail:       detail,
		IP:           ip,
	}, nil
}

// OccurredAt returns when the action happened
func (e *Entry) OccurredAt() time.Time {
	return e.CreatedAt
}
