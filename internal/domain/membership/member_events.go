package membership

import (
	"github.com/google/uuid"

	"github.com/greenclub/backend/internal/domain/shared"
)

// Aggregate type constant
const AggregateTypeMember = "Member"

// Event type constants
const (
	EventTypeMemberCreated       = "MemberCreated"
	EventTypeMemberUpdated       = "MemberUpdated"
	EventTypeMemberStatusChanged = "MemberStatusChanged"
	EventTypeMemberLocked        = "MemberLocked"
	EventTypeMemberRolesChanged  = "MemberRolesChanged"
)

// MemberCreatedEvent is published when a new member is created
type MemberCreatedEvent struct {
	shared.BaseDomainEvent
	MemberID    uuid.UUID `json:"member_id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"display_name"`
}

// NewMemberCreatedEvent creates a new MemberCreatedEvent
func NewMemberCreatedEvent(member *Member) *MemberCreatedEvent {
	return &MemberCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeMemberCreated, AggregateTypeMember, member.ID),
		MemberID:        member.ID,
		Email:           member.Email,
		DisplayName:     member.DisplayName,
	}
}

// MemberUpdatedEvent is published when a member's profile changes
type MemberUpdatedEvent struct {
	shared.BaseDomainEvent
	MemberID    uuid.UUID `json:"member_id"`
	DisplayName string    `json:"display_name"`
}

// NewMemberUpdatedEvent creates a new MemberUpdatedEvent
func NewMemberUpdatedEvent(member *Member) *MemberUpdatedEvent {
	return &MemberUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeMemberUpdated, AggregateTypeMember, member.ID),
		MemberID:        member.ID,
		DisplayName:     member.DisplayName,
	}
}

// MemberStatusChangedEvent is published when a member's status changes
type MemberStatusChangedEvent struct {
	shared.BaseDomainEvent
	MemberID  uuid.UUID    `json:"member_id"`
	NewStatus MemberStatus `json:"new_status"`
}

// NewMemberStatusChangedEvent creates a new MemberStatusChangedEvent
func NewMemberStatusChangedEvent(member *Member, newStatus MemberStatus) *MemberStatusChangedEvent {
	return &MemberStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeMemberStatusChanged, AggregateTypeMember, member.ID),
		MemberID:        member.ID,
		NewStatus:       newStatus,
	}
}

// MemberLockedEvent is published when a member account is locked after
// repeated failed logins
type MemberLockedEvent struct {
	shared.BaseDomainEvent
	MemberID       uuid.UUID `json:"member_id"`
	FailedAttempts int       `json:"failed_attempts"`
}

// NewMemberLockedEvent creates a new MemberLockedEvent
func NewMemberLockedEvent(member *Member) *MemberLockedEvent {
	return &MemberLockedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeMemberLocked, AggregateTypeMember, member.ID),
		MemberID:        member.ID,
		FailedAttempts:  member.FailedAttempts,
	}
}

// MemberRolesChangedEvent is published when the member's role set changes
type MemberRolesChangedEvent struct {
	shared.BaseDomainEvent
	MemberID uuid.UUID   `json:"member_id"`
	RoleIDs  []uuid.UUID `json:"role_ids"`
}

// NewMemberRolesChangedEvent creates a new MemberRolesChangedEvent
func NewMemberRolesChangedEvent(member *Member) *MemberRolesChangedEvent {
	roleIDs := make([]uuid.UUID, len(member.RoleIDs))
	copy(roleIDs, member.RoleIDs)
	return &MemberRolesChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeMemberRolesChanged, AggregateTypeMember, member.ID),
		MemberID:        member.ID,
		RoleIDs:         roleIDs,
	}
}
