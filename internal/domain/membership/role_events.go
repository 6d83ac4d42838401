package membership

import (
	"github.com/google/uuid"

	"github.com/greenclub/backend/internal/domain/shared"
)

// Aggregate type constant
const AggregateTypeRole = "Role"

// Event type constants
const (
	EventTypeRoleCreated            = "RoleCreated"
	EventTypeRoleUpdated            = "RoleUpdated"
	EventTypeRolePermissionsChanged = "RolePermissionsChanged"
)

// RoleCreatedEvent is published when a new role is created
type RoleCreatedEvent struct {
	shared.BaseDomainEvent
	RoleID uuid.UUID `json:"role_id"`
	Code   string    `json:"code"`
	Name   string    `json:"name"`
}

// NewRoleCreatedEvent creates a new RoleCreatedEvent
func NewRoleCreatedEvent(role *Role) *RoleCreatedEvent {
	return &RoleCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeRoleCreated, AggregateTypeRole, role.ID),
		RoleID:          role.ID,
		Code:            role.Code,
		Name:            role.Name,
	}
}

// RoleUpdatedEvent is published when a role is updated
type RoleUpdatedEvent struct {
	shared.BaseDomainEvent
	RoleID uuid.UUID `json:"role_id"`
	Name   string    `json:"name"`
}

// NewRoleUpdatedEvent creates a new RoleUpdatedEvent
func NewRoleUpdatedEvent(role *Role) *RoleUpdatedEvent {
	return &RoleUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeRoleUpdated, AggregateTypeRole, role.ID),
		RoleID:          role.ID,
		Name:            role.Name,
	}
}

// RolePermissionsChangedEvent is published when the role's permission set changes
type RolePermissionsChangedEvent struct {
	shared.BaseDomainEvent
	RoleID      uuid.UUID `json:"role_id"`
	Permissions []string  `json:"permissions"`
}

// NewRolePermissionsChangedEvent creates a new RolePermissionsChangedEvent
func NewRolePermissionsChangedEvent(role *Role) *RolePermissionsChangedEvent {
	return &RolePermissionsChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeRolePermissionsChanged, AggregateTypeRole, role.ID),
		RoleID:          role.ID,
		Permissions:     role.PermissionCodes(),
	}
}
