package membership

import (
	"regexp"
	"strings"

	"github.com/greenclub/backend/internal/domain/shared"
)

// Well-known role codes seeded at install time. System roles cannot be
// deleted or have their code changed.
const (
	RoleCodeAdmin  = "admin"  // Full access, member/role/audit management
	RoleCodeEditor = "editor" // Content authoring (posts, policy pages)
	RoleCodeEvents = "events" // Event, booking and pool management
	RoleCodeMember = "member" // Ordinary member (pool self-registration)
)

// Permission represents a functional permission in resource:action form.
// It is a value object.
type Permission struct {
	Code     string // e.g. "posts:create"
	Resource string // e.g. "posts"
	Action   string // e.g. "create"
}

// NewPermission creates a new Permission value object
func NewPermission(resource, action string) (*Permission, error) {
	resource = strings.ToLower(strings.TrimSpace(resource))
	action = strings.ToLower(strings.TrimSpace(action))
	if err := validatePermissionPart(resource, "resource"); err != nil {
		return nil, err
	}
	if err := validatePermissionPart(action, "action"); err != nil {
		return nil, err
	}

	return &Permission{
		Code:     resource + ":" + action,
		Resource: resource,
		Action:   action,
	}, nil
}

// NewPermissionFromCode creates a Permission from a "resource:action" code
func NewPermissionFromCode(code string) (*Permission, error) {
	parts := strings.SplitN(code, ":", 2)
	if len(parts) != 2 {
		return nil, shared.NewDomainError("INVALID_PERMISSION_CODE", "Permission code must be in format 'resource:action'")
	}
	return NewPermission(parts[0], parts[1])
}

// Equals checks if two permissions are equal
func (p Permission) Equals(other Permission) bool {
	return p.Code == other.Code
}

// Role represents a named permission set assignable to members.
// It is the aggregate root for authorization configuration.
type Role struct {
	shared.BaseAggregateRoot
	Code        string
	Name        string
	Description string
	IsSystem    bool
	Enabled     bool
	Permissions []Permission
}

// NewRole creates a new custom role
func NewRole(code, name string) (*Role, error) {
	if err := validateRoleCode(code); err != nil {
		return nil, err
	}
	if err := validateRoleName(name); err != nil {
		return nil, err
	}

	role := &Role{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Code:              strings.TrimSpace(code),
		Name:              strings.TrimSpace(name),
		IsSystem:          false,
		Enabled:           true,
		Permissions:       make([]Permission, 0),
	}

	role.AddDomainEvent(NewRoleCreatedEvent(role))

	return role, nil
}

// NewSystemRole creates a seeded system role
func NewSystemRole(code, name string, permissions []Permission) (*Role, error) {
	role, err := NewRole(code, name)
	if err != nil {
		return nil, err
	}
	role.IsSystem = true
	role.Permissions = make([]Permission, len(permissions))
	copy(role.Permissions, permissions)
	return role, nil
}

// Update updates the role's name and description
func (r *Role) Update(name, description string) error {
	if err := validateRoleName(name); err != nil {
		return err
	}
	if len(description) > 500 {
		return shared.NewDomainError("INVALID_DESCRIPTION", "Description cannot exceed 500 characters")
	}

	r.Name = strings.TrimSpace(name)
	r.Description = description
	r.Touch()
	r.IncrementVersion()

	r.AddDomainEvent(NewRoleUpdatedEvent(r))

	return nil
}

// Enable enables the role
func (r *Role) Enable() error {
	if r.Enabled {
		return shared.NewDomainError("ALREADY_ENABLED", "Role is already enabled")
	}
	r.Enabled = true
	r.Touch()
	r.IncrementVersion()
	return nil
}

// Disable disables the role. System roles cannot be disabled.
func (r *Role) Disable() error {
	if r.IsSystem {
		return shared.NewDomainError("SYSTEM_ROLE", "System roles cannot be disabled")
	}
	if !r.Enabled {
		return shared.NewDomainError("ALREADY_DISABLED", "Role is already disabled")
	}
	r.Enabled = false
	r.Touch()
	r.IncrementVersion()
	return nil
}

// GrantPermission adds a permission to the role, ignoring duplicates
func (r *Role) GrantPermission(perm Permission) {
	for _, p := range r.Permissions {
		if p.Equals(perm) {
			return
		}
	}
	r.Permissions = append(r.Permissions, perm)
	r.Touch()
	r.IncrementVersion()

	r.AddDomainEvent(NewRolePermissionsChangedEvent(r))
}

// GrantPermissionByCode adds a permission given its code
func (r *Role) GrantPermissionByCode(code string) error {
	perm, err := NewPermissionFromCode(code)
	if err != nil {
		return err
	}
	r.GrantPermission(*perm)
	return nil
}

// RevokePermission removes a permission by code
func (r *Role) RevokePermission(code string) error {
	for i, p := range r.Permissions {
		if p.Code == code {
			r.Permissions = append(r.Permissions[:i], r.Permissions[i+1:]...)
			r.Touch()
			r.IncrementVersion()
			r.AddDomainEvent(NewRolePermissionsChangedEvent(r))
			return nil
		}
	}
	return shared.NewDomainError("NOT_FOUND", "Permission not granted to this role")
}

// HasPermission returns true if the role carries the permission code
func (r *Role) HasPermission(code string) bool {
	for _, p := range r.Permissions {
		if p.Code == code {
			return true
		}
	}
	return false
}

// PermissionCodes returns the role's permission codes
func (r *Role) PermissionCodes() []string {
	codes := make([]string, len(r.Permissions))
	for i, p := range r.Permissions {
		codes[i] = p.Code
	}
	return codes
}

// CanDelete returns true if the role may be deleted
func (r *Role) CanDelete() bool {
	return !r.IsSystem
}

// Validation functions

var roleCodeRegex = regexp.MustCompile(`^[a-z][a-z0-9_]{1,49}$`)
var permissionPartRegex = regexp.MustCompile(`^[a-z][a-z0-9_]{0,49}$`)

func validateRoleCode(code string) error {
	code = strings.TrimSpace(code)
	if code == "" {
		return shared.NewDomainError("INVALID_CODE", "Role code cannot be empty")
	}
	if !roleCodeRegex.MatchString(code) {
		return shared.NewDomainError("INVALID_CODE", "Role code must be lowercase letters, digits, and underscores")
	}
	return nil
}

func validateRoleName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Role name cannot be empty")
	}
	if len(name) > 100 {
		return shared.NewDomainError("INVALID_NAME", "Role name cannot exceed 100 characters")
	}
	return nil
}

func validatePermissionPart(part, kind string) error {
	if part == "" {
		return shared.NewDomainError("INVALID_PERMISSION_CODE", "Permission "+kind+" cannot be empty")
	}
	if !permissionPartRegex.MatchString(part) {
		return shared.NewDomainError("INVALID_PERMISSION_CODE", "Permission "+kind+" must be lowercase letters, digits, and underscores")
	}
	return nil
}
