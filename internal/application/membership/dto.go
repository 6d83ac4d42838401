package membership

import (
	"time"

	"github.com/google/uuid"

	"github.com/greenclub/backend/internal/domain/membership"
)

// LoginInput contains the input for member login
type LoginInput struct {
	Email    string
	Password string
	IP       string // Client IP for login tracking
}

// LoginResult contains the result of a successful login
type LoginResult struct {
	AccessToken           string
	RefreshToken          string
	AccessTokenExpiresAt  time.Time
	RefreshTokenExpiresAt time.Time
	TokenType             string
	Member                MemberInfo
}

// MemberInfo contains member information returned to authenticated callers
type MemberInfo struct {
	ID          uuid.UUID
	Email       string
	DisplayName string
	Phone       string
	Status      membership.MemberStatus
	RoleCodes   []string
	Permissions []string
	LastLoginAt *time.Time
}

// RefreshTokenInput contains the input for token refresh
type RefreshTokenInput struct {
	RefreshToken string
}

// RefreshTokenResult contains the result of a token refresh
type RefreshTokenResult struct {
	AccessToken           string
	RefreshToken          string
	AccessTokenExpiresAt  time.Time
	RefreshTokenExpiresAt time.Time
	TokenType             string
}

// LogoutInput contains the input for member logout
type LogoutInput struct {
	MemberID         uuid.UUID
	AccessJTI        string
	AccessExpiresAt  time.Time
	RefreshJTI       string
	RefreshExpiresAt time.Time
	Everywhere       bool // Invalidate every outstanding token for the member
	IP               string
}

// ChangePasswordInput contains the input for password change
type ChangePasswordInput struct {
	MemberID    uuid.UUID
	OldPassword string
	NewPassword string
	IP          string
}

// CreateMemberInput contains the input for creating a member
type CreateMemberInput struct {
	Email       string
	DisplayName string
	Phone       string
	Password    string
	Notes       string
	Active      bool // Skip the pending state
	ActorID     uuid.UUID
	IP          string
}

// UpdateMemberInput contains the input for updating a member's profile
type UpdateMemberInput struct {
	MemberID    uuid.UUID
	DisplayName string
	Phone       string
	Notes       *string
	ActorID     uuid.UUID
	IP          string
}

// AssignRolesInput replaces a member's role assignments
type AssignRolesInput struct {
	MemberID uuid.UUID
	RoleIDs  []uuid.UUID
	ActorID  uuid.UUID
	IP       string
}

// MemberListResult contains a page of members with the total count
type MemberListResult struct {
	Members []*membership.Member
	Total   int64
}

// CreateRoleInput contains the input for creating a role
type CreateRoleInput struct {
	Code        string
	Name        string
	Description string
	Permissions []string
	ActorID     uuid.UUID
	IP          string
}

// UpdateRoleInput contains the input for updating a role
type UpdateRoleInput struct {
	RoleID      uuid.UUID
	Name        string
	Description string
	ActorID     uuid.UUID
	IP          string
}

// SetRolePermissionsInput replaces a role's permission set
type SetRolePermissionsInput struct {
	RoleID      uuid.UUID
	Permissions []string
	ActorID     uuid.UUID
	IP          string
}
