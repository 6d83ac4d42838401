package models

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/greenclub/backend/internal/domain/membership"
)

// MemberModel is the persistence model for the Member domain entity.
// Role assignments live in the member_roles join table.
type MemberModel struct {
	AggregateModel
	Email             string                  `gorm:"type:varchar(200);not null;uniqueIndex"`
	DisplayName       string                  `gorm:"type:varchar(100);not null"`
	Phone             string                  `gorm:"type:varchar(50)"`
	PasswordHash      string                  `gorm:"type:varchar(100);not null"`
	Status            membership.MemberStatus `gorm:"type:varchar(20);not null;default:'pending';index"`
	LastLoginAt       *time.Time
	LastLoginIP       string `gorm:"type:varchar(45)"`
	FailedAttempts    int    `gorm:"not null;default:0"`
	LockedUntil       *time.Time
	PasswordChangedAt *time.Time
	Notes             string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (MemberModel) TableName() string {
	return "members"
}

// ToDomain converts the persistence model to a domain Member entity.
// Role IDs are loaded separately by the repository.
func (m *MemberModel) ToDomain() *membership.Member {
	return &membership.Member{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Email:             m.Email,
		DisplayName:       m.DisplayName,
		Phone:             m.Phone,
		PasswordHash:      m.PasswordHash,
		Status:            m.Status,
		LastLoginAt:       m.LastLoginAt,
		LastLoginIP:       m.LastLoginIP,
		FailedAttempts:    m.FailedAttempts,
		LockedUntil:       m.LockedUntil,
		PasswordChangedAt: m.PasswordChangedAt,
		Notes:             m.Notes,
	}
}

// FromDomain populates the persistence model from a domain Member entity
func (m *MemberModel) FromDomain(member *membership.Member) {
	m.FromDomainAggregateRoot(member.BaseAggregateRoot)
	m.Email = member.Email
	m.DisplayName = member.DisplayName
	m.Phone = member.Phone
	m.PasswordHash = member.PasswordHash
	m.Status = member.Status
	m.LastLoginAt = member.LastLoginAt
	m.LastLoginIP = member.LastLoginIP
	m.FailedAttempts = member.FailedAttempts
	m.LockedUntil = member.LockedUntil
	m.PasswordChangedAt = member.PasswordChangedAt
	m.Notes = member.Notes
}

// MemberModelFromDomain creates a new persistence model from a domain Member
func MemberModelFromDomain(member *membership.Member) *MemberModel {
	m := &MemberModel{}
	m.FromDomain(member)
	return m
}

// MemberRoleModel is the persistence model for member role assignments
type MemberRoleModel struct {
	MemberID  uuid.UUID `gorm:"type:uuid;primaryKey"`
	RoleID    uuid.UUID `gorm:"type:uuid;primaryKey;index"`
	CreatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (MemberRoleModel) TableName() string {
	return "member_roles"
}

// RoleModel is the persistence model for the Role domain entity.
// Permissions are stored as a comma-separated list of permission codes.
type RoleModel struct {
	AggregateModel
	Code        string `gorm:"type:varchar(50);not null;uniqueIndex"`
	Name        string `gorm:"type:varchar(100);not null"`
	Description string `gorm:"type:text"`
	IsSystem    bool   `gorm:"not null;default:false"`
	Enabled     bool   `gorm:"not null;default:true"`
	Permissions string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (RoleModel) TableName() string {
	return "roles"
}

// ToDomain converts the persistence model to a domain Role entity
func (m *RoleModel) ToDomain() *membership.Role {
	return &membership.Role{
		BaseAggregateRoot: m.ToDomainAggregateRoot(),
		Code:              m.Code,
		Name:              m.Name,
		Description:       m.Description,
		IsSystem:          m.IsSystem,
		Enabled:           m.Enabled,
		Permissions:       decodePermissions(m.Permissions),
	}
}

// FromDomain populates the persistence model from a domain Role entity
func (m *RoleModel) FromDomain(role *membership.Role) {
	m.FromDomainAggregateRoot(role.BaseAggregateRoot)
	m.Code = role.Code
	m.Name = role.Name
	m.Description = role.Description
	m.IsSystem = role.IsSystem
	m.Enabled = role.Enabled
	m.Permissions = encodePermissions(role.Permissions)
}

// RoleModelFromDomain creates a new persistence model from a domain Role
func RoleModelFromDomain(role *membership.Role) *RoleModel {
	m := &RoleModel{}
	m.FromDomain(role)
	return m
}

func encodePermissions(perms []membership.Permission) string {
	codes := make([]string, len(perms))
	for i, p := range perms {
		codes[i] = p.Code
	}
	return strings.Join(codes, ",")
}

func decodePermissions(encoded string) []membership.Permission {
	if encoded == "" {
		return nil
	}
	var perms []membership.Permission
	for _, code := range strings.Split(encoded, ",") {
		p, err := membership.NewPermissionFromCode(code)
		if err != nil {
			// Skip malformed codes rather than failing the load
			continue
		}
		perms = append(perms, *p)
	}
	return perms
}
