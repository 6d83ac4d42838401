package membership

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/greenclub/backend/internal/domain/shared"
)

// MemberStatus represents the status of a club member account
type MemberStatus string

const (
	MemberStatusPending     MemberStatus = "pending"     // Awaiting activation
	MemberStatusActive      MemberStatus = "active"      // Normal active status
	MemberStatusLocked      MemberStatus = "locked"      // Locked after failed logins
	MemberStatusDeactivated MemberStatus = "deactivated" // Manually deactivated
)

// Password cost for bcrypt
const bcryptCost = 12

// Login lockout policy
const (
	MaxFailedAttempts = 5
	LockoutDuration   = 15 * time.Minute
)

// Member represents a club member account.
// It is the aggregate root for membership operations and carries the
// credentials used for site login.
type Member struct {
	shared.BaseAggregateRoot
	Email             string
	DisplayName       string
	Phone             string
	PasswordHash      string
	Status            MemberStatus
	RoleIDs           []uuid.UUID // Stored in a join table, loaded by the repository
	LastLoginAt       *time.Time
	LastLoginIP       string
	FailedAttempts    int
	LockedUntil       *time.Time
	PasswordChangedAt *time.Time
	Notes             string
}

// MemberRole represents the many-to-many relationship between members and roles
type MemberRole struct {
	MemberID  uuid.UUID
	RoleID    uuid.UUID
	CreatedAt time.Time
}

// NewMember creates a new member with required fields
func NewMember(email, displayName, password string) (*Member, error) {
	if err := validateMemberEmail(email); err != nil {
		return nil, err
	}
	if err := validateDisplayName(displayName); err != nil {
		return nil, err
	}
	if err := validatePassword(password); err != nil {
		return nil, err
	}

	passwordHash, err := hashPassword(password)
	if err != nil {
		return nil, shared.NewDomainError("PASSWORD_HASH_ERROR", "Failed to hash password")
	}

	now := time.Now()
	member := &Member{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		Email:             strings.ToLower(strings.TrimSpace(email)),
		DisplayName:       strings.TrimSpace(displayName),
		PasswordHash:      passwordHash,
		Status:            MemberStatusPending,
		RoleIDs:           make([]uuid.UUID, 0),
		PasswordChangedAt: &now,
	}

	member.AddDomainEvent(NewMemberCreatedEvent(member))

	return member, nil
}

// NewActiveMember creates a new member that is immediately active
func NewActiveMember(email, displayName, password string) (*Member, error) {
	member, err := NewMember(email, displayName, password)
	if err != nil {
		return nil, err
	}

	member.Status = MemberStatusActive
	return member, nil
}

// Update updates the member's profile fields
func (m *Member) Update(displayName, phone string) error {
	if err := validateDisplayName(displayName); err != nil {
		return err
	}
	if phone != "" {
		if err := validatePhone(phone); err != nil {
			return err
		}
	}

	m.DisplayName = strings.TrimSpace(displayName)
	m.Phone = strings.TrimSpace(phone)
	m.Touch()
	m.IncrementVersion()

	m.AddDomainEvent(NewMemberUpdatedEvent(m))

	return nil
}

// SetEmail changes the member's login email
func (m *Member) SetEmail(email string) error {
	if err := validateMemberEmail(email); err != nil {
		return err
	}

	m.Email = strings.ToLower(strings.TrimSpace(email))
	m.Touch()
	m.IncrementVersion()

	return nil
}

// SetNotes sets the member's notes
func (m *Member) SetNotes(notes string) {
	m.Notes = notes
	m.Touch()
	m.IncrementVersion()
}

// ChangePassword changes the member's password after verifying the old one
func (m *Member) ChangePassword(oldPassword, newPassword string) error {
	if !m.VerifyPassword(oldPassword) {
		return shared.NewDomainError("INVALID_PASSWORD", "Current password is incorrect")
	}
	return m.SetPassword(newPassword)
}

// SetPassword sets a new password (admin reset, no old password check)
func (m *Member) SetPassword(newPassword string) error {
	if err := validatePassword(newPassword); err != nil {
		return err
	}

	passwordHash, err := hashPassword(newPassword)
	if err != nil {
		return shared.NewDomainError("PASSWORD_HASH_ERROR", "Failed to hash password")
	}

	m.PasswordHash = passwordHash
	now := time.Now()
	m.PasswordChangedAt = &now
	m.UpdatedAt = now
	m.IncrementVersion()

	return nil
}

// VerifyPassword checks a plaintext password against the stored hash
func (m *Member) VerifyPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(m.PasswordHash), []byte(password)) == nil
}

// RecordLogin records a successful login and resets the failure counter
func (m *Member) RecordLogin(ip string) {
	now := time.Now()
	m.LastLoginAt = &now
	m.LastLoginIP = ip
	m.FailedAttempts = 0
	m.LockedUntil = nil
	m.UpdatedAt = now
	m.IncrementVersion()
}

// RecordFailedLogin increments the failure counter, locking the account once
// the limit is reached
func (m *Member) RecordFailedLogin() {
	m.FailedAttempts++
	now := time.Now()
	if m.FailedAttempts >= MaxFailedAttempts {
		until := now.Add(LockoutDuration)
		m.LockedUntil = &until
		m.Status = MemberStatusLocked
		m.AddDomainEvent(NewMemberLockedEvent(m))
	}
	m.UpdatedAt = now
	m.IncrementVersion()
}

// IsLoginLocked returns true if logins are currently rejected
func (m *Member) IsLoginLocked() bool {
	if m.Status != MemberStatusLocked {
		return false
	}
	if m.LockedUntil == nil {
		return true
	}
	return time.Now().Before(*m.LockedUntil)
}

// Lock locks the account indefinitely until an administrator unlocks it
func (m *Member) Lock() error {
	if m.Status == MemberStatusLocked {
		return shared.NewDomainError("ALREADY_LOCKED", "Member is already locked")
	}
	if m.Status == MemberStatusDeactivated {
		return shared.NewDomainError("INVALID_STATE", "Cannot lock a deactivated member")
	}

	m.Status = MemberStatusLocked
	m.LockedUntil = nil
	m.Touch()
	m.IncrementVersion()

	m.AddDomainEvent(NewMemberLockedEvent(m))

	return nil
}

// Unlock clears the lockout and reactivates the account
func (m *Member) Unlock() error {
	if m.Status != MemberStatusLocked {
		return shared.NewDomainError("INVALID_STATE", "Member is not locked")
	}

	m.Status = MemberStatusActive
	m.FailedAttempts = 0
	m.LockedUntil = nil
	m.Touch()
	m.IncrementVersion()

	return nil
}

// Activate activates a pending or deactivated member
func (m *Member) Activate() error {
	if m.Status == MemberStatusActive {
		return shared.NewDomainError("ALREADY_ACTIVE", "Member is already active")
	}

	m.Status = MemberStatusActive
	m.FailedAttempts = 0
	m.LockedUntil = nil
	m.Touch()
	m.IncrementVersion()

	m.AddDomainEvent(NewMemberStatusChangedEvent(m, MemberStatusActive))

	return nil
}

// Deactivate deactivates the member
func (m *Member) Deactivate() error {
	if m.Status == MemberStatusDeactivated {
		return shared.NewDomainError("ALREADY_INACTIVE", "Member is already deactivated")
	}

	m.Status = MemberStatusDeactivated
	m.Touch()
	m.IncrementVersion()

	m.AddDomainEvent(NewMemberStatusChangedEvent(m, MemberStatusDeactivated))

	return nil
}

// AssignRole adds a role to the member, ignoring duplicates
func (m *Member) AssignRole(roleID uuid.UUID) {
	for _, id := range m.RoleIDs {
		if id == roleID {
			return
		}
	}
	m.RoleIDs = append(m.RoleIDs, roleID)
	m.Touch()
	m.IncrementVersion()

	m.AddDomainEvent(NewMemberRolesChangedEvent(m))
}

// RevokeRole removes a role from the member
func (m *Member) RevokeRole(roleID uuid.UUID) {
	for i, id := range m.RoleIDs {
		if id == roleID {
			m.RoleIDs = append(m.RoleIDs[:i], m.RoleIDs[i+1:]...)
			m.Touch()
			m.IncrementVersion()
			m.AddDomainEvent(NewMemberRolesChangedEvent(m))
			return
		}
	}
}

// HasRole returns true if the member has the given role
func (m *Member) HasRole(roleID uuid.UUID) bool {
	for _, id := range m.RoleIDs {
		if id == roleID {
			return true
		}
	}
	return false
}

// IsActive returns true if the member can use the site
func (m *Member) IsActive() bool {
	return m.Status == MemberStatusActive
}

// Validation functions

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

func validateMemberEmail(email string) error {
	email = strings.TrimSpace(email)
	if email == "" {
		return shared.NewDomainError("INVALID_EMAIL", "Email cannot be empty")
	}
	if len(email) > 200 {
		return shared.NewDomainError("INVALID_EMAIL", "Email cannot exceed 200 characters")
	}
	if !emailRegex.MatchString(email) {
		return shared.NewDomainError("INVALID_EMAIL", "Invalid email format")
	}
	return nil
}

func validateDisplayName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return shared.NewDomainError("INVALID_NAME", "Display name cannot be empty")
	}
	if len(name) > 200 {
		return shared.NewDomainError("INVALID_NAME", "Display name cannot exceed 200 characters")
	}
	return nil
}

func validatePhone(phone string) error {
	if len(phone) > 50 {
		return shared.NewDomainError("INVALID_PHONE", "Phone cannot exceed 50 characters")
	}
	validPhone := regexp.MustCompile(`^[\d\s\-\(\)\+]+$`)
	if !validPhone.MatchString(phone) {
		return shared.NewDomainError("INVALID_PHONE", "Invalid phone number format")
	}
	return nil
}

func validatePassword(password string) error {
	if len(password) < 8 {
		return shared.NewDomainError("INVALID_PASSWORD", "Password must be at least 8 characters")
	}
	if len(password) > 72 {
		// bcrypt truncates beyond 72 bytes
		return shared.NewDomainError("INVALID_PASSWORD", "Password cannot exceed 72 characters")
	}
	return nil
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
