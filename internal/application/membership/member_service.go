package membership

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	auditapp "github.com/greenclub/backend/internal/application/audit"
	"github.com/greenclub/backend/internal/domain/audit"
	"github.com/greenclub/backend/internal/domain/membership"
	"github.com/greenclub/backend/internal/domain/shared"
)

// MemberService handles member account administration
type MemberService struct {
	memberRepo membership.MemberRepository
	roleRepo   membership.RoleRepository
	auditor    *auditapp.Service
	logger     *zap.Logger
}

// NewMemberService creates a new member service
func NewMemberService(
	memberRepo membership.MemberRepository,
	roleRepo membership.RoleRepository,
	auditor *auditapp.Service,
	logger *zap.Logger,
) *MemberService {
	return &MemberService{
		memberRepo: memberRepo,
		roleRepo:   roleRepo,
		auditor:    auditor,
		logger:     logger,
	}
}

// Create registers a new member account
func (s *MemberService) Create(ctx context.Context, input CreateMemberInput) (*membership.Member, error) {
	exists, err := s.memberRepo.ExistsByEmail(ctx, input.Email)
	if err != nil {
		s.logger.Error("Failed to check email uniqueness", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create member")
	}
	if exists {
		return nil, shared.NewDomainError("EMAIL_TAKEN", "Email is already registered")
	}

	var member *membership.Member
	if input.Active {
		member, err = membership.NewActiveMember(input.Email, input.DisplayName, input.Password)
	} else {
		member, err = membership.NewMember(input.Email, input.DisplayName, input.Password)
	}
	if err != nil {
		return nil, err
	}

	if input.Phone != "" {
		if err := member.Update(input.DisplayName, input.Phone); err != nil {
			return nil, err
		}
	}
	if input.Notes != "" {
		member.SetNotes(input.Notes)
	}

	if err := s.memberRepo.Create(ctx, member); err != nil {
		s.logger.Error("Failed to create member", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create member")
	}

	s.auditor.Record(ctx, input.ActorID, audit.ActionMemberCreate, "member", member.ID, member.Email, input.IP)
	s.logger.Info("Member created",
		zap.String("member_id", member.ID.String()),
		zap.String("email", member.Email))
	return member, nil
}

// Get returns a member with roles loaded
func (s *MemberService) Get(ctx context.Context, id uuid.UUID) (*membership.Member, error) {
	member, err := s.memberRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.memberRepo.LoadMemberRoles(ctx, member); err != nil {
		s.logger.Error("Failed to load member roles", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to load member roles")
	}
	return member, nil
}

// List returns members matching the filter
func (s *MemberService) List(ctx context.Context, filter membership.MemberFilter) (*MemberListResult, error) {
	members, total, err := s.memberRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}
	return &MemberListResult{Members: members, Total: total}, nil
}

// Update changes a member's profile fields
func (s *MemberService) Update(ctx context.Context, input UpdateMemberInput) (*membership.Member, error) {
	member, err := s.memberRepo.FindByID(ctx, input.MemberID)
	if err != nil {
		return nil, err
	}

	if err := member.Update(input.DisplayName, input.Phone); err != nil {
		return nil, err
	}
	if input.Notes != nil {
		member.SetNotes(*input.Notes)
	}

	if err := s.memberRepo.Update(ctx, member); err != nil {
		s.logger.Error("Failed to update member", zap.Error(err))
		return nil, err
	}

	s.auditor.Record(ctx, input.ActorID, audit.ActionMemberUpdate, "member", member.ID, "", input.IP)
	return member, nil
}

// Activate moves a member to the active status
func (s *MemberService) Activate(ctx context.Context, memberID, actorID uuid.UUID, ip string) error {
	return s.changeStatus(ctx, memberID, actorID, ip, func(m *membership.Member) error {
		return m.Activate()
	}, "activated")
}

// Deactivate disables a member account
func (s *MemberService) Deactivate(ctx context.Context, memberID, actorID uuid.UUID, ip string) error {
	return s.changeStatus(ctx, memberID, actorID, ip, func(m *membership.Member) error {
		return m.Deactivate()
	}, "deactivated")
}

// Lock locks a member account until an administrator unlocks it
func (s *MemberService) Lock(ctx context.Context, memberID, actorID uuid.UUID, ip string) error {
	return s.changeStatus(ctx, memberID, actorID, ip, func(m *membership.Member) error {
		return m.Lock()
	}, "locked")
}

// Unlock clears a login lockout
func (s *MemberService) Unlock(ctx context.Context, memberID, actorID uuid.UUID, ip string) error {
	return s.changeStatus(ctx, memberID, actorID, ip, func(m *membership.Member) error {
		return m.Unlock()
	}, "unlocked")
}

func (s *MemberService) changeStatus(ctx context.Context, memberID, actorID uuid.UUID, ip string, change func(*membership.Member) error, detail string) error {
	member, err := s.memberRepo.FindByID(ctx, memberID)
	if err != nil {
		return err
	}

	if err := change(member); err != nil {
		return err
	}

	if err := s.memberRepo.Update(ctx, member); err != nil {
		s.logger.Error("Failed to update member status", zap.Error(err))
		return err
	}

	s.auditor.Record(ctx, actorID, audit.ActionMemberStatus, "member", member.ID, detail, ip)
	s.logger.Info("Member status changed",
		zap.String("member_id", member.ID.String()),
		zap.String("change", detail))
	return nil
}

// AssignRoles replaces a member's role assignments. Every role ID must
// refer to an existing role.
func (s *MemberService) AssignRoles(ctx context.Context, input AssignRolesInput) error {
	member, err := s.memberRepo.FindByID(ctx, input.MemberID)
	if err != nil {
		return err
	}

	if len(input.RoleIDs) > 0 {
		roles, err := s.roleRepo.FindByIDs(ctx, input.RoleIDs)
		if err != nil {
			s.logger.Error("Failed to look up roles", zap.Error(err))
			return shared.NewDomainError("INTERNAL_ERROR", "Failed to assign roles")
		}
		if len(roles) != len(input.RoleIDs) {
			return shared.NewDomainError("ROLE_NOT_FOUND", "One or more roles do not exist")
		}
	}

	member.RoleIDs = input.RoleIDs
	if err := s.memberRepo.SaveMemberRoles(ctx, member); err != nil {
		s.logger.Error("Failed to save member roles", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to assign roles")
	}

	s.auditor.Record(ctx, input.ActorID, audit.ActionMemberRoles, "member", member.ID,
		fmt.Sprintf("%d roles", len(input.RoleIDs)), input.IP)
	return nil
}

// ResetPassword sets a new password without requiring the old one.
// Intended for admin resets.
func (s *MemberService) ResetPassword(ctx context.Context, memberID uuid.UUID, newPassword string, actorID uuid.UUID, ip string) error {
	member, err := s.memberRepo.FindByID(ctx, memberID)
	if err != nil {
		return err
	}

	if err := member.SetPassword(newPassword); err != nil {
		return err
	}

	if err := s.memberRepo.Update(ctx, member); err != nil {
		s.logger.Error("Failed to reset password", zap.Error(err))
		return err
	}

	s.auditor.Record(ctx, actorID, audit.ActionPasswordChange, "member", member.ID, "admin reset", ip)
	return nil
}

// Delete removes a member account and its role assignments
func (s *MemberService) Delete(ctx context.Context, memberID, actorID uuid.UUID, ip string) error {
	member, err := s.memberRepo.FindByID(ctx, memberID)
	if err != nil {
		return err
	}

	if err := s.memberRepo.Delete(ctx, memberID); err != nil {
		s.logger.Error("Failed to delete member", zap.Error(err))
		return err
	}

	s.auditor.Record(ctx, actorID, audit.ActionMemberStatus, "member", memberID, "deleted "+member.Email, ip)
	s.logger.Info("Member deleted", zap.String("member_id", memberID.String()))
	return nil
}
