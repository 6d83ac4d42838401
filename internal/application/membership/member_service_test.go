package membership

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	auditapp "github.com/greenclub/backend/internal/application/audit"
	"github.com/greenclub/backend/internal/domain/membership"
	"github.com/greenclub/backend/internal/domain/shared"
)

func newTestMemberService(memberRepo *MockMemberRepository, roleRepo *MockRoleRepository, auditRepo *MockAuditRepository) *MemberService {
	auditor := auditapp.NewService(auditRepo, zap.NewNop())
	return NewMemberService(memberRepo, roleRepo, auditor, zap.NewNop())
}

func TestMemberService_Create(t *testing.T) {
	t.Run("creates a pending member", func(t *testing.T) {
		memberRepo := new(MockMemberRepository)
		roleRepo := new(MockRoleRepository)
		auditRepo := new(MockAuditRepository)
		service := newTestMemberService(memberRepo, roleRepo, auditRepo)

		memberRepo.On("ExistsByEmail", mock.Anything, "new@club.example").Return(false, nil)
		memberRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
		auditRepo.On("Append", mock.Anything, mock.Anything).Return(nil)

		member, err := service.Create(context.Background(), CreateMemberInput{
			Email:       "new@club.example",
			DisplayName: "New Member",
			Password:    "sTr0ng-pass",
			ActorID:     uuid.New(),
		})

		require.NoError(t, err)
		assert.Equal(t, membership.MemberStatusPending, member.Status)
		assert.Equal(t, "new@club.example", member.Email)
		memberRepo.AssertExpectations(t)
	})

	t.Run("creates an active member when requested", func(t *testing.T) {
		memberRepo := new(MockMemberRepository)
		roleRepo := new(MockRoleRepository)
		auditRepo := new(MockAuditRepository)
		service := newTestMemberService(memberRepo, roleRepo, auditRepo)

		memberRepo.On("ExistsByEmail", mock.Anything, "new@club.example").Return(false, nil)
		memberRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
		auditRepo.On("Append", mock.Anything, mock.Anything).Return(nil)

		member, err := service.Create(context.Background(), CreateMemberInput{
			Email:       "new@club.example",
			DisplayName: "New Member",
			Password:    "sTr0ng-pass",
			Active:      true,
			ActorID:     uuid.New(),
		})

		require.NoError(t, err)
		assert.Equal(t, membership.MemberStatusActive, member.Status)
	})

	t.Run("rejects duplicate email", func(t *testing.T) {
		memberRepo := new(MockMemberRepository)
		roleRepo := new(MockRoleRepository)
		auditRepo := new(MockAuditRepository)
		service := newTestMemberService(memberRepo, roleRepo, auditRepo)

		memberRepo.On("ExistsByEmail", mock.Anything, "taken@club.example").Return(true, nil)

		member, err := service.Create(context.Background(), CreateMemberInput{
			Email:       "taken@club.example",
			DisplayName: "New Member",
			Password:    "sTr0ng-pass",
		})

		assert.Nil(t, member)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "EMAIL_TAKEN", domainErr.Code)
	})
}

func TestMemberService_AssignRoles(t *testing.T) {
	t.Run("replaces role assignments", func(t *testing.T) {
		memberRepo := new(MockMemberRepository)
		roleRepo := new(MockRoleRepository)
		auditRepo := new(MockAuditRepository)
		service := newTestMemberService(memberRepo, roleRepo, auditRepo)

		member, err := membership.NewActiveMember("jo@club.example", "Jo", "sTr0ng-pass")
		require.NoError(t, err)
		role, err := membership.NewRole("editor", "Editor")
		require.NoError(t, err)

		memberRepo.On("FindByID", mock.Anything, member.ID).Return(member, nil)
		roleRepo.On("FindByIDs", mock.Anything, []uuid.UUID{role.ID}).Return([]*membership.Role{role}, nil)
		memberRepo.On("SaveMemberRoles", mock.Anything, member).Return(nil)
		auditRepo.On("Append", mock.Anything, mock.Anything).Return(nil)

		err = service.AssignRoles(context.Background(), AssignRolesInput{
			MemberID: member.ID,
			RoleIDs:  []uuid.UUID{role.ID},
			ActorID:  uuid.New(),
		})

		require.NoError(t, err)
		assert.Equal(t, []uuid.UUID{role.ID}, member.RoleIDs)
	})

	t.Run("rejects unknown role IDs", func(t *testing.T) {
		memberRepo := new(MockMemberRepository)
		roleRepo := new(MockRoleRepository)
		auditRepo := new(MockAuditRepository)
		service := newTestMemberService(memberRepo, roleRepo, auditRepo)

		member, err := membership.NewActiveMember("jo@club.example", "Jo", "sTr0ng-pass")
		require.NoError(t, err)
		unknown := uuid.New()

		memberRepo.On("FindByID", mock.Anything, member.ID).Return(member, nil)
		roleRepo.On("FindByIDs", mock.Anything, []uuid.UUID{unknown}).Return([]*membership.Role{}, nil)

		err = service.AssignRoles(context.Background(), AssignRolesInput{
			MemberID: member.ID,
			RoleIDs:  []uuid.UUID{unknown},
		})

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "ROLE_NOT_FOUND", domainErr.Code)
	})

	t.Run("clearing roles skips the role lookup", func(t *testing.T) {
		memberRepo := new(MockMemberRepository)
		roleRepo := new(MockRoleRepository)
		auditRepo := new(MockAuditRepository)
		service := newTestMemberService(memberRepo, roleRepo, auditRepo)

		member, err := membership.NewActiveMember("jo@club.example", "Jo", "sTr0ng-pass")
		require.NoError(t, err)
		member.RoleIDs = []uuid.UUID{uuid.New()}

		memberRepo.On("FindByID", mock.Anything, member.ID).Return(member, nil)
		memberRepo.On("SaveMemberRoles", mock.Anything, member).Return(nil)
		auditRepo.On("Append", mock.Anything, mock.Anything).Return(nil)

		err = service.AssignRoles(context.Background(), AssignRolesInput{
			MemberID: member.ID,
			RoleIDs:  nil,
		})

		require.NoError(t, err)
		assert.Empty(t, member.RoleIDs)
		roleRepo.AssertNotCalled(t, "FindByIDs")
	})
}

func TestMemberService_StatusChanges(t *testing.T) {
	t.Run("activates a pending member", func(t *testing.T) {
		memberRepo := new(MockMemberRepository)
		roleRepo := new(MockRoleRepository)
		auditRepo := new(MockAuditRepository)
		service := newTestMemberService(memberRepo, roleRepo, auditRepo)

		member, err := membership.NewMember("new@club.example", "New", "sTr0ng-pass")
		require.NoError(t, err)

		memberRepo.On("FindByID", mock.Anything, member.ID).Return(member, nil)
		memberRepo.On("Update", mock.Anything, member).Return(nil)
		auditRepo.On("Append", mock.Anything, mock.Anything).Return(nil)

		require.NoError(t, service.Activate(context.Background(), member.ID, uuid.New(), ""))
		assert.Equal(t, membership.MemberStatusActive, member.Status)
	})

	t.Run("unlock fails for a member who is not locked", func(t *testing.T) {
		memberRepo := new(MockMemberRepository)
		roleRepo := new(MockRoleRepository)
		auditRepo := new(MockAuditRepository)
		service := newTestMemberService(memberRepo, roleRepo, auditRepo)

		member, err := membership.NewActiveMember("jo@club.example", "Jo", "sTr0ng-pass")
		require.NoError(t, err)

		memberRepo.On("FindByID", mock.Anything, member.ID).Return(member, nil)

		err = service.Unlock(context.Background(), member.ID, uuid.New(), "")
		assert.Error(t, err)
	})
}

func TestMemberService_ResetPassword(t *testing.T) {
	t.Run("sets a new password without the old one", func(t *testing.T) {
		memberRepo := new(MockMemberRepository)
		roleRepo := new(MockRoleRepository)
		auditRepo := new(MockAuditRepository)
		service := newTestMemberService(memberRepo, roleRepo, auditRepo)

		member, err := membership.NewActiveMember("jo@club.example", "Jo", "sTr0ng-pass")
		require.NoError(t, err)

		memberRepo.On("FindByID", mock.Anything, member.ID).Return(member, nil)
		memberRepo.On("Update", mock.Anything, member).Return(nil)
		auditRepo.On("Append", mock.Anything, mock.Anything).Return(nil)

		require.NoError(t, service.ResetPassword(context.Background(), member.ID, "n3w-Password", uuid.New(), ""))
		assert.True(t, member.VerifyPassword("n3w-Password"))
	})
}
