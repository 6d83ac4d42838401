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

func newTestRoleService(roleRepo *MockRoleRepository, auditRepo *MockAuditRepository) *RoleService {
	auditor := auditapp.NewService(auditRepo, zap.NewNop())
	return NewRoleService(roleRepo, auditor, zap.NewNop())
}

func TestRoleService_Create(t *testing.T) {
	t.Run("creates a role with permissions", func(t *testing.T) {
		roleRepo := new(MockRoleRepository)
		auditRepo := new(MockAuditRepository)
		service := newTestRoleService(roleRepo, auditRepo)

		roleRepo.On("ExistsByCode", mock.Anything, "editor").Return(false, nil)
		roleRepo.On("Create", mock.Anything, mock.Anything).Return(nil)
		auditRepo.On("Append", mock.Anything, mock.Anything).Return(nil)

		role, err := service.Create(context.Background(), CreateRoleInput{
			Code:        "editor",
			Name:        "Editor",
			Permissions: []string{"posts:create", "posts:update"},
			ActorID:     uuid.New(),
		})

		require.NoError(t, err)
		assert.Equal(t, "editor", role.Code)
		assert.True(t, role.HasPermission("posts:create"))
		assert.True(t, role.HasPermission("posts:update"))
	})

	t.Run("rejects duplicate code", func(t *testing.T) {
		roleRepo := new(MockRoleRepository)
		auditRepo := new(MockAuditRepository)
		service := newTestRoleService(roleRepo, auditRepo)

		roleRepo.On("ExistsByCode", mock.Anything, "editor").Return(true, nil)

		role, err := service.Create(context.Background(), CreateRoleInput{
			Code: "editor",
			Name: "Editor",
		})

		assert.Nil(t, role)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "CODE_TAKEN", domainErr.Code)
	})

	t.Run("rejects malformed permission codes", func(t *testing.T) {
		roleRepo := new(MockRoleRepository)
		auditRepo := new(MockAuditRepository)
		service := newTestRoleService(roleRepo, auditRepo)

		roleRepo.On("ExistsByCode", mock.Anything, "editor").Return(false, nil)

		role, err := service.Create(context.Background(), CreateRoleInput{
			Code:        "editor",
			Name:        "Editor",
			Permissions: []string{"no-colon-here"},
		})

		assert.Nil(t, role)
		assert.Error(t, err)
	})
}

func TestRoleService_SetPermissions(t *testing.T) {
	t.Run("replaces the permission set", func(t *testing.T) {
		roleRepo := new(MockRoleRepository)
		auditRepo := new(MockAuditRepository)
		service := newTestRoleService(roleRepo, auditRepo)

		role, err := membership.NewRole("editor", "Editor")
		require.NoError(t, err)
		require.NoError(t, role.GrantPermissionByCode("posts:create"))

		roleRepo.On("FindByID", mock.Anything, role.ID).Return(role, nil)
		roleRepo.On("Update", mock.Anything, role).Return(nil)
		auditRepo.On("Append", mock.Anything, mock.Anything).Return(nil)

		updated, err := service.SetPermissions(context.Background(), SetRolePermissionsInput{
			RoleID:      role.ID,
			Permissions: []string{"pages:update"},
		})

		require.NoError(t, err)
		assert.False(t, updated.HasPermission("posts:create"))
		assert.True(t, updated.HasPermission("pages:update"))
	})
}

func TestRoleService_Delete(t *testing.T) {
	t.Run("deletes an unused role", func(t *testing.T) {
		roleRepo := new(MockRoleRepository)
		auditRepo := new(MockAuditRepository)
		service := newTestRoleService(roleRepo, auditRepo)

		role, err := membership.NewRole("editor", "Editor")
		require.NoError(t, err)

		roleRepo.On("FindByID", mock.Anything, role.ID).Return(role, nil)
		roleRepo.On("CountMembers", mock.Anything, role.ID).Return(int64(0), nil)
		roleRepo.On("Delete", mock.Anything, role.ID).Return(nil)
		auditRepo.On("Append", mock.Anything, mock.Anything).Return(nil)

		assert.NoError(t, service.Delete(context.Background(), role.ID, uuid.New(), ""))
	})

	t.Run("refuses to delete a system role", func(t *testing.T) {
		roleRepo := new(MockRoleRepository)
		auditRepo := new(MockAuditRepository)
		service := newTestRoleService(roleRepo, auditRepo)

		role, err := membership.NewSystemRole("admin", "Administrator", nil)
		require.NoError(t, err)

		roleRepo.On("FindByID", mock.Anything, role.ID).Return(role, nil)

		err = service.Delete(context.Background(), role.ID, uuid.New(), "")
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "SYSTEM_ROLE", domainErr.Code)
	})

	t.Run("refuses to delete a role still in use", func(t *testing.T) {
		roleRepo := new(MockRoleRepository)
		auditRepo := new(MockAuditRepository)
		service := newTestRoleService(roleRepo, auditRepo)

		role, err := membership.NewRole("editor", "Editor")
		require.NoError(t, err)

		roleRepo.On("FindByID", mock.Anything, role.ID).Return(role, nil)
		roleRepo.On("CountMembers", mock.Anything, role.ID).Return(int64(3), nil)

		err = service.Delete(context.Background(), role.ID, uuid.New(), "")
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "ROLE_IN_USE", domainErr.Code)
	})
}
