package membership

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	auditapp "github.com/greenclub/backend/internal/application/audit"
	"github.com/greenclub/backend/internal/domain/audit"
	"github.com/greenclub/backend/internal/domain/membership"
	"github.com/greenclub/backend/internal/domain/shared"
)

// RoleService handles role administration
type RoleService struct {
	roleRepo membership.RoleRepository
	auditor  *auditapp.Service
	logger   *zap.Logger
}

// NewRoleService creates a new role service
func NewRoleService(
	roleRepo membership.RoleRepository,
	auditor *auditapp.Service,
	logger *zap.Logger,
) *RoleService {
	return &RoleService{
		roleRepo: roleRepo,
		auditor:  auditor,
		logger:   logger,
	}
}

// Create creates a new role with the given permissions
func (s *RoleService) Create(ctx context.Context, input CreateRoleInput) (*membership.Role, error) {
	exists, err := s.roleRepo.ExistsByCode(ctx, input.Code)
	if err != nil {
		s.logger.Error("Failed to check role code uniqueness", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create role")
	}
	if exists {
		return nil, shared.NewDomainError("CODE_TAKEN", "Role code is already in use")
	}

	role, err := membership.NewRole(input.Code, input.Name)
	if err != nil {
		return nil, err
	}

	if input.Description != "" {
		if err := role.Update(input.Name, input.Description); err != nil {
			return nil, err
		}
	}
	for _, code := range input.Permissions {
		if err := role.GrantPermissionByCode(code); err != nil {
			return nil, err
		}
	}

	if err := s.roleRepo.Create(ctx, role); err != nil {
		s.logger.Error("Failed to create role", zap.Error(err))
		return nil, shared.NewDomainError("INTERNAL_ERROR", "Failed to create role")
	}

	s.auditor.Record(ctx, input.ActorID, audit.ActionRoleCreate, "role", role.ID, role.Code, input.IP)
	s.logger.Info("Role created",
		zap.String("role_id", role.ID.String()),
		zap.String("code", role.Code))
	return role, nil
}

// Get returns a role by ID
func (s *RoleService) Get(ctx context.Context, id uuid.UUID) (*membership.Role, error) {
	return s.roleRepo.FindByID(ctx, id)
}

// List returns all roles
func (s *RoleService) List(ctx context.Context) ([]*membership.Role, error) {
	return s.roleRepo.FindAll(ctx)
}

// Update changes a role's name and description
func (s *RoleService) Update(ctx context.Context, input UpdateRoleInput) (*membership.Role, error) {
	role, err := s.roleRepo.FindByID(ctx, input.RoleID)
	if err != nil {
		return nil, err
	}

	if err := role.Update(input.Name, input.Description); err != nil {
		return nil, err
	}

	if err := s.roleRepo.Update(ctx, role); err != nil {
		s.logger.Error("Failed to update role", zap.Error(err))
		return nil, err
	}

	s.auditor.Record(ctx, input.ActorID, audit.ActionRoleUpdate, "role", role.ID, "", input.IP)
	return role, nil
}

// SetPermissions replaces a role's permission set
func (s *RoleService) SetPermissions(ctx context.Context, input SetRolePermissionsInput) (*membership.Role, error) {
	role, err := s.roleRepo.FindByID(ctx, input.RoleID)
	if err != nil {
		return nil, err
	}

	// Rebuild the set from scratch so revoked codes drop out
	for _, code := range role.PermissionCodes() {
		if err := role.RevokePermission(code); err != nil {
			return nil, err
		}
	}
	for _, code := range input.Permissions {
		if err := role.GrantPermissionByCode(code); err != nil {
			return nil, err
		}
	}

	if err := s.roleRepo.Update(ctx, role); err != nil {
		s.logger.Error("Failed to update role permissions", zap.Error(err))
		return nil, err
	}

	s.auditor.Record(ctx, input.ActorID, audit.ActionRoleUpdate, "role", role.ID, "permissions", input.IP)
	return role, nil
}

// Delete removes a role. System roles and roles still assigned to
// members cannot be deleted.
func (s *RoleService) Delete(ctx context.Context, roleID, actorID uuid.UUID, ip string) error {
	role, err := s.roleRepo.FindByID(ctx, roleID)
	if err != nil {
		return err
	}

	if !role.CanDelete() {
		return shared.NewDomainError("SYSTEM_ROLE", "System roles cannot be deleted")
	}

	count, err := s.roleRepo.CountMembers(ctx, roleID)
	if err != nil {
		s.logger.Error("Failed to count role members", zap.Error(err))
		return shared.NewDomainError("INTERNAL_ERROR", "Failed to delete role")
	}
	if count > 0 {
		return shared.NewDomainError("ROLE_IN_USE", "Role is still assigned to members")
	}

	if err := s.roleRepo.Delete(ctx, roleID); err != nil {
		s.logger.Error("Failed to delete role", zap.Error(err))
		return err
	}

	s.auditor.Record(ctx, actorID, audit.ActionRoleDelete, "role", roleID, role.Code, ip)
	s.logger.Info("Role deleted", zap.String("role_id", roleID.String()))
	return nil
}
