package membership

import (
	"context"

	"github.com/google/uuid"
)

// RoleRepository defines the interface for role persistence
type RoleRepository interface {
	// Create creates a new role
	Create(ctx context.Context, role *Role) error

	// Update updates an existing role
	Update(ctx context.Context, role *Role) error

	// Delete deletes a role by ID
	Delete(ctx context.Context, id uuid.UUID) error

	// FindByID finds a role by ID
	FindByID(ctx context.Context, id uuid.UUID) (*Role, error)

	// FindByCode finds a role by its code
	FindByCode(ctx context.Context, code string) (*Role, error)

	// FindByIDs finds roles for the given IDs
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*Role, error)

	// FindAll returns all roles
	FindAll(ctx context.Context) ([]*Role, error)

	// ExistsByCode checks if a role code already exists
	ExistsByCode(ctx context.Context, code string) (bool, error)

	// CountMembers returns the number of members assigned to a role
	CountMembers(ctx context.Context, roleID uuid.UUID) (int64, error)
}
