package organization

import (
	"context"

	"github.com/adilnv/internlink/pkg/kernel"
)

type Repository interface {
	// Create creates a new organization
	Create(ctx context.Context, org *Organization) error

	// Update updates an existing organization
	Update(ctx context.Context, id kernel.OrganizationID, org *Organization) error

	// GetByID retrieves an organization by ID
	GetByID(ctx context.Context, id kernel.OrganizationID) (*Organization, error)

	// List retrieves all organizations with pagination
	List(ctx context.Context, pagination kernel.PaginationOptions) (*kernel.Paginated[Organization], error)

	// Exists checks if an organization exists by ID
	Exists(ctx context.Context, id kernel.OrganizationID) (bool, error)
}
