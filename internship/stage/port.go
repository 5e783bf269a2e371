package stage

import (
	"context"

	"github.com/adilnv/internlink/pkg/kernel"
)

type Repository interface {
	// Create creates a new stage
	Create(ctx context.Context, s *Stage) error

	// Update updates an existing stage
	Update(ctx context.Context, id kernel.StageID, s *Stage) error

	// GetByID retrieves a stage by ID
	GetByID(ctx context.Context, id kernel.StageID) (*Stage, error)

	// GetByCandidatureID retrieves the stage of a candidature
	GetByCandidatureID(ctx context.Context, candidatureID kernel.CandidatureID) (*Stage, error)

	// Delete deletes a stage by ID
	Delete(ctx context.Context, id kernel.StageID) error

	// List retrieves all stages with pagination
	List(ctx context.Context, pagination kernel.PaginationOptions) (*kernel.Paginated[Stage], error)

	// ListByIntern retrieves stages of one intern
	ListByIntern(ctx context.Context, internID kernel.UserID, pagination kernel.PaginationOptions) (*kernel.Paginated[Stage], error)

	// ListByOrganization retrieves stages hosted by one organization
	ListByOrganization(ctx context.Context, orgID kernel.OrganizationID, pagination kernel.PaginationOptions) (*kernel.Paginated[Stage], error)

	// Exists checks if a stage exists by ID
	Exists(ctx context.Context, id kernel.StageID) (bool, error)
}
