package mission

import (
	"context"

	"github.com/adilnv/internlink/pkg/kernel"
)

type Repository interface {
	// Create creates a new mission
	Create(ctx context.Context, m *Mission) error

	// Update updates an existing mission
	Update(ctx context.Context, id kernel.MissionID, m *Mission) error

	// GetByID retrieves a mission by ID
	GetByID(ctx context.Context, id kernel.MissionID) (*Mission, error)

	// Delete deletes a mission by ID
	Delete(ctx context.Context, id kernel.MissionID) error

	// ListByStage retrieves missions of one stage
	ListByStage(ctx context.Context, stageID kernel.StageID, pagination kernel.PaginationOptions) (*kernel.Paginated[Mission], error)

	// ListByAssignee retrieves missions assigned to one intern
	ListByAssignee(ctx context.Context, assigneeID kernel.UserID, pagination kernel.PaginationOptions) (*kernel.Paginated[Mission], error)
}
