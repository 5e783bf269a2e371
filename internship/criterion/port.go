package criterion

import (
	"context"

	"github.com/adilnv/internlink/pkg/kernel"
)

// Repository defines persistence operations for criteria
type Repository interface {
	Create(ctx context.Context, c *Criterion) error
	Update(ctx context.Context, id kernel.CriterionID, c *Criterion) error
	GetByID(ctx context.Context, id kernel.CriterionID) (*Criterion, error)

	// List retrieves all criteria, active or not
	List(ctx context.Context, pagination kernel.PaginationOptions) (*kernel.Paginated[Criterion], error)

	// ListAvailable retrieves the active criteria usable for the given
	// organization, global ones included
	ListAvailable(ctx context.Context, orgID kernel.OrganizationID) ([]Criterion, error)

	// WeightsByID returns the weight of every currently active criterion,
	// keyed by criterion ID
	WeightsByID(ctx context.Context) (map[kernel.CriterionID]float64, error)
}
