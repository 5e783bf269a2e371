package posting

import (
	"context"

	"github.com/adilnv/internlink/pkg/kernel"
)

type Repository interface {
	// Create creates a new posting
	Create(ctx context.Context, p *Posting) error

	// Update updates an existing posting
	Update(ctx context.Context, id kernel.PostingID, p *Posting) error

	// GetByID retrieves a posting by ID
	GetByID(ctx context.Context, id kernel.PostingID) (*Posting, error)

	// Delete deletes a posting by ID
	Delete(ctx context.Context, id kernel.PostingID) error

	// List retrieves all postings with pagination
	List(ctx context.Context, pagination kernel.PaginationOptions) (*kernel.Paginated[Posting], error)

	// ListPublished retrieves postings open for candidatures
	ListPublished(ctx context.Context, pagination kernel.PaginationOptions) (*kernel.Paginated[Posting], error)

	// ListByOrganization retrieves postings of one organization
	ListByOrganization(ctx context.Context, orgID kernel.OrganizationID, pagination kernel.PaginationOptions) (*kernel.Paginated[Posting], error)

	// Exists checks if a posting exists by ID
	Exists(ctx context.Context, id kernel.PostingID) (bool, error)
}
