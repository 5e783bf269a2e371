package candidature

import (
	"context"

	"github.com/adilnv/internlink/internship/stage"
	"github.com/adilnv/internlink/pkg/kernel"
)

type Repository interface {
	// Create creates a new candidature
	Create(ctx context.Context, c *Candidature) error

	// Update updates an existing candidature
	Update(ctx context.Context, id kernel.CandidatureID, c *Candidature) error

	// SaveAcceptance persists the accepted candidature and its new stage
	// in one transaction.
	SaveAcceptance(ctx context.Context, c *Candidature, s *stage.Stage) error

	// GetByID retrieves a candidature by ID
	GetByID(ctx context.Context, id kernel.CandidatureID) (*Candidature, error)

	// ExistsOpen checks for a non-withdrawn candidature for the pair
	ExistsOpen(ctx context.Context, internID kernel.UserID, postingID kernel.PostingID) (bool, error)

	// UpdateCVBucketURL updates the stored CV reference
	UpdateCVBucketURL(ctx context.Context, id kernel.CandidatureID, url kernel.BucketURL) error

	// ListByPosting retrieves candidatures for a posting
	ListByPosting(ctx context.Context, postingID kernel.PostingID, pagination kernel.PaginationOptions) (*kernel.Paginated[Candidature], error)

	// ListByIntern retrieves candidatures of one intern
	ListByIntern(ctx context.Context, internID kernel.UserID, pagination kernel.PaginationOptions) (*kernel.Paginated[Candidature], error)
}
