package certificate

import (
	"context"
	"time"

	"github.com/adilnv/internlink/pkg/kernel"
)

// Repository defines persistence operations for certificates. Create
// distinguishes its uniqueness violations: a duplicate evaluation or
// candidature surfaces the already-issued error for the idempotent
// return path, a duplicate code the collision error for the retry loop.
type Repository interface {
	Create(ctx context.Context, c *Certificate) error
	GetByID(ctx context.Context, id kernel.CertificateID) (*Certificate, error)
	GetByCode(ctx context.Context, code string) (*Certificate, error)
	GetByEvaluationID(ctx context.Context, evaluationID kernel.EvaluationID) (*Certificate, error)
	GetByCandidatureID(ctx context.Context, candidatureID kernel.CandidatureID) (*Certificate, error)
	ExistsByCode(ctx context.Context, code string) (bool, error)

	// IncrementVerification atomically bumps the verification counter
	// and returns the updated certificate; a miss returns the
	// not-found error without touching anything.
	IncrementVerification(ctx context.Context, code string) (*Certificate, error)

	MarkDownloaded(ctx context.Context, id kernel.CertificateID, at time.Time) error
	UpdateDocumentURL(ctx context.Context, id kernel.CertificateID, url kernel.BucketURL) error

	ListByIntern(ctx context.Context, internID kernel.UserID, pagination kernel.PaginationOptions) (*kernel.Paginated[Certificate], error)
}
