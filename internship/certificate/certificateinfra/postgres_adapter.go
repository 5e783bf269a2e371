package certificateinfra

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/adilnv/internlink/internship/certificate"
	"github.com/adilnv/internlink/pkg/kernel"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

type PostgresCertificateRepository struct {
	db *sqlx.DB
}

func NewPostgresCertificateRepository(db *sqlx.DB) certificate.Repository {
	return &PostgresCertificateRepository{db: db}
}

const selectColumns = `
	SELECT
		id, code, evaluation_id, candidature_id, stage_id, intern_id, status,
		stage_title, start_date, end_date, duration_days, final_score, mention,
		intern_full_name, organization_name, organization_sector,
		issuer_name, issuer_role, qr_payload, document_url,
		verification_count, issued_at, last_downloaded_at,
		created_at, updated_at
	FROM certificates
`

// Create creates a new certificate. Unique constraints cover the code,
// the evaluation and the candidature; the violated constraint decides
// which domain error surfaces so the caller can tell a code collision
// apart from a concurrent duplicate issuance.
func (r *PostgresCertificateRepository) Create(ctx context.Context, c *certificate.Certificate) error {
	query := `
		INSERT INTO certificates (
			id, code, evaluation_id, candidature_id, stage_id, intern_id, status,
			stage_title, start_date, end_date, duration_days, final_score, mention,
			intern_full_name, organization_name, organization_sector,
			issuer_name, issuer_role, qr_payload, document_url,
			verification_count, issued_at, last_downloaded_at,
			created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13,
			$14, $15, $16, $17, $18, $19, $20, $21, $22, $23, $24, $25
		)
	`

	_, err := r.db.ExecContext(
		ctx,
		query,
		c.ID,
		c.Code,
		c.EvaluationID,
		c.CandidatureID,
		c.StageID,
		c.InternID,
		c.Status,
		c.StageTitle,
		c.StartDate,
		c.EndDate,
		c.DurationDays,
		c.FinalScore,
		c.Mention,
		c.InternFullName,
		c.OrganizationName,
		c.OrganizationSector,
		c.IssuerName,
		c.IssuerRole,
		c.QRPayload,
		c.DocumentURL,
		c.VerificationCount,
		c.IssuedAt,
		c.LastDownloadedAt,
		c.CreatedAt,
		c.UpdatedAt,
	)

	if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
		if strings.Contains(pqErr.Constraint, "code") {
			return certificate.ErrCodeCollision().WithDetail("code", c.Code)
		}
		return certificate.ErrAlreadyIssued().WithDetail("evaluation_id", c.EvaluationID.String())
	}
	return err
}

// GetByID retrieves a certificate by ID
func (r *PostgresCertificateRepository) GetByID(ctx context.Context, id kernel.CertificateID) (*certificate.Certificate, error) {
	return r.getOne(ctx, `WHERE id = $1`, id)
}

// GetByCode retrieves a certificate by verification code
func (r *PostgresCertificateRepository) GetByCode(ctx context.Context, code string) (*certificate.Certificate, error) {
	return r.getOne(ctx, `WHERE code = $1`, code)
}

// GetByEvaluationID retrieves the certificate of an evaluation
func (r *PostgresCertificateRepository) GetByEvaluationID(ctx context.Context, evaluationID kernel.EvaluationID) (*certificate.Certificate, error) {
	return r.getOne(ctx, `WHERE evaluation_id = $1`, evaluationID)
}

// GetByCandidatureID retrieves the certificate of a candidature
func (r *PostgresCertificateRepository) GetByCandidatureID(ctx context.Context, candidatureID kernel.CandidatureID) (*certificate.Certificate, error) {
	return r.getOne(ctx, `WHERE candidature_id = $1`, candidatureID)
}

// ExistsByCode checks whether a verification code is taken
func (r *PostgresCertificateRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM certificates WHERE code = $1)`, code)
	return exists, err
}

// IncrementVerification atomically bumps the verification counter and
// returns the updated row; a miss leaves everything untouched.
func (r *PostgresCertificateRepository) IncrementVerification(ctx context.Context, code string) (*certificate.Certificate, error) {
	query := `
		UPDATE certificates
		SET verification_count = verification_count + 1
		WHERE code = $1
		RETURNING
			id, code, evaluation_id, candidature_id, stage_id, intern_id, status,
			stage_title, start_date, end_date, duration_days, final_score, mention,
			intern_full_name, organization_name, organization_sector,
			issuer_name, issuer_role, qr_payload, document_url,
			verification_count, issued_at, last_downloaded_at,
			created_at, updated_at
	`

	var c certificate.Certificate
	err := r.db.GetContext(ctx, &c, query, code)
	if err == sql.ErrNoRows {
		return nil, certificate.ErrCertificateNotFound().WithDetail("code", code)
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// MarkDownloaded flips the status and moves the download timestamp
func (r *PostgresCertificateRepository) MarkDownloaded(ctx context.Context, id kernel.CertificateID, at time.Time) error {
	query := `
		UPDATE certificates
		SET status = $2, last_downloaded_at = $3, updated_at = $3
		WHERE id = $1
	`
	result, err := r.db.ExecContext(ctx, query, id, certificate.CertificateStatusDownloaded, at)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return certificate.ErrCertificateNotFound()
	}
	return nil
}

// UpdateDocumentURL links the stored rendered document
func (r *PostgresCertificateRepository) UpdateDocumentURL(ctx context.Context, id kernel.CertificateID, url kernel.BucketURL) error {
	result, err := r.db.ExecContext(ctx, `UPDATE certificates SET document_url = $2, updated_at = NOW() WHERE id = $1`, id, url)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return certificate.ErrCertificateNotFound()
	}
	return nil
}

// ListByIntern retrieves the certificates issued to one intern
func (r *PostgresCertificateRepository) ListByIntern(ctx context.Context, internID kernel.UserID, pagination kernel.PaginationOptions) (*kernel.Paginated[certificate.Certificate], error) {
	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM certificates WHERE intern_id = $1`, internID); err != nil {
		return nil, err
	}

	query := selectColumns + `
		WHERE intern_id = $1
		ORDER BY issued_at DESC
		LIMIT $2 OFFSET $3
	`

	var certificates []certificate.Certificate
	if err := r.db.SelectContext(ctx, &certificates, query, internID, pagination.PageSize, pagination.Offset()); err != nil {
		return nil, err
	}

	return &kernel.Paginated[certificate.Certificate]{
		Items: certificates,
		Page:  kernel.NewPage(pagination, total),
		Empty: len(certificates) == 0,
	}, nil
}

func (r *PostgresCertificateRepository) getOne(ctx context.Context, where string, arg any) (*certificate.Certificate, error) {
	var c certificate.Certificate
	err := r.db.GetContext(ctx, &c, selectColumns+where, arg)
	if err == sql.ErrNoRows {
		return nil, certificate.ErrCertificateNotFound()
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}
