package candidatureinfra

import (
	"context"
	"database/sql"

	"github.com/adilnv/internlink/internship/candidature"
	"github.com/adilnv/internlink/internship/stage"
	"github.com/adilnv/internlink/pkg/kernel"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

type PostgresCandidatureRepository struct {
	db *sqlx.DB
}

func NewPostgresCandidatureRepository(db *sqlx.DB) candidature.Repository {
	return &PostgresCandidatureRepository{db: db}
}

const selectColumns = `
	SELECT
		id, posting_id, intern_id, status, intern_notes, reviewer_notes,
		reviewer_id, rating, cv_bucket_url, submitted_at, closed_at,
		created_at, updated_at
	FROM candidatures
`

// Create creates a new candidature
func (r *PostgresCandidatureRepository) Create(ctx context.Context, c *candidature.Candidature) error {
	query := `
		INSERT INTO candidatures (
			id, posting_id, intern_id, status, intern_notes, reviewer_notes,
			reviewer_id, rating, cv_bucket_url, submitted_at, closed_at,
			created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13
		)
	`

	_, err := r.db.ExecContext(
		ctx,
		query,
		c.ID,
		c.PostingID,
		c.InternID,
		c.Status,
		c.InternNotes,
		c.ReviewerNotes,
		c.ReviewerID,
		c.Rating,
		c.CVBucketURL,
		c.SubmittedAt,
		c.ClosedAt,
		c.CreatedAt,
		c.UpdatedAt,
	)

	if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
		return candidature.ErrDuplicateCandidature().
			WithDetail("intern_id", c.InternID.String()).
			WithDetail("posting_id", c.PostingID.String())
	}
	return err
}

// Update updates an existing candidature
func (r *PostgresCandidatureRepository) Update(ctx context.Context, id kernel.CandidatureID, c *candidature.Candidature) error {
	result, err := r.db.ExecContext(ctx, updateQuery,
		id,
		c.Status,
		c.InternNotes,
		c.ReviewerNotes,
		c.ReviewerID,
		c.Rating,
		c.CVBucketURL,
		c.ClosedAt,
		c.UpdatedAt,
	)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return candidature.ErrCandidatureNotFound()
	}

	return nil
}

const updateQuery = `
	UPDATE candidatures
	SET
		status = $2,
		intern_notes = $3,
		reviewer_notes = $4,
		reviewer_id = $5,
		rating = $6,
		cv_bucket_url = $7,
		closed_at = $8,
		updated_at = $9
	WHERE id = $1
`

// SaveAcceptance persists the accepted candidature and its new stage
// in one transaction. The unique constraint on stages.candidature_id
// keeps the 1:1 rule under concurrent accepts.
func (r *PostgresCandidatureRepository) SaveAcceptance(ctx context.Context, c *candidature.Candidature, s *stage.Stage) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, updateQuery,
		c.ID,
		c.Status,
		c.InternNotes,
		c.ReviewerNotes,
		c.ReviewerID,
		c.Rating,
		c.CVBucketURL,
		c.ClosedAt,
		c.UpdatedAt,
	); err != nil {
		return err
	}

	stageInsert := `
		INSERT INTO stages (
			id, candidature_id, posting_id, organization_id, intern_id, supervisor_id,
			title, objective, planned_start_date, planned_end_date,
			actual_start, actual_end, final_score, notes, status,
			certificate_issued, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18
		)
	`

	if _, err := tx.ExecContext(ctx, stageInsert,
		s.ID,
		s.CandidatureID,
		s.PostingID,
		s.OrganizationID,
		s.InternID,
		s.SupervisorID,
		s.Title,
		s.Objective,
		s.PlannedStartDate,
		s.PlannedEndDate,
		s.ActualStart,
		s.ActualEnd,
		s.FinalScore,
		s.Notes,
		s.Status,
		s.CertificateIssued,
		s.CreatedAt,
		s.UpdatedAt,
	); err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return stage.ErrStageAlreadyExists().WithDetail("candidature_id", s.CandidatureID.String())
		}
		return err
	}

	return tx.Commit()
}

// GetByID retrieves a candidature by ID
func (r *PostgresCandidatureRepository) GetByID(ctx context.Context, id kernel.CandidatureID) (*candidature.Candidature, error) {
	var c candidature.Candidature
	err := r.db.GetContext(ctx, &c, selectColumns+`WHERE id = $1`, id)
	if err == sql.ErrNoRows {
		return nil, candidature.ErrCandidatureNotFound()
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// ExistsOpen checks for a non-withdrawn candidature for the pair
func (r *PostgresCandidatureRepository) ExistsOpen(ctx context.Context, internID kernel.UserID, postingID kernel.PostingID) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists, `
		SELECT EXISTS(
			SELECT 1 FROM candidatures
			WHERE intern_id = $1 AND posting_id = $2 AND status != 'WITHDRAWN'
		)
	`, internID, postingID)
	return exists, err
}

// UpdateCVBucketURL updates the stored CV reference
func (r *PostgresCandidatureRepository) UpdateCVBucketURL(ctx context.Context, id kernel.CandidatureID, url kernel.BucketURL) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE candidatures SET cv_bucket_url = $2, updated_at = NOW() WHERE id = $1
	`, id, url)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return candidature.ErrCandidatureNotFound()
	}
	return nil
}

// ListByPosting retrieves candidatures for a posting
func (r *PostgresCandidatureRepository) ListByPosting(ctx context.Context, postingID kernel.PostingID, pagination kernel.PaginationOptions) (*kernel.Paginated[candidature.Candidature], error) {
	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM candidatures WHERE posting_id = $1`, postingID); err != nil {
		return nil, err
	}

	query := selectColumns + `
		WHERE posting_id = $1
		ORDER BY submitted_at DESC
		LIMIT $2 OFFSET $3
	`

	var candidatures []candidature.Candidature
	if err := r.db.SelectContext(ctx, &candidatures, query, postingID, pagination.PageSize, pagination.Offset()); err != nil {
		return nil, err
	}

	return paginated(candidatures, pagination, total), nil
}

// ListByIntern retrieves candidatures of one intern
func (r *PostgresCandidatureRepository) ListByIntern(ctx context.Context, internID kernel.UserID, pagination kernel.PaginationOptions) (*kernel.Paginated[candidature.Candidature], error) {
	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM candidatures WHERE intern_id = $1`, internID); err != nil {
		return nil, err
	}

	query := selectColumns + `
		WHERE intern_id = $1
		ORDER BY submitted_at DESC
		LIMIT $2 OFFSET $3
	`

	var candidatures []candidature.Candidature
	if err := r.db.SelectContext(ctx, &candidatures, query, internID, pagination.PageSize, pagination.Offset()); err != nil {
		return nil, err
	}

	return paginated(candidatures, pagination, total), nil
}

func paginated(items []candidature.Candidature, pagination kernel.PaginationOptions, total int) *kernel.Paginated[candidature.Candidature] {
	return &kernel.Paginated[candidature.Candidature]{
		Items: items,
		Page:  kernel.NewPage(pagination, total),
		Empty: len(items) == 0,
	}
}
