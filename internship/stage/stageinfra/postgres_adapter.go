package stageinfra

import (
	"context"
	"database/sql"

	"github.com/adilnv/internlink/internship/stage"
	"github.com/adilnv/internlink/pkg/kernel"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

type PostgresStageRepository struct {
	db *sqlx.DB
}

func NewPostgresStageRepository(db *sqlx.DB) stage.Repository {
	return &PostgresStageRepository{db: db}
}

const selectColumns = `
	SELECT
		id, candidature_id, posting_id, organization_id, intern_id, supervisor_id,
		title, objective, planned_start_date, planned_end_date,
		actual_start, actual_end, final_score, notes, status,
		certificate_issued, created_at, updated_at
	FROM stages
`

// Create creates a new stage. The unique constraint on candidature_id
// enforces the one-stage-per-candidature rule.
func (r *PostgresStageRepository) Create(ctx context.Context, s *stage.Stage) error {
	query := `
		INSERT INTO stages (
			id, candidature_id, posting_id, organization_id, intern_id, supervisor_id,
			title, objective, planned_start_date, planned_end_date,
			actual_start, actual_end, final_score, notes, status,
			certificate_issued, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18
		)
	`

	_, err := r.db.ExecContext(
		ctx,
		query,
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
	)

	if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
		return stage.ErrStageAlreadyExists().WithDetail("candidature_id", s.CandidatureID.String())
	}
	return err
}

// Update updates an existing stage
func (r *PostgresStageRepository) Update(ctx context.Context, id kernel.StageID, s *stage.Stage) error {
	query := `
		UPDATE stages
		SET
			title = $2,
			objective = $3,
			planned_start_date = $4,
			planned_end_date = $5,
			actual_start = $6,
			actual_end = $7,
			final_score = $8,
			notes = $9,
			status = $10,
			certificate_issued = $11,
			updated_at = $12
		WHERE id = $1
	`

	result, err := r.db.ExecContext(
		ctx,
		query,
		id,
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
		s.UpdatedAt,
	)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return stage.ErrStageNotFound()
	}

	return nil
}

// GetByID retrieves a stage by ID
func (r *PostgresStageRepository) GetByID(ctx context.Context, id kernel.StageID) (*stage.Stage, error) {
	var s stage.Stage
	err := r.db.GetContext(ctx, &s, selectColumns+`WHERE id = $1`, id)
	if err == sql.ErrNoRows {
		return nil, stage.ErrStageNotFound()
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// GetByCandidatureID retrieves the stage of a candidature
func (r *PostgresStageRepository) GetByCandidatureID(ctx context.Context, candidatureID kernel.CandidatureID) (*stage.Stage, error) {
	var s stage.Stage
	err := r.db.GetContext(ctx, &s, selectColumns+`WHERE candidature_id = $1`, candidatureID)
	if err == sql.ErrNoRows {
		return nil, stage.ErrStageNotFound()
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// Delete deletes a stage by ID
func (r *PostgresStageRepository) Delete(ctx context.Context, id kernel.StageID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM stages WHERE id = $1`, id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return stage.ErrStageNotFound()
	}
	return nil
}

// List retrieves all stages with pagination
func (r *PostgresStageRepository) List(ctx context.Context, pagination kernel.PaginationOptions) (*kernel.Paginated[stage.Stage], error) {
	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM stages`); err != nil {
		return nil, err
	}

	query := selectColumns + `
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	var stages []stage.Stage
	if err := r.db.SelectContext(ctx, &stages, query, pagination.PageSize, pagination.Offset()); err != nil {
		return nil, err
	}

	return paginated(stages, pagination, total), nil
}

// ListByIntern retrieves stages of one intern
func (r *PostgresStageRepository) ListByIntern(ctx context.Context, internID kernel.UserID, pagination kernel.PaginationOptions) (*kernel.Paginated[stage.Stage], error) {
	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM stages WHERE intern_id = $1`, internID); err != nil {
		return nil, err
	}

	query := selectColumns + `
		WHERE intern_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	var stages []stage.Stage
	if err := r.db.SelectContext(ctx, &stages, query, internID, pagination.PageSize, pagination.Offset()); err != nil {
		return nil, err
	}

	return paginated(stages, pagination, total), nil
}

// ListByOrganization retrieves stages hosted by one organization
func (r *PostgresStageRepository) ListByOrganization(ctx context.Context, orgID kernel.OrganizationID, pagination kernel.PaginationOptions) (*kernel.Paginated[stage.Stage], error) {
	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM stages WHERE organization_id = $1`, orgID); err != nil {
		return nil, err
	}

	query := selectColumns + `
		WHERE organization_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	var stages []stage.Stage
	if err := r.db.SelectContext(ctx, &stages, query, orgID, pagination.PageSize, pagination.Offset()); err != nil {
		return nil, err
	}

	return paginated(stages, pagination, total), nil
}

// Exists checks if a stage exists by ID
func (r *PostgresStageRepository) Exists(ctx context.Context, id kernel.StageID) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM stages WHERE id = $1)`, id)
	return exists, err
}

func paginated(stages []stage.Stage, pagination kernel.PaginationOptions, total int) *kernel.Paginated[stage.Stage] {
	return &kernel.Paginated[stage.Stage]{
		Items: stages,
		Page:  kernel.NewPage(pagination, total),
		Empty: len(stages) == 0,
	}
}
