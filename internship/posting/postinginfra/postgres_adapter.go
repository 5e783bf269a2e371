package postinginfra

import (
	"context"
	"database/sql"

	"github.com/adilnv/internlink/internship/posting"
	"github.com/adilnv/internlink/pkg/kernel"
	"github.com/jmoiron/sqlx"
)

type PostgresPostingRepository struct {
	db *sqlx.DB
}

func NewPostgresPostingRepository(db *sqlx.DB) posting.Repository {
	return &PostgresPostingRepository{db: db}
}

const selectColumns = `
	SELECT
		id, organization_id, recruiter_id, title, description, sector,
		planned_start_date, planned_end_date, status,
		published_at, closed_at, archived_at, created_at, updated_at
	FROM postings
`

// Create creates a new posting
func (r *PostgresPostingRepository) Create(ctx context.Context, p *posting.Posting) error {
	query := `
		INSERT INTO postings (
			id, organization_id, recruiter_id, title, description, sector,
			planned_start_date, planned_end_date, status,
			published_at, closed_at, archived_at, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14
		)
	`

	_, err := r.db.ExecContext(
		ctx,
		query,
		p.ID,
		p.OrganizationID,
		p.RecruiterID,
		p.Title,
		p.Description,
		p.Sector,
		p.PlannedStartDate,
		p.PlannedEndDate,
		p.Status,
		p.PublishedAt,
		p.ClosedAt,
		p.ArchivedAt,
		p.CreatedAt,
		p.UpdatedAt,
	)

	return err
}

// Update updates an existing posting
func (r *PostgresPostingRepository) Update(ctx context.Context, id kernel.PostingID, p *posting.Posting) error {
	query := `
		UPDATE postings
		SET
			title = $2,
			description = $3,
			sector = $4,
			planned_start_date = $5,
			planned_end_date = $6,
			status = $7,
			published_at = $8,
			closed_at = $9,
			archived_at = $10,
			updated_at = $11
		WHERE id = $1
	`

	result, err := r.db.ExecContext(
		ctx,
		query,
		id,
		p.Title,
		p.Description,
		p.Sector,
		p.PlannedStartDate,
		p.PlannedEndDate,
		p.Status,
		p.PublishedAt,
		p.ClosedAt,
		p.ArchivedAt,
		p.UpdatedAt,
	)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return posting.ErrPostingNotFound()
	}

	return nil
}

// GetByID retrieves a posting by ID
func (r *PostgresPostingRepository) GetByID(ctx context.Context, id kernel.PostingID) (*posting.Posting, error) {
	var p posting.Posting
	err := r.db.GetContext(ctx, &p, selectColumns+`WHERE id = $1`, id)
	if err == sql.ErrNoRows {
		return nil, posting.ErrPostingNotFound()
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Delete deletes a posting by ID
func (r *PostgresPostingRepository) Delete(ctx context.Context, id kernel.PostingID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM postings WHERE id = $1`, id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return posting.ErrPostingNotFound()
	}
	return nil
}

// List retrieves all postings with pagination
func (r *PostgresPostingRepository) List(ctx context.Context, pagination kernel.PaginationOptions) (*kernel.Paginated[posting.Posting], error) {
	return r.list(ctx, pagination, ``)
}

// ListPublished retrieves postings open for candidatures
func (r *PostgresPostingRepository) ListPublished(ctx context.Context, pagination kernel.PaginationOptions) (*kernel.Paginated[posting.Posting], error) {
	return r.list(ctx, pagination, `WHERE status = 'PUBLISHED'`)
}

// ListByOrganization retrieves postings of one organization
func (r *PostgresPostingRepository) ListByOrganization(ctx context.Context, orgID kernel.OrganizationID, pagination kernel.PaginationOptions) (*kernel.Paginated[posting.Posting], error) {
	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM postings WHERE organization_id = $1`, orgID); err != nil {
		return nil, err
	}

	query := selectColumns + `
		WHERE organization_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	var postings []posting.Posting
	if err := r.db.SelectContext(ctx, &postings, query, orgID, pagination.PageSize, pagination.Offset()); err != nil {
		return nil, err
	}

	return &kernel.Paginated[posting.Posting]{
		Items: postings,
		Page:  kernel.NewPage(pagination, total),
		Empty: len(postings) == 0,
	}, nil
}

// Exists checks if a posting exists by ID
func (r *PostgresPostingRepository) Exists(ctx context.Context, id kernel.PostingID) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM postings WHERE id = $1)`, id)
	return exists, err
}

func (r *PostgresPostingRepository) list(ctx context.Context, pagination kernel.PaginationOptions, where string) (*kernel.Paginated[posting.Posting], error) {
	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM postings `+where); err != nil {
		return nil, err
	}

	query := selectColumns + where + `
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	var postings []posting.Posting
	if err := r.db.SelectContext(ctx, &postings, query, pagination.PageSize, pagination.Offset()); err != nil {
		return nil, err
	}

	return &kernel.Paginated[posting.Posting]{
		Items: postings,
		Page:  kernel.NewPage(pagination, total),
		Empty: len(postings) == 0,
	}, nil
}
