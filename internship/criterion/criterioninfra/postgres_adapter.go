package criterioninfra

import (
	"context"
	"database/sql"

	"github.com/adilnv/internlink/internship/criterion"
	"github.com/adilnv/internlink/pkg/kernel"
	"github.com/jmoiron/sqlx"
)

type PostgresCriterionRepository struct {
	db *sqlx.DB
}

func NewPostgresCriterionRepository(db *sqlx.DB) criterion.Repository {
	return &PostgresCriterionRepository{db: db}
}

const selectColumns = `
	SELECT id, name, category, weight, active, organization_id, created_at, updated_at
	FROM criteria
`

// Create creates a new criterion
func (r *PostgresCriterionRepository) Create(ctx context.Context, c *criterion.Criterion) error {
	query := `
		INSERT INTO criteria (
			id, name, category, weight, active, organization_id, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8
		)
	`

	_, err := r.db.ExecContext(
		ctx,
		query,
		c.ID,
		c.Name,
		c.Category,
		c.Weight,
		c.Active,
		c.OrganizationID,
		c.CreatedAt,
		c.UpdatedAt,
	)
	return err
}

// Update updates an existing criterion
func (r *PostgresCriterionRepository) Update(ctx context.Context, id kernel.CriterionID, c *criterion.Criterion) error {
	query := `
		UPDATE criteria
		SET
			name = $2,
			category = $3,
			weight = $4,
			active = $5,
			updated_at = $6
		WHERE id = $1
	`

	result, err := r.db.ExecContext(ctx, query, id, c.Name, c.Category, c.Weight, c.Active, c.UpdatedAt)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return criterion.ErrCriterionNotFound()
	}

	return nil
}

// GetByID retrieves a criterion by ID
func (r *PostgresCriterionRepository) GetByID(ctx context.Context, id kernel.CriterionID) (*criterion.Criterion, error) {
	var c criterion.Criterion
	err := r.db.GetContext(ctx, &c, selectColumns+`WHERE id = $1`, id)
	if err == sql.ErrNoRows {
		return nil, criterion.ErrCriterionNotFound()
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// List retrieves all criteria with pagination
func (r *PostgresCriterionRepository) List(ctx context.Context, pagination kernel.PaginationOptions) (*kernel.Paginated[criterion.Criterion], error) {
	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM criteria`); err != nil {
		return nil, err
	}

	query := selectColumns + `
		ORDER BY category, name
		LIMIT $1 OFFSET $2
	`

	var criteria []criterion.Criterion
	if err := r.db.SelectContext(ctx, &criteria, query, pagination.PageSize, pagination.Offset()); err != nil {
		return nil, err
	}

	return &kernel.Paginated[criterion.Criterion]{
		Items: criteria,
		Page:  kernel.NewPage(pagination, total),
		Empty: len(criteria) == 0,
	}, nil
}

// ListAvailable retrieves the active criteria usable for one organization
func (r *PostgresCriterionRepository) ListAvailable(ctx context.Context, orgID kernel.OrganizationID) ([]criterion.Criterion, error) {
	query := selectColumns + `
		WHERE active = TRUE AND (organization_id IS NULL OR organization_id = $1)
		ORDER BY category, name
	`

	var criteria []criterion.Criterion
	if err := r.db.SelectContext(ctx, &criteria, query, orgID); err != nil {
		return nil, err
	}
	return criteria, nil
}

// WeightsByID returns the weight of every active criterion
func (r *PostgresCriterionRepository) WeightsByID(ctx context.Context) (map[kernel.CriterionID]float64, error) {
	rows, err := r.db.QueryxContext(ctx, `SELECT id, weight FROM criteria WHERE active = TRUE`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	weights := make(map[kernel.CriterionID]float64)
	for rows.Next() {
		var id kernel.CriterionID
		var weight float64
		if err := rows.Scan(&id, &weight); err != nil {
			return nil, err
		}
		weights[id] = weight
	}
	return weights, rows.Err()
}
