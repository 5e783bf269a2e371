package orginfra

import (
	"context"
	"database/sql"

	"github.com/adilnv/internlink/internship/organization"
	"github.com/adilnv/internlink/pkg/kernel"
	"github.com/jmoiron/sqlx"
)

type PostgresOrganizationRepository struct {
	db *sqlx.DB
}

func NewPostgresOrganizationRepository(db *sqlx.DB) organization.Repository {
	return &PostgresOrganizationRepository{db: db}
}

// Create creates a new organization
func (r *PostgresOrganizationRepository) Create(ctx context.Context, org *organization.Organization) error {
	query := `
		INSERT INTO organizations (
			id, name, sector, description, website, created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7
		)
	`

	_, err := r.db.ExecContext(
		ctx,
		query,
		org.ID,
		org.Name,
		org.Sector,
		org.Description,
		org.Website,
		org.CreatedAt,
		org.UpdatedAt,
	)

	return err
}

// Update updates an existing organization
func (r *PostgresOrganizationRepository) Update(ctx context.Context, id kernel.OrganizationID, org *organization.Organization) error {
	query := `
		UPDATE organizations
		SET
			name = $2,
			sector = $3,
			description = $4,
			website = $5,
			updated_at = $6
		WHERE id = $1
	`

	result, err := r.db.ExecContext(
		ctx,
		query,
		id,
		org.Name,
		org.Sector,
		org.Description,
		org.Website,
		org.UpdatedAt,
	)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return organization.ErrOrganizationNotFound()
	}

	return nil
}

// GetByID retrieves an organization by ID
func (r *PostgresOrganizationRepository) GetByID(ctx context.Context, id kernel.OrganizationID) (*organization.Organization, error) {
	query := `
		SELECT id, name, sector, description, website, created_at, updated_at
		FROM organizations
		WHERE id = $1
	`

	var org organization.Organization
	err := r.db.GetContext(ctx, &org, query, id)
	if err == sql.ErrNoRows {
		return nil, organization.ErrOrganizationNotFound()
	}
	if err != nil {
		return nil, err
	}

	return &org, nil
}

// List retrieves all organizations with pagination
func (r *PostgresOrganizationRepository) List(ctx context.Context, pagination kernel.PaginationOptions) (*kernel.Paginated[organization.Organization], error) {
	var total int
	if err := r.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM organizations`); err != nil {
		return nil, err
	}

	query := `
		SELECT id, name, sector, description, website, created_at, updated_at
		FROM organizations
		ORDER BY name ASC
		LIMIT $1 OFFSET $2
	`

	var orgs []organization.Organization
	if err := r.db.SelectContext(ctx, &orgs, query, pagination.PageSize, pagination.Offset()); err != nil {
		return nil, err
	}

	return &kernel.Paginated[organization.Organization]{
		Items: orgs,
		Page:  kernel.NewPage(pagination, total),
		Empty: len(orgs) == 0,
	}, nil
}

// Exists checks if an organization exists by ID
func (r *PostgresOrganizationRepository) Exists(ctx context.Context, id kernel.OrganizationID) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM organizations WHERE id = $1)`, id)
	return exists, err
}
