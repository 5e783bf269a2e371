package userinfra

import (
	"context"
	"database/sql"

	"github.com/adilnv/internlink/pkg/iam/user"
	"github.com/adilnv/internlink/pkg/kernel"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

type PostgresUserRepository struct {
	db *sqlx.DB
}

func NewPostgresUserRepository(db *sqlx.DB) user.Repository {
	return &PostgresUserRepository{db: db}
}

// Save creates a new user with its role profile columns flattened
func (r *PostgresUserRepository) Save(ctx context.Context, u *user.User) error {
	query := `
		INSERT INTO users (
			id, email, phone, first_name, last_name, role, status, password_hash,
			school, degree_level, skills, organization_id, position,
			created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15
		)
	`

	intern, staff := profileColumns(u)

	_, err := r.db.ExecContext(
		ctx,
		query,
		u.ID,
		u.Email,
		u.Phone,
		u.FirstName,
		u.LastName,
		u.Role,
		u.Status,
		u.PasswordHash,
		intern.school,
		intern.degreeLevel,
		intern.skills,
		staff.organizationID,
		staff.position,
		u.CreatedAt,
		u.UpdatedAt,
	)

	if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
		return user.ErrEmailTaken().WithDetail("email", string(u.Email))
	}
	return err
}

// Update updates the mutable fields of a user
func (r *PostgresUserRepository) Update(ctx context.Context, u *user.User) error {
	query := `
		UPDATE users
		SET
			phone = $2,
			first_name = $3,
			last_name = $4,
			status = $5,
			password_hash = $6,
			school = $7,
			degree_level = $8,
			skills = $9,
			organization_id = $10,
			position = $11,
			updated_at = $12
		WHERE id = $1
	`

	intern, staff := profileColumns(u)

	result, err := r.db.ExecContext(
		ctx,
		query,
		u.ID,
		u.Phone,
		u.FirstName,
		u.LastName,
		u.Status,
		u.PasswordHash,
		intern.school,
		intern.degreeLevel,
		intern.skills,
		staff.organizationID,
		staff.position,
		u.UpdatedAt,
	)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return user.ErrUserNotFound()
	}
	return nil
}

// FindByID retrieves a user by ID
func (r *PostgresUserRepository) FindByID(ctx context.Context, id kernel.UserID) (*user.User, error) {
	return r.findOne(ctx, `WHERE id = $1`, id)
}

// FindByEmail retrieves a user by email
func (r *PostgresUserRepository) FindByEmail(ctx context.Context, email kernel.Email) (*user.User, error) {
	return r.findOne(ctx, `WHERE email = $1`, email)
}

// ExistsByEmail checks email uniqueness
func (r *PostgresUserRepository) ExistsByEmail(ctx context.Context, email kernel.Email) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`, email).Scan(&exists)
	return exists, err
}

// FindByOrganization lists users attached to an organization with pagination
func (r *PostgresUserRepository) FindByOrganization(ctx context.Context, orgID kernel.OrganizationID, opts kernel.PaginationOptions) (*kernel.Paginated[user.User], error) {
	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users WHERE organization_id = $1`, orgID).Scan(&total); err != nil {
		return nil, err
	}

	query := selectColumns + `
		WHERE organization_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.QueryContext(ctx, query, orgID, opts.PageSize, opts.Offset())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []user.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *u)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &kernel.Paginated[user.User]{
		Items: users,
		Page:  kernel.NewPage(opts, total),
		Empty: len(users) == 0,
	}, nil
}

const selectColumns = `
	SELECT
		id, email, phone, first_name, last_name, role, status, password_hash,
		school, degree_level, skills, organization_id, position,
		created_at, updated_at
	FROM users
`

func (r *PostgresUserRepository) findOne(ctx context.Context, where string, arg any) (*user.User, error) {
	row := r.db.QueryRowContext(ctx, selectColumns+where, arg)
	u, err := scanUser(row)
	if err == sql.ErrNoRows {
		return nil, user.ErrUserNotFound()
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*user.User, error) {
	var u user.User
	var school, degreeLevel, skills sql.NullString
	var organizationID, position sql.NullString

	err := row.Scan(
		&u.ID,
		&u.Email,
		&u.Phone,
		&u.FirstName,
		&u.LastName,
		&u.Role,
		&u.Status,
		&u.PasswordHash,
		&school,
		&degreeLevel,
		&skills,
		&organizationID,
		&position,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	switch u.Role {
	case user.RoleIntern:
		u.Intern = &user.InternProfile{
			School:      school.String,
			DegreeLevel: degreeLevel.String,
			Skills:      skills.String,
		}
	case user.RoleRecruiter, user.RoleHRManager:
		u.Staff = &user.StaffProfile{
			OrganizationID: kernel.OrganizationID(organizationID.String),
			Position:       position.String,
		}
	}

	return &u, nil
}

type internColumns struct {
	school      sql.NullString
	degreeLevel sql.NullString
	skills      sql.NullString
}

type staffColumns struct {
	organizationID sql.NullString
	position       sql.NullString
}

func profileColumns(u *user.User) (internColumns, staffColumns) {
	var intern internColumns
	var staff staffColumns

	if u.Intern != nil {
		intern.school = sql.NullString{String: u.Intern.School, Valid: true}
		intern.degreeLevel = sql.NullString{String: u.Intern.DegreeLevel, Valid: true}
		intern.skills = sql.NullString{String: u.Intern.Skills, Valid: true}
	}
	if u.Staff != nil {
		staff.organizationID = sql.NullString{String: u.Staff.OrganizationID.String(), Valid: true}
		staff.position = sql.NullString{String: u.Staff.Position, Valid: true}
	}

	return intern, staff
}
