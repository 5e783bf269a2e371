package user

import (
	"context"

	"github.com/adilnv/internlink/pkg/kernel"
)

// Repository defines the persistence port for users
type Repository interface {
	Save(ctx context.Context, u *User) error
	Update(ctx context.Context, u *User) error
	FindByID(ctx context.Context, id kernel.UserID) (*User, error)
	FindByEmail(ctx context.Context, email kernel.Email) (*User, error)
	ExistsByEmail(ctx context.Context, email kernel.Email) (bool, error)
	FindByOrganization(ctx context.Context, orgID kernel.OrganizationID, opts kernel.PaginationOptions) (*kernel.Paginated[User], error)
}
