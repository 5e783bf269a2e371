package organization

import (
	"time"

	"github.com/adilnv/internlink/pkg/kernel"
)

// Organization is a host company offering internships
type Organization struct {
	ID          kernel.OrganizationID `db:"id" json:"id"`
	Name        string                `db:"name" json:"name"`
	Sector      kernel.Sector         `db:"sector" json:"sector"`
	Description string                `db:"description" json:"description"`
	Website     string                `db:"website" json:"website"`
	CreatedAt   time.Time             `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time             `db:"updated_at" json:"updated_at"`
}
