package criterion

import (
	"time"

	"github.com/adilnv/internlink/pkg/kernel"
)

// Criterion is a named, weighted axis of evaluation. A nil
// OrganizationID makes the criterion global.
type Criterion struct {
	ID             kernel.CriterionID     `db:"id" json:"id"`
	Name           string                 `db:"name" json:"name"`
	Category       string                 `db:"category" json:"category"`
	Weight         float64                `db:"weight" json:"weight"`
	Active         bool                   `db:"active" json:"active"`
	OrganizationID *kernel.OrganizationID `db:"organization_id" json:"organization_id,omitempty"`
	CreatedAt      time.Time              `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time              `db:"updated_at" json:"updated_at"`
}

// ============================================================================
// Domain Methods
// ============================================================================

// IsGlobal reports whether the criterion applies to every organization
func (c *Criterion) IsGlobal() bool {
	return c.OrganizationID == nil
}

// AppliesTo reports whether the criterion is usable for evaluations
// within the given organization
func (c *Criterion) AppliesTo(orgID kernel.OrganizationID) bool {
	return c.IsGlobal() || *c.OrganizationID == orgID
}

// Deactivate excludes the criterion from future aggregate computations,
// retroactively for already-stored ratings as well
func (c *Criterion) Deactivate() {
	c.Active = false
	c.UpdatedAt = time.Now()
}

// Activate re-enables the criterion
func (c *Criterion) Activate() {
	c.Active = true
	c.UpdatedAt = time.Now()
}

// Validate checks the structural invariants of the criterion
func (c *Criterion) Validate() error {
	if c.Name == "" {
		return ErrNameRequired()
	}
	if c.Weight <= 0 {
		return ErrInvalidWeight().WithDetail("weight", c.Weight)
	}
	return nil
}
