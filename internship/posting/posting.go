package posting

import (
	"time"

	"github.com/adilnv/internlink/pkg/kernel"
)

// PostingStatus represents the status of an internship posting
type PostingStatus string

const (
	PostingStatusDraft     PostingStatus = "DRAFT"     // Created but not published
	PostingStatusPublished PostingStatus = "PUBLISHED" // Active and accepting candidatures
	PostingStatusClosed    PostingStatus = "CLOSED"    // No longer accepting candidatures
	PostingStatusArchived  PostingStatus = "ARCHIVED"  // Archived
)

type Posting struct {
	ID               kernel.PostingID          `db:"id" json:"id"`
	OrganizationID   kernel.OrganizationID     `db:"organization_id" json:"organization_id"`
	RecruiterID      kernel.UserID             `db:"recruiter_id" json:"recruiter_id"`
	Title            kernel.PostingTitle       `db:"title" json:"title"`
	Description      kernel.PostingDescription `db:"description" json:"description"`
	Sector           kernel.Sector             `db:"sector" json:"sector"`
	PlannedStartDate time.Time                 `db:"planned_start_date" json:"planned_start_date"`
	PlannedEndDate   time.Time                 `db:"planned_end_date" json:"planned_end_date"`
	Status           PostingStatus             `db:"status" json:"status"`
	PublishedAt      *time.Time                `db:"published_at" json:"published_at,omitempty"`
	ClosedAt         *time.Time                `db:"closed_at" json:"closed_at,omitempty"`
	ArchivedAt       *time.Time                `db:"archived_at" json:"archived_at,omitempty"`
	CreatedAt        time.Time                 `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time                 `db:"updated_at" json:"updated_at"`
}

// ============================================================================
// Domain Methods
// ============================================================================

// IsPublished checks if the posting is currently published
func (p *Posting) IsPublished() bool {
	return p.Status == PostingStatusPublished
}

// IsArchived checks if the posting is archived
func (p *Posting) IsArchived() bool {
	return p.Status == PostingStatusArchived
}

// IsDraft checks if the posting is in draft status
func (p *Posting) IsDraft() bool {
	return p.Status == PostingStatusDraft
}

// CanReceiveCandidatures checks if candidates may still apply
func (p *Posting) CanReceiveCandidatures() bool {
	return p.IsPublished()
}

// CanBeEdited checks if the posting can be edited
func (p *Posting) CanBeEdited() bool {
	return !p.IsArchived()
}

// HasValidDates checks the planned period is coherent
func (p *Posting) HasValidDates() bool {
	return !p.PlannedStartDate.IsZero() &&
		!p.PlannedEndDate.IsZero() &&
		p.PlannedEndDate.After(p.PlannedStartDate)
}

// Publish opens the posting for candidatures
func (p *Posting) Publish() error {
	if p.Status != PostingStatusDraft {
		return ErrCannotPublish().WithDetail("current_status", p.Status)
	}
	if !p.HasValidDates() {
		return ErrInvalidDates().
			WithDetail("planned_start_date", p.PlannedStartDate).
			WithDetail("planned_end_date", p.PlannedEndDate)
	}

	now := time.Now()
	p.Status = PostingStatusPublished
	p.PublishedAt = &now
	p.UpdatedAt = now
	return nil
}

// Close stops the posting from accepting new candidatures
func (p *Posting) Close() error {
	if p.Status != PostingStatusPublished {
		return ErrCannotClose().WithDetail("current_status", p.Status)
	}

	now := time.Now()
	p.Status = PostingStatusClosed
	p.ClosedAt = &now
	p.UpdatedAt = now
	return nil
}

// Archive marks the posting as archived
func (p *Posting) Archive() error {
	if p.IsArchived() {
		return ErrAlreadyArchived()
	}

	now := time.Now()
	p.Status = PostingStatusArchived
	p.ArchivedAt = &now
	p.UpdatedAt = now
	return nil
}
