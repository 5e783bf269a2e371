package posting

import "time"

// CreatePostingRequest is the payload to create a posting
type CreatePostingRequest struct {
	OrganizationID   string    `json:"organization_id"`
	Title            string    `json:"title"`
	Description      string    `json:"description"`
	Sector           string    `json:"sector"`
	PlannedStartDate time.Time `json:"planned_start_date"`
	PlannedEndDate   time.Time `json:"planned_end_date"`
}

// UpdatePostingRequest is the payload to edit a draft or published posting
type UpdatePostingRequest struct {
	Title            *string    `json:"title,omitempty"`
	Description      *string    `json:"description,omitempty"`
	Sector           *string    `json:"sector,omitempty"`
	PlannedStartDate *time.Time `json:"planned_start_date,omitempty"`
	PlannedEndDate   *time.Time `json:"planned_end_date,omitempty"`
}
