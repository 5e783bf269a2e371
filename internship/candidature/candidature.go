package candidature

import (
	"time"

	"slices"

	"github.com/adilnv/internlink/internship/posting"
	"github.com/adilnv/internlink/internship/stage"
	"github.com/adilnv/internlink/pkg/kernel"
	"github.com/google/uuid"
)

// CandidatureStatus represents the status of a candidature
type CandidatureStatus string

const (
	CandidatureStatusPending   CandidatureStatus = "PENDING"   // Submitted, awaiting review
	CandidatureStatusInReview  CandidatureStatus = "IN_REVIEW" // Being reviewed
	CandidatureStatusAccepted  CandidatureStatus = "ACCEPTED"  // Accepted, stage created
	CandidatureStatusRefused   CandidatureStatus = "REFUSED"   // Refused by the reviewer
	CandidatureStatusWithdrawn CandidatureStatus = "WITHDRAWN" // Withdrawn by the intern
)

// Reviewer ratings are on a 1-10 scale
const (
	MinRating = 1
	MaxRating = 10
)

type Candidature struct {
	ID            kernel.CandidatureID `db:"id" json:"id"`
	PostingID     kernel.PostingID     `db:"posting_id" json:"posting_id"`
	InternID      kernel.UserID        `db:"intern_id" json:"intern_id"`
	Status        CandidatureStatus    `db:"status" json:"status"`
	InternNotes   string               `db:"intern_notes" json:"intern_notes"`
	ReviewerNotes string               `db:"reviewer_notes" json:"reviewer_notes"`
	ReviewerID    *kernel.UserID       `db:"reviewer_id" json:"reviewer_id,omitempty"`
	Rating        *int                 `db:"rating" json:"rating,omitempty"`
	CVBucketURL   kernel.BucketURL     `db:"cv_bucket_url" json:"cv_bucket_url"`
	SubmittedAt   time.Time            `db:"submitted_at" json:"submitted_at"`
	ClosedAt      *time.Time           `db:"closed_at" json:"closed_at,omitempty"`
	CreatedAt     time.Time            `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time            `db:"updated_at" json:"updated_at"`
}

// ============================================================================
// Domain Methods
// ============================================================================

// IsTerminal checks if the candidature reached an end state
func (c *Candidature) IsTerminal() bool {
	return c.Status == CandidatureStatusAccepted ||
		c.Status == CandidatureStatusRefused ||
		c.Status == CandidatureStatusWithdrawn
}

// IsOpen checks if the candidature still counts against the
// one-open-candidature-per-posting rule
func (c *Candidature) IsOpen() bool {
	return c.Status != CandidatureStatusWithdrawn
}

// CanTransitionTo checks the transition map; transitions are
// one-directional, a candidature never returns to pending.
func (c *Candidature) CanTransitionTo(newStatus CandidatureStatus) bool {
	validTransitions := map[CandidatureStatus][]CandidatureStatus{
		CandidatureStatusPending: {
			CandidatureStatusInReview,
			CandidatureStatusAccepted,
			CandidatureStatusRefused,
			CandidatureStatusWithdrawn,
		},
		CandidatureStatusInReview: {
			CandidatureStatusAccepted,
			CandidatureStatusRefused,
			CandidatureStatusWithdrawn,
		},
	}

	allowed, ok := validTransitions[c.Status]
	if !ok {
		return false
	}
	return slices.Contains(allowed, newStatus)
}

// MarkInReview moves a pending candidature into review
func (c *Candidature) MarkInReview(reviewerID kernel.UserID, notes string) error {
	if c.Status != CandidatureStatusPending {
		return ErrInvalidStatusTransition().
			WithDetail("current_status", c.Status).
			WithDetail("new_status", CandidatureStatusInReview)
	}

	c.Status = CandidatureStatusInReview
	c.ReviewerID = &reviewerID
	if notes != "" {
		c.ReviewerNotes = notes
	}
	c.UpdatedAt = time.Now()
	return nil
}

// Accept closes the candidature positively and constructs the Stage
// seeded from the posting. The returned Stage is NOT persisted; the
// caller must save it in the same transaction as the candidature.
func (c *Candidature) Accept(reviewerID kernel.UserID, notes string, p *posting.Posting) (*stage.Stage, error) {
	if !c.CanTransitionTo(CandidatureStatusAccepted) {
		return nil, ErrInvalidStatusTransition().
			WithDetail("current_status", c.Status).
			WithDetail("new_status", CandidatureStatusAccepted)
	}

	now := time.Now()
	c.Status = CandidatureStatusAccepted
	c.ReviewerID = &reviewerID
	if notes != "" {
		c.ReviewerNotes = notes
	}
	c.ClosedAt = &now
	c.UpdatedAt = now

	newStage := &stage.Stage{
		ID:               kernel.NewStageID(uuid.NewString()),
		CandidatureID:    c.ID,
		PostingID:        p.ID,
		OrganizationID:   p.OrganizationID,
		InternID:         c.InternID,
		SupervisorID:     reviewerID,
		Title:            p.Title,
		Objective:        p.Description,
		PlannedStartDate: p.PlannedStartDate,
		PlannedEndDate:   p.PlannedEndDate,
		Status:           stage.StageStatusPending,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	return newStage, nil
}

// Refuse closes the candidature negatively
func (c *Candidature) Refuse(reviewerID kernel.UserID, notes string) error {
	if !c.CanTransitionTo(CandidatureStatusRefused) {
		return ErrInvalidStatusTransition().
			WithDetail("current_status", c.Status).
			WithDetail("new_status", CandidatureStatusRefused)
	}

	now := time.Now()
	c.Status = CandidatureStatusRefused
	c.ReviewerID = &reviewerID
	if notes != "" {
		c.ReviewerNotes = notes
	}
	c.ClosedAt = &now
	c.UpdatedAt = now
	return nil
}

// Withdraw closes the candidature at the intern's request
func (c *Candidature) Withdraw() error {
	if c.IsTerminal() {
		return ErrCannotWithdraw().WithDetail("current_status", c.Status)
	}

	now := time.Now()
	c.Status = CandidatureStatusWithdrawn
	c.ClosedAt = &now
	c.UpdatedAt = now
	return nil
}

// Rate records the reviewer's 1-10 rating
func (c *Candidature) Rate(reviewerID kernel.UserID, rating int) error {
	if rating < MinRating || rating > MaxRating {
		return ErrInvalidRating().WithDetail("rating", rating)
	}
	if c.Status == CandidatureStatusWithdrawn {
		return ErrInvalidStatusTransition().
			WithDetail("current_status", c.Status).
			WithDetail("action", "rate")
	}

	c.Rating = &rating
	c.ReviewerID = &reviewerID
	c.UpdatedAt = time.Now()
	return nil
}
