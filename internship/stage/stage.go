package stage

import (
	"time"

	"github.com/adilnv/internlink/pkg/kernel"
)

// StageStatus represents the status of an internship stage
type StageStatus string

const (
	StageStatusPending     StageStatus = "PENDING"     // Created, not started yet
	StageStatusActive      StageStatus = "ACTIVE"      // In progress
	StageStatusCompleted   StageStatus = "COMPLETED"   // Finished normally
	StageStatusInterrupted StageStatus = "INTERRUPTED" // Ended early
	StageStatusSuspended   StageStatus = "SUSPENDED"   // Paused, resumable
)

// Final scores are on a 0-20 scale
const (
	MinFinalScore = 0.0
	MaxFinalScore = 20.0
)

type Stage struct {
	ID                kernel.StageID            `db:"id" json:"id"`
	CandidatureID     kernel.CandidatureID      `db:"candidature_id" json:"candidature_id"`
	PostingID         kernel.PostingID          `db:"posting_id" json:"posting_id"`
	OrganizationID    kernel.OrganizationID     `db:"organization_id" json:"organization_id"`
	InternID          kernel.UserID             `db:"intern_id" json:"intern_id"`
	SupervisorID      kernel.UserID             `db:"supervisor_id" json:"supervisor_id"`
	Title             kernel.PostingTitle       `db:"title" json:"title"`
	Objective         kernel.PostingDescription `db:"objective" json:"objective"`
	PlannedStartDate  time.Time                 `db:"planned_start_date" json:"planned_start_date"`
	PlannedEndDate    time.Time                 `db:"planned_end_date" json:"planned_end_date"`
	ActualStart       *time.Time                `db:"actual_start" json:"actual_start,omitempty"`
	ActualEnd         *time.Time                `db:"actual_end" json:"actual_end,omitempty"`
	FinalScore        *float64                  `db:"final_score" json:"final_score,omitempty"`
	Notes             string                    `db:"notes" json:"notes"`
	Status            StageStatus               `db:"status" json:"status"`
	CertificateIssued bool                      `db:"certificate_issued" json:"certificate_issued"`
	CreatedAt         time.Time                 `db:"created_at" json:"created_at"`
	UpdatedAt         time.Time                 `db:"updated_at" json:"updated_at"`
}

// ============================================================================
// Domain Methods
// ============================================================================

// IsPending checks if the stage has not started
func (s *Stage) IsPending() bool {
	return s.Status == StageStatusPending
}

// IsActive checks if the stage is running
func (s *Stage) IsActive() bool {
	return s.Status == StageStatusActive
}

// IsCompleted checks if the stage finished normally
func (s *Stage) IsCompleted() bool {
	return s.Status == StageStatusCompleted
}

// IsTerminal checks if the stage reached an end state
func (s *Stage) IsTerminal() bool {
	return s.Status == StageStatusCompleted || s.Status == StageStatusInterrupted
}

// CanBeDeleted checks deletion is still allowed; once a stage has begun
// it is part of the historical record.
func (s *Stage) CanBeDeleted() bool {
	return s.IsPending()
}

// Begin starts the stage and records the actual start
func (s *Stage) Begin() error {
	if s.Status != StageStatusPending {
		return ErrInvalidStatusTransition().
			WithDetail("current_status", s.Status).
			WithDetail("action", "begin")
	}

	now := time.Now()
	s.Status = StageStatusActive
	s.ActualStart = &now
	s.UpdatedAt = now
	return nil
}

// Complete concludes the stage normally; this is the sole path that
// makes the stage evaluable.
func (s *Stage) Complete(finalScore *float64, notes string) error {
	if s.Status != StageStatusActive {
		return ErrInvalidStatusTransition().
			WithDetail("current_status", s.Status).
			WithDetail("action", "complete")
	}

	if finalScore != nil && (*finalScore < MinFinalScore || *finalScore > MaxFinalScore) {
		return ErrInvalidFinalScore().WithDetail("final_score", *finalScore)
	}

	now := time.Now()
	s.Status = StageStatusCompleted
	s.ActualEnd = &now
	s.FinalScore = finalScore
	if notes != "" {
		s.Notes = notes
	}
	s.UpdatedAt = now
	return nil
}

// Interrupt ends the stage early. Terminal: interrupted stages are not
// evaluable afterward.
func (s *Stage) Interrupt(notes string) error {
	if s.Status != StageStatusActive {
		return ErrInvalidStatusTransition().
			WithDetail("current_status", s.Status).
			WithDetail("action", "interrupt")
	}

	now := time.Now()
	s.Status = StageStatusInterrupted
	s.ActualEnd = &now
	if notes != "" {
		s.Notes = notes
	}
	s.UpdatedAt = now
	return nil
}

// Suspend pauses an active stage
func (s *Stage) Suspend(notes string) error {
	if s.Status != StageStatusActive {
		return ErrInvalidStatusTransition().
			WithDetail("current_status", s.Status).
			WithDetail("action", "suspend")
	}

	s.Status = StageStatusSuspended
	if notes != "" {
		s.Notes = notes
	}
	s.UpdatedAt = time.Now()
	return nil
}

// Resume reactivates a suspended stage without touching the actual start
func (s *Stage) Resume() error {
	if s.Status != StageStatusSuspended {
		return ErrInvalidStatusTransition().
			WithDetail("current_status", s.Status).
			WithDetail("action", "resume")
	}

	s.Status = StageStatusActive
	s.UpdatedAt = time.Now()
	return nil
}

// MarkCertificateIssued flags the stage once its certificate exists
func (s *Stage) MarkCertificateIssued() {
	s.CertificateIssued = true
	s.UpdatedAt = time.Now()
}
