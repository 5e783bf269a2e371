package mission

import (
	"time"

	"github.com/adilnv/internlink/pkg/kernel"
)

// MissionStatus represents the status of a mission
type MissionStatus string

const (
	MissionStatusToDo       MissionStatus = "TO_DO"       // Assigned, not started
	MissionStatusInProgress MissionStatus = "IN_PROGRESS" // Being worked on
	MissionStatusInReview   MissionStatus = "IN_REVIEW"   // Submitted, awaiting approval
	MissionStatusDone       MissionStatus = "DONE"        // Approved
	MissionStatusCancelled  MissionStatus = "CANCELLED"   // Cancelled
)

// MissionPriority represents the urgency of a mission
type MissionPriority string

const (
	MissionPriorityLow    MissionPriority = "LOW"
	MissionPriorityNormal MissionPriority = "NORMAL"
	MissionPriorityHigh   MissionPriority = "HIGH"
	MissionPriorityUrgent MissionPriority = "URGENT"
)

// RejectionPenalty is subtracted from the completion percentage when a
// submitted mission is sent back, floored at 0.
const RejectionPenalty = 20

// Mission scores are on a 0-20 scale
const (
	MinScore = 0.0
	MaxScore = 20.0
)

type Mission struct {
	ID                   kernel.MissionID `db:"id" json:"id"`
	StageID              kernel.StageID   `db:"stage_id" json:"stage_id"`
	SupervisorID         kernel.UserID    `db:"supervisor_id" json:"supervisor_id"`
	AssigneeID           kernel.UserID    `db:"assignee_id" json:"assignee_id"`
	Title                string           `db:"title" json:"title"`
	Description          string           `db:"description" json:"description"`
	Priority             MissionPriority  `db:"priority" json:"priority"`
	Status               MissionStatus    `db:"status" json:"status"`
	CompletionPercent    int              `db:"completion_percent" json:"completion_percent"`
	DeliverablesExpected string           `db:"deliverables_expected" json:"deliverables_expected"`
	DeliverablesProvided string           `db:"deliverables_provided" json:"deliverables_provided"`
	ToolsUsed            string           `db:"tools_used" json:"tools_used"`
	Feedback             string           `db:"feedback" json:"feedback"`
	CancelReason         string           `db:"cancel_reason" json:"cancel_reason"`
	Score                *float64         `db:"score" json:"score,omitempty"`
	AssignedAt           time.Time        `db:"assigned_at" json:"assigned_at"`
	PlannedStart         *time.Time       `db:"planned_start" json:"planned_start,omitempty"`
	PlannedEnd           *time.Time       `db:"planned_end" json:"planned_end,omitempty"`
	ActualStart          *time.Time       `db:"actual_start" json:"actual_start,omitempty"`
	ActualEnd            *time.Time       `db:"actual_end" json:"actual_end,omitempty"`
	CreatedAt            time.Time        `db:"created_at" json:"created_at"`
	UpdatedAt            time.Time        `db:"updated_at" json:"updated_at"`
}

// ============================================================================
// Domain Methods
// ============================================================================

// IsTerminal checks if the mission reached an end state
func (m *Mission) IsTerminal() bool {
	return m.Status == MissionStatusDone || m.Status == MissionStatusCancelled
}

// CanBeDeleted checks deletion is still allowed
func (m *Mission) CanBeDeleted() bool {
	return m.Status != MissionStatusInProgress && m.Status != MissionStatusInReview
}

// Begin starts the mission
func (m *Mission) Begin() error {
	if m.Status != MissionStatusToDo {
		return ErrInvalidStatusTransition().
			WithDetail("current_status", m.Status).
			WithDetail("action", "begin")
	}

	now := time.Now()
	m.Status = MissionStatusInProgress
	m.ActualStart = &now
	m.UpdatedAt = now
	return nil
}

// Submit hands the mission over for review and forces completion to 100
func (m *Mission) Submit(deliverables, feedback string) error {
	if m.Status != MissionStatusInProgress {
		return ErrInvalidStatusTransition().
			WithDetail("current_status", m.Status).
			WithDetail("action", "submit")
	}

	m.Status = MissionStatusInReview
	m.CompletionPercent = 100
	if deliverables != "" {
		m.DeliverablesProvided = deliverables
	}
	if feedback != "" {
		m.Feedback = feedback
	}
	m.UpdatedAt = time.Now()
	return nil
}

// Approve accepts the submitted work
func (m *Mission) Approve(score *float64, feedback string) error {
	if m.Status != MissionStatusInReview {
		return ErrInvalidStatusTransition().
			WithDetail("current_status", m.Status).
			WithDetail("action", "approve")
	}

	if score != nil && (*score < MinScore || *score > MaxScore) {
		return ErrInvalidScore().WithDetail("score", *score)
	}

	now := time.Now()
	m.Status = MissionStatusDone
	m.Score = score
	if feedback != "" {
		m.Feedback = feedback
	}
	m.ActualEnd = &now
	m.UpdatedAt = now
	return nil
}

// Reject sends the submitted work back with a completion penalty
func (m *Mission) Reject(feedback string) error {
	if m.Status != MissionStatusInReview {
		return ErrInvalidStatusTransition().
			WithDetail("current_status", m.Status).
			WithDetail("action", "reject")
	}
	if feedback == "" {
		return ErrFeedbackRequired()
	}

	m.Status = MissionStatusInProgress
	m.CompletionPercent -= RejectionPenalty
	if m.CompletionPercent < 0 {
		m.CompletionPercent = 0
	}
	m.Feedback = feedback
	m.UpdatedAt = time.Now()
	return nil
}

// Cancel terminates the mission from any non-terminal state
func (m *Mission) Cancel(reason string) error {
	if m.IsTerminal() {
		return ErrInvalidStatusTransition().
			WithDetail("current_status", m.Status).
			WithDetail("action", "cancel")
	}
	if reason == "" {
		return ErrReasonRequired()
	}

	now := time.Now()
	m.Status = MissionStatusCancelled
	m.CancelReason = reason
	m.ActualEnd = &now
	m.UpdatedAt = now
	return nil
}

// UpdateProgress sets the completion percentage; reaching 100 while in
// progress submits the mission for review automatically.
func (m *Mission) UpdateProgress(percent int) error {
	if percent < 0 || percent > 100 {
		return ErrInvalidProgress().WithDetail("percent", percent)
	}
	if m.IsTerminal() {
		return ErrInvalidStatusTransition().
			WithDetail("current_status", m.Status).
			WithDetail("action", "update_progress")
	}

	m.CompletionPercent = percent
	if percent == 100 && m.Status == MissionStatusInProgress {
		m.Status = MissionStatusInReview
	}
	m.UpdatedAt = time.Now()
	return nil
}
