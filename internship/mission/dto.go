package mission

import "time"

// CreateMissionRequest is the payload to assign a mission
type CreateMissionRequest struct {
	StageID              string     `json:"stage_id"`
	Title                string     `json:"title"`
	Description          string     `json:"description"`
	Priority             string     `json:"priority,omitempty"`
	DeliverablesExpected string     `json:"deliverables_expected,omitempty"`
	PlannedStart         *time.Time `json:"planned_start,omitempty"`
	PlannedEnd           *time.Time `json:"planned_end,omitempty"`
}

// UpdateMissionRequest patches mission fields; the service restricts
// which fields the assignee may touch.
type UpdateMissionRequest struct {
	Title                *string          `json:"title,omitempty"`
	Description          *string          `json:"description,omitempty"`
	Priority             *MissionPriority `json:"priority,omitempty"`
	DeliverablesExpected *string          `json:"deliverables_expected,omitempty"`
	DeliverablesProvided *string          `json:"deliverables_provided,omitempty"`
	ToolsUsed            *string          `json:"tools_used,omitempty"`
	Feedback             *string          `json:"feedback,omitempty"`
	PlannedStart         *time.Time       `json:"planned_start,omitempty"`
	PlannedEnd           *time.Time       `json:"planned_end,omitempty"`
}

// SubmitMissionRequest hands work over for review
type SubmitMissionRequest struct {
	Deliverables string `json:"deliverables,omitempty"`
	Feedback     string `json:"feedback,omitempty"`
}

// ApproveMissionRequest accepts submitted work
type ApproveMissionRequest struct {
	Score    *float64 `json:"score,omitempty"`
	Feedback string   `json:"feedback,omitempty"`
}

// RejectMissionRequest sends submitted work back
type RejectMissionRequest struct {
	Feedback string `json:"feedback"`
}

// CancelMissionRequest terminates a mission
type CancelMissionRequest struct {
	Reason string `json:"reason"`
}

// ProgressRequest updates the completion percentage
type ProgressRequest struct {
	Percent int `json:"percent"`
}
