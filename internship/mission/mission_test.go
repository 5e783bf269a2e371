package mission

import (
	"testing"
	"time"

	"github.com/adilnv/internlink/pkg/kernel"
)

func newMission() *Mission {
	now := time.Now()
	return &Mission{
		ID:           kernel.MissionID("mission-1"),
		StageID:      kernel.StageID("stage-1"),
		SupervisorID: kernel.UserID("supervisor-1"),
		AssigneeID:   kernel.UserID("intern-1"),
		Title:        "Implement import pipeline",
		Priority:     MissionPriorityNormal,
		Status:       MissionStatusToDo,
		AssignedAt:   now,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func TestProgressAutoSubmitsAtHundred(t *testing.T) {
	m := newMission()
	if err := m.Begin(); err != nil {
		t.Fatalf("Begin: %v", err)
	}

	if err := m.UpdateProgress(60); err != nil {
		t.Fatalf("UpdateProgress(60): %v", err)
	}
	if m.Status != MissionStatusInProgress {
		t.Errorf("status = %s, want IN_PROGRESS", m.Status)
	}

	if err := m.UpdateProgress(100); err != nil {
		t.Fatalf("UpdateProgress(100): %v", err)
	}
	if m.Status != MissionStatusInReview {
		t.Errorf("status = %s, want IN_REVIEW after reaching 100", m.Status)
	}
}

func TestProgressOutOfRangeLeavesMissionUntouched(t *testing.T) {
	m := newMission()
	_ = m.Begin()
	_ = m.UpdateProgress(40)

	for _, percent := range []int{-5, 101, 150} {
		if err := m.UpdateProgress(percent); err == nil {
			t.Errorf("percent %d should be rejected", percent)
		}
	}
	if m.CompletionPercent != 40 || m.Status != MissionStatusInProgress {
		t.Errorf("failed update changed mission: percent=%d status=%s", m.CompletionPercent, m.Status)
	}
}

func TestRejectAppliesPenaltyWithFloor(t *testing.T) {
	m := newMission()
	_ = m.Begin()
	_ = m.UpdateProgress(100)

	if err := m.Reject(""); err == nil {
		t.Error("reject without feedback should fail")
	}

	if err := m.Reject("missing tests"); err != nil {
		t.Fatalf("Reject: %v", err)
	}
	if m.Status != MissionStatusInProgress {
		t.Errorf("status = %s, want IN_PROGRESS", m.Status)
	}
	if m.CompletionPercent != 80 {
		t.Errorf("completion = %d, want 80 after penalty", m.CompletionPercent)
	}

	// Down near zero the penalty floors instead of going negative
	_ = m.UpdateProgress(10)
	_ = m.UpdateProgress(100)
	if err := m.Reject("still missing tests"); err != nil {
		t.Fatalf("second Reject: %v", err)
	}
	if m.CompletionPercent != 80 {
		t.Errorf("completion = %d, want 80", m.CompletionPercent)
	}

	m.CompletionPercent = 10
	m.Status = MissionStatusInReview
	if err := m.Reject("incomplete"); err != nil {
		t.Fatalf("third Reject: %v", err)
	}
	if m.CompletionPercent != 0 {
		t.Errorf("completion = %d, want floor 0", m.CompletionPercent)
	}
}

func TestSubmitForcesFullCompletion(t *testing.T) {
	m := newMission()
	_ = m.Begin()
	_ = m.UpdateProgress(70)

	if err := m.Submit("repo link", "done early"); err != nil {
		t.Fatalf("Submit: %v", err)
	}
	if m.CompletionPercent != 100 {
		t.Errorf("completion = %d, want 100", m.CompletionPercent)
	}
	if m.Status != MissionStatusInReview {
		t.Errorf("status = %s, want IN_REVIEW", m.Status)
	}
	if m.DeliverablesProvided != "repo link" {
		t.Errorf("deliverables = %q", m.DeliverablesProvided)
	}
}

func TestApproveScoreBounds(t *testing.T) {
	m := newMission()
	_ = m.Begin()
	_ = m.Submit("", "")

	bad := 25.0
	if err := m.Approve(&bad, ""); err == nil {
		t.Error("score 25 should be rejected")
	}

	good := 18.0
	if err := m.Approve(&good, "well done"); err != nil {
		t.Fatalf("Approve: %v", err)
	}
	if m.Status != MissionStatusDone || m.Score == nil || *m.Score != 18 {
		t.Errorf("approve left status=%s score=%v", m.Status, m.Score)
	}
}

func TestCancelIsTerminalAndNeedsReason(t *testing.T) {
	m := newMission()
	if err := m.Cancel(""); err == nil {
		t.Error("cancel without reason should fail")
	}
	if err := m.Cancel("posting withdrawn"); err != nil {
		t.Fatalf("Cancel: %v", err)
	}
	if !m.IsTerminal() {
		t.Errorf("status = %s, want terminal", m.Status)
	}
	if err := m.UpdateProgress(50); err == nil {
		t.Error("progress on a cancelled mission should fail")
	}
	if err := m.Cancel("again"); err == nil {
		t.Error("cancelling twice should fail")
	}
}

func TestMissionDeletableOnlyOutsideActiveWork(t *testing.T) {
	m := newMission()
	if !m.CanBeDeleted() {
		t.Error("to_do mission should be deletable")
	}
	_ = m.Begin()
	if m.CanBeDeleted() {
		t.Error("in_progress mission should not be deletable")
	}
	_ = m.Submit("", "")
	if m.CanBeDeleted() {
		t.Error("in_review mission should not be deletable")
	}
}
