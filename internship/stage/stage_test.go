package stage

import (
	"testing"
	"time"

	"github.com/adilnv/internlink/pkg/kernel"
)

func newPendingStage() *Stage {
	now := time.Now()
	return &Stage{
		ID:               kernel.StageID("stage-1"),
		CandidatureID:    kernel.CandidatureID("cand-1"),
		PostingID:        kernel.PostingID("post-1"),
		OrganizationID:   kernel.OrganizationID("org-1"),
		InternID:         kernel.UserID("intern-1"),
		SupervisorID:     kernel.UserID("supervisor-1"),
		Title:            "Backend internship",
		Status:           StageStatusPending,
		PlannedStartDate: now,
		PlannedEndDate:   now.AddDate(0, 6, 0),
		CreatedAt:        now,
		UpdatedAt:        now,
	}
}

func TestStageLifecycle(t *testing.T) {
	s := newPendingStage()

	if err := s.Begin(); err != nil {
		t.Fatalf("Begin: %v", err)
	}
	if !s.IsActive() || s.ActualStart == nil {
		t.Fatalf("begin left status=%s actualStart=%v", s.Status, s.ActualStart)
	}

	if err := s.Suspend("visa issue"); err != nil {
		t.Fatalf("Suspend: %v", err)
	}
	if s.Status != StageStatusSuspended {
		t.Errorf("status = %s, want SUSPENDED", s.Status)
	}
	if err := s.Complete(nil, ""); err == nil {
		t.Error("completing a suspended stage should fail")
	}

	if err := s.Resume(); err != nil {
		t.Fatalf("Resume: %v", err)
	}

	score := 16.5
	if err := s.Complete(&score, "solid work"); err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if !s.IsCompleted() || s.ActualEnd == nil {
		t.Errorf("complete left status=%s actualEnd=%v", s.Status, s.ActualEnd)
	}
	if s.FinalScore == nil || *s.FinalScore != 16.5 {
		t.Errorf("final score = %v, want 16.5", s.FinalScore)
	}
}

func TestStageBeginOnlyFromPending(t *testing.T) {
	s := newPendingStage()
	_ = s.Begin()
	if err := s.Begin(); err == nil {
		t.Error("beginning an active stage should fail")
	}
}

func TestStageCompleteRejectsOutOfRangeScore(t *testing.T) {
	for _, score := range []float64{-1, 20.5} {
		s := newPendingStage()
		_ = s.Begin()
		if err := s.Complete(&score, ""); err == nil {
			t.Errorf("score %v should be rejected", score)
		}
		if !s.IsActive() {
			t.Errorf("failed completion changed status to %s", s.Status)
		}
	}
}

func TestStageInterruptIsTerminal(t *testing.T) {
	s := newPendingStage()
	_ = s.Begin()
	if err := s.Interrupt("dropped out"); err != nil {
		t.Fatalf("Interrupt: %v", err)
	}
	if !s.IsTerminal() {
		t.Errorf("status = %s, want terminal", s.Status)
	}
	if err := s.Resume(); err == nil {
		t.Error("resuming an interrupted stage should fail")
	}
}

func TestStageDeletableOnlyWhilePending(t *testing.T) {
	s := newPendingStage()
	if !s.CanBeDeleted() {
		t.Error("pending stage should be deletable")
	}
	_ = s.Begin()
	if s.CanBeDeleted() {
		t.Error("active stage should not be deletable")
	}
}
