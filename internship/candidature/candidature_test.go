package candidature

import (
	"testing"
	"time"

	"github.com/adilnv/internlink/internship/posting"
	"github.com/adilnv/internlink/internship/stage"
	"github.com/adilnv/internlink/pkg/kernel"
)

func newPendingCandidature() *Candidature {
	now := time.Now()
	return &Candidature{
		ID:          kernel.CandidatureID("cand-1"),
		PostingID:   kernel.PostingID("post-1"),
		InternID:    kernel.UserID("intern-1"),
		Status:      CandidatureStatusPending,
		SubmittedAt: now,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

func newPublishedPosting() *posting.Posting {
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)
	return &posting.Posting{
		ID:               kernel.PostingID("post-1"),
		OrganizationID:   kernel.OrganizationID("org-1"),
		RecruiterID:      kernel.UserID("recruiter-1"),
		Title:            "Backend internship",
		Description:      "Build services",
		Status:           posting.PostingStatusPublished,
		PlannedStartDate: start,
		PlannedEndDate:   end,
	}
}

func TestCandidatureTransitions(t *testing.T) {
	cases := []struct {
		from    CandidatureStatus
		to      CandidatureStatus
		allowed bool
	}{
		{CandidatureStatusPending, CandidatureStatusInReview, true},
		{CandidatureStatusPending, CandidatureStatusAccepted, true},
		{CandidatureStatusPending, CandidatureStatusRefused, true},
		{CandidatureStatusPending, CandidatureStatusWithdrawn, true},
		{CandidatureStatusInReview, CandidatureStatusAccepted, true},
		{CandidatureStatusInReview, CandidatureStatusRefused, true},
		{CandidatureStatusInReview, CandidatureStatusWithdrawn, true},
		{CandidatureStatusInReview, CandidatureStatusPending, false},
		{CandidatureStatusAccepted, CandidatureStatusRefused, false},
		{CandidatureStatusRefused, CandidatureStatusAccepted, false},
		{CandidatureStatusWithdrawn, CandidatureStatusPending, false},
	}

	for _, tc := range cases {
		c := newPendingCandidature()
		c.Status = tc.from
		if got := c.CanTransitionTo(tc.to); got != tc.allowed {
			t.Errorf("%s -> %s: got %v, want %v", tc.from, tc.to, got, tc.allowed)
		}
	}
}

func TestAcceptBuildsStageFromPosting(t *testing.T) {
	c := newPendingCandidature()
	p := newPublishedPosting()
	reviewer := kernel.UserID("recruiter-1")

	st, err := c.Accept(reviewer, "welcome aboard", p)
	if err != nil {
		t.Fatalf("Accept: %v", err)
	}

	if c.Status != CandidatureStatusAccepted {
		t.Errorf("status = %s, want ACCEPTED", c.Status)
	}
	if c.ClosedAt == nil {
		t.Error("ClosedAt not set")
	}
	if st.Status != stage.StageStatusPending {
		t.Errorf("stage status = %s, want PENDING", st.Status)
	}
	if st.CandidatureID != c.ID {
		t.Errorf("stage candidature = %s, want %s", st.CandidatureID, c.ID)
	}
	if st.InternID != c.InternID {
		t.Errorf("stage intern = %s, want %s", st.InternID, c.InternID)
	}
	if st.SupervisorID != reviewer {
		t.Errorf("stage supervisor = %s, want %s", st.SupervisorID, reviewer)
	}
	if !st.PlannedStartDate.Equal(p.PlannedStartDate) || !st.PlannedEndDate.Equal(p.PlannedEndDate) {
		t.Errorf("stage dates = %v..%v, want posting dates %v..%v",
			st.PlannedStartDate, st.PlannedEndDate, p.PlannedStartDate, p.PlannedEndDate)
	}
	if st.Title != p.Title {
		t.Errorf("stage title = %q, want %q", st.Title, p.Title)
	}
}

func TestAcceptFromTerminalStateFails(t *testing.T) {
	c := newPendingCandidature()
	if err := c.Withdraw(); err != nil {
		t.Fatalf("Withdraw: %v", err)
	}

	if _, err := c.Accept(kernel.UserID("recruiter-1"), "", newPublishedPosting()); err == nil {
		t.Error("accepting a withdrawn candidature should fail")
	}
}

func TestWithdrawOnlyWhileOpen(t *testing.T) {
	c := newPendingCandidature()
	if err := c.Withdraw(); err != nil {
		t.Fatalf("withdraw pending: %v", err)
	}
	if c.Status != CandidatureStatusWithdrawn || c.ClosedAt == nil {
		t.Errorf("withdraw left status=%s closedAt=%v", c.Status, c.ClosedAt)
	}

	refused := newPendingCandidature()
	if err := refused.Refuse(kernel.UserID("recruiter-1"), "no fit"); err != nil {
		t.Fatalf("Refuse: %v", err)
	}
	if err := refused.Withdraw(); err == nil {
		t.Error("withdrawing a refused candidature should fail")
	}
}

func TestRateBounds(t *testing.T) {
	reviewer := kernel.UserID("recruiter-1")

	c := newPendingCandidature()
	if err := c.Rate(reviewer, 0); err == nil {
		t.Error("rating 0 should fail")
	}
	if err := c.Rate(reviewer, 11); err == nil {
		t.Error("rating 11 should fail")
	}
	if err := c.Rate(reviewer, 7); err != nil {
		t.Errorf("rating 7: %v", err)
	}
	if c.Rating == nil || *c.Rating != 7 {
		t.Errorf("stored rating = %v, want 7", c.Rating)
	}

	withdrawn := newPendingCandidature()
	_ = withdrawn.Withdraw()
	if err := withdrawn.Rate(reviewer, 5); err == nil {
		t.Error("rating a withdrawn candidature should fail")
	}
}
