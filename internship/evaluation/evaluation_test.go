package evaluation

import (
	"testing"
	"time"

	"github.com/adilnv/internlink/pkg/kernel"
)

func newDraft(ratings []Rating, weights map[kernel.CriterionID]float64) *Evaluation {
	now := time.Now()
	e := &Evaluation{
		ID:          kernel.EvaluationID("eval-1"),
		StageID:     kernel.StageID("stage-1"),
		EvaluatorID: kernel.UserID("supervisor-1"),
		Status:      EvaluationStatusDraft,
		EvaluatedAt: now,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	for i := range ratings {
		ratings[i].EvaluationID = e.ID
	}
	e.Ratings = ratings
	e.AggregateScore = ComputeAggregate(ratings, weights)
	return e
}

func TestComputeAggregateWeightedMean(t *testing.T) {
	weights := map[kernel.CriterionID]float64{
		"technical":   2,
		"punctuality": 1,
	}
	ratings := []Rating{
		{CriterionID: "technical", Rating: 8},
		{CriterionID: "punctuality", Rating: 6},
	}

	got := ComputeAggregate(ratings, weights)
	if got == nil {
		t.Fatal("aggregate is nil")
	}
	if *got != 7.33 {
		t.Errorf("aggregate = %v, want 7.33", *got)
	}
}

func TestComputeAggregateIsIdempotent(t *testing.T) {
	weights := map[kernel.CriterionID]float64{"technical": 2, "punctuality": 1}
	ratings := []Rating{
		{CriterionID: "technical", Rating: 8},
		{CriterionID: "punctuality", Rating: 6},
	}

	first := ComputeAggregate(ratings, weights)
	second := ComputeAggregate(ratings, weights)
	if *first != *second {
		t.Errorf("repeated computation drifted: %v then %v", *first, *second)
	}

	// Deactivating a criterion between two calls changes the result
	// without any rating being edited
	delete(weights, "punctuality")
	third := ComputeAggregate(ratings, weights)
	if third == nil || *third != 8 {
		t.Errorf("aggregate after deactivation = %v, want 8", third)
	}
}

func TestComputeAggregateNilWithoutActiveCriteria(t *testing.T) {
	ratings := []Rating{{CriterionID: "technical", Rating: 8}}

	if got := ComputeAggregate(ratings, map[kernel.CriterionID]float64{}); got != nil {
		t.Errorf("aggregate = %v, want nil with no active criteria", *got)
	}
	if got := ComputeAggregate(nil, map[kernel.CriterionID]float64{"technical": 2}); got != nil {
		t.Errorf("aggregate = %v, want nil with no ratings", *got)
	}
}

func TestValidateRatings(t *testing.T) {
	if err := ValidateRatings(nil); err == nil {
		t.Error("empty set should fail")
	}

	dup := []Rating{
		{CriterionID: "technical", Rating: 8},
		{CriterionID: "technical", Rating: 6},
	}
	if err := ValidateRatings(dup); err == nil {
		t.Error("duplicate criterion should fail")
	}

	for _, bad := range []int{0, 11} {
		if err := ValidateRatings([]Rating{{CriterionID: "technical", Rating: bad}}); err == nil {
			t.Errorf("rating %d should fail", bad)
		}
	}

	ok := []Rating{
		{CriterionID: "technical", Rating: 10},
		{CriterionID: "punctuality", Rating: 1},
	}
	if err := ValidateRatings(ok); err != nil {
		t.Errorf("valid set rejected: %v", err)
	}
}

func TestEvaluationForwardOnlyTransitions(t *testing.T) {
	weights := map[kernel.CriterionID]float64{"technical": 2}
	e := newDraft([]Rating{{CriterionID: "technical", Rating: 8}}, weights)

	if e.CanTransitionTo(EvaluationStatusValidated) {
		t.Error("draft must not skip straight to validated")
	}
	if err := e.Validate(kernel.UserID("hr-1")); err == nil {
		t.Error("validating a draft should fail")
	}

	if err := e.Finalize(); err != nil {
		t.Fatalf("Finalize: %v", err)
	}
	if err := e.Finalize(); err == nil {
		t.Error("finalizing twice should fail")
	}

	if err := e.Validate(kernel.UserID("hr-1")); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if e.ValidatedAt == nil || e.ValidatorID == nil {
		t.Error("validation metadata not set")
	}
	if err := e.Validate(kernel.UserID("hr-2")); err == nil {
		t.Error("validated evaluation must be immutable")
	}
	if err := e.ReplaceRatings([]Rating{{CriterionID: "technical", Rating: 5}}); err == nil {
		t.Error("rating edit on a validated evaluation should fail")
	}
}

func TestFinalizeRequiresRatingsAndAggregate(t *testing.T) {
	e := newDraft(nil, map[kernel.CriterionID]float64{})
	if err := e.Finalize(); err == nil {
		t.Error("finalizing without ratings should fail")
	}

	// Ratings exist but every criterion is inactive
	e = newDraft([]Rating{{CriterionID: "legacy", Rating: 9}}, map[kernel.CriterionID]float64{})
	if err := e.Finalize(); err == nil {
		t.Error("finalizing with a nil aggregate should fail")
	}
}

func TestValidateRejectsAuthor(t *testing.T) {
	weights := map[kernel.CriterionID]float64{"technical": 1}
	e := newDraft([]Rating{{CriterionID: "technical", Rating: 7}}, weights)
	if err := e.Finalize(); err != nil {
		t.Fatalf("Finalize: %v", err)
	}

	if err := e.Validate(e.EvaluatorID); err == nil {
		t.Error("author must not validate their own evaluation")
	}
}

func TestReplaceRatingsOnlyInDraft(t *testing.T) {
	weights := map[kernel.CriterionID]float64{"technical": 2, "autonomy": 1}
	e := newDraft([]Rating{{CriterionID: "technical", Rating: 6}}, weights)

	if err := e.ReplaceRatings([]Rating{
		{CriterionID: "technical", Rating: 9},
		{CriterionID: "autonomy", Rating: 6},
	}); err != nil {
		t.Fatalf("ReplaceRatings: %v", err)
	}
	if len(e.Ratings) != 2 {
		t.Errorf("ratings = %d, want 2", len(e.Ratings))
	}
	if e.AggregateScore != nil {
		t.Error("replacement must reset the aggregate for recomputation")
	}
	for _, r := range e.Ratings {
		if r.EvaluationID != e.ID {
			t.Errorf("rating not bound to evaluation: %q", r.EvaluationID)
		}
	}

	e.AggregateScore = ComputeAggregate(e.Ratings, weights)
	if err := e.Finalize(); err != nil {
		t.Fatalf("Finalize: %v", err)
	}
	if err := e.ReplaceRatings([]Rating{{CriterionID: "technical", Rating: 2}}); err == nil {
		t.Error("replacing ratings after draft should fail")
	}
}
