package evaluation

import (
	"math"
	"slices"
	"time"

	"github.com/adilnv/internlink/pkg/kernel"
)

// EvaluationStatus represents the status of an evaluation
type EvaluationStatus string

const (
	EvaluationStatusDraft     EvaluationStatus = "DRAFT"     // Editable by its author
	EvaluationStatusCompleted EvaluationStatus = "COMPLETED" // Frozen, awaiting validation
	EvaluationStatusValidated EvaluationStatus = "VALIDATED" // Countersigned, immutable
)

// Per-criterion ratings are on a 1-10 scale
const (
	MinRating = 1
	MaxRating = 10
)

// Rating is one per-criterion score within an evaluation
type Rating struct {
	EvaluationID kernel.EvaluationID `db:"evaluation_id" json:"-"`
	CriterionID  kernel.CriterionID  `db:"criterion_id" json:"criterion_id"`
	Rating       int                 `db:"rating" json:"rating"`
	Comment      string              `db:"comment" json:"comment,omitempty"`
}

// Evaluation is the single assessment of one concluded stage
type Evaluation struct {
	ID              kernel.EvaluationID `db:"id" json:"id"`
	StageID         kernel.StageID      `db:"stage_id" json:"stage_id"`
	EvaluatorID     kernel.UserID       `db:"evaluator_id" json:"evaluator_id"`
	Status          EvaluationStatus    `db:"status" json:"status"`
	Strengths       string              `db:"strengths" json:"strengths"`
	Weaknesses      string              `db:"weaknesses" json:"weaknesses"`
	Recommendations string              `db:"recommendations" json:"recommendations"`
	RecommendHire   bool                `db:"recommend_hire" json:"recommend_hire"`
	AggregateScore  *float64            `db:"aggregate_score" json:"aggregate_score,omitempty"`
	EvaluatedAt     time.Time           `db:"evaluated_at" json:"evaluated_at"`
	ValidatedAt     *time.Time          `db:"validated_at" json:"validated_at,omitempty"`
	ValidatorID     *kernel.UserID      `db:"validator_id" json:"validator_id,omitempty"`
	CreatedAt       time.Time           `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time           `db:"updated_at" json:"updated_at"`

	Ratings []Rating `db:"-" json:"ratings"`
}

// ============================================================================
// Domain Methods
// ============================================================================

// IsDraft checks if the evaluation is still editable
func (e *Evaluation) IsDraft() bool {
	return e.Status == EvaluationStatusDraft
}

// IsValidated checks if the evaluation reached its terminal state
func (e *Evaluation) IsValidated() bool {
	return e.Status == EvaluationStatusValidated
}

// CanTransitionTo checks the transition map; strictly forward, no
// skipping from draft to validated.
func (e *Evaluation) CanTransitionTo(newStatus EvaluationStatus) bool {
	validTransitions := map[EvaluationStatus][]EvaluationStatus{
		EvaluationStatusDraft:     {EvaluationStatusCompleted},
		EvaluationStatusCompleted: {EvaluationStatusValidated},
	}
	allowed, ok := validTransitions[e.Status]
	return ok && slices.Contains(allowed, newStatus)
}

// Finalize freezes the rating set for validation
func (e *Evaluation) Finalize() error {
	if !e.CanTransitionTo(EvaluationStatusCompleted) {
		return transitionError(e.Status, EvaluationStatusCompleted)
	}
	if len(e.Ratings) == 0 {
		return ErrEmptyRatingSet()
	}
	if e.AggregateScore == nil {
		return ErrAggregateUndefined()
	}
	e.Status = EvaluationStatusCompleted
	e.UpdatedAt = time.Now()
	return nil
}

// Validate countersigns the evaluation; terminal and irreversible
func (e *Evaluation) Validate(validatorID kernel.UserID) error {
	if e.IsValidated() {
		return ErrAlreadyValidated()
	}
	if !e.CanTransitionTo(EvaluationStatusValidated) {
		return transitionError(e.Status, EvaluationStatusValidated)
	}
	if validatorID == e.EvaluatorID {
		return ErrSelfValidation()
	}
	now := time.Now()
	e.Status = EvaluationStatusValidated
	e.ValidatedAt = &now
	e.ValidatorID = &validatorID
	e.UpdatedAt = now
	return nil
}

// ReplaceRatings swaps the rating set of a draft and resets the
// aggregate; the caller recomputes and persists it.
func (e *Evaluation) ReplaceRatings(ratings []Rating) error {
	if e.IsValidated() {
		return ErrAlreadyValidated()
	}
	if !e.IsDraft() {
		return ErrInvalidStatusTransition().
			WithDetail("current_status", e.Status).
			WithDetail("action", "replace_ratings")
	}
	if err := ValidateRatings(ratings); err != nil {
		return err
	}
	for i := range ratings {
		ratings[i].EvaluationID = e.ID
	}
	e.Ratings = ratings
	e.AggregateScore = nil
	e.UpdatedAt = time.Now()
	return nil
}

// ValidateRatings checks a rating set against the structural rules:
// non-empty, no duplicate criterion, every rating within scale.
func ValidateRatings(ratings []Rating) error {
	if len(ratings) == 0 {
		return ErrEmptyRatingSet()
	}
	seen := make(map[kernel.CriterionID]struct{}, len(ratings))
	for _, r := range ratings {
		if _, dup := seen[r.CriterionID]; dup {
			return ErrDuplicateCriterion().WithDetail("criterion_id", r.CriterionID.String())
		}
		seen[r.CriterionID] = struct{}{}
		if r.Rating < MinRating || r.Rating > MaxRating {
			return ErrInvalidRating().
				WithDetail("criterion_id", r.CriterionID.String()).
				WithDetail("rating", r.Rating)
		}
	}
	return nil
}

// ComputeAggregate is the weighted mean of the ratings over the
// currently active criteria, rounded to 2 decimal places. Ratings whose
// criterion is absent from the weight map are excluded; nil means no
// active-criterion rating remains. A stored aggregate is never trusted
// over the result of this function.
func ComputeAggregate(ratings []Rating, activeWeights map[kernel.CriterionID]float64) *float64 {
	var weightedSum, weightTotal float64
	for _, r := range ratings {
		weight, active := activeWeights[r.CriterionID]
		if !active {
			continue
		}
		weightedSum += float64(r.Rating) * weight
		weightTotal += weight
	}
	if weightTotal == 0 {
		return nil
	}
	aggregate := math.Round(weightedSum/weightTotal*100) / 100
	return &aggregate
}

func transitionError(from, to EvaluationStatus) error {
	return ErrInvalidStatusTransition().
		WithDetail("current_status", from).
		WithDetail("requested_status", to)
}
