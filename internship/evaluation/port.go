package evaluation

import (
	"context"

	"github.com/adilnv/internlink/pkg/kernel"
)

// Repository defines persistence operations for evaluations. Creation
// and rating replacement run as single transactions so that a duplicate
// concurrent request fails on the stage uniqueness constraint instead
// of racing.
type Repository interface {
	// CreateWithRatings persists the evaluation and its rating set
	// atomically; a second evaluation for the same stage fails with
	// the duplicate error.
	CreateWithRatings(ctx context.Context, e *Evaluation) error

	// Update persists the evaluation's own fields, not its ratings
	Update(ctx context.Context, id kernel.EvaluationID, e *Evaluation) error

	// ReplaceRatings swaps the stored rating set and the aggregate
	// atomically
	ReplaceRatings(ctx context.Context, id kernel.EvaluationID, ratings []Rating, aggregate *float64) error

	// UpdateAggregate persists a recomputed aggregate score
	UpdateAggregate(ctx context.Context, id kernel.EvaluationID, aggregate *float64) error

	GetByID(ctx context.Context, id kernel.EvaluationID) (*Evaluation, error)
	GetByStageID(ctx context.Context, stageID kernel.StageID) (*Evaluation, error)
	ExistsByStageID(ctx context.Context, stageID kernel.StageID) (bool, error)
}
