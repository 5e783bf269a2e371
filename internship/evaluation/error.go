package evaluation

import (
	"net/http"

	"github.com/adilnv/internlink/pkg/errx"
)

// Error Registry
var ErrRegistry = errx.NewRegistry("EVALUATION")

// Error codes
var (
	CodeEvaluationNotFound      = ErrRegistry.Register("NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Evaluation not found")
	CodeStageNotConcluded       = ErrRegistry.Register("STAGE_NOT_CONCLUDED", errx.TypeConflict, http.StatusConflict, "Stage is not completed yet")
	CodeDuplicateEvaluation     = ErrRegistry.Register("DUPLICATE", errx.TypeConflict, http.StatusConflict, "An evaluation already exists for this stage")
	CodeEmptyRatingSet          = ErrRegistry.Register("EMPTY_RATING_SET", errx.TypeValidation, http.StatusBadRequest, "At least one rating is required")
	CodeDuplicateCriterion      = ErrRegistry.Register("DUPLICATE_CRITERION", errx.TypeValidation, http.StatusBadRequest, "A criterion appears more than once in the rating set")
	CodeInvalidRating           = ErrRegistry.Register("INVALID_RATING", errx.TypeValidation, http.StatusBadRequest, "Rating must be between 1 and 10")
	CodeInvalidStatusTransition = ErrRegistry.Register("INVALID_STATUS_TRANSITION", errx.TypeConflict, http.StatusConflict, "Invalid evaluation status transition")
	CodeAlreadyValidated        = ErrRegistry.Register("ALREADY_VALIDATED", errx.TypeConflict, http.StatusConflict, "A validated evaluation is immutable")
	CodeSelfValidation          = ErrRegistry.Register("SELF_VALIDATION", errx.TypeAuthorization, http.StatusForbidden, "An evaluation cannot be validated by its author")
	CodeAggregateUndefined      = ErrRegistry.Register("AGGREGATE_UNDEFINED", errx.TypeConflict, http.StatusConflict, "No active-criterion rating remains to aggregate")
	CodeInsufficientPermissions = ErrRegistry.Register("INSUFFICIENT_PERMISSIONS", errx.TypeAuthorization, http.StatusForbidden, "Insufficient permissions")
	CodeInvalidRequest          = ErrRegistry.Register("INVALID_REQUEST", errx.TypeValidation, http.StatusBadRequest, "Invalid request data")
)

// Helper functions
func ErrEvaluationNotFound() *errx.Error {
	return ErrRegistry.New(CodeEvaluationNotFound)
}

func ErrStageNotConcluded() *errx.Error {
	return ErrRegistry.New(CodeStageNotConcluded)
}

func ErrDuplicateEvaluation() *errx.Error {
	return ErrRegistry.New(CodeDuplicateEvaluation)
}

func ErrEmptyRatingSet() *errx.Error {
	return ErrRegistry.New(CodeEmptyRatingSet)
}

func ErrDuplicateCriterion() *errx.Error {
	return ErrRegistry.New(CodeDuplicateCriterion)
}

func ErrInvalidRating() *errx.Error {
	return ErrRegistry.New(CodeInvalidRating)
}

func ErrInvalidStatusTransition() *errx.Error {
	return ErrRegistry.New(CodeInvalidStatusTransition)
}

func ErrAlreadyValidated() *errx.Error {
	return ErrRegistry.New(CodeAlreadyValidated)
}

func ErrSelfValidation() *errx.Error {
	return ErrRegistry.New(CodeSelfValidation)
}

func ErrAggregateUndefined() *errx.Error {
	return ErrRegistry.New(CodeAggregateUndefined)
}

func ErrInsufficientPermissions() *errx.Error {
	return ErrRegistry.New(CodeInsufficientPermissions)
}

func ErrInvalidRequest() *errx.Error {
	return ErrRegistry.New(CodeInvalidRequest)
}
