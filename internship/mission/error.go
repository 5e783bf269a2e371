package mission

import (
	"net/http"

	"github.com/adilnv/internlink/pkg/errx"
)

// Error Registry
var ErrRegistry = errx.NewRegistry("MISSION")

// Error codes
var (
	CodeMissionNotFound         = ErrRegistry.Register("NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Mission not found")
	CodeInvalidStatusTransition = ErrRegistry.Register("INVALID_STATUS_TRANSITION", errx.TypeBusiness, http.StatusBadRequest, "Invalid status transition")
	CodeInvalidProgress         = ErrRegistry.Register("INVALID_PROGRESS", errx.TypeValidation, http.StatusBadRequest, "Completion percentage must be between 0 and 100")
	CodeInvalidScore            = ErrRegistry.Register("INVALID_SCORE", errx.TypeValidation, http.StatusBadRequest, "Mission score must be between 0 and 20")
	CodeFeedbackRequired        = ErrRegistry.Register("FEEDBACK_REQUIRED", errx.TypeValidation, http.StatusBadRequest, "Feedback is required to reject a mission")
	CodeReasonRequired          = ErrRegistry.Register("REASON_REQUIRED", errx.TypeValidation, http.StatusBadRequest, "A reason is required to cancel a mission")
	CodeTitleRequired           = ErrRegistry.Register("TITLE_REQUIRED", errx.TypeValidation, http.StatusBadRequest, "Mission title is required")
	CodeStageNotOpen            = ErrRegistry.Register("STAGE_NOT_OPEN", errx.TypeBusiness, http.StatusConflict, "Missions can only be created against a pending or active stage")
	CodeCannotDelete            = ErrRegistry.Register("CANNOT_DELETE", errx.TypeBusiness, http.StatusConflict, "Missions in progress or in review cannot be deleted")
	CodeNotAssignee             = ErrRegistry.Register("NOT_ASSIGNEE", errx.TypeAuthorization, http.StatusForbidden, "Only the mission assignee may perform this action")
	CodeInsufficientPermissions = ErrRegistry.Register("INSUFFICIENT_PERMISSIONS", errx.TypeAuthorization, http.StatusForbidden, "Insufficient permissions")
	CodeInvalidRequest          = ErrRegistry.Register("INVALID_REQUEST", errx.TypeValidation, http.StatusBadRequest, "Invalid request data")
)

// Helper functions
func ErrMissionNotFound() *errx.Error {
	return ErrRegistry.New(CodeMissionNotFound)
}

func ErrInvalidStatusTransition() *errx.Error {
	return ErrRegistry.New(CodeInvalidStatusTransition)
}

func ErrInvalidProgress() *errx.Error {
	return ErrRegistry.New(CodeInvalidProgress)
}

func ErrInvalidScore() *errx.Error {
	return ErrRegistry.New(CodeInvalidScore)
}

func ErrFeedbackRequired() *errx.Error {
	return ErrRegistry.New(CodeFeedbackRequired)
}

func ErrReasonRequired() *errx.Error {
	return ErrRegistry.New(CodeReasonRequired)
}

func ErrTitleRequired() *errx.Error {
	return ErrRegistry.New(CodeTitleRequired)
}

func ErrStageNotOpen() *errx.Error {
	return ErrRegistry.New(CodeStageNotOpen)
}

func ErrCannotDelete() *errx.Error {
	return ErrRegistry.New(CodeCannotDelete)
}

func ErrNotAssignee() *errx.Error {
	return ErrRegistry.New(CodeNotAssignee)
}

func ErrInsufficientPermissions() *errx.Error {
	return ErrRegistry.New(CodeInsufficientPermissions)
}

func ErrInvalidRequest() *errx.Error {
	return ErrRegistry.New(CodeInvalidRequest)
}
