package stage

import (
	"net/http"

	"github.com/adilnv/internlink/pkg/errx"
)

// Error Registry
var ErrRegistry = errx.NewRegistry("STAGE")

// Error codes
var (
	CodeStageNotFound           = ErrRegistry.Register("NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Stage not found")
	CodeStageAlreadyExists      = ErrRegistry.Register("ALREADY_EXISTS", errx.TypeConflict, http.StatusConflict, "A stage already exists for this candidature")
	CodeInvalidStatusTransition = ErrRegistry.Register("INVALID_STATUS_TRANSITION", errx.TypeBusiness, http.StatusBadRequest, "Invalid status transition")
	CodeInvalidFinalScore       = ErrRegistry.Register("INVALID_FINAL_SCORE", errx.TypeValidation, http.StatusBadRequest, "Final score must be between 0 and 20")
	CodeCannotDelete            = ErrRegistry.Register("CANNOT_DELETE", errx.TypeBusiness, http.StatusConflict, "Only pending stages can be deleted")
	CodeInsufficientPermissions = ErrRegistry.Register("INSUFFICIENT_PERMISSIONS", errx.TypeAuthorization, http.StatusForbidden, "Insufficient permissions")
	CodeInvalidRequest          = ErrRegistry.Register("INVALID_REQUEST", errx.TypeValidation, http.StatusBadRequest, "Invalid request data")
)

// Helper functions
func ErrStageNotFound() *errx.Error {
	return ErrRegistry.New(CodeStageNotFound)
}

func ErrStageAlreadyExists() *errx.Error {
	return ErrRegistry.New(CodeStageAlreadyExists)
}

func ErrInvalidStatusTransition() *errx.Error {
	return ErrRegistry.New(CodeInvalidStatusTransition)
}

func ErrInvalidFinalScore() *errx.Error {
	return ErrRegistry.New(CodeInvalidFinalScore)
}

func ErrCannotDelete() *errx.Error {
	return ErrRegistry.New(CodeCannotDelete)
}

func ErrInsufficientPermissions() *errx.Error {
	return ErrRegistry.New(CodeInsufficientPermissions)
}

func ErrInvalidRequest() *errx.Error {
	return ErrRegistry.New(CodeInvalidRequest)
}
