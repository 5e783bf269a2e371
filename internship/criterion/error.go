package criterion

import (
	"net/http"

	"github.com/adilnv/internlink/pkg/errx"
)

// Error Registry
var ErrRegistry = errx.NewRegistry("CRITERION")

// Error codes
var (
	CodeCriterionNotFound       = ErrRegistry.Register("NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Criterion not found")
	CodeNameRequired            = ErrRegistry.Register("NAME_REQUIRED", errx.TypeValidation, http.StatusBadRequest, "Criterion name is required")
	CodeInvalidWeight           = ErrRegistry.Register("INVALID_WEIGHT", errx.TypeValidation, http.StatusBadRequest, "Criterion weight must be positive")
	CodeInsufficientPermissions = ErrRegistry.Register("INSUFFICIENT_PERMISSIONS", errx.TypeAuthorization, http.StatusForbidden, "Insufficient permissions")
	CodeInvalidRequest          = ErrRegistry.Register("INVALID_REQUEST", errx.TypeValidation, http.StatusBadRequest, "Invalid request data")
)

// Helper functions
func ErrCriterionNotFound() *errx.Error {
	return ErrRegistry.New(CodeCriterionNotFound)
}

func ErrNameRequired() *errx.Error {
	return ErrRegistry.New(CodeNameRequired)
}

func ErrInvalidWeight() *errx.Error {
	return ErrRegistry.New(CodeInvalidWeight)
}

func ErrInsufficientPermissions() *errx.Error {
	return ErrRegistry.New(CodeInsufficientPermissions)
}

func ErrInvalidRequest() *errx.Error {
	return ErrRegistry.New(CodeInvalidRequest)
}
