package posting

import (
	"net/http"

	"github.com/adilnv/internlink/pkg/errx"
)

// Error Registry
var ErrRegistry = errx.NewRegistry("POSTING")

// Error codes
var (
	CodePostingNotFound         = ErrRegistry.Register("NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Posting not found")
	CodeCannotPublish           = ErrRegistry.Register("CANNOT_PUBLISH", errx.TypeBusiness, http.StatusBadRequest, "Posting cannot be published from its current status")
	CodeCannotClose             = ErrRegistry.Register("CANNOT_CLOSE", errx.TypeBusiness, http.StatusBadRequest, "Posting cannot be closed from its current status")
	CodeAlreadyArchived         = ErrRegistry.Register("ALREADY_ARCHIVED", errx.TypeBusiness, http.StatusConflict, "Posting is already archived")
	CodeNotPublished            = ErrRegistry.Register("NOT_PUBLISHED", errx.TypeBusiness, http.StatusForbidden, "Posting is not accepting candidatures")
	CodeInvalidDates            = ErrRegistry.Register("INVALID_DATES", errx.TypeValidation, http.StatusBadRequest, "Planned end date must be after the planned start date")
	CodeTitleRequired           = ErrRegistry.Register("TITLE_REQUIRED", errx.TypeValidation, http.StatusBadRequest, "Posting title is required")
	CodeInsufficientPermissions = ErrRegistry.Register("INSUFFICIENT_PERMISSIONS", errx.TypeAuthorization, http.StatusForbidden, "Insufficient permissions")
	CodeInvalidRequest          = ErrRegistry.Register("INVALID_REQUEST", errx.TypeValidation, http.StatusBadRequest, "Invalid request data")
)

// Helper functions
func ErrPostingNotFound() *errx.Error {
	return ErrRegistry.New(CodePostingNotFound)
}

func ErrCannotPublish() *errx.Error {
	return ErrRegistry.New(CodeCannotPublish)
}

func ErrCannotClose() *errx.Error {
	return ErrRegistry.New(CodeCannotClose)
}

func ErrAlreadyArchived() *errx.Error {
	return ErrRegistry.New(CodeAlreadyArchived)
}

func ErrNotPublished() *errx.Error {
	return ErrRegistry.New(CodeNotPublished)
}

func ErrInvalidDates() *errx.Error {
	return ErrRegistry.New(CodeInvalidDates)
}

func ErrTitleRequired() *errx.Error {
	return ErrRegistry.New(CodeTitleRequired)
}

func ErrInsufficientPermissions() *errx.Error {
	return ErrRegistry.New(CodeInsufficientPermissions)
}

func ErrInvalidRequest() *errx.Error {
	return ErrRegistry.New(CodeInvalidRequest)
}
