package candidature

import (
	"net/http"

	"github.com/adilnv/internlink/pkg/errx"
)

// Error Registry
var ErrRegistry = errx.NewRegistry("CANDIDATURE")

// Error codes
var (
	CodeCandidatureNotFound     = ErrRegistry.Register("NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Candidature not found")
	CodeDuplicateCandidature    = ErrRegistry.Register("DUPLICATE", errx.TypeConflict, http.StatusConflict, "An open candidature already exists for this posting")
	CodePostingNotPublished     = ErrRegistry.Register("POSTING_NOT_PUBLISHED", errx.TypeBusiness, http.StatusForbidden, "Posting is not accepting candidatures")
	CodeInvalidStatusTransition = ErrRegistry.Register("INVALID_STATUS_TRANSITION", errx.TypeBusiness, http.StatusBadRequest, "Invalid status transition")
	CodeCannotWithdraw          = ErrRegistry.Register("CANNOT_WITHDRAW", errx.TypeBusiness, http.StatusConflict, "Cannot withdraw a candidature in a terminal state")
	CodeNotOwner                = ErrRegistry.Register("NOT_OWNER", errx.TypeAuthorization, http.StatusForbidden, "Only the candidature owner may perform this action")
	CodeInvalidRating           = ErrRegistry.Register("INVALID_RATING", errx.TypeValidation, http.StatusBadRequest, "Rating must be between 1 and 10")
	CodeFileSizeTooLarge        = ErrRegistry.Register("FILE_SIZE_TOO_LARGE", errx.TypeValidation, http.StatusBadRequest, "File size exceeds maximum allowed")
	CodeCVNotUploaded           = ErrRegistry.Register("CV_NOT_UPLOADED", errx.TypeNotFound, http.StatusNotFound, "No CV has been uploaded for this candidature")
	CodeInvalidFileType         = ErrRegistry.Register("INVALID_FILE_TYPE", errx.TypeValidation, http.StatusBadRequest, "Invalid file type")
	CodeInsufficientPermissions = ErrRegistry.Register("INSUFFICIENT_PERMISSIONS", errx.TypeAuthorization, http.StatusForbidden, "Insufficient permissions")
	CodeInvalidRequest          = ErrRegistry.Register("INVALID_REQUEST", errx.TypeValidation, http.StatusBadRequest, "Invalid request data")
)

// Helper functions
func ErrCandidatureNotFound() *errx.Error {
	return ErrRegistry.New(CodeCandidatureNotFound)
}

func ErrDuplicateCandidature() *errx.Error {
	return ErrRegistry.New(CodeDuplicateCandidature)
}

func ErrPostingNotPublished() *errx.Error {
	return ErrRegistry.New(CodePostingNotPublished)
}

func ErrInvalidStatusTransition() *errx.Error {
	return ErrRegistry.New(CodeInvalidStatusTransition)
}

func ErrCannotWithdraw() *errx.Error {
	return ErrRegistry.New(CodeCannotWithdraw)
}

func ErrNotOwner() *errx.Error {
	return ErrRegistry.New(CodeNotOwner)
}

func ErrInvalidRating() *errx.Error {
	return ErrRegistry.New(CodeInvalidRating)
}

func ErrFileSizeTooLarge() *errx.Error {
	return ErrRegistry.New(CodeFileSizeTooLarge)
}

func ErrCVNotUploaded() *errx.Error {
	return ErrRegistry.New(CodeCVNotUploaded)
}

func ErrInvalidFileType() *errx.Error {
	return ErrRegistry.New(CodeInvalidFileType)
}

func ErrInsufficientPermissions() *errx.Error {
	return ErrRegistry.New(CodeInsufficientPermissions)
}

func ErrInvalidRequest() *errx.Error {
	return ErrRegistry.New(CodeInvalidRequest)
}
