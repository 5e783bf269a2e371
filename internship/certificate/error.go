package certificate

import (
	"net/http"

	"github.com/adilnv/internlink/pkg/errx"
)

// Error Registry
var ErrRegistry = errx.NewRegistry("CERTIFICATE")

// Error codes
var (
	CodeCertificateNotFound     = ErrRegistry.Register("NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Certificate not found")
	CodeEvaluationNotValidated  = ErrRegistry.Register("EVALUATION_NOT_VALIDATED", errx.TypeConflict, http.StatusConflict, "Evaluation is not validated")
	CodeAlreadyIssued           = ErrRegistry.Register("ALREADY_ISSUED", errx.TypeConflict, http.StatusConflict, "A certificate was already issued for this evaluation")
	CodeCodeCollision           = ErrRegistry.Register("CODE_COLLISION", errx.TypeConflict, http.StatusConflict, "Verification code already in use")
	CodeUniqueCodeExhausted     = ErrRegistry.Register("UNIQUE_CODE_EXHAUSTED", errx.TypeInternal, http.StatusInternalServerError, "Could not generate a unique verification code")
	CodeRenderFailed            = ErrRegistry.Register("RENDER_FAILED", errx.TypeInternal, http.StatusInternalServerError, "Failed to render the certificate document")
	CodeInsufficientPermissions = ErrRegistry.Register("INSUFFICIENT_PERMISSIONS", errx.TypeAuthorization, http.StatusForbidden, "Insufficient permissions")
	CodeInvalidRequest          = ErrRegistry.Register("INVALID_REQUEST", errx.TypeValidation, http.StatusBadRequest, "Invalid request data")
)

// Helper functions
func ErrCertificateNotFound() *errx.Error {
	return ErrRegistry.New(CodeCertificateNotFound)
}

func ErrEvaluationNotValidated() *errx.Error {
	return ErrRegistry.New(CodeEvaluationNotValidated)
}

func ErrAlreadyIssued() *errx.Error {
	return ErrRegistry.New(CodeAlreadyIssued)
}

func ErrCodeCollision() *errx.Error {
	return ErrRegistry.New(CodeCodeCollision)
}

func ErrUniqueCodeExhausted() *errx.Error {
	return ErrRegistry.New(CodeUniqueCodeExhausted)
}

func ErrRenderFailed() *errx.Error {
	return ErrRegistry.New(CodeRenderFailed)
}

func ErrInsufficientPermissions() *errx.Error {
	return ErrRegistry.New(CodeInsufficientPermissions)
}

func ErrInvalidRequest() *errx.Error {
	return ErrRegistry.New(CodeInvalidRequest)
}
