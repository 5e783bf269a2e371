package user

import (
	"net/http"

	"github.com/adilnv/internlink/pkg/errx"
)

var ErrRegistry = errx.NewRegistry("USER")

// Error codes
var (
	CodeUserNotFound       = ErrRegistry.Register("NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "User not found")
	CodeEmailTaken         = ErrRegistry.Register("EMAIL_TAKEN", errx.TypeConflict, http.StatusConflict, "Email is already registered")
	CodeInvalidCredentials = ErrRegistry.Register("INVALID_CREDENTIALS", errx.TypeAuthentication, http.StatusUnauthorized, "Invalid email or password")
	CodeUserSuspended      = ErrRegistry.Register("SUSPENDED", errx.TypeAuthorization, http.StatusForbidden, "User account is suspended")
	CodeInvalidRole        = ErrRegistry.Register("INVALID_ROLE", errx.TypeValidation, http.StatusBadRequest, "Invalid user role")
	CodeMissingProfile     = ErrRegistry.Register("MISSING_PROFILE", errx.TypeValidation, http.StatusBadRequest, "Role profile is required")
	CodeDatabaseError      = ErrRegistry.Register("DATABASE_ERROR", errx.TypeInternal, http.StatusInternalServerError, "Database operation failed")
)

// Error constructors
func ErrUserNotFound() *errx.Error       { return ErrRegistry.New(CodeUserNotFound) }
func ErrEmailTaken() *errx.Error         { return ErrRegistry.New(CodeEmailTaken) }
func ErrInvalidCredentials() *errx.Error { return ErrRegistry.New(CodeInvalidCredentials) }
func ErrUserSuspended() *errx.Error      { return ErrRegistry.New(CodeUserSuspended) }
func ErrInvalidRole() *errx.Error        { return ErrRegistry.New(CodeInvalidRole) }
func ErrMissingProfile() *errx.Error     { return ErrRegistry.New(CodeMissingProfile) }
func ErrDatabase(err error) *errx.Error {
	return ErrRegistry.New(CodeDatabaseError).WithCause(err)
}
