package errx

import (
	"errors"
	"fmt"
	"net/http"
)

// Type classifies an error for transport mapping and logging
type Type string

const (
	TypeValidation     Type = "VALIDATION"
	TypeNotFound       Type = "NOT_FOUND"
	TypeConflict       Type = "CONFLICT"
	TypeBusiness       Type = "BUSINESS"
	TypeAuthentication Type = "AUTHENTICATION"
	TypeAuthorization  Type = "AUTHORIZATION"
	TypeInternal       Type = "INTERNAL"
	TypeExternal       Type = "EXTERNAL"
)

// Code is a stable, registry-qualified error code (e.g. "EVALUATION:DUPLICATE")
type Code string

type definition struct {
	typ        Type
	httpStatus int
	message    string
}

// Registry holds the error definitions for one domain package
type Registry struct {
	prefix string
	defs   map[Code]definition
}

// NewRegistry creates a registry whose codes are prefixed with the given domain name
func NewRegistry(prefix string) *Registry {
	return &Registry{
		prefix: prefix,
		defs:   make(map[Code]definition),
	}
}

// Register defines an error code with its type, HTTP status and default message
func (r *Registry) Register(code string, typ Type, httpStatus int, message string) Code {
	full := Code(r.prefix + ":" + code)
	r.defs[full] = definition{
		typ:        typ,
		httpStatus: httpStatus,
		message:    message,
	}
	return full
}

// New creates an error instance for a previously registered code
func (r *Registry) New(code Code) *Error {
	def, ok := r.defs[code]
	if !ok {
		return &Error{
			Code:       code,
			Type:       TypeInternal,
			Message:    "unregistered error code",
			HTTPStatus: http.StatusInternalServerError,
		}
	}

	return &Error{
		Code:       code,
		Type:       def.typ,
		Message:    def.message,
		HTTPStatus: def.httpStatus,
	}
}

// Error is the typed error carried across all layers
type Error struct {
	Code       Code           `json:"code"`
	Type       Type           `json:"type"`
	Message    string         `json:"message"`
	HTTPStatus int            `json:"-"`
	Details    map[string]any `json:"details,omitempty"`
	cause      error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap exposes the wrapped cause to errors.Is/As
func (e *Error) Unwrap() error {
	return e.cause
}

// WithDetail attaches a key/value pair for diagnostics; returns the error for chaining
func (e *Error) WithDetail(key string, value any) *Error {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = fmt.Sprintf("%v", value)
	return e
}

// WithCause attaches the underlying error
func (e *Error) WithCause(err error) *Error {
	e.cause = err
	return e
}

// ToHTTPResponse renders the JSON body sent to clients
func (e *Error) ToHTTPResponse() map[string]any {
	resp := map[string]any{
		"code":    e.Code,
		"type":    e.Type,
		"message": e.Message,
	}
	if len(e.Details) > 0 {
		resp["details"] = e.Details
	}
	return resp
}

// Wrap converts an arbitrary error into an *Error of the given type.
// Already-typed errors pass through untouched so registry codes survive layers.
func Wrap(err error, message string, typ Type) *Error {
	var typed *Error
	if errors.As(err, &typed) {
		return typed
	}

	status := http.StatusInternalServerError
	if typ == TypeExternal {
		status = http.StatusBadGateway
	}

	return &Error{
		Code:       Code("GENERIC:" + string(typ)),
		Type:       typ,
		Message:    message,
		HTTPStatus: status,
		cause:      err,
	}
}

// HasCode reports whether err carries the given registered code
func HasCode(err error, code Code) bool {
	var typed *Error
	if errors.As(err, &typed) {
		return typed.Code == code
	}
	return false
}

// IsType reports whether err carries the given error type
func IsType(err error, typ Type) bool {
	var typed *Error
	if errors.As(err, &typed) {
		return typed.Type == typ
	}
	return false
}
