package apperrors

import "errors"

// Common errors
var (
	// Resource errors
	ErrResourceAlreadyExists = errors.New("resource already exists")

	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrTokenNotFound      = errors.New("token not found")
	ErrTokenRevoked       = errors.New("token revoked")
	ErrAccountDisabled    = errors.New("account is disabled")

	// Authorization errors
	ErrPermissionDenied = errors.New("permission denied")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrBadRequest       = errors.New("bad request")

	// User errors
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrUnknownRole        = errors.New("unknown role")
)

// Institution errors
var (
	ErrInstitutionNotFound      = errors.New("institution not found")
	ErrInstitutionAlreadyExists = errors.New("institution with this name or code already exists")
	ErrInstitutionHasRelations  = errors.New("institution has associated data and cannot be deleted")
)

// Program errors
var (
	ErrProgramNotFound      = errors.New("program not found")
	ErrProgramAlreadyExists = errors.New("program with this name or short name already exists")
	ErrProgramHasRelations  = errors.New("program has associated courses and cannot be deleted")
)

// Course errors
var (
	ErrCourseNotFound      = errors.New("course not found")
	ErrCourseAlreadyExists = errors.New("course with this number already exists in the institution")
)

// Term and section errors
var (
	ErrTermNotFound     = errors.New("term not found")
	ErrOfferingNotFound = errors.New("course offering not found")
	ErrSectionNotFound  = errors.New("section not found")
)

// Outcome workflow errors
var (
	ErrOutcomeNotFound          = errors.New("course outcome not found")
	ErrInvalidOutcomeTransition = errors.New("invalid outcome status transition")
)

// NewForbiddenError creates a new custom error for permission denied with a message
func NewForbiddenError(message string) error {
	return &CustomError{
		Err:     ErrPermissionDenied,
		Message: message,
	}
}

// NewBadRequestError creates a new custom error for bad request with a message
func NewBadRequestError(message string) error {
	return &CustomError{
		Err:     ErrBadRequest,
		Message: message,
	}
}

// CustomError wraps a sentinel error with a request-specific message.
// The sentinel drives the HTTP status mapping; the message is what the
// client sees.
type CustomError struct {
	Err     error
	Message string
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}

