package apperrors

import "errors"

// Common errors
var (
	// Resource errors
	ErrGroupNotFound   = errors.New("group not found")
	ErrUserNotFound    = errors.New("user not found")
	ErrMessageNotFound = errors.New("message not found")

	// Membership errors
	ErrGroupFull = errors.New("study group is at full capacity")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrEmptyQuery       = errors.New("search query cannot be empty")
	ErrToxicContent     = errors.New("message contains toxic content")

	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrDomainNotAllowed   = errors.New("email domain is not allowed")

	// External provider errors
	ErrProviderUnavailable = errors.New("ai provider unavailable")
)

// NewGroupNotFoundError creates a new custom error for a missing group
func NewGroupNotFoundError(message string) error {
	return &CustomError{
		Err:     ErrGroupNotFound,
		Message: message,
	}
}

// NewGroupFullError creates a new custom error for a join attempt on a
// full group. Distinct from generic failures so the HTTP layer can map
// it to a 409-class response with an actionable message.
func NewGroupFullError(message string) error {
	return &CustomError{
		Err:     ErrGroupFull,
		Message: message,
	}
}

// NewValidationError creates a new custom error for invalid input
func NewValidationError(message string) error {
	return &CustomError{
		Err:     ErrValidationFailed,
		Message: message,
	}
}

// NewProviderError creates a new custom error for embedding/toxicity
// backend failures
func NewProviderError(message string) error {
	return &CustomError{
		Err:     ErrProviderUnavailable,
		Message: message,
	}
}

// Is returns whether target matches any of the errors in errList
func Is(err, target error, errList ...error) bool {
	if errors.Is(err, target) {
		return true
	}

	for _, e := range errList {
		if errors.Is(err, e) {
			return true
		}
	}

	return false
}

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
	Details map[string]interface{}
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

// NewCustomError creates a CustomError with underlying error
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{
		Err:     err,
		Message: message,
	}
}

// WithDetails adds context details to the error
func (e *CustomError) WithDetails(details map[string]interface{}) *CustomError {
	e.Details = details
	return e
}
