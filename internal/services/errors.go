package services

import "errors"

// Sentinel errors shared across services. Controllers translate these
// into the client-facing error taxonomy (404 / 400 / 403).
var (
	ErrNotFound         = errors.New("not_found")
	ErrAlreadyExists    = errors.New("already_exists")
	ErrSelfSubscription = errors.New("self_subscription")
	ErrInvalidUsername  = errors.New("invalid_username")
	ErrUserExists       = errors.New("user_already_exists")
	ErrWrongPassword    = errors.New("wrong_password")
)

// ValidationError carries a field-level message for 400 responses.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

func validationErr(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}
