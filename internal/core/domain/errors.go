package domain

import "errors"

var ErrUserExists = errors.New("user already exists")
var ErrUserNotFound = errors.New("user not found")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrSessionNotFound = errors.New("session not found")
var ErrQuestionNotFound = errors.New("question not found")
var ErrAnswerNotFound = errors.New("answer not found")
var ErrTagNotFound = errors.New("tag not found")
var ErrTagExists = errors.New("tag already exists")
var ErrForbidden = errors.New("access forbidden")

// ValidationError is a field-scoped precondition failure. It blocks the
// operation before any network call is made and is recoverable by user edit.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}

// Invalid builds a ValidationError for the given field.
func Invalid(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}
