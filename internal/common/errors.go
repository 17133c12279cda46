// Package common provides shared utilities and types used across the application.
package common

import (
	"errors"
	"fmt"
)

// Common application errors.
var (
	// Ingestion errors.
	ErrEmptyFile       = errors.New("file contains no rows")
	ErrColumnCount     = errors.New("unexpected number of columns")
	ErrFileTooLarge    = errors.New("file exceeds upload limit")
	ErrUnsupportedType = errors.New("unsupported file type")

	// Configuration errors.
	ErrInvalidConfig = errors.New("invalid configuration")
)

// ProcessingMessage prefixes every ingestion failure shown to users.
const ProcessingMessage = "Error processing file"

// UserError represents an error that should be shown to the user.
type UserError struct {
	Err         error
	UserMessage string
}

func (e *UserError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.UserMessage, e.Err)
	}
	return e.UserMessage
}

func (e *UserError) Unwrap() error {
	return e.Err
}

// NewUserError creates a new user-friendly error.
func NewUserError(userMessage string, err error) error {
	return &UserError{
		UserMessage: userMessage,
		Err:         err,
	}
}

// NewProcessingError wraps an ingestion failure as "Error processing file: <err>".
func NewProcessingError(err error) error {
	return NewUserError(ProcessingMessage, err)
}

// IsUserError reports whether err carries a user-facing message.
func IsUserError(err error) bool {
	var userErr *UserError
	return errors.As(err, &userErr)
}
