// Package common provides shared utilities and types used across the application.
package common

import (
	"errors"
	"fmt"
)

// Common application errors.
var (
	// Database errors.
	ErrNotFound       = errors.New("not found")
	ErrDuplicateEntry = errors.New("duplicate entry")

	// Domain errors.
	ErrInvalidAccount = errors.New("invalid account")
	ErrInvalidAnchor  = errors.New("invalid billing anchor")
	ErrInvalidTerm    = errors.New("invalid term duration")

	// ErrInconsistentState marks a partial completion of the paired
	// balance + schedule update. Financial data may be out of sync; the
	// caller must reconcile, not retry blindly.
	ErrInconsistentState = errors.New("balance and schedule out of sync")

	// Configuration errors.
	ErrInvalidConfig = errors.New("invalid configuration")
)

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
