// Package common provides shared utilities and types used across the application.
package common

import (
	"errors"
	"fmt"
)

// Common application errors.
var (
	// Input data errors.
	ErrDictionaryFormat = errors.New("dictionary is not valid tabular data")
	ErrMissingColumn    = errors.New("missing required column")
	ErrNoCategories     = errors.New("no categories found")
	ErrNoTransactions   = errors.New("no transactions found")

	// Classification errors.
	ErrClassificationParse    = errors.New("classification response is not valid JSON")
	ErrClassificationOverflow = errors.New("classification returned more rows than input transactions")
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
