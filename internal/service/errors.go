package service

import (
	"fmt"
	"strings"
)

// ValidationError reports malformed or missing request fields. It is the
// only error that maps to a 4xx on the log-write path and is always raised
// before any storage or lookup work happens.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "invalid fields: " + strings.Join(e.Fields, ", ")
}

// newValidationError builds a ValidationError for the offending fields.
func newValidationError(fields ...string) *ValidationError {
	return &ValidationError{Fields: fields}
}

// storageErr wraps a persistence failure so handlers can report a generic
// 5xx without leaking storage internals.
func storageErr(op string, err error) error {
	return fmt.Errorf("%s: %w", op, err)
}
