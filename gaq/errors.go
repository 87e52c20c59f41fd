package gaq

import (
	"errors"
	"fmt"
)

// ErrInvalidArgument is the only error kind the builder returns. Use errors.Is
// to test for it; the concrete error is an *ArgumentError.
var ErrInvalidArgument = errors.New("invalid argument")

// ArgumentError names the parameter that failed validation.
type ArgumentError struct {
	Field string
	Value string
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("invalid %s: %q", e.Field, e.Value)
}

func (e *ArgumentError) Unwrap() error {
	return ErrInvalidArgument
}

func invalid(field, value string) error {
	return &ArgumentError{Field: field, Value: value}
}
