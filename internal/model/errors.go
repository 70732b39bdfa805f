package model

import (
	"errors"
	"fmt"
)

var (
	ErrEmptySeries    = errors.New("series is empty")
	ErrLengthMismatch = errors.New("series lengths do not match")
)

// InputError reports an observation that cannot be used as a finite number.
// Row and Column are 1-based positions in the source; zero means unknown.
type InputError struct {
	Field  string
	Row    int
	Column int
	Value  string
	Err    error
}

func (e *InputError) Error() string {
	msg := fmt.Sprintf("invalid %s", e.Field)
	if e.Row > 0 {
		msg += fmt.Sprintf(" at row %d", e.Row)
	}
	if e.Column > 0 {
		msg += fmt.Sprintf(" column %d", e.Column)
	}
	if e.Value != "" {
		msg += fmt.Sprintf(" (%q)", e.Value)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *InputError) Unwrap() error { return e.Err }

// ConfigurationError reports a model parameter outside its valid range.
type ConfigurationError struct {
	Field  string
	Value  float64
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("%s=%g %s", e.Field, e.Value, e.Reason)
}
