// Package generrors defines the error types returned while turning a
// discovery document into generated artifacts.
//
// Every type matches one sentinel through errors.Is, so callers can tell the
// categories apart without type assertions:
//
//   - InputError (ErrInput): the discovery document is unreadable, malformed,
//     or missing a naming field.
//   - FieldError (ErrTemplating): a value required by a template is absent or
//     unusable.
//   - IOError (ErrIO): creating a directory or writing a file failed.
//
// Use errors.As to get at the path or field involved:
//
//	var ie *generrors.InputError
//	if errors.As(err, &ie) {
//	    fmt.Println("bad input:", ie.Path)
//	}
package generrors

import (
	"errors"
	"fmt"
)

var (
	// ErrInput indicates a malformed or incomplete discovery document.
	ErrInput = errors.New("input error")

	// ErrTemplating indicates a required substitution value was missing.
	ErrTemplating = errors.New("templating error")

	// ErrIO indicates a filesystem failure while emitting artifacts.
	ErrIO = errors.New("io error")
)

// InputError reports a problem with the generator input.
type InputError struct {
	// Path is the discovery document path, if known.
	Path string
	// Field is the offending document field, if the problem is field-specific.
	Field string
	// Message describes the failure.
	Message string
	// Cause is the underlying error, if any.
	Cause error
}

func (e *InputError) Error() string {
	msg := "input error"
	if e.Path != "" {
		msg += fmt.Sprintf(" in %q", e.Path)
	}
	if e.Field != "" {
		msg += fmt.Sprintf(" (field %s)", e.Field)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *InputError) Unwrap() error {
	return e.Cause
}

// Is reports whether target is ErrInput.
func (e *InputError) Is(target error) bool {
	return target == ErrInput
}

// FieldError reports a template field with no usable value. An empty Value
// means the field was not set at all.
type FieldError struct {
	Field  string
	Value  string
	Reason string
}

func (e *FieldError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("templating error: missing field %s", e.Field)
	}
	msg := fmt.Sprintf("templating error: invalid value %q for field %s", e.Value, e.Field)
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	return msg
}

// Is reports whether target is ErrTemplating.
func (e *FieldError) Is(target error) bool {
	return target == ErrTemplating
}

// Missing reports whether the field was absent rather than invalid.
func (e *FieldError) Missing() bool {
	return e.Value == ""
}

// IOError reports a filesystem failure on Path.
type IOError struct {
	// Op is what was being attempted, e.g. "mkdir" or "write".
	Op    string
	Path  string
	Cause error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("io error: %s %s: %v", e.Op, e.Path, e.Cause)
}

func (e *IOError) Unwrap() error {
	return e.Cause
}

// Is reports whether target is ErrIO.
func (e *IOError) Is(target error) bool {
	return target == ErrIO
}
