// Package apperr defines the recoverable error taxonomy shared by the
// parser, commands, store, and the serving adapters.
package apperr

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound reports a referenced record or tag that is not in the store.
	ErrNotFound = errors.New("not found")
	// ErrDuplicate reports an add or rename that would collide with an
	// existing record or tag.
	ErrDuplicate = errors.New("already exists")
)

// ValidationError reports malformed value-object input. Field names the
// offending domain primitive so user-facing feedback stays specific.
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Msg)
}

// Validation builds a ValidationError for the given field.
func Validation(field, msg string) error {
	return &ValidationError{Field: field, Msg: msg}
}

// ParseError reports an unknown command word, a missing or misplaced
// prefix, or a non-empty preamble.
type ParseError struct {
	Msg string
}

func (e *ParseError) Error() string { return e.Msg }

// Parse builds a ParseError.
func Parse(format string, args ...any) error {
	return &ParseError{Msg: fmt.Sprintf(format, args...)}
}

// CommandError reports syntactically valid input that fails against the
// current store state (index out of range, duplicate record, unknown tag).
// Err, when set, carries the underlying sentinel for errors.Is checks.
type CommandError struct {
	Msg string
	Err error
}

func (e *CommandError) Error() string { return e.Msg }

func (e *CommandError) Unwrap() error { return e.Err }

// Command builds a CommandError with no underlying sentinel.
func Command(format string, args ...any) error {
	return &CommandError{Msg: fmt.Sprintf(format, args...)}
}

// CommandWrap builds a CommandError carrying an underlying sentinel.
func CommandWrap(err error, format string, args ...any) error {
	return &CommandError{Msg: fmt.Sprintf(format, args...), Err: err}
}
