package jsonkit

import (
	"errors"
	"fmt"
	"strings"

	"github.com/reoring/jsonkit/i18n"
)

// Code identifies the kind of failure. The zero Code means success.
type Code string

// Error codes (exported consts for IDE completion and type safety by convention)
const (
	CodeNone                Code = ""
	CodeUnexpectedCharacter Code = "unexpected_character"
	CodeUnexpectedEnding    Code = "unexpected_ending"
	CodeUnexpectedToken     Code = "unexpected_token"
	CodeBadKey              Code = "bad_key"
	CodeBadValue            Code = "bad_value"
	CodeUnexpectedType      Code = "unexpected_type"
	CodeNoSchema            Code = "no_schema"
	CodeOutOfRange          Code = "out_of_range"
	CodeNoMatch             Code = "no_match"
)

// Error is the single diagnostic produced by a failed operation.
type Error struct {
	Code    Code
	Message string
	// Line and Column are 1-based positions in the input text (0 when unknown).
	Line   int
	Column int
	// Path is a JSON Pointer-like location inside a document or schema
	// (empty when not applicable).
	Path  string
	Cause error
}

// Error renders the message with its position or path when known.
func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	b := &strings.Builder{}
	if e.Message != "" {
		b.WriteString(e.Message)
	} else {
		b.WriteString(string(e.Code))
	}
	if e.Path != "" {
		fmt.Fprintf(b, " [%s]", e.Path)
	}
	if e.Line > 0 {
		fmt.Fprintf(b, " (%d:%d)", e.Line, e.Column)
	}
	return b.String()
}

func (e *Error) Unwrap() error { return e.Cause }

// Is matches errors carrying the same Code, so errors.Is(err, &Error{Code: c}) works.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || t == nil || e == nil {
		return false
	}
	return t.Code == e.Code
}

// NewError builds an Error whose message comes from the active translator.
// data is forwarded to the translator (for example {"key": "name"}).
func NewError(code Code, data map[string]string) *Error {
	return &Error{Code: code, Message: i18n.T(string(code), data)}
}

// Errorf builds an Error with a formatted message.
func Errorf(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

func errorAt(code Code, line, col int) *Error {
	e := NewError(code, nil)
	e.Line, e.Column = line, col
	return e
}

// AsError extracts an *Error from err using errors.As internally.
func AsError(err error) (*Error, bool) {
	if err == nil {
		return nil, false
	}
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// CodeOf returns the Code carried by err: CodeNone for nil and CodeBadValue
// for foreign errors.
func CodeOf(err error) Code {
	if err == nil {
		return CodeNone
	}
	if e, ok := AsError(err); ok {
		return e.Code
	}
	return CodeBadValue
}
