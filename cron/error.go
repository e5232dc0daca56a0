package cron

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Errors
var (
	ErrParse           = errors.New("parse cron expression")
	ErrIllegalArgument = errors.New("illegal argument")
)

// Parse error kinds. Each of them unwraps to ErrParse.
var (
	ErrEmptyExpression    = fmt.Errorf("%w: empty expression", ErrParse)
	ErrFieldCountMismatch = fmt.Errorf("%w: field count mismatch", ErrParse)
	ErrMalformedField     = fmt.Errorf("%w: malformed field", ErrParse)
	ErrInvalidRange       = fmt.Errorf("%w: invalid range", ErrParse)
	ErrInvalidStep        = fmt.Errorf("%w: invalid step", ErrParse)
	ErrValueOutOfRange    = fmt.Errorf("%w: value out of range", ErrParse)
	ErrUnknownSymbol      = fmt.Errorf("%w: unknown symbol", ErrParse)
	ErrInconsistentFields = fmt.Errorf("%w: inconsistent fields", ErrParse)
	ErrResourceLimit      = fmt.Errorf("%w: resource limit exceeded", ErrParse)
)

// ParseError describes a failed parse attempt. Err holds the kind sentinel;
// the remaining fields are populated where they apply to that kind.
type ParseError struct {
	Err error

	// Index is the zero-based position of the offending field, or -1 when
	// the error is not tied to a single field.
	Index int
	Field string
	Text  string

	// ErrValueOutOfRange
	Value, Min, Max int

	// ErrFieldCountMismatch
	Expected []int
	Actual   int

	// ErrInconsistentFields, ErrResourceLimit
	Reason string
}

var _ error = (*ParseError)(nil)

// Error implements the error interface.
func (e *ParseError) Error() string {
	var b strings.Builder
	b.WriteString(e.Err.Error())
	if e.Field != "" {
		b.WriteString(": ")
		b.WriteString(e.Field)
		if e.Index >= 0 {
			fmt.Fprintf(&b, " (field %d)", e.Index+1)
		}
	}

	switch {
	case errors.Is(e.Err, ErrFieldCountMismatch):
		fmt.Fprintf(&b, ": expected %s fields, got %d", joinCounts(e.Expected), e.Actual)
	case errors.Is(e.Err, ErrValueOutOfRange):
		fmt.Fprintf(&b, ": %d not in [%d, %d]", e.Value, e.Min, e.Max)
	case e.Reason != "":
		b.WriteString(": ")
		b.WriteString(e.Reason)
	}
	if e.Text != "" {
		fmt.Fprintf(&b, " in %q", e.Text)
	}
	return b.String()
}

// Unwrap returns the kind sentinel.
func (e *ParseError) Unwrap() error {
	return e.Err
}

func joinCounts(counts []int) string {
	s := make([]string, len(counts))
	for i, c := range counts {
		s[i] = strconv.Itoa(c)
	}
	switch len(s) {
	case 0:
		return "?"
	case 1:
		return s[0]
	}
	return strings.Join(s[:len(s)-1], ", ") + " or " + s[len(s)-1]
}

// fieldError returns a ParseError of the given kind bound to a field.
func fieldError(kind error, index int, field Field, text string) *ParseError {
	return &ParseError{Err: kind, Index: index, Field: field.Name, Text: text}
}

func outOfRangeError(index int, field Field, text string, value int) *ParseError {
	err := fieldError(ErrValueOutOfRange, index, field, text)
	err.Value, err.Min, err.Max = value, field.Min, field.Max
	return err
}

func inconsistentError(expression, reason string) *ParseError {
	return &ParseError{Err: ErrInconsistentFields, Index: -1, Text: expression, Reason: reason}
}

// illegalArgumentError returns an illegal argument error with a custom
// error message, which unwraps to ErrIllegalArgument.
func illegalArgumentError(message string) error {
	return fmt.Errorf("%w: %s", ErrIllegalArgument, message)
}
