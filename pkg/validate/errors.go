package validate

import (
	"fmt"
	"strings"
)

var (
	// ErrValidation is the category every validation failure wraps.
	ErrValidation = fmt.Errorf("validation failed")

	// ErrMissingKeys is returned by RequireKeys when a required key is absent.
	ErrMissingKeys = fmt.Errorf("%w: missing required keys", ErrValidation)
)

// Error describes the first field that failed validation.
type Error struct {
	Field string // offending field name
	Rule  string // "type" or the constraint kind that failed
	Msg   string
}

func (e *Error) Error() string {
	return e.Msg
}

// Unwrap lets callers match any validation failure with errors.Is(err, ErrValidation).
func (e *Error) Unwrap() error {
	return ErrValidation
}

func typeError(field string, want Type) *Error {
	return &Error{
		Field: field,
		Rule:  "type",
		Msg:   fmt.Sprintf("data type is not valid for %s: expected %s", field, want),
	}
}

func constraintError(field string, kind Kind) *Error {
	return &Error{
		Field: field,
		Rule:  string(kind),
		Msg:   fmt.Sprintf("%s property data did not pass in %s control", field, kind),
	}
}

func missingTokensError(field string, missing []string) *Error {
	return &Error{
		Field: field,
		Rule:  string(KindContains),
		Msg:   fmt.Sprintf("%s: %s not found", field, strings.Join(missing, ", ")),
	}
}

func missingKeysError(keys []string) error {
	return fmt.Errorf("%w: options object must have %s keys", ErrMissingKeys, strings.Join(keys, ", "))
}
