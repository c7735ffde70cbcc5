package ssconf

//go:generate go tool errtrace -w .

import (
	"fmt"

	"github.com/ghettovoice/ssconf/internal/errorutil"
	"github.com/ghettovoice/ssconf/internal/util"
)

// ErrInvalidField is the sentinel matched by every field validation error.
const ErrInvalidField errorutil.Error = "invalid config field"

// FieldError reports a configuration field that failed validation.
// It wraps [ErrInvalidField] and, when the validator produced one,
// the underlying cause.
type FieldError struct {
	// Field is the configuration field name: "host", "port", "method".
	Field string
	// Value is the offending raw input.
	Value string
	// Cause is the underlying validation error, if any.
	Cause error
}

func newFieldErr(field, value string, cause error) error {
	return &FieldError{Field: field, Value: value, Cause: cause} //errtrace:skip
}

func (e *FieldError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%s %s: %q", ErrInvalidField, e.Field, util.Ellipsis(e.Value, 128))
}

func (e *FieldError) Unwrap() []error {
	if e.Cause == nil {
		return []error{ErrInvalidField}
	}
	return []error{ErrInvalidField, e.Cause}
}
