package models

import (
	"errors"
	"fmt"
)

// ValidationError reports malformed input.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Reason)
}

// Invalid returns a ValidationError for field.
func Invalid(field, format string, args ...any) error {
	return &ValidationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// DomainError reports an operation that would break a ledger invariant,
// e.g. deleting the base currency or paying a settled debt.
type DomainError struct {
	Reason string
}

func (e *DomainError) Error() string { return e.Reason }

// Rejected returns a DomainError with the formatted reason.
func Rejected(format string, args ...any) error {
	return &DomainError{Reason: fmt.Sprintf(format, args...)}
}

// IsValidation reports whether err wraps a ValidationError.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

// IsDomain reports whether err wraps a DomainError.
func IsDomain(err error) bool {
	var d *DomainError
	return errors.As(err, &d)
}
