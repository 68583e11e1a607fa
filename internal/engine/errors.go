package engine

import (
	"errors"
	"fmt"

	"github.com/roach88/grounddb/internal/domain"
)

// FaultKind categorizes constraint evaluation faults.
//
// The reference behavior conflates all of these into a single silent
// pass-through. They are kept distinct here so strict mode can reject
// them individually and so logs name the actual failure.
type FaultKind string

const (
	// FaultFieldNotFound indicates the slot resolved to no record field,
	// even after the stemming fallback.
	FaultFieldNotFound FaultKind = "FIELD_NOT_FOUND"

	// FaultBadTime indicates a leaveAt/arriveBy value that does not
	// parse as an "HH:MM" clock time.
	FaultBadTime FaultKind = "BAD_TIME"

	// FaultBadValue indicates a record field whose value is not a
	// string and therefore cannot be compared.
	FaultBadValue FaultKind = "BAD_VALUE"
)

// ConstraintError describes a single constraint that could not be
// evaluated against a record. In permissive mode these are logged and
// swallowed; in strict mode they abort the query.
type ConstraintError struct {
	Kind   FaultKind
	Domain domain.Domain
	Slot   string
	Value  string
	Detail string
}

// Error implements the error interface.
func (e *ConstraintError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: constraint %q=%q in domain %s: %s", e.Kind, e.Slot, e.Value, e.Domain, e.Detail)
	}
	return fmt.Sprintf("%s: constraint %q=%q in domain %s", e.Kind, e.Slot, e.Value, e.Domain)
}

// IsFieldNotFound reports whether err is a field-resolution fault.
// Uses errors.As to handle wrapped errors.
func IsFieldNotFound(err error) bool {
	var ce *ConstraintError
	return errors.As(err, &ce) && ce.Kind == FaultFieldNotFound
}

// IsBadTime reports whether err is a time-parse fault.
func IsBadTime(err error) bool {
	var ce *ConstraintError
	return errors.As(err, &ce) && ce.Kind == FaultBadTime
}
