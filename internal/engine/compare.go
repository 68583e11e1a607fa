package engine

import (
	"strconv"
	"strings"

	"github.com/roach88/grounddb/internal/domain"
)

// Slots with time-window comparison semantics.
const (
	slotLeaveAt  = "leaveAt"
	slotArriveBy = "arriveBy"
)

// openFields are exempt from filtering when open-field matching is
// enabled: the agent tolerates open-ended destination/departure values.
var openFields = map[string]struct{}{
	"destination": {},
	"departure":   {},
}

// encodeClock parses an "HH:MM" clock time into HOUR*100+MINUTE.
// "09:30" encodes to 930, which makes the lexical time order the
// numeric order. Extra ":"-separated fragments beyond the minute are
// ignored, matching the reference parser.
func encodeClock(s string) (int, error) {
	parts := strings.Split(s, ":")
	if len(parts) < 2 {
		return 0, strconv.ErrSyntax
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, err
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, err
	}
	return hour*100 + minute, nil
}

// evaluate applies a single constraint to a record.
//
// Returns (satisfied, fault). A non-nil fault means the constraint
// could not be evaluated at all; the caller decides whether that
// passes (permissive, the reference behavior) or aborts the query
// (strict). When fault is non-nil the satisfied value is meaningless.
//
// The check order is significant and mirrors the reference:
// wildcard, field resolution, time windows, open fields, equality.
// In particular a leaveAt constraint is never treated as an open
// field, even though both checks could apply to train queries.
func (e *Engine) evaluate(d domain.Domain, rec domain.Record, c domain.Constraint, matchOpen bool) (bool, *ConstraintError) {
	if IsDontCare(c.Value) {
		return true, nil
	}

	field, ok := resolveField(rec, c.Slot, e.stemmer)
	if !ok {
		return false, &ConstraintError{
			Kind:   FaultFieldNotFound,
			Domain: d,
			Slot:   c.Slot,
			Value:  c.Value,
		}
	}

	switch field {
	case slotLeaveAt:
		// Record must leave no earlier than requested.
		want, got, fault := e.clockPair(d, rec, field, c)
		if fault != nil {
			return false, fault
		}
		return got >= want, nil

	case slotArriveBy:
		// Record must arrive no later than requested.
		want, got, fault := e.clockPair(d, rec, field, c)
		if fault != nil {
			return false, fault
		}
		return got <= want, nil
	}

	if matchOpen {
		if _, open := openFields[field]; open {
			return true, nil
		}
	}

	recValue, ok := rec[field].(string)
	if !ok {
		return false, &ConstraintError{
			Kind:   FaultBadValue,
			Domain: d,
			Slot:   c.Slot,
			Value:  c.Value,
			Detail: "record value is not a string",
		}
	}
	return strings.TrimSpace(c.Value) == strings.TrimSpace(recValue), nil
}

// clockPair encodes the constraint value and the record's field value
// as clock times. Either side failing to parse is a BAD_TIME fault.
func (e *Engine) clockPair(d domain.Domain, rec domain.Record, field string, c domain.Constraint) (want, got int, fault *ConstraintError) {
	recValue, ok := rec[field].(string)
	if !ok {
		return 0, 0, &ConstraintError{
			Kind:   FaultBadValue,
			Domain: d,
			Slot:   c.Slot,
			Value:  c.Value,
			Detail: "record value is not a string",
		}
	}

	want, err := encodeClock(c.Value)
	if err != nil {
		return 0, 0, &ConstraintError{
			Kind:   FaultBadTime,
			Domain: d,
			Slot:   c.Slot,
			Value:  c.Value,
			Detail: "constraint value is not HH:MM",
		}
	}
	got, err = encodeClock(recValue)
	if err != nil {
		return 0, 0, &ConstraintError{
			Kind:   FaultBadTime,
			Domain: d,
			Slot:   c.Slot,
			Value:  c.Value,
			Detail: "record value " + strconv.Quote(recValue) + " is not HH:MM",
		}
	}
	return want, got, nil
}
