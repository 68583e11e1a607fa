// Package engine implements the constraint-matching query engine that
// grounds a dialogue agent's belief state in backing records.
//
// A query names a domain and carries an ordered list of (slot, value)
// constraints. Three domains short-circuit before any matching:
//
//   - taxi: one synthesized record per call (sampled color, sampled
//     vehicle type, random 10-digit phone)
//   - police, hospital: the entire stored collection, constraints ignored
//
// Every other domain is a linear scan. For each record the constraints
// are evaluated in order as a conjunction:
//
//  1. Don't-care values ("dontcare", "not mentioned", ...) always pass.
//  2. The slot is resolved against the record's field names
//     case-insensitively, with a stemming fallback. An unresolved slot
//     passes in permissive mode (the reference behavior) or fails the
//     query in strict mode.
//  3. leaveAt/arriveBy compare as clock times encoded HOUR*100+MINUTE:
//     a record must leave no earlier / arrive no later than requested.
//  4. destination/departure pass unconditionally when open-field
//     matching is enabled (the default).
//  5. Everything else is trimmed, case-sensitive string equality.
//
// Comparison faults (malformed time strings, non-string field values)
// are classified by errors.go and, in permissive mode, treated as a
// pass rather than excluding the record. This tolerance is inherited
// from the reference behavior; strict mode surfaces the fault instead.
//
// DETERMINISM: the scan preserves store order, evaluation has no
// internal concurrency, and the only randomness (taxi synthesis) comes
// from an injectable source so tests can pin it.
package engine
