// Package testutil provides deterministic fakes for the engine's
// injectable dependencies.
package testutil

import "sync"

// SequenceRand returns a predetermined sequence of values from Intn,
// then zeros once the sequence is exhausted. Injecting it pins the
// taxi draw order: color index, type index, ten phone digits.
//
// Each value is taken modulo n so a scripted sequence can never push
// Intn out of range.
//
// Thread-safety: safe for concurrent use via internal mutex.
type SequenceRand struct {
	mu     sync.Mutex
	values []int
	idx    int
}

// NewSequenceRand creates a SequenceRand yielding values in order.
// With no values every draw is 0: first option chosen, phone digits
// all 1.
func NewSequenceRand(values ...int) *SequenceRand {
	return &SequenceRand{values: values}
}

// Intn returns the next scripted value modulo n, or 0 when the script
// is exhausted. Panics if n <= 0, like math/rand.
func (r *SequenceRand) Intn(n int) int {
	if n <= 0 {
		panic("SequenceRand: Intn called with n <= 0")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.idx >= len(r.values) {
		return 0
	}
	v := r.values[r.idx] % n
	r.idx++
	return v
}
