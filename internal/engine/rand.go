package engine

import "math/rand"

// Rand is the random source used for taxi synthesis. Satisfied by
// *math/rand.Rand; tests inject testutil.SequenceRand to pin the
// sampled color, type, and phone digits.
type Rand interface {
	// Intn returns a uniform value in [0,n). Panics if n <= 0.
	Intn(n int) int
}

// lockedRand delegates to the package-level math/rand functions.
// rand.NewSource is not safe for concurrent use, so the default engine
// source goes through the top-level locked functions instead.
type lockedRand struct{}

func (lockedRand) Intn(n int) int { return rand.Intn(n) }
