// Package domain defines the core value types shared by the grounding
// database: the closed set of dialogue domains, the free-schema Record,
// and the Constraint pairs produced by a belief state.
package domain

import (
	"errors"
	"fmt"
)

// Domain identifies one of the seven backing datasets.
//
// The set is closed - there is no dynamic registration. Code that
// receives a domain name from the outside must go through Parse,
// which rejects anything outside the set.
type Domain string

const (
	Restaurant Domain = "restaurant"
	Hotel      Domain = "hotel"
	Attraction Domain = "attraction"
	Train      Domain = "train"
	Hospital   Domain = "hospital"
	Taxi       Domain = "taxi"
	Police     Domain = "police"
)

// ErrUnknownDomain is returned for domain names outside the closed set.
var ErrUnknownDomain = errors.New("unknown domain")

// all lists every domain in canonical order. The order is load order
// and the order reported by CLI listings; it never changes.
var all = []Domain{Restaurant, Hotel, Attraction, Train, Hospital, Taxi, Police}

// All returns the domains in canonical order.
// The returned slice is a copy and may be mutated by the caller.
func All() []Domain {
	out := make([]Domain, len(all))
	copy(out, all)
	return out
}

// Parse converts a raw domain name into a Domain.
// Returns ErrUnknownDomain (wrapped with the offending name) for
// anything outside the closed set. Matching is exact - no case
// folding, mirroring the dataset file names.
func Parse(name string) (Domain, error) {
	d := Domain(name)
	if !d.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownDomain, name)
	}
	return d, nil
}

// Valid reports whether d is one of the seven known domains.
func (d Domain) Valid() bool {
	switch d {
	case Restaurant, Hotel, Attraction, Train, Hospital, Taxi, Police:
		return true
	}
	return false
}

func (d Domain) String() string {
	return string(d)
}
