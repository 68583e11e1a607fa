package engine

import (
	"fmt"
	"log/slog"

	"github.com/roach88/grounddb/internal/domain"
	"github.com/roach88/grounddb/internal/store"
)

// taxiPhoneDigits is the length of the synthesized taxi phone number.
const taxiPhoneDigits = 10

// Engine answers belief-state queries against an immutable domain
// store.
//
// Thread-safety model:
//   - The store is read-only after load and shared without locking.
//   - Query() is safe from any goroutine; the only mutable dependency
//     is the random source, which must itself be concurrency-safe
//     (the default is).
//
// INVARIANTS:
//   - The store is never mutated by a query.
//   - Result order is store order; results are never re-sorted.
//   - Constraint evaluation order is the caller's constraint order.
type Engine struct {
	store   *store.Store
	stemmer Stemmer
	rng     Rand
	tokens  TokenGenerator

	// strictFields rejects constraints whose slot resolves to no
	// record field instead of passing them through.
	strictFields bool

	// strictValues rejects malformed time strings and non-string
	// record values instead of passing them through.
	strictValues bool
}

// Option configures engine construction.
type Option func(*Engine)

// WithStemmer injects the stemmer used by the field-resolution
// fallback. Default: SnowballStemmer.
func WithStemmer(s Stemmer) Option {
	return func(e *Engine) { e.stemmer = s }
}

// WithRand injects the random source for taxi synthesis.
// Default: the process-wide locked source.
func WithRand(r Rand) Option {
	return func(e *Engine) { e.rng = r }
}

// WithTokenGenerator injects the query-token generator used for log
// correlation. Default: UUIDv7Generator.
func WithTokenGenerator(g TokenGenerator) Option {
	return func(e *Engine) { e.tokens = g }
}

// WithStrictFields makes unresolved constraint slots an error instead
// of the reference pass-through.
func WithStrictFields(strict bool) Option {
	return func(e *Engine) { e.strictFields = strict }
}

// WithStrictValues makes comparison faults (malformed HH:MM strings,
// non-string record values) an error instead of the reference
// pass-through.
func WithStrictValues(strict bool) Option {
	return func(e *Engine) { e.strictValues = strict }
}

// New creates an Engine over a loaded store.
func New(s *store.Store, opts ...Option) *Engine {
	e := &Engine{
		store:   s,
		stemmer: SnowballStemmer{},
		rng:     lockedRand{},
		tokens:  UUIDv7Generator{},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// QueryOption configures a single query.
type QueryOption func(*queryConfig)

type queryConfig struct {
	matchOpen bool
}

// MatchOpenFields toggles the open-field exemption for destination and
// departure constraints. Enabled by default: the agent usually cannot
// commit to exact open-ended values, so those slots never exclude a
// record. Disable to force exact matching on them.
func MatchOpenFields(enabled bool) QueryOption {
	return func(c *queryConfig) { c.matchOpen = enabled }
}

// Query returns the records of d satisfying every constraint, in store
// order. Zero matches is a valid result, not an error.
//
// Taxi, police, and hospital short-circuit before any matching: taxi
// synthesizes exactly one record per call, police and hospital return
// their entire collections with constraints ignored.
//
// Errors: domain.ErrUnknownDomain for names outside the closed set;
// *ConstraintError only when a strict mode is enabled.
func (e *Engine) Query(d domain.Domain, constraints []domain.Constraint, opts ...QueryOption) ([]domain.Record, error) {
	cfg := queryConfig{matchOpen: true}
	for _, opt := range opts {
		opt(&cfg)
	}

	if !d.Valid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownDomain, d)
	}

	token := e.tokens.Generate()

	switch d {
	case domain.Taxi:
		rec, err := e.synthesizeTaxi()
		if err != nil {
			return nil, err
		}
		slog.Debug("taxi record synthesized", "token", token)
		return []domain.Record{rec}, nil

	case domain.Police, domain.Hospital:
		// Returned verbatim, constraints ignored.
		found := e.store.Records(d)
		slog.Debug("facility domain returned unfiltered",
			"token", token,
			"domain", d,
			"records", len(found),
		)
		return found, nil
	}

	var found []domain.Record
	for _, rec := range e.store.Records(d) {
		ok, err := e.matches(d, rec, constraints, cfg.matchOpen)
		if err != nil {
			return nil, err
		}
		if ok {
			found = append(found, rec)
		}
	}

	slog.Debug("query evaluated",
		"token", token,
		"domain", d,
		"constraints", len(constraints),
		"matches", len(found),
	)
	return found, nil
}

// matches reports whether a record satisfies every constraint.
//
// Faults are handled per the engine's strictness: permissive mode
// treats the faulted constraint as satisfied (reference behavior) and
// keeps going; strict mode returns the fault.
func (e *Engine) matches(d domain.Domain, rec domain.Record, constraints []domain.Constraint, matchOpen bool) (bool, error) {
	for _, c := range constraints {
		ok, fault := e.evaluate(d, rec, c, matchOpen)
		if fault != nil {
			if e.faultIsFatal(fault) {
				return false, fault
			}
			slog.Debug("constraint fault tolerated",
				"domain", d,
				"slot", c.Slot,
				"kind", fault.Kind,
			)
			continue
		}
		if !ok {
			return false, nil
		}
	}
	return true, nil
}

func (e *Engine) faultIsFatal(fault *ConstraintError) bool {
	if fault.Kind == FaultFieldNotFound {
		return e.strictFields
	}
	return e.strictValues
}

// synthesizeTaxi builds the single record a taxi query returns: a
// color and vehicle type sampled uniformly from the option lists, and
// a phone number of taxiPhoneDigits independent digits in [1,9].
func (e *Engine) synthesizeTaxi() (domain.Record, error) {
	opts := e.store.Taxi()
	if len(opts.Colors) == 0 || len(opts.Types) == 0 {
		return nil, fmt.Errorf("taxi options not loaded: %d colors, %d types", len(opts.Colors), len(opts.Types))
	}

	// Draw order is fixed (color, type, phone digits) so a pinned
	// random source yields a predictable record.
	color := opts.Colors[e.rng.Intn(len(opts.Colors))]
	vehicle := opts.Types[e.rng.Intn(len(opts.Types))]
	phone := make([]int, taxiPhoneDigits)
	for i := range phone {
		phone[i] = e.rng.Intn(9) + 1
	}

	return domain.Record{
		domain.TaxiColorField: color,
		domain.TaxiTypeField:  vehicle,
		domain.TaxiPhoneField: phone,
	}, nil
}
