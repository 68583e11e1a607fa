package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/roach88/grounddb/internal/domain"
)

// Store holds the loaded collections, keyed by domain. Immutable after
// construction.
type Store struct {
	records map[domain.Domain][]domain.Record
	taxi    domain.TaxiOptions
}

// DataFile returns the dataset file name for a domain, e.g.
// "train_db.json".
func DataFile(d domain.Domain) string {
	return d.String() + "_db.json"
}

// Load reads every domain's dataset from dir.
//
// Record domains (everything but taxi) must be JSON arrays of objects;
// the taxi file must be an object carrying the taxi_colors and
// taxi_types option lists. The first missing or malformed file fails
// the whole load - there is no partial or degraded mode.
func Load(dir string) (*Store, error) {
	s := &Store{records: make(map[domain.Domain][]domain.Record, len(domain.All()))}

	for _, d := range domain.All() {
		path := filepath.Join(dir, DataFile(d))
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("load domain %s: %w", d, err)
		}

		if d == domain.Taxi {
			if err := json.Unmarshal(data, &s.taxi); err != nil {
				return nil, fmt.Errorf("load domain %s: parse %s: %w", d, path, err)
			}
			continue
		}

		var records []domain.Record
		if err := json.Unmarshal(data, &records); err != nil {
			return nil, fmt.Errorf("load domain %s: parse %s: %w", d, path, err)
		}
		s.records[d] = records
	}

	return s, nil
}

// New builds a store from in-memory collections. Used by tests and by
// OpenSnapshot; production code loads from a dataset directory.
//
// Records are cloned on the way in, so callers keep ownership of the
// collections they pass and cannot break the store's immutability
// afterwards.
func New(records map[domain.Domain][]domain.Record, taxi domain.TaxiOptions) *Store {
	copied := make(map[domain.Domain][]domain.Record, len(records))
	for d, recs := range records {
		cloned := make([]domain.Record, len(recs))
		for i, rec := range recs {
			cloned[i] = rec.Clone()
		}
		copied[d] = cloned
	}
	return &Store{records: copied, taxi: taxi}
}

// Records returns the collection for a record-backed domain, in storage
// order. Returns nil for taxi (which has option lists, not records) and
// for unknown domains.
//
// The returned slice is the store's own backing slice - callers must
// treat it as read-only.
func (s *Store) Records(d domain.Domain) []domain.Record {
	return s.records[d]
}

// Taxi returns the taxi option lists.
func (s *Store) Taxi() domain.TaxiOptions {
	return s.taxi
}

// Count returns the number of stored records for a domain. For taxi it
// reports the number of color options, which is what CLI listings show.
func (s *Store) Count(d domain.Domain) int {
	if d == domain.Taxi {
		return len(s.taxi.Colors)
	}
	return len(s.records[d])
}
