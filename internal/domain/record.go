package domain

// Record is one entry in a domain's dataset: a field-name-to-value
// mapping whose schema is whatever the backing file defines. Values
// are strings in the shipped datasets; the engine treats non-string
// values as comparison faults rather than enforcing a schema here.
//
// The synthesized taxi record is the one place nested values appear
// (taxi_phone is a digit slice).
type Record map[string]any

// Clone returns a shallow copy of the record. Field values are shared,
// which is safe because records are never mutated after load.
func (r Record) Clone() Record {
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Constraint is a single (slot, value) pair from a belief state.
// A query carries an ordered slice of constraints interpreted as a
// conjunction: a record matches only if every constraint holds.
type Constraint struct {
	Slot  string
	Value string
}

// TaxiOptions holds the two option lists backing the taxi domain.
// Taxi queries do not scan records; they synthesize one record per
// call by sampling from these lists.
type TaxiOptions struct {
	Colors []string `json:"taxi_colors"`
	Types  []string `json:"taxi_types"`
}

// Synthesized taxi record field names.
const (
	TaxiColorField = "taxi_colors"
	TaxiTypeField  = "taxi_types"
	TaxiPhoneField = "taxi_phone"
)
