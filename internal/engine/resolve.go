package engine

import (
	"strings"

	"github.com/kljensen/snowball/english"
	"golang.org/x/text/unicode/norm"

	"github.com/roach88/grounddb/internal/domain"
)

// Stemmer reduces a word to its grammatical stem. Implemented by
// SnowballStemmer (production) and testutil.FakeStemmer (tests).
//
// The stemmer is the fallback of field resolution: "areas" still finds
// an "area" field. Implementations must be safe for concurrent use.
type Stemmer interface {
	Stem(word string) string
}

// SnowballStemmer stems English words using the Snowball (Porter2)
// algorithm, matching the Porter stemmer the annotation pipeline uses.
//
// Stateless and safe for concurrent use.
type SnowballStemmer struct{}

// Stem returns the English stem of word. Stop words are stemmed like
// any other word so resolution stays purely mechanical.
func (SnowballStemmer) Stem(word string) string {
	return english.Stem(word, false)
}

// foldKey lowers a field name for case-insensitive comparison.
// NFC normalization first, so composed and decomposed spellings of the
// same name compare equal (dataset values are ASCII today, but field
// resolution should not depend on that).
func foldKey(name string) string {
	return strings.ToLower(norm.NFC.String(name))
}

// resolveField maps a constraint slot to the actual field name present
// on a record.
//
// Resolution is two-pass: first a case-insensitive match of the slot
// itself, then a match of the slot's stem. Returns the record's own
// spelling of the field name, so later lookups hit the map directly.
//
// The second return is false when neither pass finds a field; the
// caller decides whether that passes the constraint (permissive) or
// fails the query (strict).
func resolveField(rec domain.Record, slot string, stemmer Stemmer) (string, bool) {
	if name, ok := matchFold(rec, foldKey(slot)); ok {
		return name, true
	}
	return matchFold(rec, foldKey(stemmer.Stem(slot)))
}

// matchFold finds the record field whose folded name equals key. When
// several field names fold to the same key the lexicographically
// smallest wins, so resolution never depends on map iteration order.
func matchFold(rec domain.Record, key string) (string, bool) {
	var best string
	found := false
	for name := range rec {
		if foldKey(name) != key {
			continue
		}
		if !found || name < best {
			best = name
			found = true
		}
	}
	return best, found
}
