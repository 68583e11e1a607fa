package engine

// dontCareTokens enumerates the literal belief-state values meaning
// "no preference". Drawn verbatim from the annotation scheme, including
// the tokenizer artifact "do n't care". Matching is exact - no trimming
// and no case folding - because the annotations emit these spellings
// as-is.
var dontCareTokens = []string{
	"",
	"dont care",
	"not mentioned",
	"don't care",
	"dontcare",
	"do n't care",
}

// IsDontCare reports whether a constraint value is a wildcard.
// A don't-care constraint is vacuously satisfied by every record.
func IsDontCare(value string) bool {
	for _, token := range dontCareTokens {
		if value == token {
			return true
		}
	}
	return false
}
