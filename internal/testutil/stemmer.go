package testutil

// FakeStemmer maps words to stems through a fixed table, so resolver
// tests do not depend on the Snowball algorithm's output.
//
// Words absent from the table stem to themselves.
type FakeStemmer struct {
	Stems map[string]string
}

// Stem returns the table entry for word, or word itself when missing.
func (s FakeStemmer) Stem(word string) string {
	if stem, ok := s.Stems[word]; ok {
		return stem
	}
	return word
}
