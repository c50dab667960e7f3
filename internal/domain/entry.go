package domain

// Entry is one lexical pair of the glossary: a source-vocabulary word (Key)
// and its target-vocabulary counterpart (Value). Neither side is unique;
// homonyms and synonyms are stored as separate entries.
type Entry struct {
	Key   string
	Value string
}

// NewEntry creates an Entry.
func NewEntry(key, value string) Entry {
	return Entry{Key: key, Value: value}
}

// Swap returns the entry with key and value exchanged.
func (e Entry) Swap() Entry {
	return Entry{Key: e.Value, Value: e.Key}
}

// Side returns the word on the given side of the entry.
func (e Entry) Side(s Side) string {
	if s == SideTarget {
		return e.Value
	}
	return e.Key
}
