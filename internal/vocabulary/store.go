// Package vocabulary implements the glossary's ordered multimap of
// (source word, target word) entries.
//
// A Store keeps entries in insertion order and never enforces uniqueness on
// either side. It is not safe for concurrent mutation; callers that share a
// Store between goroutines must guard it (see service/glossary).
package vocabulary

import (
	"context"
	"iter"
	"slices"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/glossary/internal/domain"
)

// Store is an insertion-ordered sequence of domain.Entry.
type Store struct {
	entries []domain.Entry
}

// New creates an empty Store.
func New() *Store {
	return &Store{}
}

// FromEntries creates a Store holding a copy of entries.
func FromEntries(entries []domain.Entry) *Store {
	s := New()
	s.AddAll(entries)
	return s
}

// Add appends e. Duplicates are never rejected.
func (s *Store) Add(e domain.Entry) {
	s.entries = append(s.entries, e)
}

// AddAll appends entries in order and returns the new size of the store.
func (s *Store) AddAll(entries []domain.Entry) int {
	s.entries = append(s.entries, entries...)
	return len(s.entries)
}

// ContainsKey reports whether any entry has the key k.
func (s *Store) ContainsKey(k string) bool {
	return slices.ContainsFunc(s.entries, func(e domain.Entry) bool { return e.Key == k })
}

// ContainsValue reports whether any entry has the value v.
func (s *Store) ContainsValue(v string) bool {
	return slices.ContainsFunc(s.entries, func(e domain.Entry) bool { return e.Value == v })
}

// Contains reports whether an entry equal to e is stored.
func (s *Store) Contains(e domain.Entry) bool {
	return slices.Contains(s.entries, e)
}

// Values returns every value paired with k, in insertion order.
// ok is false when k is not a key of any entry; a present key always
// yields at least one value.
func (s *Store) Values(k string) (values []string, ok bool) {
	for _, e := range s.entries {
		if e.Key == k {
			values = append(values, e.Value)
		}
	}
	return values, values != nil
}

// Keys returns every key paired with v, in insertion order.
// ok is false when v is not a value of any entry.
func (s *Store) Keys(v string) (keys []string, ok bool) {
	for _, e := range s.entries {
		if e.Value == v {
			keys = append(keys, e.Key)
		}
	}
	return keys, keys != nil
}

// AllKeys returns the key of every entry, in store order, duplicates included.
func (s *Store) AllKeys() []string {
	keys := make([]string, len(s.entries))
	for i, e := range s.entries {
		keys[i] = e.Key
	}
	return keys
}

// AllValues returns the value of every entry, in store order, duplicates included.
func (s *Store) AllValues() []string {
	values := make([]string, len(s.entries))
	for i, e := range s.entries {
		values[i] = e.Value
	}
	return values
}

// At returns the i-th entry. It panics if i is out of range.
func (s *Store) At(i int) domain.Entry {
	return s.entries[i]
}

// Range returns a copy of the entries in [lo, hi).
func (s *Store) Range(lo, hi int) []domain.Entry {
	return slices.Clone(s.entries[lo:hi])
}

// Entries returns a copy of all entries in store order.
func (s *Store) Entries() []domain.Entry {
	return slices.Clone(s.entries)
}

// Sort reorders entries ascending by key, comparing code points.
// Entries with equal keys keep their relative order.
func (s *Store) Sort() {
	slices.SortStableFunc(s.entries, func(a, b domain.Entry) int {
		return strings.Compare(a.Key, b.Key)
	})
}

// SortByValue reorders entries ascending by value. Entries with equal
// values keep their relative order.
func (s *Store) SortByValue() {
	slices.SortStableFunc(s.entries, func(a, b domain.Entry) int {
		return strings.Compare(a.Value, b.Value)
	})
}

// RemoveAdjacentDuplicatesByKey drops every entry whose key equals the key
// of the entry right before it and returns how many were dropped.
// Only consecutive runs collapse; call Sort first to group equal keys.
func (s *Store) RemoveAdjacentDuplicatesByKey() int {
	return s.removeAdjacent(func(e domain.Entry) string { return e.Key })
}

// RemoveAdjacentDuplicatesByValue is RemoveAdjacentDuplicatesByKey keyed on
// the value side. Call SortByValue first to group equal values.
func (s *Store) RemoveAdjacentDuplicatesByValue() int {
	return s.removeAdjacent(func(e domain.Entry) string { return e.Value })
}

func (s *Store) removeAdjacent(field func(domain.Entry) string) int {
	if len(s.entries) < 2 {
		return 0
	}
	kept := s.entries[:1]
	for _, e := range s.entries[1:] {
		if field(e) == field(kept[len(kept)-1]) {
			continue
		}
		kept = append(kept, e)
	}
	removed := len(s.entries) - len(kept)
	clear(s.entries[len(kept):])
	s.entries = kept
	return removed
}

// Len returns the number of entries.
func (s *Store) Len() int { return len(s.entries) }

// IsEmpty reports whether the store holds no entries.
func (s *Store) IsEmpty() bool { return len(s.entries) == 0 }

// Clear removes every entry.
func (s *Store) Clear() {
	s.entries = nil
}

// Equal reports whether both stores hold the same entries in the same order.
func (s *Store) Equal(o *Store) bool {
	if s == nil || o == nil {
		return s == o
	}
	return slices.Equal(s.entries, o.entries)
}

// Clone returns an independent copy of the store.
func (s *Store) Clone() *Store {
	return &Store{entries: slices.Clone(s.entries)}
}

// All iterates over the entries in store order.
func (s *Store) All() iter.Seq2[int, domain.Entry] {
	return func(yield func(int, domain.Entry) bool) {
		for i, e := range s.entries {
			if !yield(i, e) {
				return
			}
		}
	}
}

// ParallelEach calls fn for every entry using at most workers goroutines.
// The first error returned by fn cancels the remaining calls and is returned.
// fn must not mutate the store.
func (s *Store) ParallelEach(ctx context.Context, workers int, fn func(ctx context.Context, e domain.Entry) error) error {
	g, gctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}
	for _, e := range s.entries {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			return fn(gctx, e)
		})
	}
	return g.Wait()
}
