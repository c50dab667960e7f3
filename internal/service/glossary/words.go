package glossary

import (
	"context"
	"time"

	"github.com/heartmarshall/glossary/internal/domain"
)

// WordList is the sorted, de-duplicated vocabulary of one side.
type WordList struct {
	Side  domain.Side
	Words []string
	Count int
}

// Words lists the distinct words of one side in code-point order.
func (s *Service) Words(ctx context.Context, side domain.Side) (WordList, error) {
	if !side.IsValid() {
		return WordList{}, domain.NewValidationError("side", "must be SOURCE or TARGET")
	}
	if err := ctx.Err(); err != nil {
		return WordList{}, err
	}

	s.mu.RLock()
	view := s.store.Clone()
	s.mu.RUnlock()

	var words []string
	if side == domain.SideTarget {
		view.SortByValue()
		view.RemoveAdjacentDuplicatesByValue()
		words = view.AllValues()
	} else {
		view.Sort()
		view.RemoveAdjacentDuplicatesByKey()
		words = view.AllKeys()
	}

	return WordList{Side: side, Words: words, Count: len(words)}, nil
}

// Stats describes the currently served word list.
type Stats struct {
	Entries        int
	SourceWords    int
	TargetWords    int
	Generation     string
	LoadedAt       time.Time
	Sources        []string
	Updating       bool
	RefreshSources int
}

// Stats returns a snapshot of the store metadata.
func (s *Service) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make(map[string]struct{})
	values := make(map[string]struct{})
	for _, e := range s.store.All() {
		keys[e.Key] = struct{}{}
		values[e.Value] = struct{}{}
	}

	var generation string
	if !s.loadedAt.IsZero() {
		generation = s.generation.String()
	}

	return Stats{
		Entries:        s.store.Len(),
		SourceWords:    len(keys),
		TargetWords:    len(values),
		Generation:     generation,
		LoadedAt:       s.loadedAt,
		Sources:        append([]string(nil), s.sources...),
		Updating:       s.updating.Load(),
		RefreshSources: len(s.refreshSources),
	}
}
