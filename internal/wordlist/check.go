package wordlist

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"unicode"

	"github.com/heartmarshall/glossary/internal/domain"
	"github.com/heartmarshall/glossary/internal/vocabulary"
)

// Check reports entries that no query could ever match: empty sides, sides
// containing whitespace, source words with upper-case letters, and target
// words that do not start with a capital letter. Entries are checked
// concurrently on up to workers goroutines. The result is nil or a
// *domain.ValidationError listing every problem in a stable order.
func Check(ctx context.Context, entries []domain.Entry, workers int) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var (
		mu       sync.Mutex
		problems []domain.FieldError
	)

	store := vocabulary.FromEntries(entries)
	err := store.ParallelEach(ctx, workers, func(ctx context.Context, e domain.Entry) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		found := checkEntry(e)
		if len(found) == 0 {
			return nil
		}
		mu.Lock()
		problems = append(problems, found...)
		mu.Unlock()
		return nil
	})
	if err != nil {
		return err
	}
	if len(problems) == 0 {
		return nil
	}

	slices.SortFunc(problems, func(a, b domain.FieldError) int {
		if c := strings.Compare(a.Field, b.Field); c != 0 {
			return c
		}
		return strings.Compare(a.Message, b.Message)
	})
	return domain.NewValidationErrors(slices.Compact(problems))
}

func checkEntry(e domain.Entry) []domain.FieldError {
	var out []domain.FieldError
	add := func(field, format string, args ...any) {
		out = append(out, domain.FieldError{Field: field, Message: fmt.Sprintf(format, args...)})
	}

	switch {
	case e.Key == "":
		add("source", "empty source word for target %q", e.Value)
	case strings.ContainsFunc(e.Key, unicode.IsSpace):
		add("source", "%q contains whitespace", e.Key)
	case strings.ToLower(e.Key) != e.Key:
		add("source", "%q must be lower case", e.Key)
	}

	switch {
	case e.Value == "":
		add("target", "empty target word for source %q", e.Key)
	case strings.ContainsFunc(e.Value, unicode.IsSpace):
		add("target", "%q contains whitespace", e.Value)
	case !domain.IsCapitalized(e.Value):
		add("target", "%q must start with a capital letter", e.Value)
	}
	return out
}
