package glossary

import (
	"context"
	"log/slog"

	"github.com/heartmarshall/glossary/internal/domain"
)

// Query translates text in the given direction. Unknown words are not an
// error; they come back marked in the rendered text. The only error is an
// invalid direction.
func (s *Service) Query(ctx context.Context, text string, dir domain.Direction) (string, error) {
	if !dir.IsValid() {
		return "", domain.NewValidationError("direction", "must be SOURCE_TO_TARGET or TARGET_TO_SOURCE")
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	key := cacheKey{generation: s.generation, direction: dir, text: domain.CollapseSpace(text)}
	if s.cache != nil {
		if out, ok := s.cache.Get(key); ok {
			return out, nil
		}
	}

	out := s.engine.Query(s.store, text, dir)
	if s.cache != nil {
		s.cache.Add(key, out)
	}

	s.log.DebugContext(ctx, "query",
		slog.String("direction", dir.String()),
		slog.Int("length", len(text)),
	)
	return out, nil
}
