package glossary

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/glossary/internal/domain"
)

// RefreshResult describes a completed load.
type RefreshResult struct {
	Generation string
	Entries    int
	Sources    []string
	Duration   time.Duration
}

// LoadBaseline loads every baseline source, in order, into the store. Any
// error is fatal for the caller: nothing is served without a baseline.
func (s *Service) LoadBaseline(ctx context.Context) (RefreshResult, error) {
	start := time.Now()

	entries, err := fetchAll(ctx, s.baselineSources)
	if err != nil {
		return RefreshResult{}, fmt.Errorf("load baseline: %w", err)
	}
	if len(entries) == 0 {
		return RefreshResult{}, fmt.Errorf("load baseline: %w", ErrEmptyWordList)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	res := s.replaceLocked(entries, s.baselineSources)
	res.Duration = time.Since(start)

	s.log.InfoContext(ctx, "baseline loaded",
		slog.String("generation", res.Generation),
		slog.Int("entries", res.Entries),
		slog.Any("sources", res.Sources),
	)
	return res, nil
}

// Refresh replaces the word list with the contents of the refresh sources.
// Only one refresh runs at a time; a concurrent call gets ErrAlreadyUpdating.
// Downloads happen outside the lock so queries keep being served. If any
// source fails or the result is empty, the previous word list stays in place
// and the error wraps ErrRefreshFailed.
func (s *Service) Refresh(ctx context.Context) (RefreshResult, error) {
	if len(s.refreshSources) == 0 {
		return RefreshResult{}, ErrNoRefreshSources
	}
	if !s.updating.CompareAndSwap(false, true) {
		return RefreshResult{}, ErrAlreadyUpdating
	}
	defer s.updating.Store(false)

	start := time.Now()
	s.log.InfoContext(ctx, "refresh started", slog.Int("sources", len(s.refreshSources)))

	fetchCtx, cancel := context.WithTimeout(ctx, s.fetchTimeout)
	defer cancel()

	entries, err := fetchAll(fetchCtx, s.refreshSources)
	if err != nil {
		s.log.ErrorContext(ctx, "refresh failed, keeping current word list", slog.String("error", err.Error()))
		return RefreshResult{}, fmt.Errorf("%w: %w", ErrRefreshFailed, err)
	}

	if len(entries) == 0 {
		s.log.ErrorContext(ctx, "refresh produced no entries, keeping current word list")
		return RefreshResult{}, fmt.Errorf("%w: %w", ErrRefreshFailed, ErrEmptyWordList)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	res := s.replaceLocked(entries, s.refreshSources)
	res.Duration = time.Since(start)

	s.log.InfoContext(ctx, "refresh completed",
		slog.String("generation", res.Generation),
		slog.Int("entries", res.Entries),
		slog.Duration("duration", res.Duration),
	)
	return res, nil
}

// Updating reports whether a refresh is in progress.
func (s *Service) Updating() bool {
	return s.updating.Load()
}

// replaceLocked installs entries as the new baseline. s.mu must be held for writing.
func (s *Service) replaceLocked(entries []domain.Entry, sources []Source) RefreshResult {
	s.store.Clear()
	n := s.store.AddAll(entries)

	s.generation = s.ids.Next()
	s.loadedAt = time.Now()
	s.sources = sourceNames(sources)
	if s.cache != nil {
		s.cache.Purge()
	}

	return RefreshResult{
		Generation: s.generation.String(),
		Entries:    n,
		Sources:    s.sources,
	}
}

// fetchAll downloads every source concurrently and concatenates the results
// in source order. The first failure cancels the rest.
func fetchAll(ctx context.Context, sources []Source) ([]domain.Entry, error) {
	if len(sources) == 0 {
		return nil, errors.New("no sources")
	}

	results := make([][]domain.Entry, len(sources))
	g, gctx := errgroup.WithContext(ctx)
	for i, src := range sources {
		g.Go(func() error {
			entries, err := src.Fetch(gctx)
			if err != nil {
				return fmt.Errorf("source %s: %w", src.Name(), err)
			}
			results[i] = entries
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var total int
	for _, r := range results {
		total += len(r)
	}
	entries := make([]domain.Entry, 0, total)
	for _, r := range results {
		entries = append(entries, r...)
	}
	return entries, nil
}

func sourceNames(sources []Source) []string {
	names := make([]string, len(sources))
	for i, src := range sources {
		names[i] = src.Name()
	}
	return names
}
