// Package glossary serves translations from a shared vocabulary store and
// keeps that store up to date.
package glossary

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/oklog/ulid/v2"

	"github.com/heartmarshall/glossary/internal/domain"
	"github.com/heartmarshall/glossary/internal/translate"
	"github.com/heartmarshall/glossary/internal/vocabulary"
)

// Source produces an ordered word list.
type Source interface {
	Name() string
	Fetch(ctx context.Context) ([]domain.Entry, error)
}

// Options configures a Service.
type Options struct {
	// BaselineSources are loaded in order at startup.
	BaselineSources []Source
	// RefreshSources replace the word list on Refresh.
	RefreshSources []Source
	// CacheSize bounds the query cache; zero disables it.
	CacheSize int
	// FetchTimeout bounds one Refresh download phase.
	FetchTimeout time.Duration
}

type cacheKey struct {
	generation ulid.ULID
	direction  domain.Direction
	text       string
}

// Service owns the vocabulary store. Queries share a read lock; loads and
// refreshes replace the contents under the write lock.
type Service struct {
	log    *slog.Logger
	engine *translate.Engine
	ids    *domain.LoadIDs
	cache  *lru.Cache[cacheKey, string]

	baselineSources []Source
	refreshSources  []Source
	fetchTimeout    time.Duration

	updating atomic.Bool

	mu         sync.RWMutex
	store      *vocabulary.Store
	generation ulid.ULID
	loadedAt   time.Time
	sources    []string
}

// NewService creates a Service with an empty store. Call LoadBaseline before
// serving queries.
func NewService(logger *slog.Logger, opts Options) (*Service, error) {
	s := &Service{
		log:             logger.With("service", "glossary"),
		engine:          translate.NewEngine(),
		ids:             domain.NewLoadIDs(),
		baselineSources: opts.BaselineSources,
		refreshSources:  opts.RefreshSources,
		fetchTimeout:    opts.FetchTimeout,
		store:           vocabulary.New(),
	}
	if s.fetchTimeout <= 0 {
		s.fetchTimeout = 30 * time.Second
	}
	if opts.CacheSize > 0 {
		cache, err := lru.New[cacheKey, string](opts.CacheSize)
		if err != nil {
			return nil, err
		}
		s.cache = cache
	}
	return s, nil
}

// Ready reports whether the store holds any entries.
func (s *Service) Ready() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return !s.store.IsEmpty()
}
