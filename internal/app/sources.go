package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/glossary/data"
	"github.com/heartmarshall/glossary/internal/adapter/postgres"
	"github.com/heartmarshall/glossary/internal/adapter/postgres/entry"
	"github.com/heartmarshall/glossary/internal/adapter/provider/remote"
	"github.com/heartmarshall/glossary/internal/adapter/sqlite"
	"github.com/heartmarshall/glossary/internal/config"
	"github.com/heartmarshall/glossary/internal/service/glossary"
	"github.com/heartmarshall/glossary/internal/wordlist"
)

// Sources turns word-list URIs into glossary sources. Database connections
// are opened on first use and shared between sources; Close releases them.
//
// Supported URIs:
//
//	embed://library.properties           bundled list
//	file:///srv/lists/extra.yaml         local file (a bare path works too)
//	https://host/library.properties      remote list
//	pg://library                         list stored in PostgreSQL
//	sqlite:///var/lib/glossary.db?list=x list stored in SQLite
type Sources struct {
	db     config.DatabaseConfig
	enc    wordlist.Encoding
	logger *slog.Logger

	pool   *pgxpool.Pool
	repo   *entry.Repo
	sqlite map[string]*sqlite.Store
}

// NewSources creates a source factory.
func NewSources(db config.DatabaseConfig, enc wordlist.Encoding, logger *slog.Logger) *Sources {
	return &Sources{
		db:     db,
		enc:    enc,
		logger: logger,
		sqlite: make(map[string]*sqlite.Store),
	}
}

// BuildAll builds a source for every URI, in order.
func (s *Sources) BuildAll(ctx context.Context, uris []string) ([]glossary.Source, error) {
	out := make([]glossary.Source, 0, len(uris))
	for _, uri := range uris {
		src, err := s.Build(ctx, uri)
		if err != nil {
			return nil, err
		}
		out = append(out, src)
	}
	return out, nil
}

// Build creates the source named by uri.
func (s *Sources) Build(ctx context.Context, uri string) (glossary.Source, error) {
	if !strings.Contains(uri, "://") {
		return s.file(uri, uri)
	}

	u, err := url.Parse(uri)
	if err != nil {
		return nil, fmt.Errorf("source %q: %w", uri, err)
	}

	switch u.Scheme {
	case "embed":
		return wordlist.NewFileSource(uri, data.Baseline, u.Host+u.Path, s.enc)
	case "file":
		return s.file(uri, u.Host+u.Path)
	case "http", "https":
		return remote.NewProvider(uri, s.enc, s.logger)
	case "pg", "postgres":
		list := u.Host + strings.TrimPrefix(u.Path, "/")
		if list == "" {
			return nil, fmt.Errorf("source %q: list name is required", uri)
		}
		repo, err := s.entryRepo(ctx)
		if err != nil {
			return nil, fmt.Errorf("source %q: %w", uri, err)
		}
		return repo.Source(list), nil
	case "sqlite":
		path := u.Host + u.Path
		list := u.Query().Get("list")
		if path == "" || list == "" {
			return nil, fmt.Errorf("source %q: sqlite sources need a path and a list parameter", uri)
		}
		store, err := s.sqliteStore(ctx, path)
		if err != nil {
			return nil, fmt.Errorf("source %q: %w", uri, err)
		}
		return store.Source(path, list), nil
	}
	return nil, fmt.Errorf("source %q: unsupported scheme %q", uri, u.Scheme)
}

func (s *Sources) file(name, path string) (glossary.Source, error) {
	if path == "" {
		return nil, fmt.Errorf("source %q: empty path", name)
	}
	return wordlist.NewFileSource(name, os.DirFS(filepath.Dir(path)), filepath.Base(path), s.enc)
}

// Pool returns the PostgreSQL pool if any source opened one.
func (s *Sources) Pool() *pgxpool.Pool {
	return s.pool
}

func (s *Sources) entryRepo(ctx context.Context) (*entry.Repo, error) {
	if s.repo != nil {
		return s.repo, nil
	}

	pool, err := postgres.NewPool(ctx, s.db)
	if err != nil {
		return nil, err
	}
	if s.db.AutoMigrate {
		if err := postgres.Migrate(ctx, pool, s.logger); err != nil {
			pool.Close()
			return nil, err
		}
	}

	s.pool = pool
	s.repo = entry.New(pool, postgres.NewTxManager(pool))
	return s.repo, nil
}

func (s *Sources) sqliteStore(ctx context.Context, path string) (*sqlite.Store, error) {
	if st, ok := s.sqlite[path]; ok {
		return st, nil
	}
	st, err := sqlite.Open(ctx, path)
	if err != nil {
		return nil, err
	}
	s.sqlite[path] = st
	return st, nil
}

// Close releases every database opened by Build.
func (s *Sources) Close() {
	for path, st := range s.sqlite {
		if err := st.Close(); err != nil {
			s.logger.Warn("close sqlite store", slog.String("path", path), slog.String("error", err.Error()))
		}
	}
	clear(s.sqlite)
	if s.pool != nil {
		s.pool.Close()
		s.pool = nil
		s.repo = nil
	}
}
