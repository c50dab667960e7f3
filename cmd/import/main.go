// Command import loads a word-list file into PostgreSQL or SQLite, replacing
// the stored list of the same name in one transaction. The server can then
// read it through a pg:// or sqlite:// source.
//
// Flags:
//
//	--file      word-list file (.properties, .txt, .yaml, .yml)
//	--list      name of the stored list (default: file name without extension)
//	--sqlite    SQLite database path; without it the configured PostgreSQL is used
//	--encoding  file encoding (default: utf-8)
//	--migrate   apply PostgreSQL migrations before importing
//	--strict    refuse to import entries that no query could match
//	--workers   goroutines used to check entries (default: 4)
//	--dry-run   check the file without writing
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/heartmarshall/glossary/internal/adapter/postgres"
	"github.com/heartmarshall/glossary/internal/adapter/postgres/entry"
	"github.com/heartmarshall/glossary/internal/adapter/sqlite"
	"github.com/heartmarshall/glossary/internal/app"
	"github.com/heartmarshall/glossary/internal/config"
	"github.com/heartmarshall/glossary/internal/domain"
	"github.com/heartmarshall/glossary/internal/wordlist"
)

// listWriter is satisfied by both storage backends.
type listWriter interface {
	ReplaceList(ctx context.Context, list string, entries []domain.Entry) (string, error)
}

var (
	_ listWriter = (*entry.Repo)(nil)
	_ listWriter = (*sqlite.Store)(nil)
)

func main() {
	fileFlag := flag.String("file", "", "word-list file to import")
	listFlag := flag.String("list", "", "stored list name (default: file name)")
	sqliteFlag := flag.String("sqlite", "", "SQLite database path (default: PostgreSQL)")
	encodingFlag := flag.String("encoding", "utf-8", "file encoding")
	migrateFlag := flag.Bool("migrate", false, "apply PostgreSQL migrations first")
	strictFlag := flag.Bool("strict", false, "fail on entries no query could match")
	workersFlag := flag.Int("workers", 4, "goroutines used to check entries")
	dryRunFlag := flag.Bool("dry-run", false, "check the file without writing")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)

	if *fileFlag == "" {
		logger.Error("--file is required")
		os.Exit(1)
	}
	list := *listFlag
	if list == "" {
		list = strings.TrimSuffix(filepath.Base(*fileFlag), filepath.Ext(*fileFlag))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	enc, err := wordlist.ParseEncoding(*encodingFlag)
	if err != nil {
		logger.Error("parse encoding", slog.String("error", err.Error()))
		os.Exit(1)
	}

	src, err := wordlist.NewFileSource(*fileFlag, os.DirFS(filepath.Dir(*fileFlag)), filepath.Base(*fileFlag), enc)
	if err != nil {
		logger.Error("open word list", slog.String("error", err.Error()))
		os.Exit(1)
	}
	entries, err := src.Fetch(ctx)
	if err != nil {
		logger.Error("read word list", slog.String("error", err.Error()))
		os.Exit(1)
	}

	if err := wordlist.Check(ctx, entries, *workersFlag); err != nil {
		var ve *domain.ValidationError
		if !errors.As(err, &ve) {
			logger.Error("check word list", slog.String("error", err.Error()))
			os.Exit(1)
		}
		for _, fe := range ve.Errors {
			logger.Warn("unreachable entry", slog.String("field", fe.Field), slog.String("problem", fe.Message))
		}
		if *strictFlag {
			logger.Error("word list rejected", slog.Int("problems", len(ve.Errors)))
			os.Exit(1)
		}
	}

	logger.Info("word list read",
		slog.String("file", *fileFlag),
		slog.String("list", list),
		slog.Int("entries", len(entries)),
	)
	if *dryRunFlag {
		return
	}

	writer, closeFn, err := openWriter(ctx, cfg, *sqliteFlag, *migrateFlag, logger)
	if err != nil {
		logger.Error("open storage", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer closeFn()

	loadID, err := writer.ReplaceList(ctx, list, entries)
	if err != nil {
		logger.Error("import failed", slog.String("list", list), slog.String("error", err.Error()))
		closeFn()
		os.Exit(1)
	}

	logger.Info("import completed",
		slog.String("list", list),
		slog.Int("entries", len(entries)),
		slog.String("load_id", loadID),
	)
}

func openWriter(ctx context.Context, cfg *config.Config, sqlitePath string, migrate bool, logger *slog.Logger) (listWriter, func(), error) {
	if sqlitePath != "" {
		st, err := sqlite.Open(ctx, sqlitePath)
		if err != nil {
			return nil, nil, err
		}
		return st, func() { _ = st.Close() }, nil
	}

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return nil, nil, err
	}
	if migrate || cfg.Database.AutoMigrate {
		if err := postgres.Migrate(ctx, pool, logger); err != nil {
			pool.Close()
			return nil, nil, err
		}
	}
	return entry.New(pool, postgres.NewTxManager(pool)), pool.Close, nil
}
