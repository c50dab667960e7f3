// Command lists shows the word lists stored in PostgreSQL or SQLite and can
// delete one of them. It is intended for operators, not for the server.
//
// Flags:
//
//	--sqlite  SQLite database path; without it the configured PostgreSQL is used
//	--delete  name of a list to delete
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/heartmarshall/glossary/internal/adapter/postgres"
	"github.com/heartmarshall/glossary/internal/adapter/postgres/entry"
	"github.com/heartmarshall/glossary/internal/adapter/sqlite"
	"github.com/heartmarshall/glossary/internal/app"
	"github.com/heartmarshall/glossary/internal/config"
)

func main() {
	sqliteFlag := flag.String("sqlite", "", "SQLite database path (default: PostgreSQL)")
	deleteFlag := flag.String("delete", "", "list to delete")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	if *sqliteFlag != "" {
		err = runSQLite(ctx, *sqliteFlag, *deleteFlag, logger)
	} else {
		err = runPostgres(ctx, cfg, *deleteFlag, logger)
	}
	if err != nil {
		logger.Error("lists failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func runPostgres(ctx context.Context, cfg *config.Config, del string, logger *slog.Logger) error {
	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	repo := entry.New(pool, postgres.NewTxManager(pool))

	if del != "" {
		deleted, err := repo.DeleteList(ctx, del)
		if err != nil {
			return err
		}
		logger.Info("list deleted", slog.String("list", del), slog.Int64("entries", deleted))
		return nil
	}

	lists, err := repo.Lists(ctx)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "LIST\tENTRIES\tLOAD ID\tLOADED AT")
	for _, l := range lists {
		fmt.Fprintf(w, "%s\t%d\t%s\t%s\n", l.Name, l.Entries, l.LoadID, l.CreatedAt.Format(time.RFC3339))
	}
	return w.Flush()
}

func runSQLite(ctx context.Context, path, del string, logger *slog.Logger) error {
	st, err := sqlite.Open(ctx, path)
	if err != nil {
		return err
	}
	defer st.Close()

	if del != "" {
		deleted, err := st.DeleteList(ctx, del)
		if err != nil {
			return err
		}
		logger.Info("list deleted", slog.String("list", del), slog.Int64("entries", deleted))
		return nil
	}

	counts, err := st.Lists(ctx)
	if err != nil {
		return err
	}
	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Strings(names)

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "LIST\tENTRIES")
	for _, name := range names {
		fmt.Fprintf(w, "%s\t%d\n", name, counts[name])
	}
	return w.Flush()
}
