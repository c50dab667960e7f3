// Package sqlite keeps glossary word lists in a local SQLite file, for
// deployments without PostgreSQL.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/heartmarshall/glossary/internal/domain"
)

// Store reads and writes named word lists.
type Store struct {
	db  *sql.DB
	ids *domain.LoadIDs
}

// Open opens (creating if needed) the database at path with WAL mode enabled
// and the schema in place.
func Open(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("sqlite: open %s: %w", path, err)
	}

	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite: enable wal: %w", err)
	}

	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite: init schema: %w", err)
	}

	return &Store{db: db, ids: domain.NewLoadIDs()}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// initSchema creates tables if they don't exist.
func initSchema(ctx context.Context, db *sql.DB) error {
	const schema = `
CREATE TABLE IF NOT EXISTS glossary_entries (
	list_name  TEXT    NOT NULL,
	position   INTEGER NOT NULL,
	source     TEXT    NOT NULL CHECK (source <> ''),
	target     TEXT    NOT NULL CHECK (target <> ''),
	load_id    TEXT    NOT NULL,
	created_at TEXT    NOT NULL,
	PRIMARY KEY (list_name, position)
);

CREATE INDEX IF NOT EXISTS ix_glossary_entries_source ON glossary_entries (list_name, source);
`
	_, err := db.ExecContext(ctx, schema)
	return err
}

// ListPairs returns the entries of list in import order.
// Returns domain.ErrNotFound if the list has no entries.
func (s *Store) ListPairs(ctx context.Context, list string) ([]domain.Entry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT source, target FROM glossary_entries WHERE list_name = ? ORDER BY position`, list)
	if err != nil {
		return nil, fmt.Errorf("sqlite: list %s: %w", list, err)
	}
	defer rows.Close()

	var entries []domain.Entry
	for rows.Next() {
		var e domain.Entry
		if err := rows.Scan(&e.Key, &e.Value); err != nil {
			return nil, fmt.Errorf("sqlite: scan %s: %w", list, err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: list %s: %w", list, err)
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("glossary list %s: %w", list, domain.ErrNotFound)
	}
	return entries, nil
}

// ReplaceList swaps the contents of list for entries in one transaction and
// returns the load ID stamped on the new rows.
func (s *Store) ReplaceList(ctx context.Context, list string, entries []domain.Entry) (string, error) {
	if list == "" {
		return "", domain.NewValidationError("list", "required")
	}
	if len(entries) == 0 {
		return "", domain.NewValidationError("entries", "at least one entry is required")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("sqlite: begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM glossary_entries WHERE list_name = ?`, list); err != nil {
		return "", fmt.Errorf("sqlite: clear %s: %w", list, err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO glossary_entries (list_name, position, source, target, load_id, created_at) VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return "", fmt.Errorf("sqlite: prepare insert: %w", err)
	}
	defer stmt.Close()

	loadID := s.ids.Next().String()
	now := time.Now().UTC().Format(time.RFC3339)
	for i, e := range entries {
		if e.Key == "" || e.Value == "" {
			return "", domain.NewValidationError(fmt.Sprintf("entries[%d]", i), "source and target are required")
		}
		if _, err := stmt.ExecContext(ctx, list, i, e.Key, e.Value, loadID, now); err != nil {
			return "", fmt.Errorf("sqlite: insert %s[%d]: %w", list, i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("sqlite: commit: %w", err)
	}
	return loadID, nil
}

// DeleteList removes every entry of list. Deleting a missing list is not an error.
func (s *Store) DeleteList(ctx context.Context, list string) (int64, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM glossary_entries WHERE list_name = ?`, list)
	if err != nil {
		return 0, fmt.Errorf("sqlite: delete %s: %w", list, err)
	}
	return res.RowsAffected()
}

// Lists returns the size of every stored list keyed by name.
func (s *Store) Lists(ctx context.Context) (map[string]int, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT list_name, COUNT(*) FROM glossary_entries GROUP BY list_name ORDER BY list_name`)
	if err != nil {
		return nil, fmt.Errorf("sqlite: lists: %w", err)
	}
	defer rows.Close()

	out := make(map[string]int)
	for rows.Next() {
		var name string
		var n int
		if err := rows.Scan(&name, &n); err != nil {
			return nil, fmt.Errorf("sqlite: scan lists: %w", err)
		}
		out[name] = n
	}
	return out, rows.Err()
}

// ListSource exposes one stored list as a glossary word-list source.
type ListSource struct {
	store *Store
	path  string
	list  string
}

// Source returns a source reading list. path is only used in the name.
func (s *Store) Source(path, list string) *ListSource {
	return &ListSource{store: s, path: path, list: list}
}

func (l *ListSource) Name() string { return "sqlite://" + l.path + "?list=" + l.list }

func (l *ListSource) Fetch(ctx context.Context) ([]domain.Entry, error) {
	return l.store.ListPairs(ctx, l.list)
}
