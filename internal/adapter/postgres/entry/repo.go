// Package entry stores named glossary word lists in PostgreSQL.
// A list is an ordered sequence of (source, target) pairs; positions keep the
// order the list was imported in.
package entry

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/glossary/internal/adapter/postgres"
	"github.com/heartmarshall/glossary/internal/domain"
)

const (
	table = "glossary_entries"
	// insertChunk keeps a multi-row INSERT well below the 65535 bind
	// parameter limit.
	insertChunk = 1000
)

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// ListInfo summarizes one stored list.
type ListInfo struct {
	Name      string
	Entries   int
	LoadID    string
	CreatedAt time.Time
}

// Repo provides word-list persistence backed by PostgreSQL.
type Repo struct {
	pool *pgxpool.Pool
	txm  *postgres.TxManager
	ids  *domain.LoadIDs
}

// New creates a new word-list repository.
func New(pool *pgxpool.Pool, txm *postgres.TxManager) *Repo {
	return &Repo{pool: pool, txm: txm, ids: domain.NewLoadIDs()}
}

// ListPairs returns the entries of list in import order.
// Returns domain.ErrNotFound if the list has no entries.
func (r *Repo) ListPairs(ctx context.Context, list string) ([]domain.Entry, error) {
	query, args, err := psql.
		Select("source", "target").
		From(table).
		Where(squirrel.Eq{"list_name": list}).
		OrderBy("position").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list query: %w", err)
	}

	rows, err := postgres.QuerierFromCtx(ctx, r.pool).Query(ctx, query, args...)
	if err != nil {
		return nil, postgres.MapError(err, "glossary list", list)
	}

	entries, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (domain.Entry, error) {
		var e domain.Entry
		err := row.Scan(&e.Key, &e.Value)
		return e, err
	})
	if err != nil {
		return nil, postgres.MapError(err, "glossary list", list)
	}
	if len(entries) == 0 {
		return nil, postgres.MapError(pgx.ErrNoRows, "glossary list", list)
	}
	return entries, nil
}

// ReplaceList atomically swaps the contents of list for entries and returns
// the load ID stamped on the new rows.
func (r *Repo) ReplaceList(ctx context.Context, list string, entries []domain.Entry) (string, error) {
	if list == "" {
		return "", domain.NewValidationError("list", "required")
	}
	if len(entries) == 0 {
		return "", domain.NewValidationError("entries", "at least one entry is required")
	}

	loadID := r.ids.Next().String()

	err := r.txm.RunInTx(ctx, func(txCtx context.Context) error {
		q := postgres.QuerierFromCtx(txCtx, r.pool)

		del, args, err := psql.Delete(table).Where(squirrel.Eq{"list_name": list}).ToSql()
		if err != nil {
			return fmt.Errorf("build delete: %w", err)
		}
		if _, err := q.Exec(txCtx, del, args...); err != nil {
			return postgres.MapError(err, "glossary list", list)
		}

		for start := 0; start < len(entries); start += insertChunk {
			end := min(start+insertChunk, len(entries))

			ins := psql.Insert(table).Columns("list_name", "position", "source", "target", "load_id")
			for i := start; i < end; i++ {
				ins = ins.Values(list, i, entries[i].Key, entries[i].Value, loadID)
			}

			sql, args, err := ins.ToSql()
			if err != nil {
				return fmt.Errorf("build insert: %w", err)
			}
			if _, err := q.Exec(txCtx, sql, args...); err != nil {
				return postgres.MapError(err, "glossary list", list)
			}
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return loadID, nil
}

// DeleteList removes every entry of list. Deleting a missing list is not an error.
func (r *Repo) DeleteList(ctx context.Context, list string) (int64, error) {
	query, args, err := psql.Delete(table).Where(squirrel.Eq{"list_name": list}).ToSql()
	if err != nil {
		return 0, fmt.Errorf("build delete: %w", err)
	}
	tag, err := postgres.QuerierFromCtx(ctx, r.pool).Exec(ctx, query, args...)
	if err != nil {
		return 0, postgres.MapError(err, "glossary list", list)
	}
	return tag.RowsAffected(), nil
}

// Lists returns every stored list ordered by name.
func (r *Repo) Lists(ctx context.Context) ([]ListInfo, error) {
	query, args, err := psql.
		Select("list_name", "count(*)", "max(load_id)", "max(created_at)").
		From(table).
		GroupBy("list_name").
		OrderBy("list_name").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build lists query: %w", err)
	}

	rows, err := postgres.QuerierFromCtx(ctx, r.pool).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query lists: %w", err)
	}

	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (ListInfo, error) {
		var li ListInfo
		err := row.Scan(&li.Name, &li.Entries, &li.LoadID, &li.CreatedAt)
		return li, err
	})
}

// Source exposes one stored list as a glossary word-list source.
type Source struct {
	repo *Repo
	list string
}

// Source returns a source reading list.
func (r *Repo) Source(list string) *Source {
	return &Source{repo: r, list: list}
}

func (s *Source) Name() string { return "pg://" + s.list }

func (s *Source) Fetch(ctx context.Context) ([]domain.Entry, error) {
	return s.repo.ListPairs(ctx, s.list)
}
