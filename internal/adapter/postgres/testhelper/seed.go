package testhelper

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/glossary/internal/domain"
)

// UniqueListName returns a list name that does not collide with other tests
// sharing the container.
func UniqueListName(prefix string) string {
	return prefix + "-" + uuid.New().String()[:8]
}

// SeedList inserts entries under list with positions 0..n-1.
func SeedList(t *testing.T, pool *pgxpool.Pool, list string, entries []domain.Entry) {
	t.Helper()
	ctx := context.Background()

	for i, e := range entries {
		_, err := pool.Exec(ctx,
			`INSERT INTO glossary_entries (list_name, position, source, target, load_id)
			 VALUES ($1, $2, $3, $4, $5)`,
			list, i, e.Key, e.Value, "seed",
		)
		if err != nil {
			t.Fatalf("SeedList: insert %d: %v", i, err)
		}
	}
}
