package entry_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"

	postgres "github.com/heartmarshall/glossary/internal/adapter/postgres"
	"github.com/heartmarshall/glossary/internal/adapter/postgres/entry"
	"github.com/heartmarshall/glossary/internal/adapter/postgres/testhelper"
	"github.com/heartmarshall/glossary/internal/domain"
)

// newRepo sets up a test DB and returns a ready Repo + pool.
func newRepo(t *testing.T) (*entry.Repo, *pgxpool.Pool) {
	t.Helper()
	pool := testhelper.SetupTestDB(t)
	return entry.New(pool, postgres.NewTxManager(pool)), pool
}

func TestRepo_ListPairs_KeepsOrder(t *testing.T) {
	repo, pool := newRepo(t)
	list := testhelper.UniqueListName("library")

	want := []domain.Entry{
		{Key: "zebra", Value: "Zeb"},
		{Key: "bank", Value: "Rivaj"},
		{Key: "bank", Value: "Monejok"},
	}
	testhelper.SeedList(t, pool, list, want)

	got, err := repo.ListPairs(context.Background(), list)
	if err != nil {
		t.Fatalf("ListPairs: %v", err)
	}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("entries[%d] = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestRepo_ListPairs_Missing(t *testing.T) {
	repo, _ := newRepo(t)

	_, err := repo.ListPairs(context.Background(), testhelper.UniqueListName("missing"))
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRepo_ReplaceList(t *testing.T) {
	repo, pool := newRepo(t)
	ctx := context.Background()
	list := testhelper.UniqueListName("replace")

	testhelper.SeedList(t, pool, list, []domain.Entry{{Key: "old", Value: "Vek"}})

	loadID, err := repo.ReplaceList(ctx, list, []domain.Entry{
		{Key: "cat", Value: "Miau"},
		{Key: "dog", Value: "Vuf"},
	})
	if err != nil {
		t.Fatalf("ReplaceList: %v", err)
	}
	if loadID == "" {
		t.Fatal("expected non-empty load ID")
	}

	got, err := repo.ListPairs(ctx, list)
	if err != nil {
		t.Fatalf("ListPairs: %v", err)
	}
	if len(got) != 2 || got[0].Key != "cat" || got[1].Key != "dog" {
		t.Errorf("entries = %+v, want [cat dog]", got)
	}
}

func TestRepo_ReplaceList_LargeListIsChunked(t *testing.T) {
	repo, _ := newRepo(t)
	ctx := context.Background()
	list := testhelper.UniqueListName("large")

	entries := make([]domain.Entry, 2500)
	for i := range entries {
		entries[i] = domain.NewEntry(fmt.Sprintf("w%04d", i), fmt.Sprintf("V%04d", i))
	}

	if _, err := repo.ReplaceList(ctx, list, entries); err != nil {
		t.Fatalf("ReplaceList: %v", err)
	}

	got, err := repo.ListPairs(ctx, list)
	if err != nil {
		t.Fatalf("ListPairs: %v", err)
	}
	if len(got) != len(entries) {
		t.Fatalf("len = %d, want %d", len(got), len(entries))
	}
	if got[2499].Key != "w2499" {
		t.Errorf("last entry = %+v", got[2499])
	}
}

func TestRepo_ReplaceList_InvalidEntryRollsBack(t *testing.T) {
	repo, pool := newRepo(t)
	ctx := context.Background()
	list := testhelper.UniqueListName("invalid")

	testhelper.SeedList(t, pool, list, []domain.Entry{{Key: "cat", Value: "Miau"}})

	_, err := repo.ReplaceList(ctx, list, []domain.Entry{{Key: "dog", Value: ""}})
	if !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation from check constraint, got %v", err)
	}

	got, err := repo.ListPairs(ctx, list)
	if err != nil {
		t.Fatalf("ListPairs: %v", err)
	}
	if len(got) != 1 || got[0].Key != "cat" {
		t.Errorf("entries = %+v, want the original list", got)
	}
}

func TestRepo_ReplaceList_Validation(t *testing.T) {
	repo, _ := newRepo(t)

	if _, err := repo.ReplaceList(context.Background(), "", []domain.Entry{{Key: "a", Value: "b"}}); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("empty list name: expected ErrValidation, got %v", err)
	}
	if _, err := repo.ReplaceList(context.Background(), "x", nil); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("no entries: expected ErrValidation, got %v", err)
	}
}

func TestRepo_ListsAndDelete(t *testing.T) {
	repo, _ := newRepo(t)
	ctx := context.Background()
	list := testhelper.UniqueListName("info")

	if _, err := repo.ReplaceList(ctx, list, []domain.Entry{{Key: "a", Value: "B"}, {Key: "c", Value: "D"}}); err != nil {
		t.Fatalf("ReplaceList: %v", err)
	}

	lists, err := repo.Lists(ctx)
	if err != nil {
		t.Fatalf("Lists: %v", err)
	}
	var found *entry.ListInfo
	for i := range lists {
		if lists[i].Name == list {
			found = &lists[i]
		}
	}
	if found == nil {
		t.Fatalf("list %s not reported", list)
	}
	if found.Entries != 2 {
		t.Errorf("Entries = %d, want 2", found.Entries)
	}

	n, err := repo.DeleteList(ctx, list)
	if err != nil {
		t.Fatalf("DeleteList: %v", err)
	}
	if n != 2 {
		t.Errorf("deleted = %d, want 2", n)
	}
}

func TestSource_Fetch(t *testing.T) {
	repo, pool := newRepo(t)
	list := testhelper.UniqueListName("source")
	testhelper.SeedList(t, pool, list, []domain.Entry{{Key: "cat", Value: "Miau"}})

	src := repo.Source(list)
	if src.Name() != "pg://"+list {
		t.Errorf("Name() = %q", src.Name())
	}

	entries, err := src.Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("len = %d, want 1", len(entries))
	}
}
