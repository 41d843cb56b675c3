package storage

import (
	"context"
	"path/filepath"
	"testing"

	"reimburse/internal/core"
)

func newTestRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	repo, err := NewSQLiteRepository(filepath.Join(t.TempDir(), "data", "test.db"))
	if err != nil {
		t.Fatalf("new repository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func TestSnapshotRoundTrip(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	if n, err := repo.MemberCount(ctx); err != nil || n != 0 {
		t.Fatalf("fresh db: n=%d err=%v", n, err)
	}

	dir := core.NewDirectory([]core.Member{
		{Username: "alice", Name: "Alice A", UnitBox: "101", BannerID: "B001", Year: 2019},
		{Username: "bob", Name: "Bob B", UnitBox: "102", BannerID: "B002", Year: 2020},
	})
	if err := repo.SaveSnapshot(ctx, dir.Snapshot()); err != nil {
		t.Fatalf("save: %v", err)
	}

	snap, err := repo.LoadSnapshot(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	back, err := core.DirectoryFromSnapshot(snap, core.AddressBook{Format: "Box %s"})
	if err != nil {
		t.Fatalf("directory: %v", err)
	}
	bob, ok := back.Lookup("bob")
	if !ok || bob.BannerID != "B002" || bob.Year != 2020 || bob.Address != "Box 102" {
		t.Fatalf("unexpected bob: %+v", bob)
	}
}

func TestSaveSnapshotReplaces(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	first := map[string]map[string]string{
		"alice": {core.FieldName: "Alice", core.FieldYear: "2019"},
		"bob":   {core.FieldName: "Bob", core.FieldYear: "2020"},
	}
	if err := repo.SaveSnapshot(ctx, first); err != nil {
		t.Fatalf("save first: %v", err)
	}
	second := map[string]map[string]string{
		"carol": {core.FieldName: "Carol", core.FieldYear: "2021"},
	}
	if err := repo.SaveSnapshot(ctx, second); err != nil {
		t.Fatalf("save second: %v", err)
	}

	snap, err := repo.LoadSnapshot(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(snap) != 1 || snap["carol"][core.FieldName] != "Carol" {
		t.Fatalf("expected only carol, got %v", snap)
	}
	if n, _ := repo.MemberCount(ctx); n != 1 {
		t.Fatalf("count: %d", n)
	}
}

func TestMigrationsAreIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "m.db")
	repo, err := NewSQLiteRepository(path)
	if err != nil {
		t.Fatalf("first open: %v", err)
	}
	repo.Close()
	if err := RunMigrations(path); err != nil {
		t.Fatalf("rerun migrations: %v", err)
	}
}
