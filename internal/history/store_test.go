package history_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"recsweep/internal/history"
)

func openStore(t *testing.T) *history.Store {
	t.Helper()
	store, err := history.Open(filepath.Join(t.TempDir(), "state", "history.db"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestRecordAndRecent(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	entries := []history.Entry{
		{RecordedAt: base, CycleID: "c1", JobID: "news", File: "news_monday.ts", Action: "move", Destination: "/rec/duplicate/news_monday.ts", SizeBytes: 100, Subtitle: "Monday", Similarity: 1},
		{RecordedAt: base.Add(time.Minute), CycleID: "c2", JobID: "doku", File: "doku_a.ts", Action: "delete", DryRun: true, Subtitle: "A", Similarity: 0.97},
		{RecordedAt: base.Add(2 * time.Minute), CycleID: "c3", JobID: "news", File: "news_tuesday.ts", Action: "delete", SizeBytes: 42},
	}
	for _, e := range entries {
		if _, err := store.Record(ctx, e); err != nil {
			t.Fatalf("Record: %v", err)
		}
	}

	all, err := store.Recent(ctx, history.Query{})
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(all))
	}
	if all[0].File != "news_tuesday.ts" || all[2].File != "news_monday.ts" {
		t.Fatalf("expected newest first, got %q ... %q", all[0].File, all[2].File)
	}
	first := all[2]
	if !first.RecordedAt.Equal(base) || first.Destination != "/rec/duplicate/news_monday.ts" || first.SizeBytes != 100 || first.Subtitle != "Monday" || first.Similarity != 1 {
		t.Fatalf("unexpected round trip %+v", first)
	}
	if !all[1].DryRun || all[0].DryRun {
		t.Fatalf("dry run flags not preserved: %+v", all)
	}

	news, err := store.Recent(ctx, history.Query{JobID: "news", Limit: 1})
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(news) != 1 || news[0].File != "news_tuesday.ts" {
		t.Fatalf("unexpected filtered result %+v", news)
	}
}

func TestPrune(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()
	now := time.Now()
	if _, err := store.Record(ctx, history.Entry{RecordedAt: now.AddDate(0, 0, -40), CycleID: "old", JobID: "a", File: "a.ts", Action: "move"}); err != nil {
		t.Fatal(err)
	}
	if _, err := store.Record(ctx, history.Entry{CycleID: "new", JobID: "a", File: "b.ts", Action: "move"}); err != nil {
		t.Fatal(err)
	}

	removed, err := store.Prune(ctx, now.AddDate(0, 0, -30))
	if err != nil {
		t.Fatalf("Prune: %v", err)
	}
	if removed != 1 {
		t.Fatalf("removed = %d, want 1", removed)
	}
	left, err := store.Recent(ctx, history.Query{})
	if err != nil {
		t.Fatal(err)
	}
	if len(left) != 1 || left[0].CycleID != "new" {
		t.Fatalf("unexpected remaining entries %+v", left)
	}
}

func TestReopenKeepsEntries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	store, err := history.Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if _, err := store.Record(context.Background(), history.Entry{CycleID: "c", JobID: "a", File: "a.ts", Action: "move"}); err != nil {
		t.Fatal(err)
	}
	if err := store.Close(); err != nil {
		t.Fatal(err)
	}

	reopened, err := history.Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()
	entries, err := reopened.Recent(context.Background(), history.Query{})
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry after reopen, got %d", len(entries))
	}
}

func TestSchemaMismatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	store, err := history.Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := store.SetSchemaVersionForTest(99); err != nil {
		t.Fatal(err)
	}
	_ = store.Close()

	if _, err := history.Open(path); !errors.Is(err, history.ErrSchemaMismatch) {
		t.Fatalf("expected ErrSchemaMismatch, got %v", err)
	}
}
