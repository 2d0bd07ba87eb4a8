package runstore

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	mdwerror "github.com/msto63/minipl/foundation/core/error"
	mdwerrors "github.com/msto63/minipl/foundation/core/errors"
	"github.com/msto63/minipl/foundation/minipl"
)

func newStores(t *testing.T) map[string]Store {
	t.Helper()
	sqlite, err := NewSQLiteStore(SQLiteConfig{Path: filepath.Join(t.TempDir(), "history.db")})
	if err != nil {
		t.Fatalf("NewSQLiteStore() error = %v", err)
	}
	t.Cleanup(func() { sqlite.Close() })

	return map[string]Store{
		"sqlite": sqlite,
		"memory": NewMemoryStore(),
	}
}

func TestRecordAndGet(t *testing.T) {
	for name, store := range newStores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			started := time.Now().Add(-time.Minute).Truncate(time.Microsecond)

			run := &Run{
				ID:          "run-1",
				Source:      "examples/fact.mpl",
				SourceHash:  HashSource("print 1"),
				StartedAt:   started,
				Duration:    1500 * time.Microsecond,
				Status:      "runtime",
				Error:       "Division by zero",
				OutputBytes: 12,
			}
			if err := store.Record(ctx, run); err != nil {
				t.Fatalf("Record() error = %v", err)
			}

			got, err := store.Get(ctx, "run-1")
			if err != nil {
				t.Fatalf("Get() error = %v", err)
			}
			if got.Source != run.Source || got.SourceHash != run.SourceHash {
				t.Errorf("source = %s/%s, want %s/%s", got.Source, got.SourceHash, run.Source, run.SourceHash)
			}
			if got.Status != "runtime" || got.Error != "Division by zero" {
				t.Errorf("status = %s (%s)", got.Status, got.Error)
			}
			if got.Duration != run.Duration {
				t.Errorf("Duration = %v, want %v", got.Duration, run.Duration)
			}
			if got.OutputBytes != 12 {
				t.Errorf("OutputBytes = %d, want 12", got.OutputBytes)
			}
			if !got.StartedAt.Equal(started) {
				t.Errorf("StartedAt = %v, want %v", got.StartedAt, started)
			}
		})
	}
}

func TestGetMissing(t *testing.T) {
	for name, store := range newStores(t) {
		t.Run(name, func(t *testing.T) {
			_, err := store.Get(context.Background(), "nope")
			if !mdwerror.HasCode(err, mdwerror.CodeNotFound) {
				t.Errorf("Get() error = %v, want NOT_FOUND", err)
			}
		})
	}
}

func TestListAndStats(t *testing.T) {
	for name, store := range newStores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			base := time.Now().Add(-time.Hour)
			statuses := []string{"ok", "ok", "syntax", "ok", "runtime"}
			for i, status := range statuses {
				err := store.Record(ctx, &Run{
					ID:        string(rune('a' + i)),
					Source:    "prog",
					StartedAt: base.Add(time.Duration(i) * time.Minute),
					Status:    status,
				})
				if err != nil {
					t.Fatalf("Record() error = %v", err)
				}
			}

			runs, err := store.List(ctx, Filter{})
			if err != nil {
				t.Fatalf("List() error = %v", err)
			}
			if len(runs) != 5 || runs[0].ID != "e" || runs[4].ID != "a" {
				t.Errorf("List() order = %v", ids(runs))
			}

			runs, _ = store.List(ctx, Filter{Status: "ok", Limit: 2})
			if len(runs) != 2 || runs[0].ID != "d" || runs[1].ID != "b" {
				t.Errorf("List(ok, 2) = %v, want [d b]", ids(runs))
			}

			runs, _ = store.List(ctx, Filter{Limit: 2, Offset: 1})
			if len(runs) != 2 || runs[0].ID != "d" {
				t.Errorf("List(offset 1) = %v, want [d c]", ids(runs))
			}

			stats, err := store.Stats(ctx)
			if err != nil {
				t.Fatalf("Stats() error = %v", err)
			}
			if stats.Total != 5 || stats.ByStatus["ok"] != 3 || stats.ByStatus["syntax"] != 1 {
				t.Errorf("Stats() = %+v", stats)
			}
		})
	}
}

func TestPrune(t *testing.T) {
	for name, store := range newStores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			store.Record(ctx, &Run{ID: "old", StartedAt: time.Now().Add(-48 * time.Hour)})
			store.Record(ctx, &Run{ID: "new", StartedAt: time.Now()})

			deleted, err := store.Prune(ctx, 24*time.Hour)
			if err != nil {
				t.Fatalf("Prune() error = %v", err)
			}
			if deleted != 1 {
				t.Errorf("Prune() deleted %d, want 1", deleted)
			}
			if _, err := store.Get(ctx, "new"); err != nil {
				t.Errorf("recent run was pruned: %v", err)
			}
		})
	}
}

func TestRecordDefaults(t *testing.T) {
	store := NewMemoryStore()
	run := &Run{Source: "x"}
	if err := store.Record(context.Background(), run); err != nil {
		t.Fatal(err)
	}
	if run.ID == "" || run.StartedAt.IsZero() || run.Status != minipl.StatusOK {
		t.Errorf("defaults not applied: %+v", run)
	}
}

func TestNewRun(t *testing.T) {
	engine, err := minipl.New(minipl.Options{})
	if err != nil {
		t.Fatal(err)
	}
	src := "print 1 / 0"
	result, runErr := engine.Run(context.Background(), src)

	run := NewRun("inline", src, result, runErr)
	if run.ID != result.RunID {
		t.Errorf("ID = %s, want %s", run.ID, result.RunID)
	}
	if run.Status != mdwerrors.CategoryRuntime {
		t.Errorf("Status = %s, want runtime", run.Status)
	}
	if run.Error != "Division by zero" {
		t.Errorf("Error = %q", run.Error)
	}
	if run.SourceHash != HashSource(src) || len(run.SourceHash) != 64 {
		t.Errorf("SourceHash = %q", run.SourceHash)
	}
}

func TestDatabaseErrors(t *testing.T) {
	store, err := NewSQLiteStore(SQLiteConfig{Path: filepath.Join(t.TempDir(), "h.db")})
	if err != nil {
		t.Fatal(err)
	}
	store.Close()

	err = store.Record(context.Background(), &Run{ID: "x"})
	if !mdwerror.HasCode(err, mdwerror.CodeDatabaseError) {
		t.Errorf("Record() on closed store = %v, want DATABASE_ERROR", err)
	}
	var me *mdwerror.Error
	if !errors.As(err, &me) || mdwerrors.ExtractModule(err) != mdwerrors.ModuleRunStore {
		t.Errorf("module = %q", mdwerrors.ExtractModule(err))
	}
}

func ids(runs []*Run) []string {
	out := make([]string, len(runs))
	for i, r := range runs {
		out[i] = r.ID
	}
	return out
}
