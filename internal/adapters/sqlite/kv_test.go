package sqlite

import (
	"context"
	"path/filepath"
	"testing"
)

func openTestKV(t *testing.T) *KV {
	t.Helper()
	kv, err := Open(filepath.Join(t.TempDir(), "nested", DatabaseFile), DriverPure)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() {
		if err := kv.Close(); err != nil {
			t.Errorf("Close failed: %v", err)
		}
	})
	return kv
}

func TestKV_SetGetDelete(t *testing.T) {
	ctx := context.Background()
	kv := openTestKV(t)

	if _, ok, err := kv.Get(ctx, "roadmap"); err != nil || ok {
		t.Fatalf("expected missing key, got ok=%v err=%v", ok, err)
	}

	if err := kv.Set(ctx, "roadmap", `{"title":"Go"}`); err != nil {
		t.Fatalf("Set failed: %v", err)
	}
	if err := kv.Set(ctx, "roadmap", `{"title":"Rust"}`); err != nil {
		t.Fatalf("Set (replace) failed: %v", err)
	}

	got, ok, err := kv.Get(ctx, "roadmap")
	if err != nil || !ok {
		t.Fatalf("Get failed: ok=%v err=%v", ok, err)
	}
	if got != `{"title":"Rust"}` {
		t.Errorf("expected replaced value, got %s", got)
	}

	if err := kv.Delete(ctx, "roadmap"); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if err := kv.Delete(ctx, "roadmap"); err != nil {
		t.Errorf("deleting a missing key should succeed: %v", err)
	}
	if _, ok, _ := kv.Get(ctx, "roadmap"); ok {
		t.Error("expected key to be deleted")
	}
}

func TestKV_Transaction(t *testing.T) {
	ctx := context.Background()
	kv := openTestKV(t)
	if err := kv.Set(ctx, "roadmapProgress", "{}"); err != nil {
		t.Fatal(err)
	}

	t.Run("rollback discards writes", func(t *testing.T) {
		tx, err := kv.BeginTx(ctx)
		if err != nil {
			t.Fatalf("BeginTx failed: %v", err)
		}
		if err := tx.Set("roadmap", "draft"); err != nil {
			t.Fatal(err)
		}
		if err := tx.Rollback(); err != nil {
			t.Fatalf("Rollback failed: %v", err)
		}

		if _, ok, _ := kv.Get(ctx, "roadmap"); ok {
			t.Error("rolled back write is visible")
		}
	})

	t.Run("commit applies writes", func(t *testing.T) {
		tx, err := kv.BeginTx(ctx)
		if err != nil {
			t.Fatalf("BeginTx failed: %v", err)
		}
		if err := tx.Set("roadmap", "final"); err != nil {
			t.Fatal(err)
		}
		if err := tx.Delete("roadmapProgress"); err != nil {
			t.Fatal(err)
		}
		if err := tx.Commit(); err != nil {
			t.Fatalf("Commit failed: %v", err)
		}

		if v, ok, _ := kv.Get(ctx, "roadmap"); !ok || v != "final" {
			t.Errorf("expected committed value, got %q (ok=%v)", v, ok)
		}
		if _, ok, _ := kv.Get(ctx, "roadmapProgress"); ok {
			t.Error("expected progress to be deleted")
		}
	})
}

func TestKV_PersistsAcrossOpen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), DatabaseFile)

	kv, err := Open(path, "")
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if err := kv.Set(ctx, "roadmap", "persisted"); err != nil {
		t.Fatal(err)
	}
	if err := kv.Close(); err != nil {
		t.Fatal(err)
	}

	reopened, err := Open(path, DriverPure)
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	defer reopened.Close()

	if v, ok, _ := reopened.Get(ctx, "roadmap"); !ok || v != "persisted" {
		t.Errorf("expected persisted value, got %q (ok=%v)", v, ok)
	}
	if reopened.Path() != path {
		t.Errorf("expected path %s, got %s", path, reopened.Path())
	}
}
