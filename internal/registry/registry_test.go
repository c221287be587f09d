package registry_test

import (
	"os"
	"path/filepath"
	"testing"

	"buzzcut/internal/registry"
)

func newStore(t *testing.T) *registry.Store {
	t.Helper()
	return registry.NewStore(filepath.Join(t.TempDir(), "processed_moments.json"), 10)
}

func TestMarkProcessedCreatesRecord(t *testing.T) {
	store := newStore(t)

	processed, err := store.IsProcessed("vid", 125)
	if err != nil {
		t.Fatalf("IsProcessed failed: %v", err)
	}
	if processed {
		t.Fatal("fresh store must report unprocessed")
	}

	if err := store.MarkProcessed("vid", 125, "tiktok"); err != nil {
		t.Fatalf("MarkProcessed failed: %v", err)
	}

	processed, err = store.IsProcessed("vid", 125)
	if err != nil {
		t.Fatalf("IsProcessed failed: %v", err)
	}
	if !processed {
		t.Fatal("moment must be processed after mark")
	}
}

func TestBucketCoalescing(t *testing.T) {
	store := newStore(t)
	if err := store.MarkProcessed("vid", 123, "tiktok"); err != nil {
		t.Fatal(err)
	}

	// 120..129 share the bucket with 123; 119 and 130 do not.
	for _, ts := range []int{120, 125, 129} {
		ok, err := store.IsProcessed("vid", ts)
		if err != nil {
			t.Fatal(err)
		}
		if !ok {
			t.Fatalf("timestamp %d should fall in the processed bucket", ts)
		}
	}
	for _, ts := range []int{119, 130} {
		ok, err := store.IsProcessed("vid", ts)
		if err != nil {
			t.Fatal(err)
		}
		if ok {
			t.Fatalf("timestamp %d should be outside the processed bucket", ts)
		}
	}

	// Different video, same bucket index.
	ok, err := store.IsProcessed("other", 123)
	if err != nil {
		t.Fatal(err)
	}
	if ok {
		t.Fatal("bucket keys must be scoped per video")
	}
}

func TestMarkProcessedUnionsPlatforms(t *testing.T) {
	store := newStore(t)
	if err := store.MarkProcessed("vid", 125, "tiktok"); err != nil {
		t.Fatal(err)
	}
	if err := store.MarkProcessed("vid", 128, "snap"); err != nil {
		t.Fatal(err)
	}
	if err := store.MarkProcessed("vid", 122, "tiktok"); err != nil {
		t.Fatal(err)
	}

	records, err := store.Records()
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 1 {
		t.Fatalf("expected exactly one record, got %d", len(records))
	}
	rec := records["vid_12"]
	if rec.VideoID != "vid" {
		t.Fatalf("unexpected record: %+v", rec)
	}
	if rec.TimestampSec != 125 {
		t.Fatalf("original timestamp must be preserved, got %d", rec.TimestampSec)
	}
	if len(rec.Platforms) != 2 || rec.Platforms[0] != "tiktok" || rec.Platforms[1] != "snap" {
		t.Fatalf("platforms must union without duplicates: %v", rec.Platforms)
	}
	if rec.CreatedAt.IsZero() {
		t.Fatal("created_at must be set")
	}
}

func TestRegistrySurvivesReopen(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "processed_moments.json")

	first := registry.NewStore(path, 10)
	if err := first.MarkProcessed("vid", 45, "tiktok"); err != nil {
		t.Fatal(err)
	}

	second := registry.NewStore(path, 10)
	ok, err := second.IsProcessed("vid", 41)
	if err != nil {
		t.Fatal(err)
	}
	if !ok {
		t.Fatal("ledger must persist across store instances")
	}
}

func TestCorruptLedgerIsFatal(t *testing.T) {
	path := filepath.Join(t.TempDir(), "processed_moments.json")
	if err := os.WriteFile(path, []byte("{{{"), 0o644); err != nil {
		t.Fatal(err)
	}

	store := registry.NewStore(path, 10)
	if _, err := store.IsProcessed("vid", 10); err == nil {
		t.Fatal("corrupt ledger must surface an error")
	}
}
