package scanlog_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"buzzcut/internal/scanlog"
)

func openStore(t *testing.T) *scanlog.Store {
	t.Helper()
	store, err := scanlog.Open(filepath.Join(t.TempDir(), "scanlog.db"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestRecordAndByScan(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	entries := []scanlog.Entry{
		{ScanID: "scan-1", VideoID: "v1", ChannelName: "chan", VerdictTier: "buzzing", ViewsPerHour: 60000, BuzzScore: 36000, ClipsCreated: 3},
		{ScanID: "scan-1", VideoID: "v2", ChannelName: "chan", VerdictTier: "no-buzz", ViewsPerHour: 12},
		{ScanID: "scan-2", VideoID: "v1", ChannelName: "chan", VerdictTier: "potential", ViewsPerHour: 2000},
	}
	for _, entry := range entries {
		if err := store.Record(ctx, entry); err != nil {
			t.Fatalf("Record failed: %v", err)
		}
	}

	got, err := store.ByScan(ctx, "scan-1")
	if err != nil {
		t.Fatalf("ByScan failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 rows for scan-1, got %d", len(got))
	}
	if got[0].VideoID != "v1" || got[0].ClipsCreated != 3 {
		t.Fatalf("unexpected first row: %+v", got[0])
	}
	if got[0].ScannedAt.IsZero() {
		t.Fatal("scanned_at must be stamped")
	}
}

func TestHistoryNewestFirst(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		err := store.Record(ctx, scanlog.Entry{
			ScanID:      "scan",
			VideoID:     "v1",
			ChannelName: "chan",
			VerdictTier: "good",
			ScannedAt:   base.Add(time.Duration(i) * time.Hour),
		})
		if err != nil {
			t.Fatal(err)
		}
	}

	history, err := store.History(ctx, "v1", 2)
	if err != nil {
		t.Fatalf("History failed: %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("limit not applied, got %d rows", len(history))
	}
	if !history[0].ScannedAt.After(history[1].ScannedAt) {
		t.Fatalf("history must be newest first: %v then %v", history[0].ScannedAt, history[1].ScannedAt)
	}
}

func TestJournalPersistsAcrossOpens(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scanlog.db")

	first, err := scanlog.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := first.Record(context.Background(), scanlog.Entry{ScanID: "s", VideoID: "v", ChannelName: "c", VerdictTier: "good"}); err != nil {
		t.Fatal(err)
	}
	if err := first.Close(); err != nil {
		t.Fatal(err)
	}

	second, err := scanlog.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer second.Close()

	rows, err := second.ByScan(context.Background(), "s")
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected persisted row, got %d", len(rows))
	}
}
