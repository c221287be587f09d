package main

import (
	"context"
	"testing"
	"time"

	"buzzcut/internal/scanlog"
)

func TestHistoryCommand(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, env.configPath, "history", "vid1")
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	requireContains(t, out, "No scan history")

	journal, err := scanlog.Open(env.cfg.ScanLogPath())
	if err != nil {
		t.Fatalf("open journal: %v", err)
	}
	entry := scanlog.Entry{
		ScanID:       "scan-1",
		VideoID:      "vid1",
		ChannelName:  "GMK",
		VerdictTier:  "buzzing",
		ViewsPerHour: 2500,
		BuzzScore:    1800.5,
		ClipsCreated: 2,
		ScannedAt:    time.Now().UTC(),
	}
	if err := journal.Record(context.Background(), entry); err != nil {
		t.Fatalf("record entry: %v", err)
	}
	if err := journal.Close(); err != nil {
		t.Fatalf("close journal: %v", err)
	}

	out, _, err = runCLI(t, env.configPath, "history", "vid1")
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	requireContains(t, out, "GMK")
	requireContains(t, out, "buzzing")
}
