package main

import (
	"testing"

	"buzzcut/internal/publishqueue"
)

func seedQueue(t *testing.T, env *cliTestEnv, ids ...string) {
	t.Helper()
	store := publishqueue.NewStore(env.cfg.QueuePath())
	for _, id := range ids {
		added, err := store.Enqueue(publishqueue.ClipTask{
			ID:             id,
			ClipPath:       "/clips/" + id + ".mp4",
			Creator:        "GMK",
			VideoID:        "vid1",
			MomentSec:      90,
			CaptionCurrent: "generated caption",
		})
		if err != nil || !added {
			t.Fatalf("seed queue %s: added=%v err=%v", id, added, err)
		}
	}
}

func TestQueueListAndStats(t *testing.T) {
	env := setupCLITestEnv(t)

	out, _, err := runCLI(t, env.configPath, "queue", "list")
	if err != nil {
		t.Fatalf("queue list: %v", err)
	}
	requireContains(t, out, "Queue is empty")

	seedQueue(t, env, "clip-1", "clip-2")

	out, _, err = runCLI(t, env.configPath, "queue", "list")
	if err != nil {
		t.Fatalf("queue list: %v", err)
	}
	requireContains(t, out, "clip-1")
	requireContains(t, out, "clip-2")
	requireContains(t, out, "pending")

	out, _, err = runCLI(t, env.configPath, "queue", "stats")
	if err != nil {
		t.Fatalf("queue stats: %v", err)
	}
	requireContains(t, out, "total")

	if _, _, err := runCLI(t, env.configPath, "queue", "list", "--status", "bogus"); err == nil {
		t.Fatal("expected error for unknown status filter")
	}
}

func TestReviewApproveAndPost(t *testing.T) {
	env := setupCLITestEnv(t)
	seedQueue(t, env, "clip-1")

	out, _, err := runCLI(t, env.configPath, "review", "next")
	if err != nil {
		t.Fatalf("review next: %v", err)
	}
	requireContains(t, out, "clip-1")

	// Posting before approval must fail.
	if _, _, err := runCLI(t, env.configPath, "review", "posted", "clip-1"); err == nil {
		t.Fatal("expected error posting an unapproved clip")
	}

	out, _, err = runCLI(t, env.configPath, "review", "approve", "clip-1")
	if err != nil {
		t.Fatalf("review approve: %v", err)
	}
	requireContains(t, out, "Approved clip-1")

	out, _, err = runCLI(t, env.configPath, "review", "posted", "clip-1")
	if err != nil {
		t.Fatalf("review posted: %v", err)
	}
	requireContains(t, out, "Marked clip-1 as posted")

	out, _, err = runCLI(t, env.configPath, "queue", "list", "--status", "posted")
	if err != nil {
		t.Fatalf("queue list posted: %v", err)
	}
	requireContains(t, out, "clip-1")

	if _, _, err := runCLI(t, env.configPath, "review", "approve", "missing"); err == nil {
		t.Fatal("expected error approving an unknown clip")
	}
}
