package daemon_test

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"buzzcut/internal/config"
	"buzzcut/internal/daemon"
	"buzzcut/internal/logging"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	tempDir := t.TempDir()
	cfg := config.Default()
	cfg.Paths.StorageDir = tempDir
	cfg.Paths.VideosDir = tempDir
	cfg.Paths.ClipsDir = tempDir
	cfg.Paths.LogDir = tempDir
	cfg.YouTube.APIKey = ""
	return &cfg
}

func TestDaemonRunsImmediateScan(t *testing.T) {
	cfg := testConfig(t)

	scanned := make(chan struct{}, 1)
	d, err := daemon.New(cfg, logging.NewNop(), func(ctx context.Context) error {
		select {
		case scanned <- struct{}{}:
		default:
		}
		return nil
	})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	if err := d.Start(context.Background()); err != nil {
		t.Fatalf("Start returned error: %v", err)
	}
	defer d.Stop()

	select {
	case <-scanned:
	case <-time.After(5 * time.Second):
		t.Fatal("expected an immediate scan cycle")
	}

	status := d.Status()
	if !status.Running {
		t.Fatal("expected running status")
	}
	if status.ScansRun < 1 {
		t.Fatalf("expected at least one scan, got %d", status.ScansRun)
	}
}

func TestDaemonRejectsSecondInstance(t *testing.T) {
	cfg := testConfig(t)
	noop := func(ctx context.Context) error { return nil }

	first, err := daemon.New(cfg, logging.NewNop(), noop)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if err := first.Start(context.Background()); err != nil {
		t.Fatalf("Start returned error: %v", err)
	}
	defer first.Stop()

	second, err := daemon.New(cfg, logging.NewNop(), noop)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if err := second.Start(context.Background()); err == nil {
		second.Stop()
		t.Fatal("expected second instance to fail lock acquisition")
	}
}

func TestDaemonStopIsIdempotent(t *testing.T) {
	cfg := testConfig(t)
	d, err := daemon.New(cfg, logging.NewNop(), func(ctx context.Context) error { return nil })
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if err := d.Start(context.Background()); err != nil {
		t.Fatalf("Start returned error: %v", err)
	}
	d.Stop()
	d.Stop()
	if d.Status().Running {
		t.Fatal("expected stopped status")
	}
}

func TestDaemonCountsScanErrors(t *testing.T) {
	cfg := testConfig(t)

	var calls atomic.Int64
	done := make(chan struct{})
	d, err := daemon.New(cfg, logging.NewNop(), func(ctx context.Context) error {
		if calls.Add(1) == 1 {
			close(done)
		}
		return context.DeadlineExceeded
	})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if err := d.Start(context.Background()); err != nil {
		t.Fatalf("Start returned error: %v", err)
	}
	<-done
	d.Stop()

	if d.Status().ScanErrors < 1 {
		t.Fatalf("expected scan error count, got %d", d.Status().ScanErrors)
	}
}

func TestNewValidatesArguments(t *testing.T) {
	noop := func(ctx context.Context) error { return nil }
	if _, err := daemon.New(nil, logging.NewNop(), noop); err == nil {
		t.Fatal("expected error for nil config")
	}
	if _, err := daemon.New(testConfig(t), nil, noop); err == nil {
		t.Fatal("expected error for nil logger")
	}
	if _, err := daemon.New(testConfig(t), logging.NewNop(), nil); err == nil {
		t.Fatal("expected error for nil scan function")
	}
}
