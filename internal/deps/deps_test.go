package deps

import (
	"os"
	"path/filepath"
	"testing"
)

func TestCheckTools(t *testing.T) {
	binDir := t.TempDir()
	present := filepath.Join(binDir, "present")
	script := []byte("#!/bin/sh\nexit 0\n")
	if err := os.WriteFile(present, script, 0o755); err != nil {
		t.Fatalf("write stub: %v", err)
	}

	results := CheckTools(
		Tool{Name: "Present", Command: present},
		Tool{Name: "Missing", Command: "clearly-not-present-binary"},
	)
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}

	if !results[0].Available {
		t.Fatalf("expected first tool to be available, got %#v", results[0])
	}
	if results[0].Detail != present {
		t.Fatalf("expected resolved path %q, got %q", present, results[0].Detail)
	}

	if results[1].Available {
		t.Fatal("expected missing binary to be unavailable")
	}
	if results[1].Detail == "" {
		t.Fatal("expected detail message for missing binary")
	}
	if results[1].Tool.Command != "clearly-not-present-binary" {
		t.Fatalf("unexpected command recorded: %s", results[1].Tool.Command)
	}
}

func TestProbeEmptyCommand(t *testing.T) {
	status := Probe(Tool{Name: "Unset", Command: "  "})
	if status.Available {
		t.Fatal("expected unset command to be unavailable")
	}
	if status.Detail != "command not configured" {
		t.Fatalf("unexpected detail: %s", status.Detail)
	}
}

func TestCheckDiskSpace(t *testing.T) {
	space, err := CheckDiskSpace(t.TempDir())
	if err != nil {
		t.Fatalf("CheckDiskSpace failed: %v", err)
	}
	if space.TotalBytes == 0 {
		t.Fatal("expected non-zero total bytes")
	}
	if space.FreeBytes > space.TotalBytes {
		t.Fatalf("free %d exceeds total %d", space.FreeBytes, space.TotalBytes)
	}
}

func TestCheckDiskSpaceMissingPath(t *testing.T) {
	if _, err := CheckDiskSpace(filepath.Join(t.TempDir(), "nope")); err == nil {
		t.Fatal("expected error for missing path")
	}
}
