// Package daemon coordinates the long-running buzzcut process.
//
// It owns the scan loop lifecycle with flock-based locking to prevent
// multiple instances, runs preflight checks before each cycle, and prunes
// old log files on the configured retention schedule.
//
// Keep orchestration logic here: the actual scan pipeline lives in the
// scanner package while the daemon focuses on startup, shutdown, and
// scheduling.
package daemon
