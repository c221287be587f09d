package daemon

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gofrs/flock"

	"buzzcut/internal/config"
	"buzzcut/internal/logging"
	"buzzcut/internal/preflight"
)

// ScanFunc runs one scan cycle over all configured channels.
type ScanFunc func(ctx context.Context) error

// Daemon runs periodic scans and enforces single-instance execution.
type Daemon struct {
	cfg    *config.Config
	logger *slog.Logger
	scan   ScanFunc

	lockPath string
	lock     *flock.Flock

	running atomic.Bool
	cancel  context.CancelFunc
	wg      sync.WaitGroup

	lastScan   atomic.Int64
	scansRun   atomic.Int64
	scanErrors atomic.Int64
}

// Status represents daemon runtime information.
type Status struct {
	Running      bool
	LockFilePath string
	ScansRun     int64
	ScanErrors   int64
	LastScanAt   time.Time
}

// New constructs a daemon with initialized dependencies.
func New(cfg *config.Config, logger *slog.Logger, scan ScanFunc) (*Daemon, error) {
	if cfg == nil || logger == nil || scan == nil {
		return nil, errors.New("daemon requires config, logger, and scan function")
	}

	lockPath := filepath.Join(cfg.Paths.LogDir, "buzzcutd.lock")
	return &Daemon{
		cfg:      cfg,
		logger:   logging.NewComponentLogger(logger, "daemon"),
		scan:     scan,
		lockPath: lockPath,
		lock:     flock.New(lockPath),
	}, nil
}

// Start acquires the daemon lock and launches the scan loop.
func (d *Daemon) Start(ctx context.Context) error {
	if d.running.Load() {
		return errors.New("daemon already running")
	}

	ok, err := d.lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return errors.New("another buzzcut daemon instance is already running")
	}

	runCtx, cancel := context.WithCancel(ctx)
	d.cancel = cancel
	d.running.Store(true)

	d.wg.Add(1)
	go d.loop(runCtx)

	d.logger.Info("buzzcut daemon started",
		logging.String("lock", d.lockPath),
		logging.Int("interval_minutes", d.cfg.Scan.IntervalMinutes),
	)
	return nil
}

// Stop halts the scan loop and releases the daemon lock.
func (d *Daemon) Stop() {
	if !d.running.Load() {
		return
	}

	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
	d.wg.Wait()
	if err := d.lock.Unlock(); err != nil {
		d.logger.Warn("failed to release daemon lock", logging.Error(err))
	}
	d.running.Store(false)
	d.logger.Info("buzzcut daemon stopped")
}

// Status returns the current daemon status.
func (d *Daemon) Status() Status {
	status := Status{
		Running:      d.running.Load(),
		LockFilePath: d.lockPath,
		ScansRun:     d.scansRun.Load(),
		ScanErrors:   d.scanErrors.Load(),
	}
	if ts := d.lastScan.Load(); ts > 0 {
		status.LastScanAt = time.Unix(ts, 0).UTC()
	}
	return status
}

func (d *Daemon) loop(ctx context.Context) {
	defer d.wg.Done()

	interval := time.Duration(d.cfg.Scan.IntervalMinutes) * time.Minute
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	d.runCycle(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			d.runCycle(ctx)
		}
	}
}

func (d *Daemon) runCycle(ctx context.Context) {
	if ctx.Err() != nil {
		return
	}

	logging.CleanupOldLogs(d.logger, d.cfg.Logging.RetentionDays, d.cfg.Paths.LogDir, "*.log",
		filepath.Join(d.cfg.Paths.LogDir, "buzzcut.log"))

	for _, check := range preflight.RunAll(ctx, d.cfg) {
		if !check.Passed {
			d.logger.Warn("preflight check failed, skipping scan cycle",
				logging.String("check", check.Name),
				logging.String("detail", check.Detail),
			)
			return
		}
	}

	d.lastScan.Store(time.Now().Unix())
	d.scansRun.Add(1)
	if err := d.scan(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		d.scanErrors.Add(1)
		d.logger.Error("scan cycle failed", logging.Error(err))
	}
}
