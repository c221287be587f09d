// Package scanlog keeps a SQLite journal of scan outcomes. Every scanned
// video gets one row per scan, so operators can replay how a channel's
// verdicts evolved without diffing JSON documents.
package scanlog

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS scan_results (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    scan_id TEXT NOT NULL,
    video_id TEXT NOT NULL,
    channel_name TEXT NOT NULL,
    verdict_tier TEXT NOT NULL,
    views_per_hour REAL NOT NULL,
    buzz_score REAL NOT NULL,
    clips_created INTEGER NOT NULL DEFAULT 0,
    scanned_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_scan_results_scan ON scan_results(scan_id);
CREATE INDEX IF NOT EXISTS idx_scan_results_video ON scan_results(video_id, scanned_at);
`

// Entry is one journal row.
type Entry struct {
	ID           int64
	ScanID       string
	VideoID      string
	ChannelName  string
	VerdictTier  string
	ViewsPerHour float64
	BuzzScore    float64
	ClipsCreated int
	ScannedAt    time.Time
}

// Store manages journal persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the journal database.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("ensure journal dir: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	return &Store{db: db, path: path}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Record appends one scan outcome to the journal.
func (s *Store) Record(ctx context.Context, entry Entry) error {
	scannedAt := entry.ScannedAt
	if scannedAt.IsZero() {
		scannedAt = time.Now().UTC()
	}
	_, err := s.db.ExecContext(
		ctx,
		`INSERT INTO scan_results (
            scan_id, video_id, channel_name, verdict_tier,
            views_per_hour, buzz_score, clips_created, scanned_at
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		entry.ScanID,
		entry.VideoID,
		entry.ChannelName,
		entry.VerdictTier,
		entry.ViewsPerHour,
		entry.BuzzScore,
		entry.ClipsCreated,
		scannedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("insert scan result: %w", err)
	}
	return nil
}

// ByScan returns all rows for one scan in insertion order.
func (s *Store) ByScan(ctx context.Context, scanID string) ([]Entry, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT id, scan_id, video_id, channel_name, verdict_tier,
                views_per_hour, buzz_score, clips_created, scanned_at
         FROM scan_results WHERE scan_id = ? ORDER BY id`,
		scanID,
	)
	if err != nil {
		return nil, fmt.Errorf("query scan results: %w", err)
	}
	defer rows.Close()
	return collectEntries(rows)
}

// History returns the most recent rows for one video, newest first.
func (s *Store) History(ctx context.Context, videoID string, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT id, scan_id, video_id, channel_name, verdict_tier,
                views_per_hour, buzz_score, clips_created, scanned_at
         FROM scan_results WHERE video_id = ? ORDER BY id DESC LIMIT ?`,
		videoID,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query video history: %w", err)
	}
	defer rows.Close()
	return collectEntries(rows)
}

func collectEntries(rows *sql.Rows) ([]Entry, error) {
	var entries []Entry
	for rows.Next() {
		var entry Entry
		var scannedAt string
		if err := rows.Scan(
			&entry.ID,
			&entry.ScanID,
			&entry.VideoID,
			&entry.ChannelName,
			&entry.VerdictTier,
			&entry.ViewsPerHour,
			&entry.BuzzScore,
			&entry.ClipsCreated,
			&scannedAt,
		); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		if ts, err := time.Parse(time.RFC3339Nano, scannedAt); err == nil {
			entry.ScannedAt = ts
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}
	return entries, nil
}
