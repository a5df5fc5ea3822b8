// Package journal persists an append-only log of synchronization events in
// SQLite, feeding the status endpoint and post-mortem debugging. The
// journal is optional; a nil *Journal is a safe no-op.
package journal

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// Entry is one journaled synchronization event.
type Entry struct {
	ID         int64     `json:"id"`
	EventID    string    `json:"event_id"`
	Kind       string    `json:"kind"`
	Slug       string    `json:"slug,omitempty"`
	Status     string    `json:"status"`
	Error      string    `json:"error,omitempty"`
	DurationMS int64     `json:"duration_ms"`
	Timestamp  time.Time `json:"timestamp"`
}

// Entry status values.
const (
	StatusOK      = "ok"
	StatusFailed  = "failed"
	StatusSkipped = "skipped"
)

// Journal is a SQLite-backed sync event log.
type Journal struct {
	db *sql.DB
	mu sync.RWMutex
}

// Open creates or opens the journal database at dbPath.
// Use ":memory:" for an in-memory journal (tests).
func Open(dbPath string) (*Journal, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open journal database: %w", err)
	}

	j := &Journal{db: db}
	if err := j.initialize(); err != nil {
		_ = db.Close() // Best effort cleanup on initialization error
		return nil, fmt.Errorf("initialize journal schema: %w", err)
	}

	return j, nil
}

func (j *Journal) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS sync_events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		event_id TEXT NOT NULL,
		kind TEXT NOT NULL,
		slug TEXT,
		status TEXT NOT NULL,
		error TEXT,
		duration_ms INTEGER NOT NULL,
		timestamp INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_sync_events_timestamp ON sync_events(timestamp);
	CREATE INDEX IF NOT EXISTS idx_sync_events_kind ON sync_events(kind);
	`
	_, err := j.db.Exec(schema)
	return err
}

// Append writes one entry. A zero Timestamp is filled with the current time.
// Append on a nil Journal does nothing.
func (j *Journal) Append(ctx context.Context, entry Entry) error {
	if j == nil {
		return nil
	}

	j.mu.Lock()
	defer j.mu.Unlock()

	ts := entry.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}

	_, err := j.db.ExecContext(ctx,
		"INSERT INTO sync_events (event_id, kind, slug, status, error, duration_ms, timestamp) VALUES (?, ?, ?, ?, ?, ?, ?)",
		entry.EventID, entry.Kind, entry.Slug, entry.Status, entry.Error, entry.DurationMS, ts.Unix(),
	)
	if err != nil {
		return fmt.Errorf("insert sync event: %w", err)
	}

	return nil
}

// Recent returns up to n entries, newest first. A nil Journal returns nothing.
func (j *Journal) Recent(ctx context.Context, n int) ([]Entry, error) {
	if j == nil {
		return nil, nil
	}

	j.mu.RLock()
	defer j.mu.RUnlock()

	rows, err := j.db.QueryContext(ctx,
		"SELECT id, event_id, kind, slug, status, error, duration_ms, timestamp FROM sync_events ORDER BY id DESC LIMIT ?",
		n,
	)
	if err != nil {
		return nil, fmt.Errorf("query sync events: %w", err)
	}
	defer rows.Close()

	return scanEntries(rows)
}

func scanEntries(rows *sql.Rows) ([]Entry, error) {
	var entries []Entry
	for rows.Next() {
		var e Entry
		var timestampUnix int64

		err := rows.Scan(&e.ID, &e.EventID, &e.Kind, &e.Slug, &e.Status, &e.Error, &e.DurationMS, &timestampUnix)
		if err != nil {
			return nil, fmt.Errorf("scan sync event: %w", err)
		}

		e.Timestamp = time.Unix(timestampUnix, 0)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}

	return entries, nil
}

// Close closes the database connection. Safe on nil.
func (j *Journal) Close() error {
	if j == nil {
		return nil
	}
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.db.Close()
}
