// Package store persists the per-session event journal in SQLite. Because
// the engine recomputes everything from the event sequence deterministically,
// replaying a session's journal rebuilds its exact path state.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	_ "modernc.org/sqlite"

	"stavis/internal/timing"
)

// Journal is an append-only log of engine events keyed by session.
type Journal struct {
	db *sql.DB
	mu sync.Mutex
}

// NewJournal opens (or creates) the journal database at path.
func NewJournal(path string) (*Journal, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create journal directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open journal database: %w", err)
	}

	j := &Journal{db: db}
	if err := j.initialize(); err != nil {
		db.Close()
		return nil, err
	}
	return j, nil
}

// initialize creates the events table.
func (j *Journal) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		session_id TEXT NOT NULL,
		kind TEXT NOT NULL,
		variant TEXT NOT NULL DEFAULT '',
		enabled INTEGER NOT NULL DEFAULT 0,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	CREATE INDEX IF NOT EXISTS idx_events_session ON events(session_id, id);
	`
	if _, err := j.db.Exec(schema); err != nil {
		return fmt.Errorf("create journal schema: %w", err)
	}
	return nil
}

// Record appends one event to a session's journal.
func (j *Journal) Record(sessionID string, e timing.Event) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	enabled := 0
	if e.Enabled {
		enabled = 1
	}
	_, err := j.db.Exec(
		`INSERT INTO events (session_id, kind, variant, enabled) VALUES (?, ?, ?, ?)`,
		sessionID, string(e.Kind), string(e.Variant), enabled)
	if err != nil {
		return fmt.Errorf("record event: %w", err)
	}
	return nil
}

// Events returns a session's recorded events in insertion order.
func (j *Journal) Events(sessionID string) ([]timing.Event, error) {
	j.mu.Lock()
	defer j.mu.Unlock()

	rows, err := j.db.Query(
		`SELECT kind, variant, enabled FROM events WHERE session_id = ? ORDER BY id`,
		sessionID)
	if err != nil {
		return nil, fmt.Errorf("query events: %w", err)
	}
	defer rows.Close()

	var events []timing.Event
	for rows.Next() {
		var kind, variant string
		var enabled int
		if err := rows.Scan(&kind, &variant, &enabled); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		events = append(events, timing.Event{
			Kind:    timing.EventKind(kind),
			Variant: timing.Variant(variant),
			Enabled: enabled != 0,
		})
	}
	return events, rows.Err()
}

// Replay rebuilds a session's path state by re-applying its journal in
// order. Events that fail validation (a journal written by a newer build,
// say) are skipped rather than poisoning the whole replay.
func (j *Journal) Replay(sessionID string, catalog timing.Catalog, maxChain int) (*timing.PathState, error) {
	events, err := j.Events(sessionID)
	if err != nil {
		return nil, err
	}

	state := timing.NewPathState(catalog, maxChain)
	for _, e := range events {
		if e.Validate() != nil {
			continue
		}
		timing.Apply(state, e)
	}
	return state, nil
}

// Sessions lists the session ids present in the journal.
func (j *Journal) Sessions() ([]string, error) {
	j.mu.Lock()
	defer j.mu.Unlock()

	rows, err := j.db.Query(`SELECT DISTINCT session_id FROM events ORDER BY session_id`)
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan session id: %w", err)
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

// Clear drops a session's journal, matching an engine reset that should not
// be replayed on resume.
func (j *Journal) Clear(sessionID string) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	if _, err := j.db.Exec(`DELETE FROM events WHERE session_id = ?`, sessionID); err != nil {
		return fmt.Errorf("clear session events: %w", err)
	}
	return nil
}

// Close closes the underlying database.
func (j *Journal) Close() error {
	return j.db.Close()
}
