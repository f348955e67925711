package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

const eventsFileName = "events.sqlite"

// Event is one appended mutation record. Payload carries the op parameters
// as JSON so the schema never changes when an op grows a field.
type Event struct {
	ID      int64          `json:"id"`
	Type    string         `json:"type"`
	NodeID  string         `json:"nodeId,omitempty"`
	At      time.Time      `json:"at"`
	Payload map[string]any `json:"payload,omitempty"`
}

func (s Store) eventsPath() string {
	return filepath.Join(s.Dir, eventsFileName)
}

func (s Store) openEvents(ctx context.Context) (*sql.DB, error) {
	if err := s.Ensure(); err != nil {
		return nil, err
	}
	// modernc.org/sqlite driver name is "sqlite".
	db, err := sql.Open("sqlite", s.eventsPath())
	if err != nil {
		return nil, err
	}
	// WAL enables one writer + many readers; busy_timeout avoids
	// "database is locked" flakiness across processes.
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS events (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		type TEXT NOT NULL,
		node_id TEXT NOT NULL,
		at_unixms INTEGER NOT NULL,
		payload_json TEXT NOT NULL
	);`); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// AppendEvent records one mutation in the event log.
func (s Store) AppendEvent(ctx context.Context, ev Event) error {
	db, err := s.openEvents(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	at := ev.At
	if at.IsZero() {
		at = time.Now().UTC()
	}
	payload := ev.Payload
	if payload == nil {
		payload = map[string]any{}
	}
	pj, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	_, err = db.ExecContext(ctx,
		`INSERT INTO events(type, node_id, at_unixms, payload_json) VALUES(?, ?, ?, ?)`,
		ev.Type, ev.NodeID, at.UnixMilli(), string(pj))
	return err
}

// ListEvents returns the newest events first, capped at limit (0 = all).
func (s Store) ListEvents(ctx context.Context, limit int) ([]Event, error) {
	db, err := s.openEvents(ctx)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	q := `SELECT id, type, node_id, at_unixms, payload_json FROM events ORDER BY id DESC`
	args := []any{}
	if limit > 0 {
		q += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Event
	for rows.Next() {
		var ev Event
		var atms int64
		var pj string
		if err := rows.Scan(&ev.ID, &ev.Type, &ev.NodeID, &atms, &pj); err != nil {
			return nil, err
		}
		ev.At = time.UnixMilli(atms).UTC()
		if pj != "" && pj != "{}" {
			if err := json.Unmarshal([]byte(pj), &ev.Payload); err != nil {
				return nil, err
			}
		}
		out = append(out, ev)
	}
	return out, rows.Err()
}
