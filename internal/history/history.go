// Package history is an optional SQLite-backed log of API round trips.
// It is off by default; enabling request_log in the config is the only
// persistence this tool has.
package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Entry is one recorded API round trip.
type Entry struct {
	ID         int64
	Timestamp  time.Time
	Method     string
	URL        string
	Status     int
	DurationMS int64
	Error      string
}

// Recorder logs requests to a SQLite database. It satisfies
// api.RequestRecorder.
type Recorder struct {
	db *sql.DB
}

// Open creates or opens the request-log database at dbPath.
func Open(dbPath string) (*Recorder, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open request log database: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to connect to request log database: %w", err)
	}

	r := &Recorder{db: db}
	if err := r.initSchema(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *Recorder) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS requests (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		timestamp DATETIME NOT NULL,
		method TEXT NOT NULL,
		url TEXT NOT NULL,
		status INTEGER NOT NULL,
		duration_ms INTEGER NOT NULL,
		error TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_requests_timestamp ON requests(timestamp DESC);
	CREATE INDEX IF NOT EXISTS idx_requests_url ON requests(url);
	`
	if _, err := r.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to initialize request log schema: %w", err)
	}
	return nil
}

// Record stores one round trip. Failures are swallowed: the log is
// best-effort and must never break a fetch.
func (r *Recorder) Record(method, url string, status int, duration time.Duration, reqErr error) {
	errText := ""
	if reqErr != nil {
		errText = reqErr.Error()
	}
	_, _ = r.db.Exec(
		`INSERT INTO requests (timestamp, method, url, status, duration_ms, error) VALUES (?, ?, ?, ?, ?, ?)`,
		time.Now(), method, url, status, duration.Milliseconds(), errText,
	)
}

// Recent returns the newest entries, most recent first.
func (r *Recorder) Recent(limit int) ([]Entry, error) {
	rows, err := r.db.Query(
		`SELECT id, timestamp, method, url, status, duration_ms, error
		 FROM requests ORDER BY timestamp DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query request log: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.Timestamp, &e.Method, &e.URL, &e.Status, &e.DurationMS, &e.Error); err != nil {
			return nil, fmt.Errorf("failed to scan request log entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Clear deletes all entries.
func (r *Recorder) Clear() error {
	if _, err := r.db.Exec(`DELETE FROM requests`); err != nil {
		return fmt.Errorf("failed to clear request log: %w", err)
	}
	return nil
}

// Close closes the database.
func (r *Recorder) Close() error {
	return r.db.Close()
}
