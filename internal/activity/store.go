package activity

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS activity_logs (
	id           TEXT PRIMARY KEY,
	timestamp    TEXT NOT NULL,
	username     TEXT,
	full_name    TEXT,
	action_type  TEXT NOT NULL,
	search_query TEXT
);
CREATE INDEX IF NOT EXISTS idx_activity_timestamp ON activity_logs (timestamp);
CREATE INDEX IF NOT EXISTS idx_activity_action ON activity_logs (action_type);
CREATE INDEX IF NOT EXISTS idx_activity_username ON activity_logs (username);
`

// Entry is one recorded query: who asked, which routing rule answered, and
// the raw text they typed.
type Entry struct {
	ID        string `db:"id" json:"id"`
	Timestamp string `db:"timestamp" json:"timestamp"`
	Username  string `db:"username" json:"username"`
	FullName  string `db:"full_name" json:"full_name"`
	Action    string `db:"action_type" json:"action_type"`
	Query     string `db:"search_query" json:"search_query"`
}

// Store keeps the activity log in a local SQLite file. A nil *Store is a
// valid no-op, so callers never have to branch on whether logging is enabled.
type Store struct {
	db  *sqlx.DB
	log *slog.Logger
}

// Open creates the database file if needed and applies the schema.
func Open(path string, log *slog.Logger) (*Store, error) {
	db, err := sqlx.Connect("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("error opening activity db: %w", err)
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("error applying %q: %w", pragma, err)
		}
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("error applying activity schema: %w", err)
	}
	return &Store{db: db, log: log}, nil
}

func (s *Store) Close() error {
	if s == nil {
		return nil
	}
	return s.db.Close()
}

// Record inserts one entry. Logging failures are reported but never bubble
// up; a broken activity log must not break answering the query.
func (s *Store) Record(username, fullName, rule, query string) {
	if s == nil {
		return
	}
	entry := Entry{
		ID:        uuid.NewString(),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Username:  username,
		FullName:  fullName,
		Action:    rule,
		Query:     query,
	}
	_, err := s.db.NamedExec(`INSERT INTO activity_logs (id, timestamp, username, full_name, action_type, search_query)
		VALUES (:id, :timestamp, :username, :full_name, :action_type, :search_query)`, entry)
	if err != nil {
		s.log.Error("Error recording activity", "error", err)
	}
}

// Recent returns the newest entries, most recent first.
func (s *Store) Recent(limit int) ([]Entry, error) {
	if s == nil {
		return nil, nil
	}
	if limit <= 0 {
		limit = 50
	}
	var entries []Entry
	err := s.db.Select(&entries,
		`SELECT id, timestamp, username, full_name, action_type, search_query
		 FROM activity_logs ORDER BY timestamp DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("error reading activity log: %w", err)
	}
	return entries, nil
}
