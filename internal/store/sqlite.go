package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

const sqliteTimeFormat = "2006-01-02 15:04:05.000000"

type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a SQLite-backed store at the given path
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create database dir: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := initSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

func initSchema(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS history (
		id TEXT PRIMARY KEY,
		action TEXT NOT NULL,
		document TEXT NOT NULL,
		language TEXT NOT NULL,
		instruction TEXT NOT NULL,
		answer TEXT NOT NULL,
		created_at DATETIME NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_history_created_at ON history(created_at);
	`
	_, err := db.Exec(schema)
	return err
}

// Close closes the database connection
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) Append(e Entry) error {
	_, err := s.db.Exec(`
		INSERT INTO history (id, action, document, language, instruction, answer, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, e.ID, e.Action, e.Document, e.Language, e.Instruction, e.Answer, e.Time.UTC().Format(sqliteTimeFormat))
	if err != nil {
		return fmt.Errorf("insert history: %w", err)
	}
	return nil
}

func (s *SQLiteStore) List(limit int) ([]Entry, error) {
	query := `
		SELECT id, action, document, language, instruction, answer, created_at
		FROM history
		ORDER BY created_at DESC
	`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	entries := []Entry{}
	for rows.Next() {
		e, err := scanSQLiteEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate history: %w", err)
	}
	return entries, nil
}

func (s *SQLiteStore) Get(id string) (Entry, error) {
	if id == "" {
		return Entry{}, ErrNotFound
	}
	rows, err := s.db.Query(`
		SELECT id, action, document, language, instruction, answer, created_at
		FROM history
		WHERE id = ? OR id LIKE ? || '%'
	`, id, id)
	if err != nil {
		return Entry{}, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		e, err := scanSQLiteEntry(rows)
		if err != nil {
			return Entry{}, err
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return Entry{}, fmt.Errorf("iterate history: %w", err)
	}
	return matchPrefix(entries, id)
}

func scanSQLiteEntry(rows *sql.Rows) (Entry, error) {
	var e Entry
	var createdAt string
	if err := rows.Scan(&e.ID, &e.Action, &e.Document, &e.Language, &e.Instruction, &e.Answer, &createdAt); err != nil {
		return Entry{}, fmt.Errorf("scan history: %w", err)
	}
	t, err := parseTimestamp(createdAt)
	if err != nil {
		return Entry{}, fmt.Errorf("parse timestamp: %w", err)
	}
	e.Time = t
	return e, nil
}

// parseTimestamp handles both SQLite default format and custom formats
func parseTimestamp(s string) (time.Time, error) {
	for _, layout := range []string{sqliteTimeFormat, "2006-01-02 15:04:05", time.RFC3339Nano} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp format: %s", s)
}
