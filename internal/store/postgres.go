package store

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"
)

type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore creates a Postgres-backed store with the given DSN
func NewPostgresStore(dsn string) (*PostgresStore, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := initPostgresSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	return &PostgresStore{db: db}, nil
}

func initPostgresSchema(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS aiwriter_history (
		id TEXT PRIMARY KEY,
		action TEXT NOT NULL,
		document TEXT NOT NULL,
		language TEXT NOT NULL,
		instruction TEXT NOT NULL,
		answer TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_aiwriter_history_created_at ON aiwriter_history(created_at);
	`
	_, err := db.Exec(schema)
	return err
}

func (s *PostgresStore) Close() error {
	return s.db.Close()
}

func (s *PostgresStore) Append(e Entry) error {
	_, err := s.db.Exec(`
		INSERT INTO aiwriter_history (id, action, document, language, instruction, answer, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, e.ID, e.Action, e.Document, e.Language, e.Instruction, e.Answer, e.Time.UTC())
	if err != nil {
		return fmt.Errorf("insert history: %w", err)
	}
	return nil
}

func (s *PostgresStore) List(limit int) ([]Entry, error) {
	query := `
		SELECT id, action, document, language, instruction, answer, created_at
		FROM aiwriter_history
		ORDER BY created_at DESC
	`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT $1`
		args = append(args, limit)
	}
	return s.query(query, args...)
}

func (s *PostgresStore) Get(id string) (Entry, error) {
	if id == "" {
		return Entry{}, ErrNotFound
	}
	entries, err := s.query(`
		SELECT id, action, document, language, instruction, answer, created_at
		FROM aiwriter_history
		WHERE id = $1 OR id ILIKE $1 || '%'
	`, id)
	if err != nil {
		return Entry{}, err
	}
	return matchPrefix(entries, id)
}

func (s *PostgresStore) query(query string, args ...any) ([]Entry, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	entries := []Entry{}
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.Action, &e.Document, &e.Language, &e.Instruction, &e.Answer, &e.Time); err != nil {
			return nil, fmt.Errorf("scan history: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate history: %w", err)
	}
	return entries, nil
}
