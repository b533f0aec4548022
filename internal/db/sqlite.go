package db

import (
	"path/filepath"

	"github.com/earlysvahn/aiwriter/internal/config"
)

// SQLitePath returns the path to the SQLite history database.
func SQLitePath() string {
	return filepath.Join(config.Dir(), "aiwriter.db")
}
