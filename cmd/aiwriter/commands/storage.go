package commands

import (
	"fmt"

	"github.com/earlysvahn/aiwriter/internal/db"
	"github.com/earlysvahn/aiwriter/internal/store"
)

// CreateHistoryStore instantiates the appropriate storage backend
func CreateHistoryStore(backend string) (store.HistoryStore, error) {
	switch backend {
	case "file":
		return store.NewFileStore(), nil
	case "sqlite":
		return store.NewSQLiteStore(db.SQLitePath())
	case "postgres":
		dsn, ok := db.PostgresDSN()
		if !ok {
			return nil, &db.PostgresNotConfiguredError{}
		}
		return store.NewPostgresStore(dsn)
	default:
		return nil, fmt.Errorf("unknown storage backend: %s (must be 'file', 'sqlite', or 'postgres')", backend)
	}
}
