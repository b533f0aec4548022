package db

import "os"

// PostgresDSN returns the Postgres DSN from environment and whether it was set.
func PostgresDSN() (string, bool) {
	dsn := os.Getenv("AIWRITER_POSTGRES_DSN")
	return dsn, dsn != ""
}

// PostgresNotConfiguredError is returned when Postgres DSN is not configured.
type PostgresNotConfiguredError struct{}

func (e *PostgresNotConfiguredError) Error() string {
	return "AIWRITER_POSTGRES_DSN environment variable is required for postgres storage"
}
