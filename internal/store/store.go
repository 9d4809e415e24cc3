package store

import "fmt"

// New selects a storage backend by driver name. The in-memory backend is
// the default and needs no DSN; "sqlite" takes a file path and "postgres"
// a connection string.
func New(driver, dsn string) (PipelineStore, error) {
	switch driver {
	case "", "memory":
		return NewMemoryStore(), nil
	case "sqlite":
		if dsn == "" {
			dsn = "recruit-funnel.db"
		}
		return NewSQLiteStore(dsn)
	case "postgres":
		return NewPostgresStore(dsn)
	default:
		return nil, fmt.Errorf("unknown store driver: %s", driver)
	}
}
