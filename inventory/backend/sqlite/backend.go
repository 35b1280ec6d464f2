package sqlite

import (
	"context"
	"database/sql"
	"sync"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// SQLiteBackend stores every inventory object as one row of the
// vsh_objects table. Children are found through the indexed parent column.
type SQLiteBackend struct {
	mu sync.RWMutex
	db *sql.DB
}

// NewSQLiteBackend creates a new SQLite-backed inventory backend.
// The dbPath can be ":memory:" for an in-memory database or a file path.
func NewSQLiteBackend(dbPath string) (*SQLiteBackend, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}

	// Every connection to ":memory:" would see its own empty database
	db.SetMaxOpenConns(1)

	if dbPath != ":memory:" {
		// Enable WAL mode for better concurrency
		if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
			db.Close()
			return nil, err
		}
	}

	backend := &SQLiteBackend{
		db: db,
	}

	if err := backend.initSchema(); err != nil {
		db.Close()
		return nil, err
	}

	return backend, nil
}

// initSchema creates the database schema.
func (sb *SQLiteBackend) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS vsh_objects (
		id TEXT PRIMARY KEY,
		path TEXT NOT NULL UNIQUE,
		parent TEXT NOT NULL,
		name TEXT NOT NULL,
		kind TEXT NOT NULL,
		attributes TEXT,
		create_time INTEGER NOT NULL,
		modify_time INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_vsh_objects_parent ON vsh_objects(parent);
	`

	_, err := sb.db.Exec(schema)
	return err
}

// Returns the identifier name defined for this backend
func (*SQLiteBackend) Name() string {
	return "sqlite"
}

// Open is part of the lifecycle behavious and gets called when opening this backend.
func (sb *SQLiteBackend) Open(ctx context.Context) error {
	sb.mu.Lock()
	defer sb.mu.Unlock()

	return sb.db.PingContext(ctx)
}

// Close is part of the lifecycle behaviour and gets called when closing this backend.
func (sb *SQLiteBackend) Close(ctx context.Context) error {
	sb.mu.Lock()
	defer sb.mu.Unlock()

	return sb.db.Close()
}
