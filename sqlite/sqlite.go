// Package sqlite provides SQLite-based storage for the component catalog.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"
)

// DB represents a SQLite database connection.
type DB struct {
	db   *sql.DB
	path string
}

// NewDB creates a new DB instance with the given path.
// Use ":memory:" for an in-memory database.
func NewDB(path string) *DB {
	return &DB{path: path}
}

// Open opens the database connection and creates the schema if needed.
func (db *DB) Open() error {
	conn, err := sql.Open("sqlite3", db.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer at a time, so limit to one connection.
	conn.SetMaxOpenConns(1)

	// Verify connection
	if err := conn.Ping(); err != nil {
		conn.Close()
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	// Set busy timeout to wait 5 seconds before failing on lock contention.
	// This prevents immediate "database is locked" errors.
	if _, err := conn.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		conn.Close()
		return fmt.Errorf("failed to set busy timeout: %w", err)
	}

	// Enable WAL mode for file-based databases for better write performance.
	// Note: WAL mode is not supported for in-memory databases.
	if db.path != ":memory:" {
		if _, err := conn.Exec("PRAGMA journal_mode = WAL"); err != nil {
			conn.Close()
			return fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	// Enable foreign key constraints
	if _, err := conn.Exec("PRAGMA foreign_keys = ON"); err != nil {
		conn.Close()
		return fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	db.db = conn

	// Create schema
	if err := db.createSchema(); err != nil {
		conn.Close()
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	if db.db != nil {
		return db.db.Close()
	}
	return nil
}

// Path returns the filesystem path the database was opened with.
func (db *DB) Path() string {
	return db.path
}

// QueryRowContext executes a query that returns a single row.
func (db *DB) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	return db.db.QueryRowContext(ctx, query, args...)
}

// QueryContext executes a query that returns rows.
func (db *DB) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return db.db.QueryContext(ctx, query, args...)
}

// ExecContext executes a statement that doesn't return rows.
func (db *DB) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return db.db.ExecContext(ctx, query, args...)
}

// BeginTx starts a transaction. The builder wraps each shard's writes in
// one transaction so a 450K-row build is not one autocommit per row.
func (db *DB) BeginTx(ctx context.Context) (*sql.Tx, error) {
	return db.db.BeginTx(ctx, nil)
}

// createSchema creates the database tables if they don't exist.
func (db *DB) createSchema() error {
	schema := `
		CREATE TABLE IF NOT EXISTS categories (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			subcategory TEXT NOT NULL,
			UNIQUE (name, subcategory)
		);

		CREATE TABLE IF NOT EXISTS manufacturers (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL UNIQUE
		);

		CREATE TABLE IF NOT EXISTS components (
			catalog_id TEXT PRIMARY KEY,
			category_id INTEGER NOT NULL REFERENCES categories(id),
			manufacturer_id INTEGER NOT NULL REFERENCES manufacturers(id),
			mpn TEXT NOT NULL DEFAULT '',
			basic INTEGER NOT NULL DEFAULT 0,
			preferred INTEGER NOT NULL DEFAULT 0,
			description TEXT NOT NULL DEFAULT '',
			package TEXT NOT NULL DEFAULT '',
			stock INTEGER NOT NULL DEFAULT 0,
			lowest_price REAL,
			datasheet_url TEXT NOT NULL DEFAULT '',
			image_url TEXT NOT NULL DEFAULT '',
			attrs TEXT
		);

		CREATE TABLE IF NOT EXISTS prices (
			catalog_id TEXT NOT NULL REFERENCES components(catalog_id) ON DELETE CASCADE,
			qty INTEGER NOT NULL,
			price REAL NOT NULL
		);

		CREATE TABLE IF NOT EXISTS build_meta (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			build_id TEXT NOT NULL,
			downloaded_at TEXT NOT NULL,
			source TEXT NOT NULL,
			category_count INTEGER NOT NULL,
			component_count INTEGER NOT NULL,
			manifest_hash TEXT NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_components_category_id ON components(category_id);
		CREATE INDEX IF NOT EXISTS idx_components_mpn ON components(mpn);
		CREATE INDEX IF NOT EXISTS idx_components_basic ON components(basic);
		CREATE INDEX IF NOT EXISTS idx_components_stock ON components(stock);
		CREATE INDEX IF NOT EXISTS idx_prices_catalog_id ON prices(catalog_id);
	`

	_, err := db.db.Exec(schema)
	return err
}
