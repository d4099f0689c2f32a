package database

import (
	"database/sql"
	"fmt"
	"strings"

	"kidventure/internal/config"
)

// DB wraps the storage connection with dialect support
type DB struct {
	*sql.DB
	Dialect Dialect
}

// Initialize opens the default SQLite device store at the given path
func Initialize(path string) (*DB, error) {
	return open(NewSQLiteDialect(), DialectConfig{Path: path})
}

// InitializeWithConfig opens the storage engine selected by config
func InitializeWithConfig(cfg *config.Config) (*DB, error) {
	switch strings.ToLower(cfg.StorageType) {
	case "postgres", "postgresql":
		return open(NewPostgresDialect(), DialectConfig{URL: cfg.StorageURL})
	case "mysql":
		return open(NewMySQLDialect(), DialectConfig{URL: cfg.StorageURL})
	case "sqlite", "sqlite3", "":
		return open(NewSQLiteDialect(), DialectConfig{Path: cfg.StoragePath})
	default:
		return nil, fmt.Errorf("unsupported storage type: %s", cfg.StorageType)
	}
}

func open(dialect Dialect, dialectConfig DialectConfig) (*DB, error) {
	db, err := sql.Open(dialect.DriverName(), dialect.DSN(dialectConfig))
	if err != nil {
		return nil, fmt.Errorf("failed to open storage: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping storage: %w", err)
	}

	if err := dialect.ConfigureConnection(db); err != nil {
		return nil, fmt.Errorf("failed to configure connection: %w", err)
	}

	return &DB{DB: db, Dialect: dialect}, nil
}

// EnsureSchema creates the storage tables when missing
func (db *DB) EnsureSchema() error {
	for _, stmt := range db.Dialect.SchemaStatements() {
		if _, err := db.DB.Exec(stmt); err != nil {
			return fmt.Errorf("failed to apply schema: %w", err)
		}
	}
	return nil
}

// Close closes the storage connection
func (db *DB) Close() error {
	return db.DB.Close()
}

// Query executes a query with automatic placeholder rewriting
func (db *DB) Query(query string, args ...interface{}) (*sql.Rows, error) {
	return db.DB.Query(db.Dialect.RewriteQuery(query), args...)
}

// QueryRow executes a single-row query with automatic placeholder rewriting
func (db *DB) QueryRow(query string, args ...interface{}) *sql.Row {
	return db.DB.QueryRow(db.Dialect.RewriteQuery(query), args...)
}

// Exec executes a statement with automatic placeholder rewriting
func (db *DB) Exec(query string, args ...interface{}) (sql.Result, error) {
	return db.DB.Exec(db.Dialect.RewriteQuery(query), args...)
}
