package database

import (
	"database/sql"
	"regexp"
	"strconv"
)

// Dialect abstracts the differences between the supported storage
// engines. SQLite is the default on-device store; PostgreSQL and MySQL
// are supported for shared family devices backed by a home server.
type Dialect interface {
	// DriverName returns the driver name for sql.Open
	DriverName() string

	// DSN returns the data source name for the connection
	DSN(config DialectConfig) string

	// RewriteQuery converts placeholder syntax if needed (? to $1 for postgres)
	RewriteQuery(query string) string

	// ConfigureConnection applies engine-specific connection settings
	ConfigureConnection(db *sql.DB) error

	// SchemaStatements returns the CREATE TABLE statements for this engine
	SchemaStatements() []string
}

// DialectConfig holds connection parameters; Path for SQLite, URL for
// the server-backed engines
type DialectConfig struct {
	Path string
	URL  string
}

var placeholderPattern = regexp.MustCompile(`\?`)

// numberPlaceholders converts ? placeholders to $1, $2, etc.
func numberPlaceholders(query string) string {
	n := 0
	return placeholderPattern.ReplaceAllStringFunc(query, func(string) string {
		n++
		return "$" + strconv.Itoa(n)
	})
}
