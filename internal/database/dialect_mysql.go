package database

import (
	"database/sql"
	"time"

	_ "github.com/go-sql-driver/mysql"
)

// MySQLDialect implements Dialect for MySQL
type MySQLDialect struct{}

// NewMySQLDialect creates a new MySQL dialect
func NewMySQLDialect() *MySQLDialect {
	return &MySQLDialect{}
}

func (d *MySQLDialect) DriverName() string {
	return "mysql"
}

func (d *MySQLDialect) DSN(config DialectConfig) string {
	return config.URL
}

func (d *MySQLDialect) RewriteQuery(query string) string {
	// MySQL uses ? placeholders like SQLite, no rewrite needed
	return query
}

func (d *MySQLDialect) ConfigureConnection(db *sql.DB) error {
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(5 * time.Minute)
	return nil
}

func (d *MySQLDialect) SchemaStatements() []string {
	return []string{
		"CREATE TABLE IF NOT EXISTS app_state (" +
			"id INT PRIMARY KEY, " +
			"blob MEDIUMTEXT NOT NULL, " +
			"updated_at DATETIME(6) DEFAULT CURRENT_TIMESTAMP(6)" +
			");",
		"CREATE TABLE IF NOT EXISTS blocked_words (" +
			"word VARCHAR(64) PRIMARY KEY" +
			");",
	}
}
