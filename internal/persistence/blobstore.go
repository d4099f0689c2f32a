package persistence

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"kidventure/internal/database"
)

// BlobStore reads and writes the single serialized state blob on device
// storage. Load returns nil bytes when nothing has been stored yet.
type BlobStore interface {
	Load(ctx context.Context) ([]byte, error)
	Save(ctx context.Context, blob []byte) error
	Clear(ctx context.Context) error
}

// SQLBlobStore keeps the blob in a one-row table managed by the shared
// storage connection
type SQLBlobStore struct {
	db *database.DB
}

// NewSQLBlobStore creates a blob store over the given storage connection
func NewSQLBlobStore(db *database.DB) *SQLBlobStore {
	return &SQLBlobStore{db: db}
}

// Load reads the stored blob, or nil when no state has been saved
func (s *SQLBlobStore) Load(ctx context.Context) ([]byte, error) {
	var blob string
	query := s.db.Dialect.RewriteQuery("SELECT blob FROM app_state WHERE id = 1")
	err := s.db.DB.QueryRowContext(ctx, query).Scan(&blob)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read state blob: %w", err)
	}
	return []byte(blob), nil
}

// Save writes the blob, replacing any previous value
func (s *SQLBlobStore) Save(ctx context.Context, blob []byte) error {
	// Delete-then-insert sidesteps the upsert syntax differences between
	// the supported engines; both statements run in one transaction
	tx, err := s.db.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin save: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, s.db.Dialect.RewriteQuery("DELETE FROM app_state WHERE id = 1")); err != nil {
		return fmt.Errorf("failed to clear previous state: %w", err)
	}
	insert := s.db.Dialect.RewriteQuery("INSERT INTO app_state (id, blob) VALUES (1, ?)")
	if _, err := tx.ExecContext(ctx, insert, string(blob)); err != nil {
		return fmt.Errorf("failed to write state blob: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit state blob: %w", err)
	}
	return nil
}

// Clear removes the stored blob
func (s *SQLBlobStore) Clear(ctx context.Context) error {
	query := s.db.Dialect.RewriteQuery("DELETE FROM app_state WHERE id = 1")
	if _, err := s.db.DB.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("failed to clear state blob: %w", err)
	}
	return nil
}
