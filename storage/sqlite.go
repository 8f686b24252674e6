package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/bytedance/sonic"
	_ "github.com/mattn/go-sqlite3"

	"threadwell-api/domain"
)

// SQLiteStore keeps the snapshot in a one-row table of a local SQLite
// database. It is the development backend; production uses TableStore.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (and if needed creates) the database at path and
// prepares the snapshot table.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS board_snapshots (
		key  TEXT PRIMARY KEY,
		data TEXT NOT NULL
	)`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("prepare snapshot table: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// Get returns the persisted snapshot, or ok=false when none has been
// written yet.
func (s *SQLiteStore) Get(ctx context.Context) (*domain.BoardState, bool, error) {
	var data string
	err := s.db.QueryRowContext(ctx,
		"SELECT data FROM board_snapshots WHERE key = ?", snapshotKey,
	).Scan(&data)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("read snapshot: %w", err)
	}
	var state domain.BoardState
	if err := sonic.UnmarshalString(data, &state); err != nil {
		return nil, false, fmt.Errorf("decode snapshot: %w", err)
	}
	return &state, true, nil
}

// Set replaces the snapshot row in one upsert.
func (s *SQLiteStore) Set(ctx context.Context, state *domain.BoardState) error {
	data, err := sonic.MarshalString(state)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	if _, err := s.db.ExecContext(ctx,
		"INSERT INTO board_snapshots (key, data) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET data = excluded.data",
		snapshotKey, data,
	); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	return nil
}

// Close releases the database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
