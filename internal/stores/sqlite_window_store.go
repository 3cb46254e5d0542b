package stores

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"dynamic-routing/internal/models"

	_ "modernc.org/sqlite"
)

const createWindowsTableSQL = `
CREATE TABLE IF NOT EXISTS success_rate_windows (
	window_key TEXT PRIMARY KEY,
	version    INTEGER NOT NULL,
	payload    BLOB NOT NULL,
	updated_at INTEGER NOT NULL
)`

// OpenSQLiteDB opens (creating if needed) the sqlite database at path in WAL mode.
func OpenSQLiteDB(path string) (*sql.DB, error) {
	if path == "" {
		return nil, fmt.Errorf("sqlite path cannot be empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create sqlite directory: %w", err)
	}

	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)", path)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite: %w", err)
	}
	// sqlite admits one writer at a time; a single connection keeps writers queued in
	// database/sql instead of failing with SQLITE_BUSY
	db.SetMaxOpenConns(1)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping sqlite: %w", err)
	}
	return db, nil
}

// sqliteWindowStore keeps one row per window. The version column turns each write into
// a compare-and-swap: UPDATE ... WHERE version = expected, or INSERT for a new window.
type sqliteWindowStore struct {
	db  *sql.DB
	now func() time.Time
}

// NewSQLiteWindowStore creates the windows table if needed and returns the store.
func NewSQLiteWindowStore(ctx context.Context, db *sql.DB) (WindowStore, error) {
	if _, err := db.ExecContext(ctx, createWindowsTableSQL); err != nil {
		return nil, fmt.Errorf("failed to migrate windows table: %w", err)
	}
	return &sqliteWindowStore{db: db, now: time.Now}, nil
}

func (s *sqliteWindowStore) Get(ctx context.Context, key models.WindowKey) (*models.VersionedWindow, error) {
	var payload []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT payload FROM success_rate_windows WHERE window_key = ?`, key.String(),
	).Scan(&payload)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.NewEmptyVersionedWindow(), nil
		}
		return nil, fmt.Errorf("failed to get window: %w", err)
	}
	return decodeWindow(payload)
}

func (s *sqliteWindowStore) Put(ctx context.Context, key models.WindowKey, expectedVersion uint64, window *models.Window) error {
	newVersion := expectedVersion + 1
	payload, err := encodeWindow(newVersion, window)
	if err != nil {
		return err
	}
	updatedAt := s.now().UnixMilli()

	var result sql.Result
	if expectedVersion == 0 {
		result, err = s.db.ExecContext(ctx,
			`INSERT INTO success_rate_windows (window_key, version, payload, updated_at)
			 VALUES (?, ?, ?, ?)
			 ON CONFLICT(window_key) DO NOTHING`,
			key.String(), newVersion, payload, updatedAt)
	} else {
		result, err = s.db.ExecContext(ctx,
			`UPDATE success_rate_windows
			 SET version = ?, payload = ?, updated_at = ?
			 WHERE window_key = ? AND version = ?`,
			newVersion, payload, updatedAt, key.String(), expectedVersion)
	}
	if err != nil {
		return fmt.Errorf("failed to put window: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to put window: %w", err)
	}
	if affected == 0 {
		return ErrVersionConflict
	}
	return nil
}
