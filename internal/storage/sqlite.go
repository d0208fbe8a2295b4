package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// StateKey is the key under which the state blob is stored
const StateKey = "labourlog.state"

// SQLiteStore keeps the state blob in a SQLite key/value table.
type SQLiteStore struct {
	db   *sql.DB
	path string
}

// OpenSQLite opens (creating if needed) the database at path.
func OpenSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}

	s := &SQLiteStore{db: db, path: path}
	if err := s.createTables(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

func (s *SQLiteStore) createTables() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS kv (
			key TEXT PRIMARY KEY,
			value BLOB NOT NULL,
			updated_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS kv_backups (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			key TEXT NOT NULL,
			value BLOB NOT NULL,
			created_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_kv_backups_key ON kv_backups(key, id)`,
	}

	for _, query := range queries {
		if _, err := s.db.Exec(query); err != nil {
			return fmt.Errorf("failed to create table: %w", err)
		}
	}
	return nil
}

// Location returns the database path and key.
func (s *SQLiteStore) Location() string {
	return fmt.Sprintf("%s#%s", s.path, StateKey)
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// ReadRaw returns the stored blob, or nil if the key is absent.
func (s *SQLiteStore) ReadRaw() ([]byte, error) {
	var value []byte
	err := s.db.QueryRow(`SELECT value FROM kv WHERE key = ?`, StateKey).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return value, nil
}

// WriteRaw upserts the blob.
func (s *SQLiteStore) WriteRaw(data []byte) error {
	_, err := s.db.Exec(
		`INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		StateKey, data, time.Now().UTC().Format(time.RFC3339),
	)
	return err
}

// Backup copies the current blob into kv_backups and prunes old rows.
func (s *SQLiteStore) Backup() error {
	data, err := s.ReadRaw()
	if err != nil || data == nil {
		return err
	}

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(
		`INSERT INTO kv_backups (key, value, created_at) VALUES (?, ?, ?)`,
		StateKey, data, time.Now().UTC().Format(time.RFC3339),
	); err != nil {
		return err
	}
	if _, err := tx.Exec(
		`DELETE FROM kv_backups WHERE key = ? AND id NOT IN (
			SELECT id FROM kv_backups WHERE key = ? ORDER BY id DESC LIMIT ?
		)`,
		StateKey, StateKey, MaxBackupCount,
	); err != nil {
		return err
	}
	return tx.Commit()
}

// ListBackups returns the stored snapshots, most recent first.
func (s *SQLiteStore) ListBackups() ([]BackupInfo, error) {
	rows, err := s.db.Query(
		`SELECT id, created_at FROM kv_backups WHERE key = ? ORDER BY id DESC`, StateKey)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var backups []BackupInfo
	n := 0
	for rows.Next() {
		var id int64
		var createdAt string
		if err := rows.Scan(&id, &createdAt); err != nil {
			return nil, err
		}
		n++
		backups = append(backups, BackupInfo{
			Number: n,
			Path:   fmt.Sprintf("%s (backup row %d, %s)", s.path, id, createdAt),
		})
	}
	return backups, rows.Err()
}

// Restore replaces the blob with snapshot n (1 is most recent).
func (s *SQLiteStore) Restore(n int) error {
	if n < 1 || n > MaxBackupCount {
		return fmt.Errorf("invalid backup number %d, must be between 1 and %d", n, MaxBackupCount)
	}

	var value []byte
	err := s.db.QueryRow(
		`SELECT value FROM kv_backups WHERE key = ? ORDER BY id DESC LIMIT 1 OFFSET ?`,
		StateKey, n-1,
	).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("backup %d does not exist", n)
	}
	if err != nil {
		return err
	}

	if err := s.Backup(); err != nil {
		return err
	}
	return s.WriteRaw(value)
}
