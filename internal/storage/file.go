package storage

import (
	"fmt"
	"os"
)

// BackupSuffix is the file extension for backup files
const BackupSuffix = ".bak"

// FileStore keeps the state blob in a JSON file.
type FileStore struct {
	path string
}

// NewFileStore returns a FileStore for path. The file is created on first write.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Location returns the file path.
func (s *FileStore) Location() string {
	return s.path
}

// Close is a no-op for files.
func (s *FileStore) Close() error {
	return nil
}

// ReadRaw returns the file contents, or nil if the file doesn't exist.
func (s *FileStore) ReadRaw() ([]byte, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	return data, nil
}

// WriteRaw replaces the file contents.
// Uses atomic write pattern (write to temp file, then rename) for safety.
func (s *FileStore) WriteRaw(data []byte) error {
	tmpFile := s.path + ".tmp"
	if err := os.WriteFile(tmpFile, data, 0644); err != nil {
		_ = os.Remove(tmpFile)
		return err
	}
	return os.Rename(tmpFile, s.path)
}

// backupPath returns the path to backup n.
// Backup files are named state.json.bak.N; lower numbers are more recent.
func (s *FileStore) backupPath(n int) string {
	return fmt.Sprintf("%s%s.%d", s.path, BackupSuffix, n)
}

// rotateBackups shifts existing backup files to make room for a new backup.
// It renames .bak.1 -> .bak.2, .bak.2 -> .bak.3, and deletes the oldest.
// Missing files are not an error.
func (s *FileStore) rotateBackups() error {
	if err := os.Remove(s.backupPath(MaxBackupCount)); err != nil && !os.IsNotExist(err) {
		return err
	}

	for i := MaxBackupCount - 1; i >= 1; i-- {
		if err := os.Rename(s.backupPath(i), s.backupPath(i+1)); err != nil && !os.IsNotExist(err) {
			return err
		}
	}
	return nil
}

// Backup copies the state file to .bak.1 after rotating older backups.
// If the state file doesn't exist, no backup is created and no error is returned.
func (s *FileStore) Backup() error {
	data, err := s.ReadRaw()
	if err != nil || data == nil {
		return err
	}

	if err := s.rotateBackups(); err != nil {
		return err
	}
	return os.WriteFile(s.backupPath(1), data, 0644)
}

// ListBackups returns available backup files sorted by recency.
func (s *FileStore) ListBackups() ([]BackupInfo, error) {
	var backups []BackupInfo
	for i := 1; i <= MaxBackupCount; i++ {
		p := s.backupPath(i)
		if _, err := os.Stat(p); err == nil {
			backups = append(backups, BackupInfo{Number: i, Path: p})
		}
	}
	return backups, nil
}

// Restore copies backup n over the state file.
// The current state is backed up first, so a restore can itself be undone.
func (s *FileStore) Restore(n int) error {
	if n < 1 || n > MaxBackupCount {
		return fmt.Errorf("invalid backup number %d, must be between 1 and %d", n, MaxBackupCount)
	}

	data, err := os.ReadFile(s.backupPath(n))
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("backup %d does not exist", n)
		}
		return err
	}

	if err := s.Backup(); err != nil {
		return err
	}
	return s.WriteRaw(data)
}
