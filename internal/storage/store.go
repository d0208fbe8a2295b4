package storage

import (
	"fmt"

	"github.com/markargand/labourlog/internal/osutil"
)

const (
	// AppName is the application name used for the data directory
	AppName = "labourlog"
	// StateFile is the name of the JSON state file
	StateFile = "state.json"
	// DatabaseFile is the name of the SQLite database file
	DatabaseFile = "state.db"
	// MaxBackupCount is the maximum number of backups to keep
	MaxBackupCount = 3

	BackendJSON   = "json"
	BackendSQLite = "sqlite"
)

// Store reads and writes the raw state blob.
type Store interface {
	// ReadRaw returns the stored blob, or nil if nothing has been stored yet.
	ReadRaw() ([]byte, error)
	// WriteRaw replaces the stored blob.
	WriteRaw(data []byte) error
	// Backup snapshots the current blob, keeping at most MaxBackupCount snapshots.
	Backup() error
	// ListBackups returns the available snapshots, most recent first.
	ListBackups() ([]BackupInfo, error)
	// Restore replaces the blob with snapshot n (1 is most recent),
	// snapshotting the current blob first.
	Restore(n int) error
	// Location describes where the blob lives.
	Location() string
	Close() error
}

// BackupInfo contains information about a backup
type BackupInfo struct {
	Number int    // The backup number (1 is most recent)
	Path   string // File path or database row description
}

// Health contains information about the health status of the stored state.
type Health struct {
	Location  string
	Exists    bool
	Corrupted bool
	Error     string   // Decode error when Corrupted
	Employees int      // Number of employees
	Projects  int      // Number of projects
	Entries   int      // Number of entries
	Problems  []string // Consistency problems found by Check
}

// GetStoragePath returns the default path for the given backend.
// Creates the data directory if it doesn't exist.
func GetStoragePath(backend string) (string, error) {
	name := StateFile
	if backend == BackendSQLite {
		name = DatabaseFile
	}
	return osutil.AppFile(AppName, name)
}

// Open opens the store for backend at path.
func Open(backend, path string) (Store, error) {
	switch backend {
	case "", BackendJSON:
		return NewFileStore(path), nil
	case BackendSQLite:
		return OpenSQLite(path)
	default:
		return nil, fmt.Errorf("unknown storage backend %q (use %s or %s)", backend, BackendJSON, BackendSQLite)
	}
}

// Load reads and decodes the state. A store with nothing in it yields NewState().
func Load(s Store) (State, error) {
	data, err := s.ReadRaw()
	if err != nil {
		return NewState(), err
	}
	st, err := Decode(data)
	if err != nil {
		return NewState(), fmt.Errorf("failed to decode state at %s: %w", s.Location(), err)
	}
	return st, nil
}

// Save encodes and writes the state.
func Save(s Store, st State) error {
	data, err := Encode(st)
	if err != nil {
		return err
	}
	return s.WriteRaw(data)
}

// Validate analyses the stored state and reports its health.
func Validate(s Store) (Health, error) {
	health := Health{Location: s.Location(), Problems: []string{}}

	data, err := s.ReadRaw()
	if err != nil {
		return health, err
	}
	if data == nil {
		return health, nil
	}
	health.Exists = true

	st, err := Decode(data)
	if err != nil {
		health.Corrupted = true
		health.Error = err.Error()
		return health, nil
	}

	health.Employees = len(st.Employees)
	health.Projects = len(st.Projects)
	health.Entries = len(st.Entries)
	health.Problems = append(health.Problems, Check(st)...)
	return health, nil
}
