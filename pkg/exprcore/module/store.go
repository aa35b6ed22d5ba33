package module

import (
	"errors"
	"time"
)

// Store persists module data by module name.
// Implementations must be safe for concurrent use.
type Store interface {
	// Save stores data for a module, replacing any previous data.
	Save(name string, data []byte) error

	// Load returns the data saved for a module, or ErrNotFound.
	Load(name string) ([]byte, error)

	// List describes every stored module, ordered by name.
	List() ([]Info, error)

	// Delete removes a module's data. Missing data is not an error.
	Delete(name string) error

	// Close releases resources.
	Close() error
}

// Info describes stored data without loading it.
type Info struct {
	Module string

	// Revision counts saves for the module, starting at 1.
	Revision int

	Timestamp time.Time
	Size      int64
}

var (
	// ErrNotFound indicates a module has no stored data.
	ErrNotFound = errors.New("module data not found")

	// ErrStoreClosed indicates the store has been closed.
	ErrStoreClosed = errors.New("module store closed")
)

// OpenStore returns a MemoryStore for "" or "memory", and otherwise a
// SQLiteStore at path.
func OpenStore(path string) (Store, error) {
	if path == "" || path == "memory" {
		return NewMemoryStore(), nil
	}
	return NewSQLiteStore(path)
}
