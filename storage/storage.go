// ABOUTME: Storage backend interface and format-keyed factory
// ABOUTME: Maps a configuration string to the sqlite or json store
package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/harperreed/abook/repo"
)

// Supported storage type keys.
const (
	TypeSQLite = "sqlite"
	TypeJSON   = "json"
)

// ErrUnsupportedType is returned for storage keys the factory does not know.
// It is a fatal startup condition.
var ErrUnsupportedType = errors.New("unsupported storage type")

// Store persists and restores a whole repository snapshot. A missing data
// file is not an error: Load then returns an empty snapshot.
type Store interface {
	Save(snapshot *repo.Snapshot) error
	Load() (*repo.Snapshot, error)
}

// New resolves a storage type key to a backend rooted in baseDir. The
// directory is created if absent.
func New(storageType, baseDir string) (Store, error) {
	storageType = strings.ToLower(storageType)

	var store Store
	switch storageType {
	case TypeSQLite:
		store = &SQLiteStore{path: filepath.Join(baseDir, "addressbook.db")}
	case TypeJSON:
		store = &JSONStore{path: filepath.Join(baseDir, "addressbook.json")}
	default:
		return nil, fmt.Errorf("%w: %q (supported: %s)",
			ErrUnsupportedType, storageType, strings.Join(SupportedTypes(), ", "))
	}

	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	return store, nil
}

// SupportedTypes lists the storage keys the factory accepts.
func SupportedTypes() []string {
	return []string{TypeSQLite, TypeJSON}
}
