// ABOUTME: JSON storage backend
// ABOUTME: Persists the repository snapshot as one indented document
package storage

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/harperreed/abook/repo"
)

// JSONStore writes the snapshot as a single human-readable document.
// Birthdays serialize as DD.MM.YYYY strings and parse back into the same
// date type the sqlite backend produces, so both formats reconstruct an
// identical repository.
type JSONStore struct {
	path string
}

func (s *JSONStore) Save(snapshot *repo.Snapshot) error {
	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", s.path, err)
	}
	return nil
}

func (s *JSONStore) Load() (*repo.Snapshot, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return &repo.Snapshot{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", s.path, err)
	}

	var snapshot repo.Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", s.path, err)
	}
	return &snapshot, nil
}
