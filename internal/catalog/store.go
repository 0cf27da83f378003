// Package catalog persists the material catalogs and saved cut projects as
// JSON files under a single data directory.
package catalog

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
)

// Store reads and writes the catalog files of one data directory. The zero
// value is not usable; construct it with NewStore or Open.
type Store struct {
	dir string
}

// DefaultDir returns the default data directory, ~/.cutplan.
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cutplan"), nil
}

// NewStore returns a store rooted at dir.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Open returns a store rooted at the default data directory.
func Open() (*Store, error) {
	dir, err := DefaultDir()
	if err != nil {
		return nil, err
	}
	return NewStore(dir), nil
}

// Dir returns the store's data directory.
func (s *Store) Dir() string {
	return s.dir
}

func (s *Store) path(file string) string {
	return filepath.Join(s.dir, file)
}

// writeJSON marshals v indented and writes it, creating the data directory
// on first use.
func (s *Store) writeJSON(file string, v any) error {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path(file), data, 0644)
}

// readJSON unmarshals a catalog file into v. A missing file reports
// os.ErrNotExist so callers can seed defaults.
func (s *Store) readJSON(file string, v any) error {
	data, err := os.ReadFile(s.path(file))
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}

func isNotExist(err error) bool {
	return errors.Is(err, os.ErrNotExist)
}
