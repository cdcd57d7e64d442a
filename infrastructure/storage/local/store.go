/*
Package local implements the upload storage port on the local
filesystem.
*/
package local

import (
	"fmt"
	"os"
	"path/filepath"
)

// Store performs filesystem operations for the upload pipeline.
type Store struct{}

// New creates a filesystem store.
func New() *Store {
	return &Store{}
}

// Write persists data at path, creating parent directories on demand.
func (s *Store) Write(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}
	return nil
}

// Move renames from to to, creating the target directory on demand.
// Rename keeps the promotion atomic when both paths share a filesystem.
func (s *Store) Move(from, to string) error {
	if err := os.MkdirAll(filepath.Dir(to), 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	if err := os.Rename(from, to); err != nil {
		return fmt.Errorf("failed to move file: %w", err)
	}
	return nil
}

// Delete removes the file at path. A missing file is not an error.
func (s *Store) Delete(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete file: %w", err)
	}
	return nil
}

// Exists reports whether a file exists at path.
func (s *Store) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
