// Package store is a flat-directory, identifier-keyed file store. Keys
// are full UUIDs plus a fixed extension, so two files can never share an
// identifier prefix.
package store

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"media-studio/apperr"
)

// Store manages files under a single directory.
type Store struct {
	dir string
}

// New creates the backing directory if needed and returns a store for it.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return nil, fmt.Errorf("creating store directory %s: %w", dir, err)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the backing directory.
func (s *Store) Dir() string { return s.dir }

// Put streams r into a new file named by a fresh UUID plus ext and
// returns the identifier and the full path.
func (s *Store) Put(ext string, r io.Reader) (string, string, error) {
	id := uuid.NewString()
	path := filepath.Join(s.dir, id+ext)

	f, err := os.Create(path)
	if err != nil {
		return "", "", fmt.Errorf("creating %s: %w", path, err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(path)
		return "", "", fmt.Errorf("writing %s: %w", path, err)
	}
	return id, path, nil
}

// Reserve returns a fresh identifier and the path a new file with the
// given extension will occupy, without creating it. Used when an external
// process writes the file itself.
func (s *Store) Reserve(ext string) (string, string) {
	id := uuid.NewString()
	return id, filepath.Join(s.dir, id+ext)
}

// Resolve maps an identifier to the path of the stored file. Because keys
// are full UUIDs the prefix scan cannot be ambiguous.
func (s *Store) Resolve(id string) (string, error) {
	if id == "" {
		return "", apperr.New(apperr.InvalidInput, "empty file identifier")
	}
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return "", fmt.Errorf("reading store directory %s: %w", s.dir, err)
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if strings.HasPrefix(entry.Name(), id) {
			return filepath.Join(s.dir, entry.Name()), nil
		}
	}
	return "", apperr.New(apperr.NotFound, "file with ID '%s' not found in %s", id, s.dir)
}

// Delete removes the file for an identifier. Deleting an unknown
// identifier is not an error.
func (s *Store) Delete(id string) error {
	path, err := s.Resolve(id)
	if err != nil {
		if apperr.KindOf(err) == apperr.NotFound {
			return nil
		}
		return err
	}
	return os.Remove(path)
}

// Sweep removes files whose modification time is older than maxAge and
// returns how many were deleted along with any per-file errors.
func (s *Store) Sweep(maxAge time.Duration) (int, []error) {
	cutoff := time.Now().Add(-maxAge)
	deleted := 0
	var errs []error

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return 0, []error{fmt.Errorf("reading store directory %s: %w", s.dir, err)}
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if info.ModTime().Before(cutoff) {
			path := filepath.Join(s.dir, entry.Name())
			if err := os.Remove(path); err != nil {
				errs = append(errs, fmt.Errorf("removing %s: %w", path, err))
				continue
			}
			deleted++
		}
	}
	return deleted, errs
}
