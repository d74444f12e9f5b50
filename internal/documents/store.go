// ABOUTME: File-backed document store over an afero filesystem
// ABOUTME: Provides list, read, create, write, delete and duplicate for a flat directory

package documents

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/afero"
)

// ErrNotFound is returned when a document does not exist
var ErrNotFound = errors.New("document not found")

// duplicateSuffix is inserted before the extension of a duplicated document
const duplicateSuffix = "_dup"

// Store reads and writes documents in a single directory
type Store struct {
	fs  afero.Fs
	dir string
}

// NewStore creates a document store rooted at dir on the given filesystem
func NewStore(fs afero.Fs, dir string) *Store {
	return &Store{fs: fs, dir: dir}
}

// Ready reports whether the document directory exists. It never creates it.
func (s *Store) Ready() error {
	info, err := s.fs.Stat(s.dir)
	if err != nil {
		return fmt.Errorf("checking document directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("document directory %s is not a directory", s.dir)
	}
	return nil
}

// EnsureDir creates the document directory if it does not exist
func (s *Store) EnsureDir() error {
	if err := s.fs.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("creating document directory: %w", err)
	}
	return nil
}

// List returns the names of all documents. A missing or unreadable directory
// yields an empty list.
func (s *Store) List() []string {
	entries, err := afero.ReadDir(s.fs, s.dir)
	if err != nil {
		return []string{}
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		names = append(names, entry.Name())
	}
	return names
}

// Exists reports whether a document with the given name is present
func (s *Store) Exists(name string) bool {
	path, ok := s.path(name)
	if !ok {
		return false
	}
	info, err := s.fs.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// Read returns the raw content of a document
func (s *Store) Read(name string) ([]byte, error) {
	path, ok := s.path(name)
	if !ok {
		return nil, ErrNotFound
	}

	content, err := afero.ReadFile(s.fs, path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("reading %s: %w", name, err)
	}
	return content, nil
}

// Create writes a new document. An existing document with the same name is
// overwritten.
func (s *Store) Create(name string, content []byte) error {
	return s.Write(name, content)
}

// Write replaces the full content of a document
func (s *Store) Write(name string, content []byte) error {
	path, ok := s.path(name)
	if !ok {
		return fmt.Errorf("writing %q: %w", name, ErrInvalidName)
	}

	if err := afero.WriteFile(s.fs, path, content, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", name, err)
	}
	return nil
}

// Delete removes a document. Returns ErrNotFound if the name is not in the
// current listing.
func (s *Store) Delete(name string) error {
	if !slices.Contains(s.List(), name) {
		return ErrNotFound
	}

	path, ok := s.path(name)
	if !ok {
		return ErrNotFound
	}

	if err := s.fs.Remove(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return ErrNotFound
		}
		return fmt.Errorf("deleting %s: %w", name, err)
	}
	return nil
}

// Duplicate copies a document to DuplicateName(name) and returns the new name.
// An existing duplicate is overwritten.
func (s *Store) Duplicate(name string) (string, error) {
	content, err := s.Read(name)
	if err != nil {
		return "", err
	}

	dupName := DuplicateName(name)
	if err := s.Create(dupName, content); err != nil {
		return "", err
	}
	return dupName, nil
}

// DuplicateName derives the name of a copy by inserting "_dup" before the
// extension: report.md becomes report_dup.md, notes becomes notes_dup.
func DuplicateName(name string) string {
	ext := filepath.Ext(name)
	root := strings.TrimSuffix(name, ext)
	return root + duplicateSuffix + ext
}

// path resolves a document name inside the store directory. Names that could
// escape the flat directory never resolve.
func (s *Store) path(name string) (string, bool) {
	if !isFlatName(name) {
		return "", false
	}
	return filepath.Join(s.dir, name), true
}

// isFlatName reports whether name refers to a single entry of the directory
func isFlatName(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	return !strings.ContainsAny(name, `/\`)
}
