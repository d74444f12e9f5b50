// ABOUTME: YAML-file credential store with bcrypt password hashes
// ABOUTME: Supports lookup, timing-safe verification and whole-file registration

package credentials

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/afero"
	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"
)

// Registration errors
var (
	ErrDuplicateUsername = errors.New("username already taken")
	ErrEmptyUsername     = errors.New("username is required")
	ErrPasswordMismatch  = errors.New("passwords do not match")
)

// dummyHash is compared against when a username is unknown so the response
// time does not reveal which usernames exist.
const dummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// Store reads and writes the credential file
type Store struct {
	fs   afero.Fs
	path string
	cost int
}

// Option configures a Store
type Option func(*Store)

// WithCost sets the bcrypt cost used when hashing new passwords
func WithCost(cost int) Option {
	return func(s *Store) {
		s.cost = cost
	}
}

// NewStore creates a credential store backed by the file at path
func NewStore(fs afero.Fs, path string, opts ...Option) *Store {
	s := &Store{fs: fs, path: path, cost: bcrypt.DefaultCost}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Path returns the location of the credential file
func (s *Store) Path() string {
	return s.path
}

// Lookup returns the stored hash for a username. A missing or unreadable
// file behaves like an empty one.
func (s *Store) Lookup(username string) (string, bool) {
	users, err := s.load()
	if err != nil {
		return "", false
	}
	hash, ok := users[username]
	return hash, ok
}

// Exists reports whether a username is registered
func (s *Store) Exists(username string) bool {
	_, ok := s.Lookup(username)
	return ok
}

// Verify reports whether password matches the stored hash for username
func (s *Store) Verify(username, password string) bool {
	hash, ok := s.Lookup(username)
	if !ok || hash == "" {
		_ = bcrypt.CompareHashAndPassword([]byte(dummyHash), []byte(password))
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// Register hashes password and persists a new user. Existing usernames are
// rejected before anything is written.
func (s *Store) Register(username, password string) error {
	if strings.TrimSpace(username) == "" {
		return ErrEmptyUsername
	}

	users, err := s.load()
	if err != nil {
		return err
	}
	if _, ok := users[username]; ok {
		return ErrDuplicateUsername
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return fmt.Errorf("hashing password: %w", err)
	}
	users[username] = string(hash)

	return s.save(users)
}

// Usernames returns all registered usernames in sorted order
func (s *Store) Usernames() ([]string, error) {
	users, err := s.load()
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(users))
	for name := range users {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// CheckRegistration validates a registration form. The duplicate check runs
// before the confirmation check.
func (s *Store) CheckRegistration(username, password, confirmation string) error {
	if strings.TrimSpace(username) == "" {
		return ErrEmptyUsername
	}
	if s.Exists(username) {
		return ErrDuplicateUsername
	}
	if password != confirmation {
		return ErrPasswordMismatch
	}
	return nil
}

// load reads the full mapping. A missing file yields an empty mapping.
func (s *Store) load() (map[string]string, error) {
	data, err := afero.ReadFile(s.fs, s.path)
	if err != nil {
		exists, statErr := afero.Exists(s.fs, s.path)
		if statErr == nil && !exists {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("reading credential file: %w", err)
	}

	users := map[string]string{}
	if err := yaml.Unmarshal(data, &users); err != nil {
		return nil, fmt.Errorf("parsing credential file: %w", err)
	}
	if users == nil {
		users = map[string]string{}
	}
	return users, nil
}

// save rewrites the whole credential file
func (s *Store) save(users map[string]string) error {
	data, err := yaml.Marshal(users)
	if err != nil {
		return fmt.Errorf("encoding credential file: %w", err)
	}

	if dir := filepath.Dir(s.path); dir != "" {
		if err := s.fs.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating credential directory: %w", err)
		}
	}

	if err := afero.WriteFile(s.fs, s.path, data, 0o600); err != nil {
		return fmt.Errorf("writing credential file: %w", err)
	}
	return nil
}
