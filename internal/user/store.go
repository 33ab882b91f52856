// Cinematheca - Local Movie Catalog and Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinematheca

package user

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"

	"github.com/tomtom215/cinematheca/internal/logging"
)

// Default identity used when no user exists yet.
const (
	DefaultUsername = "User"
	DefaultEmail    = "user@cinematheca.local"
)

// ErrUserNotFound is returned when an operation references an id that is not
// in the store.
var ErrUserNotFound = errors.New("user not found")

// PersistenceError reports a failed load or save of the user store file.
// A failed load leaves the in-memory store untouched.
type PersistenceError struct {
	Op   string // "load" or "save"
	Path string
	Err  error
}

// Error implements the error interface.
func (e *PersistenceError) Error() string {
	return fmt.Sprintf("user store %s %s: %v", e.Op, e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *PersistenceError) Unwrap() error { return e.Err }

// storeFile is the on-disk shape of the store.
type storeFile struct {
	Users         []Record `json:"users"`
	CurrentUserID *int64   `json:"current_user_id"`
}

// Store owns all user profiles, the current-session selection, and their
// persistence to a single JSON file. Mutating methods persist immediately;
// persistence failures are logged and never abort the in-memory mutation.
type Store struct {
	mu      sync.Mutex
	path    string
	users   map[int64]*User
	order   []int64 // insertion order, determines the "first" user
	current int64   // 0 means no current user
	logger  zerolog.Logger
}

// Open creates a store backed by the JSON file at path, creating the parent
// directory if needed. The store starts empty; call Load to read the file.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("create user store directory: %w", err)
		}
	}
	return &Store{
		path:   path,
		users:  make(map[int64]*User),
		logger: logging.With().Str("component", "users").Logger(),
	}, nil
}

// Path returns the location of the backing file.
func (s *Store) Path() string { return s.path }

// Load reads the backing file. A missing file is a legitimate empty store
// and reports (false, nil). A present but unreadable or invalid file reports
// a *PersistenceError and leaves the in-memory store untouched.
func (s *Store) Load() (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		s.logger.Info().Str("path", s.path).Msg("user store not found, starting empty")
		return false, nil
	}
	if err != nil {
		return false, &PersistenceError{Op: "load", Path: s.path, Err: err}
	}

	var file storeFile
	if err := json.Unmarshal(data, &file); err != nil {
		return false, &PersistenceError{Op: "load", Path: s.path, Err: err}
	}

	// Rebuild into temporaries first so a bad record cannot leave the store
	// half loaded.
	users := make(map[int64]*User, len(file.Users))
	order := make([]int64, 0, len(file.Users))
	for _, rec := range file.Users {
		u, err := FromRecord(rec)
		if err != nil {
			return false, &PersistenceError{Op: "load", Path: s.path, Err: err}
		}
		if _, exists := users[u.id]; !exists {
			order = append(order, u.id)
		}
		users[u.id] = u
	}

	var current int64
	if file.CurrentUserID != nil {
		if _, ok := users[*file.CurrentUserID]; ok {
			current = *file.CurrentUserID
		}
	}

	s.users = users
	s.order = order
	s.current = current

	s.logger.Info().Str("path", s.path).Int("users", len(users)).Msg("user store loaded")
	return true, nil
}

// Save writes the whole store to the backing file, replacing its contents.
func (s *Store) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveLocked()
}

func (s *Store) saveLocked() error {
	file := storeFile{Users: make([]Record, 0, len(s.order))}
	for _, id := range s.order {
		file.Users = append(file.Users, s.users[id].ToRecord())
	}
	if s.current != 0 {
		id := s.current
		file.CurrentUserID = &id
	}

	data, err := json.MarshalIndent(&file, "", "  ")
	if err != nil {
		return &PersistenceError{Op: "save", Path: s.path, Err: err}
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return &PersistenceError{Op: "save", Path: s.path, Err: err}
	}
	return nil
}

// persistLocked saves on a best-effort basis, logging instead of failing so
// mutations survive in memory even when the disk does not cooperate.
func (s *Store) persistLocked(op string) {
	if err := s.saveLocked(); err != nil {
		s.logger.Warn().Err(err).Str("operation", op).Msg("user store save failed")
	}
}

// CreateUser creates a user, makes it the current user, and persists.
func (s *Store) CreateUser(username, email string) (*User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.createUserLocked(username, email)
}

func (s *Store) createUserLocked(username, email string) (*User, error) {
	u, err := NewUser(username, email)
	if err != nil {
		return nil, err
	}
	for {
		if _, exists := s.users[u.id]; !exists {
			break
		}
		u.id = generateID()
	}

	s.users[u.id] = u
	s.order = append(s.order, u.id)
	s.current = u.id
	s.persistLocked("create user")

	s.logger.Info().Int64("user_id", u.id).Str("username", u.username).Msg("user created")
	return u, nil
}

// UserByID returns the user with the given id.
func (s *Store) UserByID(id int64) (*User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	return u, ok
}

// UserByUsername returns the first user with the given name, case-sensitive.
func (s *Store) UserByUsername(username string) (*User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, id := range s.order {
		if u := s.users[id]; u.username == username {
			return u, true
		}
	}
	return nil, false
}

// Users returns all users in creation order.
func (s *Store) Users() []*User {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*User, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.users[id])
	}
	return out
}

// Len returns the number of users in the store.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.users)
}

// Current returns the current user, or nil when none is selected.
func (s *Store) Current() *User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == 0 {
		return nil
	}
	return s.users[s.current]
}

// SetCurrent selects the current user and persists. The id must exist in
// the store.
func (s *Store) SetCurrent(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[id]; !ok {
		return fmt.Errorf("%w: %d", ErrUserNotFound, id)
	}
	s.current = id
	s.persistLocked("set current user")
	return nil
}

// ClearCurrent deselects the current user and persists.
func (s *Store) ClearCurrent() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == 0 {
		return
	}
	s.current = 0
	s.persistLocked("clear current user")
}

// DeleteUser removes a user and persists. Deleting the current user clears
// the selection. It reports false if the id is absent.
func (s *Store) DeleteUser(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[id]; !ok {
		return false
	}
	delete(s.users, id)
	for i, oid := range s.order {
		if oid == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	if s.current == id {
		s.current = 0
	}
	s.persistLocked("delete user")

	s.logger.Info().Int64("user_id", id).Msg("user deleted")
	return true
}

// GetOrCreateDefaultUser returns the current user if one is selected, else
// selects the oldest existing user, else creates one with the default
// identity. Only the creation path persists.
func (s *Store) GetOrCreateDefaultUser() (*User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current != 0 {
		if u, ok := s.users[s.current]; ok {
			return u, nil
		}
	}
	if len(s.order) > 0 {
		u := s.users[s.order[0]]
		s.current = u.id
		return u, nil
	}
	return s.createUserLocked(DefaultUsername, DefaultEmail)
}
