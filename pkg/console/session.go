// Package console is the Go client for the pileta admin API. It carries the
// session lifecycle the browser consoles implement: a hydrated session store,
// a bearer-injecting HTTP adapter with idempotent teardown on credential
// rejection, the login/recovery flows, a route guard and the role dispatcher
// that picks the surface to present.
package console

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/surtekbb/pileta-system/internal/core/domain"
)

// SessionState is the durable session snapshot: the identity document and
// the raw bearer credential. Both are persisted and cleared together.
type SessionState struct {
	Token string
	User  *domain.User
}

// Storage persists session state between process runs. Implementations must
// treat the identity and the credential as one unit: Save writes both, Clear
// removes both.
type Storage interface {
	Load() (SessionState, error)
	Save(state SessionState) error
	Clear() error
}

const (
	userFile  = "user.json"
	tokenFile = "auth_token"
)

// FileStorage keeps the session under a directory as two entries: user.json
// (identity) and auth_token (raw credential).
type FileStorage struct {
	dir string
}

func NewFileStorage(dir string) *FileStorage {
	return &FileStorage{dir: dir}
}

func (f *FileStorage) Load() (SessionState, error) {
	var state SessionState

	raw, err := os.ReadFile(filepath.Join(f.dir, tokenFile))
	if err != nil {
		if os.IsNotExist(err) {
			return SessionState{}, nil
		}
		return SessionState{}, fmt.Errorf("load credential: %w", err)
	}
	state.Token = strings.TrimSpace(string(raw))

	doc, err := os.ReadFile(filepath.Join(f.dir, userFile))
	if err != nil {
		if os.IsNotExist(err) {
			return state, nil
		}
		return SessionState{}, fmt.Errorf("load identity: %w", err)
	}
	var user domain.User
	if err := json.Unmarshal(doc, &user); err != nil {
		// A corrupt identity entry means the session is unusable; start clean.
		return SessionState{}, nil
	}
	state.User = &user
	return state, nil
}

func (f *FileStorage) Save(state SessionState) error {
	if err := os.MkdirAll(f.dir, 0o700); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	if err := os.WriteFile(filepath.Join(f.dir, tokenFile), []byte(state.Token), 0o600); err != nil {
		return fmt.Errorf("save credential: %w", err)
	}
	doc, err := json.Marshal(state.User)
	if err != nil {
		return fmt.Errorf("save identity: %w", err)
	}
	if err := os.WriteFile(filepath.Join(f.dir, userFile), doc, 0o600); err != nil {
		return fmt.Errorf("save identity: %w", err)
	}
	return nil
}

func (f *FileStorage) Clear() error {
	for _, name := range []string{tokenFile, userFile} {
		if err := os.Remove(filepath.Join(f.dir, name)); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("clear session: %w", err)
		}
	}
	return nil
}

// Store is the injectable session store. It hydrates synchronously from its
// Storage on construction and writes through on every change, so a freshly
// set credential is visible to the next call with no settling period.
type Store struct {
	mu      sync.RWMutex
	storage Storage
	state   SessionState
}

// NewStore builds a Store hydrated from storage. A failed hydration is an
// error, not a silent empty session.
func NewStore(storage Storage) (*Store, error) {
	state, err := storage.Load()
	if err != nil {
		return nil, err
	}
	return &Store{storage: storage, state: state}, nil
}

// Set records a fresh session and persists it before returning.
func (s *Store) Set(token string, user *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	state := SessionState{Token: token, User: user}
	if err := s.storage.Save(state); err != nil {
		return err
	}
	s.state = state
	return nil
}

// Clear tears the session down, reporting whether an authenticated session
// was actually ended. Clearing an already-empty store is a no-op returning
// false, which makes teardown idempotent under concurrent triggers.
func (s *Store) Clear() (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	had := s.state.Token != ""
	if err := s.storage.Clear(); err != nil {
		return false, err
	}
	s.state = SessionState{}
	return had, nil
}

// Token returns the current bearer credential, empty when logged out.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Token
}

// User returns the current identity, nil when logged out.
func (s *Store) User() *domain.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.User
}

// IsAuthenticated reports whether a non-empty credential is present.
func (s *Store) IsAuthenticated() bool {
	return s.Token() != ""
}

// Role predicates. All of them answer false with no session.

func (s *Store) IsCoordinator() bool { return s.hasRole(domain.RoleCoordinator) }
func (s *Store) IsSecretary() bool   { return s.hasRole(domain.RoleSecretary) }
func (s *Store) IsInstructor() bool  { return s.hasRole(domain.RoleInstructor) }
func (s *Store) IsClient() bool      { return s.hasRole(domain.RoleClient) }

// HasUnlimitedPass reports whether the session belongs to a pase libre
// client.
func (s *Store) HasUnlimitedPass() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.User != nil && s.state.User.HasPaseLibre()
}

func (s *Store) hasRole(role domain.Role) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.User != nil && s.state.User.Role == role
}
