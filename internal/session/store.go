// Package session owns the authentication lifecycle: durable storage of the
// bearer token and the state machine that derives "who is logged in" from the
// token plus the last fetched profile.
package session

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"gitlab.com/yelinaung/invierte-cli/internal/api"
)

// FileStore persists the bearer token in a single file, the terminal analog
// of the browser's one well-known localStorage key. Only the token survives a
// restart; everything else is re-fetched.
type FileStore struct {
	mu   sync.Mutex
	path string
}

var _ api.TokenStore = (*FileStore)(nil)

// NewFileStore creates a token store backed by the file at path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Token returns the stored token, if any.
func (s *FileStore) Token() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := os.ReadFile(s.path)
	if err != nil {
		return "", false
	}
	token := strings.TrimSpace(string(raw))
	return token, token != ""
}

// Save writes the token with owner-only permissions.
func (s *FileStore) Save(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("failed to create token directory: %w", err)
	}
	if err := os.WriteFile(s.path, []byte(token), 0o600); err != nil {
		return fmt.Errorf("failed to write token file: %w", err)
	}
	return nil
}

// Clear removes the token. Clearing an already-cleared store is a no-op, so
// racing evictions are safe.
func (s *FileStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to remove token file: %w", err)
	}
	return nil
}

// MemStore is an in-memory token store for tests.
type MemStore struct {
	mu    sync.Mutex
	token string
}

var _ api.TokenStore = (*MemStore)(nil)

// NewMemStore creates an empty in-memory store, optionally pre-seeded.
func NewMemStore(token string) *MemStore {
	return &MemStore{token: token}
}

// Token returns the stored token, if any.
func (s *MemStore) Token() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token, s.token != ""
}

// Save stores the token.
func (s *MemStore) Save(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	return nil
}

// Clear discards the token.
func (s *MemStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	return nil
}
