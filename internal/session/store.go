// Package session holds the authenticated identity. The in-memory session
// is mirrored to a small JSON state file so a restarted process starts
// authenticated; login writes it, logout removes it.
package session

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/feedkit/feedkit-go/internal/types"
)

// persistedState is the durable key-value state. Field names match the
// keys the web client kept in local storage.
type persistedState struct {
	AccessToken  string   `json:"access_token"`
	RefreshToken string   `json:"refresh_token"`
	Username     string   `json:"username"`
	UserID       types.ID `json:"user_id"`
}

// Store owns the session for the lifetime of the process. All methods are
// safe for concurrent use; the token is read by every outgoing request and
// written only by login and logout.
type Store struct {
	mu   sync.Mutex
	path string // empty means memory-only
	cur  *types.Session
}

// Open creates a Store backed by the state file at path. An existing file
// is loaded so the process starts authenticated, unless the stored access
// token has already expired. path may be empty for a memory-only store.
func Open(path string) (*Store, error) {
	s := &Store{path: path}
	if path == "" {
		return s, nil
	}
	b, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, err
	}
	var st persistedState
	if err := json.Unmarshal(b, &st); err != nil {
		// A corrupt state file is treated as logged out, not fatal.
		return s, nil
	}
	if st.AccessToken == "" || tokenExpired(st.AccessToken) {
		return s, nil
	}
	s.cur = &types.Session{
		Token:        st.AccessToken,
		RefreshToken: st.RefreshToken,
		Username:     st.Username,
		UserID:       st.UserID,
	}
	return s, nil
}

// Current returns a copy of the session, or nil when logged out.
func (s *Store) Current() *types.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cur == nil {
		return nil
	}
	cp := *s.cur
	return &cp
}

// IsAuthenticated reports whether a session with a token exists.
func (s *Store) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cur != nil && s.cur.Token != ""
}

// Token returns the current access token, or "" when logged out. Used by
// the transport to attach the Authorization header.
func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cur == nil {
		return ""
	}
	return s.cur.Token
}

// Set replaces the session and persists it.
func (s *Store) Set(sess types.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := sess
	s.cur = &cp
	return s.persistLocked()
}

// Clear drops the session and removes the state file. Called on logout and
// on the partial-success rollback during login.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cur = nil
	if s.path == "" {
		return nil
	}
	err := os.Remove(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

func (s *Store) persistLocked() error {
	if s.path == "" || s.cur == nil {
		return nil
	}
	st := persistedState{
		AccessToken:  s.cur.Token,
		RefreshToken: s.cur.RefreshToken,
		Username:     s.cur.Username,
		UserID:       s.cur.UserID,
	}
	b, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(s.path, b, 0o600)
}
