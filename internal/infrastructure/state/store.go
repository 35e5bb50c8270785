// Package state implements the TokenStore port. The anti-forgery token is
// held only in memory and re-fetched on every unauthenticated view mount;
// the principal is durably cached in a JSON state file under a single known
// key so a restarted console resumes its session.
package state

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog"

	"github.com/fieldstation/admin-console/internal/core/domain"
	"github.com/fieldstation/admin-console/internal/core/ports"
)

// persisted is the on-disk shape. The principal lives under the "user" key.
type persisted struct {
	User *domain.Principal `json:"user,omitempty"`
}

// Store is the single owner of token and principal. The session layer is its
// only writer; view code only reads.
type Store struct {
	path   string
	logger zerolog.Logger

	mu        sync.Mutex
	token     string
	principal *domain.Principal
}

// New creates a Store backed by the state file at path, restoring a
// previously persisted principal if one exists. A missing or unreadable
// state file means starting anonymous, never an error.
func New(path string, logger zerolog.Logger) *Store {
	s := &Store{path: path, logger: logger}
	s.restore()
	return s
}

func (s *Store) restore() {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			s.logger.Warn().Err(err).Str("path", s.path).Msg("state file unreadable")
		}
		return
	}
	var p persisted
	if err := json.Unmarshal(raw, &p); err != nil {
		s.logger.Warn().Err(err).Str("path", s.path).Msg("state file corrupt; starting anonymous")
		return
	}
	s.principal = p.User
}

func (s *Store) Token() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token, s.token != ""
}

func (s *Store) SetToken(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
}

func (s *Store) Principal() (*domain.Principal, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.principal, s.principal != nil
}

// SetPrincipal records the authenticated identity and writes it through to
// the state file.
func (s *Store) SetPrincipal(p *domain.Principal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.principal = p

	raw, err := json.MarshalIndent(persisted{User: p}, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(s.path, raw, 0o600)
}

// Clear erases token and principal and removes the state file. Idempotent:
// clearing an already-empty store is a no-op.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.principal = nil
	if err := os.Remove(s.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		s.logger.Warn().Err(err).Str("path", s.path).Msg("failed to remove state file")
	}
}

var _ ports.TokenStore = (*Store)(nil)
