// Package session owns the single authoritative token for a process. It is
// built once at startup and handed to every operation, so there is no global
// token cache to fall out of sync with the secure store.
package session

import (
	"strings"
	"sync"

	"codeforge/internal/secrets"
)

type Session struct {
	mu    sync.Mutex
	token string
	store *secrets.Store
}

// Load resolves the token with secure storage first, then the plain
// configuration fallback.
func Load(store *secrets.Store, fallback string) (*Session, error) {
	token, err := store.GetToken()
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(token) == "" {
		token = strings.TrimSpace(fallback)
	}
	return &Session{token: token, store: store}, nil
}

func (s *Session) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

func (s *Session) HasToken() bool {
	return s.Token() != ""
}

// SetToken persists the token to secure storage and updates the in-memory copy.
func (s *Session) SetToken(token string) error {
	token = strings.TrimSpace(token)
	if err := s.store.SetToken(token); err != nil {
		return err
	}
	s.mu.Lock()
	s.token = token
	s.mu.Unlock()
	return nil
}

// Invalidate drops the token unconditionally. The in-memory copy is cleared
// even when the store write fails; a 401 means the token is dead either way.
func (s *Session) Invalidate() error {
	s.mu.Lock()
	s.token = ""
	s.mu.Unlock()
	return s.store.ClearToken()
}
