package apiclient

import "sync"

// TokenKey is the key the bearer token is persisted under
const TokenKey = "access_token"

// TokenStore persists the bearer token across process restarts
type TokenStore interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Delete(keys ...string) error
}

// Session owns the bearer token attached to API requests.
// Only the auth flows mutate it. Reads are safe from any goroutine.
type Session struct {
	mu    sync.RWMutex
	token string
	store TokenStore
}

// NewSession creates a session mirrored into store. A nil store keeps the token in memory only.
func NewSession(store TokenStore) *Session {
	return &Session{store: store}
}

// Restore loads a previously persisted token. It reports whether one was found.
func (s *Session) Restore() (bool, error) {
	if s.store == nil {
		return false, nil
	}
	token, ok, err := s.store.Get(TokenKey)
	if err != nil || !ok || token == "" {
		return false, err
	}
	s.mu.Lock()
	s.token = token
	s.mu.Unlock()
	return true, nil
}

// Token returns the current token, or "" when signed out
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// SetToken replaces the token and persists it
func (s *Session) SetToken(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	if s.store == nil {
		return nil
	}
	return s.store.Set(TokenKey, token)
}

// ClearToken drops the token from memory and storage
func (s *Session) ClearToken() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	if s.store == nil {
		return nil
	}
	return s.store.Delete(TokenKey)
}
