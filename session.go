package storefront

import (
	"context"
	"sync"
)

// Session holds the current credential and profile. isAuthenticated derives
// strictly from token presence: a restored token without profile data is a
// valid authenticated state until the first call proves otherwise.
type Session struct {
	mu      sync.Mutex
	vault   Vault
	token   string
	profile *UserProfile
	lastErr string
}

// NewSession creates a session backed by the given credential vault.
func NewSession(vault Vault) *Session {
	if vault == nil {
		vault = newNullVault()
	}
	return &Session{vault: vault}
}

// Login persists token to the vault and updates in-memory state. The vault
// write happens first so there is no window where IsAuthenticated is true
// but the persisted token is absent.
func (s *Session) Login(ctx context.Context, token string, profile *UserProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.vault.Store(ctx, token); err != nil {
		return err
	}
	s.token = token
	s.profile = profile
	s.lastErr = ""
	return nil
}

// Logout clears both in-memory and persisted state. Calling it twice has the
// same effect as once.
func (s *Session) Logout(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.profile = nil
	s.lastErr = ""
	return s.vault.Clear(ctx)
}

// Restore re-hydrates the token from the vault without validating it against
// the server. A stale token self-corrects on the first authenticated call
// through the gateway's 401 handling.
func (s *Session) Restore(ctx context.Context) error {
	token, ok, err := s.vault.Load(ctx)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}
	s.mu.Lock()
	s.token = token
	s.mu.Unlock()
	return nil
}

// IsAuthenticated reports whether a token is present. Profile presence is
// deliberately not consulted.
func (s *Session) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token != ""
}

// Token returns the current bearer token, empty when logged out.
func (s *Session) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// Profile returns the cached user profile, nil when not fetched.
func (s *Session) Profile() *UserProfile {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.profile == nil {
		return nil
	}
	clone := *s.profile
	return &clone
}

// Claims decodes the stored bearer token without verifying its signature.
func (s *Session) Claims() (TokenClaims, error) {
	return ParseTokenClaims(s.Token())
}

// Err returns the most recent account operation failure message.
func (s *Session) Err() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// ClearErr resets the pending error message.
func (s *Session) ClearErr() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastErr = ""
}

func (s *Session) setProfile(profile *UserProfile) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profile = profile
}

func (s *Session) setErr(msg string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastErr = msg
}
