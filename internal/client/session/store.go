// Package session owns the client's authentication state: the bearer token,
// the user profile, durable token storage, and the change signal that tells
// the rest of the application that the state moved.
//
// The Store is the single source of truth. Other components read snapshots
// or go through the auth service to request mutation; nothing else writes
// the token directly.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/finmate-app/finmate/internal/common"
)

// Profile is the display-oriented user record. It is best-effort: a session
// is valid with or without it, and it may attach after the session already
// reports authenticated.
type Profile struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	FullName string `json:"full_name"`
	Email    string `json:"email,omitempty"`
}

// ErrEmptyToken is returned by SetToken for an empty string: an
// authenticated session requires a non-empty token, use ClearToken to
// drop a session.
var ErrEmptyToken = errors.New("empty token")

// Store holds the current token and profile in memory, backed by durable
// TokenStorage. Mutations write storage first and cache second, so memory
// never claims a session that would not survive a restart. Every
// SetToken/ClearToken/observed Reload change emits one Signal event.
type Store struct {
	storage TokenStorage
	signal  *Signal

	mu      sync.Mutex
	token   string
	profile *Profile
}

func NewStore(storage TokenStorage, signal *Signal) *Store {
	return &Store{storage: storage, signal: signal}
}

// Hydrate populates the in-memory cache from durable storage. Call it once
// at startup, before the token is read. A storage failure leaves the cache
// empty ("no session") and is reported to the caller.
func (s *Store) Hydrate(ctx context.Context) error {
	token, err := s.storage.Load(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrStorage, err)
	}
	s.mu.Lock()
	s.token = token
	s.mu.Unlock()
	return nil
}

// Token returns the cached token, "" when absent. Pure in-memory read.
func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// SetToken persists token and then updates the cache. If the durable write
// fails the cache is left untouched and no signal is emitted.
func (s *Store) SetToken(ctx context.Context, token string) error {
	if token == "" {
		return ErrEmptyToken
	}
	if err := s.storage.Store(ctx, token); err != nil {
		return fmt.Errorf("%w: %v", common.ErrStorage, err)
	}
	s.mu.Lock()
	s.token = token
	s.mu.Unlock()
	s.signal.Emit()
	return nil
}

// ClearToken removes the token from storage and cache. Clearing an absent
// token is a no-op, not an error. The cache is cleared even when the
// durable delete fails, so the process itself always observes the logout;
// the error is reported for logging.
func (s *Store) ClearToken(ctx context.Context) error {
	err := s.storage.Delete(ctx)
	s.mu.Lock()
	s.token = ""
	s.mu.Unlock()
	s.signal.Emit()
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrStorage, err)
	}
	return nil
}

// Reload re-reads durable storage and, if the persisted token differs from
// the cache, adopts it and emits the signal. This is how a login or logout
// performed by another process becomes visible here.
func (s *Store) Reload(ctx context.Context) error {
	token, err := s.storage.Load(ctx)
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrStorage, err)
	}
	s.mu.Lock()
	changed := s.token != token
	s.token = token
	s.mu.Unlock()
	if changed {
		s.signal.Emit()
	}
	return nil
}

// SetProfile attaches a profile. Independent of the token lifecycle and
// does not emit the signal: the render gate keys on token presence only.
func (s *Store) SetProfile(p *Profile) {
	s.mu.Lock()
	s.profile = p
	s.mu.Unlock()
}

// Profile returns the attached profile, nil when absent.
func (s *Store) Profile() *Profile {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.profile
}

// ClearProfile drops the attached profile.
func (s *Store) ClearProfile() {
	s.SetProfile(nil)
}
