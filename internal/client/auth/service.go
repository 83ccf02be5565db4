// Package auth orchestrates the login, register, and logout use cases
// against the backend, mutating the session store on success. It never
// panics across its boundary: every failure comes back as a classified
// sentinel error from internal/common.
package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/finmate-app/finmate/internal/client/api"
	"github.com/finmate-app/finmate/internal/client/session"
	"github.com/finmate-app/finmate/internal/common"
	"github.com/finmate-app/finmate/internal/logging"
	"github.com/google/uuid"
)

const (
	// defaultLoginTimeout bounds the login round-trip. The request is
	// cancelled at the deadline, so a late response cannot mutate state.
	defaultLoginTimeout = 8 * time.Second
	// defaultRegisterTimeout is longer: account provisioning is heavier
	// than a credential check.
	defaultRegisterTimeout = 10 * time.Second
	// defaultProfileTimeout bounds the best-effort /me fetch after login.
	defaultProfileTimeout = 5 * time.Second
)

// Service implements the auth operations over an API client and the
// session store.
type Service struct {
	client api.Client
	store  *session.Store
	logger logging.Logger

	loginTimeout    time.Duration
	registerTimeout time.Duration
	profileTimeout  time.Duration
}

func NewService(client api.Client, store *session.Store, logger logging.Logger) *Service {
	return &Service{
		client:          client,
		store:           store,
		logger:          logger,
		loginTimeout:    defaultLoginTimeout,
		registerTimeout: defaultRegisterTimeout,
		profileTimeout:  defaultProfileTimeout,
	}
}

// Login authenticates against the backend and, on success, persists the
// token and attaches a profile. The profile fetch is best-effort: when it
// fails, a fallback synthesized from the username is attached instead and
// the login still reports success. Token presence is what gates the UI —
// a session without a fetched profile is a valid session, matching the
// product's behavior.
func (s *Service) Login(ctx context.Context, username, password string) error {
	lctx, cancel := context.WithTimeout(ctx, s.loginTimeout)
	defer cancel()

	token, err := s.client.Login(lctx, username, password)
	if err != nil {
		return err
	}

	if err := s.store.SetToken(ctx, token); err != nil {
		return err
	}

	pctx, cancelProfile := context.WithTimeout(ctx, s.profileTimeout)
	defer cancelProfile()

	profile, err := s.client.Me(pctx)
	if err != nil {
		s.logger.Warn(ctx, "profile fetch failed, using fallback", "username", username, "error", err.Error())
		profile = fallbackProfile(username)
	}
	s.store.SetProfile(profile)

	return nil
}

// Register creates an account and immediately logs in with the submitted
// credentials — registration alone never yields a usable session. If the
// follow-up login fails, the distinct ErrRegisteredButLoginFailed is
// returned with the login error wrapped alongside it.
func (s *Service) Register(ctx context.Context, username, email, password, fullName string) error {
	rctx, cancel := context.WithTimeout(ctx, s.registerTimeout)
	defer cancel()

	if err := s.client.Register(rctx, username, email, password, fullName); err != nil {
		return err
	}

	if err := s.Login(ctx, username, password); err != nil {
		return fmt.Errorf("%w: %w", common.ErrRegisteredButLoginFailed, err)
	}
	return nil
}

// Logout drops the session locally. No backend round-trip is needed and
// it never fails: a durable-delete error is logged, the in-memory session
// is gone regardless.
func (s *Service) Logout(ctx context.Context) {
	if err := s.store.ClearToken(ctx); err != nil {
		s.logger.Warn(ctx, "clearing persisted token failed", "error", err.Error())
	}
	s.store.ClearProfile()
}

// fallbackProfile synthesizes a profile from the submitted username so a
// successful login never leaves the profile absent.
func fallbackProfile(username string) *session.Profile {
	return &session.Profile{
		ID:       uuid.NewString(),
		Username: username,
		FullName: username,
	}
}
