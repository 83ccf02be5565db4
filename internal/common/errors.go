// Package common defines shared constants and sentinel errors used across
// client and server layers of FinMate. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Auth operation outcomes (client side). Each classifies one failure
	// mode of login/register; the concrete cause is wrapped around them.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrRejected           = errors.New("request rejected")
	ErrTimeout            = errors.New("request timed out")
	ErrNetwork            = errors.New("network error")

	// ErrRegisteredButLoginFailed means the account was created but the
	// follow-up login did not produce a session. The login error is
	// wrapped alongside it.
	ErrRegisteredButLoginFailed = errors.New("registered but login failed")

	// ErrStorage covers durable session-storage read/write failures.
	ErrStorage = errors.New("session storage error")

	// Repository-level errors.
	ErrorNotFound = errors.New("not found")
	ErrorConflict = errors.New("already exists")

	// Service-level errors (generic/internal flow control).
	ErrorInternal     = errors.New("internal error")
	ErrorUnauthorized = errors.New("unauthorized")
	ErrorValidation   = errors.New("validation error")

	// ErrorInactiveUser marks a login attempt against a deactivated account.
	ErrorInactiveUser = errors.New("inactive user")
)
