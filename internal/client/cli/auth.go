package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/finmate-app/finmate/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate
// testing. They point to interactive input helpers and can be swapped in
// tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Login prompts for credentials and tries to authenticate. On success the
// session store is updated and the gate switches trees on its own; this
// handler only reports the outcome.
func (a *App) Login(ctx context.Context) error {
	username, err := getSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.auth.Login(ctx, username, string(password)); err != nil {
		fmt.Fprintln(a.out, loginFailureMessage(err))
		return err
	}

	fmt.Fprintln(a.out, "Login successful!")
	return nil
}

// Register prompts for the registration payload, creates the account, and
// relies on the auth service's register-implies-login contract.
func (a *App) Register(ctx context.Context) error {
	username, err := getSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	fullName, err := getSimpleText(a.reader, "Enter full name", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.auth.Register(ctx, username, email, string(password), fullName); err != nil {
		if errors.Is(err, common.ErrRegisteredButLoginFailed) {
			fmt.Fprintln(a.out, "Account created, but signing in failed. Please try 'login'.")
		} else {
			fmt.Fprintln(a.out, loginFailureMessage(err))
		}
		return err
	}

	fmt.Fprintln(a.out, "Account created, you are signed in.")
	return nil
}

// Logout drops the session. The gate notices via the change signal.
func (a *App) Logout(ctx context.Context) error {
	a.auth.Logout(ctx)
	fmt.Fprintln(a.out, "Logged out.")
	return nil
}

// WhoAmI prints the attached profile.
func (a *App) WhoAmI(ctx context.Context) error {
	p := a.store.Profile()
	if p == nil {
		fmt.Fprintln(a.out, "No profile attached to this session.")
		return nil
	}
	fmt.Fprintf(a.out, "%s (%s)", p.FullName, p.Username)
	if p.Email != "" {
		fmt.Fprintf(a.out, " <%s>", p.Email)
	}
	fmt.Fprintln(a.out)
	return nil
}

// loginFailureMessage turns a classified auth error into a human-readable
// line. Raw errors never reach the user.
func loginFailureMessage(err error) string {
	switch {
	case errors.Is(err, common.ErrInvalidCredentials):
		return "Login failed: " + trimSentinel(err, common.ErrInvalidCredentials)
	case errors.Is(err, common.ErrRejected):
		return "Request rejected: " + trimSentinel(err, common.ErrRejected)
	case errors.Is(err, common.ErrTimeout):
		return "The server took too long to respond. Please try again."
	case errors.Is(err, common.ErrNetwork):
		return "Could not reach the server. Please check your connection."
	case errors.Is(err, common.ErrStorage):
		return "Signed in, but the session could not be saved locally."
	default:
		return "Login failed. Please try again."
	}
}

// trimSentinel strips the sentinel prefix from a wrapped error, leaving
// the backend-supplied detail when present.
func trimSentinel(err error, sentinel error) string {
	msg := err.Error()
	prefix := sentinel.Error() + ": "
	if len(msg) > len(prefix) && msg[:len(prefix)] == prefix {
		return msg[len(prefix):]
	}
	return msg
}
