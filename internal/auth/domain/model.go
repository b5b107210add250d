package domain

import (
	"errors"
	"time"
)

// ErrNoSession is returned by every admin entry point called without an
// active session.
var ErrNoSession = errors.New("no active admin session")

// Session is the ephemeral proof that the caller is the admin. It is issued
// by the identity provider and never persisted in the database.
type Session struct {
	UID          string    `json:"uid" yaml:"uid"`
	Email        string    `json:"email" yaml:"email"`
	IDToken      string    `json:"id_token" yaml:"id_token"`
	RefreshToken string    `json:"refresh_token,omitempty" yaml:"refresh_token,omitempty"`
	ExpiresAt    time.Time `json:"expires_at" yaml:"expires_at"`
}

// Active reports whether the session can still authorize a mutation.
func (s *Session) Active(now time.Time) bool {
	return s != nil && s.IDToken != "" && now.Before(s.ExpiresAt)
}

// RequireSession is the single gate checked before any admin operation.
func RequireSession(s *Session) error {
	if !s.Active(time.Now()) {
		return ErrNoSession
	}
	return nil
}

// AuthError carries the identity provider's message verbatim so it can be
// shown on the login form.
type AuthError struct {
	Message string
	Err     error
}

func (e *AuthError) Error() string { return e.Message }

func (e *AuthError) Unwrap() error { return e.Err }
