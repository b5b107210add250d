package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/portfolio-site/portfolio-backend/internal/apperr"
	"github.com/portfolio-site/portfolio-backend/internal/auth/domain"
)

// Authenticator is the stateless server-side counterpart of Gate: every
// request presents its own token.
type Authenticator struct {
	provider IdentityProvider
	cache    SessionCache
	now      func() time.Time
}

// NewAuthenticator builds an Authenticator. cache may be nil.
func NewAuthenticator(provider IdentityProvider, cache SessionCache) *Authenticator {
	return &Authenticator{provider: provider, cache: cache, now: time.Now}
}

func (a *Authenticator) SignIn(ctx context.Context, email, password string) (*domain.Session, error) {
	email = strings.TrimSpace(email)
	if email == "" {
		return nil, apperr.Invalid("email", "is required")
	}
	if password == "" {
		return nil, apperr.Invalid("password", "is required")
	}

	s, err := a.provider.SignInWithPassword(ctx, email, password)
	if err != nil {
		return nil, err
	}
	a.remember(ctx, s)
	return s, nil
}

// Verify resolves a bearer token into a session. Any failure is reported as
// domain.ErrNoSession.
func (a *Authenticator) Verify(ctx context.Context, idToken string) (*domain.Session, error) {
	if idToken == "" {
		return nil, domain.ErrNoSession
	}

	if a.cache != nil {
		s, err := a.cache.Get(ctx, idToken)
		if err != nil {
			zerolog.Ctx(ctx).Warn().Err(err).Msg("auth: session cache read failed")
		} else if s.Active(a.now()) {
			return s, nil
		}
	}

	s, err := a.provider.Verify(ctx, idToken)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrNoSession, err)
	}
	if !s.Active(a.now()) {
		return nil, domain.ErrNoSession
	}
	a.remember(ctx, s)
	return s, nil
}

// SignOut forgets the token locally and revokes it at the provider.
func (a *Authenticator) SignOut(ctx context.Context, s *domain.Session) error {
	if s == nil {
		return nil
	}
	if a.cache != nil {
		if err := a.cache.Delete(ctx, s.IDToken); err != nil {
			zerolog.Ctx(ctx).Warn().Err(err).Msg("auth: session cache delete failed")
		}
	}
	return a.provider.SignOut(ctx, s)
}

func (a *Authenticator) remember(ctx context.Context, s *domain.Session) {
	if a.cache == nil {
		return
	}
	if err := a.cache.Put(ctx, s); err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Msg("auth: session cache write failed")
	}
}
