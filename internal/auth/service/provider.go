package service

import (
	"context"

	"github.com/portfolio-site/portfolio-backend/internal/auth/domain"
)

// IdentityProvider is the external identity service the admin signs in with.
type IdentityProvider interface {
	SignInWithPassword(ctx context.Context, email, password string) (*domain.Session, error)
	SignOut(ctx context.Context, s *domain.Session) error
	Verify(ctx context.Context, idToken string) (*domain.Session, error)
}

// SessionStore persists the current session between process runs.
// Load returns (nil, nil) when nothing is stored.
type SessionStore interface {
	Load() (*domain.Session, error)
	Save(s *domain.Session) error
	Clear() error
}

// SessionCache remembers verified tokens so each request does not need a
// provider round trip. Get returns (nil, nil) on a miss.
type SessionCache interface {
	Get(ctx context.Context, idToken string) (*domain.Session, error)
	Put(ctx context.Context, s *domain.Session) error
	Delete(ctx context.Context, idToken string) error
}
