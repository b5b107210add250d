package http

import (
	"context"

	"github.com/portfolio-site/portfolio-backend/internal/auth/domain"
)

// Authenticator is satisfied by *service.Authenticator.
type Authenticator interface {
	SignIn(ctx context.Context, email, password string) (*domain.Session, error)
	Verify(ctx context.Context, idToken string) (*domain.Session, error)
	SignOut(ctx context.Context, s *domain.Session) error
}

type signInReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type Handler struct {
	authn Authenticator
}

func New(authn Authenticator) *Handler {
	return &Handler{authn: authn}
}
