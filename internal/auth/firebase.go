package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/identitytoolkit/v3"
	"google.golang.org/api/option"

	"github.com/portfolio-site/portfolio-backend/config"
	"github.com/portfolio-site/portfolio-backend/internal/auth/domain"
)

// InitializeFirebase initializes the Firebase Admin SDK and returns an Auth client
func InitializeFirebase(ctx context.Context, cfg *config.FirebaseConfig) (*auth.Client, error) {
	if cfg.CredentialsPath == "" {
		return nil, fmt.Errorf("FIREBASE_CREDENTIALS_PATH is required")
	}

	opt := option.WithCredentialsFile(cfg.CredentialsPath)
	app, err := firebase.NewApp(ctx, nil, opt)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Firebase app: %w", err)
	}

	authClient, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get Auth client: %w", err)
	}

	return authClient, nil
}

// FirebaseProvider signs the admin in with email and password through the
// Identity Toolkit REST API and verifies or revokes tokens with the Admin SDK.
type FirebaseProvider struct {
	admin   *auth.Client
	toolkit *identitytoolkit.Service
	now     func() time.Time
}

func NewFirebaseProvider(ctx context.Context, cfg *config.FirebaseConfig) (*FirebaseProvider, error) {
	if cfg.WebAPIKey == "" {
		return nil, fmt.Errorf("FIREBASE_WEB_API_KEY is required")
	}

	admin, err := InitializeFirebase(ctx, cfg)
	if err != nil {
		return nil, err
	}

	toolkit, err := identitytoolkit.NewService(ctx, option.WithAPIKey(cfg.WebAPIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create identity toolkit client: %w", err)
	}

	return newFirebaseProvider(admin, toolkit), nil
}

func newFirebaseProvider(admin *auth.Client, toolkit *identitytoolkit.Service) *FirebaseProvider {
	return &FirebaseProvider{admin: admin, toolkit: toolkit, now: time.Now}
}

func (p *FirebaseProvider) SignInWithPassword(ctx context.Context, email, password string) (*domain.Session, error) {
	req := &identitytoolkit.IdentitytoolkitRelyingpartyVerifyPasswordRequest{
		Email:             email,
		Password:          password,
		ReturnSecureToken: true,
	}

	resp, err := p.toolkit.Relyingparty.VerifyPassword(req).Context(ctx).Do()
	if err != nil {
		return nil, &domain.AuthError{Message: providerMessage(err), Err: err}
	}

	return &domain.Session{
		UID:          resp.LocalId,
		Email:        resp.Email,
		IDToken:      resp.IdToken,
		RefreshToken: resp.RefreshToken,
		ExpiresAt:    p.now().Add(time.Duration(resp.ExpiresIn) * time.Second),
	}, nil
}

// SignOut revokes every refresh token of the session's user.
func (p *FirebaseProvider) SignOut(ctx context.Context, s *domain.Session) error {
	if err := p.admin.RevokeRefreshTokens(ctx, s.UID); err != nil {
		return fmt.Errorf("failed to revoke tokens: %w", err)
	}
	return nil
}

// Verify accepts idToken only if it is valid and its refresh tokens have not
// been revoked by SignOut since it was issued.
func (p *FirebaseProvider) Verify(ctx context.Context, idToken string) (*domain.Session, error) {
	tok, err := p.admin.VerifyIDTokenAndCheckRevoked(ctx, idToken)
	if err != nil {
		return nil, err
	}

	s := &domain.Session{
		UID:       tok.UID,
		IDToken:   idToken,
		ExpiresAt: time.Unix(tok.Expires, 0),
	}
	if email, ok := tok.Claims["email"].(string); ok {
		s.Email = email
	}
	return s, nil
}

func providerMessage(err error) string {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) && gerr.Message != "" {
		return gerr.Message
	}
	return err.Error()
}
