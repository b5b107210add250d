package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/portfolio-site/portfolio-backend/internal/auth/domain"
)

type fakeProvider struct {
	mu         sync.Mutex
	password   string
	ttl        time.Duration
	signInErr  error
	verifyErr  error
	signOutErr error
	signIns    int
	verifies   int
	signedOut  []string
	revoked    map[string]bool
}

func newFakeProvider() *fakeProvider {
	return &fakeProvider{password: "hunter2", ttl: time.Hour, revoked: map[string]bool{}}
}

func (f *fakeProvider) SignInWithPassword(_ context.Context, email, password string) (*domain.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.signIns++
	if f.signInErr != nil {
		return nil, f.signInErr
	}
	if password != f.password {
		return nil, &domain.AuthError{Message: "INVALID_LOGIN_CREDENTIALS"}
	}
	return &domain.Session{
		UID:       "uid-" + email,
		Email:     email,
		IDToken:   "token-" + email,
		ExpiresAt: time.Now().Add(f.ttl),
	}, nil
}

func (f *fakeProvider) SignOut(_ context.Context, s *domain.Session) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.signedOut = append(f.signedOut, s.UID)
	f.revoked[s.IDToken] = true
	return f.signOutErr
}

func (f *fakeProvider) Verify(_ context.Context, idToken string) (*domain.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.verifies++
	if f.verifyErr != nil {
		return nil, f.verifyErr
	}
	if idToken == "" {
		return nil, errors.New("empty token")
	}
	if f.revoked[idToken] {
		return nil, errors.New("id token has been revoked")
	}
	return &domain.Session{UID: "uid", Email: "admin@example.com", IDToken: idToken, ExpiresAt: time.Now().Add(f.ttl)}, nil
}

type memStore struct {
	s       *domain.Session
	saves   int
	clears  int
	loadErr error
}

func (m *memStore) Load() (*domain.Session, error) { return m.s, m.loadErr }
func (m *memStore) Save(s *domain.Session) error  { m.saves++; m.s = s; return nil }
func (m *memStore) Clear() error                  { m.clears++; m.s = nil; return nil }

type memCache struct {
	mu      sync.Mutex
	entries map[string]*domain.Session
	getErr  error
}

func newMemCache() *memCache { return &memCache{entries: map[string]*domain.Session{}} }

func (m *memCache) Get(_ context.Context, idToken string) (*domain.Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.entries[idToken], nil
}

func (m *memCache) Put(_ context.Context, s *domain.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[s.IDToken] = s
	return nil
}

func (m *memCache) Delete(_ context.Context, idToken string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, idToken)
	return nil
}
