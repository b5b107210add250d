package repository

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/portfolio-site/portfolio-backend/internal/auth/domain"
)

const (
	sessionKeyPrefix = "auth:session:" // auth:session:{sha256(id_token)}
)

// SessionCache keeps verified sessions in Redis until their token expires.
type SessionCache struct {
	client *redis.Client
	now    func() time.Time
}

func NewSessionCache(client *redis.Client) *SessionCache {
	return &SessionCache{client: client, now: time.Now}
}

func (r *SessionCache) Get(ctx context.Context, idToken string) (*domain.Session, error) {
	data, err := r.client.Get(ctx, r.key(idToken)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read session: %w", err)
	}

	var s domain.Session
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("failed to decode session: %w", err)
	}
	return &s, nil
}

// Put stores s with a TTL matching its remaining lifetime. Expired sessions
// are not stored, and the refresh token never leaves the process.
func (r *SessionCache) Put(ctx context.Context, s *domain.Session) error {
	ttl := s.ExpiresAt.Sub(r.now())
	if ttl <= 0 {
		return nil
	}

	cached := *s
	cached.RefreshToken = ""
	data, err := json.Marshal(cached)
	if err != nil {
		return fmt.Errorf("failed to encode session: %w", err)
	}
	if err := r.client.Set(ctx, r.key(s.IDToken), data, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store session: %w", err)
	}
	return nil
}

func (r *SessionCache) Delete(ctx context.Context, idToken string) error {
	if err := r.client.Del(ctx, r.key(idToken)).Err(); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// Raw tokens never become key material.
func (r *SessionCache) key(idToken string) string {
	sum := sha256.Sum256([]byte(idToken))
	return sessionKeyPrefix + hex.EncodeToString(sum[:])
}
