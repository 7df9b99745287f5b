package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// TokenStore holds revoked JWTs until their natural expiry. The key TTL
// mirrors the token's remaining lifetime, so entries vanish exactly when the
// token would have stopped validating anyway.
type TokenStore struct {
	client *redis.Client
}

// NewTokenStore creates a TokenStore wrapping the given Redis client.
func NewTokenStore(client *redis.Client) *TokenStore {
	return &TokenStore{client: client}
}

// Revoke records the token as invalid for ttl.
func (s *TokenStore) Revoke(ctx context.Context, token string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	if err := s.client.Set(ctx, key(token), "1", ttl).Err(); err != nil {
		return fmt.Errorf("token revoke: %w", err)
	}
	return nil
}

// IsRevoked reports whether the token has been revoked.
func (s *TokenStore) IsRevoked(ctx context.Context, token string) (bool, error) {
	n, err := s.client.Exists(ctx, key(token)).Result()
	if err != nil {
		return false, fmt.Errorf("token check: %w", err)
	}
	return n > 0, nil
}

func key(token string) string {
	return "revoked:" + token
}
