// Package revocation stores logged-out token ids in Redis.
package revocation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore implements token revocation with one key per token id.
// Keys expire together with the token, so no sweeping is needed.
type RedisStore struct {
	client *redis.Client
	prefix string
	now    func() time.Time
}

// NewRedisStore creates a new RedisStore. If prefix is empty, it uses "revoked".
func NewRedisStore(client *redis.Client, prefix string) *RedisStore {
	if prefix == "" {
		prefix = "revoked"
	}
	return &RedisStore{client: client, prefix: prefix, now: time.Now}
}

// key returns the Redis key for a token id.
func (s *RedisStore) key(jti string) string {
	return fmt.Sprintf("%s:%s", s.prefix, jti)
}

// Revoke marks jti as revoked until expiresAt. A zero expiresAt never expires.
// A token that has already expired needs no entry.
func (s *RedisStore) Revoke(ctx context.Context, jti string, expiresAt time.Time) error {
	if jti == "" {
		return errors.New("revoke: empty token id")
	}
	var ttl time.Duration
	if !expiresAt.IsZero() {
		ttl = expiresAt.Sub(s.now())
		if ttl <= 0 {
			return nil
		}
	}
	return s.client.Set(ctx, s.key(jti), "1", ttl).Err()
}

// IsRevoked reports whether jti is currently revoked.
func (s *RedisStore) IsRevoked(ctx context.Context, jti string) (bool, error) {
	n, err := s.client.Exists(ctx, s.key(jti)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
