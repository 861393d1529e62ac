package auth

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
)

const blacklistPrefix = "token_blacklist:"

// Blacklist records revoked token ids until the token would have expired anyway.
type Blacklist interface {
	Revoke(ctx context.Context, jti string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}

// RedisBlacklist stores revoked token ids as expiring redis keys.
type RedisBlacklist struct {
	client redis.Cmdable
	now    func() time.Time
}

// NewRedisBlacklist creates a Blacklist backed by client.
func NewRedisBlacklist(client redis.Cmdable) *RedisBlacklist {
	return &RedisBlacklist{client: client, now: time.Now}
}

var _ Blacklist = (*RedisBlacklist)(nil)

// Revoke marks jti as revoked. Already expired tokens are not stored.
func (b *RedisBlacklist) Revoke(ctx context.Context, jti string, expiresAt time.Time) error {
	ttl := expiresAt.Sub(b.now())
	if ttl <= 0 {
		return nil
	}
	return b.client.Set(ctx, blacklistPrefix+jti, "1", ttl).Err()
}

func (b *RedisBlacklist) IsRevoked(ctx context.Context, jti string) (bool, error) {
	n, err := b.client.Exists(ctx, blacklistPrefix+jti).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
