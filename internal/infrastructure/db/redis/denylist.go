package redis

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Denylist records logged-out JWTs until their natural expiry. Tokens are
// keyed by SHA-256 digest so raw credentials never reach Redis.
type Denylist struct {
	client *redis.Client
}

// NewDenylist creates a Denylist wrapping the given Redis client.
func NewDenylist(client *redis.Client) *Denylist {
	return &Denylist{client: client}
}

// Revoke marks the token as logged out for the remainder of its lifetime.
// Tokens that already expired need no entry.
func (d *Denylist) Revoke(ctx context.Context, token string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	return d.client.Set(ctx, d.key(token), "1", ttl).Err()
}

// IsRevoked reports whether the token was invalidated by a logout.
func (d *Denylist) IsRevoked(ctx context.Context, token string) (bool, error) {
	n, err := d.client.Exists(ctx, d.key(token)).Result()
	if err != nil {
		return false, fmt.Errorf("denylist check: %w", err)
	}
	return n > 0, nil
}

func (d *Denylist) key(token string) string {
	sum := sha256.Sum256([]byte(token))
	return "denylist:" + hex.EncodeToString(sum[:])
}
