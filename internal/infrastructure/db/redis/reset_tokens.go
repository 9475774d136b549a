package redis

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/surtekbb/pileta-system/internal/core/domain"
)

const resetTokenTTL = 15 * time.Minute

// ResetTokenStore issues and consumes single-use password recovery tokens.
// Tokens live under pwdreset:<token> with the owning user ID as the value
// and expire after resetTokenTTL.
type ResetTokenStore struct {
	client *redis.Client
}

// NewResetTokenStore creates a ResetTokenStore wrapping the given Redis client.
func NewResetTokenStore(client *redis.Client) *ResetTokenStore {
	return &ResetTokenStore{client: client}
}

// Issue creates an opaque token bound to userID, valid for resetTokenTTL.
func (s *ResetTokenStore) Issue(ctx context.Context, userID string) (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("reset token: %w", err)
	}
	token := hex.EncodeToString(buf)

	if err := s.client.Set(ctx, s.key(token), userID, resetTokenTTL).Err(); err != nil {
		return "", fmt.Errorf("reset token store: %w", err)
	}
	return token, nil
}

// Consume atomically fetches and deletes the token, returning the bound user
// ID. Unknown or expired tokens fail with domain.ErrInvalidResetToken.
func (s *ResetTokenStore) Consume(ctx context.Context, token string) (string, error) {
	userID, err := s.client.GetDel(ctx, s.key(token)).Result()
	if errors.Is(err, redis.Nil) {
		return "", domain.ErrInvalidResetToken
	}
	if err != nil {
		return "", fmt.Errorf("reset token consume: %w", err)
	}
	return userID, nil
}

func (s *ResetTokenStore) key(token string) string {
	return "pwdreset:" + token
}
