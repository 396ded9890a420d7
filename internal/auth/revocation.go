package auth

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const revocationPrefix = "auth:revoked:"

// TokenRevoker records logged-out token ids in Redis until their natural
// expiry. Stateless JWTs get real teardown semantics this way.
type TokenRevoker struct {
	client *redis.Client
}

// NewTokenRevoker wraps a Redis client. A nil client disables revocation.
func NewTokenRevoker(client *redis.Client) *TokenRevoker {
	return &TokenRevoker{client: client}
}

// Revoke denylists the token id for the remaining token lifetime.
func (r *TokenRevoker) Revoke(ctx context.Context, tokenID string, expiresAt time.Time) error {
	if r == nil || r.client == nil || tokenID == "" {
		return nil
	}
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return nil
	}
	return r.client.Set(ctx, revocationPrefix+tokenID, "1", ttl).Err()
}

// IsRevoked reports whether the token id is denylisted. Lookup failures are
// returned to the caller so the middleware can fail closed.
func (r *TokenRevoker) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	if r == nil || r.client == nil || tokenID == "" {
		return false, nil
	}
	_, err := r.client.Get(ctx, revocationPrefix+tokenID).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
