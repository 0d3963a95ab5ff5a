package auth

import (
	"context"
	"time"

	"timetrack/internal/cache"
)

const denylistKeyPrefix = "denylist:token:"

// TokenStoreInterface defines the interface for token denylist operations.
type TokenStoreInterface interface {
	Denylist(ctx context.Context, tokenID string, ttl time.Duration) error
	IsDenylisted(ctx context.Context, tokenID string) (bool, error)
}

// TokenStore records logged-out token IDs in Redis until their natural
// expiry, after which the entries lapse on their own.
type TokenStore struct {
	cache *cache.Client
}

// Ensure TokenStore implements TokenStoreInterface
var _ TokenStoreInterface = (*TokenStore)(nil)

// NewTokenStore creates a new token store.
func NewTokenStore(cache *cache.Client) *TokenStore {
	return &TokenStore{cache: cache}
}

// Denylist marks a token ID as revoked for the remaining token lifetime.
func (s *TokenStore) Denylist(ctx context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	return s.cache.Set(ctx, denylistKeyPrefix+tokenID, []byte("1"), ttl)
}

// IsDenylisted checks whether a token ID has been revoked.
func (s *TokenStore) IsDenylisted(ctx context.Context, tokenID string) (bool, error) {
	return s.cache.Exists(ctx, denylistKeyPrefix+tokenID)
}
