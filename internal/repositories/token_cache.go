package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sbilibin2017/gw-feed/internal/logger"
)

// TokenCacheRepository keeps the active token of each user in Redis.
type TokenCacheRepository struct {
	client redis.Cmdable
	exp    time.Duration
}

// NewTokenCacheRepository creates a cache whose entries live for expiration.
func NewTokenCacheRepository(client redis.Cmdable, expiration time.Duration) *TokenCacheRepository {
	return &TokenCacheRepository{
		client: client,
		exp:    expiration,
	}
}

func tokenKey(username string) string {
	return fmt.Sprintf("session_token:%s", username)
}

// Get returns the cached token. A miss is reported as ErrNotFound.
func (r *TokenCacheRepository) Get(ctx context.Context, username string) (string, error) {
	key := tokenKey(username)

	val, err := r.client.Get(ctx, key).Result()
	logger.Log.Infow("token cache get",
		"key", key,
		"hit", err == nil,
		"error", err,
	)

	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrNotFound
		}
		return "", err
	}
	return val, nil
}

func (r *TokenCacheRepository) Set(ctx context.Context, username, token string) error {
	key := tokenKey(username)
	err := r.client.Set(ctx, key, token, r.exp).Err()

	logger.Log.Infow("token cache set",
		"key", key,
		"ttl", r.exp,
		"error", err,
	)
	return err
}

// Add stores token only when no entry exists for username and reports
// whether it did. Refills from the database use it so they never replace a
// token written by a newer login.
func (r *TokenCacheRepository) Add(ctx context.Context, username, token string) (bool, error) {
	key := tokenKey(username)
	added, err := r.client.SetNX(ctx, key, token, r.exp).Result()

	logger.Log.Infow("token cache add",
		"key", key,
		"added", added,
		"error", err,
	)
	return added, err
}

func (r *TokenCacheRepository) Delete(ctx context.Context, username string) error {
	key := tokenKey(username)
	err := r.client.Del(ctx, key).Err()

	logger.Log.Infow("token cache delete",
		"key", key,
		"deleted", err == nil,
		"error", err,
	)
	return err
}
