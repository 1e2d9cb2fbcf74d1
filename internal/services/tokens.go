package services

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/sbilibin2017/gw-feed/internal/logger"
	"github.com/sbilibin2017/gw-feed/internal/repositories"
)

//go:generate mockgen -source=tokens.go -destination=mock_tokens.go -package=services

const tokenBytes = 32

// TokenReader defines read-only operations for session tokens.
type TokenReader interface {
	GetByUsername(ctx context.Context, username string) (string, error)
}

// TokenWriter defines write operations for session tokens.
type TokenWriter interface {
	Save(ctx context.Context, username, token string) error
}

// TokenCache keeps recently used tokens close to the service.
type TokenCache interface {
	Get(ctx context.Context, username string) (string, error)
	Set(ctx context.Context, username, token string) error
	Add(ctx context.Context, username, token string) (bool, error)
	Delete(ctx context.Context, username string) error
}

// TokenStore issues and validates the single active token of each user.
type TokenStore struct {
	reader TokenReader
	writer TokenWriter
	cache  TokenCache
}

// NewTokenStore creates a TokenStore. cache may be nil.
func NewTokenStore(reader TokenReader, writer TokenWriter, cache TokenCache) *TokenStore {
	return &TokenStore{
		reader: reader,
		writer: writer,
		cache:  cache,
	}
}

// Issue generates a new token for username and makes it the only valid one.
func (s *TokenStore) Issue(ctx context.Context, username string) (string, error) {
	token, err := generateToken()
	if err != nil {
		logger.Log.Errorw("failed to generate token", "err", err)
		return "", err
	}

	if err := s.writer.Save(ctx, username, token); err != nil {
		logger.Log.Errorw("failed to save token", "username", username, "err", err)
		return "", fmt.Errorf("%w: save token: %w", ErrStoreFailure, err)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, username, token); err != nil {
			logger.Log.Warnw("failed to cache token", "username", username, "err", err)
			// the previous token must not stay in the cache
			if err := s.cache.Delete(ctx, username); err != nil {
				logger.Log.Errorw("failed to evict cached token", "username", username, "err", err)
			}
		}
	}

	return token, nil
}

// Forget drops the cached token of username. The next Validate reads the
// database.
func (s *TokenStore) Forget(ctx context.Context, username string) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, username); err != nil {
		logger.Log.Errorw("failed to evict cached token", "username", username, "err", err)
	}
}

// Validate reports whether token is the active token of username.
func (s *TokenStore) Validate(ctx context.Context, username, token string) (bool, error) {
	if username == "" || token == "" {
		return false, nil
	}

	if s.cache != nil {
		cached, err := s.cache.Get(ctx, username)
		switch {
		case err == nil:
			return tokensEqual(cached, token), nil
		case errors.Is(err, repositories.ErrNotFound):
		default:
			logger.Log.Warnw("token cache unavailable, using database", "username", username, "err", err)
		}
	}

	stored, err := s.reader.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return false, nil
		}
		logger.Log.Errorw("failed to get token", "username", username, "err", err)
		return false, fmt.Errorf("%w: get token: %w", ErrStoreFailure, err)
	}

	if s.cache != nil {
		if _, err := s.cache.Add(ctx, username, stored); err != nil {
			logger.Log.Warnw("failed to refill token cache", "username", username, "err", err)
		}
	}

	return tokensEqual(stored, token), nil
}

func generateToken() (string, error) {
	b := make([]byte, tokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

func tokensEqual(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
