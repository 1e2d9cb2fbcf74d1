package services

import (
	"context"
	"crypto/rand"
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/sbilibin2017/gw-feed/internal/logger"
	"github.com/sbilibin2017/gw-feed/internal/models"
	"github.com/sbilibin2017/gw-feed/internal/repositories"
	"golang.org/x/crypto/pbkdf2"
)

//go:generate mockgen -source=credentials.go -destination=mock_credentials.go -package=services

// Password hashing parameters. Stored hashes depend on them.
const (
	pbkdf2Iterations = 1000
	pbkdf2KeyLen     = 64
	saltBytes        = 16
)

// UserReader defines read-only operations for users.
type UserReader interface {
	GetByUsername(ctx context.Context, username string) (*models.User, error)
}

// UserWriter defines write operations for users.
type UserWriter interface {
	Save(ctx context.Context, user *models.User) (int64, error)
}

// CredentialStore creates users with salted password hashes and checks
// passwords against them.
type CredentialStore struct {
	reader UserReader
	writer UserWriter
}

func NewCredentialStore(reader UserReader, writer UserWriter) *CredentialStore {
	return &CredentialStore{reader: reader, writer: writer}
}

// Create stores a new user. A taken username yields ErrDuplicateUsername.
func (s *CredentialStore) Create(ctx context.Context, username, profileImageRef, password string) (*models.User, error) {
	salt, err := newSalt()
	if err != nil {
		logger.Log.Errorw("failed to generate salt", "err", err)
		return nil, err
	}

	user := &models.User{
		Username:        username,
		ProfileImageRef: profileImageRef,
		PasswordHash:    hashPassword(password, salt),
		Salt:            salt,
	}

	id, err := s.writer.Save(ctx, user)
	if err != nil {
		if errors.Is(err, repositories.ErrUsernameTaken) {
			logger.Log.Infow("username already taken", "username", username)
			return nil, ErrDuplicateUsername
		}
		logger.Log.Errorw("failed to save user", "username", username, "err", err)
		return nil, fmt.Errorf("%w: save user: %w", ErrStoreFailure, err)
	}

	user.ID = id
	return user, nil
}

// Verify returns the user when password matches. An unknown username yields
// ErrUserNotFound and a wrong password ErrInvalidCredentials.
func (s *CredentialStore) Verify(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.reader.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		logger.Log.Errorw("failed to get user", "username", username, "err", err)
		return nil, fmt.Errorf("%w: get user: %w", ErrStoreFailure, err)
	}

	candidate := hashPassword(password, user.Salt)
	if subtle.ConstantTimeCompare([]byte(candidate), []byte(user.PasswordHash)) != 1 {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

func newSalt() (string, error) {
	b := make([]byte, saltBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// hashPassword derives the hex PBKDF2-SHA512 digest of password.
// The hex salt string itself (not its decoded bytes) is the PBKDF2 salt.
func hashPassword(password, salt string) string {
	key := pbkdf2.Key([]byte(password), []byte(salt), pbkdf2Iterations, pbkdf2KeyLen, sha512.New)
	return hex.EncodeToString(key)
}
