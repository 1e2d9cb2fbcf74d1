package services

import (
	"context"
	"errors"

	"github.com/sbilibin2017/gw-feed/internal/logger"
	"github.com/sbilibin2017/gw-feed/internal/models"
)

//go:generate mockgen -source=auth.go -destination=mock_auth.go -package=services

// Credentials creates and verifies users.
type Credentials interface {
	Create(ctx context.Context, username, profileImageRef, password string) (*models.User, error)
	Verify(ctx context.Context, username, password string) (*models.User, error)
}

// TokenIssuer issues session tokens.
type TokenIssuer interface {
	Issue(ctx context.Context, username string) (string, error)
	Forget(ctx context.Context, username string)
}

// Transactor runs fn in a single database transaction.
type Transactor interface {
	WithTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// AuthResult is returned by a successful registration or login.
type AuthResult struct {
	User  *models.User
	Token string
}

// AuthService handles registration and login.
type AuthService struct {
	credentials Credentials
	tokens      TokenIssuer
	tx          Transactor
}

// NewAuthService creates a new AuthService instance.
func NewAuthService(credentials Credentials, tokens TokenIssuer, tx Transactor) *AuthService {
	return &AuthService{
		credentials: credentials,
		tokens:      tokens,
		tx:          tx,
	}
}

// Register creates the user and issues its first token. Both writes are
// committed together or not at all.
func (svc *AuthService) Register(ctx context.Context, username, profileImageRef, password string) (*AuthResult, error) {
	if username == "" || profileImageRef == "" || password == "" {
		return nil, ErrMissingField
	}

	var (
		result AuthResult
		issued bool
	)
	err := svc.tx.WithTx(ctx, func(ctx context.Context) error {
		user, err := svc.credentials.Create(ctx, username, profileImageRef, password)
		if err != nil {
			return err
		}

		token, err := svc.tokens.Issue(ctx, username)
		if err != nil {
			return err
		}
		issued = true

		result = AuthResult{User: user, Token: token}
		return nil
	})
	if err != nil {
		// the token may be cached although its row was rolled back
		if issued {
			svc.tokens.Forget(ctx, username)
		}
		logger.Log.Errorw("registration failed", "username", username, "err", err)
		return nil, err
	}

	logger.Log.Infow("user registered", "username", username, "user_id", result.User.ID)
	return &result, nil
}

// Login checks the password and replaces the user's token with a new one.
// An unknown user and a wrong password both yield ErrInvalidCredentials.
func (svc *AuthService) Login(ctx context.Context, username, password string) (*AuthResult, error) {
	if username == "" || password == "" {
		return nil, ErrMissingField
	}

	user, err := svc.credentials.Verify(ctx, username, password)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) || errors.Is(err, ErrInvalidCredentials) {
			logger.Log.Infow("login rejected", "username", username, "reason", err)
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	token, err := svc.tokens.Issue(ctx, username)
	if err != nil {
		return nil, err
	}

	return &AuthResult{User: user, Token: token}, nil
}
