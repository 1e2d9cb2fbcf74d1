package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/sbilibin2017/gw-feed/internal/models"
	"github.com/sbilibin2017/gw-feed/internal/services"
	"github.com/stretchr/testify/assert"
)

// inlineTx runs fn directly, recording whether it ran. commitErr is returned
// when fn succeeds.
type inlineTx struct {
	calls     int
	commitErr error
}

func (tx *inlineTx) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	tx.calls++
	if err := fn(ctx); err != nil {
		return err
	}
	return tx.commitErr
}

func TestAuthService_Register(t *testing.T) {
	alice := &models.User{ID: 1, Username: "alice", ProfileImageRef: "alice.png"}

	tests := []struct {
		name     string
		username string
		image    string
		password string
		setup    func(c *services.MockCredentials, i *services.MockTokenIssuer)
		want     *services.AuthResult
		wantErr  error
		wantTx   int
	}{
		{
			name:     "successful registration",
			username: "alice",
			image:    "alice.png",
			password: "pass123",
			setup: func(c *services.MockCredentials, i *services.MockTokenIssuer) {
				c.EXPECT().Create(gomock.Any(), "alice", "alice.png", "pass123").Return(alice, nil)
				i.EXPECT().Issue(gomock.Any(), "alice").Return("tok", nil)
			},
			want:   &services.AuthResult{User: alice, Token: "tok"},
			wantTx: 1,
		},
		{
			name:     "missing profile image",
			username: "alice",
			password: "pass123",
			setup:    func(c *services.MockCredentials, i *services.MockTokenIssuer) {},
			wantErr:  services.ErrMissingField,
		},
		{
			name:     "missing password",
			username: "alice",
			image:    "alice.png",
			setup:    func(c *services.MockCredentials, i *services.MockTokenIssuer) {},
			wantErr:  services.ErrMissingField,
		},
		{
			name:     "duplicate username",
			username: "bob",
			image:    "bob.png",
			password: "pass123",
			setup: func(c *services.MockCredentials, i *services.MockTokenIssuer) {
				c.EXPECT().Create(gomock.Any(), "bob", "bob.png", "pass123").Return(nil, services.ErrDuplicateUsername)
			},
			wantErr: services.ErrDuplicateUsername,
			wantTx:  1,
		},
		{
			name:     "token issue failure aborts",
			username: "carol",
			image:    "carol.png",
			password: "pass123",
			setup: func(c *services.MockCredentials, i *services.MockTokenIssuer) {
				c.EXPECT().Create(gomock.Any(), "carol", "carol.png", "pass123").Return(&models.User{ID: 3, Username: "carol"}, nil)
				i.EXPECT().Issue(gomock.Any(), "carol").Return("", services.ErrStoreFailure)
			},
			wantErr: services.ErrStoreFailure,
			wantTx:  1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			creds := services.NewMockCredentials(ctrl)
			issuer := services.NewMockTokenIssuer(ctrl)
			tx := &inlineTx{}
			tt.setup(creds, issuer)

			res, err := services.NewAuthService(creds, issuer, tx).
				Register(context.Background(), tt.username, tt.image, tt.password)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, res)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.want, res)
			}
			assert.Equal(t, tt.wantTx, tx.calls)
		})
	}
}

func TestAuthService_Register_TxError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	tx := services.NewMockTransactor(ctrl)
	tx.EXPECT().WithTx(gomock.Any(), gomock.Any()).Return(errors.New("begin failed"))

	res, err := services.NewAuthService(services.NewMockCredentials(ctrl), services.NewMockTokenIssuer(ctrl), tx).
		Register(context.Background(), "alice", "a.png", "pw")
	assert.EqualError(t, err, "begin failed")
	assert.Nil(t, res)
}

func TestAuthService_Register_CommitErrorForgetsToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	creds := services.NewMockCredentials(ctrl)
	issuer := services.NewMockTokenIssuer(ctrl)
	commitErr := errors.New("commit failed")

	gomock.InOrder(
		creds.EXPECT().Create(gomock.Any(), "alice", "a.png", "pw").Return(&models.User{ID: 1, Username: "alice"}, nil),
		issuer.EXPECT().Issue(gomock.Any(), "alice").Return("tok", nil),
		issuer.EXPECT().Forget(gomock.Any(), "alice"),
	)

	res, err := services.NewAuthService(creds, issuer, &inlineTx{commitErr: commitErr}).
		Register(context.Background(), "alice", "a.png", "pw")
	assert.ErrorIs(t, err, commitErr)
	assert.Nil(t, res)
}

// A rolled back registration must not leave a token the cache would accept.
func TestAuthService_Register_RollbackLeavesNoValidToken(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	users := newMemUsers()
	tokens := newMemTokens()
	cache := services.NewMockTokenCache(ctrl)

	var cached string
	cache.EXPECT().Set(gomock.Any(), "alice", gomock.Any()).
		DoAndReturn(func(_ context.Context, _, token string) error {
			cached = token
			return nil
		})
	cache.EXPECT().Delete(gomock.Any(), "alice").Return(nil)

	tokenStore := services.NewTokenStore(tokens, tokens, cache)
	svc := services.NewAuthService(services.NewCredentialStore(users, users), tokenStore,
		&inlineTx{commitErr: errors.New("commit failed")})

	_, err := svc.Register(context.Background(), "alice", "a.png", "pw")
	assert.Error(t, err)
	assert.NotEmpty(t, cached)
}

func TestAuthService_Login(t *testing.T) {
	alice := &models.User{ID: 1, Username: "alice", ProfileImageRef: "alice.png"}

	tests := []struct {
		name     string
		username string
		password string
		setup    func(c *services.MockCredentials, i *services.MockTokenIssuer)
		want     *services.AuthResult
		wantErr  error
	}{
		{
			name:     "successful login",
			username: "alice",
			password: "secret",
			setup: func(c *services.MockCredentials, i *services.MockTokenIssuer) {
				c.EXPECT().Verify(gomock.Any(), "alice", "secret").Return(alice, nil)
				i.EXPECT().Issue(gomock.Any(), "alice").Return("fresh", nil)
			},
			want: &services.AuthResult{User: alice, Token: "fresh"},
		},
		{
			name:     "missing password",
			username: "alice",
			setup:    func(c *services.MockCredentials, i *services.MockTokenIssuer) {},
			wantErr:  services.ErrMissingField,
		},
		{
			name:     "unknown user looks like bad password",
			username: "ghost",
			password: "secret",
			setup: func(c *services.MockCredentials, i *services.MockTokenIssuer) {
				c.EXPECT().Verify(gomock.Any(), "ghost", "secret").Return(nil, services.ErrUserNotFound)
			},
			wantErr: services.ErrInvalidCredentials,
		},
		{
			name:     "wrong password",
			username: "alice",
			password: "nope",
			setup: func(c *services.MockCredentials, i *services.MockTokenIssuer) {
				c.EXPECT().Verify(gomock.Any(), "alice", "nope").Return(nil, services.ErrInvalidCredentials)
			},
			wantErr: services.ErrInvalidCredentials,
		},
		{
			name:     "store failure",
			username: "alice",
			password: "secret",
			setup: func(c *services.MockCredentials, i *services.MockTokenIssuer) {
				c.EXPECT().Verify(gomock.Any(), "alice", "secret").Return(nil, services.ErrStoreFailure)
			},
			wantErr: services.ErrStoreFailure,
		},
		{
			name:     "token issue failure",
			username: "alice",
			password: "secret",
			setup: func(c *services.MockCredentials, i *services.MockTokenIssuer) {
				c.EXPECT().Verify(gomock.Any(), "alice", "secret").Return(alice, nil)
				i.EXPECT().Issue(gomock.Any(), "alice").Return("", services.ErrStoreFailure)
			},
			wantErr: services.ErrStoreFailure,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			creds := services.NewMockCredentials(ctrl)
			issuer := services.NewMockTokenIssuer(ctrl)
			tt.setup(creds, issuer)

			res, err := services.NewAuthService(creds, issuer, &inlineTx{}).
				Login(context.Background(), tt.username, tt.password)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, res)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.want, res)
			}
		})
	}
}

// TestAuthService_RegisterThenLogin wires the real stores over in-memory
// repositories to check the full credential and token flow.
func TestAuthService_RegisterThenLogin(t *testing.T) {
	users := newMemUsers()
	tokens := newMemTokens()
	tokenStore := services.NewTokenStore(tokens, tokens, nil)
	svc := services.NewAuthService(services.NewCredentialStore(users, users), tokenStore, &inlineTx{})
	ctx := context.Background()

	reg, err := svc.Register(ctx, "alice", "alice.png", "pw")
	assert.NoError(t, err)

	_, err = svc.Register(ctx, "alice", "other.png", "pw2")
	assert.ErrorIs(t, err, services.ErrDuplicateUsername)
	assert.Len(t, users.byName, 1)

	login, err := svc.Login(ctx, "alice", "pw")
	assert.NoError(t, err)
	assert.NotEqual(t, reg.Token, login.Token)
	assert.Equal(t, reg.User.ID, login.User.ID)

	ok, err := tokenStore.Validate(ctx, "alice", reg.Token)
	assert.NoError(t, err)
	assert.False(t, ok)
	ok, err = tokenStore.Validate(ctx, "alice", login.Token)
	assert.NoError(t, err)
	assert.True(t, ok)

	_, wrongPw := svc.Login(ctx, "alice", "bad")
	_, unknown := svc.Login(ctx, "nobody", "pw")
	assert.ErrorIs(t, wrongPw, services.ErrInvalidCredentials)
	assert.Equal(t, wrongPw, unknown)
}
