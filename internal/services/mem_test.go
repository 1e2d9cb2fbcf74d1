package services_test

import (
	"context"
	"sync"

	"github.com/sbilibin2017/gw-feed/internal/models"
	"github.com/sbilibin2017/gw-feed/internal/repositories"
)

type memUsers struct {
	mu     sync.Mutex
	byName map[string]models.User
}

func newMemUsers() *memUsers {
	return &memUsers{byName: map[string]models.User{}}
}

func (m *memUsers) GetByUsername(_ context.Context, username string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.byName[username]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &u, nil
}

func (m *memUsers) Save(_ context.Context, user *models.User) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byName[user.Username]; ok {
		return 0, repositories.ErrUsernameTaken
	}
	u := *user
	u.ID = int64(len(m.byName) + 1)
	m.byName[u.Username] = u
	return u.ID, nil
}

type memTokens struct {
	mu     sync.Mutex
	byName map[string]string
}

func newMemTokens() *memTokens {
	return &memTokens{byName: map[string]string{}}
}

func (m *memTokens) GetByUsername(_ context.Context, username string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	t, ok := m.byName[username]
	if !ok {
		return "", repositories.ErrNotFound
	}
	return t, nil
}

func (m *memTokens) Save(_ context.Context, username, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.byName[username] = token
	return nil
}
