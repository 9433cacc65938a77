package auth

import (
	"context"
	"sync"
)

// MemoryStore keeps accounts in process memory. It backs the service when no DATABASE_URL is configured.
type MemoryStore struct {
	mu    sync.RWMutex
	users map[string]User
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{users: map[string]User{}}
}

func (m *MemoryStore) FindUser(_ context.Context, username string) (User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	user, ok := m.users[username]
	if !ok {
		return User{}, ErrUserNotFound
	}
	return user, nil
}

func (m *MemoryStore) CreateUser(_ context.Context, user User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.users[user.Username]; ok {
		return ErrUserExists
	}
	m.users[user.Username] = user
	return nil
}
