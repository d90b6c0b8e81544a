package store

import (
	"context"
	"errors"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Memory keeps users in a process-local map. Everything is lost on restart;
// this is the default store when no PG_URL is configured.
type Memory struct {
	mu    sync.RWMutex
	users map[string]memUser
}

type memUser struct {
	hash      string
	createdAt time.Time
}

func NewMemory() *Memory {
	return &Memory{users: make(map[string]memUser)}
}

func (m *Memory) Register(_ context.Context, username, password string) (User, error) {
	username = normUsername(username)
	if username == "" || password == "" {
		return User{}, errors.New("missing username or password")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.users[username]; exists {
		return User{}, ErrUserExists
	}
	u := memUser{hash: string(hash), createdAt: time.Now()}
	m.users[username] = u
	return User{Username: username, CreatedAt: u.createdAt}, nil
}

func (m *Memory) Authenticate(_ context.Context, username, password string) (User, error) {
	username = normUsername(username)

	m.mu.RLock()
	u, ok := m.users[username]
	m.mu.RUnlock()
	if !ok {
		return User{}, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(u.hash), []byte(password)) != nil {
		return User{}, ErrInvalidCredentials
	}
	return User{Username: username, CreatedAt: u.createdAt}, nil
}

func (m *Memory) Close() {}
