// Package store is the persistence collaborator: a narrow read/write
// surface for user profiles and lifetime stats. Nothing in the game
// engine depends on it being durable.
package store

import (
	"context"
	"errors"
	"sync"
)

var ErrUserNotFound = errors.New("user not found")

type User struct {
	ID          string `json:"id"`
	Username    string `json:"username"`
	Avatar      string `json:"avatar,omitempty"`
	TotalScore  int    `json:"totalScore"`
	GamesPlayed int    `json:"gamesPlayed"`
	Wins        int    `json:"wins"`
}

type UserStore interface {
	Get(ctx context.Context, id string) (User, error)
	Put(ctx context.Context, u User) error
}

// Memory keeps users in a map; the default when no redis is configured,
// and the store used in tests.
type Memory struct {
	mu    sync.RWMutex
	users map[string]User
}

func NewMemory() *Memory {
	return &Memory{users: make(map[string]User)}
}

func (m *Memory) Get(_ context.Context, id string) (User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	u, ok := m.users[id]
	if !ok {
		return User{}, ErrUserNotFound
	}
	return u, nil
}

func (m *Memory) Put(_ context.Context, u User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[u.ID] = u
	return nil
}
