// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"sync"
	"time"
)

// MemoryUserRepository is a process-local [UserRepository] used with
// STORAGE_DRIVER=memory and in tests. Data is lost on restart.
type MemoryUserRepository struct {
	mu    sync.RWMutex
	users map[string]User // keyed by username
}

// NewMemoryUserRepository creates an empty [MemoryUserRepository].
func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{users: make(map[string]User)}
}

// Create implements [UserRepository]. The check and the insert happen under
// one lock, so a username can only be claimed once.
func (repository *MemoryUserRepository) Create(_ context.Context, user *User) error {
	repository.mu.Lock()
	defer repository.mu.Unlock()

	if _, taken := repository.users[user.Username]; taken {
		return errUsernameTaken()
	}

	now := time.Now().UTC()
	user.CreatedAt = now
	user.UpdatedAt = now
	repository.users[user.Username] = *user

	return nil
}

// FindByUsername implements [UserRepository].
func (repository *MemoryUserRepository) FindByUsername(_ context.Context, username string) (*User, error) {
	repository.mu.RLock()
	defer repository.mu.RUnlock()

	user, found := repository.users[username]
	if !found {
		return nil, errUserNotFound()
	}

	return &user, nil
}
