package service

import (
	"context"
	"sync"

	"github.com/webdevexpress/auth-with-jwt/internal/model"
	"github.com/webdevexpress/auth-with-jwt/internal/repository"
)

type fakeUserRepo struct {
	mu     sync.Mutex
	users  map[string]model.User
	nextID int64
	err    error
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]model.User)}
}

func (f *fakeUserRepo) Create(_ context.Context, user *model.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.err != nil {
		return f.err
	}
	if _, ok := f.users[user.Email]; ok {
		return repository.ErrDuplicateEmail
	}
	f.nextID++
	user.ID = f.nextID
	f.users[user.Email] = *user
	return nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.err != nil {
		return nil, f.err
	}
	u, ok := f.users[email]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	return &u, nil
}
