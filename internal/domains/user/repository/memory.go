package repository

import (
	"context"
	"slices"
	"sync"

	"library-catalog/internal/domains/user/model"
)

// MemoryRepository backs tests and MONGODB-less development.
type MemoryRepository struct {
	mu    sync.RWMutex
	users []model.User
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{}
}

func (r *MemoryRepository) Create(_ context.Context, user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, u := range r.users {
		if u.Username == user.Username {
			return model.ErrUsernameTaken
		}
	}
	r.users = append(r.users, *user)
	return nil
}

func (r *MemoryRepository) FindByUsername(_ context.Context, username string) (*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.Username == username {
			found := u
			return &found, nil
		}
	}
	return nil, nil
}

func (r *MemoryRepository) FindByID(_ context.Context, id string) (*model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, u := range r.users {
		if u.ID == id {
			found := u
			return &found, nil
		}
	}
	return nil, nil
}

func (r *MemoryRepository) FindByIDs(_ context.Context, ids []string) (map[string]model.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	byID := make(map[string]model.User, len(ids))
	for _, u := range r.users {
		if slices.Contains(ids, u.ID) {
			byID[u.ID] = u
		}
	}
	return byID, nil
}
