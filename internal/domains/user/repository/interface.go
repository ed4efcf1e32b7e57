package repository

import (
	"context"

	"library-catalog/internal/domains/user/model"
)

// Repository - User data access.
// Lookup misses are (nil, nil); absence of a user is a business-level
// outcome, not a store failure.
type Repository interface {
	// Create inserts a new user.
	// Returns model.ErrUsernameTaken when the username is in use.
	Create(ctx context.Context, user *model.User) error

	// FindByUsername retrieves a user by exact username
	FindByUsername(ctx context.Context, username string) (*model.User, error)

	// FindByID retrieves a user by id
	FindByID(ctx context.Context, id string) (*model.User, error)

	// FindByIDs resolves the friends relation in one call.
	// Missing ids are absent from the result map.
	FindByIDs(ctx context.Context, ids []string) (map[string]model.User, error)
}
