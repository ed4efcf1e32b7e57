package service

import (
	"context"

	"library-catalog/internal/domains/user/model"
)

// Service defines user/identity business logic
type Service interface {
	// CreateUser registers a new user with a favorite genre
	// Errors: model.ErrUsernameTaken
	CreateUser(ctx context.Context, req *model.CreateUserRequest) (*model.UserResponse, error)

	// Login checks the credential and returns a signed bearer token
	// Errors: model.ErrWrongCredentials
	Login(ctx context.Context, req *model.LoginRequest) (*model.LoginResponse, error)

	// GetByID loads the principal for a validated token.
	// Returns (nil, nil) when the user no longer exists.
	GetByID(ctx context.Context, id string) (*model.User, error)

	// Me resolves the identity view for the given principal, including
	// the friends relation resolved to usernames
	Me(ctx context.Context, identity *model.User) (*model.UserResponse, error)
}
