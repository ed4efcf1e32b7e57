package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"library-catalog/internal/domains/user/model"
	"library-catalog/internal/domains/user/repository"
	"library-catalog/pkg/jwt"
)

// fixedPassword is a documented simplification carried over from the
// original system: every user shares one development password and no
// credential is stored. Do not copy this pattern into anything that
// handles real accounts.
const fixedPassword = "secret"

type userService struct {
	repo       repository.Repository
	jwtManager *jwt.Manager
}

func NewUserService(repo repository.Repository, jwtManager *jwt.Manager) Service {
	return &userService{
		repo:       repo,
		jwtManager: jwtManager,
	}
}

func (s *userService) CreateUser(ctx context.Context, req *model.CreateUserRequest) (*model.UserResponse, error) {
	username := strings.TrimSpace(req.Username)

	user := &model.User{
		ID:            uuid.NewString(),
		Username:      username,
		FavoriteGenre: req.FavoriteGenre,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	return user.ToResponse(nil), nil
}

func (s *userService) Login(ctx context.Context, req *model.LoginRequest) (*model.LoginResponse, error) {
	user, err := s.repo.FindByUsername(ctx, req.Username)
	if err != nil {
		return nil, err
	}
	if user == nil || req.Password != fixedPassword {
		return nil, model.ErrWrongCredentials
	}

	token, err := s.jwtManager.GenerateToken(user.ID, user.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	return &model.LoginResponse{Value: token}, nil
}

func (s *userService) GetByID(ctx context.Context, id string) (*model.User, error) {
	return s.repo.FindByID(ctx, id)
}

func (s *userService) Me(ctx context.Context, identity *model.User) (*model.UserResponse, error) {
	friends, err := s.repo.FindByIDs(ctx, identity.Friends)
	if err != nil {
		return nil, err
	}

	// preserve the order of the friends relation
	names := []string{}
	for _, id := range identity.Friends {
		if friend, ok := friends[id]; ok {
			names = append(names, friend.Username)
		}
	}
	return identity.ToResponse(names), nil
}
