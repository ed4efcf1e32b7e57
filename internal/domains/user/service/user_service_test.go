package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"library-catalog/internal/domains/user/model"
	"library-catalog/internal/domains/user/repository"
	"library-catalog/pkg/jwt"
)

func newTestService() (Service, *repository.MemoryRepository, *jwt.Manager) {
	repo := repository.NewMemoryRepository()
	jwtManager := jwt.NewManager("test-secret", 1)
	return NewUserService(repo, jwtManager), repo, jwtManager
}

func TestCreateUser(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newTestService()

	user, err := svc.CreateUser(ctx, &model.CreateUserRequest{
		Username:      "mluukkai",
		FavoriteGenre: "refactoring",
	})
	require.NoError(t, err)
	assert.Equal(t, "mluukkai", user.Username)
	assert.Equal(t, "refactoring", user.FavoriteGenre)
	assert.NotEmpty(t, user.ID)
	assert.Empty(t, user.Friends)

	_, err = svc.CreateUser(ctx, &model.CreateUserRequest{
		Username:      "mluukkai",
		FavoriteGenre: "crime",
	})
	require.ErrorIs(t, err, model.ErrUsernameTaken)
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	svc, _, jwtManager := newTestService()

	_, err := svc.CreateUser(ctx, &model.CreateUserRequest{
		Username:      "mluukkai",
		FavoriteGenre: "refactoring",
	})
	require.NoError(t, err)

	t.Run("correct password yields a valid token", func(t *testing.T) {
		token, err := svc.Login(ctx, &model.LoginRequest{Username: "mluukkai", Password: "secret"})
		require.NoError(t, err)
		require.NotEmpty(t, token.Value)

		claims, err := jwtManager.ValidateToken(token.Value)
		require.NoError(t, err)
		assert.Equal(t, "mluukkai", claims.Username)
	})

	t.Run("wrong password fails", func(t *testing.T) {
		_, err := svc.Login(ctx, &model.LoginRequest{Username: "mluukkai", Password: "hunter2"})
		require.ErrorIs(t, err, model.ErrWrongCredentials)
	})

	t.Run("unknown user fails the same way", func(t *testing.T) {
		_, err := svc.Login(ctx, &model.LoginRequest{Username: "nobody", Password: "secret"})
		require.ErrorIs(t, err, model.ErrWrongCredentials)
	})
}

func TestMe(t *testing.T) {
	ctx := context.Background()
	svc, repo, _ := newTestService()

	friendA := &model.User{ID: uuid.NewString(), Username: "arto", FavoriteGenre: "agile"}
	friendB := &model.User{ID: uuid.NewString(), Username: "kalle", FavoriteGenre: "crime"}
	require.NoError(t, repo.Create(ctx, friendA))
	require.NoError(t, repo.Create(ctx, friendB))

	identity := &model.User{
		ID:            uuid.NewString(),
		Username:      "mluukkai",
		FavoriteGenre: "refactoring",
		Friends:       []string{friendB.ID, friendA.ID, "gone-user"},
	}
	require.NoError(t, repo.Create(ctx, identity))

	me, err := svc.Me(ctx, identity)
	require.NoError(t, err)
	assert.Equal(t, "mluukkai", me.Username)
	// relation order preserved, dangling references skipped
	assert.Equal(t, []string{"kalle", "arto"}, me.Friends)
}

func TestGetByID(t *testing.T) {
	ctx := context.Background()
	svc, repo, _ := newTestService()

	u := &model.User{ID: uuid.NewString(), Username: "mluukkai"}
	require.NoError(t, repo.Create(ctx, u))

	found, err := svc.GetByID(ctx, u.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, "mluukkai", found.Username)

	missing, err := svc.GetByID(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, missing)
}
