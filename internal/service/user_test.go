package service

import (
	"context"
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"edusync/internal/model"
	"edusync/internal/repository"
	repoMocks "edusync/internal/repository/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserService_Login(t *testing.T) {
	ctx := context.Background()

	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)

	stored := &model.User{
		UserID:       "u1",
		Name:         "Ada",
		Email:        "ada@example.com",
		Role:         "Instructor",
		PasswordHash: string(hash),
	}

	t.Run("happy path blanks the stored hash", func(t *testing.T) {
		mRepo := new(repoMocks.MockUserRepository)
		mRepo.On("FindByEmail", ctx, "ada@example.com").Return(stored, nil)

		svc := NewUserService(mRepo)
		user, err := svc.Login(ctx, "ada@example.com", "s3cret")

		assert.NoError(t, err)
		assert.Equal(t, "u1", user.UserID)
		assert.Empty(t, user.PasswordHash)
		// the repository's copy must stay intact
		assert.Equal(t, string(hash), stored.PasswordHash)
		mRepo.AssertExpectations(t)
	})

	t.Run("wrong secret", func(t *testing.T) {
		mRepo := new(repoMocks.MockUserRepository)
		mRepo.On("FindByEmail", ctx, "ada@example.com").Return(stored, nil)

		svc := NewUserService(mRepo)
		user, err := svc.Login(ctx, "ada@example.com", "not-it")

		assert.ErrorIs(t, err, ErrInvalidCredentials)
		assert.Nil(t, user)
	})

	t.Run("unknown email is indistinguishable from wrong secret", func(t *testing.T) {
		mRepo := new(repoMocks.MockUserRepository)
		mRepo.On("FindByEmail", ctx, "nobody@example.com").Return(nil, repository.ErrNotFound)

		svc := NewUserService(mRepo)
		user, err := svc.Login(ctx, "nobody@example.com", "s3cret")

		assert.ErrorIs(t, err, ErrInvalidCredentials)
		assert.Nil(t, user)
	})

	t.Run("blank fields rejected before any lookup", func(t *testing.T) {
		mRepo := new(repoMocks.MockUserRepository)
		svc := NewUserService(mRepo)

		_, err := svc.Login(ctx, "", "s3cret")
		assert.ErrorIs(t, err, ErrCredentialsRequired)

		_, err = svc.Login(ctx, "ada@example.com", "")
		assert.ErrorIs(t, err, ErrCredentialsRequired)

		mRepo.AssertExpectations(t)
	})

	t.Run("repository error passes through", func(t *testing.T) {
		mRepo := new(repoMocks.MockUserRepository)
		mRepo.On("FindByEmail", ctx, "ada@example.com").Return(nil, errors.New("db fail"))

		svc := NewUserService(mRepo)
		user, err := svc.Login(ctx, "ada@example.com", "s3cret")

		assert.Error(t, err)
		assert.NotErrorIs(t, err, ErrInvalidCredentials)
		assert.Nil(t, user)
	})
}

func TestUserService_HashSecret(t *testing.T) {
	svc := NewUserService(nil)

	h, err := svc.HashSecret("s3cret")

	require.NoError(t, err)
	assert.NotEqual(t, "s3cret", h)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(h), []byte("s3cret")))
}
