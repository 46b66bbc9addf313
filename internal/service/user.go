package service

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"edusync/internal/model"
	"edusync/internal/repository"
)

var (
	// ErrCredentialsRequired rejects login requests with a blank email or secret.
	ErrCredentialsRequired = errors.New("email and password are required")
	// ErrInvalidCredentials covers both unknown email and wrong secret; callers
	// must not be able to tell the two apart.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// UserService holds the user logic that doesn't fit the generic CRUD path:
// credential hashing and login verification. Secrets are stored as bcrypt
// hashes and verified one-way; the stored hash never leaves via login.
type UserService interface {
	Login(ctx context.Context, email, secret string) (*model.User, error)
	HashSecret(secret string) (string, error)
}

type userService struct {
	users repository.UserRepository
}

// NewUserService constructs a UserService over the users repository.
func NewUserService(users repository.UserRepository) UserService {
	return &userService{users: users}
}

func (s *userService) Login(ctx context.Context, email, secret string) (*model.User, error) {
	if email == "" || secret == "" {
		return nil, ErrCredentialsRequired
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(secret)) != nil {
		return nil, ErrInvalidCredentials
	}

	out := *user
	out.PasswordHash = ""
	return &out, nil
}

// HashSecret produces the bcrypt hash stored in place of the raw secret.
func (s *userService) HashSecret(secret string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}
