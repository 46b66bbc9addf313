package mocks

import (
	"context"

	"edusync/internal/model"
	"github.com/stretchr/testify/mock"
)

type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) Login(ctx context.Context, email, secret string) (*model.User, error) {
	args := m.Called(ctx, email, secret)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserService) HashSecret(secret string) (string, error) {
	args := m.Called(secret)
	return args.String(0), args.Error(1)
}
