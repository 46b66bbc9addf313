package mocks

import (
	"context"

	"edusync/internal/model"
	"edusync/internal/repository"
	"github.com/stretchr/testify/mock"
)

// MockCrud is a testify mock for the generic repository.Crud surface.
type MockCrud[T model.Entity] struct {
	mock.Mock
}

func (m *MockCrud[T]) List(ctx context.Context, f repository.ListFilter) ([]T, error) {
	args := m.Called(ctx, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]T), args.Error(1)
}

func (m *MockCrud[T]) FindByID(ctx context.Context, id string) (*T, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*T), args.Error(1)
}

func (m *MockCrud[T]) Create(ctx context.Context, e *T) (*T, error) {
	args := m.Called(ctx, e)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*T), args.Error(1)
}

func (m *MockCrud[T]) Update(ctx context.Context, e *T) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

func (m *MockCrud[T]) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockUserRepository adds the email lookup on top of the generic mock.
type MockUserRepository struct {
	MockCrud[model.User]
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}
