package mocks

import (
	"context"
	"io"

	"edusync/internal/storage"

	"github.com/stretchr/testify/mock"
)

type MockBlobStore struct {
	mock.Mock
}

func (m *MockBlobStore) EnsureBucket(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockBlobStore) Put(ctx context.Context, key string, r io.Reader, opt storage.PutOptions) (string, error) {
	args := m.Called(ctx, key, r, opt)
	if f, ok := args.Get(0).(func(context.Context, string, io.Reader, storage.PutOptions) string); ok {
		return f(ctx, key, r, opt), args.Error(1)
	}
	return args.String(0), args.Error(1)
}

func (m *MockBlobStore) Exists(ctx context.Context, key string) (bool, error) {
	args := m.Called(ctx, key)
	return args.Bool(0), args.Error(1)
}

func (m *MockBlobStore) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockBlobStore) ListNames(ctx context.Context, limit int) ([]string, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockBlobStore) Info(ctx context.Context) (storage.BucketInfo, error) {
	args := m.Called(ctx)
	return args.Get(0).(storage.BucketInfo), args.Error(1)
}

func (m *MockBlobStore) PublicURL(key string) string {
	args := m.Called(key)
	return args.String(0)
}
