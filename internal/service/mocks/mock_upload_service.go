package mocks

import (
	"context"
	"io"

	"edusync/internal/service"
	"github.com/stretchr/testify/mock"
)

type MockUploadService struct {
	mock.Mock
}

func (m *MockUploadService) Upload(ctx context.Context, r io.Reader, filename string, size int64) (*service.UploadResult, error) {
	args := m.Called(ctx, r, filename, size)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.UploadResult), args.Error(1)
}

func (m *MockUploadService) TestConnection(ctx context.Context) bool {
	args := m.Called(ctx)
	return args.Bool(0)
}

func (m *MockUploadService) Diagnostics(ctx context.Context) (*service.DiagnosticsReport, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.DiagnosticsReport), args.Error(1)
}
