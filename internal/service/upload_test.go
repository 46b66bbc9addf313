package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"edusync/internal/config"
	"edusync/internal/storage"
	storeMocks "edusync/internal/storage/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var testMinIOConfig = config.MinIOConfig{
	Endpoint: "localhost:9000",
	Bucket:   "edusync-files",
}

func newTestUploadService(store storage.BlobStore) *uploadService {
	svc := NewUploadService(store, testMinIOConfig, 0).(*uploadService)
	svc.now = func() time.Time {
		return time.Date(2025, 5, 17, 10, 30, 0, 0, time.UTC)
	}
	return svc
}

func TestUploadService_Validation(t *testing.T) {
	ctx := context.Background()

	t.Run("nil reader", func(t *testing.T) {
		mStore := new(storeMocks.MockBlobStore)
		svc := newTestUploadService(mStore)

		res, err := svc.Upload(ctx, nil, "note.txt", 10)

		assert.ErrorIs(t, err, ErrEmptyFile)
		assert.Nil(t, res)
		mStore.AssertExpectations(t) // no remote call was made
	})

	t.Run("zero length", func(t *testing.T) {
		mStore := new(storeMocks.MockBlobStore)
		svc := newTestUploadService(mStore)

		_, err := svc.Upload(ctx, strings.NewReader(""), "note.txt", 0)

		assert.ErrorIs(t, err, ErrEmptyFile)
		mStore.AssertExpectations(t)
	})

	t.Run("one byte over the ceiling", func(t *testing.T) {
		mStore := new(storeMocks.MockBlobStore)
		svc := newTestUploadService(mStore)

		_, err := svc.Upload(ctx, strings.NewReader("x"), "big.bin", config.DefaultMaxUploadSize+1)

		assert.ErrorIs(t, err, ErrFileTooLarge)
		mStore.AssertExpectations(t)
	})

	t.Run("single byte passes", func(t *testing.T) {
		mStore := new(storeMocks.MockBlobStore)
		mStore.On("EnsureBucket", ctx).Return(nil)
		mStore.On("Put", ctx, mock.Anything, mock.Anything, mock.Anything).
			Return("http://localhost:9000/edusync-files/x", nil)

		svc := newTestUploadService(mStore)
		res, err := svc.Upload(ctx, strings.NewReader("x"), "x.bin", 1)

		assert.NoError(t, err)
		assert.Equal(t, int64(1), res.FileSize)
		mStore.AssertExpectations(t)
	})
}

func TestUploadService_Upload(t *testing.T) {
	ctx := context.Background()

	t.Run("happy path", func(t *testing.T) {
		mStore := new(storeMocks.MockBlobStore)
		r := strings.NewReader("twenty bytes exactly")

		mStore.On("EnsureBucket", ctx).Return(nil)
		mStore.On("Put", ctx, "20250517103000_note.txt", r, storage.PutOptions{
			Size:        20,
			ContentType: "text/plain",
			Metadata: map[string]string{
				"original-filename": "note.txt",
				"uploaded-at":       "2025-05-17T10:30:00Z",
				"file-size":         "20",
			},
		}).Return("http://localhost:9000/edusync-files/20250517103000_note.txt", nil)

		svc := newTestUploadService(mStore)
		res, err := svc.Upload(ctx, r, "note.txt", 20)

		require.NoError(t, err)
		assert.Equal(t, "note.txt", res.FileName)
		assert.Equal(t, "20250517103000_note.txt", res.StoredName)
		assert.Equal(t, int64(20), res.FileSize)
		assert.Equal(t, "text/plain", res.ContentType)
		assert.True(t, strings.HasSuffix(res.URL, "20250517103000_note.txt"))
		mStore.AssertExpectations(t)
	})

	t.Run("ensure bucket failure stops the pipeline", func(t *testing.T) {
		mStore := new(storeMocks.MockBlobStore)
		mStore.On("EnsureBucket", ctx).Return(storage.ErrUnavailable)

		svc := newTestUploadService(mStore)
		res, err := svc.Upload(ctx, strings.NewReader("hello"), "note.txt", 5)

		assert.ErrorIs(t, err, storage.ErrUnavailable)
		assert.Nil(t, res)
		mStore.AssertExpectations(t)
	})

	t.Run("store errors propagate unchanged", func(t *testing.T) {
		reqErr := &storage.RequestError{StatusCode: 403, Code: "AccessDenied"}

		mStore := new(storeMocks.MockBlobStore)
		mStore.On("EnsureBucket", ctx).Return(nil)
		mStore.On("Put", ctx, mock.Anything, mock.Anything, mock.Anything).Return("", reqErr)

		svc := newTestUploadService(mStore)
		_, err := svc.Upload(ctx, strings.NewReader("hello"), "note.txt", 5)

		var got *storage.RequestError
		require.ErrorAs(t, err, &got)
		assert.Equal(t, "AccessDenied", got.Code)
	})

	t.Run("verification failure surfaces as upload failure", func(t *testing.T) {
		mStore := new(storeMocks.MockBlobStore)
		mStore.On("EnsureBucket", ctx).Return(nil)
		mStore.On("Put", ctx, mock.Anything, mock.Anything, mock.Anything).
			Return("", storage.ErrVerification)

		svc := newTestUploadService(mStore)
		_, err := svc.Upload(ctx, strings.NewReader("hello"), "note.txt", 5)

		assert.ErrorIs(t, err, storage.ErrVerification)
	})
}

func TestStoredName(t *testing.T) {
	now := time.Date(2025, 5, 17, 10, 30, 0, 0, time.UTC)
	assert.Equal(t, "20250517103000_note.txt", storedName(now, "note.txt"))

	// Uploads in different seconds never collide; within one second they may.
	later := now.Add(time.Second)
	assert.NotEqual(t, storedName(now, "note.txt"), storedName(later, "note.txt"))
	assert.Equal(t, storedName(now, "note.txt"), storedName(now.Add(500*time.Millisecond), "note.txt"))
}

func TestUploadService_TestConnection(t *testing.T) {
	t.Run("full sequence succeeds", func(t *testing.T) {
		mStore := new(storeMocks.MockBlobStore)
		mStore.On("EnsureBucket", mock.Anything).Return(nil)
		mStore.On("Info", mock.Anything).Return(storage.BucketInfo{Exists: true}, nil)
		mStore.On("Put", mock.Anything, "test-connection-20250517103000.txt", mock.Anything, mock.Anything).
			Return("http://localhost:9000/edusync-files/test-connection-20250517103000.txt", nil)
		mStore.On("Exists", mock.Anything, "test-connection-20250517103000.txt").Return(true, nil)
		mStore.On("Delete", mock.Anything, "test-connection-20250517103000.txt").Return(nil)

		svc := newTestUploadService(mStore)
		assert.True(t, svc.TestConnection(context.Background()))
		mStore.AssertExpectations(t)
	})

	t.Run("failure degrades to false without erroring", func(t *testing.T) {
		mStore := new(storeMocks.MockBlobStore)
		mStore.On("EnsureBucket", mock.Anything).Return(errors.New("dial tcp: refused"))

		svc := newTestUploadService(mStore)
		assert.False(t, svc.TestConnection(context.Background()))
	})

	t.Run("probe cleanup failure does not fail the check", func(t *testing.T) {
		mStore := new(storeMocks.MockBlobStore)
		mStore.On("EnsureBucket", mock.Anything).Return(nil)
		mStore.On("Info", mock.Anything).Return(storage.BucketInfo{Exists: true}, nil)
		mStore.On("Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return("url", nil)
		mStore.On("Exists", mock.Anything, mock.Anything).Return(true, nil)
		mStore.On("Delete", mock.Anything, mock.Anything).Return(errors.New("delete failed"))

		svc := newTestUploadService(mStore)
		assert.True(t, svc.TestConnection(context.Background()))
	})
}

func TestUploadService_Diagnostics(t *testing.T) {
	t.Run("existing bucket with samples", func(t *testing.T) {
		mStore := new(storeMocks.MockBlobStore)
		mStore.On("Info", mock.Anything).
			Return(storage.BucketInfo{Exists: true, URL: "http://localhost:9000/edusync-files"}, nil)
		mStore.On("ListNames", mock.Anything, 10).
			Return([]string{"20250517103000_note.txt"}, nil)

		svc := newTestUploadService(mStore)
		report, err := svc.Diagnostics(context.Background())

		require.NoError(t, err)
		assert.True(t, report.EndpointConfigured)
		assert.True(t, report.BucketConfigured)
		assert.True(t, report.BucketExists)
		assert.Equal(t, "http://localhost:9000/edusync-files", report.BucketURL)
		assert.Equal(t, []string{"20250517103000_note.txt"}, report.SampleObjects)
	})

	t.Run("absent bucket skips listing", func(t *testing.T) {
		mStore := new(storeMocks.MockBlobStore)
		mStore.On("Info", mock.Anything).Return(storage.BucketInfo{Exists: false}, nil)

		svc := newTestUploadService(mStore)
		report, err := svc.Diagnostics(context.Background())

		require.NoError(t, err)
		assert.False(t, report.BucketExists)
		assert.Empty(t, report.SampleObjects)
		mStore.AssertExpectations(t)
	})
}

func TestUploadErrorType(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"empty payload", ErrEmptyFile, "EmptyPayload"},
		{"too large (wrapped)", errors.Join(ErrFileTooLarge), "PayloadTooLarge"},
		{"verification", storage.ErrVerification, "UploadVerificationFailed"},
		{"unavailable", storage.ErrUnavailable, "StoreUnavailable"},
		{"request failed", &storage.RequestError{StatusCode: 403, Code: "AccessDenied"}, "StoreRequestFailed"},
		{"anything else", errors.New("boom"), "Internal"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, UploadErrorType(tt.err))
		})
	}
}
