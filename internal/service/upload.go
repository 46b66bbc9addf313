package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"edusync/internal/config"
	"edusync/internal/storage"
)

var (
	// ErrEmptyFile rejects absent or zero-length payloads before any remote call.
	ErrEmptyFile = errors.New("no file uploaded or file is empty")
	// ErrFileTooLarge rejects payloads above the configured ceiling before any remote call.
	ErrFileTooLarge = errors.New("file size exceeds maximum limit")
)

// UploadResult echoes back what was stored and where to retrieve it.
type UploadResult struct {
	URL         string `json:"url"`
	FileName    string `json:"fileName"`
	StoredName  string `json:"storedName"`
	FileSize    int64  `json:"fileSize"`
	ContentType string `json:"contentType"`
}

// DiagnosticsReport is the read-only operational snapshot of the upload
// subsystem, for troubleshooting rather than normal request handling.
type DiagnosticsReport struct {
	EndpointConfigured bool     `json:"endpointConfigured"`
	BucketConfigured   bool     `json:"bucketConfigured"`
	BucketName         string   `json:"bucketName"`
	BucketExists       bool     `json:"bucketExists"`
	BucketURL          string   `json:"bucketUrl"`
	SampleObjects      []string `json:"sampleObjects"`
}

// UploadService is the upload pipeline over the blob-store gateway. One pass,
// no retries, terminal on first failure.
type UploadService interface {
	// Upload validates the stream, derives a timestamp-prefixed object name,
	// ensures the bucket, and forwards the stream with metadata. Failures at
	// the remote are returned as classified by the storage package.
	Upload(ctx context.Context, r io.Reader, filename string, size int64) (*UploadResult, error)

	// TestConnection runs a self-check (ensure bucket, read properties, write a
	// throwaway object, verify, delete). Never returns an error outward; all
	// failures degrade to false with the cause logged.
	TestConnection(ctx context.Context) bool

	// Diagnostics reports configuration presence, bucket existence, the bucket
	// address, and up to 10 sample object names.
	Diagnostics(ctx context.Context) (*DiagnosticsReport, error)
}

type uploadService struct {
	store   storage.BlobStore
	cfg     config.MinIOConfig
	maxSize int64
	now     func() time.Time
}

// NewUploadService constructs the upload pipeline. maxSize <= 0 falls back to
// the default 100 MiB ceiling.
func NewUploadService(store storage.BlobStore, cfg config.MinIOConfig, maxSize int64) UploadService {
	if maxSize <= 0 {
		maxSize = config.DefaultMaxUploadSize
	}
	return &uploadService{store: store, cfg: cfg, maxSize: maxSize, now: time.Now}
}

// storedName derives the object name from the display name. The UTC timestamp
// prefix keeps unrelated uploads sharing a display name from overwriting each
// other; two uploads of the same name within the same second still collide.
// That one-second window is part of the published URL contract and is accepted.
func storedName(now time.Time, filename string) string {
	return now.UTC().Format("20060102150405") + "_" + filename
}

func (s *uploadService) Upload(ctx context.Context, r io.Reader, filename string, size int64) (*UploadResult, error) {
	if r == nil || size == 0 {
		return nil, ErrEmptyFile
	}
	if size > s.maxSize {
		return nil, fmt.Errorf("%w: %d bytes (max %d)", ErrFileTooLarge, size, s.maxSize)
	}

	now := s.now().UTC()
	name := storedName(now, filename)
	contentType := ContentTypeFor(filename)

	trace.SpanFromContext(ctx).SetAttributes(
		attribute.String("upload.object_name", name),
		attribute.Int64("upload.size_bytes", size),
	)

	if err := s.store.EnsureBucket(ctx); err != nil {
		return nil, fmt.Errorf("ensure bucket: %w", err)
	}

	url, err := s.store.Put(ctx, name, r, storage.PutOptions{
		Size:        size,
		ContentType: contentType,
		Metadata: map[string]string{
			"original-filename": filename,
			"uploaded-at":       now.Format(time.RFC3339),
			"file-size":         strconv.FormatInt(size, 10),
		},
	})
	if err != nil {
		return nil, err
	}

	return &UploadResult{
		URL:         url,
		FileName:    filename,
		StoredName:  name,
		FileSize:    size,
		ContentType: contentType,
	}, nil
}

func (s *uploadService) TestConnection(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()

	fail := func(step string, err error) bool {
		log.Printf("storage connection test failed at %s: %v", step, err)
		return false
	}

	if err := s.store.EnsureBucket(ctx); err != nil {
		return fail("ensure bucket", err)
	}
	if _, err := s.store.Info(ctx); err != nil {
		return fail("bucket properties", err)
	}

	probe := fmt.Sprintf("test-connection-%s.txt", s.now().UTC().Format("20060102150405"))
	content := "Connection test successful"
	if _, err := s.store.Put(ctx, probe, strings.NewReader(content), storage.PutOptions{
		Size:        int64(len(content)),
		ContentType: "text/plain",
	}); err != nil {
		return fail("probe upload", err)
	}

	exists, err := s.store.Exists(ctx, probe)
	if err != nil {
		return fail("probe existence", err)
	}
	if err := s.store.Delete(ctx, probe); err != nil {
		log.Printf("storage connection test: probe cleanup failed: %v", err)
	}
	return exists
}

func (s *uploadService) Diagnostics(ctx context.Context) (*DiagnosticsReport, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	report := &DiagnosticsReport{
		EndpointConfigured: s.cfg.Endpoint != "",
		BucketConfigured:   s.cfg.Bucket != "",
		BucketName:         s.cfg.Bucket,
	}

	info, err := s.store.Info(ctx)
	if err != nil {
		return nil, fmt.Errorf("bucket info: %w", err)
	}
	report.BucketExists = info.Exists
	report.BucketURL = info.URL

	if info.Exists {
		names, err := s.store.ListNames(ctx, 10)
		if err != nil {
			return nil, fmt.Errorf("list objects: %w", err)
		}
		report.SampleObjects = names
	}
	return report, nil
}

// UploadErrorType names the failure category for client payloads.
func UploadErrorType(err error) string {
	var re *storage.RequestError
	switch {
	case errors.Is(err, ErrEmptyFile):
		return "EmptyPayload"
	case errors.Is(err, ErrFileTooLarge):
		return "PayloadTooLarge"
	case errors.Is(err, storage.ErrVerification):
		return "UploadVerificationFailed"
	case errors.Is(err, storage.ErrUnavailable):
		return "StoreUnavailable"
	case errors.As(err, &re):
		return "StoreRequestFailed"
	default:
		return "Internal"
	}
}
