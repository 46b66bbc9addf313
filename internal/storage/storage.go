package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
)

// Package storage contains the object-store gateway for the upload subsystem.
// Implementations must avoid using local disk and rely on streaming I/O only.

var (
	// ErrMisconfigured is returned at construction when the endpoint,
	// credentials, or bucket name are absent. Startup-fatal: the service must
	// not serve upload traffic without a valid store configuration.
	ErrMisconfigured = errors.New("object store misconfigured")

	// ErrUnavailable marks transport-level failures (timeout, DNS, connection
	// reset). These are potentially transient; callers may retry with backoff.
	ErrUnavailable = errors.New("object store unavailable")

	// ErrVerification is returned when a write was acknowledged by the store
	// but the follow-up existence check could not see the object. The upload
	// is treated as failed despite the acknowledgement.
	ErrVerification = errors.New("object missing after acknowledged write")
)

// RequestError is a rejection reported by the store itself (auth, quota,
// not-found). Typically a configuration or permissions problem, not retried.
type RequestError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("store request failed: %s (status %d): %s", e.Code, e.StatusCode, e.Message)
}

// PutOptions define parameters for uploading objects. Size must be the exact
// number of bytes. ContentType and Metadata are attached to the stored object.
type PutOptions struct {
	Size        int64
	ContentType string
	Metadata    map[string]string
}

// BucketInfo is a read-only snapshot of the configured bucket, used by the
// diagnostics endpoint.
type BucketInfo struct {
	Exists bool
	URL    string
}

// BlobStore is the gateway to the remote object-storage service for one
// configured bucket. It is an injected capability so the upload pipeline can be
// exercised against a fake with no network dependency.
type BlobStore interface {
	// EnsureBucket creates the bucket with public-read access if it does not
	// exist. Idempotent; safe to call before every write.
	EnsureBucket(ctx context.Context) error

	// Put uploads the stream under key, overwriting any existing object, then
	// re-checks existence before declaring success. Returns the object's public
	// retrieval URL, or ErrVerification when the re-check fails.
	Put(ctx context.Context, key string, r io.Reader, opt PutOptions) (string, error)

	// Exists reports whether an object is present under key.
	Exists(ctx context.Context, key string) (bool, error)

	// Delete removes an object by key.
	Delete(ctx context.Context, key string) error

	// ListNames returns up to limit object names currently stored.
	ListNames(ctx context.Context, limit int) ([]string, error)

	// Info reports bucket existence and its public address.
	Info(ctx context.Context) (BucketInfo, error)

	// PublicURL returns the browser-accessible URL for the given key.
	PublicURL(key string) string
}
