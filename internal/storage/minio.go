package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"edusync/internal/config"
)

// minioStore implements BlobStore against any S3-compatible backend
// (MinIO, AWS S3, etc.). It is safe for concurrent use by multiple goroutines.
type minioStore struct {
	client     *minio.Client
	bucket     string
	publicBase string
}

// NewMinIO creates the object-store gateway. It fails with ErrMisconfigured if
// the endpoint, credentials, or bucket name are missing; the bucket itself is
// created lazily by EnsureBucket before the first write.
func NewMinIO(cfg config.MinIOConfig) (BlobStore, error) {
	if cfg.Endpoint == "" {
		return nil, fmt.Errorf("%w: endpoint is required", ErrMisconfigured)
	}
	if cfg.AccessKey == "" || cfg.SecretKey == "" {
		return nil, fmt.Errorf("%w: credentials are required", ErrMisconfigured)
	}
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("%w: bucket is required", ErrMisconfigured)
	}

	cli, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
		// Outbound store calls carry trace spans like the inbound HTTP and SQL layers
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMisconfigured, err)
	}

	base := strings.TrimRight(cfg.PublicBase, "/")
	if base == "" {
		scheme := "http"
		if cfg.UseSSL {
			scheme = "https"
		}
		base = scheme + "://" + cfg.Endpoint
	}

	return &minioStore{client: cli, bucket: cfg.Bucket, publicBase: base}, nil
}

// EnsureBucket creates the bucket with an anonymous-read policy if it does not
// exist. Concurrent calls race harmlessly: an already-exists rejection from the
// provider is treated as success.
func (m *minioStore) EnsureBucket(ctx context.Context) error {
	exists, err := m.client.BucketExists(ctx, m.bucket)
	if err != nil {
		return classify(err)
	}
	if !exists {
		if err := m.client.MakeBucket(ctx, m.bucket, minio.MakeBucketOptions{}); err != nil {
			resp := minio.ToErrorResponse(err)
			if resp.Code != "BucketAlreadyOwnedByYou" && resp.Code != "BucketAlreadyExists" {
				return classify(err)
			}
		}
		if err := m.client.SetBucketPolicy(ctx, m.bucket, publicReadPolicy(m.bucket)); err != nil {
			return classify(err)
		}
	}
	return nil
}

// Put streams the object into the bucket, then verifies it is actually there.
// The re-check guards against silent provider-side truncation: an acknowledged
// write whose object cannot be seen afterwards fails with ErrVerification.
func (m *minioStore) Put(ctx context.Context, key string, r io.Reader, opt PutOptions) (string, error) {
	_, err := m.client.PutObject(ctx, m.bucket, key, r, opt.Size, minio.PutObjectOptions{
		ContentType:  opt.ContentType,
		UserMetadata: opt.Metadata,
	})
	if err != nil {
		return "", classify(err)
	}

	exists, err := m.Exists(ctx, key)
	if err != nil {
		return "", err
	}
	if !exists {
		return "", fmt.Errorf("put %q: %w", key, ErrVerification)
	}
	return m.PublicURL(key), nil
}

// Exists reports object presence via a metadata stat, without reading content.
func (m *minioStore) Exists(ctx context.Context, key string) (bool, error) {
	_, err := m.client.StatObject(ctx, m.bucket, key, minio.StatObjectOptions{})
	if err != nil {
		resp := minio.ToErrorResponse(err)
		if resp.Code == "NoSuchKey" || resp.StatusCode == 404 {
			return false, nil
		}
		return false, classify(err)
	}
	return true, nil
}

// Delete removes an object by key.
func (m *minioStore) Delete(ctx context.Context, key string) error {
	if err := m.client.RemoveObject(ctx, m.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return classify(err)
	}
	return nil
}

// ListNames returns up to limit object names currently stored.
func (m *minioStore) ListNames(ctx context.Context, limit int) ([]string, error) {
	names := make([]string, 0, limit)
	for obj := range m.client.ListObjects(ctx, m.bucket, minio.ListObjectsOptions{}) {
		if obj.Err != nil {
			return nil, classify(obj.Err)
		}
		names = append(names, obj.Key)
		if len(names) >= limit {
			break
		}
	}
	return names, nil
}

// Info reports bucket existence and its public address.
func (m *minioStore) Info(ctx context.Context) (BucketInfo, error) {
	exists, err := m.client.BucketExists(ctx, m.bucket)
	if err != nil {
		return BucketInfo{}, classify(err)
	}
	return BucketInfo{Exists: exists, URL: m.publicBase + "/" + m.bucket}, nil
}

// PublicURL returns the anonymous-read URL for the given key.
func (m *minioStore) PublicURL(key string) string {
	return m.publicBase + "/" + m.bucket + "/" + key
}

// classify splits remote failures into rejections the store itself reported
// (RequestError) and transport-level faults (ErrUnavailable).
func classify(err error) error {
	if err == nil {
		return nil
	}
	resp := minio.ToErrorResponse(err)
	if resp.Code != "" || resp.StatusCode != 0 {
		return &RequestError{StatusCode: resp.StatusCode, Code: resp.Code, Message: resp.Message}
	}
	return fmt.Errorf("%w: %v", ErrUnavailable, err)
}

// publicReadPolicy returns an S3 bucket policy JSON allowing anonymous GET on all objects.
func publicReadPolicy(bucket string) string {
	policy := map[string]any{
		"Version": "2012-10-17",
		"Statement": []map[string]any{
			{
				"Effect":    "Allow",
				"Principal": "*",
				"Action":    "s3:GetObject",
				"Resource":  fmt.Sprintf("arn:aws:s3:::%s/*", bucket),
			},
		},
	}
	b, _ := json.Marshal(policy)
	return string(b)
}
