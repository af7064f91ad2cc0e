package storage

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"bookshare-backend/internal/config"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// MinIOStorage holds uploaded cover images in a MinIO bucket.
type MinIOStorage struct {
	client     *minio.Client
	bucket     string
	publicBase string
}

func NewMinIOStorage(cfg config.MinIOConfig) (*MinIOStorage, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	ctx := context.Background()
	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket: %w", err)
	}

	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket: %w", err)
		}
	}

	scheme := "http"
	if cfg.UseSSL {
		scheme = "https"
	}

	return &MinIOStorage{
		client:     client,
		bucket:     cfg.Bucket,
		publicBase: fmt.Sprintf("%s://%s/%s/", scheme, client.EndpointURL().Host, cfg.Bucket),
	}, nil
}

// UploadCover stores an image payload under a fresh object key and returns
// its public URL together with the key.
func (s *MinIOStorage) UploadCover(ctx context.Context, data []byte, contentType string) (string, string, error) {
	key := fmt.Sprintf("covers/%s.%s", uuid.New().String(), extensionFor(contentType))

	_, err := s.client.PutObject(
		ctx,
		s.bucket,
		key,
		bytes.NewReader(data),
		int64(len(data)),
		minio.PutObjectOptions{ContentType: contentType},
	)
	if err != nil {
		return "", "", fmt.Errorf("failed to upload to minio: %w", err)
	}

	return s.publicBase + key, key, nil
}

// Remove deletes a single object by key.
func (s *MinIOStorage) Remove(ctx context.Context, key string) error {
	if err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("failed to delete object: %w", err)
	}
	return nil
}

// KeyFromURL reports whether rawURL points into this bucket and, if so,
// returns the object key. Pure string work, no round-trip.
func (s *MinIOStorage) KeyFromURL(rawURL string) (string, bool) {
	return ObjectKeyFromURL(s.publicBase, rawURL)
}

// ObjectKeyFromURL strips the public base prefix off rawURL to recover the
// object key stored alongside it.
func ObjectKeyFromURL(publicBase, rawURL string) (string, bool) {
	key, ok := strings.CutPrefix(rawURL, publicBase)
	if !ok || key == "" {
		return "", false
	}
	return key, true
}

func extensionFor(contentType string) string {
	switch contentType {
	case "image/png":
		return "png"
	case "image/webp":
		return "webp"
	case "image/gif":
		return "gif"
	default:
		return "jpg"
	}
}
