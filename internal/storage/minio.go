package storage

import (
	"context"
	"fmt"
	"io"

	"poppes-store/internal/config"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/rs/zerolog"
)

// minioUploader implements Uploader against a MinIO (or any S3-compatible)
// endpoint.
type minioUploader struct {
	client *minio.Client
	cfg    config.StorageConfig
	logger zerolog.Logger
}

// NewMinioUploader connects to MinIO and ensures the image bucket exists.
func NewMinioUploader(ctx context.Context, cfg config.StorageConfig, logger zerolog.Logger) (Uploader, error) {
	logger = logger.With().Str("component", "image-storage").Logger()

	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		logger.Error().Err(err).Str("endpoint", cfg.Endpoint).Msg("failed to connect to MinIO")
		return nil, fmt.Errorf("failed to connect to MinIO: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket %s: %w", cfg.Bucket, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket %s: %w", cfg.Bucket, err)
		}
		logger.Info().Str("bucket", cfg.Bucket).Msg("image bucket created")
	}

	logger.Info().
		Str("endpoint", cfg.Endpoint).
		Str("bucket", cfg.Bucket).
		Msg("image storage initialised")

	return &minioUploader{
		client: client,
		cfg:    cfg,
		logger: logger,
	}, nil
}

// Upload writes the object and returns its public URL.
func (u *minioUploader) Upload(ctx context.Context, name string, r io.Reader, size int64, contentType string) (string, error) {
	_, err := u.client.PutObject(ctx, u.cfg.Bucket, name, r, size,
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		u.logger.Error().Err(err).Str("object", name).Msg("failed to upload image")
		return "", fmt.Errorf("failed to upload image %s: %w", name, err)
	}

	scheme := "http"
	if u.cfg.UseSSL {
		scheme = "https"
	}
	url := fmt.Sprintf("%s://%s/%s/%s", scheme, u.cfg.Endpoint, u.cfg.Bucket, name)

	u.logger.Debug().Str("object", name).Str("url", url).Msg("image uploaded")
	return url, nil
}
