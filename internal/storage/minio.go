// Package storage provides object storage for uploaded media.
package storage

import (
	"bytes"
	"context"
	"fmt"
	"path"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// Uploader stores a binary buffer and returns a durable public URL.
type Uploader interface {
	Upload(ctx context.Context, data []byte, contentType, filename string) (string, error)
}

// MinioUploader implements Uploader against an S3-compatible endpoint.
type MinioUploader struct {
	client  *minio.Client
	bucket  string
	baseURL string
}

type MinioConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
	// BaseURL is the public prefix returned to clients, e.g. a CDN host.
	// Empty means the endpoint itself is public.
	BaseURL string
}

func NewMinioUploader(ctx context.Context, cfg MinioConfig) (*MinioUploader, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("create minio client: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("create bucket: %w", err)
		}
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		scheme := "http"
		if cfg.UseSSL {
			scheme = "https"
		}
		baseURL = fmt.Sprintf("%s://%s", scheme, cfg.Endpoint)
	}

	return &MinioUploader{client: client, bucket: cfg.Bucket, baseURL: baseURL}, nil
}

func (u *MinioUploader) Upload(ctx context.Context, data []byte, contentType, filename string) (string, error) {
	objectName := uuid.New().String() + path.Ext(filename)

	_, err := u.client.PutObject(ctx, u.bucket, objectName, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("upload object: %w", err)
	}

	return fmt.Sprintf("%s/%s/%s", u.baseURL, u.bucket, objectName), nil
}
