// Package storage holds uploaded product images in a MinIO bucket and hands
// back the public URLs stored on products.
package storage

import (
	"bytes"
	"context"
	"path"
	"strings"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"

	"github.com/snackforest/shop-service/internal/config"
	"github.com/snackforest/shop-service/internal/errs"
)

// ImageStore uploads and deletes product images.
type ImageStore struct {
	client *minio.Client
	bucket string
	// baseURL is prepended to object names when building the URL returned to
	// clients. Defaults to a path-style URL on the MinIO endpoint.
	baseURL string
	logger  *zap.Logger
}

func NewImageStore(cfg config.StorageConfig, logger *zap.Logger) (*ImageStore, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, errs.NewIOError("failed to create object storage client", err)
	}

	baseURL := cfg.PublicBaseURL
	if baseURL == "" {
		scheme := "http"
		if cfg.UseSSL {
			scheme = "https"
		}
		baseURL = scheme + "://" + cfg.Endpoint + "/" + cfg.Bucket
	}

	return &ImageStore{
		client:  client,
		bucket:  cfg.Bucket,
		baseURL: strings.TrimRight(baseURL, "/"),
		logger:  logger.With(zap.String("component", "image-store")),
	}, nil
}

// EnsureBucket creates the bucket when it does not exist yet. Called once at
// startup.
func (s *ImageStore) EnsureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return errs.NewIOError("failed to check bucket", err)
	}
	if exists {
		return nil
	}
	if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
		return errs.NewIOError("failed to create bucket", err)
	}
	return nil
}

// Upload stores an image and returns its public URL. The original filename
// only contributes its extension; the object name is a fresh UUID so uploads
// never collide or overwrite each other.
func (s *ImageStore) Upload(ctx context.Context, filename, contentType string, data []byte) (string, error) {
	if len(data) == 0 {
		return "", errs.NewValidationError("file", "empty upload")
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	objectName := uuid.NewString() + sanitizeExtension(filename)

	_, err := s.client.PutObject(ctx, s.bucket, objectName,
		bytes.NewReader(data), int64(len(data)),
		minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		s.logger.Error("failed to upload image", zap.String("object", objectName), zap.Error(err))
		return "", errs.NewIOError("failed to upload image", err)
	}

	s.logger.Info("image uploaded", zap.String("object", objectName), zap.Int("size", len(data)))
	return s.baseURL + "/" + objectName, nil
}

// Delete removes a stored image by object name. A missing object is reported
// as not found so the handler can answer 404.
func (s *ImageStore) Delete(ctx context.Context, objectName string) error {
	objectName = path.Base(objectName)
	if objectName == "" || objectName == "." || objectName == "/" {
		return errs.NewValidationError("filename", "filename is required")
	}

	// RemoveObject succeeds silently on missing keys, so probe first.
	if _, err := s.client.StatObject(ctx, s.bucket, objectName, minio.StatObjectOptions{}); err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return errs.NewNotFoundError("image")
		}
		return errs.NewIOError("failed to stat image", err)
	}

	if err := s.client.RemoveObject(ctx, s.bucket, objectName, minio.RemoveObjectOptions{}); err != nil {
		s.logger.Error("failed to delete image", zap.String("object", objectName), zap.Error(err))
		return errs.NewIOError("failed to delete image", err)
	}

	s.logger.Info("image deleted", zap.String("object", objectName))
	return nil
}

// sanitizeExtension keeps a short, safe filename extension and drops
// everything else from the client-supplied name.
func sanitizeExtension(filename string) string {
	ext := strings.ToLower(path.Ext(path.Base(filename)))
	if len(ext) < 2 || len(ext) > 10 {
		return ""
	}
	for _, r := range ext[1:] {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') {
			return ""
		}
	}
	return ext
}
