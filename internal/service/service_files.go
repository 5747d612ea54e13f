package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/MKhiriev/go-task-keeper/internal/logger"
	"github.com/MKhiriev/go-task-keeper/internal/store"
	"github.com/MKhiriev/go-task-keeper/models"
)

// MaxUploadSize is the largest accepted upload in bytes.
const MaxUploadSize int64 = 10 << 20

type fileService struct {
	blobs  store.BlobStore
	urlTTL time.Duration
	logger *logger.Logger
}

func NewFileService(blobs store.BlobStore, urlTTL time.Duration, logger *logger.Logger) FileService {
	return &fileService{blobs: blobs, urlTTL: urlTTL, logger: logger}
}

// Upload stores body under the user's namespace, replacing a file of the
// same name, and returns a signed read URL.
func (s *fileService) Upload(ctx context.Context, userID int64, name string, body io.Reader, size int64, contentType string) (models.StoredFile, error) {
	name, err := sanitizeName(name)
	if err != nil {
		return models.StoredFile{}, err
	}
	if size > MaxUploadSize {
		return models.StoredFile{}, fmt.Errorf("%w: file is larger than %d bytes", ErrValidation, MaxUploadSize)
	}

	key := store.UserBlobKey(userID, name)
	if err = s.blobs.Upload(ctx, key, body, size, contentType); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*fileService.Upload").Msg("upload failed")
		return models.StoredFile{}, err
	}

	url, err := s.blobs.SignedURL(ctx, key, s.urlTTL)
	if err != nil {
		return models.StoredFile{}, err
	}

	now := time.Now().UTC()
	return models.StoredFile{Name: name, URL: url, Size: size, UploadedAt: &now}, nil
}

func (s *fileService) List(ctx context.Context, userID int64) ([]models.StoredFile, error) {
	prefix := store.UserBlobPrefix(userID)

	blobs, err := s.blobs.List(ctx, prefix)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*fileService.List").Send()
		return nil, err
	}

	files := make([]models.StoredFile, 0, len(blobs))
	for _, blob := range blobs {
		url, err := s.blobs.SignedURL(ctx, blob.Key, s.urlTTL)
		if err != nil {
			return nil, err
		}
		files = append(files, models.StoredFile{
			Name:       strings.TrimPrefix(blob.Key, prefix),
			URL:        url,
			Size:       blob.Size,
			UploadedAt: blob.LastModified,
		})
	}

	return files, nil
}

func (s *fileService) Delete(ctx context.Context, userID int64, name string) error {
	name, err := sanitizeName(name)
	if err != nil {
		return err
	}

	err = s.blobs.Delete(ctx, store.UserBlobKey(userID, name))
	if errors.Is(err, store.ErrBlobNotFound) {
		return ErrNotFound
	}
	return err
}

func sanitizeName(name string) (string, error) {
	clean, err := store.SanitizeBlobName(name)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrValidation, err)
	}
	return clean, nil
}
