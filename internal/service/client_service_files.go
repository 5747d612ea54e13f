package service

import (
	"context"
	"fmt"
	"os"

	"github.com/MKhiriev/go-task-keeper/internal/adapter"
	"github.com/MKhiriev/go-task-keeper/models"
)

type clientFileService struct {
	adapter adapter.ServerAdapter
}

func NewClientFileService(serverAdapter adapter.ServerAdapter) ClientFileService {
	return &clientFileService{adapter: serverAdapter}
}

func (c *clientFileService) List(ctx context.Context) ([]models.StoredFile, error) {
	files, err := c.adapter.ListFiles(ctx)
	return files, mapAdapterError(err)
}

// Upload checks the local file before sending it so that obvious mistakes
// do not cost a round trip.
func (c *clientFileService) Upload(ctx context.Context, path string) (models.StoredFile, error) {
	info, err := os.Stat(path)
	if err != nil {
		return models.StoredFile{}, fmt.Errorf("%w: %w", ErrValidation, err)
	}
	if info.IsDir() {
		return models.StoredFile{}, fmt.Errorf("%w: %s is a directory", ErrValidation, path)
	}
	if info.Size() > MaxUploadSize {
		return models.StoredFile{}, fmt.Errorf("%w: file is larger than %d bytes", ErrValidation, MaxUploadSize)
	}

	file, err := c.adapter.UploadFile(ctx, path)
	return file, mapAdapterError(err)
}

func (c *clientFileService) Delete(ctx context.Context, name string) error {
	return mapAdapterError(c.adapter.DeleteFile(ctx, name))
}

type clientAppInfoService struct {
	adapter adapter.ServerAdapter
}

func NewClientAppInfoService(serverAdapter adapter.ServerAdapter) ClientAppInfoService {
	return &clientAppInfoService{adapter: serverAdapter}
}

func (c *clientAppInfoService) ServerBuildInfo(ctx context.Context) (models.BuildInfoResponse, error) {
	info, err := c.adapter.Version(ctx)
	return info, mapAdapterError(err)
}
