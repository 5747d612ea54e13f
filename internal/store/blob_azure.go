package store

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/blob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/bloberror"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/sas"

	"github.com/MKhiriev/go-task-keeper/internal/config"
	"github.com/MKhiriev/go-task-keeper/internal/logger"
)

type azureBlobStore struct {
	client    *azblob.Client
	container string
	logger    *logger.Logger
}

// NewAzureBlobStore authenticates with the account's shared key, which is
// also what signs the SAS read URLs, and creates the container if missing.
func NewAzureBlobStore(ctx context.Context, cfg config.Blob, log *logger.Logger) (BlobStore, error) {
	cred, err := azblob.NewSharedKeyCredential(cfg.AccountName, cfg.AccountKey)
	if err != nil {
		return nil, fmt.Errorf("azure shared key: %w", err)
	}

	serviceURL := cfg.ServiceURL
	if serviceURL == "" {
		serviceURL = fmt.Sprintf("https://%s.blob.core.windows.net/", cfg.AccountName)
	}

	client, err := azblob.NewClientWithSharedKeyCredential(serviceURL, cred, nil)
	if err != nil {
		return nil, fmt.Errorf("azure client: %w", err)
	}

	_, err = client.CreateContainer(ctx, cfg.Container, nil)
	if err != nil && !bloberror.HasCode(err, bloberror.ContainerAlreadyExists) {
		log.Err(err).Str("func", "NewAzureBlobStore").Msg("error creating container")
		return nil, fmt.Errorf("azure create container: %w", err)
	}
	log.Info().Str("func", "NewAzureBlobStore").Str("container", cfg.Container).Msg("azure blob store ready")

	return &azureBlobStore{client: client, container: cfg.Container, logger: log}, nil
}

func (s *azureBlobStore) Upload(ctx context.Context, key string, body io.Reader, _ int64, contentType string) error {
	opts := &azblob.UploadStreamOptions{}
	if contentType != "" {
		opts.HTTPHeaders = &blob.HTTPHeaders{BlobContentType: to.Ptr(contentType)}
	}

	if _, err := s.client.UploadStream(ctx, s.container, key, body, opts); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*azureBlobStore.Upload").Msg("error uploading blob")
		return fmt.Errorf("azure upload: %w", err)
	}
	return nil
}

func (s *azureBlobStore) SignedURL(_ context.Context, key string, ttl time.Duration) (string, error) {
	blobClient := s.client.ServiceClient().NewContainerClient(s.container).NewBlobClient(key)

	u, err := blobClient.GetSASURL(sas.BlobPermissions{Read: true}, time.Now().UTC().Add(ttl), nil)
	if err != nil {
		return "", fmt.Errorf("azure sas: %w", err)
	}
	return u, nil
}

func (s *azureBlobStore) List(ctx context.Context, prefix string) ([]BlobInfo, error) {
	pager := s.client.NewListBlobsFlatPager(s.container, &azblob.ListBlobsFlatOptions{
		Prefix: to.Ptr(prefix),
	})

	blobs := make([]BlobInfo, 0)
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			logger.FromContext(ctx).Err(err).Str("func", "*azureBlobStore.List").Msg("error listing blobs")
			return nil, fmt.Errorf("azure list: %w", err)
		}
		for _, item := range page.Segment.BlobItems {
			if item.Name == nil {
				continue
			}
			info := BlobInfo{Key: *item.Name}
			if item.Properties != nil {
				if item.Properties.ContentLength != nil {
					info.Size = *item.Properties.ContentLength
				}
				info.LastModified = item.Properties.LastModified
			}
			blobs = append(blobs, info)
		}
	}

	return blobs, nil
}

func (s *azureBlobStore) Delete(ctx context.Context, key string) error {
	_, err := s.client.DeleteBlob(ctx, s.container, key, nil)
	if isAzureNotFound(err) {
		return ErrBlobNotFound
	}
	if err != nil {
		return fmt.Errorf("azure delete: %w", err)
	}
	return nil
}

func isAzureNotFound(err error) bool {
	if err == nil {
		return false
	}
	if bloberror.HasCode(err, bloberror.BlobNotFound) {
		return true
	}
	var respErr *azcore.ResponseError
	return errors.As(err, &respErr) && respErr.StatusCode == http.StatusNotFound
}
