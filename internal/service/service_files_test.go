package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-task-keeper/internal/logger"
	"github.com/MKhiriev/go-task-keeper/internal/mock"
	"github.com/MKhiriev/go-task-keeper/internal/store"
)

const testURLTTL = time.Hour

func newTestFileService(t *testing.T) (FileService, *mock.MockBlobStore) {
	t.Helper()
	blobs := mock.NewMockBlobStore(gomock.NewController(t))
	return NewFileService(blobs, testURLTTL, logger.Nop()), blobs
}

func TestFileService_Upload(t *testing.T) {
	svc, blobs := newTestFileService(t)
	ctx := context.Background()
	body := strings.NewReader("hello")

	blobs.EXPECT().Upload(ctx, "users/3/notes.txt", body, int64(5), "text/plain").Return(nil)
	blobs.EXPECT().SignedURL(ctx, "users/3/notes.txt", testURLTTL).Return("https://blob/users/3/notes.txt?sig", nil)

	file, err := svc.Upload(ctx, 3, "../../notes.txt", body, 5, "text/plain")
	require.NoError(t, err)
	assert.Equal(t, "notes.txt", file.Name)
	assert.Equal(t, "https://blob/users/3/notes.txt?sig", file.URL)
	assert.NotNil(t, file.UploadedAt)
}

func TestFileService_Upload_Validation(t *testing.T) {
	svc, _ := newTestFileService(t)

	_, err := svc.Upload(context.Background(), 3, "..", strings.NewReader(""), 0, "")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Upload(context.Background(), 3, "big.bin", strings.NewReader(""), MaxUploadSize+1, "")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestFileService_List_StripsPrefix(t *testing.T) {
	svc, blobs := newTestFileService(t)
	ctx := context.Background()
	modified := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	blobs.EXPECT().List(ctx, "users/3/").Return([]store.BlobInfo{
		{Key: "users/3/a.txt", Size: 1, LastModified: &modified},
		{Key: "users/3/b.txt", Size: 2},
	}, nil)
	blobs.EXPECT().SignedURL(ctx, "users/3/a.txt", testURLTTL).Return("url-a", nil)
	blobs.EXPECT().SignedURL(ctx, "users/3/b.txt", testURLTTL).Return("url-b", nil)

	files, err := svc.List(ctx, 3)
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, "a.txt", files[0].Name)
	assert.Equal(t, "url-a", files[0].URL)
	assert.Equal(t, &modified, files[0].UploadedAt)
	assert.Equal(t, "b.txt", files[1].Name)
}

func TestFileService_List_Empty(t *testing.T) {
	svc, blobs := newTestFileService(t)

	blobs.EXPECT().List(gomock.Any(), "users/3/").Return(nil, nil)

	files, err := svc.List(context.Background(), 3)
	require.NoError(t, err)
	assert.NotNil(t, files)
	assert.Empty(t, files)
}

func TestFileService_Delete(t *testing.T) {
	svc, blobs := newTestFileService(t)
	ctx := context.Background()

	blobs.EXPECT().Delete(ctx, "users/3/a.txt").Return(nil)
	blobs.EXPECT().Delete(ctx, "users/3/missing.txt").Return(store.ErrBlobNotFound)

	require.NoError(t, svc.Delete(ctx, 3, "a.txt"))
	assert.ErrorIs(t, svc.Delete(ctx, 3, "missing.txt"), ErrNotFound)
}
