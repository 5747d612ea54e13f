package service

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/MKhiriev/go-task-keeper/internal/adapter"
	"github.com/MKhiriev/go-task-keeper/internal/mock"
	"github.com/MKhiriev/go-task-keeper/internal/validators"
	"github.com/MKhiriev/go-task-keeper/models"
)

func TestClientTaskService_RenameAndToggle(t *testing.T) {
	srv := mock.NewMockServerAdapter(gomock.NewController(t))
	svc := NewClientTaskService(srv)
	ctx := context.Background()

	srv.EXPECT().UpdateTask(ctx, int64(4), gomock.Any()).DoAndReturn(
		func(_ context.Context, _ int64, req models.UpdateTaskRequest) (models.Task, error) {
			require.NotNil(t, req.Title)
			assert.Nil(t, req.Completed)
			return models.Task{ID: 4, Title: *req.Title}, nil
		})
	srv.EXPECT().UpdateTask(ctx, int64(4), gomock.Any()).DoAndReturn(
		func(_ context.Context, _ int64, req models.UpdateTaskRequest) (models.Task, error) {
			assert.Nil(t, req.Title)
			require.NotNil(t, req.Completed)
			return models.Task{ID: 4, Title: "renamed", Completed: *req.Completed}, nil
		})

	task, err := svc.Rename(ctx, 4, "renamed")
	require.NoError(t, err)
	assert.Equal(t, "renamed", task.Title)

	task, err = svc.SetCompleted(ctx, 4, true)
	require.NoError(t, err)
	assert.True(t, task.Completed)
}

func TestClientTaskService_EmptyTitleNeverLeaves(t *testing.T) {
	srv := mock.NewMockServerAdapter(gomock.NewController(t))
	svc := NewClientTaskService(srv)

	_, err := svc.Create(context.Background(), "  ")
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Rename(context.Background(), 4, "")
	assert.ErrorIs(t, err, ErrValidation)
	assert.ErrorIs(t, err, validators.ErrEmptyTitle)

	_, err = svc.Create(context.Background(), strings.Repeat("a", MaxTitleLength+1))
	assert.ErrorIs(t, err, ErrValidation)
	assert.ErrorIs(t, err, validators.ErrTitleTooLong)
}

func TestClientTaskService_DeleteMissing(t *testing.T) {
	srv := mock.NewMockServerAdapter(gomock.NewController(t))
	svc := NewClientTaskService(srv)

	srv.EXPECT().DeleteTask(gomock.Any(), int64(9)).Return(fmt.Errorf("%w: not found", adapter.ErrNotFound))

	assert.ErrorIs(t, svc.Delete(context.Background(), 9), ErrNotFound)
}

func TestClientFileService_Upload(t *testing.T) {
	srv := mock.NewMockServerAdapter(gomock.NewController(t))
	svc := NewClientFileService(srv)
	ctx := context.Background()

	dir := t.TempDir()
	path := filepath.Join(dir, "a.txt")
	require.NoError(t, os.WriteFile(path, []byte("hi"), 0o600))

	srv.EXPECT().UploadFile(ctx, path).Return(models.StoredFile{Name: "a.txt", URL: "u"}, nil)

	file, err := svc.Upload(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, "a.txt", file.Name)

	_, err = svc.Upload(ctx, dir)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Upload(ctx, filepath.Join(dir, "missing"))
	assert.ErrorIs(t, err, ErrValidation)
}
