package service

import (
	"github.com/MKhiriev/go-task-keeper/internal/config"
	"github.com/MKhiriev/go-task-keeper/internal/events"
	"github.com/MKhiriev/go-task-keeper/internal/logger"
	"github.com/MKhiriev/go-task-keeper/internal/oauth"
	"github.com/MKhiriev/go-task-keeper/internal/store"
	"github.com/MKhiriev/go-task-keeper/models"
)

type Services struct {
	AuthService    AuthService
	OAuthService   OAuthService
	TaskService    TaskService
	FileService    FileService
	AppInfoService AppInfoService
}

// NewServices wires the server services. provider is nil when Google
// sign-in is not configured.
func NewServices(
	storages *store.Storages,
	provider oauth.Provider,
	publisher events.Publisher,
	cfg *config.StructuredConfig,
	buildInfo models.AppBuildInfo,
	logger *logger.Logger,
) *Services {
	authService := NewAuthService(storages.UserRepository, publisher, cfg.App, logger)

	return &Services{
		AuthService:    authService,
		OAuthService:   NewOAuthService(provider, storages.UserRepository, storages.SessionStore, authService, publisher, cfg.App),
		TaskService:    NewTaskService(storages.TaskRepository, logger),
		FileService:    NewFileService(storages.BlobStore, cfg.Storage.Blob.URLTTL, logger),
		AppInfoService: NewAppInfoService(buildInfo, logger),
	}
}
