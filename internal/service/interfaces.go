package service

import (
	"context"
	"io"

	"github.com/MKhiriev/go-task-keeper/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/service_mock.go -package=mock

// AuthService covers local accounts and bearer credentials.
type AuthService interface {
	Register(ctx context.Context, req models.RegisterRequest) (models.User, models.Token, error)
	Login(ctx context.Context, req models.LoginRequest) (models.User, models.Token, error)
	IssueCredential(ctx context.Context, user models.User) (models.Token, error)
	ParseCredential(ctx context.Context, token string) (models.Identity, error)
	Me(ctx context.Context, userID int64) (models.User, error)
}

// OAuthService drives the Google sign-in handshake and its sessions.
type OAuthService interface {
	Enabled() bool
	// BeginLogin creates a pending session and returns the consent URL.
	BeginLogin(ctx context.Context) (authURL string, session models.Session, err error)
	// CompleteLogin checks state against the pending session, signs the user
	// in and binds the session to them.
	CompleteLogin(ctx context.Context, sessionID, state, code string) (models.User, models.Token, error)
	CompleteThirdPartyLogin(ctx context.Context, profile models.ProviderProfile) (models.User, error)
	Logout(ctx context.Context, sessionID string) error
}

// TaskService manages a user's tasks. Every method is scoped by userID.
type TaskService interface {
	List(ctx context.Context, userID int64) ([]models.Task, error)
	Get(ctx context.Context, userID, taskID int64) (models.Task, error)
	Create(ctx context.Context, userID int64, title string) (models.Task, error)
	Update(ctx context.Context, update models.TaskUpdate) (models.Task, error)
	Delete(ctx context.Context, userID, taskID int64) error
}

// FileService manages a user's uploaded files.
type FileService interface {
	Upload(ctx context.Context, userID int64, name string, body io.Reader, size int64, contentType string) (models.StoredFile, error)
	List(ctx context.Context, userID int64) ([]models.StoredFile, error)
	Delete(ctx context.Context, userID int64, name string) error
}

// AppInfoService exposes build metadata.
type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
	GetBuildInfo(ctx context.Context) models.BuildInfoResponse
}
