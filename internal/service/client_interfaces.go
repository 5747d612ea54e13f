package service

import (
	"context"

	"github.com/MKhiriev/go-task-keeper/models"
)

//go:generate mockgen -source=client_interfaces.go -destination=../mock/client_service_mock.go -package=mock

// ClientAuthService defines the client-side contract for signing in and for
// keeping the single active credential in memory and in local storage.
type ClientAuthService interface {
	// Register creates a local account on the server. On success the issued
	// token becomes the active credential and is persisted.
	// Returns ErrDuplicateEmail or ErrValidation for rejected input.
	Register(ctx context.Context, req models.RegisterRequest) (models.User, error)

	// Login signs in with e-mail and password. On success the issued token
	// becomes the active credential and is persisted.
	// Returns ErrInvalidCredentials when the server rejects the pair.
	Login(ctx context.Context, req models.LoginRequest) (models.User, error)

	// Adopt makes token the active credential and resolves its user via
	// /auth/me. When persist is true the token replaces the stored one.
	// On any failure (network or 401) the credential is cleared from memory
	// and storage and the error is returned.
	Adopt(ctx context.Context, token string, persist bool) (models.User, error)

	// StoredToken returns the persisted token, or "" when none is saved.
	StoredToken(ctx context.Context) (string, error)

	// CurrentToken returns the in-memory token, or "".
	CurrentToken() string

	// Logout forgets the credential in memory and storage.
	Logout(ctx context.Context) error

	// GoogleLoginURL returns the server URL that starts Google sign-in.
	GoogleLoginURL() string
}

// ClientTaskService wraps the task endpoints. Every call is independent; the
// returned value is the server's view after the change.
type ClientTaskService interface {
	List(ctx context.Context) ([]models.Task, error)
	Create(ctx context.Context, title string) (models.Task, error)
	Rename(ctx context.Context, taskID int64, title string) (models.Task, error)
	SetCompleted(ctx context.Context, taskID int64, completed bool) (models.Task, error)
	Delete(ctx context.Context, taskID int64) error
}

// ClientFileService wraps the blob endpoints.
type ClientFileService interface {
	List(ctx context.Context) ([]models.StoredFile, error)
	Upload(ctx context.Context, path string) (models.StoredFile, error)
	Delete(ctx context.Context, name string) error
}

// ClientAppInfoService reports the server build.
type ClientAppInfoService interface {
	ServerBuildInfo(ctx context.Context) (models.BuildInfoResponse, error)
}
