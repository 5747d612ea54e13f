// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package adapter provides transport-layer abstractions for communicating with
// the go-task-keeper server.
//
// The primary abstraction is [ServerAdapter], which decouples the client
// services from the underlying protocol. The package ships an HTTP/REST
// implementation ([NewHTTPServerAdapter]).
//
// Error values defined in errors.go are mapped from HTTP status codes by
// mapHTTPError so that callers can use [errors.Is] for transport-agnostic error
// handling (e.g. [ErrBadRequest] for 400, [ErrUnauthorized] for 401).
package adapter

import (
	"context"

	"github.com/MKhiriev/go-task-keeper/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/server_adapter_mock.go -package=mock

// ServerAdapter defines transport-agnostic communication with the
// go-task-keeper server. Implementations are responsible for serialisation,
// authentication header management, and mapping transport-level errors to
// the sentinel values defined in this package.
type ServerAdapter interface {
	// SetToken stores the bearer token that will be attached to all subsequent
	// authenticated requests.
	SetToken(token string)

	// Token returns the bearer token currently stored in the adapter, or an
	// empty string if no token has been set yet.
	Token() string

	// Register creates a local account. On success the returned token is
	// stored via SetToken.
	Register(ctx context.Context, req models.RegisterRequest) (models.AuthResponse, error)

	// Login signs in with e-mail and password. On success the returned token
	// is stored via SetToken.
	Login(ctx context.Context, req models.LoginRequest) (models.AuthResponse, error)

	// Me returns the user behind the stored token.
	Me(ctx context.Context) (models.User, error)

	ListTasks(ctx context.Context) ([]models.Task, error)
	CreateTask(ctx context.Context, title string) (models.Task, error)
	UpdateTask(ctx context.Context, taskID int64, req models.UpdateTaskRequest) (models.Task, error)
	DeleteTask(ctx context.Context, taskID int64) error

	ListFiles(ctx context.Context) ([]models.StoredFile, error)
	// UploadFile sends the local file at path as multipart field "file".
	UploadFile(ctx context.Context, path string) (models.StoredFile, error)
	DeleteFile(ctx context.Context, name string) error

	// GoogleLoginURL is the server URL that starts the Google sign-in.
	GoogleLoginURL() string

	// Version returns the server build information.
	Version(ctx context.Context) (models.BuildInfoResponse, error)
}
