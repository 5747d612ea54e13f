package store

import (
	"context"
)

//go:generate mockgen -source=client_interfaces.go -destination=../mock/client_store_mock.go -package=mock

// LocalCredentialStore persists the client's bearer credential between runs.
type LocalCredentialStore interface {
	SaveToken(ctx context.Context, token string) error
	// LoadToken returns [ErrLocalCredentialNotFound] when nothing is saved.
	LoadToken(ctx context.Context) (string, error)
	ClearToken(ctx context.Context) error
}
