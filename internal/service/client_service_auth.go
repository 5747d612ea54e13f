package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/MKhiriev/go-task-keeper/internal/adapter"
	"github.com/MKhiriev/go-task-keeper/internal/logger"
	"github.com/MKhiriev/go-task-keeper/internal/store"
	"github.com/MKhiriev/go-task-keeper/models"
)

type clientAuthService struct {
	credentials store.LocalCredentialStore
	adapter     adapter.ServerAdapter

	// mu serialises credential changes so memory and storage stay in step.
	mu sync.Mutex

	logger *logger.Logger
}

func NewClientAuthService(credentials store.LocalCredentialStore, serverAdapter adapter.ServerAdapter, logger *logger.Logger) ClientAuthService {
	return &clientAuthService{credentials: credentials, adapter: serverAdapter, logger: logger}
}

func (a *clientAuthService) Register(ctx context.Context, req models.RegisterRequest) (models.User, error) {
	resp, err := a.adapter.Register(ctx, req)
	if err != nil {
		return models.User{}, mapAdapterError(err)
	}

	return resp.User, a.persist(ctx, resp.Token)
}

func (a *clientAuthService) Login(ctx context.Context, req models.LoginRequest) (models.User, error) {
	resp, err := a.adapter.Login(ctx, req)
	if err != nil {
		return models.User{}, mapAdapterError(err)
	}

	return resp.User, a.persist(ctx, resp.Token)
}

func (a *clientAuthService) Adopt(ctx context.Context, token string, persist bool) (models.User, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return models.User{}, ErrUnauthorized
	}

	a.adapter.SetToken(token)
	if persist {
		if err := a.persist(ctx, token); err != nil {
			return models.User{}, err
		}
	}

	user, err := a.adapter.Me(ctx)
	if err != nil {
		a.logger.Info().Err(err).Str("func", "clientAuthService.Adopt").Msg("credential rejected, clearing it")
		if clearErr := a.Logout(ctx); clearErr != nil {
			return models.User{}, errors.Join(mapAdapterError(err), clearErr)
		}
		return models.User{}, mapAdapterError(err)
	}

	return user, nil
}

func (a *clientAuthService) StoredToken(ctx context.Context) (string, error) {
	token, err := a.credentials.LoadToken(ctx)
	if errors.Is(err, store.ErrLocalCredentialNotFound) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("load stored token: %w", err)
	}
	return token, nil
}

func (a *clientAuthService) CurrentToken() string {
	return a.adapter.Token()
}

func (a *clientAuthService) Logout(ctx context.Context) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.adapter.SetToken("")
	if err := a.credentials.ClearToken(ctx); err != nil {
		return fmt.Errorf("clear stored token: %w", err)
	}
	return nil
}

func (a *clientAuthService) GoogleLoginURL() string {
	return a.adapter.GoogleLoginURL()
}

func (a *clientAuthService) persist(ctx context.Context, token string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.adapter.SetToken(token)
	if err := a.credentials.SaveToken(ctx, token); err != nil {
		return fmt.Errorf("save token: %w", err)
	}
	return nil
}
