package client

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/MKhiriev/go-task-keeper/internal/logger"
	"github.com/MKhiriev/go-task-keeper/internal/service"
	"github.com/MKhiriev/go-task-keeper/internal/tui"
	"github.com/MKhiriev/go-task-keeper/internal/workers"
	"github.com/MKhiriev/go-task-keeper/models"
)

// ErrGoogleSignIn wraps the error code carried by a failed Google redirect.
var ErrGoogleSignIn = errors.New("google sign-in failed")

// UI is the interactive front end driven by [App].
type UI interface {
	Run(ctx context.Context, start tui.Start) error
}

type App struct {
	auth     service.ClientAuthService
	ui       UI
	listener *workers.CallbackListener

	mu sync.Mutex
	// redirectURL is the pasted redirect; it is consumed by the first
	// reconciliation and never applied again.
	redirectURL string

	logger *logger.Logger
}

// NewApp wires the client runtime. listener may be nil, in which case Google
// redirects are only accepted through redirectURL.
func NewApp(auth service.ClientAuthService, ui UI, listener *workers.CallbackListener, redirectURL string, logger *logger.Logger) *App {
	return &App{
		auth:        auth,
		ui:          ui,
		listener:    listener,
		redirectURL: redirectURL,
		logger:      logger,
	}
}

// Run reconciles the credential once, starts the callback worker and blocks
// in the UI until the user quits or ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	start := tui.Start{Reconcile: a.Reconcile}

	urlToken, errCode := ParseRedirect(a.consumeRedirect())
	if errCode != "" {
		start.RedirectError = errCode
		start.Err = fmt.Errorf("%w: %s", ErrGoogleSignIn, errCode)
	}

	user, err := a.Reconcile(ctx, urlToken)
	if err != nil {
		start.Err = errors.Join(start.Err, err)
	}
	start.User = user

	var wg sync.WaitGroup
	if a.listener != nil {
		start.Callbacks = a.listener.Callbacks()

		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := workers.NewWorkers(a.listener).Run(ctx); err != nil {
				a.logger.Err(err).Msg("callback worker stopped")
			}
		}()
	}

	err = a.ui.Run(ctx, start)
	cancel()
	wg.Wait()
	return err
}

// Reconcile merges urlToken with the in-memory and stored credentials and
// resolves the signed-in user. A nil user means the user must sign in.
// A rejected credential is cleared silently; other failures are returned.
func (a *App) Reconcile(ctx context.Context, urlToken string) (*models.User, error) {
	stored, err := a.auth.StoredToken(ctx)
	if err != nil {
		a.logger.Warn().Err(err).Msg("stored credential is unreadable")
		stored = ""
	}

	cred := MergeCredentials(urlToken, a.auth.CurrentToken(), stored)
	if cred.Token == "" {
		return nil, nil
	}

	a.logger.Debug().Str("source", cred.Source.String()).Msg("credential selected")

	user, err := a.auth.Adopt(ctx, cred.Token, cred.Source == SourceURL)
	if errors.Is(err, service.ErrUnauthorized) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &user, nil
}

func (a *App) consumeRedirect() string {
	a.mu.Lock()
	defer a.mu.Unlock()

	raw := a.redirectURL
	a.redirectURL = ""
	return raw
}
