// Package tui is the terminal front end of the go-task-keeper client, built
// on Bubble Tea.
package tui

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/go-task-keeper/internal/logger"
	"github.com/MKhiriev/go-task-keeper/internal/service"
	"github.com/MKhiriev/go-task-keeper/internal/workers"
	"github.com/MKhiriev/go-task-keeper/models"
)

// ReconcileFunc merges a token received by redirect with the known
// credentials and resolves the user. A nil user means signed out.
type ReconcileFunc func(ctx context.Context, urlToken string) (*models.User, error)

// Start is the state the UI opens with.
type Start struct {
	User *models.User
	Err  error
	// RedirectError is the error code of a failed Google redirect, if any.
	RedirectError string
	Callbacks     <-chan workers.Callback
	Reconcile     ReconcileFunc
}

type TUI struct {
	services  *service.ClientServices
	buildInfo models.AppBuildInfo
	logger    *logger.Logger
}

func New(services *service.ClientServices, buildInfo models.AppBuildInfo, logger *logger.Logger) *TUI {
	return &TUI{services: services, buildInfo: buildInfo, logger: logger}
}

// Run blocks until the user quits or ctx is cancelled.
func (t *TUI) Run(ctx context.Context, start Start) error {
	model := newRootModel(ctx, t.services, t.buildInfo, start)

	_, err := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	if err != nil {
		if ctx.Err() != nil && errors.Is(err, tea.ErrProgramKilled) {
			return nil
		}
		return fmt.Errorf("tui: %w", err)
	}

	t.logger.Debug().Bool("quit_by_user", model.quitByUser).Msg("tui closed")
	return nil
}
