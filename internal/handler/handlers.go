package handler

import (
	"github.com/MKhiriev/go-task-keeper/internal/config"
	"github.com/MKhiriev/go-task-keeper/internal/handler/http"
	"github.com/MKhiriev/go-task-keeper/internal/logger"
	"github.com/MKhiriev/go-task-keeper/internal/service"
	"github.com/MKhiriev/go-task-keeper/internal/store"
)

type Handlers struct {
	HTTP *http.Handler
}

func NewHandlers(services *service.Services, storages *store.Storages, cfg *config.StructuredConfig, logger *logger.Logger) (*Handlers, error) {
	logger.Info().Msg("creating new handlers...")

	if cfg.Server.HTTPAddress == "" {
		return nil, errNoHandlersAreCreated
	}

	// a nil *LocalBlobStore must not become a non-nil interface
	var rawBlobs http.RawBlobOpener
	if storages.LocalBlobs != nil {
		rawBlobs = storages.LocalBlobs
	}

	return &Handlers{
		HTTP: http.NewHandler(services, storages.SessionStore, rawBlobs, http.NewSettings(cfg), logger),
	}, nil
}
