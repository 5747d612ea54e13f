package http

import (
	"os"

	"github.com/MKhiriev/go-task-keeper/internal/config"
	"github.com/MKhiriev/go-task-keeper/internal/identity"
	"github.com/MKhiriev/go-task-keeper/internal/logger"
	"github.com/MKhiriev/go-task-keeper/internal/service"
	"github.com/MKhiriev/go-task-keeper/internal/store"
)

// RawBlobOpener opens a blob addressed by a signed download URL.
type RawBlobOpener interface {
	Open(key, exp, sig string) (*os.File, error)
}

// Settings are the transport options taken from the server configuration.
type Settings struct {
	// ClientURL receives the Google sign-in redirect.
	ClientURL      string
	AllowedOrigins []string
	SecureCookies  bool
}

// NewSettings extracts the handler settings from cfg.
func NewSettings(cfg *config.StructuredConfig) Settings {
	return Settings{
		ClientURL:      cfg.Server.ClientURL,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		SecureCookies:  cfg.App.SecureCookies,
	}
}

type Handler struct {
	services *service.Services

	// identity accepts a bearer token or a session cookie, bearerOnly only
	// the former.
	identity   *identity.Chain
	bearerOnly *identity.Chain

	// rawBlobs is nil unless the local blob backend is in use.
	rawBlobs RawBlobOpener

	metrics  *metrics
	settings Settings

	logger *logger.Logger
}

func NewHandler(services *service.Services, sessions store.SessionStore, rawBlobs RawBlobOpener, settings Settings, logger *logger.Logger) *Handler {
	bearer := identity.NewBearerStrategy(services.AuthService)

	logger.Info().Msg("http handler created")
	return &Handler{
		services:   services,
		identity:   identity.NewChain(bearer, identity.NewSessionStrategy(sessions)),
		bearerOnly: identity.NewChain(bearer),
		rawBlobs:   rawBlobs,
		metrics:    newMetrics(),
		settings:   settings,
		logger:     logger,
	}
}
