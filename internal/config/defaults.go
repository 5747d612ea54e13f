package config

import "time"

// Default values applied to every field left unset by the other sources.
const (
	DefaultTokenDuration     = 24 * time.Hour
	DefaultTokenIssuer       = "go-task-keeper"
	DefaultPasswordHashCost  = 12
	DefaultSessionTTL        = 10 * time.Minute
	DefaultConnectRetryDelay = 5 * time.Second
	DefaultBlobURLTTL        = 60 * time.Minute
	DefaultBlobBackend       = BlobBackendLocal
	DefaultBlobDir           = "./data/files"
	DefaultBlobContainer     = "uploads"
	DefaultHTTPAddress       = "localhost:8080"
	DefaultRequestTimeout    = 30 * time.Second
	DefaultClientURL         = "http://localhost:3000"
	DefaultLocalDSN          = "task-keeper.db"
	DefaultCallbackAddress   = "127.0.0.1:8765"
	DefaultEventsExchange    = "task-keeper.events"
)

// Blob backends accepted by [Blob.Backend].
const (
	BlobBackendLocal = "local"
	BlobBackendAzure = "azure"
)

func defaultConfig() *StructuredConfig {
	return &StructuredConfig{
		App: App{
			TokenIssuer:      DefaultTokenIssuer,
			TokenDuration:    DefaultTokenDuration,
			PasswordHashCost: DefaultPasswordHashCost,
			SessionTTL:       DefaultSessionTTL,
		},
		Storage: Storage{
			DB: DB{ConnectRetryDelay: DefaultConnectRetryDelay},
			Blob: Blob{
				Backend:   DefaultBlobBackend,
				Dir:       DefaultBlobDir,
				Container: DefaultBlobContainer,
				URLTTL:    DefaultBlobURLTTL,
			},
			Local: Local{DSN: DefaultLocalDSN},
		},
		Server: Server{
			HTTPAddress:    DefaultHTTPAddress,
			ClientURL:      DefaultClientURL,
			AllowedOrigins: []string{"*"},
			RequestTimeout: DefaultRequestTimeout,
		},
		Events: Events{Exchange: DefaultEventsExchange},
		Adapter: Adapter{
			HTTPAddress:     "http://" + DefaultHTTPAddress,
			RequestTimeout:  DefaultRequestTimeout,
			CallbackAddress: DefaultCallbackAddress,
		},
	}
}
