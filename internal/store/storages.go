package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/MKhiriev/go-task-keeper/internal/config"
	"github.com/MKhiriev/go-task-keeper/internal/logger"
)

// Storages groups every server-side repository.
type Storages struct {
	UserRepository UserRepository
	TaskRepository TaskRepository
	SessionStore   SessionStore
	BlobStore      BlobStore

	// LocalBlobs is set when the local blob backend is in use; the HTTP
	// layer serves its signed download URLs.
	LocalBlobs *LocalBlobStore

	db    *DB
	redis *redis.Client
}

// NewStorages waits for PostgreSQL (retrying with a fixed delay until ctx is
// cancelled), applies migrations and wires the session and blob backends.
func NewStorages(ctx context.Context, cfg *config.StructuredConfig, log *logger.Logger) (*Storages, error) {
	log.Info().Msg("creating new storages...")

	db, err := ConnectWithRetry(ctx, cfg.Storage.DB, log)
	if err != nil {
		return nil, fmt.Errorf("postgres connection error: %w", err)
	}

	if err = db.Migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	storages := &Storages{
		UserRepository: NewUserRepository(db, log),
		TaskRepository: NewTaskRepository(db, log),
		db:             db,
	}

	if cfg.Storage.Redis.Address != "" {
		client, err := NewRedisClient(ctx, cfg.Storage.Redis, log)
		if err != nil {
			storages.Close()
			return nil, err
		}
		storages.redis = client
		storages.SessionStore = NewRedisSessionStore(client, log)
	} else {
		log.Warn().Msg("redis address is not set, sessions are kept in memory")
		storages.SessionStore = NewMemorySessionStore()
	}

	switch strings.ToLower(cfg.Storage.Blob.Backend) {
	case config.BlobBackendAzure:
		blobs, err := NewAzureBlobStore(ctx, cfg.Storage.Blob, log)
		if err != nil {
			storages.Close()
			return nil, err
		}
		storages.BlobStore = blobs
	default:
		blobs, err := NewLocalBlobStore(
			cfg.Storage.Blob.Dir,
			publicURL(cfg.Server)+"/files/raw",
			cfg.Storage.Blob.SignKey,
			log,
		)
		if err != nil {
			storages.Close()
			return nil, err
		}
		storages.BlobStore = blobs
		storages.LocalBlobs = blobs
	}

	return storages, nil
}

// Close releases the database and Redis connections.
func (s *Storages) Close() error {
	var errs []error
	if s.redis != nil {
		errs = append(errs, s.redis.Close())
	}
	if s.db != nil {
		errs = append(errs, s.db.Close())
	}
	return errors.Join(errs...)
}

func publicURL(cfg config.Server) string {
	if cfg.PublicURL != "" {
		return strings.TrimRight(cfg.PublicURL, "/")
	}
	return "http://" + cfg.HTTPAddress
}
