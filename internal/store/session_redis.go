package store

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/MKhiriev/go-task-keeper/internal/config"
	"github.com/MKhiriev/go-task-keeper/internal/logger"
	"github.com/MKhiriev/go-task-keeper/models"
	"github.com/redis/go-redis/v9"
)

const sessionKeyPrefix = "session"

type redisSessionStore struct {
	client redis.UniversalClient
	logger *logger.Logger
}

// NewRedisClient connects to Redis and pings it.
func NewRedisClient(ctx context.Context, cfg config.Redis, log *logger.Logger) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		log.Err(err).Str("func", "NewRedisClient").Msg("error connecting redis (ping)")
		client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	log.Info().Str("func", "NewRedisClient").Msg("connected to redis successfully")

	return client, nil
}

// NewRedisSessionStore stores each session as a hash under "session:<id>"
// that Redis expires at the session's ExpiresAt.
func NewRedisSessionStore(client redis.UniversalClient, log *logger.Logger) SessionStore {
	return &redisSessionStore{client: client, logger: log}
}

func (s *redisSessionStore) SaveSession(ctx context.Context, session models.Session) error {
	key := sessionKey(session.ID)

	pipe := s.client.TxPipeline()
	pipe.Del(ctx, key)
	pipe.HSet(ctx, key, map[string]any{
		"user_id":     session.UserID,
		"email":       session.Email,
		"name":        session.Name,
		"oauth_state": session.OAuthState,
		"created_at":  session.CreatedAt.Unix(),
		"expires_at":  session.ExpiresAt.Unix(),
	})
	pipe.ExpireAt(ctx, key, session.ExpiresAt)

	if _, err := pipe.Exec(ctx); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*redisSessionStore.SaveSession").Msg("error saving session")
		return fmt.Errorf("save session: %w", err)
	}

	return nil
}

func (s *redisSessionStore) GetSession(ctx context.Context, sessionID string) (models.Session, error) {
	data, err := s.client.HGetAll(ctx, sessionKey(sessionID)).Result()
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*redisSessionStore.GetSession").Msg("error reading session")
		return models.Session{}, fmt.Errorf("get session: %w", err)
	}
	if len(data) == 0 {
		return models.Session{}, ErrSessionNotFound
	}

	session, err := sessionFromHash(sessionID, data)
	if err != nil {
		return models.Session{}, err
	}
	if session.IsExpired(time.Now()) {
		return models.Session{}, ErrSessionNotFound
	}

	return session, nil
}

func (s *redisSessionStore) DeleteSession(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, sessionKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func sessionKey(sessionID string) string {
	return fmt.Sprintf("%s:%s", sessionKeyPrefix, sessionID)
}

func sessionFromHash(sessionID string, data map[string]string) (models.Session, error) {
	session := models.Session{
		ID:         sessionID,
		Email:      data["email"],
		Name:       data["name"],
		OAuthState: data["oauth_state"],
	}

	var err error
	if v := data["user_id"]; v != "" {
		if session.UserID, err = strconv.ParseInt(v, 10, 64); err != nil {
			return models.Session{}, fmt.Errorf("decode session user_id: %w", err)
		}
	}

	createdAt, err := parseUnix(data["created_at"])
	if err != nil {
		return models.Session{}, fmt.Errorf("decode session created_at: %w", err)
	}
	expiresAt, err := parseUnix(data["expires_at"])
	if err != nil {
		return models.Session{}, fmt.Errorf("decode session expires_at: %w", err)
	}
	session.CreatedAt, session.ExpiresAt = createdAt, expiresAt

	return session, nil
}

func parseUnix(v string) (time.Time, error) {
	if v == "" {
		return time.Time{}, nil
	}
	sec, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return time.Time{}, err
	}
	return time.Unix(sec, 0).UTC(), nil
}
