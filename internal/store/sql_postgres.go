package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/go-task-keeper/internal/config"
	"github.com/MKhiriev/go-task-keeper/internal/logger"
	"github.com/MKhiriev/go-task-keeper/migrations"
	"github.com/jackc/pgx/v5/pgconn"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// DB wraps a *sql.DB together with the error classifier used to tell
// transient failures from permanent ones.
type DB struct {
	*sql.DB
	errorClassificator ErrorClassificator
	logger             *logger.Logger
}

// NewConnectPostgres opens a pgx-backed connection pool and pings it once.
func NewConnectPostgres(ctx context.Context, cfg config.DB, log *logger.Logger) (*DB, error) {
	// establish connection
	conn, err := sql.Open("pgx", cfg.DSN)
	if err != nil {
		log.Err(err).Str("func", "NewConnectPostgres").Msg("error occurred during database connection")
		return nil, fmt.Errorf("error occurred during database connection: %w", err)
	}

	conn.SetMaxOpenConns(10)
	conn.SetMaxIdleConns(4)

	// ping database
	if err = conn.PingContext(ctx); err != nil {
		log.Err(err).Str("func", "NewConnectPostgres").Msg("error connecting database (ping)")
		conn.Close()
		return nil, err
	}
	log.Info().Str("func", "NewConnectPostgres").Msg("connected to database successfully")

	return &DB{
		DB:                 conn,
		logger:             log,
		errorClassificator: NewPostgresErrorClassifier(),
	}, nil
}

// ConnectWithRetry keeps calling [NewConnectPostgres] with a fixed pause of
// cfg.ConnectRetryDelay between attempts until it succeeds or ctx is done.
// There is no attempt limit.
func ConnectWithRetry(ctx context.Context, cfg config.DB, log *logger.Logger) (*DB, error) {
	return connectWithRetry(ctx, func(ctx context.Context) (*DB, error) {
		return NewConnectPostgres(ctx, cfg, log)
	}, cfg.ConnectRetryDelay, NewPostgresErrorClassifier(), log)
}

type connectFunc func(ctx context.Context) (*DB, error)

// connectWithRetry retries every failure. The classifier only picks the log
// level: a non-retryable error (wrong password, missing database) usually
// needs an operator, so it is logged as an error.
func connectWithRetry(ctx context.Context, connect connectFunc, delay time.Duration, classifier ErrorClassificator, log *logger.Logger) (*DB, error) {
	for attempt := 1; ; attempt++ {
		db, err := connect(ctx)
		if err == nil {
			return db, nil
		}

		class := classifier.Classify(err)
		event := log.Warn()
		if class == NonRetryable {
			event = log.Error()
		}
		event.Err(err).
			Str("func", "ConnectWithRetry").
			Int("attempt", attempt).
			Str("class", class.String()).
			Dur("retry_in", delay).
			Msg("database is not reachable, retrying")

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, fmt.Errorf("%w: %w", ErrConnectAborted, ctx.Err())
		case <-timer.C:
		}
	}
}

// Migrate applies the embedded server schema.
func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB)
}

func postgresError(err error) string {
	var pgErr *pgconn.PgError
	// if postgres returns error
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}

	return ""
}

func postgresConstraint(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.ConstraintName
	}

	return ""
}
