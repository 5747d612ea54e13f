package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-task-keeper/internal/logger"
)

// defaultCredentialSlot is the only row of the credentials table in use.
const defaultCredentialSlot = "default"

const credentialsTable = "credentials"

type localCredentialRepository struct {
	db     *DB
	slot   string
	logger *logger.Logger
}

// NewLocalCredentialRepository returns a SQLite-backed [LocalCredentialStore].
func NewLocalCredentialRepository(db *DB, log *logger.Logger) LocalCredentialStore {
	return &localCredentialRepository{db: db, slot: defaultCredentialSlot, logger: log}
}

func (r *localCredentialRepository) SaveToken(ctx context.Context, token string) error {
	query, args, err := sq.Insert(credentialsTable).
		Columns("slot", "token", "saved_at").
		Values(r.slot, token, sq.Expr("CURRENT_TIMESTAMP")).
		Suffix("ON CONFLICT(slot) DO UPDATE SET token = excluded.token, saved_at = excluded.saved_at").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = r.db.ExecContext(ctx, query, args...); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*localCredentialRepository.SaveToken").Msg("error saving token")
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	return nil
}

func (r *localCredentialRepository) LoadToken(ctx context.Context) (string, error) {
	query, args, err := sq.Select("token").
		From(credentialsTable).
		Where(sq.Eq{"slot": r.slot}).
		ToSql()
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var token string
	err = r.db.QueryRowContext(ctx, query, args...).Scan(&token)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrLocalCredentialNotFound
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*localCredentialRepository.LoadToken").Msg("error loading token")
		return "", fmt.Errorf("%w: %w", ErrScanningRow, err)
	}
	return token, nil
}

func (r *localCredentialRepository) ClearToken(ctx context.Context) error {
	query, args, err := sq.Delete(credentialsTable).
		Where(sq.Eq{"slot": r.slot}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if _, err = r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	return nil
}
