// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package migrations

import (
	"database/sql"
	"io/fs"
	"strings"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrate_DBError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	_ = mock // goose talks to the DB itself; no expectations means every query fails

	err = Migrate(db)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "migration error")
}

func TestMigrate_NilDB(t *testing.T) {
	var db *sql.DB

	assert.ErrorIs(t, Migrate(db), ErrNilDB)
	assert.ErrorIs(t, MigrateClient(db), ErrNilDB)
}

// TestEmbeddedMigrations_Schema verifies the invariants carried by the DDL:
// unique e-mail and provider id, a credential presence check and the task
// cascade on user deletion.
func TestEmbeddedMigrations_Schema(t *testing.T) {
	users, err := fs.ReadFile(embedMigrations, "00001_create_users.sql")
	require.NoError(t, err)
	tasks, err := fs.ReadFile(embedMigrations, "00002_create_tasks.sql")
	require.NoError(t, err)

	u := strings.ToLower(string(users))
	assert.Contains(t, u, "email         varchar(255) not null unique")
	assert.Contains(t, u, "provider_id   varchar(255) unique")
	assert.Contains(t, u, "check (password_hash is not null or provider_id is not null)")

	tk := strings.ToLower(string(tasks))
	assert.Contains(t, tk, "references users (id) on delete cascade")
	assert.Contains(t, tk, "completed  boolean not null default false")
}

func TestEmbeddedClientMigrations_Present(t *testing.T) {
	entries, err := fs.ReadDir(embedClientMigrations, "client")
	require.NoError(t, err)
	assert.NotEmpty(t, entries)
}
