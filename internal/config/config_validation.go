// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// validate checks that the final merged [StructuredConfig] satisfies all
// server invariants before it is used at startup.
//
// Returns nil if the configuration is valid, or an error wrapping one of the
// sentinel errors from errors.go otherwise.
func (cfg *StructuredConfig) validate() error {
	if cfg.App.TokenSignKey == "" || cfg.App.TokenDuration <= 0 || cfg.App.SessionTTL <= 0 {
		return fmt.Errorf("%w: token sign key, token duration and session ttl are required", ErrInvalidAppConfigs)
	}

	if cfg.App.PasswordHashCost < bcrypt.MinCost || cfg.App.PasswordHashCost > bcrypt.MaxCost {
		return fmt.Errorf("%w: password hash cost %d is out of range", ErrInvalidAppConfigs, cfg.App.PasswordHashCost)
	}

	if cfg.Storage.DB.DSN == "" || cfg.Storage.DB.ConnectRetryDelay <= 0 {
		return fmt.Errorf("%w: database DSN and retry delay are required", ErrInvalidStorageConfigs)
	}

	switch strings.ToLower(cfg.Storage.Blob.Backend) {
	case BlobBackendLocal:
		if cfg.Storage.Blob.Dir == "" || cfg.Storage.Blob.SignKey == "" {
			return fmt.Errorf("%w: local blob backend needs a directory and a sign key", ErrInvalidStorageConfigs)
		}
	case BlobBackendAzure:
		if cfg.Storage.Blob.AccountName == "" || cfg.Storage.Blob.AccountKey == "" || cfg.Storage.Blob.Container == "" {
			return fmt.Errorf("%w: azure blob backend needs account name, key and container", ErrInvalidStorageConfigs)
		}
	default:
		return fmt.Errorf("%w: unknown blob backend %q", ErrInvalidStorageConfigs, cfg.Storage.Blob.Backend)
	}

	if cfg.Server.HTTPAddress == "" || cfg.Server.ClientURL == "" {
		return fmt.Errorf("%w: address and client url are required", ErrInvalidServerConfigs)
	}

	g := cfg.OAuth.Google
	if g.ClientID != "" && (g.ClientSecret == "" || g.RedirectURL == "") {
		return fmt.Errorf("%w: google client secret and redirect url are required", ErrInvalidOAuthConfigs)
	}

	return nil
}

func (cfg *ClientConfig) validate() error {
	if cfg.Storage.DSN == "" || strings.Contains(cfg.Storage.DSN, "memory") {
		return ErrInvalidStorageConfigs
	}

	if cfg.Adapter.HTTPAddress == "" || cfg.Adapter.RequestTimeout == 0 {
		return ErrInvalidAdapterConfigs
	}

	return nil
}
