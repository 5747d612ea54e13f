// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-task-keeper/internal/adapter"
)

// mapAdapterError translates the adapter's transport error into a service business error
func mapAdapterError(err error) error {
	if err == nil {
		return nil
	}

	msg := extractBody(err)

	switch {
	case errors.Is(err, adapter.ErrBadRequest):
		switch {
		case msg == ErrDuplicateEmail.Error():
			return ErrDuplicateEmail
		case msg == ErrInvalidCredentials.Error():
			return ErrInvalidCredentials
		case strings.HasPrefix(msg, ErrValidation.Error()):
			return fmt.Errorf("%w%s", ErrValidation, strings.TrimPrefix(msg, ErrValidation.Error()))
		}
		return fmt.Errorf("%w: %s", ErrValidation, msg)

	case errors.Is(err, adapter.ErrUnauthorized), errors.Is(err, adapter.ErrNoToken):
		return ErrUnauthorized

	case errors.Is(err, adapter.ErrNotFound):
		return ErrNotFound
	}

	return err
}

// extractBody extracts the body from a message of the form "bad request: <body>"
func extractBody(err error) string {
	msg := err.Error()
	if idx := strings.Index(msg, ": "); idx != -1 {
		return msg[idx+2:]
	}
	return msg
}
