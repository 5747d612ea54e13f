// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"errors"
	"fmt"

	"github.com/MKhiriev/go-task-keeper/internal/app"
	"github.com/MKhiriev/go-task-keeper/internal/service"
)

// Request errors detected by the handlers themselves. They wrap
// [service.ErrValidation] and are therefore answered with 400.
var (
	// ErrInvalidTaskID is returned when the {id} path segment is not a
	// positive integer.
	ErrInvalidTaskID = fmt.Errorf("%w: %s", service.ErrValidation, app.MsgInvalidTaskID)

	// ErrNoFileProvided is returned when a multipart upload has no "file"
	// part.
	ErrNoFileProvided = fmt.Errorf("%w: %s", service.ErrValidation, app.MsgNoFileProvided)

	// ErrUploadTooLarge is returned when the request body exceeds the upload
	// limit.
	ErrUploadTooLarge = fmt.Errorf("%w: file is larger than %d bytes", service.ErrValidation, service.MaxUploadSize)

	// ErrInvalidJSON is returned when a request body cannot be decoded.
	ErrInvalidJSON = errors.New(app.MsgInvalidDataProvided)
)
