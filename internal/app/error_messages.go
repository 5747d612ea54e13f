// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains shared application-layer constants used across the
// go-task-keeper server handlers and the client.
//
// All Msg* constants are human-readable message strings that are written into
// HTTP response bodies, redirect parameters or log entries. Keeping them in
// one place ensures consistent wording throughout the API and lets the client
// recognise them.
package app

const (
	// MsgInvalidDataProvided is returned when the request body cannot be
	// decoded.
	MsgInvalidDataProvided = "invalid data provided"

	// MsgInternalServerError is returned when an unexpected server-side
	// failure occurs. The cause is logged, never sent.
	MsgInternalServerError = "internal server error"

	// MsgUnauthorized is returned when no identity could be resolved.
	MsgUnauthorized = "unauthorized"

	// MsgInvalidTaskID is returned when the {id} path segment is not a
	// positive integer.
	MsgInvalidTaskID = "invalid task id"

	// MsgNoFileProvided is returned when an upload lacks the "file" part.
	MsgNoFileProvided = "no file provided"

	// MsgTaskDeleted confirms DELETE /tasks/{id}.
	MsgTaskDeleted = "task deleted"

	// MsgFileDeleted confirms DELETE /files/{name}.
	MsgFileDeleted = "file deleted"

	// MsgInvalidSignature is returned for tampered or expired download links.
	MsgInvalidSignature = "invalid or expired signature"
)

// Values of the "error" query parameter on the redirect back to the client
// after a failed Google sign-in.
const (
	RedirectErrEmailInUse    = "email_in_use"
	RedirectErrOAuthFailed   = "oauth_failed"
	RedirectErrOAuthDisabled = "oauth_disabled"
)
