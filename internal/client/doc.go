// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package client implements the interactive client application runtime.
//
// It reconciles the bearer credential found in a redirect URL, in memory and
// in local storage, resolves the signed-in user, and hands control to the
// terminal UI. A loopback callback worker feeds Google sign-in redirects back
// through the same reconciliation.
package client
