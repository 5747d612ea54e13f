package server

import "context"

// Server defines the lifecycle contract for transport servers managed
// by this package.
//
// RunServer blocks until ctx is cancelled or the listener fails. A
// cancelled context triggers a graceful shutdown and is not an error.
type Server interface {
	// RunServer starts serving requests and blocks until the server stops.
	RunServer(ctx context.Context) error

	// Shutdown gracefully stops the server and frees associated resources.
	Shutdown(ctx context.Context) error
}
