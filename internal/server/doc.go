// Package server wires and runs the application's HTTP server.
//
// It owns the listener lifecycle: startup, waiting for the caller's
// context to end, and graceful shutdown with a bounded drain period.
package server
