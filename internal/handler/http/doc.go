// Package http implements the REST transport of the go-task-keeper server.
//
// It wires the chi router, the middleware chain (trace ids, access logging,
// metrics, CORS, compression and identity resolution) and the handlers of
// the auth, task and file endpoints. Handlers decode requests, call the
// service layer and map service errors to HTTP statuses; they hold no
// business rules of their own.
package http
