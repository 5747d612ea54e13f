// Package events publishes domain events to a RabbitMQ topic exchange.
// When no broker is configured a no-op publisher is used instead.
package events

import (
	"context"
	"time"
)

// Routing keys.
const (
	UserRegisteredKey = "user.registered"
	UserLoggedInKey   = "user.logged_in"
)

//go:generate mockgen -source=events.go -destination=../mock/events_mock.go -package=mock

// Publisher sends events. Implementations are safe for concurrent use.
type Publisher interface {
	Publish(ctx context.Context, key string, event any) error
	Close() error
}

// UserRegistered is emitted after a local account is created.
type UserRegistered struct {
	UserID     int64     `json:"user_id"`
	Email      string    `json:"email"`
	Name       string    `json:"name"`
	OccurredAt time.Time `json:"occurred_at"`
}

// UserLoggedIn is emitted after a successful sign-in of any kind.
type UserLoggedIn struct {
	UserID     int64     `json:"user_id"`
	Email      string    `json:"email"`
	Method     string    `json:"method"`
	OccurredAt time.Time `json:"occurred_at"`
}

type noopPublisher struct{}

// NewNoop returns a Publisher that drops every event.
func NewNoop() Publisher { return noopPublisher{} }

func (noopPublisher) Publish(context.Context, string, any) error { return nil }
func (noopPublisher) Close() error                               { return nil }
