package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-task-keeper/internal/config"
	"github.com/MKhiriev/go-task-keeper/internal/logger"
	"github.com/MKhiriev/go-task-keeper/internal/utils"
)

type fakeChannel struct {
	exchange    string
	key         string
	msg         amqp.Publishing
	hasDeadline bool
	err         error
	closed      bool
}

func (f *fakeChannel) PublishWithContext(ctx context.Context, exchange, key string, _, _ bool, msg amqp.Publishing) error {
	f.exchange, f.key, f.msg = exchange, key, msg
	_, f.hasDeadline = ctx.Deadline()
	return f.err
}

func (f *fakeChannel) Close() error {
	f.closed = true
	return nil
}

func TestRabbitPublisher_Publish(t *testing.T) {
	ch := &fakeChannel{}
	p := &rabbitPublisher{ch: ch, exchange: "task-keeper.events"}

	ctx := utils.WithTraceID(context.Background(), "trace-1")
	event := UserRegistered{UserID: 1, Email: "ann@example.com", Name: "Ann", OccurredAt: time.Now()}

	require.NoError(t, p.Publish(ctx, UserRegisteredKey, event))

	assert.Equal(t, "task-keeper.events", ch.exchange)
	assert.Equal(t, "user.registered", ch.key)
	assert.Equal(t, "application/json", ch.msg.ContentType)
	assert.Equal(t, "trace-1", ch.msg.Headers["X-Trace-ID"])
	assert.NotEmpty(t, ch.msg.MessageId)
	assert.True(t, ch.hasDeadline)

	var decoded UserRegistered
	require.NoError(t, json.Unmarshal(ch.msg.Body, &decoded))
	assert.Equal(t, int64(1), decoded.UserID)
	assert.Equal(t, "ann@example.com", decoded.Email)

	require.NoError(t, p.Close())
	assert.True(t, ch.closed)
}

func TestRabbitPublisher_PublishError(t *testing.T) {
	p := &rabbitPublisher{ch: &fakeChannel{err: errors.New("channel closed")}, exchange: "x"}

	assert.Error(t, p.Publish(context.Background(), UserLoggedInKey, UserLoggedIn{UserID: 1}))
}

func TestRabbitPublisher_UnencodableEvent(t *testing.T) {
	p := &rabbitPublisher{ch: &fakeChannel{}, exchange: "x"}

	assert.Error(t, p.Publish(context.Background(), "k", make(chan int)))
}

func TestNewPublisher_DisabledWithoutURL(t *testing.T) {
	p := NewPublisher(config.Events{}, logger.Nop())

	assert.IsType(t, noopPublisher{}, p)
	assert.NoError(t, p.Publish(context.Background(), UserRegisteredKey, UserRegistered{}))
	assert.NoError(t, p.Close())
}
