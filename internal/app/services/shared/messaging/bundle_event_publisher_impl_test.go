package messaging

import (
	"context"
	"ehr-bundle-service/internal/app/models"
	"ehr-bundle-service/internal/pkg/constvars"
	"errors"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type recordingChannel struct {
	queue    string
	messages []amqp091.Publishing
	err      error
}

func (c *recordingChannel) PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp091.Publishing) error {
	if c.err != nil {
		return c.err
	}
	c.queue = key
	c.messages = append(c.messages, msg)
	return nil
}

func TestBundleEventPublisher(t *testing.T) {
	ctx := context.WithValue(context.Background(), constvars.CONTEXT_REQUEST_ID_KEY, "req-1")
	event := &models.BundleEvent{
		Event:      constvars.EventBundleIngested,
		BundleID:   "bundle-1",
		BundleType: "document",
		EntryCount: 6,
		OccurredAt: time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC),
	}

	t.Run("Publishes Persistent JSON", func(t *testing.T) {
		channel := &recordingChannel{}
		publisher := newBundleEventPublisher(channel, zap.NewNop(), "ehr.bundle.events")

		require.NoError(t, publisher.Publish(ctx, event))
		require.Len(t, channel.messages, 1)

		message := channel.messages[0]
		assert.Equal(t, "ehr.bundle.events", channel.queue)
		assert.Equal(t, constvars.MIMEApplicationJSON, message.ContentType)
		assert.Equal(t, amqp091.Persistent, message.DeliveryMode)
		assert.Equal(t, "req-1", message.Headers["request_id"])

		var decoded models.BundleEvent
		require.NoError(t, json.Unmarshal(message.Body, &decoded))
		assert.Equal(t, *event, decoded)
	})

	t.Run("Broker Failure", func(t *testing.T) {
		channel := &recordingChannel{err: errors.New("channel closed")}
		publisher := newBundleEventPublisher(channel, zap.NewNop(), "ehr.bundle.events")

		assert.Error(t, publisher.Publish(ctx, event))
	})
}
