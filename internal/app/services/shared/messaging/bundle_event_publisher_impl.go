package messaging

import (
	"context"
	"ehr-bundle-service/internal/app/contracts"
	"ehr-bundle-service/internal/app/models"
	"ehr-bundle-service/internal/pkg/constvars"
	"ehr-bundle-service/internal/pkg/exceptions"
	"ehr-bundle-service/internal/pkg/utils"

	"github.com/goccy/go-json"
	"github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

type publishChannel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp091.Publishing) error
}

type bundleEventPublisher struct {
	Channel publishChannel
	Queue   string
	Log     *zap.Logger
}

// NewBundleEventPublisher opens a channel on conn and declares queue as a
// durable queue before returning.
func NewBundleEventPublisher(conn *amqp091.Connection, logger *zap.Logger, queue string) (contracts.EventPublisher, error) {
	channel, err := conn.Channel()
	if err != nil {
		return nil, exceptions.ErrRabbitMQOpenChannel(err)
	}

	_, err = channel.QueueDeclare(
		queue, // name
		true,  // durable
		false, // autoDelete
		false, // exclusive
		false, // noWait
		nil,   // args
	)
	if err != nil {
		return nil, exceptions.ErrRabbitMQDeclareQueue(err, queue)
	}

	return newBundleEventPublisher(channel, logger, queue), nil
}

func newBundleEventPublisher(channel publishChannel, logger *zap.Logger, queue string) *bundleEventPublisher {
	return &bundleEventPublisher{
		Channel: channel,
		Queue:   queue,
		Log:     logger,
	}
}

func (p *bundleEventPublisher) Publish(ctx context.Context, event *models.BundleEvent) error {
	requestID := utils.GetRequestID(ctx)
	p.Log.Info("bundleEventPublisher.Publish called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingBundleIDKey, event.BundleID),
	)

	body, err := json.Marshal(event)
	if err != nil {
		return exceptions.ErrCannotMarshalJSON(err)
	}

	message := amqp091.Publishing{
		ContentType:  constvars.MIMEApplicationJSON,
		Type:         event.Event,
		Body:         body,
		DeliveryMode: amqp091.Persistent,
		Timestamp:    event.OccurredAt,
		Headers: amqp091.Table{
			"event":      event.Event,
			"request_id": requestID,
		},
	}

	err = p.Channel.PublishWithContext(ctx, "", p.Queue, false, false, message)
	if err != nil {
		p.Log.Error("bundleEventPublisher.Publish error publishing message",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingQueueNameKey, p.Queue),
			zap.Error(err),
		)
		return exceptions.ErrRabbitMQPublishMessage(err, p.Queue)
	}

	p.Log.Info("bundleEventPublisher.Publish succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingQueueNameKey, p.Queue),
	)
	return nil
}
