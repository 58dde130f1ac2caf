package events

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/opentracing/opentracing-go"
	"github.com/pkg/errors"
	"github.com/rabbitmq/amqp091-go"

	"github.com/openfunnel/mailtriage/dto"
	"github.com/openfunnel/mailtriage/interfaces"
	"github.com/openfunnel/mailtriage/internal/logger"
	"github.com/openfunnel/mailtriage/internal/tracing"
)

const (
	ExchangeTriage = "mailtriage-direct"

	RoutingKeyReplySent    = "triage-reply-sent"
	RoutingKeyLeadFollowup = "triage-lead-followup"

	DefaultPublishTimeout = 5 * time.Second
)

type RabbitMQPublisher struct {
	connection      *amqp091.Connection
	connectionMutex sync.Mutex
	publishChannel  *amqp091.Channel
	publishMutex    sync.Mutex
	url             string
	logger          logger.Logger
}

func NewRabbitMQPublisher(rabbitmqURL string, log logger.Logger) (*RabbitMQPublisher, error) {
	publisher := &RabbitMQPublisher{
		url:    rabbitmqURL,
		logger: log,
	}

	if err := publisher.connect(); err != nil {
		return nil, err
	}

	return publisher, nil
}

func (r *RabbitMQPublisher) connect() error {
	r.connectionMutex.Lock()
	defer r.connectionMutex.Unlock()

	conn, err := amqp091.Dial(r.url)
	if err != nil {
		return errors.Wrap(err, "failed to connect to RabbitMQ")
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return errors.Wrap(err, "failed to open channel")
	}

	if err := ch.ExchangeDeclare(ExchangeTriage, "direct", true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return errors.Wrap(err, "failed to declare exchange")
	}

	r.connection = conn
	r.publishChannel = ch
	return nil
}

func (r *RabbitMQPublisher) Publish(ctx context.Context, event dto.TriageEvent) error {
	span, ctx := opentracing.StartSpanFromContext(ctx, "RabbitMQPublisher.Publish")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)
	span.SetTag("event.type", event.Type)

	if event.ID == "" {
		event.ID = uuid.New().String()
	}
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}

	body, err := json.Marshal(event)
	if err != nil {
		tracing.TraceErr(span, err)
		return errors.Wrap(err, "failed to marshal event")
	}

	routingKey := routingKeyFor(event.Type)

	publishCtx, cancel := context.WithTimeout(ctx, DefaultPublishTimeout)
	defer cancel()

	r.publishMutex.Lock()
	defer r.publishMutex.Unlock()

	err = r.publishChannel.PublishWithContext(publishCtx, ExchangeTriage, routingKey, false, false, amqp091.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp091.Persistent,
		MessageId:    event.ID,
		Timestamp:    event.OccurredAt,
		Body:         body,
	})
	if err != nil {
		tracing.TraceErr(span, err)
		return errors.Wrap(err, "failed to publish event")
	}

	return nil
}

func (r *RabbitMQPublisher) Close() error {
	r.connectionMutex.Lock()
	defer r.connectionMutex.Unlock()

	if r.publishChannel != nil {
		r.publishChannel.Close()
	}
	if r.connection != nil {
		return r.connection.Close()
	}
	return nil
}

func routingKeyFor(eventType string) string {
	switch eventType {
	case dto.EventTypeLeadFollowup:
		return RoutingKeyLeadFollowup
	default:
		return RoutingKeyReplySent
	}
}

// noopPublisher satisfies the publisher contract when no broker is
// configured.
type noopPublisher struct{}

func NewNoopPublisher() interfaces.EventPublisher {
	return &noopPublisher{}
}

func (noopPublisher) Publish(ctx context.Context, event dto.TriageEvent) error {
	return nil
}

func (noopPublisher) Close() error {
	return nil
}
