package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/IBM/sarama"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"

	"favorites-service/pkg/logger"
)

// Publisher wraps a Kafka producer for audit events. A nil Publisher is a
// valid no-op so the service runs without a broker; auditing is best-effort
// and never fails the enclosing request.
type Publisher struct {
	producer sarama.SyncProducer
	brokers  []string
}

// NewPublisher creates a new Kafka publisher
func NewPublisher(brokers []string) (*Publisher, error) {
	config := sarama.NewConfig()
	config.Producer.Return.Successes = true
	config.Producer.Retry.Max = 3
	config.Producer.RequiredAcks = sarama.WaitForAll
	config.Producer.Compression = sarama.CompressionSnappy

	producer, err := sarama.NewSyncProducer(brokers, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create Kafka producer: %w", err)
	}

	logger.Logger.Info().
		Strs("brokers", brokers).
		Msg("Kafka publisher initialized")

	return &Publisher{
		producer: producer,
		brokers:  brokers,
	}, nil
}

// PublishFavoriteEvent publishes a favorite lifecycle event with tracing
func (p *Publisher) PublishFavoriteEvent(ctx context.Context, event FavoriteEvent) error {
	if p == nil {
		return nil
	}

	tracer := otel.Tracer("kafka-publisher")
	ctx, span := tracer.Start(ctx, "kafka.publish.favorite_event",
		trace.WithSpanKind(trace.SpanKindProducer),
		trace.WithAttributes(
			attribute.String("messaging.system", "kafka"),
			attribute.String("messaging.destination", TopicFavoriteAudit),
			attribute.String("event.type", event.EventType),
			attribute.String("favorite.id", event.FavoriteID),
			attribute.Int64("customer.id", int64(event.CustomerID)),
			attribute.Int("product.id", event.ProductID),
		),
	)
	defer span.End()

	if event.EventID == "" {
		event.EventID = fmt.Sprintf("evt_%d", time.Now().UnixNano())
	}
	event.Timestamp = time.Now()

	if err := p.send(ctx, span, TopicFavoriteAudit, fmt.Sprintf("customer_%d", event.CustomerID), event.EventType, event.EventID, event); err != nil {
		logger.Error(ctx).
			Err(err).
			Str("event_type", event.EventType).
			Str("favorite_id", event.FavoriteID).
			Msg("Failed to publish favorite event")
		return err
	}

	logger.Info(ctx).
		Str("event_id", event.EventID).
		Str("event_type", event.EventType).
		Str("favorite_id", event.FavoriteID).
		Uint("customer_id", event.CustomerID).
		Msg("Favorite event published")
	return nil
}

// PublishCustomerDeleted publishes an account deletion event with tracing
func (p *Publisher) PublishCustomerDeleted(ctx context.Context, event CustomerDeletedEvent) error {
	if p == nil {
		return nil
	}

	tracer := otel.Tracer("kafka-publisher")
	ctx, span := tracer.Start(ctx, "kafka.publish.customer_deleted",
		trace.WithSpanKind(trace.SpanKindProducer),
		trace.WithAttributes(
			attribute.String("messaging.system", "kafka"),
			attribute.String("messaging.destination", TopicCustomerAudit),
			attribute.String("event.type", EventTypeCustomerDeleted),
			attribute.Int64("customer.id", int64(event.CustomerID)),
		),
	)
	defer span.End()

	if event.EventID == "" {
		event.EventID = fmt.Sprintf("evt_%d", time.Now().UnixNano())
	}
	event.EventType = EventTypeCustomerDeleted
	event.Timestamp = time.Now()

	if err := p.send(ctx, span, TopicCustomerAudit, fmt.Sprintf("customer_%d", event.CustomerID), event.EventType, event.EventID, event); err != nil {
		logger.Error(ctx).
			Err(err).
			Uint("customer_id", event.CustomerID).
			Msg("Failed to publish customer deleted event")
		return err
	}

	logger.Info(ctx).
		Str("event_id", event.EventID).
		Uint("customer_id", event.CustomerID).
		Msg("Customer deleted event published")
	return nil
}

func (p *Publisher) send(ctx context.Context, span trace.Span, topic, key, eventType, eventID string, event interface{}) error {
	eventBytes, err := json.Marshal(event)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to marshal event")
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	// Inject trace context into Kafka headers
	carrier := propagation.MapCarrier{}
	otel.GetTextMapPropagator().Inject(ctx, carrier)

	headers := []sarama.RecordHeader{
		{Key: []byte("event_type"), Value: []byte(eventType)},
		{Key: []byte("event_id"), Value: []byte(eventID)},
	}
	for k, v := range carrier {
		headers = append(headers, sarama.RecordHeader{
			Key:   []byte(k),
			Value: []byte(v),
		})
	}

	msg := &sarama.ProducerMessage{
		Topic:   topic,
		Key:     sarama.StringEncoder(key),
		Value:   sarama.ByteEncoder(eventBytes),
		Headers: headers,
	}

	partition, offset, err := p.producer.SendMessage(msg)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to send message")
		return fmt.Errorf("failed to send message to Kafka: %w", err)
	}

	span.SetAttributes(
		attribute.Int("messaging.kafka.partition", int(partition)),
		attribute.Int64("messaging.kafka.offset", offset),
	)
	span.SetStatus(codes.Ok, "Event published")
	return nil
}

// Close closes the Kafka producer
func (p *Publisher) Close() error {
	if p == nil || p.producer == nil {
		return nil
	}
	return p.producer.Close()
}
