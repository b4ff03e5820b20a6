package event

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/segmentio/kafka-go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/qreats/backend/internal/domain/inventory"
	"github.com/qreats/backend/internal/domain/shared"
	"github.com/qreats/backend/internal/infrastructure/config"
	"github.com/qreats/backend/internal/infrastructure/telemetry"
)

// Kafka message header names.
const (
	HeaderEventType     = "event_type"
	HeaderSchemaVersion = "schema_version"
)

// MessageWriter is the subset of *kafka.Writer used by KafkaPublisher.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher forwards inventory events to a Kafka topic as JSON envelopes.
// Messages are keyed by tenant so one tenant's events stay ordered within a partition.
type KafkaPublisher struct {
	writer     MessageWriter
	eventTypes []string
	logger     *zap.Logger
}

var _ shared.EventHandler = (*KafkaPublisher)(nil)

// NewKafkaWriter builds a hash-balanced writer for cfg.Topic.
func NewKafkaWriter(cfg config.KafkaConfig) *kafka.Writer {
	return &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Topic:                  cfg.Topic,
		Balancer:               &kafka.Hash{},
		BatchTimeout:           cfg.BatchTimeout,
		WriteTimeout:           cfg.WriteTimeout,
		RequiredAcks:           kafka.RequireAll,
		AllowAutoTopicCreation: true,
	}
}

// NewKafkaPublisher creates a publisher for the stock movement events.
func NewKafkaPublisher(writer MessageWriter, logger *zap.Logger) *KafkaPublisher {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &KafkaPublisher{
		writer: writer,
		eventTypes: []string{
			inventory.EventTypeStockDeducted,
			inventory.EventTypeStockRestocked,
			inventory.EventTypeBatchReceived,
		},
		logger: logger.Named("kafka_publisher"),
	}
}

// EventTypes implements shared.EventHandler.
func (p *KafkaPublisher) EventTypes() []string {
	return p.eventTypes
}

// Handle writes one event under a producer span whose context travels in the message headers.
func (p *KafkaPublisher) Handle(ctx context.Context, event shared.DomainEvent) error {
	ctx, span := telemetry.StartSpan(ctx, "kafka.publish",
		telemetry.WithSpanKind(trace.SpanKindProducer),
		telemetry.WithAttribute("messaging.system", "kafka"),
	)
	defer span.End()
	telemetry.SetAttribute(span, "messaging.event_type", event.EventType())

	msg, err := p.message(ctx, event)
	if err != nil {
		telemetry.RecordError(span, err)
		return err
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		telemetry.RecordError(span, err)
		return fmt.Errorf("failed to write %s to kafka: %w", event.EventType(), err)
	}
	p.logger.Debug("Event published",
		zap.String("event_type", event.EventType()),
		zap.String("event_id", event.EventID().String()),
		zap.String("tenant_id", event.TenantID().String()),
		zap.String("trace_id", telemetry.GetTraceID(ctx)),
		zap.String("span_id", telemetry.GetSpanID(ctx)),
	)
	return nil
}

func (p *KafkaPublisher) message(ctx context.Context, event shared.DomainEvent) (kafka.Message, error) {
	env, err := NewEnvelope(event)
	if err != nil {
		return kafka.Message{}, err
	}
	value, err := json.Marshal(env)
	if err != nil {
		return kafka.Message{}, fmt.Errorf("failed to encode envelope: %w", err)
	}

	headers := HeaderCarrier{
		{Key: HeaderEventType, Value: []byte(env.Type)},
		{Key: HeaderSchemaVersion, Value: []byte(strconv.Itoa(env.Version))},
	}
	otel.GetTextMapPropagator().Inject(ctx, &headers)

	return kafka.Message{
		Key:     []byte(env.TenantID.String()),
		Value:   value,
		Headers: headers,
		Time:    env.Timestamp,
	}, nil
}

// Close flushes pending messages and closes the writer.
func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// HeaderCarrier adapts Kafka message headers to propagation.TextMapCarrier.
type HeaderCarrier []kafka.Header

// Get returns the first value stored under key.
func (c *HeaderCarrier) Get(key string) string {
	for _, h := range *c {
		if h.Key == key {
			return string(h.Value)
		}
	}
	return ""
}

// Set replaces or appends key.
func (c *HeaderCarrier) Set(key, value string) {
	for i, h := range *c {
		if h.Key == key {
			(*c)[i].Value = []byte(value)
			return
		}
	}
	*c = append(*c, kafka.Header{Key: key, Value: []byte(value)})
}

// Keys lists the header names.
func (c *HeaderCarrier) Keys() []string {
	keys := make([]string, len(*c))
	for i, h := range *c {
		keys[i] = h.Key
	}
	return keys
}
