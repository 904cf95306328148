package nats

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"

	"github.com/VytautasPliadis/Recommendation-Engine/internal/config"
	"github.com/VytautasPliadis/Recommendation-Engine/pkg/interfaces"
)

// EventEnvelope wraps a domain event for transport.
type EventEnvelope struct {
	ID          string      `json:"id"`
	EventType   string      `json:"event_type"`
	AggregateID string      `json:"aggregate_id"`
	OccurredAt  int64       `json:"occurred_at"`
	Data        interface{} `json:"data"`
}

// Publisher forwards domain events from the in-process event bus to a
// NATS JetStream stream. It implements interfaces.EventHandler so it
// can be subscribed per event type.
type Publisher struct {
	nc     *nats.Conn
	js     jetstream.JetStream
	stream string
	logger interfaces.Logger
}

// NewPublisher connects to NATS and ensures the target stream exists.
func NewPublisher(cfg config.NATSConfig, logger interfaces.Logger) (*Publisher, error) {
	opts := []nats.Option{
		nats.Name(cfg.ClientID),
		nats.MaxReconnects(cfg.MaxReconnect),
		nats.ReconnectWait(cfg.ReconnectWait),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			if err != nil {
				logger.Error("NATS disconnected", interfaces.Error(err))
			}
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Info("NATS reconnected", interfaces.String("url", nc.ConnectedUrl()))
		}),
	}

	nc, err := nats.Connect(cfg.URL, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	js, err := jetstream.New(nc)
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("failed to create JetStream context: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	_, err = js.CreateOrUpdateStream(ctx, jetstream.StreamConfig{
		Name:     cfg.StreamName,
		Subjects: []string{"catalog.>", "ingest.>"},
		Storage:  jetstream.FileStorage,
	})
	if err != nil {
		nc.Close()
		return nil, fmt.Errorf("failed to ensure stream %s: %w", cfg.StreamName, err)
	}

	return &Publisher{
		nc:     nc,
		js:     js,
		stream: cfg.StreamName,
		logger: logger,
	}, nil
}

// Handle forwards one event to JetStream.
func (p *Publisher) Handle(ctx context.Context, event interfaces.Event) error {
	envelope := EventEnvelope{
		ID:          uuid.NewString(),
		EventType:   event.EventType(),
		AggregateID: event.AggregateID(),
		OccurredAt:  event.Timestamp(),
		Data:        event,
	}

	data, err := json.Marshal(envelope)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	pubCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err = p.js.Publish(pubCtx, event.EventType(), data,
		jetstream.WithMsgID(envelope.ID))
	if err != nil {
		p.logger.Error("Failed to publish event",
			interfaces.String("event_type", event.EventType()),
			interfaces.Error(err))
		return fmt.Errorf("failed to publish event: %w", err)
	}

	p.logger.Debug("Event forwarded",
		interfaces.String("event_type", event.EventType()),
		interfaces.String("aggregate_id", event.AggregateID()))
	return nil
}

// EventType marks the forwarder as a catch-all handler; it is
// subscribed explicitly per event type.
func (p *Publisher) EventType() string {
	return "nats-forwarder"
}

// SubscribeAll registers the forwarder for every given event type.
func (p *Publisher) SubscribeAll(bus interfaces.EventBus, eventTypes ...string) error {
	for _, eventType := range eventTypes {
		if err := bus.Subscribe(eventType, p); err != nil {
			return err
		}
	}
	return nil
}

// Close drains the NATS connection.
func (p *Publisher) Close() {
	if p.nc != nil {
		p.nc.Drain()
	}
}
