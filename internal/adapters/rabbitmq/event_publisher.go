package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"dashboard-service/internal/constants"
	"dashboard-service/internal/contextkeys"
	"dashboard-service/internal/contracts"
	"dashboard-service/internal/core/domain"
	"dashboard-service/internal/core/port"

	amqp "github.com/rabbitmq/amqp091-go"
)

const publishTimeout = 10 * time.Second

// publisher - то, что нужно адаптеру от rabbitmq_producer.Publisher.
type publisher interface {
	Publish(ctx context.Context, routingKey string, msg amqp.Publishing) error
}

var consultationRoutingKeys = map[string]string{
	domain.EventConsultationStatusChanged: constants.ConsultationStatusChangedRoutingKey,
	domain.EventConsultationNotesUpdated:  constants.ConsultationNotesUpdatedRoutingKey,
	domain.EventConsultationMessageSent:   constants.ConsultationMessageSentRoutingKey,
	domain.EventConsultationDeleted:       constants.ConsultationDeletedRoutingKey,
}

// EventPublisherAdapter публикует события заявок и снимков рынка
// в обменник сервиса.
type EventPublisherAdapter struct {
	producer publisher
	now      func() time.Time
}

func NewEventPublisherAdapter(producer publisher) (*EventPublisherAdapter, error) {
	if producer == nil {
		return nil, fmt.Errorf("producer cannot be nil")
	}
	return &EventPublisherAdapter{producer: producer, now: time.Now}, nil
}

func (a *EventPublisherAdapter) PublishConsultationEvent(ctx context.Context, event domain.ConsultationEvent) error {
	routingKey, ok := consultationRoutingKeys[event.EventType]
	if !ok {
		return fmt.Errorf("unknown consultation event type %q", event.EventType)
	}
	return a.publish(ctx, routingKey, event.EventType, event)
}

func (a *EventPublisherAdapter) PublishSnapshotRefreshed(ctx context.Context, event domain.MarketSnapshotEvent) error {
	return a.publish(ctx, constants.MarketSnapshotRefreshedRoutingKey, domain.EventMarketSnapshotRefreshed, event)
}

func (a *EventPublisherAdapter) publish(ctx context.Context, routingKey, eventType string, event interface{}) error {
	logger := contextkeys.LoggerFromContext(ctx)
	adapterLogger := logger.WithFields(port.Fields{
		"component":   "EventPublisherAdapter",
		"routing_key": routingKey,
		"event_type":  eventType,
	})

	body, err := json.Marshal(event)
	if err != nil {
		adapterLogger.Error("Failed to marshal event to JSON", err, nil)
		return fmt.Errorf("marshal %s: %w", eventType, err)
	}

	// схема проверяется до отправки, чтобы потребители не получили невалидное событие
	if err := contracts.ValidateEvent(eventType, domain.EventVersionV1, body); err != nil {
		adapterLogger.Error("Event does not match its schema", err, nil)
		return fmt.Errorf("validate %s: %w", eventType, err)
	}

	msg := amqp.Publishing{
		ContentType:  "application/json",
		Body:         body,
		DeliveryMode: amqp.Persistent,
		Timestamp:    a.now(),
		Headers: amqp.Table{
			"event_type":    eventType,
			"event_version": domain.EventVersionV1,
		},
	}
	if traceID := contextkeys.TraceIDFromContext(ctx); traceID != "" {
		msg.Headers["x-trace-id"] = traceID
	}

	publishCtx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	if err := a.producer.Publish(publishCtx, routingKey, msg); err != nil {
		adapterLogger.Error("Failed to publish event", err, nil)
		return err
	}

	adapterLogger.Info("Event published", nil)
	return nil
}
