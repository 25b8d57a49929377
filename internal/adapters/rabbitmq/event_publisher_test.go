package rabbitmq

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"dashboard-service/internal/constants"
	"dashboard-service/internal/contextkeys"
	"dashboard-service/internal/core/domain"
	"dashboard-service/internal/core/port"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

type publishedMessage struct {
	routingKey  string
	msg         amqp.Publishing
	hasDeadline bool
}

type fakePublisher struct {
	published []publishedMessage
	err       error
}

func (f *fakePublisher) Publish(ctx context.Context, routingKey string, msg amqp.Publishing) error {
	_, hasDeadline := ctx.Deadline()
	f.published = append(f.published, publishedMessage{routingKey: routingKey, msg: msg, hasDeadline: hasDeadline})
	return f.err
}

func TestPublishConsultationEvent(t *testing.T) {
	producer := &fakePublisher{}
	adapter, err := NewEventPublisherAdapter(producer)
	if err != nil {
		t.Fatalf("NewEventPublisherAdapter: %v", err)
	}

	ctx := contextkeys.ContextWithTraceID(context.Background(), "trace-123")
	notes := "called the client"
	event := domain.NewConsultationEvent(domain.EventConsultationStatusChanged, "c-1")
	event.PreviousStatus = domain.StatusPending
	event.NewStatus = domain.StatusReviewed
	event.AdminNotes = &notes

	if err := adapter.PublishConsultationEvent(ctx, event); err != nil {
		t.Fatalf("PublishConsultationEvent: %v", err)
	}
	if len(producer.published) != 1 {
		t.Fatalf("published %d messages, want 1", len(producer.published))
	}

	got := producer.published[0]
	if got.routingKey != constants.ConsultationStatusChangedRoutingKey {
		t.Errorf("routing key = %q", got.routingKey)
	}
	if !got.hasDeadline {
		t.Error("publish context has no deadline")
	}
	if got.msg.DeliveryMode != amqp.Persistent || got.msg.ContentType != "application/json" {
		t.Errorf("message = %+v", got.msg)
	}
	if got.msg.Headers["x-trace-id"] != "trace-123" {
		t.Errorf("x-trace-id = %v", got.msg.Headers["x-trace-id"])
	}
	if got.msg.Headers["event_type"] != domain.EventConsultationStatusChanged || got.msg.Headers["event_version"] != domain.EventVersionV1 {
		t.Errorf("headers = %v", got.msg.Headers)
	}

	var body map[string]interface{}
	if err := json.Unmarshal(got.msg.Body, &body); err != nil {
		t.Fatalf("body is not JSON: %v", err)
	}
	if body["new_status"] != "reviewed" || body["admin_notes"] != notes {
		t.Errorf("body = %v", body)
	}
}

func TestPublishWithoutTraceID(t *testing.T) {
	producer := &fakePublisher{}
	adapter, _ := NewEventPublisherAdapter(producer)

	event := domain.NewConsultationEvent(domain.EventConsultationDeleted, "c-2")
	if err := adapter.PublishConsultationEvent(context.Background(), event); err != nil {
		t.Fatalf("PublishConsultationEvent: %v", err)
	}
	if _, ok := producer.published[0].msg.Headers["x-trace-id"]; ok {
		t.Error("x-trace-id header set without trace id in context")
	}
	if producer.published[0].routingKey != constants.ConsultationDeletedRoutingKey {
		t.Errorf("routing key = %q", producer.published[0].routingKey)
	}
}

func TestInvalidEventIsNotPublished(t *testing.T) {
	producer := &fakePublisher{}
	adapter, _ := NewEventPublisherAdapter(producer)

	// для смены статуса new_status обязателен
	event := domain.NewConsultationEvent(domain.EventConsultationStatusChanged, "c-3")
	if err := adapter.PublishConsultationEvent(context.Background(), event); err == nil {
		t.Fatal("expected schema validation error")
	}

	event = domain.NewConsultationEvent("SomethingElseEvent", "c-3")
	if err := adapter.PublishConsultationEvent(context.Background(), event); err == nil {
		t.Fatal("expected error for unknown event type")
	}

	if len(producer.published) != 0 {
		t.Fatalf("published %d invalid messages", len(producer.published))
	}
}

func TestPublishSnapshotRefreshed(t *testing.T) {
	producer := &fakePublisher{err: errors.New("channel closed")}
	adapter, _ := NewEventPublisherAdapter(producer)

	event := domain.MarketSnapshotEvent{
		EventID:        uuid.New(),
		CapturedAt:     time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC),
		TotalMarketCap: 2.5e12,
		TotalVolume:    9.1e10,
		FearGreedIndex: 62,
		Sentiment:      domain.SentimentGreed,
		AssetsTracked:  100,
	}

	err := adapter.PublishSnapshotRefreshed(context.Background(), event)
	if err == nil || err.Error() != "channel closed" {
		t.Fatalf("err = %v, want producer error", err)
	}
	if len(producer.published) != 1 || producer.published[0].routingKey != constants.MarketSnapshotRefreshedRoutingKey {
		t.Fatalf("published = %+v", producer.published)
	}
}

type recordingLogger struct {
	entries []port.Fields
}

func (l *recordingLogger) Info(msg string, fields port.Fields)  { l.entries = append(l.entries, fields) }
func (l *recordingLogger) Warn(msg string, fields port.Fields)  { l.entries = append(l.entries, fields) }
func (l *recordingLogger) Debug(msg string, fields port.Fields) { l.entries = append(l.entries, fields) }
func (l *recordingLogger) Error(msg string, err error, fields port.Fields) {
	l.entries = append(l.entries, fields)
}
func (l *recordingLogger) WithFields(fields port.Fields) port.LoggerPort { return l }

func TestPkgLoggerBridgeSkipsBrokenPairs(t *testing.T) {
	rec := &recordingLogger{}
	bridge := NewPkgLoggerBridge(rec)

	bridge.Info("connected", "name", "dashboard_exchange", 42, "ignored", "dangling")

	if len(rec.entries) != 1 {
		t.Fatalf("entries = %d", len(rec.entries))
	}
	fields := rec.entries[0]
	if len(fields) != 1 || fields["name"] != "dashboard_exchange" {
		t.Fatalf("fields = %v", fields)
	}
}
