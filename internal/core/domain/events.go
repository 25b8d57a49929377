package domain

import (
	"time"

	"github.com/google/uuid"
)

// Имена и версии событий, которые сервис публикует в брокер.
const (
	EventConsultationStatusChanged = "ConsultationStatusChangedEvent"
	EventConsultationNotesUpdated  = "ConsultationNotesUpdatedEvent"
	EventConsultationMessageSent   = "ConsultationMessageSentEvent"
	EventConsultationDeleted       = "ConsultationDeletedEvent"
	EventMarketSnapshotRefreshed   = "MarketSnapshotRefreshedEvent"

	EventVersionV1 = "1.0.0"
)

// ConsultationEvent - событие об изменении заявки администратором.
type ConsultationEvent struct {
	EventID        uuid.UUID `json:"event_id"`
	EventType      string    `json:"-"`
	ConsultationID string    `json:"consultation_id"`
	OccurredAt     time.Time `json:"occurred_at"`

	PreviousStatus Status  `json:"previous_status,omitempty"`
	NewStatus      Status  `json:"new_status,omitempty"`
	AdminNotes     *string `json:"admin_notes,omitempty"`
	Message        string  `json:"message,omitempty"`
}

func NewConsultationEvent(eventType, consultationID string) ConsultationEvent {
	return ConsultationEvent{
		EventID:        uuid.New(),
		EventType:      eventType,
		ConsultationID: consultationID,
		OccurredAt:     time.Now().UTC(),
	}
}

// MarketSnapshotEvent - событие о новом снимке рынка.
type MarketSnapshotEvent struct {
	EventID        uuid.UUID `json:"event_id"`
	CapturedAt     time.Time `json:"captured_at"`
	TotalMarketCap float64   `json:"total_market_cap"`
	TotalVolume    float64   `json:"total_volume"`
	FearGreedIndex int       `json:"fear_greed_index"`
	Sentiment      Sentiment `json:"sentiment"`
	AssetsTracked  int       `json:"assets_tracked"`
}
