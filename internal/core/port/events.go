package port

import (
	"context"
	"dashboard-service/internal/core/domain"
)

// ConsultationEventsPort публикует события об изменениях заявок.
type ConsultationEventsPort interface {
	PublishConsultationEvent(ctx context.Context, event domain.ConsultationEvent) error
}

// MarketEventsPort публикует события о новых снимках рынка.
type MarketEventsPort interface {
	PublishSnapshotRefreshed(ctx context.Context, event domain.MarketSnapshotEvent) error
}
