package usecase

import (
	"context"
	"dashboard-service/internal/contextkeys"
	"dashboard-service/internal/core/domain"
	"dashboard-service/internal/core/port"
	"strings"
)

type GetConsultationUseCase struct {
	backend port.ConsultationBackendPort
}

func NewGetConsultationUseCase(backend port.ConsultationBackendPort) *GetConsultationUseCase {
	return &GetConsultationUseCase{backend: backend}
}

func (uc *GetConsultationUseCase) Execute(ctx context.Context, id string) (*domain.ConsultationWithTransitions, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{"use_case": "GetConsultation", "consultation_id": id})

	if strings.TrimSpace(id) == "" {
		return nil, domain.NewValidationError("consultation id is required")
	}

	c, err := uc.backend.GetConsultation(ctx, id)
	if err != nil {
		ucLogger.Error("Failed to get consultation", err, nil)
		return nil, err
	}

	return withTransitions(c), nil
}

func withTransitions(c *domain.Consultation) *domain.ConsultationWithTransitions {
	return &domain.ConsultationWithTransitions{
		Consultation:        *c,
		AllowedNextStatuses: domain.AllowedNextStatuses(c.Status),
	}
}

// publishEvent отправляет событие, если публикатор настроен. Ошибка только логируется:
// изменение в бэкенде к этому моменту уже выполнено. Публикация не отменяется
// вместе с запросом, поэтому идет в отвязанном контексте.
func publishEvent(ctx context.Context, events port.ConsultationEventsPort, event domain.ConsultationEvent, logger port.LoggerPort) {
	if events == nil {
		return
	}
	if err := events.PublishConsultationEvent(contextkeys.Detach(ctx), event); err != nil {
		logger.Error("Failed to publish consultation event", err, port.Fields{"event_type": event.EventType})
	}
}
