package usecase

import (
	"context"
	"dashboard-service/internal/contextkeys"
	"dashboard-service/internal/core/domain"
	"dashboard-service/internal/core/port"
	"strings"
)

type DeleteConsultationUseCase struct {
	backend port.ConsultationBackendPort
	events  port.ConsultationEventsPort
}

func NewDeleteConsultationUseCase(backend port.ConsultationBackendPort, events port.ConsultationEventsPort) *DeleteConsultationUseCase {
	return &DeleteConsultationUseCase{backend: backend, events: events}
}

func (uc *DeleteConsultationUseCase) Execute(ctx context.Context, id string) error {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{"use_case": "DeleteConsultation", "consultation_id": id})

	if strings.TrimSpace(id) == "" {
		return domain.NewValidationError("consultation id is required")
	}

	if err := uc.backend.DeleteConsultation(ctx, id); err != nil {
		ucLogger.Error("Failed to delete consultation", err, nil)
		return err
	}

	publishEvent(ctx, uc.events, domain.NewConsultationEvent(domain.EventConsultationDeleted, id), ucLogger)

	ucLogger.Info("Consultation deleted", nil)
	return nil
}
