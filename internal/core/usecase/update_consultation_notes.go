package usecase

import (
	"context"
	"dashboard-service/internal/contextkeys"
	"dashboard-service/internal/core/domain"
	"dashboard-service/internal/core/port"
	"strings"
)

type UpdateConsultationNotesUseCase struct {
	backend port.ConsultationBackendPort
	events  port.ConsultationEventsPort
}

func NewUpdateConsultationNotesUseCase(backend port.ConsultationBackendPort, events port.ConsultationEventsPort) *UpdateConsultationNotesUseCase {
	return &UpdateConsultationNotesUseCase{backend: backend, events: events}
}

func (uc *UpdateConsultationNotesUseCase) Execute(ctx context.Context, id string, adminNotes string) (*domain.Consultation, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{"use_case": "UpdateConsultationNotes", "consultation_id": id})

	if strings.TrimSpace(id) == "" {
		return nil, domain.NewValidationError("consultation id is required")
	}

	updated, err := uc.backend.UpdateNotes(ctx, id, adminNotes)
	if err != nil {
		ucLogger.Error("Failed to update admin notes", err, nil)
		return nil, err
	}

	event := domain.NewConsultationEvent(domain.EventConsultationNotesUpdated, id)
	event.AdminNotes = &adminNotes
	publishEvent(ctx, uc.events, event, ucLogger)

	ucLogger.Info("Admin notes updated", nil)
	return updated, nil
}
