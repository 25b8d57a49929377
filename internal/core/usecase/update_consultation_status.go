package usecase

import (
	"context"
	"dashboard-service/internal/contextkeys"
	"dashboard-service/internal/core/domain"
	"dashboard-service/internal/core/port"
	"fmt"
	"strings"
)

type UpdateConsultationStatusUseCase struct {
	backend port.ConsultationBackendPort
	events  port.ConsultationEventsPort
}

// NewUpdateConsultationStatusUseCase - events может быть nil, тогда события не публикуются.
func NewUpdateConsultationStatusUseCase(backend port.ConsultationBackendPort, events port.ConsultationEventsPort) *UpdateConsultationStatusUseCase {
	return &UpdateConsultationStatusUseCase{backend: backend, events: events}
}

// Execute переводит заявку в новый статус. Переход проверяется по политике
// до отправки запроса, недопустимый переход в бэкенд не уходит.
func (uc *UpdateConsultationStatusUseCase) Execute(ctx context.Context, id string, status string, adminNotes *string) (*domain.ConsultationWithTransitions, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":        "UpdateConsultationStatus",
		"consultation_id": id,
		"target_status":   status,
	})
	ucLogger.Info("Use case started", nil)

	if strings.TrimSpace(id) == "" {
		return nil, domain.NewValidationError("consultation id is required")
	}
	target, err := domain.ParseStatus(status)
	if err != nil {
		return nil, err
	}

	current, err := uc.backend.GetConsultation(ctx, id)
	if err != nil {
		ucLogger.Error("Failed to load current consultation", err, nil)
		return nil, err
	}

	if !domain.CanTransition(current.Status, target) {
		ucLogger.Warn("Status transition rejected", port.Fields{"current_status": current.Status})
		return nil, domain.ErrInvalidTransition(current.Status, target)
	}

	updated, err := uc.backend.UpdateStatus(ctx, id, domain.StatusUpdate{Status: target, AdminNotes: adminNotes})
	if err != nil {
		ucLogger.Error("Failed to update consultation status", err, nil)
		return nil, fmt.Errorf("update status of %s: %w", id, err)
	}

	event := domain.NewConsultationEvent(domain.EventConsultationStatusChanged, id)
	event.PreviousStatus = current.Status
	event.NewStatus = updated.Status
	event.AdminNotes = adminNotes
	publishEvent(ctx, uc.events, event, ucLogger)

	ucLogger.Info("Use case finished successfully", port.Fields{"previous_status": current.Status, "new_status": updated.Status})
	return withTransitions(updated), nil
}
