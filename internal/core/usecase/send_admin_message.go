package usecase

import (
	"context"
	"dashboard-service/internal/contextkeys"
	"dashboard-service/internal/core/domain"
	"dashboard-service/internal/core/port"
	"strings"
)

type SendAdminMessageUseCase struct {
	backend port.ConsultationBackendPort
	events  port.ConsultationEventsPort
}

func NewSendAdminMessageUseCase(backend port.ConsultationBackendPort, events port.ConsultationEventsPort) *SendAdminMessageUseCase {
	return &SendAdminMessageUseCase{backend: backend, events: events}
}

func (uc *SendAdminMessageUseCase) Execute(ctx context.Context, id string, message string) (*domain.Consultation, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{"use_case": "SendAdminMessage", "consultation_id": id})

	if strings.TrimSpace(id) == "" {
		return nil, domain.NewValidationError("consultation id is required")
	}
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, domain.NewValidationError("message must not be empty")
	}

	updated, err := uc.backend.SendMessage(ctx, id, message)
	if err != nil {
		ucLogger.Error("Failed to send admin message", err, nil)
		return nil, err
	}

	event := domain.NewConsultationEvent(domain.EventConsultationMessageSent, id)
	event.Message = message
	publishEvent(ctx, uc.events, event, ucLogger)

	ucLogger.Info("Admin message sent", port.Fields{"messages_total": len(updated.AdminMessages)})
	return updated, nil
}
