package port

import (
	"context"
	"dashboard-service/internal/core/domain"
)

// ConsultationBackendPort - бэкенд управления заявками. Все методы работают
// от имени пользователя, чей токен лежит в контексте.
type ConsultationBackendPort interface {
	ListConsultations(ctx context.Context, q domain.ConsultationQuery) (*domain.ConsultationPage, error)
	GetConsultation(ctx context.Context, id string) (*domain.Consultation, error)
	UpdateNotes(ctx context.Context, id string, adminNotes string) (*domain.Consultation, error)
	UpdateStatus(ctx context.Context, id string, update domain.StatusUpdate) (*domain.Consultation, error)
	SendMessage(ctx context.Context, id string, message string) (*domain.Consultation, error)
	DeleteConsultation(ctx context.Context, id string) error
}
