package usecases_port

import (
	"context"
	"dashboard-service/internal/core/domain"
)

type ListConsultationsUseCase interface {
	Execute(ctx context.Context, q domain.ConsultationQuery) (*domain.ConsultationPage, error)
}

type GetConsultationUseCase interface {
	Execute(ctx context.Context, id string) (*domain.ConsultationWithTransitions, error)
}

type UpdateConsultationStatusUseCase interface {
	Execute(ctx context.Context, id string, status string, adminNotes *string) (*domain.ConsultationWithTransitions, error)
}

type UpdateConsultationNotesUseCase interface {
	Execute(ctx context.Context, id string, adminNotes string) (*domain.Consultation, error)
}

type SendAdminMessageUseCase interface {
	Execute(ctx context.Context, id string, message string) (*domain.Consultation, error)
}

type DeleteConsultationUseCase interface {
	Execute(ctx context.Context, id string) error
}
