package usecase

import (
	"context"
	"dashboard-service/internal/contextkeys"
	"dashboard-service/internal/core/domain"
	"dashboard-service/internal/core/port"
	"dashboard-service/internal/core/query"
)

type ListConsultationsUseCase struct {
	backend port.ConsultationBackendPort
}

func NewListConsultationsUseCase(backend port.ConsultationBackendPort) *ListConsultationsUseCase {
	return &ListConsultationsUseCase{backend: backend}
}

// Execute запрашивает страницу заявок у бэкенда и повторно применяет к ней
// поиск, фильтры и сортировку. Пагинация и статистика остаются бэкендовыми.
func (uc *ListConsultationsUseCase) Execute(ctx context.Context, q domain.ConsultationQuery) (*domain.ConsultationPage, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case": "ListConsultations",
		"page":     q.Page,
		"sort_by":  q.SortBy,
	})
	ucLogger.Info("Use case started", nil)

	page, err := uc.backend.ListConsultations(ctx, q)
	if err != nil {
		ucLogger.Error("Failed to list consultations", err, nil)
		return nil, err
	}

	local := q
	local.PageSize = 0
	local.Page = 1
	page.Consultations = query.QueryConsultations(page.Consultations, local).Items

	ucLogger.Info("Use case finished successfully", port.Fields{
		"returned":    len(page.Consultations),
		"total_items": page.Pagination.TotalItems,
	})
	return page, nil
}
