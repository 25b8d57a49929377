package usecases_port

import (
	"context"
	"dashboard-service/internal/core/domain"
)

type GetDashboardUseCase interface {
	Execute(ctx context.Context) (*domain.DashboardAggregate, error)
}

type RefreshDashboardUseCase interface {
	Execute(ctx context.Context) (*domain.DashboardAggregate, error)
}
