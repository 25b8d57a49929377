package usecases_port

import (
	"context"
	"dashboard-service/internal/core/domain"
)

type GetAssetDetailUseCase interface {
	Execute(ctx context.Context, id string) (*domain.AssetDetail, error)
}

type GetAssetChartUseCase interface {
	Execute(ctx context.Context, id string, days int) (*domain.AssetChart, error)
}
