package usecases_port

import (
	"context"
	"dashboard-service/internal/core/domain"
)

type ListAssetsUseCase interface {
	Execute(ctx context.Context, q domain.AssetQuery) (*domain.Page[domain.Asset], error)
}
