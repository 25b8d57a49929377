package usecase

import (
	"context"
	"dashboard-service/internal/contextkeys"
	"dashboard-service/internal/core/domain"
	"dashboard-service/internal/core/port"
	"fmt"
	"strings"
)

type GetAssetDetailUseCase struct {
	marketData port.MarketDataPort
}

func NewGetAssetDetailUseCase(marketData port.MarketDataPort) *GetAssetDetailUseCase {
	return &GetAssetDetailUseCase{marketData: marketData}
}

func (uc *GetAssetDetailUseCase) Execute(ctx context.Context, id string) (*domain.AssetDetail, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{"use_case": "GetAssetDetail", "asset_id": id})

	id = strings.TrimSpace(id)
	if id == "" {
		return nil, domain.NewValidationError("asset id is required")
	}

	detail, err := uc.marketData.FetchAssetDetail(ctx, id)
	if err != nil {
		ucLogger.Error("Failed to fetch asset detail", err, nil)
		return nil, err
	}
	return detail, nil
}

type GetAssetChartUseCase struct {
	marketData port.MarketDataPort
}

func NewGetAssetChartUseCase(marketData port.MarketDataPort) *GetAssetChartUseCase {
	return &GetAssetChartUseCase{marketData: marketData}
}

func (uc *GetAssetChartUseCase) Execute(ctx context.Context, id string, days int) (*domain.AssetChart, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{"use_case": "GetAssetChart", "asset_id": id, "days": days})

	id = strings.TrimSpace(id)
	if id == "" {
		return nil, domain.NewValidationError("asset id is required")
	}
	if !domain.IsAllowedChartDays(days) {
		return nil, domain.NewValidationError(fmt.Sprintf("days must be one of %v", domain.AllowedChartDays))
	}

	chart, err := uc.marketData.FetchAssetChart(ctx, id, days)
	if err != nil {
		ucLogger.Error("Failed to fetch asset chart", err, nil)
		return nil, err
	}
	return chart, nil
}
