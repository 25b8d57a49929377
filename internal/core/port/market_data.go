package port

import (
	"context"
	"dashboard-service/internal/core/domain"
	"time"
)

// MarketDataPort - источник рыночных данных (CoinGecko).
type MarketDataPort interface {
	FetchMarkets(ctx context.Context, req domain.MarketsRequest) ([]domain.Asset, error)
	FetchGlobalStats(ctx context.Context) (*domain.GlobalStats, error)
	FetchTrendingCount(ctx context.Context) (int, error)
	FetchAssetDetail(ctx context.Context, id string) (*domain.AssetDetail, error)
	FetchAssetChart(ctx context.Context, id string, days int) (*domain.AssetChart, error)
}

// TimeSeriesSource отдает усредненные по дням значения рынка за период [from, to].
type TimeSeriesSource interface {
	DailySeries(ctx context.Context, from, to time.Time) ([]domain.SeriesPoint, error)
}

// SnapshotRepositoryPort сохраняет историю снимков рынка.
type SnapshotRepositoryPort interface {
	SaveSnapshot(ctx context.Context, snapshot domain.MarketSnapshot) error
}
