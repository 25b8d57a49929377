package usecase

import (
	"context"
	"dashboard-service/internal/contextkeys"
	"dashboard-service/internal/core/domain"
	"dashboard-service/internal/core/port"
	"dashboard-service/internal/core/query"
	"dashboard-service/internal/core/view"
	"time"
)

// ListAssetsUseCase отдает страницу списка активов. Сам список кэшируется
// в состоянии экрана и перезагружается, когда устаревает.
type ListAssetsUseCase struct {
	marketData port.MarketDataPort
	state      *view.State[[]domain.Asset]
	limit      int
	maxAge     time.Duration
}

func NewListAssetsUseCase(marketData port.MarketDataPort, state *view.State[[]domain.Asset], limit int, maxAge time.Duration) *ListAssetsUseCase {
	if limit <= 0 {
		limit = 100
	}
	return &ListAssetsUseCase{
		marketData: marketData,
		state:      state,
		limit:      limit,
		maxAge:     maxAge,
	}
}

func (uc *ListAssetsUseCase) Execute(ctx context.Context, q domain.AssetQuery) (*domain.Page[domain.Asset], error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case": "ListAssets",
		"search":   q.Search,
		"category": q.Category,
		"sort_by":  q.SortBy,
		"page":     q.Page,
	})

	assets, err := uc.loadAssets(ctx, ucLogger)
	if err != nil {
		return nil, err
	}

	page := query.QueryAssets(assets, q)
	ucLogger.Debug("Assets page built", port.Fields{"total_items": page.TotalItems, "items": len(page.Items)})
	return &page, nil
}

func (uc *ListAssetsUseCase) loadAssets(ctx context.Context, logger port.LoggerPort) ([]domain.Asset, error) {
	if snap, fresh := uc.state.Fresh(uc.maxAge); fresh {
		return snap.Data, nil
	}

	seq := uc.state.Begin()
	req := domain.DefaultMarketsRequest()
	req.PerPage = uc.limit

	logger.Info("Asset list is empty or stale, fetching", port.Fields{"per_page": req.PerPage})
	assets, err := uc.marketData.FetchMarkets(ctx, req)
	if err != nil {
		logger.Error("Failed to fetch asset list", err, nil)
		uc.state.Fail(seq, err)
		return nil, err
	}

	if !uc.state.Commit(seq, assets) {
		logger.Debug("Asset list fetch superseded by a newer one", port.Fields{"seq": seq})
	}
	return assets, nil
}
