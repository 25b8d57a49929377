package coingecko

import (
	"context"
	"dashboard-service/internal/contextkeys"
	"dashboard-service/internal/core/domain"
	"dashboard-service/internal/core/port"
	"net/url"
	"strconv"
)

func (a *CoinGeckoAdapter) FetchMarkets(ctx context.Context, req domain.MarketsRequest) ([]domain.Asset, error) {
	params := url.Values{}
	params.Set("vs_currency", req.VsCurrency)
	params.Set("order", req.Order)
	params.Set("per_page", strconv.Itoa(req.PerPage))
	params.Set("page", strconv.Itoa(req.Page))
	params.Set("sparkline", strconv.FormatBool(req.Sparkline))
	if req.PriceChangePercentage != "" {
		params.Set("price_change_percentage", req.PriceChangePercentage)
	}

	var dtos []marketDTO
	if err := a.getJSON(ctx, "FetchMarkets", "/coins/markets", params, &dtos); err != nil {
		return nil, err
	}

	assets := make([]domain.Asset, 0, len(dtos))
	for _, d := range dtos {
		assets = append(assets, toAsset(d))
	}

	contextkeys.LoggerFromContext(ctx).Debug("Markets fetched", port.Fields{
		"component": "CoinGeckoAdapter",
		"count":     len(assets),
	})
	return assets, nil
}

func (a *CoinGeckoAdapter) FetchGlobalStats(ctx context.Context) (*domain.GlobalStats, error) {
	var resp globalResponse
	if err := a.getJSON(ctx, "FetchGlobalStats", "/global", nil, &resp); err != nil {
		return nil, err
	}
	stats := toGlobalStats(resp)
	return &stats, nil
}

// FetchTrendingCount возвращает только число трендовых монет: дашборду нужен счетчик.
func (a *CoinGeckoAdapter) FetchTrendingCount(ctx context.Context) (int, error) {
	var resp trendingResponse
	if err := a.getJSON(ctx, "FetchTrendingCount", "/search/trending", nil, &resp); err != nil {
		return 0, err
	}
	return len(resp.Coins), nil
}
