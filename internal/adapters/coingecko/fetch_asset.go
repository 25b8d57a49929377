package coingecko

import (
	"context"
	"dashboard-service/internal/core/domain"
	"net/url"
	"strconv"
)

func (a *CoinGeckoAdapter) FetchAssetDetail(ctx context.Context, id string) (*domain.AssetDetail, error) {
	params := url.Values{}
	params.Set("localization", "false")
	params.Set("tickers", "false")
	params.Set("market_data", "true")
	params.Set("sparkline", "false")

	var dto coinDetailDTO
	if err := a.getJSON(ctx, "FetchAssetDetail", "/coins/"+url.PathEscape(id), params, &dto); err != nil {
		return nil, err
	}
	detail := toAssetDetail(dto)
	return &detail, nil
}

func (a *CoinGeckoAdapter) FetchAssetChart(ctx context.Context, id string, days int) (*domain.AssetChart, error) {
	params := url.Values{}
	params.Set("vs_currency", usd)
	params.Set("days", strconv.Itoa(days))

	var resp marketChartResponse
	if err := a.getJSON(ctx, "FetchAssetChart", "/coins/"+url.PathEscape(id)+"/market_chart", params, &resp); err != nil {
		return nil, err
	}

	return &domain.AssetChart{
		AssetID:      id,
		Days:         days,
		Prices:       toPricePoints(resp.Prices),
		MarketCaps:   toPricePoints(resp.MarketCaps),
		TotalVolumes: toPricePoints(resp.TotalVolumes),
	}, nil
}
