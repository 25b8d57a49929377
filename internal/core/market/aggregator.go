// Package market derives the dashboard aggregate from a flat asset snapshot.
// Everything here is pure: the caller supplies the clock and the history.
package market

import (
	"cmp"
	"dashboard-service/internal/core/domain"
	"fmt"
	"slices"
	"strconv"
	"time"
)

const (
	TopListSize   = 5
	WatchlistSize = 3

	watchlistTargetFactor = 1.1
)

// Snapshot - все, что нужно для расчета дашборда за один цикл загрузки.
type Snapshot struct {
	Assets        []domain.Asset
	Global        domain.GlobalStats
	TrendingCount int
	History       []domain.SeriesPoint
	Now           time.Time
}

// Aggregate пересчитывает дашборд целиком из снимка.
func Aggregate(s Snapshot) domain.DashboardAggregate {
	gainers := TopGainers(s.Assets, TopListSize)
	losers := TopLosers(s.Assets, TopListSize)

	return domain.DashboardAggregate{
		Summary: domain.DashboardSummary{
			TotalMarketCap:         s.Global.TotalMarketCapUSD,
			TotalVolume:            s.Global.TotalVolumeUSD,
			BTCDominance:           s.Global.BTCDominance,
			ETHDominance:           s.Global.ETHDominance,
			MarketCapChange24h:     s.Global.MarketCapChange24hUSD,
			ActiveCryptocurrencies: s.Global.ActiveCryptocurrencies,
			Markets:                s.Global.Markets,
			Trending:               s.TrendingCount,
			TopGainers:             len(gainers),
			TopLosers:              len(losers),
		},
		ChartData:        BuildChartSeries(s.Now, s.History, s.Assets),
		TopGainers:       toPerformers(gainers),
		TopLosers:        toPerformers(losers),
		RecentActivities: RecentActivities(gainers, len(s.Assets), s.Global.TotalMarketCapUSD, s.Now),
		MarketSentiment:  ComputeSentiment(s.Assets, s.Now),
		Watchlist:        Watchlist(gainers, s.Now),
		LastUpdated:      s.Now,
	}
}

// TopGainers - первые n активов по убыванию изменения за 24ч. При равенстве
// сохраняется исходный порядок.
func TopGainers(assets []domain.Asset, n int) []domain.Asset {
	sorted := slices.Clone(assets)
	slices.SortStableFunc(sorted, func(a, b domain.Asset) int {
		return cmp.Compare(b.PriceChangePercentage24h, a.PriceChangePercentage24h)
	})
	return sorted[:min(n, len(sorted))]
}

// TopLosers - первые n активов по возрастанию изменения за 24ч.
func TopLosers(assets []domain.Asset, n int) []domain.Asset {
	sorted := slices.Clone(assets)
	slices.SortStableFunc(sorted, func(a, b domain.Asset) int {
		return cmp.Compare(a.PriceChangePercentage24h, b.PriceChangePercentage24h)
	})
	return sorted[:min(n, len(sorted))]
}

var sentimentBands = []struct {
	below     float64
	sentiment domain.Sentiment
	index     int
}{
	{-10, domain.SentimentExtremeFear, 20},
	{-5, domain.SentimentFear, 35},
	{5, domain.SentimentNeutral, 50},
	{10, domain.SentimentGreed, 65},
}

// ClassifySentiment переводит среднее изменение в полосу индекса.
func ClassifySentiment(avgChange float64) (domain.Sentiment, int) {
	for _, b := range sentimentBands {
		if avgChange < b.below {
			return b.sentiment, b.index
		}
	}
	return domain.SentimentExtremeGreed, 80
}

// ComputeSentiment считает настроение рынка. Пустой список - Neutral/50.
func ComputeSentiment(assets []domain.Asset, now time.Time) domain.MarketSentiment {
	if len(assets) == 0 {
		return domain.MarketSentiment{
			FearGreedIndex: 50,
			Sentiment:      domain.SentimentNeutral,
			LastUpdated:    now,
		}
	}

	var total float64
	for _, a := range assets {
		total += a.PriceChangePercentage24h
	}
	avg := total / float64(len(assets))
	sentiment, index := ClassifySentiment(avg)

	return domain.MarketSentiment{
		FearGreedIndex: index,
		Sentiment:      sentiment,
		Change24h:      avg,
		LastUpdated:    now,
	}
}

func toPerformers(assets []domain.Asset) []domain.TopPerformer {
	out := make([]domain.TopPerformer, len(assets))
	for i, a := range assets {
		out[i] = domain.TopPerformer{
			ID:                       a.ID,
			Name:                     a.Name,
			Symbol:                   a.Symbol,
			PriceChange24h:           a.PriceChange24h,
			PriceChangePercentage24h: a.PriceChangePercentage24h,
			Volume:                   a.TotalVolume,
			MarketCap:                a.MarketCap,
		}
	}
	return out
}

// RecentActivities собирает ленту событий из лидера роста, размера списка и капитализации.
func RecentActivities(gainers []domain.Asset, tracked int, totalMarketCap float64, now time.Time) []domain.RecentActivity {
	name, symbol, change := "Bitcoin", "BTC", "5.0"
	if len(gainers) > 0 {
		name = gainers[0].Name
		symbol = gainers[0].Symbol
		change = FixedTwo(gainers[0].PriceChangePercentage24h)
	}

	return []domain.RecentActivity{
		{
			ID:           "1",
			Type:         domain.ActivityPriceAlert,
			Title:        fmt.Sprintf("%s Price Surge", name),
			Description:  fmt.Sprintf("%s up %s%% today", symbol, change),
			CryptoSymbol: symbol,
			Timestamp:    now.Add(-1 * time.Hour),
			Read:         false,
		},
		{
			ID:           "2",
			Type:         domain.ActivityWatchlist,
			Title:        "Market Update",
			Description:  fmt.Sprintf("%d cryptocurrencies tracked", tracked),
			CryptoSymbol: "ALL",
			Timestamp:    now.Add(-2 * time.Hour),
			Read:         true,
		},
		{
			ID:           "3",
			Type:         domain.ActivityMarketNews,
			Title:        "Market Summary",
			Description:  fmt.Sprintf("Total market cap: %s", FormatNumber(totalMarketCap)),
			CryptoSymbol: "GENERAL",
			Timestamp:    now.Add(-3 * time.Hour),
			Read:         true,
		},
	}
}

// Watchlist - первые три лидера роста с целевой ценой на 10% выше текущей.
func Watchlist(gainers []domain.Asset, now time.Time) []domain.WatchlistItem {
	top := gainers[:min(WatchlistSize, len(gainers))]
	out := make([]domain.WatchlistItem, len(top))
	for i, a := range top {
		out[i] = domain.WatchlistItem{
			ID:                       strconv.Itoa(i + 1),
			CryptoID:                 a.ID,
			Name:                     a.Name,
			Symbol:                   a.Symbol,
			CurrentPrice:             a.CurrentPrice,
			PriceChange24h:           a.PriceChange24h,
			PriceChangePercentage24h: a.PriceChangePercentage24h,
			TargetPrice:              a.CurrentPrice * watchlistTargetFactor,
			Notes:                    "Top gainer",
			AddedAt:                  now.AddDate(0, 0, -(7 + i)),
		}
	}
	return out
}

// ToSnapshot готовит строку истории из посчитанного дашборда.
func ToSnapshot(agg domain.DashboardAggregate, assets []domain.Asset) domain.MarketSnapshot {
	means := MeansOf(assets)
	return domain.MarketSnapshot{
		CapturedAt:     agg.LastUpdated,
		TotalMarketCap: agg.Summary.TotalMarketCap,
		TotalVolume:    agg.Summary.TotalVolume,
		AvgMarketCap:   means.MarketCap,
		AvgVolume:      means.Volume,
		AvgPrice:       means.Price,
		AvgChange24h:   agg.MarketSentiment.Change24h,
		FearGreedIndex: agg.MarketSentiment.FearGreedIndex,
		Sentiment:      agg.MarketSentiment.Sentiment,
	}
}
