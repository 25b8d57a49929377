package market

import (
	"dashboard-service/internal/core/domain"
	"math"
	"testing"
	"time"
)

func assetsWithChanges(changes ...float64) []domain.Asset {
	out := make([]domain.Asset, len(changes))
	for i, c := range changes {
		out[i] = domain.Asset{
			ID:                       string(rune('a' + i)),
			Name:                     string(rune('A' + i)),
			Symbol:                   string(rune('a' + i)),
			PriceChangePercentage24h: c,
			CurrentPrice:             float64(10 * (i + 1)),
			MarketCap:                float64(1000 * (i + 1)),
			TotalVolume:              float64(100 * (i + 1)),
		}
	}
	return out
}

func TestTopGainersAndLosers(t *testing.T) {
	assets := assetsWithChanges(10, -5, 30, -20, 2)

	gainers := TopGainers(assets, TopListSize)
	wantG := []float64{30, 10, 2, -5, -20}
	for i, g := range gainers {
		if g.PriceChangePercentage24h != wantG[i] {
			t.Fatalf("gainers[%d] = %v, want %v", i, g.PriceChangePercentage24h, wantG[i])
		}
	}

	losers := TopLosers(assets, TopListSize)
	if losers[0].PriceChangePercentage24h != -20 {
		t.Fatalf("first loser = %v, want -20", losers[0].PriceChangePercentage24h)
	}

	if assets[0].PriceChangePercentage24h != 10 {
		t.Fatal("input slice was reordered")
	}
}

func TestTopListsAreCappedAndStable(t *testing.T) {
	assets := assetsWithChanges(1, 1, 1, 1, 1, 1, 1)

	gainers := TopGainers(assets, TopListSize)
	if len(gainers) != TopListSize {
		t.Fatalf("len = %d, want %d", len(gainers), TopListSize)
	}
	for i, g := range gainers {
		if g.ID != assets[i].ID {
			t.Fatalf("tie order broken at %d: %s", i, g.ID)
		}
	}

	if got := TopLosers(assets[:2], TopListSize); len(got) != 2 {
		t.Fatalf("short list len = %d", len(got))
	}
}

func TestClassifySentiment(t *testing.T) {
	tests := []struct {
		avg       float64
		sentiment domain.Sentiment
		index     int
	}{
		{-12, domain.SentimentExtremeFear, 20},
		{-10, domain.SentimentFear, 35},
		{-5.01, domain.SentimentFear, 35},
		{-5, domain.SentimentNeutral, 50},
		{0, domain.SentimentNeutral, 50},
		{4.99, domain.SentimentNeutral, 50},
		{5, domain.SentimentGreed, 65},
		{7, domain.SentimentGreed, 65},
		{10, domain.SentimentExtremeGreed, 80},
		{42, domain.SentimentExtremeGreed, 80},
	}
	for _, tt := range tests {
		s, idx := ClassifySentiment(tt.avg)
		if s != tt.sentiment || idx != tt.index {
			t.Errorf("ClassifySentiment(%v) = %s/%d, want %s/%d", tt.avg, s, idx, tt.sentiment, tt.index)
		}
	}
}

func TestComputeSentiment(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	got := ComputeSentiment(assetsWithChanges(-14, -10), now)
	if got.Sentiment != domain.SentimentExtremeFear || got.FearGreedIndex != 20 || got.Change24h != -12 {
		t.Errorf("got %+v", got)
	}

	empty := ComputeSentiment(nil, now)
	if empty.Sentiment != domain.SentimentNeutral || empty.FearGreedIndex != 50 {
		t.Errorf("empty list sentiment = %+v", empty)
	}
	if math.IsNaN(empty.Change24h) {
		t.Error("empty list produced NaN")
	}
}

func TestBuildChartSeries(t *testing.T) {
	now := time.Date(2025, 3, 10, 15, 30, 0, 0, time.UTC)
	assets := assetsWithChanges(1, 2) // средние: cap 1500, volume 150, price 15

	history := []domain.SeriesPoint{
		{Day: time.Date(2025, 3, 4, 0, 0, 0, 0, time.UTC), MarketCap: 1, Volume: 2, Price: 3},
		{Day: time.Date(2025, 3, 9, 0, 0, 0, 0, time.UTC), MarketCap: 4, Volume: 5, Price: 6},
		{Day: time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC), MarketCap: 99, Volume: 99, Price: 99},
	}

	series := BuildChartSeries(now, history, assets)

	wantLabels := []string{"Mar 4", "Mar 5", "Mar 6", "Mar 7", "Mar 8", "Mar 9", "Mar 10"}
	if len(series.Labels) != ChartDays {
		t.Fatalf("labels = %v", series.Labels)
	}
	for i, l := range wantLabels {
		if series.Labels[i] != l {
			t.Errorf("label[%d] = %q, want %q", i, series.Labels[i], l)
		}
	}

	if series.MarketCap[0] != 1 || series.Volume[0] != 2 || series.Prices[0] != 3 {
		t.Errorf("day 0 not taken from history: %v %v %v", series.MarketCap[0], series.Volume[0], series.Prices[0])
	}
	if series.MarketCap[5] != 4 {
		t.Errorf("day 5 market cap = %v, want 4", series.MarketCap[5])
	}
	for _, i := range []int{1, 2, 3, 4, 6} {
		if series.MarketCap[i] != 1500 || series.Volume[i] != 150 || series.Prices[i] != 15 {
			t.Errorf("day %d fallback = %v/%v/%v", i, series.MarketCap[i], series.Volume[i], series.Prices[i])
		}
	}

	// без случайного шума повторный расчет дает те же ряды
	again := BuildChartSeries(now, history, assets)
	for i := range again.MarketCap {
		if again.MarketCap[i] != series.MarketCap[i] {
			t.Fatal("chart series is not deterministic")
		}
	}
}

func TestAggregate(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	assets := assetsWithChanges(10, -5, 30, -20, 2, 8)
	assets[2].Name = "Solana"
	assets[2].Symbol = "sol"

	agg := Aggregate(Snapshot{
		Assets: assets,
		Global: domain.GlobalStats{
			TotalMarketCapUSD: 2.5e12,
			TotalVolumeUSD:    9.8e10,
			BTCDominance:      52.1,
			ETHDominance:      17.3,
		},
		TrendingCount: 15,
		Now:           now,
	})

	if agg.Summary.BTCDominance != 52.1 || agg.Summary.ETHDominance != 17.3 {
		t.Errorf("dominance must pass through, got %+v", agg.Summary)
	}
	if agg.Summary.Trending != 15 || agg.Summary.TopGainers != 5 || agg.Summary.TopLosers != 5 {
		t.Errorf("summary counts = %+v", agg.Summary)
	}
	if agg.TopGainers[0].Symbol != "sol" {
		t.Errorf("top gainer = %+v", agg.TopGainers[0])
	}

	if len(agg.RecentActivities) != 3 {
		t.Fatalf("activities = %d", len(agg.RecentActivities))
	}
	first := agg.RecentActivities[0]
	if first.Title != "Solana Price Surge" || first.Description != "sol up 30.00% today" || first.CryptoSymbol != "sol" || first.Read {
		t.Errorf("price alert = %+v", first)
	}
	if agg.RecentActivities[1].Description != "6 cryptocurrencies tracked" {
		t.Errorf("tracked = %q", agg.RecentActivities[1].Description)
	}
	if agg.RecentActivities[2].Description != "Total market cap: $2.50T" {
		t.Errorf("summary = %q", agg.RecentActivities[2].Description)
	}

	if len(agg.Watchlist) != 3 {
		t.Fatalf("watchlist = %d", len(agg.Watchlist))
	}
	w := agg.Watchlist[0]
	if math.Abs(w.TargetPrice-assets[2].CurrentPrice*1.1) > 1e-9 || w.Notes != "Top gainer" {
		t.Errorf("watchlist[0] = %+v", w)
	}
	if !w.AddedAt.Equal(now.AddDate(0, 0, -7)) || !agg.Watchlist[2].AddedAt.Equal(now.AddDate(0, 0, -9)) {
		t.Errorf("added_at = %v / %v", w.AddedAt, agg.Watchlist[2].AddedAt)
	}
}

func TestAggregateEmptySnapshot(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)
	agg := Aggregate(Snapshot{Now: now})

	if agg.MarketSentiment.FearGreedIndex != 50 {
		t.Errorf("sentiment = %+v", agg.MarketSentiment)
	}
	if len(agg.TopGainers) != 0 || len(agg.Watchlist) != 0 {
		t.Error("expected empty top lists")
	}
	if agg.RecentActivities[0].Title != "Bitcoin Price Surge" {
		t.Errorf("fallback activity = %+v", agg.RecentActivities[0])
	}
	for _, v := range agg.ChartData.Prices {
		if v != 0 {
			t.Fatalf("expected zero fallback series, got %v", agg.ChartData.Prices)
		}
	}
}
