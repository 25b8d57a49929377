package usecase

import (
	"context"
	"dashboard-service/internal/contextkeys"
	"dashboard-service/internal/core/domain"
	"dashboard-service/internal/core/market"
	"dashboard-service/internal/core/port"
	"dashboard-service/internal/core/view"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
)

// DashboardMarketsRequest - выборка, по которой строится дашборд администратора.
func DashboardMarketsRequest() domain.MarketsRequest {
	req := domain.DefaultMarketsRequest()
	req.PerPage = 50
	req.PriceChangePercentage = "24h,7d,30d"
	return req
}

type RefreshDashboardUseCase struct {
	marketData port.MarketDataPort
	history    port.TimeSeriesSource
	snapshots  port.SnapshotRepositoryPort
	events     port.MarketEventsPort
	state      *view.State[domain.DashboardAggregate]
	now        func() time.Time
}

// NewRefreshDashboardUseCase - history, snapshots и events необязательны (могут быть nil).
func NewRefreshDashboardUseCase(marketData port.MarketDataPort,
	history port.TimeSeriesSource,
	snapshots port.SnapshotRepositoryPort,
	events port.MarketEventsPort,
	state *view.State[domain.DashboardAggregate]) *RefreshDashboardUseCase {
	return &RefreshDashboardUseCase{
		marketData: marketData,
		history:    history,
		snapshots:  snapshots,
		events:     events,
		state:      state,
		now:        time.Now,
	}
}

// Execute загружает свежие данные, пересчитывает дашборд и публикует его в состояние экрана.
func (uc *RefreshDashboardUseCase) Execute(ctx context.Context) (*domain.DashboardAggregate, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{"use_case": "RefreshDashboard"})
	ucLogger.Info("Use case started", nil)

	seq := uc.state.Begin()
	now := uc.now()

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error

		assets   []domain.Asset
		global   *domain.GlobalStats
		trending int
		history  []domain.SeriesPoint
	)
	setErr := func(err error) {
		mu.Lock()
		defer mu.Unlock()
		if firstErr == nil {
			firstErr = err
		}
	}

	wg.Add(3)
	go func() {
		defer wg.Done()
		res, err := uc.marketData.FetchMarkets(ctx, DashboardMarketsRequest())
		if err != nil {
			setErr(fmt.Errorf("fetch markets: %w", err))
			return
		}
		assets = res
	}()
	go func() {
		defer wg.Done()
		res, err := uc.marketData.FetchGlobalStats(ctx)
		if err != nil {
			setErr(fmt.Errorf("fetch global stats: %w", err))
			return
		}
		global = res
	}()
	go func() {
		defer wg.Done()
		res, err := uc.marketData.FetchTrendingCount(ctx)
		if err != nil {
			setErr(fmt.Errorf("fetch trending: %w", err))
			return
		}
		trending = res
	}()

	if uc.history != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			window := market.ChartWindow(now)
			res, err := uc.history.DailySeries(ctx, window[0], now)
			if err != nil {
				// без истории график строится по текущему снимку
				ucLogger.Warn("Failed to load market history, falling back to current snapshot", port.Fields{"error": err.Error()})
				return
			}
			history = res
		}()
	}

	wg.Wait()

	if firstErr != nil {
		ucLogger.Error("Failed to refresh dashboard", firstErr, nil)
		uc.state.Fail(seq, firstErr)
		return nil, firstErr
	}

	agg := market.Aggregate(market.Snapshot{
		Assets:        assets,
		Global:        *global,
		TrendingCount: trending,
		History:       history,
		Now:           now,
	})

	if !uc.state.Commit(seq, agg) {
		// устаревший результат не сохраняем и не публикуем
		ucLogger.Warn("Newer dashboard refresh already started, result not committed", port.Fields{"seq": seq})
		return &agg, nil
	}

	snapshot := market.ToSnapshot(agg, assets)
	if uc.snapshots != nil {
		if err := uc.snapshots.SaveSnapshot(ctx, snapshot); err != nil {
			ucLogger.Error("Failed to save market snapshot", err, nil)
		}
	}
	if uc.events != nil {
		event := domain.MarketSnapshotEvent{
			EventID:        uuid.New(),
			CapturedAt:     snapshot.CapturedAt.UTC(),
			TotalMarketCap: snapshot.TotalMarketCap,
			TotalVolume:    snapshot.TotalVolume,
			FearGreedIndex: snapshot.FearGreedIndex,
			Sentiment:      snapshot.Sentiment,
			AssetsTracked:  len(assets),
		}
		if err := uc.events.PublishSnapshotRefreshed(ctx, event); err != nil {
			ucLogger.Error("Failed to publish snapshot event", err, nil)
		}
	}

	ucLogger.Info("Use case finished successfully", port.Fields{
		"assets":    len(assets),
		"sentiment": agg.MarketSentiment.Sentiment,
	})
	return &agg, nil
}
