package coingecko

import (
	"context"
	"dashboard-service/internal/contextkeys"
	"dashboard-service/internal/core/domain"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"
)

func newTestAdapter(t *testing.T, h http.HandlerFunc) (*CoinGeckoAdapter, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	a, err := NewCoinGeckoAdapter(Config{BaseURL: srv.URL, APIKey: "demo-key", Timeout: 5 * time.Second})
	if err != nil {
		t.Fatalf("NewCoinGeckoAdapter: %v", err)
	}
	return a, srv
}

func TestFetchMarkets(t *testing.T) {
	var gotQuery url.Values
	var gotKey, gotTrace string
	a, _ := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/coins/markets" {
			http.NotFound(w, r)
			return
		}
		gotQuery = r.URL.Query()
		gotKey = r.Header.Get("x-cg-demo-api-key")
		gotTrace = r.Header.Get("X-Trace-ID")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"id":"bitcoin","symbol":"btc","name":"Bitcoin","current_price":64000.5,"market_cap":1.26e12,
			 "market_cap_rank":1,"total_volume":2.1e10,"high_24h":65000,"low_24h":63000,
			 "price_change_percentage_24h":1.25,"total_supply":21000000,"max_supply":null,
			 "price_change_percentage_7d_in_currency":3.5,"last_updated":"2025-01-02T03:04:05.000Z"},
			{"id":"newcoin","symbol":"new","name":"New Coin","current_price":null,"market_cap_rank":null}
		]`))
	})

	ctx := contextkeys.ContextWithTraceID(context.Background(), "trace-1")
	req := domain.DefaultMarketsRequest()
	req.PriceChangePercentage = "24h,7d,30d"

	assets, err := a.FetchMarkets(ctx, req)
	if err != nil {
		t.Fatalf("FetchMarkets: %v", err)
	}
	if len(assets) != 2 {
		t.Fatalf("len = %d", len(assets))
	}

	btc := assets[0]
	if btc.CurrentPrice != 64000.5 || btc.MarketCapRank != 1 || btc.PriceChangePercentage24h != 1.25 {
		t.Fatalf("btc = %+v", btc)
	}
	if btc.TotalSupply == nil || *btc.TotalSupply != 21000000 || btc.MaxSupply != nil {
		t.Fatalf("supply = %v / %v", btc.TotalSupply, btc.MaxSupply)
	}
	if btc.PriceChangePercentage7d == nil || *btc.PriceChangePercentage7d != 3.5 || btc.PriceChangePercentage30d != nil {
		t.Fatal("change windows not mapped")
	}
	if !btc.LastUpdated.Equal(time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)) {
		t.Fatalf("last_updated = %v", btc.LastUpdated)
	}
	if assets[1].CurrentPrice != 0 || assets[1].MarketCapRank != 0 {
		t.Fatalf("null fields must map to zero: %+v", assets[1])
	}

	if gotKey != "demo-key" || gotTrace != "trace-1" {
		t.Fatalf("headers: key=%q trace=%q", gotKey, gotTrace)
	}
	want := map[string]string{
		"vs_currency":             "usd",
		"order":                   "market_cap_desc",
		"per_page":                "50",
		"page":                    "1",
		"sparkline":               "false",
		"price_change_percentage": "24h,7d,30d",
	}
	for k, v := range want {
		if got := gotQuery.Get(k); got != v {
			t.Fatalf("%s = %q, want %q", k, got, v)
		}
	}
}

func TestFetchGlobalStatsAndTrending(t *testing.T) {
	a, _ := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/global":
			w.Write([]byte(`{"data":{"active_cryptocurrencies":12000,"markets":900,
				"total_market_cap":{"usd":2.4e12},"total_volume":{"usd":8.5e10},
				"market_cap_percentage":{"btc":51.2,"eth":17.1},
				"market_cap_change_percentage_24h_usd":-0.8}}`))
		case "/search/trending":
			w.Write([]byte(`{"coins":[{"item":{"id":"a"}},{"item":{"id":"b"}},{"item":{"id":"c"}}]}`))
		default:
			http.NotFound(w, r)
		}
	})

	stats, err := a.FetchGlobalStats(context.Background())
	if err != nil {
		t.Fatalf("FetchGlobalStats: %v", err)
	}
	if stats.TotalMarketCapUSD != 2.4e12 || stats.BTCDominance != 51.2 || stats.ETHDominance != 17.1 ||
		stats.MarketCapChange24hUSD != -0.8 || stats.Markets != 900 {
		t.Fatalf("stats = %+v", stats)
	}

	n, err := a.FetchTrendingCount(context.Background())
	if err != nil || n != 3 {
		t.Fatalf("trending = %d, err = %v", n, err)
	}
}

func TestFetchAssetChart(t *testing.T) {
	a, _ := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/coins/bitcoin/market_chart" || r.URL.Query().Get("days") != "7" {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(`{"prices":[[1735689600000,93000.1],[1735776000000,94000.2]],"market_caps":[[1735689600000,1.8e12]],"total_volumes":[]}`))
	})

	chart, err := a.FetchAssetChart(context.Background(), "bitcoin", 7)
	if err != nil {
		t.Fatalf("FetchAssetChart: %v", err)
	}
	if len(chart.Prices) != 2 || chart.Prices[1].Value != 94000.2 {
		t.Fatalf("prices = %+v", chart.Prices)
	}
	if !chart.Prices[0].Timestamp.Equal(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("timestamp = %v", chart.Prices[0].Timestamp)
	}
	if len(chart.TotalVolumes) != 0 || len(chart.MarketCaps) != 1 {
		t.Fatalf("chart = %+v", chart)
	}
}

func TestFetchAssetDetail(t *testing.T) {
	a, _ := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("market_data") != "true" {
			http.Error(w, "bad request", http.StatusBadRequest)
			return
		}
		w.Write([]byte(`{"id":"ethereum","symbol":"eth","name":"Ethereum","market_cap_rank":2,
			"description":{"en":" Smart contracts. "},"links":{"homepage":["","https://ethereum.org"]},
			"market_data":{"current_price":{"usd":3100},"high_24h":{"usd":3200},"low_24h":{"usd":3000},
			"price_change_percentage_7d":4.2,"max_supply":null}}`))
	})

	d, err := a.FetchAssetDetail(context.Background(), "ethereum")
	if err != nil {
		t.Fatalf("FetchAssetDetail: %v", err)
	}
	if d.Homepage != "https://ethereum.org" || d.Description != "Smart contracts." || d.CurrentPriceUSD != 3100 ||
		d.PriceChangePercentage7d != 4.2 || d.MarketCapRank != 2 || d.MaxSupply != nil {
		t.Fatalf("detail = %+v", d)
	}
}

func TestErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		status int
		kind   domain.ErrorKind
		msg    string
	}{
		{"rate limited", http.StatusTooManyRequests, domain.KindRateLimited, domain.MsgMarketRateLimited},
		{"not found", http.StatusNotFound, domain.KindNotFound, domain.MsgMarketNotFound},
		{"server error", http.StatusInternalServerError, domain.KindUnexpected, domain.MsgMarketUnexpected},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a, _ := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
			})

			_, err := a.FetchGlobalStats(context.Background())
			if domain.KindOf(err) != tt.kind {
				t.Fatalf("kind = %v, want %v (err %v)", domain.KindOf(err), tt.kind, err)
			}
			if got := domain.UserMessage(err, ""); got != tt.msg {
				t.Fatalf("message = %q", got)
			}
		})
	}
}

func TestNetworkError(t *testing.T) {
	a, srv := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {})
	srv.Close()

	_, err := a.FetchTrendingCount(context.Background())
	if domain.KindOf(err) != domain.KindNetwork {
		t.Fatalf("kind = %v, want network (err %v)", domain.KindOf(err), err)
	}
}

func TestInvalidJSON(t *testing.T) {
	a, _ := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"coins":`))
	})

	_, err := a.FetchTrendingCount(context.Background())
	if domain.KindOf(err) != domain.KindUnexpected {
		t.Fatalf("kind = %v, want unexpected", domain.KindOf(err))
	}
}

func TestCancelledContext(t *testing.T) {
	a, _ := newTestAdapter(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"coins":[]}`))
	})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := a.FetchTrendingCount(ctx); domain.KindOf(err) != domain.KindNetwork {
		t.Fatalf("kind = %v, want network", domain.KindOf(err))
	}
}
