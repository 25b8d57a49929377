package coingecko

import (
	"context"
	"dashboard-service/internal/contextkeys"
	"dashboard-service/internal/core/domain"
	"dashboard-service/internal/core/port"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/gocolly/colly/v2"
	"github.com/gocolly/colly/v2/extensions"
)

const DefaultBaseURL = "https://api.coingecko.com/api/v3"

type Config struct {
	BaseURL string
	// APIKey уходит в заголовке x-cg-demo-api-key, если задан.
	APIKey      string
	Parallelism int
	RandomDelay time.Duration
	Timeout     time.Duration
}

// CoinGeckoAdapter ходит в публичный API CoinGecko. Лимиты задаются на
// родительском коллекторе и делятся всеми его клонами.
type CoinGeckoAdapter struct {
	collector *colly.Collector
	baseURL   string
	apiKey    string
}

func NewCoinGeckoAdapter(cfg Config) (*CoinGeckoAdapter, error) {
	if cfg.BaseURL == "" {
		cfg.BaseURL = DefaultBaseURL
	}
	if cfg.Parallelism <= 0 {
		cfg.Parallelism = 1
	}

	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil || base.Host == "" {
		return nil, fmt.Errorf("CoinGeckoAdapter: invalid base url %q", cfg.BaseURL)
	}

	c := colly.NewCollector(colly.AllowedDomains(base.Hostname()), colly.AllowURLRevisit())
	err = c.Limit(&colly.LimitRule{
		// Host в правиле сравнивается вместе с портом
		DomainGlob:  base.Hostname() + "*",
		Parallelism: cfg.Parallelism,
		RandomDelay: cfg.RandomDelay,
	})
	if err != nil {
		return nil, fmt.Errorf("CoinGeckoAdapter: failed to set limit rule: %w", err)
	}
	if cfg.Timeout > 0 {
		c.SetRequestTimeout(cfg.Timeout)
	}

	return &CoinGeckoAdapter{
		collector: c,
		baseURL:   base.String(),
		apiKey:    cfg.APIKey,
	}, nil
}

// getJSON делает GET на path и раскладывает JSON-ответ в out.
// Каждый вызов работает на своем клоне коллектора со своими обработчиками.
func (a *CoinGeckoAdapter) getJSON(ctx context.Context, method, path string, params url.Values, out any) error {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "CoinGeckoAdapter",
		"method":    method,
	})

	target := a.baseURL + path
	if len(params) > 0 {
		target += "?" + params.Encode()
	}

	collector := a.collector.Clone()
	// обработчики расширений на клон не переносятся
	extensions.RandomUserAgent(collector)
	extensions.Referer(collector)

	traceID := contextkeys.TraceIDFromContext(ctx)
	var responseErr error

	collector.OnRequest(func(r *colly.Request) {
		if ctx.Err() != nil {
			r.Abort()
			return
		}
		r.Headers.Set("Accept", "application/json")
		if traceID != "" {
			r.Headers.Set("X-Trace-ID", traceID)
		}
		if a.apiKey != "" {
			r.Headers.Set("x-cg-demo-api-key", a.apiKey)
		}
		logger.Debug("Sending request to CoinGecko", port.Fields{"url": r.URL.String()})
	})

	collector.OnResponse(func(r *colly.Response) {
		if err := json.Unmarshal(r.Body, out); err != nil {
			responseErr = domain.NewError(domain.KindUnexpected, domain.MsgMarketUnexpected,
				fmt.Errorf("decode %s: %w", r.Request.URL, err))
		}
	})

	collector.OnError(func(r *colly.Response, err error) {
		logger.Error("CoinGecko request failed", err, port.Fields{"status": r.StatusCode})
		responseErr = mapStatus(r.StatusCode, err)
	})

	visitErr := collector.Visit(target)
	collector.Wait()

	if ctx.Err() != nil {
		return domain.NewError(domain.KindNetwork, domain.MsgNetwork, ctx.Err())
	}
	if responseErr != nil {
		return responseErr
	}
	if visitErr != nil {
		logger.Error("Failed to visit CoinGecko url", visitErr, port.Fields{"url": target})
		return domain.NewError(domain.KindNetwork, domain.MsgNetwork, visitErr)
	}
	return nil
}
