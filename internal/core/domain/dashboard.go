package domain

import "time"

// Sentiment - полоса индекса страха и жадности.
type Sentiment string

const (
	SentimentExtremeFear  Sentiment = "Extreme Fear"
	SentimentFear         Sentiment = "Fear"
	SentimentNeutral      Sentiment = "Neutral"
	SentimentGreed        Sentiment = "Greed"
	SentimentExtremeGreed Sentiment = "Extreme Greed"
)

type MarketSentiment struct {
	FearGreedIndex int
	Sentiment      Sentiment
	Change24h      float64 // среднее изменение цены за 24ч по всем активам
	LastUpdated    time.Time
}

// TopPerformer - строка в таблицах лидеров роста и падения.
type TopPerformer struct {
	ID                       string
	Name                     string
	Symbol                   string
	PriceChange24h           float64
	PriceChangePercentage24h float64
	Volume                   float64
	MarketCap                float64
}

// ChartSeries - ряды для графиков дашборда, по одной точке на метку.
type ChartSeries struct {
	Labels    []string
	MarketCap []float64
	Volume    []float64
	Prices    []float64
}

// SeriesPoint - усредненные за день значения рынка из истории снимков.
type SeriesPoint struct {
	Day       time.Time
	MarketCap float64
	Volume    float64
	Price     float64
}

type ActivityType string

const (
	ActivityPriceAlert      ActivityType = "price_alert"
	ActivityWatchlist       ActivityType = "watchlist"
	ActivityPortfolioUpdate ActivityType = "portfolio_update"
	ActivityMarketNews      ActivityType = "market_news"
)

type RecentActivity struct {
	ID           string
	Type         ActivityType
	Title        string
	Description  string
	CryptoSymbol string
	Timestamp    time.Time
	Read         bool
}

type WatchlistItem struct {
	ID                       string
	CryptoID                 string
	Name                     string
	Symbol                   string
	CurrentPrice             float64
	PriceChange24h           float64
	PriceChangePercentage24h float64
	TargetPrice              float64
	Notes                    string
	AddedAt                  time.Time
}

// DashboardSummary - карточки верхнего ряда дашборда.
type DashboardSummary struct {
	TotalMarketCap         float64
	TotalVolume            float64
	BTCDominance           float64
	ETHDominance           float64
	MarketCapChange24h     float64
	ActiveCryptocurrencies int
	Markets                int
	Trending               int
	TopGainers             int
	TopLosers              int
}

// DashboardAggregate целиком пересчитывается из текущего снимка активов.
type DashboardAggregate struct {
	Summary          DashboardSummary
	ChartData        ChartSeries
	TopGainers       []TopPerformer
	TopLosers        []TopPerformer
	RecentActivities []RecentActivity
	MarketSentiment  MarketSentiment
	Watchlist        []WatchlistItem
	LastUpdated      time.Time
}

// MarketSnapshot - строка истории, которая сохраняется после каждого обновления дашборда.
type MarketSnapshot struct {
	CapturedAt     time.Time
	TotalMarketCap float64
	TotalVolume    float64
	AvgMarketCap   float64
	AvgVolume      float64
	AvgPrice       float64
	AvgChange24h   float64
	FearGreedIndex int
	Sentiment      Sentiment
}
