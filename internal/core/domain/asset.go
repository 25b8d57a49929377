package domain

import "time"

// Asset - запись рынка криптовалют в том виде, в каком ее отдает источник котировок.
// Создается заново на каждом цикле загрузки и после получения не изменяется.
type Asset struct {
	ID     string
	Symbol string
	Name   string
	Image  string

	CurrentPrice                 float64
	MarketCap                    float64
	MarketCapRank                int
	TotalVolume                  float64
	High24h                      float64
	Low24h                       float64
	PriceChange24h               float64
	PriceChangePercentage24h     float64
	MarketCapChange24h           float64
	MarketCapChangePercentage24h float64
	CirculatingSupply            float64
	TotalSupply                  *float64
	MaxSupply                    *float64
	ATH                          float64
	ATHChangePercentage          float64
	ATL                          float64
	ATLChangePercentage          float64

	// Заполняются, только если окна 7d/30d были запрошены у источника
	PriceChangePercentage7d  *float64
	PriceChangePercentage30d *float64

	ATHDate     time.Time
	ATLDate     time.Time
	LastUpdated time.Time
}

// GlobalStats - агрегированные показатели всего рынка (эндпоинт /global).
type GlobalStats struct {
	TotalMarketCapUSD      float64
	TotalVolumeUSD         float64
	BTCDominance           float64
	ETHDominance           float64
	MarketCapChange24hUSD  float64
	ActiveCryptocurrencies int
	Markets                int
}

// MarketsRequest - параметры выборки списка активов.
type MarketsRequest struct {
	VsCurrency            string
	Order                 string
	PerPage               int
	Page                  int
	Sparkline             bool
	PriceChangePercentage string
}

// DefaultMarketsRequest возвращает параметры, которыми пользуется публичный трекер.
func DefaultMarketsRequest() MarketsRequest {
	return MarketsRequest{
		VsCurrency:            "usd",
		Order:                 "market_cap_desc",
		PerPage:               50,
		Page:                  1,
		Sparkline:             false,
		PriceChangePercentage: "24h",
	}
}

// AssetDetail - подробная карточка одного актива.
type AssetDetail struct {
	ID            string
	Symbol        string
	Name          string
	Description   string
	Homepage      string
	GenesisDate   string
	MarketCapRank int

	CurrentPriceUSD          float64
	MarketCapUSD             float64
	TotalVolumeUSD           float64
	High24hUSD               float64
	Low24hUSD                float64
	PriceChangePercentage24h float64
	PriceChangePercentage7d  float64
	PriceChangePercentage30d float64
	CirculatingSupply        float64
	TotalSupply              *float64
	MaxSupply                *float64
	LastUpdated              time.Time
}

// PricePoint - одна точка исторического ряда.
type PricePoint struct {
	Timestamp time.Time
	Value     float64
}

// AssetChart - исторические ряды одного актива за N дней.
type AssetChart struct {
	AssetID      string
	Days         int
	Prices       []PricePoint
	MarketCaps   []PricePoint
	TotalVolumes []PricePoint
}

// AllowedChartDays - допустимые окна для исторического графика.
var AllowedChartDays = []int{1, 7, 14, 30, 90, 180, 365}

// IsAllowedChartDays проверяет окно графика.
func IsAllowedChartDays(days int) bool {
	for _, d := range AllowedChartDays {
		if d == days {
			return true
		}
	}
	return false
}
