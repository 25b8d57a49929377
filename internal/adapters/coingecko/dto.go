package coingecko

import "time"

// marketDTO - элемент ответа /coins/markets. Поля, которые CoinGecko
// может вернуть как null, объявлены указателями.
type marketDTO struct {
	ID                           string    `json:"id"`
	Symbol                       string    `json:"symbol"`
	Name                         string    `json:"name"`
	Image                        string    `json:"image"`
	CurrentPrice                 *float64  `json:"current_price"`
	MarketCap                    *float64  `json:"market_cap"`
	MarketCapRank                *int      `json:"market_cap_rank"`
	TotalVolume                  *float64  `json:"total_volume"`
	High24h                      *float64  `json:"high_24h"`
	Low24h                       *float64  `json:"low_24h"`
	PriceChange24h               *float64  `json:"price_change_24h"`
	PriceChangePercentage24h     *float64  `json:"price_change_percentage_24h"`
	MarketCapChange24h           *float64  `json:"market_cap_change_24h"`
	MarketCapChangePercentage24h *float64  `json:"market_cap_change_percentage_24h"`
	CirculatingSupply            *float64  `json:"circulating_supply"`
	TotalSupply                  *float64  `json:"total_supply"`
	MaxSupply                    *float64  `json:"max_supply"`
	ATH                          *float64  `json:"ath"`
	ATHChangePercentage          *float64  `json:"ath_change_percentage"`
	ATHDate                      time.Time `json:"ath_date"`
	ATL                          *float64  `json:"atl"`
	ATLChangePercentage          *float64  `json:"atl_change_percentage"`
	ATLDate                      time.Time `json:"atl_date"`
	LastUpdated                  time.Time `json:"last_updated"`

	PriceChangePercentage7d  *float64 `json:"price_change_percentage_7d_in_currency"`
	PriceChangePercentage30d *float64 `json:"price_change_percentage_30d_in_currency"`
}

type globalResponse struct {
	Data struct {
		ActiveCryptocurrencies          int                `json:"active_cryptocurrencies"`
		Markets                         int                `json:"markets"`
		TotalMarketCap                  map[string]float64 `json:"total_market_cap"`
		TotalVolume                     map[string]float64 `json:"total_volume"`
		MarketCapPercentage             map[string]float64 `json:"market_cap_percentage"`
		MarketCapChangePercentage24hUSD float64            `json:"market_cap_change_percentage_24h_usd"`
	} `json:"data"`
}

type trendingResponse struct {
	Coins []struct {
		Item struct {
			ID string `json:"id"`
		} `json:"item"`
	} `json:"coins"`
}

type coinDetailDTO struct {
	ID            string `json:"id"`
	Symbol        string `json:"symbol"`
	Name          string `json:"name"`
	MarketCapRank *int   `json:"market_cap_rank"`
	GenesisDate   string `json:"genesis_date"`
	Description   struct {
		En string `json:"en"`
	} `json:"description"`
	Links struct {
		Homepage []string `json:"homepage"`
	} `json:"links"`
	MarketData struct {
		CurrentPrice             map[string]float64 `json:"current_price"`
		MarketCap                map[string]float64 `json:"market_cap"`
		TotalVolume              map[string]float64 `json:"total_volume"`
		High24h                  map[string]float64 `json:"high_24h"`
		Low24h                   map[string]float64 `json:"low_24h"`
		PriceChangePercentage24h *float64           `json:"price_change_percentage_24h"`
		PriceChangePercentage7d  *float64           `json:"price_change_percentage_7d"`
		PriceChangePercentage30d *float64           `json:"price_change_percentage_30d"`
		CirculatingSupply        *float64           `json:"circulating_supply"`
		TotalSupply              *float64           `json:"total_supply"`
		MaxSupply                *float64           `json:"max_supply"`
		LastUpdated              time.Time          `json:"last_updated"`
	} `json:"market_data"`
}

// marketChartResponse - пары [unix ms, значение].
type marketChartResponse struct {
	Prices       [][2]float64 `json:"prices"`
	MarketCaps   [][2]float64 `json:"market_caps"`
	TotalVolumes [][2]float64 `json:"total_volumes"`
}
