package rest

import (
	"time"

	"dashboard-service/internal/core/domain"
	"dashboard-service/internal/core/market"
)

// SuccessResponse - общая обертка успешных ответов.
type SuccessResponse struct {
	Status string      `json:"status"`
	Data   interface{} `json:"data"`
}

// --- рынок ---

type AssetResponse struct {
	ID                           string     `json:"id"`
	Symbol                       string     `json:"symbol"`
	Name                         string     `json:"name"`
	Image                        string     `json:"image"`
	CurrentPrice                 float64    `json:"current_price"`
	MarketCap                    float64    `json:"market_cap"`
	MarketCapRank                int        `json:"market_cap_rank"`
	TotalVolume                  float64    `json:"total_volume"`
	High24h                      float64    `json:"high_24h"`
	Low24h                       float64    `json:"low_24h"`
	PriceChange24h               float64    `json:"price_change_24h"`
	PriceChangePercentage24h     float64    `json:"price_change_percentage_24h"`
	MarketCapChange24h           float64    `json:"market_cap_change_24h"`
	MarketCapChangePercentage24h float64    `json:"market_cap_change_percentage_24h"`
	CirculatingSupply            float64    `json:"circulating_supply"`
	TotalSupply                  *float64   `json:"total_supply"`
	MaxSupply                    *float64   `json:"max_supply"`
	ATH                          float64    `json:"ath"`
	ATHChangePercentage          float64    `json:"ath_change_percentage"`
	ATHDate                      *time.Time `json:"ath_date,omitempty"`
	ATL                          float64    `json:"atl"`
	ATLChangePercentage          float64    `json:"atl_change_percentage"`
	ATLDate                      *time.Time `json:"atl_date,omitempty"`
	LastUpdated                  *time.Time `json:"last_updated,omitempty"`

	MarketCapFormatted   string  `json:"market_cap_formatted"`
	VolumeFormatted      string  `json:"volume_formatted"`
	ChangeFormatted      string  `json:"price_change_percentage_24h_formatted"`
	DayRangePositionPerc float64 `json:"day_range_position"`
}

type AssetPageResponse struct {
	Items      []AssetResponse `json:"items"`
	TotalItems int             `json:"total_items"`
	Page       int             `json:"page"`
	PageSize   int             `json:"page_size"`
	TotalPages int             `json:"total_pages"`
	HasNext    bool            `json:"has_next"`
	HasPrev    bool            `json:"has_prev"`
}

type AssetDetailResponse struct {
	ID                       string     `json:"id"`
	Symbol                   string     `json:"symbol"`
	Name                     string     `json:"name"`
	Description              string     `json:"description"`
	Homepage                 string     `json:"homepage"`
	GenesisDate              string     `json:"genesis_date,omitempty"`
	MarketCapRank            int        `json:"market_cap_rank"`
	CurrentPriceUSD          float64    `json:"current_price"`
	MarketCapUSD             float64    `json:"market_cap"`
	TotalVolumeUSD           float64    `json:"total_volume"`
	High24hUSD               float64    `json:"high_24h"`
	Low24hUSD                float64    `json:"low_24h"`
	PriceChangePercentage24h float64    `json:"price_change_percentage_24h"`
	PriceChangePercentage7d  float64    `json:"price_change_percentage_7d"`
	PriceChangePercentage30d float64    `json:"price_change_percentage_30d"`
	CirculatingSupply        float64    `json:"circulating_supply"`
	TotalSupply              *float64   `json:"total_supply"`
	MaxSupply                *float64   `json:"max_supply"`
	LastUpdated              *time.Time `json:"last_updated,omitempty"`
	DayRangePosition         float64    `json:"day_range_position"`
}

type PricePointResponse struct {
	Timestamp int64   `json:"timestamp"` // миллисекунды Unix
	Value     float64 `json:"value"`
}

type AssetChartResponse struct {
	AssetID      string               `json:"asset_id"`
	Days         int                  `json:"days"`
	Prices       []PricePointResponse `json:"prices"`
	MarketCaps   []PricePointResponse `json:"market_caps"`
	TotalVolumes []PricePointResponse `json:"total_volumes"`
}

type DashboardSummaryResponse struct {
	TotalMarketCap          float64 `json:"total_market_cap"`
	TotalMarketCapFormatted string  `json:"total_market_cap_formatted"`
	TotalVolume             float64 `json:"total_volume"`
	TotalVolumeFormatted    string  `json:"total_volume_formatted"`
	BTCDominance            float64 `json:"btc_dominance"`
	ETHDominance            float64 `json:"eth_dominance"`
	MarketCapChange24h      float64 `json:"market_cap_change_24h"`
	ActiveCryptocurrencies  int     `json:"active_cryptocurrencies"`
	Markets                 int     `json:"markets"`
	Trending                int     `json:"trending"`
	TopGainers              int     `json:"top_gainers"`
	TopLosers               int     `json:"top_losers"`
}

type ChartSeriesResponse struct {
	Labels    []string  `json:"labels"`
	MarketCap []float64 `json:"market_cap"`
	Volume    []float64 `json:"volume"`
	Prices    []float64 `json:"prices"`
}

type TopPerformerResponse struct {
	ID                       string  `json:"id"`
	Name                     string  `json:"name"`
	Symbol                   string  `json:"symbol"`
	PriceChange24h           float64 `json:"price_change_24h"`
	PriceChangePercentage24h float64 `json:"price_change_percentage_24h"`
	Volume                   float64 `json:"volume"`
	MarketCap                float64 `json:"market_cap"`
}

type RecentActivityResponse struct {
	ID           string    `json:"id"`
	Type         string    `json:"type"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	CryptoSymbol string    `json:"crypto_symbol,omitempty"`
	Timestamp    time.Time `json:"timestamp"`
	Read         bool      `json:"read"`
}

type MarketSentimentResponse struct {
	FearGreedIndex int       `json:"fear_greed_index"`
	Sentiment      string    `json:"sentiment"`
	Change24h      float64   `json:"change_24h"`
	LastUpdated    time.Time `json:"last_updated"`
}

type WatchlistItemResponse struct {
	ID                       string    `json:"id"`
	CryptoID                 string    `json:"crypto_id"`
	Name                     string    `json:"name"`
	Symbol                   string    `json:"symbol"`
	CurrentPrice             float64   `json:"current_price"`
	PriceChange24h           float64   `json:"price_change_24h"`
	PriceChangePercentage24h float64   `json:"price_change_percentage_24h"`
	TargetPrice              float64   `json:"target_price"`
	Notes                    string    `json:"notes"`
	AddedAt                  time.Time `json:"added_at"`
}

type DashboardResponse struct {
	Summary          DashboardSummaryResponse `json:"summary"`
	ChartData        ChartSeriesResponse      `json:"chart_data"`
	TopGainers       []TopPerformerResponse   `json:"top_gainers"`
	TopLosers        []TopPerformerResponse   `json:"top_losers"`
	RecentActivities []RecentActivityResponse `json:"recent_activities"`
	MarketSentiment  MarketSentimentResponse  `json:"market_sentiment"`
	Watchlist        []WatchlistItemResponse  `json:"watchlist"`
	LastUpdated      time.Time                `json:"last_updated"`
}

// --- заявки ---

type AdminMessageResponse struct {
	Message string    `json:"message"`
	SentBy  string    `json:"sent_by"`
	SentAt  time.Time `json:"sent_at"`
	SentVia string    `json:"sent_via"`
}

type ConsultationResponse struct {
	ID                   string                 `json:"id"`
	ConsultationID       string                 `json:"consultation_id"`
	Name                 string                 `json:"name"`
	Email                string                 `json:"email"`
	Phone                string                 `json:"phone,omitempty"`
	Company              string                 `json:"company,omitempty"`
	Service              string                 `json:"service"`
	Budget               string                 `json:"budget,omitempty"`
	Message              string                 `json:"message"`
	Status               string                 `json:"status"`
	AdminNotes           string                 `json:"admin_notes"`
	AdminMessages        []AdminMessageResponse `json:"admin_messages"`
	SubmittedByIP        string                 `json:"submitted_by_ip,omitempty"`
	SubmittedByUserAgent string                 `json:"submitted_by_user_agent,omitempty"`
	LastStatusChange     *time.Time             `json:"last_status_change,omitempty"`
	LastContacted        *time.Time             `json:"last_contacted,omitempty"`
	CreatedAt            time.Time              `json:"created_at"`
	UpdatedAt            time.Time              `json:"updated_at"`
}

type ConsultationDetailResponse struct {
	Consultation        ConsultationResponse `json:"consultation"`
	AllowedNextStatuses []string             `json:"allowed_next_statuses"`
}

type TransitionsResponse struct {
	ConsultationID      string   `json:"consultation_id"`
	Status              string   `json:"status"`
	AllowedNextStatuses []string `json:"allowed_next_statuses"`
	Terminal            bool     `json:"terminal"`
}

type PaginationResponse struct {
	CurrentPage int  `json:"current_page"`
	TotalPages  int  `json:"total_pages"`
	TotalItems  int  `json:"total_items"`
	HasNext     bool `json:"has_next"`
	HasPrev     bool `json:"has_prev"`
	NextPage    *int `json:"next_page"`
	PrevPage    *int `json:"prev_page"`
	Limit       int  `json:"limit"`
}

type ConsultationStatsResponse struct {
	Pending   int `json:"pending"`
	Reviewed  int `json:"reviewed"`
	Approved  int `json:"approved"`
	Rejected  int `json:"rejected"`
	Contacted int `json:"contacted"`
}

type ConsultationPageResponse struct {
	Consultations []ConsultationResponse    `json:"consultations"`
	Pagination    PaginationResponse        `json:"pagination"`
	Stats         ConsultationStatsResponse `json:"stats"`
}

// --- тела запросов ---

type UpdateNotesRequest struct {
	AdminNotes string `json:"admin_notes"`
}

type UpdateStatusRequest struct {
	Status     string  `json:"status"`
	AdminNotes *string `json:"admin_notes,omitempty"`
}

type SendMessageRequest struct {
	Message string `json:"message"`
}

// --- маппинг ---

func optionalTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

func toAssetResponse(a domain.Asset) AssetResponse {
	return AssetResponse{
		ID:                           a.ID,
		Symbol:                       a.Symbol,
		Name:                         a.Name,
		Image:                        a.Image,
		CurrentPrice:                 a.CurrentPrice,
		MarketCap:                    a.MarketCap,
		MarketCapRank:                a.MarketCapRank,
		TotalVolume:                  a.TotalVolume,
		High24h:                      a.High24h,
		Low24h:                       a.Low24h,
		PriceChange24h:               a.PriceChange24h,
		PriceChangePercentage24h:     a.PriceChangePercentage24h,
		MarketCapChange24h:           a.MarketCapChange24h,
		MarketCapChangePercentage24h: a.MarketCapChangePercentage24h,
		CirculatingSupply:            a.CirculatingSupply,
		TotalSupply:                  a.TotalSupply,
		MaxSupply:                    a.MaxSupply,
		ATH:                          a.ATH,
		ATHChangePercentage:          a.ATHChangePercentage,
		ATHDate:                      optionalTime(a.ATHDate),
		ATL:                          a.ATL,
		ATLChangePercentage:          a.ATLChangePercentage,
		ATLDate:                      optionalTime(a.ATLDate),
		LastUpdated:                  optionalTime(a.LastUpdated),

		MarketCapFormatted:   market.FormatNumber(a.MarketCap),
		VolumeFormatted:      market.FormatNumber(a.TotalVolume),
		ChangeFormatted:      market.FormatPercentage(a.PriceChangePercentage24h),
		DayRangePositionPerc: market.RangePosition(a.CurrentPrice, a.Low24h, a.High24h),
	}
}

func toAssetPageResponse(p *domain.Page[domain.Asset]) AssetPageResponse {
	items := make([]AssetResponse, len(p.Items))
	for i, a := range p.Items {
		items[i] = toAssetResponse(a)
	}
	return AssetPageResponse{
		Items:      items,
		TotalItems: p.TotalItems,
		Page:       p.Page,
		PageSize:   p.PageSize,
		TotalPages: p.TotalPages,
		HasNext:    p.HasNext,
		HasPrev:    p.HasPrev,
	}
}

func toAssetDetailResponse(d *domain.AssetDetail) AssetDetailResponse {
	return AssetDetailResponse{
		ID:                       d.ID,
		Symbol:                   d.Symbol,
		Name:                     d.Name,
		Description:              d.Description,
		Homepage:                 d.Homepage,
		GenesisDate:              d.GenesisDate,
		MarketCapRank:            d.MarketCapRank,
		CurrentPriceUSD:          d.CurrentPriceUSD,
		MarketCapUSD:             d.MarketCapUSD,
		TotalVolumeUSD:           d.TotalVolumeUSD,
		High24hUSD:               d.High24hUSD,
		Low24hUSD:                d.Low24hUSD,
		PriceChangePercentage24h: d.PriceChangePercentage24h,
		PriceChangePercentage7d:  d.PriceChangePercentage7d,
		PriceChangePercentage30d: d.PriceChangePercentage30d,
		CirculatingSupply:        d.CirculatingSupply,
		TotalSupply:              d.TotalSupply,
		MaxSupply:                d.MaxSupply,
		LastUpdated:              optionalTime(d.LastUpdated),
		DayRangePosition:         market.RangePosition(d.CurrentPriceUSD, d.Low24hUSD, d.High24hUSD),
	}
}

func toPricePoints(points []domain.PricePoint) []PricePointResponse {
	out := make([]PricePointResponse, len(points))
	for i, p := range points {
		out[i] = PricePointResponse{Timestamp: p.Timestamp.UnixMilli(), Value: p.Value}
	}
	return out
}

func toAssetChartResponse(c *domain.AssetChart) AssetChartResponse {
	return AssetChartResponse{
		AssetID:      c.AssetID,
		Days:         c.Days,
		Prices:       toPricePoints(c.Prices),
		MarketCaps:   toPricePoints(c.MarketCaps),
		TotalVolumes: toPricePoints(c.TotalVolumes),
	}
}

func toPerformers(items []domain.TopPerformer) []TopPerformerResponse {
	out := make([]TopPerformerResponse, len(items))
	for i, p := range items {
		out[i] = TopPerformerResponse{
			ID:                       p.ID,
			Name:                     p.Name,
			Symbol:                   p.Symbol,
			PriceChange24h:           p.PriceChange24h,
			PriceChangePercentage24h: p.PriceChangePercentage24h,
			Volume:                   p.Volume,
			MarketCap:                p.MarketCap,
		}
	}
	return out
}

func toDashboardResponse(d *domain.DashboardAggregate) DashboardResponse {
	activities := make([]RecentActivityResponse, len(d.RecentActivities))
	for i, a := range d.RecentActivities {
		activities[i] = RecentActivityResponse{
			ID:           a.ID,
			Type:         string(a.Type),
			Title:        a.Title,
			Description:  a.Description,
			CryptoSymbol: a.CryptoSymbol,
			Timestamp:    a.Timestamp,
			Read:         a.Read,
		}
	}
	watchlist := make([]WatchlistItemResponse, len(d.Watchlist))
	for i, w := range d.Watchlist {
		watchlist[i] = WatchlistItemResponse{
			ID:                       w.ID,
			CryptoID:                 w.CryptoID,
			Name:                     w.Name,
			Symbol:                   w.Symbol,
			CurrentPrice:             w.CurrentPrice,
			PriceChange24h:           w.PriceChange24h,
			PriceChangePercentage24h: w.PriceChangePercentage24h,
			TargetPrice:              w.TargetPrice,
			Notes:                    w.Notes,
			AddedAt:                  w.AddedAt,
		}
	}

	s := d.Summary
	return DashboardResponse{
		Summary: DashboardSummaryResponse{
			TotalMarketCap:          s.TotalMarketCap,
			TotalMarketCapFormatted: market.FormatNumber(s.TotalMarketCap),
			TotalVolume:             s.TotalVolume,
			TotalVolumeFormatted:    market.FormatNumber(s.TotalVolume),
			BTCDominance:            s.BTCDominance,
			ETHDominance:            s.ETHDominance,
			MarketCapChange24h:      s.MarketCapChange24h,
			ActiveCryptocurrencies:  s.ActiveCryptocurrencies,
			Markets:                 s.Markets,
			Trending:                s.Trending,
			TopGainers:              s.TopGainers,
			TopLosers:               s.TopLosers,
		},
		ChartData: ChartSeriesResponse{
			Labels:    d.ChartData.Labels,
			MarketCap: d.ChartData.MarketCap,
			Volume:    d.ChartData.Volume,
			Prices:    d.ChartData.Prices,
		},
		TopGainers:       toPerformers(d.TopGainers),
		TopLosers:        toPerformers(d.TopLosers),
		RecentActivities: activities,
		MarketSentiment: MarketSentimentResponse{
			FearGreedIndex: d.MarketSentiment.FearGreedIndex,
			Sentiment:      string(d.MarketSentiment.Sentiment),
			Change24h:      d.MarketSentiment.Change24h,
			LastUpdated:    d.MarketSentiment.LastUpdated,
		},
		Watchlist:   watchlist,
		LastUpdated: d.LastUpdated,
	}
}

func statusStrings(statuses []domain.Status) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}

func toConsultationResponse(c domain.Consultation) ConsultationResponse {
	messages := make([]AdminMessageResponse, len(c.AdminMessages))
	for i, m := range c.AdminMessages {
		messages[i] = AdminMessageResponse{
			Message: m.Message,
			SentBy:  m.SentBy,
			SentAt:  m.SentAt,
			SentVia: string(m.SentVia),
		}
	}
	return ConsultationResponse{
		ID:                   c.ID,
		ConsultationID:       c.ConsultationID,
		Name:                 c.Name,
		Email:                c.Email,
		Phone:                c.Phone,
		Company:              c.Company,
		Service:              string(c.Service),
		Budget:               string(c.Budget),
		Message:              c.Message,
		Status:               string(c.Status),
		AdminNotes:           c.AdminNotes,
		AdminMessages:        messages,
		SubmittedByIP:        c.SubmittedByIP,
		SubmittedByUserAgent: c.SubmittedByUserAgent,
		LastStatusChange:     c.LastStatusChange,
		LastContacted:        c.LastContacted,
		CreatedAt:            c.CreatedAt,
		UpdatedAt:            c.UpdatedAt,
	}
}

func toConsultationDetailResponse(c *domain.ConsultationWithTransitions) ConsultationDetailResponse {
	return ConsultationDetailResponse{
		Consultation:        toConsultationResponse(c.Consultation),
		AllowedNextStatuses: statusStrings(c.AllowedNextStatuses),
	}
}

func toConsultationPageResponse(p *domain.ConsultationPage) ConsultationPageResponse {
	items := make([]ConsultationResponse, len(p.Consultations))
	for i, c := range p.Consultations {
		items[i] = toConsultationResponse(c)
	}
	pg := p.Pagination
	return ConsultationPageResponse{
		Consultations: items,
		Pagination: PaginationResponse{
			CurrentPage: pg.CurrentPage,
			TotalPages:  pg.TotalPages,
			TotalItems:  pg.TotalItems,
			HasNext:     pg.HasNext,
			HasPrev:     pg.HasPrev,
			NextPage:    pg.NextPage,
			PrevPage:    pg.PrevPage,
			Limit:       pg.Limit,
		},
		Stats: ConsultationStatsResponse{
			Pending:   p.Stats.Pending,
			Reviewed:  p.Stats.Reviewed,
			Approved:  p.Stats.Approved,
			Rejected:  p.Stats.Rejected,
			Contacted: p.Stats.Contacted,
		},
	}
}
