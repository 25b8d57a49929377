package coingecko

import (
	"dashboard-service/internal/core/domain"
	"strings"
	"time"
)

const usd = "usd"

func val(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}

func toAsset(d marketDTO) domain.Asset {
	a := domain.Asset{
		ID:                           d.ID,
		Symbol:                       d.Symbol,
		Name:                         d.Name,
		Image:                        d.Image,
		CurrentPrice:                 val(d.CurrentPrice),
		MarketCap:                    val(d.MarketCap),
		TotalVolume:                  val(d.TotalVolume),
		High24h:                      val(d.High24h),
		Low24h:                       val(d.Low24h),
		PriceChange24h:               val(d.PriceChange24h),
		PriceChangePercentage24h:     val(d.PriceChangePercentage24h),
		MarketCapChange24h:           val(d.MarketCapChange24h),
		MarketCapChangePercentage24h: val(d.MarketCapChangePercentage24h),
		CirculatingSupply:            val(d.CirculatingSupply),
		TotalSupply:                  d.TotalSupply,
		MaxSupply:                    d.MaxSupply,
		ATH:                          val(d.ATH),
		ATHChangePercentage:          val(d.ATHChangePercentage),
		ATL:                          val(d.ATL),
		ATLChangePercentage:          val(d.ATLChangePercentage),
		PriceChangePercentage7d:      d.PriceChangePercentage7d,
		PriceChangePercentage30d:     d.PriceChangePercentage30d,
		ATHDate:                      d.ATHDate,
		ATLDate:                      d.ATLDate,
		LastUpdated:                  d.LastUpdated,
	}
	if d.MarketCapRank != nil {
		a.MarketCapRank = *d.MarketCapRank
	}
	return a
}

func toGlobalStats(r globalResponse) domain.GlobalStats {
	return domain.GlobalStats{
		TotalMarketCapUSD:      r.Data.TotalMarketCap[usd],
		TotalVolumeUSD:         r.Data.TotalVolume[usd],
		BTCDominance:           r.Data.MarketCapPercentage["btc"],
		ETHDominance:           r.Data.MarketCapPercentage["eth"],
		MarketCapChange24hUSD:  r.Data.MarketCapChangePercentage24hUSD,
		ActiveCryptocurrencies: r.Data.ActiveCryptocurrencies,
		Markets:                r.Data.Markets,
	}
}

func toAssetDetail(d coinDetailDTO) domain.AssetDetail {
	md := d.MarketData
	detail := domain.AssetDetail{
		ID:                       d.ID,
		Symbol:                   d.Symbol,
		Name:                     d.Name,
		Description:              strings.TrimSpace(d.Description.En),
		GenesisDate:              d.GenesisDate,
		CurrentPriceUSD:          md.CurrentPrice[usd],
		MarketCapUSD:             md.MarketCap[usd],
		TotalVolumeUSD:           md.TotalVolume[usd],
		High24hUSD:               md.High24h[usd],
		Low24hUSD:                md.Low24h[usd],
		PriceChangePercentage24h: val(md.PriceChangePercentage24h),
		PriceChangePercentage7d:  val(md.PriceChangePercentage7d),
		PriceChangePercentage30d: val(md.PriceChangePercentage30d),
		CirculatingSupply:        val(md.CirculatingSupply),
		TotalSupply:              md.TotalSupply,
		MaxSupply:                md.MaxSupply,
		LastUpdated:              md.LastUpdated,
	}
	if d.MarketCapRank != nil {
		detail.MarketCapRank = *d.MarketCapRank
	}
	// первый непустой адрес из списка
	for _, h := range d.Links.Homepage {
		if h != "" {
			detail.Homepage = h
			break
		}
	}
	return detail
}

func toPricePoints(pairs [][2]float64) []domain.PricePoint {
	points := make([]domain.PricePoint, 0, len(pairs))
	for _, p := range pairs {
		points = append(points, domain.PricePoint{
			Timestamp: time.UnixMilli(int64(p[0])).UTC(),
			Value:     p[1],
		})
	}
	return points
}
