package market

import (
	"dashboard-service/internal/core/domain"
	"time"
)

// ChartDays - ширина окна графиков дашборда.
const ChartDays = 7

const chartLabelLayout = "Jan 2"

// Means - средние значения по текущему снимку активов.
type Means struct {
	MarketCap float64
	Volume    float64
	Price     float64
}

func MeansOf(assets []domain.Asset) Means {
	if len(assets) == 0 {
		return Means{}
	}
	var m Means
	for _, a := range assets {
		m.MarketCap += a.MarketCap
		m.Volume += a.TotalVolume
		m.Price += a.CurrentPrice
	}
	n := float64(len(assets))
	return Means{MarketCap: m.MarketCap / n, Volume: m.Volume / n, Price: m.Price / n}
}

// ChartWindow возвращает начало каждого из последних ChartDays дней, последний - сегодня.
func ChartWindow(now time.Time) []time.Time {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	days := make([]time.Time, ChartDays)
	for i := range days {
		days[i] = today.AddDate(0, 0, -(ChartDays - 1 - i))
	}
	return days
}

// BuildChartSeries раскладывает историю по дням окна. День без истории
// заполняется средними значениями текущего снимка.
func BuildChartSeries(now time.Time, history []domain.SeriesPoint, assets []domain.Asset) domain.ChartSeries {
	window := ChartWindow(now)
	fallback := MeansOf(assets)

	byDay := make(map[string]domain.SeriesPoint, len(history))
	for _, p := range history {
		byDay[dayKey(p.Day.In(now.Location()))] = p
	}

	series := domain.ChartSeries{
		Labels:    make([]string, len(window)),
		MarketCap: make([]float64, len(window)),
		Volume:    make([]float64, len(window)),
		Prices:    make([]float64, len(window)),
	}
	for i, day := range window {
		series.Labels[i] = day.Format(chartLabelLayout)
		if p, ok := byDay[dayKey(day)]; ok {
			series.MarketCap[i] = p.MarketCap
			series.Volume[i] = p.Volume
			series.Prices[i] = p.Price
			continue
		}
		series.MarketCap[i] = fallback.MarketCap
		series.Volume[i] = fallback.Volume
		series.Prices[i] = fallback.Price
	}
	return series
}

func dayKey(t time.Time) string {
	return t.Format("2006-01-02")
}
