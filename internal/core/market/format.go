package market

import (
	"math"

	"github.com/shopspring/decimal"
)

var magnitudes = []struct {
	threshold float64
	suffix    string
}{
	{1e12, "T"},
	{1e9, "B"},
	{1e6, "M"},
	{1e3, "K"},
}

// FormatNumber переводит сумму в долларах в короткую запись: $1.50B, $12.30K, $999.00.
// Округление до двух знаков, половина - от нуля.
func FormatNumber(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "N/A"
	}

	sign := ""
	if v < 0 {
		sign = "-"
		v = -v
	}

	for _, m := range magnitudes {
		if v >= m.threshold {
			scaled := decimal.NewFromFloat(v).Div(decimal.NewFromFloat(m.threshold))
			return sign + "$" + scaled.StringFixed(2) + m.suffix
		}
	}
	return sign + "$" + decimal.NewFromFloat(v).StringFixed(2)
}

// FormatPercentage: +2.35% для неотрицательных значений, -1.10% для отрицательных.
func FormatPercentage(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "N/A"
	}
	d := decimal.NewFromFloat(v)
	if v >= 0 {
		return "+" + d.StringFixed(2) + "%"
	}
	// знак сохраняется и для значений, округлившихся до нуля: -0.00%
	return "-" + d.Abs().StringFixed(2) + "%"
}

// FixedTwo - число с двумя знаками после запятой, как в текстах уведомлений.
func FixedTwo(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "0.00"
	}
	return decimal.NewFromFloat(v).StringFixed(2)
}

// RangePosition - положение цены внутри дневного диапазона, в процентах.
// Если high == low, диапазон вырожден и позиция - середина шкалы.
func RangePosition(price, low, high float64) float64 {
	if high == low {
		return 50
	}
	pos := (price - low) / (high - low) * 100
	return math.Max(0, math.Min(100, pos))
}
