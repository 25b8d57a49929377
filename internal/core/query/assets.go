package query

import (
	"cmp"
	"dashboard-service/internal/core/domain"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// AssetPipeline строит конвейер для списка активов по AssetQuery.
func AssetPipeline(q domain.AssetQuery) Pipeline[domain.Asset] {
	p := Pipeline[domain.Asset]{
		Search: q.Search,
		SearchFields: func(a domain.Asset) []string {
			return []string{a.Name, a.Symbol}
		},
		Compare:    assetComparator(q.SortBy),
		Descending: domain.ParseSortDirection(string(q.SortOrder), domain.SortDesc) == domain.SortDesc,
		Page:       q.Page,
		PageSize:   q.PageSize,
	}

	switch q.Category {
	case domain.AssetCategoryGainers:
		p.Filters = append(p.Filters, func(a domain.Asset) bool { return a.PriceChangePercentage24h > 0 })
	case domain.AssetCategoryLosers:
		p.Filters = append(p.Filters, func(a domain.Asset) bool { return a.PriceChangePercentage24h < 0 })
	}

	return p
}

// QueryAssets - выборка видимой страницы активов.
func QueryAssets(assets []domain.Asset, q domain.AssetQuery) domain.Page[domain.Asset] {
	return Run(assets, AssetPipeline(q))
}

func assetComparator(key domain.AssetSortKey) func(a, b domain.Asset) int {
	switch domain.ParseAssetSortKey(string(key)) {
	case domain.AssetSortPrice:
		return func(a, b domain.Asset) int { return cmp.Compare(a.CurrentPrice, b.CurrentPrice) }
	case domain.AssetSortName:
		col := collate.New(language.English)
		return func(a, b domain.Asset) int { return col.CompareString(a.Name, b.Name) }
	case domain.AssetSortChange24h:
		return func(a, b domain.Asset) int {
			return cmp.Compare(a.PriceChangePercentage24h, b.PriceChangePercentage24h)
		}
	default:
		return func(a, b domain.Asset) int { return cmp.Compare(a.MarketCap, b.MarketCap) }
	}
}
