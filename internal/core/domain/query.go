package domain

import (
	"fmt"
	"time"
)

// FilterAll - значение категориального фильтра "без ограничения".
const FilterAll = "all"

// SortDirection - направление сортировки.
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// ParseSortDirection: пустое или неизвестное значение дает fallback.
func ParseSortDirection(s string, fallback SortDirection) SortDirection {
	switch SortDirection(s) {
	case SortAsc, SortDesc:
		return SortDirection(s)
	}
	return fallback
}

// AssetCategory - производный фильтр по знаку изменения цены за 24 часа.
type AssetCategory string

const (
	AssetCategoryAll     AssetCategory = FilterAll
	AssetCategoryGainers AssetCategory = "gainers"
	AssetCategoryLosers  AssetCategory = "losers"
)

func ParseAssetCategory(s string) (AssetCategory, error) {
	switch AssetCategory(s) {
	case "":
		return AssetCategoryAll, nil
	case AssetCategoryAll, AssetCategoryGainers, AssetCategoryLosers:
		return AssetCategory(s), nil
	}
	return "", NewValidationError(fmt.Sprintf("unknown asset category %q", s))
}

// AssetSortKey - ключ сортировки списка активов.
type AssetSortKey string

const (
	AssetSortMarketCap AssetSortKey = "market_cap"
	AssetSortPrice     AssetSortKey = "price"
	AssetSortName      AssetSortKey = "name"
	AssetSortChange24h AssetSortKey = "24h_change"
)

// ParseAssetSortKey: неизвестный ключ не ошибка, а сортировка по умолчанию.
func ParseAssetSortKey(s string) AssetSortKey {
	switch AssetSortKey(s) {
	case AssetSortMarketCap, AssetSortPrice, AssetSortName, AssetSortChange24h:
		return AssetSortKey(s)
	}
	return AssetSortMarketCap
}

// ConsultationSortKey - ключ сортировки списка заявок.
type ConsultationSortKey string

const (
	ConsultationSortCreatedAt ConsultationSortKey = "createdAt"
	ConsultationSortUpdatedAt ConsultationSortKey = "updatedAt"
	ConsultationSortName      ConsultationSortKey = "name"
	ConsultationSortEmail     ConsultationSortKey = "email"
	ConsultationSortStatus    ConsultationSortKey = "status"
)

func ParseConsultationSortKey(s string) ConsultationSortKey {
	switch ConsultationSortKey(s) {
	case ConsultationSortCreatedAt, ConsultationSortUpdatedAt, ConsultationSortName,
		ConsultationSortEmail, ConsultationSortStatus:
		return ConsultationSortKey(s)
	}
	return ConsultationSortCreatedAt
}

// AssetQuery - спецификация выборки для списка активов.
type AssetQuery struct {
	Search    string
	Category  AssetCategory
	SortBy    AssetSortKey
	SortOrder SortDirection
	Page      int
	PageSize  int
}

// DefaultAssetQuery - состояние фильтров при открытии экрана.
func DefaultAssetQuery() AssetQuery {
	return AssetQuery{
		Category:  AssetCategoryAll,
		SortBy:    AssetSortMarketCap,
		SortOrder: SortDesc,
		Page:      1,
		PageSize:  20,
	}
}

// ConsultationQuery - спецификация выборки для списка заявок.
// Service и Status равны nil, если фильтр "all".
type ConsultationQuery struct {
	Search    string
	Service   *Service
	Status    *Status
	DateFrom  *time.Time
	DateTo    *time.Time
	SortBy    ConsultationSortKey
	SortOrder SortDirection
	Page      int
	PageSize  int
}

func DefaultConsultationQuery() ConsultationQuery {
	return ConsultationQuery{
		SortBy:    ConsultationSortCreatedAt,
		SortOrder: SortDesc,
		Page:      1,
		PageSize:  10,
	}
}

// Page - видимая часть коллекции после фильтрации, сортировки и пагинации.
type Page[T any] struct {
	Items      []T
	TotalItems int
	Page       int
	PageSize   int
	TotalPages int
	HasNext    bool
	HasPrev    bool
}
