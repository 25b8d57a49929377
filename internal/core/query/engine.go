// Package query implements the in-memory filter -> sort -> paginate pipeline
// used by the asset and consultation lists.
package query

import (
	"dashboard-service/internal/core/domain"
	"slices"
	"strings"

	"golang.org/x/text/cases"
)

// Pipeline описывает одну выборку: поиск, категориальные фильтры, сортировку и страницу.
type Pipeline[T any] struct {
	Search       string
	SearchFields func(T) []string

	// Filters применяются после текстового поиска, элемент должен пройти все
	Filters []func(T) bool

	// Compare - сравнение по возрастанию. nil - порядок не меняется
	Compare    func(a, b T) int
	Descending bool

	// PageSize <= 0 отключает пагинацию
	Page     int
	PageSize int
}

// Run выполняет конвейер над items. Исходный срез не изменяется.
func Run[T any](items []T, p Pipeline[T]) domain.Page[T] {
	visible := textFilter(items, p.Search, p.SearchFields)
	visible = categoricalFilter(visible, p.Filters)
	visible = stableSort(visible, p.Compare, p.Descending)
	return paginate(visible, p.Page, p.PageSize)
}

func textFilter[T any](items []T, search string, fields func(T) []string) []T {
	search = strings.TrimSpace(search)
	if search == "" || fields == nil {
		return slices.Clone(items)
	}

	folder := cases.Fold()
	needle := folder.String(search)

	out := make([]T, 0, len(items))
	for _, item := range items {
		for _, f := range fields(item) {
			if f != "" && strings.Contains(folder.String(f), needle) {
				out = append(out, item)
				break
			}
		}
	}
	return out
}

func categoricalFilter[T any](items []T, filters []func(T) bool) []T {
	if len(filters) == 0 {
		return items
	}
	out := items[:0:0]
	for _, item := range items {
		keep := true
		for _, f := range filters {
			if !f(item) {
				keep = false
				break
			}
		}
		if keep {
			out = append(out, item)
		}
	}
	return out
}

// stableSort сортирует копию, полученную на предыдущих шагах. Равные элементы
// сохраняют исходный относительный порядок и при asc, и при desc.
func stableSort[T any](items []T, cmp func(a, b T) int, desc bool) []T {
	if cmp == nil {
		return items
	}
	slices.SortStableFunc(items, func(a, b T) int {
		if desc {
			return -cmp(a, b)
		}
		return cmp(a, b)
	})
	return items
}

func paginate[T any](items []T, page, size int) domain.Page[T] {
	total := len(items)

	if size <= 0 {
		totalPages := 0
		if total > 0 {
			totalPages = 1
		}
		return domain.Page[T]{
			Items:      items,
			TotalItems: total,
			Page:       1,
			PageSize:   total,
			TotalPages: totalPages,
		}
	}

	totalPages := (total + size - 1) / size
	result := domain.Page[T]{
		Items:      []T{},
		TotalItems: total,
		Page:       page,
		PageSize:   size,
		TotalPages: totalPages,
		HasNext:    page >= 1 && page < totalPages,
		HasPrev:    page > 1,
	}

	if page < 1 {
		return result
	}
	start := (page - 1) * size
	if start >= total {
		return result
	}
	end := min(start+size, total)
	result.Items = items[start:end]
	return result
}
