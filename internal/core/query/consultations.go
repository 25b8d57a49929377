package query

import (
	"dashboard-service/internal/core/domain"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// ConsultationPipeline строит конвейер для списка заявок по ConsultationQuery.
// Диапазон дат фильтрует бэкенд, здесь он не применяется.
func ConsultationPipeline(q domain.ConsultationQuery) Pipeline[domain.Consultation] {
	p := Pipeline[domain.Consultation]{
		Search: q.Search,
		SearchFields: func(c domain.Consultation) []string {
			return []string{c.Name, c.Email, c.Company, c.ConsultationID}
		},
		Compare:    consultationComparator(q.SortBy),
		Descending: domain.ParseSortDirection(string(q.SortOrder), domain.SortDesc) == domain.SortDesc,
		Page:       q.Page,
		PageSize:   q.PageSize,
	}

	if q.Service != nil {
		service := *q.Service
		p.Filters = append(p.Filters, func(c domain.Consultation) bool { return c.Service == service })
	}
	if q.Status != nil {
		status := *q.Status
		p.Filters = append(p.Filters, func(c domain.Consultation) bool { return c.Status == status })
	}

	return p
}

func QueryConsultations(items []domain.Consultation, q domain.ConsultationQuery) domain.Page[domain.Consultation] {
	return Run(items, ConsultationPipeline(q))
}

func consultationComparator(key domain.ConsultationSortKey) func(a, b domain.Consultation) int {
	switch domain.ParseConsultationSortKey(string(key)) {
	case domain.ConsultationSortUpdatedAt:
		return func(a, b domain.Consultation) int { return a.UpdatedAt.Compare(b.UpdatedAt) }
	case domain.ConsultationSortName:
		col := collate.New(language.English)
		return func(a, b domain.Consultation) int { return col.CompareString(a.Name, b.Name) }
	case domain.ConsultationSortEmail:
		col := collate.New(language.English)
		return func(a, b domain.Consultation) int { return col.CompareString(a.Email, b.Email) }
	case domain.ConsultationSortStatus:
		return func(a, b domain.Consultation) int { return strings.Compare(string(a.Status), string(b.Status)) }
	default:
		return func(a, b domain.Consultation) int { return a.CreatedAt.Compare(b.CreatedAt) }
	}
}
