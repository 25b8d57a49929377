package consultation_api_client

import (
	"dashboard-service/internal/core/domain"
	"fmt"
)

func toConsultation(d consultationDTO) (domain.Consultation, error) {
	status, err := domain.ParseStatus(d.Status)
	if err != nil {
		return domain.Consultation{}, fmt.Errorf("consultation %s: %w", d.ID, err)
	}
	service, err := domain.ParseService(d.Service)
	if err != nil {
		return domain.Consultation{}, fmt.Errorf("consultation %s: %w", d.ID, err)
	}
	var budget domain.Budget
	if d.Budget != "" {
		if budget, err = domain.ParseBudget(d.Budget); err != nil {
			return domain.Consultation{}, fmt.Errorf("consultation %s: %w", d.ID, err)
		}
	}

	messages := make([]domain.AdminMessage, 0, len(d.AdminMessages))
	for _, m := range d.AdminMessages {
		via, err := domain.ParseSentVia(m.SentVia)
		if err != nil {
			return domain.Consultation{}, fmt.Errorf("consultation %s: %w", d.ID, err)
		}
		messages = append(messages, domain.AdminMessage{
			Message: m.Message,
			SentBy:  m.SentBy,
			SentAt:  m.SentAt,
			SentVia: via,
		})
	}

	return domain.Consultation{
		ID:                   d.ID,
		ConsultationID:       d.ConsultationID,
		Name:                 d.Name,
		Email:                d.Email,
		Phone:                d.Phone,
		Company:              d.Company,
		Service:              service,
		Budget:               budget,
		Message:              d.Message,
		Status:               status,
		AdminNotes:           d.AdminNotes,
		AdminMessages:        messages,
		SubmittedByIP:        d.SubmittedByIP,
		SubmittedByUserAgent: d.SubmittedByUserAgent,
		LastStatusChange:     d.LastStatusChange,
		LastContacted:        d.LastContacted,
		CreatedAt:            d.CreatedAt,
		UpdatedAt:            d.UpdatedAt,
	}, nil
}

func toPagination(p paginationDTO) domain.Pagination {
	return domain.Pagination{
		CurrentPage: p.CurrentPage,
		TotalPages:  p.TotalPages,
		TotalItems:  p.TotalItems,
		HasNext:     p.HasNext,
		HasPrev:     p.HasPrev,
		NextPage:    p.NextPage,
		PrevPage:    p.PrevPage,
		Limit:       p.Limit,
	}
}

func toStats(s statsDTO) domain.ConsultationStats {
	return domain.ConsultationStats{
		Pending:   s.Pending,
		Reviewed:  s.Reviewed,
		Approved:  s.Approved,
		Rejected:  s.Rejected,
		Contacted: s.Contacted,
	}
}
