package rest

import (
	"net/http"
	"strings"
	"time"

	"dashboard-service/internal/contextkeys"
	"dashboard-service/internal/core/domain"
	"dashboard-service/internal/core/port"
	"dashboard-service/internal/core/port/usecases_port"

	"github.com/go-chi/chi/v5"
)

const dateLayout = "2006-01-02"

type ConsultationHandler struct {
	listUC         usecases_port.ListConsultationsUseCase
	getUC          usecases_port.GetConsultationUseCase
	updateStatusUC usecases_port.UpdateConsultationStatusUseCase
	updateNotesUC  usecases_port.UpdateConsultationNotesUseCase
	sendMessageUC  usecases_port.SendAdminMessageUseCase
	deleteUC       usecases_port.DeleteConsultationUseCase
}

func NewConsultationHandler(listUC usecases_port.ListConsultationsUseCase,
	getUC usecases_port.GetConsultationUseCase,
	updateStatusUC usecases_port.UpdateConsultationStatusUseCase,
	updateNotesUC usecases_port.UpdateConsultationNotesUseCase,
	sendMessageUC usecases_port.SendAdminMessageUseCase,
	deleteUC usecases_port.DeleteConsultationUseCase) *ConsultationHandler {
	return &ConsultationHandler{
		listUC:         listUC,
		getUC:          getUC,
		updateStatusUC: updateStatusUC,
		updateNotesUC:  updateNotesUC,
		sendMessageUC:  sendMessageUC,
		deleteUC:       deleteUC,
	}
}

// ListConsultations обрабатывает GET /api/v1/consultations
func (h *ConsultationHandler) ListConsultations(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "ListConsultations"})

	q, err := parseConsultationQuery(r)
	if err != nil {
		logger.Warn("Invalid consultation query", port.Fields{"error": err.Error()})
		WriteDomainError(w, err, domain.MsgValidationFailed)
		return
	}

	page, err := h.listUC.Execute(r.Context(), q)
	if err != nil {
		logger.Error("List consultations use case failed", err, nil)
		WriteDomainError(w, err, domain.MsgUnexpected)
		return
	}
	RespondSuccess(w, http.StatusOK, toConsultationPageResponse(page))
}

// GetConsultation обрабатывает GET /api/v1/consultations/{consultationID}
func (h *ConsultationHandler) GetConsultation(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "consultationID")
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "GetConsultation", "consultation_id": id})

	result, err := h.getUC.Execute(r.Context(), id)
	if err != nil {
		logger.Error("Get consultation use case failed", err, nil)
		WriteDomainError(w, err, domain.MsgUnexpected)
		return
	}
	RespondSuccess(w, http.StatusOK, toConsultationDetailResponse(result))
}

// GetTransitions обрабатывает GET /api/v1/consultations/{consultationID}/transitions
func (h *ConsultationHandler) GetTransitions(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "consultationID")
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "GetTransitions", "consultation_id": id})

	result, err := h.getUC.Execute(r.Context(), id)
	if err != nil {
		logger.Error("Get consultation use case failed", err, nil)
		WriteDomainError(w, err, domain.MsgUnexpected)
		return
	}

	status := result.Consultation.Status
	RespondSuccess(w, http.StatusOK, TransitionsResponse{
		ConsultationID:      result.Consultation.ID,
		Status:              string(status),
		AllowedNextStatuses: statusStrings(result.AllowedNextStatuses),
		Terminal:            domain.IsTerminal(status),
	})
}

// UpdateNotes обрабатывает PUT /api/v1/consultations/{consultationID}
func (h *ConsultationHandler) UpdateNotes(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "consultationID")
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "UpdateNotes", "consultation_id": id})

	var req UpdateNotesRequest
	if err := decodeJSONBody(r, &req); err != nil {
		WriteDomainError(w, err, domain.MsgValidationFailed)
		return
	}

	updated, err := h.updateNotesUC.Execute(r.Context(), id, req.AdminNotes)
	if err != nil {
		logger.Error("Update notes use case failed", err, nil)
		WriteDomainError(w, err, domain.MsgUnexpected)
		return
	}
	RespondSuccess(w, http.StatusOK, toConsultationResponse(*updated))
}

// UpdateStatus обрабатывает PATCH /api/v1/consultations/{consultationID}/status
func (h *ConsultationHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "consultationID")
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "UpdateStatus", "consultation_id": id})

	var req UpdateStatusRequest
	if err := decodeJSONBody(r, &req); err != nil {
		WriteDomainError(w, err, domain.MsgValidationFailed)
		return
	}

	result, err := h.updateStatusUC.Execute(r.Context(), id, req.Status, req.AdminNotes)
	if err != nil {
		logger.Error("Update status use case failed", err, port.Fields{"status": req.Status})
		WriteDomainError(w, err, domain.MsgStatusUpdateFailed)
		return
	}
	RespondSuccess(w, http.StatusOK, toConsultationDetailResponse(result))
}

// SendMessage обрабатывает POST /api/v1/consultations/{consultationID}/messages
func (h *ConsultationHandler) SendMessage(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "consultationID")
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "SendMessage", "consultation_id": id})

	var req SendMessageRequest
	if err := decodeJSONBody(r, &req); err != nil {
		WriteDomainError(w, err, domain.MsgValidationFailed)
		return
	}

	updated, err := h.sendMessageUC.Execute(r.Context(), id, req.Message)
	if err != nil {
		logger.Error("Send message use case failed", err, nil)
		WriteDomainError(w, err, domain.MsgUnexpected)
		return
	}
	RespondSuccess(w, http.StatusCreated, toConsultationResponse(*updated))
}

// DeleteConsultation обрабатывает DELETE /api/v1/consultations/{consultationID}
func (h *ConsultationHandler) DeleteConsultation(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "consultationID")
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "DeleteConsultation", "consultation_id": id})

	if err := h.deleteUC.Execute(r.Context(), id); err != nil {
		logger.Error("Delete consultation use case failed", err, nil)
		WriteDomainError(w, err, domain.MsgUnexpected)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func parseConsultationQuery(r *http.Request) (domain.ConsultationQuery, error) {
	values := r.URL.Query()
	q := domain.DefaultConsultationQuery()
	var err error

	q.Search = strings.TrimSpace(values.Get("search"))

	if raw := values.Get("service"); raw != "" && raw != domain.FilterAll {
		service, err := domain.ParseService(raw)
		if err != nil {
			return q, err
		}
		q.Service = &service
	}
	if raw := values.Get("status"); raw != "" && raw != domain.FilterAll {
		status, err := domain.ParseStatus(raw)
		if err != nil {
			return q, err
		}
		q.Status = &status
	}

	if q.DateFrom, err = parseDateParam(values.Get("date_from"), "date_from"); err != nil {
		return q, err
	}
	if q.DateTo, err = parseDateParam(values.Get("date_to"), "date_to"); err != nil {
		return q, err
	}

	if sortBy := values.Get("sort_by"); sortBy != "" {
		q.SortBy = domain.ParseConsultationSortKey(sortBy)
	}
	q.SortOrder = domain.ParseSortDirection(values.Get("sort_order"), q.SortOrder)

	if q.Page, err = getPositiveIntOrDefault(r, "page", q.Page); err != nil {
		return q, err
	}
	if q.PageSize, err = getPositiveIntOrDefault(r, "limit", q.PageSize); err != nil {
		return q, err
	}
	return q, nil
}

func parseDateParam(raw, name string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, raw)
	if err != nil {
		return nil, domain.NewValidationError(name + " must be a date in YYYY-MM-DD format")
	}
	return &t, nil
}
