package consultation_api_client

import (
	"bytes"
	"context"
	"dashboard-service/internal/contextkeys"
	"dashboard-service/internal/core/domain"
	"dashboard-service/internal/core/port"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const (
	DefaultBaseURL = "http://localhost:5000"
	dateLayout     = "2006-01-02"
)

// Client - клиент бэкенда управления заявками. Токен администратора
// берется из контекста запроса.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// doRequest выполняет запрос и раскладывает поле data ответа в out (если out не nil).
func (c *Client) doRequest(ctx context.Context, method, path string, payload any, out any) error {
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if traceID := contextkeys.TraceIDFromContext(ctx); traceID != "" {
		req.Header.Set("X-Trace-ID", traceID)
	}
	if token := contextkeys.AuthTokenFromContext(ctx); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return domain.NewError(domain.KindNetwork, domain.MsgNetwork, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return domain.NewError(domain.KindNetwork, domain.MsgNetwork, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeError(resp.StatusCode, respBody)
	}

	if out == nil || len(respBody) == 0 {
		return nil
	}
	env := envelope[json.RawMessage]{}
	if err := json.Unmarshal(respBody, &env); err != nil {
		return domain.NewError(domain.KindUnexpected, domain.MsgUnexpected, fmt.Errorf("decode response: %w", err))
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return domain.NewError(domain.KindUnexpected, domain.MsgUnexpected, fmt.Errorf("decode data: %w", err))
	}
	return nil
}

func (c *Client) logger(ctx context.Context, method string) port.LoggerPort {
	return contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "ConsultationApiClient",
		"method":    method,
	})
}

func listParams(q domain.ConsultationQuery) url.Values {
	params := url.Values{}
	if q.Page > 0 {
		params.Set("page", strconv.Itoa(q.Page))
	}
	if q.PageSize > 0 {
		params.Set("limit", strconv.Itoa(q.PageSize))
	}
	if s := strings.TrimSpace(q.Search); s != "" {
		params.Set("search", s)
	}
	if q.Service != nil {
		params.Set("service", string(*q.Service))
	}
	if q.Status != nil {
		params.Set("status", string(*q.Status))
	}
	if q.DateFrom != nil {
		params.Set("date_from", q.DateFrom.Format(dateLayout))
	}
	if q.DateTo != nil {
		params.Set("date_to", q.DateTo.Format(dateLayout))
	}
	if q.SortBy != "" {
		params.Set("sort_by", string(q.SortBy))
	}
	if q.SortOrder != "" {
		params.Set("sort_order", string(q.SortOrder))
	}
	return params
}

func (c *Client) ListConsultations(ctx context.Context, q domain.ConsultationQuery) (*domain.ConsultationPage, error) {
	log := c.logger(ctx, "ListConsultations")

	path := "/api/consultation"
	if params := listParams(q); len(params) > 0 {
		path += "?" + params.Encode()
	}
	log.Debug("Sending request to consultation backend", port.Fields{"path": path})

	var data listData
	if err := c.doRequest(ctx, http.MethodGet, path, nil, &data); err != nil {
		log.Error("Failed to list consultations", err, nil)
		return nil, err
	}

	page := &domain.ConsultationPage{
		Consultations: make([]domain.Consultation, 0, len(data.Consultations)),
		Pagination:    toPagination(data.Pagination),
		Stats:         toStats(data.Stats),
	}
	for _, dto := range data.Consultations {
		cons, err := toConsultation(dto)
		if err != nil {
			log.Warn("Skipping consultation with unknown enum value", port.Fields{"error": err.Error()})
			continue
		}
		page.Consultations = append(page.Consultations, cons)
	}

	log.Info("Consultations received", port.Fields{"count": len(page.Consultations)})
	return page, nil
}

func (c *Client) single(ctx context.Context, method, httpMethod, path string, payload any) (*domain.Consultation, error) {
	log := c.logger(ctx, method)

	var data singleData
	if err := c.doRequest(ctx, httpMethod, path, payload, &data); err != nil {
		log.Error("Consultation backend request failed", err, port.Fields{"path": path})
		return nil, err
	}

	cons, err := toConsultation(data.Consultation)
	if err != nil {
		log.Error("Consultation backend returned invalid record", err, nil)
		return nil, domain.NewError(domain.KindUnexpected, domain.MsgUnexpected, err)
	}
	return &cons, nil
}

func consultationPath(id string) string {
	return "/api/consultation/" + url.PathEscape(id)
}

func (c *Client) GetConsultation(ctx context.Context, id string) (*domain.Consultation, error) {
	return c.single(ctx, "GetConsultation", http.MethodGet, consultationPath(id), nil)
}

func (c *Client) UpdateNotes(ctx context.Context, id string, adminNotes string) (*domain.Consultation, error) {
	return c.single(ctx, "UpdateNotes", http.MethodPut, consultationPath(id), updateNotesRequest{AdminNotes: adminNotes})
}

func (c *Client) UpdateStatus(ctx context.Context, id string, update domain.StatusUpdate) (*domain.Consultation, error) {
	payload := updateStatusRequest{Status: string(update.Status), AdminNotes: update.AdminNotes}
	return c.single(ctx, "UpdateStatus", http.MethodPatch, consultationPath(id)+"/status", payload)
}

func (c *Client) SendMessage(ctx context.Context, id string, message string) (*domain.Consultation, error) {
	return c.single(ctx, "SendMessage", http.MethodPost, consultationPath(id)+"/message", sendMessageRequest{Message: message})
}

func (c *Client) DeleteConsultation(ctx context.Context, id string) error {
	log := c.logger(ctx, "DeleteConsultation")
	if err := c.doRequest(ctx, http.MethodDelete, consultationPath(id), nil, nil); err != nil {
		log.Error("Failed to delete consultation", err, port.Fields{"consultation_id": id})
		return err
	}
	return nil
}
