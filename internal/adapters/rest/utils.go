package rest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"dashboard-service/internal/core/domain"
)

// WriteJSONError отправляет JSON-ответ с полем "error" и заданным статусом
func WriteJSONError(w http.ResponseWriter, statusCode int, message string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": message})
}

// RespondWithJSON отправляет JSON-ответ
func RespondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		http.Error(w, "Failed to marshal JSON response", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(response)
}

// RespondSuccess оборачивает data в {"status":"success","data":...}
func RespondSuccess(w http.ResponseWriter, code int, data interface{}) {
	RespondWithJSON(w, code, SuccessResponse{Status: "success", Data: data})
}

var kindStatuses = map[domain.ErrorKind]int{
	domain.KindNetwork:           http.StatusBadGateway,
	domain.KindRateLimited:       http.StatusTooManyRequests,
	domain.KindNotFound:          http.StatusNotFound,
	domain.KindUnauthorized:      http.StatusUnauthorized,
	domain.KindForbidden:         http.StatusForbidden,
	domain.KindConflict:          http.StatusConflict,
	domain.KindValidation:        http.StatusBadRequest,
	domain.KindInvalidTransition: http.StatusUnprocessableEntity,
	domain.KindUnexpected:        http.StatusInternalServerError,
}

// HTTPStatusFor выбирает HTTP-статус по категории ошибки.
func HTTPStatusFor(err error) int {
	if code, ok := kindStatuses[domain.KindOf(err)]; ok {
		return code
	}
	return http.StatusInternalServerError
}

// WriteDomainError отвечает сообщением для пользователя из цепочки ошибок.
func WriteDomainError(w http.ResponseWriter, err error, fallback string) {
	WriteJSONError(w, HTTPStatusFor(err), domain.UserMessage(err, fallback))
}

// getIntOrDefault: пустой параметр дает def, нечисловой - ошибку валидации.
func getIntOrDefault(r *http.Request, name string, def int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, domain.NewValidationError(fmt.Sprintf("query parameter %s must be an integer", name))
	}
	return v, nil
}

// getPositiveIntOrDefault - как getIntOrDefault, но значения меньше 1 отклоняются.
func getPositiveIntOrDefault(r *http.Request, name string, def int) (int, error) {
	v, err := getIntOrDefault(r, name, def)
	if err != nil {
		return 0, err
	}
	if v < 1 {
		return 0, domain.NewValidationError(fmt.Sprintf("query parameter %s must be a positive integer", name))
	}
	return v, nil
}

func decodeJSONBody(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return domain.NewValidationError("Invalid request body")
	}
	return nil
}
