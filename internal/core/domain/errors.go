package domain

import (
	"errors"
	"fmt"
)

// ErrorKind - категория ошибки, по которой REST-слой выбирает HTTP-статус.
type ErrorKind string

const (
	KindNetwork           ErrorKind = "network"
	KindRateLimited       ErrorKind = "rate_limited"
	KindNotFound          ErrorKind = "not_found"
	KindUnauthorized      ErrorKind = "unauthorized"
	KindForbidden         ErrorKind = "forbidden"
	KindConflict          ErrorKind = "conflict"
	KindValidation        ErrorKind = "validation"
	KindInvalidTransition ErrorKind = "invalid_transition"
	KindUnexpected        ErrorKind = "unexpected"
)

// Сообщения, которые видит пользователь.
const (
	MsgNetwork              = "Unable to connect to server. Please check your connection."
	MsgMarketRateLimited    = "API rate limit exceeded. Please wait before making more requests."
	MsgMarketNotFound       = "Data not found."
	MsgMarketUnexpected     = "An unexpected error occurred while fetching crypto data"
	MsgConsultationNotFound = "Consultation not found."
	MsgUnauthorized         = "Unauthorized access. Please login again."
	MsgForbidden            = "Access forbidden. Insufficient permissions."
	MsgConflict             = "Duplicate consultation detected."
	MsgTooManyRequests      = "Too many requests. Please wait before submitting again."
	MsgValidationFailed     = "Validation failed"
	MsgUnexpected           = "An unexpected error occurred"
	MsgStatusUpdateFailed   = "Failed to update status"
)

// Error - ошибка приложения с категорией и сообщением для пользователя.
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

func NewError(kind ErrorKind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

func NewValidationError(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

// ErrInvalidTransition возвращается, когда запрошенный статус не разрешен политикой.
func ErrInvalidTransition(from, to Status) *Error {
	return &Error{
		Kind:    KindInvalidTransition,
		Message: MsgStatusUpdateFailed,
		Err:     fmt.Errorf("transition %s -> %s is not allowed", from, to),
	}
}

// KindOf извлекает категорию из цепочки ошибок. Для чужих ошибок - KindUnexpected.
func KindOf(err error) ErrorKind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindUnexpected
}

// UserMessage возвращает сообщение для пользователя или fallback.
func UserMessage(err error, fallback string) string {
	var appErr *Error
	if errors.As(err, &appErr) && appErr.Message != "" {
		return appErr.Message
	}
	return fallback
}
