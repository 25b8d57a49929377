package consultation_api_client

import (
	"dashboard-service/internal/core/domain"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// statusKinds - категория и сообщение по коду ответа, если бэкенд
// не прислал ни списка ошибок, ни своего сообщения.
var statusKinds = map[int]struct {
	kind domain.ErrorKind
	msg  string
}{
	http.StatusBadRequest:      {domain.KindValidation, domain.MsgValidationFailed},
	http.StatusUnauthorized:    {domain.KindUnauthorized, domain.MsgUnauthorized},
	http.StatusForbidden:       {domain.KindForbidden, domain.MsgForbidden},
	http.StatusNotFound:        {domain.KindNotFound, domain.MsgConsultationNotFound},
	http.StatusConflict:        {domain.KindConflict, domain.MsgConflict},
	http.StatusTooManyRequests: {domain.KindRateLimited, domain.MsgTooManyRequests},
}

// decodeError строит ошибку приложения из ответа с кодом не 2xx.
// Порядок: список errors[], затем message, затем код ответа.
func decodeError(status int, body []byte) error {
	kind, msg := domain.KindUnexpected, domain.MsgUnexpected
	if k, ok := statusKinds[status]; ok {
		kind, msg = k.kind, k.msg
	}
	cause := fmt.Errorf("consultation backend returned status %d", status)

	var env envelope[json.RawMessage]
	if err := json.Unmarshal(body, &env); err != nil {
		return domain.NewError(kind, msg, cause)
	}

	if len(env.Errors) > 0 {
		msgs := make([]string, 0, len(env.Errors))
		for _, e := range env.Errors {
			if e.Msg != "" {
				msgs = append(msgs, e.Msg)
			}
		}
		joined := strings.Join(msgs, ", ")
		switch {
		case joined != "":
			msg = joined
		case env.Message != "":
			msg = env.Message
		default:
			msg = domain.MsgValidationFailed
		}
		return domain.NewError(domain.KindValidation, msg, cause)
	}

	if env.Message != "" {
		msg = env.Message
	}
	return domain.NewError(kind, msg, cause)
}
