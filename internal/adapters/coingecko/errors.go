package coingecko

import (
	"dashboard-service/internal/core/domain"
	"fmt"
	"net/http"
)

// mapStatus переводит ответ CoinGecko в ошибку приложения.
// Нулевой статус означает, что ответа не было вовсе.
func mapStatus(status int, err error) error {
	cause := fmt.Errorf("coingecko status %d: %w", status, err)
	switch {
	case status == 0:
		return domain.NewError(domain.KindNetwork, domain.MsgNetwork, cause)
	case status == http.StatusTooManyRequests:
		return domain.NewError(domain.KindRateLimited, domain.MsgMarketRateLimited, cause)
	case status == http.StatusNotFound:
		return domain.NewError(domain.KindNotFound, domain.MsgMarketNotFound, cause)
	default:
		return domain.NewError(domain.KindUnexpected, domain.MsgMarketUnexpected, cause)
	}
}
