package usecase

import (
	"context"
	"dashboard-service/internal/core/domain"
	"dashboard-service/internal/core/port"
	"dashboard-service/internal/core/port/usecases_port"
	"errors"
	"fmt"
	"sync"
	"time"
)

const pollerMaxAttempts = 4

// DashboardPoller периодически обновляет дашборд в фоне.
type DashboardPoller struct {
	refresh  usecases_port.RefreshDashboardUseCase
	interval time.Duration
	logger   port.LoggerPort

	// wait ждет d или отмены ctx; подменяется в тестах
	wait func(ctx context.Context, d time.Duration) error

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewDashboardPoller(refresh usecases_port.RefreshDashboardUseCase, interval time.Duration, logger port.LoggerPort) *DashboardPoller {
	if interval <= 0 {
		interval = time.Minute
	}
	return &DashboardPoller{
		refresh:  refresh,
		interval: interval,
		logger:   logger.WithFields(port.Fields{"component": "DashboardPoller"}),
		wait:     waitOrDone,
	}
}

// Start делает первое обновление сразу и запускает цикл опроса.
// Ошибка первого обновления не мешает запуску: следующая попытка будет по таймеру.
func (p *DashboardPoller) Start(ctx context.Context) {
	ctx, p.cancel = context.WithCancel(ctx)

	if err := p.refreshWithRetry(ctx); err != nil {
		p.logger.Warn("Initial dashboard refresh failed", port.Fields{"error": err.Error()})
	}

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		defer func() {
			if r := recover(); r != nil {
				p.logger.Error("Dashboard poller panic recovered", fmt.Errorf("panic: %v", r), nil)
			}
		}()

		ticker := time.NewTicker(p.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				p.logger.Info("Dashboard polling stopped", nil)
				return
			case <-ticker.C:
				if err := p.refreshWithRetry(ctx); err != nil {
					p.logger.Warn("Dashboard refresh failed", port.Fields{"error": err.Error()})
				}
			}
		}
	}()
}

// Stop останавливает цикл и ждет завершения текущего обновления.
func (p *DashboardPoller) Stop() {
	if p.cancel != nil {
		p.cancel()
	}
	p.wg.Wait()
}

// refreshWithRetry повторяет обновление с задержками 1s, 2s, 4s.
// При превышении лимита CoinGecko повтор бессмыслен, ждем следующего тика.
func (p *DashboardPoller) refreshWithRetry(ctx context.Context) error {
	var lastErr error
	for i := 0; i < pollerMaxAttempts; i++ {
		if i > 0 {
			delay := time.Duration(1<<uint(i-1)) * time.Second
			p.logger.Info("Retrying dashboard refresh", port.Fields{"attempt": i, "delay": delay.String()})
			if err := p.wait(ctx, delay); err != nil {
				return err
			}
		}

		_, err := p.refresh.Execute(ctx)
		if err == nil {
			return nil
		}
		lastErr = err
		p.logger.Warn("Dashboard refresh attempt failed", port.Fields{"attempt": i + 1, "error": err.Error()})

		if domain.KindOf(err) == domain.KindRateLimited || errors.Is(err, context.Canceled) {
			return err
		}
	}
	return lastErr
}

func waitOrDone(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
