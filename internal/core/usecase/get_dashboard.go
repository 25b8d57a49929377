package usecase

import (
	"context"
	"dashboard-service/internal/contextkeys"
	"dashboard-service/internal/core/domain"
	"dashboard-service/internal/core/port"
	"dashboard-service/internal/core/port/usecases_port"
	"dashboard-service/internal/core/view"
	"time"
)

type GetDashboardUseCase struct {
	state   *view.State[domain.DashboardAggregate]
	refresh usecases_port.RefreshDashboardUseCase
	maxAge  time.Duration
}

func NewGetDashboardUseCase(state *view.State[domain.DashboardAggregate],
	refresh usecases_port.RefreshDashboardUseCase,
	maxAge time.Duration) *GetDashboardUseCase {
	return &GetDashboardUseCase{state: state, refresh: refresh, maxAge: maxAge}
}

// Execute отдает текущий дашборд, обновляя его, если данных нет или они устарели.
func (uc *GetDashboardUseCase) Execute(ctx context.Context) (*domain.DashboardAggregate, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{"use_case": "GetDashboard"})

	if snap, fresh := uc.state.Fresh(uc.maxAge); fresh {
		ucLogger.Debug("Serving dashboard from view state", port.Fields{"refreshed_at": snap.RefreshedAt})
		data := snap.Data
		return &data, nil
	}

	ucLogger.Info("Dashboard is empty or stale, refreshing", nil)
	return uc.refresh.Execute(ctx)
}
