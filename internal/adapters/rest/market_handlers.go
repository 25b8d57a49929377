package rest

import (
	"net/http"
	"strings"

	"dashboard-service/internal/contextkeys"
	"dashboard-service/internal/core/domain"
	"dashboard-service/internal/core/port"
	"dashboard-service/internal/core/port/usecases_port"

	"github.com/go-chi/chi/v5"
)

const defaultChartDays = 7

type MarketHandler struct {
	getDashboardUC     usecases_port.GetDashboardUseCase
	refreshDashboardUC usecases_port.RefreshDashboardUseCase
	listAssetsUC       usecases_port.ListAssetsUseCase
	assetDetailUC      usecases_port.GetAssetDetailUseCase
	assetChartUC       usecases_port.GetAssetChartUseCase
}

func NewMarketHandler(getDashboardUC usecases_port.GetDashboardUseCase,
	refreshDashboardUC usecases_port.RefreshDashboardUseCase,
	listAssetsUC usecases_port.ListAssetsUseCase,
	assetDetailUC usecases_port.GetAssetDetailUseCase,
	assetChartUC usecases_port.GetAssetChartUseCase) *MarketHandler {
	return &MarketHandler{
		getDashboardUC:     getDashboardUC,
		refreshDashboardUC: refreshDashboardUC,
		listAssetsUC:       listAssetsUC,
		assetDetailUC:      assetDetailUC,
		assetChartUC:       assetChartUC,
	}
}

// GetDashboard обрабатывает GET /api/v1/market/dashboard
func (h *MarketHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "GetDashboard"})

	dashboard, err := h.getDashboardUC.Execute(r.Context())
	if err != nil {
		logger.Error("Get dashboard use case failed", err, nil)
		WriteDomainError(w, err, domain.MsgMarketUnexpected)
		return
	}
	RespondSuccess(w, http.StatusOK, toDashboardResponse(dashboard))
}

// RefreshDashboard обрабатывает POST /api/v1/market/dashboard/refresh
func (h *MarketHandler) RefreshDashboard(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "RefreshDashboard"})

	dashboard, err := h.refreshDashboardUC.Execute(r.Context())
	if err != nil {
		logger.Error("Refresh dashboard use case failed", err, nil)
		WriteDomainError(w, err, domain.MsgMarketUnexpected)
		return
	}
	RespondSuccess(w, http.StatusOK, toDashboardResponse(dashboard))
}

// ListAssets обрабатывает GET /api/v1/market/assets
func (h *MarketHandler) ListAssets(w http.ResponseWriter, r *http.Request) {
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "ListAssets"})

	q, err := parseAssetQuery(r)
	if err != nil {
		logger.Warn("Invalid asset query", port.Fields{"error": err.Error()})
		WriteDomainError(w, err, domain.MsgValidationFailed)
		return
	}

	page, err := h.listAssetsUC.Execute(r.Context(), q)
	if err != nil {
		logger.Error("List assets use case failed", err, nil)
		WriteDomainError(w, err, domain.MsgMarketUnexpected)
		return
	}
	RespondSuccess(w, http.StatusOK, toAssetPageResponse(page))
}

// GetAsset обрабатывает GET /api/v1/market/assets/{assetID}
func (h *MarketHandler) GetAsset(w http.ResponseWriter, r *http.Request) {
	assetID := chi.URLParam(r, "assetID")
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "GetAsset", "asset_id": assetID})

	detail, err := h.assetDetailUC.Execute(r.Context(), assetID)
	if err != nil {
		logger.Error("Get asset detail use case failed", err, nil)
		WriteDomainError(w, err, domain.MsgMarketUnexpected)
		return
	}
	RespondSuccess(w, http.StatusOK, toAssetDetailResponse(detail))
}

// GetAssetChart обрабатывает GET /api/v1/market/assets/{assetID}/chart?days=N
func (h *MarketHandler) GetAssetChart(w http.ResponseWriter, r *http.Request) {
	assetID := chi.URLParam(r, "assetID")
	logger := contextkeys.LoggerFromContext(r.Context()).WithFields(port.Fields{"handler": "GetAssetChart", "asset_id": assetID})

	days, err := getIntOrDefault(r, "days", defaultChartDays)
	if err != nil {
		WriteDomainError(w, err, domain.MsgValidationFailed)
		return
	}

	chart, err := h.assetChartUC.Execute(r.Context(), assetID, days)
	if err != nil {
		logger.Error("Get asset chart use case failed", err, port.Fields{"days": days})
		WriteDomainError(w, err, domain.MsgMarketUnexpected)
		return
	}
	RespondSuccess(w, http.StatusOK, toAssetChartResponse(chart))
}

func parseAssetQuery(r *http.Request) (domain.AssetQuery, error) {
	values := r.URL.Query()
	q := domain.DefaultAssetQuery()

	q.Search = strings.TrimSpace(values.Get("search"))

	category, err := domain.ParseAssetCategory(values.Get("category"))
	if err != nil {
		return q, err
	}
	q.Category = category

	if sortBy := values.Get("sort_by"); sortBy != "" {
		q.SortBy = domain.ParseAssetSortKey(sortBy)
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
