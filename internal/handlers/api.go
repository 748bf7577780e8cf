package handlers

import (
	"encoding/csv"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"sales-dashboard/internal/errors"
	"sales-dashboard/internal/models"
	"sales-dashboard/internal/observability"
	"sales-dashboard/internal/services"
)

const (
	cacheStatic   = "public, max-age=300"
	cacheFiltered = "no-store"
)

type APIHandlers struct {
	dashboard *services.Dashboard
	logger    *slog.Logger
}

func NewAPIHandlers(dashboard *services.Dashboard, logger *slog.Logger) *APIHandlers {
	return &APIHandlers{
		dashboard: dashboard,
		logger:    logger,
	}
}

type metricsResponse struct {
	Metrics models.MetricsSnapshot `json:"metrics"`
	Display models.MetricsDisplay  `json:"display"`
}

type dashboardResponse struct {
	models.RenderResult
	Display models.MetricsDisplay `json:"display"`
}

// render parses the filter criteria from the query and runs the pipeline.
// On bad input it writes the error response and reports false.
func (h *APIHandlers) render(w http.ResponseWriter, r *http.Request) (models.RenderResult, bool) {
	criteria, err := criteriaFromQuery(r.URL.Query(), h.dashboard.DefaultCriteria())
	if err != nil {
		errors.WriteError(w, h.logger, err, observability.GetRequestID(r.Context()))
		return models.RenderResult{}, false
	}
	return h.dashboard.Render(r.Context(), criteria), true
}

func filteredHeaders() map[string]string {
	return map[string]string{"Cache-Control": cacheFiltered}
}

func (h *APIHandlers) HandleOptions(w http.ResponseWriter, r *http.Request) {
	errors.WriteSuccessWithHeaders(w, h.dashboard.Options(), map[string]string{
		"Cache-Control": cacheStatic,
	})
}

func (h *APIHandlers) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	result, ok := h.render(w, r)
	if !ok {
		return
	}

	errors.WriteSuccessWithHeaders(w, dashboardResponse{
		RenderResult: result,
		Display:      services.FormatMetrics(result.Metrics),
	}, filteredHeaders())
}

func (h *APIHandlers) HandleMetrics(w http.ResponseWriter, r *http.Request) {
	result, ok := h.render(w, r)
	if !ok {
		return
	}

	errors.WriteSuccessWithHeaders(w, metricsResponse{
		Metrics: result.Metrics,
		Display: services.FormatMetrics(result.Metrics),
	}, filteredHeaders())
}

func (h *APIHandlers) HandleRecords(w http.ResponseWriter, r *http.Request) {
	result, ok := h.render(w, r)
	if !ok {
		return
	}

	errors.WriteSuccessWithHeaders(w, result.Records, filteredHeaders())
}

func (h *APIHandlers) HandleDailySales(w http.ResponseWriter, r *http.Request) {
	result, ok := h.render(w, r)
	if !ok {
		return
	}

	errors.WriteSuccessWithHeaders(w, result.DailyTotals, filteredHeaders())
}

func (h *APIHandlers) HandleRegionSales(w http.ResponseWriter, r *http.Request) {
	result, ok := h.render(w, r)
	if !ok {
		return
	}

	errors.WriteSuccessWithHeaders(w, result.RegionTotals, filteredHeaders())
}

// HandleRecordsCSV streams the filtered view as a CSV attachment.
func (h *APIHandlers) HandleRecordsCSV(w http.ResponseWriter, r *http.Request) {
	result, ok := h.render(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="sales.csv"`)
	w.Header().Set("Cache-Control", cacheFiltered)

	cw := csv.NewWriter(w)
	_ = cw.Write([]string{"date", "sales", "region"})
	for _, rec := range result.Records {
		_ = cw.Write([]string{
			rec.Date.Format(models.DateLayout),
			strconv.Itoa(rec.Sales),
			string(rec.Region),
		})
	}
	cw.Flush()

	// headers are already sent, so a failure can only be logged
	if err := cw.Error(); err != nil {
		h.logger.ErrorContext(r.Context(), "write csv export", "error", err)
	}
}

func (h *APIHandlers) HandleHealth(w http.ResponseWriter, r *http.Request) {
	if h.dashboard.Dataset().Len() == 0 {
		errors.WriteError(w, h.logger, errors.ServiceUnavailable("dataset not loaded"), observability.GetRequestID(r.Context()))
		return
	}

	healthData := map[string]string{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
		"version":   "1.0.0",
	}

	errors.WriteSuccess(w, healthData)
}

func (h *APIHandlers) HandleStats(w http.ResponseWriter, r *http.Request) {
	errors.WriteSuccess(w, h.dashboard.Stats())
}
