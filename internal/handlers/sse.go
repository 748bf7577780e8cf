package handlers

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/a-h/templ"
	"github.com/starfederation/datastar-go/datastar"

	"sales-dashboard/internal/errors"
	"sales-dashboard/internal/models"
	"sales-dashboard/internal/services"
	"sales-dashboard/internal/ui/templates"
)

const maxTableRows = 100

type SSEHandlers struct {
	dashboard *services.Dashboard
	logger    *slog.Logger
}

func NewSSEHandlers(dashboard *services.Dashboard, logger *slog.Logger) *SSEHandlers {
	return &SSEHandlers{
		dashboard: dashboard,
		logger:    logger,
	}
}

func renderComponent(ctx context.Context, c templ.Component) (string, error) {
	var buf strings.Builder
	err := c.Render(ctx, &buf)
	return buf.String(), err
}

// begin opens the event stream and runs the pipeline for the signals on r.
// Bad signals are shown to the user in the error banner and reported as
// false; a good run clears the banner.
func (h *SSEHandlers) begin(w http.ResponseWriter, r *http.Request) (*datastar.ServerSentEventGenerator, models.RenderResult, bool) {
	var signals dashboardSignals
	readErr := datastar.ReadSignals(r, &signals)

	sse := datastar.NewSSE(w, r)

	if readErr != nil {
		h.fail(sse, r, errors.BadRequestWrap(readErr, "could not read dashboard signals"))
		return sse, models.RenderResult{}, false
	}

	criteria, err := criteriaFromSignals(signals, h.dashboard.DefaultCriteria())
	if err != nil {
		h.fail(sse, r, err)
		return sse, models.RenderResult{}, false
	}

	h.patch(sse, r, templates.ErrorBanner(""))
	return sse, h.dashboard.Render(r.Context(), criteria), true
}

func (h *SSEHandlers) fail(sse *datastar.ServerSentEventGenerator, r *http.Request, err error) {
	message := "An unexpected error occurred"
	if appErr, ok := errors.As(err); ok && appErr.StatusCode < http.StatusInternalServerError {
		message = appErr.Message
	}

	h.logger.WarnContext(r.Context(), "dashboard update rejected", "error", err)
	h.patch(sse, r, templates.ErrorBanner(message))
}

func (h *SSEHandlers) patch(sse *datastar.ServerSentEventGenerator, r *http.Request, c templ.Component) {
	html, err := renderComponent(r.Context(), c)
	if err != nil {
		h.logger.ErrorContext(r.Context(), "render fragment", "error", err)
		return
	}
	if err := sse.PatchElements(html); err != nil {
		h.logger.ErrorContext(r.Context(), "patch elements", "error", err)
	}
}

func (h *SSEHandlers) patchSignals(sse *datastar.ServerSentEventGenerator, signals map[string]any) {
	jsonData, err := json.Marshal(signals)
	if err != nil {
		h.logger.Error("marshal signals", "error", err)
		return
	}
	if err := sse.PatchSignals(jsonData); err != nil {
		h.logger.Error("patch signals", "error", err)
	}
}

func flush(w http.ResponseWriter) {
	if f, ok := w.(http.Flusher); ok {
		f.Flush()
	}
}

// HandleDashboard refreshes every widget in one stream.
func (h *SSEHandlers) HandleDashboard(w http.ResponseWriter, r *http.Request) {
	sse, result, ok := h.begin(w, r)
	if ok {
		h.patch(sse, r, templates.MetricCards(services.FormatMetrics(result.Metrics)))
		h.patch(sse, r, templates.RecordsTable(result.Records, maxTableRows))
		h.patchSignals(sse, map[string]any{
			"dailyData":  result.DailyTotals,
			"regionData": result.RegionTotals,
		})
	}
	flush(w)
}

func (h *SSEHandlers) HandleMetrics(w http.ResponseWriter, r *http.Request) {
	sse, result, ok := h.begin(w, r)
	if ok {
		h.patch(sse, r, templates.MetricCards(services.FormatMetrics(result.Metrics)))
	}
	flush(w)
}

func (h *SSEHandlers) HandleRecords(w http.ResponseWriter, r *http.Request) {
	sse, result, ok := h.begin(w, r)
	if ok {
		h.patch(sse, r, templates.RecordsTable(result.Records, maxTableRows))
	}
	flush(w)
}

func (h *SSEHandlers) HandleDailySales(w http.ResponseWriter, r *http.Request) {
	sse, result, ok := h.begin(w, r)
	if ok {
		h.patchSignals(sse, map[string]any{"dailyData": result.DailyTotals})
	}
	flush(w)
}

func (h *SSEHandlers) HandleRegionSales(w http.ResponseWriter, r *http.Request) {
	sse, result, ok := h.begin(w, r)
	if ok {
		h.patchSignals(sse, map[string]any{"regionData": result.RegionTotals})
	}
	flush(w)
}
