package templates

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/a-h/templ"

	"sales-dashboard/internal/models"
)

// Element ids patched by the SSE handlers.
const (
	MetricsID = "metrics-content"
	RecordsID = "records-content"
	ErrorID   = "error-banner"
)

func writeAll(w io.Writer, parts ...string) error {
	for _, p := range parts {
		if _, err := io.WriteString(w, p); err != nil {
			return err
		}
	}
	return nil
}

func metricCard(w io.Writer, label, value string) error {
	return writeAll(w,
		`<div class="metric-card"><div class="metric-label">`, templ.EscapeString(label),
		`</div><div class="metric-value">`, templ.EscapeString(value), `</div></div>`,
	)
}

// MetricCards renders the three headline numbers.
func MetricCards(display models.MetricsDisplay) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if err := writeAll(w, `<div id="`, MetricsID, `" class="metrics-grid">`); err != nil {
			return err
		}
		if err := metricCard(w, "Total Sales", display.TotalSales); err != nil {
			return err
		}
		if err := metricCard(w, "Average Daily Sales", display.AverageDailySales); err != nil {
			return err
		}
		if err := metricCard(w, "Number of Transactions", display.TransactionCount); err != nil {
			return err
		}
		return writeAll(w, `</div>`)
	})
}

// RecordsTable renders at most maxRows records of the filtered view.
func RecordsTable(records []models.Record, maxRows int) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		err := writeAll(w,
			`<div id="`, RecordsID, `">`,
			`<table class="modern-table"><thead><tr><th>Date</th><th>Sales</th><th>Region</th></tr></thead><tbody>`,
		)
		if err != nil {
			return err
		}

		if len(records) == 0 {
			if err := writeAll(w, `<tr><td colspan="3" class="empty">No records match the current filters</td></tr>`); err != nil {
				return err
			}
		}

		for i, rec := range records {
			if i >= maxRows {
				break
			}
			err := writeAll(w,
				`<tr><td>`, rec.Date.Format(models.DateLayout),
				`</td><td>`, strconv.Itoa(rec.Sales),
				`</td><td><span class="region-badge">`, templ.EscapeString(string(rec.Region)),
				`</span></td></tr>`,
			)
			if err != nil {
				return err
			}
		}

		if err := writeAll(w, `</tbody></table>`); err != nil {
			return err
		}
		if len(records) > maxRows {
			if err := writeAll(w, fmt.Sprintf(`<p class="table-note">Showing %d of %d records</p>`, maxRows, len(records))); err != nil {
				return err
			}
		}
		return writeAll(w, `</div>`)
	})
}

// ErrorBanner shows message to the user; an empty message clears the banner.
func ErrorBanner(message string) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if message == "" {
			return writeAll(w, `<div id="`, ErrorID, `"></div>`)
		}
		return writeAll(w, `<div id="`, ErrorID, `" class="error-banner" role="alert">`, templ.EscapeString(message), `</div>`)
	})
}
