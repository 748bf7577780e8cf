package templates

import (
	"context"
	"encoding/json"
	"io"

	"github.com/a-h/templ"

	"sales-dashboard/internal/models"
)

const (
	datastarScript = "https://cdn.jsdelivr.net/gh/starfederation/datastar@v1.0.0-RC.5/bundles/datastar.js"
	chartScript    = "https://cdn.jsdelivr.net/npm/chart.js@4.4.4/dist/chart.umd.min.js"
)

type pageSignals struct {
	StartDate  string          `json:"startDate"`
	EndDate    string          `json:"endDate"`
	Regions    []models.Region `json:"regions"`
	DailyData  []any           `json:"dailyData"`
	RegionData []any           `json:"regionData"`
}

// Dashboard renders the full page. The initial signals select the whole
// dataset; everything below the sidebar is filled in by /sse/dashboard.
func Dashboard(opts models.FilterOptions) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		minDate, maxDate := "", ""
		if !opts.MinDate.IsZero() {
			minDate = opts.MinDate.Format(models.DateLayout)
			maxDate = opts.MaxDate.Format(models.DateLayout)
		}

		regions := opts.Regions
		if regions == nil {
			regions = []models.Region{}
		}
		signals, err := json.Marshal(pageSignals{
			StartDate:  minDate,
			EndDate:    maxDate,
			Regions:    regions,
			DailyData:  []any{},
			RegionData: []any{},
		})
		if err != nil {
			return err
		}

		err = writeAll(w,
			`<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">`,
			`<meta name="viewport" content="width=device-width, initial-scale=1">`,
			`<title>Simple Sales Dashboard</title>`,
			`<script type="module" src="`, datastarScript, `"></script>`,
			`<script src="`, chartScript, `"></script>`,
			pageStyle,
			`</head><body data-signals="`, templ.EscapeString(string(signals)), `" data-on-load="@get('/sse/dashboard')">`,
			`<aside class="sidebar"><h2>Filters</h2>`,
			`<label>Start date <input type="date" data-bind-start-date min="`, minDate, `" max="`, maxDate, `" data-on-change="@get('/sse/dashboard')"></label>`,
			`<label>End date <input type="date" data-bind-end-date min="`, minDate, `" max="`, maxDate, `" data-on-change="@get('/sse/dashboard')"></label>`,
			`<fieldset><legend>Select Region(s)</legend>`,
		)
		if err != nil {
			return err
		}

		for _, r := range regions {
			name := templ.EscapeString(string(r))
			err := writeAll(w,
				`<label><input type="checkbox" data-bind-regions value="`, name,
				`" data-on-change="@get('/sse/dashboard')"> `, name, `</label>`,
			)
			if err != nil {
				return err
			}
		}

		err = writeAll(w,
			`</fieldset><a class="export" data-attr-href="'/api/records.csv?start=' + $startDate + '&end=' + $endDate + ($regions.length ? $regions.map(r => '&region=' + r).join('') : '&region=')">Download CSV</a></aside>`,
			`<main><header><h1>Simple Sales Dashboard</h1>`,
			`<p>Filter the data by date range and region using the sidebar controls.</p></header>`,
		)
		if err != nil {
			return err
		}
		if err := ErrorBanner("").Render(ctx, w); err != nil {
			return err
		}

		return writeAll(w,
			`<section><h2>Key Metrics</h2><div id="`, MetricsID, `" class="metrics-grid">Loading…</div></section>`,
			`<section><h2>Sales Trend Over Time</h2><canvas id="daily-chart" data-effect="window.drawDaily && drawDaily($dailyData)"></canvas></section>`,
			`<section><h2>Sales by Region</h2><canvas id="region-chart" data-effect="window.drawRegions && drawRegions($regionData)"></canvas></section>`,
			`<section><h2>Raw Data Preview</h2><div id="`, RecordsID, `">Loading…</div></section>`,
			`</main>`,
			chartBootstrap,
			`</body></html>`,
		)
	})
}

const pageStyle = `<style>
body{display:flex;margin:0;font-family:system-ui,sans-serif;background:#f6f7fb;color:#1f2330}
.sidebar{width:260px;padding:1.5rem;background:#fff;border-right:1px solid #e3e5ec}
.sidebar label{display:block;margin:.5rem 0}
main{flex:1;padding:1.5rem 2rem}
.metrics-grid{display:grid;grid-template-columns:repeat(3,1fr);gap:1rem}
.metric-card{background:#fff;border-radius:8px;padding:1rem;box-shadow:0 1px 3px rgba(0,0,0,.08)}
.metric-label{font-size:.85rem;color:#667}
.metric-value{font-size:1.6rem;font-weight:600}
.modern-table{width:100%;border-collapse:collapse;background:#fff}
.modern-table th,.modern-table td{padding:.4rem .6rem;border-bottom:1px solid #eee;text-align:left}
.error-banner{background:#fde8e8;color:#9b1c1c;padding:.75rem 1rem;border-radius:6px;margin-bottom:1rem}
</style>`

const chartBootstrap = `<script>
(function(){
  var charts = {};
  function draw(id, type, labels, values){
    if (!window.Chart) return;
    if (charts[id]) { charts[id].data.labels = labels; charts[id].data.datasets[0].data = values; charts[id].update(); return; }
    charts[id] = new Chart(document.getElementById(id), {type: type, data: {labels: labels, datasets: [{label: 'Sales', data: values}]}});
  }
  window.drawDaily = function(rows){ draw('daily-chart', 'line', rows.map(function(r){return r.date}), rows.map(function(r){return r.total_sales})); };
  window.drawRegions = function(rows){ draw('region-chart', 'bar', rows.map(function(r){return r.region}), rows.map(function(r){return r.total_sales})); };
})();
</script>`
