package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RendersTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "dashboard_renders_total",
		Help: "Total number of filter/aggregate pipeline runs",
	})

	RenderDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "dashboard_render_duration_seconds",
		Help:    "Duration of one pipeline run",
		Buckets: []float64{0.00001, 0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05},
	})

	FilteredRecords = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "dashboard_filtered_records",
		Help:    "Number of records left after filtering",
		Buckets: prometheus.ExponentialBuckets(1, 4, 8),
	})

	DatasetRecords = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "dashboard_dataset_records",
		Help: "Number of records in the loaded dataset",
	})

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "dashboard_http_requests_total",
		Help: "HTTP requests by method and status code",
	}, []string{"method", "status"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "dashboard_http_request_duration_seconds",
		Help:    "HTTP request latency by method",
		Buckets: prometheus.DefBuckets,
	}, []string{"method"})
)
