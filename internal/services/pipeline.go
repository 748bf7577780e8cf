package services

import (
	"sales-dashboard/internal/models"
)

// Render runs one full pass of the pipeline for a single interaction:
// filter once, then metrics and both aggregates over the same view.
func Render(ds Dataset, criteria models.FilterCriteria) models.RenderResult {
	view := Filter(ds, criteria)
	return models.RenderResult{
		Metrics:      ComputeMetrics(view),
		Records:      view,
		DailyTotals:  AggregateByDate(view),
		RegionTotals: AggregateByRegion(view),
	}
}
