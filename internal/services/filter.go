package services

import (
	"sales-dashboard/internal/models"
)

// Filter returns the records whose calendar date lies in [Start, End] and
// whose region is selected, in dataset order. An empty region set or an
// inverted range yields an empty view rather than an error.
func Filter(ds Dataset, criteria models.FilterCriteria) []models.Record {
	start := models.DateOf(criteria.Start)
	end := models.DateOf(criteria.End)

	if len(criteria.Regions) == 0 || start.After(end) {
		return []models.Record{}
	}

	view := make([]models.Record, 0, len(ds.records))
	for _, r := range ds.records {
		day := models.DateOf(r.Date)
		if day.Before(start) || day.After(end) {
			continue
		}
		if !criteria.Regions.Contains(r.Region) {
			continue
		}
		view = append(view, r)
	}
	return view
}
