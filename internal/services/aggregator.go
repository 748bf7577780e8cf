package services

import (
	"cmp"
	"slices"
	"time"

	"sales-dashboard/internal/models"
)

// AggregateByDate sums sales per calendar date, ascending. Dates with no
// records are absent.
func AggregateByDate(view []models.Record) []models.DailyTotal {
	groups := make(map[time.Time]int64)
	for _, r := range view {
		groups[models.DateOf(r.Date)] += int64(r.Sales)
	}

	result := make([]models.DailyTotal, 0, len(groups))
	for day, total := range groups {
		result = append(result, models.DailyTotal{Date: day, TotalSales: total})
	}
	slices.SortFunc(result, func(a, b models.DailyTotal) int {
		return a.Date.Compare(b.Date)
	})
	return result
}

// AggregateByRegion sums sales per region in lexicographic region order, so
// chart series keep their positions between renders.
func AggregateByRegion(view []models.Record) []models.RegionTotal {
	groups := make(map[models.Region]int64)
	for _, r := range view {
		groups[r.Region] += int64(r.Sales)
	}

	result := make([]models.RegionTotal, 0, len(groups))
	for region, total := range groups {
		result = append(result, models.RegionTotal{Region: region, TotalSales: total})
	}
	slices.SortFunc(result, func(a, b models.RegionTotal) int {
		return cmp.Compare(a.Region, b.Region)
	})
	return result
}
