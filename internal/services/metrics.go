package services

import (
	"time"

	"sales-dashboard/internal/models"
)

// ComputeMetrics derives the three headline numbers from a filtered view.
// Each value is computed in its own pass so none depends on another.
func ComputeMetrics(view []models.Record) models.MetricsSnapshot {
	return models.MetricsSnapshot{
		TotalSales:        totalSales(view),
		AverageDailySales: averageDailySales(view),
		TransactionCount:  len(view),
	}
}

func totalSales(view []models.Record) int64 {
	var total int64
	for _, r := range view {
		total += int64(r.Sales)
	}
	return total
}

// averageDailySales is the mean over distinct calendar dates of each date's
// summed sales, not the mean over records. Zero when the view has no dates.
func averageDailySales(view []models.Record) float64 {
	perDay := make(map[time.Time]int64)
	for _, r := range view {
		perDay[models.DateOf(r.Date)] += int64(r.Sales)
	}
	if len(perDay) == 0 {
		return 0
	}

	var sum int64
	for _, v := range perDay {
		sum += v
	}
	return float64(sum) / float64(len(perDay))
}
