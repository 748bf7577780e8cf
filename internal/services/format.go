package services

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"sales-dashboard/internal/models"
)

// FormatCurrency renders v as dollars with thousands separators, e.g. $1,500.00.
func FormatCurrency(v float64) string {
	return message.NewPrinter(language.English).Sprintf("$%.2f", v)
}

// FormatCount renders n with thousands separators.
func FormatCount(n int) string {
	return message.NewPrinter(language.English).Sprintf("%d", n)
}

func FormatMetrics(m models.MetricsSnapshot) models.MetricsDisplay {
	return models.MetricsDisplay{
		TotalSales:        FormatCurrency(float64(m.TotalSales)),
		AverageDailySales: FormatCurrency(m.AverageDailySales),
		TransactionCount:  FormatCount(m.TransactionCount),
	}
}
