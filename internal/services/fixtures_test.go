package services

import (
	"time"

	"sales-dashboard/internal/models"
)

func day(n int) time.Time {
	return time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, n)
}

// fiveNorthDays is the reference scenario: sales 100..500, all North.
func fiveNorthDays() Dataset {
	records := make([]models.Record, 5)
	for i := range records {
		records[i] = models.Record{Date: day(i), Sales: (i + 1) * 100, Region: models.RegionNorth}
	}
	return NewDataset(records)
}

func mixedDataset() Dataset {
	return NewDataset([]models.Record{
		{Date: day(0), Sales: 120, Region: models.RegionWest},
		{Date: day(1), Sales: 340, Region: models.RegionNorth},
		{Date: day(2), Sales: 560, Region: models.RegionEast},
		{Date: day(3), Sales: 780, Region: models.RegionNorth},
		{Date: day(4), Sales: 910, Region: models.RegionSouth},
		{Date: day(5), Sales: 230, Region: models.RegionEast},
		{Date: day(6), Sales: 450, Region: models.RegionWest},
	})
}

func allRegions() models.RegionSet {
	return models.NewRegionSet(models.AllRegions()...)
}

func fullRange(ds Dataset, regions models.RegionSet) models.FilterCriteria {
	minDate, maxDate, _ := ds.Bounds()
	return models.FilterCriteria{Start: minDate, End: maxDate, Regions: regions}
}
