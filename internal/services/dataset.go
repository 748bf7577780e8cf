package services

import (
	"slices"
	"time"

	"sales-dashboard/internal/models"
)

// Dataset is an immutable, date-ordered table of records. The zero value is
// an empty dataset.
type Dataset struct {
	records []models.Record
}

// NewDataset copies records so later mutation by the caller cannot leak in.
func NewDataset(records []models.Record) Dataset {
	return Dataset{records: slices.Clone(records)}
}

func (d Dataset) Len() int {
	return len(d.records)
}

// Records returns a copy of the underlying records.
func (d Dataset) Records() []models.Record {
	return slices.Clone(d.records)
}

// Bounds returns the earliest and latest calendar dates in the dataset.
func (d Dataset) Bounds() (minDate, maxDate time.Time, ok bool) {
	if len(d.records) == 0 {
		return time.Time{}, time.Time{}, false
	}
	minDate = models.DateOf(d.records[0].Date)
	maxDate = minDate
	for _, r := range d.records[1:] {
		day := models.DateOf(r.Date)
		if day.Before(minDate) {
			minDate = day
		}
		if day.After(maxDate) {
			maxDate = day
		}
	}
	return minDate, maxDate, true
}

// Regions lists the distinct regions present, sorted lexicographically.
func (d Dataset) Regions() []models.Region {
	seen := make(models.RegionSet, 4)
	for _, r := range d.records {
		seen[r.Region] = struct{}{}
	}
	return seen.Sorted()
}
