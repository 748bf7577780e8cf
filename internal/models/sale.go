package models

import (
	"encoding/json"
	"maps"
	"slices"
	"strings"
	"time"
)

// DateLayout is the calendar-date wire format used by the API and signals.
const DateLayout = "2006-01-02"

type Region string

const (
	RegionNorth Region = "North"
	RegionSouth Region = "South"
	RegionEast  Region = "East"
	RegionWest  Region = "West"
)

// AllRegions returns the fixed region set in generation order.
func AllRegions() []Region {
	return []Region{RegionNorth, RegionSouth, RegionEast, RegionWest}
}

// ParseRegion matches one of the four canonical region names, ignoring case.
func ParseRegion(s string) (Region, bool) {
	for _, r := range AllRegions() {
		if strings.EqualFold(strings.TrimSpace(s), string(r)) {
			return r, true
		}
	}
	return "", false
}

// DateOf truncates t to its calendar date at UTC midnight.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

type Record struct {
	Date   time.Time
	Sales  int
	Region Region
}

func (r Record) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Date   string `json:"date"`
		Sales  int    `json:"sales"`
		Region Region `json:"region"`
	}{r.Date.Format(DateLayout), r.Sales, r.Region})
}

// RegionSet is the membership side of FilterCriteria. A nil or empty set
// matches nothing.
type RegionSet map[Region]struct{}

func NewRegionSet(regions ...Region) RegionSet {
	set := make(RegionSet, len(regions))
	for _, r := range regions {
		set[r] = struct{}{}
	}
	return set
}

func (s RegionSet) Contains(r Region) bool {
	_, ok := s[r]
	return ok
}

// Sorted returns the members in lexicographic order.
func (s RegionSet) Sorted() []Region {
	return slices.Sorted(maps.Keys(s))
}

type FilterCriteria struct {
	Start   time.Time
	End     time.Time
	Regions RegionSet
}

type MetricsSnapshot struct {
	TotalSales        int64   `json:"total_sales"`
	AverageDailySales float64 `json:"average_daily_sales"`
	TransactionCount  int     `json:"transaction_count"`
}

// MetricsDisplay holds the snapshot as user-facing strings.
type MetricsDisplay struct {
	TotalSales        string `json:"total_sales"`
	AverageDailySales string `json:"average_daily_sales"`
	TransactionCount  string `json:"transaction_count"`
}

type DailyTotal struct {
	Date       time.Time
	TotalSales int64
}

func (d DailyTotal) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Date       string `json:"date"`
		TotalSales int64  `json:"total_sales"`
	}{d.Date.Format(DateLayout), d.TotalSales})
}

type RegionTotal struct {
	Region     Region `json:"region"`
	TotalSales int64  `json:"total_sales"`
}

type RenderResult struct {
	Metrics      MetricsSnapshot `json:"metrics"`
	Records      []Record        `json:"records"`
	DailyTotals  []DailyTotal    `json:"daily_totals"`
	RegionTotals []RegionTotal   `json:"region_totals"`
}

// FilterOptions describes the selectable ranges for the dashboard controls.
type FilterOptions struct {
	MinDate time.Time
	MaxDate time.Time
	Regions []Region
}

func (o FilterOptions) MarshalJSON() ([]byte, error) {
	out := struct {
		MinDate string   `json:"min_date,omitempty"`
		MaxDate string   `json:"max_date,omitempty"`
		Regions []Region `json:"regions"`
	}{Regions: o.Regions}
	if !o.MinDate.IsZero() {
		out.MinDate = o.MinDate.Format(DateLayout)
		out.MaxDate = o.MaxDate.Format(DateLayout)
	}
	if out.Regions == nil {
		out.Regions = []Region{}
	}
	return json.Marshal(out)
}
