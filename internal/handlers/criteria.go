package handlers

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"sales-dashboard/internal/errors"
	"sales-dashboard/internal/models"
)

// dashboardSignals is the client state datastar sends with every SSE
// request. A nil Regions means the client never set it; an empty slice means
// every region was deselected.
type dashboardSignals struct {
	StartDate string    `json:"startDate"`
	EndDate   string    `json:"endDate"`
	Regions   *[]string `json:"regions"`
}

// criteriaFromQuery reads start, end and repeated region parameters. Missing
// dates fall back to defaults; an absent region key selects the default
// regions while "region=" with no value selects none.
func criteriaFromQuery(q url.Values, defaults models.FilterCriteria) (models.FilterCriteria, error) {
	var regions *[]string
	if values, ok := q["region"]; ok {
		regions = &values
	}
	return buildCriteria(q.Get("start"), q.Get("end"), regions, defaults)
}

func criteriaFromSignals(s dashboardSignals, defaults models.FilterCriteria) (models.FilterCriteria, error) {
	return buildCriteria(s.StartDate, s.EndDate, s.Regions, defaults)
}

func buildCriteria(start, end string, regions *[]string, defaults models.FilterCriteria) (models.FilterCriteria, error) {
	criteria := defaults

	var err error
	if criteria.Start, err = parseDate("start", start, defaults.Start); err != nil {
		return models.FilterCriteria{}, err
	}
	if criteria.End, err = parseDate("end", end, defaults.End); err != nil {
		return models.FilterCriteria{}, err
	}

	if regions != nil {
		set := models.NewRegionSet()
		for _, raw := range *regions {
			if strings.TrimSpace(raw) == "" {
				continue
			}
			region, ok := models.ParseRegion(raw)
			if !ok {
				return models.FilterCriteria{}, errors.Validation(fmt.Sprintf("unknown region %q", raw))
			}
			set[region] = struct{}{}
		}
		criteria.Regions = set
	}

	return criteria, nil
}

func parseDate(name, value string, fallback time.Time) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return fallback, nil
	}
	t, err := time.Parse(models.DateLayout, value)
	if err != nil {
		return time.Time{}, errors.BadRequestWrap(err, fmt.Sprintf("invalid %s date %q, expected YYYY-MM-DD", name, value))
	}
	return t, nil
}
