package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"sales-dashboard/internal/models"
	"sales-dashboard/internal/observability"
)

// Dashboard owns the generated dataset and serves pipeline renders for
// each user interaction. The dataset is swapped whole on load and never
// mutated, so renders only hold the read lock long enough to copy the handle.
type Dashboard struct {
	mu          sync.RWMutex
	dataset     Dataset
	generatedAt time.Time
	renders     atomic.Int64
	logger      *slog.Logger
}

func NewDashboard() *Dashboard {
	return &Dashboard{
		logger: slog.Default(),
	}
}

// SetData installs a fixed dataset, bypassing the generator.
func (d *Dashboard) SetData(records []models.Record) {
	d.setDataset(NewDataset(records))
}

func (d *Dashboard) Load(ctx context.Context, gen *Generator, numDays int) error {
	start := time.Now()

	ds, err := gen.Generate(ctx, numDays)
	if err != nil {
		return fmt.Errorf("generate dataset: %w", err)
	}
	d.setDataset(ds)

	d.logger.Info("dataset generated",
		"records", ds.Len(),
		"epoch", gen.Epoch().Format(models.DateLayout),
		"duration", time.Since(start))
	return nil
}

func (d *Dashboard) setDataset(ds Dataset) {
	d.mu.Lock()
	d.dataset = ds
	d.generatedAt = time.Now()
	d.mu.Unlock()

	observability.DatasetRecords.Set(float64(ds.Len()))
}

func (d *Dashboard) Dataset() Dataset {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.dataset
}

// Options returns the date bounds and regions present in the dataset.
func (d *Dashboard) Options() models.FilterOptions {
	ds := d.Dataset()
	minDate, maxDate, _ := ds.Bounds()
	return models.FilterOptions{
		MinDate: minDate,
		MaxDate: maxDate,
		Regions: ds.Regions(),
	}
}

// DefaultCriteria selects the whole date span and every region present.
func (d *Dashboard) DefaultCriteria() models.FilterCriteria {
	opts := d.Options()
	return models.FilterCriteria{
		Start:   opts.MinDate,
		End:     opts.MaxDate,
		Regions: models.NewRegionSet(opts.Regions...),
	}
}

func (d *Dashboard) Render(ctx context.Context, criteria models.FilterCriteria) models.RenderResult {
	_, span := observability.StartSpan(ctx, "dashboard.render",
		attribute.String("criteria.start", criteria.Start.Format(models.DateLayout)),
		attribute.String("criteria.end", criteria.End.Format(models.DateLayout)),
		attribute.Int("criteria.regions", len(criteria.Regions)),
	)
	defer span.End()

	start := time.Now()
	result := Render(d.Dataset(), criteria)

	observability.RenderDuration.Observe(time.Since(start).Seconds())
	observability.RendersTotal.Inc()
	observability.FilteredRecords.Observe(float64(len(result.Records)))
	d.renders.Add(1)

	span.SetAttributes(attribute.Int("result.records", len(result.Records)))
	return result
}

// Stats reports record count, generation time, renders served and date
// bounds for the admin endpoint.
func (d *Dashboard) Stats() map[string]any {
	d.mu.RLock()
	ds := d.dataset
	generatedAt := d.generatedAt
	d.mu.RUnlock()

	stats := map[string]any{
		"record_count":   ds.Len(),
		"generated_at":   generatedAt,
		"renders_served": d.renders.Load(),
		"regions":        len(ds.Regions()),
	}
	if minDate, maxDate, ok := ds.Bounds(); ok {
		stats["min_date"] = minDate.Format(models.DateLayout)
		stats["max_date"] = maxDate.Format(models.DateLayout)
	}
	return stats
}
