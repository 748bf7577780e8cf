package services

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"sales-dashboard/internal/errors"
	"sales-dashboard/internal/models"
)

func TestDashboard_LoadAndDefaults(t *testing.T) {
	d := NewDashboard()
	require.NoError(t, d.Load(context.Background(), NewGenerator(DefaultEpoch), 200))

	opts := d.Options()
	assert.Equal(t, DefaultEpoch, opts.MinDate)
	assert.Equal(t, DefaultEpoch.AddDate(0, 0, 199), opts.MaxDate)
	assert.NotEmpty(t, opts.Regions)

	result := d.Render(context.Background(), d.DefaultCriteria())
	assert.Equal(t, 200, result.Metrics.TransactionCount)
	assert.Len(t, result.DailyTotals, 200)
}

func TestDashboard_LoadInvalid(t *testing.T) {
	d := NewDashboard()
	err := d.Load(context.Background(), NewGenerator(DefaultEpoch), 0)

	require.Error(t, err)
	assert.Equal(t, errors.CodeInvalidArg, errors.CodeOf(err))
	assert.Equal(t, 0, d.Dataset().Len())
}

func TestDashboard_SetDataAndRender(t *testing.T) {
	d := NewDashboard()
	d.SetData(fiveNorthDays().Records())

	result := d.Render(context.Background(), d.DefaultCriteria())
	assert.Equal(t, int64(1500), result.Metrics.TotalSales)

	result = d.Render(context.Background(), models.FilterCriteria{
		Start:   day(0),
		End:     day(4),
		Regions: models.NewRegionSet(models.RegionSouth),
	})
	assert.Equal(t, models.MetricsSnapshot{}, result.Metrics)
}

func TestDashboard_EmptyDataset(t *testing.T) {
	d := NewDashboard()

	opts := d.Options()
	assert.True(t, opts.MinDate.IsZero())
	assert.Empty(t, opts.Regions)

	result := d.Render(context.Background(), d.DefaultCriteria())
	assert.Equal(t, models.MetricsSnapshot{}, result.Metrics)
	assert.Empty(t, result.Records)
}

func TestDashboard_Stats(t *testing.T) {
	d := NewDashboard()
	d.SetData(mixedDataset().Records())
	d.Render(context.Background(), d.DefaultCriteria())
	d.Render(context.Background(), d.DefaultCriteria())

	stats := d.Stats()
	assert.Equal(t, 7, stats["record_count"])
	assert.Equal(t, int64(2), stats["renders_served"])
	assert.Equal(t, 4, stats["regions"])
	assert.Equal(t, "2024-01-01", stats["min_date"])
	assert.Equal(t, "2024-01-07", stats["max_date"])
}

func TestDashboard_RenderRecordsSpan(t *testing.T) {
	prev := otel.GetTracerProvider()
	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	otel.SetTracerProvider(tp)
	t.Cleanup(func() {
		_ = tp.Shutdown(context.Background())
		otel.SetTracerProvider(prev)
	})

	d := NewDashboard()
	d.SetData(fiveNorthDays().Records())
	d.Render(context.Background(), d.DefaultCriteria())

	spans := recorder.Ended()
	require.Len(t, spans, 1)
	assert.Equal(t, "dashboard.render", spans[0].Name())
	assert.Contains(t, spans[0].Attributes(), attribute.String("criteria.start", "2024-01-01"))
	assert.Contains(t, spans[0].Attributes(), attribute.Int("result.records", 5))
}

func TestDashboard_ConcurrentRenders(t *testing.T) {
	d := NewDashboard()
	d.SetData(mixedDataset().Records())
	criteria := d.DefaultCriteria()
	want := Render(d.Dataset(), criteria)

	var wg sync.WaitGroup
	for range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.Equal(t, want, d.Render(context.Background(), criteria))
		}()
	}
	wg.Wait()
}

func BenchmarkRender(b *testing.B) {
	ds, err := NewGenerator(DefaultEpoch).Generate(context.Background(), 5000)
	if err != nil {
		b.Fatal(err)
	}
	criteria := fullRange(ds, allRegions())

	b.ResetTimer()
	for b.Loop() {
		_ = Render(ds, criteria)
	}
}
