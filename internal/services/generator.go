package services

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strconv"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"sales-dashboard/internal/errors"
	"sales-dashboard/internal/models"
)

const (
	minSales = 100
	maxSales = 1000 // exclusive
)

// DefaultEpoch is the first generated date unless the generator is given
// another one.
var DefaultEpoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

// Generator synthesizes daily sales records and memoizes each dataset by
// day count for the lifetime of the generator. Entries are never evicted.
type Generator struct {
	epoch time.Time

	rngMu sync.Mutex
	rng   *rand.Rand

	mu    sync.RWMutex
	cache map[int]Dataset
	group singleflight.Group
}

type GeneratorOption func(*Generator)

// WithRand replaces the default unseeded source, mainly for tests.
func WithRand(rng *rand.Rand) GeneratorOption {
	return func(g *Generator) {
		g.rng = rng
	}
}

func NewGenerator(epoch time.Time, opts ...GeneratorOption) *Generator {
	g := &Generator{
		epoch: models.DateOf(epoch),
		cache: make(map[int]Dataset),
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.rng == nil {
		g.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return g
}

func (g *Generator) Epoch() time.Time {
	return g.epoch
}

// Generate returns numDays consecutive daily records starting at the epoch.
// Repeated calls with the same numDays return the cached dataset.
func (g *Generator) Generate(ctx context.Context, numDays int) (Dataset, error) {
	if numDays <= 0 {
		return Dataset{}, errors.InvalidArgument(fmt.Sprintf("num_days must be positive, got %d", numDays))
	}

	g.mu.RLock()
	cached, ok := g.cache[numDays]
	g.mu.RUnlock()
	if ok {
		return cached, nil
	}

	// Checked outside the flight; one caller's cancellation must not fail
	// the others sharing the draw.
	if err := ctx.Err(); err != nil {
		return Dataset{}, err
	}

	v, err, _ := g.group.Do(strconv.Itoa(numDays), func() (any, error) {
		g.mu.RLock()
		cached, ok := g.cache[numDays]
		g.mu.RUnlock()
		if ok {
			return cached, nil
		}

		ds := Dataset{records: g.draw(numDays)}

		g.mu.Lock()
		g.cache[numDays] = ds
		g.mu.Unlock()
		return ds, nil
	})
	if err != nil {
		return Dataset{}, err
	}
	return v.(Dataset), nil
}

// Cached reports how many distinct day counts are memoized.
func (g *Generator) Cached() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.cache)
}

func (g *Generator) draw(numDays int) []models.Record {
	regions := models.AllRegions()
	records := make([]models.Record, numDays)

	g.rngMu.Lock()
	defer g.rngMu.Unlock()

	for i := range records {
		records[i] = models.Record{
			Date:   g.epoch.AddDate(0, 0, i),
			Sales:  minSales + g.rng.IntN(maxSales-minSales),
			Region: regions[g.rng.IntN(len(regions))],
		}
	}
	return records
}
