package controllers

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"shortdash/internal/models"
)

// DashboardState is a snapshot of the statistics dashboard.
type DashboardState struct {
	models.AggregateStats
	Series models.DailySeries

	// Loading stays true until both fetches have settled.
	Loading bool

	// AggregateFailed and SeriesFailed tell a failed load from a legitimately
	// empty one.
	AggregateFailed bool
	SeriesFailed    bool
}

// Dashboard is the statistics dashboard controller. Its two fetches are
// independent: either may fail or finish first.
type Dashboard struct {
	api StatsAPI
	now func() time.Time
	log *zap.SugaredLogger

	mu            sync.Mutex
	stats         models.AggregateStats
	series        models.DailySeries
	statsPending  bool
	seriesPending bool
	statsFailed   bool
	seriesFailed  bool
}

// NewDashboard creates a dashboard with zeroed counters and the current
// week's labels. now supplies the client's notion of today.
func NewDashboard(api StatsAPI, now func() time.Time, log *zap.SugaredLogger) *Dashboard {
	return &Dashboard{
		api:           api,
		now:           now,
		log:           log,
		series:        models.NewDailySeries(now()),
		statsPending:  true,
		seriesPending: true,
	}
}

// LoadAggregate fetches the summary counters. On failure they keep their
// defaults.
func (d *Dashboard) LoadAggregate(ctx context.Context) error {
	stats, err := d.api.Stats(ctx)

	d.mu.Lock()
	defer d.mu.Unlock()
	d.statsPending = false
	if err != nil {
		d.log.Warnw("Error fetching stats", "error", err)
		d.statsFailed = true
		return err
	}

	d.stats = stats
	d.statsFailed = false
	return nil
}

// LoadDailySeries fetches the click breakdown and buckets it into the
// current week.
func (d *Dashboard) LoadDailySeries(ctx context.Context) error {
	counts, err := d.api.DailyClicks(ctx)

	d.mu.Lock()
	defer d.mu.Unlock()
	d.seriesPending = false
	if err != nil {
		d.log.Warnw("Error fetching daily stats", "error", err)
		d.seriesFailed = true
		return err
	}

	now := d.now()
	series := models.NewDailySeries(now)
	// The breakdown carries no timestamps, so every click lands on today's
	// weekday and the other six days stay at zero. Per-day attribution needs
	// a dated breakdown from the backend.
	today := int(now.Weekday())
	for _, c := range counts {
		series.Counts[today] += c.ClickCount
	}

	d.series = series
	d.seriesFailed = false
	return nil
}

// RenderSeries projects the daily series into chart data.
func (d *Dashboard) RenderSeries() models.ChartData {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.series.Chart()
}

// Loading reports whether either fetch is still in flight.
func (d *Dashboard) Loading() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.statsPending || d.seriesPending
}

// State returns a snapshot of the dashboard.
func (d *Dashboard) State() DashboardState {
	d.mu.Lock()
	defer d.mu.Unlock()
	return DashboardState{
		AggregateStats:  d.stats,
		Series:          d.series,
		Loading:         d.statsPending || d.seriesPending,
		AggregateFailed: d.statsFailed,
		SeriesFailed:    d.seriesFailed,
	}
}
