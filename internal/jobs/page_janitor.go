package jobs

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Sweeper tears down pages idle for longer than a duration.
type Sweeper interface {
	Sweep(idle time.Duration) int
}

// PageJanitor closes pages whose sessions went idle, cancelling their fetches.
type PageJanitor struct {
	pages    Sweeper
	idle     time.Duration
	interval time.Duration
	log      *zap.SugaredLogger
}

// NewPageJanitor creates a janitor that sweeps every interval.
func NewPageJanitor(pages Sweeper, idle, interval time.Duration, log *zap.SugaredLogger) *PageJanitor {
	return &PageJanitor{pages: pages, idle: idle, interval: interval, log: log}
}

// Start begins the sweep loop.
func (j *PageJanitor) Start(ctx context.Context) {
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := j.pages.Sweep(j.idle); n > 0 {
				j.log.Debugw("Closed idle pages", "count", n)
			}
		}
	}
}
