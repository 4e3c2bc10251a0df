package jobs

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Pinger checks whether a backend origin answers at all.
type Pinger interface {
	Ping(ctx context.Context, origin string) error
}

// BackendProber periodically checks that every backend origin is reachable.
type BackendProber struct {
	pinger   Pinger
	origins  []string
	interval time.Duration
	report   func(origin string, up bool)
	log      *zap.SugaredLogger

	mu     sync.RWMutex
	status map[string]bool
	probed bool
}

// NewBackendProber creates a prober for origins. Duplicates are probed once.
// report, if not nil, is told the result of every probe.
func NewBackendProber(pinger Pinger, origins []string, interval time.Duration, report func(string, bool), log *zap.SugaredLogger) *BackendProber {
	seen := make(map[string]bool, len(origins))
	unique := make([]string, 0, len(origins))
	for _, o := range origins {
		if o != "" && !seen[o] {
			seen[o] = true
			unique = append(unique, o)
		}
	}
	if report == nil {
		report = func(string, bool) {}
	}

	return &BackendProber{
		pinger:   pinger,
		origins:  unique,
		interval: interval,
		report:   report,
		log:      log,
		status:   make(map[string]bool, len(unique)),
	}
}

// Start begins the background probe loop.
func (p *BackendProber) Start(ctx context.Context) {
	p.log.Infow("Backend prober started", "interval", p.interval, "origins", p.origins)

	// Run immediately on start
	p.ProbeAll(ctx)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			p.log.Info("Backend prober stopped")
			return
		case <-ticker.C:
			p.ProbeAll(ctx)
		}
	}
}

// ProbeAll pings every origin once.
func (p *BackendProber) ProbeAll(ctx context.Context) {
	for _, origin := range p.origins {
		select {
		case <-ctx.Done():
			return
		default:
		}

		err := p.pinger.Ping(ctx, origin)
		up := err == nil
		if !up {
			p.log.Warnw("Backend unreachable", "origin", origin, "error", err)
		}

		p.mu.Lock()
		was, known := p.status[origin]
		p.status[origin] = up
		p.mu.Unlock()

		if known && was != up && up {
			p.log.Infow("Backend reachable again", "origin", origin)
		}
		p.report(origin, up)
	}

	p.mu.Lock()
	p.probed = true
	p.mu.Unlock()
}

// Ready reports whether the last probe reached every origin.
func (p *BackendProber) Ready() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if !p.probed {
		return false
	}
	for _, up := range p.status {
		if !up {
			return false
		}
	}
	return true
}

// Status returns the last probe result per origin.
func (p *BackendProber) Status() map[string]bool {
	p.mu.RLock()
	defer p.mu.RUnlock()

	out := make(map[string]bool, len(p.status))
	for k, v := range p.status {
		out[k] = v
	}
	return out
}
