// Package page composes the three controllers into one view per browser
// session and owns the lifetime of their background fetches.
package page

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"shortdash/internal/controllers"
)

// Deps are the collaborators every Page is built from.
type Deps struct {
	Shortener controllers.ShortenerAPI
	Stats     controllers.StatsAPI
	Links     controllers.LinksAPI

	// FormOrigin serves the links shown by the shortening form, LinksOrigin
	// the ones in the recent list. DebugOrigin goes to the sharing debugger.
	FormOrigin  string
	LinksOrigin string
	DebugOrigin string

	// Now is the client's clock, in the configured time zone.
	Now func() time.Time
	Log *zap.SugaredLogger
}

// Page is one mounted view: a form, a dashboard and a recent links list.
type Page struct {
	ID        string
	Form      *controllers.Form
	Dashboard *controllers.Dashboard
	Recent    *controllers.Recent

	ctx           context.Context
	cancel        context.CancelFunc
	dashboardDone chan struct{}
	recentDone    chan struct{}
	lastSeen      atomic.Int64
	now           func() time.Time
	log           *zap.SugaredLogger
}

func newPage(d Deps) *Page {
	ctx, cancel := context.WithCancel(context.Background())
	p := &Page{
		ID:            uuid.NewString(),
		Form:          controllers.NewForm(d.Shortener, d.FormOrigin, d.Log),
		Dashboard:     controllers.NewDashboard(d.Stats, d.Now, d.Log),
		Recent:        controllers.NewRecent(d.Links, d.LinksOrigin, d.DebugOrigin, d.Log),
		ctx:           ctx,
		cancel:        cancel,
		dashboardDone: make(chan struct{}),
		recentDone:    make(chan struct{}),
		now:           d.Now,
	}
	p.log = d.Log.With("page", p.ID)
	p.Touch()
	return p
}

// mount starts the dashboard's two fetches and the list fetch. They run
// independently; a failure in one never cancels another.
func (p *Page) mount() {
	go func() {
		defer close(p.dashboardDone)

		var g errgroup.Group
		g.Go(func() error { return p.Dashboard.LoadAggregate(p.ctx) })
		g.Go(func() error { return p.Dashboard.LoadDailySeries(p.ctx) })
		if err := g.Wait(); err != nil {
			p.log.Debugw("Dashboard mounted with errors", "error", err)
		}
	}()

	go func() {
		defer close(p.recentDone)

		if err := p.Recent.LoadAll(p.ctx); err != nil {
			p.log.Debugw("Recent links mounted with errors", "error", err)
		}
	}()
}

// Context is cancelled when the page is closed. Operations started on behalf
// of the page use it so nothing updates a torn-down view.
func (p *Page) Context() context.Context {
	return p.ctx
}

// WaitDashboard blocks until both dashboard fetches have settled.
func (p *Page) WaitDashboard(ctx context.Context) error {
	return waitFor(ctx, p.dashboardDone)
}

// WaitRecent blocks until the list fetch has settled.
func (p *Page) WaitRecent(ctx context.Context) error {
	return waitFor(ctx, p.recentDone)
}

func waitFor(ctx context.Context, done <-chan struct{}) error {
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Touch records activity on the page.
func (p *Page) Touch() {
	p.lastSeen.Store(p.now().UnixNano())
}

// LastSeen returns the time of the last recorded activity.
func (p *Page) LastSeen() time.Time {
	return time.Unix(0, p.lastSeen.Load())
}

// Close cancels every in-flight fetch of the page.
func (p *Page) Close() {
	p.cancel()
}
