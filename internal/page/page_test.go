package page

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"shortdash/internal/backend"
	"shortdash/internal/backend/backendtest"
	"shortdash/internal/logging"
	"shortdash/internal/models"
)

type clock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *clock) now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *clock) advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

func newRegistry(t *testing.T) (*Registry, *backendtest.Server, *clock) {
	t.Helper()
	srv := backendtest.New(t)
	srv.Seed(
		models.ShortLink{ShortURL: "/abc123", OriginalURL: "https://a.example"},
		models.ShortLink{ShortURL: "/def456", OriginalURL: "https://b.example"},
	)
	srv.SetClicks("/abc123", 4)

	client := backend.New(srv.Origins(), time.Second, logging.Nop())
	c := &clock{t: time.Date(2025, time.October, 15, 12, 0, 0, 0, time.UTC)}
	reg := NewRegistry(Deps{
		Shortener:   client,
		Stats:       client,
		Links:       client,
		FormOrigin:  srv.URL,
		LinksOrigin: srv.URL,
		DebugOrigin: srv.URL,
		Now:         c.now,
		Log:         logging.Nop(),
	})
	t.Cleanup(reg.Close)
	return reg, srv, c
}

func waitCtx(t *testing.T) context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	t.Cleanup(cancel)
	return ctx
}

func TestMount_LoadsEveryController(t *testing.T) {
	reg, _, _ := newRegistry(t)

	p := reg.Mount("session-1")
	require.NoError(t, p.WaitDashboard(waitCtx(t)))
	require.NoError(t, p.WaitRecent(waitCtx(t)))

	d := p.Dashboard.State()
	assert.False(t, d.Loading)
	assert.Equal(t, 2, d.TotalURLs)
	assert.Equal(t, 4, d.TotalClicks)
	assert.Equal(t, 4, d.Series.Counts[3])

	r := p.Recent.State()
	assert.False(t, r.Loading)
	assert.Len(t, r.Links, 2)
	assert.Equal(t, 1, reg.Len())
}

func TestMount_DashboardFailureDoesNotBlockList(t *testing.T) {
	reg, srv, _ := newRegistry(t)
	srv.Fail(backend.EndpointStats, backendtest.Fault{Status: 500})
	srv.Fail(backend.EndpointDailyStats, backendtest.Fault{Network: true})

	p := reg.Mount("session-1")
	require.NoError(t, p.WaitDashboard(waitCtx(t)))
	require.NoError(t, p.WaitRecent(waitCtx(t)))

	d := p.Dashboard.State()
	assert.False(t, d.Loading)
	assert.True(t, d.AggregateFailed)
	assert.True(t, d.SeriesFailed)
	assert.Len(t, p.Recent.State().Links, 2)
}

func TestMount_ReplacesAndCancelsPreviousPage(t *testing.T) {
	reg, srv, _ := newRegistry(t)
	release := srv.Hold(backend.EndpointListLinks)
	defer release()

	first := reg.Mount("session-1")
	second := reg.Mount("session-1")

	require.NoError(t, first.WaitRecent(waitCtx(t)), "closing the page ends its fetch")
	assert.Error(t, first.Context().Err())
	assert.NotEqual(t, first.ID, second.ID)

	got, ok := reg.Get("session-1")
	require.True(t, ok)
	assert.Same(t, second, got)
	assert.Equal(t, 1, reg.Len())
}

func TestGetOrMount(t *testing.T) {
	reg, _, _ := newRegistry(t)

	_, ok := reg.Get("session-1")
	assert.False(t, ok)

	p := reg.GetOrMount("session-1")
	assert.Same(t, p, reg.GetOrMount("session-1"))
	assert.NotSame(t, p, reg.GetOrMount("session-2"))
	assert.Equal(t, 2, reg.Len())
}

func TestGetOrMount_ConcurrentCallersShareOnePage(t *testing.T) {
	reg, srv, _ := newRegistry(t)

	const callers = 16
	got := make([]*Page, callers)
	var wg sync.WaitGroup
	for i := range callers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got[i] = reg.GetOrMount("session-1")
		}()
	}
	wg.Wait()

	for _, p := range got {
		assert.Same(t, got[0], p)
	}
	require.NoError(t, got[0].Context().Err())
	require.NoError(t, got[0].WaitRecent(waitCtx(t)))
	assert.Equal(t, 1, reg.Len())
	assert.Equal(t, 1, srv.Calls(backend.EndpointListLinks))
}

func TestSweep(t *testing.T) {
	reg, _, c := newRegistry(t)

	idle := reg.Mount("idle")
	c.advance(20 * time.Minute)
	active := reg.Mount("active")

	c.advance(15 * time.Minute)
	_, _ = reg.Get("active")

	assert.Equal(t, 1, reg.Sweep(30*time.Minute))
	assert.Error(t, idle.Context().Err())
	assert.NoError(t, active.Context().Err())

	_, ok := reg.Get("idle")
	assert.False(t, ok)
	assert.Equal(t, 1, reg.Len())
}

func TestWait_RespectsCallerContext(t *testing.T) {
	reg, srv, _ := newRegistry(t)
	release := srv.Hold(backend.EndpointStats)
	defer release()

	p := reg.Mount("session-1")
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	assert.ErrorIs(t, p.WaitDashboard(ctx), context.DeadlineExceeded)
	assert.True(t, p.Dashboard.Loading())
}
