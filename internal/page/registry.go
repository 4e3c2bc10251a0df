package page

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

// Registry maps session page keys to their mounted Page.
type Registry struct {
	deps Deps

	mu    sync.Mutex
	pages map[string]*Page
}

// NewRegistry creates an empty registry. Pages are built from deps.
func NewRegistry(deps Deps) *Registry {
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.Log == nil {
		deps.Log = zap.NewNop().Sugar()
	}
	return &Registry{deps: deps, pages: make(map[string]*Page)}
}

// Mount tears down any page under key and mounts a fresh one.
func (r *Registry) Mount(key string) *Page {
	p := newPage(r.deps)

	r.mu.Lock()
	old := r.pages[key]
	r.pages[key] = p
	r.mu.Unlock()

	if old != nil {
		old.Close()
	}
	p.mount()
	r.deps.Log.Debugw("Page mounted", "page", p.ID, "replaced", old != nil)
	return p
}

// Get returns the page under key and marks it active.
func (r *Registry) Get(key string) (*Page, bool) {
	r.mu.Lock()
	p, ok := r.pages[key]
	r.mu.Unlock()

	if ok {
		p.Touch()
	}
	return p, ok
}

// GetOrMount returns the page under key, mounting one if there is none.
// Concurrent callers for the same key share a single mounted page.
func (r *Registry) GetOrMount(key string) *Page {
	r.mu.Lock()
	p, ok := r.pages[key]
	if !ok {
		p = newPage(r.deps)
		r.pages[key] = p
	}
	r.mu.Unlock()

	if ok {
		p.Touch()
		return p
	}
	p.mount()
	r.deps.Log.Debugw("Page mounted", "page", p.ID, "replaced", false)
	return p
}

// Sweep closes and forgets pages idle for longer than idle. It returns how
// many were removed.
func (r *Registry) Sweep(idle time.Duration) int {
	cutoff := r.deps.Now().Add(-idle)

	r.mu.Lock()
	var stale []*Page
	for key, p := range r.pages {
		if p.LastSeen().Before(cutoff) {
			stale = append(stale, p)
			delete(r.pages, key)
		}
	}
	r.mu.Unlock()

	for _, p := range stale {
		p.Close()
	}
	return len(stale)
}

// Len returns the number of mounted pages.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.pages)
}

// Close tears down every page.
func (r *Registry) Close() {
	r.mu.Lock()
	pages := r.pages
	r.pages = make(map[string]*Page)
	r.mu.Unlock()

	for _, p := range pages {
		p.Close()
	}
}
