package controllers

import (
	"context"
	"errors"
	"sync"

	"shortdash/internal/models"
)

var errBackend = errors.New("backend down")

type recordingEnv struct {
	copied  []string
	resets  int
	copyErr error
}

func (e *recordingEnv) CopyText(text string) error {
	e.copied = append(e.copied, text)
	return e.copyErr
}

func (e *recordingEnv) ResetView() { e.resets++ }

type renameCall struct {
	current, url, code string
}

type fakeShortener struct {
	short     string
	shortErr  error
	renameErr error

	shortenCalls int
	renames      []renameCall
}

func (f *fakeShortener) Shorten(_ context.Context, _ string) (string, error) {
	f.shortenCalls++
	return f.short, f.shortErr
}

func (f *fakeShortener) Rename(_ context.Context, current, url, code string) (string, error) {
	f.renames = append(f.renames, renameCall{current, url, code})
	if f.renameErr != nil {
		return "", f.renameErr
	}
	return "URL updated successfully", nil
}

// fakeStats blocks each fetch on its gate when one is set.
type fakeStats struct {
	stats     models.AggregateStats
	counts    []models.ClickCount
	statsErr  error
	dailyErr  error
	statsGate chan struct{}
	dailyGate chan struct{}
}

func (f *fakeStats) Stats(ctx context.Context) (models.AggregateStats, error) {
	if err := wait(ctx, f.statsGate); err != nil {
		return models.AggregateStats{}, err
	}
	return f.stats, f.statsErr
}

func (f *fakeStats) DailyClicks(ctx context.Context) ([]models.ClickCount, error) {
	if err := wait(ctx, f.dailyGate); err != nil {
		return nil, err
	}
	return f.counts, f.dailyErr
}

type updateCall struct {
	shortURL, originalURL string
}

// fakeLinks snapshots its list when ListLinks is called, then waits on gate.
type fakeLinks struct {
	mu        sync.Mutex
	list      []models.ShortLink
	listErr   error
	updateErr error
	gate      chan struct{}
	started   chan struct{}
	updates   []updateCall
}

func (f *fakeLinks) ListLinks(ctx context.Context) ([]models.ShortLink, error) {
	f.mu.Lock()
	snapshot := append([]models.ShortLink(nil), f.list...)
	gate, started, listErr := f.gate, f.started, f.listErr
	f.mu.Unlock()

	if started != nil {
		select {
		case started <- struct{}{}:
		default:
		}
	}
	if err := wait(ctx, gate); err != nil {
		return nil, err
	}
	if listErr != nil {
		return nil, listErr
	}
	return snapshot, nil
}

func (f *fakeLinks) UpdateOriginalURL(_ context.Context, shortURL, originalURL string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.updates = append(f.updates, updateCall{shortURL, originalURL})
	if f.updateErr != nil {
		return f.updateErr
	}
	if i := models.IndexOf(f.list, shortURL); i >= 0 {
		f.list[i].OriginalURL = originalURL
	}
	return nil
}

func (f *fakeLinks) hold() (release func()) {
	f.mu.Lock()
	f.gate = make(chan struct{})
	f.started = make(chan struct{}, 1)
	gate := f.gate
	f.mu.Unlock()
	return func() { close(gate) }
}

func wait(ctx context.Context, gate chan struct{}) error {
	if gate == nil {
		return nil
	}
	select {
	case <-gate:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
