package controllers

import (
	"context"
	"errors"
	"net/url"
	"sync"

	"go.uber.org/zap"

	"shortdash/internal/models"
	"shortdash/internal/validation"
)

// SharingDebuggerURL is the Facebook Sharing Debugger; the link to inspect
// goes in the q parameter.
const SharingDebuggerURL = "https://developers.facebook.com/tools/debug/?q="

// ErrLinkNotFound is returned when an edit names a link that is not in the list.
var ErrLinkNotFound = errors.New("link not found")

// RecentState is a snapshot of the recent links list.
type RecentState struct {
	Links   []models.ShortLink
	Loading bool
	Failed  bool

	EditOpen        bool
	EditingShortURL string
	EditingDraft    string
	EditingIndex    int

	// EditingVersion is the list version the modal was opened against.
	EditingVersion uint64

	// Version increases every time Links changes.
	Version uint64
}

// committedEdit is a saved destination change that a load started before the
// save must not lose.
type committedEdit struct {
	seq         uint64
	shortURL    string
	originalURL string
}

// Recent is the recent links controller. Every mutation is keyed by ShortURL.
type Recent struct {
	api         LinksAPI
	origin      string
	debugOrigin string
	log         *zap.SugaredLogger

	mu      sync.Mutex
	links   []models.ShortLink
	loading bool
	failed  bool
	version uint64

	editOpen  bool
	editShort string
	editDraft string
	editIndex int
	editVer   uint64

	// Load ordering: a load only applies if no later-started load has, and
	// re-applies every edit committed after it started.
	loadsStarted uint64
	loadsApplied uint64
	inFlight     int
	editSeq      uint64
	committed    []committedEdit
}

// NewRecent creates the list controller. origin is where short links are
// served; debugOrigin is the origin handed to the sharing debugger.
func NewRecent(api LinksAPI, origin, debugOrigin string, log *zap.SugaredLogger) *Recent {
	return &Recent{
		api:         api,
		origin:      origin,
		debugOrigin: debugOrigin,
		log:         log,
		loading:     true,
		editIndex:   -1,
	}
}

// LoadAll fetches every link and replaces the list. On failure the list keeps
// its previous contents.
func (r *Recent) LoadAll(ctx context.Context) error {
	r.mu.Lock()
	r.loadsStarted++
	gen := r.loadsStarted
	since := r.editSeq
	r.inFlight++
	r.mu.Unlock()

	links, err := r.api.ListLinks(ctx)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.inFlight--
	defer r.pruneCommitted()

	r.loading = false
	if err != nil {
		r.log.Warnw("Error fetching links", "error", err)
		if r.loadsApplied == 0 {
			r.failed = true
		}
		return err
	}
	if gen < r.loadsApplied {
		r.log.Debugw("Discarding stale link list", "generation", gen, "applied", r.loadsApplied)
		return nil
	}

	for _, e := range r.committed {
		if e.seq <= since {
			continue
		}
		if i := models.IndexOf(links, e.shortURL); i >= 0 {
			links[i].OriginalURL = e.originalURL
		}
	}

	r.links = links
	r.loadsApplied = gen
	r.failed = false
	r.version++
	return nil
}

func (r *Recent) pruneCommitted() {
	if r.inFlight == 0 {
		r.committed = nil
	}
}

// OpenEdit opens the edit modal for link, shown at index, and records the
// list version that index belongs to.
func (r *Recent) OpenEdit(link models.ShortLink, index int) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.editOpen = true
	r.editShort = link.ShortURL
	r.editDraft = link.OriginalURL
	r.editIndex = index
	r.editVer = r.version
}

// Edit opens the edit modal for the link identified by shortURL.
func (r *Recent) Edit(shortURL string) error {
	r.mu.Lock()
	i := models.IndexOf(r.links, shortURL)
	var link models.ShortLink
	if i >= 0 {
		link = r.links[i]
	}
	r.mu.Unlock()

	if i < 0 {
		return ErrLinkNotFound
	}
	r.OpenEdit(link, i)
	return nil
}

// SetDraft replaces the destination being edited.
func (r *Recent) SetDraft(originalURL string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.editDraft = originalURL
}

// CloseEdit closes the modal and drops the draft.
func (r *Recent) CloseEdit() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closeEditLocked()
}

func (r *Recent) closeEditLocked() {
	r.editOpen = false
	r.editShort = ""
	r.editDraft = ""
	r.editIndex = -1
	r.editVer = 0
}

// SaveEdit sends the draft destination of the link under edit. Only a
// confirmed update patches the list and closes the modal. Failures are logged
// and leave everything as it was, modal included.
func (r *Recent) SaveEdit(ctx context.Context) error {
	r.mu.Lock()
	shortURL, draft := r.editShort, r.editDraft
	r.mu.Unlock()

	if shortURL == "" {
		r.log.Warnw("Short URL not found")
		return validation.New("short_url", "short URL is required")
	}

	if err := r.api.UpdateOriginalURL(ctx, shortURL, draft); err != nil {
		r.log.Warnw("Failed to update the link", "short_url", shortURL, "error", err)
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if i := models.IndexOf(r.links, shortURL); i >= 0 {
		r.links[i].OriginalURL = draft
		r.version++
	}
	if r.inFlight > 0 {
		r.editSeq++
		r.committed = append(r.committed, committedEdit{seq: r.editSeq, shortURL: shortURL, originalURL: draft})
	}
	if r.editShort == shortURL {
		r.closeEditLocked()
	}
	return nil
}

// QualifiedURL returns the link as users open and share it.
func (r *Recent) QualifiedURL(shortURL string) string {
	return models.QualifiedURL(r.origin, shortURL)
}

// DebugURL returns the sharing debugger page for the link.
func (r *Recent) DebugURL(shortURL string) string {
	return SharingDebuggerURL + url.QueryEscape(models.QualifiedURL(r.debugOrigin, shortURL))
}

// CopyLink copies the qualified link. There is no error path in the view;
// failures are only logged.
func (r *Recent) CopyLink(env Environment, shortURL string) error {
	if err := env.CopyText(r.QualifiedURL(shortURL)); err != nil {
		r.log.Debugw("Copy to clipboard failed", "error", err)
		return err
	}
	return nil
}

// Loading reports whether the first load is still in flight.
func (r *Recent) Loading() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.loading
}

// State returns a snapshot of the list.
func (r *Recent) State() RecentState {
	r.mu.Lock()
	defer r.mu.Unlock()

	// An index recorded against an older list is re-resolved by identity.
	index := r.editIndex
	if r.editOpen && r.editVer != r.version {
		index = models.IndexOf(r.links, r.editShort)
	}

	return RecentState{
		Links:           append([]models.ShortLink(nil), r.links...),
		Loading:         r.loading,
		Failed:          r.failed,
		EditOpen:        r.editOpen,
		EditingShortURL: r.editShort,
		EditingDraft:    r.editDraft,
		EditingIndex:    index,
		EditingVersion:  r.editVer,
		Version:         r.version,
	}
}
