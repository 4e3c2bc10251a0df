package controllers

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"shortdash/internal/models"
	"shortdash/internal/validation"
)

// Messages shown inline under the shortening form.
const (
	MsgURLRequired    = "URL is required!"
	MsgRenameRequired = "Short URL and new URL are required!"
	MsgShortenFailed  = "Error occurred while shortening the URL"
	MsgRenameFailed   = "Error occurred while updating the Short URL"
)

type shortenInput struct {
	URL string `form:"url" validate:"required"`
}

type renameInput struct {
	Code string `form:"short_code" validate:"required"`
	URL  string `form:"url" validate:"required"`
}

// FormState is a snapshot of the shortening form.
type FormState struct {
	URL            string
	ShortenedURL   string
	ShortCodeDraft string
	Error          string
	ModalOpen      bool

	// QualifiedURL is the service origin joined with ShortenedURL, or empty.
	QualifiedURL string
}

// Form is the shortening form controller.
type Form struct {
	api    ShortenerAPI
	origin string
	log    *zap.SugaredLogger

	mu    sync.Mutex
	state FormState
}

// NewForm creates a form controller. origin is the service origin short
// links are served from.
func NewForm(api ShortenerAPI, origin string, log *zap.SugaredLogger) *Form {
	return &Form{api: api, origin: origin, log: log}
}

// State returns a snapshot of the form.
func (f *Form) State() FormState {
	f.mu.Lock()
	defer f.mu.Unlock()

	s := f.state
	if s.ShortenedURL != "" {
		s.QualifiedURL = models.QualifiedURL(f.origin, s.ShortenedURL)
	}
	return s
}

// SubmitNewURL shortens url. An empty url fails validation without a request.
// On success the result modal opens with the code ready for renaming.
func (f *Form) SubmitNewURL(ctx context.Context, url string) error {
	f.mu.Lock()
	f.state.URL = url
	if err := validation.Struct(shortenInput{URL: url}, MsgURLRequired); err != nil {
		f.state.Error = MsgURLRequired
		f.mu.Unlock()
		return err
	}
	f.mu.Unlock()

	short, err := f.api.Shorten(ctx, url)

	f.mu.Lock()
	defer f.mu.Unlock()
	if err != nil {
		f.log.Warnw("Failed to shorten URL", "url", url, "error", err)
		f.state.Error = MsgShortenFailed
		return err
	}

	f.state.ShortenedURL = short
	f.state.ShortCodeDraft = models.CodeFromShortURL(short)
	f.state.ModalOpen = true
	f.state.Error = ""
	return nil
}

// SubmitRename renames the current short link to code and points it at url.
// Nothing changes unless the backend confirms.
func (f *Form) SubmitRename(ctx context.Context, code, url string) error {
	f.mu.Lock()
	f.state.ShortCodeDraft = code
	f.state.URL = url
	if err := validation.Struct(renameInput{Code: code, URL: url}, MsgRenameRequired); err != nil {
		f.state.Error = MsgRenameRequired
		f.mu.Unlock()
		return err
	}
	if f.state.ShortenedURL == "" {
		f.state.Error = MsgRenameRequired
		f.mu.Unlock()
		return validation.New("short_url", MsgRenameRequired)
	}
	current := models.CodeFromShortURL(f.state.ShortenedURL)
	f.mu.Unlock()

	_, err := f.api.Rename(ctx, current, url, code)

	f.mu.Lock()
	defer f.mu.Unlock()
	if err != nil {
		f.log.Warnw("Failed to rename short URL", "code", current, "new_code", code, "error", err)
		f.state.Error = MsgRenameFailed
		return err
	}

	f.state.ShortenedURL = "/" + code
	f.state.Error = ""
	return nil
}

// CopyShareLink copies the qualified short link. Clipboard failures are
// logged and never reach the form's error.
func (f *Form) CopyShareLink(env Environment) error {
	s := f.State()
	if s.QualifiedURL == "" {
		return nil
	}
	if err := env.CopyText(s.QualifiedURL); err != nil {
		f.log.Debugw("Copy to clipboard failed", "error", err)
		return err
	}
	return nil
}

// CloseAndReset closes the modal, discards every draft and reloads the view.
func (f *Form) CloseAndReset(env Environment) {
	f.mu.Lock()
	f.state = FormState{}
	f.mu.Unlock()

	env.ResetView()
}
