package backendtest

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"

	"shortdash/internal/backend"
	"shortdash/internal/models"
)

func (s *Server) shorten(w http.ResponseWriter, r *http.Request) {
	var req models.ShortenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.URL == "" {
		writeError(w, http.StatusBadRequest, "URL is required")
		return
	}

	s.mu.Lock()
	link := models.ShortLink{ShortURL: "/" + s.newCode(), OriginalURL: req.URL}
	s.links = append(s.links, link)
	s.urlsToday++
	s.mu.Unlock()

	writeJSON(w, http.StatusCreated, models.ShortenResponse{ShortURL: link.ShortURL})
}

func (s *Server) rename(w http.ResponseWriter, r *http.Request) {
	var req models.RenameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.URL == "" || req.NewShortURL == "" {
		writeError(w, http.StatusBadRequest, "url and new_short_url are required")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := models.IndexOf(s.links, "/"+r.PathValue("code"))
	if i < 0 {
		writeError(w, http.StatusNotFound, "Short URL not found")
		return
	}
	renamed := "/" + req.NewShortURL
	if j := models.IndexOf(s.links, renamed); j >= 0 && j != i {
		writeError(w, http.StatusConflict, "Short URL already exists")
		return
	}

	old := s.links[i].ShortURL
	s.links[i] = models.ShortLink{ShortURL: renamed, OriginalURL: req.URL}
	if n, ok := s.clicks[old]; ok {
		delete(s.clicks, old)
		s.clicks[renamed] = n
	}

	writeJSON(w, http.StatusOK, models.MessageResponse{Message: "URL updated successfully"})
}

func (s *Server) stats(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]any{
		"total_urls":         len(s.links),
		"total_urls_today":   s.urlsToday,
		"click_counts":       s.clickEntries(),
		"total_clicks_today": s.clicksToday,
	})
}

func (s *Server) daily(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	writeJSON(w, http.StatusOK, map[string]any{"click_counts": s.clickEntries()})
}

func (s *Server) all(w http.ResponseWriter, _ *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	links := append([]models.ShortLink{}, s.links...)
	writeJSON(w, http.StatusOK, links)
}

func (s *Server) updateOriginal(w http.ResponseWriter, r *http.Request) {
	var req models.UpdateOriginalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.NewOriginalURL == "" {
		writeError(w, http.StatusBadRequest, "new_original_url is required")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := models.IndexOf(s.links, "/"+r.PathValue("code"))
	if i < 0 {
		writeError(w, http.StatusNotFound, "Short URL not found")
		return
	}
	s.links[i].OriginalURL = req.NewOriginalURL

	writeJSON(w, http.StatusOK, models.MessageResponse{Message: backend.OriginalURLUpdated})
}

func (s *Server) redirect(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	short := "/" + r.PathValue("code")
	i := models.IndexOf(s.links, short)
	var target string
	if i >= 0 {
		target = s.links[i].OriginalURL
		s.clicks[short]++
		s.clicksToday++
	}
	s.mu.Unlock()

	if i < 0 {
		http.NotFound(w, r)
		return
	}
	http.Redirect(w, r, target, http.StatusFound)
}

// clickEntries lists click counts in link order. Callers hold s.mu.
func (s *Server) clickEntries() []clickEntry {
	out := make([]clickEntry, 0, len(s.links))
	for _, l := range s.links {
		out = append(out, clickEntry{ShortURL: l.ShortURL, ClickCount: s.clicks[l.ShortURL]})
	}
	return out
}

func readCloser(b []byte) io.ReadCloser {
	return io.NopCloser(bytes.NewReader(b))
}
