// Package backendtest provides an in-memory URL-shortening backend speaking
// the same JSON contract as the real one, with knobs for injecting failures.
package backendtest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	gonanoid "github.com/jaevor/go-nanoid"

	"shortdash/internal/backend"
	"shortdash/internal/models"
)

// Fault replaces the response of an endpoint. A zero Status means 200.
// Network drops the connection without a response.
type Fault struct {
	Status  int
	Body    string
	Network bool
}

type clickEntry struct {
	ShortURL   string `json:"short_url"`
	ClickCount int    `json:"click_count"`
}

// Server is a fake backend. Endpoint keys are the backend.Endpoint* names.
type Server struct {
	*httptest.Server

	mu          sync.Mutex
	links       []models.ShortLink
	clicks      map[string]int
	urlsToday   int
	clicksToday int
	faults      map[string]Fault
	gates       map[string]chan struct{}
	calls       map[string]int
	bodies      map[string][]byte
	newCode     func() string
}

// New starts a fake backend that is closed when the test ends.
func New(t testing.TB) *Server {
	t.Helper()

	gen, err := gonanoid.Standard(7)
	if err != nil {
		t.Fatalf("create code generator: %v", err)
	}

	s := &Server{
		clicks:  make(map[string]int),
		faults:  make(map[string]Fault),
		gates:   make(map[string]chan struct{}),
		calls:   make(map[string]int),
		bodies:  make(map[string][]byte),
		newCode: gen,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /shorten", s.wrap(backend.EndpointShorten, s.shorten))
	mux.HandleFunc("POST /update/{code}", s.wrap(backend.EndpointRename, s.rename))
	mux.HandleFunc("GET /stats", s.wrap(backend.EndpointStats, s.stats))
	mux.HandleFunc("GET /stats/daily", s.wrap(backend.EndpointDailyStats, s.daily))
	mux.HandleFunc("GET /all", s.wrap(backend.EndpointListLinks, s.all))
	mux.HandleFunc("POST /update1/{code}", s.wrap(backend.EndpointUpdateOrigURL, s.updateOriginal))
	mux.HandleFunc("GET /{code}", s.redirect)

	s.Server = httptest.NewServer(mux)
	t.Cleanup(s.Close)
	return s
}

// Origins returns the server URL for every endpoint group.
func (s *Server) Origins() backend.Origins {
	return backend.Origins{Shorten: s.URL, Stats: s.URL, Links: s.URL}
}

// Seed appends links in order, each with zero clicks.
func (s *Server) Seed(links ...models.ShortLink) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.links = append(s.links, links...)
}

// SetClicks sets the click count of the link identified by shortURL.
func (s *Server) SetClicks(shortURL string, n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clicks[shortURL] = n
}

// SetToday sets the "today" counters reported by /stats.
func (s *Server) SetToday(urls, clicks int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.urlsToday, s.clicksToday = urls, clicks
}

// Fail makes every later call to endpoint answer with f.
func (s *Server) Fail(endpoint string, f Fault) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.faults[endpoint] = f
}

// Recover removes the fault on endpoint.
func (s *Server) Recover(endpoint string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.faults, endpoint)
}

// Hold makes later calls to endpoint wait until release is called.
func (s *Server) Hold(endpoint string) (release func()) {
	gate := make(chan struct{})
	s.mu.Lock()
	s.gates[endpoint] = gate
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.gates, endpoint)
			s.mu.Unlock()
			close(gate)
		})
	}
}

// Calls returns how many requests endpoint has received.
func (s *Server) Calls(endpoint string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[endpoint]
}

// LastBody returns the raw body of the last request to endpoint.
func (s *Server) LastBody(endpoint string) []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]byte(nil), s.bodies[endpoint]...)
}

// Links returns a copy of the stored links.
func (s *Server) Links() []models.ShortLink {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.ShortLink(nil), s.links...)
}

func (s *Server) wrap(endpoint string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.calls[endpoint]++
		gate := s.gates[endpoint]
		fault, faulty := s.faults[endpoint]
		s.mu.Unlock()

		if gate != nil {
			select {
			case <-gate:
			case <-r.Context().Done():
				return
			}
		}

		if faulty {
			writeFault(w, fault)
			return
		}

		if r.Body != nil {
			var raw json.RawMessage
			if err := json.NewDecoder(r.Body).Decode(&raw); err == nil {
				s.mu.Lock()
				s.bodies[endpoint] = raw
				s.mu.Unlock()
				r.Body = readCloser(raw)
			}
		}

		next(w, r)
	}
}

func writeFault(w http.ResponseWriter, f Fault) {
	if f.Network {
		if hj, ok := w.(http.Hijacker); ok {
			if conn, _, err := hj.Hijack(); err == nil {
				conn.Close()
				return
			}
		}
		w.WriteHeader(http.StatusBadGateway)
		return
	}

	status := f.Status
	if status == 0 {
		status = http.StatusOK
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(f.Body))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
