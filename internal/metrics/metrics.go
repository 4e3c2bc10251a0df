package metrics

import (
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	livePagesDesc = prometheus.NewDesc(
		"shortdash_live_pages",
		"Number of mounted pages",
		nil,
		nil,
	)
)

// PageCounter reports how many pages are mounted.
type PageCounter interface {
	Len() int
}

// PageCollector is a custom Prometheus collector that reads the number of
// mounted pages on each scrape.
type PageCollector struct {
	pages PageCounter
}

// Describe sends the metric descriptor to the channel.
func (c *PageCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- livePagesDesc
}

// Collect emits the current page count as a gauge.
func (c *PageCollector) Collect(ch chan<- prometheus.Metric) {
	ch <- prometheus.MustNewConstMetric(livePagesDesc, prometheus.GaugeValue, float64(c.pages.Len()))
}

// Recorder holds the backend request metrics.
type Recorder struct {
	gatherer prometheus.Gatherer
	requests *prometheus.CounterVec
	latency  *prometheus.HistogramVec
	up       *prometheus.GaugeVec
}

// NewRecorder creates the backend metrics and registers them, together with a
// PageCollector for pages, on reg.
func NewRecorder(reg *prometheus.Registry, pages PageCounter) *Recorder {
	r := &Recorder{
		gatherer: reg,
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "shortdash_backend_requests_total",
			Help: "Backend requests by endpoint and outcome",
		}, []string{"endpoint", "outcome"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "shortdash_backend_request_duration_seconds",
			Help:    "Backend request latency by endpoint",
			Buckets: prometheus.DefBuckets,
		}, []string{"endpoint"}),
		up: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "shortdash_backend_up",
			Help: "Whether the last probe of a backend origin got a response",
		}, []string{"origin"}),
	}
	reg.MustRegister(r.requests, r.latency, r.up, &PageCollector{pages: pages})
	return r
}

// ObserveBackend records one finished backend request.
func (r *Recorder) ObserveBackend(endpoint, outcome string, elapsed time.Duration) {
	r.requests.WithLabelValues(endpoint, outcome).Inc()
	r.latency.WithLabelValues(endpoint).Observe(elapsed.Seconds())
}

// SetBackendUp records the result of probing origin.
func (r *Recorder) SetBackendUp(origin string, up bool) {
	v := 0.0
	if up {
		v = 1
	}
	r.up.WithLabelValues(origin).Set(v)
}

// Handler serves the registry in the Prometheus text format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.gatherer, promhttp.HandlerOpts{})
}

var (
	recorder     *Recorder
	recorderOnce sync.Once
)

// Init creates the process-wide recorder on a fresh registry that also carries
// the Go and process collectors. Must be called once at startup.
func Init(pages PageCounter) *Recorder {
	recorderOnce.Do(func() {
		reg := prometheus.NewRegistry()
		reg.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		recorder = NewRecorder(reg, pages)
	})
	return recorder
}
