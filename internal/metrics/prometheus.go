package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// PrometheusRecorder implements Recorder on top of prometheus counters.
// Metrics register with the default registry and are served by promhttp.
type PrometheusRecorder struct {
	redirectCacheHits   prometheus.Counter
	redirectCacheMisses prometheus.Counter
	redirectOutcomes    *prometheus.CounterVec
	redirectDuration    prometheus.Histogram
	linksCreated        prometheus.Counter
	linksUpdated        prometheus.Counter
	linksDeleted        prometheus.Counter
	codeCollisions      prometheus.Counter
	clicksRecorded      prometheus.Counter
}

// NewPrometheus returns a Recorder backed by the default prometheus registry.
// Call at most once per process; promauto panics on duplicate registration.
func NewPrometheus() *PrometheusRecorder {
	return &PrometheusRecorder{
		redirectCacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "snaplink_redirect_cache_hits_total",
			Help: "Total redirect resolutions served from cache",
		}),
		redirectCacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "snaplink_redirect_cache_misses_total",
			Help: "Total redirect resolutions that fell through to the database",
		}),
		redirectOutcomes: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "snaplink_redirects_total",
			Help: "Total redirect requests by outcome",
		}, []string{"outcome"}),
		redirectDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "snaplink_redirect_duration_seconds",
			Help:    "Duration of redirect resolution including click recording",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		}),
		linksCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "snaplink_links_created_total",
			Help: "Total links created",
		}),
		linksUpdated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "snaplink_links_updated_total",
			Help: "Total links updated",
		}),
		linksDeleted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "snaplink_links_deleted_total",
			Help: "Total links deleted",
		}),
		codeCollisions: promauto.NewCounter(prometheus.CounterOpts{
			Name: "snaplink_code_collisions_total",
			Help: "Total generated short codes rejected as already taken",
		}),
		clicksRecorded: promauto.NewCounter(prometheus.CounterOpts{
			Name: "snaplink_clicks_recorded_total",
			Help: "Total clicks appended to link histories",
		}),
	}
}

// IncRedirectCacheHit increments the cache hit counter.
func (p *PrometheusRecorder) IncRedirectCacheHit() { p.redirectCacheHits.Inc() }

// IncRedirectCacheMiss increments the cache miss counter.
func (p *PrometheusRecorder) IncRedirectCacheMiss() { p.redirectCacheMisses.Inc() }

// IncRedirectOutcome increments the counter for a redirect outcome.
func (p *PrometheusRecorder) IncRedirectOutcome(outcome string) {
	p.redirectOutcomes.WithLabelValues(outcome).Inc()
}

// ObserveRedirectDuration records redirect duration.
func (p *PrometheusRecorder) ObserveRedirectDuration(duration time.Duration) {
	p.redirectDuration.Observe(duration.Seconds())
}

// IncLinkCreated increments the links created counter.
func (p *PrometheusRecorder) IncLinkCreated() { p.linksCreated.Inc() }

// IncLinkUpdated increments the links updated counter.
func (p *PrometheusRecorder) IncLinkUpdated() { p.linksUpdated.Inc() }

// IncLinkDeleted increments the links deleted counter.
func (p *PrometheusRecorder) IncLinkDeleted() { p.linksDeleted.Inc() }

// IncCodeCollision increments the code collision counter.
func (p *PrometheusRecorder) IncCodeCollision() { p.codeCollisions.Inc() }

// IncClickRecorded increments the clicks recorded counter.
func (p *PrometheusRecorder) IncClickRecorded() { p.clicksRecorded.Inc() }
