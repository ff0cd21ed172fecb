// Package prometheus exports filtering and request metrics with the
// Prometheus client library.
package prometheus

import (
	"context"
	"net/http"
	"time"

	"github.com/fwojciec/pyroxy"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Namespace prefixes every metric name.
const Namespace = "pyroxy"

// Filter results.
const (
	ResultOK    = "ok"
	ResultError = "error"
)

// Metrics holds the mirror's collectors.
type Metrics struct {
	gatherer prometheus.Gatherer

	filterTotal    *prometheus.CounterVec
	filterDuration prometheus.Histogram
	linksSeen      *prometheus.CounterVec
	linksRemoved   *prometheus.CounterVec
	requestsTotal  *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them with registry.
func NewMetrics(registry *prometheus.Registry) *Metrics {
	m := &Metrics{
		gatherer: registry,
		filterTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      "index_filter_total",
				Help:      "Number of package index pages filtered.",
			},
			[]string{"result"},
		),
		filterDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: Namespace,
				Name:      "index_filter_duration_seconds",
				Help:      "Time spent filtering one package index page.",
				Buckets:   prometheus.ExponentialBuckets(0.0005, 2, 12),
			},
		),
		linksSeen: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      "links_seen_total",
				Help:      "Links found on filtered index pages by category.",
			},
			[]string{"category"},
		),
		linksRemoved: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      "links_removed_total",
				Help:      "Links removed from index pages by category.",
			},
			[]string{"category"},
		),
		requestsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: Namespace,
				Name:      "http_requests_total",
				Help:      "HTTP requests served by status code.",
			},
			[]string{"code"},
		),
	}

	for _, c := range pyroxy.LinkCategories {
		m.linksSeen.WithLabelValues(c.String())
		m.linksRemoved.WithLabelValues(c.String())
	}

	registry.MustRegister(
		m.filterTotal,
		m.filterDuration,
		m.linksSeen,
		m.linksRemoved,
		m.requestsTotal,
	)
	return m
}

// ObserveFilter records the outcome of one filtering pass.
func (m *Metrics) ObserveFilter(idx *pyroxy.FilteredIndex, duration time.Duration, err error) {
	m.filterDuration.Observe(duration.Seconds())
	if err != nil {
		m.filterTotal.WithLabelValues(ResultError).Inc()
		return
	}
	m.filterTotal.WithLabelValues(ResultOK).Inc()

	for c, links := range idx.Links {
		m.linksSeen.WithLabelValues(c.String()).Add(float64(len(links)))
	}
	for _, c := range idx.Removed {
		m.linksRemoved.WithLabelValues(c.String()).Add(float64(len(idx.Links[c])))
	}
}

// InstrumentHandler counts the requests served by next by status code.
func (m *Metrics) InstrumentHandler(next http.Handler) http.Handler {
	return promhttp.InstrumentHandlerCounter(m.requestsTotal, next)
}

// Handler serves the registered metrics in the Prometheus exposition
// format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

// Ensure InstrumentedIndexFilter implements pyroxy.IndexFilter.
var _ pyroxy.IndexFilter = (*InstrumentedIndexFilter)(nil)

// InstrumentedIndexFilter wraps an IndexFilter and records each pass.
type InstrumentedIndexFilter struct {
	next    pyroxy.IndexFilter
	metrics *Metrics
}

// NewInstrumentedIndexFilter creates a new InstrumentedIndexFilter.
func NewInstrumentedIndexFilter(next pyroxy.IndexFilter, metrics *Metrics) *InstrumentedIndexFilter {
	return &InstrumentedIndexFilter{next: next, metrics: metrics}
}

// FilterIndex delegates to the wrapped filter and records the outcome.
func (f *InstrumentedIndexFilter) FilterIndex(ctx context.Context, packageName string, raw []byte) (idx *pyroxy.FilteredIndex, err error) {
	defer func(begin time.Time) {
		f.metrics.ObserveFilter(idx, time.Since(begin), err)
	}(time.Now())
	return f.next.FilterIndex(ctx, packageName, raw)
}
