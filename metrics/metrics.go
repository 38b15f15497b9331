// Package metrics defines Prometheus metrics for wcfetch.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "wcfetch"

// Recorder records product fetch outcomes. It satisfies woocommerce.Observer.
type Recorder struct {
	registry *prometheus.Registry

	FetchTotal      *prometheus.CounterVec
	FetchDuration   prometheus.Histogram
	ProductsFetched prometheus.Counter
}

// NewRecorder registers the fetch metrics on a fresh registry.
func NewRecorder() *Recorder {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Recorder{
		registry: reg,
		FetchTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "fetch_total",
			Help:      "Total number of product page fetches by outcome.",
		}, []string{"outcome"}),
		FetchDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "fetch_duration_seconds",
			Help:      "Duration of product page fetches in seconds.",
			Buckets:   prometheus.DefBuckets,
		}),
		ProductsFetched: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "products_fetched_total",
			Help:      "Total number of product records received.",
		}),
	}
}

// ObserveFetch records one FetchPage outcome.
func (r *Recorder) ObserveFetch(outcome string, duration time.Duration, items int) {
	r.FetchTotal.WithLabelValues(outcome).Inc()
	r.FetchDuration.Observe(duration.Seconds())
	if items > 0 {
		r.ProductsFetched.Add(float64(items))
	}
}

// Gatherer exposes the registry, e.g. for promhttp.
func (r *Recorder) Gatherer() prometheus.Gatherer {
	return r.registry
}

// WriteTextfile writes all metrics in the text exposition format to path,
// for the node_exporter textfile collector.
func (r *Recorder) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
