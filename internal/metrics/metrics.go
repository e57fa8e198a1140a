// Package metrics holds the Prometheus collectors of the pedigree service.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// buildDuration tracks pedigree build latency by caller (api, worker, cli)
	buildDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "pedigree_build_duration_seconds",
		Help:    "Pedigree build duration in seconds",
		Buckets: prometheus.ExponentialBuckets(0.001, 2, 14), // 1ms to ~8s
	}, []string{"source"})

	buildNodes = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "pedigree_build_nodes",
		Help:    "Number of nodes per built pedigree",
		Buckets: []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000, 2000},
	})

	buildLinks = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "pedigree_build_links",
		Help:    "Number of links per built pedigree",
		Buckets: []float64{0, 5, 10, 25, 50, 100, 250, 500, 1000, 5000},
	})

	buildTruncated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pedigree_build_truncated_total",
		Help: "Builds whose component reached max_nodes",
	})

	buildErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pedigree_build_errors_total",
		Help: "Failed pedigree builds by source",
	}, []string{"source"})

	exportsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pedigree_exports_total",
		Help: "Processed export jobs by final status",
	}, []string{"status"})
)

// ObserveBuild records a successful build.
func ObserveBuild(source string, took time.Duration, nodes, links int, truncated bool) {
	buildDuration.WithLabelValues(source).Observe(took.Seconds())
	buildNodes.Observe(float64(nodes))
	buildLinks.Observe(float64(links))
	if truncated {
		buildTruncated.Inc()
	}
}

func ObserveBuildError(source string) {
	buildErrors.WithLabelValues(source).Inc()
}

// ObserveExport records the terminal status of an export job.
func ObserveExport(status string) {
	exportsTotal.WithLabelValues(status).Inc()
}
