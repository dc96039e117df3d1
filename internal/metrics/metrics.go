package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	CombinationsAttempted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "spinner_combinations_attempted_total",
			Help: "Total number of service/area/template combinations attempted",
		},
	)

	CombinationsGenerated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "spinner_combinations_generated_total",
			Help: "Total number of combinations persisted, by section type",
		},
		[]string{"section_type"},
	)

	CombinationsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "spinner_combinations_failed_total",
			Help: "Total number of combinations skipped after a failure",
		},
		[]string{"error_code"},
	)

	EnhancementsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "spinner_enhancements_total",
			Help: "Content enhancement attempts by outcome",
		},
		[]string{"outcome"},
	)

	SEOScore = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "spinner_seo_score",
			Help:    "Distribution of SEO scores for generated content",
			Buckets: prometheus.LinearBuckets(0, 10, 11),
		},
	)

	GenerationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name: "spinner_generation_duration_seconds",
			Help: "Duration of a generation request in seconds",
		},
	)

	ExportsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "spinner_exports_total",
			Help: "Project exports by format",
		},
		[]string{"format"},
	)
)
