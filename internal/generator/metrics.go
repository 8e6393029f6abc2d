package generator

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	generationsStarted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "storybook_generations_started_total",
			Help: "Total number of story generations started.",
		},
	)
	generationsCompleted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "storybook_generations_completed_total",
			Help: "Total number of story generations that reached completed status.",
		},
	)
	generationsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "storybook_generations_failed_total",
			Help: "Total number of story generations that failed, partitioned by reason.",
		},
		[]string{"reason"},
	)
	imageFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "storybook_image_failures_total",
			Help: "Total number of per-page illustration failures (recovered as empty pages).",
		},
	)
	generationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "storybook_generation_duration_seconds",
			Help:    "Duration of complete story generations.",
			Buckets: prometheus.ExponentialBuckets(0.5, 2, 10),
		},
	)
)

func metricsIncrementGenerationsStarted()   { generationsStarted.Inc() }
func metricsIncrementGenerationsCompleted() { generationsCompleted.Inc() }
func metricsIncrementImageFailures()        { imageFailures.Inc() }

func metricsIncrementGenerationsFailed(reason string) {
	generationsFailed.WithLabelValues(reason).Inc()
}
func metricsObserveGenerationDuration(d time.Duration) {
	generationDuration.Observe(d.Seconds())
}
