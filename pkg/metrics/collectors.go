package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	// AnalysisTotal counts analysis requests by outcome.
	AnalysisTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "medicheck",
		Subsystem: "analysis",
		Name:      "total",
		Help:      "Total number of symptom analyses, labeled by outcome.",
	}, []string{"outcome"})

	// AnalysisDurationSeconds is the end-to-end pipeline time per request.
	AnalysisDurationSeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "medicheck",
		Subsystem: "analysis",
		Name:      "duration_seconds",
		Help:      "Time spent in the analysis pipeline, labeled by outcome.",
		Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 20, 30, 60},
	}, []string{"outcome"})

	// ReportsRenderedTotal counts PDF renders by result.
	ReportsRenderedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "medicheck",
		Subsystem: "reports",
		Name:      "rendered_total",
		Help:      "Total number of PDF reports rendered, labeled by result.",
	}, []string{"result"})
)

// Register registers the collectors with the default Prometheus registry.
// Safe to call multiple times.
func Register() {
	once.Do(func() {
		prometheus.MustRegister(
			AnalysisTotal,
			AnalysisDurationSeconds,
			ReportsRenderedTotal,
		)
	})
}
