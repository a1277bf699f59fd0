package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// OutcomeAccepted labels stored submissions; rejected ones are labelled with their error kind.
const OutcomeAccepted = "accepted"

// Recorder defines the interface for submission metrics.
type Recorder interface {
	SubmissionOutcome(outcome string)
	SubmissionScore(score float64)
}

// PrometheusRecorder records submission metrics in Prometheus.
type PrometheusRecorder struct {
	submissions *prometheus.CounterVec
	scores      prometheus.Histogram
}

// NewPrometheusRecorder registers the submission collectors on reg.
func NewPrometheusRecorder(reg prometheus.Registerer) *PrometheusRecorder {
	factory := promauto.With(reg)
	return &PrometheusRecorder{
		submissions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "learnhub_quiz_submissions_total",
				Help: "Quiz submission attempts by outcome",
			},
			[]string{"outcome"},
		),
		scores: factory.NewHistogram(
			prometheus.HistogramOpts{
				Name:    "learnhub_quiz_submission_score",
				Help:    "Scores of accepted quiz submissions",
				Buckets: prometheus.LinearBuckets(0, 10, 11),
			},
		),
	}
}

func (r *PrometheusRecorder) SubmissionOutcome(outcome string) {
	r.submissions.WithLabelValues(outcome).Inc()
}

func (r *PrometheusRecorder) SubmissionScore(score float64) {
	r.scores.Observe(score)
}
