package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
)

func TestPrometheusRecorder(t *testing.T) {
	reg := prometheus.NewRegistry()
	r := NewPrometheusRecorder(reg)

	r.SubmissionOutcome(OutcomeAccepted)
	r.SubmissionOutcome(OutcomeAccepted)
	r.SubmissionOutcome("conflict")
	r.SubmissionScore(80)

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather: %v", err)
	}
	counts := map[string]float64{}
	var observed uint64
	for _, mf := range families {
		switch mf.GetName() {
		case "learnhub_quiz_submissions_total":
			for _, m := range mf.GetMetric() {
				counts[m.GetLabel()[0].GetValue()] = m.GetCounter().GetValue()
			}
		case "learnhub_quiz_submission_score":
			observed = mf.GetMetric()[0].GetHistogram().GetSampleCount()
		}
	}
	if counts[OutcomeAccepted] != 2 || counts["conflict"] != 1 {
		t.Errorf("unexpected outcome counts %v", counts)
	}
	if observed != 1 {
		t.Errorf("expected one observed score, got %d", observed)
	}
}
