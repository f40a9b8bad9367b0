package metrics

import (
	"fmt"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func TestWorkflowMetricsExportsCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := NewWorkflowMetrics(reg)

	metrics.IncTransition("approve", "ok")
	metrics.IncTransition("approve", "ok")
	metrics.IncTransition("reject", "denied")
	metrics.IncDenial("slots_exhausted")
	metrics.SetSlotsRemaining("seller-1", 3)

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}

	if got, err := fetchCounterValue(mfs, "authorization_transitions_total", "action", "approve"); err != nil {
		t.Fatalf("fetch transitions: %v", err)
	} else if got != 2 {
		t.Fatalf("expected approve transitions=2, got %f", got)
	}

	if got, err := fetchCounterValue(mfs, "authorization_denials_total", "reason", "slots_exhausted"); err != nil {
		t.Fatalf("fetch denials: %v", err)
	} else if got != 1 {
		t.Fatalf("expected denials=1, got %f", got)
	}

	if got, err := fetchGaugeValue(mfs, "authorization_slots_remaining", "seller_id", "seller-1"); err != nil {
		t.Fatalf("fetch gauge: %v", err)
	} else if got != 3 {
		t.Fatalf("expected slots remaining 3, got %f", got)
	}
}

func TestWorkflowMetricsNilRegistererIsNoop(t *testing.T) {
	metrics := NewWorkflowMetrics(nil)
	metrics.IncTransition("approve", "ok")
	metrics.IncDenial("cooldown_active")
	metrics.SetSlotsRemaining("seller-1", 1)
}

func fetchGaugeValue(mfs []*dto.MetricFamily, name, label, value string) (float64, error) {
	mf := findMetricFamily(mfs, name)
	if mf == nil {
		return 0, fmt.Errorf("metric %q not found", name)
	}
	for _, metric := range mf.GetMetric() {
		if matchesLabel(metric.GetLabel(), label, value) {
			return metric.GetGauge().GetValue(), nil
		}
	}
	return 0, fmt.Errorf("metric %q missing label %s=%s", name, label, value)
}
