package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// WorkflowMetrics records authorization lifecycle transitions and denials.
type WorkflowMetrics struct {
	transitions *prometheus.CounterVec
	denials     *prometheus.CounterVec
	approvedGap *prometheus.GaugeVec
}

// NewWorkflowMetrics registers the workflow metrics on the provided registerer.
func NewWorkflowMetrics(reg prometheus.Registerer) *WorkflowMetrics {
	if reg == nil {
		return &WorkflowMetrics{}
	}
	transitions := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "authorization_transitions_total",
		Help: "Authorization state transitions by action and outcome.",
	}, []string{"action", "outcome"})
	denials := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "authorization_denials_total",
		Help: "Denied authorization operations by denial reason.",
	}, []string{"reason"})
	approvedGap := prometheus.NewGaugeVec(prometheus.GaugeOpts{
		Name: "authorization_slots_remaining",
		Help: "Approved slots remaining for a seller after the latest approval.",
	}, []string{"seller_id"})
	reg.MustRegister(transitions, denials, approvedGap)
	return &WorkflowMetrics{
		transitions: transitions,
		denials:     denials,
		approvedGap: approvedGap,
	}
}

// IncTransition increments the transition counter for an action and outcome.
func (w *WorkflowMetrics) IncTransition(action, outcome string) {
	if w == nil || w.transitions == nil {
		return
	}
	w.transitions.WithLabelValues(normalizeLabel(action), normalizeLabel(outcome)).Inc()
}

// IncDenial increments the denial counter for the given reason.
func (w *WorkflowMetrics) IncDenial(reason string) {
	if w == nil || w.denials == nil {
		return
	}
	w.denials.WithLabelValues(normalizeLabel(reason)).Inc()
}

// SetSlotsRemaining records the remaining approved slots for a seller.
func (w *WorkflowMetrics) SetSlotsRemaining(sellerID string, remaining int) {
	if w == nil || w.approvedGap == nil {
		return
	}
	w.approvedGap.WithLabelValues(normalizeLabel(sellerID)).Set(float64(remaining))
}
