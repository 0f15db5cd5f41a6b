package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestNegotiationMetricsCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewNegotiationMetrics(reg)

	m.ObservePropose("ok")
	m.ObservePropose("fallback")
	m.ObservePropose("fallback")
	m.ObserveParse("rejected")
	m.ObserveBooked("agentic")
	m.ObserveLLMLatency("propose_slots", 0.42)

	if got := testutil.ToFloat64(m.proposeTotal.WithLabelValues("fallback")); got != 2 {
		t.Errorf("expected 2 fallback proposals, got %v", got)
	}
	if got := testutil.ToFloat64(m.proposeTotal.WithLabelValues("ok")); got != 1 {
		t.Errorf("expected 1 ok proposal, got %v", got)
	}
	if got := testutil.ToFloat64(m.parseTotal.WithLabelValues("rejected")); got != 1 {
		t.Errorf("expected 1 rejected parse, got %v", got)
	}
	if got := testutil.ToFloat64(m.bookedTotal.WithLabelValues("agentic")); got != 1 {
		t.Errorf("expected 1 agentic booking, got %v", got)
	}
}

func TestNilMetricsAreSafe(t *testing.T) {
	var m *NegotiationMetrics
	m.ObservePropose("ok")
	m.ObserveParse("ok")
	m.ObserveBooked("structured")
	m.ObserveLLMLatency("parse_request", 0.1)
}
