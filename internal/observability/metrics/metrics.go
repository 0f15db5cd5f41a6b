package metrics

import "github.com/prometheus/client_golang/prometheus"

// NegotiationMetrics exposes counters/histograms for the slot negotiation
// and booking flows. All methods are nil-safe so callers can run without
// metrics wired.
type NegotiationMetrics struct {
	proposeTotal *prometheus.CounterVec
	parseTotal   *prometheus.CounterVec
	bookedTotal  *prometheus.CounterVec
	llmLatency   *prometheus.HistogramVec
}

func NewNegotiationMetrics(reg prometheus.Registerer) *NegotiationMetrics {
	m := &NegotiationMetrics{
		proposeTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "medibook",
			Subsystem: "negotiation",
			Name:      "propose_total",
			Help:      "Total slot proposal attempts by outcome",
		}, []string{"outcome"}),
		parseTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "medibook",
			Subsystem: "negotiation",
			Name:      "parse_total",
			Help:      "Total free-text parse attempts by outcome",
		}, []string{"outcome"}),
		bookedTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "medibook",
			Subsystem: "booking",
			Name:      "appointments_total",
			Help:      "Total appointments booked by entry mode",
		}, []string{"mode"}),
		llmLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "medibook",
			Subsystem: "negotiation",
			Name:      "llm_latency_seconds",
			Help:      "Latency of negotiation collaborator calls",
			Buckets:   prometheus.DefBuckets,
		}, []string{"op"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.proposeTotal, m.parseTotal, m.bookedTotal, m.llmLatency)
	return m
}

// ObservePropose records one slot proposal attempt. Outcome is "ok" when
// the collaborator answered, "fallback" when the fixed triple was served,
// or "no_doctor" when the doctor id did not resolve.
func (m *NegotiationMetrics) ObservePropose(outcome string) {
	if m == nil {
		return
	}
	m.proposeTotal.WithLabelValues(outcome).Inc()
}

// ObserveParse records one agentic parse attempt. Outcome is "ok",
// "rejected" (low confidence or unresolved doctor), or "error".
func (m *NegotiationMetrics) ObserveParse(outcome string) {
	if m == nil {
		return
	}
	m.parseTotal.WithLabelValues(outcome).Inc()
}

// ObserveBooked records one persisted appointment by entry mode
// ("structured" or "agentic").
func (m *NegotiationMetrics) ObserveBooked(mode string) {
	if m == nil {
		return
	}
	m.bookedTotal.WithLabelValues(mode).Inc()
}

// ObserveLLMLatency records the duration of one collaborator call.
func (m *NegotiationMetrics) ObserveLLMLatency(op string, seconds float64) {
	if m == nil {
		return
	}
	m.llmLatency.WithLabelValues(op).Observe(seconds)
}
