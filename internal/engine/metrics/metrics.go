// Package metrics implements the MetricsSink consumed interface (§6) on top
// of github.com/prometheus/client_golang, following the registration style of
// internal/monitoring/observability.go.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Sink is the MetricsSink consumed interface: counters, histograms, gauges
// with the stable names and units fixed in SPEC_FULL.md §6.
type Sink interface {
	IncOpportunitySubmitted(kind string)
	IncOpportunityRejected(reason string)
	IncOpportunityExecuted(kind, result string)
	ObserveExecutionLatencyMs(kind string, ms float64)
	ObserveProviderLatencyMs(provider string, ms float64)
	SetProviderSuccessRate(provider string, rate float64)
	SetCircuitState(scope string, phase int)
	SetPortfolioValue(value float64)
	SetDrawdownPct(pct float64)
}

// CircuitGaugeValue maps a CircuitPhase to the fixed gauge encoding in §6.
func CircuitGaugeValue(closed, halfOpen, open bool) int {
	switch {
	case open:
		return 2
	case halfOpen:
		return 1
	default:
		return 0
	}
}

// PrometheusSink is the production Sink, registered on a private registry so
// multiple engine instances in one process never collide.
type PrometheusSink struct {
	registry *prometheus.Registry

	opportunitySubmitted *prometheus.CounterVec
	opportunityRejected  *prometheus.CounterVec
	opportunityExecuted  *prometheus.CounterVec
	executionLatencyMs   *prometheus.HistogramVec
	providerLatencyMs    *prometheus.HistogramVec
	providerSuccessRate  *prometheus.GaugeVec
	circuitState         *prometheus.GaugeVec
	portfolioValue       prometheus.Gauge
	drawdownPct          prometheus.Gauge
}

// NewPrometheusSink builds and registers all engine metrics.
func NewPrometheusSink() *PrometheusSink {
	reg := prometheus.NewRegistry()

	s := &PrometheusSink{
		registry: reg,
		opportunitySubmitted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "opportunity_submitted_total",
			Help: "Opportunities submitted to the priority scheduler, by kind.",
		}, []string{"kind"}),
		opportunityRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "opportunity_rejected_total",
			Help: "Opportunities rejected at submission, by reason.",
		}, []string{"reason"}),
		opportunityExecuted: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "opportunity_executed_total",
			Help: "Opportunities driven to a terminal execution outcome.",
		}, []string{"kind", "result"}),
		executionLatencyMs: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "execution_latency_ms",
			Help:    "End-to-end execution latency in milliseconds, by opportunity kind.",
			Buckets: prometheus.ExponentialBuckets(5, 2, 12),
		}, []string{"kind"}),
		providerLatencyMs: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "provider_latency_ms",
			Help:    "Observed provider round-trip latency in milliseconds.",
			Buckets: prometheus.DefBuckets,
		}, []string{"provider"}),
		providerSuccessRate: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "provider_success_rate",
			Help: "Provider success EWMA in [0,1].",
		}, []string{"provider"}),
		circuitState: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "circuit_state",
			Help: "Circuit breaker state: 0=Closed,1=HalfOpen,2=Open.",
		}, []string{"scope"}),
		portfolioValue: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "portfolio_value",
			Help: "Current total portfolio value.",
		}),
		drawdownPct: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "drawdown_pct",
			Help: "Current fractional drawdown from peak portfolio value.",
		}),
	}

	reg.MustRegister(
		s.opportunitySubmitted,
		s.opportunityRejected,
		s.opportunityExecuted,
		s.executionLatencyMs,
		s.providerLatencyMs,
		s.providerSuccessRate,
		s.circuitState,
		s.portfolioValue,
		s.drawdownPct,
	)

	return s
}

// Handler exposes the registered metrics for scraping.
func (s *PrometheusSink) Handler() http.Handler {
	return promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{})
}

func (s *PrometheusSink) IncOpportunitySubmitted(kind string) {
	s.opportunitySubmitted.WithLabelValues(kind).Inc()
}

func (s *PrometheusSink) IncOpportunityRejected(reason string) {
	s.opportunityRejected.WithLabelValues(reason).Inc()
}

func (s *PrometheusSink) IncOpportunityExecuted(kind, result string) {
	s.opportunityExecuted.WithLabelValues(kind, result).Inc()
}

func (s *PrometheusSink) ObserveExecutionLatencyMs(kind string, ms float64) {
	s.executionLatencyMs.WithLabelValues(kind).Observe(ms)
}

func (s *PrometheusSink) ObserveProviderLatencyMs(provider string, ms float64) {
	s.providerLatencyMs.WithLabelValues(provider).Observe(ms)
}

func (s *PrometheusSink) SetProviderSuccessRate(provider string, rate float64) {
	s.providerSuccessRate.WithLabelValues(provider).Set(rate)
}

func (s *PrometheusSink) SetCircuitState(scope string, phase int) {
	s.circuitState.WithLabelValues(scope).Set(float64(phase))
}

func (s *PrometheusSink) SetPortfolioValue(value float64) {
	s.portfolioValue.Set(value)
}

func (s *PrometheusSink) SetDrawdownPct(pct float64) {
	s.drawdownPct.Set(pct)
}
