package metrics

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPrometheusSink_RegistersAllSeriesWithoutPanicking(t *testing.T) {
	require.NotPanics(t, func() {
		NewPrometheusSink()
	})
}

func TestPrometheusSink_HandlerExposesRecordedSeries(t *testing.T) {
	s := NewPrometheusSink()
	s.IncOpportunitySubmitted("Triangular")
	s.IncOpportunityRejected("MinProfit")
	s.IncOpportunityExecuted("CrossVenue", "Success")
	s.ObserveExecutionLatencyMs("Triangular", 42.0)
	s.ObserveProviderLatencyMs("jito", 5.0)
	s.SetProviderSuccessRate("jito", 0.95)
	s.SetCircuitState("global", 1)
	s.SetPortfolioValue(1234.5)
	s.SetDrawdownPct(0.05)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/metrics", nil)
	s.Handler().ServeHTTP(rec, req)

	body := rec.Body.String()
	assert.Contains(t, body, "opportunity_submitted_total")
	assert.Contains(t, body, "opportunity_rejected_total")
	assert.Contains(t, body, "opportunity_executed_total")
	assert.Contains(t, body, "execution_latency_ms")
	assert.Contains(t, body, "provider_latency_ms")
	assert.Contains(t, body, "provider_success_rate")
	assert.Contains(t, body, "circuit_state")
	assert.Contains(t, body, "portfolio_value 1234.5")
	assert.Contains(t, body, "drawdown_pct 0.05")
}

func TestCircuitGaugeValue_MapsPhaseToFixedEncoding(t *testing.T) {
	assert.Equal(t, 0, CircuitGaugeValue(true, false, false))
	assert.Equal(t, 1, CircuitGaugeValue(false, true, false))
	assert.Equal(t, 2, CircuitGaugeValue(false, false, true))
}

func TestPrometheusSink_TwoInstancesDoNotCollide(t *testing.T) {
	a := NewPrometheusSink()
	b := NewPrometheusSink()

	a.SetPortfolioValue(1)
	b.SetPortfolioValue(2)

	recA := httptest.NewRecorder()
	a.Handler().ServeHTTP(recA, httptest.NewRequest("GET", "/metrics", nil))
	recB := httptest.NewRecorder()
	b.Handler().ServeHTTP(recB, httptest.NewRequest("GET", "/metrics", nil))

	assert.True(t, strings.Contains(recA.Body.String(), "portfolio_value 1"))
	assert.True(t, strings.Contains(recB.Body.String(), "portfolio_value 2"))
}
