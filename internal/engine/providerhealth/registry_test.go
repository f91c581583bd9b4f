package providerhealth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DimaJoyti/go-coffee/solana-engine/internal/engine/alerts"
	"github.com/DimaJoyti/go-coffee/solana-engine/internal/engine/clockwork"
	"github.com/DimaJoyti/go-coffee/solana-engine/internal/engine/model"
)

type recordingMetrics struct {
	circuitStates map[string]int
	successRates  map[string]float64
	latencyObs    int
}

func newRecordingMetrics() *recordingMetrics {
	return &recordingMetrics{circuitStates: map[string]int{}, successRates: map[string]float64{}}
}

func (m *recordingMetrics) IncOpportunitySubmitted(string)            {}
func (m *recordingMetrics) IncOpportunityRejected(string)             {}
func (m *recordingMetrics) IncOpportunityExecuted(string, string)     {}
func (m *recordingMetrics) ObserveExecutionLatencyMs(string, float64) {}
func (m *recordingMetrics) ObserveProviderLatencyMs(provider string, ms float64) {
	m.latencyObs++
}
func (m *recordingMetrics) SetProviderSuccessRate(provider string, rate float64) {
	m.successRates[provider] = rate
}
func (m *recordingMetrics) SetCircuitState(scope string, phase int) {
	m.circuitStates[scope] = phase
}
func (m *recordingMetrics) SetPortfolioValue(float64) {}
func (m *recordingMetrics) SetDrawdownPct(float64)    {}

func newTestRegistry(t *testing.T, clock *clockwork.FakeClock) *Registry {
	t.Helper()
	r := NewRegistry(DefaultConfig(), clock, nil, nil)
	r.Register(model.Provider{Name: "P", Endpoint: "http://p", Active: true, Capabilities: map[model.Capability]struct{}{
		model.CapabilityStandardRpc: {},
	}})
	return r
}

// Scenario 3 (SPEC_FULL.md §8): failure_threshold=5, five consecutive
// Transient failures closed->open; after cooldown_ms, half-open; three
// consecutive successes close it.
func TestCircuitBreaker_OpensAfterThresholdFailuresAndRecoversAfterCooldown(t *testing.T) {
	clock := clockwork.NewFakeClock(time.Now())
	r := newTestRegistry(t, clock)

	for i := 0; i < 4; i++ {
		opened := r.RecordFailure("P", 1.0)
		assert.False(t, opened, "should not open before threshold")
	}
	opened := r.RecordFailure("P", 1.0)
	assert.True(t, opened, "fifth consecutive failure should open the circuit")

	state, ok := r.CircuitState("P")
	require.True(t, ok)
	assert.Equal(t, model.CircuitOpen, state.State)

	assert.False(t, r.IsEligible("P"), "no plan should target an open provider during cooldown")

	clock.Advance(DefaultConfig().Cooldown + time.Millisecond)

	state, ok = r.CircuitState("P")
	require.True(t, ok)
	assert.Equal(t, model.CircuitHalfOpen, state.State)

	r.RecordSuccess("P", 10*time.Millisecond)
	r.RecordSuccess("P", 10*time.Millisecond)
	closedNow := r.RecordSuccess("P", 10*time.Millisecond)

	assert.True(t, closedNow, "third consecutive half-open success should close the circuit")
	state, ok = r.CircuitState("P")
	require.True(t, ok)
	assert.Equal(t, model.CircuitClosed, state.State)
}

// Boundary behavior (§8): failure_count = threshold-1 stays Closed after one
// more success; = threshold transitions Open on the next failure.
func TestCircuitBreaker_BoundaryAtThresholdMinusOne(t *testing.T) {
	clock := clockwork.NewFakeClock(time.Now())
	r := newTestRegistry(t, clock)

	for i := 0; i < 4; i++ {
		r.RecordFailure("P", 1.0)
	}
	state, _ := r.CircuitState("P")
	assert.Equal(t, 4, state.FailureCount)
	assert.Equal(t, model.CircuitClosed, state.State)

	r.RecordSuccess("P", time.Millisecond)
	state, _ = r.CircuitState("P")
	assert.Equal(t, 0, state.FailureCount, "a success at threshold-1 resets the failure count")
	assert.Equal(t, model.CircuitClosed, state.State)
}

func TestHalfOpenFailure_ReopensCircuitImmediately(t *testing.T) {
	clock := clockwork.NewFakeClock(time.Now())
	r := newTestRegistry(t, clock)

	for i := 0; i < 5; i++ {
		r.RecordFailure("P", 1.0)
	}
	clock.Advance(DefaultConfig().Cooldown + time.Millisecond)
	r.CircuitState("P") // trigger Open->HalfOpen transition

	r.RecordSuccess("P", time.Millisecond)
	opened := r.RecordFailure("P", 1.0)

	assert.True(t, opened)
	state, _ := r.CircuitState("P")
	assert.Equal(t, model.CircuitOpen, state.State)
}

func TestManuallyDisabled_WinsOverHealthDerivedActive(t *testing.T) {
	clock := clockwork.NewFakeClock(time.Now())
	r := newTestRegistry(t, clock)

	assert.True(t, r.IsEligible("P"))

	r.SetManuallyDisabled("P", true)
	assert.False(t, r.IsEligible("P"))

	// Even after enough successes to look healthy again, manual disable wins.
	r.RecordSuccess("P", time.Millisecond)
	assert.False(t, r.IsEligible("P"))

	r.SetManuallyDisabled("P", false)
	assert.True(t, r.IsEligible("P"))
}

// §7: a provider circuit transition must emit CircuitOpened{provider,reason}
// / CircuitClosed{provider} and update the per-provider circuit_state gauge,
// the same way the global drawdown circuit does in risk.Engine.
func TestCircuitBreaker_TransitionsEmitAlertsAndMetrics(t *testing.T) {
	clock := clockwork.NewFakeClock(time.Now())
	m := newRecordingMetrics()
	alertMgr := alerts.NewManager(16, nil)
	r := NewRegistry(DefaultConfig(), clock, m, alertMgr)
	r.Register(model.Provider{Name: "P", Active: true, Capabilities: map[model.Capability]struct{}{
		model.CapabilityStandardRpc: {},
	}})

	for i := 0; i < 5; i++ {
		r.RecordFailure("P", 1.0)
	}
	assert.Equal(t, 2, m.circuitStates["P"], "Open must be reported as gauge value 2")

	opened := 0
	for _, ev := range alertMgr.Recent() {
		if ev.Type == alerts.CircuitOpened && ev.Fields["provider"] == "P" {
			opened++
		}
	}
	assert.Equal(t, 1, opened, "CircuitOpened{provider=P,reason} must be emitted on Closed->Open")

	clock.Advance(DefaultConfig().Cooldown + time.Millisecond)
	r.CircuitState("P") // Open->HalfOpen
	r.RecordSuccess("P", time.Millisecond)
	r.RecordSuccess("P", time.Millisecond)
	r.RecordSuccess("P", time.Millisecond)

	assert.Equal(t, 0, m.circuitStates["P"], "Closed must be reported as gauge value 0")
	assert.Greater(t, m.latencyObs, 0, "provider_latency_ms must be observed on success")
	assert.Contains(t, m.successRates, "P")

	closed := 0
	for _, ev := range alertMgr.Recent() {
		if ev.Type == alerts.CircuitClosed && ev.Fields["provider"] == "P" {
			closed++
		}
	}
	assert.Equal(t, 1, closed, "CircuitClosed{provider=P} must be emitted on HalfOpen->Closed")
}

func TestApplyActiveFlag_DeactivatesBelowThresholdAndNeverAutoReactivates(t *testing.T) {
	clock := clockwork.NewFakeClock(time.Now())
	r := newTestRegistry(t, clock)

	for i := 0; i < 10; i++ {
		r.RecordFailure("P", 1.0)
	}
	p, ok := r.Get("P")
	require.True(t, ok)
	assert.False(t, p.Active)

	r.RecordSuccess("P", time.Millisecond)
	p, ok = r.Get("P")
	require.True(t, ok)
	assert.False(t, p.Active, "health never auto-reactivates a deactivated provider")
}
