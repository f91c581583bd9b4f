// Package providerhealth implements the provider registry and per-provider
// circuit breaker (§3 Provider, §4.4 "Per-provider circuit"), grounded on the
// teacher's private_mempool_client.go retry/health bookkeeping style.
package providerhealth

import (
	"sync"
	"time"

	"github.com/DimaJoyti/go-coffee/solana-engine/internal/engine/alerts"
	"github.com/DimaJoyti/go-coffee/solana-engine/internal/engine/clockwork"
	"github.com/DimaJoyti/go-coffee/solana-engine/internal/engine/metrics"
	"github.com/DimaJoyti/go-coffee/solana-engine/internal/engine/model"
)

// Config tunes the per-provider circuit breaker (§6 provider.* keys).
type Config struct {
	FailureThreshold int
	Cooldown         time.Duration
	HalfOpenProbes   int
	// DeactivationThreshold is the success EWMA below which a provider is
	// marked inactive by health (§3 Provider invariant).
	DeactivationThreshold float64
	// EwmaAlpha is the smoothing factor for latency/success EWMAs.
	EwmaAlpha float64
}

// DefaultConfig mirrors reasonable defaults seen in the teacher's mempool client.
func DefaultConfig() Config {
	return Config{
		FailureThreshold:      5,
		Cooldown:              30 * time.Second,
		HalfOpenProbes:        3,
		DeactivationThreshold: 0.5,
		EwmaAlpha:             0.2,
	}
}

type entry struct {
	provider model.Provider
	breaker  *breaker
	// manuallyDisabled tracks an operator override; it always takes
	// precedence over the health-derived `active` flag (Open Question #2,
	// resolved in DESIGN.md: manual disable wins over health reactivation).
	manuallyDisabled bool
}

// breaker is the per-provider circuit breaker state machine (§4.4).
type breaker struct {
	mu                sync.Mutex
	state             model.CircuitPhase
	failureCount      int
	openedAt          time.Time
	halfOpenSuccesses int
}

// Registry is the concurrent provider map: per-entry exclusive write lock
// for health updates, many concurrent readers (§5 "Shared resources").
type Registry struct {
	cfg       Config
	clock     clockwork.Clock
	metrics   metrics.Sink
	alertSink alerts.Sink

	mu      sync.RWMutex
	entries map[string]*entry
}

// NewRegistry builds an empty provider registry. m and alertSink may be nil
// in tests that don't exercise the metric/alert paths.
func NewRegistry(cfg Config, clock clockwork.Clock, m metrics.Sink, alertSink alerts.Sink) *Registry {
	return &Registry{cfg: cfg, clock: clock, metrics: m, alertSink: alertSink, entries: make(map[string]*entry)}
}

// Register adds or replaces a provider's static description, starting its
// circuit Closed.
func (r *Registry) Register(p model.Provider) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[p.Name] = &entry{
		provider: p,
		breaker:  &breaker{state: model.CircuitClosed},
	}
}

// Get returns a snapshot copy of a provider's current description.
func (r *Registry) Get(name string) (model.Provider, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.entries[name]
	if !ok {
		return model.Provider{}, false
	}
	return e.provider, true
}

// All returns a snapshot of every registered provider.
func (r *Registry) All() []model.Provider {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]model.Provider, 0, len(r.entries))
	for _, e := range r.entries {
		out = append(out, e.provider)
	}
	return out
}

// CircuitState returns the breaker state for a provider, advancing
// Open→HalfOpen if the cooldown has elapsed (§4.4, §3 CircuitState invariant).
func (r *Registry) CircuitState(name string) (model.CircuitState, bool) {
	r.mu.RLock()
	e, ok := r.entries[name]
	r.mu.RUnlock()
	if !ok {
		return model.CircuitState{}, false
	}
	r.maybeTransitionToHalfOpen(e.breaker)

	e.breaker.mu.Lock()
	defer e.breaker.mu.Unlock()
	return model.CircuitState{
		Scope:          name,
		State:          e.breaker.state,
		FailureCount:   e.breaker.failureCount,
		OpenedAt:       e.breaker.openedAt,
		HalfOpenProbes: e.breaker.halfOpenSuccesses,
	}, true
}

func (r *Registry) maybeTransitionToHalfOpen(b *breaker) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.state == model.CircuitOpen && r.clock.Now().Sub(b.openedAt) >= r.cfg.Cooldown {
		b.state = model.CircuitHalfOpen
		b.halfOpenSuccesses = 0
	}
}

// IsEligible reports whether a provider may be targeted by a new plan: it
// must be active (health AND not manually disabled) and its circuit must not
// be Open (§4.4 "router must not select a provider whose circuit is Open").
func (r *Registry) IsEligible(name string) bool {
	r.mu.RLock()
	e, ok := r.entries[name]
	r.mu.RUnlock()
	if !ok {
		return false
	}
	if e.manuallyDisabled || !e.provider.Active {
		return false
	}
	r.maybeTransitionToHalfOpen(e.breaker)
	e.breaker.mu.Lock()
	defer e.breaker.mu.Unlock()
	return e.breaker.state != model.CircuitOpen
}

// SetManuallyDisabled applies or clears an operator override. A manual
// disable always wins over health-derived reactivation.
func (r *Registry) SetManuallyDisabled(name string, disabled bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if e, ok := r.entries[name]; ok {
		e.manuallyDisabled = disabled
	}
}

// RecordSuccess updates latency/success EWMAs and advances the circuit
// breaker on success (§4.4 HalfOpen admits up to halfopen_probes).
func (r *Registry) RecordSuccess(name string, latency time.Duration) (closedNow bool) {
	r.mu.Lock()
	e, ok := r.entries[name]
	r.mu.Unlock()
	if !ok {
		return false
	}

	e.provider.LatencyEwma = ewmaDuration(e.provider.LatencyEwma, latency, r.cfg.EwmaAlpha)
	e.provider.SuccessEwma = ewmaFloat(e.provider.SuccessEwma, 1.0, r.cfg.EwmaAlpha)
	e.provider.LastUsedAt = r.clock.Now()
	r.applyActiveFlag(e)

	if r.metrics != nil {
		r.metrics.ObserveProviderLatencyMs(name, float64(latency.Milliseconds()))
		r.metrics.SetProviderSuccessRate(name, e.provider.SuccessEwma)
	}

	e.breaker.mu.Lock()
	switch e.breaker.state {
	case model.CircuitHalfOpen:
		e.breaker.halfOpenSuccesses++
		if e.breaker.halfOpenSuccesses >= r.cfg.HalfOpenProbes {
			e.breaker.state = model.CircuitClosed
			e.breaker.failureCount = 0
			e.breaker.halfOpenSuccesses = 0
			closedNow = true
		}
	case model.CircuitClosed:
		e.breaker.failureCount = 0
	}
	e.breaker.mu.Unlock()

	if closedNow {
		r.emitCircuitTransition(name, model.CircuitClosed, "")
	}
	return closedNow
}

// RecordFailure updates EWMAs with a weighted failure and advances the
// breaker, returning true if this call transitioned it to Open.
func (r *Registry) RecordFailure(name string, weight float64) (openedNow bool) {
	r.mu.Lock()
	e, ok := r.entries[name]
	r.mu.Unlock()
	if !ok {
		return false
	}

	e.provider.SuccessEwma = ewmaFloat(e.provider.SuccessEwma, 0.0, r.cfg.EwmaAlpha*weight)
	e.provider.LastUsedAt = r.clock.Now()
	r.applyActiveFlag(e)

	if r.metrics != nil {
		r.metrics.SetProviderSuccessRate(name, e.provider.SuccessEwma)
	}

	if weight <= 0 {
		return false
	}

	var reason string
	e.breaker.mu.Lock()
	switch e.breaker.state {
	case model.CircuitHalfOpen:
		e.breaker.state = model.CircuitOpen
		e.breaker.openedAt = r.clock.Now()
		e.breaker.failureCount++
		openedNow = true
		reason = "half_open_probe_failed"
	case model.CircuitClosed:
		e.breaker.failureCount++
		if e.breaker.failureCount >= r.cfg.FailureThreshold {
			e.breaker.state = model.CircuitOpen
			e.breaker.openedAt = r.clock.Now()
			openedNow = true
			reason = "failure_threshold_exceeded"
		}
	}
	e.breaker.mu.Unlock()

	if openedNow {
		r.emitCircuitTransition(name, model.CircuitOpen, reason)
	}
	return openedNow
}

// emitCircuitTransition reports a per-provider circuit state change on the
// §6 circuit_state{scope} gauge and as a CircuitOpened/CircuitClosed alert
// (§7), mirroring the global circuit's emission in risk.Engine.
func (r *Registry) emitCircuitTransition(name string, state model.CircuitPhase, reason string) {
	if r.metrics != nil {
		r.metrics.SetCircuitState(name, metrics.CircuitGaugeValue(
			state == model.CircuitClosed, state == model.CircuitHalfOpen, state == model.CircuitOpen,
		))
	}
	if r.alertSink == nil {
		return
	}
	switch state {
	case model.CircuitOpen:
		r.alertSink.Emit(alerts.Event{
			Type:     alerts.CircuitOpened,
			Severity: alerts.SeverityWarning,
			Message:  name,
			Fields:   map[string]string{"provider": name, "reason": reason},
		})
	case model.CircuitClosed:
		r.alertSink.Emit(alerts.Event{
			Type:     alerts.CircuitClosed,
			Severity: alerts.SeverityInfo,
			Message:  name,
			Fields:   map[string]string{"provider": name},
		})
	}
}

// applyActiveFlag deactivates a provider by health once its success EWMA
// drops below the configured threshold (§3 invariant). It never reactivates
// automatically (Open Question #2): manual re-enable is required, matching
// the teacher's one-way deactivation in private_mempool_client.go.
func (r *Registry) applyActiveFlag(e *entry) {
	if e.provider.SuccessEwma < r.cfg.DeactivationThreshold {
		e.provider.Active = false
	}
}

func ewmaFloat(prev, sample, alpha float64) float64 {
	if alpha <= 0 {
		alpha = 0.2
	}
	if alpha > 1 {
		alpha = 1
	}
	return alpha*sample + (1-alpha)*prev
}

func ewmaDuration(prev, sample time.Duration, alpha float64) time.Duration {
	return time.Duration(ewmaFloat(float64(prev), float64(sample), alpha))
}
