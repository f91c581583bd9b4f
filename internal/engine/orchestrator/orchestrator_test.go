package orchestrator

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DimaJoyti/go-coffee/solana-engine/internal/engine/alerts"
	"github.com/DimaJoyti/go-coffee/solana-engine/internal/engine/arbitrage"
	"github.com/DimaJoyti/go-coffee/solana-engine/internal/engine/clockwork"
	"github.com/DimaJoyti/go-coffee/solana-engine/internal/engine/execution"
	"github.com/DimaJoyti/go-coffee/solana-engine/internal/engine/model"
	"github.com/DimaJoyti/go-coffee/solana-engine/internal/engine/ports"
	"github.com/DimaJoyti/go-coffee/solana-engine/internal/engine/risk"
	"github.com/DimaJoyti/go-coffee/solana-engine/internal/engine/router"
	"github.com/DimaJoyti/go-coffee/solana-engine/internal/engine/scheduler"
	"github.com/DimaJoyti/go-coffee/solana-engine/internal/engine/snipe"
)

type stubQuotes struct{}

func (stubQuotes) GetQuote(ctx context.Context, inputMint, outputMint string, amount decimal.Decimal, slippageBps int) (ports.Quote, error) {
	return ports.Quote{InputAmount: amount, OutputAmount: amount, Plan: "plan"}, nil
}

func (stubQuotes) BuildSwap(ctx context.Context, plan string) ([]string, error) {
	return []string{"tx"}, nil
}

type stubSubmitter struct{}

func (stubSubmitter) Name() string { return "P" }
func (stubSubmitter) Submit(ctx context.Context, transactions []string, tip decimal.Decimal, urgency string) (ports.SubmitResult, error) {
	return ports.SubmitResult{BundleID: "sig"}, nil
}
func (stubSubmitter) Confirm(ctx context.Context, bundleID string, timeout time.Duration) (ports.ConfirmResult, error) {
	return ports.ConfirmResult{Success: true, ExecutedPrice: decimal.NewFromInt(1), ExecutedQty: decimal.NewFromInt(1)}, nil
}

type stubRpc struct{}

func (stubRpc) Call(ctx context.Context, method string, params map[string]any) (map[string]any, error) {
	return nil, nil
}
func (stubRpc) FeeEstimate(ctx context.Context, urgency string) (ports.FeeEstimate, error) {
	return ports.FeeEstimate{FeeLamports: decimal.NewFromInt(5000), Confidence: 0.9}, nil
}

type recordingPersistence struct {
	outcomes int
}

func (r *recordingPersistence) RecordOutcome(ctx context.Context, kind string, outcome any) error {
	r.outcomes++
	return nil
}
func (r *recordingPersistence) RecordPortfolioSnapshot(ctx context.Context, snapshot any) error {
	return nil
}

func newTestEngine(t *testing.T, persistence ports.PersistenceSink) (*Engine, *clockwork.FakeClock) {
	t.Helper()
	clock := clockwork.NewFakeClock(time.Now())
	providers := []model.Provider{{
		Name: "P", Active: true,
		Capabilities: map[model.Capability]struct{}{model.CapabilityStandardRpc: {}},
	}}
	deps := Dependencies{
		Clock:       clock,
		Random:      clockwork.NewFakeRandomSource(0.1),
		Quotes:      stubQuotes{},
		Submitters:  map[string]ports.BundleSubmitter{"P": stubSubmitter{}},
		Rpc:         stubRpc{},
		Persistence: persistence,
		Blacklist:   snipe.NewMapBlacklist(),
		Metrics:     nil,
		AlertMgr:    alerts.NewManager(16, nil),
	}
	cfg := Config{
		Workers:   1,
		Scheduler: scheduler.DefaultConfig(),
		Risk:      risk.DefaultConfig(),
		Router:    router.DefaultConfig(),
		Retry:     execution.RetryConfig{BaseMs: 10, CapMs: 100, MaxAttempts: 1},
		Mev:       execution.MevConfig{},
		Sniper:    snipe.DefaultConfig(),
		Arbitrage: arbitrage.DefaultConfig(),
	}
	return New(cfg, providers, deps, nil), clock
}

func testOpp(now time.Time) *model.Opportunity {
	return &model.Opportunity{
		ID: "o1", Kind: model.KindManualTarget, Symbols: []string{"SOL", "USDC"},
		InputAmount: decimal.NewFromInt(100), ExpectedOutput: decimal.NewFromInt(101),
		ExpectedProfit: decimal.NewFromInt(1), Confidence: 0.9,
		Urgency: model.UrgencyNormal, CreatedAt: now, Deadline: now.Add(time.Hour),
	}
}

func TestSubmitOpportunity_RejectsInvalidOpportunity(t *testing.T) {
	e, clock := newTestEngine(t, nil)
	o := testOpp(clock.Now())
	o.Deadline = o.CreatedAt // invalid: deadline must be after created_at

	result := e.SubmitOpportunity(o)

	assert.False(t, result.Accepted)
}

func TestSubmitOpportunity_AcceptsValidOpportunity(t *testing.T) {
	e, clock := newTestEngine(t, nil)

	result := e.SubmitOpportunity(testOpp(clock.Now()))

	assert.True(t, result.Accepted)
	assert.Equal(t, 1, e.Stats().QueueDepth)
}

// §4.6: a triangular cycle that clears the detector's profit floor must
// reach the scheduler queue without any direct caller involvement.
func TestSubmitTriangularCycle_ForwardsClearedOpportunityToScheduler(t *testing.T) {
	e, _ := newTestEngine(t, nil)

	symbols := [3]string{"X", "Y", "Z"}
	venues := [3]string{"A", "B", "C"}
	result := e.SubmitTriangularCycle(symbols, venues,
		decimal.NewFromFloat(1.01), decimal.NewFromFloat(1.01), decimal.NewFromFloat(0.99),
		decimal.NewFromInt(1000))

	assert.True(t, result.Accepted)
	assert.Equal(t, 1, e.Stats().QueueDepth)
}

// The same cycle submitted twice must be rejected the second time: the
// detector's idempotence guard, not scheduler dedup, is what prevents the
// resubmission.
func TestSubmitTriangularCycle_RejectsDuplicateIdOnSecondObservation(t *testing.T) {
	e, _ := newTestEngine(t, nil)

	symbols := [3]string{"X", "Y", "Z"}
	venues := [3]string{"A", "B", "C"}
	rateA, rateB, rateC := decimal.NewFromFloat(1.01), decimal.NewFromFloat(1.01), decimal.NewFromFloat(0.99)
	amount := decimal.NewFromInt(1000)

	first := e.SubmitTriangularCycle(symbols, venues, rateA, rateB, rateC, amount)
	second := e.SubmitTriangularCycle(symbols, venues, rateA, rateB, rateC, amount)

	assert.True(t, first.Accepted)
	assert.False(t, second.Accepted)
	assert.Equal(t, RejectDuplicateOpportunity, second.Reason)
}

func TestSubmitCrossVenuePrices_RejectsWhenSpreadNeverClearsTheMargin(t *testing.T) {
	e, _ := newTestEngine(t, nil)

	result := e.SubmitCrossVenuePrices("SOL", "A", "B",
		decimal.NewFromFloat(1.000), decimal.NewFromFloat(1.0005), decimal.NewFromInt(1000))

	assert.False(t, result.Accepted)
	assert.Equal(t, RejectNoOpportunity, result.Reason)
}

func TestSubmitCrossVenuePrices_ForwardsClearedSpreadToScheduler(t *testing.T) {
	e, _ := newTestEngine(t, nil)

	result := e.SubmitCrossVenuePrices("SOL", "A", "B",
		decimal.NewFromFloat(1.000), decimal.NewFromFloat(1.010), decimal.NewFromInt(1000))

	assert.True(t, result.Accepted)
	assert.Equal(t, 1, e.Stats().QueueDepth)
}

func TestObserveVenuePrice_ForwardsOutlierToScheduler(t *testing.T) {
	e, _ := newTestEngine(t, nil)

	for _, p := range []float64{1.0, 1.0, 1.0, 1.0, 1.0} {
		result := e.ObserveVenuePrice("SOL", decimal.NewFromFloat(p), decimal.NewFromInt(1000))
		assert.False(t, result.Accepted)
	}

	result := e.ObserveVenuePrice("SOL", decimal.NewFromFloat(5.0), decimal.NewFromInt(1000))
	assert.True(t, result.Accepted)
}

func TestRunDrivesSubmittedOpportunityToCompletion(t *testing.T) {
	persistence := &recordingPersistence{}
	e, clock := newTestEngine(t, persistence)

	require.True(t, e.SubmitOpportunity(testOpp(clock.Now())).Accepted)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		e.Run(ctx)
		close(done)
	}()

	deadline := time.Now().Add(2 * time.Second)
	for persistence.outcomes == 0 && time.Now().Before(deadline) {
		time.Sleep(time.Millisecond)
	}

	cancel()
	<-done

	assert.Equal(t, 1, persistence.outcomes)
	assert.Equal(t, 0, e.Stats().QueueDepth)
}

func TestHaltAndResume_GateApprovalViaTheRiskEngine(t *testing.T) {
	e, clock := newTestEngine(t, nil)

	e.Halt()
	assert.True(t, e.Stats().Halted)
	assert.Equal(t, risk.HaltManual, e.Stats().HaltReason)

	result := e.SubmitOpportunity(testOpp(clock.Now()))
	assert.False(t, result.Accepted, "scheduler must reject submissions while the risk engine is halted")

	e.Resume()
	assert.False(t, e.Stats().Halted)
	assert.True(t, e.SubmitOpportunity(testOpp(clock.Now())).Accepted)
}

func TestSnapshotPortfolio_ReflectsRiskEngineState(t *testing.T) {
	e, _ := newTestEngine(t, nil)
	snap := e.SnapshotPortfolio()
	assert.True(t, snap.TotalValue.Equal(decimal.Zero))
}

func TestStats_ReportsRegisteredProviderHealth(t *testing.T) {
	e, _ := newTestEngine(t, nil)
	stats := e.Stats()
	require.Len(t, stats.Providers, 1)
	assert.Equal(t, "P", stats.Providers[0].Name)
	assert.Equal(t, model.CircuitClosed, stats.Providers[0].CircuitState)
}
