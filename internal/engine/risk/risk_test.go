package risk

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DimaJoyti/go-coffee/solana-engine/internal/engine/alerts"
	"github.com/DimaJoyti/go-coffee/solana-engine/internal/engine/clockwork"
	"github.com/DimaJoyti/go-coffee/solana-engine/internal/engine/model"
)

func testOpportunity(profit decimal.Decimal) *model.Opportunity {
	return &model.Opportunity{
		ID:             "o1",
		Kind:           model.KindManualTarget,
		Symbols:        []string{"SOL"},
		ExpectedProfit: profit,
		Confidence:     0.9,
	}
}

// Scenario 5 (SPEC_FULL.md §8): peak_value=100, total_value=79,
// max_drawdown=0.20. drawdown=0.21>=0.20 -> global circuit opens; all
// subsequent approvals are Rejected{Halted} until explicit resume;
// CircuitOpened{global,"drawdown"} emitted once.
func TestGlobalDrawdownHalt_LiteralScenario(t *testing.T) {
	clock := clockwork.NewFakeClock(time.Now())
	alertMgr := alerts.NewManager(16, nil)

	portfolio := model.NewPortfolio(decimal.NewFromInt(100))
	portfolio.PeakValue = decimal.NewFromInt(100)
	portfolio.AvailableCash = decimal.NewFromInt(79)
	portfolio.TotalValue = decimal.NewFromInt(79)

	cfg := DefaultConfig()
	cfg.MaxDrawdown = 0.20
	e := New(cfg, clock, nil, alertMgr, portfolio, nil)

	assert.InDelta(t, 0.21, portfolio.Drawdown().InexactFloat64(), 1e-9)

	// Any outcome re-evaluates halts; zero-delta outcome suffices to trigger it.
	e.ApplyOutcome(testOpportunity(decimal.Zero), model.ExecutionOutcome{Success: true})

	assert.True(t, e.IsHalted())
	assert.Equal(t, HaltDrawdown, e.HaltReasonValue())

	approval := e.Approve(testOpportunity(decimal.NewFromInt(1)), 1, 1, 1)
	assert.False(t, approval.Approved)
	assert.Equal(t, RejectHalted, approval.Reason)

	opened := 0
	for _, ev := range alertMgr.Recent() {
		if ev.Type == alerts.CircuitOpened {
			opened++
		}
	}
	assert.Equal(t, 1, opened, "CircuitOpened{global,drawdown} must be emitted exactly once")

	e.Resume()
	assert.False(t, e.IsHalted())
	approval = e.Approve(testOpportunity(decimal.NewFromInt(1)), 1, 1, 1)
	assert.True(t, approval.Approved)
}

// Round-trip law (§8-b): rejecting a dequeued opportunity via policy does not
// mutate the Portfolio.
func TestApprove_RejectionDoesNotMutatePortfolio(t *testing.T) {
	clock := clockwork.NewFakeClock(time.Now())
	portfolio := model.NewPortfolio(decimal.NewFromInt(1000))
	cfg := DefaultConfig()
	cfg.MinProfitThreshold = decimal.NewFromInt(10)
	e := New(cfg, clock, nil, nil, portfolio, nil)

	before := portfolio.Snapshot()
	approval := e.Approve(testOpportunity(decimal.NewFromInt(1)), 1, 1, 1)

	assert.False(t, approval.Approved)
	assert.Equal(t, RejectMinProfit, approval.Reason)
	after := e.Snapshot()
	assert.True(t, before.TotalValue.Equal(after.TotalValue))
	assert.True(t, before.AvailableCash.Equal(after.AvailableCash))
}

// Quantified invariant (§8-ii): peak_value_new >= peak_value_old across
// portfolio updates.
func TestApplyOutcome_PeakValueNeverDecreases(t *testing.T) {
	clock := clockwork.NewFakeClock(time.Now())
	portfolio := model.NewPortfolio(decimal.NewFromInt(1000))
	e := New(DefaultConfig(), clock, nil, nil, portfolio, nil)

	peakBefore := e.Snapshot().PeakValue

	e.ApplyOutcome(testOpportunity(decimal.Zero), model.ExecutionOutcome{
		Success: true, ExecutedQty: decimal.NewFromInt(1), ExecutedPrice: decimal.NewFromInt(50), Fees: decimal.NewFromInt(5),
	})
	peakAfterGain := e.Snapshot().PeakValue
	assert.True(t, peakAfterGain.GreaterThanOrEqual(peakBefore))

	e.ApplyOutcome(testOpportunity(decimal.Zero), model.ExecutionOutcome{
		Success: false, Fees: decimal.NewFromInt(500),
	})
	peakAfterLoss := e.Snapshot().PeakValue
	assert.True(t, peakAfterLoss.GreaterThanOrEqual(peakAfterGain), "peak value must not decrease even after a loss")
}

// Quantified invariant (§8-v): daily counters reset exactly once per day
// boundary transition.
func TestApplyOutcome_DailyCountersResetExactlyOnceAtDayBoundary(t *testing.T) {
	start := time.Date(2026, 1, 1, 23, 59, 0, 0, time.UTC)
	clock := clockwork.NewFakeClock(start)
	portfolio := model.NewPortfolio(decimal.NewFromInt(1000))
	e := New(DefaultConfig(), clock, nil, nil, portfolio, nil)

	e.ApplyOutcome(testOpportunity(decimal.Zero), model.ExecutionOutcome{
		Success: true, ExecutedQty: decimal.NewFromInt(1), ExecutedPrice: decimal.NewFromInt(110), Fees: decimal.NewFromInt(10),
	})
	beforeRoll := e.Snapshot().DailyPnL
	assert.False(t, beforeRoll.IsZero())

	clock.Advance(2 * time.Minute) // crosses midnight exactly once
	e.ApplyOutcome(testOpportunity(decimal.Zero), model.ExecutionOutcome{Success: true})

	afterRoll := e.Snapshot().DailyPnL
	assert.True(t, afterRoll.LessThan(beforeRoll) || afterRoll.Equal(decimal.Zero))
}

func TestApprove_RejectsBelowVelocityLimit(t *testing.T) {
	clock := clockwork.NewFakeClock(time.Now())
	portfolio := model.NewPortfolio(decimal.NewFromInt(1000))
	cfg := DefaultConfig()
	cfg.MinSymbolInterval = time.Minute
	e := New(cfg, clock, nil, nil, portfolio, nil)

	o := testOpportunity(decimal.NewFromInt(1))
	require.True(t, e.Approve(o, 1, 1, 1).Approved)
	e.ApplyOutcome(o, model.ExecutionOutcome{Success: true})

	again := e.Approve(o, 1, 1, 1)
	assert.False(t, again.Approved)
	assert.Equal(t, RejectVelocity, again.Reason)

	clock.Advance(2 * time.Minute)
	later := e.Approve(o, 1, 1, 1)
	assert.True(t, later.Approved)
}

func TestApprove_RejectsWhenGasCostExceedsConfiguredCeiling(t *testing.T) {
	clock := clockwork.NewFakeClock(time.Now())
	portfolio := model.NewPortfolio(decimal.NewFromInt(1000))
	cfg := DefaultConfig()
	cfg.MaxGasCost = decimal.NewFromInt(5)
	e := New(cfg, clock, nil, nil, portfolio, nil)

	o := testOpportunity(decimal.NewFromInt(1))
	o.GasCost = decimal.NewFromInt(6)

	approval := e.Approve(o, 1, 1, 1)
	assert.False(t, approval.Approved)
	assert.Equal(t, RejectMaxGasCost, approval.Reason)
}

func TestApprove_ApprovesWhenGasCostWithinCeiling(t *testing.T) {
	clock := clockwork.NewFakeClock(time.Now())
	portfolio := model.NewPortfolio(decimal.NewFromInt(1000))
	cfg := DefaultConfig()
	cfg.MaxGasCost = decimal.NewFromInt(5)
	e := New(cfg, clock, nil, nil, portfolio, nil)

	o := testOpportunity(decimal.NewFromInt(1))
	o.GasCost = decimal.NewFromInt(4)

	approval := e.Approve(o, 1, 1, 1)
	assert.True(t, approval.Approved)
}

func TestApprove_RejectsWhenRiskRewardRatioBelowFloor(t *testing.T) {
	clock := clockwork.NewFakeClock(time.Now())
	portfolio := model.NewPortfolio(decimal.NewFromInt(1000))
	cfg := DefaultConfig()
	cfg.MinRiskReward = 2.0
	e := New(cfg, clock, nil, nil, portfolio, nil)

	o := testOpportunity(decimal.NewFromInt(10))
	o.RequiredCapital = decimal.NewFromInt(1000)
	o.MaxSlippageBps = 500 // downside = 1000 * 0.05 = 50; ratio = 10/50 = 0.2

	approval := e.Approve(o, 1, 1, 1)
	assert.False(t, approval.Approved)
	assert.Equal(t, RejectRiskReward, approval.Reason)
}

func TestApprove_SkipsRiskRewardDisqualifierWhenOpportunityCarriesNoDownsideInputs(t *testing.T) {
	clock := clockwork.NewFakeClock(time.Now())
	portfolio := model.NewPortfolio(decimal.NewFromInt(1000))
	cfg := DefaultConfig()
	cfg.MinRiskReward = 2.0
	e := New(cfg, clock, nil, nil, portfolio, nil)

	// No MaxSlippageBps/RequiredCapital set: riskRewardRatio reports ok=false,
	// so the disqualifier must not fire even though the nominal ratio would
	// otherwise fail a naive check.
	approval := e.Approve(testOpportunity(decimal.NewFromInt(1)), 1, 1, 1)
	assert.True(t, approval.Approved)
}

func TestApprove_ComputesStopLossBelowImpliedEntryPrice(t *testing.T) {
	clock := clockwork.NewFakeClock(time.Now())
	portfolio := model.NewPortfolio(decimal.NewFromInt(1000))
	e := New(DefaultConfig(), clock, nil, nil, portfolio, nil)

	o := testOpportunity(decimal.NewFromInt(1))
	o.InputAmount = decimal.NewFromInt(100)
	o.ExpectedOutput = decimal.NewFromInt(110) // implied entry price = 1.1
	o.MaxSlippageBps = 300                     // 3% buffer

	approval := e.Approve(o, 1, 1, 1)
	require.True(t, approval.Approved)

	expected := decimal.NewFromFloat(1.1).Mul(decimal.NewFromFloat(0.97))
	assert.InDelta(t, expected.InexactFloat64(), approval.StopLoss.InexactFloat64(), 1e-9)
}

func TestApprove_StopLossFallsBackToDefaultBufferWithoutSlippageTolerance(t *testing.T) {
	clock := clockwork.NewFakeClock(time.Now())
	portfolio := model.NewPortfolio(decimal.NewFromInt(1000))
	e := New(DefaultConfig(), clock, nil, nil, portfolio, nil)

	o := testOpportunity(decimal.NewFromInt(1))
	o.InputAmount = decimal.NewFromInt(100)
	o.ExpectedOutput = decimal.NewFromInt(100) // implied entry price = 1.0

	approval := e.Approve(o, 1, 1, 1)
	require.True(t, approval.Approved)

	expected := decimal.NewFromFloat(0.98) // 2% default buffer below entry price 1.0
	assert.InDelta(t, expected.InexactFloat64(), approval.StopLoss.InexactFloat64(), 1e-9)
}

func TestManualHalt_RequiresExplicitResume(t *testing.T) {
	clock := clockwork.NewFakeClock(time.Now())
	portfolio := model.NewPortfolio(decimal.NewFromInt(1000))
	e := New(DefaultConfig(), clock, nil, nil, portfolio, nil)

	e.ManualHalt()
	assert.True(t, e.IsHalted())
	assert.Equal(t, HaltManual, e.HaltReasonValue())

	approval := e.Approve(testOpportunity(decimal.NewFromInt(1)), 1, 1, 1)
	assert.False(t, approval.Approved)

	e.Resume()
	assert.False(t, e.IsHalted())
}
