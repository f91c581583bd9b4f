package snipe

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DimaJoyti/go-coffee/solana-engine/internal/engine/clockwork"
	"github.com/DimaJoyti/go-coffee/solana-engine/internal/engine/ports"
)

type fakeQuotes struct {
	outputPerInput decimal.Decimal // how many output units per 1 input unit
	priceImpact    decimal.Decimal // fraction of amount eroded by slippage on each leg
}

func (f *fakeQuotes) GetQuote(ctx context.Context, inputMint, outputMint string, amount decimal.Decimal, slippageBps int) (ports.Quote, error) {
	return ports.Quote{InputAmount: amount, OutputAmount: amount.Mul(f.outputPerInput), PriceImpact: f.priceImpact}, nil
}

func (f *fakeQuotes) BuildSwap(ctx context.Context, plan string) ([]string, error) {
	return []string{"tx"}, nil
}

func goodEvent(now time.Time) PoolCreationEvent {
	return PoolCreationEvent{
		Token:                "TOKEN",
		Pool:                 "pool1",
		Creator:              "creator1",
		InitialLiquidity:     decimal.NewFromFloat(5.0),
		CreationTime:         now.Add(-time.Minute),
		MintAuthorityRevoked: true,
		LpBurnFractionBps:    9500,
		Top5HolderPct:        0.10,
	}
}

// Scenario 4 (SPEC_FULL.md §8): initial_liquidity=5.0 SOL, top-5 holders
// sum=45%, threshold 30%. Concentration fails, but is the only filter
// failure; profitability is still computed and approval succeeds.
func TestEvaluate_ConcentrationFailsButIsOnlyFailure_StillApproved(t *testing.T) {
	clock := clockwork.NewFakeClock(time.Now())
	blacklist := NewMapBlacklist()
	quotes := &fakeQuotes{outputPerInput: decimal.NewFromFloat(1.5)} // profitable round trip: buy then sell nets a gain

	ev := New(DefaultConfig(), clock, blacklist, quotes, nil)

	e := goodEvent(clock.Now())
	e.Top5HolderPct = 0.45 // fails the one concentration filter (threshold 0.30)

	o, err := ev.Evaluate(context.Background(), e, decimal.NewFromFloat(0.1), decimal.NewFromFloat(1.0))

	require.NoError(t, err)
	require.NotNil(t, o)
	assert.True(t, o.Confidence >= DefaultConfig().MinConfidence)
}

// Scenario 4, continued: if concentration is the 3rd failure (alongside two
// others), the evaluator rejects outright without computing profitability.
func TestEvaluate_RejectsWhenConcentrationIsThirdFailure(t *testing.T) {
	clock := clockwork.NewFakeClock(time.Now())
	blacklist := NewMapBlacklist("creator1")
	quotes := &fakeQuotes{outputPerInput: decimal.NewFromFloat(1.5)}

	ev := New(DefaultConfig(), clock, blacklist, quotes, nil)

	e := goodEvent(clock.Now())
	e.MintAuthorityRevoked = false // 2nd failure
	e.Top5HolderPct = 0.45         // 3rd failure (creator blacklist is the 1st)

	_, err := ev.Evaluate(context.Background(), e, decimal.NewFromFloat(0.1), decimal.NewFromFloat(1.0))

	require.Error(t, err)
}

func TestEvaluate_RejectsUnprofitableCandidate(t *testing.T) {
	clock := clockwork.NewFakeClock(time.Now())
	blacklist := NewMapBlacklist()
	quotes := &fakeQuotes{outputPerInput: decimal.NewFromFloat(0.5)} // always a loss

	ev := New(DefaultConfig(), clock, blacklist, quotes, nil)
	e := goodEvent(clock.Now())

	_, err := ev.Evaluate(context.Background(), e, decimal.NewFromFloat(0.1), decimal.NewFromFloat(1.0))

	require.Error(t, err)
}

func TestEvaluate_ProducesFlashLoanSnipeWithLoanAmountSet(t *testing.T) {
	clock := clockwork.NewFakeClock(time.Now())
	blacklist := NewMapBlacklist()
	quotes := &fakeQuotes{outputPerInput: decimal.NewFromFloat(2.0)}

	ev := New(DefaultConfig(), clock, blacklist, quotes, nil)
	e := goodEvent(clock.Now())

	o, err := ev.Evaluate(context.Background(), e, decimal.NewFromFloat(0.1), decimal.NewFromFloat(1.0))

	require.NoError(t, err)
	require.NotNil(t, o.FlashLoanAmount)
	assert.True(t, o.FlashLoanAmount.IsPositive())
}

// §4.5: a nominally profitable round trip must still be rejected once both
// legs' price impact is subtracted, since neither leg's OutputAmount already
// accounts for it.
func TestEvaluate_PriceImpactErodesNetProfitBelowFloor(t *testing.T) {
	clock := clockwork.NewFakeClock(time.Now())
	blacklist := NewMapBlacklist()
	// Raw round trip gain is thin (outputPerInput slightly above 1/1), and a
	// 5% impact charged on each leg wipes it out entirely.
	quotes := &fakeQuotes{outputPerInput: decimal.NewFromFloat(1.02), priceImpact: decimal.NewFromFloat(0.05)}

	ev := New(DefaultConfig(), clock, blacklist, quotes, nil)
	e := goodEvent(clock.Now())

	_, err := ev.Evaluate(context.Background(), e, decimal.NewFromFloat(0.1), decimal.NewFromFloat(1.0))

	require.Error(t, err)
}

func TestMapBlacklist_ReconcileReplacesContents(t *testing.T) {
	bl := NewMapBlacklist("a", "b")
	assert.True(t, bl.IsBlacklisted("a"))

	bl.Reconcile([]string{"c"})

	assert.False(t, bl.IsBlacklisted("a"))
	assert.True(t, bl.IsBlacklisted("c"))
}
