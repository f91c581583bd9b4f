package arbitrage

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DimaJoyti/go-coffee/solana-engine/internal/engine/clockwork"
	"github.com/DimaJoyti/go-coffee/solana-engine/internal/engine/model"
)

// Scenario 1 (SPEC_FULL.md §8): venues {A,B,C}, symbols {X,Y,Z},
// X->Y=1.01@A, Y->Z=1.01@B, Z->X=0.99@C, fee/leg=0.001.
// product = 1.01*1.01*0.99 = 1.009899; net = product - 1 - 0.003 ~= 0.006899.
func TestDetectTriangular_LiteralScenarioValue(t *testing.T) {
	clock := clockwork.NewFakeClock(time.Now())
	d := New(DefaultConfig(), clock, nil)

	symbols := [3]string{"X", "Y", "Z"}
	venues := [3]string{"A", "B", "C"}
	rateA := decimal.NewFromFloat(1.01)
	rateB := decimal.NewFromFloat(1.01)
	rateC := decimal.NewFromFloat(0.99)
	inputAmount := decimal.NewFromInt(1000)

	o := d.DetectTriangular(symbols, venues, rateA, rateB, rateC, inputAmount)

	require.NotNil(t, o)
	assert.Equal(t, model.KindTriangular, o.Kind)

	expectedNet := decimal.NewFromFloat(0.006899)
	gotNet := o.ExpectedProfit.Div(inputAmount)
	assert.InDelta(t, expectedNet.InexactFloat64(), gotNet.InexactFloat64(), 1e-6)
}

func TestDetectTriangular_IdempotentIDForSameSnapshot(t *testing.T) {
	clock := clockwork.NewFakeClock(time.Now())
	d := New(DefaultConfig(), clock, nil)

	symbols := [3]string{"X", "Y", "Z"}
	venues := [3]string{"A", "B", "C"}
	rateA, rateB, rateC := decimal.NewFromFloat(1.01), decimal.NewFromFloat(1.01), decimal.NewFromFloat(0.99)
	amount := decimal.NewFromInt(1000)

	first := d.DetectTriangular(symbols, venues, rateA, rateB, rateC, amount)
	second := d.DetectTriangular(symbols, venues, rateA, rateB, rateC, amount)

	require.NotNil(t, first)
	require.NotNil(t, second)
	assert.Equal(t, first.ID, second.ID)
	assert.InDelta(t, first.Confidence, second.Confidence, 1e-12)
}

func TestDetectTriangular_RejectsUnprofitableCycle(t *testing.T) {
	clock := clockwork.NewFakeClock(time.Now())
	d := New(DefaultConfig(), clock, nil)

	o := d.DetectTriangular([3]string{"X", "Y", "Z"}, [3]string{"A", "B", "C"},
		decimal.NewFromFloat(1.0), decimal.NewFromFloat(1.0), decimal.NewFromFloat(0.999), decimal.NewFromInt(1000))

	assert.Nil(t, o)
}

// Scenario 2 (SPEC_FULL.md §8): priceA=1.000, priceB=1.010, combined fees 0.4%.
// Expected spread: (1.010-1.000)/1.000 - 0.004 = 0.006.
func TestDetectCrossVenue_LiteralScenarioValue(t *testing.T) {
	clock := clockwork.NewFakeClock(time.Now())
	d := New(DefaultConfig(), clock, nil)

	priceA := decimal.NewFromFloat(1.000)
	priceB := decimal.NewFromFloat(1.010)
	amount := decimal.NewFromInt(1000)

	o := d.DetectCrossVenue("SOL", "A", "B", priceA, priceB, amount)

	require.NotNil(t, o)
	assert.Equal(t, model.KindCrossVenue, o.Kind)
	assert.Equal(t, []string{"A", "B"}, o.Venues)

	expectedSpread := decimal.NewFromFloat(0.006)
	gotSpread := o.ExpectedProfit.Div(amount)
	assert.InDelta(t, expectedSpread.InexactFloat64(), gotSpread.InexactFloat64(), 1e-9)
}

func TestDetectCrossVenue_BuysAtLowerVenueRegardlessOfArgumentOrder(t *testing.T) {
	clock := clockwork.NewFakeClock(time.Now())
	d := New(DefaultConfig(), clock, nil)

	amount := decimal.NewFromInt(1000)
	o := d.DetectCrossVenue("SOL", "B", "A", decimal.NewFromFloat(1.010), decimal.NewFromFloat(1.000), amount)

	require.NotNil(t, o)
	assert.Equal(t, []string{"A", "B"}, o.Venues)
}

func TestDetectCrossVenue_RejectsSpreadBelowMargin(t *testing.T) {
	clock := clockwork.NewFakeClock(time.Now())
	d := New(DefaultConfig(), clock, nil)

	o := d.DetectCrossVenue("SOL", "A", "B", decimal.NewFromFloat(1.000), decimal.NewFromFloat(1.002), decimal.NewFromInt(1000))

	assert.Nil(t, o)
}

func TestObserveStatistical_RequiresWindowAndThreshold(t *testing.T) {
	clock := clockwork.NewFakeClock(time.Now())
	d := New(DefaultConfig(), clock, nil)

	// Feed a tight cluster of prices so the new outlier sample crosses the
	// z-score threshold.
	for _, p := range []float64{1.0, 1.0, 1.0, 1.0, 1.0} {
		o := d.ObserveStatistical("SOL", decimal.NewFromFloat(p), decimal.NewFromInt(1000))
		assert.Nil(t, o)
	}

	o := d.ObserveStatistical("SOL", decimal.NewFromFloat(5.0), decimal.NewFromInt(1000))
	require.NotNil(t, o)
	assert.Equal(t, model.KindStatistical, o.Kind)
	assert.Equal(t, model.UrgencyLow, o.Urgency)
}

func TestSeen_MarksFirstObservationAsNewAndSecondAsRepeat(t *testing.T) {
	clock := clockwork.NewFakeClock(time.Now())
	d := New(DefaultConfig(), clock, nil)

	assert.False(t, d.Seen("tri-X"))
	assert.True(t, d.Seen("tri-X"))
}
