package model

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestPosition_Validate_RejectsNonPositiveSize(t *testing.T) {
	p := Position{Symbol: "SOL", Size: decimal.Zero}
	assert.Error(t, p.Validate())

	p.Size = decimal.NewFromInt(-1)
	assert.Error(t, p.Validate())
}

func TestPosition_Validate_RejectsNegativeStopOrTakeProfit(t *testing.T) {
	p := Position{Symbol: "SOL", Size: decimal.NewFromInt(1), StopLossPrice: decimal.NewFromInt(-1)}
	assert.Error(t, p.Validate())
}

func TestPosition_UnrealizedPnLAndValue(t *testing.T) {
	p := Position{
		Symbol:       "SOL",
		Size:         decimal.NewFromInt(10),
		EntryPrice:   decimal.NewFromInt(100),
		CurrentPrice: decimal.NewFromInt(110),
	}
	assert.True(t, p.UnrealizedPnL().Equal(decimal.NewFromInt(100)))
	assert.True(t, p.Value().Equal(decimal.NewFromInt(1100)))
}

func TestPortfolio_Recompute_AggregatesPositionsAndBumpsPeak(t *testing.T) {
	pf := NewPortfolio(decimal.NewFromInt(500))
	pf.Positions["SOL"] = &Position{Size: decimal.NewFromInt(2), CurrentPrice: decimal.NewFromInt(100)}

	pf.Recompute()

	assert.True(t, pf.TotalValue.Equal(decimal.NewFromInt(700)))
	assert.True(t, pf.PeakValue.Equal(decimal.NewFromInt(700)))
}

func TestPortfolio_Recompute_NeverDecreasesPeakOnLoss(t *testing.T) {
	pf := NewPortfolio(decimal.NewFromInt(500))
	pf.Recompute()
	peak := pf.PeakValue

	pf.AvailableCash = decimal.NewFromInt(200)
	pf.Recompute()

	assert.True(t, pf.TotalValue.Equal(decimal.NewFromInt(200)))
	assert.True(t, pf.PeakValue.Equal(peak), "peak must survive a drop in total value")
}

func TestPortfolio_Drawdown_ZeroPeakIsZeroNotDivByZero(t *testing.T) {
	pf := &Portfolio{}
	assert.True(t, pf.Drawdown().Equal(decimal.Zero))
}

func TestPortfolio_Snapshot_IsDeepCopy(t *testing.T) {
	pf := NewPortfolio(decimal.NewFromInt(100))
	pf.Positions["SOL"] = &Position{Symbol: "SOL", Size: decimal.NewFromInt(1), EntryTime: time.Now()}

	snap := pf.Snapshot()
	snap.Positions["SOL"].Size = decimal.NewFromInt(999)

	assert.True(t, pf.Positions["SOL"].Size.Equal(decimal.NewFromInt(1)), "mutating the snapshot must not affect the live portfolio")
}
