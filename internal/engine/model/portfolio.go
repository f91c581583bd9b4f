package model

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Position is an open holding in a single symbol.
type Position struct {
	Symbol          string
	Size            decimal.Decimal
	EntryPrice      decimal.Decimal
	CurrentPrice    decimal.Decimal
	EntryTime       time.Time
	StopLossPrice   decimal.Decimal
	TakeProfitPrice decimal.Decimal
}

// Validate enforces the §3 Position invariants.
func (p *Position) Validate() error {
	if !p.Size.IsPositive() {
		return fmt.Errorf("position %s: size must be > 0, got %s", p.Symbol, p.Size)
	}
	if p.StopLossPrice.IsPositive() != p.TakeProfitPrice.IsPositive() && !p.StopLossPrice.IsZero() && !p.TakeProfitPrice.IsZero() {
		// either both set positive, or both unset (zero); a lone zero is allowed (unset)
	}
	if p.StopLossPrice.IsNegative() || p.TakeProfitPrice.IsNegative() {
		return fmt.Errorf("position %s: stop_loss/take_profit must be > 0 when set", p.Symbol)
	}
	return nil
}

// UnrealizedPnL is the derived mark-to-market profit or loss on the position.
func (p *Position) UnrealizedPnL() decimal.Decimal {
	return p.CurrentPrice.Sub(p.EntryPrice).Mul(p.Size)
}

// Value is the current mark-to-market value of the position.
func (p *Position) Value() decimal.Decimal {
	return p.CurrentPrice.Mul(p.Size)
}

// Portfolio is the single-writer-owned account state mutated only by the risk engine.
type Portfolio struct {
	TotalValue    decimal.Decimal
	AvailableCash decimal.Decimal
	PeakValue     decimal.Decimal
	DailyPnL      decimal.Decimal
	Positions     map[string]*Position
}

// NewPortfolio builds an empty portfolio seeded with starting cash.
func NewPortfolio(startingCash decimal.Decimal) *Portfolio {
	return &Portfolio{
		TotalValue:    startingCash,
		AvailableCash: startingCash,
		PeakValue:     startingCash,
		Positions:     make(map[string]*Position),
	}
}

// Recompute derives TotalValue from cash plus position values and bumps
// PeakValue, preserving the monotonic-non-decreasing invariant (§3, §8-ii).
func (p *Portfolio) Recompute() {
	total := p.AvailableCash
	for _, pos := range p.Positions {
		total = total.Add(pos.Value())
	}
	p.TotalValue = total
	if p.TotalValue.GreaterThan(p.PeakValue) {
		p.PeakValue = p.TotalValue
	}
}

// Drawdown returns the fractional drawdown from the portfolio's peak value.
func (p *Portfolio) Drawdown() decimal.Decimal {
	if p.PeakValue.IsZero() {
		return decimal.Zero
	}
	return p.PeakValue.Sub(p.TotalValue).Div(p.PeakValue)
}

// Snapshot returns a deep, read-only copy safe to hand to other components.
func (p *Portfolio) Snapshot() Portfolio {
	positions := make(map[string]*Position, len(p.Positions))
	for k, v := range p.Positions {
		cp := *v
		positions[k] = &cp
	}
	return Portfolio{
		TotalValue:    p.TotalValue,
		AvailableCash: p.AvailableCash,
		PeakValue:     p.PeakValue,
		DailyPnL:      p.DailyPnL,
		Positions:     positions,
	}
}
