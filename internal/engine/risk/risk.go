// Package risk implements the Risk & Circuit-Breaker Layer (§4.4): pre-trade
// approval, position sizing, and the global halt circuit breaker. Portfolio
// mutations are confined to this single-writer component (§3 Ownership, §5).
package risk

import (
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/DimaJoyti/go-coffee/solana-engine/internal/engine/alerts"
	"github.com/DimaJoyti/go-coffee/solana-engine/internal/engine/clockwork"
	"github.com/DimaJoyti/go-coffee/solana-engine/internal/engine/metrics"
	"github.com/DimaJoyti/go-coffee/solana-engine/internal/engine/model"
	"github.com/DimaJoyti/go-coffee/solana-engine/pkg/logger"
)

// Config holds the §6 risk.* recognized configuration keys plus the
// position-sizing and approval thresholds named in §4.4.
type Config struct {
	MaxPositionFraction     float64
	MaxDrawdown             float64
	MaxConsecutiveLosses    int
	MaxDailyLoss            float64
	MaxPositionConcentration float64
	RapidDrawdownThreshold  float64
	MinRiskReward           float64

	MinProfitThreshold decimal.Decimal
	MaxGasCost         decimal.Decimal
	MaxOpenPositions   int
	MinSymbolInterval  time.Duration
	MaxLiquidityRatio  float64

	KellyFraction float64

	// TimeZone is the fixed zone daily counters reset in (§4.4).
	TimeZone *time.Location
}

func DefaultConfig() Config {
	return Config{
		MaxPositionFraction:      0.1,
		MaxDrawdown:              0.2,
		MaxConsecutiveLosses:     5,
		MaxDailyLoss:             0.05,
		MaxPositionConcentration: 0.3,
		RapidDrawdownThreshold:   0.1,
		MinRiskReward:            1.5,
		MaxOpenPositions:         10,
		MinSymbolInterval:        30 * time.Second,
		MaxLiquidityRatio:        0.05,
		KellyFraction:            1.0,
		TimeZone:                time.UTC,
	}
}

// RejectReason enumerates pre-trade disqualifiers (§4.4).
type RejectReason string

const (
	RejectMinProfit      RejectReason = "MinProfitNotMet"
	RejectMaxGasCost     RejectReason = "MaxGasCostExceeded"
	RejectPositionCap    RejectReason = "PositionCapReached"
	RejectVelocity       RejectReason = "VelocityLimit"
	RejectSizeLimit      RejectReason = "SizeLimitExceeded"
	RejectRiskReward     RejectReason = "RiskRewardTooLow"
	RejectHalted         RejectReason = "Halted"
)

// Approval is the result of a pre-trade check.
type Approval struct {
	Approved bool
	Reason   RejectReason
	Size     decimal.Decimal
	StopLoss decimal.Decimal
}

// HaltReason enumerates the global halt conditions (§4.4).
type HaltReason string

const (
	HaltDrawdown          HaltReason = "drawdown"
	HaltConsecutiveLosses HaltReason = "consecutive_losses"
	HaltDailyLoss         HaltReason = "daily_loss"
	HaltConcentration     HaltReason = "concentration"
	HaltRapidDrawdown     HaltReason = "rapid_drawdown"
	HaltManual            HaltReason = "manual"
)

// Engine owns the Portfolio and the global circuit breaker.
type Engine struct {
	cfg     Config
	clock   clockwork.Clock
	log     *logger.Logger
	metrics metrics.Sink
	alertSink *alerts.Manager

	mu                sync.Mutex
	portfolio         *model.Portfolio
	halted            bool
	haltReason        HaltReason
	haltAnnounced     bool
	consecutiveLosses int
	lastTradeAt       map[string]time.Time
	dayStart          time.Time
	dailyRealizedPnL  decimal.Decimal
	hourStart         time.Time
	hourStartValue    decimal.Decimal
	liquidityBySymbol map[string]decimal.Decimal
}

// New builds a risk Engine over a starting portfolio. log may be nil.
func New(cfg Config, clock clockwork.Clock, m metrics.Sink, alertSink *alerts.Manager, portfolio *model.Portfolio, log *logger.Logger) *Engine {
	now := clock.Now()
	return &Engine{
		cfg:               cfg,
		clock:             clock,
		log:               log,
		metrics:           m,
		alertSink:         alertSink,
		portfolio:         portfolio,
		lastTradeAt:       make(map[string]time.Time),
		dayStart:          dayBoundary(now, cfg.TimeZone),
		hourStart:         now.Truncate(time.Hour),
		hourStartValue:    portfolio.TotalValue,
		liquidityBySymbol: make(map[string]decimal.Decimal),
	}
}

func dayBoundary(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	lt := t.In(loc)
	return time.Date(lt.Year(), lt.Month(), lt.Day(), 0, 0, 0, 0, loc)
}

// IsHalted implements scheduler.HaltChecker.
func (e *Engine) IsHalted() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.halted
}

// SetLiquidity records the current liquidity used for sizing caps (§4.4).
func (e *Engine) SetLiquidity(symbol string, liquidity decimal.Decimal) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.liquidityBySymbol[symbol] = liquidity
}

// Snapshot returns a read-only copy of the portfolio.
func (e *Engine) Snapshot() model.Portfolio {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.portfolio.Snapshot()
}

// Approve runs the §4.4 pre-trade disqualifier checks and, if all pass,
// computes a position size. Rejecting does not mutate the Portfolio
// (§8 round-trip law b).
func (e *Engine) Approve(o *model.Opportunity, riskLevel, liquidityFactor, volatilityFactor float64) Approval {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.rollDayBoundary()

	if e.halted {
		return Approval{Approved: false, Reason: RejectHalted}
	}
	if e.cfg.MinProfitThreshold.IsPositive() && o.ExpectedProfit.LessThan(e.cfg.MinProfitThreshold) {
		return Approval{Approved: false, Reason: RejectMinProfit}
	}
	if e.cfg.MaxOpenPositions > 0 && len(e.portfolio.Positions) >= e.cfg.MaxOpenPositions {
		return Approval{Approved: false, Reason: RejectPositionCap}
	}
	symbol := ""
	if len(o.Symbols) > 0 {
		symbol = o.Symbols[0]
	}
	if last, ok := e.lastTradeAt[symbol]; ok {
		if e.clock.Now().Sub(last) < e.cfg.MinSymbolInterval {
			return Approval{Approved: false, Reason: RejectVelocity}
		}
	}
	if e.cfg.MaxGasCost.IsPositive() && o.GasCost.GreaterThan(e.cfg.MaxGasCost) {
		return Approval{Approved: false, Reason: RejectMaxGasCost}
	}
	if rr, ok := riskRewardRatio(o); ok && e.cfg.MinRiskReward > 0 && rr < e.cfg.MinRiskReward {
		return Approval{Approved: false, Reason: RejectRiskReward}
	}

	size := e.positionSize(o, riskLevel, liquidityFactor, volatilityFactor)

	liquidity := e.liquidityBySymbol[symbol]
	maxBySize := e.portfolio.AvailableCash.Mul(decimal.NewFromFloat(e.cfg.MaxPositionFraction))
	maxByLiquidity := liquidity.Mul(decimal.NewFromFloat(e.cfg.MaxLiquidityRatio))
	sizeCap := maxBySize
	if liquidity.IsPositive() && maxByLiquidity.LessThan(sizeCap) {
		sizeCap = maxByLiquidity
	}
	if size.GreaterThan(sizeCap) {
		return Approval{Approved: false, Reason: RejectSizeLimit}
	}

	return Approval{Approved: true, Size: size, StopLoss: stopLossPrice(o)}
}

// riskRewardRatio estimates reward-to-risk from the opportunity's expected
// profit against the slippage-implied downside on the capital at stake. It
// reports ok=false when the opportunity carries no slippage tolerance or
// required capital to derive a downside from, in which case the MinRiskReward
// disqualifier does not apply.
func riskRewardRatio(o *model.Opportunity) (ratio float64, ok bool) {
	if o.MaxSlippageBps <= 0 || !o.RequiredCapital.IsPositive() {
		return 0, false
	}
	downside := o.RequiredCapital.Mul(decimal.NewFromInt(int64(o.MaxSlippageBps))).Div(decimal.NewFromInt(10000))
	if !downside.IsPositive() {
		return 0, false
	}
	return o.ExpectedProfit.Div(downside).InexactFloat64(), true
}

// stopLossPrice derives a protective exit price from the opportunity's
// implied entry price (expected_output/input_amount) and its slippage
// tolerance, falling back to a 2% buffer when the opportunity specifies none.
func stopLossPrice(o *model.Opportunity) decimal.Decimal {
	if !o.InputAmount.IsPositive() {
		return decimal.Zero
	}
	entryPrice := o.ExpectedOutput.Div(o.InputAmount)
	bufferBps := o.MaxSlippageBps
	if bufferBps <= 0 {
		bufferBps = 200
	}
	buffer := decimal.NewFromInt(int64(bufferBps)).Div(decimal.NewFromInt(10000))
	return entryPrice.Mul(decimal.NewFromInt(1).Sub(buffer))
}

// positionSize applies the contractual, reproducible ordering of §4.4's
// multiplicative adjustments, clamped to [0.1, max_position_fraction].
func (e *Engine) positionSize(o *model.Opportunity, riskLevel, liquidityFactor, volatilityFactor float64) decimal.Decimal {
	base := e.portfolio.TotalValue.Mul(decimal.NewFromFloat(e.cfg.MaxPositionFraction))

	mult := o.Confidence
	mult *= riskLevel
	mult *= liquidityFactor
	mult *= volatilityFactor
	mult *= e.cfg.KellyFraction

	if mult < 0.1 {
		mult = 0.1
	}
	if mult > e.cfg.MaxPositionFraction {
		mult = e.cfg.MaxPositionFraction
	}

	return base.Mul(decimal.NewFromFloat(mult))
}

// ApplyOutcome mutates the Portfolio atomically from a terminal
// ExecutionOutcome and re-evaluates the global halt conditions.
func (e *Engine) ApplyOutcome(o *model.Opportunity, outcome model.ExecutionOutcome) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.rollDayBoundary()

	if len(o.Symbols) > 0 {
		e.lastTradeAt[o.Symbols[0]] = e.clock.Now()
	}

	profit := outcome.ExecutedQty.Mul(outcome.ExecutedPrice).Sub(outcome.Fees)
	if !outcome.Success {
		profit = profit.Sub(outcome.Fees)
	}

	e.portfolio.AvailableCash = e.portfolio.AvailableCash.Add(profit)
	e.portfolio.DailyPnL = e.portfolio.DailyPnL.Add(profit)
	e.dailyRealizedPnL = e.dailyRealizedPnL.Add(profit)
	e.portfolio.Recompute()

	if outcome.Success && profit.IsNegative() {
		e.consecutiveLosses++
	} else if outcome.Success {
		e.consecutiveLosses = 0
	}

	e.evaluateHalts()
}

// rollDayBoundary resets daily counters exactly once per day boundary
// (§8 quantified invariant v), in the configured fixed time zone.
func (e *Engine) rollDayBoundary() {
	now := dayBoundary(e.clock.Now(), e.cfg.TimeZone)
	if now.After(e.dayStart) {
		e.dayStart = now
		e.dailyRealizedPnL = decimal.Zero
		e.portfolio.DailyPnL = decimal.Zero
	}
	hourNow := e.clock.Now().Truncate(time.Hour)
	if hourNow.After(e.hourStart) {
		e.hourStart = hourNow
		e.hourStartValue = e.portfolio.TotalValue
	}
}

// evaluateHalts checks the §4.4 global halt conditions and opens the global
// circuit on first trigger; it never auto-resumes (operator Resume required).
func (e *Engine) evaluateHalts() {
	if e.halted {
		return
	}

	drawdown := e.portfolio.Drawdown().InexactFloat64()
	if drawdown >= e.cfg.MaxDrawdown {
		e.openHalt(HaltDrawdown)
		return
	}
	if e.cfg.MaxConsecutiveLosses > 0 && e.consecutiveLosses >= e.cfg.MaxConsecutiveLosses {
		e.openHalt(HaltConsecutiveLosses)
		return
	}
	if e.portfolio.TotalValue.IsPositive() {
		dailyLossRatio := e.dailyRealizedPnL.Neg().Div(e.portfolio.TotalValue).InexactFloat64()
		if dailyLossRatio >= e.cfg.MaxDailyLoss {
			e.openHalt(HaltDailyLoss)
			return
		}
	}
	for _, pos := range e.portfolio.Positions {
		if e.portfolio.TotalValue.IsZero() {
			continue
		}
		share := pos.Value().Div(e.portfolio.TotalValue).InexactFloat64()
		if share >= e.cfg.MaxPositionConcentration {
			e.openHalt(HaltConcentration)
			return
		}
	}
	if e.hourStartValue.IsPositive() {
		hourlyLoss := e.hourStartValue.Sub(e.portfolio.TotalValue).Div(e.hourStartValue).InexactFloat64()
		if hourlyLoss >= e.cfg.RapidDrawdownThreshold {
			e.openHalt(HaltRapidDrawdown)
			return
		}
	}
}

func (e *Engine) openHalt(reason HaltReason) {
	e.halted = true
	e.haltReason = reason
	if e.log != nil {
		e.log.Warn(fmt.Sprintf("global circuit opened: %s", reason))
	}
	if e.metrics != nil {
		e.metrics.SetCircuitState("global", 2)
		e.metrics.SetDrawdownPct(e.portfolio.Drawdown().InexactFloat64())
	}
	if e.alertSink != nil {
		e.alertSink.Emit(alerts.Event{
			Type:     alerts.CircuitOpened,
			Severity: alerts.SeverityCritical,
			Message:  string(reason),
			Fields:   map[string]string{"scope": "global", "reason": string(reason)},
		})
		e.alertSink.Emit(alerts.Event{
			Type:     alerts.Halted,
			Severity: alerts.SeverityCritical,
			Message:  string(reason),
			Fields:   map[string]string{"reason": string(reason)},
		})
	}
}

// ManualHalt allows an operator to halt trading out of band.
func (e *Engine) ManualHalt() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.halted {
		e.openHalt(HaltManual)
	}
}

// Resume clears the global halt. There is no automatic resume (§4.4).
func (e *Engine) Resume() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.halted = false
	e.haltReason = ""
	if e.metrics != nil {
		e.metrics.SetCircuitState("global", 0)
	}
	if e.alertSink != nil {
		e.alertSink.Emit(alerts.Event{Type: alerts.CircuitClosed, Severity: alerts.SeverityInfo, Message: "global"})
	}
}

// HaltReasonValue returns the current halt reason, if any.
func (e *Engine) HaltReasonValue() HaltReason {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.haltReason
}
