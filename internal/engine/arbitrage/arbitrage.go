// Package arbitrage implements the Arbitrage Opportunity Detector (§4.6):
// triangular cycles, cross-venue spreads, and statistical mean-reversion,
// grounded on internal/defi/arbitrage_detector.go's structure (price
// snapshotting, confidence/risk scoring, idempotent opportunity ids).
package arbitrage

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/DimaJoyti/go-coffee/solana-engine/internal/engine/clockwork"
	"github.com/DimaJoyti/go-coffee/solana-engine/internal/engine/model"
	"github.com/DimaJoyti/go-coffee/solana-engine/pkg/logger"
)

// Config tunes detection thresholds for all three strategies.
type Config struct {
	FeePerLeg          decimal.Decimal
	MinNetProfitFloor  decimal.Decimal
	CrossVenueMargin   decimal.Decimal
	CrossVenueFees     decimal.Decimal
	StatisticalWindow  int
	StatisticalZScore  float64
	DefaultDeadline    time.Duration
}

func DefaultConfig() Config {
	return Config{
		FeePerLeg:         decimal.NewFromFloat(0.001),
		MinNetProfitFloor: decimal.NewFromFloat(0.001),
		CrossVenueMargin:  decimal.NewFromFloat(0.004),
		CrossVenueFees:    decimal.NewFromFloat(0.004),
		StatisticalWindow: 20,
		StatisticalZScore: 2.0,
		DefaultDeadline:   10 * time.Second,
	}
}

// VenuePrice is one observed price point for a symbol at a venue.
type VenuePrice struct {
	Symbol string
	Venue  string
	Price  decimal.Decimal
}

// Detector scans venue-price snapshots for arbitrage opportunities.
type Detector struct {
	cfg   Config
	clock clockwork.Clock
	log   *logger.Logger

	mu      sync.Mutex
	seen    map[string]struct{} // idempotence: opportunity ids already emitted
	history map[string][]float64 // rolling price history per symbol, for Statistical
}

func New(cfg Config, clock clockwork.Clock, log *logger.Logger) *Detector {
	return &Detector{cfg: cfg, clock: clock, log: log, seen: make(map[string]struct{}), history: make(map[string][]float64)}
}

// TriangularCycleID is the deterministic id: sorted symbol triple + sorted
// venue triple (§4.6).
func TriangularCycleID(symbols, venues [3]string) string {
	s := append([]string{}, symbols[:]...)
	v := append([]string{}, venues[:]...)
	sort.Strings(s)
	sort.Strings(v)
	return fmt.Sprintf("tri-%s-%s", strings.Join(s, "_"), strings.Join(v, "_"))
}

// DetectTriangular enumerates a length-3 cycle X→Y@A, Y→Z@B, Z→X@C and emits
// a Triangular opportunity when the net product clears the profit floor.
// rateA/rateB/rateC are the exchange rates of each directed leg.
func (d *Detector) DetectTriangular(symbols [3]string, venues [3]string, rateA, rateB, rateC decimal.Decimal, inputAmount decimal.Decimal) *model.Opportunity {
	product := rateA.Mul(rateB).Mul(rateC)
	totalFee := d.cfg.FeePerLeg.Mul(decimal.NewFromInt(3))
	net := product.Sub(decimal.NewFromInt(1)).Sub(totalFee)

	if product.LessThanOrEqual(decimal.NewFromInt(1)) {
		return nil
	}
	expectedProfit := net.Mul(inputAmount)
	if expectedProfit.LessThan(d.cfg.MinNetProfitFloor) {
		return nil
	}

	id := TriangularCycleID(symbols, venues)
	if d.log != nil {
		d.log.Debug(fmt.Sprintf("triangular cycle cleared profit floor: %s", id))
	}

	now := d.clock.Now()
	confidence := clamp01(net.InexactFloat64() * 10)
	o := &model.Opportunity{
		ID:              id,
		Kind:            model.KindTriangular,
		Symbols:         symbols[:],
		Venues:          venues[:],
		InputAmount:     inputAmount,
		ExpectedOutput:  inputAmount.Add(expectedProfit),
		ExpectedProfit:  expectedProfit,
		Urgency:         model.UrgencyNormal,
		Confidence:      confidence,
		CreatedAt:       now,
		Deadline:        now.Add(d.cfg.DefaultDeadline),
		RequiredCapital: inputAmount,
	}
	return o
}

// DetectCrossVenue compares two venue prices for one symbol and emits a
// CrossVenue opportunity when the spread clears combined fees and margin.
func (d *Detector) DetectCrossVenue(symbol, venueA, venueB string, priceA, priceB decimal.Decimal, inputAmount decimal.Decimal) *model.Opportunity {
	lowVenue, highVenue, low, high := venueA, venueB, priceA, priceB
	if priceA.GreaterThan(priceB) {
		lowVenue, highVenue, low, high = venueB, venueA, priceB, priceA
	}

	spreadPct := high.Sub(low).Div(low).Sub(d.cfg.CrossVenueFees)
	if !spreadPct.GreaterThan(d.cfg.CrossVenueMargin) {
		return nil
	}

	id := fmt.Sprintf("cv-%s-%s-%s", symbol, lowVenue, highVenue)

	now := d.clock.Now()
	expectedProfit := spreadPct.Mul(inputAmount)
	confidence := clamp01(spreadPct.InexactFloat64() * 20)

	o := &model.Opportunity{
		ID:              id,
		Kind:            model.KindCrossVenue,
		Symbols:         []string{symbol},
		Venues:          []string{lowVenue, highVenue},
		InputAmount:     inputAmount,
		ExpectedOutput:  inputAmount.Add(expectedProfit),
		ExpectedProfit:  expectedProfit,
		Urgency:         model.UrgencyNormal,
		Confidence:      confidence,
		CreatedAt:       now,
		Deadline:        now.Add(d.cfg.DefaultDeadline),
		RequiredCapital: inputAmount,
	}
	return o
}

// ObserveStatistical feeds a new price sample for a symbol's rolling window
// and emits a Statistical opportunity when |z_score| clears the threshold.
func (d *Detector) ObserveStatistical(symbol string, price decimal.Decimal, inputAmount decimal.Decimal) *model.Opportunity {
	d.mu.Lock()
	hist := d.history[symbol]
	hist = append(hist, price.InexactFloat64())
	if len(hist) > d.cfg.StatisticalWindow {
		hist = hist[len(hist)-d.cfg.StatisticalWindow:]
	}
	d.history[symbol] = hist
	d.mu.Unlock()

	if len(hist) < 2 {
		return nil
	}
	mean, stddev := meanStdDev(hist)
	if stddev == 0 {
		return nil
	}
	z := (price.InexactFloat64() - mean) / stddev
	if math.Abs(z) < d.cfg.StatisticalZScore {
		return nil
	}

	now := d.clock.Now()
	id := fmt.Sprintf("stat-%s-%d", symbol, now.Unix())

	expectedProfit := inputAmount.Mul(decimal.NewFromFloat(math.Abs(z) * 0.001))
	confidence := clamp01(math.Abs(z) / (d.cfg.StatisticalZScore * 2))

	o := &model.Opportunity{
		ID:              id,
		Kind:            model.KindStatistical,
		Symbols:         []string{symbol},
		InputAmount:     inputAmount,
		ExpectedOutput:  inputAmount.Add(expectedProfit),
		ExpectedProfit:  expectedProfit,
		Urgency:         model.UrgencyLow,
		Confidence:      confidence,
		CreatedAt:       now,
		Deadline:        now.Add(d.cfg.DefaultDeadline),
		RequiredCapital: inputAmount,
		Metadata:        map[string]string{"z_score": fmt.Sprintf("%.4f", z)},
	}
	return o
}

func meanStdDev(xs []float64) (mean, stddev float64) {
	n := float64(len(xs))
	sum := 0.0
	for _, x := range xs {
		sum += x
	}
	mean = sum / n
	var sqSum float64
	for _, x := range xs {
		d := x - mean
		sqSum += d * d
	}
	stddev = math.Sqrt(sqSum / n)
	return
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Seen reports whether an opportunity id has been emitted before, letting a
// caller (e.g. the orchestrator) de-duplicate repeat emissions within a TTL
// window, mirroring ArbitrageDetector's redis-cached opportunity handling.
func (d *Detector) Seen(id string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	_, ok := d.seen[id]
	d.seen[id] = struct{}{}
	return ok
}
