// Package snipe implements the Snipe Feasibility Evaluator (§4.5): fast
// filters over new-pool events followed by a profitability simulation that
// emits FlashLoanSnipe opportunities, grounded on the teacher's
// sandwich_detector.go event-driven detection style.
package snipe

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/DimaJoyti/go-coffee/solana-engine/internal/engine/clockwork"
	"github.com/DimaJoyti/go-coffee/solana-engine/internal/engine/model"
	"github.com/DimaJoyti/go-coffee/solana-engine/internal/engine/ports"
	"github.com/DimaJoyti/go-coffee/solana-engine/pkg/logger"
)

// PoolCreationEvent is the external producer input (§4.5).
type PoolCreationEvent struct {
	Token            string
	Pool             string
	Creator          string
	InitialLiquidity decimal.Decimal
	CreationTime     time.Time

	MintAuthorityRevoked bool
	LpBurnFractionBps    int
	Top5HolderPct        float64
}

// Config holds the §6 sniper.* recognized keys.
type Config struct {
	LpBurnThresholdBps int
	MaxTop5HolderPct   float64
	MinLiquidity       decimal.Decimal
	MinTokenAge        time.Duration
	MaxTokenAge        time.Duration
	ProfitFloor        decimal.Decimal
	MaxFailedFilters   int
	MinConfidence      float64
	Deadline           time.Duration
	SlippageBps        int
}

func DefaultConfig() Config {
	return Config{
		LpBurnThresholdBps: 9000,
		MaxTop5HolderPct:   0.30,
		MinLiquidity:       decimal.NewFromInt(1),
		MinTokenAge:        0,
		MaxTokenAge:        24 * time.Hour,
		ProfitFloor:        decimal.NewFromFloat(0.01),
		MaxFailedFilters:   2,
		MinConfidence:      0.3,
		Deadline:           30 * time.Second,
		SlippageBps:        100,
	}
}

// Blacklist provides O(1) creator-blacklist lookups (§4.5), backed by the
// engine's redis-wrapped cache in production.
type Blacklist interface {
	IsBlacklisted(creator string) bool
}

// MapBlacklist is an in-memory Blacklist for tests and small deployments.
type MapBlacklist struct {
	mu      sync.RWMutex
	entries map[string]struct{}
}

func NewMapBlacklist(entries ...string) *MapBlacklist {
	m := &MapBlacklist{entries: make(map[string]struct{}, len(entries))}
	for _, e := range entries {
		m.entries[e] = struct{}{}
	}
	return m
}

func (m *MapBlacklist) IsBlacklisted(creator string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.entries[creator]
	return ok
}

// Reconcile atomically replaces the blacklist contents.
func (m *MapBlacklist) Reconcile(entries []string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = make(map[string]struct{}, len(entries))
	for _, e := range entries {
		m.entries[e] = struct{}{}
	}
}

// Evaluator converts pool-creation events into FlashLoanSnipe opportunities.
type Evaluator struct {
	cfg       Config
	clock     clockwork.Clock
	blacklist Blacklist
	quotes    ports.QuoteProvider
	log       *logger.Logger
}

func New(cfg Config, clock clockwork.Clock, blacklist Blacklist, quotes ports.QuoteProvider, log *logger.Logger) *Evaluator {
	return &Evaluator{cfg: cfg, clock: clock, blacklist: blacklist, quotes: quotes, log: log}
}

// filterResult names which fast filters failed, in evaluation order (§4.5).
type filterResult struct {
	name   string
	passed bool
}

// runFilters evaluates the six fast filters in order, short-circuiting once
// three have failed.
func (ev *Evaluator) runFilters(e PoolCreationEvent) []filterResult {
	now := ev.clock.Now()
	age := now.Sub(e.CreationTime)

	checks := []filterResult{
		{"creator_blacklisted", !ev.blacklist.IsBlacklisted(e.Creator)},
		{"mint_authority_not_revoked", e.MintAuthorityRevoked},
		{"lp_burn_below_threshold", e.LpBurnFractionBps >= ev.cfg.LpBurnThresholdBps},
		{"top5_holder_concentration", e.Top5HolderPct <= ev.cfg.MaxTop5HolderPct},
		{"initial_liquidity_below_floor", e.InitialLiquidity.GreaterThanOrEqual(ev.cfg.MinLiquidity)},
		{"token_age_out_of_range", age >= ev.cfg.MinTokenAge && age <= ev.cfg.MaxTokenAge},
	}

	failed := 0
	results := make([]filterResult, 0, len(checks))
	for _, c := range checks {
		results = append(results, c)
		if !c.passed {
			failed++
		}
		if failed >= 3 {
			break
		}
	}
	return results
}

func failedCount(results []filterResult) int {
	n := 0
	for _, r := range results {
		if !r.passed {
			n++
		}
	}
	return n
}

// candidateSize computes the three candidate flash-loan sizes named in §4.5.
func candidateSizes(minSize, maxSize, liquidity decimal.Decimal) []decimal.Decimal {
	half := maxSize.Div(decimal.NewFromInt(2))
	liqCapped := liquidity.Mul(decimal.NewFromFloat(0.5))
	third := maxSize
	if liqCapped.LessThan(third) {
		third = liqCapped
	}
	return []decimal.Decimal{minSize, half, third}
}

// Evaluate runs filters then, if admissible, simulates profitability across
// candidate loan sizes and returns a FlashLoanSnipe opportunity.
func (ev *Evaluator) Evaluate(ctx context.Context, e PoolCreationEvent, minLoan, maxLoan decimal.Decimal) (*model.Opportunity, error) {
	results := ev.runFilters(e)
	failed := failedCount(results)
	if failed > ev.cfg.MaxFailedFilters {
		return nil, fmt.Errorf("snipe rejected: %d filters failed (max %d)", failed, ev.cfg.MaxFailedFilters)
	}

	best := struct {
		amount  decimal.Decimal
		profit  decimal.Decimal
		found   bool
	}{}

	for _, amount := range candidateSizes(minLoan, maxLoan, e.InitialLiquidity) {
		if !amount.IsPositive() {
			continue
		}
		quote, err := ev.quotes.GetQuote(ctx, "SOL", e.Token, amount, ev.cfg.SlippageBps)
		if err != nil {
			continue
		}
		sellQuote, err := ev.quotes.GetQuote(ctx, e.Token, "SOL", quote.OutputAmount, ev.cfg.SlippageBps)
		if err != nil {
			continue
		}
		// Both legs' price impact erodes the round-trip delta; neither leg's
		// OutputAmount already reflects it (§4.5 profitability simulation).
		impactCost := quote.PriceImpact.Add(sellQuote.PriceImpact).Mul(amount)
		netProfit := sellQuote.OutputAmount.Sub(amount).Sub(impactCost)
		if netProfit.GreaterThan(best.profit) || !best.found {
			best.amount, best.profit, best.found = amount, netProfit, true
		}
	}

	if !best.found || best.profit.LessThan(ev.cfg.ProfitFloor) {
		if ev.log != nil {
			ev.log.Debug(fmt.Sprintf("snipe rejected for pool %s: no candidate loan size clears profit floor", e.Pool))
		}
		return nil, fmt.Errorf("snipe rejected: no candidate loan size clears profit floor")
	}

	normLiquidity := normalize(e.InitialLiquidity.InexactFloat64(), 0, 100)
	normProfit := normalize(best.profit.InexactFloat64(), 0, ev.cfg.ProfitFloor.InexactFloat64()*10)
	confidence := 0.5*normLiquidity + 0.5*normProfit
	if confidence < ev.cfg.MinConfidence {
		return nil, fmt.Errorf("snipe rejected: confidence %.3f below floor %.3f", confidence, ev.cfg.MinConfidence)
	}
	if confidence > 1 {
		confidence = 1
	}

	now := ev.clock.Now()
	loanAmt := best.amount
	return &model.Opportunity{
		ID:              fmt.Sprintf("snipe-%s-%d", e.Pool, now.UnixNano()),
		Kind:            model.KindFlashLoanSnipe,
		Symbols:         []string{"SOL", e.Token},
		Venues:          []string{e.Pool},
		InputAmount:     best.amount,
		ExpectedOutput:  best.amount.Add(best.profit),
		ExpectedProfit:  best.profit,
		Urgency:         model.UrgencyCritical,
		Confidence:      confidence,
		CreatedAt:       now,
		Deadline:        e.CreationTime.Add(ev.cfg.Deadline),
		RequiredCapital: best.amount,
		FlashLoanAmount: &loanAmt,
		Metadata:        map[string]string{"creator": e.Creator},
	}, nil
}

func normalize(v, lo, hi float64) float64 {
	if hi <= lo {
		return 0
	}
	n := (v - lo) / (hi - lo)
	if n < 0 {
		return 0
	}
	if n > 1 {
		return 1
	}
	return n
}
