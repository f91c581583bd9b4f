// Package router implements the Provider-Aware Submission Router (§4.2):
// provider selection, strategy choice, and priority-fee/tip composition.
package router

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/DimaJoyti/go-coffee/solana-engine/internal/engine/clockwork"
	"github.com/DimaJoyti/go-coffee/solana-engine/internal/engine/errkind"
	"github.com/DimaJoyti/go-coffee/solana-engine/internal/engine/model"
	"github.com/DimaJoyti/go-coffee/solana-engine/internal/engine/ports"
	"github.com/DimaJoyti/go-coffee/solana-engine/internal/engine/providerhealth"
	"github.com/DimaJoyti/go-coffee/solana-engine/pkg/logger"
)

// Weights configure the provider scoring formula (§4.2), must sum to 1.
type Weights struct {
	Latency float64
	Success float64
	Region  float64
	Age     float64
}

func DefaultWeights() Weights {
	return Weights{Latency: 0.4, Success: 0.4, Region: 0.1, Age: 0.1}
}

// Config tunes fee composition and region preference.
type Config struct {
	Weights         Weights
	AgeNorm         time.Duration
	MaxPriorityFee  decimal.Decimal
	TipFloor        decimal.Decimal
	MevProtectRegions map[string]struct{}
	MevProtectionRequired func(o *model.Opportunity) bool
}

// DefaultConfig matches the spec's illustrative defaults.
func DefaultConfig() Config {
	return Config{
		Weights:        DefaultWeights(),
		AgeNorm:        5 * time.Minute,
		MaxPriorityFee: decimal.NewFromInt(1_000_000),
		TipFloor:       decimal.NewFromInt(10_000),
	}
}

// Router selects providers and composes SubmissionPlans.
type Router struct {
	cfg      Config
	registry *providerhealth.Registry
	clock    clockwork.Clock
	rpc      ports.RpcClient
	log      *logger.Logger
}

func New(cfg Config, registry *providerhealth.Registry, clock clockwork.Clock, rpc ports.RpcClient, log *logger.Logger) *Router {
	return &Router{cfg: cfg, registry: registry, clock: clock, rpc: rpc, log: log}
}

// ChooseStrategy applies the §4.2 ordered rules, first match wins.
func ChooseStrategy(o *model.Opportunity, mevProtectionRequired bool) model.Strategy {
	switch {
	case o.Kind == model.KindFlashLoanSnipe:
		return model.StrategyFlashLoan
	case o.Urgency == model.UrgencyCritical && o.MevRisk == model.MevRiskHigh:
		return model.StrategyBundle
	case mevProtectionRequired:
		return model.StrategyMevProtected
	default:
		return model.StrategyStandard
	}
}

type scored struct {
	provider model.Provider
	score    float64
}

// selectProvider scores eligible, capability-matching providers and returns
// the winner, tie-broken by lowest latency_ewma (§4.2).
func (r *Router) selectProvider(strategy model.Strategy, regionBonus func(region string) float64) (model.Provider, bool) {
	required := strategy.RequiredCapability()
	now := r.clock.Now()

	var candidates []scored
	for _, p := range r.registry.All() {
		if !p.HasCapability(required) {
			continue
		}
		if !r.registry.IsEligible(p.Name) {
			continue
		}
		latScore := 1.0 / (p.LatencyEwma.Seconds() + 1)
		var region float64
		if regionBonus != nil {
			region = regionBonus(p.Region)
		}
		ageNorm := r.cfg.AgeNorm.Seconds()
		var ageScore float64
		if ageNorm > 0 {
			ageScore = now.Sub(p.LastUsedAt).Seconds() / ageNorm
		}
		score := r.cfg.Weights.Latency*latScore +
			r.cfg.Weights.Success*p.SuccessEwma +
			r.cfg.Weights.Region*region +
			r.cfg.Weights.Age*ageScore
		candidates = append(candidates, scored{provider: p, score: score})
	}

	if len(candidates) == 0 {
		return model.Provider{}, false
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].score != candidates[j].score {
			return candidates[i].score > candidates[j].score
		}
		return candidates[i].provider.LatencyEwma < candidates[j].provider.LatencyEwma
	})
	return candidates[0].provider, true
}

// regionBonusFor returns a region-scoring function; MEV-protected plans
// prefer regions with known bundle-relay presence (§4.2).
func (r *Router) regionBonusFor(strategy model.Strategy) func(region string) float64 {
	if strategy != model.StrategyMevProtected && strategy != model.StrategyBundle {
		return nil
	}
	return func(region string) float64 {
		if r.cfg.MevProtectRegions == nil {
			return 0
		}
		if _, ok := r.cfg.MevProtectRegions[region]; ok {
			return 1
		}
		return 0
	}
}

// BuildPlan selects a provider and composes a SubmissionPlan (§4.2).
func (r *Router) BuildPlan(ctx context.Context, o *model.Opportunity) (model.SubmissionPlan, error) {
	mevRequired := false
	if r.cfg.MevProtectionRequired != nil {
		mevRequired = r.cfg.MevProtectionRequired(o)
	}
	strategy := ChooseStrategy(o, mevRequired)

	provider, ok := r.selectProvider(strategy, r.regionBonusFor(strategy))
	if !ok {
		return model.SubmissionPlan{}, errkind.New(errkind.NoRoute, "router.BuildPlan", nil)
	}

	fee := r.cfg.TipFloor // fallback seed, overwritten below if estimate succeeds
	est, err := r.rpc.FeeEstimate(ctx, string(o.Urgency))
	if err != nil {
		if r.log != nil {
			r.log.Warn(fmt.Sprintf("fee estimate failed, falling back to fee floor: %v", err))
		}
		fee = r.feeFloor()
	} else {
		fee = est.FeeLamports
	}

	fee = fee.Mul(o.Urgency.FeeMultiplier())
	if r.cfg.MaxPriorityFee.IsPositive() && fee.GreaterThan(r.cfg.MaxPriorityFee) {
		fee = r.cfg.MaxPriorityFee
	}

	tip := decimal.Zero
	if strategy == model.StrategyBundle || strategy == model.StrategyFlashLoan {
		tip = fee
		if r.cfg.TipFloor.GreaterThan(tip) {
			tip = r.cfg.TipFloor
		}
	}

	return model.SubmissionPlan{
		Provider:      provider.Name,
		PriorityFee:   fee,
		Tip:           tip,
		Strategy:      strategy,
		SkipPreflight: strategy == model.StrategyFlashLoan,
	}, nil
}

// feeFloor is the configured fallback when the fee estimator fails (§4.2).
func (r *Router) feeFloor() decimal.Decimal {
	return r.cfg.TipFloor
}
