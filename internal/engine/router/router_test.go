package router

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DimaJoyti/go-coffee/solana-engine/internal/engine/clockwork"
	"github.com/DimaJoyti/go-coffee/solana-engine/internal/engine/model"
	"github.com/DimaJoyti/go-coffee/solana-engine/internal/engine/ports"
	"github.com/DimaJoyti/go-coffee/solana-engine/internal/engine/providerhealth"
)

type fakeRpc struct {
	fee decimal.Decimal
	err error
}

func (f fakeRpc) Call(ctx context.Context, method string, params map[string]any) (map[string]any, error) {
	return nil, nil
}

func (f fakeRpc) FeeEstimate(ctx context.Context, urgency string) (ports.FeeEstimate, error) {
	if f.err != nil {
		return ports.FeeEstimate{}, f.err
	}
	return ports.FeeEstimate{FeeLamports: f.fee, Confidence: 0.9}, nil
}

func TestChooseStrategy_OrderedRules(t *testing.T) {
	loanAmt := decimal.NewFromInt(10)
	snipe := &model.Opportunity{Kind: model.KindFlashLoanSnipe, FlashLoanAmount: &loanAmt}
	assert.Equal(t, model.StrategyFlashLoan, ChooseStrategy(snipe, false))

	criticalMev := &model.Opportunity{Kind: model.KindManualTarget, Urgency: model.UrgencyCritical, MevRisk: model.MevRiskHigh}
	assert.Equal(t, model.StrategyBundle, ChooseStrategy(criticalMev, false))

	mevRequired := &model.Opportunity{Kind: model.KindManualTarget, Urgency: model.UrgencyNormal, MevRisk: model.MevRiskLow}
	assert.Equal(t, model.StrategyMevProtected, ChooseStrategy(mevRequired, true))

	standard := &model.Opportunity{Kind: model.KindManualTarget, Urgency: model.UrgencyNormal, MevRisk: model.MevRiskLow}
	assert.Equal(t, model.StrategyStandard, ChooseStrategy(standard, false))
}

func TestBuildPlan_SelectsBestScoringEligibleProvider(t *testing.T) {
	clock := clockwork.NewFakeClock(time.Now())
	registry := providerhealth.NewRegistry(providerhealth.DefaultConfig(), clock, nil, nil)
	registry.Register(model.Provider{
		Name: "slow", Active: true, LatencyEwma: 500 * time.Millisecond, SuccessEwma: 0.9,
		Capabilities: map[model.Capability]struct{}{model.CapabilityStandardRpc: {}},
	})
	registry.Register(model.Provider{
		Name: "fast", Active: true, LatencyEwma: 10 * time.Millisecond, SuccessEwma: 0.9,
		Capabilities: map[model.Capability]struct{}{model.CapabilityStandardRpc: {}},
	})

	r := New(DefaultConfig(), registry, clock, fakeRpc{fee: decimal.NewFromInt(5000)}, nil)
	o := &model.Opportunity{Kind: model.KindManualTarget, Urgency: model.UrgencyNormal}

	plan, err := r.BuildPlan(context.Background(), o)

	require.NoError(t, err)
	assert.Equal(t, "fast", plan.Provider)
}

func TestBuildPlan_NoRouteWhenNoEligibleProvider(t *testing.T) {
	clock := clockwork.NewFakeClock(time.Now())
	registry := providerhealth.NewRegistry(providerhealth.DefaultConfig(), clock, nil, nil)
	r := New(DefaultConfig(), registry, clock, fakeRpc{fee: decimal.NewFromInt(5000)}, nil)

	_, err := r.BuildPlan(context.Background(), &model.Opportunity{Kind: model.KindManualTarget})

	require.Error(t, err)
}

func TestBuildPlan_ExcludesProviderWithOpenCircuit(t *testing.T) {
	clock := clockwork.NewFakeClock(time.Now())
	registry := providerhealth.NewRegistry(providerhealth.DefaultConfig(), clock, nil, nil)
	registry.Register(model.Provider{
		Name: "P", Active: true, Capabilities: map[model.Capability]struct{}{model.CapabilityStandardRpc: {}},
	})
	for i := 0; i < providerhealth.DefaultConfig().FailureThreshold; i++ {
		registry.RecordFailure("P", 1.0)
	}

	r := New(DefaultConfig(), registry, clock, fakeRpc{fee: decimal.NewFromInt(5000)}, nil)
	_, err := r.BuildPlan(context.Background(), &model.Opportunity{Kind: model.KindManualTarget})

	require.Error(t, err)
}

func TestBuildPlan_FallsBackToFeeFloorWhenEstimateFails(t *testing.T) {
	clock := clockwork.NewFakeClock(time.Now())
	registry := providerhealth.NewRegistry(providerhealth.DefaultConfig(), clock, nil, nil)
	registry.Register(model.Provider{
		Name: "P", Active: true, Capabilities: map[model.Capability]struct{}{model.CapabilityStandardRpc: {}},
	})

	cfg := DefaultConfig()
	r := New(cfg, registry, clock, fakeRpc{err: assertErr("rpc down")}, nil)
	o := &model.Opportunity{Kind: model.KindManualTarget, Urgency: model.UrgencyNormal}

	plan, err := r.BuildPlan(context.Background(), o)

	require.NoError(t, err)
	assert.True(t, plan.PriorityFee.Equal(cfg.TipFloor.Mul(o.Urgency.FeeMultiplier())))
}

func TestBuildPlan_CapsPriorityFeeAtMax(t *testing.T) {
	clock := clockwork.NewFakeClock(time.Now())
	registry := providerhealth.NewRegistry(providerhealth.DefaultConfig(), clock, nil, nil)
	registry.Register(model.Provider{
		Name: "P", Active: true, Capabilities: map[model.Capability]struct{}{model.CapabilityStandardRpc: {}},
	})

	cfg := DefaultConfig()
	cfg.MaxPriorityFee = decimal.NewFromInt(100)
	r := New(cfg, registry, clock, fakeRpc{fee: decimal.NewFromInt(1_000_000)}, nil)
	o := &model.Opportunity{Kind: model.KindManualTarget, Urgency: model.UrgencyCritical}

	plan, err := r.BuildPlan(context.Background(), o)

	require.NoError(t, err)
	assert.True(t, plan.PriorityFee.Equal(cfg.MaxPriorityFee))
}

func TestBuildPlan_FlashLoanSetsTipAndSkipsPreflight(t *testing.T) {
	clock := clockwork.NewFakeClock(time.Now())
	registry := providerhealth.NewRegistry(providerhealth.DefaultConfig(), clock, nil, nil)
	registry.Register(model.Provider{
		Name: "P", Active: true,
		Capabilities: map[model.Capability]struct{}{model.CapabilityBundle: {}},
	})

	loanAmt := decimal.NewFromInt(10)
	r := New(DefaultConfig(), registry, clock, fakeRpc{fee: decimal.NewFromInt(5000)}, nil)
	o := &model.Opportunity{Kind: model.KindFlashLoanSnipe, FlashLoanAmount: &loanAmt, Urgency: model.UrgencyCritical}

	plan, err := r.BuildPlan(context.Background(), o)

	require.NoError(t, err)
	assert.Equal(t, model.StrategyFlashLoan, plan.Strategy)
	assert.True(t, plan.SkipPreflight)
	assert.True(t, plan.Tip.GreaterThan(decimal.Zero))
}

type assertErr string

func (e assertErr) Error() string { return string(e) }
