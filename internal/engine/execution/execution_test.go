package execution

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
	"github.com/DimaJoyti/go-coffee/solana-engine/internal/engine/router"
)

type fakeQuotes struct {
	plan string
	err  error
}

func (f *fakeQuotes) GetQuote(ctx context.Context, inputMint, outputMint string, amount decimal.Decimal, slippageBps int) (ports.Quote, error) {
	if f.err != nil {
		return ports.Quote{}, f.err
	}
	return ports.Quote{InputAmount: amount, OutputAmount: amount, Plan: f.plan}, nil
}

func (f *fakeQuotes) BuildSwap(ctx context.Context, plan string) ([]string, error) {
	return []string{"tx1"}, nil
}

type fakeRpc struct{}

func (fakeRpc) Call(ctx context.Context, method string, params map[string]any) (map[string]any, error) {
	return nil, nil
}

func (fakeRpc) FeeEstimate(ctx context.Context, urgency string) (ports.FeeEstimate, error) {
	return ports.FeeEstimate{FeeLamports: decimal.NewFromInt(5000), Confidence: 0.9}, nil
}

// fakeSubmitter fails its first `failTimes` submissions with a Transient
// error, then succeeds. Each call advances the shared FakeClock by
// stepMs to simulate attempt processing latency deterministically.
type fakeSubmitter struct {
	clock     *clockwork.FakeClock
	failTimes int
	calls     int
	stepMs    time.Duration
}

func (f *fakeSubmitter) Name() string { return "P" }

func (f *fakeSubmitter) Submit(ctx context.Context, transactions []string, tip decimal.Decimal, urgency string) (ports.SubmitResult, error) {
	f.calls++
	if f.clock != nil {
		f.clock.Advance(f.stepMs)
	}
	if f.calls <= f.failTimes {
		return ports.SubmitResult{}, assertErr{"submit failed"}
	}
	return ports.SubmitResult{BundleID: "sig1"}, nil
}

func (f *fakeSubmitter) Confirm(ctx context.Context, bundleID string, timeout time.Duration) (ports.ConfirmResult, error) {
	return ports.ConfirmResult{Success: true, ExecutedPrice: decimal.NewFromInt(1), ExecutedQty: decimal.NewFromInt(100)}, nil
}

type assertErr struct{ msg string }

func (e assertErr) Error() string { return e.msg }

func newTestCore(t *testing.T, clock *clockwork.FakeClock, rnd clockwork.RandomSource, sub *fakeSubmitter, retry RetryConfig) *Core {
	t.Helper()
	registry := providerhealth.NewRegistry(providerhealth.DefaultConfig(), clock, nil, nil)
	registry.Register(model.Provider{
		Name: "P", Endpoint: "http://p", Active: true,
		Capabilities: map[model.Capability]struct{}{model.CapabilityStandardRpc: {}},
	})
	r := router.New(router.DefaultConfig(), registry, clock, fakeRpc{}, nil)
	quotes := &fakeQuotes{plan: "plan1"}
	submitters := map[string]ports.BundleSubmitter{"P": sub}
	return New(clock, rnd, quotes, registry, r, submitters, retry, MevConfig{}, nil)
}

func deadlineOpp(now, deadline time.Time) *model.Opportunity {
	return &model.Opportunity{
		ID: "o1", Kind: model.KindManualTarget, Symbols: []string{"SOL", "USDC"},
		InputAmount: decimal.NewFromInt(100), ExpectedOutput: decimal.NewFromInt(101),
		Urgency: model.UrgencyNormal, CreatedAt: now, Deadline: deadline,
	}
}

func TestBackoffDelay_RespectsBaseAndCap(t *testing.T) {
	cfg := RetryConfig{BaseMs: 100, CapMs: 800}

	// attempt 0: bound = min(800, 100*2^0) = 100
	rnd := clockwork.NewFakeRandomSource(0.5)
	d0 := BackoffDelay(rnd, cfg, 0)
	assert.Equal(t, 50*time.Millisecond, d0)

	// attempt 3: bound = min(800, 100*2^3=800) = 800
	rnd = clockwork.NewFakeRandomSource(1.0)
	d3 := BackoffDelay(rnd, cfg, 3)
	assert.Equal(t, 800*time.Millisecond, d3)
}

func TestCore_Run_RetriesTransientFailureThenSucceeds(t *testing.T) {
	start := time.Unix(0, 0)
	clock := clockwork.NewFakeClock(start)
	rnd := clockwork.NewFakeRandomSource(0.1)
	sub := &fakeSubmitter{clock: clock, failTimes: 1, stepMs: 50 * time.Millisecond}
	retry := RetryConfig{BaseMs: 100, CapMs: 800, MaxAttempts: 3}
	core := newTestCore(t, clock, rnd, sub, retry)

	o := deadlineOpp(start, start.Add(2*time.Second))

	outcome := core.Run(context.Background(), o)

	require.True(t, outcome.Success)
	assert.Equal(t, 2, sub.calls, "one failed attempt, then a successful retry")
}

// Scenario 6 (SPEC_FULL.md §8), mechanism-level: when the computed backoff
// would push the next attempt past the opportunity deadline, the retry loop
// aborts instead of sleeping past it, and the opportunity terminates as a
// non-success (Cancelled) outcome rather than exceeding its deadline.
func TestCore_Run_AbortsRetryThatWouldExceedDeadline(t *testing.T) {
	start := time.Unix(0, 0)
	clock := clockwork.NewFakeClock(start)
	rnd := clockwork.NewFakeRandomSource(1.0) // always samples the full bound
	// Every submission fails; the opportunity has just enough deadline for
	// one attempt but not for another full backoff-bounded retry.
	sub := &fakeSubmitter{clock: clock, failTimes: 1000, stepMs: 10 * time.Millisecond}
	retry := RetryConfig{BaseMs: 1000, CapMs: 1000, MaxAttempts: 5}
	core := newTestCore(t, clock, rnd, sub, retry)

	o := deadlineOpp(start, start.Add(50*time.Millisecond))

	outcome := core.Run(context.Background(), o)

	assert.False(t, outcome.Success)
	assert.Equal(t, "Cancelled", outcome.ErrorKind)
}

func TestCore_Run_RespectsMaxAttemptsBudget(t *testing.T) {
	start := time.Unix(0, 0)
	clock := clockwork.NewFakeClock(start)
	rnd := clockwork.NewFakeRandomSource(0.0)
	sub := &fakeSubmitter{clock: clock, failTimes: 1000, stepMs: time.Millisecond}
	retry := RetryConfig{BaseMs: 1, CapMs: 10, MaxAttempts: 2}
	core := newTestCore(t, clock, rnd, sub, retry)

	o := deadlineOpp(start, start.Add(time.Hour))

	outcome := core.Run(context.Background(), o)

	assert.False(t, outcome.Success)
	// maxAttempts=2 means 3 tries total (attempts 0,1,2).
	assert.Equal(t, 3, sub.calls)
}

func TestCore_Run_DeadlineAlreadyPassedNeverAttempts(t *testing.T) {
	start := time.Unix(0, 0)
	clock := clockwork.NewFakeClock(start)
	rnd := clockwork.NewFakeRandomSource(0.0)
	sub := &fakeSubmitter{clock: clock}
	retry := RetryConfig{BaseMs: 100, CapMs: 800, MaxAttempts: 3}
	core := newTestCore(t, clock, rnd, sub, retry)

	o := deadlineOpp(start.Add(-time.Hour), start.Add(-time.Minute))

	outcome := core.Run(context.Background(), o)

	assert.False(t, outcome.Success)
	assert.Equal(t, 0, sub.calls)
}

// cancelingSubmitter cancels its own context mid-Submit and returns the
// resulting ctx.Err(), simulating a caller-driven shutdown racing a
// submission in flight.
type cancelingSubmitter struct{ cancel context.CancelFunc }

func (c *cancelingSubmitter) Name() string { return "P" }

func (c *cancelingSubmitter) Submit(ctx context.Context, transactions []string, tip decimal.Decimal, urgency string) (ports.SubmitResult, error) {
	c.cancel()
	return ports.SubmitResult{}, ctx.Err()
}

func (c *cancelingSubmitter) Confirm(ctx context.Context, bundleID string, timeout time.Duration) (ports.ConfirmResult, error) {
	return ports.ConfirmResult{Success: true}, nil
}

// §7: a Submit failure caused by context cancellation must be classified
// Cancelled (terminal, not retried) and must never be counted against the
// provider's circuit breaker, unlike an ordinary Transient submit failure.
func TestCore_Run_SubmitCancellationIsTerminalAndNotCountedAgainstProvider(t *testing.T) {
	start := time.Unix(0, 0)
	clock := clockwork.NewFakeClock(start)
	rnd := clockwork.NewFakeRandomSource(0.1)
	ctx, cancel := context.WithCancel(context.Background())
	sub := &cancelingSubmitter{cancel: cancel}
	retry := RetryConfig{BaseMs: 100, CapMs: 800, MaxAttempts: 3}

	registry := providerhealth.NewRegistry(providerhealth.DefaultConfig(), clock, nil, nil)
	registry.Register(model.Provider{
		Name: "P", Endpoint: "http://p", Active: true,
		Capabilities: map[model.Capability]struct{}{model.CapabilityStandardRpc: {}},
	})
	r := router.New(router.DefaultConfig(), registry, clock, fakeRpc{}, nil)
	quotes := &fakeQuotes{plan: "plan1"}
	submitters := map[string]ports.BundleSubmitter{"P": sub}
	core := New(clock, rnd, quotes, registry, r, submitters, retry, MevConfig{}, nil)

	o := deadlineOpp(start, start.Add(2*time.Second))
	outcome := core.Run(ctx, o)

	assert.False(t, outcome.Success)
	assert.Equal(t, "Cancelled", outcome.ErrorKind)

	state, ok := registry.CircuitState("P")
	require.True(t, ok)
	assert.Equal(t, 0, state.FailureCount, "cancellation must not count as a provider failure")
}

// §7 state table: a QuoteAcquired failure is terminal even when its
// underlying cause would otherwise look retryable, and it is never
// attributed to a provider since none has been selected yet.
func TestCore_Run_QuoteAcquisitionFailureIsTerminal(t *testing.T) {
	start := time.Unix(0, 0)
	clock := clockwork.NewFakeClock(start)
	rnd := clockwork.NewFakeRandomSource(0.1)
	sub := &fakeSubmitter{clock: clock}
	retry := RetryConfig{BaseMs: 100, CapMs: 800, MaxAttempts: 3}

	registry := providerhealth.NewRegistry(providerhealth.DefaultConfig(), clock, nil, nil)
	registry.Register(model.Provider{
		Name: "P", Endpoint: "http://p", Active: true,
		Capabilities: map[model.Capability]struct{}{model.CapabilityStandardRpc: {}},
	})
	r := router.New(router.DefaultConfig(), registry, clock, fakeRpc{}, nil)
	quotes := &fakeQuotes{err: assertErr{"quote provider unavailable"}}
	submitters := map[string]ports.BundleSubmitter{"P": sub}
	core := New(clock, rnd, quotes, registry, r, submitters, retry, MevConfig{}, nil)

	o := deadlineOpp(start, start.Add(2*time.Second))
	outcome := core.Run(context.Background(), o)

	assert.False(t, outcome.Success)
	assert.Equal(t, "PermanentExternal", outcome.ErrorKind)
	assert.Equal(t, 0, sub.calls, "no submission should be attempted when the quote never acquires")
}

func TestMaxAttemptsFor_DefaultsPerKind(t *testing.T) {
	cfg := RetryConfig{}
	assert.Equal(t, 0, MaxAttemptsFor(model.KindStatistical, cfg))
	assert.Equal(t, 2, MaxAttemptsFor(model.KindFlashLoanSnipe, cfg))
	assert.Equal(t, 3, MaxAttemptsFor(model.KindTriangular, cfg))

	overridden := RetryConfig{MaxAttempts: 7}
	assert.Equal(t, 7, MaxAttemptsFor(model.KindStatistical, overridden))
}
