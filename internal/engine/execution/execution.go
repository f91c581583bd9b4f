// Package execution implements the Bundle/Retry Execution Core (§4.3): the
// QuoteAcquired→BuildPlan→Submit→AwaitConfirm state machine with
// exponential-backoff-with-full-jitter retries and MEV-protected timing.
package execution

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/shopspring/decimal"

	"github.com/DimaJoyti/go-coffee/solana-engine/internal/engine/clockwork"
	"github.com/DimaJoyti/go-coffee/solana-engine/internal/engine/errkind"
	"github.com/DimaJoyti/go-coffee/solana-engine/internal/engine/model"
	"github.com/DimaJoyti/go-coffee/solana-engine/internal/engine/ports"
	"github.com/DimaJoyti/go-coffee/solana-engine/internal/engine/providerhealth"
	"github.com/DimaJoyti/go-coffee/solana-engine/internal/engine/router"
	"github.com/DimaJoyti/go-coffee/solana-engine/pkg/logger"
)

// State is one state of the execution state machine (§4.3).
type State string

const (
	StateQuoteAcquired State = "QuoteAcquired"
	StateBuildPlan      State = "BuildPlan"
	StateSubmit         State = "Submit"
	StateAwaitConfirm   State = "AwaitConfirm"
	StateTerminalSucc   State = "Terminal(Success)"
	StateTerminalFail   State = "Terminal(Fail)"
)

// RetryConfig tunes backoff and attempt budget (§6 retry.*).
type RetryConfig struct {
	BaseMs      int64
	CapMs       int64
	MaxAttempts int
}

// MaxAttemptsFor returns the default max-retry budget per opportunity kind
// (§4.3: "default 3 for arbitrage, 2 for snipes, 0 for statistical").
func MaxAttemptsFor(kind model.OpportunityKind, cfg RetryConfig) int {
	if cfg.MaxAttempts > 0 {
		return cfg.MaxAttempts
	}
	switch kind {
	case model.KindStatistical:
		return 0
	case model.KindFlashLoanSnipe:
		return 2
	default:
		return 3
	}
}

// MevConfig tunes MEV-protected submission timing (§6 mev.jitter_cap_ms).
type MevConfig struct {
	JitterCapMs int64
}

// Core drives opportunities to a terminal ExecutionOutcome.
type Core struct {
	clock    clockwork.Clock
	rnd      clockwork.RandomSource
	quotes   ports.QuoteProvider
	registry *providerhealth.Registry
	router   *router.Router
	submitters map[string]ports.BundleSubmitter
	retry    RetryConfig
	mev      MevConfig
	log      *logger.Logger
}

func New(
	clock clockwork.Clock,
	rnd clockwork.RandomSource,
	quotes ports.QuoteProvider,
	registry *providerhealth.Registry,
	r *router.Router,
	submitters map[string]ports.BundleSubmitter,
	retry RetryConfig,
	mev MevConfig,
	log *logger.Logger,
) *Core {
	return &Core{
		clock: clock, rnd: rnd, quotes: quotes, registry: registry,
		router: r, submitters: submitters, retry: retry, mev: mev, log: log,
	}
}

// BackoffDelay computes the full-jitter exponential backoff for attempt i
// (§4.3): delay_i = random(0, min(cap, base*2^i)).
func BackoffDelay(rnd clockwork.RandomSource, cfg RetryConfig, attempt int) time.Duration {
	capMs := float64(cfg.CapMs)
	candidate := float64(cfg.BaseMs) * math.Pow(2, float64(attempt))
	bound := candidate
	if capMs > 0 && capMs < bound {
		bound = capMs
	}
	sample := rnd.Float64() * bound
	return time.Duration(sample) * time.Millisecond
}

// Run drives a single opportunity through the state machine to a terminal
// ExecutionOutcome, retrying per policy and respecting cancellation and the
// opportunity deadline.
func (c *Core) Run(ctx context.Context, o *model.Opportunity) model.ExecutionOutcome {
	start := c.clock.Now()
	maxAttempts := MaxAttemptsFor(o.Kind, c.retry)

	var lastErr *errkind.EngineError
	for attempt := 0; attempt <= maxAttempts; attempt++ {
		if ctx.Err() != nil {
			return c.terminal(o, false, start, errkind.New(errkind.Cancelled, "execution.Run", ctx.Err()))
		}
		now := c.clock.Now()
		if !now.Before(o.Deadline) {
			return c.terminal(o, false, start, errkind.New(errkind.Cancelled, "execution.Run", fmt.Errorf("deadline exceeded")))
		}

		outcome, err := c.attempt(ctx, o)
		if err == nil {
			return c.finish(o, outcome, start)
		}
		lastErr = err

		if !err.Retryable() || attempt == maxAttempts {
			break
		}

		delay := BackoffDelay(c.rnd, c.retry, attempt)
		if c.clock.Now().Add(delay).After(o.Deadline) {
			lastErr = errkind.New(errkind.Cancelled, "execution.Run", fmt.Errorf("retry would exceed deadline"))
			break
		}
		if sleepErr := c.clock.Sleep(ctx, delay); sleepErr != nil {
			lastErr = errkind.New(errkind.Cancelled, "execution.Run", sleepErr)
			break
		}
	}

	return c.terminal(o, false, start, lastErr)
}

// attempt runs one pass: QuoteAcquired → BuildPlan → Submit → AwaitConfirm.
func (c *Core) attempt(ctx context.Context, o *model.Opportunity) (model.ExecutionOutcome, *errkind.EngineError) {
	// QuoteAcquired
	quote, qerr := c.acquireQuotes(ctx, o)
	if qerr != nil {
		return model.ExecutionOutcome{}, qerr
	}

	// BuildPlan
	plan, perr := c.router.BuildPlan(ctx, o)
	if perr != nil {
		if ee, ok := perr.(*errkind.EngineError); ok {
			return model.ExecutionOutcome{}, ee
		}
		return model.ExecutionOutcome{}, errkind.New(errkind.Invariant, "execution.BuildPlan", perr)
	}

	submitter, ok := c.submitters[plan.Provider]
	if !ok {
		return model.ExecutionOutcome{}, errkind.New(errkind.NoRoute, "execution.attempt", fmt.Errorf("no submitter for provider %s", plan.Provider))
	}

	// MEV-protected timing: uniform random delay before Submit.
	if plan.Strategy == model.StrategyMevProtected && c.mev.JitterCapMs > 0 {
		d := time.Duration(c.rnd.Float64()*float64(c.mev.JitterCapMs)) * time.Millisecond
		if err := c.clock.Sleep(ctx, d); err != nil {
			return model.ExecutionOutcome{}, errkind.New(errkind.Cancelled, "execution.mevDelay", err)
		}
	}

	txs, berr := c.quotes.BuildSwap(ctx, quote.Plan)
	if berr != nil {
		kind := c.classifyStageError(ctx, plan.Provider, "build swap", berr)
		return model.ExecutionOutcome{}, errkind.New(kind, "execution.BuildSwap", berr)
	}
	_ = txs

	// Submit
	submitStart := c.clock.Now()
	res, serr := submitter.Submit(ctx, txs, plan.Tip, string(o.Urgency))
	if serr != nil {
		kind := c.classifyStageError(ctx, plan.Provider, "submit", serr)
		return model.ExecutionOutcome{}, errkind.New(kind, "execution.Submit", serr)
	}
	latency := c.clock.Now().Sub(submitStart)

	// AwaitConfirm
	confirm, cerr := submitter.Confirm(ctx, res.BundleID, plan.Timeout)
	if cerr != nil {
		kind := c.classifyStageError(ctx, plan.Provider, "await confirm", cerr)
		return model.ExecutionOutcome{}, errkind.New(kind, "execution.AwaitConfirm", cerr)
	}
	if !confirm.Success {
		kind := c.classifyStageError(ctx, plan.Provider, "await confirm", fmt.Errorf("reverted"))
		return model.ExecutionOutcome{}, errkind.New(kind, "execution.AwaitConfirm", fmt.Errorf("reverted"))
	}

	c.registry.RecordSuccess(plan.Provider, latency)

	slippage := decimal.Zero
	if o.ExpectedOutput.IsPositive() {
		slippage = confirm.ExecutedPrice.Sub(o.ExpectedOutput.Div(o.InputAmount)).Abs().
			Div(o.ExpectedOutput.Div(o.InputAmount)).Mul(decimal.NewFromInt(100))
	}

	return model.ExecutionOutcome{
		Success:       true,
		ExecutedPrice: confirm.ExecutedPrice,
		ExecutedQty:   confirm.ExecutedQty,
		SlippagePct:   slippage,
		Fees:          confirm.Fees,
		TxHash:        confirm.TxHash,
		BundleID:      res.BundleID,
		ProviderUsed:  plan.Provider,
	}, nil
}

// acquireQuotes failures are terminal (§7 state table: QuoteAcquired does
// not retry) and are never attributed to a provider, since no provider has
// been selected yet at this stage.
func (c *Core) acquireQuotes(ctx context.Context, o *model.Opportunity) (ports.Quote, *errkind.EngineError) {
	if len(o.Symbols) == 0 {
		return ports.Quote{}, errkind.New(errkind.Invariant, "execution.acquireQuotes", fmt.Errorf("opportunity has no symbols"))
	}
	inputMint := o.Symbols[0]
	outputMint := o.Symbols[len(o.Symbols)-1]
	q, err := c.quotes.GetQuote(ctx, inputMint, outputMint, o.InputAmount, o.MaxSlippageBps)
	if err != nil {
		if ctx.Err() != nil {
			return ports.Quote{}, errkind.New(errkind.Cancelled, "execution.acquireQuotes", err)
		}
		return ports.Quote{}, errkind.New(errkind.PermanentExternal, "execution.acquireQuotes", err)
	}
	return q, nil
}

// classifyStageError classifies a Submit/AwaitConfirm-stage failure: a
// context cancellation is reported as Cancelled and never counted against
// provider health, while any other failure is Transient and retryable
// (§7 state table).
func (c *Core) classifyStageError(ctx context.Context, provider, stage string, err error) errkind.Kind {
	if ctx.Err() != nil {
		return errkind.Cancelled
	}
	kind := errkind.Transient
	c.recordFailure(provider, kind)
	if c.log != nil {
		c.log.Warn(fmt.Sprintf("%s failed on provider %s: %v", stage, provider, err))
	}
	return kind
}

func (c *Core) recordFailure(provider string, kind errkind.Kind) {
	ee := errkind.New(kind, "", nil)
	if ee.CountsAgainstProviderHealth() {
		c.registry.RecordFailure(provider, ee.FailureWeight())
	}
}

func (c *Core) finish(o *model.Opportunity, outcome model.ExecutionOutcome, start time.Time) model.ExecutionOutcome {
	outcome.ElapsedMs = c.clock.Now().Sub(start).Milliseconds()
	outcome.Timestamp = c.clock.Now()
	return outcome
}

func (c *Core) terminal(o *model.Opportunity, success bool, start time.Time, err *errkind.EngineError) model.ExecutionOutcome {
	out := model.ExecutionOutcome{
		Success:      success,
		ElapsedMs:    c.clock.Now().Sub(start).Milliseconds(),
		ProviderUsed: "",
		Timestamp:    c.clock.Now(),
	}
	if err != nil {
		out.ErrorKind = string(err.Kind)
		out.ErrorMessage = err.Error()
	}
	return out
}
