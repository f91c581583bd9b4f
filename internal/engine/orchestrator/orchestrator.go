// Package orchestrator wires the Clock/RNG → Metrics/Alerts → data model →
// provider health → risk engine → router → execution core → scheduler →
// producers dependency chain (SPEC_FULL.md §2) and exposes the library
// surface named in §6: submit_opportunity, submit_event, snapshot_portfolio,
// stats, halt, resume.
package orchestrator

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/DimaJoyti/go-coffee/solana-engine/internal/engine/alerts"
	"github.com/DimaJoyti/go-coffee/solana-engine/internal/engine/arbitrage"
	"github.com/DimaJoyti/go-coffee/solana-engine/internal/engine/clockwork"
	"github.com/DimaJoyti/go-coffee/solana-engine/internal/engine/execution"
	"github.com/DimaJoyti/go-coffee/solana-engine/internal/engine/metrics"
	"github.com/DimaJoyti/go-coffee/solana-engine/internal/engine/model"
	"github.com/DimaJoyti/go-coffee/solana-engine/internal/engine/ports"
	"github.com/DimaJoyti/go-coffee/solana-engine/internal/engine/providerhealth"
	"github.com/DimaJoyti/go-coffee/solana-engine/internal/engine/risk"
	"github.com/DimaJoyti/go-coffee/solana-engine/internal/engine/router"
	"github.com/DimaJoyti/go-coffee/solana-engine/internal/engine/scheduler"
	"github.com/DimaJoyti/go-coffee/solana-engine/internal/engine/snipe"
	"github.com/DimaJoyti/go-coffee/solana-engine/pkg/logger"
)

// Config aggregates every sub-component's configuration.
type Config struct {
	Workers   int
	Scheduler scheduler.Config
	Risk      risk.Config
	Router    router.Config
	Retry     execution.RetryConfig
	Mev       execution.MevConfig
	Sniper    snipe.Config
	Arbitrage arbitrage.Config
}

// RejectReason values specific to the detector-fed submission surfaces
// below (§4.6): no signal cleared its profit floor, or the detector has
// already emitted this exact opportunity id.
const (
	RejectNoOpportunity        scheduler.RejectReason = "NoOpportunity"
	RejectDuplicateOpportunity scheduler.RejectReason = "DuplicateOpportunity"
)

// Engine is the top-level orchestrator exposing the §6 library surface.
type Engine struct {
	cfg     Config
	log     *logger.Logger
	clock   clockwork.Clock
	metrics metrics.Sink
	alertMgr *alerts.Manager
	persistence ports.PersistenceSink

	registry   *providerhealth.Registry
	riskEngine *risk.Engine
	routerInst *router.Router
	execCore   *execution.Core
	sched      *scheduler.Scheduler
	sniper     *snipe.Evaluator
	detector   *arbitrage.Detector

	mevAssessor func(o *model.Opportunity) model.MevRisk

	wg       sync.WaitGroup
	cancel   context.CancelFunc
	started  bool
	mu       sync.Mutex
}

// Dependencies bundles the external collaborators the orchestrator wires in.
type Dependencies struct {
	Clock       clockwork.Clock
	Random      clockwork.RandomSource
	Quotes      ports.QuoteProvider
	Submitters  map[string]ports.BundleSubmitter
	Rpc         ports.RpcClient
	Persistence ports.PersistenceSink
	Blacklist   snipe.Blacklist
	Metrics     metrics.Sink
	AlertMgr    *alerts.Manager
	MevAssessor func(o *model.Opportunity) model.MevRisk
}

// New wires every component in dependency order (§2) and returns a ready
// Engine; callers must invoke Run to start the worker pool and background
// sweepers.
func New(cfg Config, providers []model.Provider, deps Dependencies, log *logger.Logger) *Engine {
	named := func(name string) *logger.Logger {
		if log == nil {
			return nil
		}
		return log.Named(name)
	}

	var alertSink alerts.Sink
	if deps.AlertMgr != nil {
		alertSink = deps.AlertMgr
	}
	registry := providerhealth.NewRegistry(providerhealth.DefaultConfig(), deps.Clock, deps.Metrics, alertSink)
	for _, p := range providers {
		registry.Register(p)
	}

	portfolio := model.NewPortfolio(decimal.NewFromInt(0))
	riskEngine := risk.New(cfg.Risk, deps.Clock, deps.Metrics, deps.AlertMgr, portfolio, named("risk"))

	routerInst := router.New(cfg.Router, registry, deps.Clock, deps.Rpc, named("router"))
	execCore := execution.New(deps.Clock, deps.Random, deps.Quotes, registry, routerInst, deps.Submitters, cfg.Retry, cfg.Mev, named("execution"))
	sched := scheduler.New(cfg.Scheduler, deps.Clock, riskEngine, deps.Metrics, named("scheduler"))
	sniper := snipe.New(cfg.Sniper, deps.Clock, deps.Blacklist, deps.Quotes, named("snipe"))
	detector := arbitrage.New(cfg.Arbitrage, deps.Clock, named("arbitrage"))

	mevAssessor := deps.MevAssessor
	if mevAssessor == nil {
		mevAssessor = func(o *model.Opportunity) model.MevRisk { return o.MevRisk }
	}

	return &Engine{
		cfg:         cfg,
		log:         log,
		clock:       deps.Clock,
		metrics:     deps.Metrics,
		alertMgr:    deps.AlertMgr,
		persistence: deps.Persistence,
		registry:    registry,
		riskEngine:  riskEngine,
		routerInst:  routerInst,
		execCore:    execCore,
		sched:       sched,
		sniper:      sniper,
		detector:    detector,
		mevAssessor: mevAssessor,
	}
}

// SubmitOpportunity admits an opportunity to the priority scheduler.
// Exposed surface op: `submit_opportunity` (§6).
func (e *Engine) SubmitOpportunity(o *model.Opportunity) scheduler.SubmitResult {
	if err := o.Validate(); err != nil {
		if e.log != nil {
			e.log.Warn(fmt.Sprintf("rejected invalid opportunity: %v", err))
		}
		return scheduler.SubmitResult{Accepted: false, Reason: scheduler.RejectDeadlinePassed}
	}
	return e.sched.Submit(o, e.mevAssessor(o))
}

// SubmitEvent converts a new-pool event into a FlashLoanSnipe opportunity via
// the Snipe Feasibility Evaluator, then submits it. Exposed surface op:
// `submit_event` (§6).
func (e *Engine) SubmitEvent(ctx context.Context, evt snipe.PoolCreationEvent, minLoan, maxLoan decimal.Decimal) (scheduler.SubmitResult, error) {
	o, err := e.sniper.Evaluate(ctx, evt, minLoan, maxLoan)
	if err != nil {
		return scheduler.SubmitResult{Accepted: false, Reason: scheduler.RejectReason("SnipeRejected")}, err
	}
	return e.SubmitOpportunity(o), nil
}

// SubmitTriangularCycle feeds a 3-leg rate snapshot to the Arbitrage
// Opportunity Detector and forwards any cleared opportunity to the
// scheduler (§4.6).
func (e *Engine) SubmitTriangularCycle(symbols, venues [3]string, rateA, rateB, rateC, inputAmount decimal.Decimal) scheduler.SubmitResult {
	o := e.detector.DetectTriangular(symbols, venues, rateA, rateB, rateC, inputAmount)
	return e.submitDetected(o)
}

// SubmitCrossVenuePrices feeds a two-venue price pair to the detector and
// forwards any cleared opportunity to the scheduler (§4.6).
func (e *Engine) SubmitCrossVenuePrices(symbol, venueA, venueB string, priceA, priceB, inputAmount decimal.Decimal) scheduler.SubmitResult {
	o := e.detector.DetectCrossVenue(symbol, venueA, venueB, priceA, priceB, inputAmount)
	return e.submitDetected(o)
}

// ObserveVenuePrice feeds a rolling price sample to the detector's
// mean-reversion window and forwards any cleared opportunity to the
// scheduler (§4.6).
func (e *Engine) ObserveVenuePrice(symbol string, price, inputAmount decimal.Decimal) scheduler.SubmitResult {
	o := e.detector.ObserveStatistical(symbol, price, inputAmount)
	return e.submitDetected(o)
}

// submitDetected forwards a detector-produced opportunity to the scheduler,
// rejecting nil (no signal cleared its profit floor) and already-seen ids
// (the detector's own idempotence guard).
func (e *Engine) submitDetected(o *model.Opportunity) scheduler.SubmitResult {
	if o == nil {
		return scheduler.SubmitResult{Accepted: false, Reason: RejectNoOpportunity}
	}
	if e.detector.Seen(o.ID) {
		return scheduler.SubmitResult{Accepted: false, Reason: RejectDuplicateOpportunity}
	}
	return e.SubmitOpportunity(o)
}

// SnapshotPortfolio returns a read-only Portfolio snapshot. Exposed surface
// op: `snapshot_portfolio` (§6).
func (e *Engine) SnapshotPortfolio() model.Portfolio {
	return e.riskEngine.Snapshot()
}

// Stats is the shape returned by the `stats` operation (§6), supplemented
// per SPEC_FULL.md §12 with per-component health.
type Stats struct {
	QueueDepth   int
	Halted       bool
	HaltReason   risk.HaltReason
	Providers    []ProviderStat
	Portfolio    model.Portfolio
}

// ProviderStat summarizes one provider's live health for `stats`.
type ProviderStat struct {
	Name        string
	Active      bool
	CircuitState model.CircuitPhase
	SuccessEwma float64
	LatencyEwma time.Duration
}

// Stats reports queue depth, halt state, provider health, and portfolio
// snapshot. Exposed surface op: `stats` (§6).
func (e *Engine) Stats() Stats {
	var providerStats []ProviderStat
	for _, p := range e.registry.All() {
		cs, _ := e.registry.CircuitState(p.Name)
		providerStats = append(providerStats, ProviderStat{
			Name:         p.Name,
			Active:       p.Active,
			CircuitState: cs.State,
			SuccessEwma:  p.SuccessEwma,
			LatencyEwma:  p.LatencyEwma,
		})
	}
	return Stats{
		QueueDepth: e.sched.Len(),
		Halted:     e.riskEngine.IsHalted(),
		HaltReason: e.riskEngine.HaltReasonValue(),
		Providers:  providerStats,
		Portfolio:  e.riskEngine.Snapshot(),
	}
}

// Halt opens the global circuit manually. Exposed surface op: `halt` (§6).
func (e *Engine) Halt() { e.riskEngine.ManualHalt() }

// Resume clears the global halt. Exposed surface op: `resume` (§6).
func (e *Engine) Resume() { e.riskEngine.Resume() }

// Run starts the worker pool and the expiry sweeper; it blocks until ctx is
// cancelled, then drains in-flight work (§9 "explicit task handles so
// shutdown can drain in-flight work deterministically").
func (e *Engine) Run(ctx context.Context) {
	e.mu.Lock()
	if e.started {
		e.mu.Unlock()
		return
	}
	e.started = true
	runCtx, cancel := context.WithCancel(ctx)
	e.cancel = cancel
	e.mu.Unlock()

	e.wg.Add(1)
	go func() {
		defer e.wg.Done()
		e.sched.RunExpirySweeper(runCtx, 500*time.Millisecond)
	}()

	workers := e.cfg.Workers
	if workers <= 0 {
		workers = 4
	}
	for i := 0; i < workers; i++ {
		e.wg.Add(1)
		go e.workerLoop(runCtx)
	}

	<-runCtx.Done()
	e.wg.Wait()
}

// Stop cancels the run context and waits for workers to drain.
func (e *Engine) Stop() {
	e.mu.Lock()
	cancel := e.cancel
	e.mu.Unlock()
	if cancel != nil {
		cancel()
	}
}

func (e *Engine) workerLoop(ctx context.Context) {
	defer e.wg.Done()
	for {
		opp, err := e.sched.Next(ctx)
		if err != nil {
			return
		}
		e.executeOne(ctx, opp)
	}
}

func (e *Engine) executeOne(ctx context.Context, o *model.Opportunity) {
	approval := e.riskEngine.Approve(o, 1.0, 1.0, 1.0)
	if !approval.Approved {
		if e.metrics != nil {
			e.metrics.IncOpportunityRejected(string(approval.Reason))
		}
		return
	}

	outcome := e.execCore.Run(ctx, o)
	e.riskEngine.ApplyOutcome(o, outcome)

	result := "fail"
	if outcome.Success {
		result = "success"
	}
	if e.metrics != nil {
		e.metrics.IncOpportunityExecuted(string(o.Kind), result)
		e.metrics.ObserveExecutionLatencyMs(string(o.Kind), float64(outcome.ElapsedMs))
		pf := e.riskEngine.Snapshot()
		e.metrics.SetPortfolioValue(pf.TotalValue.InexactFloat64())
		e.metrics.SetDrawdownPct(pf.Drawdown().InexactFloat64())
	}

	if e.alertMgr != nil {
		if outcome.Success {
			e.alertMgr.Emit(alerts.Event{Type: alerts.TradeExecuted, Severity: alerts.SeverityInfo, Message: o.ID})
		} else {
			e.alertMgr.Emit(alerts.Event{
				Type:     alerts.TradeFailed,
				Severity: alerts.SeverityWarning,
				Message:  o.ID,
				Fields:   map[string]string{"kind": outcome.ErrorKind, "reason": outcome.ErrorMessage},
			})
		}
	}

	if e.persistence != nil {
		_ = e.persistence.RecordOutcome(ctx, string(o.Kind), outcome)
	}
}
