package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/DimaJoyti/go-coffee/solana-engine/internal/defi"
	"github.com/DimaJoyti/go-coffee/solana-engine/internal/engine/alerts"
	"github.com/DimaJoyti/go-coffee/solana-engine/internal/engine/arbitrage"
	"github.com/DimaJoyti/go-coffee/solana-engine/internal/engine/clockwork"
	"github.com/DimaJoyti/go-coffee/solana-engine/internal/engine/execution"
	"github.com/DimaJoyti/go-coffee/solana-engine/internal/engine/metrics"
	"github.com/DimaJoyti/go-coffee/solana-engine/internal/engine/model"
	"github.com/DimaJoyti/go-coffee/solana-engine/internal/engine/orchestrator"
	"github.com/DimaJoyti/go-coffee/solana-engine/internal/engine/ports"
	"github.com/DimaJoyti/go-coffee/solana-engine/internal/engine/quotes"
	"github.com/DimaJoyti/go-coffee/solana-engine/internal/engine/risk"
	"github.com/DimaJoyti/go-coffee/solana-engine/internal/engine/router"
	"github.com/DimaJoyti/go-coffee/solana-engine/internal/engine/scheduler"
	"github.com/DimaJoyti/go-coffee/solana-engine/internal/engine/snipe"
	"github.com/DimaJoyti/go-coffee/solana-engine/internal/engine/solanarpc"
	"github.com/DimaJoyti/go-coffee/solana-engine/pkg/config"
	"github.com/DimaJoyti/go-coffee/solana-engine/pkg/logger"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load("config/config.yaml")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	appLogger := logger.NewLogger(cfg.Logging)
	defer appLogger.Sync()

	endpoint := cfg.Blockchain.Solana.RPCURL
	if endpoint == "" {
		endpoint = rpcDevnetFallback
	}

	rpcClient := solanarpc.New(endpoint, "primary", appLogger)
	submitter := solanarpc.NewStandardSubmitter(endpoint, "primary", appLogger)

	jupiter := defi.NewJupiterClient(appLogger)
	quoteProvider := quotes.NewJupiterAdapter(jupiter, cfg.Blockchain.Solana.Cluster)

	metricsSink := metrics.NewPrometheusSink()
	alertMgr := alerts.NewManager(256, func(e alerts.Event) {
		appLogger.Info(fmt.Sprintf("alert: %s: %s", e.Type, e.Message))
	})

	providers := []model.Provider{
		{
			Name:     "primary",
			Endpoint: endpoint,
			Region:   "us-east",
			Active:   true,
			Capabilities: map[model.Capability]struct{}{
				model.CapabilityStandardRpc: {},
			},
		},
	}

	deps := orchestrator.Dependencies{
		Clock:      clockwork.RealClock{},
		Random:     clockwork.NewRealRandomSource(time.Now().UnixNano()),
		Quotes:     quoteProvider,
		Submitters: map[string]ports.BundleSubmitter{"primary": submitter},
		Rpc:        rpcClient,
		Blacklist:  snipe.NewMapBlacklist(),
		Metrics:    metricsSink,
		AlertMgr:   alertMgr,
	}

	engineCfg := orchestrator.Config{
		Workers:   cfg.Engine.Executor.Workers,
		Scheduler: scheduler.DefaultConfig(),
		Risk:      risk.DefaultConfig(),
		Router:    router.DefaultConfig(),
		Retry:     execution.RetryConfig{BaseMs: cfg.Engine.Retry.BaseMs, CapMs: cfg.Engine.Retry.CapMs, MaxAttempts: cfg.Engine.Retry.MaxAttempts},
		Mev:       execution.MevConfig{JitterCapMs: cfg.Engine.Mev.JitterCapMs},
		Sniper:    snipe.DefaultConfig(),
		Arbitrage: arbitrage.DefaultConfig(),
	}
	if engineCfg.Workers <= 0 {
		engineCfg.Workers = 4
	}

	eng := orchestrator.New(engineCfg, providers, deps, appLogger)

	mux := http.NewServeMux()
	mux.Handle("/metrics", metricsSink.Handler())
	metricsServer := &http.Server{Addr: fmt.Sprintf(":%d", cfg.Monitoring.Prometheus.Port), Handler: mux}

	go func() {
		appLogger.Info(fmt.Sprintf("Starting engine metrics server on :%d", cfg.Monitoring.Prometheus.Port))
		if err := metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Fatal("metrics server failed", zap.Error(err))
		}
	}()

	ctx, cancel := context.WithCancel(context.Background())
	go eng.Run(ctx)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down trading engine...")
	cancel()
	eng.Stop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	_ = metricsServer.Shutdown(shutdownCtx)

	appLogger.Info("Trading engine stopped gracefully")
}

const rpcDevnetFallback = "https://api.devnet.solana.com"
