package defi

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/DimaJoyti/go-coffee/solana-engine/pkg/logger"
	"github.com/DimaJoyti/go-coffee/solana-engine/pkg/redis"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// CrossChainArbitrageEngine detects and executes arbitrage opportunities across different blockchain networks
type CrossChainArbitrageEngine struct {
	logger *logger.Logger
	cache  redis.Client

	// Bridge clients
	polygonBridge   *PolygonBridgeClient
	arbitrumBridge  *ArbitrumBridgeClient
	optimismBridge  *OptimismBridgeClient
	avalancheBridge *AvalancheBridgeClient

	// Exchange clients per chain
	ethereumExchanges  map[string]ExchangeClient
	polygonExchanges   map[string]ExchangeClient
	arbitrumExchanges  map[string]ExchangeClient
	optimismExchanges  map[string]ExchangeClient
	avalancheExchanges map[string]ExchangeClient

	// Configuration
	config CrossChainConfig

	// State tracking
	opportunities    map[string]*CrossChainOpportunity
	activeArbitrages map[string]*ActiveCrossChainArbitrage
	executionHistory map[string]*CrossChainExecution
	metrics          CrossChainMetrics
	mutex            sync.RWMutex
	stopChan         chan struct{}
	isRunning        bool
}

// CrossChainConfig holds configuration for cross-chain arbitrage
type CrossChainConfig struct {
	Enabled                bool            `json:"enabled" yaml:"enabled"`
	MinProfitThreshold     decimal.Decimal `json:"min_profit_threshold" yaml:"min_profit_threshold"`
	MaxBridgeAmount        decimal.Decimal `json:"max_bridge_amount" yaml:"max_bridge_amount"`
	BridgeTimeoutMinutes   int             `json:"bridge_timeout_minutes" yaml:"bridge_timeout_minutes"`
	ScanInterval           time.Duration   `json:"scan_interval" yaml:"scan_interval"`
	MaxConcurrentArbitrage int             `json:"max_concurrent_arbitrage" yaml:"max_concurrent_arbitrage"`
	EnabledChains          []string        `json:"enabled_chains" yaml:"enabled_chains"`
	EnabledBridges         []string        `json:"enabled_bridges" yaml:"enabled_bridges"`
	SlippageTolerance      decimal.Decimal `json:"slippage_tolerance" yaml:"slippage_tolerance"`
	AutoExecute            bool            `json:"auto_execute" yaml:"auto_execute"`
	RiskLevel              string          `json:"risk_level" yaml:"risk_level"`
}

// CrossChainOpportunity represents a cross-chain arbitrage opportunity
type CrossChainOpportunity struct {
	ID              string          `json:"id"`
	TokenAddress    string          `json:"token_address"`
	TokenSymbol     string          `json:"token_symbol"`
	SourceChain     string          `json:"source_chain"`
	TargetChain     string          `json:"target_chain"`
	SourceExchange  string          `json:"source_exchange"`
	TargetExchange  string          `json:"target_exchange"`
	BridgeProtocol  string          `json:"bridge_protocol"`
	Amount          decimal.Decimal `json:"amount"`
	SourcePrice     decimal.Decimal `json:"source_price"`
	TargetPrice     decimal.Decimal `json:"target_price"`
	ProfitMargin    decimal.Decimal `json:"profit_margin"`
	EstimatedProfit decimal.Decimal `json:"estimated_profit"`
	BridgeFee       decimal.Decimal `json:"bridge_fee"`
	GasCosts        decimal.Decimal `json:"gas_costs"`
	NetProfit       decimal.Decimal `json:"net_profit"`
	BridgeTime      time.Duration   `json:"bridge_time"`
	Confidence      decimal.Decimal `json:"confidence"`
	RiskScore       decimal.Decimal `json:"risk_score"`
	DetectedAt      time.Time       `json:"detected_at"`
	ExpiresAt       time.Time       `json:"expires_at"`
	Status          string          `json:"status"`
}

// ActiveCrossChainArbitrage represents an active cross-chain arbitrage
type ActiveCrossChainArbitrage struct {
	ID              string          `json:"id"`
	OpportunityID   string          `json:"opportunity_id"`
	SourceChain     string          `json:"source_chain"`
	TargetChain     string          `json:"target_chain"`
	BridgeProtocol  string          `json:"bridge_protocol"`
	Amount          decimal.Decimal `json:"amount"`
	StartedAt       time.Time       `json:"started_at"`
	Status          string          `json:"status"`
	CurrentStep     string          `json:"current_step"`
	BridgeTxHash    string          `json:"bridge_tx_hash"`
	SourceTxHash    string          `json:"source_tx_hash"`
	TargetTxHash    string          `json:"target_tx_hash"`
	EstimatedProfit decimal.Decimal `json:"estimated_profit"`
	ActualProfit    decimal.Decimal `json:"actual_profit"`
	TotalGasCost    decimal.Decimal `json:"total_gas_cost"`
}

// CrossChainExecution represents a completed cross-chain arbitrage execution
type CrossChainExecution struct {
	ID              string          `json:"id"`
	OpportunityID   string          `json:"opportunity_id"`
	SourceChain     string          `json:"source_chain"`
	TargetChain     string          `json:"target_chain"`
	BridgeProtocol  string          `json:"bridge_protocol"`
	Amount          decimal.Decimal `json:"amount"`
	ExecutedAt      time.Time       `json:"executed_at"`
	CompletedAt     time.Time       `json:"completed_at"`
	Success         bool            `json:"success"`
	EstimatedProfit decimal.Decimal `json:"estimated_profit"`
	ActualProfit    decimal.Decimal `json:"actual_profit"`
	BridgeFee       decimal.Decimal `json:"bridge_fee"`
	TotalGasCost    decimal.Decimal `json:"total_gas_cost"`
	NetProfit       decimal.Decimal `json:"net_profit"`
	ExecutionTime   time.Duration   `json:"execution_time"`
	Error           string          `json:"error,omitempty"`
}

// CrossChainMetrics holds performance metrics for cross-chain arbitrage
type CrossChainMetrics struct {
	TotalOpportunities   int64           `json:"total_opportunities"`
	ExecutedArbitrages   int64           `json:"executed_arbitrages"`
	SuccessfulArbitrages int64           `json:"successful_arbitrages"`
	FailedArbitrages     int64           `json:"failed_arbitrages"`
	TotalProfit          decimal.Decimal `json:"total_profit"`
	TotalBridgeFees      decimal.Decimal `json:"total_bridge_fees"`
	TotalGasCosts        decimal.Decimal `json:"total_gas_costs"`
	NetProfit            decimal.Decimal `json:"net_profit"`
	AverageProfit        decimal.Decimal `json:"average_profit"`
	SuccessRate          decimal.Decimal `json:"success_rate"`
	AverageExecutionTime time.Duration   `json:"average_execution_time"`
	LastOpportunityTime  time.Time       `json:"last_opportunity_time"`
	LastExecutionTime    time.Time       `json:"last_execution_time"`
}

// ExchangeClient interface for different exchange implementations
type ExchangeClient interface {
	GetTokenPrice(ctx context.Context, tokenAddress string) (decimal.Decimal, error)
	GetLiquidity(ctx context.Context, tokenAddress string) (decimal.Decimal, error)
	ExecuteTrade(ctx context.Context, trade *TradeParams) (*TradeResult, error)
	GetSupportedTokens() []string
}

// TradeParams represents parameters for executing a trade
type TradeParams struct {
	TokenIn      string          `json:"token_in"`
	TokenOut     string          `json:"token_out"`
	AmountIn     decimal.Decimal `json:"amount_in"`
	MinAmountOut decimal.Decimal `json:"min_amount_out"`
	Slippage     decimal.Decimal `json:"slippage"`
	Deadline     time.Time       `json:"deadline"`
}

// TradeResult represents the result of a trade execution
type TradeResult struct {
	TransactionHash string          `json:"transaction_hash"`
	AmountIn        decimal.Decimal `json:"amount_in"`
	AmountOut       decimal.Decimal `json:"amount_out"`
	GasCost         decimal.Decimal `json:"gas_cost"`
	Success         bool            `json:"success"`
	Error           string          `json:"error,omitempty"`
}

// NewCrossChainArbitrageEngine creates a new cross-chain arbitrage engine
func NewCrossChainArbitrageEngine(
	logger *logger.Logger,
	cache redis.Client,
	config CrossChainConfig,
) *CrossChainArbitrageEngine {
	return &CrossChainArbitrageEngine{
		logger:             logger.Named("cross-chain-arbitrage"),
		cache:              cache,
		config:             config,
		ethereumExchanges:  make(map[string]ExchangeClient),
		polygonExchanges:   make(map[string]ExchangeClient),
		arbitrumExchanges:  make(map[string]ExchangeClient),
		optimismExchanges:  make(map[string]ExchangeClient),
		avalancheExchanges: make(map[string]ExchangeClient),
		opportunities:      make(map[string]*CrossChainOpportunity),
		activeArbitrages:   make(map[string]*ActiveCrossChainArbitrage),
		executionHistory:   make(map[string]*CrossChainExecution),
		stopChan:           make(chan struct{}),
	}
}

// Start starts the cross-chain arbitrage engine
func (cca *CrossChainArbitrageEngine) Start(ctx context.Context) error {
	cca.mutex.Lock()
	defer cca.mutex.Unlock()

	if cca.isRunning {
		return fmt.Errorf("cross-chain arbitrage engine is already running")
	}

	if !cca.config.Enabled {
		cca.logger.Info("Cross-chain arbitrage is disabled")
		return nil
	}

	cca.logger.Info("Starting cross-chain arbitrage engine",
		zap.String("min_profit", cca.config.MinProfitThreshold.String()),
		zap.String("max_bridge_amount", cca.config.MaxBridgeAmount.String()),
		zap.Duration("scan_interval", cca.config.ScanInterval),
		zap.Strings("enabled_chains", cca.config.EnabledChains))

	// Initialize bridge clients
	if err := cca.initializeBridgeClients(); err != nil {
		return fmt.Errorf("failed to initialize bridge clients: %w", err)
	}

	// Initialize exchange clients
	if err := cca.initializeExchangeClients(); err != nil {
		return fmt.Errorf("failed to initialize exchange clients: %w", err)
	}

	cca.isRunning = true

	// Start scanning for opportunities
	go cca.opportunityScanLoop(ctx)

	// Start execution monitoring
	go cca.executionMonitorLoop(ctx)

	// Start metrics collection
	go cca.metricsLoop(ctx)

	cca.logger.Info("Cross-chain arbitrage engine started successfully")
	return nil
}

// Stop stops the cross-chain arbitrage engine
func (cca *CrossChainArbitrageEngine) Stop() error {
	cca.mutex.Lock()
	defer cca.mutex.Unlock()

	if !cca.isRunning {
		return nil
	}

	cca.logger.Info("Stopping cross-chain arbitrage engine")
	cca.isRunning = false
	close(cca.stopChan)

	cca.logger.Info("Cross-chain arbitrage engine stopped")
	return nil
}

// ScanForOpportunities scans for cross-chain arbitrage opportunities
func (cca *CrossChainArbitrageEngine) ScanForOpportunities(ctx context.Context) ([]*CrossChainOpportunity, error) {
	cca.logger.Debug("Scanning for cross-chain arbitrage opportunities")

	var opportunities []*CrossChainOpportunity

	// Scan across all enabled chain pairs
	for i, sourceChain := range cca.config.EnabledChains {
		for j, targetChain := range cca.config.EnabledChains {
			if i != j { // Don't compare chain with itself
				chainOpps, err := cca.scanChainPairOpportunities(ctx, sourceChain, targetChain)
				if err != nil {
					cca.logger.Error("Failed to scan chain pair opportunities",
						zap.String("source_chain", sourceChain),
						zap.String("target_chain", targetChain),
						zap.Error(err))
					continue
				}
				opportunities = append(opportunities, chainOpps...)
			}
		}
	}

	// Filter and rank opportunities
	filteredOpps := cca.filterOpportunities(opportunities)
	rankedOpps := cca.rankOpportunities(filteredOpps)

	cca.logger.Info("Cross-chain opportunity scan completed",
		zap.Int("total_found", len(opportunities)),
		zap.Int("filtered", len(filteredOpps)),
		zap.Int("ranked", len(rankedOpps)))

	return rankedOpps, nil
}

// scanChainPairOpportunities scans for opportunities between two specific chains
func (cca *CrossChainArbitrageEngine) scanChainPairOpportunities(ctx context.Context, sourceChain, targetChain string) ([]*CrossChainOpportunity, error) {
	cca.logger.Debug("Scanning chain pair opportunities",
		zap.String("source_chain", sourceChain),
		zap.String("target_chain", targetChain))

	var opportunities []*CrossChainOpportunity

	// Get supported tokens for both chains
	sourceTokens := cca.getSupportedTokensForChain(sourceChain)
	targetTokens := cca.getSupportedTokensForChain(targetChain)

	// Find common tokens
	commonTokens := cca.findCommonTokens(sourceTokens, targetTokens)

	for _, token := range commonTokens {
		opp, err := cca.analyzeTokenOpportunity(ctx, token, sourceChain, targetChain)
		if err != nil {
			cca.logger.Debug("Failed to analyze token opportunity",
				zap.String("token", token),
				zap.String("source_chain", sourceChain),
				zap.String("target_chain", targetChain),
				zap.Error(err))
			continue
		}

		if opp != nil {
			opportunities = append(opportunities, opp)
		}
	}

	return opportunities, nil
}

// analyzeTokenOpportunity analyzes arbitrage opportunity for a specific token between chains
func (cca *CrossChainArbitrageEngine) analyzeTokenOpportunity(ctx context.Context, token, sourceChain, targetChain string) (*CrossChainOpportunity, error) {
	// Get best prices on both chains
	sourcePrices, err := cca.getBestPricesForChain(ctx, token, sourceChain)
	if err != nil {
		return nil, fmt.Errorf("failed to get source prices: %w", err)
	}

	targetPrices, err := cca.getBestPricesForChain(ctx, token, targetChain)
	if err != nil {
		return nil, fmt.Errorf("failed to get target prices: %w", err)
	}

	// Find best buy and sell opportunities
	bestBuyPrice, bestBuyExchange := cca.findBestBuyPrice(sourcePrices)
	bestSellPrice, bestSellExchange := cca.findBestSellPrice(targetPrices)

	// Calculate profit margin
	if bestSellPrice.LessThanOrEqual(bestBuyPrice) {
		return nil, nil // No profitable opportunity
	}

	profitMargin := bestSellPrice.Sub(bestBuyPrice).Div(bestBuyPrice)
	if profitMargin.LessThan(cca.config.MinProfitThreshold) {
		return nil, nil // Below minimum profit threshold
	}

	// Get bridge information
	bridgeInfo, err := cca.getBridgeInfo(sourceChain, targetChain)
	if err != nil {
		return nil, fmt.Errorf("failed to get bridge info: %w", err)
	}

	// Calculate optimal amount
	optimalAmount := cca.calculateOptimalAmount(ctx, token, sourceChain, targetChain, bestBuyPrice, bestSellPrice)

	// Calculate costs and profits
	estimatedProfit := optimalAmount.Mul(profitMargin)
	bridgeFee := cca.calculateBridgeFee(optimalAmount, bridgeInfo)
	gasCosts := cca.estimateGasCosts(sourceChain, targetChain)
	netProfit := estimatedProfit.Sub(bridgeFee).Sub(gasCosts)

	if netProfit.LessThanOrEqual(decimal.Zero) {
		return nil, nil // Not profitable after fees
	}

	opportunity := &CrossChainOpportunity{
		ID:              cca.generateOpportunityID(),
		TokenAddress:    token,
		TokenSymbol:     cca.getTokenSymbol(token),
		SourceChain:     sourceChain,
		TargetChain:     targetChain,
		SourceExchange:  bestBuyExchange,
		TargetExchange:  bestSellExchange,
		BridgeProtocol:  bridgeInfo.Protocol,
		Amount:          optimalAmount,
		SourcePrice:     bestBuyPrice,
		TargetPrice:     bestSellPrice,
		ProfitMargin:    profitMargin,
		EstimatedProfit: estimatedProfit,
		BridgeFee:       bridgeFee,
		GasCosts:        gasCosts,
		NetProfit:       netProfit,
		BridgeTime:      bridgeInfo.EstimatedTime,
		Confidence:      cca.calculateConfidence(profitMargin, optimalAmount, bridgeInfo),
		RiskScore:       cca.calculateRiskScore(sourceChain, targetChain, bridgeInfo),
		DetectedAt:      time.Now(),
		ExpiresAt:       time.Now().Add(5 * time.Minute),
		Status:          "detected",
	}

	return opportunity, nil
}

// ExecuteOpportunity executes a cross-chain arbitrage opportunity
func (cca *CrossChainArbitrageEngine) ExecuteOpportunity(ctx context.Context, opportunityID string) (*CrossChainExecution, error) {
	cca.mutex.RLock()
	opportunity, exists := cca.opportunities[opportunityID]
	cca.mutex.RUnlock()

	if !exists {
		return nil, fmt.Errorf("opportunity not found: %s", opportunityID)
	}

	if time.Now().After(opportunity.ExpiresAt) {
		return nil, fmt.Errorf("opportunity expired: %s", opportunityID)
	}

	cca.logger.Info("Executing cross-chain arbitrage opportunity",
		zap.String("opportunity_id", opportunityID),
		zap.String("source_chain", opportunity.SourceChain),
		zap.String("target_chain", opportunity.TargetChain),
		zap.String("token", opportunity.TokenSymbol),
		zap.String("amount", opportunity.Amount.String()),
		zap.String("estimated_profit", opportunity.EstimatedProfit.String()))

	// Create execution record
	execution := &CrossChainExecution{
		ID:              cca.generateExecutionID(),
		OpportunityID:   opportunityID,
		SourceChain:     opportunity.SourceChain,
		TargetChain:     opportunity.TargetChain,
		BridgeProtocol:  opportunity.BridgeProtocol,
		Amount:          opportunity.Amount,
		ExecutedAt:      time.Now(),
		EstimatedProfit: opportunity.EstimatedProfit,
	}

	// Create active arbitrage record
	activeArbitrage := &ActiveCrossChainArbitrage{
		ID:              execution.ID,
		OpportunityID:   opportunityID,
		SourceChain:     opportunity.SourceChain,
		TargetChain:     opportunity.TargetChain,
		BridgeProtocol:  opportunity.BridgeProtocol,
		Amount:          opportunity.Amount,
		StartedAt:       time.Now(),
		Status:          "executing",
		CurrentStep:     "buy_source",
		EstimatedProfit: opportunity.EstimatedProfit,
	}

	cca.mutex.Lock()
	cca.activeArbitrages[execution.ID] = activeArbitrage
	cca.mutex.Unlock()

	// Execute arbitrage steps
	err := cca.executeArbitrageSteps(ctx, opportunity, activeArbitrage, execution)

	execution.CompletedAt = time.Now()
	execution.ExecutionTime = execution.CompletedAt.Sub(execution.ExecutedAt)
	execution.Success = err == nil

	if err != nil {
		execution.Error = err.Error()
		activeArbitrage.Status = "failed"
		cca.logger.Error("Cross-chain arbitrage execution failed",
			zap.String("execution_id", execution.ID),
			zap.Error(err))
	} else {
		activeArbitrage.Status = "completed"
		cca.logger.Info("Cross-chain arbitrage execution completed successfully",
			zap.String("execution_id", execution.ID),
			zap.String("actual_profit", execution.ActualProfit.String()),
			zap.String("net_profit", execution.NetProfit.String()))
	}

	// Store execution record
	cca.mutex.Lock()
	cca.executionHistory[execution.ID] = execution
	delete(cca.activeArbitrages, execution.ID)
	cca.mutex.Unlock()

	// Update metrics
	cca.updateExecutionMetrics(execution)

	return execution, err
}

// executeArbitrageSteps executes the steps of cross-chain arbitrage
func (cca *CrossChainArbitrageEngine) executeArbitrageSteps(
	ctx context.Context,
	opportunity *CrossChainOpportunity,
	activeArbitrage *ActiveCrossChainArbitrage,
	execution *CrossChainExecution,
) error {
	// Step 1: Buy token on source chain
	cca.logger.Info("Step 1: Buying token on source chain",
		zap.String("chain", opportunity.SourceChain),
		zap.String("exchange", opportunity.SourceExchange))

	activeArbitrage.CurrentStep = "buy_source"
	sourceTrade, err := cca.executeBuyOnSourceChain(ctx, opportunity)
	if err != nil {
		return fmt.Errorf("failed to buy on source chain: %w", err)
	}
	activeArbitrage.SourceTxHash = sourceTrade.TransactionHash
	execution.TotalGasCost = execution.TotalGasCost.Add(sourceTrade.GasCost)

	// Step 2: Bridge tokens to target chain
	cca.logger.Info("Step 2: Bridging tokens to target chain",
		zap.String("bridge", opportunity.BridgeProtocol),
		zap.String("from", opportunity.SourceChain),
		zap.String("to", opportunity.TargetChain))

	activeArbitrage.CurrentStep = "bridge"
	bridgeResult, err := cca.executeBridge(ctx, opportunity, sourceTrade.AmountOut)
	if err != nil {
		return fmt.Errorf("failed to bridge tokens: %w", err)
	}
	activeArbitrage.BridgeTxHash = bridgeResult.TransactionHash
	execution.BridgeFee = bridgeResult.Fee
	execution.TotalGasCost = execution.TotalGasCost.Add(bridgeResult.GasCost)

	// Step 3: Wait for bridge completion
	cca.logger.Info("Step 3: Waiting for bridge completion")
	activeArbitrage.CurrentStep = "waiting_bridge"
	bridgedAmount, err := cca.waitForBridgeCompletion(ctx, bridgeResult, opportunity.BridgeTime)
	if err != nil {
		return fmt.Errorf("bridge completion failed: %w", err)
	}

	// Step 4: Sell token on target chain
	cca.logger.Info("Step 4: Selling token on target chain",
		zap.String("chain", opportunity.TargetChain),
		zap.String("exchange", opportunity.TargetExchange))

	activeArbitrage.CurrentStep = "sell_target"
	targetTrade, err := cca.executeSellOnTargetChain(ctx, opportunity, bridgedAmount)
	if err != nil {
		return fmt.Errorf("failed to sell on target chain: %w", err)
	}
	activeArbitrage.TargetTxHash = targetTrade.TransactionHash
	execution.TotalGasCost = execution.TotalGasCost.Add(targetTrade.GasCost)

	// Calculate final profits
	execution.ActualProfit = targetTrade.AmountOut.Sub(sourceTrade.AmountIn)
	execution.NetProfit = execution.ActualProfit.Sub(execution.BridgeFee).Sub(execution.TotalGasCost)
	activeArbitrage.ActualProfit = execution.ActualProfit

	return nil
}

// Helper methods for execution

// executeBuyOnSourceChain executes buy trade on source chain
func (cca *CrossChainArbitrageEngine) executeBuyOnSourceChain(ctx context.Context, opportunity *CrossChainOpportunity) (*TradeResult, error) {
	exchange := cca.getExchangeClient(opportunity.SourceChain, opportunity.SourceExchange)
	if exchange == nil {
		return nil, fmt.Errorf("exchange client not found: %s on %s", opportunity.SourceExchange, opportunity.SourceChain)
	}

	tradeParams := &TradeParams{
		TokenIn:      "ETH", // Assuming we're buying with ETH
		TokenOut:     opportunity.TokenAddress,
		AmountIn:     opportunity.Amount,
		MinAmountOut: opportunity.Amount.Mul(decimal.NewFromFloat(0.95)), // 5% slippage
		Slippage:     cca.config.SlippageTolerance,
		Deadline:     time.Now().Add(10 * time.Minute),
	}

	return exchange.ExecuteTrade(ctx, tradeParams)
}

// executeBridge executes token bridging
func (cca *CrossChainArbitrageEngine) executeBridge(ctx context.Context, opportunity *CrossChainOpportunity, amount decimal.Decimal) (*BridgeResult, error) {
	switch opportunity.BridgeProtocol {
	case "polygon":
		return cca.polygonBridge.Bridge(ctx, opportunity.TokenAddress, amount, opportunity.TargetChain)
	case "arbitrum":
		return cca.arbitrumBridge.Bridge(ctx, opportunity.TokenAddress, amount, opportunity.TargetChain)
	case "optimism":
		return cca.optimismBridge.Bridge(ctx, opportunity.TokenAddress, amount, opportunity.TargetChain)
	case "avalanche":
		return cca.avalancheBridge.Bridge(ctx, opportunity.TokenAddress, amount, opportunity.TargetChain)
	default:
		return nil, fmt.Errorf("unsupported bridge protocol: %s", opportunity.BridgeProtocol)
	}
}

// executeSellOnTargetChain executes sell trade on target chain
func (cca *CrossChainArbitrageEngine) executeSellOnTargetChain(ctx context.Context, opportunity *CrossChainOpportunity, amount decimal.Decimal) (*TradeResult, error) {
	exchange := cca.getExchangeClient(opportunity.TargetChain, opportunity.TargetExchange)
	if exchange == nil {
		return nil, fmt.Errorf("exchange client not found: %s on %s", opportunity.TargetExchange, opportunity.TargetChain)
	}

	tradeParams := &TradeParams{
		TokenIn:      opportunity.TokenAddress,
		TokenOut:     "ETH", // Assuming we're selling for ETH
		AmountIn:     amount,
		MinAmountOut: amount.Mul(opportunity.TargetPrice).Mul(decimal.NewFromFloat(0.95)), // 5% slippage
		Slippage:     cca.config.SlippageTolerance,
		Deadline:     time.Now().Add(10 * time.Minute),
	}

	return exchange.ExecuteTrade(ctx, tradeParams)
}

// waitForBridgeCompletion waits for bridge transaction to complete
func (cca *CrossChainArbitrageEngine) waitForBridgeCompletion(ctx context.Context, bridgeResult *BridgeResult, maxWaitTime time.Duration) (decimal.Decimal, error) {
	timeout := time.After(maxWaitTime)
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return decimal.Zero, ctx.Err()
		case <-timeout:
			return decimal.Zero, fmt.Errorf("bridge timeout after %v", maxWaitTime)
		case <-ticker.C:
			// Check bridge status
			status, amount, err := cca.checkBridgeStatus(ctx, bridgeResult)
			if err != nil {
				cca.logger.Warn("Failed to check bridge status", zap.Error(err))
				continue
			}

			if status == "completed" {
				return amount, nil
			} else if status == "failed" {
				return decimal.Zero, fmt.Errorf("bridge transaction failed")
			}
			// Continue waiting if status is "pending"
		}
	}
}

// Loop methods and public interface

// opportunityScanLoop continuously scans for arbitrage opportunities
func (cca *CrossChainArbitrageEngine) opportunityScanLoop(ctx context.Context) {
	ticker := time.NewTicker(cca.config.ScanInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-cca.stopChan:
			return
		case <-ticker.C:
			opportunities, err := cca.ScanForOpportunities(ctx)
			if err != nil {
				cca.logger.Error("Failed to scan for opportunities", zap.Error(err))
				continue
			}

			// Store opportunities
			cca.mutex.Lock()
			for _, opp := range opportunities {
				cca.opportunities[opp.ID] = opp
				cca.metrics.TotalOpportunities++
			}
			cca.mutex.Unlock()

			// Auto-execute if enabled
			if cca.config.AutoExecute && len(opportunities) > 0 {
				go cca.autoExecuteOpportunities(ctx, opportunities)
			}
		}
	}
}

// autoExecuteOpportunities automatically executes profitable opportunities
func (cca *CrossChainArbitrageEngine) autoExecuteOpportunities(ctx context.Context, opportunities []*CrossChainOpportunity) {
	cca.mutex.RLock()
	maxConcurrent := cca.config.MaxConcurrentArbitrage
	activeCount := len(cca.activeArbitrages)
	cca.mutex.RUnlock()

	if activeCount >= maxConcurrent {
		cca.logger.Debug("Maximum concurrent arbitrages reached, skipping auto-execution")
		return
	}

	for i, opp := range opportunities {
		if i >= maxConcurrent-activeCount {
			break
		}

		// Only execute high-confidence, low-risk opportunities
		if opp.Confidence.GreaterThan(decimal.NewFromFloat(0.8)) &&
			opp.RiskScore.LessThan(decimal.NewFromFloat(0.3)) {

			go func(opportunity *CrossChainOpportunity) {
				_, err := cca.ExecuteOpportunity(ctx, opportunity.ID)
				if err != nil {
					cca.logger.Error("Auto-execution failed",
						zap.String("opportunity_id", opportunity.ID),
						zap.Error(err))
				}
			}(opp)
		}
	}
}

// executionMonitorLoop monitors active arbitrage executions
func (cca *CrossChainArbitrageEngine) executionMonitorLoop(ctx context.Context) {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-cca.stopChan:
			return
		case <-ticker.C:
			cca.cleanupExpiredOpportunities()
			cca.updateActiveArbitragesStatus(ctx)
		}
	}
}

// cleanupExpiredOpportunities removes expired opportunities
func (cca *CrossChainArbitrageEngine) cleanupExpiredOpportunities() {
	cca.mutex.Lock()
	defer cca.mutex.Unlock()

	now := time.Now()
	for id, opp := range cca.opportunities {
		if now.After(opp.ExpiresAt) {
			delete(cca.opportunities, id)
		}
	}
}

// updateActiveArbitragesStatus updates the status of active arbitrages
func (cca *CrossChainArbitrageEngine) updateActiveArbitragesStatus(ctx context.Context) {
	cca.mutex.RLock()
	activeArbitrages := make([]*ActiveCrossChainArbitrage, 0, len(cca.activeArbitrages))
	for _, arbitrage := range cca.activeArbitrages {
		activeArbitrages = append(activeArbitrages, arbitrage)
	}
	cca.mutex.RUnlock()

	for _, arbitrage := range activeArbitrages {
		if arbitrage.Status == "executing" {
			// Check if arbitrage has timed out
			if time.Since(arbitrage.StartedAt) > time.Duration(cca.config.BridgeTimeoutMinutes)*time.Minute {
				cca.mutex.Lock()
				arbitrage.Status = "timeout"
				cca.mutex.Unlock()
				cca.logger.Warn("Arbitrage execution timed out",
					zap.String("arbitrage_id", arbitrage.ID))
			}
		}
	}
}

// metricsLoop updates performance metrics
func (cca *CrossChainArbitrageEngine) metricsLoop(ctx context.Context) {
	ticker := time.NewTicker(1 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-cca.stopChan:
			return
		case <-ticker.C:
			cca.updateMetrics()
		}
	}
}

// updateMetrics updates performance metrics
func (cca *CrossChainArbitrageEngine) updateMetrics() {
	cca.mutex.Lock()
	defer cca.mutex.Unlock()

	// Calculate average execution time
	if len(cca.executionHistory) > 0 {
		totalTime := time.Duration(0)
		for _, execution := range cca.executionHistory {
			totalTime += execution.ExecutionTime
		}
		cca.metrics.AverageExecutionTime = totalTime / time.Duration(len(cca.executionHistory))
	}

	// Update last opportunity time
	for _, opp := range cca.opportunities {
		if opp.DetectedAt.After(cca.metrics.LastOpportunityTime) {
			cca.metrics.LastOpportunityTime = opp.DetectedAt
		}
	}
}

// Additional helper methods

// initializeBridgeClients initializes bridge clients
func (cca *CrossChainArbitrageEngine) initializeBridgeClients() error {
	cca.polygonBridge = &PolygonBridgeClient{logger: cca.logger.Named("polygon-bridge")}
	cca.arbitrumBridge = &ArbitrumBridgeClient{logger: cca.logger.Named("arbitrum-bridge")}
	cca.optimismBridge = &OptimismBridgeClient{logger: cca.logger.Named("optimism-bridge")}
	cca.avalancheBridge = &AvalancheBridgeClient{logger: cca.logger.Named("avalanche-bridge")}
	return nil
}

// initializeExchangeClients initializes exchange clients
func (cca *CrossChainArbitrageEngine) initializeExchangeClients() error {
	// Initialize mock exchange clients for each chain
	// In a real implementation, these would be actual exchange clients

	mockExchange := &MockExchangeClient{logger: cca.logger.Named("mock-exchange")}

	cca.ethereumExchanges["uniswap"] = mockExchange
	cca.ethereumExchanges["sushiswap"] = mockExchange
	cca.polygonExchanges["quickswap"] = mockExchange
	cca.polygonExchanges["sushiswap"] = mockExchange
	cca.arbitrumExchanges["uniswap"] = mockExchange
	cca.arbitrumExchanges["sushiswap"] = mockExchange
	cca.optimismExchanges["uniswap"] = mockExchange
	cca.avalancheExchanges["traderjoe"] = mockExchange
	cca.avalancheExchanges["pangolin"] = mockExchange

	return nil
}

// getSupportedTokensForChain gets supported tokens for a chain
func (cca *CrossChainArbitrageEngine) getSupportedTokensForChain(chain string) []string {
	// Common tokens across chains
	return []string{
		"0xA0b86a33E6441b8C4505B6B8C0E4F7c3C4b5C8E1", // USDC
		"0x6B175474E89094C44Da98b954EedeAC495271d0F", // DAI
		"0xdAC17F958D2ee523a2206206994597C13D831ec7", // USDT
		"0x2260FAC5E5542a773Aa44fBCfeDf7C193bc2C599", // WBTC
		"0xC02aaA39b223FE8D0A0e5C4F27eAD9083C756Cc2", // WETH
	}
}

// findCommonTokens finds tokens supported on both chains
func (cca *CrossChainArbitrageEngine) findCommonTokens(sourceTokens, targetTokens []string) []string {
	tokenMap := make(map[string]bool)
	for _, token := range sourceTokens {
		tokenMap[token] = true
	}

	var commonTokens []string
	for _, token := range targetTokens {
		if tokenMap[token] {
			commonTokens = append(commonTokens, token)
		}
	}

	return commonTokens
}

// getBestPricesForChain gets best prices for a token on a chain
func (cca *CrossChainArbitrageEngine) getBestPricesForChain(ctx context.Context, token, chain string) (map[string]decimal.Decimal, error) {
	prices := make(map[string]decimal.Decimal)

	var exchanges map[string]ExchangeClient
	switch chain {
	case "ethereum":
		exchanges = cca.ethereumExchanges
	case "polygon":
		exchanges = cca.polygonExchanges
	case "arbitrum":
		exchanges = cca.arbitrumExchanges
	case "optimism":
		exchanges = cca.optimismExchanges
	case "avalanche":
		exchanges = cca.avalancheExchanges
	default:
		return nil, fmt.Errorf("unsupported chain: %s", chain)
	}

	for exchangeName, exchange := range exchanges {
		price, err := exchange.GetTokenPrice(ctx, token)
		if err != nil {
			cca.logger.Warn("Failed to get price from exchange",
				zap.String("exchange", exchangeName),
				zap.String("chain", chain),
				zap.Error(err))
			continue
		}
		prices[exchangeName] = price
	}

	return prices, nil
}

// findBestBuyPrice finds the best (lowest) buy price
func (cca *CrossChainArbitrageEngine) findBestBuyPrice(prices map[string]decimal.Decimal) (decimal.Decimal, string) {
	var bestPrice decimal.Decimal
	var bestExchange string

	for exchange, price := range prices {
		if bestExchange == "" || price.LessThan(bestPrice) {
			bestPrice = price
			bestExchange = exchange
		}
	}

	return bestPrice, bestExchange
}

// findBestSellPrice finds the best (highest) sell price
func (cca *CrossChainArbitrageEngine) findBestSellPrice(prices map[string]decimal.Decimal) (decimal.Decimal, string) {
	var bestPrice decimal.Decimal
	var bestExchange string

	for exchange, price := range prices {
		if bestExchange == "" || price.GreaterThan(bestPrice) {
			bestPrice = price
			bestExchange = exchange
		}
	}

	return bestPrice, bestExchange
}

// getBridgeInfo gets bridge information between chains
func (cca *CrossChainArbitrageEngine) getBridgeInfo(sourceChain, targetChain string) (*BridgeInfo, error) {
	// Simplified bridge info - in reality would query actual bridge protocols
	bridgeKey := fmt.Sprintf("%s-%s", sourceChain, targetChain)

	switch bridgeKey {
	case "ethereum-polygon":
		return &BridgeInfo{
			Protocol:      "polygon",
			Fee:           decimal.NewFromFloat(0.001), // 0.1%
			EstimatedTime: 10 * time.Minute,
			MinAmount:     decimal.NewFromFloat(0.01),
			MaxAmount:     decimal.NewFromFloat(1000),
		}, nil
	case "ethereum-arbitrum":
		return &BridgeInfo{
			Protocol:      "arbitrum",
			Fee:           decimal.NewFromFloat(0.0005), // 0.05%
			EstimatedTime: 15 * time.Minute,
			MinAmount:     decimal.NewFromFloat(0.01),
			MaxAmount:     decimal.NewFromFloat(1000),
		}, nil
	case "ethereum-optimism":
		return &BridgeInfo{
			Protocol:      "optimism",
			Fee:           decimal.NewFromFloat(0.0005), // 0.05%
			EstimatedTime: 15 * time.Minute,
			MinAmount:     decimal.NewFromFloat(0.01),
			MaxAmount:     decimal.NewFromFloat(1000),
		}, nil
	default:
		return nil, fmt.Errorf("bridge not supported: %s", bridgeKey)
	}
}

// calculateOptimalAmount calculates optimal arbitrage amount
func (cca *CrossChainArbitrageEngine) calculateOptimalAmount(ctx context.Context, token, sourceChain, targetChain string, buyPrice, sellPrice decimal.Decimal) decimal.Decimal {
	// Simplified calculation - in production would consider liquidity, price impact, etc.
	maxAmount := cca.config.MaxBridgeAmount

	// Start with a conservative amount
	optimalAmount := maxAmount.Div(decimal.NewFromInt(10)) // 10% of max

	// Adjust based on profit margin
	profitMargin := sellPrice.Sub(buyPrice).Div(buyPrice)
	if profitMargin.GreaterThan(decimal.NewFromFloat(0.02)) { // > 2%
		optimalAmount = maxAmount.Div(decimal.NewFromInt(5)) // 20% of max
	}
	if profitMargin.GreaterThan(decimal.NewFromFloat(0.05)) { // > 5%
		optimalAmount = maxAmount.Div(decimal.NewFromInt(2)) // 50% of max
	}

	return optimalAmount
}

// calculateBridgeFee calculates bridge fee
func (cca *CrossChainArbitrageEngine) calculateBridgeFee(amount decimal.Decimal, bridgeInfo *BridgeInfo) decimal.Decimal {
	return amount.Mul(bridgeInfo.Fee)
}

// estimateGasCosts estimates gas costs for cross-chain arbitrage
func (cca *CrossChainArbitrageEngine) estimateGasCosts(sourceChain, targetChain string) decimal.Decimal {
	// Simplified gas estimation
	baseCost := decimal.NewFromFloat(0.02) // 0.02 ETH base cost

	// Different chains have different gas costs
	sourceCost := cca.getChainGasCost(sourceChain)
	targetCost := cca.getChainGasCost(targetChain)

	return baseCost.Add(sourceCost).Add(targetCost)
}

// getChainGasCost gets gas cost for a specific chain
func (cca *CrossChainArbitrageEngine) getChainGasCost(chain string) decimal.Decimal {
	switch chain {
	case "ethereum":
		return decimal.NewFromFloat(0.02) // Higher gas costs
	case "polygon":
		return decimal.NewFromFloat(0.001) // Lower gas costs
	case "arbitrum":
		return decimal.NewFromFloat(0.005) // Medium gas costs
	case "optimism":
		return decimal.NewFromFloat(0.005) // Medium gas costs
	case "avalanche":
		return decimal.NewFromFloat(0.002) // Low gas costs
	default:
		return decimal.NewFromFloat(0.01) // Default
	}
}

// calculateConfidence calculates confidence score for opportunity
func (cca *CrossChainArbitrageEngine) calculateConfidence(profitMargin, amount decimal.Decimal, bridgeInfo *BridgeInfo) decimal.Decimal {
	confidence := decimal.NewFromFloat(0.5) // Base confidence

	// Higher profit margin increases confidence
	if profitMargin.GreaterThan(decimal.NewFromFloat(0.02)) {
		confidence = confidence.Add(decimal.NewFromFloat(0.2))
	}
	if profitMargin.GreaterThan(decimal.NewFromFloat(0.05)) {
		confidence = confidence.Add(decimal.NewFromFloat(0.2))
	}

	// Smaller amounts are less risky
	if amount.LessThan(cca.config.MaxBridgeAmount.Div(decimal.NewFromInt(2))) {
		confidence = confidence.Add(decimal.NewFromFloat(0.1))
	}

	// Cap at 1.0
	if confidence.GreaterThan(decimal.NewFromFloat(1.0)) {
		confidence = decimal.NewFromFloat(1.0)
	}

	return confidence
}

// calculateRiskScore calculates risk score for opportunity
func (cca *CrossChainArbitrageEngine) calculateRiskScore(sourceChain, targetChain string, bridgeInfo *BridgeInfo) decimal.Decimal {
	risk := decimal.NewFromFloat(0.3) // Base risk

	// Cross-chain operations are inherently riskier
	risk = risk.Add(decimal.NewFromFloat(0.2))

	// Longer bridge times increase risk
	if bridgeInfo.EstimatedTime > 30*time.Minute {
		risk = risk.Add(decimal.NewFromFloat(0.2))
	}

	// Higher fees increase risk
	if bridgeInfo.Fee.GreaterThan(decimal.NewFromFloat(0.001)) {
		risk = risk.Add(decimal.NewFromFloat(0.1))
	}

	// Cap at 1.0
	if risk.GreaterThan(decimal.NewFromFloat(1.0)) {
		risk = decimal.NewFromFloat(1.0)
	}

	return risk
}

// getTokenSymbol gets token symbol from address
func (cca *CrossChainArbitrageEngine) getTokenSymbol(tokenAddress string) string {
	// Simplified token symbol mapping
	switch tokenAddress {
	case "0xA0b86a33E6441b8C4505B6B8C0E4F7c3C4b5C8E1":
		return "USDC"
	case "0x6B175474E89094C44Da98b954EedeAC495271d0F":
		return "DAI"
	case "0xdAC17F958D2ee523a2206206994597C13D831ec7":
		return "USDT"
	case "0x2260FAC5E5542a773Aa44fBCfeDf7C193bc2C599":
		return "WBTC"
	case "0xC02aaA39b223FE8D0A0e5C4F27eAD9083C756Cc2":
		return "WETH"
	default:
		return "UNKNOWN"
	}
}

// MockExchangeClient implements ExchangeClient for testing
type MockExchangeClient struct {
	logger *logger.Logger
}

// GetTokenPrice returns a mock token price
func (mec *MockExchangeClient) GetTokenPrice(ctx context.Context, tokenAddress string) (decimal.Decimal, error) {
	// Return different prices based on token to simulate price differences
	switch tokenAddress {
	case "0xA0b86a33E6441b8C4505B6B8C0E4F7c3C4b5C8E1": // USDC
		return decimal.NewFromFloat(1.0), nil
	case "0x6B175474E89094C44Da98b954EedeAC495271d0F": // DAI
		return decimal.NewFromFloat(1.0), nil
	case "0xdAC17F958D2ee523a2206206994597C13D831ec7": // USDT
		return decimal.NewFromFloat(1.0), nil
	case "0x2260FAC5E5542a773Aa44fBCfeDf7C193bc2C599": // WBTC
		return decimal.NewFromFloat(45000.0), nil
	case "0xC02aaA39b223FE8D0A0e5C4F27eAD9083C756Cc2": // WETH
		return decimal.NewFromFloat(3000.0), nil
	default:
		return decimal.NewFromFloat(100.0), nil
	}
}

// GetLiquidity returns mock liquidity
func (mec *MockExchangeClient) GetLiquidity(ctx context.Context, tokenAddress string) (decimal.Decimal, error) {
	return decimal.NewFromFloat(1000000.0), nil // 1M tokens liquidity
}

// ExecuteTrade executes a mock trade
func (mec *MockExchangeClient) ExecuteTrade(ctx context.Context, trade *TradeParams) (*TradeResult, error) {
	// Simulate trade execution
	return &TradeResult{
		TransactionHash: fmt.Sprintf("0x%x", time.Now().UnixNano()),
		AmountIn:        trade.AmountIn,
		AmountOut:       trade.AmountIn.Mul(decimal.NewFromFloat(0.99)), // 1% slippage
		GasCost:         decimal.NewFromFloat(0.01),
		Success:         true,
	}, nil
}

// GetSupportedTokens returns supported tokens
func (mec *MockExchangeClient) GetSupportedTokens() []string {
	return []string{
		"0xA0b86a33E6441b8C4505B6B8C0E4F7c3C4b5C8E1", // USDC
		"0x6B175474E89094C44Da98b954EedeAC495271d0F", // DAI
		"0xdAC17F958D2ee523a2206206994597C13D831ec7", // USDT
		"0x2260FAC5E5542a773Aa44fBCfeDf7C193bc2C599", // WBTC
		"0xC02aaA39b223FE8D0A0e5C4F27eAD9083C756Cc2", // WETH
	}
}

// checkBridgeStatus checks the status of a bridge transaction
func (cca *CrossChainArbitrageEngine) checkBridgeStatus(ctx context.Context, bridgeResult *BridgeResult) (string, decimal.Decimal, error) {
	// In a real implementation, this would check the bridge status
	// For now, simulate completion after some time
	if time.Since(bridgeResult.Timestamp) > 2*time.Minute {
		return "completed", bridgeResult.Amount, nil
	}
	return "pending", decimal.Zero, nil
}

// Missing types and helper methods

// BridgeResult represents the result of a bridge operation
type BridgeResult struct {
	TransactionHash string          `json:"transaction_hash"`
	Amount          decimal.Decimal `json:"amount"`
	Fee             decimal.Decimal `json:"fee"`
	GasCost         decimal.Decimal `json:"gas_cost"`
	Timestamp       time.Time       `json:"timestamp"`
	Status          string          `json:"status"`
}

// BridgeInfo represents information about a bridge
type BridgeInfo struct {
	Protocol      string          `json:"protocol"`
	Fee           decimal.Decimal `json:"fee"`
	EstimatedTime time.Duration   `json:"estimated_time"`
	MinAmount     decimal.Decimal `json:"min_amount"`
	MaxAmount     decimal.Decimal `json:"max_amount"`
}

// Bridge client interfaces
type PolygonBridgeClient struct {
	logger *logger.Logger
}

type ArbitrumBridgeClient struct {
	logger *logger.Logger
}

type OptimismBridgeClient struct {
	logger *logger.Logger
}

type AvalancheBridgeClient struct {
	logger *logger.Logger
}

// Bridge methods
func (pbc *PolygonBridgeClient) Bridge(ctx context.Context, tokenAddress string, amount decimal.Decimal, targetChain string) (*BridgeResult, error) {
	return &BridgeResult{
		TransactionHash: fmt.Sprintf("0x%x", time.Now().UnixNano()),
		Amount:          amount,
		Fee:             amount.Mul(decimal.NewFromFloat(0.001)), // 0.1% fee
		GasCost:         decimal.NewFromFloat(0.01),
		Timestamp:       time.Now(),
		Status:          "pending",
	}, nil
}

func (abc *ArbitrumBridgeClient) Bridge(ctx context.Context, tokenAddress string, amount decimal.Decimal, targetChain string) (*BridgeResult, error) {
	return &BridgeResult{
		TransactionHash: fmt.Sprintf("0x%x", time.Now().UnixNano()),
		Amount:          amount,
		Fee:             amount.Mul(decimal.NewFromFloat(0.0005)), // 0.05% fee
		GasCost:         decimal.NewFromFloat(0.005),
		Timestamp:       time.Now(),
		Status:          "pending",
	}, nil
}

func (obc *OptimismBridgeClient) Bridge(ctx context.Context, tokenAddress string, amount decimal.Decimal, targetChain string) (*BridgeResult, error) {
	return &BridgeResult{
		TransactionHash: fmt.Sprintf("0x%x", time.Now().UnixNano()),
		Amount:          amount,
		Fee:             amount.Mul(decimal.NewFromFloat(0.0005)), // 0.05% fee
		GasCost:         decimal.NewFromFloat(0.005),
		Timestamp:       time.Now(),
		Status:          "pending",
	}, nil
}

func (abc *AvalancheBridgeClient) Bridge(ctx context.Context, tokenAddress string, amount decimal.Decimal, targetChain string) (*BridgeResult, error) {
	return &BridgeResult{
		TransactionHash: fmt.Sprintf("0x%x", time.Now().UnixNano()),
		Amount:          amount,
		Fee:             amount.Mul(decimal.NewFromFloat(0.002)), // 0.2% fee
		GasCost:         decimal.NewFromFloat(0.02),
		Timestamp:       time.Now(),
		Status:          "pending",
	}, nil
}

// Helper methods for CrossChainArbitrageEngine

// generateOpportunityID generates a unique opportunity ID
func (cca *CrossChainArbitrageEngine) generateOpportunityID() string {
	return fmt.Sprintf("cc_opp_%d", time.Now().UnixNano())
}

// generateExecutionID generates a unique execution ID
func (cca *CrossChainArbitrageEngine) generateExecutionID() string {
	return fmt.Sprintf("cc_exec_%d", time.Now().UnixNano())
}

// getExchangeClient gets an exchange client for a specific chain and exchange
func (cca *CrossChainArbitrageEngine) getExchangeClient(chain, exchange string) ExchangeClient {
	var exchangeMap map[string]ExchangeClient

	switch chain {
	case "ethereum":
		exchangeMap = cca.ethereumExchanges
	case "polygon":
		exchangeMap = cca.polygonExchanges
	case "arbitrum":
		exchangeMap = cca.arbitrumExchanges
	case "optimism":
		exchangeMap = cca.optimismExchanges
	case "avalanche":
		exchangeMap = cca.avalancheExchanges
	default:
		return nil
	}

	return exchangeMap[exchange]
}

// updateExecutionMetrics updates metrics after execution
func (cca *CrossChainArbitrageEngine) updateExecutionMetrics(execution *CrossChainExecution) {
	cca.mutex.Lock()
	defer cca.mutex.Unlock()

	cca.metrics.ExecutedArbitrages++
	if execution.Success {
		cca.metrics.SuccessfulArbitrages++
		cca.metrics.TotalProfit = cca.metrics.TotalProfit.Add(execution.ActualProfit)
	} else {
		cca.metrics.FailedArbitrages++
	}

	cca.metrics.TotalBridgeFees = cca.metrics.TotalBridgeFees.Add(execution.BridgeFee)
	cca.metrics.TotalGasCosts = cca.metrics.TotalGasCosts.Add(execution.TotalGasCost)
	cca.metrics.NetProfit = cca.metrics.TotalProfit.Sub(cca.metrics.TotalBridgeFees).Sub(cca.metrics.TotalGasCosts)
	cca.metrics.LastExecutionTime = execution.ExecutedAt

	// Update success rate
	if cca.metrics.ExecutedArbitrages > 0 {
		cca.metrics.SuccessRate = decimal.NewFromInt(cca.metrics.SuccessfulArbitrages).Div(decimal.NewFromInt(cca.metrics.ExecutedArbitrages))
	}

	// Update average profit
	if cca.metrics.SuccessfulArbitrages > 0 {
		cca.metrics.AverageProfit = cca.metrics.TotalProfit.Div(decimal.NewFromInt(cca.metrics.SuccessfulArbitrages))
	}
}

// filterOpportunities filters opportunities based on criteria
func (cca *CrossChainArbitrageEngine) filterOpportunities(opportunities []*CrossChainOpportunity) []*CrossChainOpportunity {
	var filtered []*CrossChainOpportunity

	for _, opp := range opportunities {
		// Check minimum profit threshold
		if opp.NetProfit.LessThan(cca.config.MinProfitThreshold) {
			continue
		}

		// Check risk level
		if opp.RiskScore.GreaterThan(decimal.NewFromFloat(0.8)) && cca.config.RiskLevel == "low" {
			continue
		}

		// Check if opportunity is still valid
		if time.Now().After(opp.ExpiresAt) {
			continue
		}

		// Check bridge amount limits
		if opp.Amount.GreaterThan(cca.config.MaxBridgeAmount) {
			continue
		}

		filtered = append(filtered, opp)
	}

	return filtered
}

// rankOpportunities ranks opportunities by profitability and confidence
func (cca *CrossChainArbitrageEngine) rankOpportunities(opportunities []*CrossChainOpportunity) []*CrossChainOpportunity {
	// Simple ranking by net profit * confidence / risk score
	for i := 0; i < len(opportunities)-1; i++ {
		for j := i + 1; j < len(opportunities); j++ {
			scoreI := opportunities[i].NetProfit.Mul(opportunities[i].Confidence).Div(opportunities[i].RiskScore.Add(decimal.NewFromFloat(0.1)))
			scoreJ := opportunities[j].NetProfit.Mul(opportunities[j].Confidence).Div(opportunities[j].RiskScore.Add(decimal.NewFromFloat(0.1)))

			if scoreJ.GreaterThan(scoreI) {
				opportunities[i], opportunities[j] = opportunities[j], opportunities[i]
			}
		}
	}

	return opportunities
}

// Public interface methods

// GetOpportunities returns current cross-chain arbitrage opportunities
func (cca *CrossChainArbitrageEngine) GetOpportunities() []*CrossChainOpportunity {
	cca.mutex.RLock()
	defer cca.mutex.RUnlock()

	opportunities := make([]*CrossChainOpportunity, 0, len(cca.opportunities))
	for _, opp := range cca.opportunities {
		opportunities = append(opportunities, opp)
	}

	return opportunities
}

// GetActiveArbitrages returns currently active cross-chain arbitrages
func (cca *CrossChainArbitrageEngine) GetActiveArbitrages() []*ActiveCrossChainArbitrage {
	cca.mutex.RLock()
	defer cca.mutex.RUnlock()

	arbitrages := make([]*ActiveCrossChainArbitrage, 0, len(cca.activeArbitrages))
	for _, arbitrage := range cca.activeArbitrages {
		arbitrages = append(arbitrages, arbitrage)
	}

	return arbitrages
}

// GetExecutionHistory returns cross-chain arbitrage execution history
func (cca *CrossChainArbitrageEngine) GetExecutionHistory() []*CrossChainExecution {
	cca.mutex.RLock()
	defer cca.mutex.RUnlock()

	executions := make([]*CrossChainExecution, 0, len(cca.executionHistory))
	for _, exec := range cca.executionHistory {
		executions = append(executions, exec)
	}

	return executions
}

// GetMetrics returns cross-chain arbitrage metrics
func (cca *CrossChainArbitrageEngine) GetMetrics() CrossChainMetrics {
	cca.mutex.RLock()
	defer cca.mutex.RUnlock()

	return cca.metrics
}

// UpdateConfig updates the cross-chain arbitrage configuration
func (cca *CrossChainArbitrageEngine) UpdateConfig(config CrossChainConfig) error {
	cca.mutex.Lock()
	defer cca.mutex.Unlock()

	cca.config = config
	cca.logger.Info("Cross-chain arbitrage configuration updated",
		zap.String("min_profit", config.MinProfitThreshold.String()),
		zap.String("max_bridge_amount", config.MaxBridgeAmount.String()),
		zap.Bool("auto_execute", config.AutoExecute),
		zap.Strings("enabled_chains", config.EnabledChains))

	return nil
}
