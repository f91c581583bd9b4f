package ai

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

// AIRiskManager provides AI-powered risk management for cryptocurrency operations
type AIRiskManager struct {
	logger *logger.Logger
	cache  redis.Client

	// ML Models
	transactionRiskModel TransactionRiskModel
	portfolioRiskModel   PortfolioRiskModel
	marketRiskModel      MarketRiskModel
	liquidityRiskModel   LiquidityRiskModel

	// Configuration
	config AIRiskConfig

	// State tracking
	riskAssessments  map[string]*RiskAssessment
	portfolioMetrics *PortfolioRiskMetrics
	marketConditions *MarketConditions
	riskAlerts       map[string]*RiskAlert
	mutex            sync.RWMutex
	stopChan         chan struct{}
	isRunning        bool
}

// AIRiskConfig holds configuration for AI risk management
type AIRiskConfig struct {
	Enabled                  bool            `json:"enabled" yaml:"enabled"`
	RiskToleranceLevel       string          `json:"risk_tolerance_level" yaml:"risk_tolerance_level"` // conservative, moderate, aggressive
	MaxPortfolioRisk         decimal.Decimal `json:"max_portfolio_risk" yaml:"max_portfolio_risk"`
	MaxSingleTransactionRisk decimal.Decimal `json:"max_single_transaction_risk" yaml:"max_single_transaction_risk"`
	RiskAssessmentInterval   time.Duration   `json:"risk_assessment_interval" yaml:"risk_assessment_interval"`
	MarketAnalysisInterval   time.Duration   `json:"market_analysis_interval" yaml:"market_analysis_interval"`
	EnableRealTimeMonitoring bool            `json:"enable_real_time_monitoring" yaml:"enable_real_time_monitoring"`
	EnablePredictiveAnalysis bool            `json:"enable_predictive_analysis" yaml:"enable_predictive_analysis"`
	AlertThresholds          AlertThresholds `json:"alert_thresholds" yaml:"alert_thresholds"`
	ModelUpdateInterval      time.Duration   `json:"model_update_interval" yaml:"model_update_interval"`
	HistoricalDataDays       int             `json:"historical_data_days" yaml:"historical_data_days"`
}

// AlertThresholds defines thresholds for risk alerts
type AlertThresholds struct {
	HighRisk       decimal.Decimal `json:"high_risk" yaml:"high_risk"`
	CriticalRisk   decimal.Decimal `json:"critical_risk" yaml:"critical_risk"`
	VolatilityHigh decimal.Decimal `json:"volatility_high" yaml:"volatility_high"`
	LiquidityLow   decimal.Decimal `json:"liquidity_low" yaml:"liquidity_low"`
}

// RiskAssessment represents a comprehensive risk assessment
type RiskAssessment struct {
	ID                string                `json:"id"`
	TransactionHash   string                `json:"transaction_hash,omitempty"`
	AssetAddress      string                `json:"asset_address,omitempty"`
	AssessmentType    string                `json:"assessment_type"` // transaction, portfolio, market
	OverallRiskScore  decimal.Decimal       `json:"overall_risk_score"`
	RiskLevel         string                `json:"risk_level"` // low, medium, high, critical
	RiskFactors       map[string]RiskFactor `json:"risk_factors"`
	Recommendations   []string              `json:"recommendations"`
	ConfidenceScore   decimal.Decimal       `json:"confidence_score"`
	PredictedOutcomes []PredictedOutcome    `json:"predicted_outcomes"`
	MarketConditions  *MarketConditions     `json:"market_conditions"`
	AssessedAt        time.Time             `json:"assessed_at"`
	ExpiresAt         time.Time             `json:"expires_at"`
	ModelVersion      string                `json:"model_version"`
}

// RiskFactor represents an individual risk factor
type RiskFactor struct {
	Name        string          `json:"name"`
	Score       decimal.Decimal `json:"score"`
	Weight      decimal.Decimal `json:"weight"`
	Impact      string          `json:"impact"` // positive, negative, neutral
	Description string          `json:"description"`
	Confidence  decimal.Decimal `json:"confidence"`
}

// PredictedOutcome represents a predicted outcome with probability
type PredictedOutcome struct {
	Scenario    string          `json:"scenario"`
	Probability decimal.Decimal `json:"probability"`
	Impact      decimal.Decimal `json:"impact"`
	Timeframe   time.Duration   `json:"timeframe"`
	Description string          `json:"description"`
}

// PortfolioRiskMetrics holds portfolio-level risk metrics
type PortfolioRiskMetrics struct {
	TotalValue           decimal.Decimal `json:"total_value"`
	ValueAtRisk          decimal.Decimal `json:"value_at_risk"`
	ConditionalVaR       decimal.Decimal `json:"conditional_var"`
	SharpeRatio          decimal.Decimal `json:"sharpe_ratio"`
	MaxDrawdown          decimal.Decimal `json:"max_drawdown"`
	Beta                 decimal.Decimal `json:"beta"`
	Alpha                decimal.Decimal `json:"alpha"`
	Volatility           decimal.Decimal `json:"volatility"`
	Correlation          decimal.Decimal `json:"correlation"`
	DiversificationRatio decimal.Decimal `json:"diversification_ratio"`
	LiquidityRisk        decimal.Decimal `json:"liquidity_risk"`
	ConcentrationRisk    decimal.Decimal `json:"concentration_risk"`
	LastUpdated          time.Time       `json:"last_updated"`
}

// MarketConditions represents current market conditions
type MarketConditions struct {
	OverallSentiment string          `json:"overall_sentiment"` // bullish, bearish, neutral
	VolatilityIndex  decimal.Decimal `json:"volatility_index"`
	LiquidityIndex   decimal.Decimal `json:"liquidity_index"`
	FearGreedIndex   decimal.Decimal `json:"fear_greed_index"`
	MarketTrend      string          `json:"market_trend"` // uptrend, downtrend, sideways
	TrendStrength    decimal.Decimal `json:"trend_strength"`
	SupportLevel     decimal.Decimal `json:"support_level"`
	ResistanceLevel  decimal.Decimal `json:"resistance_level"`
	TradingVolume    decimal.Decimal `json:"trading_volume"`
	MarketCap        decimal.Decimal `json:"market_cap"`
	DominanceIndex   decimal.Decimal `json:"dominance_index"`
	NetworkActivity  decimal.Decimal `json:"network_activity"`
	LastUpdated      time.Time       `json:"last_updated"`
}

// RiskAlert represents a risk alert
type RiskAlert struct {
	ID          string          `json:"id"`
	Type        string          `json:"type"`     // portfolio, transaction, market, liquidity
	Severity    string          `json:"severity"` // low, medium, high, critical
	Title       string          `json:"title"`
	Description string          `json:"description"`
	RiskScore   decimal.Decimal `json:"risk_score"`
	Threshold   decimal.Decimal `json:"threshold"`
	Actions     []string        `json:"actions"`
	CreatedAt   time.Time       `json:"created_at"`
	ResolvedAt  *time.Time      `json:"resolved_at,omitempty"`
	Status      string          `json:"status"` // active, resolved, dismissed
}

// ML Model interfaces
type TransactionRiskModel interface {
	AssessTransactionRisk(ctx context.Context, transaction *TransactionData) (*RiskAssessment, error)
	UpdateModel(ctx context.Context, trainingData []*TransactionData) error
	GetModelVersion() string
}

type PortfolioRiskModel interface {
	AssessPortfolioRisk(ctx context.Context, portfolio *PortfolioData) (*PortfolioRiskMetrics, error)
	CalculateVaR(ctx context.Context, portfolio *PortfolioData, confidence decimal.Decimal) (decimal.Decimal, error)
	OptimizePortfolio(ctx context.Context, portfolio *PortfolioData, constraints *OptimizationConstraints) (*PortfolioOptimization, error)
}

type MarketRiskModel interface {
	AnalyzeMarketConditions(ctx context.Context, marketData *MarketData) (*MarketConditions, error)
	PredictMarketMovement(ctx context.Context, timeframe time.Duration) ([]*PredictedOutcome, error)
	CalculateCorrelations(ctx context.Context, assets []string) (map[string]map[string]decimal.Decimal, error)
}

type LiquidityRiskModel interface {
	AssessLiquidityRisk(ctx context.Context, asset string, amount decimal.Decimal) (*LiquidityRiskAssessment, error)
	EstimateSlippage(ctx context.Context, asset string, amount decimal.Decimal) (decimal.Decimal, error)
	GetOptimalExecutionStrategy(ctx context.Context, trade *TradeRequest) (*ExecutionStrategy, error)
}

// Data structures for ML models
type TransactionData struct {
	Hash            string          `json:"hash"`
	From            string          `json:"from"`
	To              string          `json:"to"`
	Value           decimal.Decimal `json:"value"`
	GasPrice        decimal.Decimal `json:"gas_price"`
	GasLimit        uint64          `json:"gas_limit"`
	TokenAddress    string          `json:"token_address,omitempty"`
	ContractAddress string          `json:"contract_address,omitempty"`
	MethodSignature string          `json:"method_signature,omitempty"`
	Timestamp       time.Time       `json:"timestamp"`
	BlockNumber     uint64          `json:"block_number"`
	Success         bool            `json:"success"`
	MEVDetected     bool            `json:"mev_detected"`
	SlippageActual  decimal.Decimal `json:"slippage_actual"`
}

type PortfolioData struct {
	TotalValue decimal.Decimal          `json:"total_value"`
	Assets     map[string]*AssetHolding `json:"assets"`
	Timestamp  time.Time                `json:"timestamp"`
}

type AssetHolding struct {
	Address     string          `json:"address"`
	Symbol      string          `json:"symbol"`
	Amount      decimal.Decimal `json:"amount"`
	Value       decimal.Decimal `json:"value"`
	Weight      decimal.Decimal `json:"weight"`
	Price       decimal.Decimal `json:"price"`
	PriceChange decimal.Decimal `json:"price_change_24h"`
}

type MarketData struct {
	Prices       map[string]decimal.Decimal `json:"prices"`
	Volumes      map[string]decimal.Decimal `json:"volumes"`
	MarketCaps   map[string]decimal.Decimal `json:"market_caps"`
	PriceChanges map[string]decimal.Decimal `json:"price_changes"`
	Volatilities map[string]decimal.Decimal `json:"volatilities"`
	Timestamp    time.Time                  `json:"timestamp"`
}

type OptimizationConstraints struct {
	MaxWeight       decimal.Decimal `json:"max_weight"`
	MinWeight       decimal.Decimal `json:"min_weight"`
	MaxRisk         decimal.Decimal `json:"max_risk"`
	MinReturn       decimal.Decimal `json:"min_return"`
	AllowedAssets   []string        `json:"allowed_assets"`
	ForbiddenAssets []string        `json:"forbidden_assets"`
}

type PortfolioOptimization struct {
	OptimalWeights   map[string]decimal.Decimal `json:"optimal_weights"`
	ExpectedReturn   decimal.Decimal            `json:"expected_return"`
	ExpectedRisk     decimal.Decimal            `json:"expected_risk"`
	SharpeRatio      decimal.Decimal            `json:"sharpe_ratio"`
	Rebalancing      map[string]decimal.Decimal `json:"rebalancing"`
	OptimizationTime time.Time                  `json:"optimization_time"`
}

type LiquidityRiskAssessment struct {
	Asset             string          `json:"asset"`
	Amount            decimal.Decimal `json:"amount"`
	LiquidityScore    decimal.Decimal `json:"liquidity_score"`
	EstimatedSlippage decimal.Decimal `json:"estimated_slippage"`
	MarketDepth       decimal.Decimal `json:"market_depth"`
	AverageVolume     decimal.Decimal `json:"average_volume"`
	RiskLevel         string          `json:"risk_level"`
	Recommendations   []string        `json:"recommendations"`
}

type TradeRequest struct {
	Asset       string          `json:"asset"`
	Side        string          `json:"side"` // buy, sell
	Amount      decimal.Decimal `json:"amount"`
	MaxSlippage decimal.Decimal `json:"max_slippage"`
	Urgency     string          `json:"urgency"` // low, medium, high
	Timeframe   time.Duration   `json:"timeframe"`
}

type ExecutionStrategy struct {
	Strategy        string          `json:"strategy"` // market, limit, twap, vwap
	Chunks          []TradeChunk    `json:"chunks"`
	EstimatedCost   decimal.Decimal `json:"estimated_cost"`
	EstimatedTime   time.Duration   `json:"estimated_time"`
	RiskScore       decimal.Decimal `json:"risk_score"`
	Recommendations []string        `json:"recommendations"`
}

type TradeChunk struct {
	Amount    decimal.Decimal `json:"amount"`
	Price     decimal.Decimal `json:"price"`
	Timing    time.Duration   `json:"timing"`
	Exchange  string          `json:"exchange"`
	OrderType string          `json:"order_type"`
}

// NewAIRiskManager creates a new AI risk manager
func NewAIRiskManager(logger *logger.Logger, cache redis.Client, config AIRiskConfig) *AIRiskManager {
	return &AIRiskManager{
		logger:           logger.Named("ai-risk-manager"),
		cache:            cache,
		config:           config,
		riskAssessments:  make(map[string]*RiskAssessment),
		riskAlerts:       make(map[string]*RiskAlert),
		portfolioMetrics: &PortfolioRiskMetrics{},
		marketConditions: &MarketConditions{},
		stopChan:         make(chan struct{}),
	}
}

// Start starts the AI risk manager
func (arm *AIRiskManager) Start(ctx context.Context) error {
	arm.mutex.Lock()
	defer arm.mutex.Unlock()

	if arm.isRunning {
		return fmt.Errorf("AI risk manager is already running")
	}

	if !arm.config.Enabled {
		arm.logger.Info("AI risk management is disabled")
		return nil
	}

	arm.logger.Info("Starting AI risk manager",
		zap.String("risk_tolerance", arm.config.RiskToleranceLevel),
		zap.String("max_portfolio_risk", arm.config.MaxPortfolioRisk.String()),
		zap.Duration("assessment_interval", arm.config.RiskAssessmentInterval))

	// Initialize ML models
	if err := arm.initializeModels(); err != nil {
		return fmt.Errorf("failed to initialize ML models: %w", err)
	}

	arm.isRunning = true

	// Start monitoring routines
	if arm.config.EnableRealTimeMonitoring {
		go arm.realTimeMonitoringLoop(ctx)
	}

	go arm.riskAssessmentLoop(ctx)
	go arm.marketAnalysisLoop(ctx)
	go arm.modelUpdateLoop(ctx)
	go arm.alertManagementLoop(ctx)

	arm.logger.Info("AI risk manager started successfully")
	return nil
}

// Stop stops the AI risk manager
func (arm *AIRiskManager) Stop() error {
	arm.mutex.Lock()
	defer arm.mutex.Unlock()

	if !arm.isRunning {
		return nil
	}

	arm.logger.Info("Stopping AI risk manager")
	arm.isRunning = false
	close(arm.stopChan)

	arm.logger.Info("AI risk manager stopped")
	return nil
}

// AssessTransactionRisk assesses the risk of a transaction
func (arm *AIRiskManager) AssessTransactionRisk(ctx context.Context, transactionData *TransactionData) (*RiskAssessment, error) {
	arm.logger.Debug("Assessing transaction risk", zap.String("hash", transactionData.Hash))

	if !arm.config.Enabled {
		return nil, fmt.Errorf("AI risk management is disabled")
	}

	// Use ML model to assess risk
	assessment, err := arm.transactionRiskModel.AssessTransactionRisk(ctx, transactionData)
	if err != nil {
		return nil, fmt.Errorf("failed to assess transaction risk: %w", err)
	}

	// Apply business rules and adjustments
	arm.applyRiskAdjustments(assessment)

	// Store assessment
	arm.mutex.Lock()
	arm.riskAssessments[assessment.ID] = assessment
	arm.mutex.Unlock()

	// Check for alerts
	arm.checkRiskAlerts(assessment)

	arm.logger.Info("Transaction risk assessed",
		zap.String("assessment_id", assessment.ID),
		zap.String("risk_level", assessment.RiskLevel),
		zap.String("risk_score", assessment.OverallRiskScore.String()))

	return assessment, nil
}

// AssessPortfolioRisk assesses the risk of the entire portfolio
func (arm *AIRiskManager) AssessPortfolioRisk(ctx context.Context, portfolioData *PortfolioData) (*PortfolioRiskMetrics, error) {
	arm.logger.Debug("Assessing portfolio risk")

	if !arm.config.Enabled {
		return nil, fmt.Errorf("AI risk management is disabled")
	}

	// Use ML model to assess portfolio risk
	metrics, err := arm.portfolioRiskModel.AssessPortfolioRisk(ctx, portfolioData)
	if err != nil {
		return nil, fmt.Errorf("failed to assess portfolio risk: %w", err)
	}

	// Update stored metrics
	arm.mutex.Lock()
	arm.portfolioMetrics = metrics
	arm.mutex.Unlock()

	// Check for portfolio-level alerts
	arm.checkPortfolioAlerts(metrics)

	arm.logger.Info("Portfolio risk assessed",
		zap.String("total_value", metrics.TotalValue.String()),
		zap.String("var", metrics.ValueAtRisk.String()),
		zap.String("volatility", metrics.Volatility.String()))

	return metrics, nil
}

// PredictMarketRisk predicts market risk for a given timeframe
func (arm *AIRiskManager) PredictMarketRisk(ctx context.Context, timeframe time.Duration) ([]*PredictedOutcome, error) {
	arm.logger.Debug("Predicting market risk", zap.Duration("timeframe", timeframe))

	if !arm.config.EnablePredictiveAnalysis {
		return nil, fmt.Errorf("predictive analysis is disabled")
	}

	// Use ML model to predict market movements
	predictions, err := arm.marketRiskModel.PredictMarketMovement(ctx, timeframe)
	if err != nil {
		return nil, fmt.Errorf("failed to predict market risk: %w", err)
	}

	arm.logger.Info("Market risk predicted",
		zap.Int("prediction_count", len(predictions)),
		zap.Duration("timeframe", timeframe))

	return predictions, nil
}

// OptimizePortfolio optimizes portfolio allocation based on risk constraints
func (arm *AIRiskManager) OptimizePortfolio(ctx context.Context, portfolioData *PortfolioData, constraints *OptimizationConstraints) (*PortfolioOptimization, error) {
	arm.logger.Debug("Optimizing portfolio")

	if !arm.config.Enabled {
		return nil, fmt.Errorf("AI risk management is disabled")
	}

	// Apply risk tolerance constraints
	arm.applyRiskToleranceConstraints(constraints)

	// Use ML model to optimize portfolio
	optimization, err := arm.portfolioRiskModel.OptimizePortfolio(ctx, portfolioData, constraints)
	if err != nil {
		return nil, fmt.Errorf("failed to optimize portfolio: %w", err)
	}

	arm.logger.Info("Portfolio optimized",
		zap.String("expected_return", optimization.ExpectedReturn.String()),
		zap.String("expected_risk", optimization.ExpectedRisk.String()),
		zap.String("sharpe_ratio", optimization.SharpeRatio.String()))

	return optimization, nil
}

// GetOptimalExecutionStrategy gets optimal execution strategy for a trade
func (arm *AIRiskManager) GetOptimalExecutionStrategy(ctx context.Context, tradeRequest *TradeRequest) (*ExecutionStrategy, error) {
	arm.logger.Debug("Getting optimal execution strategy",
		zap.String("asset", tradeRequest.Asset),
		zap.String("side", tradeRequest.Side),
		zap.String("amount", tradeRequest.Amount.String()))

	// Assess liquidity risk first
	liquidityAssessment, err := arm.liquidityRiskModel.AssessLiquidityRisk(ctx, tradeRequest.Asset, tradeRequest.Amount)
	if err != nil {
		return nil, fmt.Errorf("failed to assess liquidity risk: %w", err)
	}

	// Get execution strategy
	strategy, err := arm.liquidityRiskModel.GetOptimalExecutionStrategy(ctx, tradeRequest)
	if err != nil {
		return nil, fmt.Errorf("failed to get execution strategy: %w", err)
	}

	// Adjust strategy based on liquidity risk
	arm.adjustExecutionStrategy(strategy, liquidityAssessment)

	arm.logger.Info("Optimal execution strategy determined",
		zap.String("strategy", strategy.Strategy),
		zap.String("estimated_cost", strategy.EstimatedCost.String()),
		zap.Duration("estimated_time", strategy.EstimatedTime))

	return strategy, nil
}

// Helper methods

// initializeModels initializes ML models
func (arm *AIRiskManager) initializeModels() error {
	arm.logger.Info("Initializing ML models")

	// Initialize transaction risk model
	arm.transactionRiskModel = NewMockTransactionRiskModel(arm.logger)

	// Initialize portfolio risk model
	arm.portfolioRiskModel = NewMockPortfolioRiskModel(arm.logger)

	// Initialize market risk model
	arm.marketRiskModel = NewMockMarketRiskModel(arm.logger)

	// Initialize liquidity risk model
	arm.liquidityRiskModel = NewMockLiquidityRiskModel(arm.logger)

	arm.logger.Info("ML models initialized successfully")
	return nil
}

// applyRiskAdjustments applies business rule adjustments to risk assessment
func (arm *AIRiskManager) applyRiskAdjustments(assessment *RiskAssessment) {
	// Adjust based on risk tolerance level
	switch arm.config.RiskToleranceLevel {
	case "conservative":
		// Increase risk scores for conservative approach
		assessment.OverallRiskScore = assessment.OverallRiskScore.Mul(decimal.NewFromFloat(1.2))
	case "aggressive":
		// Decrease risk scores for aggressive approach
		assessment.OverallRiskScore = assessment.OverallRiskScore.Mul(decimal.NewFromFloat(0.8))
	}

	// Update risk level based on adjusted score
	assessment.RiskLevel = arm.calculateRiskLevel(assessment.OverallRiskScore)

	// Add risk tolerance recommendation
	assessment.Recommendations = append(assessment.Recommendations,
		fmt.Sprintf("Risk assessment adjusted for %s risk tolerance", arm.config.RiskToleranceLevel))
}

// calculateRiskLevel calculates risk level from risk score
func (arm *AIRiskManager) calculateRiskLevel(riskScore decimal.Decimal) string {
	if riskScore.LessThan(decimal.NewFromFloat(0.3)) {
		return "low"
	} else if riskScore.LessThan(decimal.NewFromFloat(0.6)) {
		return "medium"
	} else if riskScore.LessThan(decimal.NewFromFloat(0.8)) {
		return "high"
	}
	return "critical"
}

// checkRiskAlerts checks for risk alerts based on assessment
func (arm *AIRiskManager) checkRiskAlerts(assessment *RiskAssessment) {
	if assessment.OverallRiskScore.GreaterThan(arm.config.AlertThresholds.HighRisk) {
		alert := &RiskAlert{
			ID:          arm.generateAlertID(),
			Type:        "transaction",
			Severity:    "high",
			Title:       "High Transaction Risk Detected",
			Description: fmt.Sprintf("Transaction %s has high risk score: %s", assessment.TransactionHash, assessment.OverallRiskScore.String()),
			RiskScore:   assessment.OverallRiskScore,
			Threshold:   arm.config.AlertThresholds.HighRisk,
			Actions:     []string{"Review transaction details", "Consider reducing amount", "Use MEV protection"},
			CreatedAt:   time.Now(),
			Status:      "active",
		}

		arm.mutex.Lock()
		arm.riskAlerts[alert.ID] = alert
		arm.mutex.Unlock()

		arm.logger.Warn("High risk alert created", zap.String("alert_id", alert.ID))
	}
}

// checkPortfolioAlerts checks for portfolio-level alerts
func (arm *AIRiskManager) checkPortfolioAlerts(metrics *PortfolioRiskMetrics) {
	// Check VaR threshold
	if metrics.ValueAtRisk.GreaterThan(arm.config.MaxPortfolioRisk) {
		alert := &RiskAlert{
			ID:          arm.generateAlertID(),
			Type:        "portfolio",
			Severity:    "high",
			Title:       "Portfolio Risk Limit Exceeded",
			Description: fmt.Sprintf("Portfolio VaR (%s) exceeds maximum allowed risk (%s)", metrics.ValueAtRisk.String(), arm.config.MaxPortfolioRisk.String()),
			RiskScore:   metrics.ValueAtRisk,
			Threshold:   arm.config.MaxPortfolioRisk,
			Actions:     []string{"Rebalance portfolio", "Reduce position sizes", "Increase diversification"},
			CreatedAt:   time.Now(),
			Status:      "active",
		}

		arm.mutex.Lock()
		arm.riskAlerts[alert.ID] = alert
		arm.mutex.Unlock()

		arm.logger.Warn("Portfolio risk alert created", zap.String("alert_id", alert.ID))
	}
}

// Missing helper methods

// applyRiskToleranceConstraints applies risk tolerance to optimization constraints
func (arm *AIRiskManager) applyRiskToleranceConstraints(constraints *OptimizationConstraints) {
	switch arm.config.RiskToleranceLevel {
	case "conservative":
		constraints.MaxRisk = decimal.NewFromFloat(0.1)   // 10% max risk
		constraints.MaxWeight = decimal.NewFromFloat(0.2) // 20% max weight per asset
	case "moderate":
		constraints.MaxRisk = decimal.NewFromFloat(0.2)   // 20% max risk
		constraints.MaxWeight = decimal.NewFromFloat(0.3) // 30% max weight per asset
	case "aggressive":
		constraints.MaxRisk = decimal.NewFromFloat(0.4)   // 40% max risk
		constraints.MaxWeight = decimal.NewFromFloat(0.5) // 50% max weight per asset
	}
}

// adjustExecutionStrategy adjusts execution strategy based on liquidity assessment
func (arm *AIRiskManager) adjustExecutionStrategy(strategy *ExecutionStrategy, liquidityAssessment *LiquidityRiskAssessment) {
	if liquidityAssessment.LiquidityScore.LessThan(decimal.NewFromFloat(0.5)) {
		// Low liquidity - use TWAP strategy
		strategy.Strategy = "twap"
		strategy.EstimatedTime = strategy.EstimatedTime * 2 // Double the time
		strategy.Recommendations = append(strategy.Recommendations, "Use TWAP due to low liquidity")
	}
}

// generateAlertID generates a unique alert ID
func (arm *AIRiskManager) generateAlertID() string {
	return fmt.Sprintf("alert_%d", time.Now().UnixNano())
}

// Loop methods

// realTimeMonitoringLoop monitors risk in real-time
func (arm *AIRiskManager) realTimeMonitoringLoop(ctx context.Context) {
	ticker := time.NewTicker(10 * time.Second) // Real-time monitoring every 10 seconds
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-arm.stopChan:
			return
		case <-ticker.C:
			arm.performRealTimeRiskCheck(ctx)
		}
	}
}

// riskAssessmentLoop performs periodic risk assessments
func (arm *AIRiskManager) riskAssessmentLoop(ctx context.Context) {
	ticker := time.NewTicker(arm.config.RiskAssessmentInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-arm.stopChan:
			return
		case <-ticker.C:
			arm.performPeriodicRiskAssessment(ctx)
		}
	}
}

// marketAnalysisLoop performs periodic market analysis
func (arm *AIRiskManager) marketAnalysisLoop(ctx context.Context) {
	ticker := time.NewTicker(arm.config.MarketAnalysisInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-arm.stopChan:
			return
		case <-ticker.C:
			arm.performMarketAnalysis(ctx)
		}
	}
}

// modelUpdateLoop updates ML models periodically
func (arm *AIRiskManager) modelUpdateLoop(ctx context.Context) {
	ticker := time.NewTicker(arm.config.ModelUpdateInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-arm.stopChan:
			return
		case <-ticker.C:
			arm.updateModels(ctx)
		}
	}
}

// alertManagementLoop manages risk alerts
func (arm *AIRiskManager) alertManagementLoop(ctx context.Context) {
	ticker := time.NewTicker(1 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-arm.stopChan:
			return
		case <-ticker.C:
			arm.manageAlerts(ctx)
		}
	}
}

// performRealTimeRiskCheck performs real-time risk monitoring
func (arm *AIRiskManager) performRealTimeRiskCheck(ctx context.Context) {
	arm.logger.Debug("Performing real-time risk check")

	// Check for sudden market changes
	// Check for unusual transaction patterns
	// Monitor portfolio risk in real-time
	// This would integrate with live data feeds
}

// performPeriodicRiskAssessment performs periodic comprehensive risk assessment
func (arm *AIRiskManager) performPeriodicRiskAssessment(ctx context.Context) {
	arm.logger.Debug("Performing periodic risk assessment")

	// Assess overall portfolio risk
	// Update risk models with new data
	// Generate risk reports
}

// performMarketAnalysis performs market condition analysis
func (arm *AIRiskManager) performMarketAnalysis(ctx context.Context) {
	arm.logger.Debug("Performing market analysis")

	// Analyze market trends
	// Update market conditions
	// Generate market risk predictions
}

// updateModels updates ML models with new data
func (arm *AIRiskManager) updateModels(ctx context.Context) {
	arm.logger.Debug("Updating ML models")

	// Collect new training data
	// Retrain models
	// Validate model performance
}

// manageAlerts manages active risk alerts
func (arm *AIRiskManager) manageAlerts(ctx context.Context) {
	arm.logger.Debug("Managing risk alerts")

	arm.mutex.Lock()
	defer arm.mutex.Unlock()

	// Clean up resolved alerts
	for id, alert := range arm.riskAlerts {
		if alert.Status == "resolved" && time.Since(alert.CreatedAt) > 24*time.Hour {
			delete(arm.riskAlerts, id)
		}
	}
}

// Public interface methods

// GetRiskAssessments returns all risk assessments
func (arm *AIRiskManager) GetRiskAssessments() []*RiskAssessment {
	arm.mutex.RLock()
	defer arm.mutex.RUnlock()

	assessments := make([]*RiskAssessment, 0, len(arm.riskAssessments))
	for _, assessment := range arm.riskAssessments {
		assessments = append(assessments, assessment)
	}

	return assessments
}

// GetPortfolioMetrics returns current portfolio risk metrics
func (arm *AIRiskManager) GetPortfolioMetrics() *PortfolioRiskMetrics {
	arm.mutex.RLock()
	defer arm.mutex.RUnlock()

	return arm.portfolioMetrics
}

// GetMarketConditions returns current market conditions
func (arm *AIRiskManager) GetMarketConditions() *MarketConditions {
	arm.mutex.RLock()
	defer arm.mutex.RUnlock()

	return arm.marketConditions
}

// GetActiveAlerts returns all active risk alerts
func (arm *AIRiskManager) GetActiveAlerts() []*RiskAlert {
	arm.mutex.RLock()
	defer arm.mutex.RUnlock()

	alerts := make([]*RiskAlert, 0)
	for _, alert := range arm.riskAlerts {
		if alert.Status == "active" {
			alerts = append(alerts, alert)
		}
	}

	return alerts
}

// GetAllAlerts returns all risk alerts
func (arm *AIRiskManager) GetAllAlerts() []*RiskAlert {
	arm.mutex.RLock()
	defer arm.mutex.RUnlock()

	alerts := make([]*RiskAlert, 0, len(arm.riskAlerts))
	for _, alert := range arm.riskAlerts {
		alerts = append(alerts, alert)
	}

	return alerts
}

// ResolveAlert resolves a risk alert
func (arm *AIRiskManager) ResolveAlert(alertID string) error {
	arm.mutex.Lock()
	defer arm.mutex.Unlock()

	alert, exists := arm.riskAlerts[alertID]
	if !exists {
		return fmt.Errorf("alert not found: %s", alertID)
	}

	alert.Status = "resolved"
	now := time.Now()
	alert.ResolvedAt = &now

	arm.logger.Info("Risk alert resolved", zap.String("alert_id", alertID))
	return nil
}

// DismissAlert dismisses a risk alert
func (arm *AIRiskManager) DismissAlert(alertID string) error {
	arm.mutex.Lock()
	defer arm.mutex.Unlock()

	alert, exists := arm.riskAlerts[alertID]
	if !exists {
		return fmt.Errorf("alert not found: %s", alertID)
	}

	alert.Status = "dismissed"
	now := time.Now()
	alert.ResolvedAt = &now

	arm.logger.Info("Risk alert dismissed", zap.String("alert_id", alertID))
	return nil
}

// UpdateConfig updates the AI risk management configuration
func (arm *AIRiskManager) UpdateConfig(config AIRiskConfig) error {
	arm.mutex.Lock()
	defer arm.mutex.Unlock()

	arm.config = config
	arm.logger.Info("AI risk management configuration updated",
		zap.String("risk_tolerance", config.RiskToleranceLevel),
		zap.String("max_portfolio_risk", config.MaxPortfolioRisk.String()),
		zap.Bool("real_time_monitoring", config.EnableRealTimeMonitoring),
		zap.Bool("predictive_analysis", config.EnablePredictiveAnalysis))

	return nil
}

// GetConfig returns the current configuration
func (arm *AIRiskManager) GetConfig() AIRiskConfig {
	arm.mutex.RLock()
	defer arm.mutex.RUnlock()

	return arm.config
}

// IsRunning returns whether the AI risk manager is running
func (arm *AIRiskManager) IsRunning() bool {
	arm.mutex.RLock()
	defer arm.mutex.RUnlock()

	return arm.isRunning
}

// GetDefaultConfig returns default AI risk management configuration
func GetDefaultAIRiskConfig() AIRiskConfig {
	return AIRiskConfig{
		Enabled:                  true,
		RiskToleranceLevel:       "moderate",
		MaxPortfolioRisk:         decimal.NewFromFloat(0.15), // 15%
		MaxSingleTransactionRisk: decimal.NewFromFloat(0.05), // 5%
		RiskAssessmentInterval:   5 * time.Minute,
		MarketAnalysisInterval:   1 * time.Minute,
		EnableRealTimeMonitoring: true,
		EnablePredictiveAnalysis: true,
		AlertThresholds: AlertThresholds{
			HighRisk:       decimal.NewFromFloat(0.7),
			CriticalRisk:   decimal.NewFromFloat(0.9),
			VolatilityHigh: decimal.NewFromFloat(0.3),
			LiquidityLow:   decimal.NewFromFloat(0.4),
		},
		ModelUpdateInterval: 1 * time.Hour,
		HistoricalDataDays:  30,
	}
}
