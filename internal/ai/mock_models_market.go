package ai

import (
	"context"
	"time"

	"github.com/DimaJoyti/go-coffee/solana-engine/pkg/logger"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// MockMarketRiskModel implements MarketRiskModel interface
type MockMarketRiskModel struct {
	logger       *logger.Logger
	modelVersion string
}

// NewMockMarketRiskModel creates a new mock market risk model
func NewMockMarketRiskModel(logger *logger.Logger) *MockMarketRiskModel {
	return &MockMarketRiskModel{
		logger:       logger.Named("mock-market-risk-model"),
		modelVersion: "mock-v1.0.0",
	}
}

// AnalyzeMarketConditions analyzes current market conditions
func (mmrm *MockMarketRiskModel) AnalyzeMarketConditions(ctx context.Context, marketData *MarketData) (*MarketConditions, error) {
	mmrm.logger.Debug("Analyzing market conditions")

	// Mock market analysis
	conditions := &MarketConditions{
		OverallSentiment: mmrm.calculateSentiment(marketData),
		VolatilityIndex:  mmrm.calculateVolatilityIndex(marketData),
		LiquidityIndex:   decimal.NewFromFloat(0.7), // Mock liquidity
		FearGreedIndex:   decimal.NewFromFloat(0.6), // Mock fear/greed
		MarketTrend:      mmrm.calculateTrend(marketData),
		TrendStrength:    decimal.NewFromFloat(0.5),
		SupportLevel:     decimal.NewFromFloat(30000), // Mock BTC support
		ResistanceLevel:  decimal.NewFromFloat(50000), // Mock BTC resistance
		TradingVolume:    mmrm.calculateTotalVolume(marketData),
		MarketCap:        mmrm.calculateTotalMarketCap(marketData),
		DominanceIndex:   decimal.NewFromFloat(0.45), // Mock BTC dominance
		NetworkActivity:  decimal.NewFromFloat(0.8),  // Mock network activity
		LastUpdated:      time.Now(),
	}

	return conditions, nil
}

// PredictMarketMovement predicts market movements for a given timeframe
func (mmrm *MockMarketRiskModel) PredictMarketMovement(ctx context.Context, timeframe time.Duration) ([]*PredictedOutcome, error) {
	mmrm.logger.Debug("Predicting market movement", zap.Duration("timeframe", timeframe))

	// Mock predictions based on timeframe
	var outcomes []*PredictedOutcome

	if timeframe <= time.Hour {
		// Short-term predictions
		outcomes = []*PredictedOutcome{
			{
				Scenario:    "price_increase",
				Probability: decimal.NewFromFloat(0.4),
				Impact:      decimal.NewFromFloat(0.02), // 2% increase
				Timeframe:   timeframe,
				Description: "Short-term price increase likely",
			},
			{
				Scenario:    "price_decrease",
				Probability: decimal.NewFromFloat(0.35),
				Impact:      decimal.NewFromFloat(-0.015), // 1.5% decrease
				Timeframe:   timeframe,
				Description: "Short-term price decrease possible",
			},
			{
				Scenario:    "sideways_movement",
				Probability: decimal.NewFromFloat(0.25),
				Impact:      decimal.NewFromFloat(0.005), // 0.5% movement
				Timeframe:   timeframe,
				Description: "Price likely to move sideways",
			},
		}
	} else if timeframe <= 24*time.Hour {
		// Medium-term predictions
		outcomes = []*PredictedOutcome{
			{
				Scenario:    "bullish_trend",
				Probability: decimal.NewFromFloat(0.45),
				Impact:      decimal.NewFromFloat(0.05), // 5% increase
				Timeframe:   timeframe,
				Description: "Bullish trend expected",
			},
			{
				Scenario:    "bearish_trend",
				Probability: decimal.NewFromFloat(0.3),
				Impact:      decimal.NewFromFloat(-0.04), // 4% decrease
				Timeframe:   timeframe,
				Description: "Bearish trend possible",
			},
			{
				Scenario:    "consolidation",
				Probability: decimal.NewFromFloat(0.25),
				Impact:      decimal.NewFromFloat(0.01), // 1% movement
				Timeframe:   timeframe,
				Description: "Market consolidation likely",
			},
		}
	} else {
		// Long-term predictions
		outcomes = []*PredictedOutcome{
			{
				Scenario:    "long_term_growth",
				Probability: decimal.NewFromFloat(0.6),
				Impact:      decimal.NewFromFloat(0.15), // 15% increase
				Timeframe:   timeframe,
				Description: "Long-term growth expected",
			},
			{
				Scenario:    "market_correction",
				Probability: decimal.NewFromFloat(0.25),
				Impact:      decimal.NewFromFloat(-0.1), // 10% decrease
				Timeframe:   timeframe,
				Description: "Market correction possible",
			},
			{
				Scenario:    "stable_growth",
				Probability: decimal.NewFromFloat(0.15),
				Impact:      decimal.NewFromFloat(0.05), // 5% increase
				Timeframe:   timeframe,
				Description: "Stable growth pattern",
			},
		}
	}

	return outcomes, nil
}

// CalculateCorrelations calculates correlations between assets
func (mmrm *MockMarketRiskModel) CalculateCorrelations(ctx context.Context, assets []string) (map[string]map[string]decimal.Decimal, error) {
	mmrm.logger.Debug("Calculating asset correlations", zap.Strings("assets", assets))

	correlations := make(map[string]map[string]decimal.Decimal)

	for _, asset1 := range assets {
		correlations[asset1] = make(map[string]decimal.Decimal)
		for _, asset2 := range assets {
			if asset1 == asset2 {
				correlations[asset1][asset2] = decimal.NewFromFloat(1.0) // Perfect correlation with self
			} else {
				// Mock correlation calculation
				correlations[asset1][asset2] = mmrm.mockCorrelation(asset1, asset2)
			}
		}
	}

	return correlations, nil
}

// Helper methods for MockMarketRiskModel

func (mmrm *MockMarketRiskModel) calculateSentiment(marketData *MarketData) string {
	// Mock sentiment calculation based on price changes
	totalChange := decimal.Zero
	count := 0

	for _, change := range marketData.PriceChanges {
		totalChange = totalChange.Add(change)
		count++
	}

	if count == 0 {
		return "neutral"
	}

	avgChange := totalChange.Div(decimal.NewFromInt(int64(count)))

	if avgChange.GreaterThan(decimal.NewFromFloat(0.02)) {
		return "bullish"
	} else if avgChange.LessThan(decimal.NewFromFloat(-0.02)) {
		return "bearish"
	}
	return "neutral"
}

func (mmrm *MockMarketRiskModel) calculateVolatilityIndex(marketData *MarketData) decimal.Decimal {
	// Mock volatility calculation
	if len(marketData.Volatilities) == 0 {
		return decimal.NewFromFloat(0.5) // Default volatility
	}

	totalVolatility := decimal.Zero
	count := 0

	for _, volatility := range marketData.Volatilities {
		totalVolatility = totalVolatility.Add(volatility)
		count++
	}

	return totalVolatility.Div(decimal.NewFromInt(int64(count)))
}

func (mmrm *MockMarketRiskModel) calculateTrend(marketData *MarketData) string {
	// Mock trend calculation
	positiveChanges := 0
	negativeChanges := 0

	for _, change := range marketData.PriceChanges {
		if change.GreaterThan(decimal.Zero) {
			positiveChanges++
		} else if change.LessThan(decimal.Zero) {
			negativeChanges++
		}
	}

	if positiveChanges > negativeChanges {
		return "uptrend"
	} else if negativeChanges > positiveChanges {
		return "downtrend"
	}
	return "sideways"
}

func (mmrm *MockMarketRiskModel) calculateTotalVolume(marketData *MarketData) decimal.Decimal {
	totalVolume := decimal.Zero
	for _, volume := range marketData.Volumes {
		totalVolume = totalVolume.Add(volume)
	}
	return totalVolume
}

func (mmrm *MockMarketRiskModel) calculateTotalMarketCap(marketData *MarketData) decimal.Decimal {
	totalMarketCap := decimal.Zero
	for _, marketCap := range marketData.MarketCaps {
		totalMarketCap = totalMarketCap.Add(marketCap)
	}
	return totalMarketCap
}

func (mmrm *MockMarketRiskModel) mockCorrelation(asset1, asset2 string) decimal.Decimal {
	// Mock correlation based on asset types
	// In reality, this would be calculated from historical price data

	// Define asset categories
	stablecoins := map[string]bool{"USDC": true, "USDT": true, "DAI": true}
	majors := map[string]bool{"BTC": true, "ETH": true}

	// High correlation between stablecoins
	if stablecoins[asset1] && stablecoins[asset2] {
		return decimal.NewFromFloat(0.95)
	}

	// Medium correlation between major cryptocurrencies
	if majors[asset1] && majors[asset2] {
		return decimal.NewFromFloat(0.7)
	}

	// Low correlation between stablecoins and other assets
	if (stablecoins[asset1] && !stablecoins[asset2]) || (!stablecoins[asset1] && stablecoins[asset2]) {
		return decimal.NewFromFloat(0.1)
	}

	// Default correlation for other pairs
	return decimal.NewFromFloat(0.5)
}

// MockLiquidityRiskModel implements LiquidityRiskModel interface
type MockLiquidityRiskModel struct {
	logger       *logger.Logger
	modelVersion string
}

// NewMockLiquidityRiskModel creates a new mock liquidity risk model
func NewMockLiquidityRiskModel(logger *logger.Logger) *MockLiquidityRiskModel {
	return &MockLiquidityRiskModel{
		logger:       logger.Named("mock-liquidity-risk-model"),
		modelVersion: "mock-v1.0.0",
	}
}

// AssessLiquidityRisk assesses liquidity risk for an asset and amount
func (mlrm *MockLiquidityRiskModel) AssessLiquidityRisk(ctx context.Context, asset string, amount decimal.Decimal) (*LiquidityRiskAssessment, error) {
	mlrm.logger.Debug("Assessing liquidity risk",
		zap.String("asset", asset),
		zap.String("amount", amount.String()))

	// Mock liquidity assessment
	liquidityScore := mlrm.calculateLiquidityScore(asset, amount)
	estimatedSlippage := mlrm.calculateSlippage(asset, amount)
	marketDepth := mlrm.calculateMarketDepth(asset)
	averageVolume := mlrm.calculateAverageVolume(asset)

	assessment := &LiquidityRiskAssessment{
		Asset:             asset,
		Amount:            amount,
		LiquidityScore:    liquidityScore,
		EstimatedSlippage: estimatedSlippage,
		MarketDepth:       marketDepth,
		AverageVolume:     averageVolume,
		RiskLevel:         mlrm.calculateLiquidityRiskLevel(liquidityScore),
		Recommendations:   mlrm.generateLiquidityRecommendations(liquidityScore, estimatedSlippage),
	}

	return assessment, nil
}

// EstimateSlippage estimates slippage for a trade
func (mlrm *MockLiquidityRiskModel) EstimateSlippage(ctx context.Context, asset string, amount decimal.Decimal) (decimal.Decimal, error) {
	return mlrm.calculateSlippage(asset, amount), nil
}

// GetOptimalExecutionStrategy gets optimal execution strategy for a trade
func (mlrm *MockLiquidityRiskModel) GetOptimalExecutionStrategy(ctx context.Context, trade *TradeRequest) (*ExecutionStrategy, error) {
	mlrm.logger.Debug("Getting optimal execution strategy",
		zap.String("asset", trade.Asset),
		zap.String("amount", trade.Amount.String()))

	// Assess liquidity first
	liquidityAssessment, err := mlrm.AssessLiquidityRisk(ctx, trade.Asset, trade.Amount)
	if err != nil {
		return nil, err
	}

	// Determine strategy based on liquidity and urgency
	strategy := mlrm.determineStrategy(trade, liquidityAssessment)
	chunks := mlrm.generateTradeChunks(trade, strategy)
	estimatedCost := mlrm.calculateEstimatedCost(trade, chunks)
	estimatedTime := mlrm.calculateEstimatedTime(strategy, len(chunks))
	riskScore := mlrm.calculateExecutionRiskScore(liquidityAssessment, trade)

	executionStrategy := &ExecutionStrategy{
		Strategy:        strategy,
		Chunks:          chunks,
		EstimatedCost:   estimatedCost,
		EstimatedTime:   estimatedTime,
		RiskScore:       riskScore,
		Recommendations: mlrm.generateExecutionRecommendations(strategy, liquidityAssessment),
	}

	return executionStrategy, nil
}

// Helper methods for MockLiquidityRiskModel

func (mlrm *MockLiquidityRiskModel) calculateLiquidityScore(asset string, amount decimal.Decimal) decimal.Decimal {
	// Mock liquidity score based on asset type and amount
	baseScore := decimal.NewFromFloat(0.7) // Default score

	// Major assets have higher liquidity
	majors := map[string]bool{"BTC": true, "ETH": true, "USDC": true, "USDT": true}
	if majors[asset] {
		baseScore = decimal.NewFromFloat(0.9)
	}

	// Large amounts reduce liquidity score
	if amount.GreaterThan(decimal.NewFromFloat(100000)) {
		baseScore = baseScore.Mul(decimal.NewFromFloat(0.8))
	} else if amount.GreaterThan(decimal.NewFromFloat(10000)) {
		baseScore = baseScore.Mul(decimal.NewFromFloat(0.9))
	}

	return baseScore
}

func (mlrm *MockLiquidityRiskModel) calculateSlippage(asset string, amount decimal.Decimal) decimal.Decimal {
	// Mock slippage calculation
	baseSlippage := decimal.NewFromFloat(0.001) // 0.1% base slippage

	// Higher amounts increase slippage
	if amount.GreaterThan(decimal.NewFromFloat(100000)) {
		baseSlippage = baseSlippage.Mul(decimal.NewFromFloat(5)) // 0.5%
	} else if amount.GreaterThan(decimal.NewFromFloat(10000)) {
		baseSlippage = baseSlippage.Mul(decimal.NewFromFloat(2)) // 0.2%
	}

	return baseSlippage
}

func (mlrm *MockLiquidityRiskModel) calculateMarketDepth(asset string) decimal.Decimal {
	// Mock market depth
	majors := map[string]bool{"BTC": true, "ETH": true, "USDC": true, "USDT": true}
	if majors[asset] {
		return decimal.NewFromFloat(10000000) // $10M depth
	}
	return decimal.NewFromFloat(1000000) // $1M depth
}

func (mlrm *MockLiquidityRiskModel) calculateAverageVolume(asset string) decimal.Decimal {
	// Mock average volume
	majors := map[string]bool{"BTC": true, "ETH": true, "USDC": true, "USDT": true}
	if majors[asset] {
		return decimal.NewFromFloat(100000000) // $100M daily volume
	}
	return decimal.NewFromFloat(10000000) // $10M daily volume
}

func (mlrm *MockLiquidityRiskModel) calculateLiquidityRiskLevel(liquidityScore decimal.Decimal) string {
	if liquidityScore.GreaterThan(decimal.NewFromFloat(0.8)) {
		return "low"
	} else if liquidityScore.GreaterThan(decimal.NewFromFloat(0.6)) {
		return "medium"
	} else if liquidityScore.GreaterThan(decimal.NewFromFloat(0.4)) {
		return "high"
	}
	return "critical"
}

func (mlrm *MockLiquidityRiskModel) generateLiquidityRecommendations(liquidityScore, slippage decimal.Decimal) []string {
	var recommendations []string

	if liquidityScore.LessThan(decimal.NewFromFloat(0.6)) {
		recommendations = append(recommendations, "Consider splitting trade into smaller chunks")
		recommendations = append(recommendations, "Use TWAP strategy to minimize market impact")
	}

	if slippage.GreaterThan(decimal.NewFromFloat(0.005)) {
		recommendations = append(recommendations, "High slippage expected - consider limit orders")
	}

	if len(recommendations) == 0 {
		recommendations = append(recommendations, "Liquidity conditions are favorable")
	}

	return recommendations
}

func (mlrm *MockLiquidityRiskModel) determineStrategy(trade *TradeRequest, assessment *LiquidityRiskAssessment) string {
	if trade.Urgency == "high" {
		return "market"
	}

	if assessment.LiquidityScore.LessThan(decimal.NewFromFloat(0.6)) {
		return "twap"
	}

	if trade.Amount.GreaterThan(decimal.NewFromFloat(50000)) {
		return "vwap"
	}

	return "limit"
}

func (mlrm *MockLiquidityRiskModel) generateTradeChunks(trade *TradeRequest, strategy string) []TradeChunk {
	var chunks []TradeChunk

	if strategy == "twap" || strategy == "vwap" {
		// Split into 5 chunks
		chunkSize := trade.Amount.Div(decimal.NewFromInt(5))
		for i := 0; i < 5; i++ {
			chunks = append(chunks, TradeChunk{
				Amount:    chunkSize,
				Price:     decimal.NewFromFloat(1000), // Mock price
				Timing:    time.Duration(i*2) * time.Minute,
				Exchange:  "uniswap",
				OrderType: "limit",
			})
		}
	} else {
		// Single chunk
		chunks = append(chunks, TradeChunk{
			Amount:    trade.Amount,
			Price:     decimal.NewFromFloat(1000), // Mock price
			Timing:    0,
			Exchange:  "uniswap",
			OrderType: strategy,
		})
	}

	return chunks
}

func (mlrm *MockLiquidityRiskModel) calculateEstimatedCost(trade *TradeRequest, chunks []TradeChunk) decimal.Decimal {
	// Mock cost calculation
	return trade.Amount.Mul(decimal.NewFromFloat(0.003)) // 0.3% of trade amount
}

func (mlrm *MockLiquidityRiskModel) calculateEstimatedTime(strategy string, numChunks int) time.Duration {
	switch strategy {
	case "market":
		return 1 * time.Minute
	case "limit":
		return 5 * time.Minute
	case "twap":
		return time.Duration(numChunks*2) * time.Minute
	case "vwap":
		return time.Duration(numChunks*3) * time.Minute
	default:
		return 5 * time.Minute
	}
}

func (mlrm *MockLiquidityRiskModel) calculateExecutionRiskScore(assessment *LiquidityRiskAssessment, trade *TradeRequest) decimal.Decimal {
	riskScore := decimal.NewFromFloat(1.0).Sub(assessment.LiquidityScore)

	if trade.Urgency == "high" {
		riskScore = riskScore.Add(decimal.NewFromFloat(0.2))
	}

	if riskScore.GreaterThan(decimal.NewFromFloat(1.0)) {
		riskScore = decimal.NewFromFloat(1.0)
	}

	return riskScore
}

func (mlrm *MockLiquidityRiskModel) generateExecutionRecommendations(strategy string, assessment *LiquidityRiskAssessment) []string {
	var recommendations []string

	switch strategy {
	case "twap":
		recommendations = append(recommendations, "TWAP strategy will minimize market impact")
	case "vwap":
		recommendations = append(recommendations, "VWAP strategy will optimize against volume")
	case "market":
		recommendations = append(recommendations, "Market order will execute quickly but may have higher slippage")
	case "limit":
		recommendations = append(recommendations, "Limit order will control price but may not fill immediately")
	}

	if assessment.RiskLevel == "high" {
		recommendations = append(recommendations, "Consider reducing trade size due to liquidity constraints")
	}

	return recommendations
}
