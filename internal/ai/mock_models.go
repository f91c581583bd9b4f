package ai

import (
	"context"
	"fmt"
	"time"

	"github.com/DimaJoyti/go-coffee/solana-engine/pkg/logger"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Mock implementations of ML models for testing and development

// MockTransactionRiskModel implements TransactionRiskModel interface
type MockTransactionRiskModel struct {
	logger       *logger.Logger
	modelVersion string
}

// NewMockTransactionRiskModel creates a new mock transaction risk model
func NewMockTransactionRiskModel(logger *logger.Logger) *MockTransactionRiskModel {
	return &MockTransactionRiskModel{
		logger:       logger.Named("mock-transaction-risk-model"),
		modelVersion: "mock-v1.0.0",
	}
}

// AssessTransactionRisk assesses transaction risk using mock logic
func (mtrm *MockTransactionRiskModel) AssessTransactionRisk(ctx context.Context, transaction *TransactionData) (*RiskAssessment, error) {
	mtrm.logger.Debug("Assessing transaction risk", zap.String("hash", transaction.Hash))

	// Mock risk calculation based on transaction properties
	riskScore := decimal.NewFromFloat(0.3) // Base risk

	// Higher value transactions are riskier
	if transaction.Value.GreaterThan(decimal.NewFromFloat(10000)) {
		riskScore = riskScore.Add(decimal.NewFromFloat(0.2))
	}

	// Higher gas price might indicate urgency or MEV
	if transaction.GasPrice.GreaterThan(decimal.NewFromFloat(50000000000)) { // > 50 gwei
		riskScore = riskScore.Add(decimal.NewFromFloat(0.1))
	}

	// Contract interactions are riskier
	if transaction.ContractAddress != "" {
		riskScore = riskScore.Add(decimal.NewFromFloat(0.15))
	}

	// MEV detected increases risk significantly
	if transaction.MEVDetected {
		riskScore = riskScore.Add(decimal.NewFromFloat(0.3))
	}

	// Cap at 1.0
	if riskScore.GreaterThan(decimal.NewFromFloat(1.0)) {
		riskScore = decimal.NewFromFloat(1.0)
	}

	// Create risk factors
	riskFactors := map[string]RiskFactor{
		"transaction_value": {
			Name:        "Transaction Value",
			Score:       mtrm.calculateValueRisk(transaction.Value),
			Weight:      decimal.NewFromFloat(0.3),
			Impact:      "negative",
			Description: "Higher value transactions carry more risk",
			Confidence:  decimal.NewFromFloat(0.9),
		},
		"gas_price": {
			Name:        "Gas Price",
			Score:       mtrm.calculateGasRisk(transaction.GasPrice),
			Weight:      decimal.NewFromFloat(0.2),
			Impact:      "negative",
			Description: "High gas prices may indicate MEV or urgency",
			Confidence:  decimal.NewFromFloat(0.8),
		},
		"contract_interaction": {
			Name:        "Contract Interaction",
			Score:       mtrm.calculateContractRisk(transaction.ContractAddress),
			Weight:      decimal.NewFromFloat(0.25),
			Impact:      "negative",
			Description: "Smart contract interactions carry additional risks",
			Confidence:  decimal.NewFromFloat(0.85),
		},
		"mev_risk": {
			Name:        "MEV Risk",
			Score:       mtrm.calculateMEVRisk(transaction.MEVDetected),
			Weight:      decimal.NewFromFloat(0.25),
			Impact:      "negative",
			Description: "MEV attacks can cause significant losses",
			Confidence:  decimal.NewFromFloat(0.95),
		},
	}

	// Generate recommendations
	recommendations := mtrm.generateRecommendations(riskScore, transaction)

	// Generate predicted outcomes
	outcomes := mtrm.generatePredictedOutcomes(riskScore)

	assessment := &RiskAssessment{
		ID:                fmt.Sprintf("txn_risk_%d", time.Now().UnixNano()),
		TransactionHash:   transaction.Hash,
		AssessmentType:    "transaction",
		OverallRiskScore:  riskScore,
		RiskLevel:         mtrm.calculateRiskLevel(riskScore),
		RiskFactors:       riskFactors,
		Recommendations:   recommendations,
		ConfidenceScore:   decimal.NewFromFloat(0.85),
		PredictedOutcomes: outcomes,
		AssessedAt:        time.Now(),
		ExpiresAt:         time.Now().Add(10 * time.Minute),
		ModelVersion:      mtrm.modelVersion,
	}

	return assessment, nil
}

// UpdateModel updates the model with new training data
func (mtrm *MockTransactionRiskModel) UpdateModel(ctx context.Context, trainingData []*TransactionData) error {
	mtrm.logger.Info("Updating transaction risk model", zap.Int("training_samples", len(trainingData)))
	// Mock model update - in reality would retrain the model
	return nil
}

// GetModelVersion returns the model version
func (mtrm *MockTransactionRiskModel) GetModelVersion() string {
	return mtrm.modelVersion
}

// Helper methods for MockTransactionRiskModel

func (mtrm *MockTransactionRiskModel) calculateValueRisk(value decimal.Decimal) decimal.Decimal {
	if value.LessThan(decimal.NewFromFloat(100)) {
		return decimal.NewFromFloat(0.1)
	} else if value.LessThan(decimal.NewFromFloat(1000)) {
		return decimal.NewFromFloat(0.3)
	} else if value.LessThan(decimal.NewFromFloat(10000)) {
		return decimal.NewFromFloat(0.6)
	}
	return decimal.NewFromFloat(0.9)
}

func (mtrm *MockTransactionRiskModel) calculateGasRisk(gasPrice decimal.Decimal) decimal.Decimal {
	// Convert to gwei for easier comparison
	gwei := gasPrice.Div(decimal.NewFromFloat(1000000000))

	if gwei.LessThan(decimal.NewFromFloat(20)) {
		return decimal.NewFromFloat(0.1)
	} else if gwei.LessThan(decimal.NewFromFloat(50)) {
		return decimal.NewFromFloat(0.3)
	} else if gwei.LessThan(decimal.NewFromFloat(100)) {
		return decimal.NewFromFloat(0.6)
	}
	return decimal.NewFromFloat(0.9)
}

func (mtrm *MockTransactionRiskModel) calculateContractRisk(contractAddress string) decimal.Decimal {
	if contractAddress == "" {
		return decimal.NewFromFloat(0.1) // Simple transfer
	}
	return decimal.NewFromFloat(0.6) // Contract interaction
}

func (mtrm *MockTransactionRiskModel) calculateMEVRisk(mevDetected bool) decimal.Decimal {
	if mevDetected {
		return decimal.NewFromFloat(0.9)
	}
	return decimal.NewFromFloat(0.1)
}

func (mtrm *MockTransactionRiskModel) calculateRiskLevel(riskScore decimal.Decimal) string {
	if riskScore.LessThan(decimal.NewFromFloat(0.3)) {
		return "low"
	} else if riskScore.LessThan(decimal.NewFromFloat(0.6)) {
		return "medium"
	} else if riskScore.LessThan(decimal.NewFromFloat(0.8)) {
		return "high"
	}
	return "critical"
}

func (mtrm *MockTransactionRiskModel) generateRecommendations(riskScore decimal.Decimal, transaction *TransactionData) []string {
	var recommendations []string

	if riskScore.GreaterThan(decimal.NewFromFloat(0.6)) {
		recommendations = append(recommendations, "Consider using MEV protection")
		recommendations = append(recommendations, "Review transaction details carefully")
	}

	if transaction.GasPrice.GreaterThan(decimal.NewFromFloat(50000000000)) {
		recommendations = append(recommendations, "High gas price detected - consider waiting for lower fees")
	}

	if transaction.ContractAddress != "" {
		recommendations = append(recommendations, "Verify smart contract security before proceeding")
	}

	if len(recommendations) == 0 {
		recommendations = append(recommendations, "Transaction appears safe to proceed")
	}

	return recommendations
}

func (mtrm *MockTransactionRiskModel) generatePredictedOutcomes(riskScore decimal.Decimal) []PredictedOutcome {
	outcomes := []PredictedOutcome{
		{
			Scenario:    "successful_execution",
			Probability: decimal.NewFromFloat(1.0).Sub(riskScore.Mul(decimal.NewFromFloat(0.8))),
			Impact:      decimal.NewFromFloat(0.0),
			Timeframe:   5 * time.Minute,
			Description: "Transaction executes successfully without issues",
		},
		{
			Scenario:    "mev_attack",
			Probability: riskScore.Mul(decimal.NewFromFloat(0.3)),
			Impact:      decimal.NewFromFloat(-0.05), // 5% loss
			Timeframe:   1 * time.Minute,
			Description: "Transaction subject to MEV attack",
		},
		{
			Scenario:    "failed_execution",
			Probability: riskScore.Mul(decimal.NewFromFloat(0.1)),
			Impact:      decimal.NewFromFloat(-0.01), // Gas cost loss
			Timeframe:   5 * time.Minute,
			Description: "Transaction fails due to various reasons",
		},
	}

	return outcomes
}

// MockPortfolioRiskModel implements PortfolioRiskModel interface
type MockPortfolioRiskModel struct {
	logger       *logger.Logger
	modelVersion string
}

// NewMockPortfolioRiskModel creates a new mock portfolio risk model
func NewMockPortfolioRiskModel(logger *logger.Logger) *MockPortfolioRiskModel {
	return &MockPortfolioRiskModel{
		logger:       logger.Named("mock-portfolio-risk-model"),
		modelVersion: "mock-v1.0.0",
	}
}

// AssessPortfolioRisk assesses portfolio risk using mock calculations
func (mprm *MockPortfolioRiskModel) AssessPortfolioRisk(ctx context.Context, portfolio *PortfolioData) (*PortfolioRiskMetrics, error) {
	mprm.logger.Debug("Assessing portfolio risk", zap.String("total_value", portfolio.TotalValue.String()))

	// Mock portfolio risk calculations
	totalValue := portfolio.TotalValue

	// Calculate mock VaR (5% of portfolio value)
	valueAtRisk := totalValue.Mul(decimal.NewFromFloat(0.05))

	// Calculate mock volatility based on asset diversity
	volatility := mprm.calculatePortfolioVolatility(portfolio)

	// Calculate mock Sharpe ratio
	sharpeRatio := decimal.NewFromFloat(1.2) // Mock value

	// Calculate concentration risk
	concentrationRisk := mprm.calculateConcentrationRisk(portfolio)

	metrics := &PortfolioRiskMetrics{
		TotalValue:           totalValue,
		ValueAtRisk:          valueAtRisk,
		ConditionalVaR:       valueAtRisk.Mul(decimal.NewFromFloat(1.5)),
		SharpeRatio:          sharpeRatio,
		MaxDrawdown:          decimal.NewFromFloat(0.15), // 15%
		Beta:                 decimal.NewFromFloat(1.1),
		Alpha:                decimal.NewFromFloat(0.02), // 2%
		Volatility:           volatility,
		Correlation:          decimal.NewFromFloat(0.7),
		DiversificationRatio: mprm.calculateDiversificationRatio(portfolio),
		LiquidityRisk:        mprm.calculateLiquidityRisk(portfolio),
		ConcentrationRisk:    concentrationRisk,
		LastUpdated:          time.Now(),
	}

	return metrics, nil
}

// CalculateVaR calculates Value at Risk for the portfolio
func (mprm *MockPortfolioRiskModel) CalculateVaR(ctx context.Context, portfolio *PortfolioData, confidence decimal.Decimal) (decimal.Decimal, error) {
	// Mock VaR calculation
	baseVaR := portfolio.TotalValue.Mul(decimal.NewFromFloat(0.05))

	// Adjust based on confidence level
	if confidence.GreaterThan(decimal.NewFromFloat(0.95)) {
		baseVaR = baseVaR.Mul(decimal.NewFromFloat(1.5))
	}

	return baseVaR, nil
}

// OptimizePortfolio optimizes portfolio allocation
func (mprm *MockPortfolioRiskModel) OptimizePortfolio(ctx context.Context, portfolio *PortfolioData, constraints *OptimizationConstraints) (*PortfolioOptimization, error) {
	mprm.logger.Debug("Optimizing portfolio")

	// Mock optimization - equal weight allocation
	numAssets := len(portfolio.Assets)
	if numAssets == 0 {
		return nil, fmt.Errorf("no assets in portfolio")
	}

	equalWeight := decimal.NewFromFloat(1.0).Div(decimal.NewFromInt(int64(numAssets)))
	optimalWeights := make(map[string]decimal.Decimal)
	rebalancing := make(map[string]decimal.Decimal)

	for symbol, holding := range portfolio.Assets {
		optimalWeights[symbol] = equalWeight
		rebalancing[symbol] = equalWeight.Sub(holding.Weight)
	}

	optimization := &PortfolioOptimization{
		OptimalWeights:   optimalWeights,
		ExpectedReturn:   decimal.NewFromFloat(0.08), // 8% expected return
		ExpectedRisk:     decimal.NewFromFloat(0.15), // 15% expected risk
		SharpeRatio:      decimal.NewFromFloat(0.53), // 8% / 15%
		Rebalancing:      rebalancing,
		OptimizationTime: time.Now(),
	}

	return optimization, nil
}

// Helper methods for MockPortfolioRiskModel

func (mprm *MockPortfolioRiskModel) calculatePortfolioVolatility(portfolio *PortfolioData) decimal.Decimal {
	// Mock volatility calculation based on number of assets
	numAssets := len(portfolio.Assets)
	if numAssets <= 1 {
		return decimal.NewFromFloat(0.3) // 30% for single asset
	} else if numAssets <= 5 {
		return decimal.NewFromFloat(0.2) // 20% for small portfolio
	} else if numAssets <= 10 {
		return decimal.NewFromFloat(0.15) // 15% for medium portfolio
	}
	return decimal.NewFromFloat(0.1) // 10% for well-diversified portfolio
}

func (mprm *MockPortfolioRiskModel) calculateConcentrationRisk(portfolio *PortfolioData) decimal.Decimal {
	if len(portfolio.Assets) == 0 {
		return decimal.NewFromFloat(1.0) // Maximum concentration
	}

	// Find maximum weight
	maxWeight := decimal.Zero
	for _, holding := range portfolio.Assets {
		if holding.Weight.GreaterThan(maxWeight) {
			maxWeight = holding.Weight
		}
	}

	return maxWeight // Concentration risk equals maximum weight
}

func (mprm *MockPortfolioRiskModel) calculateDiversificationRatio(portfolio *PortfolioData) decimal.Decimal {
	numAssets := len(portfolio.Assets)
	if numAssets <= 1 {
		return decimal.NewFromFloat(0.1)
	}

	// Simple diversification ratio based on number of assets
	ratio := decimal.NewFromFloat(1.0).Sub(decimal.NewFromFloat(1.0).Div(decimal.NewFromInt(int64(numAssets))))
	return ratio
}

func (mprm *MockPortfolioRiskModel) calculateLiquidityRisk(portfolio *PortfolioData) decimal.Decimal {
	// Mock liquidity risk - assume all assets are reasonably liquid
	return decimal.NewFromFloat(0.2) // 20% liquidity risk
}
