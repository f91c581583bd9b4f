package risk

import (
	"context"
	"time"

	"github.com/DimaJoyti/go-coffee/solana-engine/pkg/logger"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// TransactionRiskScorer implements transaction risk scoring using ML models
type TransactionRiskScorer struct {
	logger  *logger.Logger
	config  TransactionRiskConfig
	model   MLModel
	healthy bool
}

// NewTransactionRiskScorer creates a new transaction risk scorer
func NewTransactionRiskScorer(logger *logger.Logger, config TransactionRiskConfig) *TransactionRiskScorer {
	return &TransactionRiskScorer{
		logger:  logger.Named("transaction-risk-scorer"),
		config:  config,
		healthy: true,
	}
}

// Start starts the transaction risk scorer
func (trs *TransactionRiskScorer) Start(ctx context.Context) error {
	if !trs.config.Enabled {
		trs.logger.Info("Transaction risk scorer is disabled")
		return nil
	}

	trs.logger.Info("Starting transaction risk scorer")
	// Initialize ML model
	// trs.model = NewMLModel(trs.config.ModelPath)
	trs.healthy = true
	return nil
}

// Stop stops the transaction risk scorer
func (trs *TransactionRiskScorer) Stop() error {
	trs.logger.Info("Stopping transaction risk scorer")
	trs.healthy = false
	return nil
}

// IsHealthy returns health status
func (trs *TransactionRiskScorer) IsHealthy() bool {
	return trs.healthy
}

// GetMetrics returns component metrics
func (trs *TransactionRiskScorer) GetMetrics() map[string]interface{} {
	return map[string]interface{}{
		"healthy":           trs.healthy,
		"assessments_count": 100, // Mock
		"average_score":     45.2,
		"model_accuracy":    0.92,
	}
}

// AssessTransactionRisk assesses transaction risk
func (trs *TransactionRiskScorer) AssessTransactionRisk(ctx context.Context, req *TransactionRiskRequest) (*TransactionRiskResult, error) {
	trs.logger.Debug("Assessing transaction risk", zap.String("address", req.Address.Hex()))

	// Mock implementation - in production, use actual ML model
	riskScore := decimal.NewFromFloat(35.5) // Mock score
	addressRisk := decimal.NewFromFloat(25.0)
	transactionRisk := decimal.NewFromFloat(45.0)

	riskFactors := []string{}
	if addressRisk.GreaterThan(decimal.NewFromFloat(50)) {
		riskFactors = append(riskFactors, "High address risk")
	}
	if transactionRisk.GreaterThan(decimal.NewFromFloat(60)) {
		riskFactors = append(riskFactors, "Suspicious transaction pattern")
	}

	riskLevel := "low"
	if riskScore.GreaterThan(decimal.NewFromFloat(70)) {
		riskLevel = "high"
	} else if riskScore.GreaterThan(decimal.NewFromFloat(40)) {
		riskLevel = "medium"
	}

	return &TransactionRiskResult{
		RiskScore:       riskScore,
		RiskLevel:       riskLevel,
		RiskFactors:     riskFactors,
		AddressRisk:     addressRisk,
		TransactionRisk: transactionRisk,
		Confidence:      decimal.NewFromFloat(0.85),
		Recommendations: []string{"Monitor transaction closely"},
		Metadata:        make(map[string]interface{}),
	}, nil
}

// VolatilityAnalyzer implements market volatility analysis
type VolatilityAnalyzer struct {
	logger  *logger.Logger
	config  VolatilityConfig
	healthy bool
}

// NewVolatilityAnalyzer creates a new volatility analyzer
func NewVolatilityAnalyzer(logger *logger.Logger, config VolatilityConfig) *VolatilityAnalyzer {
	return &VolatilityAnalyzer{
		logger:  logger.Named("volatility-analyzer"),
		config:  config,
		healthy: true,
	}
}

// Start starts the volatility analyzer
func (va *VolatilityAnalyzer) Start(ctx context.Context) error {
	if !va.config.Enabled {
		va.logger.Info("Volatility analyzer is disabled")
		return nil
	}

	va.logger.Info("Starting volatility analyzer")
	va.healthy = true
	return nil
}

// Stop stops the volatility analyzer
func (va *VolatilityAnalyzer) Stop() error {
	va.logger.Info("Stopping volatility analyzer")
	va.healthy = false
	return nil
}

// IsHealthy returns health status
func (va *VolatilityAnalyzer) IsHealthy() bool {
	return va.healthy
}

// GetMetrics returns component metrics
func (va *VolatilityAnalyzer) GetMetrics() map[string]interface{} {
	return map[string]interface{}{
		"healthy":            va.healthy,
		"analyses_count":     50,
		"average_volatility": 0.25,
		"data_quality":       0.95,
	}
}

// AnalyzeVolatility analyzes market volatility
func (va *VolatilityAnalyzer) AnalyzeVolatility(ctx context.Context, req *VolatilityRequest) (*VolatilityResult, error) {
	va.logger.Debug("Analyzing volatility", zap.Strings("assets", req.Assets))

	// Mock implementation
	volatility := decimal.NewFromFloat(0.25)
	var_ := decimal.NewFromFloat(0.05)
	expectedShortfall := decimal.NewFromFloat(0.08)
	riskScore := decimal.NewFromFloat(55.0)

	assetVolatilities := make(map[string]decimal.Decimal)
	correlations := make(map[string]map[string]decimal.Decimal)

	for _, asset := range req.Assets {
		assetVolatilities[asset] = decimal.NewFromFloat(0.2 + float64(len(asset))*0.01) // Mock
		correlations[asset] = make(map[string]decimal.Decimal)
		for _, otherAsset := range req.Assets {
			if asset != otherAsset {
				correlations[asset][otherAsset] = decimal.NewFromFloat(0.6) // Mock correlation
			}
		}
	}

	return &VolatilityResult{
		RiskScore:         riskScore,
		Volatility:        volatility,
		VaR:               var_,
		ExpectedShortfall: expectedShortfall,
		VolatilityTrend:   "increasing",
		Confidence:        decimal.NewFromFloat(0.88),
		AssetVolatilities: assetVolatilities,
		Correlations:      correlations,
		Metadata:          make(map[string]interface{}),
	}, nil
}

// ContractAuditor implements smart contract security auditing
type ContractAuditor struct {
	logger  *logger.Logger
	config  ContractAuditConfig
	healthy bool
}

// NewContractAuditor creates a new contract auditor
func NewContractAuditor(logger *logger.Logger, config ContractAuditConfig) *ContractAuditor {
	return &ContractAuditor{
		logger:  logger.Named("contract-auditor"),
		config:  config,
		healthy: true,
	}
}

// Start starts the contract auditor
func (ca *ContractAuditor) Start(ctx context.Context) error {
	if !ca.config.Enabled {
		ca.logger.Info("Contract auditor is disabled")
		return nil
	}

	ca.logger.Info("Starting contract auditor")
	ca.healthy = true
	return nil
}

// Stop stops the contract auditor
func (ca *ContractAuditor) Stop() error {
	ca.logger.Info("Stopping contract auditor")
	ca.healthy = false
	return nil
}

// IsHealthy returns health status
func (ca *ContractAuditor) IsHealthy() bool {
	return ca.healthy
}

// GetMetrics returns component metrics
func (ca *ContractAuditor) GetMetrics() map[string]interface{} {
	return map[string]interface{}{
		"healthy":               ca.healthy,
		"audits_count":          25,
		"average_score":         75.5,
		"vulnerabilities_found": 12,
	}
}

// AuditContract audits a smart contract
func (ca *ContractAuditor) AuditContract(ctx context.Context, req *ContractAuditRequest) (*ContractAuditResult, error) {
	ca.logger.Debug("Auditing contract", zap.String("address", req.ContractAddress.Hex()))

	// Mock implementation
	securityScore := decimal.NewFromFloat(78.5)

	vulnerabilities := []Vulnerability{
		{
			ID:          "VULN-001",
			Type:        "reentrancy",
			Severity:    "medium",
			Description: "Potential reentrancy vulnerability in withdraw function",
			Location:    "line 45",
			Impact:      decimal.NewFromFloat(6.5),
			Confidence:  decimal.NewFromFloat(0.8),
			Remediation: "Use checks-effects-interactions pattern",
		},
	}

	securityPatterns := []SecurityPattern{
		{
			ID:          "SEC-001",
			Name:        "Access Control",
			Description: "Proper access control implementation",
			Pattern:     "onlyOwner|onlyAdmin|require\\(msg\\.sender",
			Weight:      decimal.NewFromFloat(0.85),
			Category:    "access_control",
			Severity:    "high",
			Required:    true,
		},
	}

	gasOptimizations := []GasOptimization{
		{
			Type:        "storage",
			Description: "Pack struct variables to save gas",
			Savings:     decimal.NewFromFloat(15000),
			Confidence:  decimal.NewFromFloat(0.9),
		},
	}

	riskLevel := "medium"
	if securityScore.GreaterThan(decimal.NewFromFloat(80)) {
		riskLevel = "low"
	} else if securityScore.LessThan(decimal.NewFromFloat(60)) {
		riskLevel = "high"
	}

	return &ContractAuditResult{
		SecurityScore:    securityScore,
		RiskLevel:        riskLevel,
		Vulnerabilities:  vulnerabilities,
		SecurityPatterns: securityPatterns,
		GasOptimization:  gasOptimizations,
		Confidence:       decimal.NewFromFloat(0.82),
		AuditTimestamp:   time.Now(),
		Metadata:         make(map[string]interface{}),
	}, nil
}

// MarketPredictor implements AI-powered market prediction
type MarketPredictor struct {
	logger  *logger.Logger
	config  MarketPredictionConfig
	healthy bool
}

// NewMarketPredictor creates a new market predictor
func NewMarketPredictor(logger *logger.Logger, config MarketPredictionConfig) *MarketPredictor {
	return &MarketPredictor{
		logger:  logger.Named("market-predictor"),
		config:  config,
		healthy: true,
	}
}

// Start starts the market predictor
func (mp *MarketPredictor) Start(ctx context.Context) error {
	if !mp.config.Enabled {
		mp.logger.Info("Market predictor is disabled")
		return nil
	}

	mp.logger.Info("Starting market predictor")
	mp.healthy = true
	return nil
}

// Stop stops the market predictor
func (mp *MarketPredictor) Stop() error {
	mp.logger.Info("Stopping market predictor")
	mp.healthy = false
	return nil
}

// IsHealthy returns health status
func (mp *MarketPredictor) IsHealthy() bool {
	return mp.healthy
}

// GetMetrics returns component metrics
func (mp *MarketPredictor) GetMetrics() map[string]interface{} {
	return map[string]interface{}{
		"healthy":           mp.healthy,
		"predictions_count": 200,
		"accuracy":          0.73,
		"models_active":     3,
	}
}

// PredictMarketRisk predicts market risk
func (mp *MarketPredictor) PredictMarketRisk(ctx context.Context, req *MarketPredictionRequest) (*MarketPredictionResult, error) {
	mp.logger.Debug("Predicting market risk", zap.Strings("assets", req.Assets))

	// Mock implementation
	riskScore := decimal.NewFromFloat(52.8)
	marketDirection := "neutral"
	sentimentScore := decimal.NewFromFloat(0.45)
	technicalScore := decimal.NewFromFloat(0.55)
	fundamentalScore := decimal.NewFromFloat(0.62)

	predictedReturns := make(map[string]decimal.Decimal)
	predictedVolatility := make(map[string]decimal.Decimal)

	for _, asset := range req.Assets {
		predictedReturns[asset] = decimal.NewFromFloat(0.02)    // Mock 2% return
		predictedVolatility[asset] = decimal.NewFromFloat(0.25) // Mock 25% volatility
	}

	return &MarketPredictionResult{
		RiskScore:           riskScore,
		MarketDirection:     marketDirection,
		PredictedReturns:    predictedReturns,
		PredictedVolatility: predictedVolatility,
		SentimentScore:      sentimentScore,
		TechnicalScore:      technicalScore,
		FundamentalScore:    fundamentalScore,
		Confidence:          decimal.NewFromFloat(0.78),
		PredictionHorizon:   req.TimeFrame,
		Metadata:            make(map[string]interface{}),
	}, nil
}

// PortfolioAssessor implements portfolio risk assessment
type PortfolioAssessor struct {
	logger  *logger.Logger
	config  PortfolioRiskConfig
	healthy bool
}

// NewPortfolioAssessor creates a new portfolio assessor
func NewPortfolioAssessor(logger *logger.Logger, config PortfolioRiskConfig) *PortfolioAssessor {
	return &PortfolioAssessor{
		logger:  logger.Named("portfolio-assessor"),
		config:  config,
		healthy: true,
	}
}

// Start starts the portfolio assessor
func (pa *PortfolioAssessor) Start(ctx context.Context) error {
	if !pa.config.Enabled {
		pa.logger.Info("Portfolio assessor is disabled")
		return nil
	}

	pa.logger.Info("Starting portfolio assessor")
	pa.healthy = true
	return nil
}

// Stop stops the portfolio assessor
func (pa *PortfolioAssessor) Stop() error {
	pa.logger.Info("Stopping portfolio assessor")
	pa.healthy = false
	return nil
}

// IsHealthy returns health status
func (pa *PortfolioAssessor) IsHealthy() bool {
	return pa.healthy
}

// GetMetrics returns component metrics
func (pa *PortfolioAssessor) GetMetrics() map[string]interface{} {
	return map[string]interface{}{
		"healthy":            pa.healthy,
		"assessments_count":  75,
		"average_risk_score": 42.3,
		"portfolios_tracked": 150,
	}
}

// AssessPortfolioRisk assesses portfolio risk
func (pa *PortfolioAssessor) AssessPortfolioRisk(ctx context.Context, req *PortfolioRiskRequest) (*PortfolioRiskResult, error) {
	pa.logger.Debug("Assessing portfolio risk", zap.String("address", req.Address.Hex()))

	// Mock implementation
	overallRiskScore := decimal.NewFromFloat(45.2)
	concentrationRisk := decimal.NewFromFloat(0.35)
	correlationRisk := decimal.NewFromFloat(0.65)
	liquidityRisk := decimal.NewFromFloat(0.15)
	var_ := decimal.NewFromFloat(0.08)
	expectedShortfall := decimal.NewFromFloat(0.12)
	sharpeRatio := decimal.NewFromFloat(1.25)
	maxDrawdown := decimal.NewFromFloat(0.18)
	diversificationRatio := decimal.NewFromFloat(0.75)

	riskContributions := make(map[string]decimal.Decimal)
	if req.Portfolio != nil {
		for symbol := range req.Portfolio.Assets {
			riskContributions[symbol] = decimal.NewFromFloat(0.2) // Mock
		}
	}

	recommendations := []string{
		"Consider diversifying across more asset classes",
		"Reduce concentration in top holdings",
		"Monitor correlation risk during market stress",
	}

	riskLevel := "medium"
	if overallRiskScore.GreaterThan(decimal.NewFromFloat(70)) {
		riskLevel = "high"
	} else if overallRiskScore.LessThan(decimal.NewFromFloat(30)) {
		riskLevel = "low"
	}

	return &PortfolioRiskResult{
		OverallRiskScore:     overallRiskScore,
		RiskLevel:            riskLevel,
		ConcentrationRisk:    concentrationRisk,
		CorrelationRisk:      correlationRisk,
		LiquidityRisk:        liquidityRisk,
		VaR:                  var_,
		ExpectedShortfall:    expectedShortfall,
		SharpeRatio:          sharpeRatio,
		MaxDrawdown:          maxDrawdown,
		DiversificationRatio: diversificationRatio,
		RiskContributions:    riskContributions,
		Recommendations:      recommendations,
		Metadata:             make(map[string]interface{}),
	}, nil
}
