package risk

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/DimaJoyti/go-coffee/solana-engine/pkg/logger"
	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// SmartContractAnalyzer provides advanced smart contract security analysis
type SmartContractAnalyzer struct {
	logger *logger.Logger
	config ContractAnalysisConfig

	// Analysis engines
	patternAnalyzer      *SecurityPatternAnalyzer
	vulnerabilityScanner *VulnerabilityScanner
	formalVerifier       *FormalVerifier
	exploitDatabase      *ExploitDatabase

	// State management
	analysisCache map[string]*ContractAnalysisResult
	cacheMutex    sync.RWMutex
	isRunning     bool
	mutex         sync.RWMutex
}

// ContractAnalysisConfig holds configuration for contract analysis
type ContractAnalysisConfig struct {
	Enabled            bool                     `json:"enabled" yaml:"enabled"`
	MaxAnalysisTime    time.Duration            `json:"max_analysis_time" yaml:"max_analysis_time"`
	MaxCodeSize        int                      `json:"max_code_size" yaml:"max_code_size"`
	CacheTimeout       time.Duration            `json:"cache_timeout" yaml:"cache_timeout"`
	SecurityPatterns   []SecurityPattern        `json:"security_patterns" yaml:"security_patterns"`
	VulnerabilityRules []VulnerabilityRule      `json:"vulnerability_rules" yaml:"vulnerability_rules"`
	ExploitDatabase    ExploitDatabaseConfig    `json:"exploit_database" yaml:"exploit_database"`
	FormalVerification FormalVerificationConfig `json:"formal_verification" yaml:"formal_verification"`
	ScoringWeights     ScoringWeights           `json:"scoring_weights" yaml:"scoring_weights"`
	CompilerVersions   []string                 `json:"compiler_versions" yaml:"compiler_versions"`
	OptimizationChecks []string                 `json:"optimization_checks" yaml:"optimization_checks"`
}

// SecurityPattern represents a security pattern to check
type SecurityPattern struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Pattern     string          `json:"pattern"`
	Weight      decimal.Decimal `json:"weight"`
	Category    string          `json:"category"`
	Severity    string          `json:"severity"`
	Required    bool            `json:"required"`
}

// VulnerabilityRule represents a vulnerability detection rule
type VulnerabilityRule struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Pattern     string          `json:"pattern"`
	Severity    string          `json:"severity"`
	Impact      decimal.Decimal `json:"impact"`
	Confidence  decimal.Decimal `json:"confidence"`
	Category    string          `json:"category"`
	CWE         string          `json:"cwe"`
	References  []string        `json:"references"`
}

// ExploitDatabaseConfig holds exploit database configuration
type ExploitDatabaseConfig struct {
	Enabled        bool          `json:"enabled" yaml:"enabled"`
	DatabaseURL    string        `json:"database_url" yaml:"database_url"`
	APIKey         string        `json:"api_key" yaml:"api_key"`
	UpdateInterval time.Duration `json:"update_interval" yaml:"update_interval"`
	CacheSize      int           `json:"cache_size" yaml:"cache_size"`
}

// FormalVerificationConfig holds formal verification configuration
type FormalVerificationConfig struct {
	Enabled    bool          `json:"enabled" yaml:"enabled"`
	ToolPath   string        `json:"tool_path" yaml:"tool_path"`
	Timeout    time.Duration `json:"timeout" yaml:"timeout"`
	MaxMemory  int           `json:"max_memory" yaml:"max_memory"`
	Properties []string      `json:"properties" yaml:"properties"`
}

// ScoringWeights defines weights for different scoring components
type ScoringWeights struct {
	SecurityPatterns   decimal.Decimal `json:"security_patterns" yaml:"security_patterns"`
	Vulnerabilities    decimal.Decimal `json:"vulnerabilities" yaml:"vulnerabilities"`
	FormalVerification decimal.Decimal `json:"formal_verification" yaml:"formal_verification"`
	ExploitHistory     decimal.Decimal `json:"exploit_history" yaml:"exploit_history"`
	CodeQuality        decimal.Decimal `json:"code_quality" yaml:"code_quality"`
	GasOptimization    decimal.Decimal `json:"gas_optimization" yaml:"gas_optimization"`
}

// ContractAnalysisResult represents comprehensive contract analysis result
type ContractAnalysisResult struct {
	ContractAddress    common.Address            `json:"contract_address"`
	AnalysisID         string                    `json:"analysis_id"`
	Timestamp          time.Time                 `json:"timestamp"`
	OverallScore       decimal.Decimal           `json:"overall_score"`
	SecurityGrade      string                    `json:"security_grade"`
	RiskLevel          string                    `json:"risk_level"`
	SecurityPatterns   []SecurityPatternResult   `json:"security_patterns"`
	Vulnerabilities    []VulnerabilityResult     `json:"vulnerabilities"`
	FormalVerification *FormalVerificationResult `json:"formal_verification"`
	ExploitHistory     *ExploitHistoryResult     `json:"exploit_history"`
	CodeQuality        *CodeQualityResult        `json:"code_quality"`
	GasOptimization    *GasOptimizationResult    `json:"gas_optimization"`
	Recommendations    []string                  `json:"recommendations"`
	Warnings           []string                  `json:"warnings"`
	AnalysisDuration   time.Duration             `json:"analysis_duration"`
	Confidence         decimal.Decimal           `json:"confidence"`
	Metadata           map[string]interface{}    `json:"metadata"`
}

// SecurityPatternResult represents security pattern analysis result
type SecurityPatternResult struct {
	Pattern     SecurityPattern `json:"pattern"`
	Found       bool            `json:"found"`
	Score       decimal.Decimal `json:"score"`
	Locations   []string        `json:"locations"`
	Description string          `json:"description"`
}

// VulnerabilityResult represents vulnerability detection result
type VulnerabilityResult struct {
	Rule        VulnerabilityRule `json:"rule"`
	Found       bool              `json:"found"`
	Severity    string            `json:"severity"`
	Impact      decimal.Decimal   `json:"impact"`
	Confidence  decimal.Decimal   `json:"confidence"`
	Locations   []string          `json:"locations"`
	Description string            `json:"description"`
	Remediation string            `json:"remediation"`
}

// FormalVerificationResult represents formal verification result
type FormalVerificationResult struct {
	Verified   bool                   `json:"verified"`
	Properties []PropertyResult       `json:"properties"`
	Score      decimal.Decimal        `json:"score"`
	Duration   time.Duration          `json:"duration"`
	ToolOutput string                 `json:"tool_output"`
	Errors     []string               `json:"errors"`
	Metadata   map[string]interface{} `json:"metadata"`
}

// PropertyResult represents a formal property verification result
type PropertyResult struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Verified    bool            `json:"verified"`
	Confidence  decimal.Decimal `json:"confidence"`
	Evidence    string          `json:"evidence"`
}

// ExploitHistoryResult represents exploit history analysis result
type ExploitHistoryResult struct {
	HasExploits      bool                   `json:"has_exploits"`
	ExploitCount     int                    `json:"exploit_count"`
	TotalLoss        decimal.Decimal        `json:"total_loss"`
	LastExploit      *time.Time             `json:"last_exploit"`
	ExploitTypes     []string               `json:"exploit_types"`
	RiskScore        decimal.Decimal        `json:"risk_score"`
	SimilarContracts []string               `json:"similar_contracts"`
	Metadata         map[string]interface{} `json:"metadata"`
}

// CodeQualityResult represents code quality analysis result
type CodeQualityResult struct {
	Score           decimal.Decimal        `json:"score"`
	Complexity      int                    `json:"complexity"`
	LinesOfCode     int                    `json:"lines_of_code"`
	Documentation   decimal.Decimal        `json:"documentation"`
	TestCoverage    decimal.Decimal        `json:"test_coverage"`
	CompilerVersion string                 `json:"compiler_version"`
	Optimizations   []string               `json:"optimizations"`
	Issues          []string               `json:"issues"`
	Metadata        map[string]interface{} `json:"metadata"`
}

// GasOptimizationResult represents gas optimization analysis result
type GasOptimizationResult struct {
	Score            decimal.Decimal        `json:"score"`
	Optimizations    []GasOptimization      `json:"optimizations"`
	PotentialSavings decimal.Decimal        `json:"potential_savings"`
	EfficiencyRating string                 `json:"efficiency_rating"`
	Recommendations  []string               `json:"recommendations"`
	Metadata         map[string]interface{} `json:"metadata"`
}

// NewSmartContractAnalyzer creates a new smart contract analyzer
func NewSmartContractAnalyzer(logger *logger.Logger, config ContractAnalysisConfig) *SmartContractAnalyzer {
	analyzer := &SmartContractAnalyzer{
		logger:        logger.Named("contract-analyzer"),
		config:        config,
		analysisCache: make(map[string]*ContractAnalysisResult),
	}

	// Initialize analysis engines
	analyzer.patternAnalyzer = NewSecurityPatternAnalyzer(logger, config.SecurityPatterns)
	analyzer.vulnerabilityScanner = NewVulnerabilityScanner(logger, config.VulnerabilityRules)
	analyzer.formalVerifier = NewFormalVerifier(logger, config.FormalVerification)
	analyzer.exploitDatabase = NewExploitDatabase(logger, config.ExploitDatabase)

	return analyzer
}

// Start starts the contract analyzer
func (sca *SmartContractAnalyzer) Start(ctx context.Context) error {
	sca.mutex.Lock()
	defer sca.mutex.Unlock()

	if sca.isRunning {
		return fmt.Errorf("contract analyzer is already running")
	}

	if !sca.config.Enabled {
		sca.logger.Info("Contract analyzer is disabled")
		return nil
	}

	sca.logger.Info("Starting smart contract analyzer")

	// Start analysis engines
	if err := sca.patternAnalyzer.Start(ctx); err != nil {
		return fmt.Errorf("failed to start pattern analyzer: %w", err)
	}

	if err := sca.vulnerabilityScanner.Start(ctx); err != nil {
		return fmt.Errorf("failed to start vulnerability scanner: %w", err)
	}

	if err := sca.formalVerifier.Start(ctx); err != nil {
		return fmt.Errorf("failed to start formal verifier: %w", err)
	}

	if err := sca.exploitDatabase.Start(ctx); err != nil {
		return fmt.Errorf("failed to start exploit database: %w", err)
	}

	sca.isRunning = true
	sca.logger.Info("Smart contract analyzer started successfully")
	return nil
}

// Stop stops the contract analyzer
func (sca *SmartContractAnalyzer) Stop() error {
	sca.mutex.Lock()
	defer sca.mutex.Unlock()

	if !sca.isRunning {
		return nil
	}

	sca.logger.Info("Stopping smart contract analyzer")

	// Stop analysis engines
	if sca.exploitDatabase != nil {
		sca.exploitDatabase.Stop()
	}
	if sca.formalVerifier != nil {
		sca.formalVerifier.Stop()
	}
	if sca.vulnerabilityScanner != nil {
		sca.vulnerabilityScanner.Stop()
	}
	if sca.patternAnalyzer != nil {
		sca.patternAnalyzer.Stop()
	}

	sca.isRunning = false
	sca.logger.Info("Smart contract analyzer stopped")
	return nil
}

// AnalyzeContract performs comprehensive contract analysis
func (sca *SmartContractAnalyzer) AnalyzeContract(ctx context.Context, contractAddress common.Address, sourceCode string) (*ContractAnalysisResult, error) {
	startTime := time.Now()
	sca.logger.Info("Starting contract analysis",
		zap.String("address", contractAddress.Hex()),
		zap.Int("code_size", len(sourceCode)))

	// Check cache first
	cacheKey := sca.generateCacheKey(contractAddress, sourceCode)
	if cached := sca.getCachedResult(cacheKey); cached != nil {
		sca.logger.Debug("Returning cached analysis result")
		return cached, nil
	}

	// Validate input
	if len(sourceCode) > sca.config.MaxCodeSize {
		return nil, fmt.Errorf("source code too large: %d bytes (max: %d)", len(sourceCode), sca.config.MaxCodeSize)
	}

	// Create analysis context with timeout
	analysisCtx, cancel := context.WithTimeout(ctx, sca.config.MaxAnalysisTime)
	defer cancel()

	// Initialize result
	result := &ContractAnalysisResult{
		ContractAddress: contractAddress,
		AnalysisID:      sca.generateAnalysisID(),
		Timestamp:       time.Now(),
		Metadata:        make(map[string]interface{}),
	}

	// Run analysis engines in parallel
	var wg sync.WaitGroup
	var mu sync.Mutex
	errors := make([]error, 0)

	// Security pattern analysis
	wg.Add(1)
	go func() {
		defer wg.Done()
		patterns, err := sca.patternAnalyzer.AnalyzePatterns(analysisCtx, sourceCode)
		mu.Lock()
		if err != nil {
			errors = append(errors, fmt.Errorf("pattern analysis: %w", err))
		} else {
			result.SecurityPatterns = patterns
		}
		mu.Unlock()
	}()

	// Vulnerability scanning
	wg.Add(1)
	go func() {
		defer wg.Done()
		vulnerabilities, err := sca.vulnerabilityScanner.ScanVulnerabilities(analysisCtx, sourceCode)
		mu.Lock()
		if err != nil {
			errors = append(errors, fmt.Errorf("vulnerability scan: %w", err))
		} else {
			result.Vulnerabilities = vulnerabilities
		}
		mu.Unlock()
	}()

	// Formal verification (if enabled)
	if sca.config.FormalVerification.Enabled {
		wg.Add(1)
		go func() {
			defer wg.Done()
			verification, err := sca.formalVerifier.VerifyContract(analysisCtx, sourceCode)
			mu.Lock()
			if err != nil {
				errors = append(errors, fmt.Errorf("formal verification: %w", err))
			} else {
				result.FormalVerification = verification
			}
			mu.Unlock()
		}()
	}

	// Exploit history analysis
	wg.Add(1)
	go func() {
		defer wg.Done()
		exploitHistory, err := sca.exploitDatabase.CheckExploitHistory(analysisCtx, contractAddress)
		mu.Lock()
		if err != nil {
			errors = append(errors, fmt.Errorf("exploit history: %w", err))
		} else {
			result.ExploitHistory = exploitHistory
		}
		mu.Unlock()
	}()

	// Code quality analysis
	wg.Add(1)
	go func() {
		defer wg.Done()
		codeQuality := sca.analyzeCodeQuality(sourceCode)
		mu.Lock()
		result.CodeQuality = codeQuality
		mu.Unlock()
	}()

	// Gas optimization analysis
	wg.Add(1)
	go func() {
		defer wg.Done()
		gasOptimization := sca.analyzeGasOptimization(sourceCode)
		mu.Lock()
		result.GasOptimization = gasOptimization
		mu.Unlock()
	}()

	// Wait for all analyses to complete
	wg.Wait()

	// Check for errors
	if len(errors) > 0 {
		sca.logger.Warn("Some analyses failed", zap.Int("error_count", len(errors)))
		for _, err := range errors {
			sca.logger.Warn("Analysis error", zap.Error(err))
		}
	}

	// Calculate overall score and metrics
	result.OverallScore = sca.calculateOverallScore(result)
	result.SecurityGrade = sca.determineSecurityGrade(result.OverallScore)
	result.RiskLevel = sca.determineRiskLevel(result.OverallScore)
	result.Confidence = sca.calculateConfidence(result)
	result.Recommendations = sca.generateRecommendations(result)
	result.Warnings = sca.generateWarnings(result)
	result.AnalysisDuration = time.Since(startTime)

	// Cache the result
	sca.cacheResult(cacheKey, result)

	sca.logger.Info("Contract analysis completed",
		zap.String("address", contractAddress.Hex()),
		zap.String("overall_score", result.OverallScore.String()),
		zap.String("security_grade", result.SecurityGrade),
		zap.String("risk_level", result.RiskLevel),
		zap.Duration("duration", result.AnalysisDuration))

	return result, nil
}

// Helper methods

// calculateOverallScore calculates the overall security score
func (sca *SmartContractAnalyzer) calculateOverallScore(result *ContractAnalysisResult) decimal.Decimal {
	weights := sca.config.ScoringWeights
	totalScore := decimal.Zero
	totalWeight := decimal.Zero

	// Security patterns score
	if len(result.SecurityPatterns) > 0 {
		patternScore := sca.calculatePatternScore(result.SecurityPatterns)
		totalScore = totalScore.Add(patternScore.Mul(weights.SecurityPatterns))
		totalWeight = totalWeight.Add(weights.SecurityPatterns)
	}

	// Vulnerability score
	if len(result.Vulnerabilities) > 0 {
		vulnScore := sca.calculateVulnerabilityScore(result.Vulnerabilities)
		totalScore = totalScore.Add(vulnScore.Mul(weights.Vulnerabilities))
		totalWeight = totalWeight.Add(weights.Vulnerabilities)
	}

	// Formal verification score
	if result.FormalVerification != nil {
		totalScore = totalScore.Add(result.FormalVerification.Score.Mul(weights.FormalVerification))
		totalWeight = totalWeight.Add(weights.FormalVerification)
	}

	// Exploit history score
	if result.ExploitHistory != nil {
		exploitScore := decimal.NewFromFloat(100).Sub(result.ExploitHistory.RiskScore)
		totalScore = totalScore.Add(exploitScore.Mul(weights.ExploitHistory))
		totalWeight = totalWeight.Add(weights.ExploitHistory)
	}

	// Code quality score
	if result.CodeQuality != nil {
		totalScore = totalScore.Add(result.CodeQuality.Score.Mul(weights.CodeQuality))
		totalWeight = totalWeight.Add(weights.CodeQuality)
	}

	// Gas optimization score
	if result.GasOptimization != nil {
		totalScore = totalScore.Add(result.GasOptimization.Score.Mul(weights.GasOptimization))
		totalWeight = totalWeight.Add(weights.GasOptimization)
	}

	if totalWeight.IsZero() {
		return decimal.NewFromFloat(50) // Default neutral score
	}

	return totalScore.Div(totalWeight)
}

// calculatePatternScore calculates security pattern score
func (sca *SmartContractAnalyzer) calculatePatternScore(patterns []SecurityPatternResult) decimal.Decimal {
	totalScore := decimal.Zero
	totalWeight := decimal.Zero

	for _, pattern := range patterns {
		weight := pattern.Pattern.Weight
		score := decimal.Zero
		if pattern.Found {
			score = decimal.NewFromFloat(100)
		}
		totalScore = totalScore.Add(score.Mul(weight))
		totalWeight = totalWeight.Add(weight)
	}

	if totalWeight.IsZero() {
		return decimal.NewFromFloat(50)
	}

	return totalScore.Div(totalWeight)
}

// calculateVulnerabilityScore calculates vulnerability score
func (sca *SmartContractAnalyzer) calculateVulnerabilityScore(vulnerabilities []VulnerabilityResult) decimal.Decimal {
	baseScore := decimal.NewFromFloat(100)

	for _, vuln := range vulnerabilities {
		if vuln.Found {
			// Deduct points based on severity and impact
			deduction := vuln.Impact.Mul(vuln.Confidence)
			baseScore = baseScore.Sub(deduction)
		}
	}

	if baseScore.LessThan(decimal.Zero) {
		return decimal.Zero
	}

	return baseScore
}

// determineSecurityGrade determines security grade based on score
func (sca *SmartContractAnalyzer) determineSecurityGrade(score decimal.Decimal) string {
	if score.GreaterThanOrEqual(decimal.NewFromFloat(90)) {
		return "A+"
	} else if score.GreaterThanOrEqual(decimal.NewFromFloat(85)) {
		return "A"
	} else if score.GreaterThanOrEqual(decimal.NewFromFloat(80)) {
		return "A-"
	} else if score.GreaterThanOrEqual(decimal.NewFromFloat(75)) {
		return "B+"
	} else if score.GreaterThanOrEqual(decimal.NewFromFloat(70)) {
		return "B"
	} else if score.GreaterThanOrEqual(decimal.NewFromFloat(65)) {
		return "B-"
	} else if score.GreaterThanOrEqual(decimal.NewFromFloat(60)) {
		return "C+"
	} else if score.GreaterThanOrEqual(decimal.NewFromFloat(55)) {
		return "C"
	} else if score.GreaterThanOrEqual(decimal.NewFromFloat(50)) {
		return "C-"
	} else if score.GreaterThanOrEqual(decimal.NewFromFloat(40)) {
		return "D"
	} else {
		return "F"
	}
}

// determineRiskLevel determines risk level based on score
func (sca *SmartContractAnalyzer) determineRiskLevel(score decimal.Decimal) string {
	if score.GreaterThanOrEqual(decimal.NewFromFloat(80)) {
		return "low"
	} else if score.GreaterThanOrEqual(decimal.NewFromFloat(60)) {
		return "medium"
	} else if score.GreaterThanOrEqual(decimal.NewFromFloat(40)) {
		return "high"
	} else {
		return "critical"
	}
}

// calculateConfidence calculates confidence in the analysis
func (sca *SmartContractAnalyzer) calculateConfidence(result *ContractAnalysisResult) decimal.Decimal {
	confidenceFactors := []decimal.Decimal{}

	// Pattern analysis confidence
	if len(result.SecurityPatterns) > 0 {
		confidenceFactors = append(confidenceFactors, decimal.NewFromFloat(0.8))
	}

	// Vulnerability scan confidence
	if len(result.Vulnerabilities) > 0 {
		confidenceFactors = append(confidenceFactors, decimal.NewFromFloat(0.85))
	}

	// Formal verification confidence
	if result.FormalVerification != nil && result.FormalVerification.Verified {
		confidenceFactors = append(confidenceFactors, decimal.NewFromFloat(0.95))
	}

	// Exploit history confidence
	if result.ExploitHistory != nil {
		confidenceFactors = append(confidenceFactors, decimal.NewFromFloat(0.9))
	}

	if len(confidenceFactors) == 0 {
		return decimal.NewFromFloat(0.5)
	}

	total := decimal.Zero
	for _, factor := range confidenceFactors {
		total = total.Add(factor)
	}

	return total.Div(decimal.NewFromInt(int64(len(confidenceFactors))))
}

// generateRecommendations generates security recommendations
func (sca *SmartContractAnalyzer) generateRecommendations(result *ContractAnalysisResult) []string {
	var recommendations []string

	// Security pattern recommendations
	for _, pattern := range result.SecurityPatterns {
		if !pattern.Found && pattern.Pattern.Required {
			recommendations = append(recommendations,
				fmt.Sprintf("Implement %s pattern for better security", pattern.Pattern.Name))
		}
	}

	// Vulnerability recommendations
	for _, vuln := range result.Vulnerabilities {
		if vuln.Found && vuln.Severity == "high" {
			recommendations = append(recommendations, vuln.Remediation)
		}
	}

	// Formal verification recommendations
	if result.FormalVerification != nil && !result.FormalVerification.Verified {
		recommendations = append(recommendations, "Consider formal verification for critical functions")
	}

	// Exploit history recommendations
	if result.ExploitHistory != nil && result.ExploitHistory.HasExploits {
		recommendations = append(recommendations, "Review exploit history and implement additional safeguards")
	}

	// Code quality recommendations
	if result.CodeQuality != nil && result.CodeQuality.Score.LessThan(decimal.NewFromFloat(70)) {
		recommendations = append(recommendations, "Improve code quality and documentation")
	}

	// Gas optimization recommendations
	if result.GasOptimization != nil && len(result.GasOptimization.Optimizations) > 0 {
		recommendations = append(recommendations, "Implement gas optimizations to reduce transaction costs")
	}

	return recommendations
}

// generateWarnings generates security warnings
func (sca *SmartContractAnalyzer) generateWarnings(result *ContractAnalysisResult) []string {
	var warnings []string

	// Critical vulnerabilities
	for _, vuln := range result.Vulnerabilities {
		if vuln.Found && vuln.Severity == "critical" {
			warnings = append(warnings,
				fmt.Sprintf("CRITICAL: %s detected", vuln.Rule.Name))
		}
	}

	// Exploit history warnings
	if result.ExploitHistory != nil && result.ExploitHistory.HasExploits {
		warnings = append(warnings,
			fmt.Sprintf("WARNING: Contract has %d known exploits", result.ExploitHistory.ExploitCount))
	}

	// Low overall score warning
	if result.OverallScore.LessThan(decimal.NewFromFloat(50)) {
		warnings = append(warnings, "WARNING: Low overall security score")
	}

	return warnings
}

// analyzeCodeQuality analyzes code quality metrics
func (sca *SmartContractAnalyzer) analyzeCodeQuality(sourceCode string) *CodeQualityResult {
	lines := strings.Split(sourceCode, "\n")
	linesOfCode := len(lines)

	// Calculate complexity (simplified)
	complexity := strings.Count(sourceCode, "if") +
		strings.Count(sourceCode, "for") +
		strings.Count(sourceCode, "while") +
		strings.Count(sourceCode, "function")

	// Calculate documentation score
	commentLines := 0
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "//") || strings.HasPrefix(trimmed, "/*") {
			commentLines++
		}
	}

	documentation := decimal.Zero
	if linesOfCode > 0 {
		documentation = decimal.NewFromInt(int64(commentLines)).Div(decimal.NewFromInt(int64(linesOfCode))).Mul(decimal.NewFromInt(100))
	}

	// Detect compiler version
	compilerVersion := "unknown"
	pragmaRegex := regexp.MustCompile(`pragma solidity\s+([^;]+);`)
	if matches := pragmaRegex.FindStringSubmatch(sourceCode); len(matches) > 1 {
		compilerVersion = matches[1]
	}

	// Calculate overall code quality score
	score := decimal.NewFromFloat(70) // Base score

	// Adjust based on documentation
	if documentation.GreaterThan(decimal.NewFromFloat(20)) {
		score = score.Add(decimal.NewFromFloat(10))
	}

	// Adjust based on complexity
	if complexity < linesOfCode/10 {
		score = score.Add(decimal.NewFromFloat(10))
	} else if complexity > linesOfCode/5 {
		score = score.Sub(decimal.NewFromFloat(10))
	}

	return &CodeQualityResult{
		Score:           score,
		Complexity:      complexity,
		LinesOfCode:     linesOfCode,
		Documentation:   documentation,
		TestCoverage:    decimal.NewFromFloat(0), // Would need test files
		CompilerVersion: compilerVersion,
		Optimizations:   []string{},
		Issues:          []string{},
		Metadata:        make(map[string]interface{}),
	}
}

// analyzeGasOptimization analyzes gas optimization opportunities
func (sca *SmartContractAnalyzer) analyzeGasOptimization(sourceCode string) *GasOptimizationResult {
	optimizations := []GasOptimization{}
	potentialSavings := decimal.Zero

	// Check for common gas optimization patterns
	if strings.Contains(sourceCode, "uint256") && strings.Contains(sourceCode, "uint8") {
		optimizations = append(optimizations, GasOptimization{
			Type:        "storage_packing",
			Description: "Pack struct variables to save gas",
			Savings:     decimal.NewFromFloat(15000),
			Confidence:  decimal.NewFromFloat(0.8),
		})
		potentialSavings = potentialSavings.Add(decimal.NewFromFloat(15000))
	}

	if strings.Contains(sourceCode, "memory") && strings.Contains(sourceCode, "calldata") {
		optimizations = append(optimizations, GasOptimization{
			Type:        "calldata_usage",
			Description: "Use calldata instead of memory for external function parameters",
			Savings:     decimal.NewFromFloat(5000),
			Confidence:  decimal.NewFromFloat(0.9),
		})
		potentialSavings = potentialSavings.Add(decimal.NewFromFloat(5000))
	}

	// Calculate efficiency rating
	efficiencyRating := "good"
	if len(optimizations) > 3 {
		efficiencyRating = "poor"
	} else if len(optimizations) > 1 {
		efficiencyRating = "fair"
	}

	// Calculate score based on optimizations found
	score := decimal.NewFromFloat(80)
	if len(optimizations) > 0 {
		score = score.Sub(decimal.NewFromInt(int64(len(optimizations) * 10)))
	}

	recommendations := []string{}
	for _, opt := range optimizations {
		recommendations = append(recommendations, opt.Description)
	}

	return &GasOptimizationResult{
		Score:            score,
		Optimizations:    optimizations,
		PotentialSavings: potentialSavings,
		EfficiencyRating: efficiencyRating,
		Recommendations:  recommendations,
		Metadata:         make(map[string]interface{}),
	}
}

// Cache management methods

// generateCacheKey generates a cache key for analysis results
func (sca *SmartContractAnalyzer) generateCacheKey(address common.Address, sourceCode string) string {
	// Simple hash of address and code for caching
	return fmt.Sprintf("%s_%x", address.Hex(), len(sourceCode))
}

// generateAnalysisID generates a unique analysis ID
func (sca *SmartContractAnalyzer) generateAnalysisID() string {
	return fmt.Sprintf("analysis_%d", time.Now().UnixNano())
}

// getCachedResult retrieves cached analysis result
func (sca *SmartContractAnalyzer) getCachedResult(key string) *ContractAnalysisResult {
	sca.cacheMutex.RLock()
	defer sca.cacheMutex.RUnlock()

	result, exists := sca.analysisCache[key]
	if !exists {
		return nil
	}

	// Check if cache entry is still valid
	if time.Since(result.Timestamp) > sca.config.CacheTimeout {
		delete(sca.analysisCache, key)
		return nil
	}

	return result
}

// cacheResult caches analysis result
func (sca *SmartContractAnalyzer) cacheResult(key string, result *ContractAnalysisResult) {
	sca.cacheMutex.Lock()
	defer sca.cacheMutex.Unlock()
	sca.analysisCache[key] = result
}

// IsRunning returns whether the analyzer is running
func (sca *SmartContractAnalyzer) IsRunning() bool {
	sca.mutex.RLock()
	defer sca.mutex.RUnlock()
	return sca.isRunning
}

// GetAnalysisMetrics returns analysis metrics
func (sca *SmartContractAnalyzer) GetAnalysisMetrics() map[string]interface{} {
	sca.cacheMutex.RLock()
	defer sca.cacheMutex.RUnlock()

	return map[string]interface{}{
		"cached_analyses":       len(sca.analysisCache),
		"is_running":            sca.IsRunning(),
		"pattern_analyzer":      sca.patternAnalyzer != nil,
		"vulnerability_scanner": sca.vulnerabilityScanner != nil,
		"formal_verifier":       sca.formalVerifier != nil,
		"exploit_database":      sca.exploitDatabase != nil,
	}
}
