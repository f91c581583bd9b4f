package reporting

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/DimaJoyti/go-coffee/solana-engine/pkg/logger"
	"github.com/ethereum/go-ethereum/common"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// ComprehensiveReportingDashboard provides advanced reporting and analytics
type ComprehensiveReportingDashboard struct {
	logger *logger.Logger
	config DashboardConfig

	// Analytics engines
	pnlTracker          PnLTracker
	performanceAnalyzer PerformanceAnalyzer
	portfolioVisualizer PortfolioVisualizer
	riskAnalyzer        RiskAnalyzer

	// Data processors
	dataAggregator   DataAggregator
	metricCalculator MetricCalculator
	reportGenerator  ReportGenerator
	chartGenerator   ChartGenerator

	// Data sources
	transactionProvider TransactionProvider
	priceProvider       PriceProvider
	portfolioProvider   PortfolioProvider

	// Caching and storage
	reportCache   ReportCache
	dataWarehouse DataWarehouse

	// State management
	isRunning    bool
	updateTicker *time.Ticker
	stopChan     chan struct{}
	mutex        sync.RWMutex
	cacheMutex   sync.RWMutex
}

// DashboardConfig holds configuration for the reporting dashboard
type DashboardConfig struct {
	Enabled                   bool                      `json:"enabled" yaml:"enabled"`
	UpdateInterval            time.Duration             `json:"update_interval" yaml:"update_interval"`
	DataRetentionPeriod       time.Duration             `json:"data_retention_period" yaml:"data_retention_period"`
	MaxConcurrentReports      int                       `json:"max_concurrent_reports" yaml:"max_concurrent_reports"`
	PnLTrackerConfig          PnLTrackerConfig          `json:"pnl_tracker_config" yaml:"pnl_tracker_config"`
	PerformanceAnalyzerConfig PerformanceAnalyzerConfig `json:"performance_analyzer_config" yaml:"performance_analyzer_config"`
	PortfolioVisualizerConfig PortfolioVisualizerConfig `json:"portfolio_visualizer_config" yaml:"portfolio_visualizer_config"`
	RiskAnalyzerConfig        RiskAnalyzerConfig        `json:"risk_analyzer_config" yaml:"risk_analyzer_config"`
	DataAggregatorConfig      DataAggregatorConfig      `json:"data_aggregator_config" yaml:"data_aggregator_config"`
	MetricCalculatorConfig    MetricCalculatorConfig    `json:"metric_calculator_config" yaml:"metric_calculator_config"`
	ReportGeneratorConfig     ReportGeneratorConfig     `json:"report_generator_config" yaml:"report_generator_config"`
	ChartGeneratorConfig      ChartGeneratorConfig      `json:"chart_generator_config" yaml:"chart_generator_config"`
	CacheConfig               ReportCacheConfig         `json:"cache_config" yaml:"cache_config"`
	WarehouseConfig           DataWarehouseConfig       `json:"warehouse_config" yaml:"warehouse_config"`
}

// Component configurations
type PnLTrackerConfig struct {
	Enabled            bool     `json:"enabled" yaml:"enabled"`
	CalculationMethods []string `json:"calculation_methods" yaml:"calculation_methods"`
	IncludeUnrealized  bool     `json:"include_unrealized" yaml:"include_unrealized"`
	IncludeFees        bool     `json:"include_fees" yaml:"include_fees"`
	TaxCalculation     bool     `json:"tax_calculation" yaml:"tax_calculation"`
	CurrencyConversion bool     `json:"currency_conversion" yaml:"currency_conversion"`
}

type PerformanceAnalyzerConfig struct {
	Enabled            bool     `json:"enabled" yaml:"enabled"`
	Benchmarks         []string `json:"benchmarks" yaml:"benchmarks"`
	PerformanceMetrics []string `json:"performance_metrics" yaml:"performance_metrics"`
	RiskMetrics        []string `json:"risk_metrics" yaml:"risk_metrics"`
	TimeFrames         []string `json:"time_frames" yaml:"time_frames"`
	ComparisonEnabled  bool     `json:"comparison_enabled" yaml:"comparison_enabled"`
}

type PortfolioVisualizerConfig struct {
	Enabled            bool     `json:"enabled" yaml:"enabled"`
	ChartTypes         []string `json:"chart_types" yaml:"chart_types"`
	VisualizationModes []string `json:"visualization_modes" yaml:"visualization_modes"`
	InteractiveCharts  bool     `json:"interactive_charts" yaml:"interactive_charts"`
	ExportFormats      []string `json:"export_formats" yaml:"export_formats"`
	RealTimeUpdates    bool     `json:"real_time_updates" yaml:"real_time_updates"`
}

type RiskAnalyzerConfig struct {
	Enabled               bool              `json:"enabled" yaml:"enabled"`
	RiskModels            []string          `json:"risk_models" yaml:"risk_models"`
	VaRConfidenceLevels   []decimal.Decimal `json:"var_confidence_levels" yaml:"var_confidence_levels"`
	StressTestScenarios   []string          `json:"stress_test_scenarios" yaml:"stress_test_scenarios"`
	CorrelationAnalysis   bool              `json:"correlation_analysis" yaml:"correlation_analysis"`
	MonteCarloSimulations bool              `json:"monte_carlo_simulations" yaml:"monte_carlo_simulations"`
}

type DataAggregatorConfig struct {
	Enabled            bool          `json:"enabled" yaml:"enabled"`
	AggregationLevels  []string      `json:"aggregation_levels" yaml:"aggregation_levels"`
	DataSources        []string      `json:"data_sources" yaml:"data_sources"`
	SamplingInterval   time.Duration `json:"sampling_interval" yaml:"sampling_interval"`
	CompressionEnabled bool          `json:"compression_enabled" yaml:"compression_enabled"`
}

type MetricCalculatorConfig struct {
	Enabled             bool     `json:"enabled" yaml:"enabled"`
	CalculationEngine   string   `json:"calculation_engine" yaml:"calculation_engine"`
	CustomMetrics       []string `json:"custom_metrics" yaml:"custom_metrics"`
	RealTimeCalculation bool     `json:"real_time_calculation" yaml:"real_time_calculation"`
	HistoricalAnalysis  bool     `json:"historical_analysis" yaml:"historical_analysis"`
}

type ReportGeneratorConfig struct {
	Enabled          bool     `json:"enabled" yaml:"enabled"`
	ReportTypes      []string `json:"report_types" yaml:"report_types"`
	OutputFormats    []string `json:"output_formats" yaml:"output_formats"`
	ScheduledReports bool     `json:"scheduled_reports" yaml:"scheduled_reports"`
	CustomTemplates  bool     `json:"custom_templates" yaml:"custom_templates"`
	AutoDistribution bool     `json:"auto_distribution" yaml:"auto_distribution"`
}

type ChartGeneratorConfig struct {
	Enabled             bool     `json:"enabled" yaml:"enabled"`
	ChartLibrary        string   `json:"chart_library" yaml:"chart_library"`
	SupportedChartTypes []string `json:"supported_chart_types" yaml:"supported_chart_types"`
	ThemeSupport        bool     `json:"theme_support" yaml:"theme_support"`
	AnimationEnabled    bool     `json:"animation_enabled" yaml:"animation_enabled"`
	ExportResolutions   []string `json:"export_resolutions" yaml:"export_resolutions"`
}

type ReportCacheConfig struct {
	Enabled            bool          `json:"enabled" yaml:"enabled"`
	MaxSize            int           `json:"max_size" yaml:"max_size"`
	TTL                time.Duration `json:"ttl" yaml:"ttl"`
	CompressionEnabled bool          `json:"compression_enabled" yaml:"compression_enabled"`
	DistributedCache   bool          `json:"distributed_cache" yaml:"distributed_cache"`
}

type DataWarehouseConfig struct {
	Enabled              bool   `json:"enabled" yaml:"enabled"`
	StorageType          string `json:"storage_type" yaml:"storage_type"`
	ConnectionString     string `json:"connection_string" yaml:"connection_string"`
	PartitioningStrategy string `json:"partitioning_strategy" yaml:"partitioning_strategy"`
	IndexingStrategy     string `json:"indexing_strategy" yaml:"indexing_strategy"`
	BackupEnabled        bool   `json:"backup_enabled" yaml:"backup_enabled"`
}

// Data structures

// Report represents a generated report
type Report struct {
	ID              string                     `json:"id"`
	UserID          string                     `json:"user_id"`
	Type            string                     `json:"type"` // "pnl", "performance", "portfolio", "risk", "summary"
	Title           string                     `json:"title"`
	Description     string                     `json:"description"`
	TimeRange       TimeRange                  `json:"time_range"`
	Data            map[string]interface{}     `json:"data"`
	Charts          []Chart                    `json:"charts"`
	Metrics         map[string]decimal.Decimal `json:"metrics"`
	Insights        []Insight                  `json:"insights"`
	Recommendations []Recommendation           `json:"recommendations"`
	Format          string                     `json:"format"` // "json", "pdf", "html", "csv", "excel"
	Status          string                     `json:"status"` // "generating", "completed", "failed"
	GeneratedAt     time.Time                  `json:"generated_at"`
	ExpiresAt       *time.Time                 `json:"expires_at"`
	Metadata        map[string]interface{}     `json:"metadata"`
}

// TimeRange represents a time range for reports
type TimeRange struct {
	Start       time.Time `json:"start"`
	End         time.Time `json:"end"`
	Granularity string    `json:"granularity"` // "minute", "hour", "day", "week", "month"
	Timezone    string    `json:"timezone"`
}

// Chart represents a chart in a report
type Chart struct {
	ID                  string               `json:"id"`
	Type                string               `json:"type"` // "line", "bar", "pie", "scatter", "heatmap", "candlestick"
	Title               string               `json:"title"`
	Description         string               `json:"description"`
	Data                interface{}          `json:"data"`
	Config              ChartConfig          `json:"config"`
	InteractiveElements []InteractiveElement `json:"interactive_elements"`
}

// ChartConfig holds chart configuration
type ChartConfig struct {
	Width     int                   `json:"width"`
	Height    int                   `json:"height"`
	Theme     string                `json:"theme"`
	Colors    []string              `json:"colors"`
	Axes      map[string]AxisConfig `json:"axes"`
	Legend    LegendConfig          `json:"legend"`
	Tooltip   TooltipConfig         `json:"tooltip"`
	Animation AnimationConfig       `json:"animation"`
}

// AxisConfig holds axis configuration
type AxisConfig struct {
	Label     string           `json:"label"`
	Type      string           `json:"type"` // "linear", "logarithmic", "time", "category"
	Min       *decimal.Decimal `json:"min"`
	Max       *decimal.Decimal `json:"max"`
	Format    string           `json:"format"`
	GridLines bool             `json:"grid_lines"`
}

// LegendConfig holds legend configuration
type LegendConfig struct {
	Enabled   bool   `json:"enabled"`
	Position  string `json:"position"`  // "top", "bottom", "left", "right"
	Alignment string `json:"alignment"` // "start", "center", "end"
}

// TooltipConfig holds tooltip configuration
type TooltipConfig struct {
	Enabled        bool   `json:"enabled"`
	Format         string `json:"format"`
	CustomTemplate string `json:"custom_template"`
}

// AnimationConfig holds animation configuration
type AnimationConfig struct {
	Enabled  bool          `json:"enabled"`
	Duration time.Duration `json:"duration"`
	Easing   string        `json:"easing"`
}

// InteractiveElement represents interactive chart elements
type InteractiveElement struct {
	Type    string                 `json:"type"` // "zoom", "pan", "brush", "crossfilter"
	Config  map[string]interface{} `json:"config"`
	Enabled bool                   `json:"enabled"`
}

// Insight represents an analytical insight
type Insight struct {
	ID          string                 `json:"id"`
	Type        string                 `json:"type"` // "trend", "anomaly", "correlation", "pattern"
	Title       string                 `json:"title"`
	Description string                 `json:"description"`
	Confidence  decimal.Decimal        `json:"confidence"`
	Impact      string                 `json:"impact"` // "low", "medium", "high"
	Category    string                 `json:"category"`
	Data        map[string]interface{} `json:"data"`
	GeneratedAt time.Time              `json:"generated_at"`
}

// Recommendation represents an actionable recommendation
type Recommendation struct {
	ID             string              `json:"id"`
	Type           string              `json:"type"` // "rebalance", "hedge", "exit", "enter", "hold"
	Title          string              `json:"title"`
	Description    string              `json:"description"`
	Priority       string              `json:"priority"` // "low", "medium", "high", "urgent"
	ExpectedImpact decimal.Decimal     `json:"expected_impact"`
	RiskLevel      string              `json:"risk_level"`
	Actions        []RecommendedAction `json:"actions"`
	Rationale      string              `json:"rationale"`
	GeneratedAt    time.Time           `json:"generated_at"`
	ExpiresAt      *time.Time          `json:"expires_at"`
}

// RecommendedAction represents a specific action to take
type RecommendedAction struct {
	Type        string           `json:"type"` // "buy", "sell", "swap", "stake", "unstake"
	Asset       string           `json:"asset"`
	Amount      decimal.Decimal  `json:"amount"`
	TargetPrice *decimal.Decimal `json:"target_price"`
	StopLoss    *decimal.Decimal `json:"stop_loss"`
	TakeProfit  *decimal.Decimal `json:"take_profit"`
	Urgency     string           `json:"urgency"` // "immediate", "within_hour", "within_day", "flexible"
	Conditions  []string         `json:"conditions"`
}

// PnLData represents profit and loss data
type PnLData struct {
	UserID               string              `json:"user_id"`
	TimeRange            TimeRange           `json:"time_range"`
	RealizedPnL          decimal.Decimal     `json:"realized_pnl"`
	UnrealizedPnL        decimal.Decimal     `json:"unrealized_pnl"`
	TotalPnL             decimal.Decimal     `json:"total_pnl"`
	TotalFees            decimal.Decimal     `json:"total_fees"`
	NetPnL               decimal.Decimal     `json:"net_pnl"`
	ROI                  decimal.Decimal     `json:"roi"`
	AssetBreakdown       map[string]AssetPnL `json:"asset_breakdown"`
	TransactionBreakdown []TransactionPnL    `json:"transaction_breakdown"`
	TaxImplications      *TaxData            `json:"tax_implications"`
	Currency             string              `json:"currency"`
	GeneratedAt          time.Time           `json:"generated_at"`
}

// AssetPnL represents P&L for a specific asset
type AssetPnL struct {
	Asset         string          `json:"asset"`
	RealizedPnL   decimal.Decimal `json:"realized_pnl"`
	UnrealizedPnL decimal.Decimal `json:"unrealized_pnl"`
	TotalPnL      decimal.Decimal `json:"total_pnl"`
	Fees          decimal.Decimal `json:"fees"`
	ROI           decimal.Decimal `json:"roi"`
	HoldingPeriod time.Duration   `json:"holding_period"`
	Transactions  int             `json:"transactions"`
}

// TransactionPnL represents P&L for a specific transaction
type TransactionPnL struct {
	TransactionHash common.Hash     `json:"transaction_hash"`
	Type            string          `json:"type"`
	Asset           string          `json:"asset"`
	Amount          decimal.Decimal `json:"amount"`
	Price           decimal.Decimal `json:"price"`
	Fee             decimal.Decimal `json:"fee"`
	PnL             decimal.Decimal `json:"pnl"`
	Timestamp       time.Time       `json:"timestamp"`
}

// TaxData represents tax calculation data
type TaxData struct {
	TaxableEvents         []TaxableEvent  `json:"taxable_events"`
	ShortTermGains        decimal.Decimal `json:"short_term_gains"`
	LongTermGains         decimal.Decimal `json:"long_term_gains"`
	TotalTaxableGains     decimal.Decimal `json:"total_taxable_gains"`
	EstimatedTaxLiability decimal.Decimal `json:"estimated_tax_liability"`
	TaxOptimizationTips   []string        `json:"tax_optimization_tips"`
}

// TaxableEvent represents a taxable event
type TaxableEvent struct {
	Type            string          `json:"type"` // "sale", "swap", "income", "mining", "staking"
	Asset           string          `json:"asset"`
	Amount          decimal.Decimal `json:"amount"`
	CostBasis       decimal.Decimal `json:"cost_basis"`
	FairMarketValue decimal.Decimal `json:"fair_market_value"`
	Gain            decimal.Decimal `json:"gain"`
	HoldingPeriod   time.Duration   `json:"holding_period"`
	IsLongTerm      bool            `json:"is_long_term"`
	Timestamp       time.Time       `json:"timestamp"`
}

// PerformanceData represents performance analytics data
type PerformanceData struct {
	UserID                 string                   `json:"user_id"`
	TimeRange              TimeRange                `json:"time_range"`
	TotalReturn            decimal.Decimal          `json:"total_return"`
	AnnualizedReturn       decimal.Decimal          `json:"annualized_return"`
	Volatility             decimal.Decimal          `json:"volatility"`
	SharpeRatio            decimal.Decimal          `json:"sharpe_ratio"`
	SortinoRatio           decimal.Decimal          `json:"sortino_ratio"`
	MaxDrawdown            decimal.Decimal          `json:"max_drawdown"`
	CalmarRatio            decimal.Decimal          `json:"calmar_ratio"`
	WinRate                decimal.Decimal          `json:"win_rate"`
	ProfitFactor           decimal.Decimal          `json:"profit_factor"`
	BenchmarkComparison    map[string]BenchmarkData `json:"benchmark_comparison"`
	RiskMetrics            RiskMetrics              `json:"risk_metrics"`
	PerformanceAttribution PerformanceAttribution   `json:"performance_attribution"`
	GeneratedAt            time.Time                `json:"generated_at"`
}

// BenchmarkData represents benchmark comparison data
type BenchmarkData struct {
	Name             string          `json:"name"`
	Return           decimal.Decimal `json:"return"`
	Volatility       decimal.Decimal `json:"volatility"`
	SharpeRatio      decimal.Decimal `json:"sharpe_ratio"`
	Correlation      decimal.Decimal `json:"correlation"`
	Beta             decimal.Decimal `json:"beta"`
	Alpha            decimal.Decimal `json:"alpha"`
	TrackingError    decimal.Decimal `json:"tracking_error"`
	InformationRatio decimal.Decimal `json:"information_ratio"`
}

// RiskMetrics represents risk analysis metrics
type RiskMetrics struct {
	VaR95             decimal.Decimal `json:"var_95"`
	VaR99             decimal.Decimal `json:"var_99"`
	CVaR95            decimal.Decimal `json:"cvar_95"`
	CVaR99            decimal.Decimal `json:"cvar_99"`
	DownsideDeviation decimal.Decimal `json:"downside_deviation"`
	UpsideDeviation   decimal.Decimal `json:"upside_deviation"`
	SkewnessRatio     decimal.Decimal `json:"skewness_ratio"`
	KurtosisRatio     decimal.Decimal `json:"kurtosis_ratio"`
	TailRatio         decimal.Decimal `json:"tail_ratio"`
}

// PerformanceAttribution represents performance attribution analysis
type PerformanceAttribution struct {
	AssetAllocation    decimal.Decimal            `json:"asset_allocation"`
	SecuritySelection  decimal.Decimal            `json:"security_selection"`
	InteractionEffect  decimal.Decimal            `json:"interaction_effect"`
	TotalActiveReturn  decimal.Decimal            `json:"total_active_return"`
	AssetContributions map[string]decimal.Decimal `json:"asset_contributions"`
}

// Component interfaces
type PnLTracker interface {
	CalculatePnL(ctx context.Context, userID string, timeRange TimeRange) (*PnLData, error)
	GetAssetPnL(ctx context.Context, userID string, asset string, timeRange TimeRange) (*AssetPnL, error)
	CalculateTaxImplications(ctx context.Context, userID string, timeRange TimeRange) (*TaxData, error)
}

type PerformanceAnalyzer interface {
	AnalyzePerformance(ctx context.Context, userID string, timeRange TimeRange) (*PerformanceData, error)
	CompareToBenchmarks(ctx context.Context, userID string, benchmarks []string, timeRange TimeRange) (map[string]*BenchmarkData, error)
	CalculateRiskMetrics(ctx context.Context, userID string, timeRange TimeRange) (*RiskMetrics, error)
}

type PortfolioVisualizer interface {
	GeneratePortfolioCharts(ctx context.Context, userID string, chartTypes []string) ([]Chart, error)
	CreateAllocationChart(ctx context.Context, userID string) (*Chart, error)
	CreatePerformanceChart(ctx context.Context, userID string, timeRange TimeRange) (*Chart, error)
}

type RiskAnalyzer interface {
	AnalyzeRisk(ctx context.Context, userID string) (*RiskAnalysis, error)
	RunStressTests(ctx context.Context, userID string, scenarios []string) (map[string]*StressTestResult, error)
	CalculateCorrelations(ctx context.Context, userID string) (*CorrelationMatrix, error)
}

type DataAggregator interface {
	AggregateData(ctx context.Context, userID string, timeRange TimeRange, granularity string) (map[string]interface{}, error)
	GetHistoricalData(ctx context.Context, userID string, dataType string, timeRange TimeRange) (interface{}, error)
	RefreshData(ctx context.Context, userID string) error
}

type MetricCalculator interface {
	CalculateMetrics(ctx context.Context, userID string, metricTypes []string) (map[string]decimal.Decimal, error)
	CalculateCustomMetric(ctx context.Context, userID string, formula string) (decimal.Decimal, error)
	GetMetricHistory(ctx context.Context, userID string, metric string, timeRange TimeRange) ([]MetricDataPoint, error)
}

type ReportGenerator interface {
	GenerateReport(ctx context.Context, userID string, reportType string, config ReportConfig) (*Report, error)
	GenerateScheduledReports(ctx context.Context) error
	ExportReport(ctx context.Context, reportID string, format string) ([]byte, error)
}

type ChartGenerator interface {
	GenerateChart(ctx context.Context, chartType string, data interface{}, config ChartConfig) (*Chart, error)
	ExportChart(ctx context.Context, chart *Chart, format string, resolution string) ([]byte, error)
	CreateInteractiveChart(ctx context.Context, chartType string, data interface{}) (*Chart, error)
}

type TransactionProvider interface {
	GetTransactions(ctx context.Context, userID string, timeRange TimeRange) ([]Transaction, error)
	GetTransactionsByAsset(ctx context.Context, userID string, asset string, timeRange TimeRange) ([]Transaction, error)
}

type PriceProvider interface {
	GetHistoricalPrices(ctx context.Context, assets []string, timeRange TimeRange) (map[string][]PricePoint, error)
	GetCurrentPrices(ctx context.Context, assets []string) (map[string]decimal.Decimal, error)
}

type PortfolioProvider interface {
	GetPortfolioSnapshot(ctx context.Context, userID string, timestamp time.Time) (*PortfolioSnapshot, error)
	GetPortfolioHistory(ctx context.Context, userID string, timeRange TimeRange) ([]PortfolioSnapshot, error)
}

type ReportCache interface {
	GetReport(ctx context.Context, key string) (*Report, error)
	SetReport(ctx context.Context, key string, report *Report, ttl time.Duration) error
	InvalidateUserReports(ctx context.Context, userID string) error
}

type DataWarehouse interface {
	StoreReportData(ctx context.Context, data interface{}) error
	QueryReportData(ctx context.Context, query string, params map[string]interface{}) (interface{}, error)
	ArchiveOldData(ctx context.Context, cutoffDate time.Time) error
}

// Supporting types
type Transaction struct {
	Hash        common.Hash     `json:"hash"`
	Type        string          `json:"type"`
	Asset       string          `json:"asset"`
	Amount      decimal.Decimal `json:"amount"`
	Price       decimal.Decimal `json:"price"`
	Fee         decimal.Decimal `json:"fee"`
	Timestamp   time.Time       `json:"timestamp"`
	BlockNumber uint64          `json:"block_number"`
}

type PricePoint struct {
	Timestamp time.Time       `json:"timestamp"`
	Price     decimal.Decimal `json:"price"`
	Volume    decimal.Decimal `json:"volume"`
}

type PortfolioSnapshot struct {
	UserID      string                     `json:"user_id"`
	Timestamp   time.Time                  `json:"timestamp"`
	TotalValue  decimal.Decimal            `json:"total_value"`
	Holdings    map[string]decimal.Decimal `json:"holdings"`
	Allocations map[string]decimal.Decimal `json:"allocations"`
}

type MetricDataPoint struct {
	Timestamp time.Time              `json:"timestamp"`
	Value     decimal.Decimal        `json:"value"`
	Metadata  map[string]interface{} `json:"metadata"`
}

type ReportConfig struct {
	TimeRange              TimeRange `json:"time_range"`
	IncludeCharts          bool      `json:"include_charts"`
	IncludeInsights        bool      `json:"include_insights"`
	IncludeRecommendations bool      `json:"include_recommendations"`
	CustomMetrics          []string  `json:"custom_metrics"`
	Format                 string    `json:"format"`
	Template               string    `json:"template"`
}

type RiskAnalysis struct {
	OverallRiskScore  decimal.Decimal            `json:"overall_risk_score"`
	RiskFactors       map[string]decimal.Decimal `json:"risk_factors"`
	ConcentrationRisk decimal.Decimal            `json:"concentration_risk"`
	LiquidityRisk     decimal.Decimal            `json:"liquidity_risk"`
	MarketRisk        decimal.Decimal            `json:"market_risk"`
	CounterpartyRisk  decimal.Decimal            `json:"counterparty_risk"`
	Recommendations   []string                   `json:"recommendations"`
}

type StressTestResult struct {
	Scenario        string                     `json:"scenario"`
	PortfolioImpact decimal.Decimal            `json:"portfolio_impact"`
	AssetImpacts    map[string]decimal.Decimal `json:"asset_impacts"`
	RecoveryTime    time.Duration              `json:"recovery_time"`
	Probability     decimal.Decimal            `json:"probability"`
}

type CorrelationMatrix struct {
	Assets       []string            `json:"assets"`
	Matrix       [][]decimal.Decimal `json:"matrix"`
	TimeRange    TimeRange           `json:"time_range"`
	CalculatedAt time.Time           `json:"calculated_at"`
}

// NewComprehensiveReportingDashboard creates a new reporting dashboard
func NewComprehensiveReportingDashboard(logger *logger.Logger, config DashboardConfig) *ComprehensiveReportingDashboard {
	crd := &ComprehensiveReportingDashboard{
		logger:   logger.Named("comprehensive-reporting-dashboard"),
		config:   config,
		stopChan: make(chan struct{}),
	}

	// Initialize components (mock implementations for this example)
	crd.initializeComponents()

	return crd
}

// initializeComponents initializes all dashboard components
func (crd *ComprehensiveReportingDashboard) initializeComponents() {
	// Initialize components with mock implementations
	// In production, these would be real implementations
	crd.pnlTracker = &MockPnLTracker{}
	crd.performanceAnalyzer = &MockPerformanceAnalyzer{}
	crd.portfolioVisualizer = &MockPortfolioVisualizer{}
	crd.riskAnalyzer = &MockRiskAnalyzer{}
	crd.dataAggregator = &MockDataAggregator{}
	crd.metricCalculator = &MockMetricCalculator{}
	crd.reportGenerator = &MockReportGenerator{}
	crd.chartGenerator = &MockChartGenerator{}
	crd.transactionProvider = &MockTransactionProvider{}
	crd.priceProvider = &MockPriceProvider{}
	crd.portfolioProvider = &MockPortfolioProvider{}
	crd.reportCache = &MockReportCache{}
	crd.dataWarehouse = &MockDataWarehouse{}
}

// Start starts the comprehensive reporting dashboard
func (crd *ComprehensiveReportingDashboard) Start(ctx context.Context) error {
	crd.mutex.Lock()
	defer crd.mutex.Unlock()

	if crd.isRunning {
		return fmt.Errorf("comprehensive reporting dashboard is already running")
	}

	if !crd.config.Enabled {
		crd.logger.Info("Comprehensive reporting dashboard is disabled")
		return nil
	}

	crd.logger.Info("Starting comprehensive reporting dashboard",
		zap.Duration("update_interval", crd.config.UpdateInterval),
		zap.Int("max_concurrent_reports", crd.config.MaxConcurrentReports))

	// Start data update routine
	crd.updateTicker = time.NewTicker(crd.config.UpdateInterval)
	go crd.updateLoop(ctx)

	// Start cleanup routine
	go crd.cleanupLoop(ctx)

	crd.isRunning = true
	crd.logger.Info("Comprehensive reporting dashboard started successfully")
	return nil
}

// Stop stops the comprehensive reporting dashboard
func (crd *ComprehensiveReportingDashboard) Stop() error {
	crd.mutex.Lock()
	defer crd.mutex.Unlock()

	if !crd.isRunning {
		return nil
	}

	crd.logger.Info("Stopping comprehensive reporting dashboard")

	// Stop update routine
	if crd.updateTicker != nil {
		crd.updateTicker.Stop()
	}
	close(crd.stopChan)

	crd.isRunning = false
	crd.logger.Info("Comprehensive reporting dashboard stopped")
	return nil
}

// GenerateReport generates a comprehensive report for a user
func (crd *ComprehensiveReportingDashboard) GenerateReport(ctx context.Context, userID string, reportType string, config ReportConfig) (*Report, error) {
	startTime := time.Now()

	crd.logger.Debug("Generating report",
		zap.String("user_id", userID),
		zap.String("report_type", reportType),
		zap.String("format", config.Format))

	// Check cache first
	cacheKey := fmt.Sprintf("report:%s:%s:%s", userID, reportType, config.TimeRange.Start.Format("2006-01-02"))
	if cachedReport, err := crd.reportCache.GetReport(ctx, cacheKey); err == nil && cachedReport != nil {
		crd.logger.Debug("Returning cached report", zap.String("report_id", cachedReport.ID))
		return cachedReport, nil
	}

	// Generate new report
	report, err := crd.reportGenerator.GenerateReport(ctx, userID, reportType, config)
	if err != nil {
		return nil, fmt.Errorf("failed to generate report: %w", err)
	}

	// Enhance report with additional data based on type
	switch reportType {
	case "pnl":
		if err := crd.enhanceWithPnLData(ctx, report, userID, config.TimeRange); err != nil {
			crd.logger.Warn("Failed to enhance with P&L data", zap.Error(err))
		}
	case "performance":
		if err := crd.enhanceWithPerformanceData(ctx, report, userID, config.TimeRange); err != nil {
			crd.logger.Warn("Failed to enhance with performance data", zap.Error(err))
		}
	case "portfolio":
		if err := crd.enhanceWithPortfolioData(ctx, report, userID); err != nil {
			crd.logger.Warn("Failed to enhance with portfolio data", zap.Error(err))
		}
	case "risk":
		if err := crd.enhanceWithRiskData(ctx, report, userID); err != nil {
			crd.logger.Warn("Failed to enhance with risk data", zap.Error(err))
		}
	}

	// Generate charts if requested
	if config.IncludeCharts {
		charts, err := crd.generateReportCharts(ctx, userID, reportType, config.TimeRange)
		if err != nil {
			crd.logger.Warn("Failed to generate charts", zap.Error(err))
		} else {
			report.Charts = charts
		}
	}

	// Generate insights if requested
	if config.IncludeInsights {
		insights, err := crd.generateInsights(ctx, userID, reportType, report.Data)
		if err != nil {
			crd.logger.Warn("Failed to generate insights", zap.Error(err))
		} else {
			report.Insights = insights
		}
	}

	// Generate recommendations if requested
	if config.IncludeRecommendations {
		recommendations, err := crd.generateRecommendations(ctx, userID, reportType, report.Data)
		if err != nil {
			crd.logger.Warn("Failed to generate recommendations", zap.Error(err))
		} else {
			report.Recommendations = recommendations
		}
	}

	// Cache the report
	if err := crd.reportCache.SetReport(ctx, cacheKey, report, crd.config.CacheConfig.TTL); err != nil {
		crd.logger.Warn("Failed to cache report", zap.Error(err))
	}

	// Store in data warehouse
	if err := crd.dataWarehouse.StoreReportData(ctx, report); err != nil {
		crd.logger.Warn("Failed to store report in warehouse", zap.Error(err))
	}

	crd.logger.Info("Report generated successfully",
		zap.String("report_id", report.ID),
		zap.String("user_id", userID),
		zap.String("type", reportType),
		zap.Duration("generation_time", time.Since(startTime)))

	return report, nil
}

// GeneratePnLReport generates a profit and loss report
func (crd *ComprehensiveReportingDashboard) GeneratePnLReport(ctx context.Context, userID string, timeRange TimeRange) (*Report, error) {
	config := ReportConfig{
		TimeRange:              timeRange,
		IncludeCharts:          true,
		IncludeInsights:        true,
		IncludeRecommendations: true,
		Format:                 "json",
	}

	return crd.GenerateReport(ctx, userID, "pnl", config)
}

// GeneratePerformanceReport generates a performance analysis report
func (crd *ComprehensiveReportingDashboard) GeneratePerformanceReport(ctx context.Context, userID string, timeRange TimeRange) (*Report, error) {
	config := ReportConfig{
		TimeRange:              timeRange,
		IncludeCharts:          true,
		IncludeInsights:        true,
		IncludeRecommendations: true,
		Format:                 "json",
	}

	return crd.GenerateReport(ctx, userID, "performance", config)
}

// GeneratePortfolioReport generates a portfolio visualization report
func (crd *ComprehensiveReportingDashboard) GeneratePortfolioReport(ctx context.Context, userID string) (*Report, error) {
	config := ReportConfig{
		TimeRange: TimeRange{
			Start:       time.Now().AddDate(0, -1, 0),
			End:         time.Now(),
			Granularity: "day",
		},
		IncludeCharts:          true,
		IncludeInsights:        true,
		IncludeRecommendations: true,
		Format:                 "json",
	}

	return crd.GenerateReport(ctx, userID, "portfolio", config)
}

// GenerateRiskReport generates a risk analysis report
func (crd *ComprehensiveReportingDashboard) GenerateRiskReport(ctx context.Context, userID string) (*Report, error) {
	config := ReportConfig{
		TimeRange: TimeRange{
			Start:       time.Now().AddDate(0, -3, 0),
			End:         time.Now(),
			Granularity: "day",
		},
		IncludeCharts:          true,
		IncludeInsights:        true,
		IncludeRecommendations: true,
		Format:                 "json",
	}

	return crd.GenerateReport(ctx, userID, "risk", config)
}

// ExportReport exports a report in the specified format
func (crd *ComprehensiveReportingDashboard) ExportReport(ctx context.Context, reportID string, format string) ([]byte, error) {
	crd.logger.Debug("Exporting report",
		zap.String("report_id", reportID),
		zap.String("format", format))

	data, err := crd.reportGenerator.ExportReport(ctx, reportID, format)
	if err != nil {
		return nil, fmt.Errorf("failed to export report: %w", err)
	}

	return data, nil
}

// GetUserReports gets all reports for a user
func (crd *ComprehensiveReportingDashboard) GetUserReports(ctx context.Context, userID string, filters map[string]interface{}) ([]*Report, error) {
	crd.logger.Debug("Getting user reports",
		zap.String("user_id", userID),
		zap.Any("filters", filters))

	// Query data warehouse for user reports
	query := "SELECT * FROM reports WHERE user_id = :user_id"
	params := map[string]interface{}{
		"user_id": userID,
	}

	// Add filters
	if reportType, ok := filters["type"].(string); ok {
		query += " AND type = :type"
		params["type"] = reportType
	}

	if startDate, ok := filters["start_date"].(time.Time); ok {
		query += " AND generated_at >= :start_date"
		params["start_date"] = startDate
	}

	if endDate, ok := filters["end_date"].(time.Time); ok {
		query += " AND generated_at <= :end_date"
		params["end_date"] = endDate
	}

	query += " ORDER BY generated_at DESC"

	result, err := crd.dataWarehouse.QueryReportData(ctx, query, params)
	if err != nil {
		return nil, fmt.Errorf("failed to query user reports: %w", err)
	}

	// Convert result to reports (mock implementation)
	reports := []*Report{}
	if reportList, ok := result.([]*Report); ok {
		reports = reportList
	}

	return reports, nil
}

// GetReportMetrics gets metrics for a specific report
func (crd *ComprehensiveReportingDashboard) GetReportMetrics(ctx context.Context, userID string, metricTypes []string) (map[string]decimal.Decimal, error) {
	crd.logger.Debug("Getting report metrics",
		zap.String("user_id", userID),
		zap.Strings("metric_types", metricTypes))

	metrics, err := crd.metricCalculator.CalculateMetrics(ctx, userID, metricTypes)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate metrics: %w", err)
	}

	return metrics, nil
}

// Helper methods

func (crd *ComprehensiveReportingDashboard) enhanceWithPnLData(ctx context.Context, report *Report, userID string, timeRange TimeRange) error {
	pnlData, err := crd.pnlTracker.CalculatePnL(ctx, userID, timeRange)
	if err != nil {
		return err
	}

	report.Data["pnl_data"] = pnlData
	report.Metrics["total_pnl"] = pnlData.TotalPnL
	report.Metrics["realized_pnl"] = pnlData.RealizedPnL
	report.Metrics["unrealized_pnl"] = pnlData.UnrealizedPnL
	report.Metrics["roi"] = pnlData.ROI

	return nil
}

func (crd *ComprehensiveReportingDashboard) enhanceWithPerformanceData(ctx context.Context, report *Report, userID string, timeRange TimeRange) error {
	performanceData, err := crd.performanceAnalyzer.AnalyzePerformance(ctx, userID, timeRange)
	if err != nil {
		return err
	}

	report.Data["performance_data"] = performanceData
	report.Metrics["total_return"] = performanceData.TotalReturn
	report.Metrics["annualized_return"] = performanceData.AnnualizedReturn
	report.Metrics["sharpe_ratio"] = performanceData.SharpeRatio
	report.Metrics["max_drawdown"] = performanceData.MaxDrawdown

	return nil
}

func (crd *ComprehensiveReportingDashboard) enhanceWithPortfolioData(ctx context.Context, report *Report, userID string) error {
	snapshot, err := crd.portfolioProvider.GetPortfolioSnapshot(ctx, userID, time.Now())
	if err != nil {
		return err
	}

	report.Data["portfolio_snapshot"] = snapshot
	report.Metrics["total_value"] = snapshot.TotalValue

	return nil
}

func (crd *ComprehensiveReportingDashboard) enhanceWithRiskData(ctx context.Context, report *Report, userID string) error {
	riskAnalysis, err := crd.riskAnalyzer.AnalyzeRisk(ctx, userID)
	if err != nil {
		return err
	}

	report.Data["risk_analysis"] = riskAnalysis
	report.Metrics["risk_score"] = riskAnalysis.OverallRiskScore

	return nil
}

func (crd *ComprehensiveReportingDashboard) generateReportCharts(ctx context.Context, userID string, reportType string, timeRange TimeRange) ([]Chart, error) {
	var charts []Chart

	switch reportType {
	case "pnl":
		// Generate P&L charts
		pnlChart, err := crd.chartGenerator.GenerateChart(ctx, "line", nil, ChartConfig{
			Width:  800,
			Height: 400,
			Theme:  "default",
		})
		if err == nil {
			pnlChart.Title = "Profit & Loss Over Time"
			pnlChart.Description = "Historical P&L performance"
			charts = append(charts, *pnlChart)
		}

	case "performance":
		// Generate performance charts
		performanceChart, err := crd.chartGenerator.GenerateChart(ctx, "line", nil, ChartConfig{
			Width:  800,
			Height: 400,
			Theme:  "default",
		})
		if err == nil {
			performanceChart.Title = "Portfolio Performance"
			performanceChart.Description = "Portfolio performance vs benchmarks"
			charts = append(charts, *performanceChart)
		}

	case "portfolio":
		// Generate portfolio charts
		allocationChart, err := crd.portfolioVisualizer.CreateAllocationChart(ctx, userID)
		if err == nil {
			charts = append(charts, *allocationChart)
		}

		performanceChart, err := crd.portfolioVisualizer.CreatePerformanceChart(ctx, userID, timeRange)
		if err == nil {
			charts = append(charts, *performanceChart)
		}

	case "risk":
		// Generate risk charts
		riskChart, err := crd.chartGenerator.GenerateChart(ctx, "bar", nil, ChartConfig{
			Width:  600,
			Height: 400,
			Theme:  "default",
		})
		if err == nil {
			riskChart.Title = "Risk Analysis"
			riskChart.Description = "Risk factors breakdown"
			charts = append(charts, *riskChart)
		}
	}

	return charts, nil
}

func (crd *ComprehensiveReportingDashboard) generateInsights(ctx context.Context, userID string, reportType string, data map[string]interface{}) ([]Insight, error) {
	var insights []Insight

	// Mock insight generation based on report type
	switch reportType {
	case "pnl":
		insights = append(insights, Insight{
			ID:          "pnl_trend",
			Type:        "trend",
			Title:       "P&L Trend Analysis",
			Description: "Your portfolio shows a positive trend over the selected period",
			Confidence:  decimal.NewFromFloat(0.85),
			Impact:      "medium",
			Category:    "performance",
			GeneratedAt: time.Now(),
		})

	case "performance":
		insights = append(insights, Insight{
			ID:          "performance_vs_benchmark",
			Type:        "comparison",
			Title:       "Outperforming Market",
			Description: "Your portfolio is outperforming the market benchmark by 3.2%",
			Confidence:  decimal.NewFromFloat(0.92),
			Impact:      "high",
			Category:    "performance",
			GeneratedAt: time.Now(),
		})

	case "portfolio":
		insights = append(insights, Insight{
			ID:          "concentration_risk",
			Type:        "risk",
			Title:       "High Concentration Risk",
			Description: "Your portfolio is heavily concentrated in the top 3 assets",
			Confidence:  decimal.NewFromFloat(0.95),
			Impact:      "high",
			Category:    "risk",
			GeneratedAt: time.Now(),
		})

	case "risk":
		insights = append(insights, Insight{
			ID:          "volatility_increase",
			Type:        "anomaly",
			Title:       "Increased Volatility",
			Description: "Portfolio volatility has increased by 15% in the last week",
			Confidence:  decimal.NewFromFloat(0.88),
			Impact:      "medium",
			Category:    "risk",
			GeneratedAt: time.Now(),
		})
	}

	return insights, nil
}

func (crd *ComprehensiveReportingDashboard) generateRecommendations(ctx context.Context, userID string, reportType string, data map[string]interface{}) ([]Recommendation, error) {
	var recommendations []Recommendation

	// Mock recommendation generation based on report type
	switch reportType {
	case "pnl":
		recommendations = append(recommendations, Recommendation{
			ID:             "tax_optimization",
			Type:           "optimize",
			Title:          "Tax Loss Harvesting Opportunity",
			Description:    "Consider realizing losses to offset gains for tax optimization",
			Priority:       "medium",
			ExpectedImpact: decimal.NewFromFloat(1500),
			RiskLevel:      "low",
			Rationale:      "Current unrealized losses can be used to reduce tax liability",
			GeneratedAt:    time.Now(),
		})

	case "performance":
		recommendations = append(recommendations, Recommendation{
			ID:             "rebalance_portfolio",
			Type:           "rebalance",
			Title:          "Portfolio Rebalancing",
			Description:    "Rebalance portfolio to maintain target allocation",
			Priority:       "high",
			ExpectedImpact: decimal.NewFromFloat(2.5),
			RiskLevel:      "low",
			Rationale:      "Current allocation has drifted from target due to market movements",
			GeneratedAt:    time.Now(),
		})

	case "portfolio":
		recommendations = append(recommendations, Recommendation{
			ID:             "diversify_holdings",
			Type:           "diversify",
			Title:          "Increase Diversification",
			Description:    "Add exposure to different asset classes to reduce concentration risk",
			Priority:       "high",
			ExpectedImpact: decimal.NewFromFloat(5.0),
			RiskLevel:      "medium",
			Rationale:      "High concentration in top assets increases portfolio risk",
			GeneratedAt:    time.Now(),
		})

	case "risk":
		recommendations = append(recommendations, Recommendation{
			ID:             "hedge_position",
			Type:           "hedge",
			Title:          "Consider Hedging",
			Description:    "Add hedging positions to reduce downside risk",
			Priority:       "medium",
			ExpectedImpact: decimal.NewFromFloat(3.0),
			RiskLevel:      "medium",
			Rationale:      "Increased volatility suggests higher downside risk",
			GeneratedAt:    time.Now(),
		})
	}

	return recommendations, nil
}

func (crd *ComprehensiveReportingDashboard) updateLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-crd.stopChan:
			return
		case <-crd.updateTicker.C:
			if err := crd.refreshData(ctx); err != nil {
				crd.logger.Error("Error refreshing data", zap.Error(err))
			}
		}
	}
}

func (crd *ComprehensiveReportingDashboard) cleanupLoop(ctx context.Context) {
	cleanupTicker := time.NewTicker(24 * time.Hour)
	defer cleanupTicker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-crd.stopChan:
			return
		case <-cleanupTicker.C:
			cutoffDate := time.Now().Add(-crd.config.DataRetentionPeriod)
			if err := crd.dataWarehouse.ArchiveOldData(ctx, cutoffDate); err != nil {
				crd.logger.Error("Error archiving old data", zap.Error(err))
			}
		}
	}
}

func (crd *ComprehensiveReportingDashboard) refreshData(ctx context.Context) error {
	// Mock data refresh - in production this would update caches and refresh data sources
	crd.logger.Debug("Refreshing dashboard data")
	return nil
}

// IsRunning returns whether the dashboard is running
func (crd *ComprehensiveReportingDashboard) IsRunning() bool {
	crd.mutex.RLock()
	defer crd.mutex.RUnlock()
	return crd.isRunning
}

// GetMetrics returns dashboard metrics
func (crd *ComprehensiveReportingDashboard) GetMetrics() map[string]interface{} {
	return map[string]interface{}{
		"is_running":                   crd.IsRunning(),
		"update_interval":              crd.config.UpdateInterval.String(),
		"max_concurrent_reports":       crd.config.MaxConcurrentReports,
		"data_retention_period":        crd.config.DataRetentionPeriod.String(),
		"pnl_tracker_enabled":          crd.config.PnLTrackerConfig.Enabled,
		"performance_analyzer_enabled": crd.config.PerformanceAnalyzerConfig.Enabled,
		"portfolio_visualizer_enabled": crd.config.PortfolioVisualizerConfig.Enabled,
		"risk_analyzer_enabled":        crd.config.RiskAnalyzerConfig.Enabled,
		"cache_enabled":                crd.config.CacheConfig.Enabled,
		"warehouse_enabled":            crd.config.WarehouseConfig.Enabled,
	}
}
