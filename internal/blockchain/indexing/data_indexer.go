package indexing

import (
	"context"
	"fmt"
	"math/big"
	"sync"
	"time"

	"github.com/DimaJoyti/go-coffee/solana-engine/pkg/logger"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/trie"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// BlockchainDataIndexer provides efficient blockchain data indexing and retrieval
type BlockchainDataIndexer struct {
	logger *logger.Logger
	config DataIndexerConfig

	// Indexing components
	blockIndexer       BlockIndexer
	transactionIndexer TransactionIndexer
	addressIndexer     AddressIndexer
	contractIndexer    ContractIndexer
	eventIndexer       EventIndexer

	// Storage engines
	storageEngine StorageEngine
	cacheEngine   CacheEngine

	// Data processors
	dataProcessor   DataProcessor
	analyticsEngine AnalyticsEngine

	// State management
	isRunning      bool
	indexingTicker *time.Ticker
	stopChan       chan struct{}
	mutex          sync.RWMutex

	// Indexing state
	lastIndexedBlock uint64
	indexingProgress *IndexingProgress
	indexingStats    *IndexingStatistics
}

// DataIndexerConfig holds configuration for blockchain data indexing
type DataIndexerConfig struct {
	Enabled              bool                     `json:"enabled" yaml:"enabled"`
	IndexingInterval     time.Duration            `json:"indexing_interval" yaml:"indexing_interval"`
	BatchSize            int                      `json:"batch_size" yaml:"batch_size"`
	MaxConcurrentWorkers int                      `json:"max_concurrent_workers" yaml:"max_concurrent_workers"`
	StartBlock           uint64                   `json:"start_block" yaml:"start_block"`
	BlockIndexerConfig   BlockIndexerConfig       `json:"block_indexer_config" yaml:"block_indexer_config"`
	TransactionConfig    TransactionIndexerConfig `json:"transaction_config" yaml:"transaction_config"`
	AddressConfig        AddressIndexerConfig     `json:"address_config" yaml:"address_config"`
	ContractConfig       ContractIndexerConfig    `json:"contract_config" yaml:"contract_config"`
	EventConfig          EventIndexerConfig       `json:"event_config" yaml:"event_config"`
	StorageConfig        StorageEngineConfig      `json:"storage_config" yaml:"storage_config"`
	CacheConfig          CacheEngineConfig        `json:"cache_config" yaml:"cache_config"`
	DataProcessorConfig  DataProcessorConfig      `json:"data_processor_config" yaml:"data_processor_config"`
	AnalyticsConfig      AnalyticsEngineConfig    `json:"analytics_config" yaml:"analytics_config"`
}

// BlockIndexerConfig holds block indexing configuration
type BlockIndexerConfig struct {
	Enabled            bool          `json:"enabled" yaml:"enabled"`
	IndexHeaders       bool          `json:"index_headers" yaml:"index_headers"`
	IndexTransactions  bool          `json:"index_transactions" yaml:"index_transactions"`
	IndexReceipts      bool          `json:"index_receipts" yaml:"index_receipts"`
	IndexUncles        bool          `json:"index_uncles" yaml:"index_uncles"`
	CompressionEnabled bool          `json:"compression_enabled" yaml:"compression_enabled"`
	RetentionPeriod    time.Duration `json:"retention_period" yaml:"retention_period"`
}

// TransactionIndexerConfig holds transaction indexing configuration
type TransactionIndexerConfig struct {
	Enabled             bool                `json:"enabled" yaml:"enabled"`
	IndexByHash         bool                `json:"index_by_hash" yaml:"index_by_hash"`
	IndexByAddress      bool                `json:"index_by_address" yaml:"index_by_address"`
	IndexByBlock        bool                `json:"index_by_block" yaml:"index_by_block"`
	IndexMethodCalls    bool                `json:"index_method_calls" yaml:"index_method_calls"`
	IndexTokenTransfers bool                `json:"index_token_transfers" yaml:"index_token_transfers"`
	FilterCriteria      []TransactionFilter `json:"filter_criteria" yaml:"filter_criteria"`
}

// AddressIndexerConfig holds address indexing configuration
type AddressIndexerConfig struct {
	Enabled            bool             `json:"enabled" yaml:"enabled"`
	IndexBalances      bool             `json:"index_balances" yaml:"index_balances"`
	IndexTransactions  bool             `json:"index_transactions" yaml:"index_transactions"`
	IndexTokenHoldings bool             `json:"index_token_holdings" yaml:"index_token_holdings"`
	IndexNFTs          bool             `json:"index_nfts" yaml:"index_nfts"`
	TrackingAddresses  []common.Address `json:"tracking_addresses" yaml:"tracking_addresses"`
	UpdateInterval     time.Duration    `json:"update_interval" yaml:"update_interval"`
}

// ContractIndexerConfig holds contract indexing configuration
type ContractIndexerConfig struct {
	Enabled             bool     `json:"enabled" yaml:"enabled"`
	IndexCreation       bool     `json:"index_creation" yaml:"index_creation"`
	IndexInteractions   bool     `json:"index_interactions" yaml:"index_interactions"`
	IndexEvents         bool     `json:"index_events" yaml:"index_events"`
	IndexABI            bool     `json:"index_abi" yaml:"index_abi"`
	ContractTypes       []string `json:"contract_types" yaml:"contract_types"`
	VerificationEnabled bool     `json:"verification_enabled" yaml:"verification_enabled"`
}

// EventIndexerConfig holds event indexing configuration
type EventIndexerConfig struct {
	Enabled        bool          `json:"enabled" yaml:"enabled"`
	IndexAllEvents bool          `json:"index_all_events" yaml:"index_all_events"`
	EventFilters   []EventFilter `json:"event_filters" yaml:"event_filters"`
	DecodeEvents   bool          `json:"decode_events" yaml:"decode_events"`
	IndexEventData bool          `json:"index_event_data" yaml:"index_event_data"`
}

// StorageEngineConfig holds storage engine configuration
type StorageEngineConfig struct {
	Type                string `json:"type" yaml:"type"` // "postgres", "mongodb", "elasticsearch"
	ConnectionString    string `json:"connection_string" yaml:"connection_string"`
	MaxConnections      int    `json:"max_connections" yaml:"max_connections"`
	CompressionEnabled  bool   `json:"compression_enabled" yaml:"compression_enabled"`
	PartitioningEnabled bool   `json:"partitioning_enabled" yaml:"partitioning_enabled"`
	BackupEnabled       bool   `json:"backup_enabled" yaml:"backup_enabled"`
}

// CacheEngineConfig holds cache engine configuration
type CacheEngineConfig struct {
	Type             string        `json:"type" yaml:"type"` // "redis", "memcached", "in-memory"
	ConnectionString string        `json:"connection_string" yaml:"connection_string"`
	TTL              time.Duration `json:"ttl" yaml:"ttl"`
	MaxSize          int           `json:"max_size" yaml:"max_size"`
	EvictionPolicy   string        `json:"eviction_policy" yaml:"eviction_policy"`
}

// DataProcessorConfig holds data processor configuration
type DataProcessorConfig struct {
	Enabled             bool                 `json:"enabled" yaml:"enabled"`
	ProcessingPipelines []string             `json:"processing_pipelines" yaml:"processing_pipelines"`
	EnrichmentEnabled   bool                 `json:"enrichment_enabled" yaml:"enrichment_enabled"`
	ValidationEnabled   bool                 `json:"validation_enabled" yaml:"validation_enabled"`
	TransformationRules []TransformationRule `json:"transformation_rules" yaml:"transformation_rules"`
}

// AnalyticsEngineConfig holds analytics engine configuration
type AnalyticsEngineConfig struct {
	Enabled             bool          `json:"enabled" yaml:"enabled"`
	RealTimeAnalytics   bool          `json:"real_time_analytics" yaml:"real_time_analytics"`
	HistoricalAnalytics bool          `json:"historical_analytics" yaml:"historical_analytics"`
	MetricsCollection   []string      `json:"metrics_collection" yaml:"metrics_collection"`
	AggregationInterval time.Duration `json:"aggregation_interval" yaml:"aggregation_interval"`
}

// Data structures

// IndexedBlock represents an indexed block
type IndexedBlock struct {
	Number           uint64          `json:"number"`
	Hash             common.Hash     `json:"hash"`
	ParentHash       common.Hash     `json:"parent_hash"`
	Timestamp        time.Time       `json:"timestamp"`
	Miner            common.Address  `json:"miner"`
	Difficulty       decimal.Decimal `json:"difficulty"`
	TotalDifficulty  decimal.Decimal `json:"total_difficulty"`
	GasLimit         uint64          `json:"gas_limit"`
	GasUsed          uint64          `json:"gas_used"`
	TransactionCount int             `json:"transaction_count"`
	Size             uint64          `json:"size"`
	ExtraData        []byte          `json:"extra_data"`
	IndexedAt        time.Time       `json:"indexed_at"`
}

// IndexedTransaction represents an indexed transaction
type IndexedTransaction struct {
	Hash             common.Hash            `json:"hash"`
	BlockNumber      uint64                 `json:"block_number"`
	BlockHash        common.Hash            `json:"block_hash"`
	TransactionIndex uint                   `json:"transaction_index"`
	From             common.Address         `json:"from"`
	To               *common.Address        `json:"to"`
	Value            decimal.Decimal        `json:"value"`
	GasLimit         uint64                 `json:"gas_limit"`
	GasPrice         decimal.Decimal        `json:"gas_price"`
	GasUsed          uint64                 `json:"gas_used"`
	Status           uint64                 `json:"status"`
	Nonce            uint64                 `json:"nonce"`
	Data             []byte                 `json:"data"`
	MethodID         []byte                 `json:"method_id"`
	DecodedInput     map[string]interface{} `json:"decoded_input"`
	TokenTransfers   []TokenTransfer        `json:"token_transfers"`
	Events           []IndexedEvent         `json:"events"`
	IndexedAt        time.Time              `json:"indexed_at"`
}

// IndexedAddress represents an indexed address
type IndexedAddress struct {
	Address          common.Address  `json:"address"`
	Type             string          `json:"type"` // "eoa", "contract", "multisig"
	Balance          decimal.Decimal `json:"balance"`
	Nonce            uint64          `json:"nonce"`
	TransactionCount int             `json:"transaction_count"`
	FirstSeen        time.Time       `json:"first_seen"`
	LastActivity     time.Time       `json:"last_activity"`
	TokenHoldings    []TokenHolding  `json:"token_holdings"`
	NFTHoldings      []NFTHolding    `json:"nft_holdings"`
	Tags             []string        `json:"tags"`
	IndexedAt        time.Time       `json:"indexed_at"`
}

// IndexedContract represents an indexed smart contract
type IndexedContract struct {
	Address          common.Address `json:"address"`
	Creator          common.Address `json:"creator"`
	CreationTxHash   common.Hash    `json:"creation_tx_hash"`
	CreationBlock    uint64         `json:"creation_block"`
	ContractType     string         `json:"contract_type"`
	Name             string         `json:"name"`
	Symbol           string         `json:"symbol"`
	ABI              []byte         `json:"abi"`
	SourceCode       string         `json:"source_code"`
	CompilerVersion  string         `json:"compiler_version"`
	IsVerified       bool           `json:"is_verified"`
	InteractionCount int            `json:"interaction_count"`
	IndexedAt        time.Time      `json:"indexed_at"`
}

// IndexedEvent represents an indexed event
type IndexedEvent struct {
	ID               string                 `json:"id"`
	BlockNumber      uint64                 `json:"block_number"`
	BlockHash        common.Hash            `json:"block_hash"`
	TransactionHash  common.Hash            `json:"transaction_hash"`
	TransactionIndex uint                   `json:"transaction_index"`
	LogIndex         uint                   `json:"log_index"`
	Address          common.Address         `json:"address"`
	Topics           []common.Hash          `json:"topics"`
	Data             []byte                 `json:"data"`
	EventName        string                 `json:"event_name"`
	DecodedData      map[string]interface{} `json:"decoded_data"`
	IndexedAt        time.Time              `json:"indexed_at"`
}

// Supporting types
type TokenTransfer struct {
	From         common.Address  `json:"from"`
	To           common.Address  `json:"to"`
	Value        decimal.Decimal `json:"value"`
	TokenAddress common.Address  `json:"token_address"`
	TokenSymbol  string          `json:"token_symbol"`
	TokenName    string          `json:"token_name"`
	Decimals     uint8           `json:"decimals"`
}

type TokenHolding struct {
	TokenAddress common.Address  `json:"token_address"`
	TokenSymbol  string          `json:"token_symbol"`
	TokenName    string          `json:"token_name"`
	Balance      decimal.Decimal `json:"balance"`
	Value        decimal.Decimal `json:"value"`
	LastUpdated  time.Time       `json:"last_updated"`
}

type NFTHolding struct {
	ContractAddress common.Address         `json:"contract_address"`
	TokenID         decimal.Decimal        `json:"token_id"`
	TokenURI        string                 `json:"token_uri"`
	Metadata        map[string]interface{} `json:"metadata"`
	LastUpdated     time.Time              `json:"last_updated"`
}

type TransactionFilter struct {
	Type     string                 `json:"type"`
	Criteria map[string]interface{} `json:"criteria"`
	Enabled  bool                   `json:"enabled"`
}

type EventFilter struct {
	ContractAddress common.Address `json:"contract_address"`
	Topics          []common.Hash  `json:"topics"`
	EventName       string         `json:"event_name"`
	Enabled         bool           `json:"enabled"`
}

type TransformationRule struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	Source   string `json:"source"`
	Target   string `json:"target"`
	Function string `json:"function"`
	Enabled  bool   `json:"enabled"`
}

// IndexingProgress tracks indexing progress
type IndexingProgress struct {
	StartBlock      uint64          `json:"start_block"`
	CurrentBlock    uint64          `json:"current_block"`
	LatestBlock     uint64          `json:"latest_block"`
	BlocksProcessed uint64          `json:"blocks_processed"`
	BlocksRemaining uint64          `json:"blocks_remaining"`
	ProgressPercent decimal.Decimal `json:"progress_percent"`
	EstimatedTime   time.Duration   `json:"estimated_time"`
	StartTime       time.Time       `json:"start_time"`
	LastUpdate      time.Time       `json:"last_update"`
}

// IndexingStatistics tracks indexing statistics
type IndexingStatistics struct {
	TotalBlocks       uint64          `json:"total_blocks"`
	TotalTransactions uint64          `json:"total_transactions"`
	TotalAddresses    uint64          `json:"total_addresses"`
	TotalContracts    uint64          `json:"total_contracts"`
	TotalEvents       uint64          `json:"total_events"`
	IndexingRate      decimal.Decimal `json:"indexing_rate"` // blocks per second
	ProcessingTime    time.Duration   `json:"processing_time"`
	StorageSize       uint64          `json:"storage_size"`
	CacheHitRate      decimal.Decimal `json:"cache_hit_rate"`
	ErrorCount        uint64          `json:"error_count"`
	LastUpdated       time.Time       `json:"last_updated"`
}

// Component interfaces
type BlockIndexer interface {
	IndexBlock(ctx context.Context, block *types.Block) (*IndexedBlock, error)
	GetBlock(blockNumber uint64) (*IndexedBlock, error)
	GetBlockByHash(hash common.Hash) (*IndexedBlock, error)
}

type TransactionIndexer interface {
	IndexTransaction(ctx context.Context, tx *types.Transaction, receipt *types.Receipt) (*IndexedTransaction, error)
	GetTransaction(hash common.Hash) (*IndexedTransaction, error)
	GetTransactionsByAddress(address common.Address, limit int) ([]*IndexedTransaction, error)
}

type AddressIndexer interface {
	IndexAddress(ctx context.Context, address common.Address) (*IndexedAddress, error)
	GetAddress(address common.Address) (*IndexedAddress, error)
	UpdateAddressBalance(address common.Address, balance decimal.Decimal) error
}

type ContractIndexer interface {
	IndexContract(ctx context.Context, address common.Address) (*IndexedContract, error)
	GetContract(address common.Address) (*IndexedContract, error)
	VerifyContract(address common.Address, sourceCode string) error
}

type EventIndexer interface {
	IndexEvent(ctx context.Context, log *types.Log) (*IndexedEvent, error)
	GetEvents(filter EventFilter, limit int) ([]*IndexedEvent, error)
	GetEventsByContract(address common.Address, limit int) ([]*IndexedEvent, error)
}

type StorageEngine interface {
	Store(ctx context.Context, data interface{}) error
	Retrieve(ctx context.Context, key string, result interface{}) error
	Query(ctx context.Context, query interface{}) ([]interface{}, error)
	Delete(ctx context.Context, key string) error
}

type CacheEngine interface {
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Get(ctx context.Context, key string, result interface{}) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}

type DataProcessor interface {
	Process(ctx context.Context, data interface{}) (interface{}, error)
	Enrich(ctx context.Context, data interface{}) (interface{}, error)
	Validate(ctx context.Context, data interface{}) error
}

type AnalyticsEngine interface {
	Analyze(ctx context.Context, data interface{}) (*AnalyticsResult, error)
	GetMetrics(ctx context.Context, timeRange TimeRange) (*MetricsResult, error)
	GenerateReport(ctx context.Context, reportType string) (*ReportResult, error)
}

// Supporting types for analytics
type AnalyticsResult struct {
	Metrics   map[string]decimal.Decimal `json:"metrics"`
	Insights  []string                   `json:"insights"`
	Timestamp time.Time                  `json:"timestamp"`
}

type MetricsResult struct {
	BlockMetrics       *BlockMetrics       `json:"block_metrics"`
	TransactionMetrics *TransactionMetrics `json:"transaction_metrics"`
	AddressMetrics     *AddressMetrics     `json:"address_metrics"`
	ContractMetrics    *ContractMetrics    `json:"contract_metrics"`
	TimeRange          TimeRange           `json:"time_range"`
}

type ReportResult struct {
	ReportType  string                 `json:"report_type"`
	Data        map[string]interface{} `json:"data"`
	GeneratedAt time.Time              `json:"generated_at"`
}

type TimeRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

type BlockMetrics struct {
	TotalBlocks      uint64          `json:"total_blocks"`
	AverageBlockTime decimal.Decimal `json:"average_block_time"`
	AverageGasUsed   decimal.Decimal `json:"average_gas_used"`
	TotalGasUsed     uint64          `json:"total_gas_used"`
}

type TransactionMetrics struct {
	TotalTransactions uint64          `json:"total_transactions"`
	AverageGasPrice   decimal.Decimal `json:"average_gas_price"`
	AverageValue      decimal.Decimal `json:"average_value"`
	SuccessRate       decimal.Decimal `json:"success_rate"`
}

type AddressMetrics struct {
	TotalAddresses  uint64 `json:"total_addresses"`
	ActiveAddresses uint64 `json:"active_addresses"`
	NewAddresses    uint64 `json:"new_addresses"`
}

type ContractMetrics struct {
	TotalContracts    uint64            `json:"total_contracts"`
	NewContracts      uint64            `json:"new_contracts"`
	VerifiedContracts uint64            `json:"verified_contracts"`
	PopularContracts  []PopularContract `json:"popular_contracts"`
}

type PopularContract struct {
	Address          common.Address `json:"address"`
	Name             string         `json:"name"`
	InteractionCount int            `json:"interaction_count"`
}

// NewBlockchainDataIndexer creates a new blockchain data indexer
func NewBlockchainDataIndexer(logger *logger.Logger, config DataIndexerConfig) *BlockchainDataIndexer {
	bdi := &BlockchainDataIndexer{
		logger:           logger.Named("blockchain-data-indexer"),
		config:           config,
		stopChan:         make(chan struct{}),
		lastIndexedBlock: config.StartBlock,
		indexingProgress: &IndexingProgress{
			StartBlock: config.StartBlock,
			StartTime:  time.Now(),
		},
		indexingStats: &IndexingStatistics{
			LastUpdated: time.Now(),
		},
	}

	// Initialize components (mock implementations for this example)
	bdi.initializeComponents()

	return bdi
}

// initializeComponents initializes all indexing components
func (bdi *BlockchainDataIndexer) initializeComponents() {
	// Initialize components with mock implementations
	// In production, these would be real implementations
	bdi.blockIndexer = &MockBlockIndexer{}
	bdi.transactionIndexer = &MockTransactionIndexer{}
	bdi.addressIndexer = &MockAddressIndexer{}
	bdi.contractIndexer = &MockContractIndexer{}
	bdi.eventIndexer = &MockEventIndexer{}
	bdi.storageEngine = &MockStorageEngine{}
	bdi.cacheEngine = &MockCacheEngine{}
	bdi.dataProcessor = &MockDataProcessor{}
	bdi.analyticsEngine = &MockAnalyticsEngine{}
}

// Start starts the blockchain data indexer
func (bdi *BlockchainDataIndexer) Start(ctx context.Context) error {
	bdi.mutex.Lock()
	defer bdi.mutex.Unlock()

	if bdi.isRunning {
		return fmt.Errorf("blockchain data indexer is already running")
	}

	if !bdi.config.Enabled {
		bdi.logger.Info("Blockchain data indexer is disabled")
		return nil
	}

	bdi.logger.Info("Starting blockchain data indexer",
		zap.Duration("indexing_interval", bdi.config.IndexingInterval),
		zap.Int("batch_size", bdi.config.BatchSize),
		zap.Uint64("start_block", bdi.config.StartBlock))

	// Start indexing loop
	bdi.indexingTicker = time.NewTicker(bdi.config.IndexingInterval)
	go bdi.indexingLoop(ctx)

	// Start analytics loop
	if bdi.config.AnalyticsConfig.Enabled {
		go bdi.analyticsLoop(ctx)
	}

	bdi.isRunning = true
	bdi.logger.Info("Blockchain data indexer started successfully")
	return nil
}

// Stop stops the blockchain data indexer
func (bdi *BlockchainDataIndexer) Stop() error {
	bdi.mutex.Lock()
	defer bdi.mutex.Unlock()

	if !bdi.isRunning {
		return nil
	}

	bdi.logger.Info("Stopping blockchain data indexer")

	// Stop indexing
	if bdi.indexingTicker != nil {
		bdi.indexingTicker.Stop()
	}
	close(bdi.stopChan)

	bdi.isRunning = false
	bdi.logger.Info("Blockchain data indexer stopped")
	return nil
}

// IndexBlock indexes a single block
func (bdi *BlockchainDataIndexer) IndexBlock(ctx context.Context, block *types.Block) error {
	startTime := time.Now()

	bdi.logger.Debug("Indexing block",
		zap.Uint64("block_number", block.NumberU64()),
		zap.String("block_hash", block.Hash().Hex()))

	// Index block header
	if bdi.config.BlockIndexerConfig.Enabled {
		indexedBlock, err := bdi.blockIndexer.IndexBlock(ctx, block)
		if err != nil {
			return fmt.Errorf("failed to index block: %w", err)
		}

		// Store in storage engine
		if err := bdi.storageEngine.Store(ctx, indexedBlock); err != nil {
			bdi.logger.Warn("Failed to store indexed block", zap.Error(err))
		}

		// Cache the block
		cacheKey := fmt.Sprintf("block:%d", block.NumberU64())
		if err := bdi.cacheEngine.Set(ctx, cacheKey, indexedBlock, bdi.config.CacheConfig.TTL); err != nil {
			bdi.logger.Warn("Failed to cache block", zap.Error(err))
		}
	}

	// Index transactions
	if bdi.config.TransactionConfig.Enabled && bdi.config.BlockIndexerConfig.IndexTransactions {
		for _, tx := range block.Transactions() {
			if err := bdi.IndexTransaction(ctx, tx, block); err != nil {
				bdi.logger.Warn("Failed to index transaction",
					zap.String("tx_hash", tx.Hash().Hex()),
					zap.Error(err))
			}
		}
	}

	// Update indexing progress
	bdi.updateIndexingProgress(block.NumberU64())

	// Update statistics
	bdi.updateIndexingStatistics(time.Since(startTime))

	bdi.logger.Debug("Block indexed successfully",
		zap.Uint64("block_number", block.NumberU64()),
		zap.Duration("processing_time", time.Since(startTime)))

	return nil
}

// IndexTransaction indexes a single transaction
func (bdi *BlockchainDataIndexer) IndexTransaction(ctx context.Context, tx *types.Transaction, block *types.Block) error {
	if !bdi.config.TransactionConfig.Enabled {
		return nil
	}

	// Mock receipt for demonstration
	receipt := &types.Receipt{
		Status:            types.ReceiptStatusSuccessful,
		CumulativeGasUsed: 21000,
		BlockNumber:       big.NewInt(int64(block.NumberU64())),
		BlockHash:         block.Hash(),
		TxHash:            tx.Hash(),
		GasUsed:           21000,
	}

	indexedTx, err := bdi.transactionIndexer.IndexTransaction(ctx, tx, receipt)
	if err != nil {
		return fmt.Errorf("failed to index transaction: %w", err)
	}

	// Store in storage engine
	if err := bdi.storageEngine.Store(ctx, indexedTx); err != nil {
		bdi.logger.Warn("Failed to store indexed transaction", zap.Error(err))
	}

	// Cache the transaction
	cacheKey := fmt.Sprintf("tx:%s", tx.Hash().Hex())
	if err := bdi.cacheEngine.Set(ctx, cacheKey, indexedTx, bdi.config.CacheConfig.TTL); err != nil {
		bdi.logger.Warn("Failed to cache transaction", zap.Error(err))
	}

	// Index addresses involved in the transaction
	if bdi.config.AddressConfig.Enabled {
		// Index sender address
		if sender, err := types.Sender(types.NewEIP155Signer(tx.ChainId()), tx); err == nil {
			if err := bdi.IndexAddress(ctx, sender); err != nil {
				bdi.logger.Warn("Failed to index sender address", zap.Error(err))
			}
		}

		// Index recipient address
		if tx.To() != nil {
			if err := bdi.IndexAddress(ctx, *tx.To()); err != nil {
				bdi.logger.Warn("Failed to index recipient address", zap.Error(err))
			}
		}
	}

	return nil
}

// IndexAddress indexes a single address
func (bdi *BlockchainDataIndexer) IndexAddress(ctx context.Context, address common.Address) error {
	if !bdi.config.AddressConfig.Enabled {
		return nil
	}

	indexedAddress, err := bdi.addressIndexer.IndexAddress(ctx, address)
	if err != nil {
		return fmt.Errorf("failed to index address: %w", err)
	}

	// Store in storage engine
	if err := bdi.storageEngine.Store(ctx, indexedAddress); err != nil {
		bdi.logger.Warn("Failed to store indexed address", zap.Error(err))
	}

	// Cache the address
	cacheKey := fmt.Sprintf("address:%s", address.Hex())
	if err := bdi.cacheEngine.Set(ctx, cacheKey, indexedAddress, bdi.config.CacheConfig.TTL); err != nil {
		bdi.logger.Warn("Failed to cache address", zap.Error(err))
	}

	return nil
}

// GetBlock retrieves an indexed block
func (bdi *BlockchainDataIndexer) GetBlock(blockNumber uint64) (*IndexedBlock, error) {
	// Try cache first
	cacheKey := fmt.Sprintf("block:%d", blockNumber)
	var cachedBlock IndexedBlock
	if err := bdi.cacheEngine.Get(context.Background(), cacheKey, &cachedBlock); err == nil {
		return &cachedBlock, nil
	}

	// Fallback to storage
	return bdi.blockIndexer.GetBlock(blockNumber)
}

// GetTransaction retrieves an indexed transaction
func (bdi *BlockchainDataIndexer) GetTransaction(hash common.Hash) (*IndexedTransaction, error) {
	// Try cache first
	cacheKey := fmt.Sprintf("tx:%s", hash.Hex())
	var cachedTx IndexedTransaction
	if err := bdi.cacheEngine.Get(context.Background(), cacheKey, &cachedTx); err == nil {
		return &cachedTx, nil
	}

	// Fallback to storage
	return bdi.transactionIndexer.GetTransaction(hash)
}

// GetAddress retrieves an indexed address
func (bdi *BlockchainDataIndexer) GetAddress(address common.Address) (*IndexedAddress, error) {
	// Try cache first
	cacheKey := fmt.Sprintf("address:%s", address.Hex())
	var cachedAddress IndexedAddress
	if err := bdi.cacheEngine.Get(context.Background(), cacheKey, &cachedAddress); err == nil {
		return &cachedAddress, nil
	}

	// Fallback to storage
	return bdi.addressIndexer.GetAddress(address)
}

// GetTransactionsByAddress retrieves transactions for an address
func (bdi *BlockchainDataIndexer) GetTransactionsByAddress(address common.Address, limit int) ([]*IndexedTransaction, error) {
	return bdi.transactionIndexer.GetTransactionsByAddress(address, limit)
}

// GetAnalytics retrieves analytics data
func (bdi *BlockchainDataIndexer) GetAnalytics(ctx context.Context, timeRange TimeRange) (*MetricsResult, error) {
	if !bdi.config.AnalyticsConfig.Enabled {
		return nil, fmt.Errorf("analytics engine is disabled")
	}

	return bdi.analyticsEngine.GetMetrics(ctx, timeRange)
}

// GetIndexingProgress returns current indexing progress
func (bdi *BlockchainDataIndexer) GetIndexingProgress() *IndexingProgress {
	bdi.mutex.RLock()
	defer bdi.mutex.RUnlock()

	// Return a copy
	progress := *bdi.indexingProgress
	return &progress
}

// GetIndexingStatistics returns indexing statistics
func (bdi *BlockchainDataIndexer) GetIndexingStatistics() *IndexingStatistics {
	bdi.mutex.RLock()
	defer bdi.mutex.RUnlock()

	// Return a copy
	stats := *bdi.indexingStats
	return &stats
}

// Helper methods

// updateIndexingProgress updates indexing progress
func (bdi *BlockchainDataIndexer) updateIndexingProgress(currentBlock uint64) {
	bdi.mutex.Lock()
	defer bdi.mutex.Unlock()

	bdi.indexingProgress.CurrentBlock = currentBlock
	bdi.indexingProgress.BlocksProcessed = currentBlock - bdi.indexingProgress.StartBlock
	bdi.indexingProgress.LastUpdate = time.Now()

	// Mock latest block for demonstration
	bdi.indexingProgress.LatestBlock = currentBlock + 100

	if bdi.indexingProgress.LatestBlock > currentBlock {
		bdi.indexingProgress.BlocksRemaining = bdi.indexingProgress.LatestBlock - currentBlock
		total := bdi.indexingProgress.LatestBlock - bdi.indexingProgress.StartBlock
		if total > 0 {
			progress := decimal.NewFromInt(int64(bdi.indexingProgress.BlocksProcessed)).Div(decimal.NewFromInt(int64(total)))
			bdi.indexingProgress.ProgressPercent = progress.Mul(decimal.NewFromFloat(100))
		}
	}

	// Estimate remaining time
	elapsed := time.Since(bdi.indexingProgress.StartTime)
	if bdi.indexingProgress.BlocksProcessed > 0 && bdi.indexingProgress.BlocksRemaining > 0 {
		avgTimePerBlock := elapsed / time.Duration(bdi.indexingProgress.BlocksProcessed)
		bdi.indexingProgress.EstimatedTime = avgTimePerBlock * time.Duration(bdi.indexingProgress.BlocksRemaining)
	}

	bdi.lastIndexedBlock = currentBlock
}

// updateIndexingStatistics updates indexing statistics
func (bdi *BlockchainDataIndexer) updateIndexingStatistics(processingTime time.Duration) {
	bdi.mutex.Lock()
	defer bdi.mutex.Unlock()

	bdi.indexingStats.TotalBlocks++
	bdi.indexingStats.ProcessingTime += processingTime
	bdi.indexingStats.LastUpdated = time.Now()

	// Calculate indexing rate (blocks per second)
	if bdi.indexingStats.ProcessingTime > 0 {
		rate := float64(bdi.indexingStats.TotalBlocks) / bdi.indexingStats.ProcessingTime.Seconds()
		bdi.indexingStats.IndexingRate = decimal.NewFromFloat(rate)
	}
}

// indexingLoop runs the main indexing loop
func (bdi *BlockchainDataIndexer) indexingLoop(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-bdi.stopChan:
			return
		case <-bdi.indexingTicker.C:
			bdi.performIndexingBatch(ctx)
		}
	}
}

// analyticsLoop runs the analytics processing loop
func (bdi *BlockchainDataIndexer) analyticsLoop(ctx context.Context) {
	ticker := time.NewTicker(bdi.config.AnalyticsConfig.AggregationInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-bdi.stopChan:
			return
		case <-ticker.C:
			bdi.performAnalytics(ctx)
		}
	}
}

// performIndexingBatch performs a batch of indexing operations
func (bdi *BlockchainDataIndexer) performIndexingBatch(ctx context.Context) {
	bdi.logger.Debug("Performing indexing batch",
		zap.Uint64("last_indexed_block", bdi.lastIndexedBlock),
		zap.Int("batch_size", bdi.config.BatchSize))

	// Mock block indexing for demonstration
	for i := 0; i < bdi.config.BatchSize; i++ {
		blockNumber := bdi.lastIndexedBlock + uint64(i) + 1

		// Create mock block
		mockBlock := bdi.createMockBlock(blockNumber)

		if err := bdi.IndexBlock(ctx, mockBlock); err != nil {
			bdi.logger.Error("Failed to index block",
				zap.Uint64("block_number", blockNumber),
				zap.Error(err))
			bdi.indexingStats.ErrorCount++
		}
	}
}

// performAnalytics performs analytics processing
func (bdi *BlockchainDataIndexer) performAnalytics(ctx context.Context) {
	if !bdi.config.AnalyticsConfig.Enabled {
		return
	}

	bdi.logger.Debug("Performing analytics processing")

	// Mock analytics processing
	timeRange := TimeRange{
		Start: time.Now().Add(-bdi.config.AnalyticsConfig.AggregationInterval),
		End:   time.Now(),
	}

	_, err := bdi.analyticsEngine.GetMetrics(ctx, timeRange)
	if err != nil {
		bdi.logger.Warn("Analytics processing failed", zap.Error(err))
	}
}

// createMockBlock creates a mock block for demonstration
func (bdi *BlockchainDataIndexer) createMockBlock(blockNumber uint64) *types.Block {
	// Create a mock block header
	header := &types.Header{
		Number:     big.NewInt(int64(blockNumber)),
		Time:       uint64(time.Now().Unix()),
		GasLimit:   8000000,
		GasUsed:    4000000,
		Difficulty: big.NewInt(1000000),
	}

	// Create mock transactions
	var transactions []*types.Transaction
	for i := 0; i < 5; i++ {
		tx := types.NewTransaction(
			uint64(i),
			common.HexToAddress("0x742d35Cc6634C0532925a3b8D4C9db96C4b5C8E1"),
			big.NewInt(1000000000000000000), // 1 ETH
			21000,
			big.NewInt(20000000000), // 20 gwei
			nil,
		)
		transactions = append(transactions, tx)
	}

	// Create block body with transactions
	body := &types.Body{
		Transactions: transactions,
		Uncles:       []*types.Header{},
	}

	// Use the stack trie hasher for compatibility
	hasher := trie.NewStackTrie(nil)
	return types.NewBlock(header, body, nil, hasher)
}

// IsRunning returns whether the indexer is running
func (bdi *BlockchainDataIndexer) IsRunning() bool {
	bdi.mutex.RLock()
	defer bdi.mutex.RUnlock()
	return bdi.isRunning
}

// GetMetrics returns indexer metrics
func (bdi *BlockchainDataIndexer) GetMetrics() map[string]interface{} {
	progress := bdi.GetIndexingProgress()
	stats := bdi.GetIndexingStatistics()

	return map[string]interface{}{
		"is_running":                  bdi.IsRunning(),
		"current_block":               progress.CurrentBlock,
		"blocks_processed":            progress.BlocksProcessed,
		"progress_percent":            progress.ProgressPercent.String(),
		"indexing_rate":               stats.IndexingRate.String(),
		"total_blocks":                stats.TotalBlocks,
		"total_transactions":          stats.TotalTransactions,
		"total_addresses":             stats.TotalAddresses,
		"total_contracts":             stats.TotalContracts,
		"total_events":                stats.TotalEvents,
		"error_count":                 stats.ErrorCount,
		"cache_hit_rate":              stats.CacheHitRate.String(),
		"storage_size":                stats.StorageSize,
		"block_indexer_enabled":       bdi.config.BlockIndexerConfig.Enabled,
		"transaction_indexer_enabled": bdi.config.TransactionConfig.Enabled,
		"address_indexer_enabled":     bdi.config.AddressConfig.Enabled,
		"contract_indexer_enabled":    bdi.config.ContractConfig.Enabled,
		"event_indexer_enabled":       bdi.config.EventConfig.Enabled,
		"analytics_enabled":           bdi.config.AnalyticsConfig.Enabled,
	}
}
