package blockchain

import (
	"context"
	"fmt"
	"math/big"
	"strings"
	"sync"
	"time"

	"github.com/DimaJoyti/go-coffee/solana-engine/pkg/logger"
	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// SmartContractEngine provides a generic smart contract interaction system
type SmartContractEngine struct {
	logger *logger.Logger

	// Blockchain clients
	clients map[string]*ethclient.Client

	// Contract registry
	contracts map[string]*ContractDefinition
	abis      map[string]*abi.ABI

	// Protocol adapters
	protocolAdapters map[string]ProtocolAdapter

	// Transaction management
	transactionManager *TransactionManager
	gasOracle          *GasOracle
	nonceManager       *NonceManager

	// Configuration
	config SmartContractConfig

	// State management
	mutex     sync.RWMutex
	isRunning bool
}

// SmartContractConfig holds configuration for the smart contract engine
type SmartContractConfig struct {
	Enabled                 bool                      `json:"enabled" yaml:"enabled"`
	DefaultChain            string                    `json:"default_chain" yaml:"default_chain"`
	SupportedChains         []string                  `json:"supported_chains" yaml:"supported_chains"`
	RPCEndpoints            map[string]string         `json:"rpc_endpoints" yaml:"rpc_endpoints"`
	MaxGasPrice             *big.Int                  `json:"max_gas_price" yaml:"max_gas_price"`
	GasMultiplier           decimal.Decimal           `json:"gas_multiplier" yaml:"gas_multiplier"`
	TransactionTimeout      time.Duration             `json:"transaction_timeout" yaml:"transaction_timeout"`
	ConfirmationBlocks      uint64                    `json:"confirmation_blocks" yaml:"confirmation_blocks"`
	RetryAttempts           int                       `json:"retry_attempts" yaml:"retry_attempts"`
	RetryDelay              time.Duration             `json:"retry_delay" yaml:"retry_delay"`
	EnableBatchTransactions bool                      `json:"enable_batch_transactions" yaml:"enable_batch_transactions"`
	ProtocolConfigs         map[string]ProtocolConfig `json:"protocol_configs" yaml:"protocol_configs"`
}

// ContractDefinition defines a smart contract
type ContractDefinition struct {
	Name           string                 `json:"name"`
	Address        common.Address         `json:"address"`
	Chain          string                 `json:"chain"`
	ABI            string                 `json:"abi"`
	Version        string                 `json:"version"`
	Protocol       string                 `json:"protocol"`
	Category       string                 `json:"category"` // DEX, Lending, Yield, Bridge, etc.
	IsProxy        bool                   `json:"is_proxy"`
	ProxyType      string                 `json:"proxy_type,omitempty"`
	Implementation *common.Address        `json:"implementation,omitempty"`
	Functions      map[string]FunctionDef `json:"functions"`
	Events         map[string]EventDef    `json:"events"`
	CreatedAt      time.Time              `json:"created_at"`
	UpdatedAt      time.Time              `json:"updated_at"`
	IsActive       bool                   `json:"is_active"`
	SecurityScore  decimal.Decimal        `json:"security_score"`
	TrustLevel     string                 `json:"trust_level"` // high, medium, low
}

// FunctionDef defines a contract function
type FunctionDef struct {
	Name            string            `json:"name"`
	Signature       string            `json:"signature"`
	Inputs          []ParameterDef    `json:"inputs"`
	Outputs         []ParameterDef    `json:"outputs"`
	StateMutability string            `json:"state_mutability"` // view, pure, nonpayable, payable
	GasEstimate     uint64            `json:"gas_estimate"`
	IsPayable       bool              `json:"is_payable"`
	Description     string            `json:"description"`
	Examples        []FunctionExample `json:"examples"`
	Risks           []string          `json:"risks"`
	Tags            []string          `json:"tags"`
}

// EventDef defines a contract event
type EventDef struct {
	Name        string         `json:"name"`
	Signature   string         `json:"signature"`
	Inputs      []ParameterDef `json:"inputs"`
	Anonymous   bool           `json:"anonymous"`
	Description string         `json:"description"`
	Tags        []string       `json:"tags"`
}

// ParameterDef defines function/event parameters
type ParameterDef struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Indexed     bool   `json:"indexed,omitempty"` // For events
	Description string `json:"description"`
}

// FunctionExample provides usage examples
type FunctionExample struct {
	Description string                 `json:"description"`
	Inputs      map[string]interface{} `json:"inputs"`
	Expected    interface{}            `json:"expected"`
	GasUsed     uint64                 `json:"gas_used,omitempty"`
}

// ProtocolConfig holds protocol-specific configuration
type ProtocolConfig struct {
	Enabled         bool                   `json:"enabled"`
	Version         string                 `json:"version"`
	Contracts       []string               `json:"contracts"`
	DefaultSlippage decimal.Decimal        `json:"default_slippage"`
	MaxSlippage     decimal.Decimal        `json:"max_slippage"`
	Features        map[string]bool        `json:"features"`
	Limits          map[string]interface{} `json:"limits"`
	Endpoints       map[string]string      `json:"endpoints"`
}

// TransactionRequest represents a smart contract transaction request
type TransactionRequest struct {
	ID              string                 `json:"id"`
	Chain           string                 `json:"chain"`
	ContractAddress common.Address         `json:"contract_address"`
	FunctionName    string                 `json:"function_name"`
	Inputs          []interface{}          `json:"inputs"`
	Value           *big.Int               `json:"value,omitempty"`
	GasLimit        uint64                 `json:"gas_limit,omitempty"`
	GasPrice        *big.Int               `json:"gas_price,omitempty"`
	MaxFeePerGas    *big.Int               `json:"max_fee_per_gas,omitempty"`
	MaxPriorityFee  *big.Int               `json:"max_priority_fee,omitempty"`
	Nonce           uint64                 `json:"nonce,omitempty"`
	From            common.Address         `json:"from"`
	Deadline        time.Time              `json:"deadline"`
	Priority        TransactionPriority    `json:"priority"`
	Metadata        map[string]interface{} `json:"metadata"`
	CreatedAt       time.Time              `json:"created_at"`
}

// TransactionResult represents the result of a transaction
type TransactionResult struct {
	ID              string                 `json:"id"`
	TransactionHash common.Hash            `json:"transaction_hash"`
	BlockNumber     uint64                 `json:"block_number"`
	BlockHash       common.Hash            `json:"block_hash"`
	GasUsed         uint64                 `json:"gas_used"`
	GasPrice        *big.Int               `json:"gas_price"`
	Status          TransactionStatus      `json:"status"`
	Logs            []types.Log            `json:"logs"`
	Events          []ParsedEvent          `json:"events"`
	ReturnData      []interface{}          `json:"return_data,omitempty"`
	Error           string                 `json:"error,omitempty"`
	ExecutedAt      time.Time              `json:"executed_at"`
	ConfirmedAt     *time.Time             `json:"confirmed_at,omitempty"`
	Metadata        map[string]interface{} `json:"metadata"`
}

// ParsedEvent represents a parsed contract event
type ParsedEvent struct {
	Name        string                 `json:"name"`
	Address     common.Address         `json:"address"`
	Topics      []common.Hash          `json:"topics"`
	Data        []byte                 `json:"data"`
	ParsedData  map[string]interface{} `json:"parsed_data"`
	BlockNumber uint64                 `json:"block_number"`
	TxHash      common.Hash            `json:"tx_hash"`
	TxIndex     uint                   `json:"tx_index"`
	LogIndex    uint                   `json:"log_index"`
}

// BatchTransactionRequest represents a batch of transactions
type BatchTransactionRequest struct {
	ID           string               `json:"id"`
	Transactions []TransactionRequest `json:"transactions"`
	ExecuteOrder BatchExecutionOrder  `json:"execute_order"`
	FailureMode  BatchFailureMode     `json:"failure_mode"`
	Deadline     time.Time            `json:"deadline"`
	CreatedAt    time.Time            `json:"created_at"`
}

// ContractCall represents a read-only contract call
type ContractCall struct {
	Chain           string                 `json:"chain"`
	ContractAddress common.Address         `json:"contract_address"`
	FunctionName    string                 `json:"function_name"`
	Inputs          []interface{}          `json:"inputs"`
	BlockNumber     *big.Int               `json:"block_number,omitempty"` // nil for latest
	Metadata        map[string]interface{} `json:"metadata"`
}

// ContractCallResult represents the result of a contract call
type ContractCallResult struct {
	Success    bool                   `json:"success"`
	ReturnData []interface{}          `json:"return_data"`
	Error      string                 `json:"error,omitempty"`
	GasUsed    uint64                 `json:"gas_used"`
	Metadata   map[string]interface{} `json:"metadata"`
}

// EventFilter represents an event filter
type EventFilter struct {
	Chain      string           `json:"chain"`
	Addresses  []common.Address `json:"addresses"`
	Topics     [][]common.Hash  `json:"topics"`
	FromBlock  *big.Int         `json:"from_block"`
	ToBlock    *big.Int         `json:"to_block"`
	EventNames []string         `json:"event_names,omitempty"`
	Limit      int              `json:"limit,omitempty"`
}

// Enums
type TransactionPriority int

const (
	PriorityLow TransactionPriority = iota
	PriorityNormal
	PriorityHigh
	PriorityUrgent
)

type TransactionStatus int

const (
	StatusPending TransactionStatus = iota
	StatusSubmitted
	StatusConfirmed
	StatusFailed
	StatusCancelled
)

type BatchExecutionOrder int

const (
	OrderSequential BatchExecutionOrder = iota
	OrderParallel
	OrderOptimized
)

type BatchFailureMode int

const (
	FailureModeStopOnError BatchFailureMode = iota
	FailureModeContinueOnError
	FailureModeRevertAll
)

// ProtocolAdapter interface for protocol-specific implementations
type ProtocolAdapter interface {
	GetProtocolName() string
	GetSupportedChains() []string
	GetContractDefinitions() []*ContractDefinition
	PrepareTransaction(request *TransactionRequest) (*TransactionRequest, error)
	ParseTransactionResult(result *TransactionResult) (*TransactionResult, error)
	ValidateInputs(functionName string, inputs []interface{}) error
	EstimateGas(ctx context.Context, call *ContractCall) (uint64, error)
	GetDefaultParameters(functionName string) map[string]interface{}
	SupportsFeature(feature string) bool
}

// NewSmartContractEngine creates a new smart contract engine
func NewSmartContractEngine(logger *logger.Logger, config SmartContractConfig) *SmartContractEngine {
	return &SmartContractEngine{
		logger:             logger.Named("smart-contract-engine"),
		clients:            make(map[string]*ethclient.Client),
		contracts:          make(map[string]*ContractDefinition),
		abis:               make(map[string]*abi.ABI),
		protocolAdapters:   make(map[string]ProtocolAdapter),
		config:             config,
		transactionManager: NewTransactionManager(logger, config),
		gasOracle:          NewGasOracle(logger, config),
		nonceManager:       NewNonceManager(logger),
	}
}

// Start initializes and starts the smart contract engine
func (sce *SmartContractEngine) Start(ctx context.Context) error {
	sce.mutex.Lock()
	defer sce.mutex.Unlock()

	if sce.isRunning {
		return fmt.Errorf("smart contract engine is already running")
	}

	if !sce.config.Enabled {
		sce.logger.Info("Smart contract engine is disabled")
		return nil
	}

	sce.logger.Info("Starting smart contract engine",
		zap.String("default_chain", sce.config.DefaultChain),
		zap.Strings("supported_chains", sce.config.SupportedChains),
		zap.Int("protocol_count", len(sce.config.ProtocolConfigs)))

	// Initialize blockchain clients
	if err := sce.initializeClients(); err != nil {
		return fmt.Errorf("failed to initialize blockchain clients: %w", err)
	}

	// Load contract definitions
	if err := sce.loadContractDefinitions(); err != nil {
		return fmt.Errorf("failed to load contract definitions: %w", err)
	}

	// Initialize protocol adapters
	if err := sce.initializeProtocolAdapters(); err != nil {
		return fmt.Errorf("failed to initialize protocol adapters: %w", err)
	}

	// Start transaction manager
	if err := sce.transactionManager.Start(ctx); err != nil {
		return fmt.Errorf("failed to start transaction manager: %w", err)
	}

	// Start gas oracle
	if err := sce.gasOracle.Start(ctx); err != nil {
		return fmt.Errorf("failed to start gas oracle: %w", err)
	}

	sce.isRunning = true
	sce.logger.Info("Smart contract engine started successfully")
	return nil
}

// Stop stops the smart contract engine
func (sce *SmartContractEngine) Stop() error {
	sce.mutex.Lock()
	defer sce.mutex.Unlock()

	if !sce.isRunning {
		return nil
	}

	sce.logger.Info("Stopping smart contract engine")

	// Stop components
	if sce.transactionManager != nil {
		sce.transactionManager.Stop()
	}
	if sce.gasOracle != nil {
		sce.gasOracle.Stop()
	}

	// Close blockchain clients
	for chain, client := range sce.clients {
		client.Close()
		sce.logger.Debug("Closed blockchain client", zap.String("chain", chain))
	}

	sce.isRunning = false
	sce.logger.Info("Smart contract engine stopped")
	return nil
}

// Core functionality methods

// ExecuteTransaction executes a smart contract transaction
func (sce *SmartContractEngine) ExecuteTransaction(ctx context.Context, request *TransactionRequest) (*TransactionResult, error) {
	sce.logger.Info("Executing smart contract transaction",
		zap.String("id", request.ID),
		zap.String("chain", request.Chain),
		zap.String("contract", request.ContractAddress.Hex()),
		zap.String("function", request.FunctionName))

	// Validate request
	if err := sce.validateTransactionRequest(request); err != nil {
		return nil, fmt.Errorf("invalid transaction request: %w", err)
	}

	// Get contract definition
	contractKey := sce.getContractKey(request.Chain, request.ContractAddress)
	contract, exists := sce.contracts[contractKey]
	if !exists {
		return nil, fmt.Errorf("contract not found: %s on %s", request.ContractAddress.Hex(), request.Chain)
	}

	// Get protocol adapter if available
	var adapter ProtocolAdapter
	if contract.Protocol != "" {
		adapter = sce.protocolAdapters[contract.Protocol]
	}

	// Prepare transaction with adapter if available
	if adapter != nil {
		preparedRequest, err := adapter.PrepareTransaction(request)
		if err != nil {
			return nil, fmt.Errorf("failed to prepare transaction: %w", err)
		}
		request = preparedRequest
	}

	// Validate function inputs
	if err := sce.validateFunctionInputs(contract, request.FunctionName, request.Inputs); err != nil {
		return nil, fmt.Errorf("invalid function inputs: %w", err)
	}

	// Estimate gas if not provided
	if request.GasLimit == 0 {
		gasEstimate, err := sce.estimateGas(ctx, request)
		if err != nil {
			sce.logger.Warn("Failed to estimate gas, using default", zap.Error(err))
			gasEstimate = 200000 // Default gas limit
		}
		request.GasLimit = gasEstimate
	}

	// Get gas price if not provided
	if request.GasPrice == nil && request.MaxFeePerGas == nil {
		gasPrice, err := sce.gasOracle.GetGasPrice(ctx, request.Chain, request.Priority)
		if err != nil {
			return nil, fmt.Errorf("failed to get gas price: %w", err)
		}
		request.GasPrice = gasPrice
	}

	// Get nonce if not provided
	if request.Nonce == 0 {
		nonce, err := sce.nonceManager.GetNonce(ctx, request.Chain, request.From)
		if err != nil {
			return nil, fmt.Errorf("failed to get nonce: %w", err)
		}
		request.Nonce = nonce
	}

	// Execute transaction
	result, err := sce.transactionManager.ExecuteTransaction(ctx, request)
	if err != nil {
		return nil, fmt.Errorf("failed to execute transaction: %w", err)
	}

	// Parse result with adapter if available
	if adapter != nil {
		parsedResult, err := adapter.ParseTransactionResult(result)
		if err != nil {
			sce.logger.Warn("Failed to parse transaction result with adapter", zap.Error(err))
		} else {
			result = parsedResult
		}
	}

	// Parse events
	if err := sce.parseTransactionEvents(result, contract); err != nil {
		sce.logger.Warn("Failed to parse transaction events", zap.Error(err))
	}

	sce.logger.Info("Transaction executed successfully",
		zap.String("id", request.ID),
		zap.String("tx_hash", result.TransactionHash.Hex()),
		zap.Uint64("gas_used", result.GasUsed))

	return result, nil
}

// CallContract executes a read-only contract call
func (sce *SmartContractEngine) CallContract(ctx context.Context, call *ContractCall) (*ContractCallResult, error) {
	sce.logger.Debug("Calling contract function",
		zap.String("chain", call.Chain),
		zap.String("contract", call.ContractAddress.Hex()),
		zap.String("function", call.FunctionName))

	// Validate call
	if err := sce.validateContractCall(call); err != nil {
		return nil, fmt.Errorf("invalid contract call: %w", err)
	}

	// Get contract definition
	contractKey := sce.getContractKey(call.Chain, call.ContractAddress)
	contract, exists := sce.contracts[contractKey]
	if !exists {
		return nil, fmt.Errorf("contract not found: %s on %s", call.ContractAddress.Hex(), call.Chain)
	}

	// Validate function inputs
	if err := sce.validateFunctionInputs(contract, call.FunctionName, call.Inputs); err != nil {
		return nil, fmt.Errorf("invalid function inputs: %w", err)
	}

	// Get blockchain client
	client, exists := sce.clients[call.Chain]
	if !exists {
		return nil, fmt.Errorf("blockchain client not found for chain: %s", call.Chain)
	}

	// Get contract ABI
	contractABI, exists := sce.abis[contractKey]
	if !exists {
		return nil, fmt.Errorf("contract ABI not found: %s", contractKey)
	}

	// Pack function call data
	callData, err := contractABI.Pack(call.FunctionName, call.Inputs...)
	if err != nil {
		return nil, fmt.Errorf("failed to pack function call: %w", err)
	}

	// Prepare call message
	msg := ethereum.CallMsg{
		To:   &call.ContractAddress,
		Data: callData,
	}

	// Execute call
	result, err := client.CallContract(ctx, msg, call.BlockNumber)
	if err != nil {
		return &ContractCallResult{
			Success: false,
			Error:   err.Error(),
		}, nil
	}

	// Unpack result
	returnData, err := contractABI.Unpack(call.FunctionName, result)
	if err != nil {
		return &ContractCallResult{
			Success: false,
			Error:   fmt.Sprintf("failed to unpack result: %v", err),
		}, nil
	}

	return &ContractCallResult{
		Success:    true,
		ReturnData: returnData,
		Metadata:   call.Metadata,
	}, nil
}

// ExecuteBatchTransactions executes multiple transactions in a batch
func (sce *SmartContractEngine) ExecuteBatchTransactions(ctx context.Context, batch *BatchTransactionRequest) ([]*TransactionResult, error) {
	sce.logger.Info("Executing batch transactions",
		zap.String("batch_id", batch.ID),
		zap.Int("transaction_count", len(batch.Transactions)),
		zap.String("execution_order", sce.getBatchOrderString(batch.ExecuteOrder)))

	if !sce.config.EnableBatchTransactions {
		return nil, fmt.Errorf("batch transactions are disabled")
	}

	var results []*TransactionResult
	var errors []error

	switch batch.ExecuteOrder {
	case OrderSequential:
		results, errors = sce.executeSequentialBatch(ctx, batch)
	case OrderParallel:
		results, errors = sce.executeParallelBatch(ctx, batch)
	case OrderOptimized:
		results, errors = sce.executeOptimizedBatch(ctx, batch)
	default:
		return nil, fmt.Errorf("unsupported batch execution order: %d", batch.ExecuteOrder)
	}

	// Handle batch failure mode
	if len(errors) > 0 {
		switch batch.FailureMode {
		case FailureModeStopOnError:
			return results, fmt.Errorf("batch execution stopped on error: %v", errors[0])
		case FailureModeContinueOnError:
			sce.logger.Warn("Batch execution completed with errors",
				zap.Int("error_count", len(errors)))
		case FailureModeRevertAll:
			// In a real implementation, this would revert all successful transactions
			sce.logger.Error("Batch execution failed, reverting all transactions",
				zap.Int("error_count", len(errors)))
			return nil, fmt.Errorf("batch execution failed, all transactions reverted")
		}
	}

	sce.logger.Info("Batch transactions completed",
		zap.String("batch_id", batch.ID),
		zap.Int("successful", len(results)-len(errors)),
		zap.Int("failed", len(errors)))

	return results, nil
}

// Helper methods

// initializeClients initializes blockchain clients for supported chains
func (sce *SmartContractEngine) initializeClients() error {
	sce.logger.Info("Initializing blockchain clients")

	for _, chain := range sce.config.SupportedChains {
		endpoint, exists := sce.config.RPCEndpoints[chain]
		if !exists {
			sce.logger.Warn("No RPC endpoint configured for chain", zap.String("chain", chain))
			continue
		}

		client, err := ethclient.Dial(endpoint)
		if err != nil {
			sce.logger.Error("Failed to connect to blockchain client",
				zap.String("chain", chain),
				zap.String("endpoint", endpoint),
				zap.Error(err))
			continue
		}

		sce.clients[chain] = client
		sce.logger.Info("Connected to blockchain client",
			zap.String("chain", chain),
			zap.String("endpoint", endpoint))
	}

	if len(sce.clients) == 0 {
		return fmt.Errorf("no blockchain clients initialized")
	}

	return nil
}

// loadContractDefinitions loads contract definitions
func (sce *SmartContractEngine) loadContractDefinitions() error {
	sce.logger.Info("Loading contract definitions")

	// Load default contract definitions for common protocols
	sce.loadDefaultContracts()

	sce.logger.Info("Contract definitions loaded",
		zap.Int("contract_count", len(sce.contracts)))

	return nil
}

// loadDefaultContracts loads default contract definitions
func (sce *SmartContractEngine) loadDefaultContracts() {
	// Uniswap V3 Router
	uniswapV3Router := &ContractDefinition{
		Name:     "Uniswap V3 Router",
		Address:  common.HexToAddress("0xE592427A0AEce92De3Edee1F18E0157C05861564"),
		Chain:    "ethereum",
		Protocol: "uniswap",
		Category: "DEX",
		Version:  "3.0",
		Functions: map[string]FunctionDef{
			"exactInputSingle": {
				Name:            "exactInputSingle",
				Signature:       "exactInputSingle((address,address,uint24,address,uint256,uint256,uint256,uint160))",
				StateMutability: "payable",
				GasEstimate:     150000,
				IsPayable:       true,
				Description:     "Swaps amountIn of one token for as much as possible of another token",
			},
			"exactOutputSingle": {
				Name:            "exactOutputSingle",
				Signature:       "exactOutputSingle((address,address,uint24,address,uint256,uint256,uint256,uint160))",
				StateMutability: "payable",
				GasEstimate:     150000,
				IsPayable:       true,
				Description:     "Swaps as little as possible of one token for amountOut of another token",
			},
		},
		SecurityScore: decimal.NewFromFloat(0.95),
		TrustLevel:    "high",
		IsActive:      true,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}

	// Aave V3 Pool
	aaveV3Pool := &ContractDefinition{
		Name:     "Aave V3 Pool",
		Address:  common.HexToAddress("0x87870Bca3F3fD6335C3F4ce8392D69350B4fA4E2"),
		Chain:    "ethereum",
		Protocol: "aave",
		Category: "Lending",
		Version:  "3.0",
		Functions: map[string]FunctionDef{
			"supply": {
				Name:            "supply",
				Signature:       "supply(address,uint256,address,uint16)",
				StateMutability: "nonpayable",
				GasEstimate:     200000,
				Description:     "Supplies an amount of underlying asset into the reserve",
			},
			"withdraw": {
				Name:            "withdraw",
				Signature:       "withdraw(address,uint256,address)",
				StateMutability: "nonpayable",
				GasEstimate:     150000,
				Description:     "Withdraws an amount of underlying asset from the reserve",
			},
			"borrow": {
				Name:            "borrow",
				Signature:       "borrow(address,uint256,uint256,uint16,address)",
				StateMutability: "nonpayable",
				GasEstimate:     250000,
				Description:     "Allows users to borrow a specific amount of the reserve underlying asset",
			},
		},
		SecurityScore: decimal.NewFromFloat(0.92),
		TrustLevel:    "high",
		IsActive:      true,
		CreatedAt:     time.Now(),
		UpdatedAt:     time.Now(),
	}

	// Store contracts
	sce.contracts[sce.getContractKey("ethereum", uniswapV3Router.Address)] = uniswapV3Router
	sce.contracts[sce.getContractKey("ethereum", aaveV3Pool.Address)] = aaveV3Pool
}

// initializeProtocolAdapters initializes protocol adapters
func (sce *SmartContractEngine) initializeProtocolAdapters() error {
	sce.logger.Info("Initializing protocol adapters")

	// Initialize adapters for enabled protocols
	for protocolName, protocolConfig := range sce.config.ProtocolConfigs {
		if !protocolConfig.Enabled {
			continue
		}

		adapter := sce.createProtocolAdapter(protocolName, protocolConfig)
		if adapter != nil {
			sce.protocolAdapters[protocolName] = adapter
			sce.logger.Info("Initialized protocol adapter",
				zap.String("protocol", protocolName))
		}
	}

	sce.logger.Info("Protocol adapters initialized",
		zap.Int("adapter_count", len(sce.protocolAdapters)))

	return nil
}

// createProtocolAdapter creates a protocol adapter
func (sce *SmartContractEngine) createProtocolAdapter(protocolName string, config ProtocolConfig) ProtocolAdapter {
	switch protocolName {
	case "uniswap":
		return NewUniswapAdapter(sce.logger, config)
	case "aave":
		return NewAaveAdapter(sce.logger, config)
	case "curve":
		return NewCurveAdapter(sce.logger, config)
	default:
		sce.logger.Warn("Unknown protocol adapter", zap.String("protocol", protocolName))
		return nil
	}
}

// getContractKey generates a unique key for a contract
func (sce *SmartContractEngine) getContractKey(chain string, address common.Address) string {
	return fmt.Sprintf("%s:%s", chain, address.Hex())
}

// validateTransactionRequest validates a transaction request
func (sce *SmartContractEngine) validateTransactionRequest(request *TransactionRequest) error {
	if request.ID == "" {
		return fmt.Errorf("transaction ID is required")
	}
	if request.Chain == "" {
		return fmt.Errorf("chain is required")
	}
	if request.ContractAddress == (common.Address{}) {
		return fmt.Errorf("contract address is required")
	}
	if request.FunctionName == "" {
		return fmt.Errorf("function name is required")
	}
	if request.From == (common.Address{}) {
		return fmt.Errorf("from address is required")
	}
	if time.Now().After(request.Deadline) {
		return fmt.Errorf("transaction deadline has passed")
	}

	return nil
}

// validateContractCall validates a contract call
func (sce *SmartContractEngine) validateContractCall(call *ContractCall) error {
	if call.Chain == "" {
		return fmt.Errorf("chain is required")
	}
	if call.ContractAddress == (common.Address{}) {
		return fmt.Errorf("contract address is required")
	}
	if call.FunctionName == "" {
		return fmt.Errorf("function name is required")
	}

	return nil
}

// validateFunctionInputs validates function inputs against contract definition
func (sce *SmartContractEngine) validateFunctionInputs(contract *ContractDefinition, functionName string, inputs []interface{}) error {
	functionDef, exists := contract.Functions[functionName]
	if !exists {
		return fmt.Errorf("function %s not found in contract %s", functionName, contract.Name)
	}

	if len(inputs) != len(functionDef.Inputs) {
		return fmt.Errorf("expected %d inputs, got %d", len(functionDef.Inputs), len(inputs))
	}

	// Additional input validation could be added here
	return nil
}

// estimateGas estimates gas for a transaction
func (sce *SmartContractEngine) estimateGas(ctx context.Context, request *TransactionRequest) (uint64, error) {
	// Get contract definition for gas estimate
	contractKey := sce.getContractKey(request.Chain, request.ContractAddress)
	contract, exists := sce.contracts[contractKey]
	if !exists {
		return 200000, nil // Default gas limit
	}

	functionDef, exists := contract.Functions[request.FunctionName]
	if !exists {
		return 200000, nil // Default gas limit
	}

	return functionDef.GasEstimate, nil
}

// parseTransactionEvents parses events from transaction logs
func (sce *SmartContractEngine) parseTransactionEvents(result *TransactionResult, contract *ContractDefinition) error {
	// Mock event parsing - in production would parse actual logs
	if len(result.Logs) > 0 {
		for i, log := range result.Logs {
			event := ParsedEvent{
				Name:        fmt.Sprintf("Event_%d", i),
				Address:     log.Address,
				Topics:      log.Topics,
				Data:        log.Data,
				ParsedData:  map[string]interface{}{"mock": "data"},
				BlockNumber: result.BlockNumber,
				TxHash:      result.TransactionHash,
				TxIndex:     log.TxIndex,
				LogIndex:    log.Index,
			}
			result.Events = append(result.Events, event)
		}
	}

	return nil
}

// Batch execution methods

// executeSequentialBatch executes transactions sequentially
func (sce *SmartContractEngine) executeSequentialBatch(ctx context.Context, batch *BatchTransactionRequest) ([]*TransactionResult, []error) {
	var results []*TransactionResult
	var errors []error

	for _, tx := range batch.Transactions {
		result, err := sce.ExecuteTransaction(ctx, &tx)
		if err != nil {
			errors = append(errors, err)
			if batch.FailureMode == FailureModeStopOnError {
				break
			}
		} else {
			results = append(results, result)
		}
	}

	return results, errors
}

// executeParallelBatch executes transactions in parallel
func (sce *SmartContractEngine) executeParallelBatch(ctx context.Context, batch *BatchTransactionRequest) ([]*TransactionResult, []error) {
	var results []*TransactionResult
	var errors []error
	var mutex sync.Mutex
	var wg sync.WaitGroup

	for _, tx := range batch.Transactions {
		wg.Add(1)
		go func(transaction TransactionRequest) {
			defer wg.Done()

			result, err := sce.ExecuteTransaction(ctx, &transaction)

			mutex.Lock()
			if err != nil {
				errors = append(errors, err)
			} else {
				results = append(results, result)
			}
			mutex.Unlock()
		}(tx)
	}

	wg.Wait()
	return results, errors
}

// executeOptimizedBatch executes transactions with optimization
func (sce *SmartContractEngine) executeOptimizedBatch(ctx context.Context, batch *BatchTransactionRequest) ([]*TransactionResult, []error) {
	// For now, use sequential execution
	// In production, this would implement gas optimization, nonce management, etc.
	return sce.executeSequentialBatch(ctx, batch)
}

// getBatchOrderString converts batch order enum to string
func (sce *SmartContractEngine) getBatchOrderString(order BatchExecutionOrder) string {
	switch order {
	case OrderSequential:
		return "sequential"
	case OrderParallel:
		return "parallel"
	case OrderOptimized:
		return "optimized"
	default:
		return "unknown"
	}
}

// Public interface methods

// RegisterContract registers a new contract definition
func (sce *SmartContractEngine) RegisterContract(contract *ContractDefinition) error {
	sce.mutex.Lock()
	defer sce.mutex.Unlock()

	contractKey := sce.getContractKey(contract.Chain, contract.Address)

	// Parse ABI if provided
	if contract.ABI != "" {
		parsedABI, err := abi.JSON(strings.NewReader(contract.ABI))
		if err != nil {
			return fmt.Errorf("failed to parse contract ABI: %w", err)
		}
		sce.abis[contractKey] = &parsedABI
	}

	contract.UpdatedAt = time.Now()
	if contract.CreatedAt.IsZero() {
		contract.CreatedAt = time.Now()
	}

	sce.contracts[contractKey] = contract

	sce.logger.Info("Registered contract",
		zap.String("name", contract.Name),
		zap.String("address", contract.Address.Hex()),
		zap.String("chain", contract.Chain),
		zap.String("protocol", contract.Protocol))

	return nil
}

// GetContract returns a contract definition
func (sce *SmartContractEngine) GetContract(chain string, address common.Address) (*ContractDefinition, error) {
	sce.mutex.RLock()
	defer sce.mutex.RUnlock()

	contractKey := sce.getContractKey(chain, address)
	contract, exists := sce.contracts[contractKey]
	if !exists {
		return nil, fmt.Errorf("contract not found: %s on %s", address.Hex(), chain)
	}

	return contract, nil
}

// ListContracts returns all registered contracts
func (sce *SmartContractEngine) ListContracts() []*ContractDefinition {
	sce.mutex.RLock()
	defer sce.mutex.RUnlock()

	contracts := make([]*ContractDefinition, 0, len(sce.contracts))
	for _, contract := range sce.contracts {
		contracts = append(contracts, contract)
	}

	return contracts
}

// GetSupportedProtocols returns all supported protocols
func (sce *SmartContractEngine) GetSupportedProtocols() []string {
	protocols := make([]string, 0, len(sce.protocolAdapters))
	for protocol := range sce.protocolAdapters {
		protocols = append(protocols, protocol)
	}
	return protocols
}

// IsRunning returns whether the engine is running
func (sce *SmartContractEngine) IsRunning() bool {
	sce.mutex.RLock()
	defer sce.mutex.RUnlock()
	return sce.isRunning
}

// GetDefaultSmartContractConfig returns default smart contract engine configuration
func GetDefaultSmartContractConfig() SmartContractConfig {
	return SmartContractConfig{
		Enabled:         true,
		DefaultChain:    "ethereum",
		SupportedChains: []string{"ethereum", "polygon", "arbitrum", "optimism"},
		RPCEndpoints: map[string]string{
			"ethereum": "https://mainnet.infura.io/v3/YOUR_PROJECT_ID",
			"polygon":  "https://polygon-mainnet.infura.io/v3/YOUR_PROJECT_ID",
			"arbitrum": "https://arbitrum-mainnet.infura.io/v3/YOUR_PROJECT_ID",
			"optimism": "https://optimism-mainnet.infura.io/v3/YOUR_PROJECT_ID",
		},
		MaxGasPrice:             big.NewInt(100000000000),  // 100 gwei
		GasMultiplier:           decimal.NewFromFloat(1.1), // 10% buffer
		TransactionTimeout:      5 * time.Minute,
		ConfirmationBlocks:      3,
		RetryAttempts:           3,
		RetryDelay:              10 * time.Second,
		EnableBatchTransactions: true,
		ProtocolConfigs: map[string]ProtocolConfig{
			"uniswap": {
				Enabled:         true,
				Version:         "3.0",
				DefaultSlippage: decimal.NewFromFloat(0.005), // 0.5%
				MaxSlippage:     decimal.NewFromFloat(0.05),  // 5%
				Features: map[string]bool{
					"swapping":  true,
					"liquidity": true,
				},
			},
			"aave": {
				Enabled:         true,
				Version:         "3.0",
				DefaultSlippage: decimal.NewFromFloat(0.001), // 0.1%
				MaxSlippage:     decimal.NewFromFloat(0.01),  // 1%
				Features: map[string]bool{
					"lending":     true,
					"borrowing":   true,
					"flash_loans": true,
				},
			},
			"curve": {
				Enabled:         true,
				Version:         "1.0",
				DefaultSlippage: decimal.NewFromFloat(0.003), // 0.3%
				MaxSlippage:     decimal.NewFromFloat(0.03),  // 3%
				Features: map[string]bool{
					"swapping":  true,
					"liquidity": true,
					"staking":   true,
				},
			},
		},
	}
}
