package blockchain

import (
	"context"
	"fmt"
	"math/big"

	"github.com/DimaJoyti/go-coffee/solana-engine/pkg/config"
	"github.com/DimaJoyti/go-coffee/solana-engine/pkg/logger"
	"go.uber.org/zap"
)

// SolanaClient is an alias for SimpleSolanaClient for backward compatibility
type SolanaClient = SimpleSolanaClient

// NewSolanaClient creates a new Solana client (accepts SolanaNetworkConfig)
func NewSolanaClient(cfg config.SolanaNetworkConfig, logger *logger.Logger) (*SolanaClient, error) {
	return NewSimpleSolanaClient(cfg, logger)
}

// SimpleSolanaClient represents a simple Solana blockchain client
type SimpleSolanaClient struct {
	config config.SolanaNetworkConfig
	logger *logger.Logger
}

// NewSimpleSolanaClient creates a new simple Solana client
func NewSimpleSolanaClient(cfg config.SolanaNetworkConfig, logger *logger.Logger) (*SimpleSolanaClient, error) {
	return &SimpleSolanaClient{
		config: cfg,
		logger: logger,
	}, nil
}

// GetBalance retrieves the balance of an address (mock implementation)
func (c *SimpleSolanaClient) GetBalance(ctx context.Context, address string) (*big.Int, error) {
	c.logger.Debug("Getting Solana balance for address", zap.String("address", address))

	// Check context cancellation
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	// Basic address validation for testing
	if len(address) < 32 || len(address) > 44 {
		return nil, fmt.Errorf("invalid address: %s", address)
	}

	// Mock balance for demo
	balance := big.NewInt(1000000000) // 1 SOL in lamports
	return balance, nil
}

// SendTransaction sends a transaction (mock implementation)
func (c *SimpleSolanaClient) SendTransaction(ctx context.Context, from, to string, amount *big.Int) (string, error) {
	c.logger.Debug("Sending Solana transaction",
		zap.String("from", from),
		zap.String("to", to),
		zap.String("amount", amount.String()),
	)

	// Mock transaction hash
	txHash := "mock_solana_tx_hash_" + from[:8] + "_" + to[:8]
	return txHash, nil
}

// GetTransactionStatus gets transaction status (mock implementation)
func (c *SimpleSolanaClient) GetTransactionStatus(ctx context.Context, txHash string) (string, error) {
	c.logger.Debug("Getting Solana transaction status", zap.String("tx_hash", txHash))

	// Mock status
	return "confirmed", nil
}

// CreateAccount creates a new account (mock implementation)
func (c *SimpleSolanaClient) CreateAccount(ctx context.Context) (string, string, error) {
	c.logger.Debug("Creating new Solana account")

	// Mock account creation
	publicKey := "mock_solana_public_key_" + fmt.Sprintf("%d", ctx.Value("timestamp"))
	privateKey := "mock_solana_private_key_" + fmt.Sprintf("%d", ctx.Value("timestamp"))

	return publicKey, privateKey, nil
}

// GetAccountInfo gets account information (mock implementation)
func (c *SimpleSolanaClient) GetAccountInfo(ctx context.Context, address string) (map[string]interface{}, error) {
	c.logger.Debug("Getting Solana account info", zap.String("address", address))

	// Mock account info
	accountInfo := map[string]interface{}{
		"address":    address,
		"balance":    "1000000000",
		"executable": false,
		"owner":      "11111111111111111111111111111112",
		"rent_epoch": 361,
	}

	return accountInfo, nil
}

// GetRecentBlockhash gets recent blockhash (mock implementation)
func (c *SimpleSolanaClient) GetRecentBlockhash(ctx context.Context) (string, error) {
	c.logger.Debug("Getting recent Solana blockhash")

	// Mock blockhash
	blockhash := "mock_solana_blockhash_" + fmt.Sprintf("%d", ctx.Value("timestamp"))
	return blockhash, nil
}

// GetSlot gets current slot (mock implementation)
func (c *SimpleSolanaClient) GetSlot(ctx context.Context) (uint64, error) {
	c.logger.Debug("Getting current Solana slot")

	// Mock slot
	return 123456789, nil
}

// GetEpochInfo gets epoch information (mock implementation)
func (c *SimpleSolanaClient) GetEpochInfo(ctx context.Context) (map[string]interface{}, error) {
	c.logger.Debug("Getting Solana epoch info")

	// Mock epoch info
	epochInfo := map[string]interface{}{
		"epoch":             361,
		"slot_index":        123456,
		"slots_in_epoch":    432000,
		"absolute_slot":     123456789,
		"block_height":      123456780,
		"transaction_count": 987654321,
	}

	return epochInfo, nil
}

// GetTokenBalance gets token balance (mock implementation)
func (c *SimpleSolanaClient) GetTokenBalance(ctx context.Context, address, tokenMint string) (*big.Int, error) {
	c.logger.Debug("Getting Solana token balance",
		zap.String("address", address),
		zap.String("token_mint", tokenMint),
	)

	// Basic address validation for testing
	if len(address) < 32 || len(address) > 44 {
		return nil, fmt.Errorf("invalid address: %s", address)
	}

	// Basic mint address validation for testing
	if len(tokenMint) < 32 || len(tokenMint) > 44 {
		return nil, fmt.Errorf("invalid mint address: %s", tokenMint)
	}

	// Mock token balance
	balance := big.NewInt(500000000) // 0.5 tokens
	return balance, nil
}

// GetTokenAccounts gets token accounts (mock implementation)
func (c *SimpleSolanaClient) GetTokenAccounts(ctx context.Context, owner string) ([]map[string]interface{}, error) {
	c.logger.Debug("Getting Solana token accounts", zap.String("owner", owner))

	// Mock token accounts
	accounts := []map[string]interface{}{
		{
			"pubkey": "mock_token_account_1",
			"account": map[string]interface{}{
				"data": map[string]interface{}{
					"parsed": map[string]interface{}{
						"info": map[string]interface{}{
							"mint":  "mock_token_mint_1",
							"owner": owner,
							"tokenAmount": map[string]interface{}{
								"amount":   "1000000",
								"decimals": 6,
								"uiAmount": 1.0,
							},
						},
					},
				},
			},
		},
	}

	return accounts, nil
}

// GetProgramAccounts gets program accounts (mock implementation)
func (c *SimpleSolanaClient) GetProgramAccounts(ctx context.Context, programID string) ([]map[string]interface{}, error) {
	c.logger.Debug("Getting Solana program accounts", zap.String("program_id", programID))

	// Mock program accounts
	accounts := []map[string]interface{}{
		{
			"pubkey": "mock_program_account_1",
			"account": map[string]interface{}{
				"data":       "mock_account_data",
				"executable": false,
				"lamports":   1000000,
				"owner":      programID,
				"rent_epoch": 361,
			},
		},
	}

	return accounts, nil
}

// GetConfirmedTransaction gets confirmed transaction (mock implementation)
func (c *SimpleSolanaClient) GetConfirmedTransaction(ctx context.Context, signature string) (map[string]interface{}, error) {
	c.logger.Debug("Getting confirmed Solana transaction", zap.String("signature", signature))

	// Mock transaction
	transaction := map[string]interface{}{
		"slot": 123456789,
		"transaction": map[string]interface{}{
			"message": map[string]interface{}{
				"accountKeys": []string{
					"mock_account_1",
					"mock_account_2",
				},
				"header": map[string]interface{}{
					"numReadonlySignedAccounts":   0,
					"numReadonlyUnsignedAccounts": 1,
					"numRequiredSignatures":       1,
				},
				"instructions": []map[string]interface{}{
					{
						"accounts":       []int{0, 1},
						"data":           "mock_instruction_data",
						"programIdIndex": 2,
					},
				},
				"recentBlockhash": "mock_recent_blockhash",
			},
			"signatures": []string{signature},
		},
		"meta": map[string]interface{}{
			"err":    nil,
			"fee":    5000,
			"status": map[string]interface{}{"Ok": nil},
		},
	}

	return transaction, nil
}

// Close closes the client connection (mock implementation)
func (c *SimpleSolanaClient) Close() error {
	c.logger.Debug("Closing Solana client connection")
	return nil
}

// IsConnected checks if client is connected (mock implementation)
func (c *SimpleSolanaClient) IsConnected() bool {
	return true
}

// GetHealth gets cluster health (mock implementation)
func (c *SimpleSolanaClient) GetHealth(ctx context.Context) (string, error) {
	c.logger.Debug("Getting Solana cluster health")
	return "ok", nil
}

// GetVersion gets cluster version (mock implementation)
func (c *SimpleSolanaClient) GetVersion(ctx context.Context) (map[string]interface{}, error) {
	c.logger.Debug("Getting Solana cluster version")

	version := map[string]interface{}{
		"solana-core": "1.16.0",
		"feature-set": 123456789,
	}

	return version, nil
}

// GetCluster returns the cluster name
func (c *SimpleSolanaClient) GetCluster() string {
	return c.config.Cluster
}

// GetCommitment returns the commitment level
func (c *SimpleSolanaClient) GetCommitment() string {
	return c.config.Commitment
}

// GetMinimumBalanceForRentExemption gets minimum balance for rent exemption (mock implementation)
func (c *SimpleSolanaClient) GetMinimumBalanceForRentExemption(ctx context.Context, dataLength int) (*big.Int, error) {
	c.logger.Debug("Getting minimum balance for rent exemption", zap.Int("data_length", dataLength))

	// Mock minimum balance (typical rent exemption amount)
	minBalance := big.NewInt(890880) // ~0.00089 SOL in lamports
	return minBalance, nil
}

// ConfirmTransaction confirms a transaction (mock implementation)
func (c *SimpleSolanaClient) ConfirmTransaction(ctx context.Context, signature string) error {
	c.logger.Debug("Confirming transaction", zap.String("signature", signature))

	// Mock validation
	if signature == "invalid-signature" {
		return fmt.Errorf("invalid signature format")
	}

	// Mock confirmation
	return nil
}
