package defi

import (
	"context"
	"fmt"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/shopspring/decimal"
	"github.com/DimaJoyti/go-coffee/solana-engine/pkg/logger"
)

// RaydiumClient represents a client for Raydium DEX
type RaydiumClient struct {
	rpcClient *rpc.Client
	logger    *logger.Logger
	programID solana.PublicKey
}

// RaydiumPool represents a Raydium liquidity pool
type RaydiumPool struct {
	ID           string          `json:"id"`
	TokenA       string          `json:"token_a"`
	TokenB       string          `json:"token_b"`
	TokenAAmount decimal.Decimal `json:"token_a_amount"`
	TokenBAmount decimal.Decimal `json:"token_b_amount"`
	LPTokens     decimal.Decimal `json:"lp_tokens"`
	Fee          decimal.Decimal `json:"fee"`
	APY          decimal.Decimal `json:"apy"`
}

// RaydiumSwapQuote represents a swap quote from Raydium
type RaydiumSwapQuote struct {
	InputToken   string          `json:"input_token"`
	OutputToken  string          `json:"output_token"`
	InputAmount  decimal.Decimal `json:"input_amount"`
	OutputAmount decimal.Decimal `json:"output_amount"`
	PriceImpact  decimal.Decimal `json:"price_impact"`
	Fee          decimal.Decimal `json:"fee"`
	Route        []string        `json:"route"`
}

// NewRaydiumClient creates a new Raydium client
func NewRaydiumClient(rpcURL string, logger *logger.Logger) (*RaydiumClient, error) {
	rpcClient := rpc.New(rpcURL)
	
	// Raydium AMM Program ID
	programID := solana.MustPublicKeyFromBase58("675kPX9MHTjS2zt1qfr1NYHuzeLXfQM9H24wFSUt1Mp8")
	
	return &RaydiumClient{
		rpcClient: rpcClient,
		logger:    logger.Named("raydium"),
		programID: programID,
	}, nil
}

// GetPools retrieves available Raydium pools
func (r *RaydiumClient) GetPools(ctx context.Context) ([]*RaydiumPool, error) {
	r.logger.Info("Fetching Raydium pools")
	
	// Mock implementation - in production, this would query the Raydium API or on-chain data
	pools := []*RaydiumPool{
		{
			ID:           "58oQChx4yWmvKdwLLZzBi4ChoCc2fqCUWBkwMihLYQo2",
			TokenA:       "So11111111111111111111111111111111111111112", // SOL
			TokenB:       "EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v", // USDC
			TokenAAmount: decimal.NewFromFloat(1000.0),
			TokenBAmount: decimal.NewFromFloat(50000.0),
			LPTokens:     decimal.NewFromFloat(7071.0),
			Fee:          decimal.NewFromFloat(0.0025), // 0.25%
			APY:          decimal.NewFromFloat(0.15),   // 15%
		},
		{
			ID:           "7XawhbbxtsRcQA8KTkHT9f9nc6d69UwqCDh6U5EEbEmX",
			TokenA:       "So11111111111111111111111111111111111111112", // SOL
			TokenB:       "Es9vMFrzaCERmJfrF4H2FYD4KCoNkY11McCe8BenwNYB", // USDT
			TokenAAmount: decimal.NewFromFloat(800.0),
			TokenBAmount: decimal.NewFromFloat(40000.0),
			LPTokens:     decimal.NewFromFloat(5656.0),
			Fee:          decimal.NewFromFloat(0.0025), // 0.25%
			APY:          decimal.NewFromFloat(0.12),   // 12%
		},
	}
	
	r.logger.Info(fmt.Sprintf("Retrieved %d Raydium pools", len(pools)))
	return pools, nil
}

// GetSwapQuote gets a swap quote for trading tokens
func (r *RaydiumClient) GetSwapQuote(ctx context.Context, inputToken, outputToken string, inputAmount decimal.Decimal) (*RaydiumSwapQuote, error) {
	r.logger.Info(fmt.Sprintf("Getting swap quote: %s -> %s, amount: %s", inputToken, outputToken, inputAmount.String()))
	
	// Mock implementation - in production, this would calculate actual swap amounts
	var outputAmount decimal.Decimal
	var priceImpact decimal.Decimal
	
	// Simple mock calculation
	if inputToken == "So11111111111111111111111111111111111111112" && outputToken == "EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v" {
		// SOL -> USDC (assuming 1 SOL = 50 USDC)
		outputAmount = inputAmount.Mul(decimal.NewFromFloat(50.0))
		priceImpact = decimal.NewFromFloat(0.001) // 0.1%
	} else if inputToken == "EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v" && outputToken == "So11111111111111111111111111111111111111112" {
		// USDC -> SOL
		outputAmount = inputAmount.Div(decimal.NewFromFloat(50.0))
		priceImpact = decimal.NewFromFloat(0.001) // 0.1%
	} else {
		outputAmount = inputAmount.Mul(decimal.NewFromFloat(0.98)) // 2% slippage
		priceImpact = decimal.NewFromFloat(0.02) // 2%
	}
	
	// Apply fee (0.25%)
	fee := outputAmount.Mul(decimal.NewFromFloat(0.0025))
	outputAmount = outputAmount.Sub(fee)
	
	quote := &RaydiumSwapQuote{
		InputToken:   inputToken,
		OutputToken:  outputToken,
		InputAmount:  inputAmount,
		OutputAmount: outputAmount,
		PriceImpact:  priceImpact,
		Fee:          fee,
		Route:        []string{inputToken, outputToken},
	}
	
	r.logger.Info(fmt.Sprintf("Swap quote calculated: %s %s -> %s %s", 
		inputAmount.String(), inputToken, outputAmount.String(), outputToken))
	
	return quote, nil
}

// ExecuteSwap executes a token swap
func (r *RaydiumClient) ExecuteSwap(ctx context.Context, quote *RaydiumSwapQuote, userWallet solana.PrivateKey) (string, error) {
	r.logger.Info(fmt.Sprintf("Executing swap: %s -> %s", quote.InputToken, quote.OutputToken))
	
	// Mock implementation - in production, this would create and send the actual swap transaction
	// This would involve:
	// 1. Creating swap instruction
	// 2. Getting recent blockhash
	// 3. Creating transaction
	// 4. Signing with user wallet
	// 5. Sending transaction
	
	// For now, return a mock transaction signature
	mockSignature := "5VERv8NMvzbJMEkV8xnrLkEaWRtSz9CosKDYjCJjBRnbJLgp8uirBgmQpjKhoR4tjF3ZpRzrFmBV6UjKdiSZkQUW"
	
	r.logger.Info(fmt.Sprintf("Swap executed successfully, signature: %s", mockSignature))
	return mockSignature, nil
}

// AddLiquidity adds liquidity to a Raydium pool
func (r *RaydiumClient) AddLiquidity(ctx context.Context, poolID string, tokenAAmount, tokenBAmount decimal.Decimal, userWallet solana.PrivateKey) (string, error) {
	r.logger.Info(fmt.Sprintf("Adding liquidity to pool %s: %s tokenA, %s tokenB", poolID, tokenAAmount.String(), tokenBAmount.String()))
	
	// Mock implementation - in production, this would create and send the actual add liquidity transaction
	mockSignature := "3VERv8NMvzbJMEkV8xnrLkEaWRtSz9CosKDYjCJjBRnbJLgp8uirBgmQpjKhoR4tjF3ZpRzrFmBV6UjKdiSZkQUW"
	
	r.logger.Info(fmt.Sprintf("Liquidity added successfully, signature: %s", mockSignature))
	return mockSignature, nil
}

// RemoveLiquidity removes liquidity from a Raydium pool
func (r *RaydiumClient) RemoveLiquidity(ctx context.Context, poolID string, lpTokenAmount decimal.Decimal, userWallet solana.PrivateKey) (string, error) {
	r.logger.Info(fmt.Sprintf("Removing liquidity from pool %s: %s LP tokens", poolID, lpTokenAmount.String()))
	
	// Mock implementation - in production, this would create and send the actual remove liquidity transaction
	mockSignature := "4VERv8NMvzbJMEkV8xnrLkEaWRtSz9CosKDYjCJjBRnbJLgp8uirBgmQpjKhoR4tjF3ZpRzrFmBV6UjKdiSZkQUW"
	
	r.logger.Info(fmt.Sprintf("Liquidity removed successfully, signature: %s", mockSignature))
	return mockSignature, nil
}

// GetPoolInfo gets detailed information about a specific pool
func (r *RaydiumClient) GetPoolInfo(ctx context.Context, poolID string) (*RaydiumPool, error) {
	r.logger.Info(fmt.Sprintf("Getting pool info for %s", poolID))
	
	// Mock implementation - in production, this would query on-chain data
	pool := &RaydiumPool{
		ID:           poolID,
		TokenA:       "So11111111111111111111111111111111111111112", // SOL
		TokenB:       "EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v", // USDC
		TokenAAmount: decimal.NewFromFloat(1000.0),
		TokenBAmount: decimal.NewFromFloat(50000.0),
		LPTokens:     decimal.NewFromFloat(7071.0),
		Fee:          decimal.NewFromFloat(0.0025), // 0.25%
		APY:          decimal.NewFromFloat(0.15),   // 15%
	}
	
	r.logger.Info(fmt.Sprintf("Retrieved pool info for %s", poolID))
	return pool, nil
}

// GetUserPositions gets user's liquidity positions
func (r *RaydiumClient) GetUserPositions(ctx context.Context, userAddress string) ([]*RaydiumPool, error) {
	r.logger.Info(fmt.Sprintf("Getting user positions for %s", userAddress))
	
	// Mock implementation - in production, this would query user's LP token balances
	positions := []*RaydiumPool{
		{
			ID:           "58oQChx4yWmvKdwLLZzBi4ChoCc2fqCUWBkwMihLYQo2",
			TokenA:       "So11111111111111111111111111111111111111112", // SOL
			TokenB:       "EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v", // USDC
			TokenAAmount: decimal.NewFromFloat(10.0),
			TokenBAmount: decimal.NewFromFloat(500.0),
			LPTokens:     decimal.NewFromFloat(70.71),
			Fee:          decimal.NewFromFloat(0.0025), // 0.25%
			APY:          decimal.NewFromFloat(0.15),   // 15%
		},
	}
	
	r.logger.Info(fmt.Sprintf("Retrieved %d user positions", len(positions)))
	return positions, nil
}

// Close closes the Raydium client
func (r *RaydiumClient) Close() error {
	r.logger.Info("Closing Raydium client")
	return nil
}
