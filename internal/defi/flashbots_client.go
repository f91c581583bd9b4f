package defi

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/DimaJoyti/go-coffee/solana-engine/pkg/logger"
	"go.uber.org/zap"
)

// FlashbotsClient handles interactions with Flashbots relay
type FlashbotsClient struct {
	relayURL   string
	httpClient *http.Client
	logger     *logger.Logger

	// Configuration
	maxRetries     int
	retryDelay     time.Duration
	requestTimeout time.Duration
}

// FlashbotsRequest represents a request to Flashbots
type FlashbotsRequest struct {
	Method string      `json:"method"`
	Params interface{} `json:"params"`
	ID     int         `json:"id"`
}

// FlashbotsResponse represents a response from Flashbots
type FlashbotsResponse struct {
	Result interface{} `json:"result"`
	Error  *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
	ID int `json:"id"`
}

// BundleSubmissionParams represents parameters for bundle submission
type BundleSubmissionParams struct {
	Txs               []string `json:"txs"`
	BlockNumber       string   `json:"blockNumber"`
	MinTimestamp      *int64   `json:"minTimestamp,omitempty"`
	MaxTimestamp      *int64   `json:"maxTimestamp,omitempty"`
	RevertingTxHashes []string `json:"revertingTxHashes,omitempty"`
}

// BundleStats represents bundle statistics
type BundleStats struct {
	IsSimulated    bool   `json:"isSimulated"`
	IsSentToMiners bool   `json:"isSentToMiners"`
	IsHighPriority bool   `json:"isHighPriority"`
	SimulatedAt    string `json:"simulatedAt"`
	SubmittedAt    string `json:"submittedAt"`
}

// NewFlashbotsClient creates a new Flashbots client
func NewFlashbotsClient(relayURL string, logger *logger.Logger) *FlashbotsClient {
	if relayURL == "" {
		relayURL = "https://relay.flashbots.net"
	}

	return &FlashbotsClient{
		relayURL: relayURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		logger:         logger.Named("flashbots-client"),
		maxRetries:     3,
		retryDelay:     1 * time.Second,
		requestTimeout: 30 * time.Second,
	}
}

// SubmitBundle submits a bundle to Flashbots
func (fc *FlashbotsClient) SubmitBundle(ctx context.Context, bundle *FlashbotsBundle) (string, error) {
	fc.logger.Info("Submitting bundle to Flashbots",
		zap.String("bundle_id", bundle.ID),
		zap.Int("tx_count", len(bundle.Transactions)))

	// Prepare transaction data
	txs := make([]string, len(bundle.Transactions))
	revertingTxs := make([]string, 0)

	for i, tx := range bundle.Transactions {
		txs[i] = tx.SignedTransaction
		if tx.CanRevert {
			revertingTxs = append(revertingTxs, tx.SignedTransaction)
		}
	}

	// Prepare submission parameters
	params := BundleSubmissionParams{
		Txs:         txs,
		BlockNumber: fmt.Sprintf("0x%x", bundle.BlockNumber),
	}

	if bundle.MinTimestamp > 0 {
		minTimestamp := int64(bundle.MinTimestamp)
		params.MinTimestamp = &minTimestamp
	}
	if bundle.MaxTimestamp > 0 {
		maxTimestamp := int64(bundle.MaxTimestamp)
		params.MaxTimestamp = &maxTimestamp
	}
	if len(revertingTxs) > 0 {
		params.RevertingTxHashes = revertingTxs
	}

	// Submit bundle
	response, err := fc.makeRequest(ctx, "eth_sendBundle", params)
	if err != nil {
		fc.logger.Error("Failed to submit bundle", zap.Error(err))
		return "", fmt.Errorf("failed to submit bundle: %w", err)
	}

	// Extract bundle hash from response
	bundleHash, ok := response.Result.(string)
	if !ok {
		return "", fmt.Errorf("invalid response format: expected string bundle hash")
	}

	fc.logger.Info("Bundle submitted successfully",
		zap.String("bundle_id", bundle.ID),
		zap.String("bundle_hash", bundleHash))

	return bundleHash, nil
}

// GetBundleStats retrieves statistics for a submitted bundle
func (fc *FlashbotsClient) GetBundleStats(ctx context.Context, bundleHash string, blockNumber uint64) (*BundleStats, error) {
	fc.logger.Debug("Getting bundle stats",
		zap.String("bundle_hash", bundleHash),
		zap.Uint64("block_number", blockNumber))

	params := map[string]interface{}{
		"bundleHash":  bundleHash,
		"blockNumber": fmt.Sprintf("0x%x", blockNumber),
	}

	response, err := fc.makeRequest(ctx, "flashbots_getBundleStats", params)
	if err != nil {
		return nil, fmt.Errorf("failed to get bundle stats: %w", err)
	}

	// Parse response
	var stats BundleStats
	if response.Result != nil {
		resultBytes, err := json.Marshal(response.Result)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal bundle stats: %w", err)
		}

		if err := json.Unmarshal(resultBytes, &stats); err != nil {
			return nil, fmt.Errorf("failed to unmarshal bundle stats: %w", err)
		}
	}

	return &stats, nil
}

// SimulateBundle simulates a bundle without submitting it
func (fc *FlashbotsClient) SimulateBundle(ctx context.Context, bundle *FlashbotsBundle) (*SimulationResult, error) {
	fc.logger.Debug("Simulating bundle",
		zap.String("bundle_id", bundle.ID),
		zap.Int("tx_count", len(bundle.Transactions)))

	// Prepare transaction data
	txs := make([]string, len(bundle.Transactions))
	for i, tx := range bundle.Transactions {
		txs[i] = tx.SignedTransaction
	}

	params := map[string]interface{}{
		"txs":         txs,
		"blockNumber": fmt.Sprintf("0x%x", bundle.BlockNumber),
	}

	response, err := fc.makeRequest(ctx, "eth_callBundle", params)
	if err != nil {
		return nil, fmt.Errorf("failed to simulate bundle: %w", err)
	}

	// Parse simulation result
	var result SimulationResult
	if response.Result != nil {
		resultBytes, err := json.Marshal(response.Result)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal simulation result: %w", err)
		}

		if err := json.Unmarshal(resultBytes, &result); err != nil {
			return nil, fmt.Errorf("failed to unmarshal simulation result: %w", err)
		}
	}

	fc.logger.Debug("Bundle simulation completed",
		zap.String("bundle_id", bundle.ID),
		zap.Bool("success", result.Success))

	return &result, nil
}

// SimulationResult represents the result of a bundle simulation
type SimulationResult struct {
	Success           bool                `json:"success"`
	Error             string              `json:"error,omitempty"`
	GasUsed           uint64              `json:"gasUsed"`
	GasPrice          string              `json:"gasPrice"`
	EthSentToCoinbase string              `json:"ethSentToCoinbase"`
	Results           []TransactionResult `json:"results"`
}

// TransactionResult represents the result of a single transaction in simulation
type TransactionResult struct {
	GasUsed  uint64 `json:"gasUsed"`
	GasPrice string `json:"gasPrice"`
	Value    string `json:"value"`
	Error    string `json:"error,omitempty"`
	Revert   string `json:"revert,omitempty"`
}

// GetUserStats retrieves user statistics from Flashbots
func (fc *FlashbotsClient) GetUserStats(ctx context.Context, blockNumber uint64) (*UserStats, error) {
	fc.logger.Debug("Getting user stats", zap.Uint64("block_number", blockNumber))

	params := map[string]interface{}{
		"blockNumber": fmt.Sprintf("0x%x", blockNumber),
	}

	response, err := fc.makeRequest(ctx, "flashbots_getUserStats", params)
	if err != nil {
		return nil, fmt.Errorf("failed to get user stats: %w", err)
	}

	// Parse user stats
	var stats UserStats
	if response.Result != nil {
		resultBytes, err := json.Marshal(response.Result)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal user stats: %w", err)
		}

		if err := json.Unmarshal(resultBytes, &stats); err != nil {
			return nil, fmt.Errorf("failed to unmarshal user stats: %w", err)
		}
	}

	return &stats, nil
}

// UserStats represents user statistics from Flashbots
type UserStats struct {
	IsHighPriority       bool   `json:"isHighPriority"`
	AllTimeMinerPayments string `json:"allTimeMinerPayments"`
	AllTimeGasSimulated  string `json:"allTimeGasSimulated"`
	Last7dMinerPayments  string `json:"last7dMinerPayments"`
	Last7dGasSimulated   string `json:"last7dGasSimulated"`
	Last1dMinerPayments  string `json:"last1dMinerPayments"`
	Last1dGasSimulated   string `json:"last1dGasSimulated"`
}

// makeRequest makes an HTTP request to Flashbots relay
func (fc *FlashbotsClient) makeRequest(ctx context.Context, method string, params interface{}) (*FlashbotsResponse, error) {
	// Create request
	request := FlashbotsRequest{
		Method: method,
		Params: params,
		ID:     fc.generateRequestID(),
	}

	requestBody, err := json.Marshal(request)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	// Create HTTP request with timeout context
	reqCtx, cancel := context.WithTimeout(ctx, fc.requestTimeout)
	defer cancel()

	var lastErr error
	for attempt := 0; attempt < fc.maxRetries; attempt++ {
		if attempt > 0 {
			fc.logger.Debug("Retrying Flashbots request",
				zap.Int("attempt", attempt+1),
				zap.String("method", method))

			select {
			case <-time.After(fc.retryDelay):
			case <-reqCtx.Done():
				return nil, reqCtx.Err()
			}
		}

		httpReq, err := http.NewRequestWithContext(reqCtx, "POST", fc.relayURL, bytes.NewBuffer(requestBody))
		if err != nil {
			lastErr = fmt.Errorf("failed to create HTTP request: %w", err)
			continue
		}

		// Set headers
		httpReq.Header.Set("Content-Type", "application/json")
		httpReq.Header.Set("X-Flashbots-Signature", fc.generateSignature(requestBody))

		// Make request
		resp, err := fc.httpClient.Do(httpReq)
		if err != nil {
			lastErr = fmt.Errorf("HTTP request failed: %w", err)
			continue
		}

		// Read response
		responseBody, err := io.ReadAll(resp.Body)
		resp.Body.Close()

		if err != nil {
			lastErr = fmt.Errorf("failed to read response body: %w", err)
			continue
		}

		// Check HTTP status
		if resp.StatusCode != http.StatusOK {
			lastErr = fmt.Errorf("HTTP error %d: %s", resp.StatusCode, string(responseBody))
			continue
		}

		// Parse response
		var flashbotsResp FlashbotsResponse
		if err := json.Unmarshal(responseBody, &flashbotsResp); err != nil {
			lastErr = fmt.Errorf("failed to unmarshal response: %w", err)
			continue
		}

		// Check for Flashbots error
		if flashbotsResp.Error != nil {
			lastErr = fmt.Errorf("Flashbots error %d: %s", flashbotsResp.Error.Code, flashbotsResp.Error.Message)
			continue
		}

		fc.logger.Debug("Flashbots request successful",
			zap.String("method", method),
			zap.Int("attempt", attempt+1))

		return &flashbotsResp, nil
	}

	return nil, fmt.Errorf("all retry attempts failed, last error: %w", lastErr)
}

// generateSignature generates a signature for Flashbots authentication
func (fc *FlashbotsClient) generateSignature(body []byte) string {
	// In a real implementation, this would use proper cryptographic signing
	// with the user's private key. For this demo, we'll use a placeholder.
	//
	// The actual implementation would:
	// 1. Hash the request body
	// 2. Sign the hash with the user's private key
	// 3. Return the signature in the required format

	return "0x" + hex.EncodeToString(body[:32]) // Placeholder
}

// generateRequestID generates a unique request ID
func (fc *FlashbotsClient) generateRequestID() int {
	bytes := make([]byte, 4)
	rand.Read(bytes)

	id := 0
	for _, b := range bytes {
		id = id*256 + int(b)
	}

	return id
}

// IsHealthy checks if the Flashbots relay is healthy
func (fc *FlashbotsClient) IsHealthy(ctx context.Context) bool {
	// Simple health check by making a lightweight request
	_, err := fc.makeRequest(ctx, "eth_blockNumber", nil)
	return err == nil
}

// GetRecommendedGasPrice gets recommended gas price from Flashbots
func (fc *FlashbotsClient) GetRecommendedGasPrice(ctx context.Context) (string, error) {
	response, err := fc.makeRequest(ctx, "eth_gasPrice", nil)
	if err != nil {
		return "", fmt.Errorf("failed to get gas price: %w", err)
	}

	gasPrice, ok := response.Result.(string)
	if !ok {
		return "", fmt.Errorf("invalid gas price response format")
	}

	return gasPrice, nil
}

// EstimateBundleGas estimates gas usage for a bundle
func (fc *FlashbotsClient) EstimateBundleGas(ctx context.Context, bundle *FlashbotsBundle) (uint64, error) {
	// Simulate the bundle to get gas estimation
	result, err := fc.SimulateBundle(ctx, bundle)
	if err != nil {
		return 0, fmt.Errorf("failed to simulate bundle for gas estimation: %w", err)
	}

	if !result.Success {
		return 0, fmt.Errorf("bundle simulation failed: %s", result.Error)
	}

	return result.GasUsed, nil
}
