package defi

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"math/big"
	"sync"
	"time"

	"github.com/DimaJoyti/go-coffee/solana-engine/pkg/logger"
	"github.com/DimaJoyti/go-coffee/solana-engine/pkg/redis"
	"github.com/ethereum/go-ethereum/core/types"
	"go.uber.org/zap"
)

// MEVProtectionService provides MEV protection mechanisms
type MEVProtectionService struct {
	config  MEVProtectionConfig
	logger  *logger.Logger
	cache   redis.Client
	metrics MEVProtectionMetrics

	// Detection components
	sandwichDetector *SandwichDetector
	frontrunDetector *FrontrunDetector
	mempoolMonitor   *MempoolMonitor

	// Protection mechanisms
	flashbotsClient      *FlashbotsClient
	privateMempoolClient *PrivateMempoolClient

	// State management
	detectedAttacks map[string]*MEVDetection
	protectedTxs    map[string]*ProtectedTransaction
	mutex           sync.RWMutex
	stopChan        chan struct{}
}

// ProtectedTransaction represents a transaction with MEV protection
type ProtectedTransaction struct {
	Hash              string             `json:"hash"`
	OriginalGasPrice  *big.Int           `json:"original_gas_price"`
	ProtectedGasPrice *big.Int           `json:"protected_gas_price"`
	ProtectionLevel   MEVProtectionLevel `json:"protection_level"`
	SubmissionMethod  string             `json:"submission_method"`
	Timestamp         time.Time          `json:"timestamp"`
	Status            string             `json:"status"`
	BundleID          string             `json:"bundle_id,omitempty"`
}

// NewMEVProtectionService creates a new MEV protection service
func NewMEVProtectionService(
	config MEVProtectionConfig,
	logger *logger.Logger,
	cache redis.Client,
) *MEVProtectionService {
	service := &MEVProtectionService{
		config:          config,
		logger:          logger.Named("mev-protection"),
		cache:           cache,
		detectedAttacks: make(map[string]*MEVDetection),
		protectedTxs:    make(map[string]*ProtectedTransaction),
		stopChan:        make(chan struct{}),
	}

	// Initialize detection components
	if config.SandwichDetection {
		service.sandwichDetector = NewSandwichDetector(logger, cache)
	}
	if config.FrontrunDetection {
		service.frontrunDetector = NewFrontrunDetector(logger, cache)
	}

	// Initialize mempool monitor
	service.mempoolMonitor = NewMempoolMonitor(logger, cache)

	// Initialize protection mechanisms
	if config.UseFlashbots {
		service.flashbotsClient = NewFlashbotsClient(config.FlashbotsRelay, logger)
	}
	if config.UsePrivateMempool {
		service.privateMempoolClient = NewPrivateMempoolClient(config.PrivateMempoolEndpoint, logger)
	}

	return service
}

// Start starts the MEV protection service
func (mev *MEVProtectionService) Start(ctx context.Context) error {
	if !mev.config.Enabled {
		mev.logger.Info("MEV protection is disabled")
		return nil
	}

	mev.logger.Info("Starting MEV protection service",
		zap.String("level", string(mev.config.Level)),
		zap.Bool("flashbots", mev.config.UseFlashbots),
		zap.Bool("private_mempool", mev.config.UsePrivateMempool))

	// Start mempool monitoring
	if err := mev.mempoolMonitor.Start(ctx); err != nil {
		return fmt.Errorf("failed to start mempool monitor: %w", err)
	}

	// Start detection components
	if mev.sandwichDetector != nil {
		go mev.sandwichDetector.Start(ctx)
	}
	if mev.frontrunDetector != nil {
		go mev.frontrunDetector.Start(ctx)
	}

	// Start metrics collection
	go mev.metricsCollectionLoop(ctx)

	mev.logger.Info("MEV protection service started successfully")
	return nil
}

// Stop stops the MEV protection service
func (mev *MEVProtectionService) Stop() error {
	mev.logger.Info("Stopping MEV protection service")

	close(mev.stopChan)

	if mev.mempoolMonitor != nil {
		mev.mempoolMonitor.Stop()
	}

	mev.logger.Info("MEV protection service stopped")
	return nil
}

// ProtectTransaction protects a transaction from MEV attacks
func (mev *MEVProtectionService) ProtectTransaction(ctx context.Context, tx *types.Transaction) (*ProtectedTransaction, error) {
	if !mev.config.Enabled {
		return nil, fmt.Errorf("MEV protection is disabled")
	}

	mev.logger.Debug("Protecting transaction",
		zap.String("hash", tx.Hash().Hex()),
		zap.String("level", string(mev.config.Level)))

	// Create protected transaction record
	protectedTx := &ProtectedTransaction{
		Hash:             tx.Hash().Hex(),
		OriginalGasPrice: tx.GasPrice(),
		ProtectionLevel:  mev.config.Level,
		Timestamp:        time.Now(),
		Status:           "pending",
	}

	// Apply protection based on level
	switch mev.config.Level {
	case MEVProtectionBasic:
		return mev.applyBasicProtection(ctx, tx, protectedTx)
	case MEVProtectionAdvanced:
		return mev.applyAdvancedProtection(ctx, tx, protectedTx)
	case MEVProtectionMaximum:
		return mev.applyMaximumProtection(ctx, tx, protectedTx)
	default:
		return protectedTx, nil
	}
}

// applyBasicProtection applies basic MEV protection
func (mev *MEVProtectionService) applyBasicProtection(ctx context.Context, tx *types.Transaction, protectedTx *ProtectedTransaction) (*ProtectedTransaction, error) {
	// Increase gas price to reduce frontrunning risk
	newGasPrice := new(big.Int).Mul(tx.GasPrice(), big.NewInt(int64(mev.config.GasPriceMultiplier.IntPart())))
	protectedTx.ProtectedGasPrice = newGasPrice
	protectedTx.SubmissionMethod = "standard"

	mev.mutex.Lock()
	mev.protectedTxs[protectedTx.Hash] = protectedTx
	mev.metrics.ProtectedTransactions++
	mev.mutex.Unlock()

	return protectedTx, nil
}

// applyAdvancedProtection applies advanced MEV protection
func (mev *MEVProtectionService) applyAdvancedProtection(ctx context.Context, tx *types.Transaction, protectedTx *ProtectedTransaction) (*ProtectedTransaction, error) {
	// Check for potential MEV attacks
	if mev.sandwichDetector != nil {
		if attack := mev.sandwichDetector.DetectSandwichAttack(ctx, tx); attack != nil {
			mev.logger.Warn("Potential sandwich attack detected",
				zap.String("tx_hash", tx.Hash().Hex()),
				zap.String("attack_id", attack.ID))

			mev.recordDetection(attack)
		}
	}

	// Use private mempool if available
	if mev.config.UsePrivateMempool && mev.privateMempoolClient != nil {
		protectedTx.SubmissionMethod = "private_mempool"
		return mev.submitToPrivateMempool(ctx, tx, protectedTx)
	}

	// Fallback to basic protection
	return mev.applyBasicProtection(ctx, tx, protectedTx)
}

// applyMaximumProtection applies maximum MEV protection
func (mev *MEVProtectionService) applyMaximumProtection(ctx context.Context, tx *types.Transaction, protectedTx *ProtectedTransaction) (*ProtectedTransaction, error) {
	// Use Flashbots if available
	if mev.config.UseFlashbots && mev.flashbotsClient != nil {
		protectedTx.SubmissionMethod = "flashbots"
		return mev.submitToFlashbots(ctx, tx, protectedTx)
	}

	// Fallback to advanced protection
	return mev.applyAdvancedProtection(ctx, tx, protectedTx)
}

// submitToFlashbots submits transaction via Flashbots
func (mev *MEVProtectionService) submitToFlashbots(ctx context.Context, tx *types.Transaction, protectedTx *ProtectedTransaction) (*ProtectedTransaction, error) {
	// Create Flashbots bundle
	bundle := &FlashbotsBundle{
		ID: mev.generateBundleID(),
		Transactions: []FlashbotsTransaction{
			{
				SignedTransaction: hex.EncodeToString(tx.Data()),
				CanRevert:         false,
			},
		},
		BlockNumber: 0, // Will be set by Flashbots client
	}

	// Submit bundle
	bundleHash, err := mev.flashbotsClient.SubmitBundle(ctx, bundle)
	if err != nil {
		mev.logger.Error("Failed to submit Flashbots bundle", zap.Error(err))
		mev.metrics.FlashbotsFailures++
		// Fallback to advanced protection
		return mev.applyAdvancedProtection(ctx, tx, protectedTx)
	}

	protectedTx.BundleID = bundleHash
	protectedTx.Status = "submitted_flashbots"
	mev.metrics.FlashbotsSuccess++

	mev.mutex.Lock()
	mev.protectedTxs[protectedTx.Hash] = protectedTx
	mev.metrics.ProtectedTransactions++
	mev.mutex.Unlock()

	mev.logger.Info("Transaction submitted via Flashbots",
		zap.String("tx_hash", protectedTx.Hash),
		zap.String("bundle_id", bundleHash))

	return protectedTx, nil
}

// submitToPrivateMempool submits transaction to private mempool
func (mev *MEVProtectionService) submitToPrivateMempool(ctx context.Context, tx *types.Transaction, protectedTx *ProtectedTransaction) (*ProtectedTransaction, error) {
	err := mev.privateMempoolClient.SubmitTransaction(ctx, tx)
	if err != nil {
		mev.logger.Error("Failed to submit to private mempool", zap.Error(err))
		// Fallback to basic protection
		return mev.applyBasicProtection(ctx, tx, protectedTx)
	}

	protectedTx.Status = "submitted_private"

	mev.mutex.Lock()
	mev.protectedTxs[protectedTx.Hash] = protectedTx
	mev.metrics.ProtectedTransactions++
	mev.mutex.Unlock()

	mev.logger.Info("Transaction submitted to private mempool",
		zap.String("tx_hash", protectedTx.Hash))

	return protectedTx, nil
}

// recordDetection records a detected MEV attack
func (mev *MEVProtectionService) recordDetection(detection *MEVDetection) {
	mev.mutex.Lock()
	defer mev.mutex.Unlock()

	mev.detectedAttacks[detection.ID] = detection
	mev.metrics.DetectedAttacks++

	if detection.Prevented {
		mev.metrics.PreventedAttacks++
		mev.metrics.TotalSavings = mev.metrics.TotalSavings.Add(detection.EstimatedLoss)
	}

	// Cache detection for analysis
	detectionJSON, _ := json.Marshal(detection)
	cacheKey := fmt.Sprintf("mev:detection:%s", detection.ID)
	mev.cache.Set(context.Background(), cacheKey, string(detectionJSON), 24*time.Hour)
}

// generateBundleID generates a unique bundle ID
func (mev *MEVProtectionService) generateBundleID() string {
	bytes := make([]byte, 16)
	rand.Read(bytes)
	return hex.EncodeToString(bytes)
}

// metricsCollectionLoop collects and updates metrics
func (mev *MEVProtectionService) metricsCollectionLoop(ctx context.Context) {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-mev.stopChan:
			return
		case <-ticker.C:
			mev.updateMetrics()
		}
	}
}

// updateMetrics updates protection metrics
func (mev *MEVProtectionService) updateMetrics() {
	mev.mutex.Lock()
	defer mev.mutex.Unlock()

	mev.metrics.TotalTransactions = int64(len(mev.protectedTxs))
	mev.metrics.LastUpdate = time.Now()

	// Cache metrics
	metricsJSON, _ := json.Marshal(mev.metrics)
	mev.cache.Set(context.Background(), "mev:metrics", string(metricsJSON), 5*time.Minute)
}

// GetMetrics returns current MEV protection metrics
func (mev *MEVProtectionService) GetMetrics() MEVProtectionMetrics {
	mev.mutex.RLock()
	defer mev.mutex.RUnlock()
	return mev.metrics
}

// GetDetectedAttacks returns detected MEV attacks
func (mev *MEVProtectionService) GetDetectedAttacks() map[string]*MEVDetection {
	mev.mutex.RLock()
	defer mev.mutex.RUnlock()

	attacks := make(map[string]*MEVDetection)
	for k, v := range mev.detectedAttacks {
		attacks[k] = v
	}
	return attacks
}
