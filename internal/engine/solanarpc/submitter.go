package solanarpc

import (
	"context"
	"fmt"
	"time"

	solanago "github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/shopspring/decimal"

	"github.com/DimaJoyti/go-coffee/solana-engine/internal/engine/ports"
	"github.com/DimaJoyti/go-coffee/solana-engine/pkg/logger"
)

// StandardSubmitter submits pre-built, already-encoded transactions through
// a single RPC endpoint and polls signature status for confirmation,
// grounded on SolanaClient.SendTransaction/ConfirmTransaction's poll loop
// (web3-wallet-backend/pkg/blockchain/solana.go).
type StandardSubmitter struct {
	name       string
	rpcClient  *rpc.Client
	log        *logger.Logger
	pollEvery  time.Duration
}

// NewStandardSubmitter builds a BundleSubmitter over a raw RPC endpoint.
func NewStandardSubmitter(endpoint, name string, log *logger.Logger) *StandardSubmitter {
	return &StandardSubmitter{
		name:      name,
		rpcClient: rpc.New(endpoint),
		log:       log.Named("solanarpc.submitter." + name),
		pollEvery: 400 * time.Millisecond,
	}
}

func (s *StandardSubmitter) Name() string { return s.name }

// Submit sends the first (and, for standard submission, only) pre-encoded
// transaction in the plan. tip and urgency are accepted for interface
// conformance; a StandardSubmitter has no bundle-tip mechanism (§4.2 only
// Bundle/FlashLoan strategies route through a tip-aware submitter).
func (s *StandardSubmitter) Submit(ctx context.Context, transactions []string, tip decimal.Decimal, urgency string) (ports.SubmitResult, error) {
	if len(transactions) == 0 {
		return ports.SubmitResult{}, fmt.Errorf("solanarpc: no transactions to submit")
	}

	start := time.Now()
	sig, err := s.rpcClient.SendEncodedTransaction(ctx, transactions[0])
	if err != nil {
		return ports.SubmitResult{}, fmt.Errorf("solanarpc: submit: %w", err)
	}

	return ports.SubmitResult{
		BundleID:     sig.String(),
		SubmissionMs: time.Since(start).Milliseconds(),
	}, nil
}

// Confirm polls getSignatureStatuses until the transaction reaches
// confirmed/finalized commitment, an error status, or timeout.
func (s *StandardSubmitter) Confirm(ctx context.Context, bundleID string, timeout time.Duration) (ports.ConfirmResult, error) {
	sig, err := solanago.SignatureFromBase58(bundleID)
	if err != nil {
		return ports.ConfirmResult{}, fmt.Errorf("solanarpc: invalid signature %q: %w", bundleID, err)
	}

	deadline := time.Now().Add(timeout)
	ticker := time.NewTicker(s.pollEvery)
	defer ticker.Stop()

	for {
		statuses, err := s.rpcClient.GetSignatureStatuses(ctx, true, sig)
		if err == nil && len(statuses.Value) > 0 && statuses.Value[0] != nil {
			st := statuses.Value[0]
			if st.Err != nil {
				return ports.ConfirmResult{Success: false, Err: fmt.Errorf("solanarpc: transaction failed: %v", st.Err)}, nil
			}
			if st.ConfirmationStatus == rpc.ConfirmationStatusConfirmed || st.ConfirmationStatus == rpc.ConfirmationStatusFinalized {
				return ports.ConfirmResult{Success: true, TxHash: bundleID}, nil
			}
		}

		if time.Now().After(deadline) {
			return ports.ConfirmResult{}, fmt.Errorf("solanarpc: confirmation timeout after %s", timeout)
		}

		select {
		case <-ctx.Done():
			return ports.ConfirmResult{}, ctx.Err()
		case <-ticker.C:
		}
	}
}
