// Package solanarpc adapts github.com/gagliardetto/solana-go's rpc.Client to
// the engine's ports.RpcClient consumed interface (§6), grounded on
// web3-wallet-backend/pkg/blockchain/solana.go's SolanaClient wrapper style
// (rpc.Client field, CommitmentConfirmed calls, decimal conversion of
// lamport amounts).
package solanarpc

import (
	"context"
	"fmt"

	solanago "github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/shopspring/decimal"

	"github.com/DimaJoyti/go-coffee/solana-engine/internal/engine/ports"
	"github.com/DimaJoyti/go-coffee/solana-engine/pkg/logger"
)

const lamportsPerSol = 1_000_000_000

// urgencyMultiplier maps an opportunity urgency to a priority-fee multiplier
// applied over the cluster's recent prioritization fee, in the absence of a
// dedicated fee-forecast endpoint (§4.2 fee composition happens in router;
// this adapter only reports the raw estimate).
var urgencyMultiplier = map[string]float64{
	"Low":      1.0,
	"Normal":   1.5,
	"High":     2.5,
	"Critical": 5.0,
}

// Client adapts a single Solana RPC endpoint to ports.RpcClient.
type Client struct {
	rpcClient *rpc.Client
	log       *logger.Logger
	name      string
}

// New wraps an RPC endpoint URL as a ports.RpcClient.
func New(endpoint, name string, log *logger.Logger) *Client {
	return &Client{
		rpcClient: rpc.New(endpoint),
		log:       log.Named("solanarpc." + name),
		name:      name,
	}
}

// Call issues an arbitrary JSON-RPC method, for RPC calls the narrow
// FeeEstimate/Call surface doesn't name directly (e.g. GetAccountInfo,
// GetSignatureStatuses used by a BundleSubmitter's Confirm implementation).
func (c *Client) Call(ctx context.Context, method string, params map[string]any) (map[string]any, error) {
	switch method {
	case "getSlot":
		slot, err := c.rpcClient.GetSlot(ctx, rpc.CommitmentConfirmed)
		if err != nil {
			return nil, fmt.Errorf("solanarpc: getSlot: %w", err)
		}
		return map[string]any{"slot": slot}, nil
	case "getHealth":
		_, err := c.rpcClient.GetHealth(ctx)
		if err != nil {
			return map[string]any{"status": "unhealthy"}, nil
		}
		return map[string]any{"status": "ok"}, nil
	case "getBalance":
		addr, _ := params["address"].(string)
		pub, err := solanago.PublicKeyFromBase58(addr)
		if err != nil {
			return nil, fmt.Errorf("solanarpc: invalid address %q: %w", addr, err)
		}
		bal, err := c.rpcClient.GetBalance(ctx, pub, rpc.CommitmentConfirmed)
		if err != nil {
			return nil, fmt.Errorf("solanarpc: getBalance: %w", err)
		}
		lamports := decimal.NewFromInt(int64(bal.Value))
		return map[string]any{
			"lamports": bal.Value,
			"sol":      lamports.Div(decimal.NewFromInt(lamportsPerSol)).String(),
		}, nil
	default:
		return nil, fmt.Errorf("solanarpc: unsupported method %q", method)
	}
}

// FeeEstimate derives a priority-fee estimate from the cluster's recent
// prioritization fees, scaled by urgency. Grounded on SolanaClient's
// GetRecentBlockhash call pattern, swapped for GetRecentPrioritizationFees
// since fee estimation (not blockhash lookup) is what the router needs.
func (c *Client) FeeEstimate(ctx context.Context, urgency string) (ports.FeeEstimate, error) {
	fees, err := c.rpcClient.GetRecentPrioritizationFees(ctx, nil)
	if err != nil {
		return ports.FeeEstimate{}, fmt.Errorf("solanarpc: getRecentPrioritizationFees: %w", err)
	}

	var sum uint64
	for _, f := range fees {
		sum += f.PrioritizationFee
	}
	base := decimal.NewFromInt(1000) // floor when the cluster reports no recent fees
	if len(fees) > 0 {
		base = decimal.NewFromInt(int64(sum / uint64(len(fees))))
	}

	mult, ok := urgencyMultiplier[urgency]
	if !ok {
		mult = 1.0
	}

	return ports.FeeEstimate{
		FeeLamports: base.Mul(decimal.NewFromFloat(mult)),
		Confidence:  confidenceFromSampleSize(len(fees)),
		Provider:    c.name,
	}, nil
}

func confidenceFromSampleSize(n int) float64 {
	if n <= 0 {
		return 0
	}
	c := float64(n) / 150.0
	if c > 1 {
		c = 1
	}
	return c
}
