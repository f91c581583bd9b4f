// Package ports declares the consumed interfaces (§6) that the engine core
// treats as external collaborators: quote providers, bundle submitters, the
// on-chain RPC client, and the persistence sink. Concrete implementations
// live outside the core (solanarpc adapts the teacher's Solana client;
// tests use hand-written testify mocks).
package ports

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Quote is the priced result of a QuoteProvider lookup.
type Quote struct {
	InputAmount  decimal.Decimal
	OutputAmount decimal.Decimal
	PriceImpact  decimal.Decimal
	Plan         string // opaque token consumed by BuildSwap
}

// QuoteProvider prices a prospective swap.
type QuoteProvider interface {
	GetQuote(ctx context.Context, inputMint, outputMint string, amount decimal.Decimal, slippageBps int) (Quote, error)
	BuildSwap(ctx context.Context, plan string) (transactions []string, err error)
}

// SubmitResult is returned by a BundleSubmitter's Submit call.
type SubmitResult struct {
	BundleID     string
	SubmissionMs int64
}

// ConfirmResult is the terminal status of a previously submitted bundle.
type ConfirmResult struct {
	Success       bool
	ExecutedPrice decimal.Decimal
	ExecutedQty   decimal.Decimal
	Fees          decimal.Decimal
	TxHash        string
	Err           error
}

// BundleSubmitter is implemented once per provider.
type BundleSubmitter interface {
	Name() string
	Submit(ctx context.Context, transactions []string, tip decimal.Decimal, urgency string) (SubmitResult, error)
	Confirm(ctx context.Context, bundleID string, timeout time.Duration) (ConfirmResult, error)
}

// FeeEstimate is the result of RpcClient.FeeEstimate.
type FeeEstimate struct {
	FeeLamports decimal.Decimal
	Confidence  float64
	Provider    string
}

// RpcClient is the narrow on-chain RPC contract the core consumes.
type RpcClient interface {
	Call(ctx context.Context, method string, params map[string]any) (map[string]any, error)
	FeeEstimate(ctx context.Context, urgency string) (FeeEstimate, error)
}

// PersistenceSink append-only records outcomes and periodic snapshots.
type PersistenceSink interface {
	RecordOutcome(ctx context.Context, kind string, outcome any) error
	RecordPortfolioSnapshot(ctx context.Context, snapshot any) error
}
