// Package quotes adapts the teacher's internal/defi Jupiter aggregator
// client to the engine's ports.QuoteProvider consumed interface.
package quotes

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/DimaJoyti/go-coffee/solana-engine/internal/defi"
	"github.com/DimaJoyti/go-coffee/solana-engine/internal/engine/ports"
)

// JupiterAdapter wraps defi.JupiterClient to satisfy ports.QuoteProvider.
// A quote's Plan token is an opaque key into an in-memory route cache,
// since Jupiter routes don't survive a round trip through a plain string.
type JupiterAdapter struct {
	client *defi.JupiterClient
	wallet string

	mu     sync.Mutex
	routes map[string]*defi.JupiterRoute
}

// NewJupiterAdapter builds a QuoteProvider backed by Jupiter's v6 API.
// wallet is the user public key swap transactions are built for.
func NewJupiterAdapter(client *defi.JupiterClient, wallet string) *JupiterAdapter {
	return &JupiterAdapter{client: client, wallet: wallet, routes: make(map[string]*defi.JupiterRoute)}
}

func (a *JupiterAdapter) GetQuote(ctx context.Context, inputMint, outputMint string, amount decimal.Decimal, slippageBps int) (ports.Quote, error) {
	route, err := a.client.GetQuote(ctx, inputMint, outputMint, amount, slippageBps)
	if err != nil {
		return ports.Quote{}, fmt.Errorf("quotes.JupiterAdapter: %w", err)
	}

	out, err := decimal.NewFromString(route.OutAmount)
	if err != nil {
		return ports.Quote{}, fmt.Errorf("quotes.JupiterAdapter: parse out amount: %w", err)
	}
	impact, err := decimal.NewFromString(route.PriceImpactPct)
	if err != nil {
		impact = decimal.Zero
	}

	plan := uuid.NewString()
	a.mu.Lock()
	a.routes[plan] = route
	a.mu.Unlock()

	return ports.Quote{
		InputAmount:  amount,
		OutputAmount: out,
		PriceImpact:  impact,
		Plan:         plan,
	}, nil
}

func (a *JupiterAdapter) BuildSwap(ctx context.Context, plan string) ([]string, error) {
	a.mu.Lock()
	route, ok := a.routes[plan]
	delete(a.routes, plan)
	a.mu.Unlock()
	if !ok {
		return nil, fmt.Errorf("quotes.JupiterAdapter: unknown plan %q", plan)
	}

	swap, err := a.client.GetSwapTransaction(ctx, route, a.wallet)
	if err != nil {
		return nil, fmt.Errorf("quotes.JupiterAdapter: build swap: %w", err)
	}
	return []string{swap.SwapTransaction}, nil
}
