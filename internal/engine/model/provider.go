package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Capability is a feature a submission provider supports.
type Capability string

const (
	CapabilityStandardRpc Capability = "StandardRpc"
	CapabilityBundle      Capability = "Bundle"
	CapabilityMevProtect  Capability = "MevProtect"
	CapabilityShredStream Capability = "ShredStream"
)

// Strategy is the submission strategy chosen by the router for a plan.
type Strategy string

const (
	StrategyStandard     Strategy = "Standard"
	StrategyMevProtected Strategy = "MevProtected"
	StrategyBundle       Strategy = "Bundle"
	StrategyFlashLoan    Strategy = "FlashLoan"
)

// RequiredCapability returns the capability a given strategy needs of a provider.
func (s Strategy) RequiredCapability() Capability {
	switch s {
	case StrategyBundle, StrategyFlashLoan:
		return CapabilityBundle
	case StrategyMevProtected:
		return CapabilityMevProtect
	default:
		return CapabilityStandardRpc
	}
}

// Provider describes a transaction-submission endpoint and its live health.
type Provider struct {
	Name         string
	Endpoint     string
	Region       string
	LatencyEwma  time.Duration
	SuccessEwma  float64
	Active       bool
	LastUsedAt   time.Time
	Capabilities map[Capability]struct{}
}

// HasCapability reports whether the provider advertises a capability.
func (p *Provider) HasCapability(c Capability) bool {
	_, ok := p.Capabilities[c]
	return ok
}

// SubmissionPlan is the materialized set of transactions and fee parameters
// for one execution attempt. Plans are never persisted across retries.
type SubmissionPlan struct {
	Provider      string
	Transactions  []string
	PriorityFee   decimal.Decimal
	Tip           decimal.Decimal
	Timeout       time.Duration
	SkipPreflight bool
	Strategy      Strategy
}

// ExecutionOutcome is the terminal record of one opportunity's execution attempt.
type ExecutionOutcome struct {
	Success      bool
	ExecutedPrice decimal.Decimal
	ExecutedQty   decimal.Decimal
	SlippagePct   decimal.Decimal
	ElapsedMs     int64
	Fees          decimal.Decimal
	TxHash        string
	BundleID      string
	ErrorKind     string
	ErrorMessage  string
	ProviderUsed  string
	Timestamp     time.Time
}

// ActualProfit computes realized profit net of fees. May be negative; never
// truncated to zero (§4.3).
func (o *ExecutionOutcome) ActualProfit(observedDelta decimal.Decimal) decimal.Decimal {
	return observedDelta.Sub(o.Fees)
}

// CircuitPhase is the state of a circuit breaker.
type CircuitPhase string

const (
	CircuitClosed   CircuitPhase = "Closed"
	CircuitOpen     CircuitPhase = "Open"
	CircuitHalfOpen CircuitPhase = "HalfOpen"
)

// CircuitState is the breaker state for a single scope (global or a provider name).
type CircuitState struct {
	Scope          string
	State          CircuitPhase
	FailureCount   int
	OpenedAt       time.Time
	HalfOpenProbes int
}
