package model

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// OpportunityKind identifies the strategy family that produced an Opportunity.
type OpportunityKind string

const (
	KindTriangular     OpportunityKind = "Triangular"
	KindCrossVenue     OpportunityKind = "CrossVenue"
	KindStatistical    OpportunityKind = "Statistical"
	KindFlashLoanSnipe OpportunityKind = "FlashLoanSnipe"
	KindManualTarget   OpportunityKind = "ManualTarget"
)

// Urgency ranks how quickly an Opportunity should be executed.
type Urgency string

const (
	UrgencyLow      Urgency = "Low"
	UrgencyNormal   Urgency = "Normal"
	UrgencyHigh     Urgency = "High"
	UrgencyCritical Urgency = "Critical"
)

// UrgencyBonus returns the scheduler scoring bonus for a given urgency (§4.1).
func (u Urgency) Bonus() decimal.Decimal {
	switch u {
	case UrgencyLow:
		return decimal.Zero
	case UrgencyNormal:
		return decimal.NewFromFloat(0.1)
	case UrgencyHigh:
		return decimal.NewFromFloat(0.2)
	case UrgencyCritical:
		return decimal.NewFromFloat(0.3)
	default:
		return decimal.Zero
	}
}

// FeeMultiplier returns the router's urgency factor applied to priority fees (§4.2).
func (u Urgency) FeeMultiplier() decimal.Decimal {
	switch u {
	case UrgencyLow:
		return decimal.NewFromFloat(1.0)
	case UrgencyNormal:
		return decimal.NewFromFloat(1.2)
	case UrgencyHigh:
		return decimal.NewFromFloat(1.6)
	case UrgencyCritical:
		return decimal.NewFromFloat(2.0)
	default:
		return decimal.NewFromFloat(1.0)
	}
}

// MevRisk is the assessed MEV exposure of an Opportunity.
type MevRisk string

const (
	MevRiskLow    MevRisk = "Low"
	MevRiskMedium MevRisk = "Medium"
	MevRiskHigh   MevRisk = "High"
)

// Opportunity is an immutable description of a trade the engine may execute.
//
// Once published via Scheduler.Submit, an Opportunity's fields must never be
// mutated; retries and repricing construct new SubmissionPlans instead.
type Opportunity struct {
	ID               string
	Kind             OpportunityKind
	Symbols          []string
	Venues           []string
	InputAmount      decimal.Decimal
	ExpectedOutput   decimal.Decimal
	ExpectedProfit   decimal.Decimal
	MaxSlippageBps   int
	Urgency          Urgency
	Confidence       float64
	MevRisk          MevRisk
	CreatedAt        time.Time
	Deadline         time.Time
	RequiredCapital  decimal.Decimal
	FlashLoanAmount  *decimal.Decimal
	GasCost          decimal.Decimal
	Metadata         map[string]string
}

// Validate enforces the §3 data-model invariants for Opportunity.
func (o *Opportunity) Validate() error {
	if !o.Deadline.After(o.CreatedAt) {
		return fmt.Errorf("opportunity %s: deadline %s must be after created_at %s", o.ID, o.Deadline, o.CreatedAt)
	}
	if o.ExpectedProfit.IsNegative() {
		return fmt.Errorf("opportunity %s: expected_profit must be >= 0 at emission, got %s", o.ID, o.ExpectedProfit)
	}
	if o.Confidence < 0 || o.Confidence > 1 {
		return fmt.Errorf("opportunity %s: confidence must be in [0,1], got %f", o.ID, o.Confidence)
	}
	switch o.Kind {
	case KindTriangular:
		if len(o.Symbols) != 3 || len(o.Venues) != 3 {
			return fmt.Errorf("opportunity %s: Triangular requires 3 symbols and 3 venues", o.ID)
		}
	case KindCrossVenue:
		if len(o.Symbols) != 1 || len(o.Venues) != 2 {
			return fmt.Errorf("opportunity %s: CrossVenue requires 1 symbol and 2 venues", o.ID)
		}
	case KindStatistical:
		if len(o.Symbols) != 1 {
			return fmt.Errorf("opportunity %s: Statistical requires 1 symbol", o.ID)
		}
	case KindFlashLoanSnipe:
		if o.FlashLoanAmount == nil {
			return fmt.Errorf("opportunity %s: FlashLoanSnipe requires flash_loan_amount", o.ID)
		}
	case KindManualTarget:
		// no arity constraint
	default:
		return fmt.Errorf("opportunity %s: unknown kind %q", o.ID, o.Kind)
	}
	return nil
}

// IsExpired reports whether the opportunity's deadline has passed at `now`.
func (o *Opportunity) IsExpired(now time.Time) bool {
	return !now.Before(o.Deadline)
}
