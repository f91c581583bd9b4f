package model

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func baseOpportunity() Opportunity {
	now := time.Now()
	return Opportunity{
		ID:             "o1",
		Kind:           KindCrossVenue,
		Symbols:        []string{"SOL"},
		Venues:         []string{"A", "B"},
		ExpectedProfit: decimal.NewFromInt(1),
		Confidence:     0.5,
		CreatedAt:      now,
		Deadline:       now.Add(time.Minute),
	}
}

func TestOpportunity_Validate_RejectsDeadlineNotAfterCreatedAt(t *testing.T) {
	o := baseOpportunity()
	o.Deadline = o.CreatedAt

	assert.Error(t, o.Validate())
}

func TestOpportunity_Validate_RejectsNegativeExpectedProfit(t *testing.T) {
	o := baseOpportunity()
	o.ExpectedProfit = decimal.NewFromInt(-1)

	assert.Error(t, o.Validate())
}

func TestOpportunity_Validate_RejectsOutOfRangeConfidence(t *testing.T) {
	o := baseOpportunity()
	o.Confidence = 1.5
	assert.Error(t, o.Validate())

	o.Confidence = -0.1
	assert.Error(t, o.Validate())
}

func TestOpportunity_Validate_EnforcesArityPerKind(t *testing.T) {
	tri := baseOpportunity()
	tri.Kind = KindTriangular
	tri.Symbols = []string{"X", "Y"}
	tri.Venues = []string{"A", "B", "C"}
	assert.Error(t, tri.Validate())

	tri.Symbols = []string{"X", "Y", "Z"}
	assert.NoError(t, tri.Validate())

	snipe := baseOpportunity()
	snipe.Kind = KindFlashLoanSnipe
	snipe.FlashLoanAmount = nil
	assert.Error(t, snipe.Validate())

	amt := decimal.NewFromInt(1)
	snipe.FlashLoanAmount = &amt
	assert.NoError(t, snipe.Validate())
}

func TestOpportunity_Validate_RejectsUnknownKind(t *testing.T) {
	o := baseOpportunity()
	o.Kind = "Bogus"
	assert.Error(t, o.Validate())
}

func TestOpportunity_IsExpired_BoundaryAtExactDeadline(t *testing.T) {
	o := baseOpportunity()
	assert.True(t, o.IsExpired(o.Deadline), "deadline == now must be Expired, never executable")
	assert.False(t, o.IsExpired(o.Deadline.Add(-time.Nanosecond)))
	assert.True(t, o.IsExpired(o.Deadline.Add(time.Nanosecond)))
}

func TestUrgency_BonusAndFeeMultiplierOrdering(t *testing.T) {
	urgencies := []Urgency{UrgencyLow, UrgencyNormal, UrgencyHigh, UrgencyCritical}
	for i := 1; i < len(urgencies); i++ {
		assert.True(t, urgencies[i].Bonus().GreaterThan(urgencies[i-1].Bonus()))
		assert.True(t, urgencies[i].FeeMultiplier().GreaterThan(urgencies[i-1].FeeMultiplier()))
	}
}
