package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DimaJoyti/go-coffee/solana-engine/internal/engine/clockwork"
	"github.com/DimaJoyti/go-coffee/solana-engine/internal/engine/model"
)

func opp(id string, urgency model.Urgency, confidence float64, createdAt, deadline time.Time) *model.Opportunity {
	return &model.Opportunity{
		ID:             id,
		Kind:           model.KindManualTarget,
		Urgency:        urgency,
		Confidence:     confidence,
		ExpectedProfit: decimal.NewFromFloat(1),
		CreatedAt:      createdAt,
		Deadline:       deadline,
	}
}

// Scenario 1 from SPEC_FULL.md §8: Normal urgency, confidence 0.8, no MEV
// penalty, zero age: 0 + 0.1 + 0.16 - 0 - 0 = 0.26.
func TestScore_TriangularScenarioLiteralValue(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	o := opp("o1", model.UrgencyNormal, 0.8, now, now.Add(time.Minute))

	got := Score(o, now, 60*time.Second, model.MevRiskLow)

	assert.InDelta(t, 0.26, got, 1e-9)
}

func TestScore_ClampedToUnitInterval(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	high := opp("o1", model.UrgencyCritical, 1.0, now, now.Add(time.Minute))
	assert.LessOrEqual(t, Score(high, now, 60*time.Second, model.MevRiskLow), 1.0)

	stale := opp("o2", model.UrgencyLow, 0.0, now.Add(-10*time.Hour), now.Add(time.Minute))
	got := Score(stale, now, 60*time.Second, model.MevRiskHigh)
	assert.GreaterOrEqual(t, got, 0.0)
	assert.Equal(t, 0.0, got)
}

func TestScore_HighMevRiskPenalty(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	o := opp("o1", model.UrgencyNormal, 0.8, now, now.Add(time.Minute))

	withoutMev := Score(o, now, 60*time.Second, model.MevRiskLow)
	withMev := Score(o, now, 60*time.Second, model.MevRiskHigh)

	assert.InDelta(t, withoutMev-0.2, withMev, 1e-9)
}

func TestSubmit_RejectsExpiredOpportunity(t *testing.T) {
	clock := clockwork.NewFakeClock(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	s := New(DefaultConfig(), clock, nil, nil, nil)

	o := opp("expired", model.UrgencyNormal, 0.5, clock.Now().Add(-time.Hour), clock.Now().Add(-time.Minute))

	result := s.Submit(o, model.MevRiskLow)

	require.False(t, result.Accepted)
	assert.Equal(t, RejectDeadlinePassed, result.Reason)
	assert.Equal(t, 0, s.Len())
}

type fakeHalt struct{ halted bool }

func (f fakeHalt) IsHalted() bool { return f.halted }

func TestSubmit_RejectsWhenHalted(t *testing.T) {
	clock := clockwork.NewFakeClock(time.Now())
	s := New(DefaultConfig(), clock, fakeHalt{halted: true}, nil, nil)

	o := opp("o1", model.UrgencyNormal, 0.5, clock.Now(), clock.Now().Add(time.Hour))
	result := s.Submit(o, model.MevRiskLow)

	require.False(t, result.Accepted)
	assert.Equal(t, RejectHalted, result.Reason)
}

// Boundary behavior (§8): queue at exact capacity rejects with QueueFull.
func TestSubmit_RejectsAtExactCapacity(t *testing.T) {
	clock := clockwork.NewFakeClock(time.Now())
	cfg := Config{Capacity: 2, AgeCap: 60 * time.Second}
	s := New(cfg, clock, nil, nil, nil)

	for i := 0; i < 2; i++ {
		o := opp(string(rune('a'+i)), model.UrgencyNormal, 0.5, clock.Now(), clock.Now().Add(time.Hour))
		result := s.Submit(o, model.MevRiskLow)
		require.True(t, result.Accepted)
	}

	overflow := opp("overflow", model.UrgencyNormal, 0.5, clock.Now(), clock.Now().Add(time.Hour))
	result := s.Submit(overflow, model.MevRiskLow)

	require.False(t, result.Accepted)
	assert.Equal(t, RejectQueueFull, result.Reason)
	assert.Equal(t, 2, s.Len())
}

func TestNext_ReturnsHighestPriorityFirst(t *testing.T) {
	clock := clockwork.NewFakeClock(time.Now())
	s := New(DefaultConfig(), clock, nil, nil, nil)

	low := opp("low", model.UrgencyLow, 0.1, clock.Now(), clock.Now().Add(time.Hour))
	high := opp("high", model.UrgencyCritical, 0.9, clock.Now(), clock.Now().Add(time.Hour))

	require.True(t, s.Submit(low, model.MevRiskLow).Accepted)
	require.True(t, s.Submit(high, model.MevRiskLow).Accepted)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	first, err := s.Next(ctx)
	require.NoError(t, err)
	assert.Equal(t, "high", first.ID)

	second, err := s.Next(ctx)
	require.NoError(t, err)
	assert.Equal(t, "low", second.ID)
}

func TestNext_TieBreaksByDeadlineThenCreatedAtThenID(t *testing.T) {
	clock := clockwork.NewFakeClock(time.Now())
	s := New(DefaultConfig(), clock, nil, nil, nil)

	base := clock.Now()
	earlyDeadline := opp("z-early-deadline", model.UrgencyNormal, 0.5, base, base.Add(time.Minute))
	lateDeadline := opp("a-late-deadline", model.UrgencyNormal, 0.5, base, base.Add(time.Hour))

	require.True(t, s.Submit(lateDeadline, model.MevRiskLow).Accepted)
	require.True(t, s.Submit(earlyDeadline, model.MevRiskLow).Accepted)

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	first, err := s.Next(ctx)
	require.NoError(t, err)
	assert.Equal(t, "z-early-deadline", first.ID)
}

// Boundary behavior (§8): a deadline == now is Expired, never executed.
func TestExpireSweep_RemovesExpiredEntries(t *testing.T) {
	clock := clockwork.NewFakeClock(time.Now())
	s := New(DefaultConfig(), clock, nil, nil, nil)

	expiring := opp("expiring", model.UrgencyNormal, 0.5, clock.Now(), clock.Now().Add(time.Second))
	require.True(t, s.Submit(expiring, model.MevRiskLow).Accepted)

	clock.Advance(2 * time.Second)

	removed := s.ExpireSweep()
	assert.Equal(t, 1, removed)
	assert.Equal(t, 0, s.Len())
}
