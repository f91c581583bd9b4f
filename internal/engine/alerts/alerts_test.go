package alerts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_Emit_AssignsIDAndTimestampWhenUnset(t *testing.T) {
	m := NewManager(16, nil)

	m.Emit(Event{Type: Halted, Severity: SeverityCritical, Message: "halted"})

	recent := m.Recent()
	require.Len(t, recent, 1)
	assert.NotEmpty(t, recent[0].ID)
	assert.False(t, recent[0].CreatedAt.IsZero())
}

func TestManager_Emit_ForwardsToNotifier(t *testing.T) {
	var got []Event
	m := NewManager(16, func(e Event) { got = append(got, e) })

	m.Emit(Event{Type: TradeExecuted})

	require.Len(t, got, 1)
	assert.Equal(t, TradeExecuted, got[0].Type)
}

func TestManager_Recent_BoundedByMaxKeepAsRingBuffer(t *testing.T) {
	m := NewManager(3, nil)

	for i := 0; i < 5; i++ {
		m.Emit(Event{Type: TradeExecuted, Message: string(rune('a' + i))})
	}

	recent := m.Recent()
	require.Len(t, recent, 3)
	// Oldest two (a, b) must have been evicted; newest-last order preserved.
	assert.Equal(t, "c", recent[0].Message)
	assert.Equal(t, "d", recent[1].Message)
	assert.Equal(t, "e", recent[2].Message)
}

func TestManager_Recent_ReturnsACopyNotTheLiveSlice(t *testing.T) {
	m := NewManager(16, nil)
	m.Emit(Event{Type: Halted})

	recent := m.Recent()
	recent[0].Message = "mutated"

	assert.NotEqual(t, "mutated", m.Recent()[0].Message)
}

func TestNewManager_NonPositiveMaxKeepDefaults(t *testing.T) {
	m := NewManager(0, nil)
	for i := 0; i < 300; i++ {
		m.Emit(Event{Type: TradeExecuted})
	}
	assert.Len(t, m.Recent(), 256)
}
