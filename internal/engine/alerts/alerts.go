// Package alerts implements the AlertSink consumed interface (§6), adapted
// from the AlertManager idiom in internal/monitoring/observability.go
// (Alert/AlertRule/AlertSeverity/AlertStatus, TriggerAlert/ResolveAlert).
package alerts

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// EventType is one of the typed alert messages named in §7.
type EventType string

const (
	TradeExecuted EventType = "TradeExecuted"
	TradeFailed   EventType = "TradeFailed"
	Halted        EventType = "Halted"
	CircuitOpened EventType = "CircuitOpened"
	CircuitClosed EventType = "CircuitClosed"
)

// Severity mirrors the teacher's AlertSeverity enum.
type Severity string

const (
	SeverityInfo     Severity = "info"
	SeverityWarning  Severity = "warning"
	SeverityCritical Severity = "critical"
)

// Event is one alert emission.
type Event struct {
	ID        string
	Type      EventType
	Severity  Severity
	Message   string
	Fields    map[string]string
	CreatedAt time.Time
}

// Sink is the AlertSink consumed interface.
type Sink interface {
	Emit(e Event)
}

// Manager is the production Sink: it keeps a bounded in-memory ring of recent
// alerts (for the `stats` operation) and forwards to an optional downstream
// notifier, matching the teacher's AlertManager.GetActiveAlerts pattern.
type Manager struct {
	mu       sync.Mutex
	recent   []Event
	maxKeep  int
	notifier func(Event)
}

// NewManager builds an alert Manager. notifier may be nil to only keep
// the in-memory ring (useful in tests).
func NewManager(maxKeep int, notifier func(Event)) *Manager {
	if maxKeep <= 0 {
		maxKeep = 256
	}
	return &Manager{maxKeep: maxKeep, notifier: notifier}
}

// Emit records an alert and forwards it to the notifier, if any.
func (m *Manager) Emit(e Event) {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.CreatedAt.IsZero() {
		e.CreatedAt = time.Now()
	}

	m.mu.Lock()
	m.recent = append(m.recent, e)
	if len(m.recent) > m.maxKeep {
		m.recent = m.recent[len(m.recent)-m.maxKeep:]
	}
	m.mu.Unlock()

	if m.notifier != nil {
		m.notifier(e)
	}
}

// Recent returns a copy of the most recently emitted alerts, newest last.
func (m *Manager) Recent() []Event {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Event, len(m.recent))
	copy(out, m.recent)
	return out
}
