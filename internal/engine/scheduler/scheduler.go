// Package scheduler implements the Priority Scheduler (§4.1): a bounded,
// max-priority queue of admitted opportunities with deterministic
// tie-breaking and non-blocking backpressure.
package scheduler

import (
	"container/heap"
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/DimaJoyti/go-coffee/solana-engine/internal/engine/clockwork"
	"github.com/DimaJoyti/go-coffee/solana-engine/internal/engine/metrics"
	"github.com/DimaJoyti/go-coffee/solana-engine/internal/engine/model"
	"github.com/DimaJoyti/go-coffee/solana-engine/pkg/logger"
)

// RejectReason enumerates why Submit refused an opportunity.
type RejectReason string

const (
	RejectDeadlinePassed RejectReason = "DeadlinePassed"
	RejectQueueFull      RejectReason = "QueueFull"
	RejectHalted         RejectReason = "Halted"
)

// SubmitResult is returned by Submit.
type SubmitResult struct {
	Accepted bool
	Reason   RejectReason
}

// HaltChecker reports whether the risk engine currently has the global
// circuit open (§4.1 "risk engine reports globally halted").
type HaltChecker interface {
	IsHalted() bool
}

// Config tunes scoring and capacity (§6 scheduler.capacity).
type Config struct {
	Capacity int
	// AgeCap bounds the age penalty's normalization (§4.1 age_penalty formula).
	AgeCap time.Duration
}

func DefaultConfig() Config {
	return Config{Capacity: 10000, AgeCap: 60 * time.Second}
}

type item struct {
	opp      *model.Opportunity
	priority float64
	index    int
}

// pqueue is a container/heap max-heap on priority with the §4.1 tie-break:
// deadline ascending, then created_at ascending, then id.
type pqueue []*item

func (pq pqueue) Len() int { return len(pq) }

func (pq pqueue) Less(i, j int) bool {
	a, b := pq[i], pq[j]
	if a.priority != b.priority {
		return a.priority > b.priority // max-heap
	}
	if !a.opp.Deadline.Equal(b.opp.Deadline) {
		return a.opp.Deadline.Before(b.opp.Deadline)
	}
	if !a.opp.CreatedAt.Equal(b.opp.CreatedAt) {
		return a.opp.CreatedAt.Before(b.opp.CreatedAt)
	}
	return a.opp.ID < b.opp.ID
}

func (pq pqueue) Swap(i, j int) {
	pq[i], pq[j] = pq[j], pq[i]
	pq[i].index = i
	pq[j].index = j
}

func (pq *pqueue) Push(x any) {
	it := x.(*item)
	it.index = len(*pq)
	*pq = append(*pq, it)
}

func (pq *pqueue) Pop() any {
	old := *pq
	n := len(old)
	it := old[n-1]
	old[n-1] = nil
	it.index = -1
	*pq = old[:n-1]
	return it
}

// Scheduler is the single owner of the priority queue (§3 Ownership).
type Scheduler struct {
	cfg     Config
	clock   clockwork.Clock
	halt    HaltChecker
	metrics metrics.Sink
	log     *logger.Logger

	mu    sync.Mutex
	queue pqueue
	ready chan struct{}
}

// New builds a Scheduler. halt and metrics may be nil in tests that don't
// exercise those paths.
func New(cfg Config, clock clockwork.Clock, halt HaltChecker, m metrics.Sink, log *logger.Logger) *Scheduler {
	s := &Scheduler{
		cfg:     cfg,
		clock:   clock,
		halt:    halt,
		metrics: m,
		log:     log,
		ready:   make(chan struct{}, 1),
	}
	heap.Init(&s.queue)
	return s
}

// MevRiskAssessor scores an opportunity's MEV exposure for priority scoring.
type MevRiskAssessor func(o *model.Opportunity) model.MevRisk

// Score computes the §4.1 priority formula, clamped to [0,1].
func Score(o *model.Opportunity, now time.Time, ageCap time.Duration, mevRisk model.MevRisk) float64 {
	score := 0.0
	score += o.Urgency.Bonus().InexactFloat64()
	score += o.Confidence * 0.2
	if mevRisk == model.MevRiskHigh {
		score -= 0.2
	}
	if ageCap > 0 {
		age := now.Sub(o.CreatedAt).Seconds()
		agePenalty := age / ageCap.Seconds()
		if agePenalty > 0.3 {
			agePenalty = 0.3
		}
		if agePenalty < 0 {
			agePenalty = 0
		}
		score -= agePenalty
	}
	if score < 0 {
		score = 0
	}
	if score > 1 {
		score = 1
	}
	return score
}

// Submit admits an opportunity, rejecting on expired deadline, a full queue,
// or a global halt. It never blocks the caller (§4.1 "must NOT block
// producers on capacity").
func (s *Scheduler) Submit(o *model.Opportunity, mevRisk model.MevRisk) SubmitResult {
	now := s.clock.Now()
	if s.metrics != nil {
		s.metrics.IncOpportunitySubmitted(string(o.Kind))
	}

	if o.IsExpired(now) {
		s.reject(RejectDeadlinePassed)
		return SubmitResult{Accepted: false, Reason: RejectDeadlinePassed}
	}
	if s.halt != nil && s.halt.IsHalted() {
		s.reject(RejectHalted)
		return SubmitResult{Accepted: false, Reason: RejectHalted}
	}

	s.mu.Lock()
	if s.cfg.Capacity > 0 && s.queue.Len() >= s.cfg.Capacity {
		s.mu.Unlock()
		s.reject(RejectQueueFull)
		return SubmitResult{Accepted: false, Reason: RejectQueueFull}
	}
	priority := Score(o, now, s.cfg.AgeCap, mevRisk)
	heap.Push(&s.queue, &item{opp: o, priority: priority})
	s.mu.Unlock()

	select {
	case s.ready <- struct{}{}:
	default:
	}
	return SubmitResult{Accepted: true}
}

func (s *Scheduler) reject(reason RejectReason) {
	if s.metrics != nil {
		s.metrics.IncOpportunityRejected(string(reason))
	}
}

// Next blocks cooperatively until an opportunity is available or ctx is done.
func (s *Scheduler) Next(ctx context.Context) (*model.Opportunity, error) {
	for {
		s.mu.Lock()
		if s.queue.Len() > 0 {
			it := heap.Pop(&s.queue).(*item)
			s.mu.Unlock()
			return it.opp, nil
		}
		s.mu.Unlock()

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-s.ready:
			// loop and re-check
		}
	}
}

// Len reports the current queue depth.
func (s *Scheduler) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.queue.Len()
}

// ExpireSweep purges entries whose deadline has passed, emitting a metric
// per expiry (§4.1).
func (s *Scheduler) ExpireSweep() int {
	now := s.clock.Now()
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.queue[:0]
	expired := 0
	for _, it := range s.queue {
		if it.opp.IsExpired(now) {
			expired++
			if s.metrics != nil {
				s.metrics.IncOpportunityRejected("Expired")
			}
			continue
		}
		kept = append(kept, it)
	}
	s.queue = kept
	heap.Init(&s.queue)
	if expired > 0 && s.log != nil {
		s.log.Warn(fmt.Sprintf("expiry sweep purged %d stale opportunities", expired))
	}
	return expired
}

// RunExpirySweeper runs ExpireSweep on a ticker until ctx is cancelled,
// following the teacher's ticker+select loop idiom.
func (s *Scheduler) RunExpirySweeper(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.ExpireSweep()
		}
	}
}
