// ABOUTME: Finite-state poller that keeps feedback current for pending sets.
// ABOUTME: Idle <-> Polling, driven by the pending predicate, one live timer max.
package poller

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/HPsm01/FIT-AI-11-04/internal/models"
)

const (
	// DefaultInterval is the fixed refresh cadence while any set is pending.
	DefaultInterval = 10 * time.Second
	// settleDelay precedes the single final refresh after polling stops, so
	// the last status change is captured once the state has settled.
	settleDelay = 100 * time.Millisecond
)

// State of the poller FSM.
type State int

const (
	// Idle: no set is pending, no timer is live.
	Idle State = iota
	// Polling: at least one set is pending and the recurring timer is live.
	Polling
)

func (s State) String() string {
	if s == Polling {
		return "polling"
	}
	return "idle"
}

// IsPending reports whether a set is still waiting on the analysis pipeline:
// its video is uploaded but either no feedback narrative has arrived, the
// narrative is still the upload-acknowledgement placeholder, or no analysis
// video reference has been resolved.
func IsPending(s models.ExerciseSet) bool {
	if !s.VideoUploaded {
		return false
	}
	switch s.Feedback.Kind {
	case models.FeedbackNone, models.FeedbackPending:
		return true
	}
	return s.AnalysisVideoURL == ""
}

// AnyPending applies the predicate over a collection.
func AnyPending(sets []models.ExerciseSet) bool {
	for _, s := range sets {
		if IsPending(s) {
			return true
		}
	}
	return false
}

// Poller owns the recurring refresh timer for one view instance. Exactly one
// timer is ever live: starting a new cycle tears down the previous one, and
// Stop cancels everything on view teardown.
type Poller struct {
	mu         sync.Mutex
	state      State
	wasPolling bool
	cancel     context.CancelFunc
	interval   time.Duration
	refresh    func(ctx context.Context)
	log        *log.Logger
}

// New builds a poller that calls refresh on every tick. A non-positive
// interval selects the default cadence.
func New(refresh func(ctx context.Context), interval time.Duration, logger *log.Logger) *Poller {
	if interval <= 0 {
		interval = DefaultInterval
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Poller{interval: interval, refresh: refresh, log: logger}
}

// State returns the current FSM state.
func (p *Poller) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Evaluate re-runs the transition rule against the current collection. Call
// it whenever the observed collection or the active exercise changes; the
// running cycle (if any) is cancelled and the decision is made from scratch.
func (p *Poller) Evaluate(ctx context.Context, sets []models.ExerciseSet) {
	pending := AnyPending(sets)

	p.mu.Lock()
	defer p.mu.Unlock()

	// Any prior timer belongs to an older view of the collection.
	p.stopLocked()

	if pending {
		p.wasPolling = true
		p.state = Polling
		p.startLocked(ctx)
		return
	}

	p.state = Idle
	if p.wasPolling {
		// Last pending set just resolved: one final refresh so the closing
		// status change is captured, then stay idle.
		p.wasPolling = false
		p.scheduleFinalRefresh(ctx)
	}
}

// Stop cancels any live timer. Call on view teardown.
func (p *Poller) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopLocked()
	p.state = Idle
}

// startLocked launches the recurring refresh goroutine under a fresh lease.
func (p *Poller) startLocked(ctx context.Context) {
	tickCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel

	p.log.Debug("polling started", "interval", p.interval)
	go func() {
		ticker := time.NewTicker(p.interval)
		defer ticker.Stop()
		for {
			select {
			case <-tickCtx.Done():
				return
			case <-ticker.C:
				p.refresh(tickCtx)
			}
		}
	}()
}

func (p *Poller) stopLocked() {
	if p.cancel != nil {
		p.cancel()
		p.cancel = nil
	}
}

// scheduleFinalRefresh fires refresh once after a short delay, under the
// same cancellation scope as a regular cycle so teardown still wins.
func (p *Poller) scheduleFinalRefresh(ctx context.Context) {
	finalCtx, cancel := context.WithCancel(ctx)
	p.cancel = cancel

	p.log.Debug("polling stopped, scheduling final refresh")
	go func() {
		defer cancel()
		timer := time.NewTimer(settleDelay)
		defer timer.Stop()
		select {
		case <-finalCtx.Done():
		case <-timer.C:
			p.refresh(finalCtx)
		}
	}()
}
