// ABOUTME: Tests for the feedback poller FSM.
// ABOUTME: Uses short intervals and atomic counters; no sleeps longer than needed.
package poller

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/HPsm01/FIT-AI-11-04/internal/models"
)

func pendingSet() models.ExerciseSet {
	return models.ExerciseSet{
		SetNumber:     1,
		Weight:        "80",
		VideoUploaded: true,
		WeightLocked:  true,
		Feedback:      models.PendingFeedback(),
	}
}

func analyzedSet() models.ExerciseSet {
	return models.ExerciseSet{
		SetNumber:        1,
		Weight:           "80",
		VideoUploaded:    true,
		WeightLocked:     true,
		Feedback:         models.PlainFeedback("자세 양호"),
		AnalysisVideoURL: "https://bucket/result.mp4",
	}
}

func TestIsPending(t *testing.T) {
	tests := []struct {
		name string
		set  models.ExerciseSet
		want bool
	}{
		{"not uploaded", models.ExerciseSet{Weight: "80"}, false},
		{"uploaded no feedback", models.ExerciseSet{VideoUploaded: true}, true},
		{"uploaded pending placeholder", pendingSet(), true},
		{"analyzed with video url", analyzedSet(), false},
		{"analyzed but no video url yet", models.ExerciseSet{
			VideoUploaded: true,
			Feedback:      models.PlainFeedback("좋음"),
		}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsPending(tt.set); got != tt.want {
				t.Errorf("IsPending = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAnyPending(t *testing.T) {
	if AnyPending([]models.ExerciseSet{analyzedSet(), {SetNumber: 2}}) {
		t.Error("no set is pending")
	}
	if !AnyPending([]models.ExerciseSet{analyzedSet(), pendingSet()}) {
		t.Error("one pending set should trip the predicate")
	}
	if AnyPending(nil) {
		t.Error("empty collection is never pending")
	}
}

func TestEvaluateStartsAndStops(t *testing.T) {
	var ticks atomic.Int32
	p := New(func(context.Context) { ticks.Add(1) }, 10*time.Millisecond, nil)
	defer p.Stop()

	ctx := context.Background()

	p.Evaluate(ctx, []models.ExerciseSet{pendingSet()})
	if p.State() != Polling {
		t.Fatalf("state = %s, want polling", p.State())
	}

	// Let a few ticks land.
	time.Sleep(50 * time.Millisecond)
	if ticks.Load() == 0 {
		t.Error("expected refresh ticks while polling")
	}

	p.Evaluate(ctx, []models.ExerciseSet{analyzedSet()})
	if p.State() != Idle {
		t.Fatalf("state = %s, want idle", p.State())
	}

	// Final refresh fires once after the settle delay, then the tick count
	// must stay flat.
	time.Sleep(150 * time.Millisecond)
	settled := ticks.Load()
	time.Sleep(50 * time.Millisecond)
	if got := ticks.Load(); got != settled {
		t.Errorf("ticks kept arriving after idle: %d -> %d", settled, got)
	}
}

func TestFinalRefreshFiresOnce(t *testing.T) {
	var ticks atomic.Int32
	// Long interval so only the final refresh can account for ticks.
	p := New(func(context.Context) { ticks.Add(1) }, time.Hour, nil)
	defer p.Stop()

	ctx := context.Background()
	p.Evaluate(ctx, []models.ExerciseSet{pendingSet()})
	p.Evaluate(ctx, []models.ExerciseSet{analyzedSet()})

	time.Sleep(200 * time.Millisecond)
	if got := ticks.Load(); got != 1 {
		t.Errorf("final refresh count = %d, want 1", got)
	}
}

func TestNoFinalRefreshWithoutPriorPolling(t *testing.T) {
	var ticks atomic.Int32
	p := New(func(context.Context) { ticks.Add(1) }, time.Hour, nil)
	defer p.Stop()

	// Idle -> Idle: nothing was ever pending, so nothing fires.
	p.Evaluate(context.Background(), []models.ExerciseSet{analyzedSet()})

	time.Sleep(150 * time.Millisecond)
	if got := ticks.Load(); got != 0 {
		t.Errorf("refresh fired %d times from a cold idle", got)
	}
}

func TestReEvaluateReplacesTimer(t *testing.T) {
	var ticks atomic.Int32
	p := New(func(context.Context) { ticks.Add(1) }, 20*time.Millisecond, nil)
	defer p.Stop()

	ctx := context.Background()

	// Rapid re-evaluations must not stack timers: the tick rate afterwards
	// stays at one timer's cadence.
	for i := 0; i < 5; i++ {
		p.Evaluate(ctx, []models.ExerciseSet{pendingSet()})
	}

	time.Sleep(110 * time.Millisecond)
	got := ticks.Load()
	// One 20ms timer over ~110ms lands about 5 ticks; stacked timers would
	// multiply that.
	if got > 8 {
		t.Errorf("tick count %d suggests stacked timers", got)
	}
	if got == 0 {
		t.Error("expected at least one tick")
	}
}

func TestStopCancelsPolling(t *testing.T) {
	var ticks atomic.Int32
	p := New(func(context.Context) { ticks.Add(1) }, 10*time.Millisecond, nil)

	p.Evaluate(context.Background(), []models.ExerciseSet{pendingSet()})
	p.Stop()

	if p.State() != Idle {
		t.Fatalf("state after Stop = %s", p.State())
	}

	before := ticks.Load()
	time.Sleep(50 * time.Millisecond)
	if got := ticks.Load(); got != before {
		t.Errorf("ticks after Stop: %d -> %d", before, got)
	}
}

func TestContextCancellationStopsTimer(t *testing.T) {
	var ticks atomic.Int32
	p := New(func(context.Context) { ticks.Add(1) }, 10*time.Millisecond, nil)
	defer p.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	p.Evaluate(ctx, []models.ExerciseSet{pendingSet()})
	cancel()

	time.Sleep(30 * time.Millisecond)
	before := ticks.Load()
	time.Sleep(50 * time.Millisecond)
	if got := ticks.Load(); got != before {
		t.Errorf("ticks after ctx cancel: %d -> %d", before, got)
	}
}

func TestDefaultInterval(t *testing.T) {
	p := New(func(context.Context) {}, 0, nil)
	if p.interval != DefaultInterval {
		t.Errorf("interval = %v, want %v", p.interval, DefaultInterval)
	}
}
