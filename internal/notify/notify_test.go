// ABOUTME: Tests for notification preferences and reminder scheduling.
// ABOUTME: Covers time parsing, trigger roll-over, and cache persistence.
package notify

import (
	"testing"
	"time"

	"github.com/HPsm01/FIT-AI-11-04/internal/cache"
)

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()

	for _, r := range AllReminders {
		if s.Enabled(r) {
			t.Errorf("%s enabled by default", r)
		}
	}
	if s.Time(WorkoutReminder) != "18:00" {
		t.Errorf("workout time = %q", s.Time(WorkoutReminder))
	}
}

func TestSetTimeValidates(t *testing.T) {
	s := DefaultSettings()

	if err := s.SetTime(GoalReminder, "07:30"); err != nil {
		t.Fatalf("SetTime: %v", err)
	}
	if s.Time(GoalReminder) != "07:30" {
		t.Errorf("time = %q", s.Time(GoalReminder))
	}

	for _, bad := range []string{"25:00", "12:60", "noon", "9", ""} {
		if err := s.SetTime(GoalReminder, bad); err == nil {
			t.Errorf("SetTime(%q) accepted invalid time", bad)
		}
	}
}

func TestNextTrigger(t *testing.T) {
	now := time.Date(2025, 10, 21, 17, 0, 0, 0, time.Local)

	// Later today.
	next, err := NextTrigger(now, "18:00")
	if err != nil {
		t.Fatal(err)
	}
	if next.Day() != 21 || next.Hour() != 18 {
		t.Errorf("next = %v, want today 18:00", next)
	}

	// Already passed: rolls to tomorrow.
	next, err = NextTrigger(now, "10:00")
	if err != nil {
		t.Fatal(err)
	}
	if next.Day() != 22 || next.Hour() != 10 {
		t.Errorf("next = %v, want tomorrow 10:00", next)
	}

	// Exactly now also rolls forward.
	next, err = NextTrigger(now, "17:00")
	if err != nil {
		t.Fatal(err)
	}
	if next.Day() != 22 {
		t.Errorf("next = %v, want tomorrow", next)
	}
}

func TestCronSpec(t *testing.T) {
	spec, err := CronSpec("18:30")
	if err != nil {
		t.Fatal(err)
	}
	if spec != "0 30 18 * * *" {
		t.Errorf("spec = %q", spec)
	}

	if _, err := CronSpec("bad"); err == nil {
		t.Error("expected error for invalid time")
	}
}

func TestLoadSaveSettings(t *testing.T) {
	store, err := cache.Open(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	defer func() { _ = store.Close() }()

	// Absent: defaults.
	s, err := Load(store, 20)
	if err != nil {
		t.Fatal(err)
	}
	if s.Enabled(WorkoutReminder) {
		t.Error("expected default settings")
	}

	s.SetEnabled(WorkoutReminder, true)
	if err := s.SetTime(WorkoutReminder, "06:45"); err != nil {
		t.Fatal(err)
	}
	if err := Save(store, 20, s); err != nil {
		t.Fatal(err)
	}

	got, err := Load(store, 20)
	if err != nil {
		t.Fatal(err)
	}
	if !got.Enabled(WorkoutReminder) || got.Time(WorkoutReminder) != "06:45" {
		t.Errorf("round trip gave %+v", got)
	}

	// Another user still sees defaults.
	other, err := Load(store, 21)
	if err != nil {
		t.Fatal(err)
	}
	if other.Enabled(WorkoutReminder) {
		t.Error("settings leaked across users")
	}
}

func TestNewSchedulerSkipsDisabled(t *testing.T) {
	s := DefaultSettings()
	s.SetEnabled(GoalReminder, true)

	fired := make(chan Reminder, 1)
	sched, err := NewScheduler(s, func(r Reminder) { fired <- r }, nil)
	if err != nil {
		t.Fatalf("NewScheduler: %v", err)
	}
	sched.Start()
	sched.Stop()
}

func TestNewSchedulerRejectsBadTime(t *testing.T) {
	s := DefaultSettings()
	s.WorkoutReminder = true
	s.WorkoutTime = "nope"

	if _, err := NewScheduler(s, func(Reminder) {}, nil); err == nil {
		t.Error("expected error for invalid reminder time")
	}
}
