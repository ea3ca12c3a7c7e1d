// ABOUTME: Notification preferences and daily reminder scheduling.
// ABOUTME: Three reminder types with per-user times, persisted in the cache.
package notify

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/robfig/cron"

	"github.com/HPsm01/FIT-AI-11-04/internal/cache"
)

// Reminder identifies one reminder type.
type Reminder string

const (
	WorkoutReminder Reminder = "workout"
	GoalReminder    Reminder = "goal"
	RestDayReminder Reminder = "rest_day"
)

// AllReminders lists the reminder types in display order.
var AllReminders = []Reminder{WorkoutReminder, GoalReminder, RestDayReminder}

// Title returns the user-facing reminder name.
func (r Reminder) Title() string {
	switch r {
	case WorkoutReminder:
		return "Workout reminder"
	case GoalReminder:
		return "Goal check-in"
	case RestDayReminder:
		return "Rest day reminder"
	}
	return string(r)
}

// Settings holds one user's notification preferences: an on/off toggle and a
// local HH:MM time per reminder type.
type Settings struct {
	WorkoutReminder bool `json:"workoutReminder"`
	GoalReminder    bool `json:"goalReminder"`
	RestDayReminder bool `json:"restDayReminder"`

	WorkoutTime string `json:"workoutTime"`
	GoalTime    string `json:"goalTime"`
	RestDayTime string `json:"restDayTime"`
}

// DefaultSettings enables nothing and seeds sensible times.
func DefaultSettings() Settings {
	return Settings{
		WorkoutTime: "18:00",
		GoalTime:    "21:00",
		RestDayTime: "10:00",
	}
}

// Enabled reports the toggle for one reminder type.
func (s Settings) Enabled(r Reminder) bool {
	switch r {
	case WorkoutReminder:
		return s.WorkoutReminder
	case GoalReminder:
		return s.GoalReminder
	case RestDayReminder:
		return s.RestDayReminder
	}
	return false
}

// Time returns the configured HH:MM time for one reminder type.
func (s Settings) Time(r Reminder) string {
	switch r {
	case WorkoutReminder:
		return s.WorkoutTime
	case GoalReminder:
		return s.GoalTime
	case RestDayReminder:
		return s.RestDayTime
	}
	return ""
}

// SetEnabled flips the toggle for one reminder type.
func (s *Settings) SetEnabled(r Reminder, on bool) {
	switch r {
	case WorkoutReminder:
		s.WorkoutReminder = on
	case GoalReminder:
		s.GoalReminder = on
	case RestDayReminder:
		s.RestDayReminder = on
	}
}

// SetTime updates the HH:MM time for one reminder type.
func (s *Settings) SetTime(r Reminder, hhmm string) error {
	if _, _, err := parseHHMM(hhmm); err != nil {
		return err
	}
	switch r {
	case WorkoutReminder:
		s.WorkoutTime = hhmm
	case GoalReminder:
		s.GoalTime = hhmm
	case RestDayReminder:
		s.RestDayTime = hhmm
	}
	return nil
}

// NextTrigger computes the next firing time for an HH:MM reminder: today at
// that time, rolled to tomorrow when it has already passed.
func NextTrigger(now time.Time, hhmm string) (time.Time, error) {
	h, m, err := parseHHMM(hhmm)
	if err != nil {
		return time.Time{}, err
	}
	next := time.Date(now.Year(), now.Month(), now.Day(), h, m, 0, 0, now.Location())
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next, nil
}

// CronSpec renders an HH:MM time as the daily six-field cron expression.
func CronSpec(hhmm string) (string, error) {
	h, m, err := parseHHMM(hhmm)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("0 %d %d * * *", m, h), nil
}

func parseHHMM(hhmm string) (int, int, error) {
	parts := strings.SplitN(hhmm, ":", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid time %q, want HH:MM", hhmm)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, 0, fmt.Errorf("invalid hour in %q", hhmm)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, 0, fmt.Errorf("invalid minute in %q", hhmm)
	}
	return h, m, nil
}

// Load reads one user's settings from the cache, falling back to defaults.
func Load(store *cache.Store, userID int) (Settings, error) {
	s := DefaultSettings()
	found, err := store.LoadJSON(cache.NotificationsKey(userID), &s)
	if err != nil {
		return DefaultSettings(), err
	}
	if !found {
		return DefaultSettings(), nil
	}
	return s, nil
}

// Save persists one user's settings to the cache.
func Save(store *cache.Store, userID int, s Settings) error {
	return store.SaveJSON(cache.NotificationsKey(userID), s)
}

// Scheduler fires the enabled reminders daily at their configured times.
type Scheduler struct {
	cron *cron.Cron
	log  *log.Logger
}

// NewScheduler registers every enabled reminder with the cron runner. fire
// is invoked with the reminder type on each trigger.
func NewScheduler(s Settings, fire func(Reminder), logger *log.Logger) (*Scheduler, error) {
	if logger == nil {
		logger = log.Default()
	}
	c := cron.New()
	for _, r := range AllReminders {
		if !s.Enabled(r) {
			continue
		}
		spec, err := CronSpec(s.Time(r))
		if err != nil {
			return nil, fmt.Errorf("reminder %s: %w", r, err)
		}
		reminder := r
		if err := c.AddFunc(spec, func() { fire(reminder) }); err != nil {
			return nil, fmt.Errorf("schedule %s: %w", r, err)
		}
		logger.Debug("reminder scheduled", "reminder", r, "at", s.Time(r))
	}
	return &Scheduler{cron: c, log: logger}, nil
}

// Start begins firing reminders.
func (s *Scheduler) Start() { s.cron.Start() }

// Stop halts the runner.
func (s *Scheduler) Stop() { s.cron.Stop() }
