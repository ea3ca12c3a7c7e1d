// ABOUTME: Session-scoped controller state for the workout screen.
// ABOUTME: Owns the selected date/exercise and the in-memory day snapshot.
package session

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/HPsm01/FIT-AI-11-04/internal/models"
)

// ErrFutureDate is returned when date navigation would pass today.
var ErrFutureDate = errors.New("cannot select a future date")

// Key identifies the (date, exercise) pair a fetch was issued for. In-flight
// responses are discarded when the session has moved to a different key by
// the time they arrive.
type Key struct {
	Date     string // YYYY-MM-DD
	Exercise models.Exercise
}

func (k Key) String() string {
	return fmt.Sprintf("%s/%s", k.Date, k.Exercise)
}

// Session is the single controller object holding all cross-cutting mutable
// state for one user's workout view: selected date, active exercise, the
// three set collections, and the day's total reps. All access goes through
// the mutex; readers get copies.
type Session struct {
	mu             sync.RWMutex
	userID         int
	username       string
	selectedDate   time.Time
	activeExercise models.Exercise
	dayLog         models.DayLog
	totalReps      int

	now func() time.Time
}

// New creates a session for the given user, positioned on today's date with
// squat active, holding fresh empty collections.
func New(userID int, username string) *Session {
	s := &Session{
		userID:         userID,
		username:       username,
		activeExercise: models.Squat,
		dayLog:         models.NewDayLog(),
		now:            time.Now,
	}
	s.selectedDate = s.now()
	return s
}

// WithClock overrides the time source. Test hook.
func (s *Session) WithClock(now func() time.Time) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
	s.selectedDate = now()
	return s
}

// UserID returns the session user's id.
func (s *Session) UserID() int { return s.userID }

// Username returns the session user's name.
func (s *Session) Username() string { return s.username }

// SelectedDate returns the date the view is positioned on.
func (s *Session) SelectedDate() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.selectedDate
}

// ActiveExercise returns the exercise the view is positioned on.
func (s *Session) ActiveExercise() models.Exercise {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.activeExercise
}

// Key returns the current (date, exercise) fetch key.
func (s *Session) Key() Key {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Key{Date: s.selectedDate.Format("2006-01-02"), Exercise: s.activeExercise}
}

// IsToday reports whether the selected date is the current calendar date.
// Weight entry, uploads, and new sets are only legal on today.
func (s *Session) IsToday() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return sameDay(s.selectedDate, s.now())
}

// SelectDate moves the view to another calendar date. Future dates are
// rejected: the screen can never navigate past today.
func (s *Session) SelectDate(t time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if startOfDay(t).After(startOfDay(s.now())) {
		return ErrFutureDate
	}
	s.selectedDate = t
	return nil
}

// StepDate moves the selected date by a number of days, clamped to today.
func (s *Session) StepDate(days int) error {
	s.mu.Lock()
	target := s.selectedDate.AddDate(0, 0, days)
	s.mu.Unlock()
	return s.SelectDate(target)
}

// SetExercise switches the active exercise.
func (s *Session) SetExercise(e models.Exercise) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.activeExercise = e
}

// ActiveSets returns a copy of the active exercise's collection.
func (s *Session) ActiveSets() []models.ExerciseSet {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return models.CloneSets(s.dayLog.Sets(s.activeExercise))
}

// Sets returns a copy of one exercise's collection.
func (s *Session) Sets(e models.Exercise) []models.ExerciseSet {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return models.CloneSets(s.dayLog.Sets(e))
}

// DayLog returns a deep copy of the full three-exercise snapshot.
func (s *Session) DayLog() models.DayLog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dayLog.Clone()
}

// ReplaceCollection swaps in a new collection for one exercise, leaving the
// other exercises untouched.
func (s *Session) ReplaceCollection(e models.Exercise, sets []models.ExerciseSet) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dayLog.Replace(e, models.CloneSets(sets))
}

// AdoptDayLog replaces the whole snapshot, used when falling back to a
// cached day.
func (s *Session) AdoptDayLog(d models.DayLog) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dayLog = d.Clone()
}

// ResetDayLog reinitializes all three exercises to empty collections.
func (s *Session) ResetDayLog() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dayLog = models.NewDayLog()
}

// SetTotalReps records the day's derived total repetition count.
func (s *Session) SetTotalReps(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.totalReps = n
}

// TotalReps returns the day's total repetition count.
func (s *Session) TotalReps() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.totalReps
}

// HasServerData reports whether the in-memory collection for an exercise
// already reflects a successful remote load. When true, a cached snapshot
// must not displace it: remote wins.
func (s *Session) HasServerData(e models.Exercise) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, set := range s.dayLog.Sets(e) {
		if set.VideoUploaded {
			return true
		}
	}
	return false
}

// UpdateSet applies a mutation to one set of one exercise in place.
func (s *Session) UpdateSet(e models.Exercise, idx int, fn func(*models.ExerciseSet)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sets := s.dayLog.Sets(e)
	if idx < 0 || idx >= len(sets) {
		return fmt.Errorf("set index %d out of range (have %d sets)", idx, len(sets))
	}
	fn(&sets[idx])
	return nil
}

// AppendSet grows the active exercise's collection by one empty set.
func (s *Session) AppendSet(e models.Exercise) models.ExerciseSet {
	s.mu.Lock()
	defer s.mu.Unlock()
	sets := s.dayLog.Sets(e)
	next := models.EmptySet(len(sets) + 1)
	s.dayLog.Replace(e, append(sets, next))
	return next
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
