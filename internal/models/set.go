// ABOUTME: ExerciseSet and DayLog models for the workout session screen.
// ABOUTME: A DayLog snapshots all three exercises' sets for one calendar date.
package models

// MinSets is the minimum number of sets shown per exercise. Collections
// shorter than this are padded with empty placeholders, never truncated.
const MinSets = 5

// ExerciseSet is one row in a workout session. Weight is kept as a string
// because it is empty until the user enters it and the upload key embeds it
// verbatim.
type ExerciseSet struct {
	SetNumber        int      `json:"set"`
	Weight           string   `json:"weight"`
	Reps             int      `json:"reps,omitempty"`
	Feedback         Feedback `json:"memo"`
	AnalysisVideoURL string   `json:"analysisVideoUrl,omitempty"`
	WeightLocked     bool     `json:"weightLocked"`
	VideoUploaded    bool     `json:"videoUploaded"`
}

// EmptySet returns a blank set with the given 1-based number.
func EmptySet(n int) ExerciseSet {
	return ExerciseSet{SetNumber: n}
}

// IsEmpty reports whether the set has no user or server data at all.
func (s ExerciseSet) IsEmpty() bool {
	return s.Weight == "" && !s.VideoUploaded && !s.WeightLocked && s.Feedback.Kind == FeedbackNone
}

// EmptySets builds the default collection of MinSets blank sets.
func EmptySets() []ExerciseSet {
	sets := make([]ExerciseSet, MinSets)
	for i := range sets {
		sets[i] = EmptySet(i + 1)
	}
	return sets
}

// PadSets extends a collection with empty placeholders up to MinSets,
// renumbering nothing: existing sets keep their numbers, padding continues
// the sequence.
func PadSets(sets []ExerciseSet) []ExerciseSet {
	for len(sets) < MinSets {
		sets = append(sets, EmptySet(len(sets)+1))
	}
	return sets
}

// CloneSets returns a copy safe to hand across goroutine boundaries.
func CloneSets(sets []ExerciseSet) []ExerciseSet {
	if len(sets) == 0 {
		return nil
	}
	dup := make([]ExerciseSet, len(sets))
	copy(dup, sets)
	return dup
}

// DayLog holds the set collections for all three exercises on one calendar
// date. It is the unit of local caching: one entry per (user, date),
// overwritten wholesale on every successful remote fetch.
type DayLog struct {
	Deadlift   []ExerciseSet `json:"deadlift"`
	Squat      []ExerciseSet `json:"squat"`
	BenchPress []ExerciseSet `json:"bench_press"`
}

// NewDayLog builds a DayLog with MinSets empty sets per exercise.
func NewDayLog() DayLog {
	return DayLog{
		Deadlift:   EmptySets(),
		Squat:      EmptySets(),
		BenchPress: EmptySets(),
	}
}

// Sets returns the collection for one exercise.
func (d *DayLog) Sets(e Exercise) []ExerciseSet {
	switch e {
	case Deadlift:
		return d.Deadlift
	case Squat:
		return d.Squat
	case BenchPress:
		return d.BenchPress
	}
	return nil
}

// Replace swaps in a new collection for one exercise, leaving the others
// untouched.
func (d *DayLog) Replace(e Exercise, sets []ExerciseSet) {
	switch e {
	case Deadlift:
		d.Deadlift = sets
	case Squat:
		d.Squat = sets
	case BenchPress:
		d.BenchPress = sets
	}
}

// Clone deep-copies the log.
func (d *DayLog) Clone() DayLog {
	return DayLog{
		Deadlift:   CloneSets(d.Deadlift),
		Squat:      CloneSets(d.Squat),
		BenchPress: CloneSets(d.BenchPress),
	}
}

// HasWorkout reports whether any exercise has at least one set with a weight
// entered. Used by the history scan.
func (d *DayLog) HasWorkout() bool {
	for _, e := range AllExercises {
		for _, s := range d.Sets(e) {
			if s.Weight != "" {
				return true
			}
		}
	}
	return false
}

// DailySummary is the derived total repetition count for one
// (user, date, exercise) triple. It is recomputed from the remote source on
// every fetch, never stored.
type DailySummary struct {
	UserID    int
	Date      string
	Exercise  Exercise
	TotalReps int
}
