// ABOUTME: Exercise enum for the three tracked lifts.
// ABOUTME: Maps between string values and the numeric IDs the upload pipeline uses.
package models

import "fmt"

// Exercise identifies one of the tracked lift types.
type Exercise string

const (
	Deadlift   Exercise = "deadlift"
	Squat      Exercise = "squat"
	BenchPress Exercise = "bench_press"
)

// AllExercises lists every tracked exercise in display order.
var AllExercises = []Exercise{Deadlift, Squat, BenchPress}

// exerciseIDs maps each exercise to the numeric code embedded in upload keys.
var exerciseIDs = map[Exercise]int{
	Deadlift:   1,
	Squat:      2,
	BenchPress: 3,
}

// ID returns the numeric exercise code used by the analysis pipeline.
// Unknown exercises fall back to squat's code, matching upstream behavior.
func (e Exercise) ID() int {
	if id, ok := exerciseIDs[e]; ok {
		return id
	}
	return exerciseIDs[Squat]
}

// Valid reports whether e is one of the tracked exercises.
func (e Exercise) Valid() bool {
	_, ok := exerciseIDs[e]
	return ok
}

// Label returns a human-readable name for display.
func (e Exercise) Label() string {
	switch e {
	case Deadlift:
		return "Deadlift"
	case Squat:
		return "Squat"
	case BenchPress:
		return "Bench Press"
	}
	return string(e)
}

// ParseExercise validates a string exercise value.
func ParseExercise(s string) (Exercise, error) {
	e := Exercise(s)
	if !e.Valid() {
		return "", fmt.Errorf("unknown exercise: %q", s)
	}
	return e, nil
}

// ExerciseByID returns the exercise for a numeric code, defaulting to squat.
func ExerciseByID(id int) Exercise {
	for e, n := range exerciseIDs {
		if n == id {
			return e
		}
	}
	return Squat
}
