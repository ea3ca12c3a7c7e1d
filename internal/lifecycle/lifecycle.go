// ABOUTME: Lifecycle state machine for an individual exercise set.
// ABOUTME: Empty/Editable -> LockedPendingAnalysis -> Analyzed, forward only.
package lifecycle

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/HPsm01/FIT-AI-11-04/internal/models"
)

// State of one exercise set.
type State int

const (
	// Empty: no weight entered yet.
	Empty State = iota
	// Editable: weight entered, not yet uploaded.
	Editable
	// LockedPendingAnalysis: upload initiated, weight immutable, analysis queued.
	LockedPendingAnalysis
	// Analyzed: a real feedback narrative has arrived from remote.
	Analyzed
)

func (s State) String() string {
	switch s {
	case Empty:
		return "empty"
	case Editable:
		return "editable"
	case LockedPendingAnalysis:
		return "locked-pending-analysis"
	case Analyzed:
		return "analyzed"
	}
	return "unknown"
}

// Upload guard failures.
var (
	// ErrNotToday: the mutating action is only legal on the current date.
	ErrNotToday = errors.New("only allowed on today's date")
	// ErrNoWeight: an upload needs a weight entered first.
	ErrNoWeight = errors.New("weight must be entered before uploading")
	// ErrAlreadyUploaded: each set gets exactly one upload.
	ErrAlreadyUploaded = errors.New("set already has an uploaded video")
)

// StateOf derives the lifecycle state from a set's fields. Analysis wins
// over lock status: a locked set with a real narrative is Analyzed.
func StateOf(s models.ExerciseSet) State {
	if s.Feedback.Analyzed() {
		return Analyzed
	}
	if s.VideoUploaded || s.WeightLocked {
		return LockedPendingAnalysis
	}
	if strings.TrimSpace(s.Weight) == "" {
		return Empty
	}
	return Editable
}

// CanEditWeight reports whether weight entry is legal: the set must still be
// in Empty or Editable state and the selected date must be today.
func CanEditWeight(s models.ExerciseSet, selected, now time.Time) bool {
	if !sameDay(selected, now) {
		return false
	}
	st := StateOf(s)
	return st == Empty || st == Editable
}

// CanUpload checks the upload preconditions: today's date, a non-empty
// weight, and no prior upload on this set. Returns the first violated guard.
func CanUpload(s models.ExerciseSet, selected, now time.Time) error {
	if !sameDay(selected, now) {
		return ErrNotToday
	}
	if strings.TrimSpace(s.Weight) == "" {
		return ErrNoWeight
	}
	if s.VideoUploaded || s.WeightLocked {
		return ErrAlreadyUploaded
	}
	return nil
}

// CanAddSet reports whether the collection may grow: only on today's date.
func CanAddSet(selected, now time.Time) bool {
	return sameDay(selected, now)
}

// BeginUpload applies the Editable -> LockedPendingAnalysis transition in
// place: lock the weight, flag the video as uploaded, and attach the pending
// narrative. The caller persists the set and hands the returned key to the
// upload collaborator. Callers must have passed CanUpload first.
func BeginUpload(s *models.ExerciseSet, userID int, username string, exercise models.Exercise, now time.Time) string {
	s.WeightLocked = true
	s.VideoUploaded = true
	s.Feedback = models.PendingFeedback()
	return BuildUploadKey(userID, username, s.Weight, exercise, now)
}

// BuildUploadKey produces the opaque upload identifier consumed by the
// analysis pipeline:
//
//	fitvideo/{userId}_{sanitizedName}_{weightKg}_{exerciseId}_{yyyyMMddHHmmss}.mp4
func BuildUploadKey(userID int, username, weightKg string, exercise models.Exercise, ts time.Time) string {
	w := strings.TrimSpace(weightKg)
	if w == "" {
		w = "0"
	}
	return fmt.Sprintf("fitvideo/%d_%s_%s_%d_%s.mp4",
		userID, SanitizeName(username), w, exercise.ID(), Timestamp14(ts))
}

// SanitizeName strips all whitespace from a display name so upload and
// download paths land in the same folder.
func SanitizeName(name string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, name)
}

// Timestamp14 formats a time as the fixed-width yyyyMMddHHmmss token.
func Timestamp14(t time.Time) string {
	return t.Format("20060102150405")
}

// DateYMD formats a time as the compact YYYYMMDD token used by the
// analyzed-video endpoints.
func DateYMD(t time.Time) string {
	return t.Format("20060102")
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
