// ABOUTME: Tests for the per-set lifecycle state machine.
// ABOUTME: Covers state derivation, mutation guards, and upload key format.
package lifecycle

import (
	"errors"
	"testing"
	"time"

	"github.com/HPsm01/FIT-AI-11-04/internal/models"
)

var (
	today     = time.Date(2025, 10, 21, 16, 8, 56, 0, time.Local)
	yesterday = today.AddDate(0, 0, -1)
)

func TestStateOf(t *testing.T) {
	tests := []struct {
		name string
		set  models.ExerciseSet
		want State
	}{
		{"blank", models.ExerciseSet{SetNumber: 1}, Empty},
		{"weight only", models.ExerciseSet{SetNumber: 1, Weight: "80"}, Editable},
		{"whitespace weight", models.ExerciseSet{SetNumber: 1, Weight: "  "}, Empty},
		{"uploaded pending", models.ExerciseSet{Weight: "80", VideoUploaded: true, WeightLocked: true, Feedback: models.PendingFeedback()}, LockedPendingAnalysis},
		{"locked without upload flag", models.ExerciseSet{Weight: "80", WeightLocked: true}, LockedPendingAnalysis},
		{"analyzed", models.ExerciseSet{Weight: "80", VideoUploaded: true, Feedback: models.PlainFeedback("좋은 자세")}, Analyzed},
		{"analysis wins over lock", models.ExerciseSet{Weight: "80", WeightLocked: true, VideoUploaded: true, Feedback: models.StructuredFeedback(&models.AIFeedback{Headline: "h"})}, Analyzed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StateOf(tt.set); got != tt.want {
				t.Errorf("StateOf = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestCanEditWeight(t *testing.T) {
	editable := models.ExerciseSet{SetNumber: 1, Weight: "80"}
	locked := models.ExerciseSet{SetNumber: 1, Weight: "80", WeightLocked: true}

	if !CanEditWeight(editable, today, today) {
		t.Error("editable set on today should allow weight entry")
	}
	if CanEditWeight(editable, yesterday, today) {
		t.Error("past date must block weight entry")
	}
	if CanEditWeight(locked, today, today) {
		t.Error("locked set must block weight entry")
	}
}

func TestCanUploadGuardOrder(t *testing.T) {
	tests := []struct {
		name     string
		set      models.ExerciseSet
		selected time.Time
		wantErr  error
	}{
		{"ok", models.ExerciseSet{Weight: "80"}, today, nil},
		{"not today", models.ExerciseSet{Weight: "80"}, yesterday, ErrNotToday},
		{"no weight", models.ExerciseSet{}, today, ErrNoWeight},
		{"already uploaded", models.ExerciseSet{Weight: "80", VideoUploaded: true}, today, ErrAlreadyUploaded},
		{"date beats weight", models.ExerciseSet{}, yesterday, ErrNotToday},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CanUpload(tt.set, tt.selected, today)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("CanUpload = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestCanAddSet(t *testing.T) {
	if !CanAddSet(today, today) {
		t.Error("today should allow adding sets")
	}
	if CanAddSet(yesterday, today) {
		t.Error("past dates must not allow adding sets")
	}
}

func TestBeginUpload(t *testing.T) {
	set := models.ExerciseSet{SetNumber: 1, Weight: "80"}
	key := BeginUpload(&set, 20, "박승민", models.Squat, today)

	if key != "fitvideo/20_박승민_80_2_20251021160856.mp4" {
		t.Errorf("upload key = %q", key)
	}
	if !set.WeightLocked || !set.VideoUploaded {
		t.Error("BeginUpload must lock the set and flag the upload")
	}
	if set.Feedback.Kind != models.FeedbackPending {
		t.Errorf("Feedback.Kind = %d, want pending", set.Feedback.Kind)
	}
	if StateOf(set) != LockedPendingAnalysis {
		t.Errorf("state after upload = %s", StateOf(set))
	}
}

func TestBuildUploadKey(t *testing.T) {
	tests := []struct {
		name     string
		username string
		weight   string
		exercise models.Exercise
		want     string
	}{
		{"example vector", "박승민", "80", models.Squat, "fitvideo/20_박승민_80_2_20251021160856.mp4"},
		{"name with spaces", "Kim Min Su", "100", models.Deadlift, "fitvideo/20_KimMinSu_100_1_20251021160856.mp4"},
		{"empty weight coerced", "박승민", "", models.BenchPress, "fitvideo/20_박승민_0_3_20251021160856.mp4"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := BuildUploadKey(20, tt.username, tt.weight, tt.exercise, today)
			if got != tt.want {
				t.Errorf("BuildUploadKey = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSanitizeName(t *testing.T) {
	if got := SanitizeName("박 승 민"); got != "박승민" {
		t.Errorf("SanitizeName = %q", got)
	}
	if got := SanitizeName("a\tb\nc"); got != "abc" {
		t.Errorf("SanitizeName = %q", got)
	}
}

func TestTimestampTokens(t *testing.T) {
	if got := Timestamp14(today); got != "20251021160856" {
		t.Errorf("Timestamp14 = %q", got)
	}
	if got := DateYMD(today); got != "20251021" {
		t.Errorf("DateYMD = %q", got)
	}
}
