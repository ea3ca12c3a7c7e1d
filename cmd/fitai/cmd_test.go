// ABOUTME: Tests for CLI-layer helpers.
// ABOUTME: Pure functions only; command wiring is exercised by the packages.
package main

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/HPsm01/FIT-AI-11-04/internal/api"
	"github.com/HPsm01/FIT-AI-11-04/internal/cache"
	"github.com/HPsm01/FIT-AI-11-04/internal/models"
	"github.com/HPsm01/FIT-AI-11-04/internal/notify"
)

func TestPadRight(t *testing.T) {
	if got := padRight("80 kg", 8); got != "80 kg   " {
		t.Errorf("padRight = %q", got)
	}
	if got := padRight("12345678", 8); got != "12345678" {
		t.Errorf("exact width changed: %q", got)
	}
	if got := padRight("123456789", 8); got != "123456789" {
		t.Errorf("overlong string truncated: %q", got)
	}
}

func TestFeedbackError(t *testing.T) {
	tests := []struct {
		name string
		in   error
		want string
	}{
		{"not found", fmt.Errorf("%w: 404", api.ErrVideoNotFound), "no analyzed video"},
		{"server error", fmt.Errorf("%w: 503", api.ErrServerError), "server had a problem"},
		{"malformed", fmt.Errorf("%w: empty", api.ErrMalformedResponse), "could not provide"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := feedbackError(tt.in)
			if !strings.Contains(got.Error(), tt.want) {
				t.Errorf("feedbackError = %q, want substring %q", got, tt.want)
			}
		})
	}

	// Unclassified errors pass through unchanged.
	plain := errors.New("dial tcp: timeout")
	if got := feedbackError(plain); got != plain {
		t.Errorf("unclassified error rewritten: %v", got)
	}
}

func TestExportMarkdown(t *testing.T) {
	d := models.NewDayLog()
	d.Squat[0].Weight = "80"
	d.Squat[0].Reps = 10
	d.Squat[0].VideoUploaded = true
	d.Squat[0].Feedback = models.PlainFeedback("자세 양호")
	d.Squat[0].AnalysisVideoURL = "https://bucket/result.mp4"
	d.Squat[1].Weight = "85"

	got := exportMarkdown("박승민", []cache.HistoryEntry{{Date: "2025-10-20", Log: d}})

	for _, want := range []string{
		"# Training Log - 박승민",
		"## 2025-10-20",
		"### Squat",
		"- set 1: 80 kg x 10 - 자세 양호",
		"- set 2: 85 kg",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("export missing %q in:\n%s", want, got)
		}
	}
	if strings.Contains(got, "Deadlift") {
		t.Error("exercises without logged sets must be omitted")
	}
}

func TestExportMarkdownEmpty(t *testing.T) {
	got := exportMarkdown("박승민", nil)
	if !strings.Contains(got, "No cached workout days") {
		t.Errorf("empty export = %q", got)
	}
}

func TestParseReminder(t *testing.T) {
	r, err := parseReminder("rest_day")
	if err != nil {
		t.Fatalf("parseReminder: %v", err)
	}
	if r != notify.RestDayReminder {
		t.Errorf("parseReminder = %s", r)
	}

	if _, err := parseReminder("nap"); err == nil {
		t.Error("expected error for unknown reminder")
	}
}
