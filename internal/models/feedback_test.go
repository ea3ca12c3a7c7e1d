// ABOUTME: Tests for the Feedback union and its memo round-trip.
// ABOUTME: Covers the fixed placeholder strings and structured record decoding.
package models

import (
	"encoding/json"
	"testing"
)

func TestParseMemoKinds(t *testing.T) {
	tests := []struct {
		name string
		memo string
		kind FeedbackKind
	}{
		{"empty", "", FeedbackNone},
		{"no feedback marker", NoFeedbackMemo, FeedbackNone},
		{"pending marker", PendingMemo, FeedbackPending},
		{"structured", `{"headline":"무릎이 안쪽으로 모입니다","positives":["깊이 좋음"],"improvements":["무릎 정렬"],"action_items":["밴드 스쿼트"]}`, FeedbackStructured},
		{"plain text", "허리를 곧게 펴세요", FeedbackPlain},
		{"whitespace only", "   ", FeedbackNone},
		{"malformed json falls back to plain", `{"headline":`, FeedbackPlain},
		{"json without headline is plain", `{"positives":["ok"]}`, FeedbackPlain},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := ParseMemo(tt.memo)
			if f.Kind != tt.kind {
				t.Errorf("ParseMemo(%q).Kind = %d, want %d", tt.memo, f.Kind, tt.kind)
			}
		})
	}
}

func TestParseMemoStructuredFields(t *testing.T) {
	memo := `{"headline":"깊이가 부족합니다","positives":["그립 안정적"],"improvements":["고관절 가동성"],"action_items":["박스 스쿼트 3x5"]}`
	f := ParseMemo(memo)

	if f.Kind != FeedbackStructured {
		t.Fatalf("Kind = %d, want structured", f.Kind)
	}
	if f.Structured.Headline != "깊이가 부족합니다" {
		t.Errorf("Headline = %q", f.Structured.Headline)
	}
	if len(f.Structured.ActionItems) != 1 || f.Structured.ActionItems[0] != "박스 스쿼트 3x5" {
		t.Errorf("ActionItems = %v", f.Structured.ActionItems)
	}
}

func TestMemoRoundTrip(t *testing.T) {
	feedbacks := []Feedback{
		{},
		PendingFeedback(),
		PlainFeedback("상체 각도를 유지하세요"),
		StructuredFeedback(&AIFeedback{
			Headline:     "전반적으로 양호",
			Positives:    []string{"바 경로 일정"},
			Improvements: []string{"호흡"},
			ActionItems:  []string{"복압 연습"},
		}),
	}

	for _, f := range feedbacks {
		got := ParseMemo(f.Memo())
		if got.Kind != f.Kind {
			t.Errorf("round trip of kind %d gave kind %d", f.Kind, got.Kind)
		}
		if got.Headline() != f.Headline() {
			t.Errorf("round trip headline %q != %q", got.Headline(), f.Headline())
		}
	}
}

func TestAnalyzed(t *testing.T) {
	if (Feedback{}).Analyzed() {
		t.Error("none should not be analyzed")
	}
	if PendingFeedback().Analyzed() {
		t.Error("pending should not be analyzed")
	}
	if !PlainFeedback("text").Analyzed() {
		t.Error("plain should be analyzed")
	}
	if !StructuredFeedback(&AIFeedback{Headline: "h"}).Analyzed() {
		t.Error("structured should be analyzed")
	}
}

func TestPendingMemoExactString(t *testing.T) {
	// The placeholder must match the server's echo byte for byte.
	if got := PendingFeedback().Memo(); got != "영상 업로드 완료 - 분석 대기 중..." {
		t.Errorf("pending memo = %q", got)
	}
}

func TestFeedbackJSON(t *testing.T) {
	set := ExerciseSet{SetNumber: 1, Weight: "80", Feedback: PendingFeedback()}

	data, err := json.Marshal(set)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var back ExerciseSet
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if back.Feedback.Kind != FeedbackPending {
		t.Errorf("Feedback.Kind = %d, want pending", back.Feedback.Kind)
	}

	// The cache payload stores the memo string under the legacy key.
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatalf("unmarshal raw: %v", err)
	}
	if raw["memo"] != PendingMemo {
		t.Errorf("memo field = %v, want pending placeholder", raw["memo"])
	}
}
