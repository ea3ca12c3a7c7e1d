// ABOUTME: Feedback sum type for AI analysis results on a set.
// ABOUTME: Decoded once at the API boundary instead of ad-hoc field probing.
package models

import (
	"encoding/json"
	"strings"
)

// PendingMemo is the acknowledgement narrative attached when a video upload
// has been initiated but the analysis result has not arrived yet. The exact
// string is significant: the server echoes it back verbatim and the polling
// controller keys off it.
const PendingMemo = "영상 업로드 완료 - 분석 대기 중..."

// NoFeedbackMemo marks a server row carrying neither weight nor analysis.
const NoFeedbackMemo = "피드백 없음"

// FeedbackKind discriminates the Feedback union.
type FeedbackKind int

const (
	// FeedbackNone means no narrative is present.
	FeedbackNone FeedbackKind = iota
	// FeedbackPending means the upload was acknowledged and analysis is queued.
	FeedbackPending
	// FeedbackStructured carries a full AI analysis record.
	FeedbackStructured
	// FeedbackPlain carries a free-form advisory string.
	FeedbackPlain
)

// AIFeedback is the structured analysis record produced by the form-analysis
// pipeline.
type AIFeedback struct {
	Headline     string   `json:"headline"`
	Positives    []string `json:"positives"`
	Improvements []string `json:"improvements"`
	ActionItems  []string `json:"action_items"`
}

// Feedback is a tagged union over the possible analysis states of a set:
// none, pending placeholder, structured record, or plain advisory text.
type Feedback struct {
	Kind       FeedbackKind
	Text       string
	Structured *AIFeedback
}

// PendingFeedback returns the upload-acknowledgement placeholder.
func PendingFeedback() Feedback {
	return Feedback{Kind: FeedbackPending}
}

// StructuredFeedback wraps an AI analysis record.
func StructuredFeedback(ai *AIFeedback) Feedback {
	if ai == nil {
		return Feedback{}
	}
	return Feedback{Kind: FeedbackStructured, Structured: ai}
}

// PlainFeedback wraps a free-form advisory string.
func PlainFeedback(text string) Feedback {
	text = strings.TrimSpace(text)
	if text == "" {
		return Feedback{}
	}
	return Feedback{Kind: FeedbackPlain, Text: text}
}

// Analyzed reports whether a real analysis narrative is present, which is
// what moves a set into the analyzed lifecycle state.
func (f Feedback) Analyzed() bool {
	return f.Kind == FeedbackStructured || f.Kind == FeedbackPlain
}

// Memo renders the narrative in the storage representation: empty for none,
// the fixed placeholder while pending, the serialized record once analyzed.
func (f Feedback) Memo() string {
	switch f.Kind {
	case FeedbackPending:
		return PendingMemo
	case FeedbackStructured:
		data, err := json.Marshal(f.Structured)
		if err != nil {
			return f.Structured.Headline
		}
		return string(data)
	case FeedbackPlain:
		return f.Text
	}
	return ""
}

// Headline returns a one-line summary suitable for list output.
func (f Feedback) Headline() string {
	switch f.Kind {
	case FeedbackPending:
		return PendingMemo
	case FeedbackStructured:
		return f.Structured.Headline
	case FeedbackPlain:
		return f.Text
	}
	return ""
}

// ParseMemo decodes a stored narrative back into the union. A JSON object is
// recognized as a structured record; the fixed markers map to their kinds;
// anything else is plain text.
func ParseMemo(memo string) Feedback {
	memo = strings.TrimSpace(memo)
	switch memo {
	case "", NoFeedbackMemo:
		return Feedback{}
	case PendingMemo:
		return PendingFeedback()
	}
	if strings.HasPrefix(memo, "{") {
		var ai AIFeedback
		if err := json.Unmarshal([]byte(memo), &ai); err == nil && ai.Headline != "" {
			return StructuredFeedback(&ai)
		}
	}
	return PlainFeedback(memo)
}

// MarshalJSON stores the feedback as its memo string, keeping the cache
// payload compatible with what the original client persisted.
func (f Feedback) MarshalJSON() ([]byte, error) {
	return json.Marshal(f.Memo())
}

// UnmarshalJSON decodes a memo string back into the union.
func (f *Feedback) UnmarshalJSON(data []byte) error {
	var memo string
	if err := json.Unmarshal(data, &memo); err != nil {
		return err
	}
	*f = ParseMemo(memo)
	return nil
}
