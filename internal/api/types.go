// ABOUTME: Wire types for the workout API payloads.
// ABOUTME: Mirrors the loosely-typed upstream schema including legacy aliases.
package api

import "github.com/HPsm01/FIT-AI-11-04/internal/models"

// WorkoutsResponse is the payload of the workouts-by-date endpoint.
type WorkoutsResponse struct {
	UserID     int           `json:"user_id"`
	Date       string        `json:"date"`
	ExerciseID int           `json:"exercise_id"`
	TotalReps  int           `json:"total_reps"`
	Items      []WorkoutItem `json:"items"`
}

// WorkoutItem is one analyzed (or queued) set as the server reports it.
// The weight can arrive in three places depending on pipeline version:
// load_kg, the generic weight field, or embedded in the s3 key. The resolver
// owns the priority order.
type WorkoutItem struct {
	LoadKG     *float64           `json:"load_kg"`
	Weight     *float64           `json:"weight"`
	RepCnt     int                `json:"rep_cnt"`
	AIFeedback *models.AIFeedback `json:"ai_feedback"`
	S3Key      string             `json:"s3_key"`

	// Analysis video reference, under whichever name this server build uses.
	VideoURL         string `json:"video_url,omitempty"`
	AnalysisVideoURL string `json:"analysis_video_url,omitempty"`
	AnalyzedVideoURL string `json:"analyzed_video_url,omitempty"`
}

// ResolvedVideoURL returns the first non-empty analysis video alias.
func (it WorkoutItem) ResolvedVideoURL() string {
	switch {
	case it.VideoURL != "":
		return it.VideoURL
	case it.AnalysisVideoURL != "":
		return it.AnalysisVideoURL
	default:
		return it.AnalyzedVideoURL
	}
}

// presignResponse is the payload of the presign endpoints.
type presignResponse struct {
	URL string `json:"url"`
}

// AnalyzedURLRequest identifies one analyzed-video result by date and set.
type AnalyzedURLRequest struct {
	UserID   int
	UserName string
	DateYMD  string // YYYYMMDD
	SetNo    int
	Exercise models.Exercise
	Download bool
}
