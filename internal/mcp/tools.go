// ABOUTME: MCP tool implementations for the workout log.
// ABOUTME: Set listing, weight entry, upload initiation, and feedback refresh.
package mcp

import (
	"context"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/HPsm01/FIT-AI-11-04/internal/lifecycle"
	"github.com/HPsm01/FIT-AI-11-04/internal/models"
	"github.com/HPsm01/FIT-AI-11-04/internal/poller"
)

func (s *Server) registerTools() {
	// get_sets
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_sets",
		Description: "Get the set collection for a date and exercise, resolved against the server",
	}, s.handleGetSets)

	// log_weight
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "log_weight",
		Description: "Enter the weight for a set (today only, editable sets only)",
	}, s.handleLogWeight)

	// start_upload
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "start_upload",
		Description: "Lock a set for video upload and return the upload key and presigned URL",
	}, s.handleStartUpload)

	// daily_summary
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "daily_summary",
		Description: "Get the total repetition count for a date and exercise",
	}, s.handleDailySummary)

	// refresh_feedback
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "refresh_feedback",
		Description: "Re-check the server for AI feedback on pending sets",
	}, s.handleRefreshFeedback)
}

// Tool input/output types

type getSetsInput struct {
	Date     string `json:"date,omitempty" jsonschema:"description=Date (YYYY-MM-DD), defaults to the selected date"`
	Exercise string `json:"exercise,omitempty" jsonschema:"description=Exercise (deadlift, squat, bench_press)"`
}

type setOutput struct {
	SetNumber     int    `json:"set"`
	Weight        string `json:"weight,omitempty"`
	Reps          int    `json:"reps,omitempty"`
	State         string `json:"state"`
	Feedback      string `json:"feedback,omitempty"`
	VideoUploaded bool   `json:"video_uploaded"`
}

type getSetsOutput struct {
	Date      string      `json:"date"`
	Exercise  string      `json:"exercise"`
	Source    string      `json:"source"`
	TotalReps int         `json:"total_reps"`
	Sets      []setOutput `json:"sets"`
}

type logWeightInput struct {
	SetNo    int    `json:"set_no" jsonschema:"description=1-based set number,required"`
	Weight   string `json:"weight" jsonschema:"description=Weight in kg,required"`
	Exercise string `json:"exercise,omitempty" jsonschema:"description=Exercise (deadlift, squat, bench_press)"`
}

type startUploadInput struct {
	SetNo    int    `json:"set_no" jsonschema:"description=1-based set number,required"`
	Exercise string `json:"exercise,omitempty" jsonschema:"description=Exercise (deadlift, squat, bench_press)"`
}

type startUploadOutput struct {
	UploadKey    string `json:"upload_key"`
	PresignedURL string `json:"presigned_url,omitempty"`
	Message      string `json:"message"`
}

type dailySummaryInput struct {
	Date     string `json:"date,omitempty" jsonschema:"description=Date (YYYY-MM-DD), defaults to the selected date"`
	Exercise string `json:"exercise,omitempty" jsonschema:"description=Exercise (deadlift, squat, bench_press)"`
}

type dailySummaryOutput struct {
	Date      string `json:"date"`
	Exercise  string `json:"exercise"`
	TotalReps int    `json:"total_reps"`
}

type refreshFeedbackOutput struct {
	Pending int    `json:"pending"`
	Message string `json:"message"`
}

type simpleOutput struct {
	Message string `json:"message"`
}

// Tool handlers

func (s *Server) handleGetSets(ctx context.Context, req *mcp.CallToolRequest, input getSetsInput) (*mcp.CallToolResult, getSetsOutput, error) {
	if err := s.position(input.Date, input.Exercise); err != nil {
		return nil, getSetsOutput{}, err
	}

	outcome := s.resolver.Load(ctx)
	key := s.sess.Key()

	return nil, getSetsOutput{
		Date:      key.Date,
		Exercise:  string(key.Exercise),
		Source:    outcome.String(),
		TotalReps: s.sess.TotalReps(),
		Sets:      renderSets(s.sess.ActiveSets()),
	}, nil
}

func (s *Server) handleLogWeight(ctx context.Context, req *mcp.CallToolRequest, input logWeightInput) (*mcp.CallToolResult, simpleOutput, error) {
	if err := s.position("", input.Exercise); err != nil {
		return nil, simpleOutput{}, err
	}

	idx := input.SetNo - 1
	sets := s.sess.ActiveSets()
	if idx < 0 || idx >= len(sets) {
		return nil, simpleOutput{}, fmt.Errorf("set %d out of range (have %d sets)", input.SetNo, len(sets))
	}

	now := time.Now()
	if !lifecycle.CanEditWeight(sets[idx], s.sess.SelectedDate(), now) {
		return nil, simpleOutput{}, fmt.Errorf("set %d is not editable", input.SetNo)
	}

	ex := s.sess.ActiveExercise()
	if err := s.sess.UpdateSet(ex, idx, func(set *models.ExerciseSet) {
		set.Weight = input.Weight
	}); err != nil {
		return nil, simpleOutput{}, err
	}
	s.persistDay()

	return nil, simpleOutput{
		Message: fmt.Sprintf("Set %d: %s kg", input.SetNo, input.Weight),
	}, nil
}

func (s *Server) handleStartUpload(ctx context.Context, req *mcp.CallToolRequest, input startUploadInput) (*mcp.CallToolResult, startUploadOutput, error) {
	if err := s.position("", input.Exercise); err != nil {
		return nil, startUploadOutput{}, err
	}

	idx := input.SetNo - 1
	sets := s.sess.ActiveSets()
	if idx < 0 || idx >= len(sets) {
		return nil, startUploadOutput{}, fmt.Errorf("set %d out of range (have %d sets)", input.SetNo, len(sets))
	}

	now := time.Now()
	if err := lifecycle.CanUpload(sets[idx], s.sess.SelectedDate(), now); err != nil {
		return nil, startUploadOutput{}, err
	}

	ex := s.sess.ActiveExercise()
	var key string
	if err := s.sess.UpdateSet(ex, idx, func(set *models.ExerciseSet) {
		key = lifecycle.BeginUpload(set, s.sess.UserID(), s.sess.Username(), ex, now)
	}); err != nil {
		return nil, startUploadOutput{}, err
	}
	s.persistDay()

	out := startUploadOutput{
		UploadKey: key,
		Message:   fmt.Sprintf("Set %d locked for upload", input.SetNo),
	}
	if url, err := s.client.PresignUpload(ctx, key, "video/mp4"); err == nil {
		out.PresignedURL = url
	}
	return nil, out, nil
}

func (s *Server) handleDailySummary(ctx context.Context, req *mcp.CallToolRequest, input dailySummaryInput) (*mcp.CallToolResult, dailySummaryOutput, error) {
	if err := s.position(input.Date, input.Exercise); err != nil {
		return nil, dailySummaryOutput{}, err
	}

	s.resolver.Load(ctx)
	key := s.sess.Key()

	return nil, dailySummaryOutput{
		Date:      key.Date,
		Exercise:  string(key.Exercise),
		TotalReps: s.sess.TotalReps(),
	}, nil
}

func (s *Server) handleRefreshFeedback(ctx context.Context, req *mcp.CallToolRequest, input struct{}) (*mcp.CallToolResult, refreshFeedbackOutput, error) {
	s.resolver.RefreshFeedback(ctx)

	pending := 0
	for _, set := range s.sess.ActiveSets() {
		if poller.IsPending(set) {
			pending++
		}
	}

	msg := "All uploaded sets analyzed"
	if pending > 0 {
		msg = fmt.Sprintf("%d set(s) still waiting on analysis", pending)
	}
	return nil, refreshFeedbackOutput{Pending: pending, Message: msg}, nil
}

// position moves the session to the requested date/exercise before an
// operation. Empty values leave the current position alone.
func (s *Server) position(date, exercise string) error {
	if exercise != "" {
		ex, err := models.ParseExercise(exercise)
		if err != nil {
			return err
		}
		s.sess.SetExercise(ex)
	}
	if date != "" {
		t, err := time.ParseInLocation("2006-01-02", date, time.Local)
		if err != nil {
			return fmt.Errorf("parse date: %w", err)
		}
		if err := s.sess.SelectDate(t); err != nil {
			return err
		}
	}
	return nil
}

// persistDay writes the session snapshot through to the cache, best-effort.
func (s *Server) persistDay() {
	key := s.sess.Key()
	_ = s.store.SaveDayLog(s.sess.UserID(), key.Date, s.sess.DayLog())
}

func renderSets(sets []models.ExerciseSet) []setOutput {
	out := make([]setOutput, len(sets))
	for i, set := range sets {
		out[i] = setOutput{
			SetNumber:     set.SetNumber,
			Weight:        set.Weight,
			Reps:          set.Reps,
			State:         lifecycle.StateOf(set).String(),
			Feedback:      set.Feedback.Headline(),
			VideoUploaded: set.VideoUploaded,
		}
	}
	return out
}
