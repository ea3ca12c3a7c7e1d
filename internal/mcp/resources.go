// ABOUTME: MCP resource implementations for the workout log.
// ABOUTME: Provides fitai://today and fitai://history resources.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

func (s *Server) registerResources() {
	// fitai://today - today's full three-exercise snapshot
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         "fitai://today",
		Name:        "Today's Workout Log",
		Description: "All three exercises' sets for the selected date plus total reps",
		MIMEType:    "application/json",
	}, s.handleTodayResource)

	// fitai://history - previous cached workout days
	s.mcpServer.AddResource(&mcp.Resource{
		URI:         "fitai://history",
		Name:        "Recent Workout History",
		Description: "Cached workout days from the past week",
		MIMEType:    "application/json",
	}, s.handleHistoryResource)
}

// Resource handlers

func (s *Server) handleTodayResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	s.resolver.Load(ctx)

	key := s.sess.Key()
	result := map[string]interface{}{
		"date":       key.Date,
		"exercise":   key.Exercise,
		"total_reps": s.sess.TotalReps(),
		"log":        s.sess.DayLog(),
	}

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal today resource: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      "fitai://today",
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}

func (s *Server) handleHistoryResource(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
	entries, err := s.store.RecentWorkoutDays(s.sess.UserID(), time.Now(), 7)
	if err != nil {
		return nil, fmt.Errorf("scan history: %w", err)
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal history resource: %w", err)
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      "fitai://history",
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}, nil
}
