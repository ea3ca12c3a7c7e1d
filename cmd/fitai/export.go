// ABOUTME: CLI command exporting cached workout history.
// ABOUTME: JSON for machines, markdown for training logs.
package main

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/HPsm01/FIT-AI-11-04/internal/cache"
	"github.com/HPsm01/FIT-AI-11-04/internal/lifecycle"
	"github.com/HPsm01/FIT-AI-11-04/internal/models"
)

var (
	exportFormat string
	exportDays   int
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export cached workout history",
	Long: `Export the cached workout history to stdout.

Formats:
  json      Machine-readable day snapshots
  markdown  A training log, one section per day

Only days present in the local cache are exported. Run 'fitai sets' on a
date first to pull it from the server.

Examples:
  fitai export --days 30 > october.json
  fitai export --format markdown --days 7`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		entries, err := store.RecentWorkoutDays(sess.UserID(), time.Now(), exportDays)
		if err != nil {
			return fmt.Errorf("scan history: %w", err)
		}

		switch exportFormat {
		case "json":
			return exportJSON(entries)
		case "markdown", "md":
			fmt.Print(exportMarkdown(sess.Username(), entries))
			return nil
		}
		return fmt.Errorf("unknown format %q (want json or markdown)", exportFormat)
	},
}

func exportJSON(entries []cache.HistoryEntry) error {
	type day struct {
		Date string        `json:"date"`
		Log  models.DayLog `json:"log"`
	}
	out := make([]day, len(entries))
	for i, e := range entries {
		out[i] = day{Date: e.Date, Log: e.Log}
	}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal export: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

func exportMarkdown(username string, entries []cache.HistoryEntry) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# Training Log - %s\n", username)

	if len(entries) == 0 {
		b.WriteString("\nNo cached workout days.\n")
		return b.String()
	}

	for _, e := range entries {
		fmt.Fprintf(&b, "\n## %s\n", e.Date)
		for _, ex := range models.AllExercises {
			sets := e.Log.Sets(ex)
			var logged []models.ExerciseSet
			for _, s := range sets {
				if s.Weight != "" {
					logged = append(logged, s)
				}
			}
			if len(logged) == 0 {
				continue
			}
			fmt.Fprintf(&b, "\n### %s\n\n", ex.Label())
			for _, s := range logged {
				fmt.Fprintf(&b, "- set %d: %s kg", s.SetNumber, s.Weight)
				if s.Reps > 0 {
					fmt.Fprintf(&b, " x %d", s.Reps)
				}
				switch lifecycle.StateOf(s) {
				case lifecycle.Analyzed:
					fmt.Fprintf(&b, " - %s", s.Feedback.Headline())
				case lifecycle.LockedPendingAnalysis:
					b.WriteString(" - analysis pending")
				}
				b.WriteString("\n")
			}
		}
	}
	return b.String()
}

func init() {
	exportCmd.Flags().StringVar(&exportFormat, "format", "json", "output format: json or markdown")
	exportCmd.Flags().IntVar(&exportDays, "days", 30, "how many days back to export")
	rootCmd.AddCommand(exportCmd)
}
