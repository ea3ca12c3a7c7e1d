// ABOUTME: CLI command listing the set collection for a date and exercise.
// ABOUTME: Resolves against the server first, cache or defaults second.
package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/HPsm01/FIT-AI-11-04/internal/lifecycle"
	"github.com/HPsm01/FIT-AI-11-04/internal/models"
	syncpkg "github.com/HPsm01/FIT-AI-11-04/internal/sync"
)

var setsCmd = &cobra.Command{
	Use:     "sets",
	Aliases: []string{"ls"},
	Short:   "Show the set collection for a date and exercise",
	Long: `Show the set collection for the selected date and exercise.

The server is queried first; when it has nothing for the day, a cached
snapshot (if any) is shown instead. Sets pending AI analysis are marked.

Examples:
  fitai sets
  fitai sets --date 2025-10-20 --exercise deadlift`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		outcome := resolver.Load(cmd.Context())
		key := sess.Key()

		if outcome == syncpkg.OutcomeCache {
			color.Yellow("⚠ Server had no data for %s - showing cached snapshot", key.Date)
		}

		fmt.Printf("%s · %s\n", key.Date, key.Exercise.Label())
		printSets(sess.ActiveSets())
		fmt.Printf("\nTotal reps: %d\n", sess.TotalReps())
		return nil
	},
}

// printSets renders a collection in list form.
func printSets(sets []models.ExerciseSet) {
	faint := color.New(color.Faint)
	for _, set := range sets {
		weight := set.Weight
		if weight == "" {
			weight = "-"
		} else {
			weight += " kg"
		}

		line := fmt.Sprintf("  set %d  %s", set.SetNumber, padRight(weight, 8))
		if set.Reps > 0 {
			line += fmt.Sprintf("  %d reps", set.Reps)
		}

		switch lifecycle.StateOf(set) {
		case lifecycle.Analyzed:
			fmt.Printf("%s  %s\n", line, color.GreenString("✓ %s", set.Feedback.Headline()))
		case lifecycle.LockedPendingAnalysis:
			fmt.Printf("%s  %s\n", line, color.YellowString("… analysis pending"))
		default:
			fmt.Printf("%s  %s\n", line, faint.Sprint("editable"))
		}
	}
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

func init() {
	rootCmd.AddCommand(setsCmd)
}
