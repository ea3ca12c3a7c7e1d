// ABOUTME: CLI command listing recent workout days from the cache.
// ABOUTME: A read-only scan; no server traffic.
package main

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/HPsm01/FIT-AI-11-04/internal/models"
)

var historyDays int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent workout days from the local cache",
	Long: `List the cached days in the past week that contain at least one set
with a weight entered. Only locally seen days appear; days viewed on
another device show up after being opened here once.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		entries, err := store.RecentWorkoutDays(sess.UserID(), sess.SelectedDate(), historyDays)
		if err != nil {
			return fmt.Errorf("scan history: %w", err)
		}

		if len(entries) == 0 {
			fmt.Println("No cached workouts in the past", historyDays, "days.")
			return nil
		}

		faint := color.New(color.Faint)
		for _, entry := range entries {
			day, _ := time.Parse("2006-01-02", entry.Date)
			fmt.Printf("%s %s\n", entry.Date, faint.Sprint(day.Weekday()))
			for _, ex := range models.AllExercises {
				logged := 0
				for _, set := range entry.Log.Sets(ex) {
					if set.Weight != "" {
						logged++
					}
				}
				if logged > 0 {
					fmt.Printf("  %-12s %d set(s)\n", ex.Label(), logged)
				}
			}
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().IntVar(&historyDays, "days", 7, "how many days back to scan")
	rootCmd.AddCommand(historyCmd)
}
