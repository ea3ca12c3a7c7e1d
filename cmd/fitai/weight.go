// ABOUTME: CLI commands mutating today's collection: weight entry and addset.
// ABOUTME: Both enforce the lifecycle guards before touching state.
package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/HPsm01/FIT-AI-11-04/internal/lifecycle"
	"github.com/HPsm01/FIT-AI-11-04/internal/models"
)

var weightCmd = &cobra.Command{
	Use:   "weight <set-no> <kg>",
	Short: "Enter the weight for a set",
	Long: `Enter the weight for a set.

Weight entry is only legal on today's date, and only while the set has not
been locked by an upload.

Examples:
  fitai weight 1 80
  fitai weight 3 120 --exercise deadlift`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		setNo, err := strconv.Atoi(args[0])
		if err != nil || setNo <= 0 {
			return fmt.Errorf("invalid set number %q", args[0])
		}
		if _, err := strconv.ParseFloat(args[1], 64); err != nil {
			return fmt.Errorf("invalid weight %q", args[1])
		}

		// Bring in server state first so we don't edit a set the server has
		// already locked.
		resolver.Load(cmd.Context())

		idx := setNo - 1
		sets := sess.ActiveSets()
		if idx >= len(sets) {
			return fmt.Errorf("set %d out of range (have %d sets)", setNo, len(sets))
		}

		if !lifecycle.CanEditWeight(sets[idx], sess.SelectedDate(), time.Now()) {
			return fmt.Errorf("set %d is not editable (state %s)", setNo, lifecycle.StateOf(sets[idx]))
		}

		ex := sess.ActiveExercise()
		if err := sess.UpdateSet(ex, idx, func(set *models.ExerciseSet) {
			set.Weight = args[1]
		}); err != nil {
			return err
		}
		persistDay()

		color.Green("✓ Set %d: %s kg", setNo, args[1])
		return nil
	},
}

var addSetCmd = &cobra.Command{
	Use:   "addset",
	Short: "Append an empty set to today's collection",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !lifecycle.CanAddSet(sess.SelectedDate(), time.Now()) {
			return fmt.Errorf("sets can only be added on today's date")
		}

		set := sess.AppendSet(sess.ActiveExercise())
		persistDay()

		// Pick up any server-side state for the grown collection.
		resolver.RefreshFeedback(cmd.Context())

		color.Green("✓ Added set %d", set.SetNumber)
		return nil
	},
}

// persistDay writes the session snapshot through to the cache. Best-effort,
// same as every other cache write.
func persistDay() {
	key := sess.Key()
	if err := store.SaveDayLog(sess.UserID(), key.Date, sess.DayLog()); err != nil {
		logger.Warn("cache write failed", "err", err)
	}
}

func init() {
	rootCmd.AddCommand(weightCmd)
	rootCmd.AddCommand(addSetCmd)
}
