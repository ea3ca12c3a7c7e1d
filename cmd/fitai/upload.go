// ABOUTME: CLI command initiating a set's video upload.
// ABOUTME: Locks the set, persists, and hands out the upload key + presign URL.
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

var uploadContentType string

var uploadCmd = &cobra.Command{
	Use:   "upload <set-no>",
	Short: "Lock a set and start its video upload",
	Long: `Lock a set's weight and start its video upload.

The set must have a weight entered, must not already have an uploaded
video, and the selected date must be today. On success the set is locked,
the pending-analysis narrative is attached, and the upload key plus a
presigned PUT URL are printed for the capture device.

Example:
  fitai upload 1`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		setNo, err := strconv.Atoi(args[0])
		if err != nil || setNo <= 0 {
			return fmt.Errorf("invalid set number %q", args[0])
		}

		// Sync first: the server may already know this set is uploaded.
		resolver.Load(cmd.Context())

		idx := setNo - 1
		sets := sess.ActiveSets()
		if idx >= len(sets) {
			return fmt.Errorf("set %d out of range (have %d sets)", setNo, len(sets))
		}

		now := time.Now()
		if err := lifecycle.CanUpload(sets[idx], sess.SelectedDate(), now); err != nil {
			return err
		}

		ex := sess.ActiveExercise()
		var key string
		if err := sess.UpdateSet(ex, idx, func(set *models.ExerciseSet) {
			key = lifecycle.BeginUpload(set, sess.UserID(), sess.Username(), ex, now)
		}); err != nil {
			return err
		}
		// Persist immediately: the lock must survive even if presigning fails.
		persistDay()

		color.Green("✓ Set %d locked for upload", setNo)
		fmt.Printf("  Upload key: %s\n", key)

		url, err := apiClient.PresignUpload(cmd.Context(), key, uploadContentType)
		if err != nil {
			color.Yellow("⚠ Presign failed: %v", err)
			fmt.Println("  Retry with the key above once the server is reachable.")
			return nil
		}
		fmt.Printf("  PUT URL:    %s\n", url)
		return nil
	},
}

func init() {
	uploadCmd.Flags().StringVar(&uploadContentType, "content-type", "video/mp4", "content type of the uploaded video")
	rootCmd.AddCommand(uploadCmd)
}
