// ABOUTME: CLI command fetching the analyzed-video URL for a set.
// ABOUTME: The one fetch path whose failures are classified for the user.
package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/HPsm01/FIT-AI-11-04/internal/api"
	"github.com/HPsm01/FIT-AI-11-04/internal/lifecycle"
)

var feedbackDownload bool

var feedbackCmd = &cobra.Command{
	Use:   "feedback <set-no>",
	Short: "Get the analyzed video URL for a set",
	Long: `Get a presigned URL for a set's analyzed form video.

Works for past dates too - analysis results stay retrievable after the
day has passed.

Examples:
  fitai feedback 1
  fitai feedback 2 --date 2025-10-20 --exercise deadlift`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		setNo, err := strconv.Atoi(args[0])
		if err != nil || setNo <= 0 {
			return fmt.Errorf("invalid set number %q", args[0])
		}

		url, err := apiClient.AnalyzedVideoURL(cmd.Context(), api.AnalyzedURLRequest{
			UserID:   sess.UserID(),
			UserName: lifecycle.SanitizeName(sess.Username()),
			DateYMD:  lifecycle.DateYMD(sess.SelectedDate()),
			SetNo:    setNo,
			Exercise: sess.ActiveExercise(),
			Download: feedbackDownload,
		})
		if err != nil {
			return feedbackError(err)
		}

		color.Green("✓ Analyzed video ready")
		fmt.Println(url)
		return nil
	},
}

// feedbackError maps the classified fetch failures onto user-facing
// messages instead of raw transport errors.
func feedbackError(err error) error {
	switch {
	case errors.Is(err, api.ErrVideoNotFound):
		return fmt.Errorf("no analyzed video found for that date and set")
	case errors.Is(err, api.ErrServerError):
		return fmt.Errorf("the server had a problem - try again shortly")
	case errors.Is(err, api.ErrMalformedResponse):
		return fmt.Errorf("the server could not provide a video URL")
	}
	return err
}

func init() {
	feedbackCmd.Flags().BoolVar(&feedbackDownload, "download", true, "request a download-disposition URL")
	rootCmd.AddCommand(feedbackCmd)
}
