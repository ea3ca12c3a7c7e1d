// ABOUTME: Root Cobra command for the fitai CLI.
// ABOUTME: Opens config, cache, and API client once per invocation.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/HPsm01/FIT-AI-11-04/internal/api"
	"github.com/HPsm01/FIT-AI-11-04/internal/cache"
	"github.com/HPsm01/FIT-AI-11-04/internal/config"
	"github.com/HPsm01/FIT-AI-11-04/internal/models"
	"github.com/HPsm01/FIT-AI-11-04/internal/session"
	syncpkg "github.com/HPsm01/FIT-AI-11-04/internal/sync"
)

var (
	cfg       *config.Config
	store     *cache.Store
	apiClient *api.Client
	sess      *session.Session
	resolver  *syncpkg.Resolver
	logger    *log.Logger

	flagDate     string
	flagExercise string
	verbose      bool
)

var rootCmd = &cobra.Command{
	Use:   "fitai",
	Short: "Lift tracker with AI form analysis",
	Long: `fitai tracks weightlifting sets and fetches AI form feedback for
uploaded set videos.

The server is the single source of truth. A local cache keeps previously
seen days readable offline, and a background poll picks up analysis results
as they finish.

QUICK START:

  $ fitai login 20 박승민              # Configure your user identity
  $ fitai sets                         # Today's sets for squat
  $ fitai weight 1 80                  # Enter 80 kg for set 1
  $ fitai upload 1                     # Lock the set and get an upload key
  $ fitai watch                        # Poll until analysis feedback arrives

BROWSING:

  $ fitai sets --date 2025-10-20 --exercise deadlift
  $ fitai feedback 1                   # Analyzed video URL for set 1
  $ fitai history                      # Workout days from the past week

NOTIFICATIONS:

  $ fitai notify                       # Show reminder preferences
  $ fitai notify enable workout
  $ fitai notify time workout 18:30
  $ fitai notify run                   # Fire reminders daily

MCP INTEGRATION:

  Run 'fitai mcp' to expose the workout log to MCP-compatible AI
  assistants.

DATA STORAGE:

  The cache lives under ~/.local/share/fitai. It is a read accelerator
  only; clearing it loses nothing the server doesn't have.`,
	Version:      "0.1.0",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logger = log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: false})
		if verbose {
			logger.SetLevel(log.DebugLevel)
		} else {
			logger.SetLevel(log.WarnLevel)
		}

		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}

		// Commands that manage identity or need nothing open.
		switch cmd.Name() {
		case "login", "version", "help":
			return nil
		}

		if !cfg.LoggedIn() {
			return fmt.Errorf("not logged in - run 'fitai login <user-id> <username>'")
		}
		if err := cfg.EnsureDeviceID(); err != nil {
			logger.Warn("could not persist device id", "err", err)
		}

		store, err = cache.Open(cfg.GetDataDir())
		if err != nil {
			return fmt.Errorf("open cache: %w", err)
		}

		apiClient, err = api.NewClient(cfg.GetAPIBase())
		if err != nil {
			return fmt.Errorf("create api client: %w", err)
		}

		sess = session.New(cfg.UserID, cfg.Username)
		resolver = syncpkg.NewResolver(apiClient, store, sess, logger)

		return positionSession()
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if store != nil {
			return store.Close()
		}
		return nil
	},
}

// positionSession applies the --date and --exercise flags to the session.
func positionSession() error {
	if flagExercise != "" {
		ex, err := models.ParseExercise(flagExercise)
		if err != nil {
			return err
		}
		sess.SetExercise(ex)
	}
	if flagDate != "" {
		t, err := time.ParseInLocation("2006-01-02", flagDate, time.Local)
		if err != nil {
			return fmt.Errorf("parse --date: %w", err)
		}
		if err := sess.SelectDate(t); err != nil {
			return err
		}
	}
	return nil
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagDate, "date", "", "date to view (YYYY-MM-DD), defaults to today")
	rootCmd.PersistentFlags().StringVarP(&flagExercise, "exercise", "e", "", "exercise: deadlift, squat, bench_press (default squat)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}
