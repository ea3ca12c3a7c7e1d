// ABOUTME: CLI commands for notification preferences and the reminder daemon.
// ABOUTME: Preferences persist per user in the local cache.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/HPsm01/FIT-AI-11-04/internal/notify"
)

var notifyCmd = &cobra.Command{
	Use:   "notify",
	Short: "Manage workout reminders",
	Long: `Manage daily workout reminders.

Three reminder types are available: workout, goal, rest_day. Each has an
on/off toggle and a daily HH:MM time.

COMMANDS:

  notify                       Show current preferences
  notify enable <type>         Turn a reminder on
  notify disable <type>        Turn a reminder off
  notify time <type> <HH:MM>   Set a reminder's daily time
  notify test                  Fire a test reminder now
  notify run                   Run the reminder daemon`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := notify.Load(store, sess.UserID())
		if err != nil {
			return fmt.Errorf("load preferences: %w", err)
		}

		for _, r := range notify.AllReminders {
			state := color.RedString("off")
			if settings.Enabled(r) {
				state = color.GreenString("on")
			}
			fmt.Printf("  %-18s %s  daily at %s\n", r.Title(), state, settings.Time(r))
		}
		return nil
	},
}

var notifyEnableCmd = &cobra.Command{
	Use:   "enable <type>",
	Short: "Turn a reminder on",
	Args:  cobra.ExactArgs(1),
	RunE:  func(cmd *cobra.Command, args []string) error { return toggleReminder(args[0], true) },
}

var notifyDisableCmd = &cobra.Command{
	Use:   "disable <type>",
	Short: "Turn a reminder off",
	Args:  cobra.ExactArgs(1),
	RunE:  func(cmd *cobra.Command, args []string) error { return toggleReminder(args[0], false) },
}

var notifyTimeCmd = &cobra.Command{
	Use:   "time <type> <HH:MM>",
	Short: "Set a reminder's daily time",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		r, err := parseReminder(args[0])
		if err != nil {
			return err
		}

		settings, err := notify.Load(store, sess.UserID())
		if err != nil {
			return fmt.Errorf("load preferences: %w", err)
		}
		if err := settings.SetTime(r, args[1]); err != nil {
			return err
		}
		if err := notify.Save(store, sess.UserID(), settings); err != nil {
			return fmt.Errorf("save preferences: %w", err)
		}

		color.Green("✓ %s at %s daily", r.Title(), args[1])
		return nil
	},
}

var notifyTestCmd = &cobra.Command{
	Use:   "test",
	Short: "Fire a test reminder now",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		fireReminder(notify.WorkoutReminder)
		return nil
	},
}

var notifyRunCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the reminder daemon",
	Long: `Run the reminder daemon in the foreground, firing each enabled
reminder at its configured time every day. Stop with Ctrl-C.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		settings, err := notify.Load(store, sess.UserID())
		if err != nil {
			return fmt.Errorf("load preferences: %w", err)
		}

		scheduler, err := notify.NewScheduler(settings, fireReminder, logger)
		if err != nil {
			return err
		}
		scheduler.Start()
		defer scheduler.Stop()

		fmt.Println("Reminder daemon running. Ctrl-C to stop.")
		stop := make(chan os.Signal, 1)
		signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
		select {
		case <-stop:
		case <-cmd.Context().Done():
		}
		return nil
	},
}

func toggleReminder(name string, on bool) error {
	r, err := parseReminder(name)
	if err != nil {
		return err
	}

	settings, err := notify.Load(store, sess.UserID())
	if err != nil {
		return fmt.Errorf("load preferences: %w", err)
	}
	settings.SetEnabled(r, on)
	if err := notify.Save(store, sess.UserID(), settings); err != nil {
		return fmt.Errorf("save preferences: %w", err)
	}

	if on {
		color.Green("✓ %s enabled (daily at %s)", r.Title(), settings.Time(r))
	} else {
		color.Green("✓ %s disabled", r.Title())
	}
	return nil
}

func parseReminder(name string) (notify.Reminder, error) {
	for _, r := range notify.AllReminders {
		if string(r) == name {
			return r, nil
		}
	}
	return "", fmt.Errorf("unknown reminder type %q (want workout, goal, or rest_day)", name)
}

// fireReminder renders a reminder to the terminal. The mobile client posts a
// platform notification here; the CLI just prints.
func fireReminder(r notify.Reminder) {
	switch r {
	case notify.WorkoutReminder:
		color.Cyan("🏋️ %s: time to train!", r.Title())
	case notify.GoalReminder:
		color.Cyan("🎯 %s: check today's totals with 'fitai sets'", r.Title())
	case notify.RestDayReminder:
		color.Cyan("😴 %s: recovery matters too", r.Title())
	}
}

func init() {
	notifyCmd.AddCommand(notifyEnableCmd)
	notifyCmd.AddCommand(notifyDisableCmd)
	notifyCmd.AddCommand(notifyTimeCmd)
	notifyCmd.AddCommand(notifyTestCmd)
	notifyCmd.AddCommand(notifyRunCmd)
	rootCmd.AddCommand(notifyCmd)
}
