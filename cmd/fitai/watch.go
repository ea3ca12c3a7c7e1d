// ABOUTME: CLI command polling until all pending sets are analyzed.
// ABOUTME: Drives the poller FSM the way the workout screen does on focus.
package main

import (
	"context"
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/HPsm01/FIT-AI-11-04/internal/poller"
)

var watchTimeout time.Duration

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Poll until AI analysis finishes for all uploaded sets",
	Long: `Poll the server until every uploaded set has its AI feedback and
analysis video, then print the final collection.

Polling runs at a fixed 10 second cadence (configurable via
poll_interval_seconds) and stops on its own once nothing is pending.
Interrupt with Ctrl-C to stop early.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if watchTimeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, watchTimeout)
			defer cancel()
		}

		resolver.Load(ctx)

		if !poller.AnyPending(sess.ActiveSets()) {
			color.Green("✓ Nothing pending - all uploaded sets are analyzed")
			printSets(sess.ActiveSets())
			return nil
		}

		p := poller.New(func(tickCtx context.Context) {
			resolver.RefreshFeedback(tickCtx)
		}, cfg.PollInterval(), logger)
		defer p.Stop()

		color.Yellow("… Waiting for analysis (poll every %s)", pollEvery())
		p.Evaluate(ctx, sess.ActiveSets())

		check := time.NewTicker(time.Second)
		defer check.Stop()
		for {
			select {
			case <-ctx.Done():
				return fmt.Errorf("stopped while sets were still pending")
			case <-check.C:
				sets := sess.ActiveSets()
				if poller.AnyPending(sets) {
					// Leave the running timer alone; re-evaluating here would
					// restart its cadence every second.
					continue
				}
				p.Evaluate(ctx, sets)
				if p.State() == poller.Idle {
					// Give the final settling refresh a moment to land.
					time.Sleep(200 * time.Millisecond)
					color.Green("✓ Analysis complete")
					printSets(sess.ActiveSets())
					return nil
				}
			}
		}
	},
}

func pollEvery() time.Duration {
	if d := cfg.PollInterval(); d > 0 {
		return d
	}
	return poller.DefaultInterval
}

func init() {
	watchCmd.Flags().DurationVar(&watchTimeout, "timeout", 0, "give up after this long (0 = wait forever)")
	rootCmd.AddCommand(watchCmd)
}
