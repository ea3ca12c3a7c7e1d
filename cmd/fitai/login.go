// ABOUTME: Login and force-logout commands.
// ABOUTME: Logout wipes every cached record belonging to the user.
package main

import (
	"fmt"
	"strconv"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var loginCmd = &cobra.Command{
	Use:   "login <user-id> <username>",
	Short: "Configure the user identity",
	Long: `Configure the user identity used for API calls and upload keys.

The username is embedded (with whitespace stripped) in upload keys and
result paths, so it must match the account name on the server.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil || id <= 0 {
			return fmt.Errorf("invalid user id %q", args[0])
		}

		cfg.UserID = id
		cfg.Username = args[1]
		if err := cfg.Save(); err != nil {
			return fmt.Errorf("save config: %w", err)
		}

		color.Green("✓ Logged in as %s (id %d)", cfg.Username, cfg.UserID)
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Log out and clear all cached data for this user",
	Long: `Log out and clear every locally cached record for the user: day
snapshots, notification preferences, and session state. Server data is
untouched and comes back on the next login.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		userID := cfg.UserID

		if err := store.ClearUser(userID); err != nil {
			return fmt.Errorf("clear cache: %w", err)
		}

		cfg.UserID = 0
		cfg.Username = ""
		if err := cfg.Save(); err != nil {
			return fmt.Errorf("save config: %w", err)
		}

		color.Green("✓ Logged out, local cache for user %d cleared", userID)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
}
