// Package app implements the main application commands.
package app

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "autogroup",
	Short: "autogroup keeps course group membership in sync with grouping rules",
	Long: `autogroup keeps course group membership in sync with grouping rules.
Courses carry grouping sets which place enrolled users into managed groups
based on profile fields, custom user fields or position assignments. The
daemon reacts to host lifecycle events and reconciles membership for the
affected scope.`,
	Args: cobra.OnlyValidArgs,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
