package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	recentCmd.AddCommand(recentListCmd)
	recentCmd.AddCommand(recentAddCmd)
	recentCmd.AddCommand(recentRemoveCmd)
	recentCmd.AddCommand(recentFreezeCmd)
	recentCmd.AddCommand(recentUnfreezeCmd)
	rootCmd.AddCommand(recentCmd)
}

var recentCmd = &cobra.Command{
	Use:   "recent",
	Short: "Manage the recently booted games list",
}

var recentListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show recently booted games, most recent first",
	RunE: func(cmd *cobra.Command, args []string) error {
		s := openSettings()
		out := cmd.OutOrStdout()
		games := s.RecentGameList()
		if len(games) == 0 {
			fmt.Fprintln(out, "No recent games.")
			return nil
		}
		for i, g := range games {
			fmt.Fprintf(out, "%2d. %s  %s\n", i+1, g.Value, g.Key)
		}
		return nil
	},
}

var recentAddCmd = &cobra.Command{
	Use:   "add <path> <title>",
	Short: "Record a booted game",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		s := openSettings()
		s.AddRecentGame(args[0], args[1])
		return closeSettings(s)
	},
}

var recentRemoveCmd = &cobra.Command{
	Use:   "remove <path>",
	Short: "Drop a game from the list",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s := openSettings()
		s.RemoveRecentGame(args[0])
		return closeSettings(s)
	},
}

var recentFreezeCmd = &cobra.Command{
	Use:   "freeze",
	Short: "Stop recording booted games",
	RunE: func(cmd *cobra.Command, args []string) error {
		s := openSettings()
		s.SetRecentGamesFrozen(true)
		return closeSettings(s)
	},
}

var recentUnfreezeCmd = &cobra.Command{
	Use:   "unfreeze",
	Short: "Resume recording booted games",
	RunE: func(cmd *cobra.Command, args []string) error {
		s := openSettings()
		s.SetRecentGamesFrozen(false)
		return closeSettings(s)
	},
}
