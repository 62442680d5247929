package cli

import (
	"fmt"
	"strings"

	"github.com/agentx-labs/guisettings/internal/settings"
	"github.com/spf13/cobra"
)

var resetAll bool

func init() {
	resetCmd.Flags().BoolVar(&resetAll, "all", false, "Remove every key, including profile and stylesheet choice")
	rootCmd.AddCommand(resetCmd)
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Restore default window, logger and game list settings",
	Long: `Remove the ` + strings.Join(settings.ResetGroups, ", ") + ` groups so they fall back to their
defaults. Other groups, such as the current profile and stylesheet, are kept
unless --all is given.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		s := openSettings()
		s.Reset(resetAll)
		if err := closeSettings(s); err != nil {
			return err
		}
		if resetAll {
			fmt.Fprintln(cmd.OutOrStdout(), "Removed all settings")
		} else {
			fmt.Fprintf(cmd.OutOrStdout(), "Reset %s\n", strings.Join(settings.ResetGroups, ", "))
		}
		return nil
	},
}
