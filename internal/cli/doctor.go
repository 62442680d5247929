package cli

import (
	"github.com/spf13/cobra"
)

var doctorFix bool

func init() {
	doctorCmd.Flags().BoolVar(&doctorFix, "fix", false, "Create a missing settings directory and remove stale temp files")
	rootCmd.AddCommand(doctorCmd)
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Health check for the settings directory",
	Long: `Check that the settings directory exists, that the live settings and every
profile parse, and report the live store's schema version.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		s := openSettings()
		return s.Check(cmd.OutOrStdout(), doctorFix)
	},
}
