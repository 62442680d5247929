package cli

import (
	"fmt"

	"github.com/agentx-labs/guisettings/internal/gui"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(logLevelCmd)
}

var logLevelCmd = &cobra.Command{
	Use:   "loglevel [level]",
	Short: "Print or set the emulator log level",
	Long: `Without an argument, print the stored log level. With one, store it. Levels are
always, fatal, error, todo, success, warning, notice and trace, or a number.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s := openSettings()
		out := cmd.OutOrStdout()

		if len(args) == 0 {
			level := s.LogLevel()
			fmt.Fprintf(out, "%s (%d)\n", level, uint(level))
			return nil
		}

		level, err := gui.ParseLogLevel(args[0])
		if err != nil {
			return err
		}
		if !level.Valid() {
			fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %d is outside the defined levels; storing it anyway.\n", uint(level))
		}
		s.SetLogLevel(level)
		if err := closeSettings(s); err != nil {
			return err
		}
		fmt.Fprintf(out, "Log level set to %s\n", level)
		return nil
	},
}
