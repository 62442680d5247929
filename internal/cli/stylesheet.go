package cli

import (
	"fmt"
	"slices"

	"github.com/agentx-labs/guisettings/internal/gui"
	"github.com/spf13/cobra"
)

func init() {
	stylesheetCmd.AddCommand(stylesheetListCmd)
	stylesheetCmd.AddCommand(stylesheetUseCmd)
	stylesheetCmd.AddCommand(stylesheetPathCmd)
	rootCmd.AddCommand(stylesheetCmd)
}

var stylesheetCmd = &cobra.Command{
	Use:   "stylesheet",
	Short: "Select the interface stylesheet",
}

var stylesheetListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show available stylesheets",
	RunE: func(cmd *cobra.Command, args []string) error {
		s := openSettings()
		out := cmd.OutOrStdout()
		current := s.CurrentStylesheetName()

		names := s.ListStylesheets()
		if len(names) == 0 {
			fmt.Fprintf(out, "No .qss files in %s\n", s.Dir())
			return nil
		}
		for _, name := range names {
			if name == current {
				fmt.Fprintf(out, "  %s (current)\n", name)
			} else {
				fmt.Fprintf(out, "  %s\n", name)
			}
		}
		return nil
	},
}

var stylesheetUseCmd = &cobra.Command{
	Use:   "use <name>",
	Short: "Select a stylesheet by name",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		s := openSettings()
		if name != gui.DefaultStylesheet && !slices.Contains(s.ListStylesheets(), name) {
			return fmt.Errorf("stylesheet %q not found in %s", name, s.Dir())
		}
		s.SetCurrentStylesheet(name)
		if err := closeSettings(s); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Using stylesheet %q\n", name)
		return nil
	},
}

var stylesheetPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the path of the current stylesheet",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Fprintln(cmd.OutOrStdout(), openSettings().CurrentStylesheetPath())
		return nil
	},
}
