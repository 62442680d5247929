package cli

import (
	"fmt"

	"github.com/agentx-labs/guisettings/internal/settings"
	"github.com/agentx-labs/guisettings/internal/transfer"
	"github.com/spf13/cobra"
)

var (
	profileShowYAML bool
	profileShowJSON bool
)

func init() {
	profileShowCmd.Flags().BoolVar(&profileShowYAML, "yaml", false, "Output as YAML")
	profileShowCmd.Flags().BoolVar(&profileShowJSON, "json", false, "Output as JSON")

	profileCmd.AddCommand(profileListCmd)
	profileCmd.AddCommand(profileUseCmd)
	profileCmd.AddCommand(profileSaveCmd)
	profileCmd.AddCommand(profileBackupCmd)
	profileCmd.AddCommand(profileShowCmd)
	rootCmd.AddCommand(profileCmd)
}

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Manage named configuration profiles",
	Long: `Profiles are complete snapshots of the settings stored as <name>.ini next to
the live settings file. Switching to a profile replaces the window, logger and
game list settings with the profile's.`,
}

var profileListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show all profiles",
	RunE: func(cmd *cobra.Command, args []string) error {
		s := openSettings()
		out := cmd.OutOrStdout()

		profiles := s.ListProfiles()
		if len(profiles) == 0 {
			fmt.Fprintf(out, "No profiles found in %s. Run '%s profile save <name>' to create one.\n", s.Dir(), rootCmd.Name())
			return nil
		}

		current := s.CurrentProfile()
		for _, name := range profiles {
			if name == current {
				fmt.Fprintf(out, "  %s (current)\n", name)
			} else {
				fmt.Fprintf(out, "  %s\n", name)
			}
		}
		return nil
	},
}

var profileUseCmd = &cobra.Command{
	Use:   "use <name>",
	Short: "Switch to a saved profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		s := openSettings()
		if err := s.SwitchToProfile(name); err != nil {
			return fmt.Errorf("switching to profile %q: %w", name, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Switched to profile %q\n", name)
		return nil
	},
}

var profileSaveCmd = &cobra.Command{
	Use:   "save <name>",
	Short: "Save the current settings as a profile and make it current",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		s := openSettings()
		if err := s.SaveCurrentAsProfile(name); err != nil {
			return fmt.Errorf("saving profile %q: %w", name, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Saved profile %q\n", name)
		return nil
	},
}

var profileBackupCmd = &cobra.Command{
	Use:   "backup <name>",
	Short: "Copy the current settings into <name>.ini without switching to it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		s := openSettings()
		if err := s.BackupTo(name); err != nil {
			return fmt.Errorf("backing up to %q: %w", name, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Backed up settings to %q\n", name)
		return nil
	},
}

var profileShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the current profile's settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		s := openSettings()
		doc := transfer.Export(s.Store, true)
		out := cmd.OutOrStdout()

		if profileShowJSON || profileShowYAML {
			format := transfer.FormatYAML
			if profileShowJSON {
				format = transfer.FormatJSON
			}
			data, err := transfer.Marshal(doc, format)
			if err != nil {
				return err
			}
			fmt.Fprint(out, string(data))
			return nil
		}

		// Default: human-readable format.
		fmt.Fprintf(out, "Profile: %s\n", s.CurrentProfile())
		fmt.Fprintln(out, "---")
		for _, path := range s.Keys() {
			if settings.IsMeta(path) {
				continue
			}
			fmt.Fprintf(out, "  %s = %s\n", path, s.GetPath(path, nil).Raw())
		}
		return nil
	},
}
