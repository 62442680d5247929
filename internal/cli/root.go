package cli

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/agentx-labs/guisettings/internal/branding"
	"github.com/agentx-labs/guisettings/internal/config"
	"github.com/agentx-labs/guisettings/internal/gui"
	"github.com/spf13/cobra"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

var (
	flagSettingsDir string
	flagVerbose     bool
	flagLogFormat   string
)

func init() {
	rootCmd.PersistentFlags().StringVar(&flagSettingsDir, "dir", "", "Settings directory (default: <executable dir>/"+branding.SettingsDir()+")")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Log debug messages")
	rootCmd.PersistentFlags().StringVar(&flagLogFormat, "log-format", "", "Log format: text or json")
}

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: branding.DisplayName() + ` reads and writes the emulator front-end's preferences: window layout,
game list filters, log level, stylesheet choice and named configuration profiles.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		config.Load()
		format := flagLogFormat
		if format == "" {
			format = config.Get(config.KeyLogFormat)
		}
		slog.SetDefault(newLogger(cmd.ErrOrStderr(), format, flagVerbose))
	},
}

// Execute runs the root command with build info injected via ldflags.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date
	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintln(rootCmd.ErrOrStderr(), "Error:", err)
	}
	return err
}

func newLogger(w io.Writer, format string, verbose bool) *slog.Logger {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}
	if verbose {
		opts.Level = slog.LevelDebug
	}
	if strings.EqualFold(format, "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

// settingsDir returns --dir when given, otherwise the configured default.
func settingsDir() string {
	if flagSettingsDir != "" {
		return flagSettingsDir
	}
	return config.SettingsDir()
}

// openSettings opens the live store. Callers that change settings must
// Close it to write the changes.
func openSettings() *gui.Settings {
	return gui.Open(settingsDir(), slog.Default())
}

// closeSettings writes pending changes.
func closeSettings(s *gui.Settings) error {
	if err := s.Close(); err != nil {
		return fmt.Errorf("saving settings: %w", err)
	}
	return nil
}
