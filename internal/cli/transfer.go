package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/agentx-labs/guisettings/internal/transfer"
	"github.com/spf13/cobra"
)

var (
	exportFormat string
	exportOutput string
	exportNoMeta bool
)

func init() {
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "yaml", "Output format: json or yaml")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Write to a file instead of stdout")
	exportCmd.Flags().BoolVar(&exportNoMeta, "no-meta", false, "Leave out Meta bookkeeping keys")

	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(importCmd)
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the live settings as JSON or YAML",
	RunE: func(cmd *cobra.Command, args []string) error {
		format, err := transfer.ParseFormat(exportFormat)
		if err != nil {
			return err
		}

		s := openSettings()
		data, err := transfer.Marshal(transfer.Export(s.Store, exportNoMeta), format)
		if err != nil {
			return err
		}

		if exportOutput == "" {
			_, err = cmd.OutOrStdout().Write(data)
			return err
		}
		if err := os.WriteFile(exportOutput, data, 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", exportOutput, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Exported settings to %s\n", exportOutput)
		return nil
	},
}

var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Merge settings from a JSON or YAML document",
	Long: `Validate the document against the settings schema and write every key into
the live store. Keys not named in the document are left alone.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("reading %s: %w", args[0], err)
		}

		s := openSettings()
		n, err := transfer.Import(s.Store, data)
		if err != nil {
			return fmt.Errorf("importing %s: %w", filepath.Base(args[0]), err)
		}
		if err := closeSettings(s); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), printer.Sprintf("Imported %d keys", n))
		return nil
	},
}
