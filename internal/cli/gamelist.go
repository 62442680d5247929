package cli

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/agentx-labs/guisettings/internal/gui"
	"github.com/spf13/cobra"
)

func init() {
	categoryCmd.AddCommand(categoryListCmd)
	categoryCmd.AddCommand(categoryShowCmd)
	categoryCmd.AddCommand(categoryHideCmd)
	rootCmd.AddCommand(categoryCmd)

	columnCmd.AddCommand(columnGetCmd)
	columnCmd.AddCommand(columnShowCmd)
	columnCmd.AddCommand(columnHideCmd)
	rootCmd.AddCommand(columnCmd)
}

var categoryCmd = &cobra.Command{
	Use:   "category",
	Short: "Filter the game list by category",
	Long: `Show or hide game list categories. Categories are given by name ("Disc Game")
or PARAM.SFO code ("DG"). Unrecognized names share the "Other" setting.`,
}

var categoryListCmd = &cobra.Command{
	Use:   "list",
	Short: "Show every category and whether it is visible",
	RunE: func(cmd *cobra.Command, args []string) error {
		s := openSettings()
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "CATEGORY\tCODE\tVISIBLE")
		kinds := append(gui.KnownCategories(), gui.Other)
		for _, k := range kinds {
			visible := s.CategoryVisible(gui.Category{Kind: k})
			fmt.Fprintf(w, "%s\t%s\t%t\n", k, k.Code(), visible)
		}
		return w.Flush()
	},
}

var categoryShowCmd = &cobra.Command{
	Use:   "show <category>",
	Short: "Show games of a category",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setCategory(cmd, args[0], true)
	},
}

var categoryHideCmd = &cobra.Command{
	Use:   "hide <category>",
	Short: "Hide games of a category",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setCategory(cmd, args[0], false)
	},
}

func setCategory(cmd *cobra.Command, name string, visible bool) error {
	s := openSettings()
	c := gui.ParseCategory(name)
	s.SetCategoryVisible(c, visible)
	if err := closeSettings(s); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s visible: %t\n", c.Kind, visible)
	return nil
}

var columnCmd = &cobra.Command{
	Use:   "column",
	Short: "Show or hide game list columns",
}

var columnGetCmd = &cobra.Command{
	Use:   "get <index>",
	Short: "Print whether a column is visible",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		col, err := parseColumn(args[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), openSettings().ColumnVisible(col))
		return nil
	},
}

var columnShowCmd = &cobra.Command{
	Use:   "show <index>",
	Short: "Show a column",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setColumn(cmd, args[0], true)
	},
}

var columnHideCmd = &cobra.Command{
	Use:   "hide <index>",
	Short: "Hide a column",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setColumn(cmd, args[0], false)
	},
}

func parseColumn(arg string) (int, error) {
	col, err := strconv.Atoi(arg)
	if err != nil || col < 0 {
		return 0, fmt.Errorf("column index must be a non-negative integer, got %q", arg)
	}
	return col, nil
}

func setColumn(cmd *cobra.Command, arg string, visible bool) error {
	col, err := parseColumn(arg)
	if err != nil {
		return err
	}
	s := openSettings()
	s.SetColumnVisible(col, visible)
	if err := closeSettings(s); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Column %d visible: %t\n", col, visible)
	return nil
}
