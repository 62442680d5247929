package cli

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/agentx-labs/guisettings/internal/gui"
	"github.com/agentx-labs/guisettings/internal/pairlist"
	"github.com/agentx-labs/guisettings/internal/settings"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var (
	getRaw      bool
	keysEntries bool
)

var printer = message.NewPrinter(language.English)

func init() {
	getCmd.Flags().BoolVar(&getRaw, "raw", false, "Print the stored text without decoding")
	keysCmd.Flags().BoolVar(&keysEntries, "entries", false, "List declared entries with their defaults instead of stored keys")

	rootCmd.AddCommand(getCmd)
	rootCmd.AddCommand(setCmd)
	rootCmd.AddCommand(unsetCmd)
	rootCmd.AddCommand(keysCmd)
}

var getCmd = &cobra.Command{
	Use:   "get <group/key>",
	Short: "Print a setting",
	Long: `Print the value stored under group/key. Declared entries fall back to
their default when unset; other keys print an empty line.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s := openSettings()
		path := args[0]

		var def any
		if e, ok := gui.LookupEntry(path); ok {
			def = e.Default
		}
		v := s.GetPath(path, def)

		out := cmd.OutOrStdout()
		switch {
		case getRaw:
			fmt.Fprintln(out, v.Raw())
		case isPairList(def) || looksLikePairList(v):
			for _, p := range v.Pairs() {
				fmt.Fprintf(out, "%s\t%s\n", p.Key, p.Value)
			}
		default:
			fmt.Fprintln(out, v.String())
		}
		return nil
	},
}

var setCmd = &cobra.Command{
	Use:   "set <group/key> <value>",
	Short: "Store a setting",
	Long: `Store value under group/key. For declared entries the value must parse
as the entry's type (bool, integer, float or text).`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, text := args[0], args[1]
		if err := settings.ValidateKey(path); err != nil {
			return err
		}
		value, err := parseForEntry(path, text)
		if err != nil {
			return err
		}

		s := openSettings()
		s.SetPath(path, value)
		if err := closeSettings(s); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Set %s = %s\n", path, text)
		return nil
	},
}

var unsetCmd = &cobra.Command{
	Use:   "unset <group/key|group>",
	Short: "Remove a setting or a whole group",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s := openSettings()
		s.Remove(args[0])
		if err := closeSettings(s); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Removed %s\n", args[0])
		return nil
	},
}

var keysCmd = &cobra.Command{
	Use:   "keys",
	Short: "List stored settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)

		if keysEntries {
			fmt.Fprintln(w, "KEY\tDEFAULT")
			for _, e := range gui.Entries() {
				fmt.Fprintf(w, "%s\t%s\n", e.Path(), describeDefault(e.Default))
			}
			return w.Flush()
		}

		s := openSettings()
		keys := s.Keys()
		fmt.Fprintln(w, "KEY\tVALUE")
		for _, k := range keys {
			fmt.Fprintf(w, "%s\t%s\n", k, s.GetPath(k, nil).Raw())
		}
		if err := w.Flush(); err != nil {
			return err
		}
		printer.Fprintf(out, "\n%d keys in %s\n", len(keys), s.Path())
		return nil
	},
}

// parseForEntry converts text to the type of the declared entry at path.
// Undeclared keys are stored as text.
func parseForEntry(path, text string) (any, error) {
	e, ok := gui.LookupEntry(path)
	if !ok {
		return text, nil
	}
	switch e.Default.(type) {
	case bool:
		b, err := strconv.ParseBool(text)
		if err != nil {
			return nil, fmt.Errorf("%s expects true or false, got %q", path, text)
		}
		return b, nil
	case int:
		n, err := strconv.Atoi(text)
		if err != nil {
			return nil, fmt.Errorf("%s expects an integer, got %q", path, text)
		}
		return n, nil
	case uint:
		n, err := strconv.ParseUint(text, 10, 0)
		if err != nil {
			return nil, fmt.Errorf("%s expects a non-negative integer, got %q", path, text)
		}
		return uint(n), nil
	case float64:
		f, err := strconv.ParseFloat(text, 64)
		if err != nil {
			return nil, fmt.Errorf("%s expects a number, got %q", path, text)
		}
		return f, nil
	case []byte, pairlist.List:
		return nil, fmt.Errorf("%s holds binary data; use '%s import' to restore it", path, rootCmd.Name())
	}
	return text, nil
}

func describeDefault(def any) string {
	switch d := def.(type) {
	case []byte:
		return "(bytes)"
	case pairlist.List:
		return "(list)"
	case string:
		if d == "" {
			return `""`
		}
		return d
	}
	return fmt.Sprint(def)
}

func isPairList(def any) bool {
	_, ok := def.(pairlist.List)
	return ok
}

func looksLikePairList(v settings.Value) bool {
	return v.IsSet() && len(v.Pairs()) > 0
}
