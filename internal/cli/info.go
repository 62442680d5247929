package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/agentx-labs/guisettings/internal/gui"
	"github.com/agentx-labs/guisettings/internal/settings"
	"github.com/spf13/cobra"
)

var (
	infoTitle string
	infoText  string
	infoReset bool
)

func init() {
	infoCmd.Flags().StringVar(&infoTitle, "title", "Information", "Message title")
	infoCmd.Flags().StringVar(&infoText, "text", "", "Message text")
	infoCmd.Flags().BoolVar(&infoReset, "reset", false, "Re-enable the message instead of showing it")
	rootCmd.AddCommand(infoCmd)
}

var infoCmd = &cobra.Command{
	Use:   "info <group/key>",
	Short: "Show a dismissible message controlled by a boolean setting",
	Long: `Show a message unless the boolean setting at group/key is false. Answering
"y" to "Don't show again?" turns the setting off. Use --reset to turn it back on.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, ok := gui.LookupEntry(args[0])
		if !ok {
			if err := settings.ValidateKey(args[0]); err != nil {
				return err
			}
			group, name := settings.SplitPath(args[0])
			e = settings.Entry{Group: group, Name: name, Default: true}
		}
		if _, isBool := e.Default.(bool); !isBool {
			return fmt.Errorf("%s is not a boolean setting", args[0])
		}

		s := openSettings()
		if infoReset {
			s.Set(e, true)
			return closeSettings(s)
		}

		d := &terminalDialog{in: cmd.InOrStdin(), out: cmd.OutOrStdout()}
		if !s.ShowDismissibleInfo(e, infoTitle, infoText, d) {
			fmt.Fprintf(cmd.OutOrStdout(), "Message %s is disabled. Use --reset to show it again.\n", e.Path())
		}
		return nil
	},
}

// terminalDialog is a gui.Dialog that prints the message and asks on the
// terminal.
type terminalDialog struct {
	in  io.Reader
	out io.Writer
}

func (d *terminalDialog) ShowInfo(title, text string) bool {
	fmt.Fprintf(d.out, "%s\n%s\n", title, strings.Repeat("=", len(title)))
	if text != "" {
		fmt.Fprintln(d.out, text)
	}
	fmt.Fprint(d.out, "\nDon't show again? [y/N]: ")

	reader := bufio.NewReader(d.in)
	answer, _ := reader.ReadString('\n')
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}
