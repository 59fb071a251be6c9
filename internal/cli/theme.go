package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/thinkwright/context-assistant/internal/theme"
)

func newThemeCmd(a *app) *cobra.Command {
	modes := make([]string, len(theme.Modes))
	for i, m := range theme.Modes {
		modes[i] = string(m)
	}

	return &cobra.Command{
		Use:       "theme [" + strings.Join(modes, "|") + "]",
		Short:     "Show or set the saved theme",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: modes,
		RunE: func(cmd *cobra.Command, args []string) error {
			kv, err := a.openKV()
			if err != nil {
				return err
			}
			defer kv.Close()

			if len(args) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), theme.Load(kv))
				return nil
			}
			mode, ok := theme.Parse(args[0])
			if !ok {
				return fmt.Errorf("unknown theme %q (want one of %s)", args[0], strings.Join(modes, ", "))
			}
			if err := theme.Save(kv, mode); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "theme set to %s\n", mode)
			return nil
		},
	}
}
