package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/thinkwright/context-assistant/internal/layout"
	"github.com/thinkwright/context-assistant/internal/logging"
	"github.com/thinkwright/context-assistant/internal/store"
)

func newLayoutCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "layout",
		Short: "Inspect or reset the saved frame layout",
	}

	var asJSON bool
	show := &cobra.Command{
		Use:   "show",
		Short: "Print the layout restored at startup",
		Long: `Print the saved layout merged over the defaults, exactly as the workspace
restores it. Fields that are missing or unreadable show their default.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			kv, err := a.openKV()
			if err != nil {
				return err
			}
			defer kv.Close()

			st := layout.NewPersister(kv, *logging.FromContext(cmd.Context())).Load()
			out := cmd.OutOrStdout()
			if asJSON {
				data, err := json.MarshalIndent(st, "", "  ")
				if err != nil {
					return err
				}
				fmt.Fprintln(out, string(data))
				return nil
			}

			_, saveErr := kv.Get(layout.StorageKey)
			saved := "saved"
			if errors.Is(saveErr, store.ErrNotFound) {
				saved = "defaults"
			}
			fmt.Fprintf(out, "storage  %s (%s)\n", a.cfg.Storage, saved)
			for _, p := range []layout.Pane{layout.PaneLeft, layout.PaneRight, layout.PaneBottom} {
				vis := "shown"
				if !st.Visible(p) {
					vis = "hidden"
				}
				fmt.Fprintf(out, "%-8s %-6s %4.0f px\n", p, vis, st.Size(p))
			}
			return nil
		},
	}
	show.Flags().BoolVar(&asJSON, "json", false, "print the layout as JSON")

	reset := &cobra.Command{
		Use:   "reset",
		Short: "Forget the saved layout",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			kv, err := a.openKV()
			if err != nil {
				return err
			}
			defer kv.Close()

			if err := kv.Delete(layout.StorageKey); err != nil {
				return fmt.Errorf("reset layout: %w", err)
			}
			logging.FromContext(cmd.Context()).Info().Msg("layout reset")
			fmt.Fprintln(cmd.OutOrStdout(), "layout reset to defaults")
			return nil
		},
	}

	cmd.AddCommand(show, reset)
	return cmd
}
