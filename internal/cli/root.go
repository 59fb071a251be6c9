// Package cli wires configuration, storage and logging into the cassist
// commands.
package cli

import (
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/thinkwright/context-assistant/internal/config"
	"github.com/thinkwright/context-assistant/internal/logging"
	"github.com/thinkwright/context-assistant/internal/store"
	"github.com/thinkwright/context-assistant/internal/ui"
)

// app holds what the commands share once setup has run.
type app struct {
	version string
	storage string // --storage

	cfg     config.Config
	logFile io.Closer
}

// NewRootCmd builds the command tree.
func NewRootCmd(version string) *cobra.Command {
	return newRootCmd(&app{version: version})
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "cassist",
		Short: "A three-pane terminal workspace with resizable frames",
		Long: `cassist opens a workspace with a left, right and bottom frame around the
main content. Drag the dividers with the mouse to resize frames, toggle them
from the header or with 1, 2 and 3, and cycle the theme with t.

The layout and theme are remembered between runs.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		PersistentPostRun: func(*cobra.Command, []string) { a.close() },
		RunE:              a.runTUI,
	}
	root.PersistentFlags().StringVar(&a.storage, "storage", "", `storage backend, "file" or "sqlite" (overrides config)`)

	root.AddCommand(
		newLayoutCmd(a),
		newThemeCmd(a),
		newConfigCmd(a),
		newVersionCmd(a),
	)
	closeLogOnError(root, a)
	return root
}

// closeLogOnError wraps every RunE in the tree so the log file is closed on
// failure too. Cobra skips PersistentPostRun when RunE returns an error.
func closeLogOnError(cmd *cobra.Command, a *app) {
	if run := cmd.RunE; run != nil {
		cmd.RunE = func(c *cobra.Command, args []string) error {
			err := run(c, args)
			if err != nil {
				a.close()
			}
			return err
		}
	}
	for _, sub := range cmd.Commands() {
		closeLogOnError(sub, a)
	}
}

// Execute runs the command tree and exits non-zero on error.
func Execute(version string) {
	if err := NewRootCmd(version).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	switch cmd.Name() {
	case "help", "completion", "version":
		return nil
	}

	a.cfg = config.Load()
	if a.storage != "" {
		if !store.Backend(a.storage).Valid() {
			return fmt.Errorf("unknown storage backend %q", a.storage)
		}
		a.cfg.Storage = a.storage
	}

	logCfg := logging.DefaultConfig()
	logCfg.Level = logging.ParseLevel(a.cfg.Log.Level)
	logCfg.Format = a.cfg.Log.Format

	log, closer, err := logging.NewFile(logCfg, config.StateDir())
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "warning: logging disabled: %v\n", err)
		log = zerolog.Nop()
	}
	a.logFile = closer
	cmd.SetContext(logging.WithContext(cmd.Context(), log))

	log.Debug().
		Str("command", cmd.CommandPath()).
		Str("storage", a.cfg.Storage).
		Str("version", a.version).
		Msg("starting")
	return nil
}

func (a *app) close() {
	if a.logFile != nil {
		_ = a.logFile.Close()
		a.logFile = nil
	}
}

func (a *app) openKV() (store.KV, error) {
	kv, err := store.Open(store.Backend(a.cfg.Storage), config.DataDir())
	if err != nil {
		return nil, fmt.Errorf("open %s storage: %w", a.cfg.Storage, err)
	}
	return kv, nil
}

func (a *app) runTUI(cmd *cobra.Command, _ []string) error {
	ctx := logging.WithComponent(cmd.Context(), "cli")
	log := logging.FromContext(ctx)

	kv, err := a.openKV()
	if err != nil {
		return err
	}
	defer kv.Close()

	// The watcher needs the directory to exist.
	if err := os.MkdirAll(config.ConfigDir(), 0o755); err != nil {
		log.Warn().Err(err).Msg("config reload disabled")
	}

	growTerminal(os.Stdout, a.cfg)

	m := ui.NewModel(ui.Options{
		Config:       a.cfg,
		KV:           kv,
		Logger:       *logging.FromContext(cmd.Context()),
		TerminalDark: lipgloss.HasDarkBackground(),
		ConfigPath:   config.ConfigPath(),
	})
	p := tea.NewProgram(m,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)

	_, runErr := p.Run()
	// Every copy of the model shares the same layout store and persister.
	m.Shutdown()
	if runErr != nil {
		log.Error().Err(runErr).Msg("program exited")
		return runErr
	}
	log.Debug().Msg("bye")
	return nil
}
