package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/thinkwright/context-assistant/internal/config"
	"github.com/thinkwright/context-assistant/internal/layout"
	"github.com/thinkwright/context-assistant/internal/store"
	"github.com/thinkwright/context-assistant/internal/theme"
	"github.com/thinkwright/context-assistant/internal/watcher"
)

// mousePointer is the pointer id given to terminal mouse events. A terminal
// reports a single pointer.
const mousePointer = 1

type Options struct {
	Config config.Config
	KV     store.KV
	Logger zerolog.Logger

	// TerminalDark is whether the terminal background is dark. It resolves
	// the system theme.
	TerminalDark bool

	// ConfigPath is watched for changes. Empty disables reloading.
	ConfigPath string
}

type Model struct {
	cfg        config.Config
	configPath string
	kv         store.KV
	log        zerolog.Logger

	persister *layout.Persister
	layout    *layout.Store
	drag      *layout.Controller
	monitor   *layout.Monitor
	main      *layout.Surface
	center    *layout.Surface

	keys         keyMap
	settingsKeys settingsKeys
	help         help.Model

	mode     theme.Mode
	termDark bool
	palette  Palette

	width  int
	height int
	ready  bool
	geo    geometry

	showSettings   bool
	settingsCursor int
}

// NewModel restores the persisted layout and theme from opts.KV and wires
// the layout store to its persister and reflow monitor.
func NewModel(opts Options) Model {
	log := opts.Logger.With().Str("component", "ui").Logger()

	persister := layout.NewPersister(opts.KV, opts.Logger)
	st := layout.NewStore(persister.Load(), persister)

	main, center := layout.NewSurface(), layout.NewSurface()
	monitor := layout.NewMonitor(st)
	monitor.Attach(main, center)

	mode := theme.Load(opts.KV)
	if m, ok := theme.Parse(opts.Config.Theme); ok {
		mode = m
	}

	m := Model{
		cfg:          opts.Config,
		configPath:   opts.ConfigPath,
		kv:           opts.KV,
		log:          log,
		persister:    persister,
		layout:       st,
		drag:         layout.NewController(st),
		monitor:      monitor,
		main:         main,
		center:       center,
		keys:         defaultKeyMap(),
		settingsKeys: defaultSettingsKeys(),
		help:         help.New(),
		mode:         mode,
		termDark:     opts.TerminalDark,
	}
	m.applyPalette()
	log.Debug().Str("theme", string(mode)).Interface("layout", st.Current()).Msg("model ready")
	return m
}

func (m Model) Init() tea.Cmd {
	if m.configPath == "" {
		return nil
	}
	return watcher.Watch(m.configPath)
}

// Layout returns the current layout state.
func (m Model) Layout() layout.State { return m.layout.Current() }

// Theme returns the selected theme mode.
func (m Model) Theme() theme.Mode { return m.mode }

// Shutdown writes any pending layout change and detaches from the surfaces.
// Call it once the program has exited.
func (m Model) Shutdown() {
	m.drag.Cancel()
	m.monitor.Close()
	m.persister.Flush()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.help.Width = msg.Width
		m.relayout()
		return m, nil

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case watcher.ConfigChangedMsg:
		m.reloadConfig()
		return m, watcher.Watch(msg.Path)

	case tea.KeyMsg:
		if m.showSettings {
			return m.handleSettingsKey(msg)
		}
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.drag.Cancel()
		m.persister.Flush()
		return m, tea.Quit
	case key.Matches(msg, m.keys.ToggleLeft):
		m.toggle(layout.PaneLeft)
	case key.Matches(msg, m.keys.ToggleBottom):
		m.toggle(layout.PaneBottom)
	case key.Matches(msg, m.keys.ToggleRight):
		m.toggle(layout.PaneRight)
	case key.Matches(msg, m.keys.Theme):
		m.setTheme(m.mode.Next())
	case key.Matches(msg, m.keys.Settings):
		m.openSettings()
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case msg.String() == "esc":
		m.drag.Cancel()
	}
	return m, nil
}

func (m Model) handleSettingsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.settingsKeys.Close):
		m.showSettings = false
	case key.Matches(msg, m.settingsKeys.Up):
		if m.settingsCursor > 0 {
			m.settingsCursor--
		}
	case key.Matches(msg, m.settingsKeys.Down):
		if m.settingsCursor < len(theme.Modes)-1 {
			m.settingsCursor++
		}
	case key.Matches(msg, m.settingsKeys.Select):
		m.setTheme(theme.Modes[m.settingsCursor])
	case msg.String() == "ctrl+c":
		m.persister.Flush()
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	p := m.pointer(msg)

	switch msg.Action {
	case tea.MouseActionPress:
		if m.showSettings {
			if msg.Button == tea.MouseButtonLeft {
				m.showSettings = false
			}
			return m, nil
		}
		if p.Button != layout.ButtonPrimary {
			return m, nil
		}
		if act, ok := buttonAt(headerButtons(m.width, m.layout.Current(), m.mode), msg.X, msg.Y); ok {
			m.runAction(act)
			return m, nil
		}
		if pane, ok := m.geo.closeAt(msg.X, msg.Y); ok {
			m.layout.SetVisible(pane, false)
			m.relayout()
			return m, nil
		}
		if pane, ok := m.geo.handleAt(msg.X, msg.Y); ok {
			if m.drag.PointerDown(pane, p) {
				m.log.Trace().Stringer("pane", pane).Msg("drag start")
			}
		}

	case tea.MouseActionMotion:
		if m.drag.PointerMove(p) {
			m.relayout()
		}

	case tea.MouseActionRelease:
		if m.drag.Dragging() {
			m.drag.PointerUp(p)
			m.relayout()
		}
	}
	return m, nil
}

// pointer converts a mouse event to pixel coordinates.
func (m Model) pointer(msg tea.MouseMsg) layout.Pointer {
	btn := layout.ButtonNone
	switch msg.Button {
	case tea.MouseButtonLeft:
		btn = layout.ButtonPrimary
	case tea.MouseButtonMiddle:
		btn = layout.ButtonMiddle
	case tea.MouseButtonRight:
		btn = layout.ButtonSecondary
	}
	return layout.Pointer{
		X:      float64(msg.X) * m.cfg.CellWidth,
		Y:      float64(msg.Y) * m.cfg.CellHeight,
		Button: btn,
		ID:     mousePointer,
	}
}

func (m *Model) runAction(act headerAction) {
	switch act {
	case actionToggleLeft:
		m.toggle(layout.PaneLeft)
	case actionToggleBottom:
		m.toggle(layout.PaneBottom)
	case actionToggleRight:
		m.toggle(layout.PaneRight)
	case actionTheme:
		m.setTheme(m.mode.Next())
	case actionSettings:
		m.openSettings()
	}
}

func (m *Model) toggle(p layout.Pane) {
	m.drag.Cancel()
	m.layout.Toggle(p)
	m.relayout()
}

func (m *Model) openSettings() {
	m.showSettings = true
	m.settingsCursor = 0
	for i, mode := range theme.Modes {
		if mode == m.mode {
			m.settingsCursor = i
		}
	}
}

func (m *Model) setTheme(mode theme.Mode) {
	if mode == m.mode {
		return
	}
	m.mode = mode
	m.applyPalette()
	if err := theme.Save(m.kv, mode); err != nil {
		m.log.Warn().Err(err).Msg("save theme")
	}
}

func (m *Model) applyPalette() {
	m.palette = paletteFor(m.mode.IsDark(m.termDark))
	m.help.Styles.ShortKey = lipgloss.NewStyle().Foreground(m.palette.Accent)
	m.help.Styles.FullKey = m.help.Styles.ShortKey
	m.help.Styles.ShortDesc = lipgloss.NewStyle().Foreground(m.palette.BarText)
	m.help.Styles.FullDesc = m.help.Styles.ShortDesc
	m.help.Styles.ShortSeparator = lipgloss.NewStyle().Foreground(m.palette.Dim)
	m.help.Styles.FullSeparator = m.help.Styles.ShortSeparator
}

func (m *Model) reloadConfig() {
	cfg := config.Load()
	m.log.Info().
		Float64("cell_width", cfg.CellWidth).
		Float64("cell_height", cfg.CellHeight).
		Str("theme", cfg.Theme).
		Msg("config reloaded")
	m.cfg = cfg
	if mode, ok := theme.Parse(cfg.Theme); ok && mode != m.mode {
		m.mode = mode
		m.applyPalette()
	}
	m.relayout()
}

// relayout feeds the terminal size to the main surface, projects the
// resulting state onto cells, then feeds the center column size back. The
// center observation can clamp the bottom pane, so the projection is
// repeated.
func (m *Model) relayout() {
	if !m.ready {
		return
	}
	cw, ch := m.cfg.CellWidth, m.cfg.CellHeight
	m.main.Resize(bodySize(m.width, m.height, cw, ch))
	m.geo = computeGeometry(m.layout.Current(), m.width, m.height, cw, ch)
	m.center.Resize(m.geo.centerSize(cw, ch))
	m.geo = computeGeometry(m.layout.Current(), m.width, m.height, cw, ch)
}

func (m Model) View() string {
	if !m.ready {
		return ""
	}
	if m.showSettings {
		return m.renderSettings()
	}

	st := m.layout.Current()
	sess, dragging := m.drag.Session()
	active := func(p layout.Pane) bool { return dragging && sess.Kind == p }

	var b strings.Builder
	b.WriteString(renderHeader(m.palette, m.width, headerButtons(m.width, st, m.mode)))
	b.WriteString("\n")
	if body := m.renderBody(st, active); body != "" {
		b.WriteString(body)
		b.WriteString("\n")
	}
	b.WriteString(m.renderStatusBar(st))
	return b.String()
}

func (m Model) renderBody(st layout.State, active func(layout.Pane) bool) string {
	g := m.geo
	if g.bodyRows <= 0 {
		return ""
	}
	text := lipgloss.NewStyle().Foreground(m.palette.Text)
	dim := lipgloss.NewStyle().Foreground(m.palette.Dim)
	describe := func(name string, p layout.Pane) string {
		return text.Render(name) + "\n" + dim.Render(fmt.Sprintf("%.0f px", st.Size(p)))
	}

	var cols []string
	if st.ShowLeft && g.leftCols > 0 {
		cols = append(cols,
			RenderPanel(m.palette, "LEFT", describe("Left frame", layout.PaneLeft),
				g.leftCols, g.bodyRows, active(layout.PaneLeft), g.leftCols >= 8),
			RenderVHandle(m.palette, g.bodyRows, active(layout.PaneLeft)),
		)
	} else if st.ShowLeft {
		cols = append(cols, RenderVHandle(m.palette, g.bodyRows, active(layout.PaneLeft)))
	}

	if g.centerCols > 0 {
		center := []string{}
		if g.topRows > 0 {
			center = append(center, RenderPanel(m.palette, "MAIN",
				text.Render("Top frame (main content)"), g.centerCols, g.topRows, false, false))
		}
		if g.bottomHandleY >= 0 {
			center = append(center, RenderHHandle(m.palette, g.centerCols, active(layout.PaneBottom)))
			if g.bottomRows > 0 {
				center = append(center, RenderPanel(m.palette, "BOTTOM", describe("Bottom frame", layout.PaneBottom),
					g.centerCols, g.bottomRows, active(layout.PaneBottom), g.centerCols >= 8))
			}
		}
		cols = append(cols, lipgloss.JoinVertical(lipgloss.Left, center...))
	}

	if st.ShowRight {
		cols = append(cols, RenderVHandle(m.palette, g.bodyRows, active(layout.PaneRight)))
		if g.rightCols > 0 {
			cols = append(cols, RenderPanel(m.palette, "RIGHT", describe("Right frame", layout.PaneRight),
				g.rightCols, g.bodyRows, active(layout.PaneRight), g.rightCols >= 8))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cols...)
}

func (m Model) renderStatusBar(st layout.State) string {
	bg := lipgloss.NewStyle().Background(m.palette.BarBg)
	bindings := m.keys.ShortHelp()
	if m.help.ShowAll {
		// the status bar is a single row, so the full help is flattened
		bindings = nil
		for _, group := range m.keys.FullHelp() {
			bindings = append(bindings, group...)
		}
	}
	left := bg.Render("  ") + m.help.ShortHelpView(bindings)

	right := fmt.Sprintf("L %.0f  R %.0f  B %.0f  %s  ",
		st.LeftWidth, st.RightWidth, st.BottomHeight, strings.ToUpper(m.cfg.Storage))
	rightW := visibleLen(right)
	spacer := max(m.width-visibleLen(left)-rightW, 1)
	line := left + bg.Render(strings.Repeat(" ", spacer)) + bg.Foreground(m.palette.Dim).Render(right)
	return fitWidth(line, m.width)
}
