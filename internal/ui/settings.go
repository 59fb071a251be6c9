package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/thinkwright/context-assistant/internal/theme"
)

var themeLabels = map[theme.Mode][2]string{
	theme.System: {"System", "Default"},
	theme.Light:  {"Light", "Always light"},
	theme.Dark:   {"Dark", "Always dark"},
}

func (m Model) renderSettings() string {
	p := m.palette
	modalW := min(m.width, 56)
	innerW := modalW - 2

	title := lipgloss.NewStyle().Foreground(p.Accent).Bold(true)
	text := lipgloss.NewStyle().Foreground(p.Text)
	dim := lipgloss.NewStyle().Foreground(p.Dim)
	sel := lipgloss.NewStyle().Foreground(p.TitleActive).Bold(true)

	var lines []string
	add := func(s string) { lines = append(lines, s) }

	add("")
	add("  " + title.Render("THEME"))
	add("  " + dim.Render("Choose light/dark, or follow the terminal."))
	add("")
	for i, mode := range theme.Modes {
		mark := "( )"
		if mode == m.mode {
			mark = "(•)"
		}
		l := themeLabels[mode]
		label := fmt.Sprintf("%s %-7s %s", mark, l[0], l[1])
		if i == m.settingsCursor {
			add("  " + sel.Render("▸ "+label))
		} else {
			add("    " + text.Render(label))
		}
	}
	if m.cfg.Theme != "" {
		add("")
		add("  " + dim.Render("config.json sets theme "+m.cfg.Theme+" at startup"))
	}

	add("")
	add("  " + dim.Render(strings.Repeat("─", max(innerW-4, 0))))
	add("")
	add("  " + title.Render("STORAGE"))
	add("")
	add(fmt.Sprintf("  Backend:  %s", text.Render(m.cfg.Storage)))
	add(fmt.Sprintf("  Cell:     %s", text.Render(fmt.Sprintf("%.0f×%.0f px", m.cfg.CellWidth, m.cfg.CellHeight))))
	add("")
	add(dim.Render("  ↑↓ navigate  Enter select  Esc close"))

	modal := RenderPanel(p, "SETTINGS", strings.Join(lines, "\n"), modalW, len(lines)+2, true, false)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal)
}
