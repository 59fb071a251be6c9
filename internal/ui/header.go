package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/thinkwright/context-assistant/internal/layout"
	"github.com/thinkwright/context-assistant/internal/theme"
)

const appTitle = "CONTEXT ASSISTANT"

type headerAction int

const (
	actionToggleLeft headerAction = iota
	actionToggleBottom
	actionToggleRight
	actionTheme
	actionSettings
)

// headerButton is a clickable label on the header row.
type headerButton struct {
	label  string
	action headerAction
	on     bool
	x, w   int
}

// headerButtons lays out the buttons right-aligned on the header row. Buttons
// that would overlap the title are dropped from the left.
func headerButtons(width int, st layout.State, mode theme.Mode) []headerButton {
	btns := []headerButton{
		{label: "[1] LEFT", action: actionToggleLeft, on: st.ShowLeft},
		{label: "[2] BOTTOM", action: actionToggleBottom, on: st.ShowBottom},
		{label: "[3] RIGHT", action: actionToggleRight, on: st.ShowRight},
		{label: "[t] THEME: " + strings.ToUpper(string(mode)), action: actionTheme, on: true},
		{label: "[s] SETTINGS", action: actionSettings, on: true},
	}

	x := width - 1
	minX := len(appTitle) + 3
	first := len(btns)
	for i := len(btns) - 1; i >= 0; i-- {
		w := visibleLen(btns[i].label)
		if x-w < minX {
			break
		}
		x -= w
		btns[i].x, btns[i].w = x, w
		first = i
		x-- // gap
	}
	return btns[first:]
}

func buttonAt(btns []headerButton, x, y int) (headerAction, bool) {
	if y != 0 {
		return 0, false
	}
	for _, b := range btns {
		if x >= b.x && x < b.x+b.w {
			return b.action, true
		}
	}
	return 0, false
}

func renderHeader(p Palette, width int, btns []headerButton) string {
	if width <= 0 {
		return ""
	}
	bg := lipgloss.NewStyle().Background(p.BarBg)
	title := bg.Foreground(p.Accent).Bold(true).Render(" " + appTitle)

	var b strings.Builder
	b.WriteString(title)
	col := 1 + len(appTitle)
	for _, btn := range btns {
		if btn.x > col {
			b.WriteString(bg.Render(strings.Repeat(" ", btn.x-col)))
			col = btn.x
		}
		color := p.BarText
		if !btn.on {
			color = p.Off
		}
		b.WriteString(bg.Foreground(color).Render(btn.label))
		col += btn.w
	}
	if col < width {
		b.WriteString(bg.Render(strings.Repeat(" ", width-col)))
	}
	return fitWidth(b.String(), width)
}
