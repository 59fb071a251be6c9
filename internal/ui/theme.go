package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"
)

// Palette is the set of colors panes are painted with.
type Palette struct {
	Border       lipgloss.Color
	BorderActive lipgloss.Color
	Title        lipgloss.Color
	TitleActive  lipgloss.Color
	Text         lipgloss.Color
	Dim          lipgloss.Color
	BarBg        lipgloss.Color // status/header bar background
	BarText      lipgloss.Color
	Handle       lipgloss.Color
	HandleActive lipgloss.Color // handle being dragged
	Accent       lipgloss.Color
	Off          lipgloss.Color // hidden pane toggles
}

// Nostromo MU/TH/UR 6000 color palette
var darkPalette = Palette{
	Border:       lipgloss.Color("#3a6678"),
	BorderActive: lipgloss.Color("#70cc90"),
	Title:        lipgloss.Color("#5a9ab5"),
	TitleActive:  lipgloss.Color("#a0ffbb"),
	Text:         lipgloss.Color("#8899a5"),
	Dim:          lipgloss.Color("#3a5565"),
	BarBg:        lipgloss.Color("#0f1e28"),
	BarText:      lipgloss.Color("#d0dde5"),
	Handle:       lipgloss.Color("#1a2a35"),
	HandleActive: lipgloss.Color("#c8d84a"),
	Accent:       lipgloss.Color("#7fcfdf"),
	Off:          lipgloss.Color("#5a5030"),
}

var lightPalette = Palette{
	Border:       lipgloss.Color("#8fb3c2"),
	BorderActive: lipgloss.Color("#2f8a55"),
	Title:        lipgloss.Color("#2d6a85"),
	TitleActive:  lipgloss.Color("#1d6b3c"),
	Text:         lipgloss.Color("#33414a"),
	Dim:          lipgloss.Color("#7d909c"),
	BarBg:        lipgloss.Color("#dde7ec"),
	BarText:      lipgloss.Color("#1b2a33"),
	Handle:       lipgloss.Color("#c3d2da"),
	HandleActive: lipgloss.Color("#8a9a12"),
	Accent:       lipgloss.Color("#1f7f96"),
	Off:          lipgloss.Color("#a89a6a"),
}

func paletteFor(dark bool) Palette {
	if dark {
		return darkPalette
	}
	return lightPalette
}

// ─── Custom Border Rendering ──────────────────────────────────────────
// Renders panels with inline title in the top border:
//   ┏━╸ LEFT ╺━━━━━━━━━━━━━━━━━✕━┓
//   ┃                             ┃
//   ┗━━━━━━━━━━━━━━━━━━━━━━━━━━━━━┛
// w and h are the outer size. A closable panel carries ✕ three columns
// from its right edge.

// RenderPanel draws a panel with an inline title in the top border.
func RenderPanel(p Palette, title, content string, w, h int, active, closable bool) string {
	if w <= 0 || h <= 0 {
		return ""
	}
	if w < 4 || h < 2 {
		return blankBlock(w, h)
	}

	borderColor, titleColor := p.Border, p.Title
	if active {
		borderColor, titleColor = p.BorderActive, p.TitleActive
	}
	bc := lipgloss.NewStyle().Foreground(borderColor)
	tc := lipgloss.NewStyle().Foreground(titleColor).Bold(true)

	innerW := w - 2 // subtract left+right border chars
	innerH := h - 2

	tailW := 1 // "┓"
	if closable {
		tailW = 3 // "✕━┓"
	}

	// "┏━╸" + title + "╺" + fill + tail
	room := w - 3 - 1 - tailW
	titleText := " " + title + " "
	if runewidth.StringWidth(titleText) > room {
		titleText = runewidth.Truncate(titleText, max(room, 0), "")
	}
	fillLen := max(room-runewidth.StringWidth(titleText), 0)

	var top string
	if room < 0 {
		top = bc.Render("┏" + strings.Repeat("━", innerW) + "┓")
	} else {
		tail := bc.Render("┓")
		if closable {
			tail = lipgloss.NewStyle().Foreground(p.Accent).Render("✕") + bc.Render("━┓")
		}
		top = bc.Render("┏━╸") + tc.Render(titleText) + bc.Render("╺"+strings.Repeat("━", fillLen)) + tail
	}
	bottom := bc.Render("┗" + strings.Repeat("━", innerW) + "┛")
	side := bc.Render("┃")

	// ── Content lines ──
	lines := strings.Split(content, "\n")
	for len(lines) < innerH {
		lines = append(lines, "")
	}
	if len(lines) > innerH {
		lines = lines[:innerH]
	}

	rows := make([]string, 0, h)
	rows = append(rows, top)
	for _, line := range lines {
		rows = append(rows, side+fitWidth(line, innerW)+side)
	}
	rows = append(rows, bottom)
	return strings.Join(rows, "\n")
}

// RenderVHandle draws a one-column vertical resize handle.
func RenderVHandle(p Palette, h int, dragging bool) string {
	if h <= 0 {
		return ""
	}
	color := p.Handle
	if dragging {
		color = p.HandleActive
	}
	glyph := lipgloss.NewStyle().Foreground(color).Render("│")
	return strings.TrimSuffix(strings.Repeat(glyph+"\n", h), "\n")
}

// RenderHHandle draws a one-row horizontal resize handle.
func RenderHHandle(p Palette, w int, dragging bool) string {
	if w <= 0 {
		return ""
	}
	color := p.Handle
	if dragging {
		color = p.HandleActive
	}
	return lipgloss.NewStyle().Foreground(color).Render(strings.Repeat("─", w))
}

// fitWidth pads or truncates s to exactly w visible columns.
func fitWidth(s string, w int) string {
	if w <= 0 {
		return ""
	}
	visible := visibleLen(s)
	if visible > w {
		return ansi.Truncate(s, w, "")
	}
	return s + strings.Repeat(" ", w-visible)
}

func blankBlock(w, h int) string {
	if w <= 0 || h <= 0 {
		return ""
	}
	line := strings.Repeat(" ", w)
	rows := make([]string, h)
	for i := range rows {
		rows[i] = line
	}
	return strings.Join(rows, "\n")
}

func visibleLen(s string) int {
	return ansi.StringWidth(s)
}
