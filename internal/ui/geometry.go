package ui

import (
	"math"

	"github.com/thinkwright/context-assistant/internal/layout"
)

// Rows reserved outside the pane area.
const (
	headerRows = 1
	statusRows = 1
)

// geometry is the layout state projected onto terminal cells. It is derived
// once per state or size change and shared by View and mouse hit-testing.
//
//	header
//	left │ top          │ right
//	     │ ──────────── │
//	     │ bottom       │
//	status
type geometry struct {
	width, height int

	bodyTop  int
	bodyRows int

	leftCols   int
	rightCols  int
	centerX    int
	centerCols int

	topRows    int
	bottomRows int

	// -1 when the pane is hidden
	leftHandleX   int
	rightHandleX  int
	bottomHandleY int
}

// cells converts pixels to whole cells.
func cells(px, cell float64) int {
	if px <= 0 || cell <= 0 {
		return 0
	}
	return int(math.Round(px / cell))
}

// bodySize is the main content region in pixels.
func bodySize(width, height int, cw, ch float64) layout.Size {
	rows := max(height-headerRows-statusRows, 0)
	return layout.Size{Width: float64(width) * cw, Height: float64(rows) * ch}
}

func computeGeometry(st layout.State, width, height int, cw, ch float64) geometry {
	g := geometry{
		width:         width,
		height:        height,
		bodyTop:       headerRows,
		bodyRows:      max(height-headerRows-statusRows, 0),
		leftHandleX:   -1,
		rightHandleX:  -1,
		bottomHandleY: -1,
	}

	handles := 0
	if st.ShowLeft {
		g.leftCols = cells(st.LeftWidth, cw)
		handles++
	}
	if st.ShowRight {
		g.rightCols = cells(st.RightWidth, cw)
		handles++
	}

	// Terminals narrower than the bounds allow still get a center column;
	// only the rendering gives way, the stored sizes are untouched.
	g.centerCols = width - g.leftCols - g.rightCols - handles
	if g.centerCols < 1 {
		over := 1 - g.centerCols
		cut := min(over, g.rightCols)
		g.rightCols -= cut
		over -= cut
		g.leftCols -= min(over, g.leftCols)
		g.centerCols = max(width-g.leftCols-g.rightCols-handles, 0)
	}

	x := 0
	if st.ShowLeft {
		x = g.leftCols
		g.leftHandleX = x
		x++
	}
	g.centerX = x
	x += g.centerCols
	if st.ShowRight {
		g.rightHandleX = x
	}

	g.topRows = g.bodyRows
	if st.ShowBottom && g.bodyRows > 0 {
		g.bottomRows = min(cells(st.BottomHeight, ch), max(g.bodyRows-2, 0))
		g.topRows = g.bodyRows - g.bottomRows - 1
		g.bottomHandleY = g.bodyTop + g.topRows
	}
	return g
}

// centerSize is the center column in pixels, bottom pane included.
func (g geometry) centerSize(cw, ch float64) layout.Size {
	return layout.Size{Width: float64(g.centerCols) * cw, Height: float64(g.bodyRows) * ch}
}

func (g geometry) inBody(y int) bool {
	return y >= g.bodyTop && y < g.bodyTop+g.bodyRows
}

// handleAt returns the pane whose resize handle is under cell (x, y).
func (g geometry) handleAt(x, y int) (layout.Pane, bool) {
	if !g.inBody(y) {
		return 0, false
	}
	switch {
	case g.leftHandleX >= 0 && x == g.leftHandleX:
		return layout.PaneLeft, true
	case g.rightHandleX >= 0 && x == g.rightHandleX:
		return layout.PaneRight, true
	case g.bottomHandleY >= 0 && y == g.bottomHandleY && x >= g.centerX && x < g.centerX+g.centerCols:
		return layout.PaneBottom, true
	}
	return 0, false
}

// closeAt returns the pane whose ✕ button is under cell (x, y). The button
// sits three columns from the pane's right edge on its top border; one
// column either side is accepted.
func (g geometry) closeAt(x, y int) (layout.Pane, bool) {
	near := func(edge int) bool {
		bx := edge - 3
		return x >= bx-1 && x <= bx+1
	}
	if y == g.bodyTop {
		if g.leftHandleX >= 0 && g.leftCols >= 8 && near(g.leftCols) {
			return layout.PaneLeft, true
		}
		if g.rightHandleX >= 0 && g.rightCols >= 8 && near(g.rightHandleX+1+g.rightCols) {
			return layout.PaneRight, true
		}
	}
	if g.bottomHandleY >= 0 && g.bottomRows >= 2 && y == g.bottomHandleY+1 && g.centerCols >= 8 && near(g.centerX+g.centerCols) {
		return layout.PaneBottom, true
	}
	return 0, false
}
