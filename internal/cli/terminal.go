package cli

import (
	"fmt"
	"math"
	"os"

	"golang.org/x/term"

	"github.com/thinkwright/context-assistant/internal/config"
	"github.com/thinkwright/context-assistant/internal/layout"
)

// minTerminalSize is the smallest terminal that fits every frame at its
// lower bound, dividers and bars included.
func minTerminalSize(cfg config.Config) (cols, rows int) {
	width := layout.LeftMin + layout.MinCenterWidth + layout.RightMin
	height := layout.MinTopHeight + layout.BottomMin
	cols = int(math.Ceil(width/cfg.CellWidth)) + 2
	rows = int(math.Ceil(height/cfg.CellHeight)) + 3
	return cols, rows
}

// growTerminal asks the terminal to grow to the minimum size. Terminals that
// ignore the request keep working; frames are clamped to what fits.
func growTerminal(out *os.File, cfg config.Config) {
	minCols, minRows := minTerminalSize(cfg)
	w, h, err := term.GetSize(int(out.Fd()))
	if err != nil {
		return
	}
	if w < minCols || h < minRows {
		fmt.Fprintf(out, "\x1b[8;%d;%dt", max(h, minRows), max(w, minCols))
	}
}
