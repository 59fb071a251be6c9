// Package layout holds the pane layout engine: bounds derivation, the
// clamped state store, pointer-drag resizing, viewport reflow and debounced
// persistence of the last-known layout. All sizes are logical pixels.
package layout

import "math"

// Fixed layout limits in pixels.
const (
	LeftMin = 200.0
	LeftMax = 500.0

	RightMin = 320.0

	BottomMin = 200.0

	// MinCenterWidth is the narrowest the center column may get when the
	// right pane is at its maximum and the left pane at its minimum.
	MinCenterWidth = 240.0
	// MinTopHeight is reserved for the main content above the bottom pane.
	MinTopHeight = 120.0
)

// Metrics are the live container measurements. A zero dimension means the
// container has not been measured yet.
type Metrics struct {
	MainWidth    float64
	MainHeight   float64
	CenterWidth  float64
	CenterHeight float64
}

// Bounds are the derived min/max sizes for each resizable dimension.
// Unmeasured axes have an infinite maximum.
type Bounds struct {
	LeftMin, LeftMax     float64
	RightMin, RightMax   float64
	BottomMin, BottomMax float64
}

// Constraints derives bounds from the current measurements and left pane
// visibility. Right pane bounds ignore bottom pane visibility and bottom pane
// bounds ignore both side panes: the axes are independent.
func Constraints(m Metrics, showLeft bool) Bounds {
	b := Bounds{
		LeftMin:   LeftMin,
		LeftMax:   LeftMax,
		RightMin:  RightMin,
		RightMax:  math.Inf(1),
		BottomMin: BottomMin,
		BottomMax: math.Inf(1),
	}

	if m.MainWidth > 0 {
		reserved := MinCenterWidth
		if showLeft {
			reserved += LeftMin
		}
		b.RightMax = math.Max(RightMin, m.MainWidth-reserved)
	}
	if m.CenterHeight > 0 {
		b.BottomMax = math.Max(BottomMin, m.CenterHeight-MinTopHeight)
	}
	return b
}

// Clamp pulls the stored sizes of s into b. Right and bottom sizes are left
// alone until their axis has been measured, so a persisted size is not forced
// to its minimum before the first real measurement arrives.
func (b Bounds) Clamp(s State, m Metrics) State {
	s.LeftWidth = clamp(s.LeftWidth, b.LeftMin, b.LeftMax)
	if m.MainWidth > 0 {
		s.RightWidth = clamp(s.RightWidth, b.RightMin, b.RightMax)
	}
	if m.CenterHeight > 0 {
		s.BottomHeight = clamp(s.BottomHeight, b.BottomMin, b.BottomMax)
	}
	return s
}

// Contains reports whether every size in s that has a measured axis lies
// within b.
func (b Bounds) Contains(s State, m Metrics) bool {
	if s.LeftWidth < b.LeftMin || s.LeftWidth > b.LeftMax {
		return false
	}
	if m.MainWidth > 0 && (s.RightWidth < b.RightMin || s.RightWidth > b.RightMax) {
		return false
	}
	if m.CenterHeight > 0 && (s.BottomHeight < b.BottomMin || s.BottomHeight > b.BottomMax) {
		return false
	}
	return true
}

func clamp(n, lo, hi float64) float64 {
	return math.Min(hi, math.Max(lo, n))
}
