package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDragFixture(t *testing.T, m Metrics) (*Store, *Controller) {
	t.Helper()
	s := NewStore(DefaultState(), nil)
	s.SetMetrics(m)
	return s, NewController(s)
}

func TestDrag_LeftGrowsWithX(t *testing.T) {
	s, c := newDragFixture(t, Metrics{MainWidth: 1600, MainHeight: 900, CenterHeight: 900})

	require.True(t, c.PointerDown(PaneLeft, Pointer{X: 100, Y: 40}))
	assert.True(t, c.PointerMove(Pointer{X: 150, Y: 80}))

	assert.Equal(t, 330.0, s.Current().LeftWidth)
}

func TestDrag_LeftClampsToFixedMax(t *testing.T) {
	s, c := newDragFixture(t, Metrics{})

	c.PointerDown(PaneLeft, Pointer{X: 0})
	c.PointerMove(Pointer{X: 1000})

	assert.Equal(t, 500.0, s.Current().LeftWidth)
}

func TestDrag_RightShrinksWithXAndClamps(t *testing.T) {
	// 840 - 240 (center) - 200 (left min) = 400
	s, c := newDragFixture(t, Metrics{MainWidth: 840, MainHeight: 600, CenterHeight: 600})
	require.Equal(t, 400.0, s.Bounds().RightMax)
	s.Apply(func(st State) State { return st.WithSize(PaneRight, 360) })

	c.PointerDown(PaneRight, Pointer{X: 0})
	c.PointerMove(Pointer{X: -100})

	// Requested 360 - (-100) = 460
	assert.Equal(t, 400.0, s.Current().RightWidth)

	c.PointerMove(Pointer{X: 20})
	assert.Equal(t, 340.0, s.Current().RightWidth)
}

func TestDrag_BottomShrinksWithY(t *testing.T) {
	s, c := newDragFixture(t, Metrics{MainWidth: 1600, MainHeight: 800, CenterHeight: 800})

	c.PointerDown(PaneBottom, Pointer{X: 999, Y: 500})
	c.PointerMove(Pointer{X: 0, Y: 450})
	assert.Equal(t, 310.0, s.Current().BottomHeight)

	c.PointerMove(Pointer{Y: 600})
	assert.Equal(t, 200.0, s.Current().BottomHeight, "clamped to bottom min")
}

func TestDrag_SessionRecordsStart(t *testing.T) {
	_, c := newDragFixture(t, Metrics{})

	_, ok := c.Session()
	assert.False(t, ok)

	c.PointerDown(PaneBottom, Pointer{X: 10, Y: 77, ID: 3})
	sess, ok := c.Session()
	require.True(t, ok)
	assert.Equal(t, Session{Kind: PaneBottom, Start: 77, StartSize: 260, PointerID: 3}, sess)
}

func TestDrag_NonPrimaryButtonIgnored(t *testing.T) {
	s, c := newDragFixture(t, Metrics{})

	assert.False(t, c.PointerDown(PaneLeft, Pointer{X: 0, Button: ButtonSecondary}))
	assert.False(t, c.Dragging())
	assert.False(t, c.PointerMove(Pointer{X: 100}))
	assert.Equal(t, 280.0, s.Current().LeftWidth)
}

func TestDrag_MoveWithoutSessionIsNoop(t *testing.T) {
	rec := &recorder{}
	s := NewStore(DefaultState(), rec)
	c := NewController(s)

	assert.False(t, c.PointerMove(Pointer{X: 500, Y: 500}))
	assert.Equal(t, DefaultState(), s.Current())
	assert.Empty(t, rec.states)
}

func TestDrag_PointerUpEndsSession(t *testing.T) {
	s, c := newDragFixture(t, Metrics{})

	c.PointerDown(PaneLeft, Pointer{X: 0})
	c.PointerMove(Pointer{X: 40})
	c.PointerUp(Pointer{X: 40, Button: ButtonNone})

	assert.False(t, c.Dragging())
	assert.False(t, c.PointerMove(Pointer{X: 200}))
	assert.Equal(t, 320.0, s.Current().LeftWidth, "size from the last move stays committed")
}

func TestDrag_CancelKeepsAppliedSize(t *testing.T) {
	s, c := newDragFixture(t, Metrics{})

	c.PointerDown(PaneLeft, Pointer{X: 0})
	c.PointerMove(Pointer{X: -30})
	c.Cancel()

	assert.False(t, c.Dragging())
	assert.Equal(t, 250.0, s.Current().LeftWidth)
}

func TestDrag_OtherPointerIgnored(t *testing.T) {
	s, c := newDragFixture(t, Metrics{})

	c.PointerDown(PaneLeft, Pointer{X: 0, ID: 1})
	assert.False(t, c.PointerMove(Pointer{X: 100, ID: 2}))
	assert.Equal(t, 280.0, s.Current().LeftWidth)
}

func TestDrag_BoundsChangeMidDrag(t *testing.T) {
	s, c := newDragFixture(t, Metrics{MainWidth: 1400, MainHeight: 800, CenterHeight: 800})
	mon := NewMonitor(s)

	c.PointerDown(PaneRight, Pointer{X: 500})
	c.PointerMove(Pointer{X: 300})
	require.Equal(t, 560.0, s.Current().RightWidth)

	// Window shrinks while the button is held: right max becomes 360
	mon.ObserveMain(Size{Width: 800, Height: 800})
	assert.Equal(t, 360.0, s.Current().RightWidth)

	// The session survives and clamps against the fresh bounds
	require.True(t, c.Dragging())
	c.PointerMove(Pointer{X: 200})
	assert.Equal(t, 360.0, s.Current().RightWidth)
	c.PointerMove(Pointer{X: 520})
	assert.Equal(t, 340.0, s.Current().RightWidth)
}
