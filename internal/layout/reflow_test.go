package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSurface_NotifiesOnChangeOnly(t *testing.T) {
	s := NewSurface()
	var seen []Size
	unsub := s.Subscribe(func(sz Size) { seen = append(seen, sz) })

	s.Resize(Size{Width: 800, Height: 600})
	s.Resize(Size{Width: 800, Height: 600})
	s.Resize(Size{Width: 640, Height: 600})
	unsub()
	s.Resize(Size{Width: 1, Height: 1})

	assert.Equal(t, []Size{{800, 600}, {640, 600}}, seen)
	assert.Equal(t, Size{Width: 1, Height: 1}, s.Size())
}

// observe reports both surfaces, main first, as a resize does.
func observe(m *Monitor, met Metrics) {
	m.ObserveMain(Size{Width: met.MainWidth, Height: met.MainHeight})
	m.ObserveCenter(Size{Width: met.CenterWidth, Height: met.CenterHeight})
}

func TestMonitor_ShrinkPullsPanesIntoRange(t *testing.T) {
	rec := &recorder{}
	initial := DefaultState()
	initial.RightWidth = 700
	initial.BottomHeight = 450
	s := NewStore(initial, rec)
	m := NewMonitor(s)

	observe(m, Metrics{MainWidth: 1400, MainHeight: 700, CenterHeight: 700})
	assert.Equal(t, 700.0, s.Current().RightWidth)
	assert.Equal(t, 450.0, s.Current().BottomHeight)
	assert.Empty(t, rec.states)

	observe(m, Metrics{MainWidth: 900, MainHeight: 500, CenterHeight: 500})
	assert.Equal(t, 460.0, s.Current().RightWidth)
	assert.Equal(t, 380.0, s.Current().BottomHeight)
	// one correction per surface, the last one is what gets persisted
	require.Len(t, rec.states, 2)
	assert.Equal(t, 460.0, rec.states[0].RightWidth)
	assert.Equal(t, s.Current(), rec.states[1])
}

func TestMonitor_ReflowIsIdempotent(t *testing.T) {
	rec := &recorder{}
	initial := DefaultState()
	initial.RightWidth = 2000
	s := NewStore(initial, rec)
	m := NewMonitor(s)
	met := Metrics{MainWidth: 1000, MainHeight: 600, CenterHeight: 600}

	observe(m, met)
	after := s.Current()
	writes := len(rec.states)

	observe(m, met)

	assert.Equal(t, after, s.Current())
	assert.Len(t, rec.states, writes)
}

func TestMonitor_AttachUsesSurfaces(t *testing.T) {
	initial := DefaultState()
	initial.RightWidth = 900
	initial.BottomHeight = 900
	s := NewStore(initial, nil)
	m := NewMonitor(s)

	main, center := NewSurface(), NewSurface()
	m.Attach(main, center)

	// Nothing measured yet: right and bottom keep their persisted values
	assert.Equal(t, 900.0, s.Current().RightWidth)
	assert.Equal(t, 900.0, s.Current().BottomHeight)

	main.Resize(Size{Width: 1200, Height: 700})
	assert.Equal(t, 760.0, s.Current().RightWidth)
	assert.Equal(t, 900.0, s.Current().BottomHeight, "center not measured yet")

	center.Resize(Size{Width: 500, Height: 700})
	assert.Equal(t, 580.0, s.Current().BottomHeight)
	assert.Equal(t, Metrics{MainWidth: 1200, MainHeight: 700, CenterWidth: 500, CenterHeight: 700}, s.Metrics())

	m.Close()
	main.Resize(Size{Width: 700, Height: 700})
	assert.Equal(t, 760.0, s.Current().RightWidth, "closed monitor no longer reflows")
}

func TestMonitor_AttachTakesExistingSizes(t *testing.T) {
	s := NewStore(DefaultState().WithSize(PaneRight, 800), nil)
	main, center := NewSurface(), NewSurface()
	main.Resize(Size{Width: 1000, Height: 600})
	center.Resize(Size{Width: 400, Height: 600})

	NewMonitor(s).Attach(main, center)

	assert.Equal(t, 560.0, s.Current().RightWidth)
}
