package layout

// Pane names one of the three hideable, resizable regions. The center pane is
// always visible and takes whatever space is left.
type Pane int

const (
	PaneLeft Pane = iota
	PaneRight
	PaneBottom
)

func (p Pane) String() string {
	switch p {
	case PaneLeft:
		return "left"
	case PaneRight:
		return "right"
	case PaneBottom:
		return "bottom"
	}
	return "unknown"
}

// State is the persisted layout. Sizes are kept while a pane is hidden so
// showing it again restores the previous size.
type State struct {
	ShowLeft     bool    `json:"showLeft"`
	ShowRight    bool    `json:"showRight"`
	ShowBottom   bool    `json:"showBottom"`
	LeftWidth    float64 `json:"leftWidth"`
	RightWidth   float64 `json:"rightWidth"`
	BottomHeight float64 `json:"bottomHeight"`
}

func DefaultState() State {
	return State{
		ShowLeft:     true,
		ShowRight:    true,
		ShowBottom:   true,
		LeftWidth:    280,
		RightWidth:   360,
		BottomHeight: 260,
	}
}

// Visible reports whether pane p is shown.
func (s State) Visible(p Pane) bool {
	switch p {
	case PaneLeft:
		return s.ShowLeft
	case PaneRight:
		return s.ShowRight
	case PaneBottom:
		return s.ShowBottom
	}
	return false
}

// Size returns the stored size of pane p, whether or not it is visible.
func (s State) Size(p Pane) float64 {
	switch p {
	case PaneLeft:
		return s.LeftWidth
	case PaneRight:
		return s.RightWidth
	case PaneBottom:
		return s.BottomHeight
	}
	return 0
}

// WithVisible returns s with pane p shown or hidden.
func (s State) WithVisible(p Pane, visible bool) State {
	switch p {
	case PaneLeft:
		s.ShowLeft = visible
	case PaneRight:
		s.ShowRight = visible
	case PaneBottom:
		s.ShowBottom = visible
	}
	return s
}

// WithSize returns s with the size of pane p set to v.
func (s State) WithSize(p Pane, v float64) State {
	switch p {
	case PaneLeft:
		s.LeftWidth = v
	case PaneRight:
		s.RightWidth = v
	case PaneBottom:
		s.BottomHeight = v
	}
	return s
}

// Scheduler receives every committed state change.
type Scheduler interface {
	Schedule(State)
}

// Store is the single source of truth for the layout. Every mutation goes
// through Apply, which clamps against bounds derived from the latest metrics
// before committing.
//
// Store is not safe for concurrent use; it is owned by the UI event loop.
type Store struct {
	state    State
	metrics  Metrics
	sched    Scheduler
	applying bool
}

// NewStore returns a store seeded with initial. The initial value is clamped
// right away; a persistence write is scheduled only if clamping changed it.
// sched may be nil.
func NewStore(initial State, sched Scheduler) *Store {
	s := &Store{state: initial, sched: sched}
	s.Apply(identity)
	return s
}

func (s *Store) Current() State { return s.state }

func (s *Store) Metrics() Metrics { return s.metrics }

// SetMetrics replaces the measurements used by the next Apply. It does not
// clamp by itself; the reflow monitor follows it with an identity Apply.
func (s *Store) SetMetrics(m Metrics) { s.metrics = m }

// Bounds derives the current bounds from the latest metrics and state.
func (s *Store) Bounds() Bounds {
	return Constraints(s.metrics, s.state.ShowLeft)
}

// Apply runs fn over the current state, clamps the result against bounds
// derived from the latest metrics and the new visibility, and commits it. A
// changed state is handed to the scheduler. Calling Apply from within fn
// panics.
func (s *Store) Apply(fn func(State) State) State {
	if s.applying {
		panic("layout: Apply called from within a mutator")
	}
	next := s.mutate(fn)
	next = Constraints(s.metrics, next.ShowLeft).Clamp(next, s.metrics)
	if next == s.state {
		return next
	}
	s.state = next
	if s.sched != nil {
		s.sched.Schedule(next)
	}
	return next
}

// Toggle flips the visibility of pane p.
func (s *Store) Toggle(p Pane) State {
	return s.Apply(func(st State) State {
		return st.WithVisible(p, !st.Visible(p))
	})
}

// SetVisible shows or hides pane p.
func (s *Store) SetVisible(p Pane, visible bool) State {
	return s.Apply(func(st State) State {
		return st.WithVisible(p, visible)
	})
}

func (s *Store) mutate(fn func(State) State) State {
	s.applying = true
	defer func() { s.applying = false }()
	return fn(s.state)
}

func identity(s State) State { return s }
