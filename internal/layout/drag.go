package layout

// Button identifies a pointer button. Only ButtonPrimary starts a drag.
type Button int

const (
	ButtonPrimary Button = iota
	ButtonMiddle
	ButtonSecondary
	ButtonNone
)

// Pointer is one pointer event in host pixel coordinates.
type Pointer struct {
	X, Y   float64
	Button Button
	ID     int
}

// Session is an in-progress handle drag. Start is the pointer coordinate on
// the axis the handle moves along: X for the side panes, Y for the bottom.
type Session struct {
	Kind      Pane
	Start     float64
	StartSize float64
	PointerID int
}

// next returns the size requested for a pointer at p.
func (d Session) next(p Pointer) float64 {
	switch d.Kind {
	case PaneLeft:
		return d.StartSize + (p.X - d.Start)
	case PaneRight:
		// The handle sits on the right pane's left edge; moving right narrows it.
		return d.StartSize - (p.X - d.Start)
	case PaneBottom:
		// The handle sits above the bottom pane; moving down narrows it.
		return d.StartSize - (p.Y - d.Start)
	}
	return d.StartSize
}

// Controller turns handle drags into store mutations. It never clamps;
// every requested size goes through Store.Apply. At most one session exists
// at a time.
type Controller struct {
	store   *Store
	session *Session
}

func NewController(store *Store) *Controller {
	return &Controller{store: store}
}

// Session returns the active drag, if any.
func (c *Controller) Session() (Session, bool) {
	if c.session == nil {
		return Session{}, false
	}
	return *c.session, true
}

// Dragging reports whether a session is active.
func (c *Controller) Dragging() bool { return c.session != nil }

// PointerDown starts a session on the handle of pane kind. Non-primary
// buttons are ignored. The return value reports whether a session started;
// the host should capture the pointer when it did.
func (c *Controller) PointerDown(kind Pane, p Pointer) bool {
	if p.Button != ButtonPrimary {
		return false
	}
	start := p.X
	if kind == PaneBottom {
		start = p.Y
	}
	c.session = &Session{
		Kind:      kind,
		Start:     start,
		StartSize: c.store.Current().Size(kind),
		PointerID: p.ID,
	}
	return true
}

// PointerMove applies the size implied by p to the store. It is a no-op
// without an active session or for a pointer other than the one that started
// the session. It reports whether the store was asked to change.
func (c *Controller) PointerMove(p Pointer) bool {
	d := c.session
	if d == nil || p.ID != d.PointerID {
		return false
	}
	want := d.next(p)
	c.store.Apply(func(s State) State {
		return s.WithSize(d.Kind, want)
	})
	return true
}

// PointerUp ends the session for any button. The size applied by the last
// move is already committed.
func (c *Controller) PointerUp(Pointer) {
	c.session = nil
}

// Cancel ends the session, e.g. when pointer capture is lost.
func (c *Controller) Cancel() {
	c.session = nil
}
