package layout

// Size is a measured width and height in pixels.
type Size struct {
	Width, Height float64
}

// Surface is an observable container size. Subscribers are told about every
// size change, not about repeated reports of the same size.
type Surface struct {
	size   Size
	nextID int
	subs   map[int]func(Size)
}

func NewSurface() *Surface {
	return &Surface{subs: make(map[int]func(Size))}
}

func (s *Surface) Size() Size { return s.size }

// Resize records a new measurement and notifies subscribers if it differs
// from the last one.
func (s *Surface) Resize(sz Size) {
	if sz == s.size {
		return
	}
	s.size = sz
	for _, fn := range s.subs {
		fn(sz)
	}
}

// Subscribe registers fn and returns a func that removes it.
func (s *Surface) Subscribe(fn func(Size)) (unsubscribe func()) {
	id := s.nextID
	s.nextID++
	s.subs[id] = fn
	return func() { delete(s.subs, id) }
}

// Monitor keeps store metrics in step with the main and center surfaces and
// re-clamps the stored sizes whenever either changes.
type Monitor struct {
	store *Store
	unsub []func()
}

func NewMonitor(store *Store) *Monitor {
	return &Monitor{store: store}
}

// Attach subscribes to both surfaces and takes their current sizes as the
// first observation.
func (m *Monitor) Attach(main, center *Surface) {
	m.unsub = append(m.unsub,
		main.Subscribe(m.ObserveMain),
		center.Subscribe(m.ObserveCenter),
	)
	met := m.store.Metrics()
	met.MainWidth, met.MainHeight = main.Size().Width, main.Size().Height
	met.CenterWidth, met.CenterHeight = center.Size().Width, center.Size().Height
	m.reflow(met)
}

// Close unsubscribes from the surfaces.
func (m *Monitor) Close() {
	for _, fn := range m.unsub {
		fn()
	}
	m.unsub = nil
}

// ObserveMain handles a size change of the main content region.
func (m *Monitor) ObserveMain(sz Size) {
	met := m.store.Metrics()
	met.MainWidth, met.MainHeight = sz.Width, sz.Height
	m.reflow(met)
}

// ObserveCenter handles a size change of the center column.
func (m *Monitor) ObserveCenter(sz Size) {
	met := m.store.Metrics()
	met.CenterWidth, met.CenterHeight = sz.Width, sz.Height
	m.reflow(met)
}

func (m *Monitor) reflow(met Metrics) {
	m.store.SetMetrics(met)
	m.store.Apply(identity)
}
