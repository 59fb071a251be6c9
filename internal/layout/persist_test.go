package layout

import (
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// mockKV is a testify mock of the key-value service.
type mockKV struct {
	mock.Mock
}

func (m *mockKV) Get(key string) ([]byte, error) {
	args := m.Called(key)
	b, _ := args.Get(0).([]byte)
	return b, args.Error(1)
}

func (m *mockKV) Set(key string, value []byte) error {
	return m.Called(key, value).Error(0)
}

// memKV is a map-backed KV that counts writes.
type memKV struct {
	mu     sync.Mutex
	data   map[string][]byte
	writes int
}

func newMemKV() *memKV { return &memKV{data: map[string][]byte{}} }

func (m *memKV) Get(key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.data[key]
	if !ok {
		return nil, errors.New("not found")
	}
	return v, nil
}

func (m *memKV) Set(key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	m.writes++
	return nil
}

func (m *memKV) Writes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writes
}

// fakeTimers hands out timers that only fire when told to.
type fakeTimers struct {
	timers []*fakeTimer
}

type fakeTimer struct {
	d       time.Duration
	f       func()
	stopped bool
	fired   bool
}

func (t *fakeTimer) Stop() bool {
	live := !t.stopped && !t.fired
	t.stopped = true
	return live
}

func (ft *fakeTimers) after(d time.Duration, f func()) timer {
	t := &fakeTimer{d: d, f: f}
	ft.timers = append(ft.timers, t)
	return t
}

func (ft *fakeTimers) live() []*fakeTimer {
	var out []*fakeTimer
	for _, t := range ft.timers {
		if !t.stopped && !t.fired {
			out = append(out, t)
		}
	}
	return out
}

func (ft *fakeTimers) fireAll() {
	for _, t := range ft.live() {
		t.fired = true
		t.f()
	}
}

func newTestPersister(kv KV) (*Persister, *fakeTimers) {
	ft := &fakeTimers{}
	p := NewPersister(kv, zerolog.Nop())
	p.after = ft.after
	return p, ft
}

func loadFrom(t *testing.T, raw string) State {
	t.Helper()
	kv := newMemKV()
	kv.data[StorageKey] = []byte(raw)
	p, _ := newTestPersister(kv)
	return p.Load()
}

func TestLoad_EmptyStoreReturnsDefaults(t *testing.T) {
	p, _ := newTestPersister(newMemKV())

	assert.Equal(t, State{
		ShowLeft:     true,
		ShowRight:    true,
		ShowBottom:   true,
		LeftWidth:    280,
		RightWidth:   360,
		BottomHeight: 260,
	}, p.Load())
}

func TestLoad_PartialObjectMergesOverDefaults(t *testing.T) {
	got := loadFrom(t, `{"leftWidth": 999}`)

	want := DefaultState()
	want.LeftWidth = 999
	assert.Equal(t, want, got)

	// The store then clamps the passed-through value
	assert.Equal(t, 500.0, NewStore(got, nil).Current().LeftWidth)
}

func TestLoad_FullObject(t *testing.T) {
	got := loadFrom(t, `{"showLeft":false,"showRight":true,"showBottom":false,"leftWidth":300,"rightWidth":400,"bottomHeight":220}`)

	assert.Equal(t, State{
		ShowLeft:     false,
		ShowRight:    true,
		ShowBottom:   false,
		LeftWidth:    300,
		RightWidth:   400,
		BottomHeight: 220,
	}, got)
}

func TestLoad_MistypedFieldsFallBackIndividually(t *testing.T) {
	got := loadFrom(t, `{"showLeft":"yes","showRight":false,"rightWidth":"wide","bottomHeight":300,"leftWidth":null,"theme":"dark"}`)

	want := DefaultState()
	want.ShowRight = false
	want.BottomHeight = 300
	assert.Equal(t, want, got)
}

func TestLoad_InvalidDocumentsReturnDefaults(t *testing.T) {
	cases := map[string]string{
		"not json":     `not json`,
		"array":        `[1,2,3]`,
		"null":         `null`,
		"string":       `"layout"`,
		"truncated":    `{"leftWidth": 3`,
		"huge":         `{"leftWidth": 1e400}`,
		"empty object": `{}`,
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, DefaultState(), loadFrom(t, raw))
		})
	}
}

func TestLoad_ReadErrorReturnsDefaults(t *testing.T) {
	kv := &mockKV{}
	kv.On("Get", StorageKey).Return(nil, errors.New("storage unavailable"))
	p, _ := newTestPersister(kv)

	assert.Equal(t, DefaultState(), p.Load())
	kv.AssertExpectations(t)
}

func TestSchedule_DebouncesToLastState(t *testing.T) {
	kv := &mockKV{}
	p, ft := newTestPersister(kv)

	last := DefaultState()
	last.LeftWidth = 333
	want, err := json.Marshal(last)
	require.NoError(t, err)
	kv.On("Set", StorageKey, want).Return(nil).Once()

	first := DefaultState()
	first.LeftWidth = 300
	second := DefaultState()
	second.LeftWidth = 310

	p.Schedule(first)
	p.Schedule(second)
	p.Schedule(last)

	live := ft.live()
	require.Len(t, live, 1, "earlier writes are superseded")
	assert.Equal(t, SaveDelay, live[0].d)

	ft.fireAll()
	ft.fireAll()

	kv.AssertExpectations(t)
	kv.AssertNumberOfCalls(t, "Set", 1)
}

func TestSchedule_StaleTimerDoesNotWrite(t *testing.T) {
	kv := newMemKV()
	p, ft := newTestPersister(kv)

	p.Schedule(DefaultState())
	stale := ft.timers[0]
	p.Schedule(DefaultState().WithSize(PaneRight, 400))

	// A timer that raced past Stop must not write the old value
	stale.f()
	assert.Equal(t, 0, kv.Writes())

	ft.fireAll()
	require.Equal(t, 1, kv.Writes())
	assert.Equal(t, 400.0, p.Load().RightWidth)
}

// gateKV blocks its first Set until release is closed.
type gateKV struct {
	*memKV
	once    sync.Once
	entered chan struct{}
	release chan struct{}
}

func newGateKV() *gateKV {
	return &gateKV{memKV: newMemKV(), entered: make(chan struct{}), release: make(chan struct{})}
}

func (g *gateKV) Set(key string, value []byte) error {
	first := false
	g.once.Do(func() { first = true })
	if first {
		close(g.entered)
		<-g.release
	}
	return g.memKV.Set(key, value)
}

func TestFlush_LandsAfterSlowTimerWrite(t *testing.T) {
	kv := newGateKV()
	p, ft := newTestPersister(kv)

	p.Schedule(DefaultState().WithSize(PaneLeft, 300))
	slow := ft.live()[0]
	slow.fired = true
	go slow.f()
	<-kv.entered

	p.Schedule(DefaultState().WithSize(PaneLeft, 400))
	flushed := make(chan struct{})
	go func() {
		p.Flush()
		close(flushed)
	}()

	time.Sleep(20 * time.Millisecond)
	close(kv.release)
	select {
	case <-flushed:
	case <-time.After(5 * time.Second):
		t.Fatal("flush did not return")
	}

	require.Eventually(t, func() bool { return kv.Writes() >= 1 }, time.Second, time.Millisecond)
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, 400.0, p.Load().LeftWidth)
}

func TestWrite_SkipsSupersededGeneration(t *testing.T) {
	kv := newMemKV()
	p, _ := newTestPersister(kv)

	p.Schedule(DefaultState().WithSize(PaneLeft, 400))
	p.Flush()
	require.Equal(t, 1, kv.Writes())

	// a write captured before the flush arrives late
	p.write(DefaultState().WithSize(PaneLeft, 300), 1)

	assert.Equal(t, 1, kv.Writes())
	assert.Equal(t, 400.0, p.Load().LeftWidth)
}

func TestSchedule_WriteFailureIsSwallowed(t *testing.T) {
	kv := &mockKV{}
	kv.On("Set", StorageKey, mock.Anything).Return(errors.New("quota exceeded"))
	p, ft := newTestPersister(kv)

	assert.NotPanics(t, func() {
		p.Schedule(DefaultState())
		ft.fireAll()
		p.Schedule(DefaultState().WithVisible(PaneLeft, false))
		p.Flush()
	})
	kv.AssertNumberOfCalls(t, "Set", 2)
}

func TestFlush_WritesPendingOnce(t *testing.T) {
	kv := newMemKV()
	p, ft := newTestPersister(kv)

	p.Flush()
	assert.Equal(t, 0, kv.Writes(), "nothing pending")

	p.Schedule(DefaultState().WithSize(PaneBottom, 240))
	p.Flush()
	require.Equal(t, 1, kv.Writes())
	assert.Equal(t, 240.0, p.Load().BottomHeight)

	ft.fireAll()
	p.Flush()
	assert.Equal(t, 1, kv.Writes())
}

func TestStop_DropsPending(t *testing.T) {
	kv := newMemKV()
	p, ft := newTestPersister(kv)

	p.Schedule(DefaultState())
	p.Stop()
	ft.fireAll()
	p.Flush()

	assert.Equal(t, 0, kv.Writes())
}

func TestPersister_ThreeAppliesWithinWindowWriteOnce(t *testing.T) {
	kv := newMemKV()
	p := NewPersister(kv, zerolog.Nop())
	t.Cleanup(p.Stop)

	s := NewStore(DefaultState(), p)
	for _, w := range []float64{290, 300, 310} {
		s.Apply(func(st State) State { return st.WithSize(PaneLeft, w) })
		time.Sleep(10 * time.Millisecond)
	}

	require.Eventually(t, func() bool { return kv.Writes() == 1 }, time.Second, 5*time.Millisecond)
	time.Sleep(2 * SaveDelay)
	assert.Equal(t, 1, kv.Writes())
	assert.Equal(t, 310.0, p.Load().LeftWidth)
}
