package layout

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

const (
	// StorageKey is the key the layout is persisted under.
	StorageKey = "context-assistant.layout.v1"
	// SaveDelay is the quiet period before a scheduled state is written.
	SaveDelay = 150 * time.Millisecond
)

// KV is the subset of the key-value service the persister needs.
type KV interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
}

type timer interface {
	Stop() bool
}

type afterFunc func(time.Duration, func()) timer

func realAfterFunc(d time.Duration, f func()) timer {
	return time.AfterFunc(d, f)
}

// Persister loads the initial layout and writes changes back after a quiet
// period. Persistence is best effort: read and write failures are logged and
// never surface to the caller.
type Persister struct {
	kv    KV
	key   string
	delay time.Duration
	after afterFunc
	log   zerolog.Logger

	mu      sync.Mutex
	pending timer
	latest  State
	dirty   bool
	gen     uint64

	// writeMu serializes writes; written is the generation of the newest
	// state handed to the store.
	writeMu sync.Mutex
	written uint64
}

func NewPersister(kv KV, log zerolog.Logger) *Persister {
	return &Persister{
		kv:    kv,
		key:   StorageKey,
		delay: SaveDelay,
		after: realAfterFunc,
		log:   log.With().Str("component", "persist").Logger(),
	}
}

// Load returns the persisted layout merged field by field over the defaults.
// Missing, null or mistyped fields keep their default; unknown fields are
// ignored. Anything that is not a JSON object yields the defaults.
func (p *Persister) Load() State {
	st := DefaultState()

	raw, err := p.kv.Get(p.key)
	if err != nil || len(raw) == 0 {
		return st
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		p.log.Debug().Err(err).Msg("persisted layout unreadable, using defaults")
		return st
	}

	p.decode(fields, "showLeft", &st.ShowLeft)
	p.decode(fields, "showRight", &st.ShowRight)
	p.decode(fields, "showBottom", &st.ShowBottom)
	p.decode(fields, "leftWidth", &st.LeftWidth)
	p.decode(fields, "rightWidth", &st.RightWidth)
	p.decode(fields, "bottomHeight", &st.BottomHeight)
	return st
}

// decode overwrites dst only when the field is present and has the right
// type. json.Unmarshal leaves dst untouched for null and on a type mismatch.
func (p *Persister) decode(fields map[string]json.RawMessage, name string, dst any) {
	raw, ok := fields[name]
	if !ok {
		return
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		p.log.Debug().Str("field", name).Err(err).Msg("ignoring mistyped layout field")
	}
}

// Schedule arms a write of s after the quiet period, superseding any write
// still pending.
func (p *Persister) Schedule(s State) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.pending != nil {
		p.pending.Stop()
	}
	p.latest = s
	p.dirty = true
	p.gen++
	gen := p.gen
	p.pending = p.after(p.delay, func() { p.fire(gen) })
}

func (p *Persister) fire(gen uint64) {
	p.mu.Lock()
	// A later Schedule or Flush owns the write.
	if gen != p.gen || !p.dirty {
		p.mu.Unlock()
		return
	}
	s := p.latest
	p.dirty = false
	p.pending = nil
	p.mu.Unlock()

	p.write(s, gen)
}

// Flush writes the pending state now, if there is one.
func (p *Persister) Flush() {
	p.mu.Lock()
	if !p.dirty {
		p.mu.Unlock()
		return
	}
	if p.pending != nil {
		p.pending.Stop()
		p.pending = nil
	}
	s := p.latest
	p.dirty = false
	p.gen++
	gen := p.gen
	p.mu.Unlock()

	p.write(s, gen)
}

// Stop drops any pending write.
func (p *Persister) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.pending != nil {
		p.pending.Stop()
		p.pending = nil
	}
	p.dirty = false
	p.gen++
}

// write stores s unless a newer generation has already been written. A
// slow write can still be in flight when a later Flush starts; the later
// state must land last.
func (p *Persister) write(s State, gen uint64) {
	p.writeMu.Lock()
	defer p.writeMu.Unlock()
	if gen <= p.written {
		p.log.Trace().Uint64("gen", gen).Msg("skipping superseded layout write")
		return
	}
	p.written = gen

	data, err := json.Marshal(s)
	if err != nil {
		p.log.Debug().Err(err).Msg("encode layout")
		return
	}
	if err := p.kv.Set(p.key, data); err != nil {
		p.log.Debug().Err(err).Msg("save layout")
		return
	}
	p.log.Trace().RawJSON("layout", data).Msg("layout saved")
}
