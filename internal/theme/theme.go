// Package theme persists the appearance mode. It is consulted only when
// painting panes and never affects layout.
package theme

import (
	"encoding/json"
	"fmt"
)

// StorageKey is the key the mode is persisted under.
const StorageKey = "context-assistant.theme.v1"

type Mode string

const (
	System Mode = "system"
	Light  Mode = "light"
	Dark   Mode = "dark"
)

// Modes lists the modes in cycling order.
var Modes = []Mode{System, Light, Dark}

// Parse accepts exactly the three mode names.
func Parse(s string) (Mode, bool) {
	switch Mode(s) {
	case System, Light, Dark:
		return Mode(s), true
	}
	return System, false
}

// Next returns the mode after m in cycling order.
func (m Mode) Next() Mode {
	for i, mode := range Modes {
		if mode == m {
			return Modes[(i+1)%len(Modes)]
		}
	}
	return System
}

// IsDark resolves m to dark or light. System follows the terminal.
func (m Mode) IsDark(terminalDark bool) bool {
	switch m {
	case Dark:
		return true
	case Light:
		return false
	}
	return terminalDark
}

type KV interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
}

// Load returns the stored mode, or System when nothing valid is stored.
func Load(kv KV) Mode {
	raw, err := kv.Get(StorageKey)
	if err != nil {
		return System
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return System
	}
	m, _ := Parse(s)
	return m
}

func Save(kv KV, m Mode) error {
	if _, ok := Parse(string(m)); !ok {
		return fmt.Errorf("invalid theme %q", m)
	}
	data, err := json.Marshal(string(m))
	if err != nil {
		return err
	}
	return kv.Set(StorageKey, data)
}
