// Package store is the key-value persistence service. Values are opaque
// JSON documents addressed by namespaced string keys.
package store

import (
	"errors"
	"fmt"
	"path/filepath"
)

// ErrNotFound is returned by Get for a key that has never been set.
var ErrNotFound = errors.New("store: key not found")

// KV gets and sets JSON values by key.
type KV interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
	Delete(key string) error
	Close() error
}

// Backend names a KV implementation.
type Backend string

const (
	BackendFile   Backend = "file"
	BackendSQLite Backend = "sqlite"
)

// Valid reports whether b names a known backend.
func (b Backend) Valid() bool {
	return b == BackendFile || b == BackendSQLite
}

// Path returns where backend b keeps its data inside dir.
func (b Backend) Path(dir string) string {
	if b == BackendSQLite {
		return filepath.Join(dir, "state.db")
	}
	return filepath.Join(dir, "state.json")
}

// Open opens the backend b rooted at dir.
func Open(b Backend, dir string) (KV, error) {
	switch b {
	case BackendFile:
		return OpenFile(b.Path(dir))
	case BackendSQLite:
		return OpenSQLite(b.Path(dir))
	}
	return nil, fmt.Errorf("unknown storage backend %q", b)
}
