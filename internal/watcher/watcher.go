package watcher

import (
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"
)

// Debounce is how long file events must settle before a reload.
const Debounce = 500 * time.Millisecond

// ConfigChangedMsg is sent once the watched file has stopped changing.
type ConfigChangedMsg struct {
	Path string
}

// Watch waits for the next burst of changes to path and reports it. The
// parent directory is watched so editors that replace the file by rename are
// still seen. Re-issue the command after each message to keep watching.
func Watch(path string) tea.Cmd {
	return func() tea.Msg {
		w, err := fsnotify.NewWatcher()
		if err != nil {
			return nil
		}
		defer w.Close()

		if err := w.Add(filepath.Dir(path)); err != nil {
			return nil
		}
		return wait(w, path, Debounce)
	}
}

func wait(w *fsnotify.Watcher, path string, delay time.Duration) tea.Msg {
	target := filepath.Clean(path)

	// Debounce: wait for changes to settle
	debounce := time.NewTimer(time.Hour)
	debounce.Stop()

	for {
		select {
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != target {
				continue
			}
			debounce.Reset(delay)
		case <-debounce.C:
			return ConfigChangedMsg{Path: path}
		case _, ok := <-w.Errors:
			if !ok {
				return nil
			}
		}
	}
}
