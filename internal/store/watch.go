package store

import (
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher reports checklist files that changed on disk.
type Watcher struct {
	Dir     string
	Changes <-chan string // checklist names

	changes chan string
	done    chan struct{}
	watcher *fsnotify.Watcher
}

// NewWatcher watches the checklists directory of s.
func (s Store) NewWatcher() (*Watcher, error) {
	if err := s.Ensure(); err != nil {
		return nil, err
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	ch := make(chan string, 16)
	return &Watcher{
		Dir:     s.ChecklistsDir(),
		Changes: ch,
		changes: ch,
		done:    make(chan struct{}),
		watcher: fw,
	}, nil
}

// Start begins watching. On error the underlying watcher is already closed
// and Stop must not be called.
func (w *Watcher) Start() error {
	if err := w.watcher.Add(w.Dir); err != nil {
		_ = w.watcher.Close()
		return err
	}
	go w.loop()
	return nil
}

// Stop closes the watcher and the Changes channel.
func (w *Watcher) Stop() {
	_ = w.watcher.Close()
	<-w.done
	close(w.changes)
}

func (w *Watcher) loop() {
	defer close(w.done)

	// Editors write in bursts; coalesce per file.
	const debounce = 100 * time.Millisecond
	pending := map[string]time.Time{}
	ticker := time.NewTicker(debounce)
	defer ticker.Stop()

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				for name := range pending {
					w.emit(name)
				}
				return
			}
			name, ok := checklistName(event.Name)
			if !ok {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Remove) || event.Has(fsnotify.Rename) {
				pending[name] = time.Now()
			}

		case <-ticker.C:
			now := time.Now()
			for name, t := range pending {
				if now.Sub(t) >= debounce {
					w.emit(name)
					delete(pending, name)
				}
			}

		case _, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
		}
	}
}

func (w *Watcher) emit(name string) {
	select {
	case w.changes <- name:
	default:
		// Reader is behind; it reloads everything it cares about on the next event anyway.
	}
}

func checklistName(path string) (string, bool) {
	base := filepath.Base(path)
	if !strings.HasSuffix(base, checklistExt) || strings.HasPrefix(base, ".") {
		return "", false
	}
	return strings.TrimSuffix(base, checklistExt), true
}
