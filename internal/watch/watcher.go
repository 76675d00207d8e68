// Package watch monitors the corpus file for outside edits using
// github.com/fsnotify/fsnotify.
//
// The parent directory is watched rather than the file itself: atomic
// replacement swaps the inode out from under a file-level watch. Rapid
// event bursts (editors and atomic writers trigger several events per
// save) collapse into one callback per debounce window.
package watch

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/Sap-has/bill/internal/logger"
	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"
)

// DefaultDebounce is the settle window applied when none is configured.
const DefaultDebounce = 50 * time.Millisecond

// Watcher watches a single corpus file.
type Watcher struct {
	fw       *fsnotify.Watcher
	path     string
	debounce time.Duration
	log      *log.Logger

	timerMu sync.Mutex
	timer   *time.Timer

	done    chan struct{}
	stopped bool
	mu      sync.Mutex
}

// NewWatcher creates a watcher for the corpus file at path.
// debounce <= 0 falls back to DefaultDebounce.
func NewWatcher(path string, debounce time.Duration) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Watcher{
		fw:       fw,
		path:     abs,
		debounce: debounce,
		log:      logger.New("watch"),
		done:     make(chan struct{}),
	}, nil
}

// Watch starts monitoring. onChange fires once per settled burst of
// events touching the corpus file.
func (w *Watcher) Watch(onChange func()) error {
	if err := w.fw.Add(filepath.Dir(w.path)); err != nil {
		return err
	}

	base := filepath.Base(w.path)
	go func() {
		for {
			select {
			case event, ok := <-w.fw.Events:
				if !ok {
					return
				}
				if filepath.Base(event.Name) != base {
					continue
				}
				if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
					!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
					continue
				}
				w.log.Debugf("corpus event: %s", event.Op)
				w.scheduleCallback(onChange)

			case err, ok := <-w.fw.Errors:
				if !ok {
					return
				}
				w.log.Warnf("fsnotify: %v", err)

			case <-w.done:
				return
			}
		}
	}()

	w.log.Debugf("Watching corpus at %s", w.path)
	return nil
}

// scheduleCallback restarts the trailing-edge timer, so onChange runs once
// after events stop for a full debounce window.
func (w *Watcher) scheduleCallback(onChange func()) {
	w.timerMu.Lock()
	defer w.timerMu.Unlock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, onChange)
}

// Stop ends monitoring and releases all resources.
// Safe to call multiple times.
func (w *Watcher) Stop() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.stopped {
		return nil
	}
	w.stopped = true
	close(w.done)

	w.timerMu.Lock()
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timerMu.Unlock()

	return w.fw.Close()
}
