package table

import (
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// watcher emits a tick on Events whenever the watched file changes,
// with rapid successive saves debounced.
type watcher struct {
	fsw    *fsnotify.Watcher
	events chan struct{}
	done   chan struct{}
	log    *zap.Logger
}

const watchDebounce = 500 * time.Millisecond

// newWatcher watches the file's directory rather than the file itself:
// editors that save via rename would otherwise drop the watch.
func newWatcher(path string, log *zap.Logger) (*watcher, error) {
	if log == nil {
		log = zap.NewNop()
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(filepath.Dir(path)); err != nil {
		fsw.Close()
		return nil, err
	}

	w := &watcher{
		fsw:    fsw,
		events: make(chan struct{}, 1),
		done:   make(chan struct{}),
		log:    log,
	}
	go w.loop(filepath.Base(path))
	return w, nil
}

func (w *watcher) loop(name string) {
	// Trailing-edge debounce: every event in a burst re-arms the
	// timer, so the tick fires once saves have settled and the last
	// write is never lost.
	var timer *time.Timer
	var tick <-chan time.Time
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-w.done:
			return
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Base(ev.Name) != name {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(watchDebounce)
				tick = timer.C
			} else {
				if !timer.Stop() {
					select {
					case <-tick:
					default:
					}
				}
				timer.Reset(watchDebounce)
			}
		case <-tick:
			timer = nil
			tick = nil
			select {
			case w.events <- struct{}{}:
			default:
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.log.Warn("file watcher error", zap.Error(err))
		}
	}
}

// Events delivers change notifications.
func (w *watcher) Events() <-chan struct{} {
	return w.events
}

// Close stops the watcher.
func (w *watcher) Close() error {
	close(w.done)
	return w.fsw.Close()
}
