package store

import (
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// debounceDelay coalesces writes that arrive close together into one
// reload.
const debounceDelay = 250 * time.Millisecond

// Watcher signals when the stored document changes on disk, so an
// interactive session can reload its snapshot and rebuild its index.
type Watcher struct {
	fs       *fsnotify.Watcher
	target   string
	reloadCh chan struct{}
	closeCh  chan struct{}
	closed   sync.Once
	wg       sync.WaitGroup
}

// NewWatcher watches the file at path. The parent directory is watched so
// atomic rename-over writes are seen.
func NewWatcher(path string) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		fw.Close()
		return nil, err
	}
	w := &Watcher{
		fs:       fw,
		target:   abs,
		reloadCh: make(chan struct{}, 1),
		closeCh:  make(chan struct{}),
	}
	w.wg.Add(1)
	go w.loop()
	return w, nil
}

func (w *Watcher) loop() {
	defer w.wg.Done()
	var timer *time.Timer
	for {
		select {
		case <-w.closeCh:
			if timer != nil {
				timer.Stop()
			}
			return
		case event, ok := <-w.fs.Events:
			if !ok {
				return
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			name, _ := filepath.Abs(event.Name)
			if name != w.target {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(debounceDelay, w.notify)
		case err, ok := <-w.fs.Errors:
			if !ok {
				return
			}
			storeLog.Warn("watcher_error", slog.String("error", err.Error()))
		}
	}
}

// notify sends a reload signal without blocking.
func (w *Watcher) notify() {
	select {
	case w.reloadCh <- struct{}{}:
		storeLog.Debug("watcher_document_changed", slog.String("path", w.target))
	default:
		// A reload is already pending.
	}
}

// Reload returns the channel that signals when a reload is needed.
func (w *Watcher) Reload() <-chan struct{} {
	return w.reloadCh
}

// Close stops watching. Close is idempotent.
func (w *Watcher) Close() error {
	var err error
	w.closed.Do(func() {
		close(w.closeCh)
		err = w.fs.Close()
		w.wg.Wait()
	})
	return err
}
