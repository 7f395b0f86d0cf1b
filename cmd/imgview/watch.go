package main

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/wbrown/img2cell/imageutil"
)

// reloadDelay lets a burst of writes settle before the file is decoded.
const reloadDelay = 100 * time.Millisecond

// reloaded is the outcome of decoding the watched file again.
type reloaded struct {
	img *imageutil.NRGBAImage
	err error
}

// imageWatcher reloads an image file whenever it changes on disk.
type imageWatcher struct {
	watcher *fsnotify.Watcher
	path    string
	notify  func(reloaded)

	mu     sync.Mutex
	timer  *time.Timer
	closed bool

	done chan struct{}
	// wg covers the event loop and any reload in progress.
	wg sync.WaitGroup
}

// watchImage starts watching path. notify is called from the watcher's
// goroutine with every reload result.
func watchImage(path string, notify func(reloaded)) (*imageWatcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	// Editors often replace the file, so watch the directory.
	if err := fsw.Add(filepath.Dir(abs)); err != nil {
		fsw.Close()
		return nil, err
	}

	w := &imageWatcher{
		watcher: fsw,
		path:    abs,
		notify:  notify,
		done:    make(chan struct{}),
	}
	w.wg.Add(1)
	go w.loop()
	return w, nil
}

func (w *imageWatcher) loop() {
	defer w.wg.Done()
	for {
		select {
		case <-w.done:
			return
		case ev, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != w.path {
				continue
			}
			if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) {
				w.schedule()
			}
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.notify(reloaded{err: err})
		}
	}
}

func (w *imageWatcher) schedule() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return
	}
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(reloadDelay, w.reload)
}

func (w *imageWatcher) reload() {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		return
	}
	w.wg.Add(1)
	w.mu.Unlock()
	defer w.wg.Done()

	img, err := imageutil.LoadImage(w.path)
	w.notify(reloaded{img: img, err: err})
}

// Close stops watching and waits for a reload already under way, so
// notify is never called after Close returns.
func (w *imageWatcher) Close() error {
	w.mu.Lock()
	w.closed = true
	if w.timer != nil {
		w.timer.Stop()
	}
	w.mu.Unlock()
	close(w.done)
	err := w.watcher.Close()
	w.wg.Wait()
	return err
}
