package config

import (
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// debounce is how long a file must stay unchanged before it is reloaded.
const debounce = 100 * time.Millisecond

// Watcher reloads a config file whenever it changes on disk.
// Only successfully parsed configs are sent on Updates; failures go to Errors.
type Watcher struct {
	watcher *fsnotify.Watcher
	path    string
	Updates chan Config
	Errors  chan error
	closeCh chan struct{}
	once    sync.Once
}

// Watch starts watching path. The parent directory is watched so that
// rename-on-save editors keep triggering reloads.
func Watch(path string) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("config: cannot resolve %s: %w", path, err)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("config: cannot create watcher: %w", err)
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		_ = w.Close()
		return nil, fmt.Errorf("config: cannot watch %s: %w", abs, err)
	}

	watcher := &Watcher{
		watcher: w,
		path:    abs,
		Updates: make(chan Config, 1),
		Errors:  make(chan error, 1),
		closeCh: make(chan struct{}),
	}
	go watcher.run()
	return watcher, nil
}

// Path returns the absolute path being watched.
func (w *Watcher) Path() string {
	return w.path
}

// Close stops the watcher. Updates and Errors are closed once the loop exits.
func (w *Watcher) Close() error {
	var err error
	w.once.Do(func() {
		close(w.closeCh)
		err = w.watcher.Close()
	})
	return err
}

func (w *Watcher) run() {
	defer close(w.Updates)
	defer close(w.Errors)

	// Reload once the file has been quiet for the debounce window.
	timer := time.NewTimer(time.Hour)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			timer.Reset(debounce)
		case <-timer.C:
			cfg, err := LoadFile(w.path)
			if err != nil {
				w.send(nil, err)
				continue
			}
			w.send(&cfg, nil)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.send(nil, err)
		case <-w.closeCh:
			return
		}
	}
}

// send delivers a result without blocking past Close.
func (w *Watcher) send(cfg *Config, err error) {
	if cfg != nil {
		select {
		case w.Updates <- *cfg:
		case <-w.closeCh:
		}
		return
	}
	select {
	case w.Errors <- err:
	case <-w.closeCh:
	}
}
