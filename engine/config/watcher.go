package config

import (
	"context"
	"errors"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/spaghettifunk/tesseract/engine/core"
)

// Watcher reloads a config file whenever it changes on disk and delivers
// every valid result on Updates. Invalid files are logged and skipped.
type Watcher struct {
	path     string
	fsnotify *fsnotify.Watcher

	updates chan *Config
	errors  chan error

	mutex    sync.Mutex
	isClosed bool
	done     chan struct{}
}

func NewWatcher(path string) (*Watcher, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	fsWatch, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	// Watch the directory: editors often replace the file instead of writing it.
	if err := fsWatch.Add(filepath.Dir(abs)); err != nil {
		fsWatch.Close()
		return nil, err
	}
	return &Watcher{
		path:     abs,
		fsnotify: fsWatch,
		updates:  make(chan *Config, 1),
		errors:   make(chan error, 1),
		done:     make(chan struct{}),
	}, nil
}

// Updates delivers reloaded configurations. Only the latest pending one is kept.
func (w *Watcher) Updates() <-chan *Config {
	return w.updates
}

// Errors delivers load and watch errors. Only the latest pending one is kept.
func (w *Watcher) Errors() <-chan error {
	return w.errors
}

// Start processes file events until ctx is done or Close is called.
func (w *Watcher) Start(ctx context.Context) {
	go w.start(ctx)
}

func (w *Watcher) Close() error {
	w.mutex.Lock()
	defer w.mutex.Unlock()
	if w.isClosed {
		return errors.New("config watcher already closed")
	}
	w.isClosed = true
	close(w.done)
	return w.fsnotify.Close()
}

func (w *Watcher) start(ctx context.Context) {
	for {
		select {
		case e, ok := <-w.fsnotify.Events:
			if !ok {
				return
			}
			if filepath.Clean(e.Name) != w.path {
				continue
			}
			if e.Op&(fsnotify.Create|fsnotify.Write) == 0 {
				continue
			}
			cfg, err := Load(w.path)
			if err != nil {
				core.LogError("config reload failed: %s", err)
				sendLatest(w.errors, err)
				continue
			}
			core.LogInfo("config reloaded from %s", w.path)
			sendLatest(w.updates, cfg)

		case err, ok := <-w.fsnotify.Errors:
			if !ok {
				return
			}
			core.LogError("%s", err)
			sendLatest(w.errors, err)

		case <-ctx.Done():
			_ = w.Close()
			return

		case <-w.done:
			return
		}
	}
}

// sendLatest replaces any unread value so the reader always sees the newest.
func sendLatest[T any](ch chan T, v T) {
	for {
		select {
		case ch <- v:
			return
		default:
		}
		select {
		case <-ch:
		default:
		}
	}
}
