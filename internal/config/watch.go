package config

import (
	"context"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

const watchDebounce = 200 * time.Millisecond

// WatchFile calls onChange after path is written, created or renamed into
// place. The parent directory is watched so editors that replace the file
// atomically are picked up. Events within 200ms are coalesced. The watcher
// stops when ctx is done.
func WatchFile(ctx context.Context, path string, onChange func()) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}

	dir := filepath.Dir(path)
	if err := watcher.Add(dir); err != nil {
		watcher.Close()
		return err
	}

	go runWatcher(ctx, watcher, filepath.Clean(path), onChange)

	slog.Debug("config watcher started", "path", path)
	return nil
}

func runWatcher(ctx context.Context, watcher *fsnotify.Watcher, path string, onChange func()) {
	defer watcher.Close()

	var mu sync.Mutex
	var pending *time.Timer

	trigger := func() {
		mu.Lock()
		defer mu.Unlock()
		if pending != nil {
			pending.Stop()
		}
		pending = time.AfterFunc(watchDebounce, onChange)
	}

	for {
		select {
		case <-ctx.Done():
			mu.Lock()
			if pending != nil {
				pending.Stop()
			}
			mu.Unlock()
			return

		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
				trigger()
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return
			}
			slog.Warn("config watcher", "err", err)
		}
	}
}
