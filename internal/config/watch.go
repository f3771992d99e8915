package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Watch reloads the config file at path whenever it changes and passes the
// parsed Partial to onChange. Parse and read failures go to onError and the
// previous configuration stays in effect.
//
// The parent directory is watched rather than the file itself so editors
// that save by rename are still picked up. Watch returns once the watcher
// is running; it stops when ctx is done.
func Watch(ctx context.Context, path string, onChange func(Partial), onError func(error)) error {
	if path == "" {
		return fmt.Errorf("config path is required")
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolve config path: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		_ = watcher.Close()
		return fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}

	go func() {
		defer watcher.Close()
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-watcher.Events:
				if !ok {
					return
				}
				if filepath.Clean(ev.Name) != abs {
					continue
				}
				if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
					continue
				}
				data, err := os.ReadFile(abs)
				if err != nil {
					onError(fmt.Errorf("reload %s: %w", abs, err))
					continue
				}
				p, err := ParseFile(abs, data)
				if err != nil {
					onError(err)
					continue
				}
				onChange(p)
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				onError(fmt.Errorf("config watcher: %w", err))
			}
		}
	}()
	return nil
}
