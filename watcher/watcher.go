// Package watcher rebuilds on source changes during development.
package watcher

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/pkg/errors"

	"github.com/semi-technologies/weaviate-io/logging"
)

const DefaultDebounce = 300 * time.Millisecond

// Watch calls onChange once a burst of file system events under dirs has
// settled for debounce. Directories created while watching are added. Missing
// dirs are skipped. Watch blocks until ctx is done.
func Watch(ctx context.Context, dirs []string, debounce time.Duration, onChange func()) error {
	logger := logging.WithComponent("watcher")

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "create watcher")
	}
	defer w.Close()

	for _, dir := range dirs {
		if _, err := os.Stat(dir); os.IsNotExist(err) {
			logger.Debug().Str("dir", dir).Msg("not watching missing directory")
			continue
		}
		if err := addTree(w, dir); err != nil {
			return err
		}
	}
	logger.Info().Strs("dirs", w.WatchList()).Msg("watching for changes")

	timer := time.NewTimer(debounce)
	if !timer.Stop() {
		<-timer.C
	}
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
				continue
			}
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
					if err := addTree(w, event.Name); err != nil {
						logger.Warn().Err(err).Str("dir", event.Name).Msg("cannot watch new directory")
					}
				}
			}
			logger.Debug().Str("file", event.Name).Str("op", event.Op.String()).Msg("change detected")
			timer.Reset(debounce)

		case <-timer.C:
			onChange()

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Error().Err(err).Msg("watcher error")
		}
	}
}

func addTree(w *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if err := w.Add(p); err != nil {
			return errors.Wrapf(err, "watch %s", p)
		}
		return nil
	})
}
