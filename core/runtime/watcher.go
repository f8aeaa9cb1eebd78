package runtime

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/hyperterse/dataexplorer/core/logger"
)

// DefaultDebounce groups the burst of events an editor produces on save
const DefaultDebounce = 500 * time.Millisecond

// WatchFile calls onChange after path is written, created or replaced,
// once per burst of events. The parent directory is watched so that editors
// which save by rename are seen too. It blocks until ctx is done.
func WatchFile(ctx context.Context, path string, debounce time.Duration, onChange func()) error {
	log := logger.New("watch")

	absPath, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(absPath)); err != nil {
		return err
	}
	log.Infof("Watching %s for changes", absPath)

	changed := make(chan struct{}, 1)
	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != absPath {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(debounce, func() {
				select {
				case changed <- struct{}{}:
				default:
				}
			})
		case <-changed:
			log.Debugf("Change detected in %s", absPath)
			onChange()
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Warnf("File watcher error: %v", err)
		}
	}
}
