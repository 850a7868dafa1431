//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

package profile

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Settle is how long a burst of file events must be quiet before the
// profile is reloaded
var Settle = 100 * time.Millisecond

// Watch reloads the profile at path whenever it is written or replaced,
// calling fn with the result, until ctx is done. The directory is watched
// rather than the file, so editors that save by rename are seen.
func Watch(ctx context.Context, path string, fn func(prof *Profile, err error)) (err error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return
	}
	defer watcher.Close()

	path = filepath.Clean(path)

	err = watcher.Add(filepath.Dir(path))
	if err != nil {
		return
	}

	timer := time.NewTimer(Settle)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			slog.Debug("profile changed", "path", path, "op", event.Op)
			timer.Reset(Settle)
		case <-timer.C:
			fn(Load(path))
		case werr, ok := <-watcher.Errors:
			if !ok {
				return
			}
			slog.Warn("profile watch", "path", path, "error", werr)
		}
	}
}
