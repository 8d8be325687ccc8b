package conventions

import (
	"context"
	"math/rand"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog/log"
)

// WatchAndRefresh reloads the registry whenever the conventions file
// changes, until ctx is cancelled. Editors replace files rather than
// write them in place, so the parent directory is watched and events
// filtered by name.
func WatchAndRefresh(ctx context.Context, r *Registry, path string, baseBackoff time.Duration) {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		log.Error().Err(err).Msg("create conventions watcher")
		return
	}
	defer w.Close()

	dir := filepath.Dir(path)
	if err := w.Add(dir); err != nil {
		log.Error().Err(err).Str("dir", dir).Msg("watch conventions dir")
		return
	}
	log.Info().Str("path", path).Msg("watching conventions file")

	var lastRefresh time.Time
	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("conventions watcher stopped")
			return
		case ev, ok := <-w.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != filepath.Clean(path) {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			if time.Since(lastRefresh) < 200*time.Millisecond {
				continue // debounce burst of events
			}
			lastRefresh = time.Now()
			log.Info().Str("path", path).Msg("conventions file changed; reloading")
			if err := r.LoadFile(path); err != nil {
				log.Error().Err(err).Msg("reload conventions; keeping previous snapshot")
			}
		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			backoff := jitter(baseBackoff)
			log.Error().Err(err).Dur("retry_in", backoff).Msg("conventions watch error")
			time.Sleep(backoff)
		}
	}
}

func jitter(base time.Duration) time.Duration {
	if base <= 0 {
		base = time.Second
	}
	factor := 0.5 + rand.Float64() // 0.5x-1.5x
	return time.Duration(float64(base) * factor)
}
