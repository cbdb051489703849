package corpus

import (
	"context"
	"fmt"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// reloadDelay batches the burst of events an editor save produces.
const reloadDelay = 100 * time.Millisecond

// Live holds the current library and swaps in a new one when its file changes.
// Readers always see a complete Set.
type Live struct {
	cur atomic.Pointer[Set]
}

// NewLive wraps set.
func NewLive(set *Set) *Live {
	l := &Live{}
	l.cur.Store(set)
	return l
}

// Get returns the current library.
func (l *Live) Get() *Set {
	return l.cur.Load()
}

// Reload reopens the library from its path. On error the current library stays.
func (l *Live) Reload() error {
	set, err := Open(l.Get().Path)
	if err != nil {
		return err
	}
	l.cur.Store(set)
	return nil
}

// Watch reloads the library whenever its file is written, created or renamed
// into place, until ctx is cancelled. The built-in library (empty path) has
// nothing to watch, so Watch just waits for ctx.
func (l *Live) Watch(ctx context.Context, log *zap.Logger) error {
	path := l.Get().Path
	if path == "" {
		<-ctx.Done()
		return nil
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolve library path: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the directory: editors often replace the file instead of writing it.
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}
	log.Info("watching word library", zap.String("path", abs))

	timer := time.NewTimer(reloadDelay)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != abs {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
				timer.Reset(reloadDelay)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Warn("library watcher error", zap.Error(err))

		case <-timer.C:
			if err := l.Reload(); err != nil {
				log.Warn("library reload failed; keeping previous library", zap.String("path", path), zap.Error(err))
				continue
			}
			set := l.Get()
			log.Info("word library reloaded", zap.String("path", path), zap.Int("templates", len(set.Templates)))
		}
	}
}
