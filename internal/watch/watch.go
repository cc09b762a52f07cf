// Package watch re-runs detection when launcher catalogues change on disk.
package watch

import (
	"context"
	"errors"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

// Watcher debounces filesystem events under a set of launcher roots.
// Launchers rewrite several files per change, so events are coalesced into
// one callback per quiet period.
type Watcher struct {
	fsw      *fsnotify.Watcher
	debounce time.Duration
	log      *zap.Logger
}

// New watches the given roots. Unwatchable roots are logged and skipped;
// it is an error when none remain.
func New(roots []string, debounce time.Duration, log *zap.Logger) (*Watcher, error) {
	if log == nil {
		log = zap.NewNop()
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	watched := 0
	for _, root := range roots {
		if err := fsw.Add(root); err != nil {
			log.Warn("cannot watch root", zap.String("root", root), zap.Error(err))
			continue
		}
		log.Debug("watching root", zap.String("root", root))
		watched++
	}
	if watched == 0 {
		fsw.Close()
		return nil, errors.New("no watchable roots")
	}

	return &Watcher{fsw: fsw, debounce: debounce, log: log}, nil
}

// Run blocks until ctx is cancelled, invoking onChange once per debounce
// window after relevant filesystem activity.
func (w *Watcher) Run(ctx context.Context, onChange func()) error {
	var timer *time.Timer
	var fire <-chan time.Time

	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			w.log.Debug("fs event", zap.String("path", event.Name), zap.Stringer("op", event.Op))
			if timer == nil {
				timer = time.NewTimer(w.debounce)
				fire = timer.C
			} else {
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				timer.Reset(w.debounce)
			}

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.log.Warn("watcher error", zap.Error(err))

		case <-fire:
			onChange()
		}
	}
}

// Close releases the underlying watcher.
func (w *Watcher) Close() error {
	return w.fsw.Close()
}
