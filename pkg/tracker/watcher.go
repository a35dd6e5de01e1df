package tracker

import (
	"context"
	"fmt"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
)

// rescanDebounce coalesces bursts of filesystem events (a plugin install
// touches many files) into a single discovery pass.
const rescanDebounce = 500 * time.Millisecond

// Watcher re-runs discovery when the plugin root changes on disk.
type Watcher struct {
	tracker *Tracker
	fsw     *fsnotify.Watcher
	log     *logrus.Logger

	// OnRescan, when set, is invoked after every successful rescan.
	OnRescan func()
}

// NewWatcher creates a watcher over the tracker's plugin root.
func NewWatcher(t *Tracker, log *logrus.Logger) (*Watcher, error) {
	if log == nil {
		log = logrus.New()
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create filesystem watcher: %w", err)
	}
	if err := fsw.Add(t.rootDir); err != nil {
		fsw.Close()
		return nil, fmt.Errorf("failed to watch plugin root %s: %w", t.rootDir, err)
	}

	return &Watcher{
		tracker: t,
		fsw:     fsw,
		log:     log,
	}, nil
}

// Run blocks processing filesystem events until the context is cancelled.
// Rescan failures are logged; the watcher keeps running so a transient
// problem does not stop change tracking.
func (w *Watcher) Run(ctx context.Context) error {
	defer w.fsw.Close()

	var pending <-chan time.Time

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Create|fsnotify.Remove|fsnotify.Rename|fsnotify.Write) != 0 {
				w.log.Debugf("Plugin root changed (%s), scheduling rescan", event)
				pending = time.After(rescanDebounce)
			}

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			w.log.Warnf("Filesystem watcher error: %v", err)

		case <-pending:
			pending = nil
			if err := w.tracker.DiscoverAndTrackPlugins(); err != nil {
				w.log.Errorf("Rescan after filesystem change failed: %v", err)
				continue
			}
			if w.OnRescan != nil {
				w.OnRescan()
			}
		}
	}
}
