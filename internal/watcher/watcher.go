// Package watcher reports changes to the DrugBank source document so the
// lookup snapshot can be rebuilt without restarting the server.
package watcher

import (
	"context"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/nishad/drugrake/internal/errors"
	"go.uber.org/zap"
)

// DefaultDebounce is the quiet period after the last event before the
// callback fires.
const DefaultDebounce = 500 * time.Millisecond

// SourceWatcher watches one file. The parent directory is watched instead
// of the file itself so editors that replace the file by rename are seen.
type SourceWatcher struct {
	watcher  *fsnotify.Watcher
	path     string
	debounce time.Duration
	logger   *zap.Logger

	callback func(path string)
	cancel   context.CancelFunc

	timerMu sync.Mutex
	timer   *time.Timer

	stopOnce sync.Once
	doneCh   chan struct{}
}

// New creates a watcher for path. debounce <= 0 uses DefaultDebounce.
func New(path string, debounce time.Duration, logger *zap.Logger) (*SourceWatcher, error) {
	const op errors.Op = "watcher.New"

	if logger == nil {
		logger = zap.NewNop()
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.E(op, errors.KindIO, err)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.E(op, errors.KindIO, err)
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		w.Close()
		return nil, errors.E(op, errors.KindIO, "watch "+filepath.Dir(abs), err)
	}

	return &SourceWatcher{
		watcher:  w,
		path:     abs,
		debounce: debounce,
		logger:   logger,
		doneCh:   make(chan struct{}),
	}, nil
}

// Path returns the absolute path being watched.
func (sw *SourceWatcher) Path() string {
	return sw.path
}

// Start begins delivering change notifications to callback. Bursts of
// events within the debounce window produce a single call.
func (sw *SourceWatcher) Start(ctx context.Context, callback func(path string)) {
	sw.callback = callback
	ctx, sw.cancel = context.WithCancel(ctx)
	go sw.loop(ctx)
}

// Stop stops watching. It is safe to call more than once.
func (sw *SourceWatcher) Stop() error {
	var err error
	sw.stopOnce.Do(func() {
		if sw.cancel != nil {
			sw.cancel()
			<-sw.doneCh
		} else {
			close(sw.doneCh)
		}
		sw.stopTimer()
		err = sw.watcher.Close()
	})
	return err
}

func (sw *SourceWatcher) loop(ctx context.Context) {
	defer close(sw.doneCh)

	fire := make(chan struct{}, 1)
	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-sw.watcher.Events:
			if !ok {
				return
			}
			if !sw.relevant(event) {
				continue
			}
			sw.logger.Debug("source changed", zap.String("path", event.Name), zap.String("op", event.Op.String()))
			sw.resetTimer(fire)

		case <-fire:
			if sw.callback != nil {
				sw.callback(sw.path)
			}

		case err, ok := <-sw.watcher.Errors:
			if !ok {
				return
			}
			sw.logger.Warn("watcher error", zap.Error(err))
		}
	}
}

// relevant keeps writes and creations of the watched file. Removal alone
// is ignored; the replacement shows up as a create.
func (sw *SourceWatcher) relevant(event fsnotify.Event) bool {
	if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
		return false
	}
	name, err := filepath.Abs(event.Name)
	if err != nil {
		return false
	}
	return name == sw.path
}

func (sw *SourceWatcher) resetTimer(fire chan struct{}) {
	sw.timerMu.Lock()
	defer sw.timerMu.Unlock()

	if sw.timer != nil {
		sw.timer.Stop()
	}
	sw.timer = time.AfterFunc(sw.debounce, func() {
		select {
		case fire <- struct{}{}:
		default:
		}
	})
}

func (sw *SourceWatcher) stopTimer() {
	sw.timerMu.Lock()
	defer sw.timerMu.Unlock()

	if sw.timer != nil {
		sw.timer.Stop()
		sw.timer = nil
	}
}
