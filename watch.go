package patternlock

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// DefaultWatchDebounce is the default debounce interval for config file events.
const DefaultWatchDebounce = 200 * time.Millisecond

// ConfigWatcher reloads a config file when it changes on disk. Reloaded
// configs are delivered on a channel rather than applied directly, because a
// Lock may only be touched from the goroutine that owns its surface: poll
// Changes from the update loop and pass each config to Lock.ApplyConfig.
type ConfigWatcher struct {
	watcher  *fsnotify.Watcher
	path     string
	debounce time.Duration
	log      *slog.Logger

	changes chan *Config
	errs    chan error

	stopCh    chan struct{}
	stoppedCh chan struct{}
	stopOnce  sync.Once
	mu        sync.Mutex
	started   bool
	stopped   bool
}

// NewConfigWatcher watches the directory containing path, which handles
// editors that save by atomic rename. A non-positive debounce selects
// DefaultWatchDebounce. logger may be nil.
func NewConfigWatcher(path string, debounce time.Duration, logger *slog.Logger) (*ConfigWatcher, error) {
	if path == "" {
		return nil, errors.New("config watcher: empty path")
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := w.Add(filepath.Dir(path)); err != nil {
		w.Close()
		return nil, fmt.Errorf("watch directory: %w", err)
	}
	if debounce <= 0 {
		debounce = DefaultWatchDebounce
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &ConfigWatcher{
		watcher:   w,
		path:      path,
		debounce:  debounce,
		log:       logger,
		changes:   make(chan *Config, 1),
		errs:      make(chan error, 1),
		stopCh:    make(chan struct{}),
		stoppedCh: make(chan struct{}),
	}, nil
}

// Changes delivers each successfully reloaded and validated config. Only the
// newest pending config is kept.
func (cw *ConfigWatcher) Changes() <-chan *Config {
	return cw.changes
}

// Errors delivers reload and watch errors. Errors are dropped while one is
// already pending.
func (cw *ConfigWatcher) Errors() <-chan error {
	return cw.errs
}

// Start begins watching in a goroutine. Calling Start twice, or after Stop,
// is a no-op.
func (cw *ConfigWatcher) Start() {
	cw.mu.Lock()
	defer cw.mu.Unlock()
	if cw.started || cw.stopped {
		return
	}
	cw.started = true
	go cw.watchLoop()
}

// Stop stops watching and waits for the goroutine to exit. It is safe to call
// more than once and from several goroutines; every call returns after the
// watcher is closed. The watcher cannot be restarted.
func (cw *ConfigWatcher) Stop() {
	cw.stopOnce.Do(func() {
		cw.mu.Lock()
		started := cw.started
		cw.stopped = true
		cw.mu.Unlock()

		if !started {
			cw.watcher.Close()
			return
		}
		close(cw.stopCh)
		<-cw.stoppedCh
	})
}

func (cw *ConfigWatcher) watchLoop() {
	defer close(cw.stoppedCh)
	defer cw.watcher.Close()

	base := filepath.Base(cw.path)
	var timer *time.Timer
	var fire <-chan time.Time

	for {
		select {
		case <-cw.stopCh:
			if timer != nil {
				timer.Stop()
			}
			return

		case event, ok := <-cw.watcher.Events:
			if !ok {
				return
			}
			if filepath.Base(event.Name) != base {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.NewTimer(cw.debounce)
			fire = timer.C

		case <-fire:
			fire = nil
			cw.reload()

		case err, ok := <-cw.watcher.Errors:
			if !ok {
				return
			}
			cw.sendErr(err)
		}
	}
}

func (cw *ConfigWatcher) reload() {
	cfg, err := LoadConfig(cw.path)
	if err != nil {
		cw.log.Warn("config reload failed", "path", cw.path, "err", err)
		cw.sendErr(fmt.Errorf("reload config: %w", err))
		return
	}
	cw.log.Info("config reloaded", "path", cw.path)
	// Replace a stale pending config with the newest one.
	select {
	case <-cw.changes:
	default:
	}
	cw.changes <- cfg
}

func (cw *ConfigWatcher) sendErr(err error) {
	select {
	case cw.errs <- err:
	default:
	}
}
