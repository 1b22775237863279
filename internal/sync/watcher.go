package sync

import (
	"fmt"
	"log/slog"
	"path/filepath"
	gosync "sync"
	"time"

	"github.com/MikeBiancalana/datefield/internal/config"
	"github.com/fsnotify/fsnotify"
)

const debounceDelay = 100 * time.Millisecond

// ConfigChangeEvent carries a freshly loaded config, or the error that
// prevented loading it.
type ConfigChangeEvent struct {
	Path   string
	Config *config.Config
	Err    error
}

// ConfigWatcher reloads the config file whenever it is written, created or
// replaced.
type ConfigWatcher struct {
	path    string
	logger  *slog.Logger
	watcher *fsnotify.Watcher
	changes chan ConfigChangeEvent
	done    chan struct{}

	mu            gosync.Mutex
	debounceTimer *time.Timer
	stopped       bool
}

// NewConfigWatcher creates a watcher for the config file at path. The file
// does not need to exist yet.
func NewConfigWatcher(path string, logger *slog.Logger) (*ConfigWatcher, error) {
	if logger == nil {
		logger = slog.Default()
	}

	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	return &ConfigWatcher{
		path:    filepath.Clean(path),
		logger:  logger,
		watcher: fsWatcher,
		changes: make(chan ConfigChangeEvent, 1),
		done:    make(chan struct{}),
	}, nil
}

// Start watches the directory holding the config file. Editors often save by
// renaming over the original, which a watch on the file itself would miss.
func (w *ConfigWatcher) Start() error {
	dir := filepath.Dir(w.path)
	if err := w.watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch directory: %w", err)
	}

	go w.watch()
	return nil
}

// Stop stops the watcher and closes the Changes channel.
func (w *ConfigWatcher) Stop() {
	w.mu.Lock()
	if w.stopped {
		w.mu.Unlock()
		return
	}
	w.stopped = true
	if w.debounceTimer != nil {
		w.debounceTimer.Stop()
	}
	close(w.done)
	close(w.changes)
	w.mu.Unlock()

	w.watcher.Close()
}

// Changes returns the channel of reload results.
func (w *ConfigWatcher) Changes() <-chan ConfigChangeEvent {
	return w.changes
}

// Path returns the watched config file.
func (w *ConfigWatcher) Path() string {
	return w.path
}

func (w *ConfigWatcher) watch() {
	for {
		select {
		case <-w.done:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			w.schedule()

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("ConfigWatcher", "error", err)
		}
	}
}

func (w *ConfigWatcher) schedule() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.stopped {
		return
	}
	if w.debounceTimer != nil {
		w.debounceTimer.Stop()
	}
	w.debounceTimer = time.AfterFunc(debounceDelay, w.reload)
}

func (w *ConfigWatcher) reload() {
	cfg, err := config.Load(w.path)
	if err != nil {
		w.logger.Warn("ConfigWatcher.reload", "path", w.path, "error", err)
	} else {
		w.logger.Debug("ConfigWatcher.reload", "path", w.path)
	}

	event := ConfigChangeEvent{Path: w.path, Config: cfg, Err: err}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.stopped {
		return
	}

	// Only the newest result matters; replace one the reader hasn't taken.
	select {
	case w.changes <- event:
	default:
		select {
		case <-w.changes:
		default:
		}
		w.changes <- event
	}
}
