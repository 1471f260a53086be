package watch

import (
	"context"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

const DefaultDebounce = 200 * time.Millisecond

// FolderWatcher signals when files appear in or disappear from the scratches folder.
// Bursts of events within the debounce window collapse into one signal.
type FolderWatcher struct {
	mu       sync.Mutex
	watcher  *fsnotify.Watcher
	dir      string
	debounce time.Duration
	logger   *zap.Logger
	changes  chan struct{}
	stopCh   chan struct{}
	doneCh   chan struct{}
	running  bool
}

func NewFolderWatcher(dir string, debounce time.Duration, logger *zap.Logger) (*FolderWatcher, error) {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &FolderWatcher{
		watcher:  watcher,
		dir:      dir,
		debounce: debounce,
		logger:   logger,
		changes:  make(chan struct{}, 1),
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}, nil
}

// Changes delivers at most one pending signal at a time.
func (fw *FolderWatcher) Changes() <-chan struct{} {
	return fw.changes
}

// Start watches the folder in a goroutine. It fails when the folder cannot be watched.
func (fw *FolderWatcher) Start(ctx context.Context) error {
	fw.mu.Lock()
	defer fw.mu.Unlock()
	if fw.running {
		return nil
	}
	if err := fw.watcher.Add(fw.dir); err != nil {
		return err
	}
	fw.running = true
	fw.logger.Debug("Watching scratches folder", zap.String("dir", fw.dir))

	go fw.run(ctx)
	return nil
}

// Stop ends the watch loop, waits for it and releases the watcher.
func (fw *FolderWatcher) Stop() {
	fw.mu.Lock()
	if !fw.running {
		fw.mu.Unlock()
		_ = fw.watcher.Close()
		return
	}
	fw.running = false
	fw.mu.Unlock()

	close(fw.stopCh)
	<-fw.doneCh

	if err := fw.watcher.Close(); err != nil {
		fw.logger.Warn("Failed to close folder watcher", zap.Error(err))
	}
}

func (fw *FolderWatcher) run(ctx context.Context) {
	defer close(fw.doneCh)

	ticker := time.NewTicker(fw.debounce / 2)
	defer ticker.Stop()

	var pending bool
	var lastEvent time.Time

	for {
		select {
		case <-ctx.Done():
			return

		case <-fw.stopCh:
			return

		case event, ok := <-fw.watcher.Events:
			if !ok {
				return
			}
			if !listingChanged(event) {
				continue
			}
			fw.logger.Debug("Scratches folder changed", zap.String("path", event.Name), zap.Stringer("op", event.Op))
			pending = true
			lastEvent = time.Now()

		case err, ok := <-fw.watcher.Errors:
			if !ok {
				return
			}
			fw.logger.Warn("Folder watcher error", zap.Error(err))

		case <-ticker.C:
			if !pending || time.Since(lastEvent) < fw.debounce {
				continue
			}
			pending = false
			select {
			case fw.changes <- struct{}{}:
			default:
			}
		}
	}
}

// listingChanged drops content writes and hidden files such as atomic-write temp files.
func listingChanged(event fsnotify.Event) bool {
	if strings.HasPrefix(filepath.Base(event.Name), ".") {
		return false
	}
	return event.Op.Has(fsnotify.Create) || event.Op.Has(fsnotify.Remove) || event.Op.Has(fsnotify.Rename)
}
