package filestore

import (
	"context"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"github.com/custodia-labs/sercha-insight/internal/core/domain"
	"github.com/custodia-labs/sercha-insight/internal/core/ports/driven"
)

// DefaultDebounce is how long the directory must stay quiet before a reload
const DefaultDebounce = 500 * time.Millisecond

// Swapper installs a new dataset snapshot
type Swapper interface {
	Swap(ds *domain.Dataset) *domain.Dataset
}

// Watcher reloads the dataset when collection files change.
// Rapid writes are batched; a failed reload keeps the current snapshot.
type Watcher struct {
	mu        sync.Mutex
	watcher   *fsnotify.Watcher
	loader    driven.DatasetLoader
	catalog   Swapper
	dir       string
	logger    *zap.Logger
	debounce  time.Duration
	pending   bool
	lastEvent time.Time
	stopCh    chan struct{}
	doneCh    chan struct{}
	running   bool
}

// WatcherConfig holds configuration for the watcher
type WatcherConfig struct {
	Dir      string
	Loader   driven.DatasetLoader
	Catalog  Swapper
	Logger   *zap.Logger
	Debounce time.Duration
}

// NewWatcher creates a watcher for cfg.Dir
func NewWatcher(cfg WatcherConfig) (*Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	debounce := cfg.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	return &Watcher{
		watcher:  fw,
		loader:   cfg.Loader,
		catalog:  cfg.Catalog,
		dir:      cfg.Dir,
		logger:   logger.With(zap.String("component", "dataset_watcher"), zap.String("dir", cfg.Dir)),
		debounce: debounce,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}, nil
}

// Start begins watching. It is non-blocking.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	if w.running {
		w.mu.Unlock()
		return nil
	}
	if err := w.watcher.Add(w.dir); err != nil {
		w.mu.Unlock()
		return err
	}
	w.running = true
	w.mu.Unlock()

	w.logger.Info("watching data directory")
	go w.run(ctx)
	return nil
}

// Stop stops the watcher and waits for the event loop to exit
func (w *Watcher) Stop() {
	w.mu.Lock()
	if !w.running {
		w.mu.Unlock()
		_ = w.watcher.Close()
		return
	}
	w.running = false
	w.mu.Unlock()

	close(w.stopCh)
	<-w.doneCh

	if err := w.watcher.Close(); err != nil {
		w.logger.Error("failed to close watcher", zap.Error(err))
	}
	w.logger.Info("dataset watcher stopped")
}

// Reload loads a fresh snapshot and swaps it in
func (w *Watcher) Reload(ctx context.Context) error {
	start := time.Now()
	ds, err := w.loader.Load(ctx)
	if err != nil {
		w.logger.Warn("dataset reload failed, keeping current snapshot", zap.Error(err))
		return err
	}
	w.catalog.Swap(ds)
	w.logger.Info("dataset reloaded",
		zap.Int("tables", len(ds.Names())),
		zap.Int("records", ds.Size()),
		zap.Duration("duration", time.Since(start)))
	return nil
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.doneCh)

	ticker := time.NewTicker(w.debounce / 4)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case <-w.stopCh:
			return

		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			w.logger.Error("watcher error", zap.Error(err))

		case <-ticker.C:
			if w.settled() {
				_ = w.Reload(ctx)
			}
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if !IsCollectionFile(event.Name) {
		return
	}
	if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
		return
	}

	w.logger.Debug("data file changed", zap.String("file", event.Name), zap.String("op", event.Op.String()))

	w.mu.Lock()
	w.pending = true
	w.lastEvent = time.Now()
	w.mu.Unlock()
}

// settled reports whether a change is pending and the debounce window has passed
func (w *Watcher) settled() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.pending || time.Since(w.lastEvent) < w.debounce {
		return false
	}
	w.pending = false
	return true
}
